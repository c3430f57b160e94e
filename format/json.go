package format

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/ardnew/litcfg/pkg"
	"github.com/ardnew/litcfg/schema"
	"github.com/ardnew/litcfg/value"
)

// jsonIndent is the indentation of re-encoded JSON documents.
const jsonIndent = "    "

// JSON reads documents whose top level is a JSON object. Nested objects
// are blocks; objects inside arrays are dicts.
//
// Updates re-encode the whole document. Member order and the spelling of
// untouched values, including booleans and nulls, are kept; whitespace is
// not.
type JSON struct{}

// Name returns "json".
func (JSON) Name() string { return "json" }

// Parse evaluates src. Blank text is an empty namespace.
func (JSON) Parse(_ context.Context, src string) (*value.Namespace, error) {
	obj, err := decodeJSON(src)
	if err != nil {
		return nil, err
	}

	return obj.namespace(0)
}

// Update adds the names src lacks, appending them after the existing
// members of each object.
func (JSON) Update(
	_ context.Context,
	src string,
	node *schema.Node,
) (string, *schema.Missing, error) {
	obj, err := decodeJSON(src)
	if err != nil {
		return "", nil, err
	}

	ns, err := obj.namespace(0)
	if err != nil {
		return "", nil, err
	}

	missing, err := schema.Diff(node, ns)
	if err != nil {
		return "", nil, err
	}

	if missing.Empty() {
		return src, missing, nil
	}

	merged, err := obj.merge(missing)
	if err != nil {
		return "", nil, err
	}

	out, err := encodeJSON(merged)
	if err != nil {
		return "", nil, err
	}

	return out, missing, nil
}

// Encode spells ns as an indented JSON object.
func (JSON) Encode(_ context.Context, ns *value.Namespace) (string, error) {
	data, err := toData(ns, 0)
	if err != nil {
		return "", err
	}

	return encodeJSON(data)
}

func encodeJSON(data any) (string, error) {
	out, err := json.MarshalIndent(data, "", jsonIndent)
	if err != nil {
		return "", pkg.ErrUnrepresentable.Wrap(err)
	}

	return string(out) + "\n", nil
}

func decodeJSON(src string) (object, error) {
	if strings.TrimSpace(src) == "" {
		return object{}, nil
	}

	obj, err := decodeObject([]byte(src))
	if err != nil {
		return nil, pkg.ErrSyntax.Wrap(err).With(slog.String("format", "json"))
	}

	return obj, nil
}

var (
	errNotObject    = errors.New("top level is not an object")
	errTrailingData = errors.New("unexpected data after top-level object")
)

// decodeObject reads one JSON object, keeping its members in order and
// nested objects as objects. Every other member value is kept as raw text.
func decodeObject(data []byte) (object, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errNotObject
	}

	obj := object{}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}

		key, _ := tok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}

		if !isObject(raw) {
			obj = append(obj, member{Key: key, Value: raw})

			continue
		}

		child, err := decodeObject(raw)
		if err != nil {
			return nil, err
		}

		obj = append(obj, member{Key: key, Value: child})
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errTrailingData
	}

	return obj, nil
}

func isObject(raw json.RawMessage) bool {
	raw = bytes.TrimLeft(raw, " \t\r\n")

	return len(raw) > 0 && raw[0] == '{'
}
