package query

import (
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/litcfg/pkg"
	"github.com/ardnew/litcfg/value"
)

// ErrNotFound is returned when a path names nothing in a namespace.
var ErrNotFound = pkg.NewError("name not found")

// maxSuggestions bounds the alternatives reported for an absent name.
const maxSuggestions = 3

// NotFoundError reports the first segment of a path that could not be
// resolved, with the closest names bound where it was expected.
type NotFoundError struct {
	Path        string   // full dotted path looked up
	Name        string   // segment that was not found
	Parent      string   // dotted path of the namespace searched
	Suggestions []string // best match first
	NotBlock    bool     // Parent is bound, but not to a namespace
}

func (e *NotFoundError) Error() string {
	var sb strings.Builder

	sb.WriteString(ErrNotFound.Error() + ": " + strconv.Quote(e.Path))

	if e.NotBlock {
		sb.WriteString(" (" + strconv.Quote(e.Parent) + " is not a block)")
	}

	if len(e.Suggestions) > 0 {
		quoted := make([]string, len(e.Suggestions))
		for i, s := range e.Suggestions {
			quoted[i] = strconv.Quote(s)
		}

		sb.WriteString("; did you mean " + strings.Join(quoted, ", ") + "?")
	}

	return sb.String()
}

// Unwrap returns [ErrNotFound].
func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// Lookup returns the value bound at a dotted path. The empty path returns
// ns itself. If a segment is absent, Lookup fails with a *[NotFoundError]
// naming the closest alternatives.
func Lookup(ns *value.Namespace, path string) (value.Value, error) {
	if path == "" {
		return ns, nil
	}

	names := strings.Split(path, ".")

	var cur value.Value = ns

	for i, name := range names {
		parent := strings.Join(names[:i], ".")

		block, ok := cur.(*value.Namespace)
		if !ok {
			return nil, &NotFoundError{Path: path, Name: name, Parent: parent, NotBlock: true}
		}

		v, ok := block.Get(name)
		if !ok {
			return nil, &NotFoundError{
				Path:        path,
				Name:        name,
				Parent:      parent,
				Suggestions: Suggest(name, block.Names()),
			}
		}

		cur = v
	}

	return cur, nil
}

// Suggest returns up to three of candidates that fuzzy-match name, best
// first.
func Suggest(name string, candidates []string) []string {
	if name == "" {
		return nil
	}

	matches := fuzzy.Find(name, candidates)

	out := make([]string, 0, min(len(matches), maxSuggestions))
	for _, m := range matches {
		if len(out) == maxSuggestions {
			break
		}

		out = append(out, m.Str)
	}

	return out
}
