package format

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"github.com/goccy/go-yaml/token"

	"github.com/ardnew/litcfg/pkg"
	"github.com/ardnew/litcfg/schema"
	"github.com/ardnew/litcfg/value"
)

// yamlIndent is the indentation of encoded YAML mappings.
const yamlIndent = 4

// YAML reads documents whose top level is a mapping. Mappings nested in
// mappings are blocks; mappings inside sequences are dicts.
//
// Update leaves the existing text untouched. Missing top-level names are
// appended below it; names missing from a nested block mapping are
// spliced in after that mapping's last entry, at its indentation. Only a
// document that nests additions inside a flow mapping or an alias is
// re-encoded whole, which drops its comments.
type YAML struct{}

// Name returns "yaml".
func (YAML) Name() string { return "yaml" }

// Parse evaluates src. An empty document is an empty namespace.
func (YAML) Parse(_ context.Context, src string) (*value.Namespace, error) {
	obj, err := decodeYAML(src)
	if err != nil {
		return nil, err
	}

	return obj.namespace(0)
}

// Update adds the names src lacks.
func (YAML) Update(
	ctx context.Context,
	src string,
	node *schema.Node,
) (string, *schema.Missing, error) {
	obj, err := decodeYAML(src)
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

	out := src

	if len(missing.Children()) > 0 {
		spliced, ok, err := spliceYAML(ctx, src, missing)
		if err != nil {
			return "", nil, err
		}

		if !ok {
			merged, err := obj.merge(missing)
			if err != nil {
				return "", nil, err
			}

			out, err = encodeYAML(ctx, merged)
			if err != nil {
				return "", nil, err
			}

			return out, missing, nil
		}

		out = spliced
	}

	out, err = appendYAML(ctx, out, missing)
	if err != nil {
		return "", nil, err
	}

	return out, missing, nil
}

// appendYAML appends the top-level additions of m below src.
func appendYAML(ctx context.Context, src string, m *schema.Missing) (string, error) {
	if len(m.Additions()) == 0 {
		return src, nil
	}

	text, err := encodeAdditions(ctx, m)
	if err != nil {
		return "", err
	}

	if body := strings.TrimRight(src, "\r\n"); strings.TrimSpace(body) != "" {
		text = body + "\n\n" + text
	}

	return text, nil
}

// encodeAdditions spells the additions of m, without its children, as a
// mapping at column zero.
func encodeAdditions(ctx context.Context, m *schema.Missing) (string, error) {
	fields, err := object{}.merge(m)
	if err != nil {
		return "", err
	}

	return encodeYAML(ctx, fields)
}

// yamlSplice is text to insert after a line of the source.
type yamlSplice struct {
	text string
	line int
}

// spliceYAML inserts the additions of every child of m into the block
// mappings of src they belong to. It reports false when some child
// cannot be located as a block mapping.
func spliceYAML(ctx context.Context, src string, m *schema.Missing) (string, bool, error) {
	file, err := parser.ParseBytes([]byte(src), parser.ParseComments)
	if err != nil {
		return "", false, pkg.ErrSyntax.Wrap(err).With(slog.String("format", "yaml"))
	}

	if len(file.Docs) == 0 {
		return "", false, nil
	}

	root, ok := file.Docs[0].Body.(*ast.MappingNode)
	if !ok || root.IsFlowStyle {
		return "", false, nil
	}

	lines := strings.SplitAfter(src, "\n")

	var splices []yamlSplice

	for _, child := range m.Children() {
		ok, err := collectSplices(ctx, root, child, lines, &splices)
		if err != nil || !ok {
			return "", false, err
		}
	}

	// Splices after the same line keep their collected order: deeper
	// mappings first, so each addition lands in its own mapping.
	slices.SortStableFunc(splices, func(a, b yamlSplice) int {
		return b.line - a.line
	})

	for i := 0; i < len(splices); {
		line := splices[i].line

		var text strings.Builder
		for ; i < len(splices) && splices[i].line == line; i++ {
			text.WriteString(splices[i].text)
		}

		prev := lines[line]
		if !strings.HasSuffix(prev, "\n") {
			prev += "\n"
		}

		lines[line] = prev + text.String()
	}

	return strings.Join(lines, ""), true, nil
}

// collectSplices records the insertions m needs inside the member of
// parent it names.
func collectSplices(
	ctx context.Context,
	parent *ast.MappingNode,
	m *schema.Missing,
	lines []string,
	splices *[]yamlSplice,
) (bool, error) {
	mapping := blockMapping(parent, m.Name())
	if mapping == nil {
		return false, nil
	}

	for _, child := range m.Children() {
		ok, err := collectSplices(ctx, mapping, child, lines, splices)
		if err != nil || !ok {
			return ok, err
		}
	}

	if len(m.Additions()) == 0 {
		return true, nil
	}

	text, err := encodeAdditions(ctx, m)
	if err != nil {
		return false, err
	}

	first := mapping.Values[0].Key.GetToken().Position
	indent := strings.Repeat(" ", first.Column-1)

	var b strings.Builder
	for _, line := range strings.SplitAfter(text, "\n") {
		if strings.TrimSpace(line) != "" {
			b.WriteString(indent)
		}

		b.WriteString(line)
	}

	var extent yamlExtent
	ast.Walk(&extent, mapping)

	*splices = append(*splices, yamlSplice{
		text: b.String(),
		line: lastEntryLine(lines, max(first.Line, extent.line)-1, first.Column-1),
	})

	return true, nil
}

// blockMapping returns the non-empty block mapping bound to name in
// parent, looking through anchors and tags.
func blockMapping(parent *ast.MappingNode, name string) *ast.MappingNode {
	for _, mv := range parent.Values {
		if mv.Key == nil || mv.Key.GetToken() == nil || mv.Key.GetToken().Value != name {
			continue
		}

		v := mv.Value
		for {
			switch n := v.(type) {
			case *ast.AnchorNode:
				v = n.Value

				continue

			case *ast.TagNode:
				v = n.Value

				continue

			case *ast.MappingNode:
				if n.IsFlowStyle || len(n.Values) == 0 {
					return nil
				}

				return n
			}

			return nil
		}
	}

	return nil
}

// yamlExtent finds the last source line holding a token of the nodes it
// visits. Comments are not part of the extent.
type yamlExtent struct {
	line int
}

func (e *yamlExtent) Visit(node ast.Node) ast.Visitor {
	switch n := node.(type) {
	case nil, *ast.CommentGroupNode, *ast.CommentNode:
		return nil

	case *ast.MappingNode:
		e.see(n.End)

	case *ast.SequenceNode:
		e.see(n.End)
	}

	e.see(node.GetToken())

	return e
}

func (e *yamlExtent) see(tk *token.Token) {
	if tk != nil && tk.Position != nil {
		e.line = max(e.line, tk.Position.Line)
	}
}

// lastEntryLine returns the index of the last line holding content of the
// block mapping at column indent, scanning from line index first. Blank
// and comment lines are skipped; the first less indented content line
// ends the mapping.
func lastEntryLine(lines []string, first, indent int) int {
	last := first

	for i := first + 1; i < len(lines); i++ {
		trimmed := strings.TrimLeft(lines[i], " ")
		if t := strings.TrimSpace(trimmed); t == "" || strings.HasPrefix(t, "#") {
			continue
		}

		if len(lines[i])-len(trimmed) < indent {
			break
		}

		last = i
	}

	return last
}

// Encode spells ns as a YAML mapping.
func (YAML) Encode(ctx context.Context, ns *value.Namespace) (string, error) {
	data, err := toData(ns, 0)
	if err != nil {
		return "", err
	}

	return encodeYAML(ctx, data)
}

func encodeYAML(ctx context.Context, data any) (string, error) {
	out, err := yaml.MarshalContext(ctx, yamlData(data), yaml.Indent(yamlIndent))
	if err != nil {
		return "", pkg.ErrUnrepresentable.Wrap(err)
	}

	return string(out), nil
}

func decodeYAML(src string) (object, error) {
	if strings.TrimSpace(src) == "" {
		return object{}, nil
	}

	var doc any
	if err := yaml.UnmarshalWithOptions([]byte(src), &doc, yaml.UseOrderedMap()); err != nil {
		return nil, pkg.ErrSyntax.Wrap(err).With(slog.String("format", "yaml"))
	}

	switch doc := doc.(type) {
	case nil:
		return object{}, nil

	case yaml.MapSlice:
		return fromMapSlice(doc), nil
	}

	return nil, pkg.ErrSyntax.With(
		slog.String("format", "yaml"),
		slog.String("reason", "top level is not a mapping"),
	)
}

// fromMapSlice converts a mapping and the mappings nested directly in it
// to objects, leaving every other value as decoded.
func fromMapSlice(ms yaml.MapSlice) object {
	obj := make(object, len(ms))

	for i, item := range ms {
		key, ok := item.Key.(string)
		if !ok {
			key = fmt.Sprint(item.Key)
		}

		if child, ok := item.Value.(yaml.MapSlice); ok {
			obj[i] = member{Key: key, Value: fromMapSlice(child)}
		} else {
			obj[i] = member{Key: key, Value: item.Value}
		}
	}

	return obj
}

// yamlData replaces every object in data with an ordered yaml.MapSlice.
// The encoder keeps a fraction on integral floats by itself.
func yamlData(data any) any {
	switch x := data.(type) {
	case number:
		return float64(x)

	case object:
		ms := make(yaml.MapSlice, len(x))
		for i, m := range x {
			ms[i] = yaml.MapItem{Key: m.Key, Value: yamlData(m.Value)}
		}

		return ms

	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = yamlData(e)
		}

		return out
	}

	return data
}
