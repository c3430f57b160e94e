package lang

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/ardnew/litcfg/pkg"
	"github.com/ardnew/litcfg/schema"
	"github.com/ardnew/litcfg/value"
)

// Defaults for documents that give no hint of their own.
const (
	DefaultIndent  = "    "
	DefaultNewline = "\n"
)

// Update adds every name node declares but src lacks, and returns the new
// text together with what was added. If nothing is missing, src is
// returned unchanged.
func Update(
	ctx context.Context,
	src string,
	node *schema.Node,
	opts ...Option,
) (string, *schema.Missing, error) {
	cfg := makeConfig(opts...)

	mod, err := Parse(ctx, src, opts...)
	if err != nil {
		return "", nil, err
	}

	ns, err := LoadModule(ctx, mod, opts...)
	if err != nil {
		return "", nil, err
	}

	missing, err := schema.Diff(node, ns, schema.WithMaxDepth(cfg.maxDepth))
	if err != nil {
		return "", nil, err
	}

	if missing.Empty() {
		return src, missing, nil
	}

	out, err := RewriteModule(ctx, mod, missing, opts...)
	if err != nil {
		return "", nil, err
	}

	return Print(out), missing, nil
}

// Rewrite parses src and inserts the additions in missing. See
// [RewriteModule].
func Rewrite(
	ctx context.Context,
	src string,
	missing *schema.Missing,
	opts ...Option,
) (string, error) {
	mod, err := Parse(ctx, src, opts...)
	if err != nil {
		return "", err
	}

	out, err := RewriteModule(ctx, mod, missing, opts...)
	if err != nil {
		return "", err
	}

	return Print(out), nil
}

// RewriteModule returns a copy of mod with the additions in missing
// inserted. Existing text is never altered.
//
// The additions for each level are prepended to the body of every block at
// that path, in order, as "name = literal" lines and "class Name:" blocks;
// root additions go at the top of the document, below any leading comment
// separated from the first statement by a blank line. A block written on
// its header line is moved to an indented body when it receives
// additions.
//
// Values without a literal spelling fail with [pkg.ErrUnrepresentable].
func RewriteModule(
	ctx context.Context,
	mod *Module,
	missing *schema.Missing,
	opts ...Option,
) (*Module, error) {
	cfg := makeConfig(opts...)

	unit, nl := detectStyle(mod)
	if cfg.indent != "" {
		unit = cfg.indent
	}

	if cfg.newline != "" {
		nl = cfg.newline
	}

	r := &rewriter{ctx: ctx, cfg: cfg, missing: missing, unit: unit, nl: nl}

	return Walk(ctx, mod, r, opts...)
}

type rewriter struct {
	BaseVisitor

	ctx     context.Context
	cfg     config
	missing *schema.Missing
	unit    string
	nl      string
}

func (r *rewriter) LeaveClass(path []string, c *ClassDef) (*ClassDef, error) {
	adds := r.missing.At(path...).Additions()
	if len(adds) == 0 {
		return nil, nil
	}

	indent := lineIndent(c.Leading) + r.unit

	body, ok := c.Body.(*IndentedBlock)
	if ok && len(body.Body) > 0 {
		indent = lineIndent(body.Body[0].leading())
	}

	stmts, err := r.synthesize(adds, indent)
	if err != nil {
		return nil, err
	}

	r.trace(path, adds)

	d := *c

	if !ok {
		inline := c.Body.(*InlineSuite)
		line := inline.Line.withLeading(indent)

		d.Body = &IndentedBlock{
			Newline: Token{Kind: NEWLINE, Text: r.nl, Pos: line.Pos()},
			Indent:  Token{Kind: INDENT, Pos: line.Pos()},
			Body:    append(stmts, line),
			Dedent:  Token{Kind: DEDENT, Pos: inline.Line.Newline.Pos},
		}

		return &d, nil
	}

	b := *body
	b.Body = prepend(body.Body, stmts)
	d.Body = &b

	return &d, nil
}

func (r *rewriter) LeaveModule(m *Module) (*Module, error) {
	adds := r.missing.Additions()
	if len(adds) == 0 {
		return nil, nil
	}

	stmts, err := r.synthesize(adds, "")
	if err != nil {
		return nil, err
	}

	r.trace(nil, adds)

	c := *m

	if len(m.Body) > 0 {
		c.Body = prepend(m.Body, stmts)

		return &c, nil
	}

	// Only trivia: keep it above the new statements.
	trivia := m.End.Leading
	if trivia != "" && !strings.HasSuffix(trivia, "\n") && !strings.HasSuffix(trivia, "\r") {
		trivia += r.nl
	}

	stmts[0] = stmts[0].withLeading(trivia + stmts[0].leading())
	c.Body = stmts
	c.End.Leading = ""

	return &c, nil
}

func (r *rewriter) trace(path []string, adds []schema.Addition) {
	names := make([]string, len(adds))
	for i, a := range adds {
		names[i] = a.Name
	}

	r.cfg.logger.DebugContext(r.ctx, "inserting fields",
		slog.String("block", strings.Join(path, ".")),
		slog.Any("names", names))
}

// prepend inserts stmts before body. The first statement's leading lines
// up to its last blank line stay on top.
func prepend(body, stmts []Statement) []Statement {
	head, rest := splitHeader(body[0].leading())

	out := make([]Statement, 0, len(stmts)+len(body))
	out = append(out, stmts[0].withLeading(head+stmts[0].leading()))
	out = append(out, stmts[1:]...)
	out = append(out, body[0].withLeading(rest))

	return append(out, body[1:]...)
}

// synthesize builds statements binding adds at the given indentation.
func (r *rewriter) synthesize(adds []schema.Addition, indent string) ([]Statement, error) {
	var sb strings.Builder

	if err := r.render(&sb, adds, indent); err != nil {
		return nil, err
	}

	mod, err := parseAt(sb.String(), indent, r.cfg)
	if err != nil {
		return nil, pkg.ErrUnrepresentable.Wrap(err)
	}

	return mod.Body, nil
}

func (r *rewriter) render(sb *strings.Builder, adds []schema.Addition, indent string) error {
	for _, a := range adds {
		if !schema.IsIdentifier(a.Name) || IsKeyword(a.Name) {
			return pkg.ErrUnrepresentable.With(slog.String("name", a.Name))
		}

		ns, ok := a.Value.(*value.Namespace)
		if !ok {
			lit, err := Literal(a.Value)
			if err != nil {
				return err
			}

			sb.WriteString(indent + a.Name + " = " + lit + r.nl)

			continue
		}

		sb.WriteString(indent + "class " + a.Name + ":" + r.nl)

		if ns.Len() == 0 {
			sb.WriteString(indent + r.unit + "pass" + r.nl)

			continue
		}

		inner := make([]schema.Addition, 0, ns.Len())
		for name, v := range ns.All() {
			inner = append(inner, schema.Addition{Name: name, Value: v})
		}

		if err := r.render(sb, inner, indent+r.unit); err != nil {
			return err
		}
	}

	return nil
}

// Literal returns the dialect spelling of v. It fails with
// [pkg.ErrUnrepresentable] for namespaces, non-finite floats and strings
// that are not valid UTF-8, including any nested in a container.
func Literal(v value.Value) (string, error) {
	if err := representable(v); err != nil {
		return "", err
	}

	return v.String(), nil
}

func representable(v value.Value) error {
	switch x := v.(type) {
	case value.Int:
		return nil

	case value.Float:
		if math.IsInf(float64(x), 0) || math.IsNaN(float64(x)) {
			return pkg.ErrUnrepresentable.With(slog.String("float", x.String()))
		}

	case value.String:
		if !utf8.ValidString(string(x)) {
			return pkg.ErrUnrepresentable.With(slog.String("string", x.String()))
		}

	case *value.Tuple:
		for e := range x.Values() {
			if err := representable(e); err != nil {
				return err
			}
		}

	case *value.List:
		for e := range x.Values() {
			if err := representable(e); err != nil {
				return err
			}
		}

	case *value.Set:
		for e := range x.Values() {
			if err := representable(e); err != nil {
				return err
			}
		}

	case *value.Dict:
		for k, e := range x.All() {
			if err := representable(k); err != nil {
				return err
			}

			if err := representable(e); err != nil {
				return err
			}
		}

	default:
		kind := value.KindInvalid
		if v != nil {
			kind = v.Kind()
		}

		return pkg.ErrUnrepresentable.With(slog.String("kind", kind.String()))
	}

	return nil
}

// detectStyle returns the indentation unit of the first indented block
// and the first line break in mod, or the defaults.
func detectStyle(mod *Module) (unit, nl string) {
	var visit func(stmts []Statement)

	visit = func(stmts []Statement) {
		for _, s := range stmts {
			if unit != "" && nl != "" {
				return
			}

			switch s := s.(type) {
			case *SimpleLine:
				if nl == "" {
					nl = s.Newline.Text
				}

			case *ClassDef:
				switch body := s.Body.(type) {
				case *InlineSuite:
					if nl == "" {
						nl = body.Line.Newline.Text
					}

				case *IndentedBlock:
					if nl == "" {
						nl = body.Newline.Text
					}

					if len(body.Body) == 0 {
						continue
					}

					own := lineIndent(s.Leading)
					inner := lineIndent(body.Body[0].leading())

					if unit == "" && len(inner) > len(own) && strings.HasPrefix(inner, own) {
						unit = inner[len(own):]
					}

					visit(body.Body)
				}
			}
		}
	}

	visit(mod.Body)

	if unit == "" {
		unit = DefaultIndent
	}

	if nl == "" {
		nl = DefaultNewline
	}

	return unit, nl
}

// lineIndent returns the indentation at the end of leading trivia.
func lineIndent(leading string) string {
	i := len(leading)
	for i > 0 && isBlank(leading[i-1]) {
		i--
	}

	return leading[i:]
}

// splitHeader splits leading trivia after its last blank line.
func splitHeader(leading string) (head, rest string) {
	start := 0
	if strings.HasPrefix(leading, bom) {
		start = len(bom)
	}

	cut := start

	for i := start; i < len(leading); {
		j := strings.IndexAny(leading[i:], "\r\n")
		if j < 0 {
			break
		}

		end := i + j + 1
		if leading[i+j] == '\r' && end < len(leading) && leading[end] == '\n' {
			end++
		}

		if strings.Trim(leading[i:i+j], " \t\f") == "" {
			cut = end
		}

		i = end
	}

	return leading[:cut], leading[cut:]
}
