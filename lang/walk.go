package lang

import (
	"context"
	"log/slog"
	"slices"

	"github.com/ardnew/litcfg/pkg"
)

// Visitor receives the bindings of a document in source order.
//
// Path arguments name the enclosing class blocks from the outermost inward
// and are only valid for the duration of the call.
type Visitor interface {
	// Assign is called for every assignment statement.
	Assign(path []string, a *Assign) error

	// EnterClass is called before the body of a block is walked. The path
	// ends with the block's own name.
	EnterClass(path []string, c *ClassDef) error

	// LeaveClass is called after the body of a block has been walked, with
	// c reflecting any replacements made inside it. A non-nil result
	// replaces c in the tree.
	LeaveClass(path []string, c *ClassDef) (*ClassDef, error)

	// LeaveModule is called last. A non-nil result replaces m.
	LeaveModule(m *Module) (*Module, error)
}

// BaseVisitor implements [Visitor] with methods that do nothing.
type BaseVisitor struct{}

func (BaseVisitor) Assign([]string, *Assign) error                    { return nil }
func (BaseVisitor) EnterClass([]string, *ClassDef) error              { return nil }
func (BaseVisitor) LeaveClass([]string, *ClassDef) (*ClassDef, error) { return nil, nil }
func (BaseVisitor) LeaveModule(*Module) (*Module, error)              { return nil, nil }

// Walk traverses m depth first, calling v for each binding, and returns
// the resulting module. Unchanged subtrees are shared with m.
//
// Walk rejects statements that cannot appear in a configuration document:
// imports fail with [ErrImport], classes with bases and any statement other
// than an assignment, pass or a bare string fail with
// [ErrUnsupportedStatement], and blocks nested deeper than the configured
// maximum fail with [pkg.ErrTooDeep].
func Walk(ctx context.Context, m *Module, v Visitor, opts ...Option) (*Module, error) {
	cfg := makeConfig(opts...)
	w := &walker{ctx: ctx, v: v, cfg: cfg}

	body, changed, err := w.body(m.Body)
	if err != nil {
		return nil, err
	}

	if changed {
		c := *m
		c.Body = body
		m = &c
	}

	r, err := v.LeaveModule(m)
	if err != nil {
		return nil, err
	}

	if r != nil {
		return r, nil
	}

	return m, nil
}

type walker struct {
	ctx  context.Context
	v    Visitor
	cfg  config
	path []string
}

// body walks a statement list. The returned slice is a copy if any
// statement was replaced.
func (w *walker) body(stmts []Statement) ([]Statement, bool, error) {
	out := stmts
	changed := false

	for i, s := range stmts {
		r, err := w.statement(s)
		if err != nil {
			return nil, false, err
		}

		if r == s {
			continue
		}

		if !changed {
			out = slices.Clone(stmts)
			changed = true
		}

		out[i] = r
	}

	return out, changed, nil
}

func (w *walker) statement(s Statement) (Statement, error) {
	switch n := s.(type) {
	case *SimpleLine:
		return n, w.line(n)

	case *ClassDef:
		return w.class(n)
	}

	return s, nil
}

func (w *walker) line(l *SimpleLine) error {
	for _, st := range l.Stmts {
		switch n := st.(type) {
		case *Assign:
			if err := w.v.Assign(w.path, n); err != nil {
				return err
			}

		case *Pass:

		case *Import:
			return ErrImport.At(n.Pos())

		case *ExprStmt:
			if !isDocstring(n.X) {
				return ErrUnsupportedStatement.At(n.Pos()).
					With(slog.String("statement", "expression"))
			}

		case *AugAssign:
			return ErrUnsupportedStatement.At(n.Pos()).
				With(slog.String("statement", "augmented assignment"))

		case *AnnAssign:
			return ErrUnsupportedStatement.At(n.Pos()).
				With(slog.String("statement", "annotated assignment"))

		case *KeywordStmt:
			return ErrUnsupportedStatement.At(n.Pos()).
				With(slog.String("statement", n.Keyword()))
		}
	}

	return nil
}

func isDocstring(x Expr) bool {
	switch x.(type) {
	case *StringLit, *ConcatString:
		return true
	}

	return false
}

func (w *walker) class(c *ClassDef) (Statement, error) {
	if c.Lpar != nil {
		return nil, ErrUnsupportedStatement.At(c.Pos()).
			With(slog.String("statement", "class with bases"))
	}

	if len(w.path) >= w.cfg.maxDepth {
		return nil, pkg.ErrTooDeep.At(c.Pos()).
			With(slog.Int("max", w.cfg.maxDepth))
	}

	w.path = append(w.path, c.Name.Text)
	defer func() { w.path = w.path[:len(w.path)-1] }()

	w.cfg.logger.TraceContext(w.ctx, "enter class",
		slog.Any("path", w.path))

	if err := w.v.EnterClass(w.path, c); err != nil {
		return nil, err
	}

	updated := c

	switch body := c.Body.(type) {
	case *InlineSuite:
		if err := w.line(body.Line); err != nil {
			return nil, err
		}

	case *IndentedBlock:
		stmts, changed, err := w.body(body.Body)
		if err != nil {
			return nil, err
		}

		if changed {
			b := *body
			b.Body = stmts

			d := *c
			d.Body = &b
			updated = &d
		}
	}

	r, err := w.v.LeaveClass(w.path, updated)
	if err != nil {
		return nil, err
	}

	if r != nil {
		return r, nil
	}

	return updated, nil
}
