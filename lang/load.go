package lang

import (
	"context"
	"log/slog"

	"github.com/ardnew/litcfg/value"
)

// Load parses src and evaluates it into a namespace tree.
//
// Each "name = literal" binds name in the enclosing block's namespace, and
// each "class Name:" binds Name to a nested namespace before its body is
// evaluated. A later binding of a name replaces an earlier one.
func Load(ctx context.Context, src string, opts ...Option) (*value.Namespace, error) {
	mod, err := Parse(ctx, src, opts...)
	if err != nil {
		return nil, err
	}

	return LoadModule(ctx, mod, opts...)
}

// LoadModule evaluates a parsed document into a namespace tree.
func LoadModule(ctx context.Context, mod *Module, opts ...Option) (*value.Namespace, error) {
	l := newLoader()

	if _, err := Walk(ctx, mod, l, opts...); err != nil {
		return nil, err
	}

	ns := l.root.Build()

	makeConfig(opts...).logger.TraceContext(ctx, "load complete",
		slog.Int("binding_count", ns.Len()))

	return ns, nil
}

// loader builds namespaces while a document is walked.
type loader struct {
	BaseVisitor

	root  *value.NamespaceBuilder
	stack []*value.NamespaceBuilder
}

func newLoader() *loader {
	root := value.NewNamespaceBuilder()

	return &loader{root: root, stack: []*value.NamespaceBuilder{root}}
}

func (l *loader) current() *value.NamespaceBuilder {
	return l.stack[len(l.stack)-1]
}

func (l *loader) Assign(_ []string, a *Assign) error {
	names, err := targetNames(a)
	if err != nil {
		return err
	}

	v, err := Eval(a.Value)
	if err != nil {
		return err
	}

	for _, name := range names {
		l.current().Set(name, v)
	}

	return nil
}

func (l *loader) EnterClass(_ []string, c *ClassDef) error {
	l.stack = append(l.stack, l.current().Block(c.Name.Text))

	return nil
}

func (l *loader) LeaveClass([]string, *ClassDef) (*ClassDef, error) {
	l.stack = l.stack[:len(l.stack)-1]

	return nil, nil
}

// targetNames returns the names bound by a, which must all be plain names.
func targetNames(a *Assign) ([]string, error) {
	names := make([]string, 0, len(a.Targets))

	for _, t := range a.Targets {
		name, ok := t.Target.(*Name)
		if !ok || IsKeyword(name.Tok.Text) {
			return nil, ErrMultipleTargets.At(t.Target.Pos())
		}

		names = append(names, name.Tok.Text)
	}

	return names, nil
}
