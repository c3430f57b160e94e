package lang

import (
	"errors"
	"log/slog"

	"github.com/ardnew/litcfg/pkg"
	"github.com/ardnew/litcfg/value"
)

// Eval computes the value of a literal expression.
//
// Scalars, signed numbers, tuples, lists, sets, dicts with literal keys and
// the empty set spelled set() are literals. Everything else fails with an
// error matching [pkg.ErrUnsupported] that carries the position of the
// offending node.
func Eval(x Expr) (value.Value, error) {
	switch n := x.(type) {
	case *IntLit:
		i, err := decodeInt(n.Tok.Text, false)
		if err != nil {
			return nil, ErrInvalidNumber.At(n.Pos()).Wrap(err)
		}

		return value.Int(i), nil

	case *FloatLit:
		f, err := decodeFloat(n.Tok.Text)
		if err != nil {
			return nil, ErrInvalidNumber.At(n.Pos()).Wrap(err)
		}

		return value.Float(f), nil

	case *StringLit:
		s, err := decodeString(n.Tok.Text)
		if err != nil {
			return nil, err.At(n.Pos())
		}

		return value.String(s), nil

	case *ConcatString:
		var s string

		for _, part := range n.Parts {
			v, err := Eval(part)
			if err != nil {
				return nil, err
			}

			s += string(v.(value.String))
		}

		return value.String(s), nil

	case *UnaryOp:
		return evalSigned(n)

	case *Paren:
		return Eval(n.X)

	case *TupleExpr:
		elems, err := evalElements(n.Elts)
		if err != nil {
			return nil, err
		}

		return value.NewTuple(elems...), nil

	case *ListExpr:
		elems, err := evalElements(n.Elts)
		if err != nil {
			return nil, err
		}

		return value.NewList(elems...), nil

	case *SetExpr:
		elems, err := evalElements(n.Elts)
		if err != nil {
			return nil, err
		}

		s, err := value.NewSet(elems...)
		if err != nil {
			return nil, at(err, n.Pos())
		}

		return s, nil

	case *DictExpr:
		return evalDict(n)

	case *Call:
		if isEmptySetCall(n) {
			return value.MustSet(), nil
		}

	case *Name:
		return nil, ErrVariableReference.At(n.Pos()).
			With(slog.String("name", n.Tok.Text))
	}

	return nil, unsupported(x)
}

// evalSigned evaluates a sign applied to a number. The operand of unary
// minus on an integer literal is decoded with the sign so that the most
// negative int64 is reachable.
func evalSigned(n *UnaryOp) (value.Value, error) {
	if !n.Op.Is("+") && !n.Op.Is("-") || !isNumeric(n.X) {
		return nil, unsupported(n)
	}

	neg := n.Op.Is("-")

	if lit, ok := unparen(n.X).(*IntLit); ok {
		i, err := decodeInt(lit.Tok.Text, neg)
		if err != nil {
			return nil, ErrInvalidNumber.At(n.Pos()).Wrap(err)
		}

		return value.Int(i), nil
	}

	v, err := Eval(n.X)
	if err != nil || !neg {
		return v, err
	}

	switch x := v.(type) {
	case value.Int:
		if x == -x && x != 0 {
			return nil, ErrInvalidNumber.At(n.Pos()).
				Wrap(errors.New("integer literal out of range"))
		}

		return -x, nil

	case value.Float:
		return -x, nil
	}

	return nil, unsupported(n)
}

// isNumeric reports whether x is a number literal, possibly signed.
func isNumeric(x Expr) bool {
	switch n := x.(type) {
	case *IntLit, *FloatLit:
		return true
	case *UnaryOp:
		return (n.Op.Is("+") || n.Op.Is("-")) && isNumeric(n.X)
	case *Paren:
		return isNumeric(n.X)
	}

	return false
}

// unparen returns x with any enclosing parentheses removed.
func unparen(x Expr) Expr {
	for {
		p, ok := x.(*Paren)
		if !ok {
			return x
		}

		x = p.X
	}
}

// isLiteralKey reports whether x may be used as a dict key.
func isLiteralKey(x Expr) bool {
	switch n := x.(type) {
	case *IntLit, *FloatLit, *ImagLit, *StringLit, *ConcatString:
		return true
	case *UnaryOp:
		return isNumeric(n)
	case *Paren:
		return isLiteralKey(n.X)
	}

	return false
}

func isEmptySetCall(c *Call) bool {
	name, ok := c.Func.(*Name)

	return ok && name.Tok.Text == "set" && len(c.Args) == 0
}

func evalElements(elts []*Element) ([]value.Value, error) {
	out := make([]value.Value, 0, len(elts))

	for _, el := range elts {
		if el.Star != nil {
			return nil, ErrUnpacking.At(el.Star.Pos)
		}

		v, err := Eval(el.Value)
		if err != nil {
			return nil, err
		}

		out = append(out, v)
	}

	return out, nil
}

func evalDict(n *DictExpr) (value.Value, error) {
	entries := make([]value.Entry, 0, len(n.Entries))

	for _, e := range n.Entries {
		if e.StarStar != nil {
			return nil, ErrUnpacking.At(e.StarStar.Pos)
		}

		if !isLiteralKey(e.Key) {
			return nil, ErrNonLiteralKey.At(e.Key.Pos())
		}

		k, err := Eval(e.Key)
		if err != nil {
			return nil, err
		}

		v, err := Eval(e.Value)
		if err != nil {
			return nil, err
		}

		entries = append(entries, value.Entry{Key: k, Value: v})
	}

	d, err := value.NewDict(entries...)
	if err != nil {
		return nil, at(err, n.Pos())
	}

	return d, nil
}

func unsupported(x Expr) error {
	return ErrUnsupportedExpression.At(x.Pos()).Wrap(errors.New(describe(x)))
}

// describe names the kind of expression x for error messages.
func describe(x Expr) string {
	switch n := x.(type) {
	case *ImagLit:
		return "imaginary number"
	case *Ellipsis:
		return "ellipsis"
	case *UnaryOp:
		return "unary operator '" + n.Op.Text + "'"
	case *BinaryOp:
		op := n.Op.Text
		if n.Op2 != nil {
			op += " " + n.Op2.Text
		}

		return "binary operator '" + op + "'"
	case *Ternary:
		return "conditional expression"
	case *Call:
		return "function call"
	case *Attribute:
		return "attribute access"
	case *Subscript:
		return "subscript"
	case *Slice:
		return "slice"
	case *Name:
		return "name '" + n.Tok.Text + "'"
	}

	return "expression"
}

// at attaches pos to err if it is an *pkg.Error without a position.
func at(err error, pos pkg.Position) error {
	var pe *pkg.Error
	if errors.As(err, &pe) && !pe.Position().IsValid() {
		return pe.At(pos)
	}

	return err
}
