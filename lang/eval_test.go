package lang

import (
	"errors"
	"math"
	"testing"

	"github.com/ardnew/litcfg/pkg"
	"github.com/ardnew/litcfg/value"
)

// parseExpr parses src as a single expression statement.
func parseExpr(t *testing.T, src string) Expr {
	t.Helper()

	mod, err := Parse(t.Context(), src)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", src, err)
	}

	line, ok := mod.Body[0].(*SimpleLine)
	if !ok {
		t.Fatalf("Parse(%q) = %T, want *SimpleLine", src, mod.Body[0])
	}

	stmt, ok := line.Stmts[0].(*ExprStmt)
	if !ok {
		t.Fatalf("Parse(%q) = %T, want *ExprStmt", src, line.Stmts[0])
	}

	return stmt.X
}

func TestEval_Literals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  value.Value
	}{
		{"int", "42", value.Int(42)},
		{"int underscores", "1_000_000", value.Int(1000000)},
		{"hex", "0xFF", value.Int(255)},
		{"octal", "0o17", value.Int(15)},
		{"binary", "0b_1010", value.Int(10)},
		{"negative", "-7", value.Int(-7)},
		{"positive", "+7", value.Int(7)},
		{"double negative", "--7", value.Int(7)},
		{"min int", "-9223372036854775808", value.Int(math.MinInt64)},
		{"max int", "9223372036854775807", value.Int(math.MaxInt64)},
		{"parenthesized negative", "-(5)", value.Int(-5)},
		{"nested parentheses", "-((5))", value.Int(-5)},
		{"negated parenthesized negative", "-(-5)", value.Int(5)},
		{"parenthesized min int", "-(9223372036854775808)", value.Int(math.MinInt64)},
		{"parenthesized float", "+(1.5)", value.Float(1.5)},
		{"float", "1.5", value.Float(1.5)},
		{"float exponent", "2e3", value.Float(2000)},
		{"float leading dot", ".25", value.Float(0.25)},
		{"float trailing dot", "3.", value.Float(3)},
		{"negative float", "-0.5", value.Float(-0.5)},
		{"float underflow", "1e-400", value.Float(0)},
		{"string", "'hello'", value.String("hello")},
		{"double quoted", `"it's"`, value.String("it's")},
		{"escapes", `'a\tb\n\x41é\101'`, value.String("a\tb\nAéA")},
		{"unknown escape kept", `'\d'`, value.String(`\d`)},
		{"raw string", `r'\d+\n'`, value.String(`\d+\n`)},
		{"unicode prefix", `u'x'`, value.String("x")},
		{"triple quoted", "'''a\nb'''", value.String("a\nb")},
		{"escaped newline", "'a\\\nb'", value.String("ab")},
		{"concatenated", `'a' "b" r'\c'`, value.String(`ab\c`)},
		{"empty tuple", "()", value.NewTuple()},
		{"single tuple", "(1,)", value.NewTuple(value.Int(1))},
		{"bare tuple", "1, 'a'", value.NewTuple(value.Int(1), value.String("a"))},
		{"parenthesized", "(1)", value.Int(1)},
		{"list", "[1, [2, 3],]", value.NewList(
			value.Int(1), value.NewList(value.Int(2), value.Int(3)))},
		{"set", "{1, 2, 2}", value.MustSet(value.Int(1), value.Int(2))},
		{"empty set", "set()", value.MustSet()},
		{"empty dict", "{}", value.MustDict()},
		{
			"dict",
			"{123: 'hello', 'hello': 'nope', -1.5: ()}",
			value.MustDict(
				value.Entry{Key: value.Int(123), Value: value.String("hello")},
				value.Entry{Key: value.String("hello"), Value: value.String("nope")},
				value.Entry{Key: value.Float(-1.5), Value: value.NewTuple()},
			),
		},
		{
			"dict last key wins",
			"{'a': 1, 'a': 2}",
			value.MustDict(value.Entry{Key: value.String("a"), Value: value.Int(2)}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Eval(parseExpr(t, tt.input))
			if err != nil {
				t.Fatalf("Eval(%s) error = %v", tt.input, err)
			}

			if got.Kind() != tt.want.Kind() || !value.Equal(got, tt.want) {
				t.Errorf("Eval(%s) = %v (%v), want %v (%v)",
					tt.input, got, got.Kind(), tt.want, tt.want.Kind())
			}
		})
	}
}

func TestEval_Rejected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		kind   error
		column int
	}{
		{"variable", "x", ErrVariableReference, 1},
		{"true", "True", ErrVariableReference, 1},
		{"none", "None", ErrVariableReference, 1},
		{"variable in list", "[1, x]", ErrVariableReference, 5},
		{"starred element", "[1, *x]", ErrUnpacking, 5},
		{"dict unpacking", "{'a': 1, **x}", ErrUnpacking, 10},
		{"name key", "{x: 1}", ErrNonLiteralKey, 2},
		{"tuple key", "{(1, 2): 1}", ErrNonLiteralKey, 2},
		{"variable value", "{'a': x}", ErrVariableReference, 7},
		{"binary operator", "1 + 2", ErrUnsupportedExpression, 1},
		{"comparison", "1 < 2", ErrUnsupportedExpression, 1},
		{"boolean operator", "1 and 2", ErrUnsupportedExpression, 1},
		{"negated string", "-'a'", ErrUnsupportedExpression, 1},
		{"negated parenthesized string", "-('a')", ErrUnsupportedExpression, 1},
		{"invert", "~1", ErrUnsupportedExpression, 1},
		{"not", "not 1", ErrUnsupportedExpression, 1},
		{"call", "f(1)", ErrUnsupportedExpression, 1},
		{"set with argument", "set([1])", ErrUnsupportedExpression, 1},
		{"attribute", "a.b", ErrUnsupportedExpression, 1},
		{"subscript", "[1][0]", ErrUnsupportedExpression, 1},
		{"ternary", "1 if 2 else 3", ErrUnsupportedExpression, 1},
		{"ellipsis", "...", ErrUnsupportedExpression, 1},
		{"imaginary", "2j", ErrUnsupportedExpression, 1},
		{"bytes", "b'x'", ErrUnsupportedExpression, 1},
		{"f-string", "f'{x}'", ErrUnsupportedExpression, 1},
		{"unhashable set element", "{[1]}", value.ErrUnhashable, 1},
		{"int overflow", "9223372036854775808", ErrInvalidNumber, 1},
		{"negative overflow", "-9223372036854775809", ErrInvalidNumber, 1},
		{"float overflow", "1e400", ErrInvalidNumber, 1},
		{"bad unicode escape", `'\U00110000'`, ErrInvalidString, 1},
		{"named escape", `'\N{DASH}'`, ErrInvalidString, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Eval(parseExpr(t, tt.input))
			if !errors.Is(err, tt.kind) {
				t.Fatalf("Eval(%s) error = %v, want %v", tt.input, err, tt.kind)
			}

			var pe *pkg.Error
			if !errors.As(err, &pe) {
				t.Fatalf("Eval(%s) error = %T, want *pkg.Error", tt.input, err)
			}

			if pos := pe.Position(); pos.Line != 1 || pos.Column != tt.column {
				t.Errorf("position = %v, want line 1, column %d", pos, tt.column)
			}
		})
	}
}

func TestEval_DescribesConstruct(t *testing.T) {
	t.Parallel()

	_, err := Eval(parseExpr(t, "a.b"))
	if err == nil {
		t.Fatal("Eval() succeeded, want error")
	}

	const want = "unsupported expression (line 1, column 1): attribute access"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
