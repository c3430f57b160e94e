package value

import (
	"math"
	"testing"
)

func TestFormatFloat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want string
	}{
		{0.2, "0.2"},
		{1, "1.0"},
		{-2.5, "-2.5"},
		{0, "0.0"},
		{math.Copysign(0, -1), "-0.0"},
		{0.0001, "0.0001"},
		{0.00001, "1e-05"},
		{1.5e-7, "1.5e-07"},
		{1e15, "1000000000000000.0"},
		{1e16, "1e+16"},
		{1.5e300, "1.5e+300"},
		{123456789.123, "123456789.123"},
		{math.Inf(1), "inf"},
		{math.Inf(-1), "-inf"},
		{math.NaN(), "nan"},
	}

	for _, tt := range tests {
		if got := FormatFloat(tt.in); got != tt.want {
			t.Errorf("FormatFloat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestQuote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"STRING", `'STRING'`},
		{"", `''`},
		{"it's", `"it's"`},
		{`both ' and "`, `'both \' and "'`},
		{"a\nb\tc\r", `'a\nb\tc\r'`},
		{`back\slash`, `'back\\slash'`},
		{"\x00\x7f", `'\x00\x7f'`},
		{"café", `'café'`},
		{"zero\u200bwidth", `'zero\u200bwidth'`},
	}

	for _, tt := range tests {
		if got := Quote(tt.in); got != tt.want {
			t.Errorf("Quote(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestString_Literals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		v    Value
		want string
	}{
		{Int(-12), "-12"},
		{NewTuple(), "()"},
		{NewTuple(Int(1)), "(1,)"},
		{NewTuple(Int(1), Int(2), Int(3)), "(1, 2, 3)"},
		{NewList(Int(1), NewList(String("x"))), "[1, ['x']]"},
		{MustSet(), "set()"},
		{MustSet(Int(1), Int(2), Int(3)), "{1, 2, 3}"},
		{
			MustDict(
				Entry{Int(123), String("hello")},
				Entry{String("hello"), String("nope")},
			),
			"{123: 'hello', 'hello': 'nope'}",
		},
		{
			NewNamespaceBuilder().Set("a", Int(1)).Build(),
			"namespace(a=1)",
		},
	}

	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("String() = %s, want %s", got, tt.want)
		}
	}
}
