package value

import (
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// FormatFloat spells f the way the dialect writes float literals: the
// shortest digits that round-trip, always containing a '.' or an exponent,
// and switching to exponent form below 1e-4 or from 1e16 upward.
// Non-finite values render as "inf", "-inf" and "nan", which are not
// literals.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	sign := ""
	if math.Signbit(f) {
		sign = "-"
		f = -f
	}

	if f == 0 {
		return sign + "0.0"
	}

	// d.ddddde±XX
	sci := strconv.FormatFloat(f, 'e', -1, 64)
	mant, exp, _ := strings.Cut(sci, "e")

	e, _ := strconv.Atoi(exp)
	if e < -4 || e >= 16 {
		es := strconv.Itoa(abs(e))
		if len(es) < 2 {
			es = "0" + es
		}

		if e < 0 {
			return sign + mant + "e-" + es
		}

		return sign + mant + "e+" + es
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}

	return sign + s
}

func abs(i int) int {
	if i < 0 {
		return -i
	}

	return i
}

// Quote returns s as a dialect string literal. Single quotes are used
// unless s contains a single quote and no double quote. Backslashes, the
// chosen quote, and non-printable characters are escaped.
func Quote(s string) string {
	q := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		q = '"'
	}

	var sb strings.Builder

	sb.Grow(len(s) + 2)
	sb.WriteByte(q)

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])

		switch {
		case r == utf8.RuneError && size == 1:
			sb.WriteString(`\x`)
			sb.WriteString(hex(uint64(s[i]), 2))

		case r == rune(q) || r == '\\':
			sb.WriteByte('\\')
			sb.WriteRune(r)

		case r == '\n':
			sb.WriteString(`\n`)

		case r == '\r':
			sb.WriteString(`\r`)

		case r == '\t':
			sb.WriteString(`\t`)

		case unicode.IsPrint(r):
			sb.WriteRune(r)

		case r < 0x100:
			sb.WriteString(`\x`)
			sb.WriteString(hex(uint64(r), 2))

		case r < 0x10000:
			sb.WriteString(`\u`)
			sb.WriteString(hex(uint64(r), 4))

		default:
			sb.WriteString(`\U`)
			sb.WriteString(hex(uint64(r), 8))
		}

		i += size
	}

	sb.WriteByte(q)

	return sb.String()
}

func hex(v uint64, width int) string {
	s := strconv.FormatUint(v, 16)

	return strings.Repeat("0", max(0, width-len(s))) + s
}
