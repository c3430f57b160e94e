package lang

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ardnew/litcfg/pkg"
)

// decodeInt returns the value of an integer literal, negated if neg.
func decodeInt(text string, neg bool) (int64, error) {
	s := strings.ReplaceAll(text, "_", "")
	base := 10

	if len(s) > 1 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X':
			base, s = 16, s[2:]
		case 'o', 'O':
			base, s = 8, s[2:]
		case 'b', 'B':
			base, s = 2, s[2:]
		}
	}

	u, err := strconv.ParseUint(s, base, 64)
	if err != nil {
		return 0, errors.New("integer literal out of range")
	}

	switch {
	case neg && u <= 1<<63:
		return int64(-u), nil
	case !neg && u <= math.MaxInt64:
		return int64(u), nil
	}

	return 0, errors.New("integer literal out of range")
}

// decodeFloat returns the value of a float literal. Literals too large for
// a float64 are rejected; tiny ones round to zero.
func decodeFloat(text string) (float64, error) {
	f, err := strconv.ParseFloat(strings.ReplaceAll(text, "_", ""), 64)
	if err != nil && math.IsInf(f, 0) {
		return 0, errors.New("float literal out of range")
	}

	return f, nil
}

// decodeString returns the value of a string literal token, prefix and
// quotes included. Bytes and formatted strings have no value.
func decodeString(text string) (string, *pkg.Error) {
	q := strings.IndexAny(text, `'"`)
	prefix := strings.ToLower(text[:q])

	switch {
	case strings.ContainsRune(prefix, 'b'):
		return "", ErrUnsupportedExpression.Wrap(errors.New("bytes literal"))
	case strings.ContainsAny(prefix, "ft"):
		return "", ErrUnsupportedExpression.Wrap(errors.New("formatted string literal"))
	}

	body := text[q:]

	delim := 1
	if len(body) >= 6 && body[:3] == body[len(body)-3:] && (body[:3] == `'''` || body[:3] == `"""`) {
		delim = 3
	}

	body = normalizeNewlines(body[delim : len(body)-delim])

	if strings.ContainsRune(prefix, 'r') {
		return body, nil
	}

	s, err := unescape(body)
	if err != nil {
		return "", ErrInvalidString.Wrap(err)
	}

	return s, nil
}

func normalizeNewlines(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}

	return strings.ReplaceAll(strings.ReplaceAll(s, "\r\n", "\n"), "\r", "\n")
}

func unescape(s string) (string, error) {
	if !strings.ContainsRune(s, '\\') {
		return s, nil
	}

	var sb strings.Builder

	sb.Grow(len(s))

	for i := 0; i < len(s); {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			sb.WriteByte(c)
			i++

			continue
		}

		e := s[i+1]
		i += 2

		switch e {
		case '\n':
		case '\\', '\'', '"':
			sb.WriteByte(e)
		case 'a':
			sb.WriteByte('\a')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'v':
			sb.WriteByte('\v')

		case '0', '1', '2', '3', '4', '5', '6', '7':
			n := 1
			for n < 3 && i+n-1 < len(s) && s[i+n-1] >= '0' && s[i+n-1] <= '7' {
				n++
			}

			v, _ := strconv.ParseUint(s[i-1:i-1+n], 8, 32)
			sb.WriteRune(rune(v))

			i += n - 1

		case 'x', 'u', 'U':
			width := map[byte]int{'x': 2, 'u': 4, 'U': 8}[e]
			if i+width > len(s) {
				return "", errors.New(`truncated \` + string(e) + " escape")
			}

			v, err := strconv.ParseUint(s[i:i+width], 16, 32)
			if err != nil {
				return "", errors.New(`invalid \` + string(e) + " escape")
			}

			r := rune(v)
			if !utf8.ValidRune(r) {
				return "", errors.New("escape is not a valid code point")
			}

			sb.WriteRune(r)

			i += width

		case 'N':
			return "", errors.New(`named escapes (\N{...}) are not supported`)

		default:
			sb.WriteByte('\\')
			sb.WriteByte(e)
		}
	}

	return sb.String(), nil
}
