package value

import (
	"log/slog"
	"math"
	"strconv"
	"strings"
)

// hashKey is the identity of a hashable value inside a Set or Dict.
// Numerically equal ints and floats share a key.
type hashKey string

func keyOf(v Value) (hashKey, error) {
	var sb strings.Builder

	if err := writeKey(&sb, v); err != nil {
		return "", err
	}

	return hashKey(sb.String()), nil
}

func writeKey(sb *strings.Builder, v Value) error {
	switch x := v.(type) {
	case Int:
		sb.WriteString("i")
		sb.WriteString(strconv.FormatInt(int64(x), 10))

	case Float:
		f := float64(x)
		if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
			sb.WriteString("i")
			sb.WriteString(strconv.FormatInt(int64(f), 10))
		} else {
			sb.WriteString("f")
			sb.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
		}

	case String:
		sb.WriteString("s")
		sb.WriteString(strconv.Itoa(len(x)))
		sb.WriteByte(':')
		sb.WriteString(string(x))

	case *Tuple:
		sb.WriteString("t")
		sb.WriteString(strconv.Itoa(len(x.elems)))
		sb.WriteByte('(')

		for _, e := range x.elems {
			if err := writeKey(sb, e); err != nil {
				return err
			}

			sb.WriteByte(';')
		}

		sb.WriteByte(')')

	default:
		kind := KindInvalid
		if v != nil {
			kind = v.Kind()
		}

		return ErrUnhashable.With(slog.String("kind", kind.String()))
	}

	return nil
}
