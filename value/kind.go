package value

import "strings"

// Kind enumerates the variants of [Value].
type Kind int

const (
	KindInvalid Kind = iota
	KindInt
	KindFloat
	KindString
	KindTuple
	KindList
	KindSet
	KindDict
	KindNamespace
)

//nolint:gochecknoglobals
var kindName = [...]string{
	KindInvalid:   "invalid",
	KindInt:       "int",
	KindFloat:     "float",
	KindString:    "str",
	KindTuple:     "tuple",
	KindList:      "list",
	KindSet:       "set",
	KindDict:      "dict",
	KindNamespace: "namespace",
}

// String returns the dialect's name for the kind, e.g. "int" or "dict".
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindName) {
		return kindName[KindInvalid]
	}

	return kindName[k]
}

// ParseKind returns the Kind named s. Both the dialect names ("str") and
// the long names ("string") are accepted, case-insensitively.
func ParseKind(s string) (Kind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))

	switch s {
	case "string":
		return KindString, true
	case "integer":
		return KindInt, true
	case "block", "class":
		return KindNamespace, true
	}

	for k, name := range kindName {
		if k != int(KindInvalid) && name == s {
			return Kind(k), true
		}
	}

	return KindInvalid, false
}

// IsScalar reports whether values of kind k are int, float or str.
func (k Kind) IsScalar() bool {
	return k == KindInt || k == KindFloat || k == KindString
}

// IsContainer reports whether values of kind k hold other values.
func (k Kind) IsContainer() bool {
	return k >= KindTuple && k <= KindNamespace
}
