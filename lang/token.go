package lang

import "github.com/ardnew/litcfg/pkg"

// TokenKind classifies a [Token].
type TokenKind int

// Token kinds.
const (
	EOF TokenKind = iota
	NEWLINE
	INDENT
	DEDENT
	NAME
	NUMBER
	STRING
	OP
)

//nolint:gochecknoglobals
var tokenKindNames = [...]string{
	EOF:     "end of input",
	NEWLINE: "newline",
	INDENT:  "indent",
	DEDENT:  "dedent",
	NAME:    "name",
	NUMBER:  "number",
	STRING:  "string",
	OP:      "operator",
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokenKindNames) {
		return "invalid token"
	}

	return tokenKindNames[k]
}

// Token is one lexical element together with the trivia that precedes it.
//
// Leading holds every byte between the previous token and this one:
// whitespace, comments, blank lines, line continuations and any newline
// inside brackets. Concatenating Leading and Text over all tokens of a
// source reproduces it exactly.
//
// INDENT and DEDENT tokens are zero-width. A NEWLINE token's Text is the
// line break it consumed, or empty when the source ends without one.
type Token struct {
	Kind    TokenKind
	Leading string
	Text    string
	Pos     pkg.Position
}

// Is reports whether t is an OP or NAME token spelled s.
func (t Token) Is(s string) bool {
	return (t.Kind == OP || t.Kind == NAME) && t.Text == s
}

func (t Token) describe() string {
	switch t.Kind {
	case NAME, NUMBER, STRING, OP:
		return t.Kind.String() + " " + quoteShort(t.Text)
	}

	return t.Kind.String()
}

func quoteShort(s string) string {
	const limit = 24

	if r := []rune(s); len(r) > limit {
		s = string(r[:limit]) + "..."
	}

	return "'" + s + "'"
}

//nolint:gochecknoglobals
var keywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true,
	"class": true, "continue": true, "def": true, "del": true, "elif": true,
	"else": true, "except": true, "finally": true, "for": true,
	"from": true, "global": true, "if": true, "import": true, "in": true,
	"is": true, "lambda": true, "nonlocal": true, "not": true, "or": true,
	"pass": true, "raise": true, "return": true, "try": true,
	"while": true, "with": true, "yield": true,
}

// IsKeyword reports whether s is reserved and cannot name a field or block.
// True, False and None are reserved as well.
func IsKeyword(s string) bool { return keywords[s] }

// operators are matched longest first.
//
//nolint:gochecknoglobals
var operators = []string{
	"**=", "//=", ">>=", "<<=", "...",
	"->", ":=", "**", "//", "<<", ">>", "<=", ">=", "==", "!=",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "@=",
	"(", ")", "[", "]", "{", "}", ",", ":", ";", ".",
	"+", "-", "*", "/", "%", "&", "|", "^", "~", "<", ">", "=", "@", "!",
}
