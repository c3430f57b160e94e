package lang

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ardnew/litcfg/pkg"
)

const bom = "\ufeff"

// lexer splits source text into tokens without discarding a single byte.
type lexer struct {
	src  string
	pos  int
	line int
	col  int

	// trivia accumulates skipped bytes until the next token claims them.
	trivia strings.Builder

	indents     []string // open indentation levels; indents[0] is the base
	depth       int      // bracket nesting
	lineStart   bool
	lineHasCode bool // a token was emitted since the last NEWLINE

	tokens []Token
}

// tokenize returns the tokens of src. Lines at the top level must be
// indented by exactly base; deeper lines open blocks.
func tokenize(src, base string) ([]Token, error) {
	if !utf8.ValidString(src) {
		return nil, syntaxError(src, invalidUTF8(src))
	}

	lx := &lexer{
		src:       src,
		line:      1,
		col:       1,
		indents:   []string{base},
		lineStart: true,
	}

	if err := lx.run(); err != nil {
		var pe *pkg.Error
		if errors.As(err, &pe) {
			return nil, syntaxError(src, pe)
		}

		return nil, err
	}

	return lx.tokens, nil
}

func invalidUTF8(src string) *pkg.Error {
	line, col := 1, 1

	for i := 0; i < len(src); {
		r, size := utf8.DecodeRuneInString(src[i:])
		if r == utf8.RuneError && size == 1 {
			break
		}

		if r == '\n' {
			line, col = line+1, 1
		} else {
			col++
		}

		i += size
	}

	return pkg.ErrSyntax.
		At(pkg.Position{Line: line, Column: col}).
		Wrap(errors.New("invalid UTF-8"))
}

func (lx *lexer) run() error {
	if strings.HasPrefix(lx.src, bom) {
		lx.trivia.WriteString(bom)
		lx.pos += len(bom)
	}

	for {
		if lx.lineStart && lx.depth == 0 {
			done, err := lx.startLine()
			if err != nil {
				return err
			}

			if done {
				break
			}

			continue
		}

		if lx.eof() {
			break
		}

		if err := lx.next(); err != nil {
			return err
		}
	}

	return lx.finish()
}

// startLine consumes blank lines and comment lines, then measures the
// indentation of the next logical line. It reports true at end of input.
func (lx *lexer) startLine() (bool, error) {
	for {
		ws := lx.spanWhile(isBlank)
		n := len(ws)

		switch next := lx.peekAt(n); {
		case lx.pos+n >= len(lx.src):
			lx.skip(n)

			return true, nil

		case next == '#':
			lx.skip(n)
			lx.skipComment()

			if lx.eof() {
				return true, nil
			}

			lx.skipNewline()

			continue

		case isNewline(next):
			lx.skip(n)
			lx.skipNewline()

			continue

		case next == '\\':
			lx.skip(n)

			return false, lx.errorf(pkg.ErrSyntax, "unexpected line continuation")
		}

		pos := lx.position()
		if err := lx.indent(ws, pos); err != nil {
			return false, err
		}

		lx.skip(len(ws))
		lx.lineStart = false

		return false, nil
	}
}

// indent compares ws with the open indentation levels and emits INDENT or
// DEDENT tokens as needed.
func (lx *lexer) indent(ws string, pos pkg.Position) error {
	top := lx.indents[len(lx.indents)-1]

	switch {
	case ws == top:
		return nil

	case strings.HasPrefix(ws, top):
		lx.indents = append(lx.indents, ws)
		lx.emitZero(INDENT, pos)

		return nil
	}

	for len(lx.indents) > 1 && lx.indents[len(lx.indents)-1] != ws {
		top = lx.indents[len(lx.indents)-1]
		if !strings.HasPrefix(top, ws) {
			break
		}

		lx.indents = lx.indents[:len(lx.indents)-1]
		lx.emitZero(DEDENT, pos)
	}

	if lx.indents[len(lx.indents)-1] != ws {
		return ErrIndentation.At(pos).
			Wrap(errors.New("unindent does not match any outer level"))
	}

	return nil
}

// next scans one token, or one run of trivia, inside a logical line.
func (lx *lexer) next() error {
	c := lx.peek()

	switch {
	case isBlank(c):
		lx.skip(len(lx.spanWhile(isBlank)))

	case c == '#':
		lx.skipComment()

	case c == '\\':
		if !isNewline(lx.peekAt(1)) {
			return lx.errorf(pkg.ErrSyntax, "unexpected character after line continuation")
		}

		lx.skip(1)
		lx.skipNewline()

	case isNewline(c):
		if lx.depth > 0 {
			lx.skipNewline()

			return nil
		}

		start, pos := lx.pos, lx.position()
		lx.advanceNewline()
		lx.emit(NEWLINE, lx.src[start:lx.pos], pos)
		lx.lineStart = true
		lx.lineHasCode = false

	case isDigit(c) || (c == '.' && isDigit(lx.peekAt(1))):
		return lx.number()

	case c == '\'' || c == '"':
		return lx.stringLit(lx.pos)

	case isIdentStart(lx.peekRune()):
		return lx.name()

	default:
		return lx.operator()
	}

	return nil
}

func (lx *lexer) finish() error {
	if lx.lineHasCode {
		lx.emit(NEWLINE, "", lx.position())
		lx.lineHasCode = false
	}

	pos := lx.position()

	for len(lx.indents) > 1 {
		lx.indents = lx.indents[:len(lx.indents)-1]
		lx.emitZero(DEDENT, pos)
	}

	lx.emit(EOF, "", pos)

	return nil
}

func (lx *lexer) name() error {
	start, pos := lx.pos, lx.position()

	for !lx.eof() && isIdentContinue(lx.peekRune()) {
		lx.advanceRune()
	}

	text := lx.src[start:lx.pos]
	if (lx.peek() == '\'' || lx.peek() == '"') && isStringPrefix(text) {
		return lx.stringLit(start)
	}

	lx.emit(NAME, text, pos)

	return nil
}

// stringLit scans a string literal whose prefix, if any, begins at start.
func (lx *lexer) stringLit(start int) error {
	pos := lx.positionAt(start)
	quote := lx.peek()

	delim := string(quote)
	if strings.HasPrefix(lx.src[lx.pos:], strings.Repeat(delim, 3)) {
		delim = strings.Repeat(delim, 3)
	}

	lx.advanceN(len(delim))

	for {
		if lx.eof() {
			return ErrInvalidString.At(pos).
				Wrap(errors.New("unterminated string literal"))
		}

		c := lx.peek()

		switch {
		case strings.HasPrefix(lx.src[lx.pos:], delim):
			lx.advanceN(len(delim))
			lx.emit(STRING, lx.src[start:lx.pos], pos)

			return nil

		case c == '\\':
			lx.advanceRune()

			if lx.eof() {
				continue
			}

			if isNewline(lx.peek()) {
				lx.advanceNewline()
			} else {
				lx.advanceRune()
			}

		case isNewline(c):
			if len(delim) == 1 {
				return ErrInvalidString.At(pos).
					Wrap(errors.New("unterminated string literal"))
			}

			lx.advanceNewline()

		default:
			lx.advanceRune()
		}
	}
}

// number scans a numeric literal and checks its shape. Values are
// decoded later by the evaluator.
func (lx *lexer) number() error {
	start, pos := lx.pos, lx.position()

	bad := func(reason string) error {
		return ErrInvalidNumber.At(pos).Wrap(errors.New(reason))
	}

	if lx.peek() == '0' && strings.ContainsRune("xXoObB", rune(lx.peekAt(1))) {
		var valid func(byte) bool

		switch lx.peekAt(1) {
		case 'x', 'X':
			valid = isHexDigit
		case 'o', 'O':
			valid = func(c byte) bool { return c >= '0' && c <= '7' }
		default:
			valid = func(c byte) bool { return c == '0' || c == '1' }
		}

		lx.advanceN(2)

		if !lx.digits(valid, true) {
			return bad("invalid digits")
		}
	} else {
		if lx.peek() != '.' && !lx.digits(isDigit, false) {
			return bad("invalid digits")
		}

		intPart := lx.src[start:lx.pos]

		isFloat := false

		if lx.peek() == '.' {
			isFloat = true

			lx.advanceN(1)

			if isDigit(lx.peek()) && !lx.digits(isDigit, false) {
				return bad("invalid digits")
			}
		}

		if c := lx.peek(); c == 'e' || c == 'E' {
			isFloat = true

			lx.advanceN(1)

			if c := lx.peek(); c == '+' || c == '-' {
				lx.advanceN(1)
			}

			if !lx.digits(isDigit, false) {
				return bad("invalid exponent")
			}
		}

		imaginary := false
		if c := lx.peek(); c == 'j' || c == 'J' {
			imaginary = true

			lx.advanceN(1)
		}

		if !isFloat && !imaginary && hasLeadingZero(intPart) {
			return bad("leading zeros in decimal integer literals are not permitted")
		}
	}

	if !lx.eof() && isIdentContinue(lx.peekRune()) {
		return bad("invalid decimal literal")
	}

	lx.emit(NUMBER, lx.src[start:lx.pos], pos)

	return nil
}

// digits consumes a run of digits accepted by valid, allowing single
// underscores between digits. If leadingUnderscore is set, the run may
// begin with one underscore, as after a base prefix.
func (lx *lexer) digits(valid func(byte) bool, leadingUnderscore bool) bool {
	n := 0
	underscore := false

	if leadingUnderscore && lx.peek() == '_' {
		lx.advanceN(1)

		underscore = true
	}

	for !lx.eof() {
		c := lx.peek()

		switch {
		case valid(c):
			n++
			underscore = false

		case c == '_':
			if underscore || n == 0 {
				return false
			}

			underscore = true

		case isDigit(c):
			return false

		default:
			return n > 0 && !underscore
		}

		lx.advanceN(1)
	}

	return n > 0 && !underscore
}

func hasLeadingZero(s string) bool {
	s = strings.ReplaceAll(s, "_", "")

	return len(s) > 1 && s[0] == '0' && strings.Trim(s, "0") != ""
}

func (lx *lexer) operator() error {
	rest := lx.src[lx.pos:]

	for _, op := range operators {
		if !strings.HasPrefix(rest, op) {
			continue
		}

		pos := lx.position()
		lx.advanceN(len(op))
		lx.emit(OP, op, pos)

		switch op {
		case "(", "[", "{":
			lx.depth++
		case ")", "]", "}":
			lx.depth = max(0, lx.depth-1)
		}

		return nil
	}

	return lx.errorf(pkg.ErrSyntax, "invalid character "+quoteShort(string(lx.peekRune())))
}

func (lx *lexer) emit(kind TokenKind, text string, pos pkg.Position) {
	lx.tokens = append(lx.tokens, Token{
		Kind:    kind,
		Leading: lx.trivia.String(),
		Text:    text,
		Pos:     pos,
	})
	lx.trivia.Reset()

	if kind != NEWLINE && kind != EOF {
		lx.lineHasCode = true
	}
}

// emitZero emits a zero-width token that leaves pending trivia in place.
func (lx *lexer) emitZero(kind TokenKind, pos pkg.Position) {
	lx.tokens = append(lx.tokens, Token{Kind: kind, Pos: pos})
}

func (lx *lexer) errorf(kind *pkg.Error, reason string) *pkg.Error {
	return kind.At(lx.position()).Wrap(errors.New(reason))
}

func (lx *lexer) skipComment() {
	start := lx.pos

	for !lx.eof() && !isNewline(lx.peek()) {
		lx.advanceRune()
	}

	lx.trivia.WriteString(lx.src[start:lx.pos])
}

func (lx *lexer) skipNewline() {
	start := lx.pos
	lx.advanceNewline()
	lx.trivia.WriteString(lx.src[start:lx.pos])
}

// skip moves n bytes of the current line into trivia.
func (lx *lexer) skip(n int) {
	lx.trivia.WriteString(lx.src[lx.pos : lx.pos+n])
	lx.advanceN(n)
}

func (lx *lexer) spanWhile(pred func(byte) bool) string {
	i := lx.pos
	for i < len(lx.src) && pred(lx.src[i]) {
		i++
	}

	return lx.src[lx.pos:i]
}

func (lx *lexer) eof() bool { return lx.pos >= len(lx.src) }

func (lx *lexer) peek() byte { return lx.peekAt(0) }

func (lx *lexer) peekAt(n int) byte {
	if lx.pos+n >= len(lx.src) {
		return 0
	}

	return lx.src[lx.pos+n]
}

func (lx *lexer) peekRune() rune {
	r, _ := utf8.DecodeRuneInString(lx.src[lx.pos:])

	return r
}

// advanceN moves past n bytes that contain no line break.
func (lx *lexer) advanceN(n int) {
	for end := lx.pos + n; lx.pos < end; {
		lx.advanceRune()
	}
}

func (lx *lexer) advanceRune() {
	_, size := utf8.DecodeRuneInString(lx.src[lx.pos:])
	lx.pos += size
	lx.col++
}

func (lx *lexer) advanceNewline() {
	if lx.peek() == '\r' && lx.peekAt(1) == '\n' {
		lx.pos++
	}

	lx.pos++
	lx.line++
	lx.col = 1
}

func (lx *lexer) position() pkg.Position {
	return pkg.Position{Line: lx.line, Column: lx.col}
}

// positionAt returns the position of byte offset i on the current line.
func (lx *lexer) positionAt(i int) pkg.Position {
	return pkg.Position{
		Line:   lx.line,
		Column: lx.col - utf8.RuneCountInString(lx.src[i:lx.pos]),
	}
}

func isBlank(c byte) bool   { return c == ' ' || c == '\t' || c == '\f' }
func isNewline(c byte) bool { return c == '\n' || c == '\r' }
func isDigit(c byte) bool   { return c >= '0' && c <= '9' }

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r) ||
		unicode.In(r, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc)
}

func isStringPrefix(s string) bool {
	switch strings.ToLower(s) {
	case "r", "u", "b", "f", "br", "rb", "fr", "rf", "t", "tr", "rt":
		return true
	}

	return false
}
