package lang

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/ardnew/litcfg/pkg"
)

// ParseReader parses a document from an io.Reader.
func ParseReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (*Module, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, pkg.WrapError(err)
	}

	return Parse(ctx, string(data), opts...)
}

// Parse parses src into a lossless concrete syntax tree.
//
// Malformed input fails with a [*SyntaxError]. Compound statements other
// than class blocks, lambdas, comprehensions and assignment expressions
// fail with [ErrUnsupportedStatement] or [ErrUnsupportedExpression].
func Parse(ctx context.Context, src string, opts ...Option) (*Module, error) {
	cfg := makeConfig(opts...)

	mod, err := parseAt(src, "", cfg)
	if err != nil {
		return nil, err
	}

	cfg.logger.TraceContext(ctx, "parse complete",
		slog.Int("statement_count", len(mod.Body)))

	return mod, nil
}

// parseAt parses src whose top-level lines are indented by base.
func parseAt(src, base string, cfg config) (*Module, error) {
	toks, err := tokenize(src, base)
	if err != nil {
		return nil, err
	}

	p := &parser{toks: toks, maxNesting: cfg.maxNesting}

	mod, err := p.parseModule()
	if err != nil {
		var pe *pkg.Error
		if errors.Is(err, pkg.ErrSyntax) && errors.As(err, &pe) {
			return nil, syntaxError(src, pe)
		}

		return nil, err
	}

	return mod, nil
}

// parser holds the parser state.
type parser struct {
	toks       []Token
	i          int
	depth      int
	maxNesting int
}

func (p *parser) parseModule() (*Module, error) {
	mod := new(Module)

	for p.peek().Kind != EOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}

		mod.Body = append(mod.Body, stmt)
	}

	mod.End = p.advance()

	return mod, nil
}

//nolint:gochecknoglobals
var compoundKeywords = map[string]bool{
	"def": true, "if": true, "for": true, "while": true, "with": true,
	"try": true, "async": true,
}

func (p *parser) parseStatement() (Statement, error) {
	tok := p.peek()

	switch {
	case tok.Kind == INDENT:
		return nil, p.fail(tok, "unexpected indent")

	case tok.Kind == DEDENT:
		return nil, p.fail(tok, "unexpected dedent")

	case tok.Kind == NAME && tok.Text == "class":
		return p.parseClass(p.takeLeading())

	case tok.Kind == NAME && compoundKeywords[tok.Text], tok.Is("@"):
		return nil, ErrUnsupportedStatement.At(tok.Pos).
			With(slog.String("statement", tok.Text))
	}

	return p.parseSimpleLine(p.takeLeading())
}

// takeLeading moves the trivia of the next token onto the statement that
// begins with it.
func (p *parser) takeLeading() string {
	l := p.toks[p.i].Leading
	p.toks[p.i].Leading = ""

	return l
}

func (p *parser) parseSimpleLine(leading string) (*SimpleLine, error) {
	line := &SimpleLine{Leading: leading}

	for {
		st, err := p.parseSmallStmt()
		if err != nil {
			return nil, err
		}

		line.Stmts = append(line.Stmts, st)

		if !p.peek().Is(";") {
			break
		}

		line.Semis = append(line.Semis, p.advance())

		if p.peek().Kind == NEWLINE {
			break
		}
	}

	nl, err := p.expectKind(NEWLINE)
	if err != nil {
		return nil, err
	}

	line.Newline = nl

	return line, nil
}

//nolint:gochecknoglobals
var simpleKeywords = map[string]bool{
	"del": true, "global": true, "nonlocal": true, "return": true,
	"raise": true, "assert": true, "break": true, "continue": true,
	"yield": true,
}

func (p *parser) parseSmallStmt() (SmallStmt, error) {
	tok := p.peek()

	if tok.Kind == NAME {
		switch {
		case tok.Text == "pass":
			return &Pass{Tok: p.advance()}, nil

		case tok.Text == "import", tok.Text == "from":
			return &Import{Tokens: p.rawStatement()}, nil

		case simpleKeywords[tok.Text]:
			return &KeywordStmt{Tokens: p.rawStatement()}, nil
		}
	}

	first, err := p.parseStarExprList()
	if err != nil {
		return nil, err
	}

	next := p.peek()

	switch {
	case next.Is("="):
		return p.parseAssign(first)

	case next.Kind == OP && len(next.Text) >= 2 && strings.HasSuffix(next.Text, "=") &&
		!next.Is("==") && !next.Is("<=") && !next.Is(">=") && !next.Is("!="):
		op := p.advance()

		val, err := p.parseStarExprList()
		if err != nil {
			return nil, err
		}

		return &AugAssign{Target: first, Op: op, Value: val}, nil

	case next.Is(":"):
		return p.parseAnnAssign(first)
	}

	return &ExprStmt{X: first}, nil
}

func (p *parser) parseAssign(first Expr) (*Assign, error) {
	a := &Assign{Targets: []AssignTarget{{Target: first, Eq: p.advance()}}}

	for {
		val, err := p.parseStarExprList()
		if err != nil {
			return nil, err
		}

		if !p.peek().Is("=") {
			a.Value = val

			return a, nil
		}

		a.Targets = append(a.Targets, AssignTarget{Target: val, Eq: p.advance()})
	}
}

func (p *parser) parseAnnAssign(target Expr) (*AnnAssign, error) {
	a := &AnnAssign{Target: target, Colon: p.advance()}

	ann, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	a.Annotation = ann

	if p.peek().Is("=") {
		eq := p.advance()
		a.Eq = &eq

		if a.Value, err = p.parseStarExprList(); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// rawStatement collects the tokens of a statement the tree does not model.
func (p *parser) rawStatement() []Token {
	toks := []Token{p.advance()}
	depth := 0

	for {
		tok := p.peek()

		switch {
		case tok.Kind == NEWLINE, tok.Kind == EOF:
			return toks
		case tok.Is(";") && depth == 0:
			return toks
		case tok.Is("("), tok.Is("["), tok.Is("{"):
			depth++
		case tok.Is(")"), tok.Is("]"), tok.Is("}"):
			depth--
		}

		toks = append(toks, p.advance())
	}
}

func (p *parser) parseClass(leading string) (*ClassDef, error) {
	c := &ClassDef{Leading: leading, Class: p.advance()}

	name := p.peek()
	if name.Kind != NAME || IsKeyword(name.Text) {
		return nil, p.expected(name, "class name")
	}

	c.Name = p.advance()

	if p.peek().Is("(") {
		lpar := p.advance()
		c.Lpar = &lpar

		args, err := p.parseArgs(")")
		if err != nil {
			return nil, err
		}

		c.Args = args

		rpar, err := p.expectOp(")")
		if err != nil {
			return nil, err
		}

		c.Rpar = &rpar
	}

	colon, err := p.expectOp(":")
	if err != nil {
		return nil, err
	}

	c.Colon = colon

	if p.peek().Kind != NEWLINE {
		line, err := p.parseSimpleLine(p.takeLeading())
		if err != nil {
			return nil, err
		}

		c.Body = &InlineSuite{Line: line}

		return c, nil
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	c.Body = body

	return c, nil
}

func (p *parser) parseBlock() (*IndentedBlock, error) {
	b := &IndentedBlock{Newline: p.advance()}

	if p.peek().Kind != INDENT {
		return nil, p.expected(p.peek(), "an indented block")
	}

	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	b.Indent = p.advance()

	for p.peek().Kind != DEDENT && p.peek().Kind != EOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}

		b.Body = append(b.Body, stmt)
	}

	dedent, err := p.expectKind(DEDENT)
	if err != nil {
		return nil, err
	}

	b.Dedent = dedent

	return b, nil
}

// parseStarExprList parses an expression or an unparenthesized tuple whose
// items may be starred.
func (p *parser) parseStarExprList() (Expr, error) {
	first, err := p.parseElement()
	if err != nil {
		return nil, err
	}

	if !p.peek().Is(",") {
		if first.Star != nil {
			return nil, p.fail(*first.Star, "cannot use starred expression here")
		}

		return first.Value, nil
	}

	comma := p.advance()
	first.Comma = &comma

	tup := &TupleExpr{Elts: []*Element{first}}

	for p.canStartExpr() {
		el, err := p.parseElement()
		if err != nil {
			return nil, err
		}

		tup.Elts = append(tup.Elts, el)

		if !p.peek().Is(",") {
			break
		}

		comma := p.advance()
		el.Comma = &comma
	}

	return tup, nil
}

// parseElement parses an optionally starred expression without its comma.
func (p *parser) parseElement() (*Element, error) {
	el := new(Element)

	if p.peek().Is("*") {
		star := p.advance()
		el.Star = &star
	}

	x, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	el.Value = x

	return el, nil
}

// parseElements parses comma-separated elements up to close, which is not
// consumed.
func (p *parser) parseElements(elts []*Element, close string) ([]*Element, error) {
	for !p.peek().Is(close) {
		el, err := p.parseElement()
		if err != nil {
			return nil, err
		}

		if err := p.noComprehension(); err != nil {
			return nil, err
		}

		elts = append(elts, el)

		if !p.peek().Is(",") {
			break
		}

		comma := p.advance()
		el.Comma = &comma
	}

	return elts, nil
}

func (p *parser) noComprehension() error {
	if tok := p.peek(); tok.Is("for") || tok.Is("async") {
		return ErrUnsupportedExpression.At(tok.Pos).
			With(slog.String("expression", "comprehension"))
	}

	return nil
}

func (p *parser) canStartExpr() bool {
	tok := p.peek()

	switch tok.Kind {
	case NUMBER, STRING:
		return true

	case NAME:
		switch tok.Text {
		case "True", "False", "None", "not", "lambda", "await":
			return true
		}

		return !IsKeyword(tok.Text)

	case OP:
		switch tok.Text {
		case "(", "[", "{", "-", "+", "~", "...", "*":
			return true
		}
	}

	return false
}

func (p *parser) parseExpr() (Expr, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	if tok := p.peek(); tok.Is("lambda") || tok.Is("yield") || tok.Is("await") {
		return nil, ErrUnsupportedExpression.At(tok.Pos).
			With(slog.String("expression", tok.Text))
	}

	body, err := p.parseOr()
	if err != nil {
		return nil, err
	}

	if tok := p.peek(); tok.Is(":=") {
		return nil, ErrUnsupportedExpression.At(tok.Pos).
			With(slog.String("expression", "assignment expression"))
	}

	if !p.peek().Is("if") {
		return body, nil
	}

	t := &Ternary{Body: body, If: p.advance()}

	if t.Test, err = p.parseOr(); err != nil {
		return nil, err
	}

	if !p.peek().Is("else") {
		return nil, p.expected(p.peek(), "'else'")
	}

	t.Else = p.advance()

	if t.OrElse, err = p.parseExpr(); err != nil {
		return nil, err
	}

	return t, nil
}

// parseBinary parses a left-associative chain of operands joined by any
// of ops.
func (p *parser) parseBinary(operand func() (Expr, error), ops ...string) (Expr, error) {
	x, err := operand()
	if err != nil {
		return nil, err
	}

	for p.peekAny(ops...) {
		op := p.advance()

		y, err := operand()
		if err != nil {
			return nil, err
		}

		x = &BinaryOp{X: x, Op: op, Y: y}
	}

	return x, nil
}

func (p *parser) parseOr() (Expr, error) {
	return p.parseBinary(p.parseAnd, "or")
}

func (p *parser) parseAnd() (Expr, error) {
	return p.parseBinary(p.parseNot, "and")
}

func (p *parser) parseNot() (Expr, error) {
	if !p.peek().Is("not") {
		return p.parseComparison()
	}

	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	op := p.advance()

	x, err := p.parseNot()
	if err != nil {
		return nil, err
	}

	return &UnaryOp{Op: op, X: x}, nil
}

func (p *parser) parseComparison() (Expr, error) {
	x, err := p.parseBitOr()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.peek()

		var op2 *Token

		switch {
		case p.peekAny("<", ">", "==", ">=", "<=", "!=", "in"):
			p.advance()

		case tok.Is("not") && p.peekAt(1).Is("in"), tok.Is("is"):
			p.advance()

			if tok.Is("not") || p.peek().Is("not") {
				second := p.advance()
				op2 = &second
			}

		default:
			return x, nil
		}

		y, err := p.parseBitOr()
		if err != nil {
			return nil, err
		}

		x = &BinaryOp{X: x, Op: tok, Op2: op2, Y: y}
	}
}

func (p *parser) parseBitOr() (Expr, error) {
	return p.parseBinary(p.parseBitXor, "|")
}

func (p *parser) parseBitXor() (Expr, error) {
	return p.parseBinary(p.parseBitAnd, "^")
}

func (p *parser) parseBitAnd() (Expr, error) {
	return p.parseBinary(p.parseShift, "&")
}

func (p *parser) parseShift() (Expr, error) {
	return p.parseBinary(p.parseArith, "<<", ">>")
}

func (p *parser) parseArith() (Expr, error) {
	return p.parseBinary(p.parseTerm, "+", "-")
}

func (p *parser) parseTerm() (Expr, error) {
	return p.parseBinary(p.parseFactor, "*", "/", "//", "%", "@")
}

func (p *parser) parseFactor() (Expr, error) {
	if !p.peekAny("+", "-", "~") {
		return p.parsePower()
	}

	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	op := p.advance()

	x, err := p.parseFactor()
	if err != nil {
		return nil, err
	}

	return &UnaryOp{Op: op, X: x}, nil
}

func (p *parser) parsePower() (Expr, error) {
	x, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	if !p.peek().Is("**") {
		return x, nil
	}

	op := p.advance()

	y, err := p.parseFactor()
	if err != nil {
		return nil, err
	}

	return &BinaryOp{X: x, Op: op, Y: y}, nil
}

func (p *parser) parsePrimary() (Expr, error) {
	x, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	for {
		switch tok := p.peek(); {
		case tok.Is("."):
			dot := p.advance()

			name := p.peek()
			if name.Kind != NAME {
				return nil, p.expected(name, "attribute name")
			}

			x = &Attribute{X: x, Dot: dot, Name: p.advance()}

		case tok.Is("("):
			call := &Call{Func: x, Lpar: p.advance()}

			if call.Args, err = p.parseArgs(")"); err != nil {
				return nil, err
			}

			if call.Rpar, err = p.expectOp(")"); err != nil {
				return nil, err
			}

			x = call

		case tok.Is("["):
			sub := &Subscript{X: x, Lbrack: p.advance()}

			if sub.Index, err = p.parseSubscriptList(); err != nil {
				return nil, err
			}

			if sub.Rbrack, err = p.expectOp("]"); err != nil {
				return nil, err
			}

			x = sub

		default:
			return x, nil
		}
	}
}

func (p *parser) parseArgs(close string) ([]*Arg, error) {
	var args []*Arg

	for !p.peek().Is(close) {
		a := new(Arg)

		switch {
		case p.peekAny("*", "**"):
			star := p.advance()
			a.Star = &star

		case p.peek().Kind == NAME && p.peekAt(1).Is("="):
			kw, eq := p.advance(), p.advance()
			a.Keyword, a.Eq = &kw, &eq
		}

		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		if err := p.noComprehension(); err != nil {
			return nil, err
		}

		a.Value = x
		args = append(args, a)

		if !p.peek().Is(",") {
			break
		}

		comma := p.advance()
		a.Comma = &comma
	}

	return args, nil
}

func (p *parser) parseSubscriptList() (Expr, error) {
	first, err := p.parseSliceItem()
	if err != nil {
		return nil, err
	}

	if !p.peek().Is(",") {
		return first, nil
	}

	comma := p.advance()
	tup := &TupleExpr{Elts: []*Element{{Value: first, Comma: &comma}}}

	for !p.peek().Is("]") {
		x, err := p.parseSliceItem()
		if err != nil {
			return nil, err
		}

		el := &Element{Value: x}
		tup.Elts = append(tup.Elts, el)

		if !p.peek().Is(",") {
			break
		}

		comma := p.advance()
		el.Comma = &comma
	}

	return tup, nil
}

func (p *parser) parseSliceItem() (Expr, error) {
	var (
		lower Expr
		err   error
	)

	if !p.peek().Is(":") {
		if lower, err = p.parseExpr(); err != nil {
			return nil, err
		}

		if !p.peek().Is(":") {
			return lower, nil
		}
	}

	s := &Slice{Lower: lower, Colon: p.advance()}

	if p.canStartExpr() {
		if s.Upper, err = p.parseExpr(); err != nil {
			return nil, err
		}
	}

	if p.peek().Is(":") {
		c2 := p.advance()
		s.Colon2 = &c2

		if p.canStartExpr() {
			if s.Step, err = p.parseExpr(); err != nil {
				return nil, err
			}
		}
	}

	return s, nil
}

func (p *parser) parseAtom() (Expr, error) {
	tok := p.peek()

	switch tok.Kind {
	case NUMBER:
		return numberNode(p.advance()), nil

	case STRING:
		first := &StringLit{Tok: p.advance()}
		if p.peek().Kind != STRING {
			return first, nil
		}

		cs := &ConcatString{Parts: []*StringLit{first}}
		for p.peek().Kind == STRING {
			cs.Parts = append(cs.Parts, &StringLit{Tok: p.advance()})
		}

		return cs, nil

	case NAME:
		switch tok.Text {
		case "True", "False", "None":
		default:
			if IsKeyword(tok.Text) {
				return nil, p.fail(tok, "unexpected keyword '"+tok.Text+"'")
			}
		}

		return &Name{Tok: p.advance()}, nil

	case OP:
		switch tok.Text {
		case "(":
			return p.parseParen()
		case "[":
			return p.parseList()
		case "{":
			return p.parseBrace()
		case "...":
			return &Ellipsis{Tok: p.advance()}, nil
		}
	}

	return nil, p.expected(tok, "an expression")
}

func numberNode(tok Token) Expr {
	text := strings.ToLower(tok.Text)

	switch {
	case strings.HasSuffix(text, "j"):
		return &ImagLit{Tok: tok}
	case strings.HasPrefix(text, "0x"), strings.HasPrefix(text, "0o"), strings.HasPrefix(text, "0b"):
		return &IntLit{Tok: tok}
	case strings.ContainsAny(text, ".e"):
		return &FloatLit{Tok: tok}
	}

	return &IntLit{Tok: tok}
}

func (p *parser) parseParen() (Expr, error) {
	lpar := p.advance()

	if p.peek().Is(")") {
		rpar := p.advance()

		return &TupleExpr{Lpar: &lpar, Rpar: &rpar}, nil
	}

	first, err := p.parseElement()
	if err != nil {
		return nil, err
	}

	if err := p.noComprehension(); err != nil {
		return nil, err
	}

	if p.peek().Is(")") && first.Star == nil {
		return &Paren{Lpar: lpar, X: first.Value, Rpar: p.advance()}, nil
	}

	comma, err := p.expectOp(",")
	if err != nil {
		return nil, err
	}

	first.Comma = &comma

	elts, err := p.parseElements([]*Element{first}, ")")
	if err != nil {
		return nil, err
	}

	rpar, err := p.expectOp(")")
	if err != nil {
		return nil, err
	}

	return &TupleExpr{Lpar: &lpar, Elts: elts, Rpar: &rpar}, nil
}

func (p *parser) parseList() (Expr, error) {
	l := &ListExpr{Lbrack: p.advance()}

	elts, err := p.parseElements(nil, "]")
	if err != nil {
		return nil, err
	}

	l.Elts = elts

	if l.Rbrack, err = p.expectOp("]"); err != nil {
		return nil, err
	}

	return l, nil
}

// parseBrace parses a dict or set display.
func (p *parser) parseBrace() (Expr, error) {
	lbrace := p.advance()

	if p.peek().Is("}") {
		return &DictExpr{Lbrace: lbrace, Rbrace: p.advance()}, nil
	}

	if p.peek().Is("*") {
		return p.parseSet(lbrace, nil)
	}

	if p.peek().Is("**") {
		return p.parseDict(lbrace, nil)
	}

	key, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if !p.peek().Is(":") {
		return p.parseSet(lbrace, &Element{Value: key})
	}

	colon := p.advance()

	val, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	return p.parseDict(lbrace, &DictEntry{Key: key, Colon: &colon, Value: val})
}

func (p *parser) parseSet(lbrace Token, first *Element) (Expr, error) {
	s := &SetExpr{Lbrace: lbrace}

	var err error

	switch {
	case first == nil:
		s.Elts, err = p.parseElements(nil, "}")

	case p.peek().Is(","):
		comma := p.advance()
		first.Comma = &comma
		s.Elts, err = p.parseElements([]*Element{first}, "}")

	default:
		err = p.noComprehension()
		s.Elts = []*Element{first}
	}

	if err != nil {
		return nil, err
	}

	if s.Rbrace, err = p.expectOp("}"); err != nil {
		return nil, err
	}

	return s, nil
}

func (p *parser) parseDict(lbrace Token, first *DictEntry) (Expr, error) {
	d := &DictExpr{Lbrace: lbrace}

	next := first

	for {
		if next == nil {
			if p.peek().Is("}") {
				break
			}

			e, err := p.parseDictEntry()
			if err != nil {
				return nil, err
			}

			next = e
		}

		if err := p.noComprehension(); err != nil {
			return nil, err
		}

		d.Entries = append(d.Entries, next)

		if !p.peek().Is(",") {
			break
		}

		comma := p.advance()
		next.Comma = &comma
		next = nil
	}

	rbrace, err := p.expectOp("}")
	if err != nil {
		return nil, err
	}

	d.Rbrace = rbrace

	return d, nil
}

func (p *parser) parseDictEntry() (*DictEntry, error) {
	e := new(DictEntry)

	if p.peek().Is("**") {
		ss := p.advance()
		e.StarStar = &ss

		x, err := p.parseBitOr()
		if err != nil {
			return nil, err
		}

		e.Value = x

		return e, nil
	}

	key, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	colon, err := p.expectOp(":")
	if err != nil {
		return nil, err
	}

	val, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	e.Key, e.Colon, e.Value = key, &colon, val

	return e, nil
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > p.maxNesting {
		return ErrNesting.At(p.peek().Pos).
			With(slog.Int("max", p.maxNesting))
	}

	return nil
}

func (p *parser) leave() { p.depth-- }

func (p *parser) peek() Token { return p.toks[p.i] }

func (p *parser) peekAt(n int) Token {
	if p.i+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}

	return p.toks[p.i+n]
}

func (p *parser) peekAny(ops ...string) bool {
	tok := p.peek()
	for _, op := range ops {
		if tok.Is(op) {
			return true
		}
	}

	return false
}

// advance consumes the next token. The final EOF token is never consumed
// past.
func (p *parser) advance() Token {
	tok := p.toks[p.i]
	if p.i < len(p.toks)-1 {
		p.i++
	}

	return tok
}

func (p *parser) expectOp(op string) (Token, error) {
	if tok := p.peek(); tok.Kind == OP && tok.Text == op {
		return p.advance(), nil
	}

	return Token{}, p.expected(p.peek(), "'"+op+"'")
}

func (p *parser) expectKind(kind TokenKind) (Token, error) {
	if tok := p.peek(); tok.Kind == kind {
		return p.advance(), nil
	}

	return Token{}, p.expected(p.peek(), kind.String())
}

func (p *parser) expected(tok Token, what string) error {
	return p.fail(tok, "expected "+what+", found "+tok.describe())
}

func (p *parser) fail(tok Token, reason string) error {
	return pkg.ErrSyntax.At(tok.Pos).Wrap(errors.New(reason))
}
