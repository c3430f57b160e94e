package lang

import (
	"strings"

	"github.com/ardnew/litcfg/pkg"
)

// Node is a node of the concrete syntax tree. Printing a tree reproduces
// the parsed source byte for byte.
//
// Nodes are shared between trees after a rewrite and must not be modified.
type Node interface {
	Pos() pkg.Position
	format(sb *strings.Builder)
}

// Statement is a top-level or block-level statement: a [*SimpleLine] or a
// [*ClassDef].
type Statement interface {
	Node
	leading() string
	withLeading(s string) Statement
}

// SmallStmt is one statement of a [*SimpleLine].
type SmallStmt interface {
	Node
	smallStmt()
}

// Expr is an expression.
type Expr interface {
	Node
	expr()
}

// Suite is the body of a [*ClassDef].
type Suite interface {
	Node
	suite()
}

// Print returns the source text of n.
func Print(n Node) string {
	var sb strings.Builder

	n.format(&sb)

	return sb.String()
}

func writeTok(sb *strings.Builder, t Token) {
	sb.WriteString(t.Leading)
	sb.WriteString(t.Text)
}

func writeOpt(sb *strings.Builder, t *Token) {
	if t != nil {
		writeTok(sb, *t)
	}
}

func writeNode(sb *strings.Builder, n Node) {
	if n != nil {
		n.format(sb)
	}
}

// Module is a parsed document.
type Module struct {
	Body []Statement
	End  Token // EOF; its Leading holds trailing comments and blank lines
}

func (m *Module) Pos() pkg.Position {
	if len(m.Body) > 0 {
		return m.Body[0].Pos()
	}

	return m.End.Pos
}

func (m *Module) format(sb *strings.Builder) {
	for _, s := range m.Body {
		s.format(sb)
	}

	writeTok(sb, m.End)
}

// String returns the source text of the module.
func (m *Module) String() string { return Print(m) }

// SimpleLine is a logical line of one or more small statements separated
// by semicolons.
type SimpleLine struct {
	Leading string // Blank lines, comments and indentation before the line
	Stmts   []SmallStmt
	Semis   []Token // Semis[i] follows Stmts[i]
	Newline Token
}

func (s *SimpleLine) Pos() pkg.Position { return s.Stmts[0].Pos() }

func (s *SimpleLine) leading() string { return s.Leading }

func (s *SimpleLine) withLeading(l string) Statement {
	c := *s
	c.Leading = l

	return &c
}

func (s *SimpleLine) format(sb *strings.Builder) {
	sb.WriteString(s.Leading)

	for i, st := range s.Stmts {
		st.format(sb)

		if i < len(s.Semis) {
			writeTok(sb, s.Semis[i])
		}
	}

	writeTok(sb, s.Newline)
}

// ClassDef is a block: "class Name:" followed by its body.
type ClassDef struct {
	Leading string // Blank lines, comments and indentation before the line
	Class   Token
	Name    Token
	Lpar    *Token // Present when the header lists bases
	Args    []*Arg
	Rpar    *Token
	Colon   Token
	Body    Suite
}

func (c *ClassDef) Pos() pkg.Position { return c.Class.Pos }

func (c *ClassDef) leading() string { return c.Leading }

func (c *ClassDef) withLeading(l string) Statement {
	d := *c
	d.Leading = l

	return &d
}

func (c *ClassDef) format(sb *strings.Builder) {
	sb.WriteString(c.Leading)
	writeTok(sb, c.Class)
	writeTok(sb, c.Name)
	writeOpt(sb, c.Lpar)

	for _, a := range c.Args {
		a.format(sb)
	}

	writeOpt(sb, c.Rpar)
	writeTok(sb, c.Colon)
	c.Body.format(sb)
}

// InlineSuite is a block body written on the header line.
type InlineSuite struct {
	Line *SimpleLine
}

func (s *InlineSuite) Pos() pkg.Position          { return s.Line.Pos() }
func (s *InlineSuite) format(sb *strings.Builder) { s.Line.format(sb) }
func (*InlineSuite) suite()                       {}

// IndentedBlock is a block body on its own indented lines.
type IndentedBlock struct {
	Newline Token // Ends the header line
	Indent  Token
	Body    []Statement
	Dedent  Token
}

func (b *IndentedBlock) Pos() pkg.Position { return b.Indent.Pos }
func (*IndentedBlock) suite()              {}

func (b *IndentedBlock) format(sb *strings.Builder) {
	writeTok(sb, b.Newline)
	writeTok(sb, b.Indent)

	for _, s := range b.Body {
		s.format(sb)
	}

	writeTok(sb, b.Dedent)
}

// AssignTarget is one "target =" of an assignment.
type AssignTarget struct {
	Target Expr
	Eq     Token
}

// Assign is "t1 = t2 = ... = value".
type Assign struct {
	Targets []AssignTarget
	Value   Expr
}

func (a *Assign) Pos() pkg.Position { return a.Targets[0].Target.Pos() }
func (*Assign) smallStmt()          {}

func (a *Assign) format(sb *strings.Builder) {
	for _, t := range a.Targets {
		t.Target.format(sb)
		writeTok(sb, t.Eq)
	}

	a.Value.format(sb)
}

// AugAssign is "target op= value".
type AugAssign struct {
	Target Expr
	Op     Token
	Value  Expr
}

func (a *AugAssign) Pos() pkg.Position { return a.Target.Pos() }
func (*AugAssign) smallStmt()          {}

func (a *AugAssign) format(sb *strings.Builder) {
	a.Target.format(sb)
	writeTok(sb, a.Op)
	a.Value.format(sb)
}

// AnnAssign is "target: annotation" with an optional "= value".
type AnnAssign struct {
	Target     Expr
	Colon      Token
	Annotation Expr
	Eq         *Token
	Value      Expr
}

func (a *AnnAssign) Pos() pkg.Position { return a.Target.Pos() }
func (*AnnAssign) smallStmt()          {}

func (a *AnnAssign) format(sb *strings.Builder) {
	a.Target.format(sb)
	writeTok(sb, a.Colon)
	a.Annotation.format(sb)
	writeOpt(sb, a.Eq)
	writeNode(sb, a.Value)
}

// ExprStmt is an expression used as a statement.
type ExprStmt struct {
	X Expr
}

func (s *ExprStmt) Pos() pkg.Position          { return s.X.Pos() }
func (s *ExprStmt) format(sb *strings.Builder) { s.X.format(sb) }
func (*ExprStmt) smallStmt()                   {}

// Pass is the "pass" statement.
type Pass struct {
	Tok Token
}

func (s *Pass) Pos() pkg.Position          { return s.Tok.Pos }
func (s *Pass) format(sb *strings.Builder) { writeTok(sb, s.Tok) }
func (*Pass) smallStmt()                   {}

// Import is an "import" or "from" statement, kept as raw tokens.
type Import struct {
	Tokens []Token
}

func (s *Import) Pos() pkg.Position { return s.Tokens[0].Pos }
func (*Import) smallStmt()          {}

func (s *Import) format(sb *strings.Builder) {
	for _, t := range s.Tokens {
		writeTok(sb, t)
	}
}

// KeywordStmt is any other simple statement introduced by a keyword, such
// as del, global or return, kept as raw tokens.
type KeywordStmt struct {
	Tokens []Token
}

func (s *KeywordStmt) Pos() pkg.Position { return s.Tokens[0].Pos }
func (*KeywordStmt) smallStmt()          {}

// Keyword returns the introducing keyword.
func (s *KeywordStmt) Keyword() string { return s.Tokens[0].Text }

func (s *KeywordStmt) format(sb *strings.Builder) {
	for _, t := range s.Tokens {
		writeTok(sb, t)
	}
}

// IntLit is an integer literal.
type IntLit struct{ Tok Token }

// FloatLit is a floating-point literal.
type FloatLit struct{ Tok Token }

// ImagLit is an imaginary literal such as 2j.
type ImagLit struct{ Tok Token }

// StringLit is a single string literal, prefix and quotes included.
type StringLit struct{ Tok Token }

// Name is an identifier, including True, False and None.
type Name struct{ Tok Token }

// Ellipsis is "...".
type Ellipsis struct{ Tok Token }

func (e *IntLit) Pos() pkg.Position    { return e.Tok.Pos }
func (e *FloatLit) Pos() pkg.Position  { return e.Tok.Pos }
func (e *ImagLit) Pos() pkg.Position   { return e.Tok.Pos }
func (e *StringLit) Pos() pkg.Position { return e.Tok.Pos }
func (e *Name) Pos() pkg.Position      { return e.Tok.Pos }
func (e *Ellipsis) Pos() pkg.Position  { return e.Tok.Pos }

func (e *IntLit) format(sb *strings.Builder)    { writeTok(sb, e.Tok) }
func (e *FloatLit) format(sb *strings.Builder)  { writeTok(sb, e.Tok) }
func (e *ImagLit) format(sb *strings.Builder)   { writeTok(sb, e.Tok) }
func (e *StringLit) format(sb *strings.Builder) { writeTok(sb, e.Tok) }
func (e *Name) format(sb *strings.Builder)      { writeTok(sb, e.Tok) }
func (e *Ellipsis) format(sb *strings.Builder)  { writeTok(sb, e.Tok) }

func (*IntLit) expr()    {}
func (*FloatLit) expr()  {}
func (*ImagLit) expr()   {}
func (*StringLit) expr() {}
func (*Name) expr()      {}
func (*Ellipsis) expr()  {}

// ConcatString is two or more adjacent string literals.
type ConcatString struct {
	Parts []*StringLit
}

func (e *ConcatString) Pos() pkg.Position { return e.Parts[0].Pos() }
func (*ConcatString) expr()               {}

func (e *ConcatString) format(sb *strings.Builder) {
	for _, p := range e.Parts {
		p.format(sb)
	}
}

// UnaryOp is a prefix operator: +, -, ~ or not.
type UnaryOp struct {
	Op Token
	X  Expr
}

func (e *UnaryOp) Pos() pkg.Position { return e.Op.Pos }
func (*UnaryOp) expr()               {}

func (e *UnaryOp) format(sb *strings.Builder) {
	writeTok(sb, e.Op)
	e.X.format(sb)
}

// BinaryOp is an infix operation. Two-word operators such as "not in"
// and "is not" use Op2.
type BinaryOp struct {
	X   Expr
	Op  Token
	Op2 *Token
	Y   Expr
}

func (e *BinaryOp) Pos() pkg.Position { return e.X.Pos() }
func (*BinaryOp) expr()               {}

func (e *BinaryOp) format(sb *strings.Builder) {
	e.X.format(sb)
	writeTok(sb, e.Op)
	writeOpt(sb, e.Op2)
	e.Y.format(sb)
}

// Ternary is "body if test else orElse".
type Ternary struct {
	Body   Expr
	If     Token
	Test   Expr
	Else   Token
	OrElse Expr
}

func (e *Ternary) Pos() pkg.Position { return e.Body.Pos() }
func (*Ternary) expr()               {}

func (e *Ternary) format(sb *strings.Builder) {
	e.Body.format(sb)
	writeTok(sb, e.If)
	e.Test.format(sb)
	writeTok(sb, e.Else)
	e.OrElse.format(sb)
}

// Paren is a parenthesized expression that is not a tuple.
type Paren struct {
	Lpar Token
	X    Expr
	Rpar Token
}

func (e *Paren) Pos() pkg.Position { return e.Lpar.Pos }
func (*Paren) expr()               {}

func (e *Paren) format(sb *strings.Builder) {
	writeTok(sb, e.Lpar)
	e.X.format(sb)
	writeTok(sb, e.Rpar)
}

// Element is one item of a tuple, list or set display, with its trailing
// comma if any.
type Element struct {
	Star  *Token
	Value Expr
	Comma *Token
}

func (e *Element) format(sb *strings.Builder) {
	writeOpt(sb, e.Star)
	e.Value.format(sb)
	writeOpt(sb, e.Comma)
}

func formatElements(sb *strings.Builder, elts []*Element) {
	for _, e := range elts {
		e.format(sb)
	}
}

// TupleExpr is a tuple display, with or without parentheses.
type TupleExpr struct {
	Lpar *Token
	Elts []*Element
	Rpar *Token
}

func (e *TupleExpr) Pos() pkg.Position {
	if e.Lpar != nil {
		return e.Lpar.Pos
	}

	return e.Elts[0].Value.Pos()
}

func (*TupleExpr) expr() {}

func (e *TupleExpr) format(sb *strings.Builder) {
	writeOpt(sb, e.Lpar)
	formatElements(sb, e.Elts)
	writeOpt(sb, e.Rpar)
}

// ListExpr is a list display.
type ListExpr struct {
	Lbrack Token
	Elts   []*Element
	Rbrack Token
}

func (e *ListExpr) Pos() pkg.Position { return e.Lbrack.Pos }
func (*ListExpr) expr()               {}

func (e *ListExpr) format(sb *strings.Builder) {
	writeTok(sb, e.Lbrack)
	formatElements(sb, e.Elts)
	writeTok(sb, e.Rbrack)
}

// SetExpr is a non-empty set display.
type SetExpr struct {
	Lbrace Token
	Elts   []*Element
	Rbrace Token
}

func (e *SetExpr) Pos() pkg.Position { return e.Lbrace.Pos }
func (*SetExpr) expr()               {}

func (e *SetExpr) format(sb *strings.Builder) {
	writeTok(sb, e.Lbrace)
	formatElements(sb, e.Elts)
	writeTok(sb, e.Rbrace)
}

// DictEntry is "key: value" or "**value" in a dict display.
type DictEntry struct {
	StarStar *Token
	Key      Expr
	Colon    *Token
	Value    Expr
	Comma    *Token
}

func (e *DictEntry) format(sb *strings.Builder) {
	writeOpt(sb, e.StarStar)
	writeNode(sb, e.Key)
	writeOpt(sb, e.Colon)
	e.Value.format(sb)
	writeOpt(sb, e.Comma)
}

// DictExpr is a dict display.
type DictExpr struct {
	Lbrace  Token
	Entries []*DictEntry
	Rbrace  Token
}

func (e *DictExpr) Pos() pkg.Position { return e.Lbrace.Pos }
func (*DictExpr) expr()               {}

func (e *DictExpr) format(sb *strings.Builder) {
	writeTok(sb, e.Lbrace)

	for _, en := range e.Entries {
		en.format(sb)
	}

	writeTok(sb, e.Rbrace)
}

// Arg is one argument of a call or class header.
type Arg struct {
	Star    *Token // "*" or "**"
	Keyword *Token
	Eq      *Token
	Value   Expr
	Comma   *Token
}

func (a *Arg) format(sb *strings.Builder) {
	writeOpt(sb, a.Star)
	writeOpt(sb, a.Keyword)
	writeOpt(sb, a.Eq)
	a.Value.format(sb)
	writeOpt(sb, a.Comma)
}

// Call is "func(args)".
type Call struct {
	Func Expr
	Lpar Token
	Args []*Arg
	Rpar Token
}

func (e *Call) Pos() pkg.Position { return e.Func.Pos() }
func (*Call) expr()               {}

func (e *Call) format(sb *strings.Builder) {
	e.Func.format(sb)
	writeTok(sb, e.Lpar)

	for _, a := range e.Args {
		a.format(sb)
	}

	writeTok(sb, e.Rpar)
}

// Attribute is "x.name".
type Attribute struct {
	X    Expr
	Dot  Token
	Name Token
}

func (e *Attribute) Pos() pkg.Position { return e.X.Pos() }
func (*Attribute) expr()               {}

func (e *Attribute) format(sb *strings.Builder) {
	e.X.format(sb)
	writeTok(sb, e.Dot)
	writeTok(sb, e.Name)
}

// Subscript is "x[index]".
type Subscript struct {
	X      Expr
	Lbrack Token
	Index  Expr
	Rbrack Token
}

func (e *Subscript) Pos() pkg.Position { return e.X.Pos() }
func (*Subscript) expr()               {}

func (e *Subscript) format(sb *strings.Builder) {
	e.X.format(sb)
	writeTok(sb, e.Lbrack)
	e.Index.format(sb)
	writeTok(sb, e.Rbrack)
}

// Slice is "lower:upper:step" inside a subscript. Each part is optional.
type Slice struct {
	Lower  Expr
	Colon  Token
	Upper  Expr
	Colon2 *Token
	Step   Expr
}

func (e *Slice) Pos() pkg.Position {
	if e.Lower != nil {
		return e.Lower.Pos()
	}

	return e.Colon.Pos
}

func (*Slice) expr() {}

func (e *Slice) format(sb *strings.Builder) {
	writeNode(sb, e.Lower)
	writeTok(sb, e.Colon)
	writeNode(sb, e.Upper)
	writeOpt(sb, e.Colon2)
	writeNode(sb, e.Step)
}
