package ast

import (
	"strings"

	"github.com/chr1sps/mole/internal/lexer"
)

// Block is a brace-delimited sequence of statements introducing its own
// scope.
type Block struct {
	Token lexer.Token
	Stmts []Statement
}

func (*Block) statementNode()        {}
func (b *Block) TokenLiteral() string { return b.Token.Literal }
func (b *Block) Pos() lexer.Position  { return b.Token.Pos }
func (b *Block) String() string {
	return "{\n" + joinStatements(b.Stmts, "\n") + "\n}"
}

// Return is `return [expr] ;`.
type Return struct {
	Token lexer.Token
	Value Expression // nil for a bare `return;`
}

func (*Return) statementNode()        {}
func (r *Return) TokenLiteral() string { return r.Token.Literal }
func (r *Return) Pos() lexer.Position  { return r.Token.Pos }
func (r *Return) String() string {
	if r.Value == nil {
		return "return;"
	}
	return "return " + r.Value.String() + ";"
}

// Continue is `continue;`.
type Continue struct {
	Token lexer.Token
}

func (*Continue) statementNode()        {}
func (c *Continue) TokenLiteral() string { return c.Token.Literal }
func (c *Continue) Pos() lexer.Position  { return c.Token.Pos }
func (c *Continue) String() string       { return "continue;" }

// Break is `break;`.
type Break struct {
	Token lexer.Token
}

func (*Break) statementNode()        {}
func (b *Break) TokenLiteral() string { return b.Token.Literal }
func (b *Break) Pos() lexer.Position  { return b.Token.Pos }
func (b *Break) String() string       { return "break;" }

// VarDecl is `let [mut] name [: Type] [= expr] ;` (top-level as a global,
// or local inside a Block).
type VarDecl struct {
	Token lexer.Token
	Name  string
	Mut   bool
	Type  TypeExpr // nil if the type is to be inferred from Value
	// Value is nil if the declaration has no initializer.
	Value Expression
}

func (*VarDecl) statementNode()        {}
func (v *VarDecl) TokenLiteral() string { return v.Token.Literal }
func (v *VarDecl) Pos() lexer.Position  { return v.Token.Pos }
func (v *VarDecl) String() string {
	var sb strings.Builder
	sb.WriteString("let ")
	if v.Mut {
		sb.WriteString("mut ")
	}
	sb.WriteString(v.Name)
	if v.Type != nil {
		sb.WriteString(": ")
		sb.WriteString(v.Type.String())
	}
	if v.Value != nil {
		sb.WriteString(" = ")
		sb.WriteString(v.Value.String())
	}
	sb.WriteString(";")
	return sb.String()
}

// Assign is `target op= value ;` for every AssignOp, including plain `=`.
type Assign struct {
	Token  lexer.Token
	Target Expression
	Op     AssignOp
	Value  Expression
}

func (*Assign) statementNode()        {}
func (a *Assign) TokenLiteral() string { return a.Token.Literal }
func (a *Assign) Pos() lexer.Position  { return a.Token.Pos }
func (a *Assign) String() string {
	return a.Target.String() + " " + a.Op.String() + " " + a.Value.String() + ";"
}

// ExprStmt wraps a bare expression used as a statement, e.g. a Call
// invoked for its side effects.
type ExprStmt struct {
	Token lexer.Token
	Expr  Expression
}

func (*ExprStmt) statementNode()        {}
func (e *ExprStmt) TokenLiteral() string { return e.Token.Literal }
func (e *ExprStmt) Pos() lexer.Position  { return e.Token.Pos }
func (e *ExprStmt) String() string       { return e.Expr.String() + ";" }

// While is `while ( cond ) Block`.
type While struct {
	Token lexer.Token
	Cond  Expression
	Body  *Block
}

func (*While) statementNode()        {}
func (w *While) TokenLiteral() string { return w.Token.Literal }
func (w *While) Pos() lexer.Position  { return w.Token.Pos }
func (w *While) String() string {
	return "while (" + w.Cond.String() + ") " + w.Body.String()
}

// If is `if ( cond ) Block [else (If | Block)]`.
type If struct {
	Token lexer.Token
	Cond  Expression
	Then  *Block
	Else  Statement // nil, or *If, or *Block
}

func (*If) statementNode()        {}
func (i *If) TokenLiteral() string { return i.Token.Literal }
func (i *If) Pos() lexer.Position  { return i.Token.Pos }
func (i *If) String() string {
	s := "if (" + i.Cond.String() + ") " + i.Then.String()
	if i.Else != nil {
		s += " else " + i.Else.String()
	}
	return s
}

// MatchArm is one arm of a Match statement: either a set of one or more
// literal patterns (`1 | 2 | 3 => ...`), a boolean guard, or the trailing
// `else` catch-all.
type MatchArm struct {
	// Exactly one of Literals, Guard is non-empty/non-nil, unless IsElse
	// is true. Literals holds every pattern of a `|`-separated arm in
	// source order; the scrutinee matches the arm if it equals any one
	// of them.
	Literals []Expression // literal patterns, e.g. `1 | 2 | 3 => ...`
	Guard    Expression   // a boolean condition, e.g. `if (x > 0) => ...`
	IsElse   bool
	Body     *Block
}

func (a MatchArm) String() string {
	switch {
	case a.IsElse:
		return "else => " + a.Body.String()
	case a.Guard != nil:
		return "if (" + a.Guard.String() + ") => " + a.Body.String()
	default:
		var sb strings.Builder
		for i, lit := range a.Literals {
			if i > 0 {
				sb.WriteString(" | ")
			}
			sb.WriteString(lit.String())
		}
		sb.WriteString(" => ")
		sb.WriteString(a.Body.String())
		return sb.String()
	}
}

// Match is `match ( subject ) { arm... }`.
type Match struct {
	Token   lexer.Token
	Subject Expression
	Arms    []MatchArm
}

func (*Match) statementNode()        {}
func (m *Match) TokenLiteral() string { return m.Token.Literal }
func (m *Match) Pos() lexer.Position  { return m.Token.Pos }
func (m *Match) String() string {
	var sb strings.Builder
	sb.WriteString("match (")
	sb.WriteString(m.Subject.String())
	sb.WriteString(") {\n")
	for _, arm := range m.Arms {
		sb.WriteString(arm.String())
		sb.WriteString("\n")
	}
	sb.WriteString("}")
	return sb.String()
}

// Param is one entry of a FuncDef's parameter list.
type Param struct {
	Name string
	Type TypeExpr
}

// FuncDef is a top-level `fn [const] name ( params ) [=> Type] Block`.
type FuncDef struct {
	Token      lexer.Token
	Name       string
	IsConst    bool
	Params     []Param
	ReturnType TypeExpr // nil if the function returns nothing
	Body       *Block
}

func (*FuncDef) statementNode()        {}
func (f *FuncDef) TokenLiteral() string { return f.Token.Literal }
func (f *FuncDef) Pos() lexer.Position  { return f.Token.Pos }
func (f *FuncDef) String() string {
	var sb strings.Builder
	sb.WriteString("fn ")
	if f.IsConst {
		sb.WriteString("const ")
	}
	sb.WriteString(f.Name)
	sb.WriteString("(")
	for i, p := range f.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Name)
		sb.WriteString(": ")
		sb.WriteString(p.Type.String())
	}
	sb.WriteString(")")
	if f.ReturnType != nil {
		sb.WriteString(" => ")
		sb.WriteString(f.ReturnType.String())
	}
	sb.WriteString(" ")
	sb.WriteString(f.Body.String())
	return sb.String()
}

// Extern is a top-level `extern name ( name: Type, ... ) [=> Type] ;`
// declaration: a function with no body, resolved at link time. Only the
// parameter types are kept, so String renders them without names.
type Extern struct {
	Token      lexer.Token
	Name       string
	ParamTypes []TypeExpr
	ReturnType TypeExpr // nil if the function returns nothing
}

func (*Extern) statementNode()        {}
func (e *Extern) TokenLiteral() string { return e.Token.Literal }
func (e *Extern) Pos() lexer.Position  { return e.Token.Pos }
func (e *Extern) String() string {
	var sb strings.Builder
	sb.WriteString("extern ")
	sb.WriteString(e.Name)
	sb.WriteString("(")
	for i, p := range e.ParamTypes {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	sb.WriteString(")")
	if e.ReturnType != nil {
		sb.WriteString(" => ")
		sb.WriteString(e.ReturnType.String())
	}
	sb.WriteString(";")
	return sb.String()
}
