package ast

import (
	"strconv"
	"strings"

	"github.com/chr1sps/mole/internal/lexer"
	"github.com/chr1sps/mole/internal/types"
)

// typeAnnotation is embedded in every expression node and holds the
// semantic checker's verdict: resolved type, assignability, and
// initialization state. It is attached without mutating the tree's
// shape, per spec.md's ownership rules.
type typeAnnotation struct {
	resolvedType types.Type
	assignable   bool
	initialized  bool
}

// TypedExpression lets the semantic checker attach (and the code
// generator read) the outcome of type resolution without a parallel
// data structure keyed by node identity.
type TypedExpression interface {
	Expression
	ResolvedType() types.Type
	SetResolvedType(t types.Type)
	Assignable() bool
	SetAssignable(b bool)
	Initialized() bool
	SetInitialized(b bool)
}

func (a *typeAnnotation) ResolvedType() types.Type     { return a.resolvedType }
func (a *typeAnnotation) SetResolvedType(t types.Type) { a.resolvedType = t }
func (a *typeAnnotation) Assignable() bool             { return a.assignable }
func (a *typeAnnotation) SetAssignable(b bool)         { a.assignable = b }
func (a *typeAnnotation) Initialized() bool            { return a.initialized }
func (a *typeAnnotation) SetInitialized(b bool)         { a.initialized = b }

// Variable is a bare identifier used as an expression.
type Variable struct {
	typeAnnotation
	Token lexer.Token
	Name  string
}

func (*Variable) expressionNode()        {}
func (v *Variable) TokenLiteral() string { return v.Token.Literal }
func (v *Variable) Pos() lexer.Position  { return v.Token.Pos }
func (v *Variable) String() string       { return v.Name }

// U32Literal is an unsigned integer literal (spec.md: always U32-typed,
// carrying the low 64 bits on overflow).
type U32Literal struct {
	typeAnnotation
	Token lexer.Token
	Value uint64
}

func (*U32Literal) expressionNode()        {}
func (l *U32Literal) TokenLiteral() string { return l.Token.Literal }
func (l *U32Literal) Pos() lexer.Position  { return l.Token.Pos }
func (l *U32Literal) String() string       { return strconv.FormatUint(l.Value, 10) }

// F64Literal is a floating-point literal.
type F64Literal struct {
	typeAnnotation
	Token lexer.Token
	Value float64
}

func (*F64Literal) expressionNode()        {}
func (l *F64Literal) TokenLiteral() string { return l.Token.Literal }
func (l *F64Literal) Pos() lexer.Position  { return l.Token.Pos }
func (l *F64Literal) String() string {
	s := strconv.FormatFloat(l.Value, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// StringLiteral is always STR-reference typed; there is no owned str
// value (spec.md §3).
type StringLiteral struct {
	typeAnnotation
	Token lexer.Token
	Value string
}

func (*StringLiteral) expressionNode()        {}
func (l *StringLiteral) TokenLiteral() string { return l.Token.Literal }
func (l *StringLiteral) Pos() lexer.Position  { return l.Token.Pos }
func (l *StringLiteral) String() string       { return strconv.Quote(l.Value) }

// CharLiteral is a single wide-character literal.
type CharLiteral struct {
	typeAnnotation
	Token lexer.Token
	Value rune
}

func (*CharLiteral) expressionNode()        {}
func (l *CharLiteral) TokenLiteral() string { return l.Token.Literal }
func (l *CharLiteral) Pos() lexer.Position  { return l.Token.Pos }
func (l *CharLiteral) String() string       { return "'" + string(l.Value) + "'" }

// BoolLiteral is `true` or `false`.
type BoolLiteral struct {
	typeAnnotation
	Token lexer.Token
	Value bool
}

func (*BoolLiteral) expressionNode()        {}
func (l *BoolLiteral) TokenLiteral() string { return l.Token.Literal }
func (l *BoolLiteral) Pos() lexer.Position  { return l.Token.Pos }
func (l *BoolLiteral) String() string       { return strconv.FormatBool(l.Value) }

// Binary is a binary operator expression.
type Binary struct {
	typeAnnotation
	Token lexer.Token
	Op    BinOp
	LHS   Expression
	RHS   Expression
}

func (*Binary) expressionNode()        {}
func (b *Binary) TokenLiteral() string { return b.Token.Literal }
func (b *Binary) Pos() lexer.Position  { return b.Token.Pos }
func (b *Binary) String() string {
	return "(" + b.LHS.String() + " " + b.Op.String() + " " + b.RHS.String() + ")"
}

// Unary is a prefix unary operator expression.
type Unary struct {
	typeAnnotation
	Token lexer.Token
	Op    UnaryOp
	Expr  Expression
}

func (*Unary) expressionNode()        {}
func (u *Unary) TokenLiteral() string { return u.Token.Literal }
func (u *Unary) Pos() lexer.Position  { return u.Token.Pos }
func (u *Unary) String() string       { return "(" + u.Op.String() + u.Expr.String() + ")" }

// Call is a direct function call: `callable(args...)`.
type Call struct {
	typeAnnotation
	Token    lexer.Token
	Callable Expression
	Args     []Expression
}

func (*Call) expressionNode()        {}
func (c *Call) TokenLiteral() string { return c.Token.Literal }
func (c *Call) Pos() lexer.Position  { return c.Token.Pos }
func (c *Call) String() string {
	return c.Callable.String() + "(" + joinExprs(c.Args) + ")"
}

// LambdaArg is one element of a lambda call's argument list: either a
// concrete expression, or a hole (the `_` placeholder).
type LambdaArg struct {
	Expr   Expression // nil when IsHole
	IsHole bool
}

func (a LambdaArg) String() string {
	if a.IsHole {
		return "_"
	}
	return a.Expr.String()
}

// LambdaCall is `callable@(args)`, where some arguments may be holes and
// the list may end with an ellipsis marking "all remaining parameters
// are holes".
type LambdaCall struct {
	typeAnnotation
	Token      lexer.Token
	Callable   Expression
	Args       []LambdaArg
	IsEllipsis bool
}

func (*LambdaCall) expressionNode()        {}
func (l *LambdaCall) TokenLiteral() string { return l.Token.Literal }
func (l *LambdaCall) Pos() lexer.Position  { return l.Token.Pos }
func (l *LambdaCall) String() string {
	parts := make([]string, len(l.Args))
	for i, a := range l.Args {
		parts[i] = a.String()
	}
	s := l.Callable.String() + "@(" + strings.Join(parts, ", ")
	if l.IsEllipsis {
		if len(l.Args) > 0 {
			s += ", "
		}
		s += "..."
	}
	return s + ")"
}

// Index is `expr[index]`, defined only on string references (spec.md
// §4.4), producing a CHAR.
type Index struct {
	typeAnnotation
	Token lexer.Token
	Expr  Expression
	Idx   Expression
}

func (*Index) expressionNode()        {}
func (i *Index) TokenLiteral() string { return i.Token.Literal }
func (i *Index) Pos() lexer.Position  { return i.Token.Pos }
func (i *Index) String() string       { return i.Expr.String() + "[" + i.Idx.String() + "]" }

// Cast is `expr as Type`.
type Cast struct {
	typeAnnotation
	Token  lexer.Token
	Expr   Expression
	Target TypeExpr
}

func (*Cast) expressionNode()        {}
func (c *Cast) TokenLiteral() string { return c.Token.Literal }
func (c *Cast) Pos() lexer.Position  { return c.Token.Pos }
func (c *Cast) String() string       { return c.Expr.String() + " as " + c.Target.String() }
