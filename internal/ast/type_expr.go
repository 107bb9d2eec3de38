package ast

import (
	"strings"

	"github.com/chr1sps/mole/internal/lexer"
)

// RefSpec is the syntactic reference specifier preceding a base type in
// the `Type` grammar production (spec.md §4.3: `RefSpec := ε | "&" | "&" "mut"`).
type RefSpec int

const (
	RefNone RefSpec = iota
	RefShared
	RefMut
)

// TypeExpr is the parser's representation of the `Type` grammar
// production, before the semantic checker resolves it against
// types.Type. It is itself a small sum: either a base (possibly
// referenced) scalar type, or a function-pointer type.
type TypeExpr interface {
	Node
	typeExprNode()
}

// BaseTypeKeyword enumerates the keyword tokens the `BaseType` production
// accepts.
type BaseTypeKeyword int

const (
	BaseU32 BaseTypeKeyword = iota
	BaseI32
	BaseF64
	BaseBool
	BaseChar
	BaseStr
)

var baseTypeNames = map[BaseTypeKeyword]string{
	BaseU32: "u32", BaseI32: "i32", BaseF64: "f64",
	BaseBool: "bool", BaseChar: "char", BaseStr: "str",
}

func (b BaseTypeKeyword) String() string { return baseTypeNames[b] }

// SimpleTypeExpr is `RefSpec BaseType`.
type SimpleTypeExpr struct {
	Token lexer.Token
	Ref   RefSpec
	Base  BaseTypeKeyword
}

func (*SimpleTypeExpr) typeExprNode()          {}
func (t *SimpleTypeExpr) TokenLiteral() string { return t.Token.Literal }
func (t *SimpleTypeExpr) Pos() lexer.Position  { return t.Token.Pos }
func (t *SimpleTypeExpr) String() string {
	switch t.Ref {
	case RefShared:
		return "&" + t.Base.String()
	case RefMut:
		return "&mut " + t.Base.String()
	default:
		return t.Base.String()
	}
}

// FunctionTypeExpr is the `"fn" ["const"] "(" [Type...] ")" ["=>" Type]`
// production, used both as a standalone parameter/variable type and as
// the grammar backbone of a FuncDef's signature.
type FunctionTypeExpr struct {
	Token      lexer.Token
	IsConst    bool
	ParamTypes []TypeExpr
	ReturnType TypeExpr // nil if the function returns nothing
}

func (*FunctionTypeExpr) typeExprNode()          {}
func (t *FunctionTypeExpr) TokenLiteral() string { return t.Token.Literal }
func (t *FunctionTypeExpr) Pos() lexer.Position  { return t.Token.Pos }
func (t *FunctionTypeExpr) String() string {
	var sb strings.Builder
	sb.WriteString("fn")
	if t.IsConst {
		sb.WriteString(" const")
	}
	sb.WriteString("(")
	for i, p := range t.ParamTypes {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	sb.WriteString(")")
	if t.ReturnType != nil {
		sb.WriteString(" => ")
		sb.WriteString(t.ReturnType.String())
	}
	return sb.String()
}
