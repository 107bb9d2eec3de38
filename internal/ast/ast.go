// Package ast defines the Abstract Syntax Tree node types for Mole.
//
// The tree is a strict ownership tree: every child node belongs to
// exactly one parent, and nothing outside the parser mutates its shape
// after construction (the semantic checker only attaches annotations via
// TypedExpression; see SetResolvedType).
package ast

import (
	"bytes"
	"strings"

	"github.com/chr1sps/mole/internal/lexer"
)

// Node is the common interface every AST node implements.
type Node interface {
	// TokenLiteral returns the literal spelling of the node's leading
	// token, mostly useful in tests and debugging output.
	TokenLiteral() string
	// String renders the node back to Mole source, ignoring whitespace.
	String() string
	// Pos returns the position of the node's first token.
	Pos() lexer.Position
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action without itself producing
// a value.
type Statement interface {
	Node
	statementNode()
}

// Program is the root of the AST: the three ordered top-level
// collections spec.md names (globals, functions, externs), plus their
// original declaration order so printers/diagnostics can replay it.
type Program struct {
	Globals   []*VarDecl
	Functions []*FuncDef
	Externs   []*Extern

	// Order records each top-level declaration in source order, as one
	// of *VarDecl, *FuncDef, or *Extern, so error recovery and printing
	// don't need to re-interleave the three slices above.
	Order []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Order) > 0 {
		return p.Order[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer
	for i, stmt := range p.Order {
		if i > 0 {
			out.WriteString("\n")
		}
		out.WriteString(stmt.String())
	}
	return out.String()
}

// Pos is always (1,1): the program node represents the whole file.
func (p *Program) Pos() lexer.Position {
	return lexer.Position{Line: 1, Column: 1, Offset: 0}
}

func joinExprs(exprs []Expression) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

func joinStatements(stmts []Statement, sep string) string {
	parts := make([]string, len(stmts))
	for i, s := range stmts {
		parts[i] = s.String()
	}
	return strings.Join(parts, sep)
}
