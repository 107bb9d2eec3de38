// Package parser turns a Mole token stream into a Program AST.
//
// Expression parsing follows a Pratt-style precedence climb, mirroring
// the prefix/infix function table dispatch the teacher's DWScript
// parser uses; statement parsing is hand-written recursive descent over
// the grammar in spec.md §4.3. Errors are recovered panic-mode: on an
// unexpected token, synchronize skips to the next statement terminator
// and parsing continues so the caller sees every syntax error in one
// run, not just the first.
package parser

import (
	"github.com/chr1sps/mole/internal/ast"
	"github.com/chr1sps/mole/internal/diag"
	"github.com/chr1sps/mole/internal/lexer"
)

// Precedence levels, lowest to highest, per spec.md §4.3's table.
const (
	LOWEST int = iota
	OR_PREC
	AND_PREC
	EQUALS_PREC
	BIT_OR_PREC
	BIT_XOR_PREC
	BIT_AND_PREC
	SHIFT_PREC
	SUM_PREC
	PRODUCT_PREC
	EXP_PREC
	POSTFIX_PREC
)

var precedences = map[lexer.TokenType]int{
	lexer.PIPE_PIPE: OR_PREC,
	lexer.AMP_AMP:   AND_PREC,
	lexer.EQ:        EQUALS_PREC,
	lexer.NEQ:       EQUALS_PREC,
	lexer.LT:        EQUALS_PREC,
	lexer.LE:        EQUALS_PREC,
	lexer.GT:        EQUALS_PREC,
	lexer.GE:        EQUALS_PREC,
	lexer.PIPE:      BIT_OR_PREC,
	lexer.CARET:     BIT_XOR_PREC,
	lexer.AMP:       BIT_AND_PREC,
	lexer.SHL:       SHIFT_PREC,
	lexer.SHR:       SHIFT_PREC,
	lexer.PLUS:      SUM_PREC,
	lexer.MINUS:     SUM_PREC,
	lexer.STAR:      PRODUCT_PREC,
	lexer.SLASH:     PRODUCT_PREC,
	lexer.PERCENT:   PRODUCT_PREC,
	lexer.CARET_CARET: EXP_PREC,
	lexer.LPAREN:    POSTFIX_PREC,
	lexer.AT:        POSTFIX_PREC,
	lexer.LBRACKET:  POSTFIX_PREC,
	lexer.AS:        POSTFIX_PREC,
}

var binOpFor = map[lexer.TokenType]ast.BinOp{
	lexer.PLUS: ast.ADD, lexer.MINUS: ast.SUB, lexer.STAR: ast.MUL,
	lexer.SLASH: ast.DIV, lexer.PERCENT: ast.MOD, lexer.CARET_CARET: ast.EXP,
	lexer.EQ: ast.EQ, lexer.NEQ: ast.NEQ, lexer.GT: ast.GT, lexer.GE: ast.GE,
	lexer.LT: ast.LT, lexer.LE: ast.LE, lexer.AMP_AMP: ast.AND, lexer.PIPE_PIPE: ast.OR,
	lexer.AMP: ast.BIT_AND, lexer.PIPE: ast.BIT_OR, lexer.CARET: ast.BIT_XOR,
	lexer.SHL: ast.SHL, lexer.SHR: ast.SHR,
}

var assignOpFor = map[lexer.TokenType]ast.AssignOp{
	lexer.ASSIGN: ast.ASSIGN_NORMAL, lexer.PLUS_EQ: ast.ASSIGN_PLUS,
	lexer.MINUS_EQ: ast.ASSIGN_MINUS, lexer.STAR_EQ: ast.ASSIGN_MUL,
	lexer.SLASH_EQ: ast.ASSIGN_DIV, lexer.PERCENT_EQ: ast.ASSIGN_MOD,
	lexer.CARET_CARET_EQ: ast.ASSIGN_EXP, lexer.AMP_EQ: ast.ASSIGN_BIT_AND,
	lexer.PIPE_EQ: ast.ASSIGN_BIT_OR, lexer.CARET_EQ: ast.ASSIGN_BIT_XOR,
	lexer.SHL_EQ: ast.ASSIGN_SHL, lexer.SHR_EQ: ast.ASSIGN_SHR,
}

// Parser consumes tokens from a lexer.Lexer, one at a time, keeping the
// current and next token (the teacher's curToken/peekToken idiom) so
// every production can make a one-token lookahead decision without
// re-scanning.
type Parser struct {
	l    *lexer.Lexer
	sink *diag.Sink

	cur  lexer.Token
	peek lexer.Token
}

// New creates a Parser reading from l and reporting diagnostics to sink.
func New(l *lexer.Lexer, sink *diag.Sink) *Parser {
	p := &Parser{l: l, sink: sink}
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.cur = p.peek
	p.peek = p.l.Next()
}

func (p *Parser) curIs(t lexer.TokenType) bool  { return p.cur.Type == t }
func (p *Parser) peekIs(t lexer.TokenType) bool { return p.peek.Type == t }

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peek.Type]; ok {
		return prec
	}
	return LOWEST
}

// expect advances past cur if it matches t, else emits a diagnostic and
// leaves the cursor in place for the caller to decide how to recover.
func (p *Parser) expect(t lexer.TokenType) bool {
	if p.curIs(t) {
		p.nextToken()
		return true
	}
	p.errorf("expected %s, found %s", t, p.cur.Type)
	return false
}

func (p *Parser) errorf(format string, args ...any) {
	p.sink.Addf(diag.Syntax, p.cur.Pos, diag.Error, format, args...)
}

// synchronize implements the panic-mode recovery spec.md §4.3 prescribes:
// skip tokens until a statement terminator (';', '}') or the start of a
// top-level declaration keyword (fn/extern/let), then stop so the caller
// resumes at a clean boundary.
func (p *Parser) synchronize() {
	for {
		switch p.cur.Type {
		case lexer.SEMICOLON:
			p.nextToken()
			return
		case lexer.RBRACE, lexer.EOF, lexer.FN, lexer.EXTERN, lexer.LET:
			return
		}
		p.nextToken()
	}
}

// ParseProgram parses an entire source file: a sequence of globals,
// externs, and function definitions, in any order, per spec.md §4.3's
// `Program := { Global | Extern | FuncDef }`.
func ParseProgram(l *lexer.Lexer, sink *diag.Sink) *ast.Program {
	p := New(l, sink)
	prog := &ast.Program{}

	for !p.curIs(lexer.EOF) {
		switch p.cur.Type {
		case lexer.LET:
			if g := p.parseVarDecl(); g != nil {
				prog.Globals = append(prog.Globals, g)
				prog.Order = append(prog.Order, g)
			}
		case lexer.EXTERN:
			if e := p.parseExtern(); e != nil {
				prog.Externs = append(prog.Externs, e)
				prog.Order = append(prog.Order, e)
			}
		case lexer.FN:
			if f := p.parseFuncDef(); f != nil {
				prog.Functions = append(prog.Functions, f)
				prog.Order = append(prog.Order, f)
			}
		default:
			p.errorf("expected a top-level declaration (let/extern/fn), found %s", p.cur.Type)
			p.synchronize()
			if p.curIs(lexer.RBRACE) {
				// synchronize stops on '}' without consuming it; a stray
				// '}' at top level closes nothing, so skip it here.
				p.nextToken()
			}
		}
	}

	return prog
}
