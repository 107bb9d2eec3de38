package parser

import (
	"github.com/chr1sps/mole/internal/ast"
	"github.com/chr1sps/mole/internal/lexer"
)

// parseStatement dispatches on the leading token to one of the Stmt
// alternatives in spec.md §4.3's grammar.
func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Type {
	case lexer.LET:
		return p.parseVarDecl()
	case lexer.RETURN:
		return p.parseReturn()
	case lexer.CONTINUE:
		return p.parseContinue()
	case lexer.BREAK:
		return p.parseBreak()
	case lexer.WHILE:
		return p.parseWhile()
	case lexer.IF:
		return p.parseIf()
	case lexer.MATCH:
		return p.parseMatch()
	case lexer.LBRACE:
		return p.parseBlock()
	default:
		return p.parseAssignOrExpr()
	}
}

// parseVarDecl parses `"let" ["mut"] IDENT [":" Type] ["=" Expr] ";"`,
// used both for a top-level Global and a local VarDecl statement.
func (p *Parser) parseVarDecl() *ast.VarDecl {
	tok := p.cur
	p.expect(lexer.LET)

	mut := false
	if p.curIs(lexer.MUT) {
		mut = true
		p.nextToken()
	}

	if !p.curIs(lexer.IDENT) {
		p.errorf("expected an identifier after 'let', found %s", p.cur.Type)
		p.synchronize()
		return nil
	}
	name := p.cur.Literal
	p.nextToken()

	var typeExpr ast.TypeExpr
	if p.curIs(lexer.COLON) {
		p.nextToken()
		typeExpr = p.parseType()
	}

	var value ast.Expression
	if p.curIs(lexer.ASSIGN) {
		p.nextToken()
		value = p.parseExpression(LOWEST)
	}

	if !p.expect(lexer.SEMICOLON) {
		p.synchronize()
	}

	return &ast.VarDecl{Token: tok, Name: name, Mut: mut, Type: typeExpr, Value: value}
}

func (p *Parser) parseReturn() *ast.Return {
	tok := p.cur
	p.nextToken()

	var value ast.Expression
	if !p.curIs(lexer.SEMICOLON) {
		value = p.parseExpression(LOWEST)
	}
	if !p.expect(lexer.SEMICOLON) {
		p.synchronize()
	}
	return &ast.Return{Token: tok, Value: value}
}

func (p *Parser) parseContinue() *ast.Continue {
	tok := p.cur
	p.nextToken()
	if !p.expect(lexer.SEMICOLON) {
		p.synchronize()
	}
	return &ast.Continue{Token: tok}
}

func (p *Parser) parseBreak() *ast.Break {
	tok := p.cur
	p.nextToken()
	if !p.expect(lexer.SEMICOLON) {
		p.synchronize()
	}
	return &ast.Break{Token: tok}
}

// parseWhile parses `"while" "(" Expr ")" Stmt`; the body is normalized
// to a Block even when the grammar's Stmt production permits any single
// statement, keeping *ast.While.Body uniform for the checker/codegen.
func (p *Parser) parseWhile() *ast.While {
	tok := p.cur
	p.nextToken()
	if !p.expect(lexer.LPAREN) {
		return nil
	}
	cond := p.parseExpression(LOWEST)
	if !p.expect(lexer.RPAREN) {
		return nil
	}
	body := p.parseStatementAsBlock()
	return &ast.While{Token: tok, Cond: cond, Body: body}
}

// parseIf parses `"if" "(" Expr ")" Stmt ["else" Stmt]`.
func (p *Parser) parseIf() *ast.If {
	tok := p.cur
	p.nextToken()
	if !p.expect(lexer.LPAREN) {
		return nil
	}
	cond := p.parseExpression(LOWEST)
	if !p.expect(lexer.RPAREN) {
		return nil
	}
	then := p.parseStatementAsBlock()

	var elseStmt ast.Statement
	if p.curIs(lexer.ELSE) {
		p.nextToken()
		if p.curIs(lexer.IF) {
			elseStmt = p.parseIf()
		} else {
			elseStmt = p.parseStatementAsBlock()
		}
	}
	return &ast.If{Token: tok, Cond: cond, Then: then, Else: elseStmt}
}

// parseMatch parses `"match" "(" Expr ")" "{" MatchArm* "}"`.
func (p *Parser) parseMatch() *ast.Match {
	tok := p.cur
	p.nextToken()
	if !p.expect(lexer.LPAREN) {
		return nil
	}
	subject := p.parseExpression(LOWEST)
	if !p.expect(lexer.RPAREN) {
		return nil
	}
	if !p.expect(lexer.LBRACE) {
		return nil
	}

	var arms []ast.MatchArm
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		arm := p.parseMatchArm()
		arms = append(arms, arm)
	}
	if !p.expect(lexer.RBRACE) {
		return nil
	}
	return &ast.Match{Token: tok, Subject: subject, Arms: arms}
}

// parseMatchArm parses one of LiteralArm, GuardArm, or ElseArm:
//
//	LiteralArm := Expr ("|" Expr)* "=>" Stmt
//	GuardArm   := "if" "(" Expr ")" "=>" Stmt
//	ElseArm    := "else" "=>" Stmt
//
// Each pattern of a LiteralArm is parsed with a precedence floor of
// BIT_OR_PREC, so "|" separates patterns instead of folding them into a
// BIT_OR binary expression the way it would at statement-expression
// scope; every pattern is kept and tested against the scrutinee in turn.
func (p *Parser) parseMatchArm() ast.MatchArm {
	if p.curIs(lexer.ELSE) {
		p.nextToken()
		p.expect(lexer.FAT_ARROW)
		return ast.MatchArm{IsElse: true, Body: p.parseStatementAsBlock()}
	}
	if p.curIs(lexer.IF) {
		p.nextToken()
		p.expect(lexer.LPAREN)
		guard := p.parseExpression(LOWEST)
		p.expect(lexer.RPAREN)
		p.expect(lexer.FAT_ARROW)
		return ast.MatchArm{Guard: guard, Body: p.parseStatementAsBlock()}
	}

	literals := []ast.Expression{p.parseExpression(BIT_OR_PREC)}
	for p.curIs(lexer.PIPE) {
		p.nextToken()
		literals = append(literals, p.parseExpression(BIT_OR_PREC))
	}
	p.expect(lexer.FAT_ARROW)
	return ast.MatchArm{Literals: literals, Body: p.parseStatementAsBlock()}
}

// parseBlock parses `"{" { Stmt } "}"`.
func (p *Parser) parseBlock() *ast.Block {
	tok := p.cur
	p.expect(lexer.LBRACE)

	var stmts []ast.Statement
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	if !p.expect(lexer.RBRACE) {
		p.synchronize()
	}
	return &ast.Block{Token: tok, Stmts: stmts}
}

// parseStatementAsBlock normalizes any single Stmt to a *ast.Block,
// wrapping a non-brace statement in a synthetic one-statement block.
func (p *Parser) parseStatementAsBlock() *ast.Block {
	if p.curIs(lexer.LBRACE) {
		return p.parseBlock()
	}
	tok := p.cur
	stmt := p.parseStatement()
	if stmt == nil {
		return &ast.Block{Token: tok}
	}
	return &ast.Block{Token: tok, Stmts: []ast.Statement{stmt}}
}

// parseAssignOrExpr parses `AssignOrExpr := Expr [AssignOp Expr] ";"`.
func (p *Parser) parseAssignOrExpr() ast.Statement {
	tok := p.cur
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		p.synchronize()
		if p.cur.Pos == tok.Pos && !p.curIs(lexer.RBRACE) {
			// synchronize stopped on the very token that failed to parse
			// (a stray fn/extern inside a block); skip it so the
			// enclosing loop makes progress.
			p.nextToken()
		}
		return nil
	}

	if op, ok := assignOpFor[p.cur.Type]; ok {
		p.nextToken()
		value := p.parseExpression(LOWEST)
		if !p.expect(lexer.SEMICOLON) {
			p.synchronize()
		}
		return &ast.Assign{Token: tok, Target: expr, Op: op, Value: value}
	}

	if !p.expect(lexer.SEMICOLON) {
		p.synchronize()
	}
	return &ast.ExprStmt{Token: tok, Expr: expr}
}

// parseParams parses `Params := [ Param ("," Param)* ]`.
func (p *Parser) parseParams() []ast.Param {
	var params []ast.Param
	for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
		if !p.curIs(lexer.IDENT) {
			p.errorf("expected a parameter name, found %s", p.cur.Type)
			break
		}
		name := p.cur.Literal
		p.nextToken()
		if !p.expect(lexer.COLON) {
			break
		}
		typeExpr := p.parseType()
		params = append(params, ast.Param{Name: name, Type: typeExpr})
		if p.curIs(lexer.COMMA) {
			p.nextToken()
			continue
		}
		break
	}
	return params
}

// parseFuncDef parses `"fn" ["const"] IDENT "(" Params ")" ["=>" Type] Block`.
func (p *Parser) parseFuncDef() *ast.FuncDef {
	tok := p.cur
	p.expect(lexer.FN)

	isConst := false
	if p.curIs(lexer.CONST) {
		isConst = true
		p.nextToken()
	}

	if !p.curIs(lexer.IDENT) {
		p.errorf("expected a function name, found %s", p.cur.Type)
		p.synchronize()
		return nil
	}
	name := p.cur.Literal
	p.nextToken()

	if !p.expect(lexer.LPAREN) {
		p.synchronize()
		return nil
	}
	params := p.parseParams()
	if !p.expect(lexer.RPAREN) {
		p.synchronize()
		return nil
	}

	var ret ast.TypeExpr
	if p.curIs(lexer.FAT_ARROW) {
		p.nextToken()
		ret = p.parseType()
	}

	body := p.parseBlock()
	return &ast.FuncDef{Token: tok, Name: name, IsConst: isConst, Params: params, ReturnType: ret, Body: body}
}

// parseExtern parses `"extern" IDENT "(" Params ")" ["=>" Type] ";"`.
// spec.md's grammar gives Params here, but an extern declaration has no
// parameter names to bind, only the parameter types in order, so each
// Param's name is discarded and only its Type is kept.
func (p *Parser) parseExtern() *ast.Extern {
	tok := p.cur
	p.expect(lexer.EXTERN)

	if !p.curIs(lexer.IDENT) {
		p.errorf("expected an extern function name, found %s", p.cur.Type)
		p.synchronize()
		return nil
	}
	name := p.cur.Literal
	p.nextToken()

	if !p.expect(lexer.LPAREN) {
		p.synchronize()
		return nil
	}
	params := p.parseParams()
	if !p.expect(lexer.RPAREN) {
		p.synchronize()
		return nil
	}

	var ret ast.TypeExpr
	if p.curIs(lexer.FAT_ARROW) {
		p.nextToken()
		ret = p.parseType()
	}

	if !p.expect(lexer.SEMICOLON) {
		p.synchronize()
	}

	paramTypes := make([]ast.TypeExpr, len(params))
	for i, pa := range params {
		paramTypes[i] = pa.Type
	}
	return &ast.Extern{Token: tok, Name: name, ParamTypes: paramTypes, ReturnType: ret}
}
