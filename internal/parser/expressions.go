package parser

import (
	"github.com/chr1sps/mole/internal/ast"
	"github.com/chr1sps/mole/internal/lexer"
)

// parseExpression implements Pratt-style precedence climbing: parse a
// prefix/primary expression, then keep folding in infix/postfix
// operators whose precedence exceeds minPrec.
func (p *Parser) parseExpression(minPrec int) ast.Expression {
	left := p.parsePrefix()
	if left == nil {
		return nil
	}

	for !p.curIs(lexer.SEMICOLON) && minPrec < p.curPrecedence() {
		switch p.cur.Type {
		case lexer.LPAREN:
			left = p.parseCall(left)
		case lexer.AT:
			left = p.parseLambdaCall(left)
		case lexer.LBRACKET:
			left = p.parseIndex(left)
		case lexer.AS:
			left = p.parseCast(left)
		default:
			left = p.parseBinary(left)
		}
		if left == nil {
			return nil
		}
	}

	return left
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.cur.Type]; ok {
		return prec
	}
	return LOWEST
}

// parsePrefix parses a Primary, or a unary-prefixed Primary:
//
//	Primary := literal | "(" Expr ")" | IDENT
//	unary-prefix primary
func (p *Parser) parsePrefix() ast.Expression {
	tok := p.cur

	switch tok.Type {
	case lexer.INT_LIT:
		p.nextToken()
		return &ast.U32Literal{Token: tok, Value: tok.IntValue}
	case lexer.FLOAT_LIT:
		p.nextToken()
		return &ast.F64Literal{Token: tok, Value: tok.FloatValue}
	case lexer.STRING_LIT:
		p.nextToken()
		return &ast.StringLiteral{Token: tok, Value: tok.StringValue}
	case lexer.CHAR_LIT:
		p.nextToken()
		return &ast.CharLiteral{Token: tok, Value: tok.CharValue}
	case lexer.TRUE:
		p.nextToken()
		return &ast.BoolLiteral{Token: tok, Value: true}
	case lexer.FALSE:
		p.nextToken()
		return &ast.BoolLiteral{Token: tok, Value: false}
	case lexer.IDENT:
		p.nextToken()
		return &ast.Variable{Token: tok, Name: tok.Literal}
	case lexer.LPAREN:
		p.nextToken()
		expr := p.parseExpression(LOWEST)
		if !p.expect(lexer.RPAREN) {
			return nil
		}
		return expr
	case lexer.PLUS_PLUS:
		return p.parseUnary(tok, ast.INC)
	case lexer.MINUS_MINUS:
		return p.parseUnary(tok, ast.DEC)
	case lexer.BANG:
		return p.parseUnary(tok, ast.NEG)
	case lexer.TILDE:
		return p.parseUnary(tok, ast.BIT_NEG)
	case lexer.MINUS:
		return p.parseUnary(tok, ast.UMINUS)
	case lexer.STAR:
		return p.parseUnary(tok, ast.UDEREF)
	case lexer.AMP:
		// The unary '&' greedily reads 'mut' only when the lexer produced a
		// separate MUT keyword token; an identifier like "mut5" is already
		// a single IDENT token, so this check alone enforces the
		// whitespace-sensitivity spec.md describes.
		p.nextToken()
		op := ast.UREF
		if p.curIs(lexer.MUT) {
			op = ast.UMUT_REF
			p.nextToken()
		}
		operand := p.parseExpression(POSTFIX_PREC - 1)
		if operand == nil {
			return nil
		}
		return &ast.Unary{Token: tok, Op: op, Expr: operand}
	default:
		p.errorf("unexpected token %s in expression", tok.Type)
		return nil
	}
}

func (p *Parser) parseUnary(tok lexer.Token, op ast.UnaryOp) ast.Expression {
	p.nextToken()
	operand := p.parseExpression(POSTFIX_PREC - 1)
	if operand == nil {
		return nil
	}
	return &ast.Unary{Token: tok, Op: op, Expr: operand}
}

func (p *Parser) parseBinary(left ast.Expression) ast.Expression {
	tok := p.cur
	op, ok := binOpFor[tok.Type]
	if !ok {
		p.errorf("unexpected operator %s", tok.Type)
		return nil
	}
	prec := p.curPrecedence()
	p.nextToken()

	// '^^' is right-associative (spec.md §4.3): the recursive call uses
	// prec-1 as its floor so a further '^^' on the right keeps nesting
	// instead of folding left. Every other operator is left-associative:
	// the recursive call uses prec itself, so an operator of the same
	// precedence on the right stops the recursion and folds left in the
	// outer loop instead.
	nextMinPrec := prec
	if op == ast.EXP {
		nextMinPrec--
	}
	right := p.parseExpression(nextMinPrec)
	if right == nil {
		return nil
	}
	return &ast.Binary{Token: tok, Op: op, LHS: left, RHS: right}
}

// parseCall parses the postfix `"(" args ")"` production for a plain
// call, per spec.md §4.3's postfix chain.
func (p *Parser) parseCall(callable ast.Expression) ast.Expression {
	tok := p.cur
	p.nextToken() // consume '('

	var args []ast.Expression
	for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
		arg := p.parseExpression(LOWEST)
		if arg == nil {
			return nil
		}
		args = append(args, arg)
		if p.curIs(lexer.COMMA) {
			p.nextToken()
			continue
		}
		break
	}
	if !p.expect(lexer.RPAREN) {
		return nil
	}
	return &ast.Call{Token: tok, Callable: callable, Args: args}
}

// parseLambdaCall parses `"@" "(" LambdaArgs ")"`. A lambda argument is
// either an expression or the placeholder '_' hole; the list may end
// with a trailing ", ..." marking every remaining parameter as a hole.
func (p *Parser) parseLambdaCall(callable ast.Expression) ast.Expression {
	tok := p.cur
	p.nextToken() // consume '@'
	if !p.expect(lexer.LPAREN) {
		return nil
	}

	var args []ast.LambdaArg
	isEllipsis := false
	for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
		if p.curIs(lexer.ELLIPSIS) {
			isEllipsis = true
			p.nextToken()
			break
		}
		if p.curIs(lexer.PLACEHOLDER) {
			args = append(args, ast.LambdaArg{IsHole: true})
			p.nextToken()
		} else {
			expr := p.parseExpression(LOWEST)
			if expr == nil {
				return nil
			}
			args = append(args, ast.LambdaArg{Expr: expr})
		}
		if p.curIs(lexer.COMMA) {
			p.nextToken()
			continue
		}
		break
	}
	if !p.expect(lexer.RPAREN) {
		return nil
	}
	return &ast.LambdaCall{Token: tok, Callable: callable, Args: args, IsEllipsis: isEllipsis}
}

// parseIndex parses the postfix `"[" Expr "]"` production.
func (p *Parser) parseIndex(target ast.Expression) ast.Expression {
	tok := p.cur
	p.nextToken() // consume '['
	idx := p.parseExpression(LOWEST)
	if idx == nil {
		return nil
	}
	if !p.expect(lexer.RBRACKET) {
		return nil
	}
	return &ast.Index{Token: tok, Expr: target, Idx: idx}
}

// parseCast parses the postfix `"as" Type` production.
func (p *Parser) parseCast(expr ast.Expression) ast.Expression {
	tok := p.cur
	p.nextToken() // consume 'as'
	target := p.parseType()
	if target == nil {
		return nil
	}
	return &ast.Cast{Token: tok, Expr: expr, Target: target}
}
