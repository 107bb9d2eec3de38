package parser

import "github.com/chr1sps/mole/internal/lexer"
import "github.com/chr1sps/mole/internal/ast"

var baseTypeKeywordFor = map[lexer.TokenType]ast.BaseTypeKeyword{
	lexer.U32: ast.BaseU32, lexer.I32: ast.BaseI32, lexer.F64: ast.BaseF64,
	lexer.BOOL: ast.BaseBool, lexer.CHAR: ast.BaseChar, lexer.STR: ast.BaseStr,
}

// parseType parses the `Type` production:
//
//	Type := "fn" ["const"] "(" [Type ("," Type)*] ")" ["=>" Type]
//	      | RefSpec BaseType
func (p *Parser) parseType() ast.TypeExpr {
	if p.curIs(lexer.FN) {
		return p.parseFunctionTypeExpr()
	}

	tok := p.cur
	ref := ast.RefNone
	if p.curIs(lexer.AMP) {
		p.nextToken()
		if p.curIs(lexer.MUT) {
			ref = ast.RefMut
			p.nextToken()
		} else {
			ref = ast.RefShared
		}
	}

	base, ok := baseTypeKeywordFor[p.cur.Type]
	if !ok {
		p.errorf("expected a base type, found %s", p.cur.Type)
		return nil
	}
	p.nextToken()
	return &ast.SimpleTypeExpr{Token: tok, Ref: ref, Base: base}
}

func (p *Parser) parseFunctionTypeExpr() ast.TypeExpr {
	tok := p.cur
	p.expect(lexer.FN)

	isConst := false
	if p.curIs(lexer.CONST) {
		isConst = true
		p.nextToken()
	}

	if !p.expect(lexer.LPAREN) {
		return nil
	}

	var params []ast.TypeExpr
	for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
		if t := p.parseType(); t != nil {
			params = append(params, t)
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

	var ret ast.TypeExpr
	if p.curIs(lexer.FAT_ARROW) {
		p.nextToken()
		ret = p.parseType()
	}

	return &ast.FunctionTypeExpr{Token: tok, IsConst: isConst, ParamTypes: params, ReturnType: ret}
}
