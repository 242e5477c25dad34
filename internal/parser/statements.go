package parser

import (
	"github.com/arborlang/tscore/internal/ast"
	"github.com/arborlang/tscore/internal/token"
)

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Kind {
	case token.LET, token.CONST:
		return p.parseVarDecl()
	case token.FUNCTION:
		return p.parseFunctionDecl()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.FOR:
		return p.parseForOfStatement()
	case token.LBRACE:
		return p.parseBlockStatement()
	case token.INTERFACE:
		return p.parseInterfaceDecl()
	case token.TYPE:
		return p.parseTypeAliasDecl()
	case token.ENUM:
		return p.parseEnumDecl()
	case token.SEMI:
		return nil
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseVarDecl() *ast.VarDecl {
	tok := p.cur
	isConst := tok.Kind == token.CONST
	decl := &ast.VarDecl{Token: tok, Const: isConst}
	if !p.expect(token.IDENT) {
		return decl
	}
	decl.Name = &ast.Identifier{Token: p.cur, Value: p.cur.Lexeme}

	if p.peekIs(token.COLON) {
		p.next()
		p.next()
		decl.Annot = p.parseTypeNode(LOWEST)
	}
	if p.peekIs(token.ASSIGN) {
		p.next()
		p.next()
		decl.Init = p.parseExpression(ASSIGNMENT)
	}
	p.skipSemi()
	return decl
}

func (p *Parser) parseParamList() []*ast.Param {
	var params []*ast.Param
	if !p.curIs(token.LPAREN) && !p.expect(token.LPAREN) {
		return params
	}
	if p.peekIs(token.RPAREN) {
		p.next()
		return params
	}
	p.next()
	for {
		param := &ast.Param{}
		if p.curIs(token.ELLIPSIS) {
			param.Rest = true
			p.next()
		}
		param.Name = &ast.Identifier{Token: p.cur, Value: p.cur.Lexeme}
		if p.peekIs(token.QUESTION) {
			param.Optional = true
			p.next()
		}
		if p.peekIs(token.COLON) {
			p.next()
			p.next()
			param.Annot = p.parseTypeNode(LOWEST)
		}
		params = append(params, param)
		if !p.peekIs(token.COMMA) {
			break
		}
		p.next()
		p.next()
	}
	p.expect(token.RPAREN)
	return params
}

func (p *Parser) parseTypeParams() []*ast.TypeParamDecl {
	if !p.peekIs(token.LT) {
		return nil
	}
	p.next()
	var out []*ast.TypeParamDecl
	p.next()
	for {
		tp := &ast.TypeParamDecl{Name: &ast.Identifier{Token: p.cur, Value: p.cur.Lexeme}}
		if p.peekIs(token.IDENT) && p.peek.Lexeme == "extends" {
			p.next()
			p.next()
			tp.Constraint = p.parseTypeNode(LOWEST)
		}
		if p.peekIs(token.ASSIGN) {
			p.next()
			p.next()
			tp.Default = p.parseTypeNode(LOWEST)
		}
		out = append(out, tp)
		if !p.peekIs(token.COMMA) {
			break
		}
		p.next()
		p.next()
	}
	p.expectGT()
	return out
}

func (p *Parser) parseFunctionDecl() *ast.FunctionDecl {
	tok := p.cur
	decl := &ast.FunctionDecl{Token: tok}
	if !p.expect(token.IDENT) {
		return decl
	}
	decl.Name = &ast.Identifier{Token: p.cur, Value: p.cur.Lexeme}
	decl.TypeParams = p.parseTypeParams()
	decl.Params = p.parseParamList()
	if p.peekIs(token.COLON) {
		p.next()
		p.next()
		decl.ReturnType, decl.Predicate = p.parseReturnTypeNode()
	}
	if p.peekIs(token.LBRACE) {
		p.next()
		decl.Body = p.parseBlockStatement()
	}
	return decl
}

func (p *Parser) parseReturnStatement() *ast.ReturnStatement {
	stmt := &ast.ReturnStatement{Token: p.cur}
	if p.peekIs(token.SEMI) || p.peekIs(token.RBRACE) {
		p.skipSemi()
		return stmt
	}
	p.next()
	stmt.Value = p.parseExpression(LOWEST)
	p.skipSemi()
	return stmt
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	block := &ast.BlockStatement{Token: p.cur}
	p.next()
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		if stmt := p.parseStatement(); stmt != nil {
			block.Body = append(block.Body, stmt)
		}
		p.next()
	}
	return block
}

func (p *Parser) parseIfStatement() *ast.IfStatement {
	stmt := &ast.IfStatement{Token: p.cur}
	p.expect(token.LPAREN)
	p.next()
	stmt.Condition = p.parseExpression(LOWEST)
	p.expect(token.RPAREN)
	p.expect(token.LBRACE)
	stmt.Consequence = p.parseBlockStatement()
	if p.peekIs(token.ELSE) {
		p.next()
		if p.peekIs(token.IF) {
			p.next()
			stmt.Alternative = p.parseIfStatement()
		} else {
			p.expect(token.LBRACE)
			stmt.Alternative = p.parseBlockStatement()
		}
	}
	return stmt
}

func (p *Parser) parseWhileStatement() *ast.WhileStatement {
	stmt := &ast.WhileStatement{Token: p.cur}
	p.expect(token.LPAREN)
	p.next()
	stmt.Condition = p.parseExpression(LOWEST)
	p.expect(token.RPAREN)
	p.expect(token.LBRACE)
	stmt.Body = p.parseBlockStatement()
	return stmt
}

func (p *Parser) parseForOfStatement() *ast.ForOfStatement {
	stmt := &ast.ForOfStatement{Token: p.cur}
	p.expect(token.LPAREN)
	if p.peekIs(token.CONST) || p.peekIs(token.LET) {
		p.next()
		stmt.Const = p.curIs(token.CONST)
	}
	p.expect(token.IDENT)
	stmt.Binder = &ast.Identifier{Token: p.cur, Value: p.cur.Lexeme}
	if p.peekIs(token.COLON) {
		p.next()
		p.next()
		stmt.Annot = p.parseTypeNode(LOWEST)
	}
	p.expect(token.OF)
	p.next()
	stmt.Iter = p.parseExpression(LOWEST)
	p.expect(token.RPAREN)
	p.expect(token.LBRACE)
	stmt.Body = p.parseBlockStatement()
	return stmt
}

func (p *Parser) parseExpressionStatement() *ast.ExpressionStatement {
	stmt := &ast.ExpressionStatement{Token: p.cur}
	stmt.Expr = p.parseExpression(LOWEST)
	p.skipSemi()
	return stmt
}
