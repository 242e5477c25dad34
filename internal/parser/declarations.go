package parser

import (
	"github.com/arborlang/tscore/internal/ast"
	"github.com/arborlang/tscore/internal/token"
)

func (p *Parser) parseInterfaceDecl() *ast.InterfaceDecl {
	decl := &ast.InterfaceDecl{Token: p.cur}
	p.expect(token.IDENT)
	decl.Name = &ast.Identifier{Token: p.cur, Value: p.cur.Lexeme}
	decl.TypeParams = p.parseTypeParams()
	if p.peekIs(token.IDENT) && p.peek.Lexeme == "extends" {
		p.next()
		p.next()
		decl.Extends = append(decl.Extends, p.parseTypeNode(LOWEST))
		for p.peekIs(token.COMMA) {
			p.next()
			p.next()
			decl.Extends = append(decl.Extends, p.parseTypeNode(LOWEST))
		}
	}
	p.expect(token.LBRACE)
	body := p.parseObjectOrMappedType()
	if ot, ok := body.(*ast.ObjectType); ok {
		decl.Body = ot
	} else {
		decl.Body = &ast.ObjectType{Token: decl.Token}
	}
	return decl
}

func (p *Parser) parseTypeAliasDecl() *ast.TypeAliasDecl {
	decl := &ast.TypeAliasDecl{Token: p.cur}
	p.expect(token.IDENT)
	decl.Name = &ast.Identifier{Token: p.cur, Value: p.cur.Lexeme}
	decl.TypeParams = p.parseTypeParams()
	p.expect(token.ASSIGN)
	p.next()
	decl.Value = p.parseTypeNode(LOWEST)
	p.skipSemi()
	return decl
}

func (p *Parser) parseEnumDecl() *ast.EnumDecl {
	decl := &ast.EnumDecl{Token: p.cur}
	p.expect(token.IDENT)
	decl.Name = &ast.Identifier{Token: p.cur, Value: p.cur.Lexeme}
	p.expect(token.LBRACE)
	p.next()
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		m := &ast.EnumMember{Name: &ast.Identifier{Token: p.cur, Value: p.cur.Lexeme}}
		if p.peekIs(token.ASSIGN) {
			p.next()
			p.next()
			m.Init = p.parseExpression(ASSIGNMENT)
		}
		decl.Members = append(decl.Members, m)
		if p.peekIs(token.COMMA) {
			p.next()
		}
		p.next()
	}
	return decl
}
