package parser

import (
	"github.com/arborlang/tscore/internal/ast"
	"github.com/arborlang/tscore/internal/token"
)

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.cur.Kind]
	if prefix == nil {
		p.errorf("no prefix parse function for %s", p.cur.Kind)
		return nil
	}
	left := prefix()

	for !p.peekIs(token.SEMI) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peek.Kind]
		if infix == nil {
			return left
		}
		p.next()
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.cur, Value: p.cur.Lexeme}
}

func (p *Parser) parseNumberLiteral() ast.Expression {
	return &ast.NumberLiteral{Token: p.cur, Value: p.cur.NumVal}
}

func (p *Parser) parseBigIntLiteral() ast.Expression {
	return &ast.BigIntLiteral{Token: p.cur, Value: p.cur.BigVal}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.cur, Value: p.cur.StrVal}
}

func (p *Parser) parseBoolLiteral() ast.Expression {
	return &ast.BoolLiteral{Token: p.cur, Value: p.curIs(token.TRUE)}
}

func (p *Parser) parseNullLiteral() ast.Expression      { return &ast.NullLiteral{Token: p.cur} }
func (p *Parser) parseUndefinedLiteral() ast.Expression { return &ast.UndefinedLiteral{Token: p.cur} }

// parseParenOrArrow disambiguates `(expr)` from an arrow function's
// parameter list by scanning ahead for `=>` after the matching `)`.
func (p *Parser) parseParenOrArrow() ast.Expression {
	if p.looksLikeArrowParams() {
		return p.parseArrowFromParams()
	}
	tok := p.cur
	p.next()
	inner := p.parseExpression(LOWEST)
	p.expect(token.RPAREN)
	return &ast.ParenExpression{Token: tok, Inner: inner}
}

// looksLikeArrowParams performs a lightweight lookahead: `()`, `(x)`, `(x, y)`,
// `(x: T)` followed by `=>` are all arrow-function parameter lists.
func (p *Parser) looksLikeArrowParams() bool {
	if p.peekIs(token.RPAREN) {
		return true // only `()` form needs no deeper check; caller verifies `=>` after
	}
	// Heuristic used throughout: a bare identifier list or typed params,
	// immediately closed by `)`, with `=>` following, is an arrow.
	save := *p.l
	savedCur, savedPeek := p.cur, p.peek
	depth := 0
	isArrow := false
	for {
		if p.curIs(token.LPAREN) {
			depth++
		} else if p.curIs(token.RPAREN) {
			depth--
			if depth == 0 {
				isArrow = p.peekIs(token.ARROW)
				break
			}
		} else if p.curIs(token.EOF) {
			break
		}
		p.next()
	}
	*p.l = save
	p.cur, p.peek = savedCur, savedPeek
	return isArrow
}

func (p *Parser) parseArrowFromParams() ast.Expression {
	tok := p.cur
	fn := &ast.ArrowFunction{Token: tok}
	fn.Params = p.parseParamList()
	if p.peekIs(token.COLON) {
		p.next()
		p.next()
		fn.ReturnType = p.parseTypeNode(LOWEST)
	}
	p.expect(token.ARROW)
	p.next()
	if p.curIs(token.LBRACE) {
		fn.Body = p.parseBlockStatement()
	} else {
		fn.Body = p.parseExpression(ASSIGNMENT)
	}
	return fn
}

func (p *Parser) parseFunctionExpression() ast.Expression {
	tok := p.cur
	fn := &ast.ArrowFunction{Token: tok}
	if p.peekIs(token.IDENT) {
		p.next()
	}
	fn.TypeParams = p.parseTypeParams()
	fn.Params = p.parseParamList()
	if p.peekIs(token.COLON) {
		p.next()
		p.next()
		fn.ReturnType = p.parseTypeNode(LOWEST)
	}
	p.expect(token.LBRACE)
	fn.Body = p.parseBlockStatement()
	return fn
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	lit := &ast.ArrayLiteral{Token: p.cur}
	if p.peekIs(token.RBRACKET) {
		p.next()
		return lit
	}
	p.next()
	lit.Elements = append(lit.Elements, p.parseExpression(ASSIGNMENT))
	for p.peekIs(token.COMMA) {
		p.next()
		p.next()
		lit.Elements = append(lit.Elements, p.parseExpression(ASSIGNMENT))
	}
	p.expect(token.RBRACKET)
	return lit
}

func (p *Parser) parseObjectLiteral() ast.Expression {
	lit := &ast.ObjectLiteral{Token: p.cur}
	if p.peekIs(token.RBRACE) {
		p.next()
		return lit
	}
	p.next()
	for {
		prop := &ast.ObjectProperty{Name: &ast.Identifier{Token: p.cur, Value: p.cur.Lexeme}}
		if p.peekIs(token.COLON) {
			p.next()
			p.next()
			prop.Value = p.parseExpression(ASSIGNMENT)
		} else {
			prop.Value = &ast.Identifier{Token: p.cur, Value: p.cur.Lexeme}
		}
		lit.Properties = append(lit.Properties, prop)
		if !p.peekIs(token.COMMA) {
			break
		}
		p.next()
		p.next()
	}
	p.expect(token.RBRACE)
	return lit
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	expr := &ast.PrefixExpression{Token: p.cur, Operator: p.cur.Lexeme}
	p.next()
	expr.Right = p.parseExpression(UNARY)
	return expr
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	expr := &ast.InfixExpression{Token: p.cur, Left: left, Operator: p.cur.Lexeme}
	precedence := p.curPrecedence()
	p.next()
	expr.Right = p.parseExpression(precedence)
	return expr
}

func (p *Parser) parseLogicalExpression(left ast.Expression) ast.Expression {
	expr := &ast.LogicalExpression{Token: p.cur, Left: left, Operator: p.cur.Lexeme}
	precedence := p.curPrecedence()
	p.next()
	expr.Right = p.parseExpression(precedence)
	return expr
}

func (p *Parser) parseAssignExpression(left ast.Expression) ast.Expression {
	expr := &ast.AssignExpression{Token: p.cur, Target: left, Operator: p.cur.Lexeme}
	p.next()
	expr.Value = p.parseExpression(ASSIGNMENT - 1)
	return expr
}

func (p *Parser) parseUpdateExpression(left ast.Expression) ast.Expression {
	return &ast.UpdateExpression{Token: p.cur, Operator: p.cur.Lexeme, Target: left, Prefix: false}
}

func (p *Parser) parseCallExpression(fn ast.Expression) ast.Expression {
	expr := &ast.CallExpression{Token: p.cur, Function: fn}
	if p.peekIs(token.RPAREN) {
		p.next()
		return expr
	}
	p.next()
	expr.Arguments = append(expr.Arguments, p.parseExpression(ASSIGNMENT))
	for p.peekIs(token.COMMA) {
		p.next()
		p.next()
		expr.Arguments = append(expr.Arguments, p.parseExpression(ASSIGNMENT))
	}
	p.expect(token.RPAREN)
	return expr
}

func (p *Parser) parseMemberExpression(obj ast.Expression) ast.Expression {
	expr := &ast.MemberExpression{Token: p.cur, Object: obj}
	p.expect(token.IDENT)
	expr.Property = &ast.Identifier{Token: p.cur, Value: p.cur.Lexeme}
	return expr
}

func (p *Parser) parseIndexExpression(obj ast.Expression) ast.Expression {
	expr := &ast.IndexExpression{Token: p.cur, Object: obj}
	p.next()
	expr.Index = p.parseExpression(LOWEST)
	p.expect(token.RBRACKET)
	return expr
}

func (p *Parser) parseNonNullExpression(inner ast.Expression) ast.Expression {
	return &ast.NonNullExpression{Token: p.cur, Inner: inner}
}

func (p *Parser) parseAsExpression(inner ast.Expression) ast.Expression {
	expr := &ast.AsExpression{Token: p.cur, Inner: inner, Satisfies: p.curIs(token.SATISFIES)}
	p.next()
	expr.TargetType = p.parseTypeNode(LOWEST)
	return expr
}
