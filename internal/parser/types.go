package parser

import (
	"fmt"

	"github.com/arborlang/tscore/internal/ast"
	"github.com/arborlang/tscore/internal/lexer"
	"github.com/arborlang/tscore/internal/token"
)

// ParseTypeString parses src as a standalone type expression, reusing the
// same grammar a normal type annotation goes through. internal/checker's
// JSDoc ingestion (spec.md §4.C.2) uses this to turn a `{T}` tag's text
// into an ast.TypeNode without giving JSDoc comments their own grammar.
func ParseTypeString(src, file string) (ast.TypeNode, []error) {
	p := New(lexer.New(src), file)
	if p.curIs(token.EOF) {
		return nil, []error{fmt.Errorf("%s: empty type expression", file)}
	}
	t := p.parseTypeNode(LOWEST)
	if !p.curIs(token.EOF) && !p.peekIs(token.EOF) {
		p.errorf("unexpected trailing token %s after type expression", p.peek.Kind)
	}
	return t, p.Errors
}

var keywordTypeNames = map[token.Kind]string{
	token.VOID:      "void",
	token.UNDEFINED: "undefined",
	token.NULL:      "null",
}

// parseTypeNode parses a type at the given (type-grammar) precedence: 0 for
// a full union/intersection expression, higher to parse a single operand.
func (p *Parser) parseTypeNode(precedence int) ast.TypeNode {
	left := p.parseTypePrimary()
	for precedence < LOWEST+2 {
		if p.peekIs(token.PIPE) {
			p.next()
			p.next()
			right := p.parseTypePrimaryChainedUnion()
			left = mergeUnion(left, right)
			continue
		}
		if p.peekIs(token.AMP) {
			p.next()
			p.next()
			right := p.parseTypePrimaryChainedIntersection()
			left = mergeIntersection(left, right)
			continue
		}
		break
	}
	return left
}

func (p *Parser) parseTypePrimaryChainedUnion() ast.TypeNode {
	return p.parseTypePrimary()
}
func (p *Parser) parseTypePrimaryChainedIntersection() ast.TypeNode {
	return p.parseTypePrimary()
}

func mergeUnion(left, right ast.TypeNode) ast.TypeNode {
	if u, ok := left.(*ast.UnionType); ok {
		u.Types = append(u.Types, right)
		return u
	}
	return &ast.UnionType{Token: left.GetToken(), Types: []ast.TypeNode{left, right}}
}

func mergeIntersection(left, right ast.TypeNode) ast.TypeNode {
	if u, ok := left.(*ast.IntersectionType); ok {
		u.Types = append(u.Types, right)
		return u
	}
	return &ast.IntersectionType{Token: left.GetToken(), Types: []ast.TypeNode{left, right}}
}

// parseTypePrimary parses one type operand, then any trailing postfix `[]`
// (array) or `[K]` (indexed access) suffixes.
func (p *Parser) parseTypePrimary() ast.TypeNode {
	t := p.parseTypeAtom()
	for p.peekIs(token.LBRACKET) {
		p.next()
		tok := p.cur
		if p.peekIs(token.RBRACKET) {
			p.next()
			t = &ast.ArrayType{Token: tok, Elem: t}
			continue
		}
		p.next()
		idx := p.parseTypeNode(LOWEST)
		p.expect(token.RBRACKET)
		t = &ast.IndexedAccessType{Token: tok, Obj: t, Index: idx}
	}
	return t
}

func (p *Parser) parseTypeAtom() ast.TypeNode {
	switch p.cur.Kind {
	case token.VOID, token.UNDEFINED, token.NULL:
		return &ast.KeywordType{Token: p.cur, Name: keywordTypeNames[p.cur.Kind]}
	case token.STRING:
		return &ast.LiteralType{Token: p.cur, Kind: "string", Str: p.cur.StrVal}
	case token.NUMBER:
		return &ast.LiteralType{Token: p.cur, Kind: "number", Num: p.cur.NumVal}
	case token.TRUE, token.FALSE:
		return &ast.LiteralType{Token: p.cur, Kind: "boolean", Bool: p.curIs(token.TRUE)}
	case token.READONLY:
		p.next()
		inner := p.parseTypeNode(LOWEST)
		if tt, ok := inner.(*ast.TupleType); ok {
			tt.Readonly = true
			return tt
		}
		return inner
	case token.LPAREN:
		return p.parseFunctionOrParenType()
	case token.LBRACKET:
		return p.parseTupleType()
	case token.LBRACE:
		return p.parseObjectOrMappedType()
	case token.IDENT:
		if p.cur.Lexeme == "keyof" {
			tok := p.cur
			p.next()
			return &ast.KeyofType{Token: tok, Inner: p.parseTypePrimary()}
		}
		if p.cur.Lexeme == "typeof" {
			tok := p.cur
			p.expect(token.IDENT)
			return &ast.TypeQueryType{Token: tok, Name: &ast.Identifier{Token: p.cur, Value: p.cur.Lexeme}}
		}
		switch p.cur.Lexeme {
		case "any", "unknown", "never", "string", "number", "boolean", "bigint", "symbol", "object":
			return &ast.KeywordType{Token: p.cur, Name: p.cur.Lexeme}
		}
		return p.parseNamedType()
	default:
		p.errorf("unexpected token in type position: %s", p.cur.Kind)
		return &ast.KeywordType{Token: p.cur, Name: "any"}
	}
}

func (p *Parser) parseNamedType() ast.TypeNode {
	nt := &ast.NamedType{Token: p.cur, Name: &ast.Identifier{Token: p.cur, Value: p.cur.Lexeme}}
	if p.peekIs(token.LT) {
		p.next()
		p.next()
		nt.Args = append(nt.Args, p.parseTypeNode(LOWEST))
		for p.peekIs(token.COMMA) {
			p.next()
			p.next()
			nt.Args = append(nt.Args, p.parseTypeNode(LOWEST))
		}
		p.expectGT()
	}
	if p.peekIs(token.IDENT) && p.peek.Lexeme == "extends" {
		// conditional type: Check extends Extends ? True : False
		p.next()
		p.next()
		extendsT := p.parseTypeNode(LOWEST)
		p.expect(token.QUESTION)
		p.next()
		trueT := p.parseTypeNode(LOWEST)
		p.expect(token.COLON)
		p.next()
		falseT := p.parseTypeNode(LOWEST)
		return &ast.ConditionalType{Token: nt.Token, Check: nt, Extends: extendsT, TrueType: trueT, FalseType: falseT}
	}
	return nt
}

func (p *Parser) parseFunctionOrParenType() ast.TypeNode {
	tok := p.cur
	params := p.parseParamList()
	if p.peekIs(token.ARROW) {
		p.next()
		p.next()
		ft := &ast.FunctionType{Token: tok, Params: params}
		ft.ReturnType, ft.Predicate = p.parseReturnTypeNode()
		return ft
	}
	// `(T)` grouping: re-derive from the single param's annotation.
	if len(params) == 1 && params[0].Annot != nil {
		return &ast.ParenType{Token: tok, Inner: params[0].Annot}
	}
	return &ast.KeywordType{Token: tok, Name: "any"}
}

// parseReturnTypeNode parses either a plain type or a `x is T` / `asserts x
// is T` type-predicate, used after function/arrow/method return-type colons.
func (p *Parser) parseReturnTypeNode() (ast.TypeNode, *ast.PredicateType) {
	asserts := false
	tok := p.cur
	if p.curIs(token.ASSERTS) {
		asserts = true
		p.next()
	}
	if p.curIs(token.IDENT) && p.peekIs(token.IS) {
		name := p.cur.Lexeme
		p.next() // consume ident, cur is now IS
		p.next() // move past IS
		target := p.parseTypeNode(LOWEST)
		return nil, &ast.PredicateType{Token: tok, ParamName: name, Asserts: asserts, Target: target}
	}
	if asserts && p.curIs(token.IDENT) {
		name := p.cur.Lexeme
		return nil, &ast.PredicateType{Token: tok, ParamName: name, Asserts: true}
	}
	return p.parseTypeNode(LOWEST), nil
}

func (p *Parser) parseTupleType() ast.TypeNode {
	tt := &ast.TupleType{Token: p.cur}
	if p.peekIs(token.RBRACKET) {
		p.next()
		return tt
	}
	p.next()
	for {
		elem := ast.TupleElement{}
		if p.curIs(token.ELLIPSIS) {
			elem.Rest = true
			p.next()
		}
		if p.curIs(token.IDENT) && (p.peekIs(token.COLON) || (p.peekIs(token.QUESTION))) {
			elem.Name = p.cur.Lexeme
			if p.peekIs(token.QUESTION) {
				elem.Opt = true
				p.next()
			}
			p.expect(token.COLON)
			p.next()
		}
		elem.Type = p.parseTypeNode(LOWEST)
		tt.Elements = append(tt.Elements, elem)
		if !p.peekIs(token.COMMA) {
			break
		}
		p.next()
		p.next()
	}
	p.expect(token.RBRACKET)
	return tt
}

func (p *Parser) parseObjectOrMappedType() ast.TypeNode {
	tok := p.cur
	// Mapped type: `{ [K in T]: V }`, optionally with +/-readonly and +/-?.
	if p.peekIs(token.LBRACKET) {
		return p.parseMappedType(tok)
	}
	ot := &ast.ObjectType{Token: tok}
	if p.peekIs(token.RBRACE) {
		p.next()
		return ot
	}
	p.next()
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		if p.curIs(token.LBRACKET) {
			idx := &ast.IndexSignature{}
			p.next()
			p.next() // key name
			p.expect(token.COLON)
			p.next()
			keyT := p.parseTypeNode(LOWEST)
			if kt, ok := keyT.(*ast.KeywordType); ok && kt.Name == "number" {
				idx.KeyIsNumber = true
			}
			p.expect(token.RBRACKET)
			p.expect(token.COLON)
			p.next()
			idx.ValueType = p.parseTypeNode(LOWEST)
			ot.Indexes = append(ot.Indexes, idx)
		} else if p.curIs(token.LPAREN) || p.curIs(token.NEW) {
			cs := &ast.CallSignature{}
			if p.curIs(token.NEW) {
				cs.IsNew = true
				p.next()
			}
			cs.Params = p.parseParamList()
			if p.peekIs(token.COLON) {
				p.next()
				p.next()
				cs.ReturnType, cs.Predicate = p.parseReturnTypeNode()
			}
			ot.Calls = append(ot.Calls, cs)
		} else {
			prop := &ast.PropertySignature{Visibility: "public"}
			if p.curIs(token.READONLY) {
				prop.Readonly = true
				p.next()
			}
			prop.Name = &ast.Identifier{Token: p.cur, Value: p.cur.Lexeme}
			if p.peekIs(token.QUESTION) {
				prop.Optional = true
				p.next()
			}
			p.expect(token.COLON)
			p.next()
			prop.Type = p.parseTypeNode(LOWEST)
			ot.Properties = append(ot.Properties, prop)
		}
		if p.peekIs(token.COMMA) || p.peekIs(token.SEMI) {
			p.next()
		}
		p.next()
	}
	return ot
}

func (p *Parser) parseMappedType(tok token.Token) ast.TypeNode {
	mt := &ast.MappedType{Token: tok}
	p.next() // [
	p.next() // K
	mt.Param = &ast.Identifier{Token: p.cur, Value: p.cur.Lexeme}
	p.expect(token.IN)
	p.next()
	mt.Constraint = p.parseTypeNode(LOWEST)
	p.expect(token.RBRACKET)
	if p.peekIs(token.QUESTION) {
		mt.OptionalMod = "+"
		p.next()
	}
	p.expect(token.COLON)
	p.next()
	mt.Value = p.parseTypeNode(LOWEST)
	if p.peekIs(token.SEMI) {
		p.next()
	}
	p.expect(token.RBRACE)
	return mt
}
