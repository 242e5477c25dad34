// Package parser implements a hand-written Pratt parser over tscore's
// surface grammar, in the structure of funxy's parser (prefix/infix parse
// function tables keyed by token kind, precedence climbing on peeked
// tokens).
package parser

import (
	"fmt"

	"github.com/arborlang/tscore/internal/ast"
	"github.com/arborlang/tscore/internal/lexer"
	"github.com/arborlang/tscore/internal/token"
)

const (
	_ int = iota
	LOWEST
	ASSIGNMENT  // = += etc.
	NULLISH_OP  // ??
	LOGICAL_OR  // ||
	LOGICAL_AND // &&
	BITWISE_OR  // |
	BITWISE_XOR // ^
	BITWISE_AND // &
	EQUALITY    // == === != !==
	RELATIONAL  // < > <= >= instanceof in
	SHIFT       // << >> >>>
	ADDITIVE    // + -
	MULTIPLICATIVE
	EXPONENT // **
	UNARY
	POSTFIX // ++ -- ! (non-null) as/satisfies
	CALL    // () [] .
)

var precedences = map[token.Kind]int{
	token.ASSIGN:       ASSIGNMENT,
	token.PLUS_ASSIGN:  ASSIGNMENT,
	token.NULLISH:      NULLISH_OP,
	token.OR_OR:        LOGICAL_OR,
	token.AND_AND:      LOGICAL_AND,
	token.EQ:           EQUALITY,
	token.STRICT_EQ:    EQUALITY,
	token.NEQ:          EQUALITY,
	token.STRICT_NEQ:   EQUALITY,
	token.LT:           RELATIONAL,
	token.GT:           RELATIONAL,
	token.LE:           RELATIONAL,
	token.GE:           RELATIONAL,
	token.INSTANCEOF:   RELATIONAL,
	token.IN:           RELATIONAL,
	token.SHL:          SHIFT,
	token.SHR:          SHIFT,
	token.USHR:         SHIFT,
	token.PLUS:         ADDITIVE,
	token.MINUS:        ADDITIVE,
	token.STAR:         MULTIPLICATIVE,
	token.SLASH:        MULTIPLICATIVE,
	token.PERCENT:      MULTIPLICATIVE,
	token.STAR_STAR:    EXPONENT,
	token.PIPE:         BITWISE_OR,
	token.CARET:        BITWISE_XOR,
	token.AMP:          BITWISE_AND,
	token.BANG:         POSTFIX,
	token.AS:           POSTFIX,
	token.SATISFIES:    POSTFIX,
	token.LPAREN:       CALL,
	token.LBRACKET:     CALL,
	token.DOT:          CALL,
	token.INCR:         POSTFIX,
	token.DECR:         POSTFIX,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser turns a token stream into an *ast.Program. Errors are appended to
// Errors rather than raised, so the caller can still inspect a best-effort
// tree (matching funxy's tolerant-parser design).
type Parser struct {
	l      *lexer.Lexer
	file   string
	cur    token.Token
	peek   token.Token
	Errors []error

	prefixParseFns map[token.Kind]prefixParseFn
	infixParseFns  map[token.Kind]infixParseFn

	// pendingGT counts '>' characters still owed to the token stream after
	// expectGT splits a >>/>>> shift token apart to close a nested generic
	// type argument list (the lexer has no type-position context, so it
	// always scans ">>" as one SHR token).
	pendingGT int
}

func New(l *lexer.Lexer, file string) *Parser {
	p := &Parser{l: l, file: file}
	p.prefixParseFns = map[token.Kind]prefixParseFn{}
	p.infixParseFns = map[token.Kind]infixParseFn{}

	p.registerPrefix(token.IDENT, p.parseIdentifier)
	p.registerPrefix(token.NUMBER, p.parseNumberLiteral)
	p.registerPrefix(token.BIGINT, p.parseBigIntLiteral)
	p.registerPrefix(token.STRING, p.parseStringLiteral)
	p.registerPrefix(token.TRUE, p.parseBoolLiteral)
	p.registerPrefix(token.FALSE, p.parseBoolLiteral)
	p.registerPrefix(token.NULL, p.parseNullLiteral)
	p.registerPrefix(token.UNDEFINED, p.parseUndefinedLiteral)
	p.registerPrefix(token.LPAREN, p.parseParenOrArrow)
	p.registerPrefix(token.LBRACKET, p.parseArrayLiteral)
	p.registerPrefix(token.LBRACE, p.parseObjectLiteral)
	p.registerPrefix(token.BANG, p.parsePrefixExpression)
	p.registerPrefix(token.MINUS, p.parsePrefixExpression)
	p.registerPrefix(token.PLUS, p.parsePrefixExpression)
	p.registerPrefix(token.TYPEOF, p.parsePrefixExpression)
	p.registerPrefix(token.TILDE, p.parsePrefixExpression)
	p.registerPrefix(token.FUNCTION, p.parseFunctionExpression)

	p.registerInfix(token.PLUS, p.parseInfixExpression)
	p.registerInfix(token.MINUS, p.parseInfixExpression)
	p.registerInfix(token.STAR, p.parseInfixExpression)
	p.registerInfix(token.SLASH, p.parseInfixExpression)
	p.registerInfix(token.PERCENT, p.parseInfixExpression)
	p.registerInfix(token.EQ, p.parseInfixExpression)
	p.registerInfix(token.STRICT_EQ, p.parseInfixExpression)
	p.registerInfix(token.NEQ, p.parseInfixExpression)
	p.registerInfix(token.STRICT_NEQ, p.parseInfixExpression)
	p.registerInfix(token.LT, p.parseInfixExpression)
	p.registerInfix(token.GT, p.parseInfixExpression)
	p.registerInfix(token.LE, p.parseInfixExpression)
	p.registerInfix(token.GE, p.parseInfixExpression)
	p.registerInfix(token.INSTANCEOF, p.parseInfixExpression)
	p.registerInfix(token.IN, p.parseInfixExpression)
	p.registerInfix(token.SHL, p.parseInfixExpression)
	p.registerInfix(token.SHR, p.parseInfixExpression)
	p.registerInfix(token.USHR, p.parseInfixExpression)
	p.registerInfix(token.STAR_STAR, p.parseInfixExpression)
	p.registerInfix(token.PIPE, p.parseInfixExpression)
	p.registerInfix(token.CARET, p.parseInfixExpression)
	p.registerInfix(token.AMP, p.parseInfixExpression)
	p.registerInfix(token.AND_AND, p.parseLogicalExpression)
	p.registerInfix(token.OR_OR, p.parseLogicalExpression)
	p.registerInfix(token.NULLISH, p.parseLogicalExpression)
	p.registerInfix(token.ASSIGN, p.parseAssignExpression)
	p.registerInfix(token.PLUS_ASSIGN, p.parseAssignExpression)
	p.registerInfix(token.LPAREN, p.parseCallExpression)
	p.registerInfix(token.DOT, p.parseMemberExpression)
	p.registerInfix(token.LBRACKET, p.parseIndexExpression)
	p.registerInfix(token.BANG, p.parseNonNullExpression)
	p.registerInfix(token.AS, p.parseAsExpression)
	p.registerInfix(token.SATISFIES, p.parseAsExpression)
	p.registerInfix(token.INCR, p.parseUpdateExpression)
	p.registerInfix(token.DECR, p.parseUpdateExpression)

	p.next()
	p.next()
	return p
}

func (p *Parser) registerPrefix(k token.Kind, fn prefixParseFn) { p.prefixParseFns[k] = fn }
func (p *Parser) registerInfix(k token.Kind, fn infixParseFn)   { p.infixParseFns[k] = fn }

func (p *Parser) next() {
	p.cur = p.peek
	if p.pendingGT > 0 {
		p.pendingGT--
		p.peek = token.Token{Kind: token.GT, Lexeme: ">", Pos: p.peek.Pos}
		return
	}
	p.peek = p.l.NextToken()
}

// expectGT closes a generic type argument/parameter list. The lexer scans
// ">>" and ">>>" as single shift tokens, so a nested generic like
// Array<Array<T>> needs its closing SHR token split into two GTs.
func (p *Parser) expectGT() bool {
	switch p.peek.Kind {
	case token.GT:
		p.next()
		return true
	case token.SHR:
		p.pendingGT = 1
		p.peek = token.Token{Kind: token.GT, Lexeme: ">", Pos: p.peek.Pos}
		p.next()
		return true
	case token.USHR:
		p.pendingGT = 2
		p.peek = token.Token{Kind: token.GT, Lexeme: ">", Pos: p.peek.Pos}
		p.next()
		return true
	}
	p.errorf("expected %s, got %s (%q)", token.GT, p.peek.Kind, p.peek.Lexeme)
	return false
}

func (p *Parser) errorf(format string, args ...interface{}) {
	p.Errors = append(p.Errors, fmt.Errorf("%s:%s: %s", p.file, p.cur.Pos, fmt.Sprintf(format, args...)))
}

func (p *Parser) curIs(k token.Kind) bool  { return p.cur.Kind == k }
func (p *Parser) peekIs(k token.Kind) bool { return p.peek.Kind == k }

func (p *Parser) expect(k token.Kind) bool {
	if p.peekIs(k) {
		p.next()
		return true
	}
	p.errorf("expected %s, got %s (%q)", k, p.peek.Kind, p.peek.Lexeme)
	return false
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peek.Kind]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.cur.Kind]; ok {
		return pr
	}
	return LOWEST
}

// ParseProgram parses the whole token stream into a *ast.Program.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{File: p.file}
	for !p.curIs(token.EOF) {
		if stmt := p.parseStatement(); stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		p.next()
	}
	prog.JSDocComments = p.l.JSDocComments()
	return prog
}

func (p *Parser) skipSemi() {
	for p.peekIs(token.SEMI) {
		p.next()
	}
}
