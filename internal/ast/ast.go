// Package ast defines the surface syntax tree tscore's parser produces and
// its binder/checker consume. Nodes are plain pointer types; pointer
// identity is the "stable node handle" the core's external interfaces
// (node_to_symbol, node_to_flow, expr_types) key off, the same way funxy's
// analyzer keys its TypeMap off ast.Node directly.
package ast

import "github.com/arborlang/tscore/internal/token"

// Node is the base interface for every AST node.
type Node interface {
	GetToken() token.Token
}

// Statement is a Node usable at statement position.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node usable at expression position.
type Expression interface {
	Node
	expressionNode()
}

// TypeNode is a Node appearing in type annotation position.
type TypeNode interface {
	Node
	typeNode()
}

// Program is the root of a parsed source file.
type Program struct {
	File       string
	Statements []Statement
	// JSDocComments holds every `/** ... */` block comment in the file, in
	// source order, independent of which statement (if any) follows it.
	// internal/checker's JSDoc ingestion (spec.md §4.C.2) scans these for
	// `@typedef` tags, which name a type rather than annotate whatever
	// statement happens to come next.
	JSDocComments []string
}

func (p *Program) GetToken() token.Token { return token.Token{} }

// ---- Statements ----

type VarDecl struct {
	Token   token.Token // 'let' or 'const'
	Const   bool
	Name    *Identifier
	Annot   TypeNode // may be nil
	Init    Expression
}

func (n *VarDecl) GetToken() token.Token { return n.Token }
func (*VarDecl) statementNode()          {}

type Param struct {
	Name     *Identifier
	Annot    TypeNode
	Optional bool
	Rest     bool
}

func (n *Param) GetToken() token.Token {
	if n.Name == nil {
		return token.Token{}
	}
	return n.Name.Token
}

type FunctionDecl struct {
	Token      token.Token
	Name       *Identifier
	TypeParams []*TypeParamDecl
	Params     []*Param
	ReturnType TypeNode // may be nil (inferred)
	Predicate  *PredicateType
	Body       *BlockStatement
}

func (n *FunctionDecl) GetToken() token.Token { return n.Token }
func (*FunctionDecl) statementNode()          {}

type TypeParamDecl struct {
	Name       *Identifier
	Constraint TypeNode
	Default    TypeNode
}

type BlockStatement struct {
	Token token.Token
	Body  []Statement
}

func (n *BlockStatement) GetToken() token.Token { return n.Token }
func (*BlockStatement) statementNode()          {}

type ExpressionStatement struct {
	Token token.Token
	Expr  Expression
}

func (n *ExpressionStatement) GetToken() token.Token { return n.Token }
func (*ExpressionStatement) statementNode()          {}

type ReturnStatement struct {
	Token token.Token
	Value Expression // may be nil
}

func (n *ReturnStatement) GetToken() token.Token { return n.Token }
func (*ReturnStatement) statementNode()          {}

type IfStatement struct {
	Token       token.Token
	Condition   Expression
	Consequence *BlockStatement
	Alternative Statement // *BlockStatement or *IfStatement, may be nil
}

func (n *IfStatement) GetToken() token.Token { return n.Token }
func (*IfStatement) statementNode()          {}

type WhileStatement struct {
	Token     token.Token
	Condition Expression
	Body      *BlockStatement
}

func (n *WhileStatement) GetToken() token.Token { return n.Token }
func (*WhileStatement) statementNode()          {}

// ForOfStatement is `for (const x of xs) body`.
type ForOfStatement struct {
	Token  token.Token
	Const  bool
	Binder *Identifier
	Annot  TypeNode
	Iter   Expression
	Body   *BlockStatement
}

func (n *ForOfStatement) GetToken() token.Token { return n.Token }
func (*ForOfStatement) statementNode()          {}

type InterfaceDecl struct {
	Token      token.Token
	Name       *Identifier
	TypeParams []*TypeParamDecl
	Extends    []TypeNode
	Body       *ObjectType
}

func (n *InterfaceDecl) GetToken() token.Token { return n.Token }
func (*InterfaceDecl) statementNode()          {}

type TypeAliasDecl struct {
	Token      token.Token
	Name       *Identifier
	TypeParams []*TypeParamDecl
	Value      TypeNode
}

func (n *TypeAliasDecl) GetToken() token.Token { return n.Token }
func (*TypeAliasDecl) statementNode()          {}

type EnumMember struct {
	Name *Identifier
	// Init is the constant expression, if explicit (nil => autoincrement).
	Init Expression
}

func (n *EnumMember) GetToken() token.Token {
	if n.Name == nil {
		return token.Token{}
	}
	return n.Name.Token
}

type EnumDecl struct {
	Token   token.Token
	Name    *Identifier
	IsConst bool
	Members []*EnumMember
}

func (n *EnumDecl) GetToken() token.Token { return n.Token }
func (*EnumDecl) statementNode()          {}

// ---- Expressions ----

type Identifier struct {
	Token token.Token
	Value string
}

func (n *Identifier) GetToken() token.Token { return n.Token }
func (*Identifier) expressionNode()         {}

type NumberLiteral struct {
	Token token.Token
	Value float64
}

func (n *NumberLiteral) GetToken() token.Token { return n.Token }
func (*NumberLiteral) expressionNode()         {}

type BigIntLiteral struct {
	Token token.Token
	Value string
}

func (n *BigIntLiteral) GetToken() token.Token { return n.Token }
func (*BigIntLiteral) expressionNode()         {}

type StringLiteral struct {
	Token token.Token
	Value string
}

func (n *StringLiteral) GetToken() token.Token { return n.Token }
func (*StringLiteral) expressionNode()         {}

type BoolLiteral struct {
	Token token.Token
	Value bool
}

func (n *BoolLiteral) GetToken() token.Token { return n.Token }
func (*BoolLiteral) expressionNode()         {}

type NullLiteral struct{ Token token.Token }

func (n *NullLiteral) GetToken() token.Token { return n.Token }
func (*NullLiteral) expressionNode()         {}

type UndefinedLiteral struct{ Token token.Token }

func (n *UndefinedLiteral) GetToken() token.Token { return n.Token }
func (*UndefinedLiteral) expressionNode()         {}

type PrefixExpression struct {
	Token    token.Token
	Operator string // "typeof", "!", "-", "+", "~"
	Right    Expression
}

func (n *PrefixExpression) GetToken() token.Token { return n.Token }
func (*PrefixExpression) expressionNode()         {}

type InfixExpression struct {
	Token    token.Token
	Left     Expression
	Operator string // "+","===","instanceof","in", etc.
	Right    Expression
}

func (n *InfixExpression) GetToken() token.Token { return n.Token }
func (*InfixExpression) expressionNode()         {}

type LogicalExpression struct {
	Token    token.Token
	Left     Expression
	Operator string // "&&", "||", "??"
	Right    Expression
}

func (n *LogicalExpression) GetToken() token.Token { return n.Token }
func (*LogicalExpression) expressionNode()         {}

type AssignExpression struct {
	Token    token.Token
	Target   Expression
	Operator string // "=", "+=", ...
	Value    Expression
}

func (n *AssignExpression) GetToken() token.Token { return n.Token }
func (*AssignExpression) expressionNode()         {}

type UpdateExpression struct {
	Token    token.Token
	Operator string // "++", "--"
	Target   Expression
	Prefix   bool
}

func (n *UpdateExpression) GetToken() token.Token { return n.Token }
func (*UpdateExpression) expressionNode()         {}

type CallExpression struct {
	Token     token.Token
	Function  Expression
	TypeArgs  []TypeNode
	Arguments []Expression
}

func (n *CallExpression) GetToken() token.Token { return n.Token }
func (*CallExpression) expressionNode()         {}

type MemberExpression struct {
	Token    token.Token
	Object   Expression
	Property *Identifier
	Optional bool // ?.
}

func (n *MemberExpression) GetToken() token.Token { return n.Token }
func (*MemberExpression) expressionNode()         {}

type IndexExpression struct {
	Token token.Token
	Object Expression
	Index  Expression
}

func (n *IndexExpression) GetToken() token.Token { return n.Token }
func (*IndexExpression) expressionNode()         {}

type ParenExpression struct {
	Token token.Token
	Inner Expression
}

func (n *ParenExpression) GetToken() token.Token { return n.Token }
func (*ParenExpression) expressionNode()         {}

type NonNullExpression struct {
	Token token.Token
	Inner Expression
}

func (n *NonNullExpression) GetToken() token.Token { return n.Token }
func (*NonNullExpression) expressionNode()         {}

type AsExpression struct {
	Token      token.Token
	Inner      Expression
	TargetType TypeNode
	Satisfies  bool // true => `satisfies`, false => `as`
}

func (n *AsExpression) GetToken() token.Token { return n.Token }
func (*AsExpression) expressionNode()         {}

type ArrayLiteral struct {
	Token    token.Token
	Elements []Expression
}

func (n *ArrayLiteral) GetToken() token.Token { return n.Token }
func (*ArrayLiteral) expressionNode()         {}

type ObjectProperty struct {
	Name  *Identifier
	Value Expression
}

type ObjectLiteral struct {
	Token      token.Token
	Properties []*ObjectProperty
}

func (n *ObjectLiteral) GetToken() token.Token { return n.Token }
func (*ObjectLiteral) expressionNode()         {}

type ArrowFunction struct {
	Token      token.Token
	TypeParams []*TypeParamDecl
	Params     []*Param
	ReturnType TypeNode
	Body       Node // *BlockStatement or Expression
}

func (n *ArrowFunction) GetToken() token.Token { return n.Token }
func (*ArrowFunction) expressionNode()         {}

// ---- Types ----

type NamedType struct {
	Token token.Token
	Name  *Identifier
	Args  []TypeNode
}

func (n *NamedType) GetToken() token.Token { return n.Token }
func (*NamedType) typeNode()               {}

type KeywordType struct {
	Token token.Token
	Name  string // "any","unknown","never","void","string","number","boolean","bigint","symbol","object","null","undefined"
}

func (n *KeywordType) GetToken() token.Token { return n.Token }
func (*KeywordType) typeNode()               {}

type LiteralType struct {
	Token token.Token
	Kind  string // "string","number","bigint","boolean"
	Str   string
	Num   float64
	Bool  bool
}

func (n *LiteralType) GetToken() token.Token { return n.Token }
func (*LiteralType) typeNode()               {}

type UnionType struct {
	Token token.Token
	Types []TypeNode
}

func (n *UnionType) GetToken() token.Token { return n.Token }
func (*UnionType) typeNode()               {}

type IntersectionType struct {
	Token token.Token
	Types []TypeNode
}

func (n *IntersectionType) GetToken() token.Token { return n.Token }
func (*IntersectionType) typeNode()               {}

type ArrayType struct {
	Token token.Token
	Elem  TypeNode
}

func (n *ArrayType) GetToken() token.Token { return n.Token }
func (*ArrayType) typeNode()               {}

type TupleElement struct {
	Type TypeNode
	Name string
	Opt  bool
	Rest bool
}

type TupleType struct {
	Token    token.Token
	Elements []TupleElement
	Readonly bool
}

func (n *TupleType) GetToken() token.Token { return n.Token }
func (*TupleType) typeNode()               {}

type PropertySignature struct {
	Name     *Identifier
	Type     TypeNode
	Optional bool
	Readonly bool
	Visibility string // "public","protected","private"; default "public"
}

type IndexSignature struct {
	KeyIsNumber bool
	ValueType   TypeNode
	Readonly    bool
}

type CallSignature struct {
	TypeParams []*TypeParamDecl
	ThisParam  TypeNode
	Params     []*Param
	ReturnType TypeNode
	Predicate  *PredicateType
	IsNew      bool
}

type ObjectType struct {
	Token      token.Token
	Properties []*PropertySignature
	Indexes    []*IndexSignature
	Calls      []*CallSignature
}

func (n *ObjectType) GetToken() token.Token { return n.Token }
func (*ObjectType) typeNode()               {}

type FunctionType struct {
	Token      token.Token
	TypeParams []*TypeParamDecl
	Params     []*Param
	ReturnType TypeNode
	Predicate  *PredicateType
}

func (n *FunctionType) GetToken() token.Token { return n.Token }
func (*FunctionType) typeNode()               {}

// PredicateType is `x is T` or `asserts x is T` in return-type position.
type PredicateType struct {
	Token     token.Token
	ParamName string
	Asserts   bool
	Target    TypeNode // may be nil for bare `asserts x`
}

func (n *PredicateType) GetToken() token.Token { return n.Token }
func (*PredicateType) typeNode()               {}

type KeyofType struct {
	Token token.Token
	Inner TypeNode
}

func (n *KeyofType) GetToken() token.Token { return n.Token }
func (*KeyofType) typeNode()               {}

type IndexedAccessType struct {
	Token token.Token
	Obj   TypeNode
	Index TypeNode
}

func (n *IndexedAccessType) GetToken() token.Token { return n.Token }
func (*IndexedAccessType) typeNode()               {}

type TypeQueryType struct {
	Token token.Token
	Name  *Identifier
}

func (n *TypeQueryType) GetToken() token.Token { return n.Token }
func (*TypeQueryType) typeNode()               {}

type ParenType struct {
	Token token.Token
	Inner TypeNode
}

func (n *ParenType) GetToken() token.Token { return n.Token }
func (*ParenType) typeNode()               {}

type ConditionalType struct {
	Token      token.Token
	Check      TypeNode
	Extends    TypeNode
	TrueType   TypeNode
	FalseType  TypeNode
}

func (n *ConditionalType) GetToken() token.Token { return n.Token }
func (*ConditionalType) typeNode()               {}

// MappedType is `{ [K in Constraint]: Value }` with optional modifiers.
type MappedType struct {
	Token        token.Token
	Param        *Identifier
	Constraint   TypeNode
	Value        TypeNode
	ReadonlyMod  string // "", "+", "-"
	OptionalMod  string // "", "+", "-"
}

func (n *MappedType) GetToken() token.Token { return n.Token }
func (*MappedType) typeNode()               {}
