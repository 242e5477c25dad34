package checker

import (
	"github.com/arborlang/tscore/internal/ast"
	"github.com/arborlang/tscore/internal/jsdoc"
	"github.com/arborlang/tscore/internal/parser"
	"github.com/arborlang/tscore/internal/types"
)

// ingestJSDoc implements spec.md §4.C.2 ("JSDoc annotation ingestion"):
// under check-JS, `@type`/`@param`/`@returns`/`@template`/`@typedef` tags
// are parsed out of each declaration's leading comment and grafted onto
// its AST node as the TypeNode a real .ts annotation would occupy, before
// declared_type.go's computeVarType/computeFunctionType/computeParamType
// ever run — those keep treating an ingested tag exactly like a parsed
// annotation, which is what "the core exposes these as pre-annotated
// TypeIds; the parser is not extended" means in practice: the parser's
// grammar never sees a JSDoc comment, only the type text inside one tag.
func (c *Checker) ingestJSDoc(prog *ast.Program) {
	if !c.opts.CheckJS {
		return
	}
	c.file = prog.File
	for _, raw := range prog.JSDocComments {
		doc := jsdoc.Parse(raw)
		if doc.Typedef == nil {
			continue
		}
		if t, ok := c.parseJSDocType(doc.Typedef.Type); ok {
			c.jsdocTypedefs[doc.Typedef.Name] = t
		}
	}
	for _, stmt := range prog.Statements {
		c.ingestJSDocStmt(stmt)
	}
}

// ingestJSDocStmt walks one top-level statement applying any JSDoc tags
// attached to it (and, for a function, to its parameters/return type).
// JSDoc comments are only meaningful on declarations, so this does not
// recurse into expressions — only into nested statement bodies, mirroring
// how a JS author can JSDoc a function declared inside another.
func (c *Checker) ingestJSDocStmt(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		c.ingestJSDocVar(s)
	case *ast.FunctionDecl:
		c.ingestJSDocFunc(s)
	case *ast.BlockStatement:
		for _, inner := range s.Body {
			c.ingestJSDocStmt(inner)
		}
	case *ast.IfStatement:
		c.ingestJSDocStmt(s.Consequence)
		if s.Alternative != nil {
			c.ingestJSDocStmt(s.Alternative)
		}
	}
}

func (c *Checker) ingestJSDocVar(s *ast.VarDecl) {
	if s.Annot != nil {
		return
	}
	raw := s.GetToken().JSDoc
	if raw == "" {
		return
	}
	doc := jsdoc.Parse(raw)
	if doc.Type == "" {
		return
	}
	if node, ok := c.parseJSDocTypeNode(doc.Type); ok {
		s.Annot = node
	}
}

func (c *Checker) ingestJSDocFunc(s *ast.FunctionDecl) {
	raw := s.GetToken().JSDoc
	if raw != "" {
		doc := jsdoc.Parse(raw)

		if len(doc.Templates) > 0 && len(s.TypeParams) == 0 {
			for _, name := range doc.Templates {
				s.TypeParams = append(s.TypeParams, &ast.TypeParamDecl{Name: &ast.Identifier{Value: name}})
			}
		}

		if s.ReturnType == nil && doc.Returns != "" {
			if node, ok := c.parseJSDocTypeNode(doc.Returns); ok {
				s.ReturnType = node
			}
		}

		for _, p := range doc.Params {
			for _, param := range s.Params {
				if param.Annot != nil || param.Name == nil || param.Name.Value != p.Name {
					continue
				}
				if node, ok := c.parseJSDocTypeNode(p.Type); ok {
					param.Annot = node
				}
			}
		}
	}

	if s.Body != nil {
		c.ingestJSDocStmt(s.Body)
	}
}

// parseJSDocTypeNode parses one `{T}` tag body into an ast.TypeNode,
// reusing the surface type grammar (parser.ParseTypeString) rather than
// inventing a JSDoc-specific one.
func (c *Checker) parseJSDocTypeNode(text string) (ast.TypeNode, bool) {
	node, errs := parser.ParseTypeString(text, c.file)
	if node == nil || len(errs) > 0 {
		return nil, false
	}
	return node, true
}

// parseJSDocType resolves a `{T}` tag body all the way to a TypeId, for
// `@typedef` targets registered ahead of the normal declared-type pass.
func (c *Checker) parseJSDocType(text string) (types.TypeId, bool) {
	node, ok := c.parseJSDocTypeNode(text)
	if !ok {
		return 0, false
	}
	return c.buildType(node), true
}
