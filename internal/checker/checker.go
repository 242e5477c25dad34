// Package checker implements the CORE's top-down driver, tag C. Grounded on
// funxy's analyzer.go/walker (internal/analyzer/analyzer.go,
// declarations.go, expressions.go): a single struct holding the symbol
// table, a type map keyed by ast.Node, and an error-deduplicating sink,
// walked once per file. Where funxy's walker directly returns a
// typesystem.Type from each infer* method, this driver returns a TypeId
// handle and additionally narrows identifier references through the flow
// graph before recording their type — the one genuinely new step funxy's
// walker has no equivalent of.
package checker

import (
	"github.com/arborlang/tscore/internal/ast"
	"github.com/arborlang/tscore/internal/binder"
	"github.com/arborlang/tscore/internal/config"
	"github.com/arborlang/tscore/internal/diagnostics"
	"github.com/arborlang/tscore/internal/narrow"
	"github.com/arborlang/tscore/internal/relation"
	"github.com/arborlang/tscore/internal/symbols"
	"github.com/arborlang/tscore/internal/types"
)

type Checker struct {
	in      *types.Interner
	table   *symbols.Table
	bound   *binder.Result
	rel     *relation.Engine
	nw      *narrow.Narrower
	opts    config.Options
	diags   *diagnostics.Bag
	exprTypes map[ast.Node]types.TypeId
	typeParamScopes []map[string]types.TypeId
	returnStack []types.TypeId

	// jsdocTypedefs holds `@typedef {T} Name` targets ingested from JSDoc
	// comments (spec.md §4.C.2); consulted by lookupTypeName as a fallback
	// the way a real top-level type alias symbol would be.
	jsdocTypedefs map[string]types.TypeId
	// file is the current program's filename, used only to label parse
	// errors surfaced from ingestJSDoc's type-string parsing.
	file string
}

// New builds a Checker for one already-bound file, sharing in across every
// file of a compilation the way spec.md §5 requires ("types are created on
// demand by the checker driver; they live for the duration of a
// compilation").
func New(in *types.Interner, bound *binder.Result, opts config.Options) *Checker {
	c := &Checker{
		in:        in,
		table:     bound.Table,
		bound:     bound,
		opts:      opts,
		diags:     bound.Diags,
		exprTypes: make(map[ast.Node]types.TypeId),
		jsdocTypedefs: make(map[string]types.TypeId),
	}
	c.rel = relation.New(in, c, relation.Options{
		StrictAnyPropagation: false,
		StrictFunctionTypes:  opts.StrictFunctionTypes,
		StrictNullChecks:     opts.StrictNullChecks,
	})
	c.nw = narrow.New(in, c.rel, bound.Refs, bound.Table)
	c.nw.InstanceTypeOf = c.instanceTypeOf
	c.nw.PredicateOfCall = c.predicateOfCall
	return c
}

// DeclaredType implements relation.Resolver.
func (c *Checker) DeclaredType(sym types.SymbolId) (types.TypeId, bool) {
	return c.declaredTypeOf(symbols.Id(sym))
}

// TypeParams implements relation.Resolver.
func (c *Checker) TypeParams(sym types.SymbolId) []types.TypeId {
	s := c.table.Get(symbols.Id(sym))
	if s == nil {
		return nil
	}
	var out []types.TypeId
	for _, decl := range s.Declarations {
		switch d := decl.(type) {
		case *ast.InterfaceDecl:
			out = append(out, c.typeParamIds(d.TypeParams)...)
		case *ast.TypeAliasDecl:
			out = append(out, c.typeParamIds(d.TypeParams)...)
		}
	}
	return out
}

func (c *Checker) typeParamIds(decls []*ast.TypeParamDecl) []types.TypeId {
	var out []types.TypeId
	for _, tp := range decls {
		var constraint types.TypeId
		if tp.Constraint != nil {
			constraint = c.buildType(tp.Constraint)
		}
		out = append(out, c.in.TypeParameter(tp.Name.Value, constraint, 0))
	}
	return out
}

// Check walks every statement of the bound program once, recording
// expr->TypeId and emitting diagnostics, per spec.md §4.C.
func (c *Checker) Check(prog *ast.Program) *diagnostics.Bag {
	c.ingestJSDoc(prog)
	for _, stmt := range prog.Statements {
		c.checkStatement(stmt)
	}
	return c.diags
}

// TypeOf returns the type this checker recorded for an expression node, the
// `expr_types: Map<ASTNode, TypeId>` output spec.md §6 names. Only valid
// after Check has visited the node; returns false otherwise.
func (c *Checker) TypeOf(e ast.Expression) (types.TypeId, bool) {
	t, ok := c.exprTypes[e]
	return t, ok
}

func (c *Checker) exprType(e ast.Expression) types.TypeId {
	if t, ok := c.exprTypes[e]; ok {
		return t
	}
	return c.inferExpr(e)
}

func (c *Checker) setType(n ast.Node, t types.TypeId) types.TypeId {
	c.exprTypes[n] = t
	return t
}
