// Package binder builds the symbol table and flow graph together in one
// pass over the AST, the way funxy's analyzer.walker builds a SymbolTable
// while simultaneously populating its TypeMap (internal/analyzer/analyzer.go,
// internal/analyzer/declarations.go). funxy has no separate flow graph, so
// the sequencing logic here (threading a "current flow node" through each
// statement and expression) is new; the scope-chain/declare-then-walk
// structure is carried over directly from funxy's walker.
package binder

import (
	"github.com/arborlang/tscore/internal/ast"
	"github.com/arborlang/tscore/internal/diagnostics"
	"github.com/arborlang/tscore/internal/flow"
	"github.com/arborlang/tscore/internal/symbols"
)

// Result is everything the checker driver needs from a bound file.
type Result struct {
	Table   *symbols.Table
	Graph   *flow.Graph
	Refs    map[*ast.Identifier]symbols.Id // identifier use -> resolved symbol
	Binds   map[ast.Node]symbols.Id        // declaration node -> its symbol
	Globals map[string]symbols.Id          // top-level name -> symbol, for type-position lookups
	Diags   *diagnostics.Bag
}

type binder struct {
	table *symbols.Table
	graph *flow.Graph
	refs  map[*ast.Identifier]symbols.Id
	binds map[ast.Node]symbols.Id
	diags *diagnostics.Bag
}

// Bind binds one file's AST, returning its symbol table and flow graph.
func Bind(prog *ast.Program) *Result {
	b := &binder{
		table: symbols.NewTable(),
		graph: flow.NewGraph(),
		refs:  make(map[*ast.Identifier]symbols.Id),
		binds: make(map[ast.Node]symbols.Id),
		diags: diagnostics.NewBag(),
	}
	global := symbols.NewScope(nil, symbols.ScopeGlobal)
	b.hoist(prog.Statements, global)
	cur := b.graph.Start
	for _, stmt := range prog.Statements {
		cur = b.bindStatement(stmt, global, cur)
	}
	return &Result{Table: b.table, Graph: b.graph, Refs: b.refs, Binds: b.binds, Globals: global.Names, Diags: b.diags}
}

// hoist makes a best-effort hoisted declaration for function/type
// declarations so forward references within the same scope resolve, mirroring
// funxy's two-pass (headers then bodies) analyzer discipline at a single-file
// granularity.
func (b *binder) hoist(stmts []ast.Statement, scope *symbols.Scope) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.FunctionDecl:
			if _, ok := scope.Resolve(s.Name.Value); !ok {
				id := b.table.Declare(s.Name.Value, symbols.FlagFunction, 0)
				scope.Define(s.Name.Value, id)
				b.binds[s] = id
			}
		case *ast.InterfaceDecl:
			if _, ok := scope.Resolve(s.Name.Value); !ok {
				id := b.table.Declare(s.Name.Value, symbols.FlagInterface, 0)
				scope.Define(s.Name.Value, id)
				b.binds[s] = id
			}
		case *ast.TypeAliasDecl:
			if _, ok := scope.Resolve(s.Name.Value); !ok {
				id := b.table.Declare(s.Name.Value, symbols.FlagTypeAlias, 0)
				scope.Define(s.Name.Value, id)
				b.binds[s] = id
			}
		case *ast.EnumDecl:
			if _, ok := scope.Resolve(s.Name.Value); !ok {
				id := b.table.Declare(s.Name.Value, symbols.FlagEnum|symbols.FlagNamespace, 0)
				scope.Define(s.Name.Value, id)
				b.binds[s] = id
			}
		}
	}
}
