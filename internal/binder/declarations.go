package binder

import (
	"github.com/arborlang/tscore/internal/ast"
	"github.com/arborlang/tscore/internal/flow"
	"github.com/arborlang/tscore/internal/symbols"
)

// bindStatement binds one statement under scope, starting from the flow
// position `cur`, and returns the flow position reached after it.
func (b *binder) bindStatement(stmt ast.Statement, scope *symbols.Scope, cur *flow.Node) *flow.Node {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		return b.bindVarDecl(s, scope, cur)

	case *ast.FunctionDecl:
		return b.bindFunctionDecl(s, scope, cur)

	case *ast.BlockStatement:
		return b.bindBlock(s, symbols.NewScope(scope, symbols.ScopeBlock), cur)

	case *ast.ExpressionStatement:
		return b.bindExpression(s.Expr, scope, cur)

	case *ast.ReturnStatement:
		if s.Value != nil {
			cur = b.bindExpression(s.Value, scope, cur)
		}
		return b.graph.Dead()

	case *ast.IfStatement:
		return b.bindIf(s, scope, cur)

	case *ast.WhileStatement:
		return b.bindWhile(s, scope, cur)

	case *ast.ForOfStatement:
		return b.bindForOf(s, scope, cur)

	case *ast.InterfaceDecl:
		return b.bindInterface(s, scope, cur)

	case *ast.TypeAliasDecl:
		return b.bindTypeAlias(s, scope, cur)

	case *ast.EnumDecl:
		return b.bindEnum(s, scope, cur)
	}
	return cur
}

func (b *binder) bindVarDecl(s *ast.VarDecl, scope *symbols.Scope, cur *flow.Node) *flow.Node {
	if s.Init != nil {
		cur = b.bindExpression(s.Init, scope, cur)
	}
	flags := symbols.FlagVariable
	if s.Const {
		flags |= symbols.FlagConst
	}
	id := b.table.Declare(s.Name.Value, flags, 0)
	scope.Define(s.Name.Value, id)
	b.table.AddDeclaration(id, s, true)
	b.binds[s] = id
	assign := b.graph.Assign(s.Name, cur)
	b.graph.At(s, assign)
	return assign
}

func (b *binder) bindFunctionDecl(s *ast.FunctionDecl, scope *symbols.Scope, cur *flow.Node) *flow.Node {
	id, ok := scope.Resolve(s.Name.Value)
	if !ok {
		id = b.table.Declare(s.Name.Value, symbols.FlagFunction, 0)
		scope.Define(s.Name.Value, id)
	}
	b.table.AddDeclaration(id, s, true)
	b.binds[s] = id

	fnScope := symbols.NewScope(scope, symbols.ScopeFunction)
	for _, tp := range s.TypeParams {
		tid := b.table.Declare(tp.Name.Value, symbols.FlagTypeParameter, id)
		fnScope.Define(tp.Name.Value, tid)
	}
	fnStart := flow.NewStart()
	b.hoist(s.Body.Body, fnScope)
	for _, p := range s.Params {
		pid := b.table.Declare(p.Name.Value, symbols.FlagParameter, id)
		fnScope.Define(p.Name.Value, pid)
		b.table.AddDeclaration(pid, p, true)
		b.binds[p] = pid
	}
	b.bindBlock(s.Body, fnScope, fnStart)
	return cur
}

// bindBlock binds every statement in a block in sequence, hoisting
// function/type declarations first (funxy's headers-then-bodies discipline,
// applied per-block instead of per-module).
func (b *binder) bindBlock(blk *ast.BlockStatement, scope *symbols.Scope, cur *flow.Node) *flow.Node {
	b.hoist(blk.Body, scope)
	for _, stmt := range blk.Body {
		cur = b.bindStatement(stmt, scope, cur)
	}
	b.graph.At(blk, cur)
	return cur
}

func (b *binder) bindIf(s *ast.IfStatement, scope *symbols.Scope, cur *flow.Node) *flow.Node {
	cur = b.bindExpression(s.Condition, scope, cur)
	trueFlow := b.graph.Condition(s.Condition, cur, true)
	falseFlow := b.graph.Condition(s.Condition, cur, false)

	consEnd := b.bindBlock(s.Consequence, symbols.NewScope(scope, symbols.ScopeBlock), trueFlow)

	var altEnd *flow.Node
	if s.Alternative != nil {
		altEnd = b.bindStatement(s.Alternative, symbols.NewScope(scope, symbols.ScopeBlock), falseFlow)
	} else {
		altEnd = falseFlow
	}
	join := b.graph.Label(consEnd, altEnd)
	b.graph.At(s, join)
	return join
}

func (b *binder) bindWhile(s *ast.WhileStatement, scope *symbols.Scope, cur *flow.Node) *flow.Node {
	label := b.graph.LoopLabel(cur)
	condFlow := b.bindExpression(s.Condition, scope, label)
	trueFlow := b.graph.Condition(s.Condition, condFlow, true)
	falseFlow := b.graph.Condition(s.Condition, condFlow, false)

	bodyEnd := b.bindBlock(s.Body, symbols.NewScope(scope, symbols.ScopeBlock), trueFlow)
	b.graph.AddBackEdge(label, bodyEnd)

	b.graph.At(s, falseFlow)
	return falseFlow
}

func (b *binder) bindForOf(s *ast.ForOfStatement, scope *symbols.Scope, cur *flow.Node) *flow.Node {
	cur = b.bindExpression(s.Iter, scope, cur)
	label := b.graph.LoopLabel(cur)

	bodyScope := symbols.NewScope(scope, symbols.ScopeBlock)
	id := b.table.Declare(s.Binder.Value, symbols.FlagVariable, 0)
	bodyScope.Define(s.Binder.Value, id)
	b.binds[s.Binder] = id
	assign := b.graph.Assign(s.Binder, label)

	bodyEnd := b.bindBlock(s.Body, bodyScope, assign)
	b.graph.AddBackEdge(label, bodyEnd)

	b.graph.At(s, label)
	return label
}

func (b *binder) bindInterface(s *ast.InterfaceDecl, scope *symbols.Scope, cur *flow.Node) *flow.Node {
	id, ok := scope.Resolve(s.Name.Value)
	if !ok {
		id = b.table.Declare(s.Name.Value, symbols.FlagInterface, 0)
		scope.Define(s.Name.Value, id)
	}
	b.table.AddDeclaration(id, s, false)
	b.binds[s] = id
	return cur
}

func (b *binder) bindTypeAlias(s *ast.TypeAliasDecl, scope *symbols.Scope, cur *flow.Node) *flow.Node {
	id, ok := scope.Resolve(s.Name.Value)
	if !ok {
		id = b.table.Declare(s.Name.Value, symbols.FlagTypeAlias, 0)
		scope.Define(s.Name.Value, id)
	}
	b.table.AddDeclaration(id, s, false)
	b.binds[s] = id
	return cur
}

func (b *binder) bindEnum(s *ast.EnumDecl, scope *symbols.Scope, cur *flow.Node) *flow.Node {
	id, ok := scope.Resolve(s.Name.Value)
	if !ok {
		id = b.table.Declare(s.Name.Value, symbols.FlagEnum|symbols.FlagNamespace, 0)
		scope.Define(s.Name.Value, id)
	}
	b.table.AddDeclaration(id, s, true)
	b.binds[s] = id

	sym := b.table.Get(id)
	for _, m := range s.Members {
		mid := b.table.Declare(m.Name.Value, symbols.FlagEnumMember, id)
		sym.Members[m.Name.Value] = mid
		b.binds[m] = mid
		if m.Init != nil {
			cur = b.bindExpression(m.Init, scope, cur)
		}
	}
	return cur
}
