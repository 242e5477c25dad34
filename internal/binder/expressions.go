package binder

import (
	"github.com/arborlang/tscore/internal/ast"
	"github.com/arborlang/tscore/internal/flow"
	"github.com/arborlang/tscore/internal/symbols"
)

var mutatingArrayMethods = map[string]bool{
	"push": true, "pop": true, "shift": true, "unshift": true,
	"splice": true, "sort": true, "reverse": true, "fill": true, "copyWithin": true,
}

// bindExpression threads flow through an expression's subexpressions in
// evaluation order and returns the flow position reached after it,
// recording ASSIGNMENT/CALL/ARRAY_MUTATION nodes where the expression
// produces one.
func (b *binder) bindExpression(expr ast.Expression, scope *symbols.Scope, cur *flow.Node) *flow.Node {
	if expr == nil {
		return cur
	}
	switch e := expr.(type) {
	case *ast.Identifier:
		b.resolveIdent(e, scope)
		b.graph.At(e, cur)
		return cur

	case *ast.NumberLiteral, *ast.BigIntLiteral, *ast.StringLiteral, *ast.BoolLiteral,
		*ast.NullLiteral, *ast.UndefinedLiteral:
		return cur

	case *ast.PrefixExpression:
		cur = b.bindExpression(e.Right, scope, cur)
		b.graph.At(e, cur)
		return cur

	case *ast.InfixExpression:
		cur = b.bindExpression(e.Left, scope, cur)
		cur = b.bindExpression(e.Right, scope, cur)
		b.graph.At(e, cur)
		return cur

	case *ast.LogicalExpression:
		cur = b.bindExpression(e.Left, scope, cur)
		trueFlow := b.graph.Condition(e.Left, cur, true)
		falseFlow := b.graph.Condition(e.Left, cur, false)
		var rhsEntry *flow.Node
		if e.Operator == "||" {
			rhsEntry = falseFlow
		} else {
			rhsEntry = trueFlow
		}
		rhsEnd := b.bindExpression(e.Right, scope, rhsEntry)
		other := trueFlow
		if e.Operator != "||" {
			other = falseFlow
		}
		join := b.graph.Label(rhsEnd, other)
		b.graph.At(e, join)
		return join

	case *ast.AssignExpression:
		cur = b.bindExpression(e.Value, scope, cur)
		b.resolveReference(e.Target, scope)
		assign := b.graph.Assign(e.Target, cur)
		b.graph.At(e, assign)
		return assign

	case *ast.UpdateExpression:
		b.resolveReference(e.Target, scope)
		assign := b.graph.Assign(e.Target, cur)
		b.graph.At(e, assign)
		return assign

	case *ast.CallExpression:
		cur = b.bindExpression(e.Function, scope, cur)
		for _, a := range e.Arguments {
			cur = b.bindExpression(a, scope, cur)
		}
		if me, ok := e.Function.(*ast.MemberExpression); ok && mutatingArrayMethods[me.Property.Value] {
			mutate := b.graph.ArrayMutate(me.Object, cur)
			b.graph.At(e, mutate)
			return mutate
		}
		call := b.graph.CallNode(e, cur)
		b.graph.At(e, call)
		return call

	case *ast.MemberExpression:
		cur = b.bindExpression(e.Object, scope, cur)
		b.graph.At(e, cur)
		return cur

	case *ast.IndexExpression:
		cur = b.bindExpression(e.Object, scope, cur)
		cur = b.bindExpression(e.Index, scope, cur)
		b.graph.At(e, cur)
		return cur

	case *ast.ParenExpression:
		cur = b.bindExpression(e.Inner, scope, cur)
		b.graph.At(e, cur)
		return cur

	case *ast.NonNullExpression:
		cur = b.bindExpression(e.Inner, scope, cur)
		b.graph.At(e, cur)
		return cur

	case *ast.AsExpression:
		cur = b.bindExpression(e.Inner, scope, cur)
		b.graph.At(e, cur)
		return cur

	case *ast.ArrayLiteral:
		for _, el := range e.Elements {
			cur = b.bindExpression(el, scope, cur)
		}
		b.graph.At(e, cur)
		return cur

	case *ast.ObjectLiteral:
		for _, p := range e.Properties {
			cur = b.bindExpression(p.Value, scope, cur)
		}
		b.graph.At(e, cur)
		return cur

	case *ast.ArrowFunction:
		b.bindArrow(e, scope, cur)
		b.graph.At(e, cur)
		return cur
	}
	return cur
}

func (b *binder) bindArrow(e *ast.ArrowFunction, scope *symbols.Scope, enclosing *flow.Node) {
	fnScope := symbols.NewScope(scope, symbols.ScopeFunction)
	for _, tp := range e.TypeParams {
		tid := b.table.Declare(tp.Name.Value, symbols.FlagTypeParameter, 0)
		fnScope.Define(tp.Name.Value, tid)
	}
	for _, p := range e.Params {
		pid := b.table.Declare(p.Name.Value, symbols.FlagParameter, 0)
		fnScope.Define(p.Name.Value, pid)
		b.table.AddDeclaration(pid, p, true)
		b.binds[p] = pid
	}
	start := flow.NewClosureStart(enclosing)
	switch body := e.Body.(type) {
	case *ast.BlockStatement:
		b.bindBlock(body, fnScope, start)
	case ast.Expression:
		b.bindExpression(body, fnScope, start)
	}
}

// resolveIdent looks an identifier use up through the scope chain and
// records the binding, the way funxy's walker resolves an ast.Identifier
// against its SymbolTable before inferring its type.
func (b *binder) resolveIdent(id *ast.Identifier, scope *symbols.Scope) {
	if sid, ok := scope.Resolve(id.Value); ok {
		b.refs[id] = sid
	}
}

// resolveReference resolves the identifier at the root of an assignment
// target (`x`, `x.y`, `x[0]`) without walking into call subexpressions,
// since an assignment target is never itself invoked.
func (b *binder) resolveReference(expr ast.Expression, scope *symbols.Scope) {
	switch e := expr.(type) {
	case *ast.Identifier:
		b.resolveIdent(e, scope)
	case *ast.MemberExpression:
		b.resolveReference(e.Object, scope)
	case *ast.IndexExpression:
		b.resolveReference(e.Object, scope)
	case *ast.ParenExpression:
		b.resolveReference(e.Inner, scope)
	case *ast.NonNullExpression:
		b.resolveReference(e.Inner, scope)
	}
}
