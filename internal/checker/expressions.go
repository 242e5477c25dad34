package checker

import (
	"github.com/arborlang/tscore/internal/ast"
	"github.com/arborlang/tscore/internal/diagnostics"
	"github.com/arborlang/tscore/internal/types"
)

// inferExprNoNarrow computes an expression's type without consulting the
// flow graph, used when computing a symbol's declared type from its
// initializer (the declared type is a property of the declaration site,
// not of any particular use).
func (c *Checker) inferExprNoNarrow(e ast.Expression) types.TypeId {
	return c.inferExprAt(e, false)
}

func (c *Checker) inferExpr(e ast.Expression) types.TypeId {
	return c.inferExprAt(e, true)
}

func (c *Checker) inferExprAt(e ast.Expression, narrowRefs bool) types.TypeId {
	if t, ok := c.exprTypes[e]; ok {
		return t
	}
	t := c.computeExprType(e, narrowRefs)
	return c.setType(e, t)
}

func (c *Checker) computeExprType(expr ast.Expression, narrowRefs bool) types.TypeId {
	switch e := expr.(type) {
	case *ast.Identifier:
		return c.inferIdentifier(e, narrowRefs)

	case *ast.NumberLiteral:
		return c.in.LiteralNumber(e.Value)
	case *ast.BigIntLiteral:
		return c.in.LiteralBigInt(e.Value)
	case *ast.StringLiteral:
		return c.in.LiteralString(e.Value)
	case *ast.BoolLiteral:
		return c.in.LiteralBoolean(e.Value)
	case *ast.NullLiteral:
		return types.NULL
	case *ast.UndefinedLiteral:
		return types.UNDEFINED

	case *ast.PrefixExpression:
		return c.inferPrefix(e)

	case *ast.InfixExpression:
		return c.inferInfix(e)

	case *ast.LogicalExpression:
		l := c.inferExpr(e.Left)
		r := c.inferExpr(e.Right)
		return c.in.Union([]types.TypeId{l, r})

	case *ast.AssignExpression:
		return c.inferAssign(e)

	case *ast.UpdateExpression:
		t := c.inferExpr(e.Target)
		if flowNode, ok := c.bound.Graph.Positions[e]; ok {
			c.nw.Assigns[flowNode] = c.widen(t)
		}
		return t

	case *ast.CallExpression:
		return c.inferCall(e)

	case *ast.MemberExpression:
		return c.inferMember(e, narrowRefs)

	case *ast.IndexExpression:
		return c.inferIndex(e, narrowRefs)

	case *ast.ParenExpression:
		return c.inferExpr(e.Inner)

	case *ast.NonNullExpression:
		return c.subtractNullish(c.inferExpr(e.Inner))

	case *ast.AsExpression:
		target := c.buildType(e.TargetType)
		c.inferExpr(e.Inner)
		return target

	case *ast.ArrayLiteral:
		var elems []types.TypeId
		for _, el := range e.Elements {
			elems = append(elems, c.inferExpr(el))
		}
		return c.in.Array(c.in.Union(elems))

	case *ast.ObjectLiteral:
		var props []types.Property
		for _, p := range e.Properties {
			t := c.inferExpr(p.Value)
			props = append(props, types.Property{Name: p.Name.Value, Type: t, WriteType: t})
		}
		return c.in.Object(types.Object{Props: props, Flags: types.FlagFreshLiteral})

	case *ast.ArrowFunction:
		return c.inferArrow(e)
	}
	return types.ANY
}

func (c *Checker) inferIdentifier(id *ast.Identifier, narrowRefs bool) types.TypeId {
	sid, ok := c.bound.Refs[id]
	if !ok {
		c.diags.Add(diagnostics.New(diagnostics.UnresolvedReference, pos(id), "cannot find name %q", id.Value))
		return types.ERROR
	}
	declared, ok := c.declaredTypeOf(sid)
	if !ok {
		return types.ERROR
	}
	if !narrowRefs {
		return declared
	}
	flowNode := c.bound.Graph.PositionOf(id)
	return c.nw.Narrow(id, flowNode, declared)
}

func (c *Checker) inferPrefix(e *ast.PrefixExpression) types.TypeId {
	t := c.inferExpr(e.Right)
	switch e.Operator {
	case "!":
		return types.BOOLEAN
	case "typeof":
		return types.STRING
	case "-", "+", "~":
		_ = t
		return types.NUMBER
	}
	return types.ANY
}

func (c *Checker) inferInfix(e *ast.InfixExpression) types.TypeId {
	l := c.inferExpr(e.Left)
	r := c.inferExpr(e.Right)
	switch e.Operator {
	case "===", "!==", "==", "!=":
		if e.Operator == "===" || e.Operator == "!==" {
			if !c.rel.IsComparable(l, r) {
				c.diags.Add(diagnostics.New(diagnostics.NotComparable, pos(e), "this comparison appears to be unintentional because the types have no overlap"))
			}
		}
		return types.BOOLEAN
	case "<", ">", "<=", ">=", "instanceof", "in":
		return types.BOOLEAN
	case "+":
		if l == types.STRING || r == types.STRING {
			return types.STRING
		}
		return types.NUMBER
	default:
		return types.NUMBER
	}
}

func (c *Checker) inferAssign(e *ast.AssignExpression) types.TypeId {
	rhs := c.inferExpr(e.Value)
	targetType := c.inferExprNoNarrow(e.Target)
	if !c.rel.IsAssignable(rhs, targetType) {
		c.diags.Add(diagnostics.New(diagnostics.AssignmentMismatch, pos(e.Value),
			"type %q is not assignable to type %q", c.in.String(rhs), c.in.String(targetType)))
	}
	assigned := rhs
	if e.Operator == "+=" {
		lt, rt := c.widen(targetType), c.widen(rhs)
		switch {
		case lt == types.STRING || rt == types.STRING:
			assigned = types.STRING
		case lt == types.NUMBER && rt == types.NUMBER:
			assigned = types.NUMBER
		default:
			assigned = targetType
		}
	}
	if flowNode, ok := c.bound.Graph.Positions[e]; ok {
		c.nw.Assigns[flowNode] = assigned
	}
	return rhs
}

func (c *Checker) inferCall(e *ast.CallExpression) types.TypeId {
	calleeType := c.inferExpr(e.Function)
	argTypes := make([]types.TypeId, len(e.Arguments))
	for i, a := range e.Arguments {
		argTypes[i] = c.inferExpr(a)
	}
	callable, ok := c.in.AsCallable(calleeType)
	if !ok || len(callable.Calls) == 0 {
		if calleeType != types.ANY && calleeType != types.ERROR {
			c.diags.Add(diagnostics.New(diagnostics.ArgumentMismatch, pos(e.Function), "this expression is not callable"))
		}
		return types.ANY
	}
	sig := callable.Calls[0]
	min := 0
	for _, p := range sig.Params {
		if !p.Optional {
			min++
		}
	}
	if len(argTypes) < min {
		c.diags.Add(diagnostics.New(diagnostics.ArgumentMismatch, pos(e), "expected %d arguments, but got %d", min, len(argTypes)))
	}
	for i, at := range argTypes {
		var pt types.TypeId
		switch {
		case i < len(sig.Params):
			pt = sig.Params[i].Type
		case sig.Rest != nil:
			pt = sig.Rest.Type
		default:
			continue
		}
		if !c.rel.IsAssignable(at, pt) {
			c.diags.Add(diagnostics.New(diagnostics.ArgumentMismatch, pos(e.Arguments[i]),
				"argument of type %q is not assignable to parameter of type %q", c.in.String(at), c.in.String(pt)))
		}
	}
	if sig.Predicate != nil && sig.Predicate.Asserts {
		if len(e.Arguments) > 0 {
			if flowNode, ok := c.bound.Graph.Positions[e]; ok && sig.Predicate.Target != 0 {
				c.nw.Asserts[flowNode] = sig.Predicate.Target
			}
		}
	}
	if sig.Predicate != nil {
		return types.BOOLEAN
	}
	return sig.Return
}

func (c *Checker) inferMember(e *ast.MemberExpression, narrowRefs bool) types.TypeId {
	objType := c.inferExprAt(e.Object, narrowRefs)
	if !e.Optional && c.opts.StrictNullChecks && c.includesNullish(objType) {
		c.diags.Add(diagnostics.New(diagnostics.PossiblyNullObject, pos(e.Object), "object is possibly 'null' or 'undefined'"))
	}
	t, missing := c.propertyType(objType, e.Property.Value)
	if missing {
		c.diags.Add(diagnostics.New(diagnostics.PropertyMissing, pos(e.Property),
			"property %q does not exist on type %q", e.Property.Value, c.in.String(objType)))
	}
	if narrowRefs {
		flowNode := c.bound.Graph.PositionOf(e)
		return c.nw.Narrow(e, flowNode, t)
	}
	return t
}

func (c *Checker) includesNullish(t types.TypeId) bool {
	if t == types.NULL || t == types.UNDEFINED {
		return true
	}
	if u, ok := c.in.AsUnion(t); ok {
		for _, m := range u.Members {
			if m == types.NULL || m == types.UNDEFINED {
				return true
			}
		}
	}
	return false
}

// apparentType resolves a TypeReference (an interface, alias, or generic
// instantiation) to the structural shape member access actually sees,
// substituting declared type parameters with the reference's type
// arguments. Non-reference types pass through unchanged.
func (c *Checker) apparentType(t types.TypeId) types.TypeId {
	for depth := 0; depth < 100; depth++ {
		ref, ok := c.in.AsReference(t)
		if !ok {
			return t
		}
		declared, ok := c.DeclaredType(ref.Symbol)
		if !ok {
			return types.ERROR
		}
		tps := c.TypeParams(ref.Symbol)
		if len(tps) > 0 {
			sub := make(types.Subst, len(tps))
			for i, tp := range tps {
				if i < len(ref.Args) {
					sub[tp] = ref.Args[i]
				}
			}
			declared = c.in.Substitute(declared, sub)
		}
		t = declared
	}
	return t
}

// propertyType resolves a named property access. missing is true only for a
// closed object shape, or a callable with call or construct signatures, that
// has no matching property and no string index signature — the case spec.md
// §4.C's property-missing check (2339) reports. An array access gives number
// for `length` and the element type for any other name; intrinsic accesses
// fall back to ANY without a diagnostic, since their apparent-member tables
// aren't modeled here.
func (c *Checker) propertyType(objType types.TypeId, name string) (t types.TypeId, missing bool) {
	objType = c.apparentType(objType)
	if objType == types.ANY || objType == types.ERROR || objType == types.UNKNOWN {
		return types.ANY, false
	}
	if obj, ok := c.in.AsObject(objType); ok {
		idx := c.in.PropertyIndex(objType)
		if i, found := idx[name]; found {
			return obj.Props[i].Type, false
		}
		if obj.StringIndex != nil {
			return obj.StringIndex.Value, false
		}
		return types.ANY, true
	}
	if call, ok := c.in.AsCallable(objType); ok {
		for _, p := range call.Props {
			if p.Name == name {
				return p.Type, false
			}
		}
		if call.StringIndex != nil {
			return call.StringIndex.Value, false
		}
		if len(call.Calls) > 0 || len(call.Constructs) > 0 {
			return types.ANY, true
		}
		return types.ANY, false
	}
	if arr, ok := c.in.AsArray(objType); ok {
		if name == "length" {
			return types.NUMBER, false
		}
		return arr.Elem, false
	}
	return types.ANY, false
}

func (c *Checker) inferIndex(e *ast.IndexExpression, narrowRefs bool) types.TypeId {
	objType := c.inferExprAt(e.Object, narrowRefs)
	c.inferExpr(e.Index)
	var t types.TypeId
	if arr, ok := c.in.AsArray(objType); ok {
		t = arr.Elem
	} else if obj, ok := c.in.AsObject(objType); ok && obj.StringIndex != nil {
		t = obj.StringIndex.Value
	} else {
		t = types.ANY
	}
	if narrowRefs {
		flowNode := c.bound.Graph.PositionOf(e)
		return c.nw.Narrow(e, flowNode, t)
	}
	return t
}

func (c *Checker) subtractNullish(t types.TypeId) types.TypeId {
	if u, ok := c.in.AsUnion(t); ok {
		var out []types.TypeId
		for _, m := range u.Members {
			if m != types.NULL && m != types.UNDEFINED {
				out = append(out, m)
			}
		}
		return c.in.Union(out)
	}
	return t
}

func (c *Checker) inferArrow(e *ast.ArrowFunction) types.TypeId {
	c.pushTypeParams(e.TypeParams)
	sig := c.buildSignatureFrom(e.Params, e.ReturnType, nil)
	c.popTypeParams()
	if e.ReturnType == nil {
		switch body := e.Body.(type) {
		case ast.Expression:
			sig.Return = c.inferExpr(body)
		case *ast.BlockStatement:
			sig.Return = c.inferReturnType(body)
		}
	}
	return c.in.Callable(types.Callable{Calls: []types.Signature{sig}})
}

// inferReturnType collects the value type of every return statement found
// in the body's blocks, if/else branches and loop bodies (reachability is
// not considered) and unions them, a small local substitute for a real
// control-flow-based return-type inference pass.
func (c *Checker) inferReturnType(body *ast.BlockStatement) types.TypeId {
	var types_ []types.TypeId
	var walk func(stmts []ast.Statement)
	walk = func(stmts []ast.Statement) {
		for _, s := range stmts {
			switch st := s.(type) {
			case *ast.ReturnStatement:
				if st.Value != nil {
					types_ = append(types_, c.inferExpr(st.Value))
				} else {
					types_ = append(types_, types.UNDEFINED)
				}
			case *ast.BlockStatement:
				walk(st.Body)
			case *ast.IfStatement:
				walk(st.Consequence.Body)
				if alt, ok := st.Alternative.(*ast.BlockStatement); ok {
					walk(alt.Body)
				} else if alt, ok := st.Alternative.(*ast.IfStatement); ok {
					walk([]ast.Statement{alt})
				}
			case *ast.WhileStatement:
				walk(st.Body.Body)
			case *ast.ForOfStatement:
				walk(st.Body.Body)
			}
		}
	}
	if body != nil {
		walk(body.Body)
	}
	if len(types_) == 0 {
		return types.VOID
	}
	return c.in.Union(types_)
}
