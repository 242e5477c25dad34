package checker

import (
	"github.com/arborlang/tscore/internal/ast"
	"github.com/arborlang/tscore/internal/symbols"
	"github.com/arborlang/tscore/internal/types"
)

func (c *Checker) pushTypeParams(decls []*ast.TypeParamDecl) {
	scope := make(map[string]types.TypeId, len(decls))
	c.typeParamScopes = append(c.typeParamScopes, scope)
	for _, tp := range decls {
		var constraint, def types.TypeId
		if tp.Constraint != nil {
			constraint = c.buildType(tp.Constraint)
		}
		if tp.Default != nil {
			def = c.buildType(tp.Default)
		}
		scope[tp.Name.Value] = c.in.TypeParameter(tp.Name.Value, constraint, def)
	}
}

func (c *Checker) popTypeParams() {
	c.typeParamScopes = c.typeParamScopes[:len(c.typeParamScopes)-1]
}

func (c *Checker) lookupTypeParam(name string) (types.TypeId, bool) {
	for i := len(c.typeParamScopes) - 1; i >= 0; i-- {
		if t, ok := c.typeParamScopes[i][name]; ok {
			return t, true
		}
	}
	return 0, false
}

// lookupTypeName resolves a bare name in type position: an in-scope type
// parameter first, then one of the reserved intrinsic names, then a
// top-level symbol (interface, type alias, enum, or class-as-namespace).
func (c *Checker) lookupTypeName(name string) (types.TypeId, bool) {
	if t, ok := c.lookupTypeParam(name); ok {
		return t, true
	}
	if id, ok := types.IntrinsicByName(name); ok {
		return id, true
	}
	if sid, ok := c.bound.Globals[name]; ok {
		return c.in.Reference(types.SymbolId(sid), nil), true
	}
	if t, ok := c.jsdocTypedefs[name]; ok {
		return t, true
	}
	return 0, false
}

// buildType translates a parsed TypeNode into an interned TypeId. Grounded
// on funxy's BuildType (declarations_helpers.go), which walks its own
// ast type-expression tree resolving bare identifiers against the symbol
// table the same way.
func (c *Checker) buildType(node ast.TypeNode) types.TypeId {
	if node == nil {
		return types.ANY
	}
	switch n := node.(type) {
	case *ast.KeywordType:
		if id, ok := types.IntrinsicByName(n.Name); ok {
			return id
		}
		return types.ANY

	case *ast.LiteralType:
		switch n.Kind {
		case "string":
			return c.in.LiteralString(n.Str)
		case "number":
			return c.in.LiteralNumber(n.Num)
		case "boolean":
			return c.in.LiteralBoolean(n.Bool)
		default:
			return c.in.LiteralBigInt(n.Str)
		}

	case *ast.NamedType:
		base, ok := c.lookupTypeName(n.Name.Value)
		if !ok {
			return types.ERROR
		}
		if len(n.Args) == 0 {
			return base
		}
		if ref, ok := c.in.AsReference(base); ok {
			args := make([]types.TypeId, len(n.Args))
			for i, a := range n.Args {
				args[i] = c.buildType(a)
			}
			return c.in.Reference(ref.Symbol, args)
		}
		return base

	case *ast.UnionType:
		ids := make([]types.TypeId, len(n.Types))
		for i, t := range n.Types {
			ids[i] = c.buildType(t)
		}
		return c.in.Union(ids)

	case *ast.IntersectionType:
		ids := make([]types.TypeId, len(n.Types))
		for i, t := range n.Types {
			ids[i] = c.buildType(t)
		}
		return c.in.Intersection(ids)

	case *ast.ArrayType:
		return c.in.Array(c.buildType(n.Elem))

	case *ast.TupleType:
		elems := make([]types.TupleElem, len(n.Elements))
		for i, e := range n.Elements {
			elems[i] = types.TupleElem{Type: c.buildType(e.Type), Name: e.Name, Optional: e.Opt, Rest: e.Rest}
		}
		return c.in.Tuple(elems, n.Readonly)

	case *ast.ObjectType:
		return c.buildObjectOrCallable(n)

	case *ast.FunctionType:
		c.pushTypeParams(n.TypeParams)
		sig := c.buildSignatureFrom(n.Params, n.ReturnType, n.Predicate)
		c.popTypeParams()
		return c.in.Callable(types.Callable{Calls: []types.Signature{sig}})

	case *ast.KeyofType:
		return c.in.IndexOf(c.buildType(n.Inner))

	case *ast.IndexedAccessType:
		return c.in.IndexedAccessOf(c.buildType(n.Obj), c.buildType(n.Index))

	case *ast.TypeQueryType:
		if sid, ok := c.bound.Globals[n.Name.Value]; ok {
			return c.in.TypeQueryOf(types.SymbolId(sid))
		}
		return types.ERROR

	case *ast.ParenType:
		return c.buildType(n.Inner)

	case *ast.ConditionalType:
		check := c.buildType(n.Check)
		extends := c.buildType(n.Extends)
		trueT := c.buildType(n.TrueType)
		falseT := c.buildType(n.FalseType)
		distributive := false
		var naked types.TypeId
		if tp, ok := c.in.AsTypeParameter(check); ok {
			_ = tp
			distributive = true
			naked = check
		}
		return c.in.Conditional(check, extends, trueT, falseT, distributive, naked)

	case *ast.MappedType:
		c.typeParamScopes = append(c.typeParamScopes, map[string]types.TypeId{})
		constraint := c.buildType(n.Constraint)
		param := c.in.TypeParameter(n.Param.Value, constraint, 0)
		c.typeParamScopes[len(c.typeParamScopes)-1][n.Param.Value] = param
		value := c.buildType(n.Value)
		c.popTypeParams()
		return c.in.Mapped(types.Mapped{
			Param:       param,
			Constraint:  constraint,
			Value:       value,
			ReadonlyMod: modifierOf(n.ReadonlyMod),
			OptionalMod: modifierOf(n.OptionalMod),
		})
	}
	return types.ANY
}

func modifierOf(s string) types.MappedModifier {
	switch s {
	case "+":
		return types.ModAdd
	case "-":
		return types.ModRemove
	default:
		return types.ModNone
	}
}

func (c *Checker) buildObjectType(n *ast.ObjectType) types.TypeId {
	t := c.buildObjectOrCallable(n)
	return t
}

func (c *Checker) buildObjectOrCallable(n *ast.ObjectType) types.TypeId {
	var props []types.Property
	for _, p := range n.Properties {
		vis := types.Public
		switch p.Visibility {
		case "protected":
			vis = types.Protected
		case "private":
			vis = types.Private
		}
		t := c.buildType(p.Type)
		props = append(props, types.Property{
			Name: p.Name.Value, Type: t, WriteType: t,
			Optional: p.Optional, Readonly: p.Readonly, Visibility: vis,
		})
	}
	var strIdx, numIdx *types.IndexSig
	for _, ix := range n.Indexes {
		sig := &types.IndexSig{Value: c.buildType(ix.ValueType), Readonly: ix.Readonly}
		if ix.KeyIsNumber {
			numIdx = sig
		} else {
			strIdx = sig
		}
	}
	if len(n.Calls) == 0 {
		return c.in.Object(types.Object{Props: props, StringIndex: strIdx, NumberIndex: numIdx})
	}
	var calls, constructs []types.Signature
	for _, cs := range n.Calls {
		c.pushTypeParams(cs.TypeParams)
		sig := c.buildSignatureFrom(cs.Params, cs.ReturnType, cs.Predicate)
		c.popTypeParams()
		if cs.IsNew {
			constructs = append(constructs, sig)
		} else {
			calls = append(calls, sig)
		}
	}
	return c.in.Callable(types.Callable{Calls: calls, Constructs: constructs, Props: props, StringIndex: strIdx, NumberIndex: numIdx})
}

func (c *Checker) buildSignature(typeParams []*ast.TypeParamDecl, params []*ast.Param, ret ast.TypeNode, pred *ast.PredicateType, body *ast.BlockStatement) types.Signature {
	c.pushTypeParams(typeParams)
	defer c.popTypeParams()
	sig := c.buildSignatureFrom(params, ret, pred)
	if ret == nil && pred == nil {
		sig.Return = c.inferReturnType(body)
	}
	return sig
}

func (c *Checker) buildSignatureFrom(params []*ast.Param, ret ast.TypeNode, pred *ast.PredicateType) types.Signature {
	var tpIds []types.TypeId
	scope := c.typeParamScopes[len(c.typeParamScopes)-1]
	for _, t := range scope {
		tpIds = append(tpIds, t)
	}
	sig := types.Signature{TypeParams: tpIds}
	for _, p := range params {
		pt := types.ANY
		if p.Annot != nil {
			pt = c.buildType(p.Annot)
		}
		if p.Rest {
			sig.Rest = &types.Param{Name: p.Name.Value, Type: pt}
			continue
		}
		sig.Params = append(sig.Params, types.Param{Name: p.Name.Value, Type: pt, Optional: p.Optional})
	}
	if pred != nil {
		var target types.TypeId
		if pred.Target != nil {
			target = c.buildType(pred.Target)
		}
		sig.Predicate = &types.Predicate{ParamName: pred.ParamName, Target: target, Asserts: pred.Asserts}
		sig.Return = types.BOOLEAN
	} else if ret != nil {
		sig.Return = c.buildType(ret)
	} else {
		sig.Return = types.VOID
	}
	return sig
}

func (c *Checker) instanceTypeOf(e ast.Expression) (types.TypeId, bool) {
	id, ok := e.(*ast.Identifier)
	if !ok {
		return 0, false
	}
	sid, ok := c.bound.Refs[id]
	if !ok {
		sid, ok = c.bound.Globals[id.Value]
		if !ok {
			return 0, false
		}
	}
	return c.declaredTypeOf(symbols.Id(sid))
}

func (c *Checker) predicateOfCall(call *ast.CallExpression) (*types.Predicate, bool) {
	calleeType := c.exprType(call.Function)
	cl, ok := c.in.AsCallable(calleeType)
	if !ok || len(cl.Calls) == 0 {
		return nil, false
	}
	return cl.Calls[0].Predicate, cl.Calls[0].Predicate != nil
}
