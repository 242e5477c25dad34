package narrow

import (
	"github.com/arborlang/tscore/internal/ast"
	"github.com/arborlang/tscore/internal/facts"
	"github.com/arborlang/tscore/internal/flow"
	"github.com/arborlang/tscore/internal/types"
)

// InstanceTypeOf, when set, returns the instance type an `instanceof` RHS
// expression names (the checker resolves the class symbol and hands back
// its instance shape; narrow never chases symbols itself).
type InstanceTypeFn func(ast.Expression) (types.TypeId, bool)

// PredicateOfCall, when set, returns the unique type-predicate a call
// expression's callee type carries.
type PredicateOfCallFn func(*ast.CallExpression) (*types.Predicate, bool)

func (nw *Narrower) applyCondition(ref ast.Expression, node *flow.Node, base types.TypeId) types.TypeId {
	cond, ok := node.AST.(ast.Expression)
	if !ok {
		return base
	}
	truthy := node.Flags&flow.TrueCondition != 0
	return nw.narrowByCondition(ref, cond, truthy, base)
}

func (nw *Narrower) narrowByCondition(ref ast.Expression, cond ast.Expression, truthy bool, base types.TypeId) types.TypeId {
	cond = facts.SkipTrivia(cond)

	if px, ok := cond.(*ast.PrefixExpression); ok && px.Operator == "!" {
		return nw.narrowByCondition(ref, px.Right, !truthy, base)
	}

	if infix, ok := cond.(*ast.InfixExpression); ok {
		if t, ok := nw.narrowInfix(ref, infix, truthy, base); ok {
			return t
		}
	}

	if call, ok := cond.(*ast.CallExpression); ok && nw.PredicateOfCall != nil && len(call.Arguments) > 0 {
		if facts.IsMatchingReference(ref, call.Arguments[0], nw.Refs) {
			if pred, ok := nw.PredicateOfCall(call); ok {
				if pred.Asserts {
					if truthy {
						return pred.Target
					}
					return base
				}
				if truthy {
					return pred.Target
				}
				return nw.subtract(base, pred.Target)
			}
		}
	}

	if facts.IsMatchingReference(ref, cond, nw.Refs) {
		if truthy {
			return nw.filterFalsy(base, false)
		}
		return nw.filterFalsy(base, true)
	}

	return base
}

func (nw *Narrower) narrowInfix(ref ast.Expression, infix *ast.InfixExpression, truthy bool, base types.TypeId) (types.TypeId, bool) {
	op := infix.Operator
	isEqOp := op == "===" || op == "==" || op == "!==" || op == "!="
	if !isEqOp && op != "instanceof" && op != "in" {
		return base, false
	}
	wantMatch := truthy
	if op == "!==" || op == "!=" {
		wantMatch = !truthy
	}
	strict := op == "===" || op == "!=="

	if op == "in" {
		return nw.narrowIn(ref, infix, truthy, base)
	}
	if op == "instanceof" {
		return nw.narrowInstanceof(ref, infix, wantMatch, base)
	}

	// typeof x === "kind"
	if pfx, other, refSide, ok := splitTypeofGuard(infix); ok {
		if facts.IsMatchingReference(ref, refSide, nw.Refs) {
			kind, ok := stringLiteralValue(other)
			if ok {
				_ = pfx
				return nw.typeofFilter(base, kind, wantMatch), true
			}
		}
	}

	// x == null / x != null (loose, either side)
	if nullSide, refSide, ok := splitNullGuard(infix); ok {
		if facts.IsMatchingReference(ref, refSide, nw.Refs) {
			if strict {
				specific := types.NULL
				if _, isUndef := nullSide.(*ast.UndefinedLiteral); isUndef {
					specific = types.UNDEFINED
				}
				if wantMatch {
					return specific, true
				}
				return nw.subtract(base, specific), true
			}
			if wantMatch {
				return nw.In.Union([]types.TypeId{types.NULL, types.UNDEFINED}), true
			}
			return nw.subtract(nw.subtract(base, types.NULL), types.UNDEFINED), true
		}
	}

	// x === L (plain literal)
	if litSide, refSide, ok := splitLiteralGuard(infix); ok {
		if facts.IsMatchingReference(ref, refSide, nw.Refs) {
			if lit, ok := facts.LiteralValue(nw.In, litSide); ok {
				if wantMatch {
					return lit, true
				}
				return nw.subtract(base, lit), true
			}
		}
	}

	// x.kind === L (discriminant)
	if me, ok := infix.Left.(*ast.MemberExpression); ok {
		if lit, ok := facts.LiteralValue(nw.In, infix.Right); ok {
			if facts.IsMatchingReference(ref, me.Object, nw.Refs) {
				return nw.filterByDiscriminant(base, me.Property.Value, lit, wantMatch), true
			}
		}
	}
	if me, ok := infix.Right.(*ast.MemberExpression); ok {
		if lit, ok := facts.LiteralValue(nw.In, infix.Left); ok {
			if facts.IsMatchingReference(ref, me.Object, nw.Refs) {
				return nw.filterByDiscriminant(base, me.Property.Value, lit, wantMatch), true
			}
		}
	}

	return base, false
}

func (nw *Narrower) narrowIn(ref ast.Expression, infix *ast.InfixExpression, truthy bool, base types.TypeId) (types.TypeId, bool) {
	key, ok := stringLiteralValue(infix.Left)
	if !ok || !facts.IsMatchingReference(ref, infix.Right, nw.Refs) {
		return base, false
	}
	return nw.filterUnionMembers(base, func(m types.TypeId) bool {
		p := facts.PropertyPresence(nw.In, m, key)
		if truthy {
			return p == facts.Required || p == facts.Optional || p == facts.Unknown
		}
		return p == facts.Absent
	}), true
}

func (nw *Narrower) narrowInstanceof(ref ast.Expression, infix *ast.InfixExpression, wantMatch bool, base types.TypeId) (types.TypeId, bool) {
	if !facts.IsMatchingReference(ref, infix.Left, nw.Refs) || nw.InstanceTypeOf == nil {
		return base, false
	}
	inst, ok := nw.InstanceTypeOf(infix.Right)
	if !ok {
		return base, false
	}
	if wantMatch {
		return nw.In.Intersection([]types.TypeId{base, inst}), true
	}
	return nw.subtract(base, inst), true
}

func splitTypeofGuard(infix *ast.InfixExpression) (pfx *ast.PrefixExpression, other ast.Expression, refSide ast.Expression, ok bool) {
	if p, isP := facts.SkipTrivia(infix.Left).(*ast.PrefixExpression); isP && p.Operator == "typeof" {
		return p, infix.Right, p.Right, true
	}
	if p, isP := facts.SkipTrivia(infix.Right).(*ast.PrefixExpression); isP && p.Operator == "typeof" {
		return p, infix.Left, p.Right, true
	}
	return nil, nil, nil, false
}

func splitNullGuard(infix *ast.InfixExpression) (nullSide, refSide ast.Expression, ok bool) {
	isNullish := func(e ast.Expression) bool {
		e = facts.SkipTrivia(e)
		switch e.(type) {
		case *ast.NullLiteral, *ast.UndefinedLiteral:
			return true
		}
		return false
	}
	if isNullish(infix.Left) {
		return facts.SkipTrivia(infix.Left), infix.Right, true
	}
	if isNullish(infix.Right) {
		return facts.SkipTrivia(infix.Right), infix.Left, true
	}
	return nil, nil, false
}

func splitLiteralGuard(infix *ast.InfixExpression) (litSide, refSide ast.Expression, ok bool) {
	isLit := func(e ast.Expression) bool {
		switch facts.SkipTrivia(e).(type) {
		case *ast.StringLiteral, *ast.NumberLiteral, *ast.BigIntLiteral, *ast.BoolLiteral:
			return true
		}
		return false
	}
	if isLit(infix.Left) {
		return infix.Left, infix.Right, true
	}
	if isLit(infix.Right) {
		return infix.Right, infix.Left, true
	}
	return nil, nil, false
}

func stringLiteralValue(e ast.Expression) (string, bool) {
	if s, ok := facts.SkipTrivia(e).(*ast.StringLiteral); ok {
		return s.Value, true
	}
	return "", false
}

// typeofFilter narrows base by a `typeof` tag, per spec.md §4.N's table.
// Unknown is narrowed aggressively: `typeof u === "string"` returns string
// directly rather than trying to subtract from an empty member set.
func (nw *Narrower) typeofFilter(base types.TypeId, kind string, wantMatch bool) types.TypeId {
	target := typeofTargetType(nw.In, kind)
	if base == types.UNKNOWN || base == types.ANY {
		if wantMatch {
			return target
		}
		return base
	}
	if kind == "function" {
		return nw.filterUnionMembers(base, func(m types.TypeId) bool {
			return nw.In.IsCallableLike(m) == wantMatch
		})
	}
	if wantMatch {
		return nw.filterUnionMembers(base, func(m types.TypeId) bool {
			return nw.Rel.IsAssignable(m, target)
		})
	}
	return nw.subtract(base, target)
}

func typeofTargetType(in *types.Interner, kind string) types.TypeId {
	switch kind {
	case "string":
		return types.STRING
	case "number":
		return types.NUMBER
	case "boolean":
		return types.BOOLEAN
	case "bigint":
		return types.BIGINT
	case "symbol":
		return types.SYMBOL
	case "undefined":
		return types.UNDEFINED
	case "object":
		return types.OBJECT
	case "function":
		return types.OBJECT // callables are object-like; typeofFilter keeps or drops members by their call/construct signatures
	}
	return types.UNKNOWN
}

func (nw *Narrower) filterFalsy(base types.TypeId, keepFalsy bool) types.TypeId {
	return nw.filterUnionMembers(base, func(m types.TypeId) bool {
		falsy := m == types.NULL || m == types.UNDEFINED || nw.In.IsFalsyLiteral(m)
		return falsy == keepFalsy
	})
}

func (nw *Narrower) filterByDiscriminant(base types.TypeId, prop string, lit types.TypeId, wantMatch bool) types.TypeId {
	litVal, _ := nw.In.AsLiteral(lit)
	return nw.filterUnionMembers(base, func(m types.TypeId) bool {
		obj, ok := nw.In.AsObject(m)
		if !ok {
			return !wantMatch
		}
		idx := nw.In.PropertyIndex(m)
		i, found := idx[prop]
		if !found {
			return !wantMatch
		}
		ml, ok := nw.In.AsLiteral(obj.Props[i].Type)
		matches := ok && sameLiteral(ml, litVal)
		return matches == wantMatch
	})
}

func sameLiteral(a, b types.Literal) bool {
	if a.LKind != b.LKind {
		return false
	}
	switch a.LKind {
	case types.LitString:
		return a.Str == b.Str
	case types.LitNumber:
		return a.Num == b.Num
	case types.LitBigInt:
		return a.Big == b.Big
	default:
		return a.Bool == b.Bool
	}
}

// filterUnionMembers keeps the members of base (exploded into a union if it
// is one, or treated as a one-element set otherwise) for which keep
// returns true.
func (nw *Narrower) filterUnionMembers(base types.TypeId, keep func(types.TypeId) bool) types.TypeId {
	members := nw.members(base)
	var out []types.TypeId
	for _, m := range members {
		if keep(m) {
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return types.NEVER
	}
	return nw.In.Union(out)
}

func (nw *Narrower) members(t types.TypeId) []types.TypeId {
	if u, ok := nw.In.AsUnion(t); ok {
		return u.Members
	}
	return []types.TypeId{t}
}

// subtract implements the `T \ X` operator the narrowing table uses: drop
// every member of base assignable to x.
func (nw *Narrower) subtract(base, x types.TypeId) types.TypeId {
	return nw.filterUnionMembers(base, func(m types.TypeId) bool {
		return !nw.Rel.IsAssignable(m, x)
	})
}
