// Package relation implements the CORE's three structural relations
// (assignability, subtyping, comparability), tag R in the design overview.
//
// The co-inductive visited-pair cache and priority-ordered variant dispatch
// are grounded on funxy's Unify (internal/typesystem/unify.go): that function
// walks a `visited []typePair` slice and short-circuits to success on a
// repeated pair before dispatching on Go type-switch variants in a fixed
// order. This package keeps that shape — a per-call `visited` set plus a
// switch over the source/target Kind pair — but answers a different
// question (may-assign, not "find a unifying substitution") and dispatches
// over structural TypeScript variants instead of funxy's HM Type values.
package relation

import (
	"github.com/arborlang/tscore/internal/types"
)

// Resolver looks up a symbol's declared type and members, the one piece of
// binder-owned state the relation engine needs. The checker driver supplies
// the concrete implementation (it is the one component that actually forces
// lazy declared-type computation); relation never does that itself.
type Resolver interface {
	// DeclaredType returns the type a Reference's Symbol names (an
	// interface's or class's apparent shape, a type alias's body with its
	// own type parameters still free). ok is false for an unresolvable
	// symbol (reported elsewhere as TS2304).
	DeclaredType(sym types.SymbolId) (types.TypeId, bool)
	// TypeParams returns the declared type-parameter list for a Reference's
	// Symbol, used to build the substitution before recursing into
	// DeclaredType's result.
	TypeParams(sym types.SymbolId) []types.TypeId
}

// Options toggles the checker-configurable strictness knobs spec.md's
// contract for 4.R and 4.R.3 names.
type Options struct {
	StrictAnyPropagation bool // §4.R step 3: when true, `any` is checked structurally instead of short-circuiting
	StrictFunctionTypes  bool // §4.R.3: contravariant (true) vs bivariant (false) parameter checks
	StrictNullChecks     bool
}

type Engine struct {
	in       *types.Interner
	resolver Resolver
	opts     Options
}

func New(in *types.Interner, resolver Resolver, opts Options) *Engine {
	return &Engine{in: in, resolver: resolver, opts: opts}
}

type mode uint8

const (
	modeAssignable mode = iota
	modeSubtype
)

type pairKey struct {
	source, target types.TypeId
	m              mode
}

// visited is the co-inductive cache: spec.md §4.R says "Enter a visited pair
// cache; if present, return true" — recursive/cyclic type graphs (a
// self-referential interface) would otherwise recurse forever.
type visitedSet map[pairKey]bool

// IsAssignable implements spec.md §4.R's permissive relation, including the
// documented `any`/void-return unsoundnesses.
func (e *Engine) IsAssignable(source, target types.TypeId) bool {
	return e.check(source, target, modeAssignable, make(visitedSet))
}

// IsSubtype implements the strict structural relation used for overload
// resolution: no any-exception, no bivariant parameter checking.
func (e *Engine) IsSubtype(source, target types.TypeId) bool {
	return e.check(source, target, modeSubtype, make(visitedSet))
}

func (e *Engine) check(source, target types.TypeId, m mode, visited visitedSet) bool {
	key := pairKey{source, target, m}
	if visited[key] {
		return true
	}
	visited[key] = true

	in := e.in

	// 1. Identity
	if source == target {
		return true
	}
	// 2. Top/bottom
	if target == types.ANY || target == types.UNKNOWN || source == types.NEVER {
		return true
	}
	// 3. any source
	if source == types.ANY {
		if m == modeAssignable && !e.opts.StrictAnyPropagation {
			return true
		}
		if m == modeSubtype {
			return false
		}
	}
	// 4. ERROR on either side
	if source == types.ERROR || target == types.ERROR {
		return true
	}

	// 5. Literal <-> base
	if sl, ok := in.AsLiteral(source); ok {
		if tl, ok := in.AsLiteral(target); ok {
			return literalsEqual(sl, tl)
		}
		if in.IsIntrinsic(target) {
			return sl.Base() == target
		}
	}
	if in.IsIntrinsic(source) && source != types.ANY && source != types.UNKNOWN && source != types.NEVER {
		if _, ok := in.AsLiteral(target); ok {
			return false
		}
	}

	// null/undefined under non-strict-null mode are assignable to anything
	// and anything is assignable to them (the classic pre-strict behavior).
	if !e.opts.StrictNullChecks && m == modeAssignable {
		if source == types.NULL || source == types.UNDEFINED {
			return true
		}
	}

	// 6. Union / intersection laws
	if su, ok := in.AsUnion(source); ok {
		for _, mem := range su.Members {
			if !e.check(mem, target, m, visited) {
				return false
			}
		}
		return true
	}
	if tu, ok := in.AsUnion(target); ok {
		if e.discriminantFastPath(source, tu.Members, m, visited) {
			return true
		}
		for _, mem := range tu.Members {
			if e.check(source, mem, m, visited) {
				return true
			}
		}
		return false
	}
	if si, ok := in.AsIntersection(source); ok {
		for _, mem := range si.Members {
			if e.check(mem, target, m, visited) {
				return true
			}
		}
		return false
	}
	if ti, ok := in.AsIntersection(target); ok {
		for _, mem := range ti.Members {
			if !e.check(source, mem, m, visited) {
				return false
			}
		}
		return true
	}

	// 7. TypeParameter handling
	if stp, ok := in.AsTypeParameter(source); ok {
		if e.check(source, target, m, visited) && source == target {
			return true
		}
		if stp.Constraint != 0 {
			return e.check(stp.Constraint, target, m, visited)
		}
		return target == types.ANY || target == types.UNKNOWN
	}
	if _, ok := in.AsTypeParameter(target); ok {
		return e.check(source, types.UNKNOWN, m, visited)
	}

	// 8. Conditional / Mapped / IndexedAccess: reduce if concrete, else
	// syntactic compare (both unresolved, so only identity can match — we
	// already failed identity above, so these two branches are unequal).
	if cond, ok := in.AsConditional(source); ok {
		if r, ok := e.reduceConditional(cond, visited); ok {
			return e.check(r, target, m, visited)
		}
		return false
	}
	if cond, ok := in.AsConditional(target); ok {
		if r, ok := e.reduceConditional(cond, visited); ok {
			return e.check(source, r, m, visited)
		}
		return false
	}
	if ia, ok := in.AsIndexedAccess(source); ok {
		if r, ok := e.reduceIndexedAccess(ia.Obj, ia.Index); ok {
			return e.check(r, target, m, visited)
		}
		return false
	}
	if ia, ok := in.AsIndexedAccess(target); ok {
		if r, ok := e.reduceIndexedAccess(ia.Obj, ia.Index); ok {
			return e.check(source, r, m, visited)
		}
		return false
	}
	if mp, ok := in.AsMapped(source); ok {
		if r, ok := e.reduceMapped(mp); ok {
			return e.check(r, target, m, visited)
		}
		return false
	}
	if mp, ok := in.AsMapped(target); ok {
		if r, ok := e.reduceMapped(mp); ok {
			return e.check(source, r, m, visited)
		}
		return false
	}

	// 9. TypeReference resolution
	if sr, ok := in.AsReference(source); ok {
		if tr, ok := in.AsReference(target); ok && sr.Symbol == tr.Symbol {
			return e.compareReferenceArgs(sr, tr, m, visited)
		}
		resolved, ok := e.resolver.DeclaredType(sr.Symbol)
		if !ok {
			return false
		}
		return e.check(e.instantiate(sr, resolved), target, m, visited)
	}
	if tr, ok := in.AsReference(target); ok {
		resolved, ok := e.resolver.DeclaredType(tr.Symbol)
		if !ok {
			return false
		}
		return e.check(source, e.instantiate(tr, resolved), m, visited)
	}

	// 10. Array
	if sa, ok := in.AsArray(source); ok {
		if ta, ok := in.AsArray(target); ok {
			return e.check(sa.Elem, ta.Elem, m, visited)
		}
	}

	// 11. Tuple / array mixes
	if st, ok := in.AsTuple(source); ok {
		return e.checkTupleSource(st, source, target, m, visited)
	}
	if _, ok := in.AsTuple(target); ok {
		// An array source is never assignable to a tuple target; a
		// rest-only `[...T[]]` tuple target is not special-cased either.
		return false
	}

	// 12 & 14. Object / Callable mixes
	sObj, sIsObj := in.AsObject(source)
	tObj, tIsObj := in.AsObject(target)
	sCall, sIsCall := in.AsCallable(source)
	tCall, tIsCall := in.AsCallable(target)

	if tIsCall && (len(tCall.Calls) > 0 || len(tCall.Constructs) > 0) {
		if !sIsCall {
			return false
		}
		if !e.checkSignatures(sCall.Calls, tCall.Calls, m, visited) {
			return false
		}
		if !e.checkSignatures(sCall.Constructs, tCall.Constructs, m, visited) {
			return false
		}
		return e.checkObjectProps(asProps(sObj, sCall, sIsObj), asIndexes(sObj, sCall, sIsObj), tCall.Props, tCall.StringIndex, tCall.NumberIndex, m, visited)
	}
	if tIsObj {
		var sProps []types.Property
		var sStr, sNum *types.IndexSig
		if sIsObj {
			sProps, sStr, sNum = sObj.Props, sObj.StringIndex, sObj.NumberIndex
		} else if sIsCall {
			sProps, sStr, sNum = sCall.Props, sCall.StringIndex, sCall.NumberIndex
		} else {
			return false
		}
		return e.checkObjectProps(sProps, indexPair{sStr, sNum}, tObj.Props, tObj.StringIndex, tObj.NumberIndex, m, visited)
	}

	// 15. Otherwise
	return false
}

func literalsEqual(a, b types.Literal) bool {
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

// discriminantFastPath implements the §4.R.6 "discriminant fast-path":
// when source is an object with a literal-typed property whose name is
// a discriminant across every union member, we only need to find the member
// whose discriminant literal matches, rather than structurally comparing
// against all of them.
func (e *Engine) discriminantFastPath(source types.TypeId, members []types.TypeId, m mode, visited visitedSet) bool {
	sObj, ok := e.in.AsObject(source)
	if !ok {
		return false
	}
	for _, p := range sObj.Props {
		lit, isLit := e.in.AsLiteral(p.Type)
		if !isLit {
			continue
		}
		if !isDiscriminantAcross(e.in, p.Name, members) {
			continue
		}
		for _, mem := range members {
			mObj, ok := e.in.AsObject(mem)
			if !ok {
				continue
			}
			idx := e.in.PropertyIndex(mem)
			i, ok := idx[p.Name]
			if !ok {
				continue
			}
			mLit, isMLit := e.in.AsLiteral(mObj.Props[i].Type)
			if isMLit && literalsEqual(lit, mLit) {
				return e.check(source, mem, m, visited)
			}
		}
		return false
	}
	return false
}

func isDiscriminantAcross(in *types.Interner, name string, members []types.TypeId) bool {
	for _, mem := range members {
		obj, ok := in.AsObject(mem)
		if !ok {
			return false
		}
		idx := in.PropertyIndex(mem)
		i, ok := idx[name]
		if !ok {
			return false
		}
		if _, isLit := in.AsLiteral(obj.Props[i].Type); !isLit {
			return false
		}
	}
	return len(members) > 0
}

func (e *Engine) compareReferenceArgs(sr, tr types.Reference, m mode, visited visitedSet) bool {
	if len(sr.Args) != len(tr.Args) {
		return false
	}
	// Simplification (documented in DESIGN.md): declared per-parameter
	// variance is not tracked separately from structural comparison; two
	// references to the same symbol compare type arguments invariantly via
	// mutual assignability, which is sound for the common covariant case
	// and conservative for intentionally-contravariant positions.
	for i := range sr.Args {
		if !e.check(sr.Args[i], tr.Args[i], m, visited) || !e.check(tr.Args[i], sr.Args[i], m, visited) {
			return false
		}
	}
	return true
}

func (e *Engine) instantiate(ref types.Reference, declared types.TypeId) types.TypeId {
	params := e.resolver.TypeParams(ref.Symbol)
	if len(params) == 0 || len(ref.Args) == 0 {
		return declared
	}
	subst := make(types.Subst, len(params))
	for i, p := range params {
		if i < len(ref.Args) {
			subst[p] = ref.Args[i]
		}
	}
	return e.in.Substitute(declared, subst)
}

type indexPair struct {
	str, num *types.IndexSig
}

func asProps(o types.Object, c types.Callable, isObj bool) []types.Property {
	if isObj {
		return o.Props
	}
	return c.Props
}

func asIndexes(o types.Object, c types.Callable, isObj bool) indexPair {
	if isObj {
		return indexPair{o.StringIndex, o.NumberIndex}
	}
	return indexPair{c.StringIndex, c.NumberIndex}
}
