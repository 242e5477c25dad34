package relation

import "github.com/arborlang/tscore/internal/types"

// IsComparable implements spec.md §4.R's third relation, backing the
// TS2367 "this comparison appears unintentional" check. Two types may ever
// compare equal when one is assignable to the other in either direction
// (covers literal-vs-literal mismatches, which correctly report
// incomparable), when either side is `any`/`unknown`, or when a union's
// members pairwise overlap with the other operand.
func (e *Engine) IsComparable(a, b types.TypeId) bool {
	if a == types.ANY || b == types.ANY || a == types.UNKNOWN || b == types.UNKNOWN {
		return true
	}
	if a == b {
		return true
	}
	if au, ok := e.in.AsUnion(a); ok {
		for _, m := range au.Members {
			if e.IsComparable(m, b) {
				return true
			}
		}
		return false
	}
	if bu, ok := e.in.AsUnion(b); ok {
		for _, m := range bu.Members {
			if e.IsComparable(a, m) {
				return true
			}
		}
		return false
	}
	if e.assignableEitherWay(a, b) {
		return true
	}
	// Two object-like or callable-like shapes are deemed comparable even
	// absent assignability either direction: TypeScript only rejects
	// clearly-disjoint primitive/literal comparisons, not structural shape
	// mismatches (documented simplification in DESIGN.md).
	if e.isShapeLike(a) && e.isShapeLike(b) {
		return true
	}
	return false
}

func (e *Engine) assignableEitherWay(a, b types.TypeId) bool {
	return e.check(a, b, modeAssignable, make(visitedSet)) || e.check(b, a, modeAssignable, make(visitedSet))
}

func (e *Engine) isShapeLike(id types.TypeId) bool {
	if _, ok := e.in.AsObject(id); ok {
		return true
	}
	if _, ok := e.in.AsCallable(id); ok {
		return true
	}
	if _, ok := e.in.AsArray(id); ok {
		return true
	}
	if _, ok := e.in.AsTuple(id); ok {
		return true
	}
	return false
}
