package relation

import "github.com/arborlang/tscore/internal/types"

// checkTupleSource implements spec.md §4.R.1's tuple rules: tuple-to-tuple
// elementwise comparison, tuple-to-array widening, and the readonly
// direction rule (`[A,B]` -> `readonly [A,B]` ok; the reverse fails).
func (e *Engine) checkTupleSource(st types.Tuple, source, target types.TypeId, m mode, visited visitedSet) bool {
	in := e.in

	if tt, ok := in.AsTuple(target); ok {
		if st.Readonly && !tt.Readonly {
			return false
		}
		if tupleApparentLen(st) != tupleApparentLen(tt) {
			return false
		}
		for i := range st.Elements {
			se, te := st.Elements[i], tt.Elements[i]
			if se.Optional && !te.Optional && !se.Rest {
				return false
			}
			if !e.check(se.Type, te.Type, m, visited) {
				return false
			}
		}
		return true
	}

	if ta, ok := in.AsArray(target); ok {
		for _, el := range st.Elements {
			if !e.check(el.Type, ta.Elem, m, visited) {
				return false
			}
		}
		return true
	}

	return false
}

func tupleApparentLen(t types.Tuple) int { return len(t.Elements) }
