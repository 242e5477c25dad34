package relation

import "github.com/arborlang/tscore/internal/types"

// checkSignatures implements spec.md §4.R.3 at the overload-set level: every
// target signature must be satisfied by at least one source signature
// (construct and call sets never mix, so callers pass matching lists).
func (e *Engine) checkSignatures(sSigs, tSigs []types.Signature, m mode, visited visitedSet) bool {
	for _, t := range tSigs {
		ok := false
		for _, s := range sSigs {
			if e.signatureSatisfies(s, t, m, visited) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

func minArity(s types.Signature) int {
	n := 0
	for _, p := range s.Params {
		if p.Optional {
			break
		}
		n++
	}
	return n
}

// signatureSatisfies reports whether source signature s may stand in for
// target signature t, per spec.md §4.R.3.
func (e *Engine) signatureSatisfies(s, t types.Signature, m mode, visited visitedSet) bool {
	if minArity(s) > minArity(t) {
		return false
	}

	s, t = e.instantiateGenerics(s), e.instantiateGenerics(t)

	paramAt := func(sig types.Signature, i int) (types.TypeId, bool) {
		if i < len(sig.Params) {
			return sig.Params[i].Type, true
		}
		if sig.Rest != nil {
			return sig.Rest.Type, true
		}
		return 0, false
	}

	maxLen := len(s.Params)
	if len(t.Params) > maxLen {
		maxLen = len(t.Params)
	}
	for i := 0; i < maxLen; i++ {
		sp, sok := paramAt(s, i)
		tp, tok := paramAt(t, i)
		if !sok || !tok {
			continue
		}
		if m == modeSubtype || e.opts.StrictFunctionTypes {
			if !e.check(tp, sp, m, visited) {
				return false
			}
		} else {
			if !e.check(tp, sp, m, visited) && !e.check(sp, tp, m, visited) {
				return false
			}
		}
	}

	if t.Return == types.VOID {
		return true
	}

	if s.Predicate != nil || t.Predicate != nil {
		return e.predicatesCompatible(s.Predicate, t.Predicate)
	}

	return e.check(s.Return, t.Return, m, visited)
}

func (e *Engine) predicatesCompatible(s, t *types.Predicate) bool {
	if t == nil {
		// target just wants `boolean`; any predicate return is covariant
		// with a plain boolean per §4.R.3.
		return s != nil
	}
	if s == nil {
		return false
	}
	if s.Asserts != t.Asserts {
		return false
	}
	if t.Target == 0 {
		return true
	}
	if s.Target == 0 {
		return false
	}
	return e.IsAssignable(s.Target, t.Target)
}

// instantiateGenerics substitutes every declared type parameter of sig with
// UNKNOWN, the "fresh marker type that satisfies constraints" spec.md §4.R.3
// calls for when comparing generic signatures.
func (e *Engine) instantiateGenerics(sig types.Signature) types.Signature {
	if len(sig.TypeParams) == 0 {
		return sig
	}
	subst := make(types.Subst, len(sig.TypeParams))
	for _, tp := range sig.TypeParams {
		subst[tp] = types.UNKNOWN
	}
	out := sig
	out.Params = make([]types.Param, len(sig.Params))
	for i, p := range sig.Params {
		p.Type = e.in.Substitute(p.Type, subst)
		out.Params[i] = p
	}
	if sig.Rest != nil {
		r := *sig.Rest
		r.Type = e.in.Substitute(r.Type, subst)
		out.Rest = &r
	}
	out.Return = e.in.Substitute(sig.Return, subst)
	out.TypeParams = nil
	return out
}
