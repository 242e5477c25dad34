// Package infer implements the CORE's generic-instantiation engine, tag I.
// Grounded on funxy's constraint-collection style (internal/typesystem's
// Unify walks two Type trees in lockstep collecting TVar bindings into a
// Subst); this generalizes that walk from "collect one binding per type
// variable" to "collect every candidate observed for a type parameter,
// tagged by the variance of the position it appeared in," since a
// TypeScript parameter can appear in both covariant and contravariant
// positions across a single call.
package infer

import "github.com/arborlang/tscore/internal/types"

type variance uint8

const (
	covariant variance = iota
	contravariant
)

type candidate struct {
	typ types.TypeId
	v   variance
}

// Solve instantiates sig's type parameters from the supplied argument types
// and an optional contextual return type (invalid id when absent), per
// spec.md §4.I.
func Solve(in *types.Interner, sig types.Signature, argTypes []types.TypeId, contextualReturn types.TypeId) types.Subst {
	tpSet := make(map[types.TypeId]bool, len(sig.TypeParams))
	for _, tp := range sig.TypeParams {
		tpSet[tp] = true
	}
	candidates := make(map[types.TypeId][]candidate)

	c := &collector{in: in, tpSet: tpSet, candidates: candidates}
	for i, p := range sig.Params {
		if i < len(argTypes) {
			c.collect(p.Type, argTypes[i], covariant, make(map[pairKey]bool))
		}
	}
	if sig.Rest != nil {
		for i := len(sig.Params); i < len(argTypes); i++ {
			c.collect(sig.Rest.Type, argTypes[i], covariant, make(map[pairKey]bool))
		}
	}
	if contextualReturn != 0 {
		c.collect(sig.Return, contextualReturn, covariant, make(map[pairKey]bool))
	}

	subst := make(types.Subst, len(sig.TypeParams))
	for _, tp := range sig.TypeParams {
		subst[tp] = resolve(in, tp, candidates[tp])
	}
	return subst
}

func resolve(in *types.Interner, tp types.TypeId, cands []candidate) types.TypeId {
	if len(cands) == 0 {
		if tpData, ok := in.AsTypeParameter(tp); ok && tpData.Constraint != 0 {
			return tpData.Constraint
		}
		return types.UNKNOWN
	}
	hasCo, hasContra := false, false
	for _, c := range cands {
		if c.v == covariant {
			hasCo = true
		} else {
			hasContra = true
		}
	}
	ids := make([]types.TypeId, len(cands))
	for i, c := range cands {
		ids[i] = c.typ
	}
	switch {
	case hasCo && !hasContra:
		return in.Union(ids)
	case hasContra && !hasCo:
		return in.Intersection(ids)
	default:
		return in.Union(ids)
	}
}

type pairKey struct{ a, b types.TypeId }

type collector struct {
	in         *types.Interner
	tpSet      map[types.TypeId]bool
	candidates map[types.TypeId][]candidate
}

// collect walks paramType and argType in lockstep, recording a candidate
// whenever a bare type parameter from tpSet is found in paramType's
// position, per spec.md §4.I's structural-unification algorithm.
func (c *collector) collect(paramType, argType types.TypeId, v variance, visited map[pairKey]bool) {
	if paramType == 0 || argType == 0 {
		return
	}
	key := pairKey{paramType, argType}
	if visited[key] {
		return
	}
	visited[key] = true

	if c.tpSet[paramType] {
		c.candidates[paramType] = append(c.candidates[paramType], candidate{argType, v})
		return
	}

	in := c.in
	if pa, ok := in.AsArray(paramType); ok {
		if aa, ok := in.AsArray(argType); ok {
			c.collect(pa.Elem, aa.Elem, v, visited)
		}
		return
	}
	if pt, ok := in.AsTuple(paramType); ok {
		if at, ok := in.AsTuple(argType); ok {
			n := len(pt.Elements)
			if len(at.Elements) < n {
				n = len(at.Elements)
			}
			for i := 0; i < n; i++ {
				c.collect(pt.Elements[i].Type, at.Elements[i].Type, v, visited)
			}
		}
		return
	}
	if po, ok := in.AsObject(paramType); ok {
		if ao, ok := in.AsObject(argType); ok {
			aIdx := in.PropertyIndex(argType)
			for _, pp := range po.Props {
				if i, found := aIdx[pp.Name]; found {
					c.collect(pp.Type, ao.Props[i].Type, v, visited)
				}
			}
		}
		return
	}
	if pc, ok := in.AsCallable(paramType); ok {
		if ac, ok := in.AsCallable(argType); ok && len(pc.Calls) > 0 && len(ac.Calls) > 0 {
			ps, as := pc.Calls[0], ac.Calls[0]
			n := len(ps.Params)
			if len(as.Params) < n {
				n = len(as.Params)
			}
			flipped := covariant
			if v == covariant {
				flipped = contravariant
			}
			for i := 0; i < n; i++ {
				c.collect(ps.Params[i].Type, as.Params[i].Type, flipped, visited)
			}
			c.collect(ps.Return, as.Return, v, visited)
		}
		return
	}
	if pcond, ok := in.AsConditional(paramType); ok && pcond.Distributive && c.tpSet[pcond.NakedParam] {
		// A naked-parameter conditional distributes over the argument
		// itself; treat the whole argument as the candidate for the
		// distributed parameter, matching spec.md §4.I's "a conditional
		// with a naked parameter distributes" note at the top level.
		c.candidates[pcond.NakedParam] = append(c.candidates[pcond.NakedParam], candidate{argType, v})
	}
}
