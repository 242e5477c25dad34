// Package narrow implements the CORE's flow-sensitive narrower, tag N.
// funxy's only precedent is inference_control.go's inferIfExpression, which
// narrows a `typeof x === "..."` guard by inspecting the enclosing
// if-statement's AST directly and subtracting the matched union member in
// the else branch via Unify-as-compatibility-test — funxy has no control-
// flow graph at all. This package keeps that same "narrow by branch
// polarity, subtract matched members in the negative branch" idea but
// generalizes it to walk a real flow.Graph backwards from an arbitrary
// reference use, per spec.md §4.N, since real code narrows across
// statement boundaries funxy's single-if-expression check never needed to.
package narrow

import (
	"github.com/arborlang/tscore/internal/ast"
	"github.com/arborlang/tscore/internal/facts"
	"github.com/arborlang/tscore/internal/flow"
	"github.com/arborlang/tscore/internal/relation"
	"github.com/arborlang/tscore/internal/symbols"
	"github.com/arborlang/tscore/internal/types"
)

// AssignmentTypes lets the checker record, for each ASSIGNMENT flow node it
// produced while walking a statement, the type the assignment actually
// provides (the RHS type for `=`, the updated read type for `++`/`--` and
// compound `+=`). The checker populates this top-down as it
// visits each statement, so by the time a later expression asks to narrow
// through that node the entry already exists — the ordering guarantee
// spec.md §5 requires ("children precede parent", statements precede later
// statements).
type AssignmentTypes map[*flow.Node]types.TypeId

// CallAssertions records, for a CALL flow node whose callee carried an
// `asserts x is T` signature, the narrowing it established on the forward
// path.
type CallAssertions map[*flow.Node]types.TypeId

type Narrower struct {
	In        *types.Interner
	Rel       *relation.Engine
	Refs      map[*ast.Identifier]symbols.Id
	Table     *symbols.Table
	Assigns   AssignmentTypes
	Asserts   CallAssertions
	MaxLoopIterations int

	// InstanceTypeOf and PredicateOfCall are supplied by the checker, which
	// owns symbol resolution; narrow only consumes the results.
	InstanceTypeOf InstanceTypeFn
	PredicateOfCall PredicateOfCallFn
}

func New(in *types.Interner, rel *relation.Engine, refs map[*ast.Identifier]symbols.Id, table *symbols.Table) *Narrower {
	return &Narrower{
		In: in, Rel: rel, Refs: refs, Table: table,
		Assigns: make(AssignmentTypes), Asserts: make(CallAssertions),
		MaxLoopIterations: 4,
	}
}

// Narrow implements spec.md §4.N's `narrow(reference, flow_node) -> TypeId`.
func (nw *Narrower) Narrow(ref ast.Expression, at *flow.Node, declared types.TypeId) types.TypeId {
	memo := make(map[*flow.Node]types.TypeId)
	return nw.walk(ref, at, declared, memo, make(map[*flow.Node]bool), 0)
}

func (nw *Narrower) walk(ref ast.Expression, node *flow.Node, declared types.TypeId, memo map[*flow.Node]types.TypeId, inProgress map[*flow.Node]bool, depth int) types.TypeId {
	if node == nil {
		return declared
	}
	if node.Flags&flow.Start != 0 {
		// Closure-capture rule (spec.md §9): a const reference retains the
		// narrowing it had at the closure's creation point; a let/var
		// reference does not, which is exactly what returning the plain
		// declared type here (the ClosureEntry==nil / non-const case) gives
		// for free, since this node has no other antecedents.
		if node.ClosureEntry != nil && facts.IsConstReference(ref, nw.Refs, nw.Table) {
			return nw.walk(ref, node.ClosureEntry, declared, memo, inProgress, depth+1)
		}
		return declared
	}
	if node.Flags&flow.Unreachable != 0 {
		return types.NEVER
	}
	if t, ok := memo[node]; ok {
		return t
	}
	if inProgress[node] {
		return declared
	}
	inProgress[node] = true
	defer delete(inProgress, node)

	var result types.TypeId
	switch {
	case node.Flags&flow.LoopLabel != 0:
		result = nw.fixpointLoop(ref, node, declared, memo, inProgress, depth)

	case node.Flags&flow.Assignment != 0:
		target, _ := node.AST.(ast.Expression)
		if target != nil && facts.IsMatchingReference(ref, target, nw.Refs) {
			if t, ok := nw.Assigns[node]; ok {
				result = t
				break
			}
		}
		result = nw.singleAntecedent(ref, node, declared, memo, inProgress, depth)

	case node.Flags&(flow.TrueCondition|flow.FalseCondition) != 0:
		base := nw.singleAntecedent(ref, node, declared, memo, inProgress, depth)
		result = nw.applyCondition(ref, node, base)

	case node.Flags&flow.Call != 0:
		if t, ok := nw.Asserts[node]; ok {
			if call, ok := node.AST.(*ast.CallExpression); ok && len(call.Arguments) > 0 && facts.IsMatchingReference(ref, call.Arguments[0], nw.Refs) {
				result = t
				break
			}
		}
		result = nw.singleAntecedent(ref, node, declared, memo, inProgress, depth)

	case node.Flags&flow.ArrayMutation != 0:
		target, _ := node.AST.(ast.Expression)
		base := nw.singleAntecedent(ref, node, declared, memo, inProgress, depth)
		if target != nil && facts.IsMatchingReference(ref, target, nw.Refs) {
			result = nw.widenEvolvingArray(base)
			break
		}
		result = base

	case node.Flags&(flow.BranchLabel|flow.SwitchClause) != 0:
		result = nw.unionAntecedents(ref, node, declared, memo, inProgress, depth)

	default:
		result = nw.singleAntecedent(ref, node, declared, memo, inProgress, depth)
	}

	memo[node] = result
	return result
}

func (nw *Narrower) singleAntecedent(ref ast.Expression, node *flow.Node, declared types.TypeId, memo map[*flow.Node]types.TypeId, inProgress map[*flow.Node]bool, depth int) types.TypeId {
	if len(node.Antecedents) == 0 {
		return declared
	}
	return nw.walk(ref, node.Antecedents[0], declared, memo, inProgress, depth+1)
}

func (nw *Narrower) unionAntecedents(ref ast.Expression, node *flow.Node, declared types.TypeId, memo map[*flow.Node]types.TypeId, inProgress map[*flow.Node]bool, depth int) types.TypeId {
	if len(node.Antecedents) == 0 {
		return declared
	}
	var parts []types.TypeId
	for _, a := range node.Antecedents {
		parts = append(parts, nw.walk(ref, a, declared, memo, inProgress, depth+1))
	}
	return nw.In.Union(parts)
}

// fixpointLoop implements spec.md's "start with the union of antecedent
// narrowings, substitute into the loop body's ASSIGNMENT rewrites, repeat to
// a fixed point (bounded by type-set cardinality; widen to declared type on
// non-termination)".
func (nw *Narrower) fixpointLoop(ref ast.Expression, node *flow.Node, declared types.TypeId, memo map[*flow.Node]types.TypeId, inProgress map[*flow.Node]bool, depth int) types.TypeId {
	prev := declared
	for i := 0; i < nw.MaxLoopIterations; i++ {
		localMemo := make(map[*flow.Node]types.TypeId, len(memo))
		for k, v := range memo {
			localMemo[k] = v
		}
		localMemo[node] = prev
		cur := nw.unionAntecedents(ref, node, declared, localMemo, inProgress, depth)
		if cur == prev {
			return cur
		}
		prev = cur
	}
	return declared
}

func (nw *Narrower) widenEvolvingArray(base types.TypeId) types.TypeId {
	if t, ok := nw.In.AsTuple(base); ok {
		var elems []types.TypeId
		for _, e := range t.Elements {
			elems = append(elems, e.Type)
		}
		return nw.In.Array(nw.In.Union(elems))
	}
	return base
}
