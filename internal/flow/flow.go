// Package flow implements the binder-built control-flow graph spec.md §3.3
// describes: a DAG-with-loop-back-edges of FlowNodes that the narrower (see
// internal/narrow) walks backwards from a reference's use site.
//
// funxy has no CFG of its own — inference_control.go narrows `typeof` guards
// by inspecting the AST's enclosing if-statement directly, not by walking a
// flow graph. This package has no funxy file to adapt; it is grounded on the
// *shape* of funxy's AST-is-the-source-of-truth style (FlowNode.Node keeps a
// raw ast.Node handle exactly the way funxy keys its TypeMap off ast.Node)
// while building the graph structure spec.md requires.
package flow

import "github.com/arborlang/tscore/internal/ast"

// Flags tags which of the mutually exclusive node kinds a FlowNode is.
type Flags uint16

const (
	Start Flags = 1 << iota
	BranchLabel
	LoopLabel
	Assignment
	Call
	ArrayMutation
	TrueCondition
	FalseCondition
	SwitchClause
	AwaitPoint
	YieldPoint
	Unreachable
)

// Node is one vertex of the graph. Node.AST is the syntax this flow position
// is attached to (the condition expression for a *Condition node, the LHS
// for an Assignment node, and so on); it is nil for Start and pure label
// nodes that exist only to join antecedents.
type Node struct {
	Flags       Flags
	AST         ast.Node
	Antecedents []*Node

	// ClauseIndex and FallsFrom are only meaningful when Flags&SwitchClause != 0.
	ClauseIndex int
	FallsFrom   *Node

	// ClosureEntry is only meaningful when Flags&Start != 0 on a nested
	// function/arrow body's START node: the flow position at the closure's
	// creation site, consulted by the narrower for const references only.
	ClosureEntry *Node
}

func NewStart() *Node { return &Node{Flags: Start} }

// NewClosureStart creates the START node for a nested function/arrow body.
// enclosing is the flow position reached at the closure's creation site
// (where the function/arrow expression is evaluated); the narrower consults
// it only for references whose binder-resolved symbol is immutable
// (`const`), per spec.md §9's closure-capture rule — a plain START node has
// no antecedents and always yields the declared type, which is exactly the
// "mutable bindings are not preserved across a closure boundary" half of
// that rule for free.
func NewClosureStart(enclosing *Node) *Node { return &Node{Flags: Start, ClosureEntry: enclosing} }

func (n *Node) addAntecedent(a *Node) { n.Antecedents = append(n.Antecedents, a) }

// Graph owns every Node built for one file and the node->FlowNode position
// map spec.md §3.3 requires ("For every AST node whose type may be asked by
// the checker, the binder records node -> FlowNode").
type Graph struct {
	Start     *Node
	Positions map[ast.Node]*Node
}

func NewGraph() *Graph {
	start := NewStart()
	return &Graph{Start: start, Positions: make(map[ast.Node]*Node)}
}

// At records the flow position reached just after n finishes executing.
func (g *Graph) At(n ast.Node, pos *Node) { g.Positions[n] = pos }

// PositionOf returns the flow node recorded for n, or the graph start if
// none was recorded (e.g. a node the binder never visited).
func (g *Graph) PositionOf(n ast.Node) *Node {
	if p, ok := g.Positions[n]; ok {
		return p
	}
	return g.Start
}

// Label creates an unconditioned join point (BRANCH_LABEL) with the given
// antecedents, used at the end of an if/else and where the two paths of a
// logical expression rejoin; loops use LoopLabel instead.
func (g *Graph) Label(antecedents ...*Node) *Node {
	n := &Node{Flags: BranchLabel}
	for _, a := range antecedents {
		if a != nil {
			n.addAntecedent(a)
		}
	}
	return n
}

// LoopLabel creates a LOOP_LABEL node. Its back-edge antecedent is attached
// later via AddBackEdge, once the loop body has been bound, since the body's
// exit flow node does not exist yet when the label itself is created.
func (g *Graph) LoopLabel(preLoop *Node) *Node {
	n := &Node{Flags: LoopLabel}
	n.addAntecedent(preLoop)
	return n
}

func (g *Graph) AddBackEdge(label, bodyExit *Node) {
	label.addAntecedent(bodyExit)
}

func (g *Graph) Condition(ast ast.Node, antecedent *Node, truthy bool) *Node {
	f := TrueCondition
	if !truthy {
		f = FalseCondition
	}
	n := &Node{Flags: f, AST: ast}
	n.addAntecedent(antecedent)
	return n
}

func (g *Graph) Assign(target ast.Node, antecedent *Node) *Node {
	n := &Node{Flags: Assignment, AST: target}
	n.addAntecedent(antecedent)
	return n
}

func (g *Graph) CallNode(call ast.Node, antecedent *Node) *Node {
	n := &Node{Flags: Call, AST: call}
	n.addAntecedent(antecedent)
	return n
}

func (g *Graph) ArrayMutate(target ast.Node, antecedent *Node) *Node {
	n := &Node{Flags: ArrayMutation, AST: target}
	n.addAntecedent(antecedent)
	return n
}

func (g *Graph) SwitchClauseNode(clause ast.Node, antecedent, fallsFrom *Node, idx int) *Node {
	n := &Node{Flags: SwitchClause, AST: clause, ClauseIndex: idx, FallsFrom: fallsFrom}
	n.addAntecedent(antecedent)
	return n
}

func (g *Graph) Suspend(point ast.Node, antecedent *Node, yield bool) *Node {
	f := AwaitPoint
	if yield {
		f = YieldPoint
	}
	n := &Node{Flags: f, AST: point}
	n.addAntecedent(antecedent)
	return n
}

// Dead returns the canonical unreachable node: no antecedents, per spec.md's
// invariant that an UNREACHABLE node marks dead code with nothing behind it.
func (g *Graph) Dead() *Node { return &Node{Flags: Unreachable} }
