package checker_test

import (
	"testing"

	"github.com/arborlang/tscore/internal/ast"
	"github.com/arborlang/tscore/internal/binder"
	"github.com/arborlang/tscore/internal/checker"
	"github.com/arborlang/tscore/internal/config"
	"github.com/arborlang/tscore/internal/lexer"
	"github.com/arborlang/tscore/internal/parser"
	"github.com/arborlang/tscore/internal/types"
)

// closureArrowRef parses src (expected to have the shape
// `function f(input) { <decl> x; if (typeof x === "string") {
// const g = () => x; } }`), runs the checker, and returns the type recorded
// for the bare `x` reference inside the arrow body.
func closureArrowRef(t *testing.T, src string) (types.TypeId, *types.Interner) {
	t.Helper()
	l := lexer.New(src)
	p := parser.New(l, "test.ts")
	prog := p.ParseProgram()
	if len(p.Errors) > 0 {
		t.Fatalf("parse errors: %v", p.Errors)
	}
	bound := binder.Bind(prog)
	in := types.New()
	c := checker.New(in, bound, config.Default())
	c.Check(prog)

	fn := prog.Statements[0].(*ast.FunctionDecl)
	ifStmt := fn.Body.Body[1].(*ast.IfStatement)
	gDecl := ifStmt.Consequence.Body[0].(*ast.VarDecl)
	arrow := gDecl.Init.(*ast.ArrowFunction)
	ref := arrow.Body.(ast.Expression)

	ty, ok := c.TypeOf(ref)
	if !ok {
		t.Fatalf("no type recorded for closure reference")
	}
	return ty, in
}

// spec.md §9: "const ... retain narrowings obtained in the enclosing scope
// up to the closure's creation point."
func TestClosureConstReferencePreservesNarrowing(t *testing.T) {
	src := `
function f(input: string | number) {
	const x: string | number = input;
	if (typeof x === "string") {
		const g = () => x;
	}
}
`
	ty, _ := closureArrowRef(t, src)
	if ty != types.STRING {
		t.Fatalf("const x captured in closure: want narrowed %q, got %q", "string", ty)
	}
}

// spec.md §9: "a narrowing of a let/var is not preserved (the outer
// assignment model is not tracked across the call boundary)."
func TestClosureLetReferenceDoesNotPreserveNarrowing(t *testing.T) {
	src := `
function f(input: string | number) {
	let x: string | number = input;
	if (typeof x === "string") {
		const g = () => x;
	}
}
`
	ty, in := closureArrowRef(t, src)
	want := in.Union([]types.TypeId{types.STRING, types.NUMBER})
	if ty != want {
		t.Fatalf("let x captured in closure: want declared type %q, got %q", in.String(want), in.String(ty))
	}
}
