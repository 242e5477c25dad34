package checker_test

import (
	"testing"

	"github.com/arborlang/tscore/internal/binder"
	"github.com/arborlang/tscore/internal/checker"
	"github.com/arborlang/tscore/internal/config"
	"github.com/arborlang/tscore/internal/diagnostics"
	"github.com/arborlang/tscore/internal/lexer"
	"github.com/arborlang/tscore/internal/parser"
	"github.com/arborlang/tscore/internal/types"
)

// run parses, binds, and checks src with default strict options, returning
// the sorted diagnostics. Parser errors fail the test immediately: they
// indicate the surface grammar, not the checker, can't express the
// scenario.
func run(t *testing.T, src string) []diagnostics.Diagnostic {
	t.Helper()
	l := lexer.New(src)
	p := parser.New(l, "test.ts")
	prog := p.ParseProgram()
	if len(p.Errors) > 0 {
		t.Fatalf("parse errors: %v", p.Errors)
	}
	bound := binder.Bind(prog)
	c := checker.New(types.New(), bound, config.Default())
	return c.Check(prog).Sorted()
}

func codesOf(diags []diagnostics.Diagnostic) []diagnostics.Code {
	var out []diagnostics.Code
	for _, d := range diags {
		out = append(out, d.Code)
	}
	return out
}

// Scenario 1: typeof discriminant narrows both branches cleanly.
func TestTypeofDiscriminant(t *testing.T) {
	src := `
function f(x: string | number): number {
  if (typeof x === "string") {
    return x.length;
  }
  return x.toFixed(2);
}
`
	diags := run(t, src)
	if len(diags) != 0 {
		t.Errorf("expected no diagnostics, got %v", diags)
	}
}

// Scenario 4: tuple/array literal argument checking.
func TestArrayArgumentAssignability(t *testing.T) {
	src := `
function acc(xs: number[]): void {}
acc([1, 2, 3]);
`
	diags := run(t, src)
	if len(diags) != 0 {
		t.Errorf("expected no diagnostics for a well-typed array argument, got %v", diags)
	}
}

func TestArrayArgumentMismatch(t *testing.T) {
	src := `
function acc(xs: number[]): void {}
acc([1, "x"]);
`
	diags := run(t, src)
	if len(diags) == 0 {
		t.Fatalf("expected an argument-mismatch diagnostic, got none")
	}
	found := false
	for _, c := range codesOf(diags) {
		if c == diagnostics.ArgumentMismatch {
			found = true
		}
	}
	if !found {
		t.Errorf("expected code %d among %v", diagnostics.ArgumentMismatch, codesOf(diags))
	}
}

// Scenario 5: the void-return exception accepts a function returning a
// concrete type where void is expected.
func TestVoidReturnException(t *testing.T) {
	src := `
const f: () => void = () => 42;
`
	diags := run(t, src)
	if len(diags) != 0 {
		t.Errorf("expected the void-return exception to suppress any diagnostic, got %v", diags)
	}
}

func TestAssignmentMismatchReported(t *testing.T) {
	src := `
let x: string = 42;
`
	diags := run(t, src)
	if len(diags) != 1 || diags[0].Code != diagnostics.AssignmentMismatch {
		t.Fatalf("expected a single assignment-mismatch diagnostic, got %v", diags)
	}
}

func TestImplicitAnyVariableFlagged(t *testing.T) {
	src := `
let x;
`
	diags := run(t, src)
	if len(diags) != 1 || diags[0].Code != diagnostics.ImplicitAnyVariable {
		t.Fatalf("expected an implicit-any diagnostic, got %v", diags)
	}
}

// Scenario 2: discriminated union narrows each branch's property access.
func TestDiscriminatedUnion(t *testing.T) {
	src := `
type A = {kind: "a"; a: number} | {kind: "b"; b: string};
function g(x: A): number | string {
  if (x.kind === "a") {
    return x.a;
  }
  return x.b;
}
`
	diags := run(t, src)
	if len(diags) != 0 {
		t.Errorf("expected no diagnostics for a discriminated-union access, got %v", diags)
	}
}

func TestPropertyMissingReported(t *testing.T) {
	src := `
interface Point { x: number; y: number; }
function f(p: Point): number {
  return p.z;
}
`
	diags := run(t, src)
	found := false
	for _, c := range codesOf(diags) {
		if c == diagnostics.PropertyMissing {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a property-missing diagnostic, got %v", diags)
	}
}

func TestUnresolvedReferenceReported(t *testing.T) {
	src := `
let x: number = y;
`
	diags := run(t, src)
	found := false
	for _, c := range codesOf(diags) {
		if c == diagnostics.UnresolvedReference {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an unresolved-reference diagnostic, got %v", diags)
	}
}
