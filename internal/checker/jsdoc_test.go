package checker_test

import (
	"testing"

	"github.com/arborlang/tscore/internal/binder"
	"github.com/arborlang/tscore/internal/checker"
	"github.com/arborlang/tscore/internal/config"
	"github.com/arborlang/tscore/internal/lexer"
	"github.com/arborlang/tscore/internal/parser"
	"github.com/arborlang/tscore/internal/types"
)

// checkJSSource runs the full pipeline with CheckJS enabled and returns
// the checker plus the interner, for inspecting declared types afterward.
func checkJSSource(t *testing.T, src string) (*checker.Checker, *binder.Result, *types.Interner) {
	t.Helper()
	l := lexer.New(src)
	p := parser.New(l, "test.js")
	prog := p.ParseProgram()
	if len(p.Errors) > 0 {
		t.Fatalf("parse errors: %v", p.Errors)
	}
	bound := binder.Bind(prog)
	in := types.New()
	opts := config.Default()
	opts.CheckJS = true
	c := checker.New(in, bound, opts)
	c.Check(prog)
	return c, bound, in
}

// spec.md §4.C.2: "@param {T} name, @returns {T} — provide function
// parameter and return types."
func TestJSDocParamAndReturnsIngestion(t *testing.T) {
	src := `
/**
 * @param {string} name
 * @param {number} age
 * @returns {boolean}
 */
function f(name, age) {
	return name.length > age;
}
`
	c, bound, in := checkJSSource(t, src)
	sid, ok := bound.Globals["f"]
	if !ok {
		t.Fatal("no global symbol for f")
	}
	ty, ok := c.DeclaredType(types.SymbolId(sid))
	if !ok {
		t.Fatal("no declared type for f")
	}
	callable, ok := in.AsCallable(ty)
	if !ok || len(callable.Calls) != 1 {
		t.Fatalf("want a single-signature callable, got %q", in.String(ty))
	}
	sig := callable.Calls[0]
	if len(sig.Params) != 2 {
		t.Fatalf("want 2 params, got %d", len(sig.Params))
	}
	if sig.Params[0].Type != types.STRING {
		t.Errorf("param 0 (name): want string, got %q", in.String(sig.Params[0].Type))
	}
	if sig.Params[1].Type != types.NUMBER {
		t.Errorf("param 1 (age): want number, got %q", in.String(sig.Params[1].Type))
	}
	if sig.Return != types.BOOLEAN {
		t.Errorf("return: want boolean, got %q", in.String(sig.Return))
	}
}

// spec.md §4.C.2: "@type {T} — provides a type for the annotated
// declaration."
func TestJSDocTypeIngestion(t *testing.T) {
	src := `
/** @type {string} */
let greeting;
`
	c, bound, in := checkJSSource(t, src)
	sid, ok := bound.Globals["greeting"]
	if !ok {
		t.Fatal("no global symbol for greeting")
	}
	ty, ok := c.DeclaredType(types.SymbolId(sid))
	if !ok {
		t.Fatal("no declared type for greeting")
	}
	if ty != types.STRING {
		t.Errorf("want string, got %q", in.String(ty))
	}
}

// spec.md §4.C.2: "@typedef-defined names including property lists."
func TestJSDocTypedefIngestion(t *testing.T) {
	src := `
/**
 * @typedef {{x: number, y: number}} Point
 */

/** @type {Point} */
let origin;
`
	c, bound, in := checkJSSource(t, src)
	sid, ok := bound.Globals["origin"]
	if !ok {
		t.Fatal("no global symbol for origin")
	}
	ty, ok := c.DeclaredType(types.SymbolId(sid))
	if !ok {
		t.Fatal("no declared type for origin")
	}
	obj, ok := in.AsObject(ty)
	if !ok || len(obj.Props) != 2 {
		t.Fatalf("want a 2-property object, got %q", in.String(ty))
	}
}

// spec.md §4.C.2: "@template T — declares generic parameters."
func TestJSDocTemplateIngestion(t *testing.T) {
	src := `
/**
 * @template T
 * @param {T} value
 * @returns {T}
 */
function identity(value) {
	return value;
}
`
	c, bound, in := checkJSSource(t, src)
	sid, ok := bound.Globals["identity"]
	if !ok {
		t.Fatal("no global symbol for identity")
	}
	ty, ok := c.DeclaredType(types.SymbolId(sid))
	if !ok {
		t.Fatal("no declared type for identity")
	}
	callable, ok := in.AsCallable(ty)
	if !ok || len(callable.Calls) != 1 {
		t.Fatalf("want a single-signature callable, got %q", in.String(ty))
	}
	sig := callable.Calls[0]
	if len(sig.TypeParams) != 1 {
		t.Fatalf("want 1 type param, got %d", len(sig.TypeParams))
	}
	if len(sig.Params) != 1 || sig.Params[0].Type != sig.Return {
		t.Errorf("want param and return to share the same type parameter, got param=%q return=%q",
			in.String(sig.Params[0].Type), in.String(sig.Return))
	}
}

// Without check-JS, JSDoc tags are never consulted: an untyped JS
// parameter keeps its implicit any type.
func TestJSDocIgnoredWithoutCheckJS(t *testing.T) {
	src := `
/** @param {string} name */
function f(name) {}
`
	l := lexer.New(src)
	p := parser.New(l, "test.js")
	prog := p.ParseProgram()
	bound := binder.Bind(prog)
	in := types.New()
	c := checker.New(in, bound, config.Default())
	c.Check(prog)

	sid := bound.Globals["f"]
	ty, _ := c.DeclaredType(types.SymbolId(sid))
	callable, ok := in.AsCallable(ty)
	if !ok || len(callable.Calls) != 1 {
		t.Fatalf("want a single-signature callable, got %q", in.String(ty))
	}
	if callable.Calls[0].Params[0].Type != types.ANY {
		t.Errorf("want implicit any without check-JS, got %q", in.String(callable.Calls[0].Params[0].Type))
	}
}
