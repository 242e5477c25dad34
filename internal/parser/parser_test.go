package parser_test

import (
	"testing"

	"github.com/arborlang/tscore/internal/ast"
	"github.com/arborlang/tscore/internal/lexer"
	"github.com/arborlang/tscore/internal/parser"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	l := lexer.New(src)
	p := parser.New(l, "test.ts")
	prog := p.ParseProgram()
	if len(p.Errors) > 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, p.Errors)
	}
	return prog
}

func TestParseVarDecl(t *testing.T) {
	prog := parse(t, `let x: number = 1;`)
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}
	decl, ok := prog.Statements[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("expected *ast.VarDecl, got %T", prog.Statements[0])
	}
	if decl.Name.Value != "x" || decl.Const {
		t.Errorf("unexpected decl: name=%q const=%v", decl.Name.Value, decl.Const)
	}
	if _, ok := decl.Annot.(*ast.KeywordType); !ok {
		t.Errorf("expected a keyword type annotation, got %T", decl.Annot)
	}
}

func TestParseFunctionWithUnionParam(t *testing.T) {
	prog := parse(t, `
function f(x: string | number): number {
  return 1;
}
`)
	fn, ok := prog.Statements[0].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("expected *ast.FunctionDecl, got %T", prog.Statements[0])
	}
	if len(fn.Params) != 1 {
		t.Fatalf("expected 1 param, got %d", len(fn.Params))
	}
	if _, ok := fn.Params[0].Annot.(*ast.UnionType); !ok {
		t.Errorf("expected a union type annotation, got %T", fn.Params[0].Annot)
	}
}

func TestParseIfElse(t *testing.T) {
	prog := parse(t, `
if (x) {
  y;
} else {
  z;
}
`)
	ifs, ok := prog.Statements[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("expected *ast.IfStatement, got %T", prog.Statements[0])
	}
	if ifs.Alternative == nil {
		t.Fatalf("expected an else branch")
	}
}

func TestParseInterfaceDecl(t *testing.T) {
	prog := parse(t, `interface Point { x: number; y: number; }`)
	iface, ok := prog.Statements[0].(*ast.InterfaceDecl)
	if !ok {
		t.Fatalf("expected *ast.InterfaceDecl, got %T", prog.Statements[0])
	}
	if iface.Name.Value != "Point" {
		t.Errorf("unexpected interface name %q", iface.Name.Value)
	}
}

func TestParseNestedGenericTypeArgs(t *testing.T) {
	prog := parse(t, `let x: Array<Array<number>>;`)
	decl, ok := prog.Statements[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("expected *ast.VarDecl, got %T", prog.Statements[0])
	}
	outer, ok := decl.Annot.(*ast.NamedType)
	if !ok {
		t.Fatalf("expected *ast.NamedType, got %T", decl.Annot)
	}
	if outer.Name.Value != "Array" || len(outer.Args) != 1 {
		t.Fatalf("unexpected outer named type: %+v", outer)
	}
	inner, ok := outer.Args[0].(*ast.NamedType)
	if !ok || inner.Name.Value != "Array" || len(inner.Args) != 1 {
		t.Fatalf("expected nested Array<number>, got %+v", outer.Args[0])
	}
}

func TestParseBitwiseAndShiftExpressions(t *testing.T) {
	prog := parse(t, `let x = (1 << 2) | (a & b) ^ (c >> 1);`)
	decl, ok := prog.Statements[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("expected *ast.VarDecl, got %T", prog.Statements[0])
	}
	if _, ok := decl.Init.(*ast.InfixExpression); !ok {
		t.Fatalf("expected an infix expression initializer, got %T", decl.Init)
	}
}

func TestParseEnumDecl(t *testing.T) {
	prog := parse(t, `enum Color { Red, Green, Blue }`)
	en, ok := prog.Statements[0].(*ast.EnumDecl)
	if !ok {
		t.Fatalf("expected *ast.EnumDecl, got %T", prog.Statements[0])
	}
	if len(en.Members) != 3 {
		t.Fatalf("expected 3 members, got %d", len(en.Members))
	}
}
