package checker

import (
	"testing"

	"github.com/arborlang/tscore/internal/ast"
	"github.com/arborlang/tscore/internal/lexer"
	"github.com/arborlang/tscore/internal/parser"
)

func evalExprSrc(t *testing.T, src string) (float64, bool) {
	t.Helper()
	l := lexer.New(src + ";")
	p := parser.New(l, "test.ts")
	prog := p.ParseProgram()
	if len(p.Errors) > 0 {
		t.Fatalf("parse errors for %q: %v", src, p.Errors)
	}
	stmt := prog.Statements[0].(*ast.ExpressionStatement)
	return evalEnumConstant(stmt.Expr)
}

func TestEvalEnumConstantArithmetic(t *testing.T) {
	cases := map[string]float64{
		"1 + 2":       3,
		"2 * (3 + 4)": 14,
		"-5":          -5,
		"1 << 3":      8,
		"10 % 3":      1,
		"5 ^ 1":       4,
		"~0":          -1,
		"2 ** 5":      32,
	}
	for src, want := range cases {
		got, ok := evalExprSrc(t, src)
		if !ok {
			t.Errorf("%q: expected a constant evaluation", src)
			continue
		}
		if got != want {
			t.Errorf("%q = %v, want %v", src, got, want)
		}
	}
}

func TestEvalEnumConstantNonConstant(t *testing.T) {
	if _, ok := evalExprSrc(t, "1 + x"); ok {
		t.Error("expected evaluation to fail on a non-constant operand")
	}
}
