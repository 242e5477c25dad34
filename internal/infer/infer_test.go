package infer

import (
	"testing"

	"github.com/arborlang/tscore/internal/types"
)

func TestSolveSimpleCovariant(t *testing.T) {
	in := types.New()
	tp := in.TypeParameter("T", 0, 0)
	sig := types.Signature{
		TypeParams: []types.TypeId{tp},
		Params:     []types.Param{{Name: "x", Type: tp}},
		Return:     tp,
	}

	subst := Solve(in, sig, []types.TypeId{types.STRING}, 0)
	if subst[tp] != types.STRING {
		t.Fatalf("T should solve to string, got %s", in.String(subst[tp]))
	}
}

func TestSolveArrayElement(t *testing.T) {
	in := types.New()
	tp := in.TypeParameter("T", 0, 0)
	arrParam := in.Array(tp)
	sig := types.Signature{
		TypeParams: []types.TypeId{tp},
		Params:     []types.Param{{Name: "xs", Type: arrParam}},
		Return:     tp,
	}

	argArr := in.Array(types.NUMBER)
	subst := Solve(in, sig, []types.TypeId{argArr}, 0)
	if subst[tp] != types.NUMBER {
		t.Fatalf("T should solve to number from number[], got %s", in.String(subst[tp]))
	}
}

func TestSolveNoCandidateFallsBackToConstraintOrUnknown(t *testing.T) {
	in := types.New()
	tpConstrained := in.TypeParameter("T", types.STRING, 0)
	tpBare := in.TypeParameter("U", 0, 0)
	sig := types.Signature{
		TypeParams: []types.TypeId{tpConstrained, tpBare},
		Params:     nil,
		Return:     types.VOID,
	}

	subst := Solve(in, sig, nil, 0)
	if subst[tpConstrained] != types.STRING {
		t.Errorf("unconstrained-by-args T should fall back to its constraint, got %s", in.String(subst[tpConstrained]))
	}
	if subst[tpBare] != types.UNKNOWN {
		t.Errorf("U with no constraint and no candidate should fall back to unknown, got %s", in.String(subst[tpBare]))
	}
}
