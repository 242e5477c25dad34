package relation

import (
	"testing"

	"github.com/arborlang/tscore/internal/types"
)

// nullResolver never resolves a symbol; none of the tests below reference
// nominal types, so the relation engine never needs to call it.
type nullResolver struct{}

func (nullResolver) DeclaredType(types.SymbolId) (types.TypeId, bool) { return types.ERROR, false }
func (nullResolver) TypeParams(types.SymbolId) []types.TypeId         { return nil }

func newEngine(in *types.Interner, opts Options) *Engine {
	return New(in, nullResolver{}, opts)
}

func strictOpts() Options {
	return Options{StrictFunctionTypes: true, StrictNullChecks: true}
}

func TestReflexivity(t *testing.T) {
	in := types.New()
	e := newEngine(in, strictOpts())

	obj := in.Object(types.Object{Props: []types.Property{{Name: "a", Type: types.STRING}}})
	for _, id := range []types.TypeId{types.STRING, types.NUMBER, types.ANY, obj} {
		if !e.IsAssignable(id, id) {
			t.Errorf("IsAssignable(%s, %s) = false, want true (reflexivity)", in.String(id), in.String(id))
		}
	}
}

func TestTopAndBottom(t *testing.T) {
	in := types.New()
	e := newEngine(in, strictOpts())

	if !e.IsAssignable(types.STRING, types.ANY) {
		t.Error("everything is assignable to any")
	}
	if !e.IsAssignable(types.NEVER, types.STRING) {
		t.Error("never is assignable to everything")
	}
	if !e.IsAssignable(types.STRING, types.UNKNOWN) {
		t.Error("everything is assignable to unknown")
	}
}

func TestUnionSourceLaw(t *testing.T) {
	in := types.New()
	e := newEngine(in, strictOpts())

	u := in.Union([]types.TypeId{types.STRING, types.NUMBER})
	if !e.IsAssignable(u, u) {
		t.Fatal("union assignable to itself")
	}
	// string|number -> string: false because NUMBER doesn't reach STRING.
	if e.IsAssignable(u, types.STRING) {
		t.Error("string|number should not be assignable to string")
	}
}

func TestUnionTargetLaw(t *testing.T) {
	in := types.New()
	e := newEngine(in, strictOpts())

	u := in.Union([]types.TypeId{types.STRING, types.NUMBER})
	if !e.IsAssignable(types.STRING, u) {
		t.Error("string should be assignable to string|number")
	}
	if e.IsAssignable(types.BOOLEAN, u) {
		t.Error("boolean should not be assignable to string|number")
	}
}

func TestIntersectionLaws(t *testing.T) {
	in := types.New()
	e := newEngine(in, strictOpts())

	a := in.Object(types.Object{Props: []types.Property{{Name: "a", Type: types.STRING}}})
	b := in.Object(types.Object{Props: []types.Property{{Name: "b", Type: types.NUMBER}}})
	ab := in.Intersection([]types.TypeId{a, b})

	// a source satisfying both members is assignable to the intersection.
	both := in.Object(types.Object{Props: []types.Property{
		{Name: "a", Type: types.STRING},
		{Name: "b", Type: types.NUMBER},
	}})
	if !e.IsAssignable(both, ab) {
		t.Error("object with both props should be assignable to the intersection")
	}
	// intersection source satisfies target if any member does.
	if !e.IsAssignable(ab, a) {
		t.Error("intersection should be assignable to any one of its members")
	}
}

func TestLiteralToBaseOneWay(t *testing.T) {
	in := types.New()
	e := newEngine(in, strictOpts())

	lit := in.LiteralString("x")
	if !e.IsAssignable(lit, types.STRING) {
		t.Error(`"x" should be assignable to string`)
	}
	if e.IsAssignable(types.STRING, lit) {
		t.Error(`string should not be assignable to "x"`)
	}
}

func TestTupleToArray(t *testing.T) {
	in := types.New()
	e := newEngine(in, strictOpts())

	tup := in.Tuple([]types.TupleElem{{Type: types.NUMBER}, {Type: types.NUMBER}}, false)
	arr := in.Array(types.NUMBER)
	if !e.IsAssignable(tup, arr) {
		t.Error("[number,number] should be assignable to number[]")
	}

	mixed := in.Tuple([]types.TupleElem{{Type: types.NUMBER}, {Type: in.LiteralString("x")}}, false)
	if e.IsAssignable(mixed, arr) {
		t.Error("[number,string] should not be assignable to number[]")
	}
}

func TestArrayToTupleFails(t *testing.T) {
	in := types.New()
	e := newEngine(in, strictOpts())

	arr := in.Array(types.NUMBER)
	tup := in.Tuple([]types.TupleElem{{Type: types.NUMBER}, {Type: types.NUMBER}}, false)
	if e.IsAssignable(arr, tup) {
		t.Error("number[] should not be assignable to a fixed-length tuple")
	}
}

func TestReadonlyTupleVariance(t *testing.T) {
	in := types.New()
	e := newEngine(in, strictOpts())

	mutable := in.Tuple([]types.TupleElem{{Type: types.NUMBER}}, false)
	readonly := in.Tuple([]types.TupleElem{{Type: types.NUMBER}}, true)

	if !e.IsAssignable(mutable, readonly) {
		t.Error("[number] should be assignable to readonly [number]")
	}
	if e.IsAssignable(readonly, mutable) {
		t.Error("readonly [number] should not be assignable to [number]")
	}
}

func voidReturnSig(ret types.TypeId) types.Signature {
	return types.Signature{Return: ret}
}

func TestVoidReturnExceptionOneWay(t *testing.T) {
	in := types.New()
	e := newEngine(in, strictOpts())

	fToVoid := in.Callable(types.Callable{Calls: []types.Signature{voidReturnSig(types.VOID)}})
	fToNumber := in.Callable(types.Callable{Calls: []types.Signature{voidReturnSig(types.NUMBER)}})
	fToString := in.Callable(types.Callable{Calls: []types.Signature{voidReturnSig(types.STRING)}})

	if !e.IsAssignable(fToNumber, fToVoid) {
		t.Error("() => number should be assignable to () => void")
	}
	if e.IsAssignable(fToVoid, fToString) {
		t.Error("() => void should not be assignable to () => string")
	}
}

func paramSig(paramType types.TypeId) types.Signature {
	return types.Signature{Params: []types.Param{{Name: "x", Type: paramType}}, Return: types.VOID}
}

func TestStrictFunctionParameterContravariance(t *testing.T) {
	in := types.New()
	e := newEngine(in, strictOpts())

	animal := in.Object(types.Object{Props: []types.Property{{Name: "name", Type: types.STRING}}})
	cat := in.Object(types.Object{Props: []types.Property{
		{Name: "name", Type: types.STRING},
		{Name: "meow", Type: types.BOOLEAN},
	}})

	fAnimal := in.Callable(types.Callable{Calls: []types.Signature{paramSig(animal)}})
	fCat := in.Callable(types.Callable{Calls: []types.Signature{paramSig(cat)}})

	// a = b (b: (Cat)=>void assigned to a: (Animal)=>void) must be rejected.
	if e.IsAssignable(fCat, fAnimal) {
		t.Error("(Cat)=>void should not be assignable to (Animal)=>void under strict function types")
	}
	// b = a (a: (Animal)=>void assigned to b: (Cat)=>void) must be accepted.
	if !e.IsAssignable(fAnimal, fCat) {
		t.Error("(Animal)=>void should be assignable to (Cat)=>void under strict function types")
	}
}

func TestBivariantFunctionParametersWhenNotStrict(t *testing.T) {
	in := types.New()
	e := newEngine(in, Options{StrictFunctionTypes: false})

	animal := in.Object(types.Object{Props: []types.Property{{Name: "name", Type: types.STRING}}})
	cat := in.Object(types.Object{Props: []types.Property{
		{Name: "name", Type: types.STRING},
		{Name: "meow", Type: types.BOOLEAN},
	}})

	fAnimal := in.Callable(types.Callable{Calls: []types.Signature{paramSig(animal)}})
	fCat := in.Callable(types.Callable{Calls: []types.Signature{paramSig(cat)}})

	if !e.IsAssignable(fCat, fAnimal) {
		t.Error("bivariant mode should accept (Cat)=>void where (Animal)=>void is expected")
	}
	if !e.IsAssignable(fAnimal, fCat) {
		t.Error("bivariant mode should accept (Animal)=>void where (Cat)=>void is expected")
	}
}

func TestRecursiveTypeTerminates(t *testing.T) {
	in := types.New()
	e := newEngine(in, strictOpts())

	// Build two self-referential object shapes sharing a cyclic reference via
	// a TypeParameter standing in for "itself" isn't directly expressible
	// without the binder, so we approximate termination by asserting that
	// comparing a type against itself through a deep union doesn't hang.
	var members []types.TypeId
	cur := types.STRING
	for i := 0; i < 50; i++ {
		cur = in.Union([]types.TypeId{cur, in.LiteralNumber(float64(i))})
	}
	members = append(members, cur, cur)
	u := in.Union(members)
	if !e.IsAssignable(u, u) {
		t.Error("deeply nested union should still be reflexively assignable")
	}
}

func TestComparability(t *testing.T) {
	in := types.New()
	e := newEngine(in, strictOpts())

	if !e.IsComparable(types.STRING, types.STRING) {
		t.Error("string should be comparable to string")
	}
	if !e.IsComparable(types.STRING, types.ANY) {
		t.Error("anything should be comparable to any")
	}
	if e.IsComparable(types.STRING, types.NUMBER) {
		t.Error("string and number should not be comparable")
	}
}

func TestErrorSuppressesCascade(t *testing.T) {
	in := types.New()
	e := newEngine(in, strictOpts())

	if !e.IsAssignable(types.ERROR, types.STRING) || !e.IsAssignable(types.STRING, types.ERROR) {
		t.Error("ERROR must be assignable to and from everything")
	}
}
