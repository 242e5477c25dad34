package types

import "testing"

func TestUnionOrderIndependence(t *testing.T) {
	in := New()
	a := in.LiteralString("a")
	b := in.LiteralString("b")

	ab := in.Union([]TypeId{a, b})
	ba := in.Union([]TypeId{b, a})

	if ab != ba {
		t.Fatalf("union not order-independent: A|B=%d B|A=%d", ab, ba)
	}
}

func TestUnionFlattenDedupeAbsorb(t *testing.T) {
	in := New()
	a := in.LiteralString("a")

	nested := in.Union([]TypeId{a, a, NEVER})
	if nested != a {
		t.Fatalf("expected single member after dedupe/never-absorb, got %d (string=%s)", nested, in.String(nested))
	}

	withAny := in.Union([]TypeId{a, ANY})
	if withAny != ANY {
		t.Fatalf("ANY must absorb the union, got %s", in.String(withAny))
	}

	b := in.LiteralString("b")
	ab := in.Union([]TypeId{a, b})
	if flat := in.Union([]TypeId{ab, a, NEVER}); flat != ab {
		t.Fatalf("nested union must flatten into its members, got %s", in.String(flat))
	}
}

func TestUnionLiteralSubElimination(t *testing.T) {
	in := New()
	lit := in.LiteralString("a")
	u := in.Union([]TypeId{lit, STRING})
	if u != STRING {
		t.Fatalf("literal subtype of a present base should be elided, got %s", in.String(u))
	}
}

func TestIntersectionNeverAbsorbs(t *testing.T) {
	in := New()
	obj := in.Object(Object{Props: []Property{{Name: "a", Type: STRING}}})
	i := in.Intersection([]TypeId{obj, NEVER})
	if i != NEVER {
		t.Fatalf("NEVER must absorb the intersection, got %s", in.String(i))
	}
}

func TestTupleIdentityPreservedOverArray(t *testing.T) {
	in := New()
	tup := in.Tuple([]TupleElem{{Type: NUMBER}, {Type: NUMBER}}, false)
	arr := in.Array(NUMBER)
	if tup == arr {
		t.Fatalf("a fully-required homogeneous tuple must not collapse to an array")
	}
}

func TestInternerIdempotence(t *testing.T) {
	in := New()
	obj1 := in.Object(Object{Props: []Property{{Name: "x", Type: NUMBER}}})
	obj2 := in.Object(Object{Props: []Property{{Name: "x", Type: NUMBER}}})
	if obj1 != obj2 {
		t.Fatalf("structurally equal objects must share a handle: %d vs %d", obj1, obj2)
	}
}

func TestLiteralBase(t *testing.T) {
	in := New()
	cases := []struct {
		id   TypeId
		base TypeId
	}{
		{in.LiteralString("x"), STRING},
		{in.LiteralNumber(1), NUMBER},
		{in.LiteralBoolean(true), BOOLEAN},
		{in.LiteralBigInt("1"), BIGINT},
	}
	for _, c := range cases {
		d, ok := in.Lookup(c.id)
		if !ok {
			t.Fatalf("lookup failed for %d", c.id)
		}
		if got := d.(Literal).Base(); got != c.base {
			t.Errorf("literal %d: base = %d, want %d", c.id, got, c.base)
		}
	}
}

func TestIntrinsicByName(t *testing.T) {
	id, ok := IntrinsicByName("string")
	if !ok || id != STRING {
		t.Fatalf("IntrinsicByName(string) = %d,%v want STRING", id, ok)
	}
	if _, ok := IntrinsicByName("nope"); ok {
		t.Fatalf("IntrinsicByName(nope) should fail")
	}
}

func TestPropertyIndexCache(t *testing.T) {
	in := New()
	obj := in.Object(Object{Props: []Property{{Name: "a", Type: STRING}, {Name: "b", Type: NUMBER}}})
	idx := in.PropertyIndex(obj)
	if idx["a"] != 0 || idx["b"] != 1 {
		t.Fatalf("unexpected property index: %#v", idx)
	}
	// second call must hit the cache and return the same map contents.
	idx2 := in.PropertyIndex(obj)
	if idx2["a"] != 0 || idx2["b"] != 1 {
		t.Fatalf("cached property index mismatch: %#v", idx2)
	}
}
