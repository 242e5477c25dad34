package config

import "testing"

func TestDefaultIsStrict(t *testing.T) {
	o := Default()
	if !o.StrictNullChecks || !o.StrictFunctionTypes || !o.NoImplicitAny {
		t.Errorf("Default() should match `tsc --strict`, got %#v", o)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	data := []byte("options:\n  strictNullChecks: false\nfiles:\n  - a.ts\n  - b.ts\n")
	p, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Options.StrictNullChecks {
		t.Error("expected strictNullChecks to be overridden to false")
	}
	if !p.Options.StrictFunctionTypes {
		t.Error("expected strictFunctionTypes to keep its default of true")
	}
	if len(p.Files) != 2 || p.Files[0] != "a.ts" || p.Files[1] != "b.ts" {
		t.Errorf("unexpected files: %v", p.Files)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	if _, err := Load([]byte("not: [valid")); err == nil {
		t.Error("expected an error for malformed YAML")
	}
}
