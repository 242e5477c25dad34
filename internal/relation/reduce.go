package relation

import "github.com/arborlang/tscore/internal/types"

// reduceConditional evaluates `check extends extends ? true : false` per
// spec.md §4.R step 8: distribute over a naked-parameter check that
// resolved to a union (spec.md's "distributive conditional", also detected
// independently by internal/infer's collector for instantiation purposes),
// otherwise decide the extends clause with the same structural relation
// used everywhere else and pick a branch. Returns ok=false when either side
// still carries an unresolved bare type parameter, the "otherwise compare
// syntactically" case spec.md step 8 falls back to (syntactic comparison of
// two non-identical conditionals never matches, since identity already
// failed above).
func (e *Engine) reduceConditional(c types.Conditional, visited visitedSet) (types.TypeId, bool) {
	in := e.in
	if c.Distributive {
		if c.Check == types.NEVER {
			return types.NEVER, true
		}
		if u, ok := in.AsUnion(c.Check); ok {
			parts := make([]types.TypeId, 0, len(u.Members))
			for _, mem := range u.Members {
				sub := types.Subst{c.NakedParam: mem}
				member := types.Conditional{
					Check:   mem,
					Extends: in.Substitute(c.Extends, sub),
					True:    in.Substitute(c.True, sub),
					False:   in.Substitute(c.False, sub),
				}
				r, ok := e.reduceConditional(member, visited)
				if !ok {
					return 0, false
				}
				parts = append(parts, r)
			}
			return in.Union(parts), true
		}
	}
	if _, ok := in.AsTypeParameter(c.Check); ok {
		return 0, false
	}
	if _, ok := in.AsTypeParameter(c.Extends); ok {
		return 0, false
	}
	if e.check(c.Check, c.Extends, modeSubtype, visited) {
		return c.True, true
	}
	return c.False, true
}

// reduceIndexedAccess evaluates `T[K]` per spec.md §4.R step 8: a property
// lookup on obj when index names it directly (a string-literal key, or a
// union of them — each resolved independently and unioned), a positional
// element lookup for array/tuple objs under a numeric key, and the
// "T[keyof T]" case of every member's value type unioned together.
func (e *Engine) reduceIndexedAccess(obj, idx types.TypeId) (types.TypeId, bool) {
	in := e.in
	if u, ok := in.AsUnion(idx); ok {
		parts := make([]types.TypeId, 0, len(u.Members))
		for _, mem := range u.Members {
			r, ok := e.reduceIndexedAccess(obj, mem)
			if !ok {
				return 0, false
			}
			parts = append(parts, r)
		}
		return in.Union(parts), true
	}
	if lit, ok := in.AsLiteral(idx); ok {
		switch lit.LKind {
		case types.LitString:
			if o, ok := in.AsObject(obj); ok {
				pidx := in.PropertyIndex(obj)
				if i, found := pidx[lit.Str]; found {
					return o.Props[i].Type, true
				}
				if o.StringIndex != nil {
					return o.StringIndex.Value, true
				}
			}
			return 0, false
		case types.LitNumber:
			if a, ok := in.AsArray(obj); ok {
				return a.Elem, true
			}
			if t, ok := in.AsTuple(obj); ok {
				n := int(lit.Num)
				if n >= 0 && n < len(t.Elements) {
					return t.Elements[n].Type, true
				}
			}
			return 0, false
		}
	}
	if idx == types.NUMBER {
		if a, ok := in.AsArray(obj); ok {
			return a.Elem, true
		}
		if t, ok := in.AsTuple(obj); ok {
			parts := make([]types.TypeId, len(t.Elements))
			for i, el := range t.Elements {
				parts[i] = el.Type
			}
			return in.Union(parts), true
		}
	}
	if ik, ok := in.AsIndex(idx); ok && ik.Of == obj {
		if o, ok := in.AsObject(obj); ok {
			parts := make([]types.TypeId, len(o.Props))
			for i, p := range o.Props {
				parts[i] = p.Type
			}
			return in.Union(parts), true
		}
	}
	return 0, false
}

// reduceMapped expands `{ [K in keyof T]: F(K) }` per spec.md §4.R step 8
// and §3.1's Mapped variant: enumerate the constraint's key set (a `keyof`
// of a concrete object shape, or an explicit union/single string-literal
// key type), substitute each key into Value (and into KeyRemap when an `as`
// clause is present — a key that remaps to `never` is dropped, matching
// real key-remapping filters), and carry the source property's own
// optional/readonly flags through ModNone so a bare `{[K in keyof T]: F(K)}`
// without `+`/`-` modifiers preserves them instead of resetting to false.
func (e *Engine) reduceMapped(m types.Mapped) (types.TypeId, bool) {
	in := e.in
	keys, base, ok := mappedKeySource(in, m.Constraint)
	if !ok {
		return 0, false
	}
	var props []types.Property
	for i, key := range keys {
		sub := types.Subst{m.Param: key}
		name, skip, ok := mappedKeyName(in, m, key, sub)
		if !ok {
			return 0, false
		}
		if skip {
			continue
		}
		val := in.Substitute(m.Value, sub)
		optional, readonly := false, false
		if i < len(base) {
			optional, readonly = base[i].Optional, base[i].Readonly
		}
		switch m.OptionalMod {
		case types.ModAdd:
			optional = true
		case types.ModRemove:
			optional = false
		}
		switch m.ReadonlyMod {
		case types.ModAdd:
			readonly = true
		case types.ModRemove:
			readonly = false
		}
		props = append(props, types.Property{Name: name, Type: val, WriteType: val, Optional: optional, Readonly: readonly})
	}
	return in.Object(types.Object{Props: props}), true
}

// mappedKeySource resolves a mapped type's key-range constraint to its
// concrete key set, returning the source object's properties in parallel
// (for ModNone's optional/readonly carry-through) when the constraint is a
// `keyof` of a concrete object; nil when the constraint came from anything
// else (no per-key flags to inherit).
func mappedKeySource(in *types.Interner, constraint types.TypeId) (keys []types.TypeId, base []types.Property, ok bool) {
	if idx, ok := in.AsIndex(constraint); ok {
		if obj, ok := in.AsObject(idx.Of); ok {
			keys := make([]types.TypeId, len(obj.Props))
			for i, p := range obj.Props {
				keys[i] = in.LiteralString(p.Name)
			}
			return keys, obj.Props, true
		}
		return nil, nil, false
	}
	if u, ok := in.AsUnion(constraint); ok {
		for _, mem := range u.Members {
			if _, ok := in.AsLiteral(mem); !ok {
				return nil, nil, false
			}
		}
		return u.Members, nil, true
	}
	if _, ok := in.AsLiteral(constraint); ok {
		return []types.TypeId{constraint}, nil, true
	}
	return nil, nil, false
}

// mappedKeyName computes the property name produced for one key, applying
// the mapped type's `as` key-remapping clause if present.
func mappedKeyName(in *types.Interner, m types.Mapped, key types.TypeId, sub types.Subst) (name string, skip bool, ok bool) {
	lit, isLit := in.AsLiteral(key)
	if !isLit || lit.LKind != types.LitString {
		return "", false, false
	}
	if m.KeyRemap == types.TypeId(0) {
		return lit.Str, false, true
	}
	remapped := in.Substitute(m.KeyRemap, sub)
	if remapped == types.NEVER {
		return "", true, true
	}
	rl, ok := in.AsLiteral(remapped)
	if !ok || rl.LKind != types.LitString {
		return "", false, false
	}
	return rl.Str, false, true
}
