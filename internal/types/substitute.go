package types

// Subst maps TypeParameter TypeIds to their instantiations.
type Subst map[TypeId]TypeId

// Substitute rewrites id by replacing every TypeParameter handle present in
// s with its mapped type, reinterning the result. This is the handle-based
// analogue of funxy's Type.Apply(Subst): that implementation guards cycles
// with a `visited map[string]bool` keyed by type-variable name
// (typesystem/types.go, ApplyWithCycleCheck); here the handle graph can
// itself be cyclic (recursive interfaces), so the guard is keyed by the
// TypeId being expanded, and a cycle simply returns the id unexpanded
// instead of infinitely recursing.
func (in *Interner) Substitute(id TypeId, s Subst) TypeId {
	if len(s) == 0 {
		return id
	}
	return in.substitute(id, s, make(map[TypeId]bool))
}

func (in *Interner) substitute(id TypeId, s Subst, visiting map[TypeId]bool) TypeId {
	if in.IsIntrinsic(id) || id == ERROR {
		return id
	}
	if visiting[id] {
		return id
	}

	if repl, ok := s[id]; ok {
		if in.KindOf(id) == KTypeParameter {
			return repl
		}
	}

	d, ok := in.Lookup(id)
	if !ok {
		return id
	}

	visiting[id] = true
	defer delete(visiting, id)

	sub := func(t TypeId) TypeId { return in.substitute(t, s, visiting) }
	subAll := func(ts []TypeId) []TypeId {
		out := make([]TypeId, len(ts))
		for i, t := range ts {
			out[i] = sub(t)
		}
		return out
	}

	switch t := d.(type) {
	case TypeParameter:
		if repl, ok := s[id]; ok {
			return repl
		}
		return id
	case Object:
		props := make([]Property, len(t.Props))
		for i, p := range t.Props {
			p.Type = sub(p.Type)
			p.WriteType = sub(p.WriteType)
			props[i] = p
		}
		o := Object{Props: props, Flags: t.Flags}
		if t.StringIndex != nil {
			o.StringIndex = &IndexSig{Value: sub(t.StringIndex.Value), Readonly: t.StringIndex.Readonly}
		}
		if t.NumberIndex != nil {
			o.NumberIndex = &IndexSig{Value: sub(t.NumberIndex.Value), Readonly: t.NumberIndex.Readonly}
		}
		return in.Object(o)
	case Callable:
		c := Callable{}
		for _, p := range t.Props {
			p.Type = sub(p.Type)
			p.WriteType = sub(p.WriteType)
			c.Props = append(c.Props, p)
		}
		for _, sig := range t.Calls {
			c.Calls = append(c.Calls, in.substSig(sig, sub, subAll))
		}
		for _, sig := range t.Constructs {
			c.Constructs = append(c.Constructs, in.substSig(sig, sub, subAll))
		}
		if t.StringIndex != nil {
			c.StringIndex = &IndexSig{Value: sub(t.StringIndex.Value), Readonly: t.StringIndex.Readonly}
		}
		if t.NumberIndex != nil {
			c.NumberIndex = &IndexSig{Value: sub(t.NumberIndex.Value), Readonly: t.NumberIndex.Readonly}
		}
		return in.Callable(c)
	case Array:
		return in.Array(sub(t.Elem))
	case Tuple:
		elems := make([]TupleElem, len(t.Elements))
		for i, e := range t.Elements {
			e.Type = sub(e.Type)
			elems[i] = e
		}
		return in.Tuple(elems, t.Readonly)
	case Union:
		return in.Union(subAll(t.Members))
	case Intersection:
		return in.Intersection(subAll(t.Members))
	case Reference:
		return in.Reference(t.Symbol, subAll(t.Args))
	case Conditional:
		return in.Conditional(sub(t.Check), sub(t.Extends), sub(t.True), sub(t.False), t.Distributive, sub(t.NakedParam))
	case Mapped:
		m := t
		m.Constraint = sub(t.Constraint)
		m.Value = sub(t.Value)
		if t.KeyRemap != invalidId {
			m.KeyRemap = sub(t.KeyRemap)
		}
		return in.Mapped(m)
	case Index:
		return in.IndexOf(sub(t.Of))
	case IndexedAccess:
		return in.IndexedAccessOf(sub(t.Obj), sub(t.Index))
	case TemplateLiteral:
		parts := make([]TemplatePart, len(t.Parts))
		for i, p := range t.Parts {
			if p.Slot != invalidId {
				p.Slot = sub(p.Slot)
			}
			parts[i] = p
		}
		return in.TemplateLiteral(parts)
	default:
		return id
	}
}

func (in *Interner) substSig(s Signature, sub func(TypeId) TypeId, subAll func([]TypeId) []TypeId) Signature {
	out := s
	out.TypeParams = subAll(s.TypeParams)
	if s.This != invalidId {
		out.This = sub(s.This)
	}
	out.Params = make([]Param, len(s.Params))
	for i, p := range s.Params {
		p.Type = sub(p.Type)
		out.Params[i] = p
	}
	if s.Rest != nil {
		r := *s.Rest
		r.Type = sub(r.Type)
		out.Rest = &r
	}
	out.Return = sub(s.Return)
	if s.Predicate != nil {
		pr := *s.Predicate
		if pr.Target != invalidId {
			pr.Target = sub(pr.Target)
		}
		out.Predicate = &pr
	}
	return out
}

// FreeTypeParameters collects the TypeParameter handles reachable from id,
// the handle-based analogue of funxy's Type.FreeTypeVariables.
func (in *Interner) FreeTypeParameters(id TypeId) []TypeId {
	seen := make(map[TypeId]bool)
	var out []TypeId
	var walk func(TypeId, map[TypeId]bool)
	walk = func(id TypeId, visiting map[TypeId]bool) {
		if in.IsIntrinsic(id) || id == ERROR || visiting[id] {
			return
		}
		d, ok := in.Lookup(id)
		if !ok {
			return
		}
		if in.KindOf(id) == KTypeParameter {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
			return
		}
		visiting[id] = true
		defer delete(visiting, id)
		switch t := d.(type) {
		case Object:
			for _, p := range t.Props {
				walk(p.Type, visiting)
			}
		case Callable:
			for _, sig := range append(append([]Signature{}, t.Calls...), t.Constructs...) {
				for _, p := range sig.Params {
					walk(p.Type, visiting)
				}
				walk(sig.Return, visiting)
			}
		case Array:
			walk(t.Elem, visiting)
		case Tuple:
			for _, e := range t.Elements {
				walk(e.Type, visiting)
			}
		case Union:
			for _, m := range t.Members {
				walk(m, visiting)
			}
		case Intersection:
			for _, m := range t.Members {
				walk(m, visiting)
			}
		case Reference:
			for _, a := range t.Args {
				walk(a, visiting)
			}
		case Conditional:
			walk(t.Check, visiting)
			walk(t.Extends, visiting)
			walk(t.True, visiting)
			walk(t.False, visiting)
		case Mapped:
			walk(t.Constraint, visiting)
			walk(t.Value, visiting)
		case Index:
			walk(t.Of, visiting)
		case IndexedAccess:
			walk(t.Obj, visiting)
			walk(t.Index, visiting)
		}
	}
	walk(id, seen)
	return out
}
