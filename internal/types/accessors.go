package types

// AsObject returns the Object payload and true if id names an object shape.
func (in *Interner) AsObject(id TypeId) (Object, bool) {
	d, ok := in.Lookup(id)
	if !ok {
		return Object{}, false
	}
	o, ok := d.(Object)
	return o, ok
}

func (in *Interner) AsCallable(id TypeId) (Callable, bool) {
	d, ok := in.Lookup(id)
	if !ok {
		return Callable{}, false
	}
	c, ok := d.(Callable)
	return c, ok
}

func (in *Interner) AsArray(id TypeId) (Array, bool) {
	d, ok := in.Lookup(id)
	if !ok {
		return Array{}, false
	}
	a, ok := d.(Array)
	return a, ok
}

func (in *Interner) AsTuple(id TypeId) (Tuple, bool) {
	d, ok := in.Lookup(id)
	if !ok {
		return Tuple{}, false
	}
	t, ok := d.(Tuple)
	return t, ok
}

func (in *Interner) AsUnion(id TypeId) (Union, bool) {
	d, ok := in.Lookup(id)
	if !ok {
		return Union{}, false
	}
	u, ok := d.(Union)
	return u, ok
}

func (in *Interner) AsIntersection(id TypeId) (Intersection, bool) {
	d, ok := in.Lookup(id)
	if !ok {
		return Intersection{}, false
	}
	u, ok := d.(Intersection)
	return u, ok
}

func (in *Interner) AsLiteral(id TypeId) (Literal, bool) {
	d, ok := in.Lookup(id)
	if !ok {
		return Literal{}, false
	}
	l, ok := d.(Literal)
	return l, ok
}

func (in *Interner) AsReference(id TypeId) (Reference, bool) {
	d, ok := in.Lookup(id)
	if !ok {
		return Reference{}, false
	}
	r, ok := d.(Reference)
	return r, ok
}

func (in *Interner) AsTypeParameter(id TypeId) (TypeParameter, bool) {
	d, ok := in.Lookup(id)
	if !ok {
		return TypeParameter{}, false
	}
	t, ok := d.(TypeParameter)
	return t, ok
}

func (in *Interner) AsConditional(id TypeId) (Conditional, bool) {
	d, ok := in.Lookup(id)
	if !ok {
		return Conditional{}, false
	}
	c, ok := d.(Conditional)
	return c, ok
}

func (in *Interner) AsMapped(id TypeId) (Mapped, bool) {
	d, ok := in.Lookup(id)
	if !ok {
		return Mapped{}, false
	}
	m, ok := d.(Mapped)
	return m, ok
}

func (in *Interner) AsIndex(id TypeId) (Index, bool) {
	d, ok := in.Lookup(id)
	if !ok {
		return Index{}, false
	}
	v, ok := d.(Index)
	return v, ok
}

func (in *Interner) AsIndexedAccess(id TypeId) (IndexedAccess, bool) {
	d, ok := in.Lookup(id)
	if !ok {
		return IndexedAccess{}, false
	}
	v, ok := d.(IndexedAccess)
	return v, ok
}

func (in *Interner) AsEnum(id TypeId) (Enum, bool) {
	d, ok := in.Lookup(id)
	if !ok {
		return Enum{}, false
	}
	v, ok := d.(Enum)
	return v, ok
}

// IsCallableLike reports whether id carries call or construct signatures.
func (in *Interner) IsCallableLike(id TypeId) bool {
	c, ok := in.AsCallable(id)
	return ok && (len(c.Calls) > 0 || len(c.Constructs) > 0)
}

// IsFalsyLiteral reports whether a literal type is one of the falsy
// constants narrowing removes in a truthy guard ("" , 0, 0n, false).
func (in *Interner) IsFalsyLiteral(id TypeId) bool {
	l, ok := in.AsLiteral(id)
	if !ok {
		return false
	}
	switch l.LKind {
	case LitString:
		return l.Str == ""
	case LitNumber:
		return l.Num == 0
	case LitBigInt:
		return l.Big == "0"
	case LitBoolean:
		return l.Bool == false
	}
	return false
}
