package types

import (
	"fmt"
	"strconv"
	"strings"
)

// String renders a human-readable form of id, cached per handle since a
// type's structure never changes once interned. Grounded on funxy's Type.String()
// methods, generalized to the handle-indirected representation.
func (in *Interner) String(id TypeId) string {
	in.mu.RLock()
	if s, ok := in.strCache[id]; ok {
		in.mu.RUnlock()
		return s
	}
	in.mu.RUnlock()

	s := in.render(id, make(map[TypeId]bool))

	in.mu.Lock()
	in.strCache[id] = s
	in.mu.Unlock()
	return s
}

func (in *Interner) render(id TypeId, visiting map[TypeId]bool) string {
	if in.IsIntrinsic(id) {
		if name, ok := intrinsicNames[id]; ok {
			return name
		}
		return "<invalid>"
	}
	if visiting[id] {
		return fmt.Sprintf("#%d", id)
	}
	visiting[id] = true
	defer delete(visiting, id)

	d, ok := in.Lookup(id)
	if !ok {
		return "<unresolved>"
	}

	switch t := d.(type) {
	case Literal:
		switch t.LKind {
		case LitString:
			return strconv.Quote(t.Str)
		case LitNumber:
			return strconv.FormatFloat(t.Num, 'g', -1, 64)
		case LitBigInt:
			return t.Big + "n"
		default:
			return strconv.FormatBool(t.Bool)
		}
	case Object:
		var b strings.Builder
		b.WriteString("{ ")
		for _, p := range t.Props {
			if p.Readonly {
				b.WriteString("readonly ")
			}
			b.WriteString(p.Name)
			if p.Optional {
				b.WriteString("?")
			}
			b.WriteString(": ")
			b.WriteString(in.render(p.Type, visiting))
			b.WriteString("; ")
		}
		if t.StringIndex != nil {
			fmt.Fprintf(&b, "[key: string]: %s; ", in.render(t.StringIndex.Value, visiting))
		}
		if t.NumberIndex != nil {
			fmt.Fprintf(&b, "[key: number]: %s; ", in.render(t.NumberIndex.Value, visiting))
		}
		b.WriteString("}")
		return b.String()
	case Callable:
		var parts []string
		for _, s := range t.Calls {
			parts = append(parts, in.renderSig(s, visiting, false))
		}
		for _, s := range t.Constructs {
			parts = append(parts, "new "+in.renderSig(s, visiting, false))
		}
		if len(parts) == 0 {
			return "(object with no call signatures)"
		}
		return strings.Join(parts, " & ")
	case Array:
		return in.render(t.Elem, visiting) + "[]"
	case Tuple:
		var parts []string
		for _, e := range t.Elements {
			s := in.render(e.Type, visiting)
			if e.Rest {
				s = "..." + s
			}
			if e.Optional {
				s += "?"
			}
			parts = append(parts, s)
		}
		prefix := ""
		if t.Readonly {
			prefix = "readonly "
		}
		return prefix + "[" + strings.Join(parts, ", ") + "]"
	case Union:
		return joinRendered(in, t.Members, " | ", visiting)
	case Intersection:
		return joinRendered(in, t.Members, " & ", visiting)
	case Reference:
		s := fmt.Sprintf("Sym#%d", t.Symbol)
		if len(t.Args) > 0 {
			s += "<" + joinRendered(in, t.Args, ", ", visiting) + ">"
		}
		return s
	case TypeParameter:
		return t.Name
	case Conditional:
		return fmt.Sprintf("%s extends %s ? %s : %s", in.render(t.Check, visiting), in.render(t.Extends, visiting), in.render(t.True, visiting), in.render(t.False, visiting))
	case Mapped:
		return fmt.Sprintf("{ [%s in %s]: %s }", in.render(t.Param, visiting), in.render(t.Constraint, visiting), in.render(t.Value, visiting))
	case Index:
		return "keyof " + in.render(t.Of, visiting)
	case IndexedAccess:
		return in.render(t.Obj, visiting) + "[" + in.render(t.Index, visiting) + "]"
	case TypeQuery:
		return fmt.Sprintf("typeof Sym#%d", t.Symbol)
	case TemplateLiteral:
		var b strings.Builder
		b.WriteString("`")
		for _, p := range t.Parts {
			b.WriteString(p.Fixed)
			if p.Slot != invalidId {
				b.WriteString("${" + in.render(p.Slot, visiting) + "}")
			}
		}
		b.WriteString("`")
		return b.String()
	case Enum:
		return fmt.Sprintf("Enum#%d", t.Symbol)
	}
	return "<?>"
}

func (in *Interner) renderSig(s Signature, visiting map[TypeId]bool, ctor bool) string {
	var b strings.Builder
	if len(s.TypeParams) > 0 {
		b.WriteString("<")
		b.WriteString(joinRendered(in, s.TypeParams, ", ", visiting))
		b.WriteString(">")
	}
	b.WriteString("(")
	var ps []string
	for _, p := range s.Params {
		ps = append(ps, p.Name+": "+in.render(p.Type, visiting))
	}
	if s.Rest != nil {
		ps = append(ps, "..."+s.Rest.Name+": "+in.render(s.Rest.Type, visiting))
	}
	b.WriteString(strings.Join(ps, ", "))
	b.WriteString(") => ")
	if s.Predicate != nil {
		if s.Predicate.Asserts {
			b.WriteString("asserts " + s.Predicate.ParamName)
			if s.Predicate.Target != invalidId {
				b.WriteString(" is " + in.render(s.Predicate.Target, visiting))
			}
		} else {
			b.WriteString(s.Predicate.ParamName + " is " + in.render(s.Predicate.Target, visiting))
		}
	} else {
		b.WriteString(in.render(s.Return, visiting))
	}
	return b.String()
}

func joinRendered(in *Interner, ids []TypeId, sep string, visiting map[TypeId]bool) string {
	var parts []string
	for _, id := range ids {
		parts = append(parts, in.render(id, visiting))
	}
	return strings.Join(parts, sep)
}
