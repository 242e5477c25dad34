// Package types implements the CORE's type interner and type graph (tag T
// in the design overview): an immutable, content-addressed, hash-consed
// store of structural and nominal types referred to by small handles.
//
// The representation is grounded in funxy's typesystem package (a tagged
// union of Type variants, structural Apply/substitution with a visited-set
// cycle guard — see typesystem/types.go's ApplyWithCycleCheck) adapted from
// funxy's Hindley-Milner TVar/TApp/TFunc values to TypeScript's richer
// variant set (object shapes, callables with multiple signatures, unions,
// intersections, conditional/mapped types) addressed by handle rather than
// held directly, so that handle equality can stand in for structural
// equality (spec.md §3.1, §4.T).
package types

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// TypeId is a small, stable handle naming an interned type. Two structurally
// equal types always share a handle.
type TypeId uint32

// SymbolId is an opaque handle to a binder-owned Symbol. The interner never
// inspects a Symbol's fields; it only carries the id around and asks a
// Resolver (see relation.Resolver) to dereference it when needed.
type SymbolId uint32

// Reserved intrinsic handles, fixed for the lifetime of every Interner.
const (
	invalidId TypeId = iota
	ANY
	UNKNOWN
	NEVER
	VOID
	NULL
	UNDEFINED
	STRING
	NUMBER
	BOOLEAN
	BIGINT
	SYMBOL
	OBJECT
	ERROR
	firstUserId
)

var intrinsicNames = map[TypeId]string{
	ANY: "any", UNKNOWN: "unknown", NEVER: "never", VOID: "void",
	NULL: "null", UNDEFINED: "undefined", STRING: "string", NUMBER: "number",
	BOOLEAN: "boolean", BIGINT: "bigint", SYMBOL: "symbol", OBJECT: "object",
	ERROR: "error",
}

// IntrinsicByName resolves one of the reserved names to its handle. The
// checker's type builder calls it for a KeywordType such as `string` or
// `any`, and for a NamedType before falling back to a symbol lookup
// (mirrors funxy's BuildType treating bare identifiers as either a builtin
// name or a symbol lookup).
func IntrinsicByName(name string) (TypeId, bool) {
	for id, n := range intrinsicNames {
		if n == name {
			return id, true
		}
	}
	return invalidId, false
}

// Kind tags which variant a Type is.
type Kind uint8

const (
	KIntrinsic Kind = iota
	KLiteral
	KObject
	KCallable
	KArray
	KTuple
	KUnion
	KIntersection
	KReference
	KTypeParameter
	KConditional
	KMapped
	KIndex
	KIndexedAccess
	KTypeQuery
	KTemplateLiteral
	KEnum
)

// data is implemented by every per-kind payload struct stored in the
// interner. key() produces the canonical hash-cons string: it must depend
// only on already-interned child ids plus the variant's own tag, never on
// map iteration order, so permutation-insensitive constructors (union,
// intersection) can normalize before calling key().
type data interface {
	kind() Kind
	key() string
}

// ---- literal ----

type LiteralKind uint8

const (
	LitString LiteralKind = iota
	LitNumber
	LitBigInt
	LitBoolean
)

type Literal struct {
	LKind LiteralKind
	Str   string
	Num   float64
	Big   string
	Bool  bool
}

func (l Literal) kind() Kind { return KLiteral }
func (l Literal) key() string {
	switch l.LKind {
	case LitString:
		return fmt.Sprintf("Lit:s:%q", l.Str)
	case LitNumber:
		return fmt.Sprintf("Lit:n:%s", strconv.FormatFloat(l.Num, 'g', -1, 64))
	case LitBigInt:
		return fmt.Sprintf("Lit:g:%s", l.Big)
	default:
		return fmt.Sprintf("Lit:b:%v", l.Bool)
	}
}

// Base returns the intrinsic base kind this literal narrows.
func (l Literal) Base() TypeId {
	switch l.LKind {
	case LitString:
		return STRING
	case LitNumber:
		return NUMBER
	case LitBigInt:
		return BIGINT
	default:
		return BOOLEAN
	}
}

// ---- object shape ----

type Visibility uint8

const (
	Public Visibility = iota
	Protected
	Private
)

type Property struct {
	Name         string
	Type         TypeId // read type
	WriteType    TypeId // write type; equal to Type when not separately declared
	Optional     bool
	Readonly     bool
	Visibility   Visibility
	DeclaringSym SymbolId
}

type IndexSig struct {
	Value    TypeId
	Readonly bool
}

type ObjectFlags uint8

const (
	FlagClassInstance ObjectFlags = 1 << iota
	FlagInterface
	FlagReadonlyArrayOrigin
	FlagFreshLiteral
)

type Object struct {
	Props        []Property
	StringIndex  *IndexSig
	NumberIndex  *IndexSig
	Flags        ObjectFlags
}

func (o Object) kind() Kind { return KObject }
func (o Object) key() string {
	var b strings.Builder
	b.WriteString("Obj:")
	for _, p := range o.Props {
		fmt.Fprintf(&b, "%s:%d:%d:%v:%v:%d:%d;", p.Name, p.Type, p.WriteType, p.Optional, p.Readonly, p.Visibility, p.DeclaringSym)
	}
	if o.StringIndex != nil {
		fmt.Fprintf(&b, "si:%d:%v;", o.StringIndex.Value, o.StringIndex.Readonly)
	}
	if o.NumberIndex != nil {
		fmt.Fprintf(&b, "ni:%d:%v;", o.NumberIndex.Value, o.NumberIndex.Readonly)
	}
	fmt.Fprintf(&b, "f:%d", o.Flags)
	return b.String()
}

// ---- callable shape ----

type Param struct {
	Name     string
	Type     TypeId
	Optional bool
}

type Predicate struct {
	ParamName string
	Target    TypeId // invalid when Asserts && Target==0 (bare `asserts x`)
	Asserts   bool
}

type Signature struct {
	TypeParams []TypeId // TypeParameter TypeIds
	This       TypeId   // invalid id when absent
	Params     []Param
	Rest       *Param
	Return     TypeId
	Predicate  *Predicate
}

func (s Signature) key() string {
	var b strings.Builder
	fmt.Fprintf(&b, "tp%v;this%d;", s.TypeParams, s.This)
	for _, p := range s.Params {
		fmt.Fprintf(&b, "%s:%d:%v,", p.Name, p.Type, p.Optional)
	}
	if s.Rest != nil {
		fmt.Fprintf(&b, "rest:%d,", s.Rest.Type)
	}
	fmt.Fprintf(&b, "ret:%d", s.Return)
	if s.Predicate != nil {
		fmt.Fprintf(&b, "pred:%s:%d:%v", s.Predicate.ParamName, s.Predicate.Target, s.Predicate.Asserts)
	}
	return b.String()
}

type Callable struct {
	Calls       []Signature
	Constructs  []Signature
	Props       []Property
	StringIndex *IndexSig
	NumberIndex *IndexSig
}

func (c Callable) kind() Kind { return KCallable }
func (c Callable) key() string {
	var b strings.Builder
	b.WriteString("Call:")
	for _, s := range c.Calls {
		b.WriteString("c[" + s.key() + "]")
	}
	for _, s := range c.Constructs {
		b.WriteString("n[" + s.key() + "]")
	}
	for _, p := range c.Props {
		fmt.Fprintf(&b, "p%s:%d;", p.Name, p.Type)
	}
	return b.String()
}

// ---- array / tuple ----

type Array struct{ Elem TypeId }

func (a Array) kind() Kind   { return KArray }
func (a Array) key() string  { return fmt.Sprintf("Arr:%d", a.Elem) }

type TupleElem struct {
	Type     TypeId
	Name     string
	Optional bool
	Rest     bool
}

type Tuple struct {
	Elements []TupleElem
	Readonly bool
}

func (t Tuple) kind() Kind { return KTuple }
func (t Tuple) key() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tup:%v:", t.Readonly)
	for _, e := range t.Elements {
		fmt.Fprintf(&b, "%d:%v:%v;", e.Type, e.Optional, e.Rest)
	}
	return b.String()
}

// ---- union / intersection ----

type Union struct{ Members []TypeId }

func (u Union) kind() Kind  { return KUnion }
func (u Union) key() string { return fmt.Sprintf("Uni:%v", u.Members) }

type Intersection struct{ Members []TypeId }

func (i Intersection) kind() Kind  { return KIntersection }
func (i Intersection) key() string { return fmt.Sprintf("Int:%v", i.Members) }

// ---- nominal / generic machinery ----

type Reference struct {
	Symbol SymbolId
	Args   []TypeId
}

func (r Reference) kind() Kind  { return KReference }
func (r Reference) key() string { return fmt.Sprintf("Ref:%d:%v", r.Symbol, r.Args) }

type TypeParameter struct {
	Name       string
	Constraint TypeId // invalid id when absent
	Default    TypeId // invalid id when absent
	// Unique distinguishes type parameters with the same declared name at
	// different declaration sites (two functions each with `<T>`).
	Unique uint32
}

func (t TypeParameter) kind() Kind  { return KTypeParameter }
func (t TypeParameter) key() string { return fmt.Sprintf("TP:%s:%d:%d:%d", t.Name, t.Constraint, t.Default, t.Unique) }

type Conditional struct {
	Check        TypeId
	Extends      TypeId
	True         TypeId
	False        TypeId
	Distributive bool
	// NakedParam is the TypeParameter TypeId being distributed over, valid
	// only when Distributive is true.
	NakedParam TypeId
}

func (c Conditional) kind() Kind { return KConditional }
func (c Conditional) key() string {
	return fmt.Sprintf("Cond:%d:%d:%d:%d:%v:%d", c.Check, c.Extends, c.True, c.False, c.Distributive, c.NakedParam)
}

type MappedModifier int8

const (
	ModNone MappedModifier = iota
	ModAdd
	ModRemove
)

type Mapped struct {
	Param       TypeId // TypeParameter ranging over keys
	Constraint  TypeId // keyof-like source of keys
	Value       TypeId // template referencing Param
	KeyRemap    TypeId // invalid id when no `as` clause
	ReadonlyMod MappedModifier
	OptionalMod MappedModifier
}

func (m Mapped) kind() Kind { return KMapped }
func (m Mapped) key() string {
	return fmt.Sprintf("Map:%d:%d:%d:%d:%d:%d", m.Param, m.Constraint, m.Value, m.KeyRemap, m.ReadonlyMod, m.OptionalMod)
}

type Index struct{ Of TypeId }

func (i Index) kind() Kind  { return KIndex }
func (i Index) key() string { return fmt.Sprintf("Idx:%d", i.Of) }

type IndexedAccess struct{ Obj, Index TypeId }

func (i IndexedAccess) kind() Kind  { return KIndexedAccess }
func (i IndexedAccess) key() string { return fmt.Sprintf("IA:%d:%d", i.Obj, i.Index) }

type TypeQuery struct{ Symbol SymbolId }

func (t TypeQuery) kind() Kind  { return KTypeQuery }
func (t TypeQuery) key() string { return fmt.Sprintf("TQ:%d", t.Symbol) }

type TemplatePart struct {
	Fixed string
	Slot  TypeId // invalid id for a pure fixed segment
}

type TemplateLiteral struct{ Parts []TemplatePart }

func (t TemplateLiteral) kind() Kind { return KTemplateLiteral }
func (t TemplateLiteral) key() string {
	var b strings.Builder
	b.WriteString("Tmpl:")
	for _, p := range t.Parts {
		fmt.Fprintf(&b, "%q:%d;", p.Fixed, p.Slot)
	}
	return b.String()
}

type Enum struct {
	Symbol SymbolId
	Base   TypeId // NUMBER or STRING
}

func (e Enum) kind() Kind  { return KEnum }
func (e Enum) key() string { return fmt.Sprintf("Enum:%d:%d", e.Symbol, e.Base) }

// ---- Interner ----

// Interner hash-conses every non-intrinsic Type. A single Interner backs one
// compilation; per spec.md §5, concurrent compilation of distinct files may
// each own a partition guarded by this RWMutex, with the merged program
// exposing only read-only access to other workers.
type Interner struct {
	mu    sync.RWMutex
	store []data        // index 0 unused, 1..firstUserId-1 reserved for intrinsics
	index map[string]TypeId

	propIndex map[TypeId]map[string]int
	strCache  map[TypeId]string
	uniqueSeq uint32
}

// New creates an Interner with the intrinsic handles pre-populated.
func New() *Interner {
	in := &Interner{
		store:     make([]data, firstUserId),
		index:     make(map[string]TypeId),
		propIndex: make(map[TypeId]map[string]int),
		strCache:  make(map[TypeId]string),
	}
	return in
}

// intern hash-conses a data value, returning its existing handle or minting
// a new one. Not exported: callers go through the typed constructors below,
// which apply the §4.T normalizers before calling this.
func (in *Interner) intern(d data) TypeId {
	k := d.key()
	in.mu.Lock()
	defer in.mu.Unlock()
	if id, ok := in.index[k]; ok {
		return id
	}
	in.store = append(in.store, d)
	id := TypeId(len(in.store) - 1)
	in.index[k] = id
	return id
}

// Lookup returns the payload for a handle. Intrinsic handles have no
// payload (data is nil); callers should special-case IsIntrinsic.
func (in *Interner) Lookup(id TypeId) (data, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	if int(id) <= 0 || int(id) >= len(in.store) {
		return nil, false
	}
	return in.store[id], true
}

func (in *Interner) KindOf(id TypeId) Kind {
	if id == ERROR {
		return KIntrinsic
	}
	if int(id) < int(firstUserId) {
		return KIntrinsic
	}
	d, ok := in.Lookup(id)
	if !ok || d == nil {
		return KIntrinsic
	}
	return d.kind()
}

func (in *Interner) IsIntrinsic(id TypeId) bool { return int(id) > 0 && int(id) < int(firstUserId) }

// NextUnique hands out a fresh serial number for distinguishing otherwise
// identically-named type parameters from different declaration sites.
func (in *Interner) NextUnique() uint32 {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.uniqueSeq++
	return in.uniqueSeq
}

// ---- typed constructors ----

func (in *Interner) LiteralString(s string) TypeId {
	return in.intern(Literal{LKind: LitString, Str: s})
}
func (in *Interner) LiteralNumber(n float64) TypeId {
	return in.intern(Literal{LKind: LitNumber, Num: n})
}
func (in *Interner) LiteralBigInt(s string) TypeId {
	return in.intern(Literal{LKind: LitBigInt, Big: s})
}
func (in *Interner) LiteralBoolean(b bool) TypeId {
	return in.intern(Literal{LKind: LitBoolean, Bool: b})
}

func (in *Interner) Object(o Object) TypeId { return in.intern(o) }

func (in *Interner) Callable(c Callable) TypeId { return in.intern(c) }

func (in *Interner) Array(elem TypeId) TypeId { return in.intern(Array{Elem: elem}) }

// Tuple never collapses to Array even when every element is present and of
// identical type — identity is preserved per spec.md §4.T.
func (in *Interner) Tuple(elems []TupleElem, readonly bool) TypeId {
	cp := append([]TupleElem(nil), elems...)
	return in.intern(Tuple{Elements: cp, Readonly: readonly})
}

// Union flattens nested unions, dedupes, drops never, is absorbed by any,
// and drops a literal whose base intrinsic is also a member — the §3.1
// union normalizers. Members are sorted by
// TypeId so `A | B` and `B | A` intern to the same handle.
func (in *Interner) Union(members []TypeId) TypeId {
	flat := in.flattenUnion(members)
	if len(flat) == 0 {
		return NEVER
	}
	if len(flat) == 1 {
		return flat[0]
	}
	sort.Slice(flat, func(i, j int) bool { return flat[i] < flat[j] })
	return in.intern(Union{Members: flat})
}

func (in *Interner) flattenUnion(members []TypeId) []TypeId {
	var out []TypeId
	seen := make(map[TypeId]bool)
	var walk func(TypeId)
	walk = func(id TypeId) {
		if id == NEVER {
			return
		}
		if id == ANY {
			out = []TypeId{ANY}
			return
		}
		if in.KindOf(id) == KUnion {
			d, _ := in.Lookup(id)
			for _, m := range d.(Union).Members {
				walk(m)
			}
			return
		}
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, m := range members {
		walk(m)
		if len(out) == 1 && out[0] == ANY {
			break
		}
	}
	if len(out) == 1 && out[0] == ANY {
		return out
	}
	// literal-subtype elimination: drop a literal when its base intrinsic is
	// also a member (the base already covers it).
	bases := make(map[TypeId]bool)
	for _, id := range out {
		if in.KindOf(id) == KLiteral {
			d, _ := in.Lookup(id)
			bases[d.(Literal).Base()] = true
		}
	}
	if len(bases) == 0 {
		return out
	}
	var filtered []TypeId
	for _, id := range out {
		if in.KindOf(id) == KLiteral {
			d, _ := in.Lookup(id)
			if bases[d.(Literal).Base()] && containsId(out, d.(Literal).Base()) {
				continue
			}
		}
		filtered = append(filtered, id)
	}
	return filtered
}

func containsId(xs []TypeId, x TypeId) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

// Intersection flattens nested intersections, dedupes, and is absorbed by
// never.
func (in *Interner) Intersection(members []TypeId) TypeId {
	var out []TypeId
	seen := make(map[TypeId]bool)
	var walk func(TypeId)
	walk = func(id TypeId) {
		if id == NEVER {
			out = []TypeId{NEVER}
			return
		}
		if in.KindOf(id) == KIntersection {
			d, _ := in.Lookup(id)
			for _, m := range d.(Intersection).Members {
				walk(m)
			}
			return
		}
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, m := range members {
		walk(m)
		if len(out) == 1 && out[0] == NEVER {
			break
		}
	}
	if len(out) == 1 && out[0] == NEVER {
		return NEVER
	}
	if len(out) == 0 {
		return NEVER
	}
	if len(out) == 1 {
		return out[0]
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return in.intern(Intersection{Members: out})
}

func (in *Interner) Reference(sym SymbolId, args []TypeId) TypeId {
	return in.intern(Reference{Symbol: sym, Args: append([]TypeId(nil), args...)})
}

func (in *Interner) TypeParameter(name string, constraint, def TypeId) TypeId {
	return in.intern(TypeParameter{Name: name, Constraint: constraint, Default: def, Unique: in.NextUnique()})
}

func (in *Interner) Conditional(check, extends, trueT, falseT TypeId, distributive bool, nakedParam TypeId) TypeId {
	return in.intern(Conditional{Check: check, Extends: extends, True: trueT, False: falseT, Distributive: distributive, NakedParam: nakedParam})
}

func (in *Interner) Mapped(m Mapped) TypeId { return in.intern(m) }

func (in *Interner) IndexOf(of TypeId) TypeId { return in.intern(Index{Of: of}) }

func (in *Interner) IndexedAccessOf(obj, idx TypeId) TypeId {
	return in.intern(IndexedAccess{Obj: obj, Index: idx})
}

func (in *Interner) TypeQueryOf(sym SymbolId) TypeId { return in.intern(TypeQuery{Symbol: sym}) }

func (in *Interner) TemplateLiteral(parts []TemplatePart) TypeId {
	return in.intern(TemplateLiteral{Parts: append([]TemplatePart(nil), parts...)})
}

func (in *Interner) EnumType(sym SymbolId, base TypeId) TypeId {
	return in.intern(Enum{Symbol: sym, Base: base})
}

// PropertyIndex returns (and caches) a name->slice-index map for an Object
// or Callable's own declared properties (not apparent/inherited members).
func (in *Interner) PropertyIndex(id TypeId) map[string]int {
	in.mu.Lock()
	if m, ok := in.propIndex[id]; ok {
		in.mu.Unlock()
		return m
	}
	in.mu.Unlock()

	d, ok := in.Lookup(id)
	m := make(map[string]int)
	if ok {
		switch t := d.(type) {
		case Object:
			for i, p := range t.Props {
				m[p.Name] = i
			}
		case Callable:
			for i, p := range t.Props {
				m[p.Name] = i
			}
		}
	}
	in.mu.Lock()
	in.propIndex[id] = m
	in.mu.Unlock()
	return m
}
