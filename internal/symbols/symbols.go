// Package symbols implements the binder-owned Symbol table the CORE treats
// as an opaque external collaborator (spec.md §3.2, §6). The shape — a flag
// bitset, ordered declarations, a value-declaration, optional parent/member
// tables — is grounded on funxy's symbols.Symbol (internal/symbols/symbol_table_core.go),
// generalized from funxy's single-namespace variable/type/trait/module kinds
// to TypeScript's overlapping value/type/namespace capability flags that a
// single declaration-merged symbol may carry at once (spec.md's "Polymorphic
// over the capability set").
package symbols

import (
	"github.com/arborlang/tscore/internal/ast"
	"github.com/arborlang/tscore/internal/types"
)

// Id is a 32-bit handle identifying a Symbol, matching types.SymbolId so the
// type interner's Reference/TypeQuery/Enum payloads can be resolved back to
// a Symbol through a Table without either package importing the other's
// concrete struct.
type Id = types.SymbolId

// Flags describe the capabilities a symbol carries. Declaration merging
// (an enum also acting as a namespace, a class also naming a type) is real
// in TypeScript, so these are bits, not a single enum, mirroring funxy's
// comment that "a single symbol may carry several capabilities."
type Flags uint32

const (
	FlagVariable Flags = 1 << iota
	FlagFunction
	FlagClass
	FlagInterface
	FlagTypeAlias
	FlagEnum
	FlagEnumMember
	FlagNamespace
	FlagParameter
	FlagProperty
	FlagMethod
	FlagConstructor
	FlagTypeParameter
	FlagAlias // import alias / re-export
	FlagConst // `const` binding; drives the narrower's closure-capture rule
)

func (f Flags) Has(o Flags) bool { return f&o != 0 }

// ImportInfo records module-resolution metadata for an aliased/imported
// symbol. The binder is the only writer; the CORE never chases re-export
// chains itself (spec.md §1 scope).
type ImportInfo struct {
	ModuleSpecifier string
	ImportedName    string
	TypeOnly        bool
}

// Symbol is the unit the binder hands to the CORE. Only the fields spec.md
// §3.2 names are here; the CORE treats everything else as none of its
// business.
type Symbol struct {
	ID              Id
	Name            string
	Flags           Flags
	Declarations    []ast.Node
	ValueDecl       ast.Node // first value-bearing declaration, may be nil
	Parent          Id       // invalidId when top-level
	Members         map[string]Id
	Exports         map[string]Id
	Import          *ImportInfo
	DeclaredType    types.TypeId // cached lazily by the checker; invalid until computed
	TypeComputed    bool
	ComputingType   bool // cycle guard for lazy declared-type computation
}

const invalidId Id = 0

// Table is the binder's symbol store: an append-only slice indexed by Id,
// plus the scope chain used to resolve identifiers during binding. Only
// internal/binder adds symbols; the checker writes back nothing but a
// symbol's lazily computed DeclaredType/TypeComputed/ComputingType fields.
type Table struct {
	symbols []Symbol // index 0 unused
	scopes  []*Scope
}

func NewTable() *Table {
	return &Table{symbols: make([]Symbol, 1)}
}

func (t *Table) Get(id Id) *Symbol {
	if int(id) <= 0 || int(id) >= len(t.symbols) {
		return nil
	}
	return &t.symbols[id]
}

// Declare creates a fresh symbol and returns its Id.
func (t *Table) Declare(name string, flags Flags, parent Id) Id {
	id := Id(len(t.symbols))
	t.symbols = append(t.symbols, Symbol{
		ID: id, Name: name, Flags: flags, Parent: parent,
		Members: make(map[string]Id), Exports: make(map[string]Id),
	})
	return id
}

// AddDeclaration appends a declaration site to a symbol, matching funxy's
// symbol-table pattern of accumulating merged declarations rather than
// rejecting a second one outright (declaration merging is legal for
// interfaces, namespaces, and enums).
func (t *Table) AddDeclaration(id Id, n ast.Node, isValue bool) {
	s := t.Get(id)
	if s == nil {
		return
	}
	s.Declarations = append(s.Declarations, n)
	if isValue && s.ValueDecl == nil {
		s.ValueDecl = n
	}
}

// Scope is one level of the lexical scope chain built during binding.
type Scope struct {
	Parent  *Scope
	Names   map[string]Id
	Kind    ScopeKind
}

type ScopeKind int

const (
	ScopeGlobal ScopeKind = iota
	ScopeFunction
	ScopeBlock
)

func NewScope(parent *Scope, kind ScopeKind) *Scope {
	return &Scope{Parent: parent, Names: make(map[string]Id), Kind: kind}
}

func (s *Scope) Define(name string, id Id) { s.Names[name] = id }

// Resolve looks a name up through the scope chain, outermost last.
func (s *Scope) Resolve(name string) (Id, bool) {
	for cur := s; cur != nil; cur = cur.Parent {
		if id, ok := cur.Names[name]; ok {
			return id, true
		}
	}
	return 0, false
}
