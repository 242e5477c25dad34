// Package diagnostics defines the CORE's diagnostic value type. funxy's
// analyzer imports a sibling `diagnostics` package for exactly this purpose
// (DiagnosticError carrying a code and a position) but that package was not
// part of the retrieved reference material; this rebuilds it from its call
// sites (`inferErrorf`-style helpers throughout funxy's analyzer) in the
// same spirit: a typed value, never a bare string, so the checker driver
// can sort/dedupe/suppress without re-parsing messages.
package diagnostics

import (
	"fmt"

	"github.com/arborlang/tscore/internal/token"
)

// Code is one of the stable, disjoint diagnostic codes spec.md §6 lists.
type Code int

const (
	AssignmentMismatch   Code = 2322
	ArgumentMismatch     Code = 2345
	PropertyMissing      Code = 2339
	NotComparable        Code = 2367
	InvalidThisContext   Code = 2684
	InvalidIndexType     Code = 2538
	ImplicitAnyParameter Code = 7006
	ImplicitAnyVariable  Code = 7010
	ImplicitAnyReturn    Code = 7011
	UnresolvedReference  Code = 2304
	PossiblyNullObject   Code = 2532
	InternalError        Code = 9999
)

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeveritySuggestion
)

// RelatedSpan attaches a secondary position to a diagnostic (e.g. "property
// declared here").
type RelatedSpan struct {
	Pos     token.Position
	Message string
}

// Diagnostic is a single reported finding. Severity and Code never change
// after construction; formatting to text is a consumer's job, not the
// CORE's (spec.md §1 explicitly places diagnostic formatting out of scope).
type Diagnostic struct {
	Code     Code
	Severity Severity
	Pos      token.Position
	Message  string
	Related  []RelatedSpan
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: TS%d: %s", d.Pos, int(d.Code), d.Message)
}

func New(code Code, pos token.Position, format string, args ...interface{}) Diagnostic {
	return Diagnostic{Code: code, Severity: SeverityError, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// Bag collects diagnostics for one file, deduplicating by (code, position)
// per spec.md §7 propagation policy ("one diagnostic per distinct (code,
// primary span) pair per file").
type Bag struct {
	list []Diagnostic
	seen map[dedupeKey]bool
}

type dedupeKey struct {
	code Code
	pos  token.Position
}

func NewBag() *Bag { return &Bag{seen: make(map[dedupeKey]bool)} }

func (b *Bag) Add(d Diagnostic) {
	k := dedupeKey{d.Code, d.Pos}
	if b.seen[k] {
		return
	}
	b.seen[k] = true
	b.list = append(b.list, d)
}

// Sorted returns diagnostics ordered by source position, the ordering
// guarantee spec.md §6 requires of CORE output.
func (b *Bag) Sorted() []Diagnostic {
	out := append([]Diagnostic(nil), b.list...)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && less(out[j], out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func less(a, b Diagnostic) bool {
	if a.Pos.Line != b.Pos.Line {
		return a.Pos.Line < b.Pos.Line
	}
	if a.Pos.Column != b.Pos.Column {
		return a.Pos.Column < b.Pos.Column
	}
	return a.Code < b.Code
}
