// Package facts implements the small, pure, stateless predicates spec.md
// §4.F calls out as the narrower's building blocks. Grounded on funxy's
// analyzer/helpers.go and declarations_helpers.go, which keep exactly this
// kind of side-effect-free AST inspection (literal detection, parenthesis
// stripping) separate from the stateful walker.
package facts

import (
	"strconv"

	"github.com/arborlang/tscore/internal/ast"
	"github.com/arborlang/tscore/internal/symbols"
	"github.com/arborlang/tscore/internal/types"
)

// SkipTrivia strips parentheses and non-null/as/satisfies assertions to
// reach the expression a narrowing or reference check should actually
// reason about.
func SkipTrivia(expr ast.Expression) ast.Expression {
	for {
		switch e := expr.(type) {
		case *ast.ParenExpression:
			expr = e.Inner
		case *ast.NonNullExpression:
			expr = e.Inner
		case *ast.AsExpression:
			expr = e.Inner
		default:
			return expr
		}
	}
}

// IsMatchingReference implements spec.md §4.N's reference-identity rules:
// same identifier symbol; matching property-access chains; matching
// element accesses with equal literal keys. refs is the binder's
// identifier-to-symbol map.
func IsMatchingReference(a, b ast.Expression, refs map[*ast.Identifier]symbols.Id) bool {
	a, b = SkipTrivia(a), SkipTrivia(b)

	switch av := a.(type) {
	case *ast.Identifier:
		bv, ok := b.(*ast.Identifier)
		if !ok {
			return false
		}
		aid, aok := refs[av]
		bid, bok := refs[bv]
		if aok && bok {
			return aid == bid
		}
		return av.Value == bv.Value

	case *ast.MemberExpression:
		bv, ok := b.(*ast.MemberExpression)
		if !ok {
			return false
		}
		return av.Property.Value == bv.Property.Value && IsMatchingReference(av.Object, bv.Object, refs)

	case *ast.IndexExpression:
		bv, ok := b.(*ast.IndexExpression)
		if !ok {
			return false
		}
		if !IsMatchingReference(av.Object, bv.Object, refs) {
			return false
		}
		al, aok := literalKey(av.Index)
		bl, bok := literalKey(bv.Index)
		return aok && bok && al == bl
	}
	return false
}

// RootIdentifier returns the identifier at the base of a reference chain
// (`x`, `x.y`, `x[0].z`), skipping trivia at each step, or nil if the chain
// does not bottom out in a plain identifier (e.g. `this`).
func RootIdentifier(expr ast.Expression) *ast.Identifier {
	expr = SkipTrivia(expr)
	switch e := expr.(type) {
	case *ast.Identifier:
		return e
	case *ast.MemberExpression:
		return RootIdentifier(e.Object)
	case *ast.IndexExpression:
		return RootIdentifier(e.Object)
	}
	return nil
}

// IsConstReference reports whether the reference's root binding is a
// `const` variable, per spec.md §9's closure-capture rule ("const...
// retain narrowings obtained in the enclosing scope up to the closure's
// creation point"). A property or element access rooted at a const
// binding is const by the same rule, since TypeScript tracks readonly-ness
// of the path through the base reference's immutability.
func IsConstReference(expr ast.Expression, refs map[*ast.Identifier]symbols.Id, table *symbols.Table) bool {
	root := RootIdentifier(expr)
	if root == nil {
		return false
	}
	sid, ok := refs[root]
	if !ok {
		return false
	}
	sym := table.Get(sid)
	return sym != nil && sym.Flags.Has(symbols.FlagConst)
}

func literalKey(expr ast.Expression) (string, bool) {
	switch e := SkipTrivia(expr).(type) {
	case *ast.StringLiteral:
		return "s:" + e.Value, true
	case *ast.NumberLiteral:
		return "n:" + strconv.FormatFloat(e.Value, 'g', -1, 64), true
	}
	return "", false
}

// LiteralValue returns the interned literal type the expression denotes, if
// it is a literal or a directly typed literal-producing expression
// (spec.md §4.F).
func LiteralValue(in *types.Interner, expr ast.Expression) (types.TypeId, bool) {
	switch e := SkipTrivia(expr).(type) {
	case *ast.StringLiteral:
		return in.LiteralString(e.Value), true
	case *ast.NumberLiteral:
		return in.LiteralNumber(e.Value), true
	case *ast.BigIntLiteral:
		return in.LiteralBigInt(e.Value), true
	case *ast.BoolLiteral:
		return in.LiteralBoolean(e.Value), true
	case *ast.NullLiteral:
		return types.NULL, true
	case *ast.UndefinedLiteral:
		return types.UNDEFINED, true
	case *ast.PrefixExpression:
		if e.Operator == "-" {
			if n, ok := SkipTrivia(e.Right).(*ast.NumberLiteral); ok {
				return in.LiteralNumber(-n.Value), true
			}
		}
	}
	return 0, false
}

// PredicateSignature returns the unique type-predicate carried by a
// callable type's call signatures, if there is exactly one call signature
// and it declares one.
func PredicateSignature(in *types.Interner, calleeType types.TypeId) (*types.Predicate, bool) {
	c, ok := in.AsCallable(calleeType)
	if !ok || len(c.Calls) != 1 {
		return nil, false
	}
	p := c.Calls[0].Predicate
	if p == nil {
		return nil, false
	}
	return p, true
}

// PropertyPresence classifies whether key is guaranteed present, possibly
// present, definitely absent, or indeterminate (e.g. unknown/any) on typ.
type Presence uint8

const (
	Absent Presence = iota
	Required
	Optional
	Unknown
)

func PropertyPresence(in *types.Interner, typ types.TypeId, key string) Presence {
	if typ == types.ANY || typ == types.UNKNOWN {
		return Unknown
	}
	if o, ok := in.AsObject(typ); ok {
		idx := in.PropertyIndex(typ)
		if i, found := idx[key]; found {
			if o.Props[i].Optional {
				return Optional
			}
			return Required
		}
		if o.StringIndex != nil {
			return Optional
		}
		return Absent
	}
	if c, ok := in.AsCallable(typ); ok {
		for _, p := range c.Props {
			if p.Name == key {
				if p.Optional {
					return Optional
				}
				return Required
			}
		}
		return Absent
	}
	return Absent
}
