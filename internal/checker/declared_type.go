package checker

import (
	"github.com/arborlang/tscore/internal/ast"
	"github.com/arborlang/tscore/internal/diagnostics"
	"github.com/arborlang/tscore/internal/symbols"
	"github.com/arborlang/tscore/internal/token"
	"github.com/arborlang/tscore/internal/types"
)

// declaredTypeOf computes (and caches) a symbol's declared type, with a
// cycle guard matching the Symbol.ComputingType field spec.md §3.2 reserves
// for exactly this: a self-referential type alias reports an error instead
// of recursing forever.
func (c *Checker) declaredTypeOf(id symbols.Id) (types.TypeId, bool) {
	s := c.table.Get(id)
	if s == nil {
		return 0, false
	}
	if s.TypeComputed {
		return s.DeclaredType, true
	}
	if s.ComputingType {
		c.diags.Add(diagnostics.New(diagnostics.InternalError, pos(firstDecl(s)), "%q circularly references itself", s.Name))
		return types.ERROR, true
	}
	s.ComputingType = true
	defer func() { s.ComputingType = false }()

	result := c.computeDeclaredType(s)
	s.DeclaredType = result
	s.TypeComputed = true
	return result, true
}

func firstDecl(s *symbols.Symbol) ast.Node {
	if len(s.Declarations) > 0 {
		return s.Declarations[0]
	}
	return nil
}

func (c *Checker) computeDeclaredType(s *symbols.Symbol) types.TypeId {
	if s.Flags.Has(symbols.FlagInterface) {
		return c.computeInterfaceType(s)
	}
	if s.Flags.Has(symbols.FlagEnumMember) {
		return c.computeEnumMemberType(s)
	}

	for _, decl := range s.Declarations {
		switch d := decl.(type) {
		case *ast.VarDecl:
			return c.computeVarType(d)
		case *ast.FunctionDecl:
			return c.computeFunctionType(d)
		case *ast.Param:
			return c.computeParamType(d)
		case *ast.TypeAliasDecl:
			return c.computeAliasType(d)
		case *ast.EnumDecl:
			return c.computeEnumType(s, d)
		}
	}
	return types.ERROR
}

// computeEnumMemberType resolves a single enum member's literal type,
// evaluating autoincrement and constant expressions across all of that
// member's siblings the way computeEnumType determines the enum's base kind.
func (c *Checker) computeEnumMemberType(s *symbols.Symbol) types.TypeId {
	parent := c.table.Get(s.Parent)
	if parent == nil {
		return types.ERROR
	}
	for _, decl := range parent.Declarations {
		d, ok := decl.(*ast.EnumDecl)
		if !ok {
			continue
		}
		values := enumMemberValues(d)
		for _, m := range d.Members {
			if m.Name.Value != s.Name {
				continue
			}
			if str, ok := m.Init.(*ast.StringLiteral); ok {
				return c.in.LiteralString(str.Value)
			}
			if v, ok := values[m]; ok {
				return c.in.LiteralNumber(v)
			}
			return types.NUMBER
		}
	}
	return types.NUMBER
}

func (c *Checker) computeVarType(d *ast.VarDecl) types.TypeId {
	if d.Annot != nil {
		return c.buildType(d.Annot)
	}
	if d.Init == nil {
		return types.ANY
	}
	init := c.inferExprNoNarrow(d.Init)
	if d.Const {
		return init
	}
	return c.widen(init)
}

func (c *Checker) computeParamType(d *ast.Param) types.TypeId {
	if d.Annot != nil {
		return c.buildType(d.Annot)
	}
	if c.opts.NoImplicitAny {
		c.diags.Add(diagnostics.New(diagnostics.ImplicitAnyParameter, pos(d.Name), "parameter %q implicitly has an 'any' type", d.Name.Value))
	}
	return types.ANY
}

func (c *Checker) computeFunctionType(d *ast.FunctionDecl) types.TypeId {
	sig := c.buildSignature(d.TypeParams, d.Params, d.ReturnType, d.Predicate, d.Body)
	return c.in.Callable(types.Callable{Calls: []types.Signature{sig}})
}

func (c *Checker) computeAliasType(d *ast.TypeAliasDecl) types.TypeId {
	c.pushTypeParams(d.TypeParams)
	defer c.popTypeParams()
	return c.buildType(d.Value)
}

func (c *Checker) computeInterfaceType(s *symbols.Symbol) types.TypeId {
	var allProps []types.Property
	seen := make(map[string]bool)
	for _, decl := range s.Declarations {
		d, ok := decl.(*ast.InterfaceDecl)
		if !ok {
			continue
		}
		c.pushTypeParams(d.TypeParams)
		for _, ext := range d.Extends {
			base := c.buildType(ext)
			if obj, ok := c.in.AsObject(base); ok {
				for _, p := range obj.Props {
					if !seen[p.Name] {
						seen[p.Name] = true
						allProps = append(allProps, p)
					}
				}
			}
		}
		obj := c.buildObjectType(d.Body)
		if o, ok := c.in.AsObject(obj); ok {
			for _, p := range o.Props {
				if !seen[p.Name] {
					seen[p.Name] = true
				} else {
					for i, ex := range allProps {
						if ex.Name == p.Name {
							allProps[i] = p
						}
					}
					continue
				}
				allProps = append(allProps, p)
			}
		}
		c.popTypeParams()
	}
	return c.in.Object(types.Object{Props: allProps, Flags: types.FlagInterface})
}

func (c *Checker) computeEnumType(s *symbols.Symbol, d *ast.EnumDecl) types.TypeId {
	base := types.NUMBER
	for _, m := range d.Members {
		if m.Init != nil {
			if str, ok := m.Init.(*ast.StringLiteral); ok {
				_ = str
				base = types.STRING
				break
			}
		}
	}
	return c.in.EnumType(types.SymbolId(s.ID), base)
}

// widen implements the "widened type of the initializer" rule for let/var:
// a literal widens to its base intrinsic, a union is widened member by
// member, and everything else is unchanged.
func (c *Checker) widen(t types.TypeId) types.TypeId {
	if lit, ok := c.in.AsLiteral(t); ok {
		return lit.Base()
	}
	if u, ok := c.in.AsUnion(t); ok {
		widened := make([]types.TypeId, len(u.Members))
		for i, m := range u.Members {
			widened[i] = c.widen(m)
		}
		return c.in.Union(widened)
	}
	return t
}

func pos(n ast.Node) token.Position {
	if n == nil {
		return token.Position{}
	}
	return n.GetToken().Pos
}
