package checker

import (
	"github.com/arborlang/tscore/internal/ast"
	"github.com/arborlang/tscore/internal/diagnostics"
	"github.com/arborlang/tscore/internal/types"
)

// checkStatement dispatches over every statement kind the surface grammar
// produces, in the order funxy's walker checks declarations (header first,
// then body) — the grammar here has no class declarations, so the
// constructor/method/field checks funxy's walker carries for those simply
// have no counterpart statement to dispatch on.
func (c *Checker) checkStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		c.checkVarDecl(s)
	case *ast.FunctionDecl:
		c.checkFunctionDecl(s)
	case *ast.BlockStatement:
		for _, st := range s.Body {
			c.checkStatement(st)
		}
	case *ast.ExpressionStatement:
		c.inferExpr(s.Expr)
	case *ast.ReturnStatement:
		c.checkReturn(s)
	case *ast.IfStatement:
		c.inferExpr(s.Condition)
		c.checkStatement(s.Consequence)
		if s.Alternative != nil {
			c.checkStatement(s.Alternative)
		}
	case *ast.WhileStatement:
		c.inferExpr(s.Condition)
		c.checkStatement(s.Body)
	case *ast.ForOfStatement:
		c.checkForOf(s)
	case *ast.InterfaceDecl:
		if sid, ok := c.bound.Binds[s]; ok {
			c.declaredTypeOf(sid)
		}
	case *ast.TypeAliasDecl:
		if sid, ok := c.bound.Binds[s]; ok {
			c.declaredTypeOf(sid)
		}
	case *ast.EnumDecl:
		c.checkEnumDecl(s)
	}
}

func (c *Checker) checkVarDecl(s *ast.VarDecl) {
	sid, ok := c.bound.Binds[s]
	if !ok {
		return
	}
	declared, ok := c.declaredTypeOf(sid)
	if !ok {
		return
	}
	if s.Annot != nil && s.Init != nil {
		initType := c.inferExpr(s.Init)
		if !c.rel.IsAssignable(initType, declared) {
			c.diags.Add(diagnostics.New(diagnostics.AssignmentMismatch, pos(s.Init),
				"type %q is not assignable to type %q", c.in.String(initType), c.in.String(declared)))
		}
		return
	}
	if s.Annot == nil && s.Init == nil && c.opts.NoImplicitAny {
		c.diags.Add(diagnostics.New(diagnostics.ImplicitAnyVariable, pos(s.Name),
			"variable %q implicitly has an 'any' type", s.Name.Value))
		return
	}
	if s.Init != nil {
		c.inferExpr(s.Init)
	}
}

func (c *Checker) checkFunctionDecl(s *ast.FunctionDecl) {
	sid, ok := c.bound.Binds[s]
	if !ok {
		return
	}
	declared, ok := c.declaredTypeOf(sid)
	if !ok || s.Body == nil {
		return
	}
	callable, ok := c.in.AsCallable(declared)
	ret := types.ANY
	if ok && len(callable.Calls) > 0 {
		ret = callable.Calls[0].Return
	}
	if s.ReturnType == nil && s.Predicate == nil && c.opts.NoImplicitAny && ret == types.ANY {
		c.diags.Add(diagnostics.New(diagnostics.ImplicitAnyReturn, pos(s.Name),
			"function %q implicitly has an 'any' return type", s.Name.Value))
	}
	c.returnStack = append(c.returnStack, ret)
	c.checkStatement(s.Body)
	c.returnStack = c.returnStack[:len(c.returnStack)-1]
}

func (c *Checker) checkReturn(s *ast.ReturnStatement) {
	var got types.TypeId = types.UNDEFINED
	if s.Value != nil {
		got = c.inferExpr(s.Value)
	}
	if len(c.returnStack) == 0 {
		return
	}
	want := c.returnStack[len(c.returnStack)-1]
	if want == types.ANY || want == types.VOID {
		return
	}
	if !c.rel.IsAssignable(got, want) {
		c.diags.Add(diagnostics.New(diagnostics.AssignmentMismatch, pos(s),
			"type %q is not assignable to the function's return type %q", c.in.String(got), c.in.String(want)))
	}
}

func (c *Checker) checkForOf(s *ast.ForOfStatement) {
	iterType := c.inferExpr(s.Iter)
	elem := types.ANY
	if arr, ok := c.in.AsArray(iterType); ok {
		elem = arr.Elem
	} else if tup, ok := c.in.AsTuple(iterType); ok {
		var members []types.TypeId
		for _, e := range tup.Elements {
			members = append(members, e.Type)
		}
		elem = c.in.Union(members)
	}
	if s.Annot != nil {
		annot := c.buildType(s.Annot)
		if !c.rel.IsAssignable(elem, annot) {
			c.diags.Add(diagnostics.New(diagnostics.AssignmentMismatch, pos(s.Binder),
				"type %q is not assignable to type %q", c.in.String(elem), c.in.String(annot)))
		}
	}
	c.checkStatement(s.Body)
}

// checkEnumDecl forces the enum symbol's own type and every member's
// literal type to be computed and cached even when nothing in the program
// reads the enum. The computation reports no diagnostic: a member whose
// initializer is neither a string literal nor a constant expression gets
// type number.
func (c *Checker) checkEnumDecl(s *ast.EnumDecl) {
	sid, ok := c.bound.Binds[s]
	if !ok {
		return
	}
	c.declaredTypeOf(sid)
	sym := c.table.Get(sid)
	if sym == nil {
		return
	}
	for _, mid := range sym.Members {
		c.declaredTypeOf(mid)
	}
}
