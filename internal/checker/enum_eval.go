package checker

import "github.com/arborlang/tscore/internal/ast"

// evalEnumConstant evaluates an enum member initializer to a numeric
// constant, supporting the small constant-expression grammar enum members
// are allowed to use: numeric literals, unary +/-/~, and the arithmetic/
// bitwise binary operators, each operand recursively constant.
func evalEnumConstant(e ast.Expression) (float64, bool) {
	switch n := e.(type) {
	case *ast.NumberLiteral:
		return n.Value, true
	case *ast.ParenExpression:
		return evalEnumConstant(n.Inner)
	case *ast.PrefixExpression:
		v, ok := evalEnumConstant(n.Right)
		if !ok {
			return 0, false
		}
		switch n.Operator {
		case "-":
			return -v, true
		case "+":
			return v, true
		case "~":
			return float64(^int64(v)), true
		}
		return 0, false
	case *ast.InfixExpression:
		l, ok := evalEnumConstant(n.Left)
		if !ok {
			return 0, false
		}
		r, ok := evalEnumConstant(n.Right)
		if !ok {
			return 0, false
		}
		switch n.Operator {
		case "+":
			return l + r, true
		case "-":
			return l - r, true
		case "*":
			return l * r, true
		case "/":
			if r == 0 {
				return 0, false
			}
			return l / r, true
		case "%":
			if r == 0 {
				return 0, false
			}
			li, ri := int64(l), int64(r)
			return float64(li % ri), true
		case "|":
			return float64(int64(l) | int64(r)), true
		case "&":
			return float64(int64(l) & int64(r)), true
		case "^":
			return float64(int64(l) ^ int64(r)), true
		case "<<":
			return float64(int64(l) << uint(int64(r))), true
		case ">>":
			return float64(int64(l) >> uint(int64(r))), true
		case ">>>":
			return float64(uint32(int64(l)) >> uint(int64(r))), true
		case "**":
			res := 1.0
			for i := 0; i < int(r); i++ {
				res *= l
			}
			return res, true
		}
	}
	return 0, false
}

// enumMemberValues computes each member's literal value, threading the
// autoincrement counter across members with no explicit initializer (after
// an explicit constant initializer the counter continues from that value
// plus one, matching the TypeScript enum evaluation rule). A member whose
// initializer is not a numeric constant gets no entry.
func enumMemberValues(d *ast.EnumDecl) map[*ast.EnumMember]float64 {
	out := make(map[*ast.EnumMember]float64, len(d.Members))
	next := 0.0
	for _, m := range d.Members {
		if m.Init != nil {
			if v, ok := evalEnumConstant(m.Init); ok {
				out[m] = v
				next = v + 1
				continue
			}
			continue
		}
		out[m] = next
		next++
	}
	return out
}
