package relation

import "github.com/arborlang/tscore/internal/types"

// checkObjectProps implements spec.md §4.R.2: for every target property,
// locate a matching source property (falling back to an index signature),
// compare read types covariantly and (for a writable target) write types
// contravariantly, and enforce the visibility/readonly rules. Index
// signatures on the target must in turn accept every source member.
func (e *Engine) checkObjectProps(sProps []types.Property, sIdx indexPair, tProps []types.Property, tStr, tNum *types.IndexSig, m mode, visited visitedSet) bool {
	sByName := make(map[string]types.Property, len(sProps))
	for _, p := range sProps {
		sByName[p.Name] = p
	}

	for _, tp := range tProps {
		sp, found := sByName[tp.Name]
		if !found {
			if idx := matchingIndex(tp.Name, sIdx); idx != nil {
				if !e.check(idx.Value, tp.Type, m, visited) {
					return false
				}
				continue
			}
			if tp.Optional {
				continue
			}
			return false
		}

		if !e.check(sp.Type, tp.Type, m, visited) {
			return false
		}
		if !tp.Readonly {
			if !e.check(tp.WriteType, sp.WriteType, m, visited) {
				return false
			}
		}
		if tp.Visibility != types.Public && sp.DeclaringSym != tp.DeclaringSym {
			return false
		}
		if sp.Readonly && !tp.Readonly {
			return false
		}
	}

	if tStr != nil {
		for _, sp := range sProps {
			if !e.check(sp.Type, tStr.Value, m, visited) {
				return false
			}
		}
		if sIdx.str != nil && !e.check(sIdx.str.Value, tStr.Value, m, visited) {
			return false
		}
	}
	if tNum != nil {
		for _, sp := range sProps {
			if !isNumericPropertyName(sp.Name) {
				continue
			}
			if !e.check(sp.Type, tNum.Value, m, visited) {
				return false
			}
		}
	}
	return true
}

func matchingIndex(name string, idx indexPair) *types.IndexSig {
	if isNumericPropertyName(name) && idx.num != nil {
		return idx.num
	}
	return idx.str
}

func isNumericPropertyName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
