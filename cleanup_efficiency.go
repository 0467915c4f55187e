package symdmp

// DiffCleanupEfficiency reduces the number of edits by eliminating
// operationally trivial equalities: one shorter than config.DiffEditCost
// symbols, flanked by edits on both sides, is folded away to promote a
// merge even though it is not semantically redundant.
func (config *Config[T]) DiffCleanupEfficiency(diffs []Diff[T]) []Diff[T] {
	changes := false
	type equality struct {
		data int
		next *equality
	}
	var equalities *equality
	var lastEquality []Symbol[T]
	pointer := 0
	preIns, preDel, postIns, postDel := false, false, false, false
	for pointer < len(diffs) {
		if diffs[pointer].Op == OpEqual {
			if len(diffs[pointer].Symbols) < config.DiffEditCost && (postIns || postDel) {
				equalities = &equality{data: pointer, next: equalities}
				preIns, preDel = postIns, postDel
				lastEquality = diffs[pointer].Symbols
			} else {
				equalities = nil
				lastEquality = nil
			}
			postIns, postDel = false, false
		} else {
			if diffs[pointer].Op == OpDelete {
				postDel = true
			} else {
				postIns = true
			}
			var sumPres int
			if preIns {
				sumPres++
			}
			if preDel {
				sumPres++
			}
			if postIns {
				sumPres++
			}
			if postDel {
				sumPres++
			}
			if len(lastEquality) > 0 &&
				((preIns && preDel && postIns && postDel) ||
					(len(lastEquality) < config.DiffEditCost/2 && sumPres == 3)) {
				insPoint := equalities.data
				diffs = splice(diffs, insPoint, 0, Diff[T]{OpDelete, cloneSymbols(lastEquality)})
				diffs[insPoint+1].Op = OpInsert
				equalities = equalities.next
				lastEquality = nil
				if preIns && preDel {
					postIns, postDel = true, true
					equalities = nil
				} else {
					if equalities != nil {
						equalities = equalities.next
					}
					if equalities != nil {
						pointer = equalities.data
					} else {
						pointer = -1
					}
					postIns, postDel = false, false
				}
				changes = true
			}
		}
		pointer++
	}
	if changes {
		diffs = config.DiffCleanupMerge(diffs)
	}
	return diffs
}
