package symdmp

// DiffCleanupMerge reorders and merges like edit sections. Any edit section
// can move as long as it doesn't cross an equality. After this pass, no two
// adjacent diffs share an operation, no diff is empty, and equalities on
// either end of a merged run have been factored out.
func (config *Config[T]) DiffCleanupMerge(diffs []Diff[T]) []Diff[T] {
	// Add a dummy entry at the end.
	diffs = append(diffs, Diff[T]{OpEqual, nil})
	pointer := 0
	countDelete, countInsert := 0, 0
	var textDelete, textInsert []Symbol[T]
	for pointer < len(diffs) {
		switch diffs[pointer].Op {
		case OpInsert:
			countInsert++
			textInsert = append(textInsert, diffs[pointer].Symbols...)
			pointer++
		case OpDelete:
			countDelete++
			textDelete = append(textDelete, diffs[pointer].Symbols...)
			pointer++
		case OpEqual:
			if countDelete+countInsert > 1 {
				if countDelete != 0 && countInsert != 0 {
					commonLen := commonPrefixLength(textInsert, textDelete)
					if commonLen != 0 {
						x := pointer - countDelete - countInsert
						if x > 0 && diffs[x-1].Op == OpEqual {
							diffs[x-1].Symbols = append(diffs[x-1].Symbols, textInsert[:commonLen]...)
						} else {
							diffs = append([]Diff[T]{{OpEqual, cloneSymbols(textInsert[:commonLen])}}, diffs...)
							pointer++
						}
						textInsert = textInsert[commonLen:]
						textDelete = textDelete[commonLen:]
					}
					commonLen = commonSuffixLength(textInsert, textDelete)
					if commonLen != 0 {
						insertIdx := len(textInsert) - commonLen
						deleteIdx := len(textDelete) - commonLen
						diffs[pointer].Symbols = append(cloneSymbols(textInsert[insertIdx:]), diffs[pointer].Symbols...)
						textInsert = textInsert[:insertIdx]
						textDelete = textDelete[:deleteIdx]
					}
				}
				switch {
				case len(textDelete) == 0 && len(textInsert) == 0:
					diffs = splice(diffs, pointer-countDelete-countInsert, countDelete+countInsert)
				case len(textDelete) == 0:
					diffs = splice(diffs, pointer-countDelete-countInsert, countDelete+countInsert,
						Diff[T]{OpInsert, cloneSymbols(textInsert)})
				case len(textInsert) == 0:
					diffs = splice(diffs, pointer-countDelete-countInsert, countDelete+countInsert,
						Diff[T]{OpDelete, cloneSymbols(textDelete)})
				default:
					diffs = splice(diffs, pointer-countDelete-countInsert, countDelete+countInsert,
						Diff[T]{OpDelete, cloneSymbols(textDelete)},
						Diff[T]{OpInsert, cloneSymbols(textInsert)})
				}
				// Land on the equality again so it merges with a preceding one.
				pointer = pointer - countDelete - countInsert
				if len(textDelete) != 0 {
					pointer++
				}
				if len(textInsert) != 0 {
					pointer++
				}
			} else if pointer != 0 && diffs[pointer-1].Op == OpEqual {
				diffs[pointer-1].Symbols = append(diffs[pointer-1].Symbols, diffs[pointer].Symbols...)
				diffs = append(diffs[:pointer], diffs[pointer+1:]...)
			} else {
				pointer++
			}
			countInsert, countDelete = 0, 0
			textDelete, textInsert = nil, nil
		}
	}
	if len(diffs[len(diffs)-1].Symbols) == 0 {
		diffs = diffs[:len(diffs)-1] // Remove the dummy entry at the end.
	}
	// Second pass: shift single edits sideways across an adjacent equality
	// when doing so eliminates that equality entirely.
	changes := false
	pointer = 1
	for pointer < len(diffs)-1 {
		if diffs[pointer-1].Op == OpEqual && diffs[pointer+1].Op == OpEqual {
			if hasSuffix(diffs[pointer].Symbols, diffs[pointer-1].Symbols) {
				prev := diffs[pointer-1].Symbols
				edit := diffs[pointer].Symbols
				diffs[pointer].Symbols = append(cloneSymbols(prev), edit[:len(edit)-len(prev)]...)
				diffs[pointer+1].Symbols = append(cloneSymbols(prev), diffs[pointer+1].Symbols...)
				diffs = splice(diffs, pointer-1, 1)
				changes = true
			} else if hasPrefix(diffs[pointer].Symbols, diffs[pointer+1].Symbols) {
				next := diffs[pointer+1].Symbols
				diffs[pointer-1].Symbols = append(diffs[pointer-1].Symbols, next...)
				diffs[pointer].Symbols = append(cloneSymbols(diffs[pointer].Symbols[len(next):]), next...)
				diffs = splice(diffs, pointer+1, 1)
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
