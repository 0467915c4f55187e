package symdmp

// DiffCleanupSemanticLossless looks for single edits surrounded on both
// sides by equalities and shifts symbols across the boundary, one symbol at
// a time, to align the edit to a more natural break — without changing the
// applied text. Per spec.md §4.C this operates symbol by symbol (unlike the
// teacher's rune-by-rune text shift), using BoundaryScore to pick the
// placement that maximizes the sum of the two adjacent boundary scores.
// Ties keep the later position, biasing whitespace to the end of edits.
func (config *Config[T]) DiffCleanupSemanticLossless(diffs []Diff[T]) []Diff[T] {
	codec := config.Codec
	pointer := 1
	for pointer < len(diffs)-1 {
		if diffs[pointer-1].Op == OpEqual && diffs[pointer+1].Op == OpEqual {
			equality1 := diffs[pointer-1].Symbols
			edit := diffs[pointer].Symbols
			equality2 := diffs[pointer+1].Symbols

			// First, shift the edit as far left as possible: the
			// edit's common suffix with equality1 can move wholesale.
			commonOffset := commonSuffixLength(equality1, edit)
			if commonOffset > 0 {
				common := edit[len(edit)-commonOffset:]
				equality1 = equality1[:len(equality1)-commonOffset]
				edit = append(cloneSymbols(common), edit[:len(edit)-commonOffset]...)
				equality2 = append(cloneSymbols(common), equality2...)
			}

			// Then step symbol by symbol to the right, looking for
			// the best-scoring placement.
			bestEquality1, bestEdit, bestEquality2 := equality1, edit, equality2
			bestScore := tripleBoundaryScore(codec, equality1, edit, equality2)
			for len(edit) != 0 && len(equality2) != 0 && edit[0] == equality2[0] {
				equality1 = append(cloneSymbols(equality1), edit[0])
				edit = append(cloneSymbols(edit[1:]), equality2[0])
				equality2 = equality2[1:]
				score := tripleBoundaryScore(codec, equality1, edit, equality2)
				if score >= bestScore {
					bestScore = score
					bestEquality1, bestEdit, bestEquality2 = equality1, edit, equality2
				}
			}

			if !symbolsEqual(diffs[pointer-1].Symbols, bestEquality1) {
				if len(bestEquality1) != 0 {
					diffs[pointer-1].Symbols = bestEquality1
				} else {
					diffs = splice(diffs, pointer-1, 1)
					pointer--
				}
				diffs[pointer].Symbols = bestEdit
				if len(bestEquality2) != 0 {
					diffs[pointer+1].Symbols = bestEquality2
				} else {
					diffs = append(diffs[:pointer+1], diffs[pointer+2:]...)
					pointer--
				}
			}
		}
		pointer++
	}
	return diffs
}

// tripleBoundaryScore scores the two internal boundaries of an
// equality/edit/equality triple.
func tripleBoundaryScore[T comparable](codec Codec[T], equality1, edit, equality2 []Symbol[T]) int {
	var s1, s2 int
	if len(equality1) != 0 && len(edit) != 0 {
		s1 = equality1[len(equality1)-1].BoundaryScore(edit[0], codec)
	} else {
		s1 = 5
	}
	if len(edit) != 0 && len(equality2) != 0 {
		s2 = edit[len(edit)-1].BoundaryScore(equality2[0], codec)
	} else {
		s2 = 5
	}
	return s1 + s2
}
