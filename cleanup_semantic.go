package symdmp

// DiffCleanupSemantic reduces the number of edits by eliminating
// semantically trivial equalities: an equality no larger than the edits
// flanking it on either side is folded into an adjacent delete+insert pair.
func (config *Config[T]) DiffCleanupSemantic(diffs []Diff[T]) []Diff[T] {
	changes := false
	equalities := make([]int, 0, len(diffs))
	var lastEquality []Symbol[T]
	pointer := 0
	var lenIns1, lenDel1, lenIns2, lenDel2 int
	for pointer < len(diffs) {
		if diffs[pointer].Op == OpEqual {
			equalities = append(equalities, pointer)
			lenIns1, lenDel1 = lenIns2, lenDel2
			lenIns2, lenDel2 = 0, 0
			lastEquality = diffs[pointer].Symbols
		} else {
			if diffs[pointer].Op == OpInsert {
				lenIns2 += len(diffs[pointer].Symbols)
			} else {
				lenDel2 += len(diffs[pointer].Symbols)
			}
			diff1 := max(lenIns1, lenDel1)
			diff2 := max(lenIns2, lenDel2)
			if len(lastEquality) > 0 && len(lastEquality) <= diff1 && len(lastEquality) <= diff2 {
				insPoint := equalities[len(equalities)-1]
				diffs = splice(diffs, insPoint, 0, Diff[T]{OpDelete, cloneSymbols(lastEquality)})
				diffs[insPoint+1].Op = OpInsert
				equalities = equalities[:len(equalities)-1]
				if len(equalities) > 0 {
					equalities = equalities[:len(equalities)-1]
				}
				pointer = -1
				if len(equalities) > 0 {
					pointer = equalities[len(equalities)-1]
				}
				lenIns1, lenDel1, lenIns2, lenDel2 = 0, 0, 0, 0
				lastEquality = nil
				changes = true
			}
		}
		pointer++
	}
	if changes {
		diffs = config.DiffCleanupMerge(diffs)
	}
	diffs = config.DiffCleanupSemanticLossless(diffs)
	// Find overlaps between adjacent deletions and insertions, e.g.
	// DEL"abcxxx" INS"xxxdef" -> DEL"abc" EQUAL"xxx" INS"def", only
	// extracted when the overlap is at least half of either side.
	pointer = 1
	for pointer < len(diffs) {
		if diffs[pointer-1].Op == OpDelete && diffs[pointer].Op == OpInsert {
			deletion := diffs[pointer-1].Symbols
			insertion := diffs[pointer].Symbols
			overlap1 := config.diffCommonOverlap(deletion, insertion)
			overlap2 := config.diffCommonOverlap(insertion, deletion)
			if overlap1 >= overlap2 {
				if float64(overlap1) >= float64(len(deletion))/2 || float64(overlap1) >= float64(len(insertion))/2 {
					overlapEq := Diff[T]{OpEqual, cloneSymbols(insertion[:overlap1])}
					diffs = splice(diffs, pointer, 0, overlapEq)
					diffs[pointer-1].Symbols = deletion[:len(deletion)-overlap1]
					diffs[pointer+1].Symbols = insertion[overlap1:]
					pointer++
				}
			} else {
				if float64(overlap2) >= float64(len(deletion))/2 || float64(overlap2) >= float64(len(insertion))/2 {
					overlapEq := Diff[T]{OpEqual, cloneSymbols(deletion[:overlap2])}
					diffs = splice(diffs, pointer, 0, overlapEq)
					diffs[pointer-1].Op = OpInsert
					diffs[pointer-1].Symbols = insertion[:len(insertion)-overlap2]
					diffs[pointer+1].Op = OpDelete
					diffs[pointer+1].Symbols = deletion[overlap2:]
					pointer++
				}
			}
			pointer++
		}
		pointer++
	}
	return diffs
}

// diffCommonOverlap returns the length of the longest suffix of a that is
// also a prefix of b.
func (config *Config[T]) diffCommonOverlap(a, b []Symbol[T]) int {
	aLen, bLen := len(a), len(b)
	if aLen == 0 || bLen == 0 {
		return 0
	}
	if aLen > bLen {
		a = a[aLen-bLen:]
	} else if aLen < bLen {
		b = b[:aLen]
	}
	textLen := min(aLen, bLen)
	if symbolsEqual(a, b) {
		return textLen
	}
	best := 0
	length := 1
	for {
		pattern := a[textLen-length:]
		found := symbolsIndex(b, pattern)
		if found == -1 {
			break
		}
		length += found
		if found == 0 || symbolsEqual(a[textLen-length:], b[:length]) {
			best = length
			length++
		}
	}
	return best
}
