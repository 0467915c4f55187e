package symdmp

import (
	"regexp"
	"strconv"
	"strings"
)

var patchHeaderRE = regexp.MustCompile(`^@@ -(\d+),?(\d*) \+(\d+),?(\d*) @@$`)

// PatchString renders a patch in the GNU-diff-like textual format spec.md
// requires patch_to_text to emit: a "@@ -start1,len1 +start2,len2 @@" header
// (1-based, with the run length omitted when it is 1) followed by one
// percent-encoded line per diff, prefixed with '+', '-', or ' '.
func (config *Config[T]) PatchString(p Patch[T]) string {
	var coords1, coords2 string
	if p.Length1 == 0 {
		coords1 = strconv.Itoa(p.Start1) + ",0"
	} else if p.Length1 == 1 {
		coords1 = strconv.Itoa(p.Start1 + 1)
	} else {
		coords1 = strconv.Itoa(p.Start1+1) + "," + strconv.Itoa(p.Length1)
	}
	if p.Length2 == 0 {
		coords2 = strconv.Itoa(p.Start2) + ",0"
	} else if p.Length2 == 1 {
		coords2 = strconv.Itoa(p.Start2 + 1)
	} else {
		coords2 = strconv.Itoa(p.Start2+1) + "," + strconv.Itoa(p.Length2)
	}
	var buf strings.Builder
	buf.WriteString("@@ -" + coords1 + " +" + coords2 + " @@\n")
	for _, d := range p.Diffs {
		switch d.Op {
		case OpInsert:
			buf.WriteString("+")
		case OpDelete:
			buf.WriteString("-")
		case OpEqual:
			buf.WriteString(" ")
		}
		buf.WriteString(encodePayload(config.joinText(d.Symbols)))
		buf.WriteString("\n")
	}
	return buf.String()
}

// PatchAddContext grows a patch's rolling context window (against source)
// until the pattern it anchors on is unique in source, capped so the
// pattern never exceeds config.MatchMaxBits. It reports ErrOutOfRange if
// patch's declared span does not fit within source, which a patch
// round-tripped through PatchFromText and handed a mismatched source can
// trigger.
func (config *Config[T]) PatchAddContext(patch Patch[T], source []Symbol[T]) (Patch[T], error) {
	if len(source) == 0 {
		return patch, nil
	}
	if patch.Start2 < 0 || patch.Length1 < 0 || patch.Start2+patch.Length1 > len(source) {
		return patch, newError(ErrOutOfRange, "patch span exceeds source")
	}
	pattern := source[patch.Start2 : patch.Start2+patch.Length1]
	padding := 0
	// Look for the first and last matches of pattern in source. If two
	// different matches are found, widen the pattern.
	isUnique := func() bool {
		return symbolsIndex(source, pattern) == lastIndexFrom(source, pattern, len(source))
	}
	for !isUnique() && len(pattern) < config.MatchMaxBits-2*config.PatchMargin {
		padding += config.PatchMargin
		maxStart := max(0, patch.Start2-padding)
		minEnd := min(len(source), patch.Start2+patch.Length1+padding)
		pattern = source[maxStart:minEnd]
	}
	// Add one chunk for good luck.
	padding += config.PatchMargin
	prefix := source[max(0, patch.Start2-padding):patch.Start2]
	if len(prefix) != 0 {
		patch.Diffs = append([]Diff[T]{{OpEqual, cloneSymbols(prefix)}}, patch.Diffs...)
	}
	suffix := source[patch.Start2+patch.Length1 : min(len(source), patch.Start2+patch.Length1+padding)]
	if len(suffix) != 0 {
		patch.Diffs = append(patch.Diffs, Diff[T]{OpEqual, cloneSymbols(suffix)})
	}
	patch.Start1 -= len(prefix)
	patch.Start2 -= len(prefix)
	patch.Length1 += len(prefix) + len(suffix)
	patch.Length2 += len(prefix) + len(suffix)
	return patch, nil
}

// PatchMake computes the patches needed to turn source into target, or, if
// diffs is supplied directly (already computed against source), to apply
// that edit script. Exactly one of (source, target) or (source, diffs) or
// (diffs) must be meaningful per the overload picked:
//
//	PatchMake(diffs)            - source is recovered as DiffText1(diffs)
//	PatchMake(source, target)   - diffs are computed fresh
//	PatchMake(source, diffs)    - diffs already describe source -> target
func (config *Config[T]) PatchMake(source, target []Symbol[T], diffs []Diff[T]) []Patch[T] {
	switch {
	case diffs == nil && target == nil:
		diffs = nil
	case diffs == nil:
		diffs = config.DiffMain(source, target)
		if len(diffs) > 2 {
			diffs = config.DiffCleanupSemantic(diffs)
			diffs = config.DiffCleanupEfficiency(diffs)
		}
	case len(source) == 0:
		source = config.DiffText1(diffs)
	}
	return config.patchMake2(source, diffs)
}

// PatchMakeFromDiffs is PatchMake(nil, nil, diffs) with source recovered
// from the diffs themselves.
func (config *Config[T]) PatchMakeFromDiffs(diffs []Diff[T]) []Patch[T] {
	return config.patchMake2(config.DiffText1(diffs), diffs)
}

// mustAddContext calls PatchAddContext against prepatch, a slice patchMake2
// built by walking diffs alongside it, so patch's span is always provably
// within bounds; an ErrOutOfRange here would mean the accumulation loop
// above has a bug, not bad external input, so it panics rather than
// threading an error return through patchMake2's signature.
func mustAddContext[T comparable](config *Config[T], patch Patch[T], prepatch []Symbol[T]) Patch[T] {
	patch, err := config.PatchAddContext(patch, prepatch)
	if err != nil {
		panic(err)
	}
	return patch
}

// patchMake2 computes a list of patches to turn source into target. target
// is not provided; diffs are the delta between source and target.
func (config *Config[T]) patchMake2(source []Symbol[T], diffs []Diff[T]) []Patch[T] {
	var patches []Patch[T]
	if len(diffs) == 0 {
		return patches
	}
	var patch Patch[T]
	count1, count2 := 0, 0
	prepatch := source
	postpatch := cloneSymbols(source)
	for i, d := range diffs {
		if len(patch.Diffs) == 0 && d.Op != OpEqual {
			patch.Start1 = count1
			patch.Start2 = count2
		}
		switch d.Op {
		case OpInsert:
			patch.Diffs = append(patch.Diffs, d)
			patch.Length2 += len(d.Symbols)
			postpatch = concat(postpatch[:count2], concat(cloneSymbols(d.Symbols), postpatch[count2:]))
		case OpDelete:
			patch.Length1 += len(d.Symbols)
			patch.Diffs = append(patch.Diffs, d)
			postpatch = concat(postpatch[:count2], postpatch[count2+len(d.Symbols):])
		case OpEqual:
			if len(d.Symbols) <= 2*config.PatchMargin && len(patch.Diffs) != 0 && i != len(diffs)-1 {
				// Small equality inside a patch.
				patch.Diffs = append(patch.Diffs, d)
				patch.Length1 += len(d.Symbols)
				patch.Length2 += len(d.Symbols)
			}
			if len(d.Symbols) >= 2*config.PatchMargin {
				// Time for a new patch.
				if len(patch.Diffs) != 0 {
					patch = mustAddContext(config, patch, prepatch)
					patches = append(patches, patch)
					patch = Patch[T]{}
					// Unlike Unidiff, patch lists here carry a rolling context.
					prepatch = postpatch
					count1 = count2
				}
			}
		}
		if d.Op != OpInsert {
			count1 += len(d.Symbols)
		}
		if d.Op != OpDelete {
			count2 += len(d.Symbols)
		}
	}
	if len(patch.Diffs) != 0 {
		patch = mustAddContext(config, patch, prepatch)
		patches = append(patches, patch)
	}
	return patches
}

// PatchDeepCopy returns a patch list identical to, but sharing no storage
// with, patches.
func (config *Config[T]) PatchDeepCopy(patches []Patch[T]) []Patch[T] {
	out := make([]Patch[T], len(patches))
	for i, p := range patches {
		cp := Patch[T]{Start1: p.Start1, Start2: p.Start2, Length1: p.Length1, Length2: p.Length2}
		for _, d := range p.Diffs {
			cp.Diffs = append(cp.Diffs, Diff[T]{d.Op, cloneSymbols(d.Symbols)})
		}
		out[i] = cp
	}
	return out
}

// PatchApply merges a set of patches onto source. Returns the patched
// sequence and, per patch, whether it was successfully located and applied.
func (config *Config[T]) PatchApply(patches []Patch[T], source []Symbol[T]) ([]Symbol[T], []bool) {
	if len(patches) == 0 {
		return cloneSymbols(source), nil
	}
	patches = config.PatchDeepCopy(patches)
	padding := config.PatchAddPadding(patches)
	text := concat(concat(cloneSymbols(padding), cloneSymbols(source)), cloneSymbols(padding))
	patches = config.PatchSplitMax(patches)
	delta := 0
	results := make([]bool, len(patches))
	for x, p := range patches {
		expectedLoc := p.Start2 + delta
		text1 := config.DiffText1(p.Diffs)
		var startLoc int
		endLoc := -1
		if len(text1) > config.MatchMaxBits {
			// PatchSplitMax only produces an oversized pattern for a
			// monster delete; anchor on its head and tail separately.
			startLoc = config.MatchMain(text, text1[:config.MatchMaxBits], expectedLoc)
			if startLoc != -1 {
				endLoc = config.MatchMain(text, text1[len(text1)-config.MatchMaxBits:], expectedLoc+len(text1)-config.MatchMaxBits)
				if endLoc == -1 || startLoc >= endLoc {
					startLoc = -1
				}
			}
		} else {
			startLoc = config.MatchMain(text, text1, expectedLoc)
		}
		if startLoc == -1 {
			results[x] = false
			delta -= p.Length2 - p.Length1
			continue
		}
		results[x] = true
		delta = startLoc - expectedLoc
		var text2 []Symbol[T]
		if endLoc == -1 {
			text2 = text[startLoc:min(startLoc+len(text1), len(text))]
		} else {
			text2 = text[startLoc:min(endLoc+config.MatchMaxBits, len(text))]
		}
		if symbolsEqual(text1, text2) {
			// Perfect match: just shove the replacement symbols in.
			text = concat(concat(text[:startLoc], cloneSymbols(config.DiffText2(p.Diffs))), text[startLoc+len(text1):])
			continue
		}
		// Imperfect match: diff the expected and found context to build a
		// framework of corresponding indices.
		diffs := config.DiffMain(text1, text2)
		if len(text1) > config.MatchMaxBits && float64(config.DiffLevenshtein(diffs))/float64(len(text1)) > config.PatchDeleteThreshold {
			results[x] = false
			continue
		}
		diffs = config.DiffCleanupSemanticLossless(diffs)
		index1 := 0
		for _, d := range p.Diffs {
			if d.Op != OpEqual {
				index2 := config.DiffXIndex(diffs, index1)
				if d.Op == OpInsert {
					text = concat(concat(text[:startLoc+index2], cloneSymbols(d.Symbols)), text[startLoc+index2:])
				} else if d.Op == OpDelete {
					startIndex := startLoc + index2
					text = concat(text[:startIndex], text[startIndex+config.DiffXIndex(diffs, index1+len(d.Symbols))-index2:])
				}
			}
			if d.Op != OpDelete {
				index1 += len(d.Symbols)
			}
		}
	}
	return text[len(padding) : len(padding)+(len(text)-2*len(padding))], results
}

// PatchAddPadding pads the start and end of every patch with config.PatchMargin
// sentinel symbols so a patch at the very edge of the text still has
// context to match against. It returns the padding symbols it used. The
// sentinel is the zero value of T; unlike the rune sentinels a text-only
// engine can pick, a generic zero value is not guaranteed to be distinct
// from real payloads, so a colliding zero value only weakens the edge
// anchor's uniqueness rather than corrupting the patch (the same failure
// mode as any other non-unique anchor, handled by PatchAddContext/Match).
func (config *Config[T]) PatchAddPadding(patches []Patch[T]) []Symbol[T] {
	paddingLength := config.PatchMargin
	var zero T
	padding := make([]Symbol[T], paddingLength)
	for i := range padding {
		padding[i] = Symbol[T]{Payload: zero}
	}
	for i := range patches {
		patches[i].Start1 += paddingLength
		patches[i].Start2 += paddingLength
	}
	first := &patches[0]
	if len(first.Diffs) == 0 || first.Diffs[0].Op != OpEqual {
		first.Diffs = append([]Diff[T]{{OpEqual, cloneSymbols(padding)}}, first.Diffs...)
		first.Start1 -= paddingLength
		first.Start2 -= paddingLength
		first.Length1 += paddingLength
		first.Length2 += paddingLength
	} else if paddingLength > len(first.Diffs[0].Symbols) {
		extra := paddingLength - len(first.Diffs[0].Symbols)
		first.Diffs[0].Symbols = concat(cloneSymbols(padding[len(first.Diffs[0].Symbols):]), first.Diffs[0].Symbols)
		first.Start1 -= extra
		first.Start2 -= extra
		first.Length1 += extra
		first.Length2 += extra
	}
	last := &patches[len(patches)-1]
	if len(last.Diffs) == 0 || last.Diffs[len(last.Diffs)-1].Op != OpEqual {
		last.Diffs = append(last.Diffs, Diff[T]{OpEqual, cloneSymbols(padding)})
		last.Length1 += paddingLength
		last.Length2 += paddingLength
	} else if paddingLength > len(last.Diffs[len(last.Diffs)-1].Symbols) {
		lastDiff := &last.Diffs[len(last.Diffs)-1]
		extra := paddingLength - len(lastDiff.Symbols)
		lastDiff.Symbols = concat(lastDiff.Symbols, padding[:extra])
		last.Length1 += extra
		last.Length2 += extra
	}
	return padding
}

// PatchSplitMax breaks up any patch whose source span exceeds
// config.MatchMaxBits, the longest pattern the match engine can handle.
func (config *Config[T]) PatchSplitMax(patches []Patch[T]) []Patch[T] {
	patchSize := config.MatchMaxBits
	for x := 0; x < len(patches); x++ {
		if patches[x].Length1 <= patchSize {
			continue
		}
		bigpatch := patches[x]
		patches = append(patches[:x], patches[x+1:]...)
		x--
		start1 := bigpatch.Start1
		start2 := bigpatch.Start2
		var precontext []Symbol[T]
		for len(bigpatch.Diffs) != 0 {
			var patch Patch[T]
			empty := true
			patch.Start1 = start1 - len(precontext)
			patch.Start2 = start2 - len(precontext)
			if len(precontext) != 0 {
				patch.Length1 = len(precontext)
				patch.Length2 = len(precontext)
				patch.Diffs = append(patch.Diffs, Diff[T]{OpEqual, cloneSymbols(precontext)})
			}
			for len(bigpatch.Diffs) != 0 && patch.Length1 < patchSize-config.PatchMargin {
				diffType := bigpatch.Diffs[0].Op
				diffSymbols := bigpatch.Diffs[0].Symbols
				if diffType == OpInsert {
					// Insertions are harmless.
					patch.Length2 += len(diffSymbols)
					start2 += len(diffSymbols)
					patch.Diffs = append(patch.Diffs, bigpatch.Diffs[0])
					bigpatch.Diffs = bigpatch.Diffs[1:]
					empty = false
				} else if diffType == OpDelete && len(patch.Diffs) == 1 && patch.Diffs[0].Op == OpEqual && len(diffSymbols) > 2*patchSize {
					// A large deletion passes through in one chunk.
					patch.Length1 += len(diffSymbols)
					start1 += len(diffSymbols)
					empty = false
					patch.Diffs = append(patch.Diffs, Diff[T]{diffType, cloneSymbols(diffSymbols)})
					bigpatch.Diffs = bigpatch.Diffs[1:]
				} else {
					// Deletion or equality: take only as much as fits.
					diffSymbols = diffSymbols[:min(len(diffSymbols), patchSize-patch.Length1-config.PatchMargin)]
					patch.Length1 += len(diffSymbols)
					start1 += len(diffSymbols)
					if diffType == OpEqual {
						patch.Length2 += len(diffSymbols)
						start2 += len(diffSymbols)
					} else {
						empty = false
					}
					patch.Diffs = append(patch.Diffs, Diff[T]{diffType, cloneSymbols(diffSymbols)})
					if len(diffSymbols) == len(bigpatch.Diffs[0].Symbols) {
						bigpatch.Diffs = bigpatch.Diffs[1:]
					} else {
						bigpatch.Diffs[0].Symbols = bigpatch.Diffs[0].Symbols[len(diffSymbols):]
					}
				}
			}
			precontext = config.DiffText2(patch.Diffs)
			precontext = precontext[max(0, len(precontext)-config.PatchMargin):]
			text1 := config.DiffText1(bigpatch.Diffs)
			var postcontext []Symbol[T]
			if len(text1) > config.PatchMargin {
				postcontext = text1[:config.PatchMargin]
			} else {
				postcontext = text1
			}
			if len(postcontext) != 0 {
				patch.Length1 += len(postcontext)
				patch.Length2 += len(postcontext)
				if len(patch.Diffs) != 0 && patch.Diffs[len(patch.Diffs)-1].Op == OpEqual {
					patch.Diffs[len(patch.Diffs)-1].Symbols = concat(patch.Diffs[len(patch.Diffs)-1].Symbols, cloneSymbols(postcontext))
				} else {
					patch.Diffs = append(patch.Diffs, Diff[T]{OpEqual, cloneSymbols(postcontext)})
				}
			}
			if !empty {
				x++
				patches = append(patches[:x], append([]Patch[T]{patch}, patches[x:]...)...)
			}
		}
	}
	return patches
}

// PatchToText renders a list of patches as their concatenated textual form.
func (config *Config[T]) PatchToText(patches []Patch[T]) string {
	var buf strings.Builder
	for _, p := range patches {
		buf.WriteString(config.PatchString(p))
	}
	return buf.String()
}

// PatchFromText parses the textual representation produced by PatchToText.
func (config *Config[T]) PatchFromText(textline string) ([]Patch[T], error) {
	var patches []Patch[T]
	if len(textline) == 0 {
		return patches, nil
	}
	lines := strings.Split(textline, "\n")
	i := 0
	for i < len(lines) {
		m := patchHeaderRE.FindStringSubmatch(lines[i])
		if m == nil {
			return nil, newError(ErrInvalidInput, "invalid patch header: "+lines[i])
		}
		var patch Patch[T]
		patch.Start1, _ = strconv.Atoi(m[1])
		if len(m[2]) == 0 {
			patch.Start1--
			patch.Length1 = 1
		} else if m[2] == "0" {
			patch.Length1 = 0
		} else {
			patch.Start1--
			patch.Length1, _ = strconv.Atoi(m[2])
		}
		patch.Start2, _ = strconv.Atoi(m[3])
		if len(m[4]) == 0 {
			patch.Start2--
			patch.Length2 = 1
		} else if m[4] == "0" {
			patch.Length2 = 0
		} else {
			patch.Start2--
			patch.Length2, _ = strconv.Atoi(m[4])
		}
		i++
		for i < len(lines) {
			if len(lines[i]) == 0 {
				i++
				continue
			}
			sign := lines[i][0]
			if sign == '@' {
				break
			}
			line := lines[i][1:]
			text, err := decodePayload(line)
			if err != nil {
				return nil, newError(ErrInvalidInput, "invalid patch payload: "+err.Error())
			}
			if config.Codec == nil {
				return nil, newError(ErrInvalidInput, "no codec configured to decode patch payload")
			}
			var symbols []Symbol[T]
			for _, p := range config.Codec.DecodeRun(text) {
				symbols = append(symbols, Symbol[T]{Payload: p})
			}
			switch sign {
			case '-':
				patch.Diffs = append(patch.Diffs, Diff[T]{OpDelete, symbols})
			case '+':
				patch.Diffs = append(patch.Diffs, Diff[T]{OpInsert, symbols})
			case ' ':
				patch.Diffs = append(patch.Diffs, Diff[T]{OpEqual, symbols})
			default:
				return nil, newError(ErrInvalidInput, "invalid patch mode '"+string(sign)+"'")
			}
			i++
		}
		patches = append(patches, patch)
	}
	return patches, nil
}
