package symdmp

import "math"

// MatchMain locates the best start index in text for pattern near loc, or
// -1 if no match meets config.MatchThreshold.
func (config *Config[T]) MatchMain(text, pattern []Symbol[T], loc int) int {
	loc = max(0, min(loc, len(text)))
	if symbolsEqual(text, pattern) {
		return 0
	}
	if len(text) == 0 {
		return -1
	}
	if loc+len(pattern) <= len(text) && symbolsEqual(text[loc:loc+len(pattern)], pattern) {
		// Perfect match at the perfect spot.
		return loc
	}
	return config.MatchBitap(text, pattern, loc)
}

// MatchBitap locates the best instance of pattern in text near loc using
// the Baeza-Yates/Gonnet Bitap algorithm. Returns -1 if no match was found.
// Patterns longer than config.MatchMaxBits are not supported.
func (config *Config[T]) MatchBitap(text, pattern []Symbol[T], loc int) int {
	alphabet := config.MatchAlphabet(pattern)
	scoreThreshold := config.MatchThreshold
	// Is there a nearby exact match? (speedup)
	bestLoc := symbolsIndexFrom(text, pattern, loc)
	if bestLoc != -1 {
		scoreThreshold = math.Min(config.matchBitapScore(0, bestLoc, loc, len(pattern)), scoreThreshold)
		if tail := lastIndexFrom(text, pattern, loc+len(pattern)); tail != -1 {
			scoreThreshold = math.Min(config.matchBitapScore(0, tail, loc, len(pattern)), scoreThreshold)
		}
	}
	matchMask := 1 << uint(len(pattern)-1)
	bestLoc = -1
	var binMin, binMid int
	binMax := len(pattern) + len(text)
	var lastRd []int
	for d := 0; d < len(pattern); d++ {
		binMin, binMid = 0, binMax
		for binMin < binMid {
			if config.matchBitapScore(d, loc+binMid, loc, len(pattern)) <= scoreThreshold {
				binMin = binMid
			} else {
				binMax = binMid
			}
			binMid = (binMax-binMin)/2 + binMin
		}
		binMax = binMid
		start := max(1, loc-binMid+1)
		finish := min(loc+binMid, len(text)) + len(pattern)
		rd := make([]int, finish+2)
		rd[finish+1] = (1 << uint(d)) - 1
		for j := finish; j >= start; j-- {
			var charMatch int
			if len(text) <= j-1 {
				charMatch = 0
			} else if m, ok := alphabet[text[j-1].Payload]; ok {
				charMatch = m
			}
			if d == 0 {
				rd[j] = ((rd[j+1] << 1) | 1) & charMatch
			} else {
				rd[j] = ((rd[j+1]<<1)|1)&charMatch | (((lastRd[j+1] | lastRd[j]) << 1) | 1) | lastRd[j+1]
			}
			if (rd[j] & matchMask) != 0 {
				score := config.matchBitapScore(d, j-1, loc, len(pattern))
				if score <= scoreThreshold {
					scoreThreshold = score
					bestLoc = j - 1
					if bestLoc > loc {
						start = max(1, 2*loc-bestLoc)
					} else {
						break
					}
				}
			}
		}
		if config.matchBitapScore(d+1, loc, loc, len(pattern)) > scoreThreshold {
			break
		}
		lastRd = rd
	}
	return bestLoc
}

// matchBitapScore computes the score for a match with e errors at location
// x, relative to loc: lower is better.
func (config *Config[T]) matchBitapScore(e, x, loc, patternLen int) float64 {
	accuracy := float64(e) / float64(patternLen)
	proximity := math.Abs(float64(loc - x))
	if config.MatchDistance == 0 {
		if proximity == 0 {
			return accuracy
		}
		return 1.0
	}
	return accuracy + proximity/float64(config.MatchDistance)
}

// MatchAlphabet builds the Bitap alphabet: for each distinct payload in
// pattern, a bitmask of the positions at which it occurs.
func (config *Config[T]) MatchAlphabet(pattern []Symbol[T]) map[T]int {
	alphabet := make(map[T]int, len(pattern))
	for i, s := range pattern {
		alphabet[s.Payload] |= 1 << uint(len(pattern)-i-1)
	}
	return alphabet
}

// lastIndexFrom returns the start of the last occurrence of pattern that
// lies wholly within text[:i+1], or -1 if there is none.
func lastIndexFrom[T comparable](text, pattern []Symbol[T], i int) int {
	if i < 0 {
		return -1
	}
	limit := min(i+1, len(text))
	last := -1
	for start := 0; start+len(pattern) <= limit; start++ {
		if symbolsEqual(text[start:start+len(pattern)], pattern) {
			last = start
		}
	}
	return last
}
