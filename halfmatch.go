package symdmp

// halfMatchResult is the result of a successful half-match split: a and b
// are each partitioned into a prefix/suffix pair around a shared common
// middle.
type halfMatchResult[T comparable] struct {
	aPrefix, aSuffix []Symbol[T]
	bPrefix, bSuffix []Symbol[T]
	common           []Symbol[T]
}

// diffHalfMatch checks whether a and b share a subsequence at least half
// the length of the longer side, to split the problem without a full
// bisection. Only attempted when a deadline is in play: with unlimited time
// budget it's not worth risking a non-optimal diff.
func (config *Config[T]) diffHalfMatch(a, b []Symbol[T]) *halfMatchResult[T] {
	if config.DiffTimeout <= 0 {
		return nil
	}
	var long, short []Symbol[T]
	if len(a) > len(b) {
		long, short = a, b
	} else {
		long, short = b, a
	}
	if len(long) < 4 || len(short)*2 < len(long) {
		return nil // Pointless.
	}
	hm1 := config.halfMatchAt(long, short, (len(long)+3)/4)
	hm2 := config.halfMatchAt(long, short, (len(long)+1)/2)
	var hm *halfMatchResult[T]
	switch {
	case hm1 == nil && hm2 == nil:
		return nil
	case hm2 == nil:
		hm = hm1
	case hm1 == nil:
		hm = hm2
	default:
		if len(hm1.common) > len(hm2.common) {
			hm = hm1
		} else {
			hm = hm2
		}
	}
	if len(a) > len(b) {
		return hm
	}
	// a was the shorter side; swap the halves back.
	return &halfMatchResult[T]{
		aPrefix: hm.bPrefix, aSuffix: hm.bSuffix,
		bPrefix: hm.aPrefix, bSuffix: hm.aSuffix,
		common: hm.common,
	}
}

// halfMatchAt checks whether a subsequence of short exists in long, seeded
// at a quarter-length window starting at i, that is at least half the
// length of long.
func (config *Config[T]) halfMatchAt(long, short []Symbol[T], i int) *halfMatchResult[T] {
	seed := long[i : i+len(long)/4]
	var bestCommonA, bestCommonB []Symbol[T]
	var bestCommonLen int
	var bestLongA, bestLongB []Symbol[T]
	var bestShortA, bestShortB []Symbol[T]
	for j := symbolsIndexFrom(short, seed, 0); j != -1; j = symbolsIndexFrom(short, seed, j+1) {
		prefixLen := commonPrefixLength(long[i:], short[j:])
		suffixLen := commonSuffixLength(long[:i], short[:j])
		if bestCommonLen < suffixLen+prefixLen {
			bestCommonA = short[j-suffixLen : j]
			bestCommonB = short[j : j+prefixLen]
			bestCommonLen = len(bestCommonA) + len(bestCommonB)
			bestLongA = long[:i-suffixLen]
			bestLongB = long[i+prefixLen:]
			bestShortA = short[:j-suffixLen]
			bestShortB = short[j+prefixLen:]
		}
	}
	if bestCommonLen*2 < len(long) {
		return nil
	}
	return &halfMatchResult[T]{
		aPrefix: bestLongA, aSuffix: bestLongB,
		bPrefix: bestShortA, bSuffix: bestShortB,
		common: concat(bestCommonA, bestCommonB),
	}
}
