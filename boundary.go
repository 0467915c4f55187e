package symdmp

import (
	"regexp"
	"unicode/utf8"
)

var (
	nonAlphaNumericRE = regexp.MustCompile(`[^a-zA-Z0-9]`)
	whitespaceRE      = regexp.MustCompile(`\s`)
	crlfRE            = regexp.MustCompile(`[\r\n]`)
	blankEndRE        = regexp.MustCompile(`\n\r?\n$`)
)

// BoundaryScore rates how natural a break between s and next is, on the
// 0 (worst) .. 5 (best) ladder from spec.md §4.A. It projects both symbols
// to text via codec and classifies the boundary by the last rune of s and
// the first rune of next, exactly the way the teacher's
// diffCleanupSemanticScore classifies a boundary between two strings — but
// evaluated once per adjacent symbol pair, the natural unit here, rather
// than once per rune.
//
// This is the one place spec.md's broken "cast payload to string" path
// would have mattered; requiring a Codec sidesteps it entirely.
func (s Symbol[T]) BoundaryScore(next Symbol[T], codec Codec[T]) int {
	one := codec.Encode(s.Payload)
	two := codec.Encode(next.Payload)
	return boundaryScoreText(one, two)
}

// boundaryScoreText implements the scoring ladder against the textual
// projection of two adjacent symbols.
func boundaryScoreText(one, two string) int {
	if len(one) == 0 || len(two) == 0 {
		// Edges are the best; spec.md bounds the score to 0..5; clamp
		// in at the blank-line tier rather than a notional 6th rank.
		return 5
	}
	rune1, _ := utf8.DecodeLastRuneInString(one)
	rune2, _ := utf8.DecodeRuneInString(two)
	char1 := string(rune1)
	char2 := string(rune2)
	nonAlphaNumeric1 := nonAlphaNumericRE.MatchString(char1)
	nonAlphaNumeric2 := nonAlphaNumericRE.MatchString(char2)
	whitespace1 := nonAlphaNumeric1 && whitespaceRE.MatchString(char1)
	whitespace2 := nonAlphaNumeric2 && whitespaceRE.MatchString(char2)
	lineBreak1 := whitespace1 && crlfRE.MatchString(char1)
	lineBreak2 := whitespace2 && crlfRE.MatchString(char2)
	blankLine1 := lineBreak1 && blankEndRE.MatchString(one)
	blankLine2 := lineBreak2 && blankEndRE.MatchString(two)
	switch {
	case blankLine1 || blankLine2:
		// Five points for blank lines.
		return 5
	case lineBreak1 || lineBreak2:
		// Four points for line breaks.
		return 4
	case nonAlphaNumeric1 && !whitespace1 && whitespace2:
		// Three points for end of sentences.
		return 3
	case whitespace1 || whitespace2:
		// Two points for whitespace.
		return 2
	case nonAlphaNumeric1 || nonAlphaNumeric2:
		// One point for non-alphanumeric.
		return 1
	}
	return 0
}
