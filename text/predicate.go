package text

import (
	"unicode"

	"github.com/kenshaw/symdmp"
)

// PredicateBoundary tokenizes a string into maximal runs over which
// Predicate stays constant: a new symbol starts wherever Predicate's value
// flips between consecutive runes. The first rune always continues the
// current (empty) symbol rather than starting a new one on its own.
type PredicateBoundary struct {
	Predicate func(rune) bool
}

// NewPredicateBoundary returns a PredicateBoundary parser using predicate.
func NewPredicateBoundary(predicate func(rune) bool) PredicateBoundary {
	return PredicateBoundary{Predicate: predicate}
}

// Parse satisfies Parser.
func (p PredicateBoundary) Parse(s string) []symdmp.Symbol[string] {
	runes := []rune(s)
	if len(runes) == 0 {
		return nil
	}
	var out []symdmp.Symbol[string]
	start := 0
	state := p.Predicate(runes[0])
	for i := 1; i < len(runes); i++ {
		next := p.Predicate(runes[i])
		if next != state {
			out = append(out, symdmp.Symbol[string]{Payload: string(runes[start:i])})
			start = i
			state = next
		}
	}
	out = append(out, symdmp.Symbol[string]{Payload: string(runes[start:])})
	return out
}

// isWordRune reports whether r belongs to a letter-or-digit run.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Words tokenizes a string by alternating letter-or-digit runs with runs of
// everything else.
var Words = PredicateBoundary{Predicate: isWordRune}
