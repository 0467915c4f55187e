package symdmp

import (
	"fmt"
	"testing"
)

func TestBoundaryScoreText(t *testing.T) {
	tests := []struct {
		One, Two string
		Expected int
	}{
		{"", "x", 5},
		{"x", "", 5},
		{"", "", 5},
		{"x\n\n", "\ny", 5},
		{"x\n", "y", 4},
		{"x", "\ny", 4},
		{"x.", " y", 3},
		{"x ", "y", 2},
		{"x", " y", 2},
		{"x,", "y", 1},
		{"x", "y", 0},
	}
	for i, test := range tests {
		actual := boundaryScoreText(test.One, test.Two)
		if actual != test.Expected {
			t.Fatalf(fmt.Sprintf("Test case #%d, %#v: got %d, want %d", i, test, actual, test.Expected))
		}
	}
}

func TestSymbolBoundaryScore(t *testing.T) {
	codec := runeCodec{}
	a := syms("word")[3] // "d"
	b := syms(" next")[0] // " "
	if score := a.BoundaryScore(b, codec); score != 2 {
		t.Fatalf("BoundaryScore(%q, %q) = %d, want 2", a.Payload, b.Payload, score)
	}
}
