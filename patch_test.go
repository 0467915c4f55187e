package symdmp

import (
	"errors"
	"fmt"
	"testing"
)

func TestPatchString(t *testing.T) {
	config := testConfig()
	p := Patch[string]{
		Start1: 20, Start2: 21, Length1: 18, Length2: 17,
		Diffs: diffsOf(
			OpEqual, "jump",
			OpDelete, "s",
			OpInsert, "ed",
			OpEqual, " over ",
			OpDelete, "the",
			OpInsert, "a",
			OpEqual, "\nlaz",
		),
	}
	expected := "@@ -21,18 +22,17 @@\n jump\n-s\n+ed\n  over \n-the\n+a\n %0Alaz\n"
	if actual := config.PatchString(p); actual != expected {
		t.Fatalf("PatchString = %q, want %q", actual, expected)
	}
}

func TestPatchToFromTextRoundTrip(t *testing.T) {
	config := testConfig()
	tests := []string{
		"",
		"@@ -21,18 +22,17 @@\n jump\n-s\n+ed\n  over \n-the\n+a\n %0Alaz\n",
		"@@ -1 +1 @@\n-a\n+b\n",
		"@@ -1,3 +0,0 @@\n-abc\n",
		"@@ -0,0 +1,3 @@\n+abc\n",
		"@@ -1,9 +1,9 @@\n-f\n+F\n oo+fooba\n@@ -7,9 +7,9 @@\n obar\n-,\n+.\n  tes\n",
	}
	for i, test := range tests {
		patches, err := config.PatchFromText(test)
		if err != nil {
			t.Fatalf("Test case #%d: unexpected error %v", i, err)
		}
		if test == "" {
			if len(patches) != 0 {
				t.Fatalf("Test case #%d: expected no patches", i)
			}
			continue
		}
		actual := config.PatchToText(patches)
		if actual != test {
			t.Fatalf("Test case #%d: PatchToText = %q, want %q", i, actual, test)
		}
	}
}

func TestPatchFromTextInvalid(t *testing.T) {
	config := testConfig()
	tests := []string{
		"@@ _0,0 +0,0 @@\n+abc\n",
		"Bad\nPatch\n",
	}
	for i, test := range tests {
		if _, err := config.PatchFromText(test); err == nil {
			t.Fatalf("Test case #%d: expected an error parsing %q", i, test)
		}
	}
}

func TestPatchAddContext(t *testing.T) {
	config := testConfig()
	config.PatchMargin = 4
	tests := []struct {
		Name     string
		Patch    string
		Text     string
		Expected string
	}{
		{
			"Simple case",
			"@@ -21,4 +21,10 @@\n-jump\n+somersault\n",
			"The quick brown fox jumps over the lazy dog.",
			"@@ -17,12 +17,18 @@\n fox \n-jump\n+somersault\n s ov\n",
		},
		{
			"Not enough trailing context",
			"@@ -21,4 +21,10 @@\n-jump\n+somersault\n",
			"The quick brown fox jumps.",
			"@@ -17,10 +17,16 @@\n fox \n-jump\n+somersault\n s.\n",
		},
		{
			"Not enough leading context",
			"@@ -3 +3,2 @@\n-e\n+at\n",
			"The quick brown fox jumps.",
			"@@ -1,7 +1,8 @@\n Th\n-e\n+at\n  qui\n",
		},
		{
			"Ambiguity",
			"@@ -3 +3,2 @@\n-e\n+at\n",
			"The quick brown fox jumps.  The quick brown fox crashes.",
			"@@ -1,27 +1,28 @@\n Th\n-e\n+at\n  quick brown fox jumps. \n",
		},
	}
	for i, test := range tests {
		patches, err := config.PatchFromText(test.Patch)
		if err != nil {
			t.Fatalf("Test case #%d, %s: unexpected error %v", i, test.Name, err)
		}
		actual, err := config.PatchAddContext(patches[0], syms(test.Text))
		if err != nil {
			t.Fatalf("Test case #%d, %s: unexpected error %v", i, test.Name, err)
		}
		got := config.PatchString(actual)
		if got != test.Expected {
			t.Fatalf("Test case #%d, %s: got %q, want %q", i, test.Name, got, test.Expected)
		}
	}
}

func TestPatchAddContextOutOfRange(t *testing.T) {
	config := testConfig()
	config.PatchMargin = 4
	patches, err := config.PatchFromText("@@ -21,4 +21,10 @@\n-jump\n+somersault\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The patch declares a span (Start2=20, Length1=4) against a source far
	// shorter than that, so PatchAddContext must report ErrOutOfRange rather
	// than panic on an out-of-bounds slice expression.
	_, err = config.PatchAddContext(patches[0], syms("short"))
	if err == nil {
		t.Fatalf("expected an error for a patch span exceeding its source")
	}
	if !errors.Is(err, &Error{Kind: ErrOutOfRange}) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
}

func TestPatchMakeAndToText(t *testing.T) {
	config := testConfig()
	text1 := "The quick brown fox jumps over the lazy dog."
	text2 := "That quick brown fox jumped over a lazy dog."
	expected := "@@ -1,11 +1,12 @@\n Th\n-e\n+at\n  quick b\n@@ -22,18 +22,17 @@\n jump\n-s\n+ed\n  over \n-the\n+a\n  laz\n"
	patches := config.PatchMake(syms(text1), syms(text2), nil)
	if actual := config.PatchToText(patches); actual != expected {
		t.Fatalf("PatchMake(text1, text2) = %q, want %q", actual, expected)
	}
	// text1 + diffs equivalent form produces the same patches.
	diffs := config.DiffMain(syms(text1), syms(text2))
	diffs = config.DiffCleanupSemantic(diffs)
	patches2 := config.PatchMake(syms(text1), nil, diffs)
	if a, b := config.PatchToText(patches2), config.PatchToText(patches); a != b {
		t.Fatalf("PatchMake(text1, diffs) = %q, want %q", a, b)
	}
	// diffs-only form recovers text1 from the diffs themselves.
	patches3 := config.PatchMakeFromDiffs(diffs)
	if a, b := config.PatchToText(patches3), config.PatchToText(patches); a != b {
		t.Fatalf("PatchMakeFromDiffs(diffs) = %q, want %q", a, b)
	}
}

func TestPatchApply(t *testing.T) {
	tests := []struct {
		Name                       string
		Text1, Text2, TextBase     string
		Distance                   int
		Threshold, DeleteThreshold float64
		Expected                   string
		ExpectedApplies            []bool
	}{
		{
			"Null case",
			"", "", "Hello world.",
			1000, 0.5, 0.5,
			"Hello world.",
			nil,
		},
		{
			"Failed match",
			"The quick brown fox jumps over the lazy dog.",
			"That quick brown fox jumped over a lazy dog.",
			"I am the very model of a modern major general.",
			1000, 0.5, 0.5,
			"I am the very model of a modern major general.",
			[]bool{false, false},
		},
		{
			"Big delete, small Diff",
			"x1234567890123456789012345678901234567890123456789012345678901234567890y",
			"xabcy",
			"x123456789012345678901234567890-----++++++++++-----123456789012345678901234567890y",
			1000, 0.5, 0.5,
			"xabcy",
			[]bool{true, true},
		},
		{
			"Big delete, big Diff 1",
			"x1234567890123456789012345678901234567890123456789012345678901234567890y",
			"xabcy",
			"x12345678901234567890---------------++++++++++---------------12345678901234567890y",
			1000, 0.5, 0.5,
			"xabc12345678901234567890---------------++++++++++---------------12345678901234567890y",
			[]bool{false, true},
		},
		{
			"Big delete, big Diff 2",
			"x1234567890123456789012345678901234567890123456789012345678901234567890y",
			"xabcy",
			"x12345678901234567890---------------++++++++++---------------12345678901234567890y",
			1000, 0.5, 0.6,
			"xabcy",
			[]bool{true, true},
		},
		{
			"Compensate for failed patch",
			"abcdefghijklmnopqrstuvwxyz--------------------1234567890",
			"abcXXXXXXXXXXdefghijklmnopqrstuvwxyz--------------------1234567YYYYYYYYYY890",
			"ABCDEFGHIJKLMNOPQRSTUVWXYZ--------------------1234567890",
			0, 0.0, 0.5,
			"ABCDEFGHIJKLMNOPQRSTUVWXYZ--------------------1234567YYYYYYYYYY890",
			[]bool{false, true},
		},
		{
			"No side effects",
			"", "test", "",
			1000, 0.5, 0.5,
			"test",
			[]bool{true},
		},
		{
			"No side effects with major delete",
			"The quick brown fox jumps over the lazy dog.",
			"Woof",
			"The quick brown fox jumps over the lazy dog.",
			1000, 0.5, 0.5,
			"Woof",
			[]bool{true, true},
		},
		{
			"Near edge exact match",
			"XY", "XtestY", "XY",
			1000, 0.5, 0.5,
			"XtestY",
			[]bool{true},
		},
		{
			"Edge partial match",
			"y", "y123", "x",
			1000, 0.5, 0.5,
			"x123",
			[]bool{true},
		},
	}
	for i, test := range tests {
		config := testConfig()
		config.MatchDistance = test.Distance
		config.MatchThreshold = test.Threshold
		config.PatchDeleteThreshold = test.DeleteThreshold
		patches := config.PatchMake(syms(test.Text1), syms(test.Text2), nil)
		actual, actualApplies := config.PatchApply(patches, syms(test.TextBase))
		msg := fmt.Sprintf("Test case #%d, %s", i, test.Name)
		if got := text(actual); got != test.Expected {
			t.Fatalf("%s: PatchApply result = %q, want %q", msg, got, test.Expected)
		}
		if len(actualApplies) != len(test.ExpectedApplies) {
			t.Fatalf("%s: applies = %v, want %v", msg, actualApplies, test.ExpectedApplies)
		}
		for j := range test.ExpectedApplies {
			if actualApplies[j] != test.ExpectedApplies[j] {
				t.Fatalf("%s: applies[%d] = %v, want %v", msg, j, actualApplies[j], test.ExpectedApplies[j])
			}
		}
	}
}

func TestPatchSplitMax(t *testing.T) {
	tests := []struct {
		Text1, Text2 string
		Expected     string
	}{
		{
			"abcdefghijklmnopqrstuvwxyz01234567890",
			"XabXcdXefXghXijXklXmnXopXqrXstXuvXwxXyzX01X23X45X67X89X0",
			"@@ -1,32 +1,46 @@\n+X\n ab\n+X\n cd\n+X\n ef\n+X\n gh\n+X\n ij\n+X\n kl\n+X\n mn\n+X\n op\n+X\n qr\n+X\n st\n+X\n uv\n+X\n wx\n+X\n yz\n+X\n 012345\n@@ -25,13 +39,18 @@\n zX01\n+X\n 23\n+X\n 45\n+X\n 67\n+X\n 89\n+X\n 0\n",
		},
		{
			"1234567890123456789012345678901234567890123456789012345678901234567890",
			"abc",
			"@@ -1,32 +1,4 @@\n-1234567890123456789012345678\n 9012\n@@ -29,32 +1,4 @@\n-9012345678901234567890123456\n 7890\n@@ -57,14 +1,3 @@\n-78901234567890\n+abc\n",
		},
	}
	config := testConfig()
	for i, test := range tests {
		patches := config.PatchMake(syms(test.Text1), syms(test.Text2), nil)
		patches = config.PatchSplitMax(patches)
		actual := config.PatchToText(patches)
		if actual != test.Expected {
			t.Fatalf("Test case #%d: PatchToText = %q, want %q", i, actual, test.Expected)
		}
	}
}

func TestPatchSplitMaxApplies(t *testing.T) {
	config := testConfig()
	text1 := "abcdefghijklmnopqrstuvwxyz01234567890"
	text2 := "XabXcdXefXghXijXklXmnXopXqrXstXuvXwxXyzX01X23X45X67X89X0"
	patches := config.PatchMake(syms(text1), syms(text2), nil)
	patches = config.PatchSplitMax(patches)
	for _, p := range patches {
		if p.Length1 > config.MatchMaxBits {
			t.Fatalf("split patch length1 %d exceeds MatchMaxBits %d", p.Length1, config.MatchMaxBits)
		}
	}
	result, applies := config.PatchApply(patches, syms(text1))
	if got := text(result); got != text2 {
		t.Fatalf("PatchApply after split = %q, want %q", got, text2)
	}
	for _, ok := range applies {
		if !ok {
			t.Fatalf("expected all split patches to apply")
		}
	}
}

// TestPatchAddPadding is grounded on the teacher's same-named test, but the
// expected padded bodies diverge from it: the teacher's sentinel is four
// distinct rune codepoints guaranteed absent from real text, ours is T's
// zero value (the empty string, for these single-rune-payload tests), which
// contributes no characters once joined back to text. The header coordinates
// (symbol counts) still grow by PatchMargin exactly as the teacher's do;
// only the body differs, and only when padding symbols actually needed to be
// added (the "both edges none" case needs no padding at all, so it matches
// the teacher's expected body verbatim).
func TestPatchAddPadding(t *testing.T) {
	tests := []struct {
		Name                string
		Text1, Text2        string
		Expected            string
		ExpectedWithPadding string
	}{
		{
			"Both edges full",
			"", "test",
			"@@ -0,0 +1,4 @@\n+test\n",
			"@@ -1,8 +1,12 @@\n \n+test\n \n",
		},
		{
			"Both edges partial",
			"XY", "XtestY",
			"@@ -1,2 +1,6 @@\n X\n+test\n Y\n",
			"@@ -2,8 +2,12 @@\n X\n+test\n Y\n",
		},
		{
			"Both edges none",
			"XXXXYYYY", "XXXXtestYYYY",
			"@@ -1,8 +1,12 @@\n XXXX\n+test\n YYYY\n",
			"@@ -5,8 +5,12 @@\n XXXX\n+test\n YYYY\n",
		},
	}
	for i, test := range tests {
		config := testConfig()
		patches := config.PatchMake(syms(test.Text1), syms(test.Text2), nil)
		if actual := config.PatchToText(patches); actual != test.Expected {
			t.Fatalf("Test case #%d, %s: before padding = %q, want %q", i, test.Name, actual, test.Expected)
		}
		config.PatchAddPadding(patches)
		if actual := config.PatchToText(patches); actual != test.ExpectedWithPadding {
			t.Fatalf("Test case #%d, %s: after padding = %q, want %q", i, test.Name, actual, test.ExpectedWithPadding)
		}
	}
}
