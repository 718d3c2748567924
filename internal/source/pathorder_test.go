package source

import "testing"

func TestComparePaths_PlainLexicographic(t *testing.T) {
	// "/" (0x2F) sorts before "b" (0x62), so "a/b.lum" precedes "ab.lum"
	// under plain lexicographic comparison, even though "ab.lum" is a
	// sibling file one directory shallower.
	if got := ComparePaths("ab.lum", "a/b.lum"); got <= 0 {
		t.Fatalf("ComparePaths(%q, %q) = %d, want > 0", "ab.lum", "a/b.lum", got)
	}
	if got := ComparePaths("a/b.lum", "ab.lum"); got >= 0 {
		t.Fatalf("ComparePaths(%q, %q) = %d, want < 0", "a/b.lum", "ab.lum", got)
	}
}

func TestComparePaths_Equal(t *testing.T) {
	if got := ComparePaths("a/b.lum", "./a/b.lum"); got != 0 {
		t.Fatalf("ComparePaths equal keys = %d, want 0", got)
	}
}

func TestComparePaths_BackslashFolded(t *testing.T) {
	if got := ComparePaths(`a\b.lum`, "a/b.lum"); got != 0 {
		t.Fatalf("ComparePaths backslash/slash keys = %d, want 0", got)
	}
}
