package source

import (
	stdpath "path"
	"strings"
)

// ToKey normalizes a filesystem path to the slash-separated, cleaned form
// used as the canonical workspace-relative key for sorting and map lookups.
// Backslashes fold to forward slashes unconditionally (not just on
// Windows), so discovery order is identical regardless of the host
// platform a workspace is checked on.
func ToKey(path string) string {
	folded := strings.ReplaceAll(path, `\`, "/")
	cleaned := stdpath.Clean(folded)
	return strings.TrimPrefix(cleaned, "./")
}

// ComparePaths orders two workspace-relative paths deterministically: plain
// lexicographic (byte-wise) comparison of their slash-separated keys, with
// no directory-before-file special casing and no locale-aware collation —
// discovery order is exactly string comparison on the path-to-key form.
func ComparePaths(a, b string) int {
	ak, bk := ToKey(a), ToKey(b)
	switch {
	case ak < bk:
		return -1
	case ak > bk:
		return 1
	default:
		return 0
	}
}
