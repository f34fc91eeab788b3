// Package slug derives URL-safe path segments from titles and file names.
package slug

import (
	"strings"
	"unicode"
)

// Slugify lowercases value and replaces every rune that is not a letter or
// digit with a hyphen, then trims hyphens from both ends.
//
// Runs of hyphens inside the result are kept, so "Hello, World" becomes
// "hello--world". Distinct inputs may map to the same slug; callers that use
// slugs as file names get last-writer-wins semantics.
func Slugify(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range strings.ToLower(value) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteByte('-')
	}
	return strings.Trim(b.String(), "-")
}
