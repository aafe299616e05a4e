package grading

import "strings"

// stripChars lists the punctuation removed before answers are compared.
const stripChars = `.,:;!?_-/\`

// Sanitize removes every occurrence of . , : ; ! ? _ - / \ from s and trims
// surrounding whitespace. It is applied to user and expected answers alike.
func Sanitize(s string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if strings.ContainsRune(stripChars, r) {
			return -1
		}
		return r
	}, s))
}
