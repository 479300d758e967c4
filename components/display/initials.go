// Package display holds small presentation helpers shared by the stores.
package display

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Initials derives avatar initials from a person's name: the first letter of
// every whitespace separated word, upper-cased. "John Doe" becomes "JD".
func Initials(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(word)
		if r == utf8.RuneError {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}
