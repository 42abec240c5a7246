package search

import (
	"strings"
	"unicode"

	"github.com/minatolab/kouhou/pkg/utils"
)

// Snippet returns a bounded-length excerpt of section text with whitespace
// runs collapsed for display.
func Snippet(text string, maxRunes int) string {
	var b strings.Builder
	wasSpace := false
	for _, r := range strings.TrimSpace(text) {
		if unicode.IsSpace(r) {
			if !wasSpace {
				b.WriteRune(' ')
				wasSpace = true
			}
			continue
		}
		b.WriteRune(r)
		wasSpace = false
	}
	return utils.Truncate(b.String(), maxRunes)
}
