package utils

// Truncate returns s truncated to maxRunes characters, with "..." appended if
// truncated. Rune-safe so multibyte text is never cut mid-character.
// If maxRunes is 0 or negative, returns s unchanged.
func Truncate(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return s
	}
	n := 0
	for i := range s {
		if n == maxRunes {
			return s[:i] + "..."
		}
		n++
	}
	return s
}
