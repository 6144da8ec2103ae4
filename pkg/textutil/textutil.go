package textutil

import "strings"

// ToTitleCase trims the string and capitalizes the first letter of every
// whitespace-delimited word, lowercasing the rest. ASCII folding only.
// Applying it twice yields the same result as applying it once.
func ToTitleCase(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))

	startOfWord := true
	for _, r := range strings.ToLower(text) {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			startOfWord = true
			b.WriteRune(r)
		case startOfWord && r >= 'a' && r <= 'z':
			b.WriteRune(r - 'a' + 'A')
			startOfWord = false
		default:
			b.WriteRune(r)
			startOfWord = false
		}
	}

	return b.String()
}
