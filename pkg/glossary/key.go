package glossary

import "strings"

// NormalizeKey turns a term phrase into the anchor key used for block
// references: words are split on single spaces, each word gets an initial
// capital unless it already has one, and the words are joined without
// separators.
//
// Distinct phrases can share a key ("Sea Lion" and "SeaLion"). Nothing here
// prevents that.
func NormalizeKey(phrase string) string {
	var b strings.Builder
	for _, word := range strings.Split(phrase, " ") {
		if word == "" {
			continue
		}
		if isUpper(word[0]) {
			b.WriteString(word)
			continue
		}
		b.WriteString(Capitalize(word))
	}
	return b.String()
}

func isUpper(c byte) bool {
	return c >= 'A' && c <= 'Z'
}

func isLetter(c byte) bool {
	return isUpper(c) || (c >= 'a' && c <= 'z')
}

func toUpper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}
