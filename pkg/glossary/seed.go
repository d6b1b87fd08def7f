package glossary

import "strings"

// Letters are the section letters, in document order.
const Letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Seed returns the content of an empty glossary: one heading and separator
// per letter.
func Seed() string {
	var b strings.Builder
	for i := 0; i < len(Letters); i++ {
		b.WriteString(HeadingMarker)
		b.WriteByte(' ')
		b.WriteByte(Letters[i])
		b.WriteByte('\n')
		b.WriteString(SeparatorMarker)
		b.WriteByte('\n')
	}
	return b.String()
}
