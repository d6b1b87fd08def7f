package glossary

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultDocument is the name of the glossary document, without extension.
const DefaultDocument = "Definitions"

var termPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9 ]*$`)

// ValidTerm reports whether s can be defined: a letter followed by letters,
// digits and spaces.
func ValidTerm(s string) bool {
	return termPattern.MatchString(s)
}

// StartsWithLetter reports whether the first byte of s is an ASCII letter.
func StartsWithLetter(s string) bool {
	return s != "" && isLetter(s[0])
}

// Linker renders and recognizes the cross-reference links that replace a
// defined phrase in the surrounding documents:
//
//	[[Definitions#^SeaLion|sea lion]]
type Linker struct {
	Document string
	pattern  *regexp.Regexp
}

// NewLinker returns a Linker for links pointing at the named document.
func NewLinker(document string) *Linker {
	if document == "" {
		document = DefaultDocument
	}
	expr := `\[\[` + regexp.QuoteMeta(document) + `#\^([A-Za-z0-9]+)\|([A-Za-z][A-Za-z0-9 ]*)\]\]`
	return &Linker{
		Document: document,
		pattern:  regexp.MustCompile(expr),
	}
}

// Format renders the link for a key and the phrase as it was selected.
func (l *Linker) Format(key, phrase string) string {
	return fmt.Sprintf("[[%s#^%s|%s]]", l.Document, key, phrase)
}

// Parse extracts key and phrase from s, which must be exactly one link.
func (l *Linker) Parse(s string) (key, phrase string, ok bool) {
	m := l.pattern.FindStringSubmatch(s)
	if m == nil || m[0] != s {
		return "", "", false
	}
	return m[1], m[2], true
}

// Link is a cross-reference found in a text, with its byte offsets.
type Link struct {
	Key    string `json:"key"`
	Phrase string `json:"phrase"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
}

// FindAll returns every link in text, in order.
func (l *Linker) FindAll(text string) []Link {
	var links []Link
	for _, m := range l.pattern.FindAllStringSubmatchIndex(text, -1) {
		links = append(links, Link{
			Key:    text[m[2]:m[3]],
			Phrase: text[m[4]:m[5]],
			Start:  m[0],
			End:    m[1],
		})
	}
	return links
}

// Find locates the first link in text whose phrase equals phrase, ignoring
// case. It returns the byte offsets of the whole link.
func (l *Linker) Find(text, phrase string) (start, end int, ok bool) {
	for _, link := range l.FindAll(text) {
		if strings.EqualFold(link.Phrase, phrase) {
			return link.Start, link.End, true
		}
	}
	return 0, 0, false
}
