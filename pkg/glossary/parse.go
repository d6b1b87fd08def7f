package glossary

// Entry is a term line paired with its definition line.
type Entry struct {
	Section         byte   `json:"-"`
	Term            string `json:"term"`
	Definition      string `json:"definition"`
	Key             string `json:"key"`
	TermStyle       Style  `json:"term_style"`
	DefinitionStyle Style  `json:"definition_style"`
}

// Letter returns the section letter as a string.
func (e Entry) Letter() string {
	if e.Section == 0 {
		return ""
	}
	return string(e.Section)
}

// Parse rebuilds the term index from a glossary document. The term of each
// entry maps to the text of the definition line that follows it.
func Parse(text string) map[string]string {
	index := make(map[string]string)
	var pending string
	for _, raw := range splitLines(text) {
		line := Classify(raw)
		switch line.Kind {
		case KindTerm:
			pending = line.Text
		case KindDefinition:
			index[pending] = line.Text
		}
	}
	return index
}

// ParseEntries returns the entries of a glossary document in document order.
// A definition line with no term line before it is skipped.
func ParseEntries(text string) []Entry {
	var (
		entries []Entry
		section byte
		pending *Entry
	)
	for _, raw := range splitLines(text) {
		line := Classify(raw)
		switch line.Kind {
		case KindHeading:
			section = line.Letter
			pending = nil
		case KindTerm:
			pending = &Entry{Section: section, Term: line.Text, TermStyle: line.Style}
		case KindDefinition:
			if pending == nil {
				continue
			}
			pending.Definition = line.Text
			pending.DefinitionStyle = line.Style
			pending.Key = line.Key
			entries = append(entries, *pending)
			pending = nil
		default:
			pending = nil
		}
	}
	return entries
}
