package glossary

import "strings"

type insertState int

const (
	insertScanning insertState = iota
	insertInSection
	insertDone
)

// Insert returns text with a new entry spliced into the section matching the
// first letter of phrase. termLine and defnLine are the rendered entry lines
// (see BuildTermLine and BuildDefinitionLine); defnLine is indented here.
//
// Inside the section the entry goes before the first term that sorts after
// phrase, compared case-insensitively, or before the first line that is
// neither a term nor a definition. An empty section therefore receives the
// entry right before its separator. If no heading matches, text is returned
// unchanged. A document with CRLF line endings gets CRLF entry lines.
func Insert(text, termLine, defnLine, phrase string) string {
	if phrase == "" {
		return text
	}
	letter := toUpper(phrase[0])
	folded := strings.ToLower(phrase)

	eol := ""
	if strings.Contains(text, "\r\n") {
		eol = "\r"
	}
	entry := []string{termLine + eol, DefinitionIndent + defnLine + eol}

	lines := splitLines(text)
	out := make([]string, 0, len(lines)+2)
	state := insertScanning

	for _, raw := range lines {
		line := Classify(raw)
		switch state {
		case insertScanning:
			if line.Kind == KindHeading && line.Letter == letter {
				state = insertInSection
			}
		case insertInSection:
			switch line.Kind {
			case KindTerm:
				if folded < strings.ToLower(line.Text) {
					out = append(out, entry...)
					state = insertDone
				}
			case KindDefinition:
			default:
				out = append(out, entry...)
				state = insertDone
			}
		}
		out = append(out, raw)
	}
	return joinLines(out)
}
