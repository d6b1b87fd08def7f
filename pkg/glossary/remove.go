package glossary

import "strings"

type removeState int

const (
	removeCopying removeState = iota
	removeDropping
)

// Remove returns text without the entry whose term matches termKey,
// case-insensitively. The line right after a matching term line is dropped
// along with it, whatever it holds: definitions are single lines.
//
// A termKey that matches nothing leaves text unchanged.
func Remove(text, termKey string) string {
	if termKey == "" {
		return text
	}
	target := strings.ToLower(termKey)

	lines := splitLines(text)
	out := make([]string, 0, len(lines))
	state := removeCopying

	for _, raw := range lines {
		line := Classify(raw)
		if line.Kind == KindTerm {
			if strings.ToLower(line.Text) == target {
				state = removeDropping
				continue
			}
			state = removeCopying
			out = append(out, raw)
			continue
		}
		if state == removeDropping {
			state = removeCopying
			continue
		}
		out = append(out, raw)
	}
	return joinLines(out)
}
