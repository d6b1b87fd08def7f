package glossary

import "strings"

// Role selects the class name carried by a styled span.
type Role string

const (
	RoleTerm       Role = "term"
	RoleDefinition Role = "definition"
)

const spanClose = "</span>"

// Style is the inline styling applied to a term or a definition.
type Style struct {
	Colour string `json:"colour" yaml:"colour"`
	Bold   bool   `json:"bold" yaml:"bold"`
	Italic bool   `json:"italic" yaml:"italic"`
}

// BuildStyle returns the opening span for role. Colour is always set; the
// italic declaration precedes the bold one when both are requested.
func BuildStyle(role Role, colour string, italic, bold bool) string {
	var b strings.Builder
	b.WriteString("<span class='")
	b.WriteString(string(role))
	b.WriteString("' style='color: ")
	b.WriteString(colour)
	b.WriteString("; ")
	if italic {
		b.WriteString("font-style: italic; ")
	}
	if bold {
		b.WriteString("font-weight: bold; ")
	}
	b.WriteString("'>")
	return b.String()
}

// Open is BuildStyle for a Style value.
func (s Style) Open(role Role) string {
	return BuildStyle(role, s.Colour, s.Italic, s.Bold)
}

// BuildTermLine renders the first line of an entry. The phrase gets a forced
// initial capital.
func BuildTermLine(style Style, phrase string) string {
	return "- " + style.Open(RoleTerm) + Capitalize(phrase) + spanClose
}

// BuildDefinitionLine renders the second line of an entry without its leading
// tab; Insert adds the indentation.
func BuildDefinitionLine(style Style, text, key string) string {
	return style.Open(RoleDefinition) + text + spanClose + " ^" + key
}

// Capitalize upper-cases the first byte of s when it is an ASCII letter.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	b[0] = toUpper(b[0])
	return string(b)
}
