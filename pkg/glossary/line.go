package glossary

import (
	"regexp"
	"strings"
)

// Markers recognized at the start of a glossary line.
const (
	HeadingMarker    = "#"
	SeparatorMarker  = "---"
	TermMarker       = "-"
	DefinitionIndent = "\t"
)

// Kind tags a classified line.
type Kind int

const (
	KindOther Kind = iota
	KindHeading
	KindSeparator
	KindTerm
	KindDefinition
)

func (k Kind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindSeparator:
		return "separator"
	case KindTerm:
		return "term"
	case KindDefinition:
		return "definition"
	default:
		return "other"
	}
}

// Line is a glossary line after classification. Only the fields relevant to
// its Kind are set.
type Line struct {
	Kind Kind
	Raw  string

	// Letter is the section letter of a heading, or 0 if the heading is too
	// short to carry one.
	Letter byte

	// Text is the span content of a term or definition line. Malformed lines
	// leave it empty.
	Text  string
	Style Style

	// Key is the ^anchor of a definition line.
	Key string
}

var (
	spanTextPattern = regexp.MustCompile(`>([^<]*)<`)
	colourPattern   = regexp.MustCompile(`color:\s*([^;']*)`)
	anchorPattern   = regexp.MustCompile(`\^([A-Za-z0-9]+)\s*$`)
)

// Classify tags a single line. The order of the checks matters: a separator
// also starts with the term marker.
func Classify(raw string) Line {
	line := Line{Raw: raw}
	switch {
	case strings.HasPrefix(raw, SeparatorMarker):
		line.Kind = KindSeparator
	case strings.HasPrefix(raw, TermMarker):
		line.Kind = KindTerm
		line.Text = spanText(raw)
		line.Style = spanStyle(raw)
	case strings.HasPrefix(raw, DefinitionIndent):
		line.Kind = KindDefinition
		line.Text = spanText(raw)
		line.Style = spanStyle(raw)
		if m := anchorPattern.FindStringSubmatch(raw); m != nil {
			line.Key = m[1]
		}
	case strings.HasPrefix(raw, HeadingMarker):
		line.Kind = KindHeading
		if len(raw) > 2 {
			line.Letter = raw[2]
		}
	}
	return line
}

func spanText(raw string) string {
	m := spanTextPattern.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	return m[1]
}

func spanStyle(raw string) Style {
	open, _, found := strings.Cut(raw, ">")
	if !found {
		return Style{}
	}
	var s Style
	if m := colourPattern.FindStringSubmatch(open); m != nil {
		s.Colour = strings.TrimSpace(m[1])
	}
	s.Italic = strings.Contains(open, "font-style: italic")
	s.Bold = strings.Contains(open, "font-weight: bold")
	return s
}

func splitLines(text string) []string {
	return strings.Split(text, "\n")
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
