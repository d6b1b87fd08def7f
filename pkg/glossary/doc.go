// Package glossary implements the text algorithms behind the glossary document.
//
// The glossary is a plain markdown file split into 26 sections, one per ASCII
// letter, each introduced by a "# L" heading and closed by a "---" separator.
// Entries are two lines long:
//
//	- <span class='term' style='color: #FFFFFF; font-weight: bold; '>Cat</span>
//		<span class='definition' style='color: #FFFFFF; '>A small feline</span> ^Cat
//
// Every function in this package is a pure function of its text input. Lines
// the algorithms do not touch are copied byte for byte, so callers can rely on
// Remove(Insert(doc, ...), phrase) giving back doc.
package glossary
