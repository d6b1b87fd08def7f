// Package config holds the user settings that seed the formatting of new
// glossary entries. They live in settings.yaml inside the vault system dir.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/lexicon/pkg/core"
	"github.com/aretw0/lexicon/pkg/glossary"
)

// FileName is the name of the settings file inside the system dir.
const FileName = "settings.yaml"

// DefaultColour is used for terms and definitions until changed.
const DefaultColour = "#FFFFFF"

var colourPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ErrUnknownKey is returned by Set for a key that is not a setting.
var ErrUnknownKey = errors.New("unknown setting")

// Settings are the persisted defaults.
type Settings struct {
	Document    string `yaml:"document" json:"document"`
	TermColour  string `yaml:"term_colour" json:"term_colour"`
	TermBold    bool   `yaml:"term_bold" json:"term_bold"`
	TermItalics bool   `yaml:"term_italics" json:"term_italics"`
	DefnColour  string `yaml:"defn_colour" json:"defn_colour"`
	DefnBold    bool   `yaml:"defn_bold" json:"defn_bold"`
	DefnItalics bool   `yaml:"defn_italics" json:"defn_italics"`
}

// Default returns white text, bold terms and the "Definitions" document.
func Default() Settings {
	return Settings{
		Document:   glossary.DefaultDocument,
		TermColour: DefaultColour,
		TermBold:   true,
		DefnColour: DefaultColour,
	}
}

// Load reads settings from path. A missing file yields the defaults; keys
// absent from the file keep their default value.
func Load(path string) (Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("failed to read settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("failed to parse settings %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return Default(), fmt.Errorf("invalid settings %s: %w", path, err)
	}
	return s, nil
}

// Save writes s to path, creating the parent directory.
func (s Settings) Save(path string) error {
	if err := s.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the colours and the document name.
func (s Settings) Validate() error {
	if s.Document == "" {
		return errors.New("document must not be empty")
	}
	for _, c := range []string{s.TermColour, s.DefnColour} {
		if !ValidColour(c) {
			return fmt.Errorf("colour %q is not #RRGGBB", c)
		}
	}
	return nil
}

// ValidColour reports whether c is a #RRGGBB hex colour.
func ValidColour(c string) bool {
	return colourPattern.MatchString(c)
}

// Set assigns value to the setting named key, using the yaml names.
func (s *Settings) Set(key, value string) error {
	next := *s
	var err error
	switch key {
	case "document":
		next.Document = value
	case "term_colour":
		next.TermColour = value
	case "defn_colour":
		next.DefnColour = value
	case "term_bold":
		next.TermBold, err = strconv.ParseBool(value)
	case "term_italics":
		next.TermItalics, err = strconv.ParseBool(value)
	case "defn_bold":
		next.DefnBold, err = strconv.ParseBool(value)
	case "defn_italics":
		next.DefnItalics, err = strconv.ParseBool(value)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*s = next
	return nil
}

// TermStyle returns the style of new term lines.
func (s Settings) TermStyle() glossary.Style {
	return glossary.Style{Colour: s.TermColour, Bold: s.TermBold, Italic: s.TermItalics}
}

// DefinitionStyle returns the style of new definition lines.
func (s Settings) DefinitionStyle() glossary.Style {
	return glossary.Style{Colour: s.DefnColour, Bold: s.DefnBold, Italic: s.DefnItalics}
}

// Formatting returns the formatting for defining a term as text.
func (s Settings) Formatting(text string) core.Formatting {
	return core.Formatting{
		Text:       text,
		Term:       s.TermStyle(),
		Definition: s.DefinitionStyle(),
	}
}
