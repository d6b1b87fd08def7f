package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/lexicon/internal/config"
	"github.com/aretw0/lexicon/pkg/glossary"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	s, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), s)
	assert.Equal(t, glossary.DefaultDocument, s.Document)
	assert.True(t, s.TermBold)
	assert.False(t, s.DefnBold)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)
	require.NoError(t, os.WriteFile(path, []byte("term_colour: \"#FF0000\"\ndefn_italics: true\n"), 0644))

	s, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "#FF0000", s.TermColour)
	assert.True(t, s.DefnItalics)
	assert.True(t, s.TermBold)
	assert.Equal(t, config.DefaultColour, s.DefnColour)
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("term_colour: [\n"), 0644))
	_, err := config.Load(bad)
	assert.Error(t, err)

	colour := filepath.Join(dir, "colour.yaml")
	require.NoError(t, os.WriteFile(colour, []byte("term_colour: red\n"), 0644))
	s, err := config.Load(colour)
	assert.Error(t, err)
	assert.Equal(t, config.Default(), s)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".lexicon", config.FileName)
	s := config.Default()
	require.NoError(t, s.Set("defn_colour", "#00ff00"))
	require.NoError(t, s.Save(path))

	got, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestSet(t *testing.T) {
	tests := []struct {
		key, value string
		wantErr    bool
		check      func(t *testing.T, s config.Settings)
	}{
		{key: "term_bold", value: "false", check: func(t *testing.T, s config.Settings) { assert.False(t, s.TermBold) }},
		{key: "term_italics", value: "true", check: func(t *testing.T, s config.Settings) { assert.True(t, s.TermItalics) }},
		{key: "defn_bold", value: "1", check: func(t *testing.T, s config.Settings) { assert.True(t, s.DefnBold) }},
		{key: "document", value: "Glossary", check: func(t *testing.T, s config.Settings) { assert.Equal(t, "Glossary", s.Document) }},
		{key: "term_colour", value: "blue", wantErr: true},
		{key: "document", value: "", wantErr: true},
		{key: "defn_italics", value: "maybe", wantErr: true},
		{key: "font", value: "serif", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			s := config.Default()
			err := s.Set(tt.key, tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, config.Default(), s, "failed Set leaves settings untouched")
				return
			}
			require.NoError(t, err)
			tt.check(t, s)
		})
	}

	s := config.Default()
	assert.ErrorIs(t, s.Set("font", "serif"), config.ErrUnknownKey)
}

func TestFormatting(t *testing.T) {
	s := config.Default()
	s.DefnItalics = true

	f := s.Formatting("A small feline")
	assert.Equal(t, "A small feline", f.Text)
	assert.Equal(t, glossary.Style{Colour: "#FFFFFF", Bold: true}, f.Term)
	assert.Equal(t, glossary.Style{Colour: "#FFFFFF", Italic: true}, f.Definition)
}
