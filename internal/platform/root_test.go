package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindRoot(t *testing.T) {
	// /tmp/
	//   repo/ (.lexicon)
	//     subdir/
	//       nested/
	//   custom/ (.glossary)
	//   empty/

	baseDir := t.TempDir()
	repoDir := filepath.Join(baseDir, "repo")
	subDir := filepath.Join(repoDir, "subdir")
	nestedDir := filepath.Join(subDir, "nested")
	customDir := filepath.Join(baseDir, "custom")
	emptyDir := filepath.Join(baseDir, "empty")

	require.NoError(t, os.MkdirAll(nestedDir, 0755))
	require.NoError(t, os.MkdirAll(emptyDir, 0755))
	require.NoError(t, os.Mkdir(filepath.Join(repoDir, ".lexicon"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(customDir, ".glossary"), 0755))

	tests := []struct {
		name      string
		startPath string
		systemDir string
		wantRoot  string
		wantErr   bool
	}{
		{name: "Start at Root", startPath: repoDir, wantRoot: repoDir},
		{name: "Start in Subdir", startPath: subDir, wantRoot: repoDir},
		{name: "Start Nested Deeply", startPath: nestedDir, wantRoot: repoDir},
		{name: "Custom System Dir", startPath: customDir, systemDir: ".glossary", wantRoot: customDir},
		{name: "No Root Found", startPath: emptyDir, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindRoot(tt.startPath, tt.systemDir)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrRootNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, filepath.Clean(tt.wantRoot), filepath.Clean(got))
		})
	}
}

func TestDetectGitless(t *testing.T) {
	dir := t.TempDir()
	assert.True(t, detectGitless(dir, ".lexicon", false), "plain folder opened without auto-init")

	require.NoError(t, os.Mkdir(filepath.Join(dir, ".lexicon"), 0755))
	assert.True(t, detectGitless(dir, ".lexicon", true), "existing gitless vault")

	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0755))
	assert.False(t, detectGitless(dir, ".lexicon", false), ".git wins")
}
