package camera

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Minimal valid PNG header so content sniffing identifies an image.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestPickFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leaf.png")
	require.NoError(t, os.WriteFile(path, pngHeader, 0o644))

	att, err := PickFile(path)
	require.NoError(t, err)
	assert.Equal(t, "leaf.png", att.Name)
	assert.Equal(t, "image/png", att.MIME)
	assert.Equal(t, pngHeader, att.Data)
	assert.True(t, strings.HasPrefix(att.Preview, "data:image/png;base64,"))
}

func TestPickFileSniffsWithoutExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo")
	require.NoError(t, os.WriteFile(path, pngHeader, 0o644))

	att, err := PickFile(path)
	require.NoError(t, err)
	assert.Equal(t, "image/png", att.MIME)
}

func TestPickFileRejectsNonImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("irrigation schedule"), 0o644))

	_, err := PickFile(path)
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestPickFileMissing(t *testing.T) {
	_, err := PickFile(filepath.Join(t.TempDir(), "nope.jpg"))
	assert.Error(t, err)
}
