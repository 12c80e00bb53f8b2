package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/i18n"
)

func TestOpenMissingFileDefaults(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "prefs.toml"))
	got := s.Current()
	require.Equal(t, ThemeLight, got.Theme)
	require.Equal(t, i18n.English, got.Language)
}

func TestOpenCorruptFileDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	require.NoError(t, os.WriteFile(path, []byte("not = [valid toml"), 0o644))

	s := Open(path)
	require.Equal(t, defaults(), s.Current())
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")

	s := Open(path)
	require.NoError(t, s.SaveLanguage(i18n.Malayalam))
	require.NoError(t, s.SaveTheme(ThemeDark))

	reopened := Open(path)
	got := reopened.Current()
	require.Equal(t, i18n.Malayalam, got.Language)
	require.Equal(t, ThemeDark, got.Theme)
}

func TestSaveThemeRejectsUnknown(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "prefs.toml"))
	require.Error(t, s.SaveTheme(Theme("sepia")))
}

func TestReloadDetectsExternalChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	s := Open(path)
	require.NoError(t, s.SaveLanguage(i18n.English))

	// Simulate another instance rewriting the file.
	require.NoError(t, os.WriteFile(path, []byte("theme = \"dark\"\nlanguage = \"ml\"\n"), 0o644))

	got, changed := s.reload()
	require.True(t, changed)
	require.Equal(t, ThemeDark, got.Theme)
	require.Equal(t, i18n.Malayalam, got.Language)

	// A second reload with no edit reports no change.
	_, changed = s.reload()
	require.False(t, changed)
}
