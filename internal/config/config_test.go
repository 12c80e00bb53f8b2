package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/prefs"
)

func TestPrefsPathDefaultsToUserConfigDir(t *testing.T) {
	t.Setenv("KRISHI_PREFS_PATH", "")

	cfg, err := Load()
	require.NoError(t, err)

	want, err := prefs.DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, want, cfg.App.PrefsPath)
}

func TestPrefsPathOverride(t *testing.T) {
	t.Setenv("KRISHI_PREFS_PATH", "/tmp/krishi-test/prefs.toml")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/krishi-test/prefs.toml", cfg.App.PrefsPath)
}
