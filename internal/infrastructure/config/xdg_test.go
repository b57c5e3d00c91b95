package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetXDGDirs(t *testing.T) {
	base := t.TempDir()
	t.Setenv("ENV", "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(base, "cfg"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(base, "data"))
	t.Setenv("XDG_STATE_HOME", "")
	t.Setenv("XDG_CACHE_HOME", filepath.Join(base, "cache"))
	t.Setenv("HOME", base)

	dirs, err := GetXDGDirs()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(base, "cfg", "eve"), dirs.ConfigHome)
	assert.Equal(t, filepath.Join(base, "data", "eve"), dirs.DataHome)
	assert.Equal(t, filepath.Join(base, ".local", "state", "eve"), dirs.StateHome)

	file, err := GetConfigFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "cfg", "eve", "config.toml"), file)

	schemas, err := GetSchemasDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "data", "eve", "schemas"), schemas)

	cache, err := GetSchemaCacheFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "cache", "eve", "schemas.db"), cache)

	man, err := GetManDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "data", "man", "man1"), man)
}
