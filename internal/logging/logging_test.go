package logging

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG", zerolog.InfoLevel))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warning", zerolog.InfoLevel))
	assert.Equal(t, zerolog.Disabled, ParseLevel("off", zerolog.InfoLevel))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("loud", zerolog.InfoLevel))
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("EVE_LOG_LEVEL", "trace")
	t.Setenv("EVE_LOG_FORMAT", "xml")
	t.Setenv("EVE_LOG_FILE", "/tmp/eve.log")

	cfg := ApplyEnv(DefaultConfig())

	assert.Equal(t, zerolog.TraceLevel, cfg.Level)
	assert.Equal(t, "console", cfg.Format, "unknown formats are ignored")
	assert.Equal(t, "/tmp/eve.log", cfg.File)
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "eve.log")
	cfg := DefaultConfig()
	cfg.Format = "json"
	cfg.File = path

	logger, closer := New(cfg)
	logger.Info().Str("k", "v").Msg("hello")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"hello"`)
	assert.Contains(t, string(data), `"k":"v"`)
}

func TestLogRotator_RotatesAndPrunes(t *testing.T) {
	dir := t.TempDir()
	r, err := NewLogRotator(filepath.Join(dir, "eve.log"), 1, 1, false)
	require.NoError(t, err)
	r.maxSize = 8

	_, err = r.Write([]byte("0123456"))
	require.NoError(t, err)
	_, err = r.Write([]byte("abcdef"))
	require.NoError(t, err)
	_, err = r.Write([]byte("ghijkl"))
	require.NoError(t, err)
	require.NoError(t, r.Close())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var backups int
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "eve.log.") {
			backups++
		}
	}
	assert.Equal(t, 1, backups)

	current, err := os.ReadFile(filepath.Join(dir, "eve.log"))
	require.NoError(t, err)
	assert.Equal(t, "ghijkl", string(current))
}

func TestContextHelpers(t *testing.T) {
	var buf strings.Builder
	ctx := WithContext(context.Background(), zerolog.New(&buf))
	ctx = WithComponent(ctx, "catalog")
	ctx = WithSchemaKey(ctx, "sensor.dht")

	FromContext(ctx).Info().Msg("x")

	assert.Contains(t, buf.String(), `"component":"catalog"`)
	assert.Contains(t, buf.String(), `"schema_key":"sensor.dht"`)
}
