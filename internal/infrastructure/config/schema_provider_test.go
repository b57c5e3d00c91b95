package config

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaProvider_CoversEveryDefaultKey(t *testing.T) {
	keys := NewSchemaProvider().GetSchema()

	documented := make(map[string]bool, len(keys))
	for _, k := range keys {
		assert.NotEmpty(t, k.Description, k.Key)
		assert.NotEmpty(t, k.Section, k.Key)
		documented[k.Key] = true
	}

	for _, key := range NewMigrator("").defaultKeys() {
		assert.True(t, documented[key], "undocumented key %s", key)
	}
}

func TestSchemaProvider_Defaults(t *testing.T) {
	byKey := make(map[string]string)
	for _, k := range NewSchemaProvider().GetSchema() {
		byKey[k.Key] = k.Default
	}

	assert.Equal(t, "eve:disabled", byKey["editor.marker_prefix"])
	assert.Equal(t, "150", byKey["watch.debounce_ms"])
	assert.True(t, strings.HasPrefix(byKey["editor.core_keys"], "esphome,board,"))
}

func TestGenerateSchemaFile(t *testing.T) {
	dir := t.TempDir()

	path, err := GenerateSchemaFile(dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "eve settings", doc["title"])
	assert.Contains(t, string(data), "marker_prefix")
	assert.Contains(t, string(data), "debounce_ms")
}
