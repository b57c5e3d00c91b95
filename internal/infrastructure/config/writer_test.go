package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sectionHeaders(content string) []string {
	var sections []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			sections = append(sections, line)
		}
	}
	return sections
}

func TestWriteConfigOrdered(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")

	require.NoError(t, WriteConfigOrdered(DefaultConfig(), configPath))

	content, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"[editor]", "[logging]", "[schemas]", "[watch]"}, sectionHeaders(string(content)))

	var back Config
	require.NoError(t, toml.Unmarshal(content, &back))
	assert.Equal(t, DefaultConfig().Editor, back.Editor)
}

func TestWriteConfigOrdered_Nil(t *testing.T) {
	assert.Error(t, WriteConfigOrdered(nil, filepath.Join(t.TempDir(), "config.toml")))
}

func TestWriteConfigOrdered_ReplacesFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(configPath, []byte("[old]\nkey = 1\n"), 0o600))

	cfg := DefaultConfig()
	cfg.Schemas.URL = "http://ha.local:6052/eve"
	require.NoError(t, WriteConfigOrdered(cfg, configPath))

	content, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "[old]")
	assert.Contains(t, string(content), "http://ha.local:6052/eve")

	_, err = os.Stat(configPath + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestSortTOMLSections(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		headers []string
		want    string
	}{
		{
			name: "eve sections",
			input: `[watch]
debounce_ms = 150
[schemas]
dir = ''
offline_cache = true

[logging]
level = 'info'

[editor]
marker_prefix = 'eve:disabled'
`,
			headers: []string{"[editor]", "[logging]", "[schemas]", "[watch]"},
			want: `[editor]
marker_prefix = 'eve:disabled'

[logging]
level = 'info'

[schemas]
dir = ''
offline_cache = true

[watch]
debounce_ms = 150
`,
		},
		{
			name: "nested table follows its parent",
			input: `[schemas]
url = ''

  [schemas.headers]
  accept = 'application/json'

[editor]
default_name = 'demo'
`,
			headers: []string{"[editor]", "[schemas]", "[schemas.headers]"},
		},
		{
			name:    "keys before the first table stay on top",
			input:   "version = 2\n\n[logging]\nformat = 'json'\n[editor]\nmax_highlights = 200\n",
			headers: []string{"[editor]", "[logging]"},
			want:    "version = 2\n\n[editor]\nmax_highlights = 200\n\n[logging]\nformat = 'json'\n",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := sortTOMLSections(tt.input)
			assert.Equal(t, tt.headers, sectionHeaders(result))
			if tt.want != "" || tt.input == "" {
				assert.Equal(t, tt.want, result)
			}
		})
	}
}
