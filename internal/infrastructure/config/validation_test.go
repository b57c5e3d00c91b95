package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{
			name:    "marker prefix with spaces",
			mutate:  func(c *Config) { c.Editor.MarkerPrefix = "my marker" },
			wantErr: "editor.marker_prefix",
		},
		{
			name:    "duplicate core key",
			mutate:  func(c *Config) { c.Editor.CoreKeys = append(c.Editor.CoreKeys, "wifi") },
			wantErr: `lists "wifi" twice`,
		},
		{
			name:    "optional key not core",
			mutate:  func(c *Config) { c.Editor.OptionalCoreKeys = []string{"sensor"} },
			wantErr: `"sensor" is not listed`,
		},
		{
			name:    "esphome cannot be optional",
			mutate:  func(c *Config) { c.Editor.OptionalCoreKeys = []string{"esphome"} },
			wantErr: `"esphome" cannot be disabled`,
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "chatty" },
			wantErr: "logging.level",
		},
		{
			name:    "schemas url without scheme",
			mutate:  func(c *Config) { c.Schemas.URL = "localhost:6052" },
			wantErr: "schemas.url",
		},
		{
			name:   "schemas url",
			mutate: func(c *Config) { c.Schemas.URL = "http://homeassistant.local:8099/" },
		},
		{
			name:    "negative debounce",
			mutate:  func(c *Config) { c.Watch.DebounceMs = -1 },
			wantErr: "watch.debounce_ms",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := validateConfig(cfg)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}
