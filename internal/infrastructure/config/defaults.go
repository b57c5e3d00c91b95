package config

import (
	"github.com/bnema/eve/internal/document"
)

// Default configuration constants
const (
	defaultName                = "demo"
	defaultMaxHighlights       = 200
	defaultFetchTimeoutSeconds = 10
	defaultDebounceMs          = 150

	// Logging defaults
	defaultLogLevel      = "info"
	defaultLogFormat     = "console"
	defaultLogMaxSizeMB  = 10
	defaultLogMaxBackups = 3
)

var defaultCoreKeys = []string{
	"esphome",
	"board",
	"wifi",
	"logger",
	"api",
	"ota",
	"mqtt",
	"web_server",
	"captive_portal",
}

var defaultOptionalCoreKeys = []string{
	"wifi",
	"logger",
	"api",
	"ota",
	"mqtt",
	"web_server",
	"captive_portal",
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Editor: EditorConfig{
			MarkerPrefix:     document.DefaultMarkerPrefix,
			CoreKeys:         append([]string(nil), defaultCoreKeys...),
			OptionalCoreKeys: append([]string(nil), defaultOptionalCoreKeys...),
			DefaultName:      defaultName,
			MaxHighlights:    defaultMaxHighlights,
		},
		Schemas: SchemasConfig{
			OfflineCache:        true,
			FetchTimeoutSeconds: defaultFetchTimeoutSeconds,
		},
		Watch: WatchConfig{
			DebounceMs: defaultDebounceMs,
		},
		Logging: LoggingConfig{
			Level:      defaultLogLevel,
			Format:     defaultLogFormat,
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
		},
	}
}
