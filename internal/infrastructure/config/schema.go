package config

// Config is the eve settings file (config.toml).
type Config struct {
	// Editor controls how documents are composed and which sections are core.
	Editor EditorConfig `mapstructure:"editor" toml:"editor" json:"editor"`
	// Schemas locates component schemas and board catalogs, on disk or on a backend.
	Schemas SchemasConfig `mapstructure:"schemas" toml:"schemas" json:"schemas"`
	// Watch tunes the document watcher.
	Watch WatchConfig `mapstructure:"watch" toml:"watch" json:"watch"`
	// Logging configures the zerolog output.
	Logging LoggingConfig `mapstructure:"logging" toml:"logging" json:"logging"`
}

// EditorConfig holds the document composition settings.
type EditorConfig struct {
	// MarkerPrefix starts every disabled-block marker comment.
	MarkerPrefix string `mapstructure:"marker_prefix" toml:"marker_prefix" json:"marker_prefix"`
	// CoreKeys lists core sections in output order. "board" stands for esp32/esp8266.
	CoreKeys []string `mapstructure:"core_keys" toml:"core_keys" json:"core_keys"`
	// OptionalCoreKeys are core sections that can be disabled.
	OptionalCoreKeys []string `mapstructure:"optional_core_keys" toml:"optional_core_keys" json:"optional_core_keys"`
	// DefaultName is used when an esphome section has to be created.
	DefaultName string `mapstructure:"default_name" toml:"default_name" json:"default_name"`
	// MaxHighlights caps validator highlights.
	MaxHighlights int `mapstructure:"max_highlights" toml:"max_highlights" json:"max_highlights"`
}

// SchemasConfig points at the schemas served to the form engine.
type SchemasConfig struct {
	// Dir holds components/<domain>/<platform>.json, core/<name>.json and boards/<target>.json.
	Dir string `mapstructure:"dir" toml:"dir" json:"dir"`
	// URL is the base address of a schema backend. When set it replaces Dir.
	URL string `mapstructure:"url" toml:"url" json:"url"`
	// OfflineCache keeps backend responses in a local database and serves
	// them while the backend is unreachable. Only used with URL.
	OfflineCache bool `mapstructure:"offline_cache" toml:"offline_cache" json:"offline_cache"`
	// FetchTimeoutSeconds bounds a single schema read or request.
	FetchTimeoutSeconds int `mapstructure:"fetch_timeout_seconds" toml:"fetch_timeout_seconds" json:"fetch_timeout_seconds"`
}

// WatchConfig tunes `eve watch`.
type WatchConfig struct {
	// DebounceMs coalesces bursts of write events.
	DebounceMs int `mapstructure:"debounce_ms" toml:"debounce_ms" json:"debounce_ms"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	Level  string `mapstructure:"level" toml:"level" json:"level"`
	Format string `mapstructure:"format" toml:"format" json:"format"`

	// File output configuration
	File       string `mapstructure:"file" toml:"file" json:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" toml:"max_size_mb" json:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" toml:"max_backups" json:"max_backups"`
	Compress   bool   `mapstructure:"compress" toml:"compress" json:"compress"`
}
