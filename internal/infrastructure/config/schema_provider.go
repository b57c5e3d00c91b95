package config

import (
	"fmt"
	"strings"

	"github.com/bnema/eve/internal/domain/entity"
)

// Section names for grouping settings keys.
const (
	SectionEditor  = "Editor"
	SectionSchemas = "Schemas"
	SectionWatch   = "Watch"
	SectionLogging = "Logging"
)

// SchemaProvider implements port.ConfigSchemaProvider.
type SchemaProvider struct{}

// NewSchemaProvider creates a new SchemaProvider.
func NewSchemaProvider() *SchemaProvider {
	return &SchemaProvider{}
}

// GetSchema returns all settings keys with their metadata.
func (p *SchemaProvider) GetSchema() []entity.ConfigKeyInfo {
	defaults := DefaultConfig()

	keys := make([]entity.ConfigKeyInfo, 0, 16)
	keys = append(keys, p.getEditorKeys(defaults)...)
	keys = append(keys, p.getSchemasKeys(defaults)...)
	keys = append(keys, p.getWatchKeys(defaults)...)
	keys = append(keys, p.getLoggingKeys(defaults)...)
	return keys
}

func (*SchemaProvider) getEditorKeys(defaults *Config) []entity.ConfigKeyInfo {
	return []entity.ConfigKeyInfo{
		{
			Key:         "editor.marker_prefix",
			Type:        "string",
			Default:     defaults.Editor.MarkerPrefix,
			Description: "Prefix of the comment that marks a disabled block",
			Section:     SectionEditor,
		},
		{
			Key:         "editor.core_keys",
			Type:        "[]string",
			Default:     strings.Join(defaults.Editor.CoreKeys, ","),
			Description: "Core sections in output order (board stands for esp32/esp8266)",
			Section:     SectionEditor,
		},
		{
			Key:         "editor.optional_core_keys",
			Type:        "[]string",
			Default:     strings.Join(defaults.Editor.OptionalCoreKeys, ","),
			Description: "Core sections that can be disabled",
			Section:     SectionEditor,
		},
		{
			Key:         "editor.default_name",
			Type:        "string",
			Default:     defaults.Editor.DefaultName,
			Description: "Node name used when an esphome section is created",
			Section:     SectionEditor,
		},
		{
			Key:         "editor.max_highlights",
			Type:        "int",
			Default:     fmt.Sprintf("%d", defaults.Editor.MaxHighlights),
			Description: "Maximum number of validation highlights kept",
			Range:       ">=1",
			Section:     SectionEditor,
		},
	}
}

func (*SchemaProvider) getSchemasKeys(defaults *Config) []entity.ConfigKeyInfo {
	return []entity.ConfigKeyInfo{
		{
			Key:         "schemas.dir",
			Type:        "string",
			Default:     defaults.Schemas.Dir,
			Description: "Directory of component, core and board schema files (empty uses the data directory)",
			Section:     SectionSchemas,
		},
		{
			Key:         "schemas.url",
			Type:        "string",
			Default:     defaults.Schemas.URL,
			Description: "Base URL of a schema backend serving api/schema, api/core-schema and api/espboards (overrides schemas.dir)",
			Section:     SectionSchemas,
		},
		{
			Key:         "schemas.offline_cache",
			Type:        "bool",
			Default:     fmt.Sprintf("%t", defaults.Schemas.OfflineCache),
			Description: "Store backend responses locally and use them while the backend is unreachable",
			Values:      []string{"true", "false"},
			Section:     SectionSchemas,
		},
		{
			Key:         "schemas.fetch_timeout_seconds",
			Type:        "int",
			Default:     fmt.Sprintf("%d", defaults.Schemas.FetchTimeoutSeconds),
			Description: "Timeout for a single schema read or request",
			Range:       ">=0",
			Section:     SectionSchemas,
		},
	}
}

func (*SchemaProvider) getWatchKeys(defaults *Config) []entity.ConfigKeyInfo {
	return []entity.ConfigKeyInfo{
		{
			Key:         "watch.debounce_ms",
			Type:        "int",
			Default:     fmt.Sprintf("%d", defaults.Watch.DebounceMs),
			Description: "Delay before a changed document is reprocessed",
			Range:       ">=0",
			Section:     SectionWatch,
		},
	}
}

func (*SchemaProvider) getLoggingKeys(defaults *Config) []entity.ConfigKeyInfo {
	return []entity.ConfigKeyInfo{
		{
			Key:         "logging.level",
			Type:        "string",
			Default:     defaults.Logging.Level,
			Description: "Log verbosity level",
			Values:      []string{"trace", "debug", "info", "warn", "error", "disabled"},
			Section:     SectionLogging,
		},
		{
			Key:         "logging.format",
			Type:        "string",
			Default:     defaults.Logging.Format,
			Description: "Log output format",
			Values:      []string{"console", "json"},
			Section:     SectionLogging,
		},
		{
			Key:         "logging.file",
			Type:        "string",
			Default:     defaults.Logging.File,
			Description: "Log file path (empty logs to stderr)",
			Section:     SectionLogging,
		},
		{
			Key:         "logging.max_size_mb",
			Type:        "int",
			Default:     fmt.Sprintf("%d", defaults.Logging.MaxSizeMB),
			Description: "Size at which the log file is rotated",
			Range:       ">=0",
			Section:     SectionLogging,
		},
		{
			Key:         "logging.max_backups",
			Type:        "int",
			Default:     fmt.Sprintf("%d", defaults.Logging.MaxBackups),
			Description: "Number of rotated log files kept",
			Range:       ">=0",
			Section:     SectionLogging,
		},
		{
			Key:         "logging.compress",
			Type:        "bool",
			Default:     fmt.Sprintf("%t", defaults.Logging.Compress),
			Description: "Gzip rotated log files",
			Section:     SectionLogging,
		},
	}
}
