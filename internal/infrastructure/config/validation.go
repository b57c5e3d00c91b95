package config

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var markerPrefixPattern = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_:.-]*$`)

// validateConfig performs comprehensive validation of configuration values
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateEditor(config)...)
	validationErrors = append(validationErrors, validateSchemas(config)...)
	validationErrors = append(validationErrors, validateWatch(config)...)
	validationErrors = append(validationErrors, validateLogging(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}

	return nil
}

func validateEditor(config *Config) []string {
	var validationErrors []string
	ed := config.Editor

	if !markerPrefixPattern.MatchString(ed.MarkerPrefix) {
		validationErrors = append(validationErrors, fmt.Sprintf(
			"editor.marker_prefix must be a single word of letters, digits, '_', ':', '.' or '-' (got: %q)",
			ed.MarkerPrefix,
		))
	}
	if len(ed.CoreKeys) == 0 {
		validationErrors = append(validationErrors, "editor.core_keys must not be empty")
	}

	core := make(map[string]bool, len(ed.CoreKeys))
	for _, k := range ed.CoreKeys {
		if strings.TrimSpace(k) == "" {
			validationErrors = append(validationErrors, "editor.core_keys must not contain blank keys")
			continue
		}
		if core[k] {
			validationErrors = append(validationErrors, fmt.Sprintf("editor.core_keys lists %q twice", k))
		}
		core[k] = true
	}
	for _, k := range ed.OptionalCoreKeys {
		if !core[k] {
			validationErrors = append(validationErrors, fmt.Sprintf(
				"editor.optional_core_keys: %q is not listed in editor.core_keys", k,
			))
		}
		if k == "esphome" || k == "board" {
			validationErrors = append(validationErrors, fmt.Sprintf("editor.optional_core_keys: %q cannot be disabled", k))
		}
	}
	if ed.MaxHighlights < 1 {
		validationErrors = append(validationErrors, "editor.max_highlights must be positive")
	}
	return validationErrors
}

func validateSchemas(config *Config) []string {
	var validationErrors []string
	if config.Schemas.FetchTimeoutSeconds < 0 {
		validationErrors = append(validationErrors, "schemas.fetch_timeout_seconds must be non-negative")
	}
	if raw := config.Schemas.URL; raw != "" {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			validationErrors = append(validationErrors, fmt.Sprintf("schemas.url must be an http(s) URL, got %q", raw))
		}
	}
	return validationErrors
}

func validateWatch(config *Config) []string {
	if config.Watch.DebounceMs < 0 {
		return []string{"watch.debounce_ms must be non-negative"}
	}
	return nil
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	if config.Logging.MaxSizeMB < 0 {
		validationErrors = append(validationErrors, "logging.max_size_mb must be non-negative")
	}
	if config.Logging.MaxBackups < 0 {
		validationErrors = append(validationErrors, "logging.max_backups must be non-negative")
	}
	switch config.Logging.Level {
	case "trace", "debug", "info", "warn", "error", "disabled", "":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf(
			"logging.level must be one of: trace, debug, info, warn, error, disabled (got: %s)",
			config.Logging.Level,
		))
	}
	switch config.Logging.Format {
	case "json", "console", "":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf(
			"logging.format must be one of: json, console (got: %s)",
			config.Logging.Format,
		))
	}
	return validationErrors
}
