package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config         *Config
	viper          *viper.Viper
	mu             sync.RWMutex
	callbacks      []func(*Config)
	watching       bool
	skipNextReload bool
}

// NewManager creates a new configuration manager. An empty configFile
// searches the XDG config directory and the working directory.
func NewManager(configFile string) (*Manager, error) {
	v := viper.New()
	v.SetConfigType("toml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		configDir, err := GetConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
		}
		v.AddConfigPath(configDir)
		v.AddConfigPath(".")
	}

	// EVE_EDITOR_MARKER_PREFIX, EVE_SCHEMAS_DIR, ...
	v.SetEnvPrefix("EVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindings := map[string]string{
		"logging.level":  "EVE_LOG_LEVEL",
		"logging.format": "EVE_LOG_FORMAT",
		"logging.file":   "EVE_LOG_FILE",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	return &Manager{
		viper:     v,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables. A
// missing file is not an error; the defaults apply.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.unmarshalConfig()
	if err != nil {
		return err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	configFile := m.viper.ConfigFileUsed()
	if configFile == "" {
		configDir, _ := GetConfigDir()
		configFile = filepath.Join(configDir, "config.toml")
	}
	return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", configFile, err)
}

func (m *Manager) unmarshalConfig() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.viper.ConfigFileUsed(),
			err,
		)
	}
	return config, nil
}

func normalizeConfig(config *Config) {
	config.Editor.MarkerPrefix = strings.TrimSpace(config.Editor.MarkerPrefix)
	config.Editor.DefaultName = strings.TrimSpace(config.Editor.DefaultName)
	if config.Editor.DefaultName == "" {
		config.Editor.DefaultName = defaultName
	}
	config.Editor.CoreKeys = trimAll(config.Editor.CoreKeys)
	config.Editor.OptionalCoreKeys = trimAll(config.Editor.OptionalCoreKeys)

	config.Schemas.Dir = strings.TrimSpace(config.Schemas.Dir)
	config.Schemas.URL = strings.TrimSpace(config.Schemas.URL)
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))
	if config.Logging.Level == "warning" {
		config.Logging.Level = "warn"
	}
}

func trimAll(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

// Get returns the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	configCopy := *m.config
	configCopy.Editor.CoreKeys = append([]string(nil), m.config.Editor.CoreKeys...)
	configCopy.Editor.OptionalCoreKeys = append([]string(nil), m.config.Editor.OptionalCoreKeys...)
	return &configCopy
}

// Save validates cfg and writes it to the config file in section order.
func (m *Manager) Save(cfg *Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if err := validateConfig(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	path, err := m.targetFile()
	if err != nil {
		return err
	}
	if err := WriteConfigOrdered(cfg, path); err != nil {
		return err
	}
	m.viper.SetConfigFile(path)

	if m.watching {
		m.skipNextReload = true
		m.config = cfg
		return nil
	}
	return m.reload()
}

func (m *Manager) targetFile() (string, error) {
	if used := m.viper.ConfigFileUsed(); used != "" {
		return used, nil
	}
	return GetConfigFile()
}

// GetConfigFile returns the path to the configuration file being used.
func (m *Manager) GetConfigFile() string {
	return m.viper.ConfigFileUsed()
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.setEditorDefaults(defaults)
	m.setSchemasDefaults(defaults)
	m.setWatchDefaults(defaults)
	m.setLoggingDefaults(defaults)
}

func (m *Manager) setEditorDefaults(defaults *Config) {
	m.viper.SetDefault("editor.marker_prefix", defaults.Editor.MarkerPrefix)
	m.viper.SetDefault("editor.core_keys", defaults.Editor.CoreKeys)
	m.viper.SetDefault("editor.optional_core_keys", defaults.Editor.OptionalCoreKeys)
	m.viper.SetDefault("editor.default_name", defaults.Editor.DefaultName)
	m.viper.SetDefault("editor.max_highlights", defaults.Editor.MaxHighlights)
}

func (m *Manager) setSchemasDefaults(defaults *Config) {
	m.viper.SetDefault("schemas.dir", defaults.Schemas.Dir)
	m.viper.SetDefault("schemas.url", defaults.Schemas.URL)
	m.viper.SetDefault("schemas.offline_cache", defaults.Schemas.OfflineCache)
	m.viper.SetDefault("schemas.fetch_timeout_seconds", defaults.Schemas.FetchTimeoutSeconds)
}

func (m *Manager) setWatchDefaults(defaults *Config) {
	m.viper.SetDefault("watch.debounce_ms", defaults.Watch.DebounceMs)
}

func (m *Manager) setLoggingDefaults(defaults *Config) {
	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
	m.viper.SetDefault("logging.file", defaults.Logging.File)
	m.viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	m.viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	m.viper.SetDefault("logging.compress", defaults.Logging.Compress)
}
