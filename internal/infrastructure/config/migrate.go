package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/bnema/eve/internal/application/port"
)

// Migrator implements port.ConfigMigrator for comparing a settings file
// against the current defaults.
type Migrator struct {
	configFile   string
	defaultViper *viper.Viper
}

// NewMigrator creates a Migrator for configFile. An empty configFile uses
// the XDG settings file.
func NewMigrator(configFile string) *Migrator {
	v := viper.New()
	v.SetConfigType("toml")

	m := &Manager{viper: v}
	m.setDefaults()

	return &Migrator{configFile: configFile, defaultViper: v}
}

// GetConfigFile returns the path of the file being migrated.
func (m *Migrator) GetConfigFile() (string, error) {
	if m.configFile != "" {
		return m.configFile, nil
	}
	return GetConfigFile()
}

// userFile returns the settings path, or "" when the file does not exist.
func (m *Migrator) userFile() (string, error) {
	configFile, err := m.GetConfigFile()
	if err != nil {
		return "", fmt.Errorf("failed to get config file path: %w", err)
	}
	if _, statErr := os.Stat(configFile); errors.Is(statErr, fs.ErrNotExist) {
		return "", nil
	}
	return configFile, nil
}

// CheckMigration checks if the user file is missing any default keys.
func (m *Migrator) CheckMigration() (*port.MigrationResult, error) {
	configFile, err := m.userFile()
	if err != nil || configFile == "" {
		return nil, err
	}

	userKeys, err := m.userKeysWithValues(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to parse user config: %w", err)
	}

	missing := findMissingKeys(m.defaultKeys(), userKeys)
	if len(missing) == 0 {
		return nil, nil
	}
	return &port.MigrationResult{MissingKeys: missing, ConfigFile: configFile}, nil
}

// DetectChanges compares the user file with the defaults and returns every
// added, removed and renamed key, sorted by type then key.
func (m *Migrator) DetectChanges() ([]port.KeyChange, error) {
	configFile, err := m.userFile()
	if err != nil || configFile == "" {
		return nil, err
	}

	userValues, err := m.userKeysWithValues(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to parse user config: %w", err)
	}

	defaultKeys := m.defaultKeys()
	defaultSet := make(map[string]bool, len(defaultKeys))
	for _, k := range defaultKeys {
		defaultSet[k] = true
	}

	var unknown []string
	for k := range userValues {
		if !defaultSet[k] {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	missing := findMissingKeys(defaultKeys, userValues)

	renames, removed, added := m.matchRenamedKeys(unknown, missing, userValues)

	var changes []port.KeyChange
	for oldKey, newKey := range renames {
		changes = append(changes, port.KeyChange{
			Type:     port.KeyChangeRenamed,
			OldKey:   oldKey,
			NewKey:   newKey,
			OldValue: formatValue(userValues[oldKey]),
			NewValue: formatValue(m.defaultViper.Get(newKey)),
		})
	}
	for _, oldKey := range removed {
		changes = append(changes, port.KeyChange{
			Type:     port.KeyChangeRemoved,
			OldKey:   oldKey,
			OldValue: formatValue(userValues[oldKey]),
		})
	}
	for _, newKey := range added {
		changes = append(changes, port.KeyChange{
			Type:     port.KeyChangeAdded,
			NewKey:   newKey,
			NewValue: formatValue(m.defaultViper.Get(newKey)),
		})
	}

	sort.Slice(changes, func(i, j int) bool {
		if changes[i].Type != changes[j].Type {
			return changes[i].Type < changes[j].Type
		}
		return changeKey(changes[i]) < changeKey(changes[j])
	})
	return changes, nil
}

func changeKey(c port.KeyChange) string {
	if c.NewKey != "" {
		return c.NewKey
	}
	return c.OldKey
}

// matchRenamedKeys pairs unknown user keys with missing default keys that
// share a parent section, a similar leaf name and a compatible value type.
func (m *Migrator) matchRenamedKeys(unknown, missing []string, userValues map[string]any) (renames map[string]string, removed, added []string) {
	renames = make(map[string]string)
	usedMissing := make(map[string]bool)

	for _, oldKey := range unknown {
		matched := false
		for _, newKey := range missing {
			if usedMissing[newKey] {
				continue
			}
			if keysAreSimilar(oldKey, newKey) && typeName(userValues[oldKey]) == typeName(m.defaultViper.Get(newKey)) {
				renames[oldKey] = newKey
				usedMissing[newKey] = true
				matched = true
				break
			}
		}
		if !matched {
			removed = append(removed, oldKey)
		}
	}
	for _, k := range missing {
		if !usedMissing[k] {
			added = append(added, k)
		}
	}
	return renames, removed, added
}

// keysAreSimilar reports whether two keys in the same section have leaf
// names that contain one another or share all but one underscore token.
func keysAreSimilar(oldKey, newKey string) bool {
	oldParts := strings.Split(oldKey, ".")
	newParts := strings.Split(newKey, ".")
	if len(oldParts) != len(newParts) || len(oldParts) < 2 {
		return false
	}
	for i := 0; i < len(oldParts)-1; i++ {
		if oldParts[i] != newParts[i] {
			return false
		}
	}

	oldLeaf := oldParts[len(oldParts)-1]
	newLeaf := newParts[len(newParts)-1]
	if strings.Contains(oldLeaf, newLeaf) || strings.Contains(newLeaf, oldLeaf) {
		return true
	}

	oldTokens := strings.Split(oldLeaf, "_")
	newTokens := strings.Split(newLeaf, "_")
	matched := make([]bool, len(newTokens))
	matches := 0
	for _, ot := range oldTokens {
		for j, nt := range newTokens {
			if ot == nt && !matched[j] {
				matches++
				matched[j] = true
				break
			}
		}
	}
	return matches > 0 && matches >= min(len(oldTokens), len(newTokens))-1
}

// Migrate rewrites the user file from the defaults merged with the user's
// values. Renamed keys carry their value over; removed keys are dropped.
func (m *Migrator) Migrate() ([]string, error) {
	changes, err := m.DetectChanges()
	if err != nil {
		return nil, err
	}
	if len(changes) == 0 {
		return nil, nil
	}

	configFile, err := m.GetConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to get config file path: %w", err)
	}

	userViper := viper.New()
	userViper.SetConfigFile(configFile)
	userViper.SetConfigType("toml")
	mgr := &Manager{viper: userViper}
	mgr.setDefaults()
	if err := userViper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	applied := make([]string, 0, len(changes))
	for _, change := range changes {
		switch change.Type {
		case port.KeyChangeRenamed:
			userViper.Set(change.NewKey, userViper.Get(change.OldKey))
			applied = append(applied, fmt.Sprintf("%s -> %s", change.OldKey, change.NewKey))
		case port.KeyChangeAdded:
			applied = append(applied, change.NewKey)
		case port.KeyChangeRemoved:
			applied = append(applied, fmt.Sprintf("(removed: %s)", change.OldKey))
		}
	}

	cfg, err := mgr.unmarshalConfig()
	if err != nil {
		return nil, err
	}
	normalizeConfig(cfg)
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("migrated config is invalid: %w", err)
	}
	if err := WriteConfigOrdered(cfg, configFile); err != nil {
		return nil, err
	}
	return applied, nil
}

// GetKeyInfo returns detailed information about a settings key.
func (m *Migrator) GetKeyInfo(key string) port.KeyInfo {
	value := m.defaultViper.Get(key)
	if value == nil {
		return port.KeyInfo{Key: key, Type: "unknown", DefaultValue: "unknown"}
	}
	return port.KeyInfo{Key: key, Type: typeName(value), DefaultValue: formatValue(value)}
}

func (m *Migrator) defaultKeys() []string {
	keys := m.defaultViper.AllKeys()
	sort.Strings(keys)
	return keys
}

func (*Migrator) userKeysWithValues(configFile string) (map[string]any, error) {
	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	result := make(map[string]any)
	flatten(raw, "", result)
	return result, nil
}

// flatten turns nested tables into dot-notation keys. Arrays are leaves.
func flatten(data map[string]any, prefix string, result map[string]any) {
	for k, v := range data {
		key := strings.ToLower(k)
		if prefix != "" {
			key = prefix + "." + key
		}
		if nested, ok := v.(map[string]any); ok {
			flatten(nested, key, result)
			continue
		}
		result[key] = v
	}
}

func findMissingKeys(defaultKeys []string, userKeys map[string]any) []string {
	missing := make([]string, 0)
	for _, key := range defaultKeys {
		if _, ok := userKeys[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing
}

func typeName(value any) string {
	if value == nil {
		return "unknown"
	}
	t := reflect.TypeOf(value)
	switch t.Kind() {
	case reflect.Bool:
		return "bool"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "int"
	case reflect.Float32, reflect.Float64:
		return "float"
	case reflect.String:
		return "string"
	case reflect.Slice, reflect.Array:
		return "list"
	case reflect.Map:
		return "map"
	default:
		return t.String()
	}
}

func formatValue(value any) string {
	if value == nil {
		return "null"
	}
	switch v := value.(type) {
	case string:
		if v == "" {
			return `""`
		}
		const maxStringLen = 50
		if len(v) > maxStringLen {
			return fmt.Sprintf("%q...", v[:maxStringLen-3])
		}
		return fmt.Sprintf("%q", v)
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprintf("%v", v)
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Len() == 0 {
			return "[]"
		}
		return fmt.Sprintf("[%d items]", rv.Len())
	case reflect.Map:
		if rv.Len() == 0 {
			return "{}"
		}
		return fmt.Sprintf("{%d entries}", rv.Len())
	}
	return fmt.Sprintf("%v", value)
}
