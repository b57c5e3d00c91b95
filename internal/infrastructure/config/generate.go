package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
)

// SchemaFileName is the name of the generated settings schema.
const SchemaFileName = "config.schema.json"

// GenerateSchemaFile writes a JSON schema of the settings file into dir and
// returns its path. An empty dir uses the XDG config directory.
func GenerateSchemaFile(dir string) (string, error) {
	if dir == "" {
		configDir, err := GetConfigDir()
		if err != nil {
			return "", fmt.Errorf("failed to get config directory: %w", err)
		}
		dir = configDir
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}

	data, err := SettingsSchema()
	if err != nil {
		return "", err
	}

	schemaFile := filepath.Join(dir, SchemaFileName)
	if err := os.WriteFile(schemaFile, data, filePerm); err != nil {
		return "", fmt.Errorf("failed to write schema file: %w", err)
	}
	return schemaFile, nil
}

// SettingsSchema reflects Config into an indented JSON schema.
func SettingsSchema() ([]byte, error) {
	r := &jsonschema.Reflector{FieldNameTag: "toml"}
	schema := r.Reflect(&Config{})
	schema.ID = "https://github.com/bnema/eve/config.schema.json"
	schema.Title = "eve settings"
	schema.Description = "Settings for eve, an ESPHome configuration editor"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}
