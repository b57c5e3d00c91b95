package port

import "github.com/bnema/eve/internal/domain/entity"

// ConfigSchemaProvider describes the editor settings keys.
type ConfigSchemaProvider interface {
	// GetSchema returns all settings keys with their metadata.
	GetSchema() []entity.ConfigKeyInfo
}
