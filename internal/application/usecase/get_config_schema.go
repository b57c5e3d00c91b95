package usecase

import (
	"context"
	"strings"

	"github.com/bnema/eve/internal/application/port"
	"github.com/bnema/eve/internal/domain/entity"
)

// GetConfigSchemaUseCase retrieves configuration schema information.
type GetConfigSchemaUseCase struct {
	provider port.ConfigSchemaProvider
}

// NewGetConfigSchemaUseCase creates a new GetConfigSchemaUseCase.
func NewGetConfigSchemaUseCase(provider port.ConfigSchemaProvider) *GetConfigSchemaUseCase {
	return &GetConfigSchemaUseCase{
		provider: provider,
	}
}

// GetConfigSchemaInput contains input parameters for schema retrieval.
type GetConfigSchemaInput struct {
	// Section keeps only keys of one section (case-insensitive). Empty keeps all.
	Section string
}

// GetConfigSchemaOutput contains the schema information.
type GetConfigSchemaOutput struct {
	Keys []entity.ConfigKeyInfo
}

// Execute retrieves configuration keys with their metadata.
func (uc *GetConfigSchemaUseCase) Execute(_ context.Context, input GetConfigSchemaInput) (*GetConfigSchemaOutput, error) {
	keys := uc.provider.GetSchema()
	if input.Section == "" {
		return &GetConfigSchemaOutput{Keys: keys}, nil
	}

	filtered := make([]entity.ConfigKeyInfo, 0, len(keys))
	for _, k := range keys {
		if strings.EqualFold(k.Section, input.Section) {
			filtered = append(filtered, k)
		}
	}
	return &GetConfigSchemaOutput{
		Keys: filtered,
	}, nil
}
