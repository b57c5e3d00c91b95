package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/eve/internal/application/port"
	"github.com/bnema/eve/internal/application/port/mocks"
)

type countingFormatter struct{}

func (countingFormatter) FormatChangesAsDiff(changes []port.KeyChange) string {
	return fmt.Sprintf("%d changes", len(changes))
}

func TestMigrateConfigUseCase_Check_NoMigrationNeeded(t *testing.T) {
	mockMigrator := mocks.NewMockConfigMigrator(t)
	mockMigrator.EXPECT().CheckMigration().Return(nil, nil)

	uc := NewMigrateConfigUseCase(mockMigrator, countingFormatter{})

	result, err := uc.Check(context.Background(), CheckConfigMigrationInput{})

	require.NoError(t, err)
	assert.False(t, result.NeedsMigration)
	assert.Empty(t, result.MissingKeys)
}

func TestMigrateConfigUseCase_Check_MigrationNeeded(t *testing.T) {
	// Arrange
	mockMigrator := mocks.NewMockConfigMigrator(t)
	mockMigrator.EXPECT().CheckMigration().Return(&port.MigrationResult{
		MissingKeys: []string{"watch.debounce_ms", "logging.compress"},
		ConfigFile:  "/home/user/.config/eve/config.toml",
	}, nil)
	mockMigrator.EXPECT().GetKeyInfo("watch.debounce_ms").Return(port.KeyInfo{
		Key: "watch.debounce_ms", Type: "int", DefaultValue: "150",
	})
	mockMigrator.EXPECT().GetKeyInfo("logging.compress").Return(port.KeyInfo{
		Key: "logging.compress", Type: "bool", DefaultValue: "false",
	})

	uc := NewMigrateConfigUseCase(mockMigrator, countingFormatter{})

	// Act
	result, err := uc.Check(context.Background(), CheckConfigMigrationInput{})

	// Assert
	require.NoError(t, err)
	assert.True(t, result.NeedsMigration)
	require.Len(t, result.MissingKeys, 2)
	assert.Equal(t, "int", result.MissingKeys[0].Type)
	assert.Equal(t, "logging.compress", result.MissingKeys[1].Key)
	assert.Equal(t, "/home/user/.config/eve/config.toml", result.ConfigFile)
}

func TestMigrateConfigUseCase_Check_Error(t *testing.T) {
	mockMigrator := mocks.NewMockConfigMigrator(t)
	expectedErr := errors.New("check failed")
	mockMigrator.EXPECT().CheckMigration().Return(nil, expectedErr)

	uc := NewMigrateConfigUseCase(mockMigrator, countingFormatter{})

	result, err := uc.Check(context.Background(), CheckConfigMigrationInput{})

	assert.ErrorIs(t, err, expectedErr)
	assert.Nil(t, result)
}

func TestMigrateConfigUseCase_DetectChanges(t *testing.T) {
	mockMigrator := mocks.NewMockConfigMigrator(t)
	mockMigrator.EXPECT().DetectChanges().Return([]port.KeyChange{
		{Type: port.KeyChangeAdded, NewKey: "logging.compress", NewValue: "false"},
	}, nil)

	uc := NewMigrateConfigUseCase(mockMigrator, countingFormatter{})

	result, err := uc.DetectChanges(context.Background(), DetectChangesInput{})

	require.NoError(t, err)
	assert.True(t, result.HasChanges)
	assert.Equal(t, "1 changes", result.DiffText)
}

func TestMigrateConfigUseCase_Execute_NoMigrationNeeded(t *testing.T) {
	mockMigrator := mocks.NewMockConfigMigrator(t)
	mockMigrator.EXPECT().DetectChanges().Return(nil, nil)

	uc := NewMigrateConfigUseCase(mockMigrator, countingFormatter{})

	result, err := uc.Execute(context.Background(), MigrateConfigInput{})

	require.NoError(t, err)
	assert.Empty(t, result.AppliedChanges)
}

func TestMigrateConfigUseCase_Execute_Success(t *testing.T) {
	mockMigrator := mocks.NewMockConfigMigrator(t)
	mockMigrator.EXPECT().DetectChanges().Return([]port.KeyChange{
		{Type: port.KeyChangeRenamed, OldKey: "watch.debounce", NewKey: "watch.debounce_ms"},
	}, nil)
	mockMigrator.EXPECT().GetConfigFile().Return("/tmp/config.toml", nil)
	mockMigrator.EXPECT().Migrate().Return([]string{"watch.debounce -> watch.debounce_ms"}, nil)

	uc := NewMigrateConfigUseCase(mockMigrator, countingFormatter{})

	result, err := uc.Execute(context.Background(), MigrateConfigInput{})

	require.NoError(t, err)
	assert.Equal(t, []string{"watch.debounce -> watch.debounce_ms"}, result.AppliedChanges)
	assert.Equal(t, "/tmp/config.toml", result.ConfigFile)
}

func TestMigrateConfigUseCase_Execute_MigrateError(t *testing.T) {
	mockMigrator := mocks.NewMockConfigMigrator(t)
	mockMigrator.EXPECT().DetectChanges().Return([]port.KeyChange{
		{Type: port.KeyChangeAdded, NewKey: "logging.compress"},
	}, nil)
	mockMigrator.EXPECT().GetConfigFile().Return("/tmp/config.toml", nil)
	mockMigrator.EXPECT().Migrate().Return(nil, errors.New("disk full"))

	uc := NewMigrateConfigUseCase(mockMigrator, countingFormatter{})

	result, err := uc.Execute(context.Background(), MigrateConfigInput{})

	require.EqualError(t, err, "disk full")
	assert.Nil(t, result)
}
