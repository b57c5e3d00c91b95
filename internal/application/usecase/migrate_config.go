package usecase

import (
	"context"

	"github.com/bnema/eve/internal/application/port"
	"github.com/bnema/eve/internal/logging"
)

// CheckConfigMigrationInput holds the input for checking settings migration.
type CheckConfigMigrationInput struct{}

// CheckConfigMigrationOutput holds the result of the migration check.
type CheckConfigMigrationOutput struct {
	// NeedsMigration is true if there are missing keys.
	NeedsMigration bool
	// MissingKeys contains info about each missing key.
	MissingKeys []port.KeyInfo
	// ConfigFile is the path to the settings file.
	ConfigFile string
}

// DetectChangesInput holds the input for detecting settings changes.
type DetectChangesInput struct{}

// DetectChangesOutput holds the result of change detection.
type DetectChangesOutput struct {
	HasChanges bool
	Changes    []port.KeyChange
	// DiffText is the changes rendered by the diff formatter.
	DiffText string
}

// MigrateConfigInput holds the input for migrating settings.
type MigrateConfigInput struct{}

// MigrateConfigOutput holds the result of the migration.
type MigrateConfigOutput struct {
	// AppliedChanges describes each applied change.
	AppliedChanges []string
	ConfigFile     string
}

// MigrateConfigUseCase handles settings migration.
type MigrateConfigUseCase struct {
	migrator      port.ConfigMigrator
	diffFormatter port.DiffFormatter
}

// NewMigrateConfigUseCase creates a new migrate config use case.
func NewMigrateConfigUseCase(migrator port.ConfigMigrator, diffFormatter port.DiffFormatter) *MigrateConfigUseCase {
	return &MigrateConfigUseCase{
		migrator:      migrator,
		diffFormatter: diffFormatter,
	}
}

// Check reports the default keys missing from the settings file.
func (uc *MigrateConfigUseCase) Check(ctx context.Context, _ CheckConfigMigrationInput) (*CheckConfigMigrationOutput, error) {
	log := logging.FromContext(ctx)

	result, err := uc.migrator.CheckMigration()
	if err != nil {
		log.Warn().Err(err).Msg("settings migration check failed")
		return nil, err
	}
	if result == nil || len(result.MissingKeys) == 0 {
		log.Debug().Msg("settings are up to date")
		return &CheckConfigMigrationOutput{}, nil
	}

	keyInfos := make([]port.KeyInfo, 0, len(result.MissingKeys))
	for _, key := range result.MissingKeys {
		keyInfos = append(keyInfos, uc.migrator.GetKeyInfo(key))
	}

	log.Debug().
		Int("missing_keys", len(result.MissingKeys)).
		Str("config_file", result.ConfigFile).
		Msg("settings migration check completed")

	return &CheckConfigMigrationOutput{
		NeedsMigration: true,
		MissingKeys:    keyInfos,
		ConfigFile:     result.ConfigFile,
	}, nil
}

// DetectChanges lists every change a migration would apply.
func (uc *MigrateConfigUseCase) DetectChanges(ctx context.Context, _ DetectChangesInput) (*DetectChangesOutput, error) {
	log := logging.FromContext(ctx)

	changes, err := uc.migrator.DetectChanges()
	if err != nil {
		log.Warn().Err(err).Msg("settings change detection failed")
		return nil, err
	}

	out := &DetectChangesOutput{
		HasChanges: len(changes) > 0,
		Changes:    changes,
		DiffText:   uc.diffFormatter.FormatChangesAsDiff(changes),
	}
	log.Debug().Int("changes", len(changes)).Msg("settings changes detected")
	return out, nil
}

// Execute rewrites the settings file with missing keys added, renamed keys
// carried over and unknown keys dropped.
func (uc *MigrateConfigUseCase) Execute(ctx context.Context, _ MigrateConfigInput) (*MigrateConfigOutput, error) {
	log := logging.FromContext(ctx)

	changes, err := uc.migrator.DetectChanges()
	if err != nil {
		return nil, err
	}
	if len(changes) == 0 {
		log.Debug().Msg("no migration needed")
		return &MigrateConfigOutput{}, nil
	}

	configFile, err := uc.migrator.GetConfigFile()
	if err != nil {
		return nil, err
	}

	applied, err := uc.migrator.Migrate()
	if err != nil {
		log.Error().Err(err).Msg("settings migration failed")
		return nil, err
	}

	log.Info().
		Int("applied_changes", len(applied)).
		Str("config_file", configFile).
		Msg("settings migration completed")

	return &MigrateConfigOutput{
		AppliedChanges: applied,
		ConfigFile:     configFile,
	}, nil
}
