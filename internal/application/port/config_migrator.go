package port

// MigrationResult contains the result of a settings migration check.
type MigrationResult struct {
	// MissingKeys contains the keys that exist in defaults but not in the user file.
	MissingKeys []string
	// ConfigFile is the path to the user's settings file.
	ConfigFile string
}

// KeyInfo contains metadata about a settings key for display purposes.
type KeyInfo struct {
	// Key is the dot-notation key path (e.g., "editor.marker_prefix").
	Key string
	// Type is the Go type of the value (e.g., "bool", "int", "string").
	Type string
	// DefaultValue is a string representation of the default value.
	DefaultValue string
}

// KeyChangeType classifies a detected settings change.
type KeyChangeType int

const (
	// KeyChangeRenamed is an unknown key matched to a missing key with a similar name.
	KeyChangeRenamed KeyChangeType = iota
	// KeyChangeRemoved is a key in the user file that defaults no longer define.
	KeyChangeRemoved
	// KeyChangeAdded is a default key missing from the user file.
	KeyChangeAdded
)

func (t KeyChangeType) String() string {
	switch t {
	case KeyChangeRenamed:
		return "renamed"
	case KeyChangeRemoved:
		return "removed"
	case KeyChangeAdded:
		return "added"
	}
	return "unknown"
}

// KeyChange is one difference between the user file and the defaults.
type KeyChange struct {
	Type     KeyChangeType
	OldKey   string
	NewKey   string
	OldValue string
	NewValue string
}

// ConfigMigrator checks for and applies settings migrations.
type ConfigMigrator interface {
	// CheckMigration checks if the user file is missing any default keys.
	// Returns nil if no migration is needed (no file, or nothing missing).
	CheckMigration() (*MigrationResult, error)

	// DetectChanges lists added, removed and renamed keys.
	DetectChanges() ([]KeyChange, error)

	// Migrate rewrites the user file with missing keys filled in and
	// renamed keys carried over. Returns a description of each applied change.
	Migrate() ([]string, error)

	// GetKeyInfo returns detailed information about a settings key.
	GetKeyInfo(key string) KeyInfo

	// GetConfigFile returns the path of the file being migrated.
	GetConfigFile() (string, error)
}

// DiffFormatter renders detected changes for display.
type DiffFormatter interface {
	FormatChangesAsDiff(changes []KeyChange) string
}
