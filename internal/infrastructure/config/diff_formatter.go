package config

import (
	"fmt"
	"strings"

	"github.com/bnema/eve/internal/application/port"
)

// DiffFormatter implements port.DiffFormatter as a plain unified-style list.
type DiffFormatter struct{}

// NewDiffFormatter creates a new DiffFormatter.
func NewDiffFormatter() *DiffFormatter {
	return &DiffFormatter{}
}

// FormatChangesAsDiff returns changes formatted as a diff for display.
func (*DiffFormatter) FormatChangesAsDiff(changes []port.KeyChange) string {
	if len(changes) == 0 {
		return "No changes detected."
	}

	var sb strings.Builder
	sb.WriteString("Settings migration changes:\n\n")
	for _, change := range changes {
		switch change.Type {
		case port.KeyChangeAdded:
			fmt.Fprintf(&sb, "  + %s = %s\n", change.NewKey, change.NewValue)
		case port.KeyChangeRemoved:
			fmt.Fprintf(&sb, "  - %s = %s (unknown)\n", change.OldKey, change.OldValue)
		case port.KeyChangeRenamed:
			fmt.Fprintf(&sb, "  ~ %s -> %s\n", change.OldKey, change.NewKey)
			fmt.Fprintf(&sb, "    (value: %s)\n", change.OldValue)
		}
	}
	return sb.String()
}
