package styles

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/eve/internal/application/port"
)

// ConfigRenderer renders settings status messages with styled output.
type ConfigRenderer struct {
	theme *Theme
}

// NewConfigRenderer creates a new config renderer with the given theme.
func NewConfigRenderer(theme *Theme) *ConfigRenderer {
	return &ConfigRenderer{theme: theme}
}

// RenderConfigInfo renders the settings file path with its status.
func (r *ConfigRenderer) RenderConfigInfo(path string, missingCount int) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)

	var status string
	if missingCount > 0 {
		countStyle := lipgloss.NewStyle().Foreground(r.theme.Warning)
		status = fmt.Sprintf("\n  %s %s new settings available",
			iconStyle.Render(IconInfo),
			countStyle.Render(fmt.Sprintf("%d", missingCount)),
		)
	}

	return fmt.Sprintf(
		"\n  %s Settings %s%s\n",
		iconStyle.Render(IconConfig),
		r.theme.Subtle.Render(path),
		status,
	)
}

// RenderMissingKeys renders the missing keys with their types and defaults.
func (r *ConfigRenderer) RenderMissingKeys(keys []port.KeyInfo) string {
	if len(keys) == 0 {
		return ""
	}

	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	valueStyle := lipgloss.NewStyle().Foreground(r.theme.Text)

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n  Missing settings (%d):\n", len(keys))
	for _, key := range keys {
		fmt.Fprintf(&sb,
			"    %s %s\n      Type: %s | Default: %s\n",
			iconStyle.Render(IconCursor),
			r.theme.Highlight.Render(key.Key),
			r.theme.Subtle.Render(key.Type),
			valueStyle.Render(key.DefaultValue),
		)
	}
	return sb.String()
}

// RenderDiff renders a formatted change set under a header.
func (r *ConfigRenderer) RenderDiff(diff string) string {
	var sb strings.Builder
	sb.WriteString("\n")
	for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "+"):
			line = lipgloss.NewStyle().Foreground(r.theme.Success).Render(line)
		case strings.HasPrefix(trimmed, "-"):
			line = lipgloss.NewStyle().Foreground(r.theme.Error).Render(line)
		case strings.HasPrefix(trimmed, "~"):
			line = lipgloss.NewStyle().Foreground(r.theme.Warning).Render(line)
		}
		sb.WriteString("  " + line + "\n")
	}
	return sb.String()
}

// RenderMigrationSuccess renders the success message after migration.
func (r *ConfigRenderer) RenderMigrationSuccess(count int, path string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Success)

	return fmt.Sprintf(
		"\n  %s Applied %s changes to %s\n",
		iconStyle.Render(IconCheck),
		r.theme.Highlight.Render(fmt.Sprintf("%d", count)),
		r.theme.Subtle.Render(filepath.Base(path)),
	)
}

// RenderUpToDate renders the "settings are up to date" message.
func (r *ConfigRenderer) RenderUpToDate(path string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Success)

	return fmt.Sprintf(
		"\n  %s Settings %s\n  %s Settings are up to date\n",
		iconStyle.Render(IconConfig),
		r.theme.Subtle.Render(path),
		iconStyle.Render(IconCheck),
	)
}

// RenderInitialized renders the message after a settings file is written.
func (r *ConfigRenderer) RenderInitialized(path string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Success)

	return fmt.Sprintf("\n  %s Wrote default settings to %s\n",
		iconStyle.Render(IconCheck),
		r.theme.Subtle.Render(path),
	)
}

// RenderError renders an error message.
func (r *ConfigRenderer) RenderError(err error) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Error)

	return fmt.Sprintf("\n  %s Settings error: %v\n", iconStyle.Render(IconX), err)
}

// RenderMigrateHint renders a hint to run the migrate command.
func (r *ConfigRenderer) RenderMigrateHint() string {
	return fmt.Sprintf("\n  %s\n", r.theme.Subtle.Render("Run 'eve config migrate' to add missing defaults."))
}

// RenderNoConfigFile renders the message shown when no settings file exists.
func (r *ConfigRenderer) RenderNoConfigFile(path string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)

	return fmt.Sprintf(
		"\n  %s Settings %s\n  %s\n",
		iconStyle.Render(IconConfig),
		r.theme.Subtle.Render(path),
		r.theme.Subtle.Render("No settings file, defaults apply. Run 'eve config init' to write one."),
	)
}
