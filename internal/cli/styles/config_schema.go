package styles

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/eve/internal/domain/entity"
)

var settingsSectionOrder = []string{"Editor", "Schemas", "Watch", "Logging"}

// ConfigSchemaRenderer renders settings key documentation.
type ConfigSchemaRenderer struct {
	theme *Theme
}

// NewConfigSchemaRenderer creates a new ConfigSchemaRenderer.
func NewConfigSchemaRenderer(theme *Theme) *ConfigSchemaRenderer {
	return &ConfigSchemaRenderer{theme: theme}
}

// Render renders the settings keys grouped by section.
func (r *ConfigSchemaRenderer) Render(keys []entity.ConfigKeyInfo) string {
	if len(keys) == 0 {
		return r.theme.Subtle.Render("No settings keys found")
	}

	sections := groupBySection(keys)
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	parts := []string{
		fmt.Sprintf("%s %s", iconStyle.Render(IconConfig), r.theme.Title.Render("Settings Reference")),
		"",
	}
	for _, section := range settingsSectionOrder {
		if sectionKeys, ok := sections[section]; ok {
			parts = append(parts, r.renderSection(section, sectionKeys), "")
		}
	}
	return strings.Join(parts, "\n")
}

// RenderJSON renders the settings keys as JSON.
func (*ConfigSchemaRenderer) RenderJSON(keys []entity.ConfigKeyInfo) (string, error) {
	data, err := json.MarshalIndent(keys, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal schema: %w", err)
	}
	return string(data), nil
}

func groupBySection(keys []entity.ConfigKeyInfo) map[string][]entity.ConfigKeyInfo {
	sections := make(map[string][]entity.ConfigKeyInfo)
	for _, key := range keys {
		sections[key.Section] = append(sections[key.Section], key)
	}
	return sections
}

func (r *ConfigSchemaRenderer) renderSection(name string, keys []entity.ConfigKeyInfo) string {
	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		lines = append(lines, r.renderKey(key))
	}
	content := r.theme.Highlight.Render(name) + "\n" + strings.Join(lines, "\n")
	return r.theme.Box.PaddingTop(0).Render(content)
}

func (r *ConfigSchemaRenderer) renderKey(key entity.ConfigKeyInfo) string {
	defaultStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)

	result := fmt.Sprintf(
		"%s  %s  %s\n  %s",
		r.theme.Normal.Bold(true).Render(key.Key),
		r.theme.Subtle.Render(key.Type),
		defaultStyle.Render(key.Default),
		r.theme.Subtle.Render(key.Description),
	)

	switch {
	case len(key.Values) > 0:
		result += "\n  " + r.theme.Normal.Render("Values: "+strings.Join(key.Values, ", "))
	case key.Range != "":
		result += "\n  " + r.theme.Normal.Render("Range: "+key.Range)
	}
	return result
}
