package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/eve/internal/domain/entity"
)

// DocumentRenderer renders document command results.
type DocumentRenderer struct {
	theme *Theme
}

// NewDocumentRenderer creates a new document renderer with the given theme.
func NewDocumentRenderer(theme *Theme) *DocumentRenderer {
	return &DocumentRenderer{theme: theme}
}

// RenderFormatted renders the outcome of a format run.
func (r *DocumentRenderer) RenderFormatted(path string, changed, written bool) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Success)
	var status string
	switch {
	case written:
		status = "formatted"
	case changed:
		status = "would be reformatted"
		iconStyle = lipgloss.NewStyle().Foreground(r.theme.Warning)
	default:
		status = "already formatted"
	}
	return fmt.Sprintf("  %s %s %s\n", iconStyle.Render(IconCheck), r.theme.Subtle.Render(path), status)
}

// RenderMessage renders a store diagnostic. Empty messages render nothing.
func (r *DocumentRenderer) RenderMessage(msg string) string {
	if msg == "" {
		return ""
	}
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	return fmt.Sprintf("  %s %s\n", iconStyle.Render(IconInfo), msg)
}

// RenderToggled renders the result of enabling or disabling a block.
func (r *DocumentRenderer) RenderToggled(what string, enabled bool, key string) string {
	icon, verb := IconCheckboxEmpty, "Disabled"
	if enabled {
		icon, verb = IconCheckboxChecked, "Enabled"
	}
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	out := fmt.Sprintf("  %s %s %s\n", iconStyle.Render(icon), verb, r.theme.Highlight.Render(what))
	if key != "" {
		out += fmt.Sprintf("    %s %s\n", r.theme.Subtle.Render("block"), r.theme.Code.Render(key))
	}
	return out
}

// RenderBlocks renders disabled blocks as a plain list.
func (r *DocumentRenderer) RenderBlocks(rows []BlockRow) string {
	if len(rows) == 0 {
		return r.theme.Subtle.Render("  No disabled blocks") + "\n"
	}
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	var sb strings.Builder
	for _, b := range rows {
		name := b.Domain
		if b.Platform != "" {
			name += "." + b.Platform
		}
		fmt.Fprintf(&sb, "  %s %s %s", iconStyle.Render(IconComment), r.theme.Badge.Render(b.Kind), r.theme.Highlight.Render(name))
		if b.Hash != "" {
			fmt.Fprintf(&sb, " %s", r.theme.Subtle.Render(b.Hash))
		}
		if b.Line > 0 {
			fmt.Fprintf(&sb, " %s", r.theme.Subtle.Render(fmt.Sprintf("line %d", b.Line)))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// RenderTree renders core sections and components with their state.
func (r *DocumentRenderer) RenderTree(tree entity.Tree) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	var sb strings.Builder

	sb.WriteString(r.theme.BoxHeader.Render("Core") + "\n")
	for _, c := range tree.Core {
		icon := IconCheckboxEmpty
		style := r.theme.Subtle
		if c.Present {
			icon, style = IconCheckboxChecked, r.theme.Normal
		}
		fmt.Fprintf(&sb, "  %s %s\n", iconStyle.Render(icon), style.Render(c.Key))
	}

	if len(tree.Domains) > 0 {
		sb.WriteString(r.theme.BoxHeader.Render("Components") + "\n")
	}
	for _, d := range tree.Domains {
		fmt.Fprintf(&sb, "  %s %s\n", iconStyle.Render(IconTree), r.theme.Highlight.Render(d))
		for _, it := range tree.Items[d] {
			fmt.Fprintf(&sb, "    %s [%d] %s\n", iconStyle.Render(IconCheckboxChecked), it.Index, r.theme.Normal.Render(orDash(it.Platform)))
		}
		for _, dc := range tree.Disabled[d] {
			fmt.Fprintf(&sb, "    %s %s %s\n", iconStyle.Render(IconCheckboxEmpty), r.theme.Subtle.Render(orDash(dc.Platform)), r.theme.Subtle.Render(dc.Key))
		}
	}
	return sb.String()
}

// RenderLocation renders a file position as path:line:column.
func (r *DocumentRenderer) RenderLocation(path string, line, column int) string {
	return fmt.Sprintf("%s:%d:%d\n", path, line, column)
}

// RenderIssue renders one highlighted line.
func (r *DocumentRenderer) RenderIssue(path string, line, column int, severity entity.Severity, msg string) string {
	style := lipgloss.NewStyle().Foreground(r.theme.Error)
	icon := IconX
	switch severity {
	case entity.SeverityWarning:
		style, icon = lipgloss.NewStyle().Foreground(r.theme.Warning), IconWarning
	case entity.SeverityInfo:
		style, icon = lipgloss.NewStyle().Foreground(r.theme.Accent), IconInfo
	}
	pos := fmt.Sprintf("%s:%d", path, line)
	if column > 0 {
		pos += fmt.Sprintf(":%d", column)
	}
	return fmt.Sprintf("  %s %s %s\n", style.Render(icon), r.theme.Subtle.Render(pos), msg)
}
