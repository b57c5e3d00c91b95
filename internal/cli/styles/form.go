package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/eve/internal/domain/entity"
	"github.com/bnema/eve/internal/form"
)

const maskedValue = "••••••"

// FormRenderer renders a widget tree as an indented, read-only outline.
type FormRenderer struct {
	theme *Theme
}

// NewFormRenderer creates a new form renderer with the given theme.
func NewFormRenderer(theme *Theme) *FormRenderer {
	return &FormRenderer{theme: theme}
}

// Render renders the title, optional docs link and the widget tree.
func (r *FormRenderer) Render(title, docsURL string, w form.Widget) string {
	var sb strings.Builder
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	fmt.Fprintf(&sb, "%s %s\n", iconStyle.Render(IconCode), r.theme.Title.Render(title))
	if docsURL != "" {
		fmt.Fprintf(&sb, "  %s\n", r.theme.Subtle.Render(docsURL))
	}
	sb.WriteString("\n")
	r.render(&sb, w, 1)
	return sb.String()
}

func (r *FormRenderer) line(sb *strings.Builder, depth int, label, value string) {
	indent := strings.Repeat("  ", depth)
	if label == "" {
		fmt.Fprintf(sb, "%s%s\n", indent, value)
		return
	}
	fmt.Fprintf(sb, "%s%s %s\n", indent, r.theme.Normal.Bold(true).Render(label+":"), value)
}

func (r *FormRenderer) render(sb *strings.Builder, w form.Widget, depth int) {
	t := r.theme
	switch w := w.(type) {
	case nil:
		return

	case *form.Form:
		for i, f := range w.Fields {
			if i == w.Divider {
				r.line(sb, depth, "", t.Subtle.Render("optional"))
			}
			r.render(sb, f, depth)
		}

	case *form.Group:
		icon := IconCollapse
		if w.Collapsed {
			icon = IconExpand
		}
		r.line(sb, depth, "", t.Highlight.Render(icon+" "+w.Title))
		r.render(sb, w.Body, depth+1)

	case *form.TextInput:
		value := w.Value
		if w.Masked && value != "" {
			value = maskedValue
		}
		if value == "" {
			value = t.Subtle.Render("empty")
		}
		if w.Masked {
			value = IconLock + " " + value
		}
		if len(w.Suggestions) > 0 {
			value += " " + t.Subtle.Render("["+strings.Join(w.Suggestions, ", ")+"]")
		}
		r.line(sb, depth, w.Label, value)

	case *form.NumberInput:
		value := w.Value
		if value == "" {
			value = t.Subtle.Render("empty")
		}
		r.line(sb, depth, w.Label, value)

	case *form.Switch:
		icon := IconCheckboxEmpty
		if w.Checked {
			icon = IconCheckboxChecked
		}
		r.line(sb, depth, w.Label, icon)

	case *form.Choice:
		opts := make([]string, len(w.Options))
		for i, o := range w.Options {
			if o.Active {
				opts[i] = t.ActiveTab.Render(o.Label)
				continue
			}
			opts[i] = t.Subtle.Render(o.Label)
		}
		r.line(sb, depth, w.Label, strings.Join(opts, " "))

	case *form.ReadOnly:
		r.line(sb, depth, w.Label, t.Subtle.Render(w.Text))

	case *form.PinPicker:
		value := w.Value
		if value == "" {
			value = t.Subtle.Render("unset")
		}
		board := t.Subtle.Render("no board")
		if w.Board != nil {
			board = t.Subtle.Render(w.Board.Target + "/" + w.Board.Slug)
		}
		r.line(sb, depth, w.Label, IconPin+" "+value+" "+board)

	case *form.CodeEditor:
		label := w.Label
		if w.Invalid {
			label += " " + lipgloss.NewStyle().Foreground(t.Error).Render("invalid")
		}
		r.line(sb, depth, label, "")
		indent := strings.Repeat("  ", depth+1)
		for _, l := range strings.Split(strings.TrimRight(w.Text, "\n"), "\n") {
			fmt.Fprintf(sb, "%s%s\n", indent, t.Code.Render(l))
		}

	case *form.List:
		r.line(sb, depth, w.Label, t.Subtle.Render(fmt.Sprintf("%d items", len(w.Rows))))
		for i, row := range w.Rows {
			r.line(sb, depth+1, "", t.Subtle.Render(fmt.Sprintf("- [%d]", i)))
			r.render(sb, row.Item, depth+2)
		}

	case *form.MapEditor:
		r.line(sb, depth, w.Label, t.Subtle.Render(fmt.Sprintf("%d entries", len(w.Entries))))
		for _, e := range w.Entries {
			r.line(sb, depth+1, "", t.Highlight.Render(e.Key))
			r.render(sb, e.Value, depth+2)
		}

	case *form.AnyOf:
		if len(w.Alternatives) > 0 {
			alts := make([]string, len(w.Alternatives))
			for i, a := range w.Alternatives {
				if i == w.Selected {
					alts[i] = t.ActiveTab.Render(a)
					continue
				}
				alts[i] = t.Subtle.Render(a)
			}
			r.line(sb, depth, w.Label, strings.Join(alts, " "))
			r.render(sb, w.Body, depth+1)
			return
		}
		r.render(sb, w.Body, depth)

	case *form.Unsupported:
		r.line(sb, depth, w.Label, lipgloss.NewStyle().Foreground(t.Warning).Render(w.Message))
	}
}

// RenderBoards renders a board catalog, marking the current board.
func (r *FormRenderer) RenderBoards(catalog *entity.BoardCatalog, current string) string {
	if catalog == nil || len(catalog.Boards) == 0 {
		return r.theme.Subtle.Render("  No boards available") + "\n"
	}
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n\n", iconStyle.Render(IconChip), r.theme.Title.Render(catalog.Target+" boards"))
	for _, b := range catalog.Boards {
		marker := "  "
		style := r.theme.Normal
		if b.Slug == current {
			marker = iconStyle.Render(IconCursor) + " "
			style = r.theme.ListItemSelected
		}
		fmt.Fprintf(&sb, "  %s%s %s\n", marker, style.Render(b.Slug), r.theme.Subtle.Render(b.Name))
	}
	return sb.String()
}
