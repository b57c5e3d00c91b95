// Package model provides Bubble Tea models for CLI commands.
package model

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/eve/internal/application/port"
	"github.com/bnema/eve/internal/cli/styles"
	"github.com/bnema/eve/internal/domain/entity"
	"github.com/bnema/eve/internal/editor"
	"github.com/bnema/eve/internal/logging"
)

type rowKind int

const (
	rowCore rowKind = iota
	rowComponent
	rowDisabled
)

// treeRow is one selectable line of the browser.
type treeRow struct {
	kind     rowKind
	domain   string
	core     entity.CoreEntry
	optional bool
	item     entity.ComponentItem
	disabled entity.DisabledComponent
}

func (r treeRow) selection() entity.Selection {
	switch r.kind {
	case rowComponent:
		return entity.ComponentSelection(r.item.Domain, r.item.Index, r.item.Platform)
	case rowDisabled:
		return entity.DisabledComponentSelection(r.disabled.Domain, r.disabled.Key, r.disabled.Platform)
	}
	return entity.CoreSelection(r.core.Key)
}

func (r treeRow) label() string {
	switch r.kind {
	case rowComponent:
		return fmt.Sprintf("%s.%s", r.item.Domain, r.item.Platform)
	case rowDisabled:
		return fmt.Sprintf("%s.%s", r.disabled.Domain, r.disabled.Platform)
	}
	return r.core.Key
}

// TreeModel browses a document's sections and toggles or deletes them
// through the editor store. Changes stay in memory until written.
type TreeModel struct {
	help    help.Model
	keys    styles.TreeKeyMap
	confirm *styles.ConfirmModel
	// quitAfterConfirm marks the pending confirm as a discard-and-quit prompt.
	quitAfterConfirm bool

	rows          []treeRow
	selectedIdx   int
	width         int
	height        int
	statusMessage string
	savedText     string

	ctx   context.Context
	path  string
	store *editor.Store
	repo  port.DocumentRepository
	theme *styles.Theme
}

// NewTreeModel creates a browser for the document in store, which was read
// from path.
func NewTreeModel(ctx context.Context, theme *styles.Theme, repo port.DocumentRepository, path string, store *editor.Store) TreeModel {
	m := TreeModel{
		help:      styles.NewStyledHelp(theme),
		keys:      styles.DefaultTreeKeyMap(),
		width:     80,
		height:    24,
		savedText: store.Text(),
		ctx:       ctx,
		path:      path,
		store:     store,
		repo:      repo,
		theme:     theme,
	}
	m.rebuild()
	return m
}

func (m *TreeModel) rebuild() {
	tree := m.store.Tree()
	rows := make([]treeRow, 0, len(tree.Core))
	for _, c := range tree.Core {
		rows = append(rows, treeRow{kind: rowCore, core: c, optional: m.store.IsOptionalCore(c.Key)})
	}
	for _, d := range tree.Domains {
		for _, it := range tree.Items[d] {
			rows = append(rows, treeRow{kind: rowComponent, domain: d, item: it})
		}
		for _, dc := range tree.Disabled[d] {
			rows = append(rows, treeRow{kind: rowDisabled, domain: d, disabled: dc})
		}
	}
	m.rows = rows
	if m.selectedIdx >= len(m.rows) {
		m.selectedIdx = len(m.rows) - 1
	}
	if m.selectedIdx < 0 {
		m.selectedIdx = 0
	}
}

// Dirty reports whether the store holds unsaved changes.
func (m TreeModel) Dirty() bool {
	return m.store.Text() != m.savedText
}

// Init implements tea.Model.
func (TreeModel) Init() tea.Cmd {
	return nil
}

// documentSavedMsg is sent when the document was written.
type documentSavedMsg struct {
	text string
	err  error
}

// documentLoadedMsg is sent when the document was read again.
type documentLoadedMsg struct {
	text string
	err  error
}

// Update implements tea.Model.
func (m TreeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.confirm != nil {
		return m.handleConfirmModal(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case documentSavedMsg:
		if msg.err != nil {
			m.statusMessage = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}
		m.savedText = msg.text
		m.statusMessage = "Wrote " + m.path
		return m, nil

	case documentLoadedMsg:
		if msg.err != nil {
			m.statusMessage = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}
		m.store.SetText(msg.text)
		m.savedText = msg.text
		m.rebuild()
		m.statusMessage = "Reloaded " + m.path
		return m, nil
	}
	return m, nil
}

func (m TreeModel) handleConfirmModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	confirm, cmd := m.confirm.Update(msg)
	m.confirm = &confirm
	if !m.confirm.Done() {
		return m, cmd
	}

	accepted := m.confirm.Result()
	m.confirm = nil
	if m.quitAfterConfirm {
		m.quitAfterConfirm = false
		if accepted {
			return m, tea.Quit
		}
		return m, nil
	}
	if accepted && m.selectedIdx < len(m.rows) {
		row := m.rows[m.selectedIdx]
		if err := m.store.Delete(row.selection()); err != nil {
			m.statusMessage = fmt.Sprintf("Error: %v", err)
		} else {
			m.statusMessage = m.store.Message()
		}
		m.rebuild()
	}
	return m, cmd
}

func (m TreeModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.Dirty() {
			confirm := styles.NewConfirm(m.theme, "Discard unsaved changes?")
			m.confirm = &confirm
			m.quitAfterConfirm = true
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.selectedIdx > 0 {
			m.selectedIdx--
		}

	case key.Matches(msg, m.keys.Down):
		if m.selectedIdx < len(m.rows)-1 {
			m.selectedIdx++
		}

	case key.Matches(msg, m.keys.Top):
		m.selectedIdx = 0

	case key.Matches(msg, m.keys.Bottom):
		m.selectedIdx = max(len(m.rows)-1, 0)

	case key.Matches(msg, m.keys.Toggle):
		m.toggleSelected()

	case key.Matches(msg, m.keys.Delete):
		if m.selectedIdx < len(m.rows) {
			row := m.rows[m.selectedIdx]
			if row.kind == rowCore && (row.core.Key == "esphome" || row.core.Key == "board") {
				m.statusMessage = fmt.Sprintf("%s cannot be deleted", row.core.Key)
				return m, nil
			}
			confirm := styles.NewConfirm(m.theme, fmt.Sprintf("Delete %s?", row.label()))
			m.confirm = &confirm
		}

	case key.Matches(msg, m.keys.Save):
		return m, m.save()

	case key.Matches(msg, m.keys.Reload):
		return m, m.reload()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *TreeModel) toggleSelected() {
	if m.selectedIdx >= len(m.rows) {
		return
	}
	row := m.rows[m.selectedIdx]
	log := logging.FromContext(m.ctx)

	var err error
	switch row.kind {
	case rowCore:
		if !row.optional {
			m.statusMessage = fmt.Sprintf("%s is required", row.core.Key)
			return
		}
		err = m.store.ToggleOptionalCore(row.core.Key, !row.core.Present)
	case rowComponent:
		_, err = m.store.DisableComponent(row.item.Domain, row.item.Index)
	case rowDisabled:
		err = m.store.EnableComponent(row.disabled.Domain, row.disabled.Key)
	}
	if err != nil {
		log.Warn().Err(err).Str("row", row.label()).Msg("toggle failed")
		m.statusMessage = fmt.Sprintf("Error: %v", err)
	} else {
		m.statusMessage = m.store.Message()
	}
	m.rebuild()
}

func (m TreeModel) save() tea.Cmd {
	text := m.store.Text()
	return func() tea.Msg {
		err := m.repo.Write(m.ctx, m.path, text)
		return documentSavedMsg{text: text, err: err}
	}
}

func (m TreeModel) reload() tea.Cmd {
	return func() tea.Msg {
		text, err := m.repo.Read(m.ctx, m.path)
		return documentLoadedMsg{text: text, err: err}
	}
}

// View implements tea.Model.
func (m TreeModel) View() string {
	if m.confirm != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.confirm.View())
	}

	t := m.theme
	var sb strings.Builder

	title := fmt.Sprintf("%s %s", lipgloss.NewStyle().Foreground(t.Accent).Render(styles.IconTree), t.Title.Render(m.path))
	if m.Dirty() {
		title += " " + t.Badge.Render("modified")
	}
	sb.WriteString(title + "\n\n")

	if pe := m.store.ParseError(); pe != nil {
		sb.WriteString(t.ErrorStyle.Render(pe.Error()) + "\n\n")
	}

	listHeight := max(m.height-8, 3)
	sb.WriteString(m.renderRows(listHeight))

	if m.statusMessage != "" {
		sb.WriteString("\n" + t.Subtle.Render(m.statusMessage) + "\n")
	}
	sb.WriteString("\n" + m.help.View(m.keys))
	return sb.String()
}

// renderRows renders a window of rows that keeps the selection visible.
func (m TreeModel) renderRows(height int) string {
	t := m.theme
	start := 0
	if m.selectedIdx >= height {
		start = m.selectedIdx - height + 1
	}
	end := min(start+height, len(m.rows))

	var sb strings.Builder
	lastDomain := "\x00"
	for i := start; i < end; i++ {
		row := m.rows[i]
		if row.kind != rowCore && row.domain != lastDomain {
			sb.WriteString("  " + t.BoxHeader.Render(row.domain) + "\n")
			lastDomain = row.domain
		}

		cursor := "  "
		style := t.ListItem
		if i == m.selectedIdx {
			cursor = lipgloss.NewStyle().Foreground(t.Accent).Render(styles.IconCursor) + " "
			style = t.ListItemSelected
		}

		icon := styles.IconCheckboxChecked
		var suffix string
		switch row.kind {
		case rowCore:
			if !row.core.Present {
				icon = styles.IconCheckboxEmpty
			}
			if !row.optional {
				suffix = " " + t.Subtle.Render(styles.IconLock)
			}
		case rowComponent:
			suffix = " " + t.Subtle.Render(fmt.Sprintf("[%d]", row.item.Index))
		case rowDisabled:
			icon = styles.IconCheckboxEmpty
			suffix = " " + t.Subtle.Render(row.disabled.Hash)
		}
		label := row.label()
		if row.kind == rowDisabled || (row.kind == rowCore && !row.core.Present) {
			label = t.Subtle.Render(label)
		}
		sb.WriteString(cursor + style.Render(icon+" "+label) + suffix + "\n")
	}
	return sb.String()
}
