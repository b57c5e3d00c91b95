package model

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/eve/internal/cli/styles"
)

type blocksKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Quit key.Binding
}

func (k blocksKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Quit}
}

func (k blocksKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Quit}}
}

// BlocksModel shows disabled blocks in a scrollable table.
type BlocksModel struct {
	table table.Model
	help  help.Model
	keys  blocksKeyMap
	theme *styles.Theme
}

// NewBlocksModel creates a table of rows.
func NewBlocksModel(theme *styles.Theme, rows []styles.BlockRow) BlocksModel {
	trs := make([]table.Row, len(rows))
	for i, r := range rows {
		trs[i] = r.ToRow()
	}
	return BlocksModel{
		table: styles.NewStyledTable(theme, styles.BlockTableColumns(), trs, 72, min(len(trs)+3, 20)),
		help:  styles.NewStyledHelp(theme),
		keys: blocksKeyMap{
			Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
			Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
			Quit: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
		},
		theme: theme,
	}
}

// Init implements tea.Model.
func (BlocksModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m BlocksModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, m.keys.Quit) {
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m BlocksModel) View() string {
	return m.theme.Box.Render(m.table.View()) + "\n" + m.help.View(m.keys)
}

// Selected returns the highlighted row, or nil when the table is empty.
func (m BlocksModel) Selected() table.Row {
	return m.table.SelectedRow()
}
