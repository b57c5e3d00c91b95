package styles_test

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/bnema/eve/internal/cli/styles"
)

func TestConfirmModel(t *testing.T) {
	tests := []struct {
		name      string
		keys      []tea.KeyMsg
		done      bool
		confirmed bool
	}{
		{name: "yes key", keys: []tea.KeyMsg{{Type: tea.KeyRunes, Runes: []rune("y")}}, done: true, confirmed: true},
		{name: "no key", keys: []tea.KeyMsg{{Type: tea.KeyRunes, Runes: []rune("n")}}, done: true},
		{name: "enter defaults to no", keys: []tea.KeyMsg{{Type: tea.KeyEnter}}, done: true},
		{name: "right then enter", keys: []tea.KeyMsg{{Type: tea.KeyRight}, {Type: tea.KeyEnter}}, done: true, confirmed: true},
		{name: "escape cancels", keys: []tea.KeyMsg{{Type: tea.KeyEsc}}, done: true},
		{name: "move only", keys: []tea.KeyMsg{{Type: tea.KeyRight}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := styles.NewConfirm(styles.NewTheme(), "Delete sensor.dht?")
			for _, k := range tt.keys {
				m, _ = m.Update(k)
			}
			assert.Equal(t, tt.done, m.Done())
			assert.Equal(t, tt.confirmed, m.Result())
			assert.Contains(t, m.View(), "Delete sensor.dht?")
		})
	}
}
