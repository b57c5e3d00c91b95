package styles_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/eve/internal/application/port"
	"github.com/bnema/eve/internal/cli/styles"
	"github.com/bnema/eve/internal/domain/entity"
)

func TestConfigRenderer_RenderConfigInfo(t *testing.T) {
	r := styles.NewConfigRenderer(styles.NewTheme())

	out := r.RenderConfigInfo("/tmp/eve/config.toml", 3)
	assert.Contains(t, out, "config.toml")
	assert.Contains(t, out, "3")
	assert.Contains(t, out, "new settings available")

	out = r.RenderConfigInfo("/tmp/eve/config.toml", 0)
	assert.NotContains(t, out, "new settings available")
}

func TestConfigRenderer_RenderMissingKeys(t *testing.T) {
	r := styles.NewConfigRenderer(styles.NewTheme())

	assert.Empty(t, r.RenderMissingKeys(nil))

	out := r.RenderMissingKeys([]port.KeyInfo{
		{Key: "watch.debounce_ms", Type: "int", DefaultValue: "150"},
	})
	assert.Contains(t, out, "Missing settings (1)")
	assert.Contains(t, out, "watch.debounce_ms")
	assert.Contains(t, out, "150")
}

func TestConfigRenderer_Messages(t *testing.T) {
	r := styles.NewConfigRenderer(styles.NewTheme())

	assert.Contains(t, r.RenderMigrationSuccess(2, "/home/me/.config/eve/config.toml"), "config.toml")
	assert.Contains(t, r.RenderUpToDate("/x/config.toml"), "up to date")
	assert.Contains(t, r.RenderInitialized("/x/config.toml"), "/x/config.toml")
	assert.Contains(t, r.RenderError(errors.New("boom")), "boom")
	assert.Contains(t, r.RenderMigrateHint(), "eve config migrate")
	assert.Contains(t, r.RenderNoConfigFile("/x/config.toml"), "defaults apply")
}

func TestConfigRenderer_RenderDiff(t *testing.T) {
	r := styles.NewConfigRenderer(styles.NewTheme())

	out := r.RenderDiff("Settings migration changes:\n\n  + logging.compress = false\n  - editor.theme = \"dark\" (unknown)\n")
	assert.Contains(t, out, "logging.compress")
	assert.Contains(t, out, "editor.theme")
}

func TestConfigSchemaRenderer(t *testing.T) {
	r := styles.NewConfigSchemaRenderer(styles.NewTheme())
	keys := []entity.ConfigKeyInfo{
		{Key: "editor.max_highlights", Type: "int", Default: "200", Description: "Cap", Range: ">=1", Section: "Editor"},
		{Key: "logging.level", Type: "string", Default: "info", Description: "Level", Values: []string{"debug", "info"}, Section: "Logging"},
	}

	out := r.Render(keys)
	assert.Contains(t, out, "Settings Reference")
	assert.Contains(t, out, "editor.max_highlights")
	assert.Contains(t, out, "Range: >=1")
	assert.Contains(t, out, "Values: debug, info")
	assert.Less(t, strings.Index(out, "Editor"), strings.Index(out, "Logging"))

	js, err := r.RenderJSON(keys)
	require.NoError(t, err)
	assert.Contains(t, js, `"key": "logging.level"`)

	assert.Contains(t, r.Render(nil), "No settings keys")
}

