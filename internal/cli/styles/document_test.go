package styles_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/eve/internal/cli/styles"
	"github.com/bnema/eve/internal/domain/entity"
	"github.com/bnema/eve/internal/form"
)

func TestDocumentRenderer_RenderFormatted(t *testing.T) {
	r := styles.NewDocumentRenderer(styles.NewTheme())

	assert.Contains(t, r.RenderFormatted("node.yaml", true, true), "formatted")
	assert.Contains(t, r.RenderFormatted("node.yaml", true, false), "would be reformatted")
	assert.Contains(t, r.RenderFormatted("node.yaml", false, false), "already formatted")
}

func TestDocumentRenderer_RenderBlocks(t *testing.T) {
	r := styles.NewDocumentRenderer(styles.NewTheme())

	assert.Contains(t, r.RenderBlocks(nil), "No disabled blocks")

	out := r.RenderBlocks([]styles.BlockRow{
		{Kind: "core", Domain: "wifi", Line: 3},
		{Kind: "component", Domain: "sensor", Platform: "dht", Hash: "0a1b2c3d", Line: 12},
	})
	assert.Contains(t, out, "wifi")
	assert.Contains(t, out, "sensor.dht")
	assert.Contains(t, out, "0a1b2c3d")
	assert.Contains(t, out, "line 12")
}

func TestDocumentRenderer_RenderTree(t *testing.T) {
	r := styles.NewDocumentRenderer(styles.NewTheme())
	tree := entity.Tree{
		Core:    []entity.CoreEntry{{Key: "esphome", Present: true}, {Key: "wifi"}},
		Domains: []string{"sensor"},
		Items:   map[string][]entity.ComponentItem{"sensor": {{Domain: "sensor", Index: 0, Platform: "dht"}}},
		Disabled: map[string][]entity.DisabledComponent{"sensor": {
			{Key: "sensor:adc:12345678", Domain: "sensor", Platform: "adc", Hash: "12345678"},
		}},
	}

	out := r.RenderTree(tree)
	assert.Contains(t, out, "esphome")
	assert.Contains(t, out, "wifi")
	assert.Contains(t, out, "[0]")
	assert.Contains(t, out, "sensor:adc:12345678")
}

func TestDocumentRenderer_RenderIssueAndLocation(t *testing.T) {
	r := styles.NewDocumentRenderer(styles.NewTheme())

	assert.Equal(t, "node.yaml:4:3\n", r.RenderLocation("node.yaml", 4, 3))
	assert.Contains(t, r.RenderIssue("node.yaml", 4, 0, entity.SeverityWarning, "odd"), "node.yaml:4")
	assert.Contains(t, r.RenderIssue("node.yaml", 4, 2, entity.SeverityError, "bad"), "node.yaml:4:2")
	assert.Empty(t, r.RenderMessage(""))
	assert.Contains(t, r.RenderToggled("sensor.dht", false, "sensor:dht:12345678"), "sensor:dht:12345678")
}

func TestFormRenderer_Render(t *testing.T) {
	r := styles.NewFormRenderer(styles.NewTheme())
	w := &form.Form{
		Divider: 1,
		Fields: []form.Widget{
			&form.TextInput{Label: "Name", Value: "Kitchen"},
			&form.TextInput{Label: "Password", Value: "hunter2", Masked: true},
			&form.Switch{Label: "Internal", Checked: true},
			&form.Choice{Label: "Model", Options: []form.ChoiceOption{{Label: "DHT11"}, {Label: "DHT22", Active: true}}},
			&form.Group{Title: "Temperature", Body: &form.Form{Divider: -1, Fields: []form.Widget{
				&form.NumberInput{Label: "Accuracy", Value: "2", Integer: true},
			}}},
			&form.CodeEditor{Label: "On boot", Text: "- logger.log: hi\n", Invalid: true},
			&form.List{Label: "Filters", Rows: []form.ListRow{{Item: &form.ReadOnly{Text: "offset"}}}},
			&form.Unsupported{Label: "Weird", Message: "not supported"},
		},
	}

	out := r.Render("Sensor DHT", "https://esphome.io/components/sensor/dht", w)
	assert.Contains(t, out, "Sensor DHT")
	assert.Contains(t, out, "esphome.io")
	assert.Contains(t, out, "Kitchen")
	assert.NotContains(t, out, "hunter2")
	assert.Contains(t, out, "optional")
	assert.Contains(t, out, "Temperature")
	assert.Contains(t, out, "Accuracy")
	assert.Contains(t, out, "logger.log")
	assert.Contains(t, out, "invalid")
	assert.Contains(t, out, "1 items")
	assert.Contains(t, out, "not supported")
}

func TestFormRenderer_RenderBoards(t *testing.T) {
	r := styles.NewFormRenderer(styles.NewTheme())

	assert.Contains(t, r.RenderBoards(nil, ""), "No boards")

	out := r.RenderBoards(&entity.BoardCatalog{Target: "esp32", Boards: []entity.Board{
		{Slug: "esp32dev", Name: "Espressif ESP32 Dev Module"},
		{Slug: "nodemcu-32s", Name: "NodeMCU-32S"},
	}}, "esp32dev")
	assert.Contains(t, out, "esp32 boards")
	assert.Contains(t, out, "nodemcu-32s")
}
