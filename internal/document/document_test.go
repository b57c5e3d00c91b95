package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	t.Run("preserves key order and scalar kinds", func(t *testing.T) {
		text := "esphome:\n  name: demo\nsensor:\n  - platform: dht\n    update_interval: 60s\n    accuracy: 1.5\n    pin: 4\n    internal: true\n"

		doc, err := ParseConfig(text)
		require.NoError(t, err)

		assert.Equal(t, []string{"esphome", "sensor"}, Keys(doc))
		sensors, _ := doc.Get("sensor")
		items, ok := sensors.([]any)
		require.True(t, ok)
		require.Len(t, items, 1)
		item := items[0].(*Mapping)
		assert.Equal(t, []string{"platform", "update_interval", "accuracy", "pin", "internal"}, Keys(item))
		v, _ := item.Get("accuracy")
		assert.Equal(t, 1.5, v)
		v, _ = item.Get("pin")
		assert.Equal(t, 4, v)
		v, _ = item.Get("internal")
		assert.Equal(t, true, v)
		v, _ = item.Get("update_interval")
		assert.Equal(t, "60s", v)
	})

	t.Run("empty text is an empty mapping", func(t *testing.T) {
		doc, err := ParseConfig("")
		require.NoError(t, err)
		assert.Equal(t, 0, doc.Len())
	})

	t.Run("null core sections become empty mappings", func(t *testing.T) {
		doc, err := ParseConfig("logger:\napi:\nfoo:\n")
		require.NoError(t, err)

		v, _ := doc.Get("logger")
		assert.IsType(t, &Mapping{}, v)
		v, _ = doc.Get("api")
		assert.IsType(t, &Mapping{}, v)
		v, _ = doc.Get("foo")
		assert.Nil(t, v)
	})

	t.Run("non-mapping root is an error", func(t *testing.T) {
		_, err := ParseConfig("- a\n- b\n")
		require.Error(t, err)
		pe, ok := AsParseError(err)
		require.True(t, ok)
		assert.Contains(t, pe.Msg, "mapping")
	})

	t.Run("syntax error carries a line", func(t *testing.T) {
		_, err := ParseConfig("esphome:\n  name: demo\n bad: [\n")
		require.Error(t, err)
		pe, ok := AsParseError(err)
		require.True(t, ok)
		pos, ok := pe.Position()
		require.True(t, ok)
		assert.Greater(t, pos.Line, 0)
	})

	t.Run("merge keys are resolved", func(t *testing.T) {
		doc, err := ParseConfig("base: &b\n  a: 1\nchild:\n  <<: *b\n  c: 2\n")
		require.NoError(t, err)
		child, _ := doc.Get("child")
		assert.Equal(t, map[string]any{"a": 1, "c": 2}, Plain(child))
	})
}

func TestSecretRoundTrip(t *testing.T) {
	text := "wifi:\n  ssid: !secret wifi_ssid\n  password: '!secret not_a_tag'\n"

	doc, err := ParseConfig(text)
	require.NoError(t, err)

	wifi, _ := doc.Get("wifi")
	ssid, _ := wifi.(*Mapping).Get("ssid")
	assert.Equal(t, Secret{Key: "wifi_ssid"}, ssid)
	password, _ := wifi.(*Mapping).Get("password")
	assert.Equal(t, "!secret not_a_tag", password)

	out, err := Serialize(doc)
	require.NoError(t, err)
	assert.Contains(t, out, "ssid: !secret wifi_ssid\n")
	assert.NotContains(t, out, "password: !secret")

	again, err := ParseConfig(out)
	require.NoError(t, err)
	assert.Equal(t, Plain(doc), Plain(again))
}

func TestTaggedScalarRoundTrip(t *testing.T) {
	text := "sensor:\n  - platform: template\n    lambda: !lambda return 1;\n"

	doc, err := ParseConfig(text)
	require.NoError(t, err)

	out, err := Serialize(doc)
	require.NoError(t, err)
	assert.Contains(t, out, "lambda: !lambda return 1;")

	again, err := ParseConfig(out)
	require.NoError(t, err)
	assert.Equal(t, Plain(doc), Plain(again))
}

func TestSerialize(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{
			name: "nested mapping with two-space indent",
			in:   MappingOf("esphome", MappingOf("name", "demo"), "logger", MappingOf("level", "DEBUG")),
			want: "esphome:\n  name: demo\nlogger:\n  level: DEBUG\n",
		},
		{
			name: "empty mapping is a flow mapping",
			in:   MappingOf("api", NewMapping()),
			want: "api: {}\n",
		},
		{
			name: "numeric-looking string stays a string",
			in:   MappingOf("name", "123"),
			want: "name: \"123\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Serialize(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unsupported type is an error", func(t *testing.T) {
		_, err := Serialize(MappingOf("x", struct{}{}))
		assert.Error(t, err)
	})
}

func TestRoundTrip(t *testing.T) {
	doc := MappingOf(
		"esphome", MappingOf("name", "demo", "friendly_name", "Demo"),
		"wifi", MappingOf("ssid", Secret{Key: "wifi_ssid"}, "power_save_mode", "none"),
		"sensor", []any{
			MappingOf("platform", "bme280", "address", 0x76, "update_interval", "60s"),
			MappingOf("platform", "adc", "pin", "GPIO34", "filters", []any{MappingOf("multiply", 3.3)}),
		},
		"switch", []any{MappingOf("platform", "gpio", "inverted", false, "id", nil)},
	)

	text, err := Serialize(doc)
	require.NoError(t, err)

	parsed, err := ParseConfig(text)
	require.NoError(t, err)
	assert.Equal(t, Plain(doc), Plain(parsed))
	assert.Equal(t, Keys(doc), Keys(parsed))
}

func TestClone(t *testing.T) {
	orig := MappingOf("sensor", []any{MappingOf("platform", "dht")})

	cp := CloneMapping(orig)
	items, _ := cp.Get("sensor")
	items.([]any)[0].(*Mapping).Set("platform", "adc")

	v, _ := orig.Get("sensor")
	p, _ := v.([]any)[0].(*Mapping).Get("platform")
	assert.Equal(t, "dht", p)
}

func TestLocate(t *testing.T) {
	text := "esphome:\n  name: demo\nsensor:\n  - platform: dht\n    temperature:\n      name: Temp\n  - platform: adc\n    pin: GPIO34\n"

	tests := []struct {
		name   string
		path   []any
		want   Position
		wantOK bool
	}{
		{"top-level key", []any{"esphome"}, Position{Line: 1, Column: 1}, true},
		{"nested key", []any{"esphome", "name"}, Position{Line: 2, Column: 3}, true},
		{"sequence item", []any{"sensor", 1}, Position{Line: 7, Column: 5}, true},
		{"key inside item", []any{"sensor", 1, "pin"}, Position{Line: 8, Column: 5}, true},
		{"deep key", []any{"sensor", 0, "temperature", "name"}, Position{Line: 6, Column: 7}, true},
		{"missing leaf falls back to parent", []any{"sensor", 0, "missing"}, Position{Line: 4, Column: 5}, true},
		{"out of range index falls back", []any{"sensor", 5}, Position{Line: 3, Column: 1}, true},
		{"missing first segment", []any{"wifi"}, Position{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Locate(text, tt.path)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("invalid text never panics", func(t *testing.T) {
		assert.NotPanics(t, func() {
			_, ok := Locate("a: [", []any{"a"})
			assert.False(t, ok)
		})
	})
}

func TestOrderTopLevel(t *testing.T) {
	doc := MappingOf("sensor", []any{}, "wifi", NewMapping(), "esp32", NewMapping(), "esphome", NewMapping(), "zeta", 1)

	ordered := OrderTopLevel(doc, []string{"esphome", "board", "wifi", "logger"})

	assert.Equal(t, []string{"esphome", "esp32", "wifi", "sensor", "zeta"}, Keys(ordered))
	assert.Equal(t, []string{"sensor", "wifi", "esp32", "esphome", "zeta"}, Keys(doc))
}

func TestSeparateTopLevelKeys(t *testing.T) {
	in := "esphome:\n  name: demo\nlogger: {}\nwifi:\n  ssid: x\n\nsensor:\n  - platform: dht\n"

	got := SeparateTopLevelKeys(in)

	assert.Equal(t, "esphome:\n  name: demo\nlogger: {}\n\nwifi:\n  ssid: x\n\nsensor:\n  - platform: dht", got)
}

func TestErrorPosition(t *testing.T) {
	pos, ok := ErrorPosition("bad indentation at line 3, column 7")
	require.True(t, ok)
	assert.Equal(t, Position{Line: 3, Column: 7}, pos)

	pos, ok = ErrorPosition("yaml: line 12: did not find expected key")
	require.True(t, ok)
	assert.Equal(t, Position{Line: 12}, pos)

	_, ok = ErrorPosition("something else")
	assert.False(t, ok)
}
