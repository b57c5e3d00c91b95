package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sensorSchema = `{
  "type": "object",
  "required": ["pin"],
  "properties": {
    "platform": {"type": "const", "value": "dht"},
    "pin": {"type": "pin", "capabilities": ["input"]},
    "update_interval": {"type": "string", "default": "60s"},
    "model": {"type": "enum", "options": [{"value": "AUTO_DETECT", "label": "Auto"}, {"value": "DHT22"}]},
    "temperature": {"type": "object", "properties": {"name": {"type": "string"}, "id": {"type": "id"}}},
    "accuracy_decimals": {"type": "int", "minimum": 0, "maximum": 6},
    "offset": {"type": "float", "default": 0.5},
    "filters": {"type": "array", "items": {"type": "any_of", "options": [{"type": "object", "properties": {"multiply": {"type": "number"}}}, {"type": "raw_yaml", "reason": "lambda"}]}},
    "labels": {"type": "map", "value": {"type": "boolean", "default": true}},
    "mqtt_topic": {"type": "string", "ui": {"only_with": "mqtt", "title": "MQTT topic", "origins": ["core.mqtt", "core.mqtt"]}}
  }
}`

func TestDecode(t *testing.T) {
	n, err := Decode([]byte(sensorSchema))
	require.NoError(t, err)

	obj, ok := n.(*Object)
	require.True(t, ok)

	var keys []string
	for p := obj.Properties.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	assert.Equal(t, []string{"platform", "pin", "update_interval", "model", "temperature", "accuracy_decimals", "offset", "filters", "labels", "mqtt_topic"}, keys)
	assert.True(t, obj.IsRequired("pin"))
	assert.False(t, obj.IsRequired("model"))

	t.Run("scalars", func(t *testing.T) {
		platform, _ := obj.Properties.Get("platform")
		assert.Equal(t, "dht", platform.(*Const).Value)

		pin, _ := obj.Properties.Get("pin")
		assert.Equal(t, []string{"input"}, pin.(*Pin).Capabilities)

		interval, _ := obj.Properties.Get("update_interval")
		require.NotNil(t, interval.(*String).Default)
		assert.Equal(t, "60s", *interval.(*String).Default)

		decimals, _ := obj.Properties.Get("accuracy_decimals")
		assert.Equal(t, 6.0, *decimals.(*Int).Maximum)

		offset, _ := obj.Properties.Get("offset")
		assert.Equal(t, KindFloat, offset.Kind())
		assert.Equal(t, 0.5, *offset.(*Float).Default)
	})

	t.Run("enum options", func(t *testing.T) {
		model, _ := obj.Properties.Get("model")
		assert.Equal(t, []EnumOption{{Value: "AUTO_DETECT", Label: "Auto"}, {Value: "DHT22"}}, model.(*Enum).Options)
	})

	t.Run("nested containers", func(t *testing.T) {
		filters, _ := obj.Properties.Get("filters")
		items := filters.(*Array).Items.(*AnyOf)
		require.Len(t, items.Options, 2)
		assert.Equal(t, KindObject, items.Options[0].Kind())
		assert.Equal(t, "lambda", items.Options[1].(*RawYAML).Reason)

		labels, _ := obj.Properties.Get("labels")
		assert.Equal(t, KindBoolean, labels.(*Map).ValueNode().Kind())
	})

	t.Run("ui hints", func(t *testing.T) {
		topic, _ := obj.Properties.Get("mqtt_topic")
		ui := topic.Hints()
		assert.Equal(t, "MQTT topic", ui.Title)
		assert.Equal(t, []string{"core.mqtt"}, ui.Origins)
		assert.True(t, ui.IsMQTTOnly())
		assert.Equal(t, "MQTT topic", Title(topic, "mqtt_topic"))

		model, _ := obj.Properties.Get("model")
		assert.Equal(t, "model", Title(model, "model"))
	})
}

func TestDecodeNumericLiterals(t *testing.T) {
	n, err := Decode([]byte(`{"type":"enum","options":[{"value":1},{"value":2.5},{"value":true}]}`))
	require.NoError(t, err)

	opts := n.(*Enum).Options
	assert.Equal(t, 1, opts[0].Value)
	assert.Equal(t, 2.5, opts[1].Value)
	assert.Equal(t, true, opts[2].Value)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"unknown type", `{"type":"tuple"}`},
		{"bad json", `{"type":`},
		{"bad nested property", `{"type":"object","properties":{"a":{"type":"nope"}}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.in))
			assert.Error(t, err)
		})
	}

	_, err := Decode([]byte(`{"type":"tuple"}`))
	assert.ErrorIs(t, err, ErrUnknownKind)
}

type kindCounter struct{ seen map[Kind]int }

func (k kindCounter) count(n Node) Kind          { k.seen[n.Kind()]++; return n.Kind() }
func (k kindCounter) VisitObject(n *Object) Kind { return k.count(n) }
func (k kindCounter) VisitArray(n *Array) Kind   { return k.count(n) }
func (k kindCounter) VisitMap(n *Map) Kind       { return k.count(n) }
func (k kindCounter) VisitString(n *String) Kind { return k.count(n) }
func (k kindCounter) VisitID(n *ID) Kind         { return k.count(n) }
func (k kindCounter) VisitInt(n *Int) Kind       { return k.count(n) }
func (k kindCounter) VisitFloat(n *Float) Kind   { return k.count(n) }
func (k kindCounter) VisitNumber(n *Number) Kind { return k.count(n) }
func (k kindCounter) VisitBoolean(n *Boolean) Kind {
	return k.count(n)
}
func (k kindCounter) VisitEnum(n *Enum) Kind       { return k.count(n) }
func (k kindCounter) VisitConst(n *Const) Kind     { return k.count(n) }
func (k kindCounter) VisitPin(n *Pin) Kind         { return k.count(n) }
func (k kindCounter) VisitAnyOf(n *AnyOf) Kind     { return k.count(n) }
func (k kindCounter) VisitRawYAML(n *RawYAML) Kind { return k.count(n) }

func TestVisit(t *testing.T) {
	all := []Node{
		&Object{}, &Array{}, &Map{}, &String{}, &ID{}, &Int{}, &Float{}, &Number{},
		&Boolean{}, &Enum{}, &Const{}, &Pin{}, &AnyOf{}, &RawYAML{},
	}
	counter := kindCounter{seen: make(map[Kind]int)}

	for _, n := range all {
		assert.Equal(t, n.Kind(), Visit[Kind](n, counter))
	}
	assert.Len(t, counter.seen, len(all))
}

func TestToJSONSchema(t *testing.T) {
	n, err := Decode([]byte(sensorSchema))
	require.NoError(t, err)

	out := ToJSONSchema(n)
	data, err := json.Marshal(out)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, "object", doc["type"])
	assert.Equal(t, []any{"pin"}, doc["required"])

	props := doc["properties"].(map[string]any)
	decimals := props["accuracy_decimals"].(map[string]any)
	assert.Equal(t, "integer", decimals["type"])
	assert.Equal(t, 6.0, decimals["maximum"])

	labels := props["labels"].(map[string]any)
	assert.Equal(t, "boolean", labels["additionalProperties"].(map[string]any)["type"])

	topic := props["mqtt_topic"].(map[string]any)
	assert.Equal(t, "MQTT topic", topic["title"])
	assert.Equal(t, true, topic["x-eve-mqtt"])

	model := props["model"].(map[string]any)
	assert.Equal(t, []any{"AUTO_DETECT", "DHT22"}, model["enum"])
}
