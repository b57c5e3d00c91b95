package schema

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/invopop/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ToJSONSchema converts a schema tree to a JSON Schema document that external
// YAML tooling can validate against. Form-only hints are kept as x-eve-*
// extras.
func ToJSONSchema(n Node) *jsonschema.Schema {
	s := Visit[*jsonschema.Schema](n, jsonSchemaVisitor{})
	s.Version = jsonschema.Version
	return s
}

type jsonSchemaVisitor struct{}

func (v jsonSchemaVisitor) convert(n Node) *jsonschema.Schema {
	if n == nil {
		return &jsonschema.Schema{}
	}
	return Visit[*jsonschema.Schema](n, v)
}

func withHints(s *jsonschema.Schema, n Node) *jsonschema.Schema {
	ui := n.Hints()
	s.Title = ui.Title
	if ui.Secret {
		setExtra(s, "x-eve-secret", true)
	}
	if ui.IsMQTTOnly() {
		setExtra(s, "x-eve-mqtt", true)
	}
	return s
}

func setExtra(s *jsonschema.Schema, key string, value any) {
	if s.Extras == nil {
		s.Extras = make(map[string]any)
	}
	s.Extras[key] = value
}

func (v jsonSchemaVisitor) VisitObject(o *Object) *jsonschema.Schema {
	props := orderedmap.New[string, *jsonschema.Schema]()
	if o.Properties != nil {
		for p := o.Properties.Oldest(); p != nil; p = p.Next() {
			props.Set(p.Key, v.convert(p.Value))
		}
	}
	return withHints(&jsonschema.Schema{Type: "object", Properties: props, Required: o.Required}, o)
}

func (v jsonSchemaVisitor) VisitArray(a *Array) *jsonschema.Schema {
	return withHints(&jsonschema.Schema{Type: "array", Items: v.convert(a.Items)}, a)
}

func (v jsonSchemaVisitor) VisitMap(m *Map) *jsonschema.Schema {
	return withHints(&jsonschema.Schema{Type: "object", AdditionalProperties: v.convert(m.ValueNode())}, m)
}

func (v jsonSchemaVisitor) VisitString(s *String) *jsonschema.Schema {
	out := &jsonschema.Schema{Type: "string"}
	if s.Default != nil {
		out.Default = *s.Default
	}
	return withHints(out, s)
}

func (v jsonSchemaVisitor) VisitID(id *ID) *jsonschema.Schema {
	out := &jsonschema.Schema{Type: "string"}
	setExtra(out, "x-eve-kind", string(KindID))
	return withHints(out, id)
}

func (v jsonSchemaVisitor) VisitInt(i *Int) *jsonschema.Schema {
	return withHints(numericSchema("integer", i.Numeric), i)
}

func (v jsonSchemaVisitor) VisitFloat(f *Float) *jsonschema.Schema {
	return withHints(numericSchema("number", f.Numeric), f)
}

func (v jsonSchemaVisitor) VisitNumber(n *Number) *jsonschema.Schema {
	return withHints(numericSchema("number", n.Numeric), n)
}

func (v jsonSchemaVisitor) VisitBoolean(b *Boolean) *jsonschema.Schema {
	out := &jsonschema.Schema{Type: "boolean"}
	if b.Default != nil {
		out.Default = *b.Default
	}
	return withHints(out, b)
}

func (v jsonSchemaVisitor) VisitEnum(e *Enum) *jsonschema.Schema {
	out := &jsonschema.Schema{}
	labels := make(map[string]string)
	for _, opt := range e.Options {
		out.Enum = append(out.Enum, opt.Value)
		if opt.Label != "" {
			labels[fmt.Sprint(opt.Value)] = opt.Label
		}
	}
	if len(labels) > 0 {
		setExtra(out, "x-eve-labels", labels)
	}
	return withHints(out, e)
}

func (v jsonSchemaVisitor) VisitConst(c *Const) *jsonschema.Schema {
	return withHints(&jsonschema.Schema{Const: c.Value}, c)
}

func (v jsonSchemaVisitor) VisitPin(p *Pin) *jsonschema.Schema {
	out := &jsonschema.Schema{AnyOf: []*jsonschema.Schema{{Type: "string"}, {Type: "integer"}, {Type: "object"}}}
	setExtra(out, "x-eve-kind", string(KindPin))
	if len(p.Capabilities) > 0 {
		setExtra(out, "x-eve-capabilities", p.Capabilities)
	}
	return withHints(out, p)
}

func (v jsonSchemaVisitor) VisitAnyOf(a *AnyOf) *jsonschema.Schema {
	out := &jsonschema.Schema{}
	for _, opt := range a.Options {
		out.AnyOf = append(out.AnyOf, v.convert(opt))
	}
	return withHints(out, a)
}

func (v jsonSchemaVisitor) VisitRawYAML(r *RawYAML) *jsonschema.Schema {
	out := &jsonschema.Schema{Description: r.Reason}
	setExtra(out, "x-eve-kind", string(KindRawYAML))
	return withHints(out, r)
}

func numericSchema(typ string, n Numeric) *jsonschema.Schema {
	out := &jsonschema.Schema{Type: typ}
	if n.Minimum != nil {
		out.Minimum = jsonNumber(*n.Minimum)
	}
	if n.Maximum != nil {
		out.Maximum = jsonNumber(*n.Maximum)
	}
	if n.Default != nil {
		out.Default = *n.Default
	}
	return out
}

func jsonNumber(f float64) json.Number {
	return json.Number(strconv.FormatFloat(f, 'f', -1, 64))
}
