package form

import (
	"strings"

	"github.com/bnema/eve/internal/document"
	"github.com/bnema/eve/internal/schema"
)

// Render builds the widget for node holding value. The widget is inline: it
// has no label and objects render as bare forms.
func Render(env Env, path Path, node schema.Node, value any, onChange ChangeFunc) Widget {
	return schema.Visit[Widget](node, &renderer{env: env, path: path, ui: node.Hints(), value: value, onChange: onChange, inline: true})
}

// RenderObject renders the root form of a core section or component. Keys in
// hidden, such as platform, are not shown.
func RenderObject(env Env, path Path, node *schema.Object, value *document.Mapping, onChange func(*document.Mapping), hidden ...string) Widget {
	skip := make(map[string]bool, len(hidden))
	for _, k := range hidden {
		skip[k] = true
	}
	if value == nil {
		value = document.NewMapping()
	}
	return renderObjectForm(env, path, node, value, onChange, skip)
}

// renderer renders one field. path already includes the field key.
type renderer struct {
	env      Env
	path     Path
	key      string
	label    string
	ui       schema.UI
	value    any
	onChange ChangeFunc
	inline   bool
}

func renderField(env Env, parent Path, key string, node schema.Node, value any, required bool, onChange ChangeFunc) Widget {
	return schema.Visit[Widget](node, &renderer{
		env:      env,
		path:     parent.Field(key),
		key:      key,
		label:    fieldLabel(node, key, required),
		ui:       node.Hints(),
		value:    value,
		onChange: onChange,
	})
}

// fieldLabel is the ui title or key, with underscores as spaces and a
// trailing marker on required fields.
func fieldLabel(node schema.Node, key string, required bool) string {
	label := strings.ReplaceAll(schema.Title(node, key), "_", " ")
	if required {
		label += " *"
	}
	return label
}

func (r *renderer) keyHas(sub string) bool {
	return strings.Contains(strings.ToLower(r.key), sub)
}

func (r *renderer) codeLike() bool {
	return r.keyHas("code") || r.keyHas("lambda")
}

func (r *renderer) VisitObject(o *schema.Object) Widget {
	m, _ := r.value.(*document.Mapping)
	if m == nil {
		m = document.NewMapping()
	}
	onChange := func(next *document.Mapping) { r.onChange(next) }
	if r.inline {
		return renderObjectForm(r.env, r.path, o, m, onChange, nil)
	}
	return r.collapsible(r.path, r.label, func() Widget {
		return renderObjectForm(r.env, r.path, o, m, onChange, nil)
	})
}

func (r *renderer) collapsible(path Path, title string, body func() Widget) Widget {
	key := path.String()
	collapsed := r.env.State.collapsed(key)
	g := &Group{
		Path:      key,
		Title:     title,
		Collapsed: collapsed,
		Toggle: func() {
			e := r.env.State.Entry(key)
			e.Collapsed = !e.Collapsed
			r.env.requestUpdate()
		},
	}
	if !collapsed {
		g.Body = body()
	}
	return g
}

func (r *renderer) VisitArray(a *schema.Array) Widget {
	return renderArray(r.env, r.path, r.label, a, r.value, r.onChange)
}

func (r *renderer) VisitMap(m *schema.Map) Widget {
	value, _ := r.value.(*document.Mapping)
	draftPath := r.path.Scope("__mapDraft")
	return renderMapEditor(r.env, r.path, draftPath, r.label, m.ValueNode(), value, func(next *document.Mapping) { r.onChange(next) })
}

func (r *renderer) VisitString(*schema.String) Widget {
	if !r.inline && r.keyHas("pin") {
		return r.pinPicker(nil)
	}
	return r.textInput(r.codeLike())
}

func (r *renderer) VisitID(*schema.ID) Widget {
	if !r.inline && r.keyHas("pin") {
		return r.pinPicker(nil)
	}
	return r.textInput(false)
}

func (r *renderer) VisitInt(*schema.Int) Widget {
	return r.numberInput(true)
}

func (r *renderer) VisitFloat(*schema.Float) Widget {
	return r.numberInput(false)
}

func (r *renderer) VisitNumber(*schema.Number) Widget {
	return r.numberInput(false)
}

func (r *renderer) VisitBoolean(*schema.Boolean) Widget {
	on, _ := r.value.(bool)
	return &Switch{
		Path:    r.path.String(),
		Label:   r.label,
		Checked: on,
		Set:     func(next bool) { r.onChange(next) },
	}
}

func (r *renderer) VisitEnum(e *schema.Enum) Widget {
	current, hasCurrent := enumText(r.value)
	c := &Choice{Path: r.path.String(), Label: r.label}
	for _, opt := range e.Options {
		text, _ := enumText(opt.Value)
		label := opt.Label
		if label == "" {
			label = text
		}
		c.Options = append(c.Options, ChoiceOption{Label: label, Value: opt.Value, Active: hasCurrent && current == text})
	}
	c.Choose = func(i int) {
		if i >= 0 && i < len(e.Options) {
			r.onChange(e.Options[i].Value)
		}
	}
	return c
}

func enumText(v any) (string, bool) {
	switch v.(type) {
	case string, int, int64, uint64, float64:
		return document.FormatScalar(v), true
	}
	return "", false
}

func (r *renderer) VisitConst(c *schema.Const) Widget {
	return &ReadOnly{Path: r.path.String(), Label: r.label, Text: document.FormatScalar(c.Value)}
}

func (r *renderer) VisitPin(p *schema.Pin) Widget {
	return r.pinPicker(p.Capabilities)
}

func (r *renderer) VisitAnyOf(a *schema.AnyOf) Widget {
	return renderAnyOf(r.env, r.path, r.label, a, r.value, r.onChange)
}

func (r *renderer) VisitRawYAML(*schema.RawYAML) Widget {
	return renderRawYAML(r.env, r.path, r.label, r.value, r.onChange, rawYAMLOptions{
		automation: strings.HasPrefix(r.key, "on_") || r.key == "then",
		codeHint:   r.codeLike(),
	})
}
