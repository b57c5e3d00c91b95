package form

import (
	"github.com/bnema/eve/internal/document"
	"github.com/bnema/eve/internal/schema"
)

func renderAnyOf(env Env, path Path, label string, node *schema.AnyOf, value any, onChange ChangeFunc) Widget {
	var options []schema.Node
	for _, opt := range node.Options {
		if opt.Kind() != schema.KindRawYAML {
			options = append(options, opt)
		}
	}
	if len(options) == 0 {
		return &Unsupported{Path: path.String(), Label: label, Message: "Unsupported any_of (no usable options)."}
	}

	stateKey := path.Scope("__any_of")
	idx := InferAnyOf(options, value)
	if e, ok := env.State.Lookup(stateKey.String()); ok && e.AnyOf != nil {
		idx = min(max(*e.AnyOf, 0), len(options)-1)
	}

	w := &AnyOf{Path: stateKey.String(), Label: label, Selected: idx}
	if len(options) > 1 {
		for _, opt := range options {
			w.Alternatives = append(w.Alternatives, schema.Title(opt, string(opt.Kind())))
		}
		w.Select = func(i int) {
			if i < 0 || i >= len(options) {
				return
			}
			sel := i
			env.State.Entry(stateKey.String()).AnyOf = &sel
			env.requestUpdate()
			if _, isObj := options[i].(*schema.Object); isObj {
				if _, ok := value.(*document.Mapping); !ok {
					onChange(document.NewMapping())
				}
			}
		}
	}

	bodyPath := stateKey
	switch options[idx].(type) {
	case *schema.Object:
		bodyPath = stateKey.Scope("__obj")
	case *schema.Array:
		bodyPath = stateKey.Scope("__arr")
	}
	w.Body = Render(env, bodyPath, options[idx], value, onChange)
	return w
}

// InferAnyOf picks the first option whose kind matches the shape of value,
// or 0 when none does.
func InferAnyOf(options []schema.Node, value any) int {
	for i, opt := range options {
		if anyOfMatches(opt, value) {
			return i
		}
	}
	return 0
}

func anyOfMatches(opt schema.Node, value any) bool {
	switch opt.(type) {
	case *schema.Object:
		_, ok := value.(*document.Mapping)
		return ok
	case *schema.Array:
		_, ok := value.([]any)
		return ok
	case *schema.Boolean:
		_, ok := value.(bool)
		return ok
	case *schema.Int, *schema.Float, *schema.Number:
		return document.IsNumber(value)
	case *schema.String, *schema.ID:
		switch value.(type) {
		case string, document.Secret, document.Tagged:
			return true
		}
	case *schema.Enum:
		switch value.(type) {
		case string:
			return true
		}
		return document.IsNumber(value)
	}
	return false
}
