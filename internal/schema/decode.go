package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// UI holds presentation hints. Unrecognized hints are kept in Extra.
type UI struct {
	Title    string
	Secret   bool
	Group    string
	OnlyWith string
	Origins  []string
	Extra    map[string]any
}

// IsMQTTOnly reports whether the hints tie a field to the MQTT section.
func (u UI) IsMQTTOnly() bool {
	if strings.EqualFold(u.OnlyWith, "mqtt") || strings.EqualFold(u.Group, "mqtt") {
		return true
	}
	for _, o := range u.Origins {
		if strings.Contains(strings.ToLower(o), "mqtt") {
			return true
		}
	}
	return false
}

// UnmarshalJSON decodes the free-form ui object, ignoring hints of the wrong
// type.
func (u *UI) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*u = UI{}
	for k, v := range raw {
		switch k {
		case "title":
			u.Title, _ = v.(string)
		case "secret":
			u.Secret, _ = v.(bool)
		case "group":
			u.Group, _ = v.(string)
		case "only_with":
			u.OnlyWith, _ = v.(string)
		case "origin":
			if s, ok := v.(string); ok && s != "" {
				u.addOrigin(s)
			}
		case "origins":
			list, _ := v.([]any)
			for _, item := range list {
				if s, ok := item.(string); ok && s != "" {
					u.addOrigin(s)
				}
			}
		default:
			if u.Extra == nil {
				u.Extra = make(map[string]any)
			}
			u.Extra[k] = v
		}
	}
	return nil
}

func (u *UI) addOrigin(s string) {
	for _, o := range u.Origins {
		if o == s {
			return
		}
	}
	u.Origins = append(u.Origins, s)
}

type wireNode struct {
	Type         Kind                                              `json:"type"`
	Properties   *orderedmap.OrderedMap[string, json.RawMessage] `json:"properties,omitempty"`
	Required     []string                                          `json:"required,omitempty"`
	Items        json.RawMessage                                   `json:"items,omitempty"`
	Key          json.RawMessage                                   `json:"key,omitempty"`
	Value        json.RawMessage                                   `json:"value,omitempty"`
	Default      json.RawMessage                                   `json:"default,omitempty"`
	Minimum      *float64                                          `json:"minimum,omitempty"`
	Maximum      *float64                                          `json:"maximum,omitempty"`
	Options      []json.RawMessage                                 `json:"options,omitempty"`
	Capabilities []string                                          `json:"capabilities,omitempty"`
	Reason       string                                            `json:"reason,omitempty"`
	UI           *UI                                               `json:"ui,omitempty"`
}

type wireEnumOption struct {
	Value any    `json:"value"`
	Label string `json:"label,omitempty"`
}

// ErrUnknownKind is returned for a node whose type is not a known variant.
var ErrUnknownKind = errors.New("unknown schema node type")

// Decode parses a schema node from its JSON wire form, keeping object
// properties in declaration order.
func Decode(data []byte) (Node, error) {
	var w wireNode
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&w); err != nil {
		return nil, fmt.Errorf("decode schema node: %w", err)
	}

	base := Base{}
	if w.UI != nil {
		base.UI = *w.UI
	}

	switch w.Type {
	case KindObject:
		obj := &Object{Base: base, Properties: NewProperties(), Required: w.Required}
		if w.Properties != nil {
			for p := w.Properties.Oldest(); p != nil; p = p.Next() {
				child, err := Decode(p.Value)
				if err != nil {
					return nil, fmt.Errorf("property %q: %w", p.Key, err)
				}
				obj.Properties.Set(p.Key, child)
			}
		}
		return obj, nil
	case KindArray:
		items, err := decodeOptional(w.Items)
		if err != nil {
			return nil, fmt.Errorf("items: %w", err)
		}
		if items == nil {
			items = &String{}
		}
		return &Array{Base: base, Items: items}, nil
	case KindMap:
		key, err := decodeOptional(w.Key)
		if err != nil {
			return nil, fmt.Errorf("map key: %w", err)
		}
		value, err := decodeOptional(w.Value)
		if err != nil {
			return nil, fmt.Errorf("map value: %w", err)
		}
		return &Map{Base: base, Key: key, Value: value}, nil
	case KindString:
		s := &String{Base: base}
		if len(w.Default) > 0 {
			var d string
			if err := json.Unmarshal(w.Default, &d); err == nil {
				s.Default = &d
			}
		}
		return s, nil
	case KindID:
		return &ID{Base: base}, nil
	case KindInt:
		return &Int{Numeric: numeric(base, w)}, nil
	case KindFloat:
		return &Float{Numeric: numeric(base, w)}, nil
	case KindNumber:
		return &Number{Numeric: numeric(base, w)}, nil
	case KindBoolean:
		b := &Boolean{Base: base}
		if len(w.Default) > 0 {
			var d bool
			if err := json.Unmarshal(w.Default, &d); err == nil {
				b.Default = &d
			}
		}
		return b, nil
	case KindEnum:
		e := &Enum{Base: base}
		for i, raw := range w.Options {
			var opt wireEnumOption
			if err := unmarshalNumber(raw, &opt); err != nil {
				return nil, fmt.Errorf("enum option %d: %w", i, err)
			}
			e.Options = append(e.Options, EnumOption{Value: literal(opt.Value), Label: opt.Label})
		}
		return e, nil
	case KindConst:
		var v any
		if len(w.Value) > 0 {
			if err := unmarshalNumber(w.Value, &v); err != nil {
				return nil, fmt.Errorf("const value: %w", err)
			}
		}
		return &Const{Base: base, Value: literal(v)}, nil
	case KindPin:
		return &Pin{Base: base, Capabilities: w.Capabilities}, nil
	case KindAnyOf:
		a := &AnyOf{Base: base}
		for i, raw := range w.Options {
			opt, err := Decode(raw)
			if err != nil {
				return nil, fmt.Errorf("any_of option %d: %w", i, err)
			}
			a.Options = append(a.Options, opt)
		}
		return a, nil
	case KindRawYAML:
		return &RawYAML{Base: base, Reason: w.Reason}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, w.Type)
}

func decodeOptional(raw json.RawMessage) (Node, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	return Decode(raw)
}

func numeric(base Base, w wireNode) Numeric {
	n := Numeric{Base: base, Minimum: w.Minimum, Maximum: w.Maximum}
	if len(w.Default) > 0 {
		var d float64
		if err := json.Unmarshal(w.Default, &d); err == nil {
			n.Default = &d
		}
	}
	return n
}

func unmarshalNumber(raw json.RawMessage, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	return dec.Decode(v)
}

// literal turns json.Number into int when integral, float64 otherwise, so
// enum and const values compare equal to decoded YAML scalars.
func literal(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil {
		return int(i)
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}
