// Package schema defines the declarative field schema that drives the
// configuration form. A schema is a tree of Node values; the set of variants
// is closed and every consumer walks it through a Visitor.
package schema

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind is the wire discriminator of a schema node.
type Kind string

const (
	KindObject  Kind = "object"
	KindArray   Kind = "array"
	KindMap     Kind = "map"
	KindString  Kind = "string"
	KindID      Kind = "id"
	KindInt     Kind = "int"
	KindFloat   Kind = "float"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindEnum    Kind = "enum"
	KindConst   Kind = "const"
	KindPin     Kind = "pin"
	KindAnyOf   Kind = "any_of"
	KindRawYAML Kind = "raw_yaml"
)

// Node is one schema variant.
type Node interface {
	Kind() Kind
	Hints() UI
	node()
}

// Properties is an object's fields in declaration order.
type Properties = orderedmap.OrderedMap[string, Node]

// NewProperties returns an empty property list.
func NewProperties() *Properties {
	return orderedmap.New[string, Node]()
}

// Base carries the presentation hints shared by all variants.
type Base struct {
	UI UI
}

func (b Base) Hints() UI { return b.UI }
func (Base) node()       {}

type Object struct {
	Base
	Properties *Properties
	Required   []string
}

// IsRequired reports whether key is listed as required.
func (o *Object) IsRequired(key string) bool {
	for _, r := range o.Required {
		if r == key {
			return true
		}
	}
	return false
}

type Array struct {
	Base
	Items Node
}

// Map is a mapping with free-form keys. Value defaults to String when nil.
type Map struct {
	Base
	Key   Node
	Value Node
}

type String struct {
	Base
	Default *string
}

type ID struct {
	Base
}

// Numeric holds the bounds shared by Int, Float and Number.
type Numeric struct {
	Base
	Default *float64
	Minimum *float64
	Maximum *float64
}

type Int struct{ Numeric }

type Float struct{ Numeric }

type Number struct{ Numeric }

type Boolean struct {
	Base
	Default *bool
}

type EnumOption struct {
	Value any
	Label string
}

type Enum struct {
	Base
	Options []EnumOption
}

type Const struct {
	Base
	Value any
}

type Pin struct {
	Base
	Capabilities []string
}

type AnyOf struct {
	Base
	Options []Node
}

// RawYAML is edited as free-form YAML text.
type RawYAML struct {
	Base
	Reason string
}

func (*Object) Kind() Kind  { return KindObject }
func (*Array) Kind() Kind   { return KindArray }
func (*Map) Kind() Kind     { return KindMap }
func (*String) Kind() Kind  { return KindString }
func (*ID) Kind() Kind      { return KindID }
func (*Int) Kind() Kind     { return KindInt }
func (*Float) Kind() Kind   { return KindFloat }
func (*Number) Kind() Kind  { return KindNumber }
func (*Boolean) Kind() Kind { return KindBoolean }
func (*Enum) Kind() Kind    { return KindEnum }
func (*Const) Kind() Kind   { return KindConst }
func (*Pin) Kind() Kind     { return KindPin }
func (*AnyOf) Kind() Kind   { return KindAnyOf }
func (*RawYAML) Kind() Kind { return KindRawYAML }

// ValueNode returns the declared value schema, defaulting to String.
func (m *Map) ValueNode() Node {
	if m.Value == nil {
		return &String{}
	}
	return m.Value
}

// Title returns the ui title or fallback.
func Title(n Node, fallback string) string {
	if t := n.Hints().Title; t != "" {
		return t
	}
	return fallback
}
