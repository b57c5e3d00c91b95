package form

import "fmt"

// Unset is passed to a ChangeFunc to remove the field from its parent.
var Unset any = unset{}

type unset struct{}

// IsUnset reports whether v is the Unset marker.
func IsUnset(v any) bool {
	_, ok := v.(unset)
	return ok
}

// ChangeFunc receives the full replacement value of a field.
type ChangeFunc func(next any)

// Path addresses a widget. The UI string keys per-widget state and the key
// list addresses the value in the document, relative to the form root.
type Path struct {
	ui   string
	keys []any
}

// NewPath starts a path at root.
func NewPath(root string) Path {
	return Path{ui: root}
}

// Field descends into an object key.
func (p Path) Field(key string) Path {
	return Path{ui: p.ui + "." + key, keys: p.with(key)}
}

// Index descends into a sequence item.
func (p Path) Index(i int) Path {
	return Path{ui: fmt.Sprintf("%s[%d]", p.ui, i), keys: p.with(i)}
}

// Scope derives a UI-only sub path that addresses the same value.
func (p Path) Scope(name string) Path {
	return Path{ui: p.ui + "." + name, keys: p.keys}
}

func (p Path) String() string {
	return p.ui
}

// Keys returns the document key path.
func (p Path) Keys() []any {
	out := make([]any, len(p.keys))
	copy(out, p.keys)
	return out
}

func (p Path) with(seg any) []any {
	out := make([]any, len(p.keys), len(p.keys)+1)
	copy(out, p.keys)
	return append(out, seg)
}
