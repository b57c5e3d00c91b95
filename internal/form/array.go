package form

import (
	"fmt"
	"strings"

	"github.com/bnema/eve/internal/document"
	"github.com/bnema/eve/internal/schema"
)

func renderArray(env Env, path Path, label string, node *schema.Array, value any, onChange ChangeFunc) Widget {
	items, _ := value.([]any)
	list := &List{Path: path.String(), Label: label}

	replace := func(i int, next any) {
		out := make([]any, len(items))
		copy(out, items)
		out[i] = next
		onChange(out)
	}
	remove := func(i int) func() {
		return func() {
			out := make([]any, 0, len(items)-1)
			out = append(out, items[:i]...)
			onChange(append(out, items[i+1:]...))
		}
	}

	switch item := node.Items.(type) {
	case *schema.String, *schema.ID:
		for i, v := range items {
			i := i
			list.Rows = append(list.Rows, ListRow{
				Item: &TextInput{
					Path:  path.Index(i).String(),
					Value: itemText(v),
					Set:   func(text string) { replace(i, text) },
				},
				Remove: remove(i),
			})
		}
		list.Add = func() { onChange(appendItem(items, "")) }

	case *schema.Object:
		for i, v := range items {
			i := i
			m, _ := v.(*document.Mapping)
			if m == nil {
				m = document.NewMapping()
			}
			rowPath := path.Index(i)
			r := &renderer{env: env}
			list.Rows = append(list.Rows, ListRow{
				Item: r.collapsible(rowPath, fmt.Sprintf("Item %d", i+1), func() Widget {
					return renderObjectForm(env, rowPath.Scope("__obj"), item, m, func(next *document.Mapping) { replace(i, next) }, nil)
				}),
				Remove: remove(i),
			})
		}
		list.Add = func() { onChange(appendItem(items, document.NewMapping())) }

	default:
		for i, v := range items {
			i := i
			list.Rows = append(list.Rows, ListRow{
				Item: &TextInput{
					Path:  path.Index(i).String(),
					Value: itemText(v),
					Set:   func(text string) { replace(i, parseItem(text)) },
				},
				Remove: remove(i),
			})
		}
		list.Add = func() { onChange(appendItem(items, "")) }
	}
	return list
}

func appendItem(items []any, v any) []any {
	out := make([]any, len(items), len(items)+1)
	copy(out, items)
	return append(out, v)
}

// itemText shows a sequence item in a single-line input.
func itemText(v any) string {
	switch x := v.(type) {
	case nil, string, bool, int, int64, uint64, float64, document.Secret, document.Tagged:
		return document.FormatScalar(x)
	}
	text, err := document.Serialize(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return strings.TrimSpace(text)
}

// parseItem reads an edited item back as YAML, keeping the raw text when it
// does not parse.
func parseItem(text string) any {
	if strings.TrimSpace(text) == "" {
		return text
	}
	v, err := document.Parse(text)
	if err != nil {
		return text
	}
	return v
}
