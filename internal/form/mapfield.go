package form

import (
	"strings"

	"github.com/bnema/eve/internal/document"
	"github.com/bnema/eve/internal/schema"
)

// renderMapEditor edits a mapping whose keys the user chooses. Entries are
// listed in key order; the draft row lives under draftPath.
func renderMapEditor(env Env, path, draftPath Path, label string, valueNode schema.Node, value *document.Mapping, onChange func(*document.Mapping)) Widget {
	if valueNode == nil {
		valueNode = &schema.String{}
	}
	draftKey := draftPath.String()
	draft := env.State.mapDraft(draftKey)
	setDraft := func(d MapDraft) {
		env.State.Entry(draftKey).MapDraft = d
		env.requestUpdate()
	}

	ed := &MapEditor{
		Path:       path.String(),
		Label:      label,
		DraftKey:   draft.Key,
		DraftValue: draft.Value,
		SetDraftKey: func(k string) {
			d := env.State.mapDraft(draftKey)
			d.Key = k
			setDraft(d)
		},
		SetDraftValue: func(v string) {
			d := env.State.mapDraft(draftKey)
			d.Value = v
			setDraft(d)
		},
		Add: func() {
			d := env.State.mapDraft(draftKey)
			key := strings.TrimSpace(d.Key)
			if key == "" {
				return
			}
			out := document.ShallowCopy(value)
			out.Set(key, d.Value)
			onChange(out)
			setDraft(MapDraft{})
		},
	}

	for _, k := range document.SortedKeys(value) {
		k := k
		current, _ := value.Get(k)
		ed.Entries = append(ed.Entries, MapEntry{
			Key: k,
			Rename: func(newKey string) {
				if newKey == k {
					return
				}
				out := document.ShallowCopy(value)
				out.Delete(k)
				if newKey != "" {
					out.Set(newKey, current)
				}
				onChange(out)
			},
			Remove: func() {
				out := document.ShallowCopy(value)
				out.Delete(k)
				onChange(out)
			},
			Value: Render(env, path.Field(k), valueNode, current, func(next any) {
				out := document.ShallowCopy(value)
				if IsUnset(next) {
					out.Delete(k)
				} else {
					out.Set(k, next)
				}
				onChange(out)
			}),
		})
	}
	return ed
}
