package editor

import (
	"strings"

	"github.com/bnema/eve/internal/document"
	"github.com/bnema/eve/internal/domain/entity"
	"github.com/bnema/eve/internal/form"
)

// Locate finds the source position of a field of the selected section. keys
// is relative to the selected value. When the field is not in the text the
// nearest ancestor is used; for a component that falls back to its platform
// line and then the domain key.
func (s *Store) Locate(keys []any) (document.Position, bool) {
	sel := s.selection
	switch sel.Kind {
	case entity.SelectCore:
		path := keys
		if sel.Key != "board" {
			path = append([]any{sel.Key}, keys...)
		}
		return document.Locate(s.text, path)

	case entity.SelectComponent:
		path := append([]any{sel.Domain, sel.Index}, keys...)
		pos, depth := document.LocateDeepest(s.text, path)
		if depth == len(path) {
			return pos, true
		}
		if pos, ok := document.Locate(s.text, []any{sel.Domain, sel.Index, "platform"}); ok {
			return pos, true
		}
		return document.Locate(s.text, []any{sel.Domain})

	case entity.SelectDisabledComponent:
		return s.registry.LocateBlock(s.text, true, sel.Key)
	}
	return document.Position{}, false
}

// FocusField moves the text focus to a field of the selected section.
func (s *Store) FocusField(keys []any) {
	pos, ok := s.Locate(keys)
	if !ok {
		pos = document.Position{Line: 1, Column: 1}
	}
	s.focus = &pos
	s.notify()
}

// TakeFocus returns and clears the pending text focus request.
func (s *Store) TakeFocus() (document.Position, bool) {
	if s.focus == nil {
		return document.Position{}, false
	}
	pos := *s.focus
	s.focus = nil
	return pos, true
}

// BoardContext returns the target and board slug of the document, or nil
// when no board section names a board.
func (s *Store) BoardContext() *entity.BoardRef {
	for _, target := range boardKeys {
		v, ok := s.config.Get(target)
		if !ok {
			continue
		}
		m, ok := v.(*document.Mapping)
		if !ok {
			continue
		}
		b, _ := m.Get("board")
		slug, _ := b.(string)
		if strings.TrimSpace(slug) != "" {
			return &entity.BoardRef{Target: target, Slug: strings.TrimSpace(slug)}
		}
	}
	return nil
}

// FormEnv builds the render environment for the selected section.
// requestUpdate is called when only UI state changed.
func (s *Store) FormEnv(state *form.State, requestUpdate func()) form.Env {
	return form.Env{
		State:           state,
		Board:           s.BoardContext(),
		MQTTEnabled:     s.MQTTEnabled(),
		RequestUpdate:   requestUpdate,
		OpenBoardPicker: s.OpenBoardPicker,
		JumpTo:          s.FocusField,
	}
}
