package editor

import (
	"errors"
	"fmt"
	"sort"

	"github.com/bnema/eve/internal/document"
	"github.com/bnema/eve/internal/domain/entity"
)

var (
	// ErrNotFound is returned when a selection or block no longer exists.
	ErrNotFound = errors.New("not found")
	// ErrNotOptional is returned when toggling a core section that is always on.
	ErrNotOptional = errors.New("core section is not optional")
	// ErrInvalidArgument is returned for an empty domain or platform.
	ErrInvalidArgument = errors.New("invalid argument")
)

var boardKeys = document.BoardKeys

// Selection returns the focused section.
func (s *Store) Selection() entity.Selection { return s.selection }

// Select focuses sel without touching the document.
func (s *Store) Select(sel entity.Selection) {
	s.selection = sel
	s.notify()
}

// Tree lists core sections with their presence and every domain with live
// or disabled components.
func (s *Store) Tree() entity.Tree {
	cfg := s.config
	tree := entity.Tree{
		Items:    make(map[string][]entity.ComponentItem),
		Disabled: make(map[string][]entity.DisabledComponent),
	}
	isCore := make(map[string]bool, len(s.coreKeys))
	for _, k := range s.coreKeys {
		isCore[k] = true
		tree.Core = append(tree.Core, entity.CoreEntry{Key: k, Present: s.corePresent(k)})
	}

	seen := make(map[string]bool)
	for p := cfg.Oldest(); p != nil; p = p.Next() {
		if isCore[p.Key] {
			continue
		}
		list, ok := p.Value.([]any)
		if !ok {
			continue
		}
		seen[p.Key] = true
		for i, item := range list {
			tree.Items[p.Key] = append(tree.Items[p.Key], entity.ComponentItem{Domain: p.Key, Index: i, Platform: platformOf(item)})
		}
	}

	blocks := s.registry.ExtractComponentBlocks(s.text)
	keys := make([]string, 0, len(blocks))
	for k := range blocks {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		domain, platform, hash, ok := document.SplitComponentKey(k)
		if !ok || domain == "" {
			continue
		}
		seen[domain] = true
		tree.Disabled[domain] = append(tree.Disabled[domain], entity.DisabledComponent{Key: k, Domain: domain, Platform: platform, Hash: hash})
	}

	for d := range seen {
		tree.Domains = append(tree.Domains, d)
	}
	sort.Strings(tree.Domains)
	return tree
}

func (s *Store) corePresent(key string) bool {
	if key == "board" {
		for _, b := range boardKeys {
			if _, ok := s.config.Get(b); ok {
				return true
			}
		}
		return false
	}
	_, ok := s.config.Get(key)
	return ok
}

func platformOf(item any) string {
	m, ok := item.(*document.Mapping)
	if !ok {
		return ""
	}
	p, _ := m.Get("platform")
	str, _ := p.(string)
	return str
}

func domainList(draft *document.Mapping, domain string) []any {
	v, _ := draft.Get(domain)
	list, _ := v.([]any)
	return list
}

// AddComponent appends {platform} to domain and selects it.
func (s *Store) AddComponent(domain, platform string) error {
	s.enter()
	defer s.leave()
	if domain == "" || platform == "" {
		s.message = "Select a domain and platform before adding a component."
		s.notify()
		return fmt.Errorf("add component: %w", ErrInvalidArgument)
	}
	var index int
	err := s.UpdateConfig(func(draft *document.Mapping) {
		list := append(domainList(draft, domain), document.MappingOf("platform", platform))
		draft.Set(domain, list)
		index = len(list) - 1
	}, nil)
	if err != nil {
		return err
	}
	s.selection = entity.ComponentSelection(domain, index, platform)
	s.notify()
	return nil
}

// Delete removes a core section, a live component or a disabled component.
// esphome and board cannot be deleted. Selection returns to esphome.
func (s *Store) Delete(target entity.Selection) error {
	s.enter()
	defer s.leave()

	var err error
	switch target.Kind {
	case entity.SelectCore:
		key := target.Key
		if key == "esphome" || key == "board" {
			return nil
		}
		err = s.UpdateConfig(func(draft *document.Mapping) {
			draft.Delete(key)
		}, &Hooks{MutateDisabledCoreBlocks: func(blocks map[string]string, _ *document.Mapping) {
			delete(blocks, key)
		}})
		s.message = fmt.Sprintf("Deleted core component %s.", key)

	case entity.SelectComponent:
		err = s.UpdateConfig(func(draft *document.Mapping) {
			list := domainList(draft, target.Domain)
			if target.Index < 0 || target.Index >= len(list) {
				return
			}
			list = append(list[:target.Index:target.Index], list[target.Index+1:]...)
			if len(list) == 0 {
				draft.Delete(target.Domain)
				return
			}
			draft.Set(target.Domain, list)
		}, nil)
		s.message = fmt.Sprintf("Deleted %s.%s.", target.Domain, target.Platform)

	case entity.SelectDisabledComponent:
		err = s.UpdateConfig(nil, &Hooks{MutateDisabledComponentBlocks: func(blocks map[string]string, _ *document.Mapping) {
			delete(blocks, target.Key)
		}})
		s.message = fmt.Sprintf("Deleted disabled %s.%s.", target.Domain, target.Platform)
	}
	s.selection = entity.CoreSelection("esphome")
	s.notify()
	return err
}

// ReadSelected returns the value the form edits. For board it is a mapping
// holding the esp32 and esp8266 sections. It returns nil when the selection
// no longer resolves.
func (s *Store) ReadSelected() any {
	sel := s.selection
	switch sel.Kind {
	case entity.SelectCore:
		if sel.Key == "board" {
			out := document.NewMapping()
			for _, b := range boardKeys {
				if v, ok := s.config.Get(b); ok {
					out.Set(b, v)
				}
			}
			return out
		}
		v, _ := s.config.Get(sel.Key)
		return v
	case entity.SelectDisabledComponent:
		block, ok := s.registry.ExtractComponentBlocks(s.text)[sel.Key]
		if !ok {
			return nil
		}
		v, err := s.registry.ParseComponentBlock(block, sel.Domain)
		if err != nil {
			return nil
		}
		return v
	case entity.SelectComponent:
		list := domainList(s.config, sel.Domain)
		if sel.Index < 0 || sel.Index >= len(list) {
			return nil
		}
		return list[sel.Index]
	}
	return nil
}

// WriteSelected replaces the selected value. A disabled component is
// rewritten in place under its existing key.
func (s *Store) WriteSelected(next any) error {
	s.enter()
	defer s.leave()
	sel := s.selection

	switch sel.Kind {
	case entity.SelectDisabledComponent:
		if next == nil {
			next = document.NewMapping()
		}
		_, block, err := s.registry.BuildComponentBlock(sel.Domain, next, sel.Key)
		if err != nil {
			return fmt.Errorf("write disabled component: %w", err)
		}
		return s.UpdateConfig(nil, &Hooks{MutateDisabledComponentBlocks: func(blocks map[string]string, _ *document.Mapping) {
			blocks[sel.Key] = block
		}})

	case entity.SelectCore:
		if sel.Key == "board" {
			m, ok := next.(*document.Mapping)
			if !ok {
				return nil
			}
			return s.UpdateConfig(func(draft *document.Mapping) {
				for _, b := range boardKeys {
					if v, ok := m.Get(b); ok {
						draft.Set(b, v)
					} else {
						draft.Delete(b)
					}
				}
			}, nil)
		}
		return s.UpdateConfig(func(draft *document.Mapping) {
			draft.Set(sel.Key, next)
		}, nil)

	case entity.SelectComponent:
		return s.UpdateConfig(func(draft *document.Mapping) {
			list := domainList(draft, sel.Domain)
			for len(list) <= sel.Index {
				list = append(list, nil)
			}
			list[sel.Index] = next
			draft.Set(sel.Domain, list)
		}, nil)
	}
	return nil
}

// SelectCore focuses a core section. A required section missing from the
// document is created first.
func (s *Store) SelectCore(key string) error {
	s.enter()
	defer s.leave()
	var err error
	if !s.corePresent(key) && !s.optionalCore[key] && key != "board" {
		err = s.UpdateConfig(func(draft *document.Mapping) {
			if key == "esphome" {
				draft.Set(key, document.MappingOf("name", s.defaultName))
				return
			}
			draft.Set(key, document.NewMapping())
		}, nil)
	}
	s.selection = entity.CoreSelection(key)
	s.notify()
	return err
}

// DisabledCoreBlock returns the raw block of a switched-off core section.
func (s *Store) DisabledCoreBlock(key string) (string, bool) {
	b, ok := s.registry.ExtractCoreBlocks(s.text)[key]
	return b, ok
}

// ToggleOptionalCore switches an optional core section on or off. Turning
// it off parks the current value in a disabled block; turning it on restores
// that value, or an empty section when there is none.
func (s *Store) ToggleOptionalCore(key string, enabled bool) error {
	s.enter()
	defer s.leave()
	if !s.optionalCore[key] {
		return fmt.Errorf("toggle %q: %w", key, ErrNotOptional)
	}

	if enabled {
		var value any = document.NewMapping()
		if block, ok := s.registry.ExtractCoreBlocks(s.text)[key]; ok {
			v, err := s.registry.ParseCoreBlock(block, key)
			if err != nil {
				s.logger.Warn().Err(err).Str("key", key).Msg("disabled core block is corrupt, enabling empty section")
			} else if v != nil {
				value = v
			}
		}
		err := s.UpdateConfig(func(draft *document.Mapping) {
			draft.Set(key, value)
		}, &Hooks{MutateDisabledCoreBlocks: func(blocks map[string]string, _ *document.Mapping) {
			delete(blocks, key)
		}})
		s.selection = entity.CoreSelection(key)
		s.notify()
		return err
	}

	current, ok := s.config.Get(key)
	if !ok || current == nil {
		current = document.NewMapping()
	}
	block, err := s.registry.BuildCoreBlock(key, current)
	if err != nil {
		return fmt.Errorf("disable %q: %w", key, err)
	}
	return s.UpdateConfig(func(draft *document.Mapping) {
		draft.Delete(key)
	}, &Hooks{MutateDisabledCoreBlocks: func(blocks map[string]string, _ *document.Mapping) {
		blocks[key] = block
	}})
}

// DisableComponent moves the live item at index under domain into a
// disabled block and returns the block key.
func (s *Store) DisableComponent(domain string, index int) (string, error) {
	s.enter()
	defer s.leave()
	if domain == "" {
		return "", fmt.Errorf("disable component: %w", ErrInvalidArgument)
	}
	list := domainList(s.config, domain)
	if index < 0 || index >= len(list) {
		return "", fmt.Errorf("disable %s[%d]: %w", domain, index, ErrNotFound)
	}
	key, block, err := s.registry.BuildComponentBlock(domain, list[index], "")
	if err != nil {
		return "", fmt.Errorf("disable %s[%d]: %w", domain, index, err)
	}
	err = s.UpdateConfig(func(draft *document.Mapping) {
		items := domainList(draft, domain)
		if index >= len(items) {
			return
		}
		items = append(items[:index:index], items[index+1:]...)
		if len(items) == 0 {
			draft.Delete(domain)
			return
		}
		draft.Set(domain, items)
	}, &Hooks{MutateDisabledComponentBlocks: func(blocks map[string]string, _ *document.Mapping) {
		blocks[key] = block
	}})
	if sel := s.selection; sel.Kind == entity.SelectComponent && sel.Domain == domain && sel.Index == index {
		s.selection = entity.CoreSelection("esphome")
		s.notify()
	}
	return key, err
}

// EnableComponent restores the disabled block key as a live item appended to
// domain and selects it.
func (s *Store) EnableComponent(domain, key string) error {
	s.enter()
	defer s.leave()
	block, ok := s.registry.ExtractComponentBlocks(s.text)[key]
	if !ok {
		return fmt.Errorf("enable %s: %w", key, ErrNotFound)
	}
	v, err := s.registry.ParseComponentBlock(block, domain)
	if err != nil {
		s.message = fmt.Sprintf("Cannot enable disabled block: %v", err)
		s.notify()
		return fmt.Errorf("enable %s: %w", key, err)
	}
	item, ok := v.(*document.Mapping)
	if !ok {
		item = document.NewMapping()
	}
	platform := platformOf(item)
	if platform == "" {
		platform = "unknown"
	}

	var index int
	err = s.UpdateConfig(func(draft *document.Mapping) {
		list := append(domainList(draft, domain), item)
		draft.Set(domain, list)
		index = len(list) - 1
	}, &Hooks{MutateDisabledComponentBlocks: func(blocks map[string]string, _ *document.Mapping) {
		delete(blocks, key)
	}})
	if err != nil {
		return err
	}
	s.selection = entity.ComponentSelection(domain, index, platform)
	s.notify()
	return nil
}

// OpenBoardPicker asks the host to show the board picker, remembering the
// selection to return to.
func (s *Store) OpenBoardPicker() {
	if s.boardPickerOpen {
		return
	}
	sel := s.selection
	s.boardPickerReturn = &sel
	s.boardPickerOpen = true
	s.notify()
}

// BoardPickerOpen reports whether the board picker is shown.
func (s *Store) BoardPickerOpen() bool { return s.boardPickerOpen }

// CloseBoardPicker hides the board picker and restores the selection.
func (s *Store) CloseBoardPicker() {
	s.boardPickerOpen = false
	if s.boardPickerReturn != nil {
		s.selection = *s.boardPickerReturn
	}
	s.boardPickerReturn = nil
	s.notify()
}

// MQTTEnabled reports whether the document has an mqtt section.
func (s *Store) MQTTEnabled() bool {
	_, ok := s.config.Get("mqtt")
	return ok
}
