package editor

import (
	"fmt"

	"github.com/bnema/eve/internal/document"
)

func hasEmptyDomain(m *document.Mapping) bool {
	v, ok := m.Get("")
	if !ok {
		return false
	}
	_, isList := v.([]any)
	return isList
}

// repairEmptyDomain moves items filed under the empty domain key to the one
// domain that declares their platform. Items whose platform is unknown or
// shared by several domains stay where they are, and the returned message
// says so.
func (s *Store) repairEmptyDomain(draft *document.Mapping) string {
	raw, ok := draft.Get("")
	if !ok {
		return ""
	}
	list, ok := raw.([]any)
	if !ok || len(list) == 0 {
		return ""
	}

	domainsFor := make(map[string]map[string]bool)
	for _, c := range s.components {
		if c.Domain == "" || c.Platform == "" {
			continue
		}
		if domainsFor[c.Platform] == nil {
			domainsFor[c.Platform] = make(map[string]bool)
		}
		domainsFor[c.Platform][c.Domain] = true
	}

	var remaining []any
	moved := 0
	for _, item := range list {
		m, isMap := item.(*document.Mapping)
		if !isMap {
			remaining = append(remaining, item)
			continue
		}
		p, _ := m.Get("platform")
		platform, isStr := p.(string)
		domains := domainsFor[platform]
		if !isStr || len(domains) != 1 {
			remaining = append(remaining, item)
			continue
		}
		var domain string
		for d := range domains {
			domain = d
		}
		existing, _ := draft.Get(domain)
		items, _ := existing.([]any)
		draft.Set(domain, append(items, item))
		moved++
	}

	if len(remaining) == 0 {
		draft.Delete("")
		if moved > 0 {
			s.logger.Info().Int("moved", moved).Msg("relocated components from empty domain key")
		}
		return ""
	}
	draft.Set("", remaining)
	if moved > 0 {
		return fmt.Sprintf("Fixed %d component(s) that were added under an empty domain key.", moved)
	}
	return `Found components under an empty domain key (""). Please re-add them under the correct domain.`
}
