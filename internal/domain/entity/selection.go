// Package entity contains the domain types shared by the editor core, the
// form engine and the catalog service. They carry no infrastructure
// dependencies.
package entity

import "fmt"

// SelectionKind tells what part of the document is focused.
type SelectionKind int

const (
	SelectCore              SelectionKind = iota // A core section such as wifi
	SelectComponent                              // A live item under a domain key
	SelectDisabledComponent                      // A commented-out component block
)

func (k SelectionKind) String() string {
	switch k {
	case SelectCore:
		return "core"
	case SelectComponent:
		return "component"
	case SelectDisabledComponent:
		return "disabled_component"
	}
	return fmt.Sprintf("SelectionKind(%d)", int(k))
}

// Selection identifies the focused core section or component. It doubles as
// the target of a delete.
type Selection struct {
	Kind     SelectionKind
	Key      string // core key, or disabled block key
	Domain   string
	Index    int
	Platform string
}

// CoreSelection focuses a core section.
func CoreSelection(key string) Selection {
	return Selection{Kind: SelectCore, Key: key}
}

// ComponentSelection focuses the live item at index under domain.
func ComponentSelection(domain string, index int, platform string) Selection {
	return Selection{Kind: SelectComponent, Domain: domain, Index: index, Platform: platform}
}

// DisabledComponentSelection focuses a disabled component block.
func DisabledComponentSelection(domain, key, platform string) Selection {
	return Selection{Kind: SelectDisabledComponent, Domain: domain, Key: key, Platform: platform}
}

// String renders the selection for logs and status lines.
func (s Selection) String() string {
	switch s.Kind {
	case SelectCore:
		return s.Key
	case SelectComponent:
		return fmt.Sprintf("%s[%d].%s", s.Domain, s.Index, s.Platform)
	case SelectDisabledComponent:
		return fmt.Sprintf("%s.%s (disabled)", s.Domain, s.Platform)
	}
	return s.Kind.String()
}
