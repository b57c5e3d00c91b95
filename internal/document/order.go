package document

import (
	"regexp"
	"strings"
)

// BoardKeys are the platform sections that together make up the "board" core
// entry.
var BoardKeys = []string{"esp32", "esp8266"}

// NullAsEmpty lists core sections whose null value means "enabled with
// defaults" and is normalized to an empty mapping.
var NullAsEmpty = []string{"logger", "api", "ota", "captive_portal", "web_server", "mqtt"}

// topLevelBlockKey matches a top-level key that opens a block. Keys with an
// inline value such as "logger: {}" do not match and get no blank line.
var topLevelBlockKey = regexp.MustCompile(`^([A-Za-z0-9_][A-Za-z0-9_-]*)\s*:\s*(?:#.*)?$`)

// Normalize rewrites null core sections to empty mappings in place.
func Normalize(m *Mapping) {
	if m == nil {
		return
	}
	for _, key := range NullAsEmpty {
		if v, ok := m.Get(key); ok && v == nil {
			m.Set(key, NewMapping())
		}
	}
}

// ExpandCoreKey returns the top-level document keys backing a core entry.
func ExpandCoreKey(key string) []string {
	if key == "board" {
		return BoardKeys
	}
	return []string{key}
}

// OrderTopLevel returns a shallow copy of m whose keys follow coreOrder
// first, then the remaining keys in their existing order.
func OrderTopLevel(m *Mapping, coreOrder []string) *Mapping {
	out := NewMapping()
	if m == nil {
		return out
	}
	for _, core := range coreOrder {
		for _, key := range ExpandCoreKey(core) {
			if v, ok := m.Get(key); ok {
				out.Set(key, v)
			}
		}
	}
	for p := m.Oldest(); p != nil; p = p.Next() {
		if _, ok := out.Get(p.Key); !ok {
			out.Set(p.Key, p.Value)
		}
	}
	return out
}

// SeparateTopLevelKeys puts a blank line before every top-level block key
// that does not already follow one.
func SeparateTopLevelKeys(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines)+8)
	for _, line := range lines {
		if isTopLevelBlockKey(line) && len(out) > 0 && strings.TrimSpace(out[len(out)-1]) != "" {
			out = append(out, "")
		}
		out = append(out, line)
	}
	for len(out) > 0 && strings.TrimSpace(out[0]) == "" {
		out = out[1:]
	}
	return strings.TrimRight(strings.Join(out, "\n"), " \t\n")
}

func isTopLevelBlockKey(line string) bool {
	if line == "" || strings.HasPrefix(line, "#") || line[0] == ' ' || line[0] == '\t' {
		return false
	}
	return topLevelBlockKey.MatchString(line)
}
