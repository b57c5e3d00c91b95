package document

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// DefaultMarkerPrefix starts every disabled-block marker comment.
const DefaultMarkerPrefix = "eve:disabled"

// ErrInvalidBlock is returned when a disabled block does not uncomment to a
// mapping.
var ErrInvalidBlock = errors.New("invalid YAML block")

var uncommentPattern = regexp.MustCompile(`^#\s?`)

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// Registry reads and writes soft-disabled sections stored as comment blocks.
// A core block starts with "# <prefix>_core:<key>", a component block with
// "# <prefix>_component:<domain>:<platform>:<hash>". Each following line that
// starts with "#" belongs to the block until the next marker or an
// uncommented line.
type Registry struct {
	prefix          string
	coreMarker      *regexp.Regexp
	componentMarker *regexp.Regexp
	anyMarker       *regexp.Regexp
	coreLine        *regexp.Regexp
	componentLine   *regexp.Regexp
}

// NewRegistry builds a registry for the given marker prefix. An empty prefix
// selects DefaultMarkerPrefix.
func NewRegistry(prefix string) *Registry {
	if prefix == "" {
		prefix = DefaultMarkerPrefix
	}
	q := regexp.QuoteMeta(prefix)
	return &Registry{
		prefix:          prefix,
		coreMarker:      regexp.MustCompile(`^#\s*` + q + `_core:([a-zA-Z0-9_]+)\s*$`),
		componentMarker: regexp.MustCompile(`^#\s*` + q + `_component:([a-zA-Z0-9_-]+):([a-zA-Z0-9_-]+):([0-9a-f]+)\s*$`),
		anyMarker:       regexp.MustCompile(`^#\s*` + q + `_(core|component):`),
		coreLine:        regexp.MustCompile(`^#\s*` + q + `_core:`),
		componentLine:   regexp.MustCompile(`^#\s*` + q + `_component:`),
	}
}

// Prefix returns the marker prefix.
func (r *Registry) Prefix() string {
	return r.prefix
}

// ExtractCoreBlocks returns the disabled core blocks in text keyed by core key.
func (r *Registry) ExtractCoreBlocks(text string) map[string]string {
	return r.extract(text, func(line string) (string, bool) {
		m := r.coreMarker.FindStringSubmatch(line)
		if m == nil {
			return "", false
		}
		return m[1], true
	})
}

// ExtractComponentBlocks returns the disabled component blocks in text keyed
// by "<domain>:<platform>:<hash>".
func (r *Registry) ExtractComponentBlocks(text string) map[string]string {
	return r.extract(text, func(line string) (string, bool) {
		m := r.componentMarker.FindStringSubmatch(line)
		if m == nil {
			return "", false
		}
		return m[1] + ":" + m[2] + ":" + m[3], true
	})
}

func (r *Registry) extract(text string, match func(string) (string, bool)) map[string]string {
	lines := strings.Split(text, "\n")
	out := make(map[string]string)
	for i := 0; i < len(lines); i++ {
		key, ok := match(lines[i])
		if !ok {
			continue
		}
		block := []string{lines[i]}
		for i+1 < len(lines) {
			next := lines[i+1]
			if r.anyMarker.MatchString(next) || !strings.HasPrefix(next, "#") {
				break
			}
			block = append(block, next)
			i++
		}
		out[key] = strings.TrimRight(strings.Join(block, "\n"), " \t\r\n")
	}
	return out
}

// BuildCoreBlock renders value as a disabled core block for key.
func (r *Registry) BuildCoreBlock(key string, value any) (string, error) {
	body, err := Serialize(MappingOf(key, value))
	if err != nil {
		return "", fmt.Errorf("serialize core block %s: %w", key, err)
	}
	return fmt.Sprintf("# %s_core:%s\n%s", r.prefix, key, commentOut(strings.TrimRight(body, "\n"))), nil
}

// BuildComponentBlock renders item as a disabled component block under
// domain. A non-mapping item is stored as an empty mapping. When existingKey
// is empty a new key is derived from the domain, platform and content hash.
func (r *Registry) BuildComponentBlock(domain string, item any, existingKey string) (key, block string, err error) {
	m, ok := item.(*Mapping)
	if !ok {
		m = NewMapping()
	}
	platform := "unknown"
	if p, ok := m.Get("platform"); ok {
		if s, ok := p.(string); ok {
			platform = s
		}
	}

	body, err := Serialize(MappingOf(domain, []any{m}))
	if err != nil {
		return "", "", fmt.Errorf("serialize component block %s.%s: %w", domain, platform, err)
	}
	body = strings.TrimRight(body, "\n")

	key = existingKey
	if key == "" {
		key = fmt.Sprintf("%s:%s:%s", markerSafe(domain), markerSafe(platform), ContentHash(domain+":"+platform+"\n"+body))
	}
	return key, fmt.Sprintf("# %s_component:%s\n%s", r.prefix, key, commentOut(body)), nil
}

// ParseCoreBlock decodes the value a disabled core block holds for key. An
// empty block yields nil without error.
func (r *Registry) ParseCoreBlock(block, key string) (any, error) {
	body := r.uncomment(block, r.coreLine)
	if body == "" {
		return nil, nil
	}
	doc, err := ParseConfig(body)
	if err != nil {
		return nil, err
	}
	v, _ := doc.Get(key)
	return v, nil
}

// ParseComponentBlock decodes the single component item a disabled block
// holds under domain.
func (r *Registry) ParseComponentBlock(block, domain string) (any, error) {
	body := r.uncomment(block, r.componentLine)
	if body == "" {
		return nil, fmt.Errorf("missing %s: list", domain)
	}
	doc, err := Parse(body)
	if err != nil {
		return nil, err
	}
	m, ok := doc.(*Mapping)
	if !ok {
		return nil, ErrInvalidBlock
	}
	v, _ := m.Get(domain)
	items, ok := v.([]any)
	if !ok || len(items) == 0 {
		return nil, fmt.Errorf("missing %s: list", domain)
	}
	return items[0], nil
}

// LocateBlock returns the line of the marker for a disabled block.
func (r *Registry) LocateBlock(text string, component bool, key string) (Position, bool) {
	marker := r.coreMarker
	if component {
		marker = r.componentMarker
	}
	for i, line := range strings.Split(text, "\n") {
		m := marker.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		got := m[1]
		if component {
			got = m[1] + ":" + m[2] + ":" + m[3]
		}
		if got == key {
			return Position{Line: i + 1, Column: 1}, true
		}
	}
	return Position{}, false
}

// SplitComponentKey splits "<domain>:<platform>:<hash>".
func SplitComponentKey(key string) (domain, platform, hash string, ok bool) {
	parts := strings.SplitN(key, ":", 3)
	if len(parts) != 3 {
		return "", "", "", false
	}
	return parts[0], parts[1], parts[2], true
}

func (r *Registry) uncomment(block string, marker *regexp.Regexp) string {
	var kept []string
	for _, line := range strings.Split(block, "\n") {
		if marker.MatchString(line) {
			continue
		}
		kept = append(kept, uncommentPattern.ReplaceAllString(line, ""))
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

func commentOut(body string) string {
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = "#"
			continue
		}
		lines[i] = "# " + line
	}
	return strings.Join(lines, "\n")
}

// markerSafe makes s a valid marker segment. Empty segments would not match
// the component marker grammar, so they become "unknown".
func markerSafe(s string) string {
	s = unsafeKeyChars.ReplaceAllString(s, "_")
	if s == "" {
		return "unknown"
	}
	return s
}
