package document

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	secretTag = "!secret"
	mergeTag  = "!!merge"
)

var (
	lineColumnPattern = regexp.MustCompile(`\bline\s+(\d+)\s*,\s*column\s+(\d+)\b`)
	linePattern       = regexp.MustCompile(`\bline\s+(\d+)\b`)
)

// Position is a 1-based line/column in the document text. Column is 0 when
// unknown.
type Position struct {
	Line   int
	Column int
}

// ParseError is returned when text is not a valid configuration document.
type ParseError struct {
	Msg    string
	Line   int
	Column int
}

func (e *ParseError) Error() string {
	return e.Msg
}

// Position returns where the error was reported, if the decoder said so.
func (e *ParseError) Position() (Position, bool) {
	if e.Line <= 0 {
		return Position{}, false
	}
	return Position{Line: e.Line, Column: e.Column}, true
}

// ErrorPosition extracts a "line N, column M" or "line N" location from a
// diagnostic message.
func ErrorPosition(msg string) (Position, bool) {
	if m := lineColumnPattern.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		col, _ := strconv.Atoi(m[2])
		return Position{Line: line, Column: col}, line > 0
	}
	if m := linePattern.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return Position{Line: line}, line > 0
	}
	return Position{}, false
}

// AsParseError unwraps err into a *ParseError.
func AsParseError(err error) (*ParseError, bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

func newParseError(err error) *ParseError {
	msg := strings.TrimPrefix(err.Error(), "yaml: ")
	pe := &ParseError{Msg: msg}
	if pos, ok := ErrorPosition(msg); ok {
		pe.Line, pe.Column = pos.Line, pos.Column
	}
	return pe
}

// Parse decodes YAML text into a value tree of *Mapping, []any and scalars.
// Empty text decodes to nil.
func Parse(text string) (any, error) {
	var root yaml.Node
	if err := yaml.Unmarshal([]byte(text), &root); err != nil {
		return nil, newParseError(err)
	}
	if root.Kind == 0 {
		return nil, nil
	}
	v, err := decodeNode(&root)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// ParseConfig decodes a configuration document. The root must be a mapping;
// empty text yields an empty mapping. Null core sections are normalized.
func ParseConfig(text string) (*Mapping, error) {
	v, err := Parse(text)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return NewMapping(), nil
	}
	m, ok := v.(*Mapping)
	if !ok {
		return nil, &ParseError{Msg: fmt.Sprintf("document root must be a mapping, got %s", KindOf(v)), Line: 1, Column: 1}
	}
	Normalize(m)
	return m, nil
}

func decodeNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return decodeNode(n.Content[0])
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, nil
		}
		return decodeNode(n.Alias)
	case yaml.MappingNode:
		return decodeMapping(n)
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := decodeNode(item)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.ScalarNode:
		return decodeScalar(n)
	default:
		return nil, &ParseError{Msg: fmt.Sprintf("unsupported node kind %d", n.Kind), Line: n.Line, Column: n.Column}
	}
}

func decodeMapping(n *yaml.Node) (*Mapping, error) {
	m := NewMapping()
	var merges []*Mapping
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, vn := n.Content[i], n.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return nil, &ParseError{Msg: "mapping keys must be scalars", Line: k.Line, Column: k.Column}
		}
		v, err := decodeNode(vn)
		if err != nil {
			return nil, err
		}
		if k.Tag == mergeTag {
			merges = append(merges, mergeSources(v)...)
			continue
		}
		m.Set(k.Value, v)
	}
	for _, src := range merges {
		for p := src.Oldest(); p != nil; p = p.Next() {
			if _, exists := m.Get(p.Key); !exists {
				m.Set(p.Key, Clone(p.Value))
			}
		}
	}
	return m, nil
}

func mergeSources(v any) []*Mapping {
	switch x := v.(type) {
	case *Mapping:
		return []*Mapping{x}
	case []any:
		var out []*Mapping
		for _, item := range x {
			if m, ok := item.(*Mapping); ok {
				out = append(out, m)
			}
		}
		return out
	}
	return nil
}

func decodeScalar(n *yaml.Node) (any, error) {
	tag := n.ShortTag()
	switch tag {
	case secretTag:
		return Secret{Key: n.Value}, nil
	case "!!null":
		return nil, nil
	case "!!bool", "!!int", "!!float":
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, &ParseError{Msg: err.Error(), Line: n.Line, Column: n.Column}
		}
		return v, nil
	case "!!str", "!!timestamp", "!!binary":
		return n.Value, nil
	}
	if strings.HasPrefix(tag, "!") && !strings.HasPrefix(tag, "!!") {
		return Tagged{Tag: tag, Value: n.Value}, nil
	}
	return n.Value, nil
}
