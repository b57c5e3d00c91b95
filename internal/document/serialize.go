package document

import (
	"bytes"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Serialize encodes a value tree as block-style YAML with two-space indent.
// Secrets and tagged scalars keep their tags.
func Serialize(v any) (string, error) {
	node, err := encodeNode(v)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return "", fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("close yaml encoder: %w", err)
	}
	return buf.String(), nil
}

func encodeNode(v any) (*yaml.Node, error) {
	switch x := v.(type) {
	case *Mapping:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		if x == nil {
			return n, nil
		}
		for p := x.Oldest(); p != nil; p = p.Next() {
			val, err := encodeNode(p.Value)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", p.Key, err)
			}
			n.Content = append(n.Content, keyNode(p.Key), val)
		}
		return n, nil
	case map[string]any:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			val, err := encodeNode(x[k])
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			n.Content = append(n.Content, keyNode(k), val)
		}
		return n, nil
	case []any:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for i, item := range x {
			val, err := encodeNode(item)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			n.Content = append(n.Content, val)
		}
		return n, nil
	case Secret:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: secretTag, Value: x.Key}, nil
	case Tagged:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: x.Tag, Value: x.Value}, nil
	case nil, string, bool, int, int64, uint64, float64:
		n := &yaml.Node{}
		if err := n.Encode(x); err != nil {
			return nil, fmt.Errorf("encode scalar: %w", err)
		}
		return n, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}

func keyNode(key string) *yaml.Node {
	n := &yaml.Node{}
	if err := n.Encode(key); err != nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
	}
	return n
}
