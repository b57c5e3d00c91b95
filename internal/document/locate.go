package document

import (
	"gopkg.in/yaml.v3"
)

// Locate finds the source position of the deepest resolvable segment of
// path, which holds string keys and int sequence indexes. It reports false
// when the text does not parse or the first segment does not resolve.
func Locate(text string, path []any) (Position, bool) {
	pos, depth := LocateDeepest(text, path)
	return pos, depth > 0
}

// LocateDeepest is Locate that also returns how many segments resolved.
func LocateDeepest(text string, path []any) (Position, int) {
	var root yaml.Node
	if err := yaml.Unmarshal([]byte(text), &root); err != nil {
		return Position{}, 0
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return Position{}, 0
	}

	node := root.Content[0]
	var found Position
	depth := 0
	for _, seg := range path {
		node = followAlias(node)
		if node == nil {
			break
		}
		var next *yaml.Node
		switch s := seg.(type) {
		case string:
			key, val := findKey(node, s)
			if key == nil {
				return found, depth
			}
			found = Position{Line: key.Line, Column: key.Column}
			next = val
		case int:
			if node.Kind != yaml.SequenceNode || s < 0 || s >= len(node.Content) {
				return found, depth
			}
			item := node.Content[s]
			found = Position{Line: item.Line, Column: item.Column}
			next = item
		default:
			return found, depth
		}
		depth++
		node = next
	}
	return found, depth
}

func findKey(node *yaml.Node, key string) (*yaml.Node, *yaml.Node) {
	if node.Kind != yaml.MappingNode {
		return nil, nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if k := node.Content[i]; k.Kind == yaml.ScalarNode && k.Value == key {
			return k, node.Content[i+1]
		}
	}
	return nil, nil
}

func followAlias(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}
