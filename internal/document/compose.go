package document

import (
	"sort"
	"strings"
)

// ComposeOptions controls how the live tree is laid out.
type ComposeOptions struct {
	// CoreKeyOrder lists core sections that lead the document.
	CoreKeyOrder []string
	// BlankLineBetweenTopLevelKeys separates top-level blocks with one blank line.
	BlankLineBetweenTopLevelKeys bool
}

// Compose renders the full document: the ordered live tree followed by the
// disabled core blocks sorted by key, then the disabled component blocks
// sorted by key, separated by blank lines. tree is not modified.
func Compose(tree *Mapping, core, components map[string]string, opts ComposeOptions) (string, error) {
	ordered := OrderTopLevel(tree, opts.CoreKeyOrder)
	Normalize(ordered)

	main, err := Serialize(ordered)
	if err != nil {
		return "", err
	}
	if ordered.Len() == 0 {
		main = ""
	}
	main = strings.TrimRight(main, " \t\n")
	if opts.BlankLineBetweenTopLevelKeys {
		main = SeparateTopLevelKeys(main)
	}

	blocks := make([]string, 0, len(core)+len(components))
	for _, set := range []map[string]string{core, components} {
		keys := make([]string, 0, len(set))
		for k := range set {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if b := strings.TrimRight(set[k], " \t\n"); b != "" {
				blocks = append(blocks, b)
			}
		}
	}

	switch {
	case len(blocks) == 0:
		return main + "\n", nil
	case main == "":
		return strings.Join(blocks, "\n\n") + "\n", nil
	}
	return main + "\n\n" + strings.Join(blocks, "\n\n") + "\n", nil
}
