package usecase

import (
	"errors"
	"fmt"

	"github.com/bnema/eve/internal/document"
	"github.com/bnema/eve/internal/domain/entity"
	"github.com/bnema/eve/internal/editor"
)

// ErrNoTarget is returned when a target names neither a core section, a
// component, nor a disabled block.
var ErrNoTarget = errors.New("no section selected")

// Target names a section of a document: a core key, a live component by
// domain and index, or a disabled component block by key.
type Target struct {
	Core   string
	Domain string
	Index  int
	Key    string
}

// selectTarget focuses t in store.
func selectTarget(store *editor.Store, t Target) (entity.Selection, error) {
	switch {
	case t.Core != "":
		if err := store.SelectCore(t.Core); err != nil {
			return entity.Selection{}, err
		}
	case t.Key != "":
		domain, platform, _, ok := document.SplitComponentKey(t.Key)
		if !ok {
			return entity.Selection{}, fmt.Errorf("disabled block %q: %w", t.Key, editor.ErrNotFound)
		}
		if _, found := store.Registry().ExtractComponentBlocks(store.Text())[t.Key]; !found {
			return entity.Selection{}, fmt.Errorf("disabled block %q: %w", t.Key, editor.ErrNotFound)
		}
		store.Select(entity.DisabledComponentSelection(domain, t.Key, platform))
	case t.Domain != "":
		items := store.Tree().Items[t.Domain]
		if t.Index < 0 || t.Index >= len(items) {
			return entity.Selection{}, fmt.Errorf("%s[%d]: %w", t.Domain, t.Index, editor.ErrNotFound)
		}
		store.Select(entity.ComponentSelection(t.Domain, t.Index, items[t.Index].Platform))
	default:
		return entity.Selection{}, ErrNoTarget
	}
	return store.Selection(), nil
}
