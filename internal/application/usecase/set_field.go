package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/eve/internal/application/port"
	"github.com/bnema/eve/internal/document"
	"github.com/bnema/eve/internal/editor"
	"github.com/bnema/eve/internal/logging"
)

// SetFieldUseCase edits one field of a section in a stored document.
type SetFieldUseCase struct {
	repo port.DocumentRepository
	opts editor.Options
}

// NewSetFieldUseCase creates a new SetFieldUseCase.
func NewSetFieldUseCase(repo port.DocumentRepository, opts editor.Options) *SetFieldUseCase {
	return &SetFieldUseCase{repo: repo, opts: opts}
}

// SetFieldInput names the field by a dotted path relative to the section.
// Value is read as a YAML scalar or flow value; an empty Value removes the
// field.
type SetFieldInput struct {
	Path   string
	Target Target
	Field  string
	Value  string
	DryRun bool
}

// SetFieldOutput contains the rewritten document.
type SetFieldOutput struct {
	Text    string
	Changed bool
}

// Execute applies the edit through the store and writes the result.
func (uc *SetFieldUseCase) Execute(ctx context.Context, input SetFieldInput) (*SetFieldOutput, error) {
	log := logging.FromContext(ctx)

	keys := strings.Split(input.Field, ".")
	for _, k := range keys {
		if k == "" {
			return nil, fmt.Errorf("field %q: %w", input.Field, editor.ErrInvalidArgument)
		}
	}

	var value any
	remove := strings.TrimSpace(input.Value) == ""
	if !remove {
		v, err := document.Parse(input.Value)
		if err != nil {
			return nil, fmt.Errorf("value %q: %w", input.Value, err)
		}
		value = v
	}

	text, err := uc.repo.Read(ctx, input.Path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	store := editor.New(text, uc.opts)
	if pe := store.ParseError(); pe != nil {
		return nil, fmt.Errorf("parse %s: %w", input.Path, pe)
	}
	sel, err := selectTarget(store, input.Target)
	if err != nil {
		return nil, err
	}

	root, _ := store.ReadSelected().(*document.Mapping)
	if root == nil {
		root = document.NewMapping()
	} else {
		root = document.CloneMapping(root)
	}
	setPath(root, keys, value, remove)

	if err := store.WriteSelected(root); err != nil {
		return nil, err
	}

	out := &SetFieldOutput{Text: store.Text(), Changed: store.Text() != text}
	log.Info().
		Str("path", input.Path).
		Str("selection", sel.String()).
		Str("field", input.Field).
		Bool("removed", remove).
		Msg("field set")

	if input.DryRun || !out.Changed {
		return out, nil
	}
	if err := uc.repo.Write(ctx, input.Path, out.Text); err != nil {
		return nil, fmt.Errorf("write document: %w", err)
	}
	return out, nil
}

// setPath sets or removes m[keys...], creating intermediate mappings.
// A non-mapping value in the way is replaced.
func setPath(m *document.Mapping, keys []string, value any, remove bool) {
	for _, k := range keys[:len(keys)-1] {
		next, ok := m.Get(k)
		child, isMap := next.(*document.Mapping)
		if !ok || !isMap {
			if remove {
				return
			}
			child = document.NewMapping()
			m.Set(k, child)
		}
		m = child
	}
	last := keys[len(keys)-1]
	if remove {
		m.Delete(last)
		return
	}
	m.Set(last, value)
}
