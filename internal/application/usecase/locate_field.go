package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bnema/eve/internal/application/port"
	"github.com/bnema/eve/internal/editor"
)

// LocateFieldUseCase finds the source position of a section or one of its
// fields.
type LocateFieldUseCase struct {
	repo port.DocumentRepository
	opts editor.Options
}

// NewLocateFieldUseCase creates a new LocateFieldUseCase.
func NewLocateFieldUseCase(repo port.DocumentRepository, opts editor.Options) *LocateFieldUseCase {
	return &LocateFieldUseCase{repo: repo, opts: opts}
}

// LocateFieldInput names the field by a dotted path relative to the
// section. Numeric segments index sequences. An empty Field locates the
// section itself.
type LocateFieldInput struct {
	Path   string
	Target Target
	Field  string
}

// LocateFieldOutput is a 1-based position.
type LocateFieldOutput struct {
	Line   int
	Column int
}

// Execute resolves the position. When the field is absent the nearest
// enclosing key is returned.
func (uc *LocateFieldUseCase) Execute(ctx context.Context, input LocateFieldInput) (*LocateFieldOutput, error) {
	text, err := uc.repo.Read(ctx, input.Path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	store := editor.New(text, uc.opts)
	if pe := store.ParseError(); pe != nil {
		return nil, fmt.Errorf("parse %s: %w", input.Path, pe)
	}
	if _, err := selectTarget(store, input.Target); err != nil {
		return nil, err
	}

	pos, ok := store.Locate(fieldKeys(input.Field))
	if !ok {
		return nil, fmt.Errorf("locate %q: %w", input.Field, editor.ErrNotFound)
	}
	return &LocateFieldOutput{Line: pos.Line, Column: pos.Column}, nil
}

func fieldKeys(field string) []any {
	if field == "" {
		return nil
	}
	parts := strings.Split(field, ".")
	keys := make([]any, len(parts))
	for i, p := range parts {
		if n, err := strconv.Atoi(p); err == nil {
			keys[i] = n
			continue
		}
		keys[i] = p
	}
	return keys
}
