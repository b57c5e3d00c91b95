package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/eve/internal/application/port"
	"github.com/bnema/eve/internal/editor"
	"github.com/bnema/eve/internal/logging"
)

// ErrInvalidToggle is returned when the input names neither a core section
// nor a component.
var ErrInvalidToggle = errors.New("nothing to toggle")

// ToggleBlockUseCase switches a core section or a component between live and
// disabled (commented-out) in a stored document.
type ToggleBlockUseCase struct {
	repo port.DocumentRepository
	opts editor.Options
}

// NewToggleBlockUseCase creates a new ToggleBlockUseCase.
func NewToggleBlockUseCase(repo port.DocumentRepository, opts editor.Options) *ToggleBlockUseCase {
	return &ToggleBlockUseCase{repo: repo, opts: opts}
}

// ToggleBlockInput selects what to toggle. Core names an optional core
// section. Otherwise Domain selects a component: by Index when disabling, by
// the disabled block Key when enabling.
type ToggleBlockInput struct {
	Path   string
	Core   string
	Domain string
	Index  int
	Key    string
	Enable bool
	// DryRun computes the new text without writing it.
	DryRun bool
}

// ToggleBlockOutput contains the rewritten document.
type ToggleBlockOutput struct {
	Text string
	// Key is the block key created by disabling a component.
	Key     string
	Message string
}

// Execute applies the toggle and stores the result.
func (uc *ToggleBlockUseCase) Execute(ctx context.Context, input ToggleBlockInput) (*ToggleBlockOutput, error) {
	log := logging.FromContext(ctx)

	text, err := uc.repo.Read(ctx, input.Path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	store := editor.New(text, uc.opts)
	if pe := store.ParseError(); pe != nil {
		return nil, fmt.Errorf("parse %s: %w", input.Path, pe)
	}

	out := &ToggleBlockOutput{}
	switch {
	case input.Core != "":
		err = store.ToggleOptionalCore(input.Core, input.Enable)
	case input.Domain != "" && input.Enable:
		err = store.EnableComponent(input.Domain, input.Key)
	case input.Domain != "":
		out.Key, err = store.DisableComponent(input.Domain, input.Index)
	default:
		return nil, ErrInvalidToggle
	}
	if err != nil {
		return nil, err
	}

	out.Text = store.Text()
	out.Message = store.Message()

	log.Info().
		Str("path", input.Path).
		Str("core", input.Core).
		Str("domain", input.Domain).
		Bool("enable", input.Enable).
		Bool("dry_run", input.DryRun).
		Msg("block toggled")

	if input.DryRun || out.Text == text {
		return out, nil
	}
	if err := uc.repo.Write(ctx, input.Path, out.Text); err != nil {
		return nil, fmt.Errorf("write document: %w", err)
	}
	return out, nil
}
