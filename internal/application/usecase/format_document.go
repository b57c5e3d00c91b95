package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/eve/internal/application/port"
	"github.com/bnema/eve/internal/editor"
	"github.com/bnema/eve/internal/logging"
)

// FormatDocumentUseCase rewrites a document in canonical form: core sections
// in declared order, blank lines between top-level blocks, disabled blocks
// sorted at the end.
type FormatDocumentUseCase struct {
	repo port.DocumentRepository
	opts editor.Options
}

// NewFormatDocumentUseCase creates a new FormatDocumentUseCase.
func NewFormatDocumentUseCase(repo port.DocumentRepository, opts editor.Options) *FormatDocumentUseCase {
	return &FormatDocumentUseCase{repo: repo, opts: opts}
}

// FormatDocumentInput contains the document to format.
type FormatDocumentInput struct {
	Path string
	// Write stores the formatted text back when it differs.
	Write bool
}

// FormatDocumentOutput contains the formatted text.
type FormatDocumentOutput struct {
	Text    string
	Changed bool
	Written bool
	// Message is the store diagnostic produced while formatting, if any.
	Message string
}

// Execute formats the document at input.Path.
func (uc *FormatDocumentUseCase) Execute(ctx context.Context, input FormatDocumentInput) (*FormatDocumentOutput, error) {
	log := logging.FromContext(ctx)

	if input.Path == "" {
		return nil, fmt.Errorf("document path required")
	}

	text, err := uc.repo.Read(ctx, input.Path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	store := editor.New(text, uc.opts)
	if pe := store.ParseError(); pe != nil {
		return nil, fmt.Errorf("parse %s: %w", input.Path, pe)
	}
	if err := store.UpdateConfig(nil, nil); err != nil {
		return nil, fmt.Errorf("format %s: %w", input.Path, err)
	}

	out := &FormatDocumentOutput{
		Text:    store.Text(),
		Changed: store.Text() != text,
		Message: store.Message(),
	}

	log.Debug().
		Str("path", input.Path).
		Bool("changed", out.Changed).
		Msg("document formatted")

	if input.Write && out.Changed {
		if err := uc.repo.Write(ctx, input.Path, out.Text); err != nil {
			return nil, fmt.Errorf("write document: %w", err)
		}
		out.Written = true
	}
	return out, nil
}
