package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/eve/internal/application/port"
	"github.com/bnema/eve/internal/domain/entity"
	"github.com/bnema/eve/internal/editor"
	"github.com/bnema/eve/internal/logging"
)

// CheckDocumentUseCase parses a document and merges validator issues into
// line highlights.
type CheckDocumentUseCase struct {
	repo port.DocumentRepository
	opts editor.Options
}

// NewCheckDocumentUseCase creates a new CheckDocumentUseCase.
func NewCheckDocumentUseCase(repo port.DocumentRepository, opts editor.Options) *CheckDocumentUseCase {
	return &CheckDocumentUseCase{repo: repo, opts: opts}
}

// CheckDocumentInput names the document. Issues are diagnostics reported by
// an external validator for the same text.
type CheckDocumentInput struct {
	Path   string
	Issues []entity.ValidateIssue
}

// CheckDocumentOutput lists highlights in display order: the parse error
// first, then validator issues.
type CheckDocumentOutput struct {
	Highlights []editor.Highlight
	// ParseError is the parse failure message, empty when the text parses.
	ParseError string
	Message    string
}

// HasErrors reports whether any highlight is an error.
func (o *CheckDocumentOutput) HasErrors() bool {
	if o.ParseError != "" {
		return true
	}
	for _, h := range o.Highlights {
		if h.Severity == entity.SeverityError {
			return true
		}
	}
	return false
}

// Execute reads and checks the document. A parse failure is reported in the
// output, not as an error.
func (uc *CheckDocumentUseCase) Execute(ctx context.Context, input CheckDocumentInput) (*CheckDocumentOutput, error) {
	log := logging.FromContext(ctx)

	text, err := uc.repo.Read(ctx, input.Path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	store := editor.New(text, uc.opts)
	if len(input.Issues) > 0 {
		store.ApplyValidation(input.Issues)
	}

	out := &CheckDocumentOutput{
		Highlights: store.Highlights(),
		Message:    store.Message(),
	}
	if pe := store.ParseError(); pe != nil {
		out.ParseError = pe.Error()
	}

	log.Debug().
		Str("path", input.Path).
		Int("highlights", len(out.Highlights)).
		Bool("parse_error", out.ParseError != "").
		Msg("document checked")
	return out, nil
}
