package editor

import (
	"strings"

	"github.com/bnema/eve/internal/domain/entity"
)

// MaxValidationHighlights is the default cap on validator issues shown.
const MaxValidationHighlights = 200

// HighlightSource tells where a highlight came from.
type HighlightSource string

const (
	SourceParse    HighlightSource = "parse"
	SourceValidate HighlightSource = "validate"
)

// Highlight marks a document line. Column is 0 when the whole line is meant.
type Highlight struct {
	Line     int
	Column   int
	Message  string
	Severity entity.Severity
	Source   HighlightSource
}

func (s *Store) lineCount() int {
	return strings.Count(s.text, "\n") + 1
}

// ApplyValidation replaces the validator highlights. Issues outside the
// document are dropped, duplicates removed, and at most Options.MaxHighlights
// kept in input order.
func (s *Store) ApplyValidation(issues []entity.ValidateIssue) {
	lines := s.lineCount()
	seen := make(map[string]bool, len(issues))
	out := make([]entity.ValidateIssue, 0, len(issues))
	for _, it := range issues {
		if it.Line < 1 || it.Line > lines {
			continue
		}
		k := it.DedupKey()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, it)
		if len(out) == s.maxIssues {
			break
		}
	}
	s.issues = out
	s.logger.Debug().Int("received", len(issues)).Int("kept", len(out)).Msg("validation highlights applied")
	s.notify()
}

// ClearValidation drops the validator highlights.
func (s *Store) ClearValidation() {
	s.issues = nil
	s.notify()
}

// Highlights returns the parse error highlight, when it has a position
// inside the document, followed by the validator highlights.
func (s *Store) Highlights() []Highlight {
	var out []Highlight
	if pe := s.parseErr; pe != nil {
		if pos, ok := pe.Position(); ok && pos.Line <= s.lineCount() {
			out = append(out, Highlight{
				Line:     pos.Line,
				Column:   pos.Column,
				Message:  pe.Error(),
				Severity: entity.SeverityError,
				Source:   SourceParse,
			})
		}
	}
	for _, it := range s.issues {
		sev := it.Severity
		if sev == "" {
			sev = entity.SeverityError
		}
		out = append(out, Highlight{
			Line:     it.Line,
			Column:   it.Column,
			Message:  it.Message,
			Severity: sev,
			Source:   SourceValidate,
		})
	}
	return out
}
