package entity

import "fmt"

// Severity of a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// ValidateIssue is one diagnostic from the external validator, already
// parsed into a position. Column is 0 when unknown.
type ValidateIssue struct {
	Line     int      `json:"line"`
	Column   int      `json:"column,omitempty"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// DedupKey identifies an issue for de-duplication.
func (i ValidateIssue) DedupKey() string {
	return fmt.Sprintf("%s:%d:%d:%s", i.Severity, i.Line, i.Column, i.Message)
}
