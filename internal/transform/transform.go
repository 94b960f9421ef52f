// Package transform holds the source-to-source rewriters bound to rule identities.
package transform

import (
	"github.com/ppiankov/s4spectre/internal/models"
)

// Output is the result of one transform application
type Output struct {
	Source  string
	Changes []models.ChangeRecord
}

// Transform rewrites source text for the rule it is bound to.
// Implementations must be pure and idempotent on their own output.
type Transform interface {
	RuleID() string
	Apply(source string, finding models.Finding) (Output, error)
}

// Changed reports whether the output differs from the input source
func (o Output) Changed(source string) bool {
	return o.Source != source
}

// unchanged is the no-op result
func unchanged(source string) Output {
	return Output{Source: source}
}
