package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ppiankov/s4spectre/internal/models"
)

// PatternKind selects what a rule pattern is evaluated against
type PatternKind string

// Pattern kinds
const (
	KindSource     PatternKind = "source"
	KindObjectName PatternKind = "objectName"
)

// Rule is a simplification rule. Rules are immutable once registered.
type Rule struct {
	ID          string          `json:"id" toml:"id"`
	Category    string          `json:"category" toml:"category"`
	Severity    models.Severity `json:"severity" toml:"severity"`
	Title       string          `json:"title" toml:"title"`
	Description string          `json:"description" toml:"description"`
	Remediation string          `json:"remediation" toml:"remediation"`
	Pattern     string          `json:"pattern" toml:"pattern"`
	Kind        PatternKind     `json:"patternKind" toml:"kind"`
	Reference   string          `json:"reference,omitempty" toml:"reference"`

	re *regexp.Regexp
}

// PatternError reports a rule whose pattern does not compile or whose
// definition is otherwise unusable.
type PatternError struct {
	RuleID  string
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("rule %s: invalid pattern %q: %v", e.RuleID, e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// compile validates the rule and compiles its pattern case-insensitively
func (r *Rule) compile() error {
	if r.ID == "" {
		return &PatternError{RuleID: "<empty>", Pattern: r.Pattern, Err: fmt.Errorf("missing rule id")}
	}
	if !r.Severity.IsValid() {
		return &PatternError{RuleID: r.ID, Pattern: r.Pattern, Err: fmt.Errorf("unknown severity %q", r.Severity)}
	}
	switch r.Kind {
	case "":
		r.Kind = KindSource
	case KindSource, KindObjectName:
	default:
		return &PatternError{RuleID: r.ID, Pattern: r.Pattern, Err: fmt.Errorf("unknown pattern kind %q", r.Kind)}
	}
	if strings.TrimSpace(r.Pattern) == "" {
		return &PatternError{RuleID: r.ID, Pattern: r.Pattern, Err: fmt.Errorf("empty pattern")}
	}

	re, err := regexp.Compile("(?i)" + r.Pattern)
	if err != nil {
		return &PatternError{RuleID: r.ID, Pattern: r.Pattern, Err: err}
	}
	r.re = re
	return nil
}

// Module returns the module segment of the rule identity
// ("SIMPL-FIN-001" -> "FIN"). Identities without a module segment return "".
func (r Rule) Module() string {
	return ModuleOf(r.ID)
}

// ModuleOf extracts the module segment from a PREFIX-MODULE-NNN identity
func ModuleOf(id string) string {
	parts := strings.Split(id, "-")
	if len(parts) < 3 {
		return ""
	}
	return parts[len(parts)-2]
}

// Matches reports whether the compiled pattern matches s
func (r Rule) Matches(s string) bool {
	return r.re != nil && r.re.MatchString(s)
}
