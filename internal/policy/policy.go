package policy

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ppiankov/s4spectre/internal/models"
	"gopkg.in/yaml.v3"
)

// Policy defines gating rules for an assessment.
type Policy struct {
	Version string `yaml:"version"`
	Rules   Rules  `yaml:"rules"`
}

// Rules contains all configurable policy rules.
type Rules struct {
	MinScore         *int     `yaml:"min_score,omitempty"`
	MinGrade         string   `yaml:"min_grade,omitempty"`
	MaxFindings      *int     `yaml:"max_findings,omitempty"`
	MaxCritical      *int     `yaml:"max_critical,omitempty"`
	MaxHigh          *int     `yaml:"max_high,omitempty"`
	ForbidCategories []string `yaml:"forbid_categories,omitempty"`
	ForbidRules      []string `yaml:"forbid_rules,omitempty"`
	// interfaces, atc, usage
	RequireDatasets []string `yaml:"require_datasets,omitempty"`
}

// Violation is a single policy failure.
type Violation struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Result holds the outcome of a policy check.
type Result struct {
	Pass       bool        `json:"pass"`
	Violations []Violation `json:"violations"`
}

// Names of the default policy files searched by FindPolicyFile
var policyFileNames = []string{".s4spectre-policy.yaml", ".s4spectre-policy.yml"}

// LoadFromFile reads a policy file. A missing file yields a nil policy.
func LoadFromFile(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read policy: %w", err)
	}

	var p Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse policy: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid policy %s: %w", path, err)
	}

	return &p, nil
}

// Validate rejects rules that can never be evaluated
func (p *Policy) Validate() error {
	if p.Rules.MinGrade != "" && models.GradeRank(strings.ToUpper(p.Rules.MinGrade)) > models.GradeRank(models.GradeF) {
		return fmt.Errorf("min_grade %q is not one of A, B, C, D, F", p.Rules.MinGrade)
	}
	if p.Rules.MinScore != nil && (*p.Rules.MinScore < 0 || *p.Rules.MinScore > 100) {
		return fmt.Errorf("min_score %d out of range 0-100", *p.Rules.MinScore)
	}
	for _, ds := range p.Rules.RequireDatasets {
		switch ds {
		case "interfaces", "atc", "usage":
		default:
			return fmt.Errorf("unknown dataset %q in require_datasets", ds)
		}
	}
	return nil
}

// FindPolicyFile searches for a policy file in the current directory
// and parent directories up to the filesystem root.
func FindPolicyFile() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range policyFileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// Evaluate checks an analysis against the policy rules. Violations are
// reported in rule order; per-rule details are sorted.
func (p *Policy) Evaluate(analysis *models.Analysis) *Result {
	if p == nil || analysis == nil {
		return &Result{Pass: true}
	}

	var violations []Violation
	summary := analysis.Summary

	if p.Rules.MinScore != nil && summary.ReadinessScore < *p.Rules.MinScore {
		violations = append(violations, Violation{
			Rule:    "min_score",
			Message: fmt.Sprintf("readiness score %d below minimum %d", summary.ReadinessScore, *p.Rules.MinScore),
		})
	}

	if p.Rules.MinGrade != "" {
		want := strings.ToUpper(p.Rules.MinGrade)
		if models.GradeRank(summary.ReadinessGrade) > models.GradeRank(want) {
			violations = append(violations, Violation{
				Rule:    "min_grade",
				Message: fmt.Sprintf("readiness grade %s worse than %s", summary.ReadinessGrade, want),
			})
		}
	}

	if p.Rules.MaxFindings != nil && summary.TotalFindings > *p.Rules.MaxFindings {
		violations = append(violations, Violation{
			Rule:    "max_findings",
			Message: fmt.Sprintf("total findings %d exceeds limit %d", summary.TotalFindings, *p.Rules.MaxFindings),
		})
	}

	if p.Rules.MaxCritical != nil && analysis.SeverityCounts.Critical > *p.Rules.MaxCritical {
		violations = append(violations, Violation{
			Rule:    "max_critical",
			Message: fmt.Sprintf("critical findings %d exceeds limit %d", analysis.SeverityCounts.Critical, *p.Rules.MaxCritical),
		})
	}

	if p.Rules.MaxHigh != nil && analysis.SeverityCounts.High > *p.Rules.MaxHigh {
		violations = append(violations, Violation{
			Rule:    "max_high",
			Message: fmt.Sprintf("high findings %d exceeds limit %d", analysis.SeverityCounts.High, *p.Rules.MaxHigh),
		})
	}

	if len(p.Rules.ForbidCategories) > 0 {
		forbidden := toSet(p.Rules.ForbidCategories)
		var hits []string
		for cat, count := range analysis.CategoryCounts {
			if forbidden[cat] && count > 0 {
				hits = append(hits, cat)
			}
		}
		sort.Strings(hits)
		for _, cat := range hits {
			violations = append(violations, Violation{
				Rule:    "forbid_categories",
				Message: fmt.Sprintf("forbidden category %q has %d findings", cat, analysis.CategoryCounts[cat]),
			})
		}
	}

	if len(p.Rules.ForbidRules) > 0 {
		forbidden := toSet(p.Rules.ForbidRules)
		counts := make(map[string]int)
		for _, f := range analysis.Findings {
			if forbidden[f.RuleID] {
				counts[f.RuleID]++
			}
		}
		ids := make([]string, 0, len(counts))
		for id := range counts {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			violations = append(violations, Violation{
				Rule:    "forbid_rules",
				Message: fmt.Sprintf("forbidden rule %s matched %d times", id, counts[id]),
			})
		}
	}

	for _, ds := range p.Rules.RequireDatasets {
		if !hasDataset(analysis, ds) {
			violations = append(violations, Violation{
				Rule:    "require_datasets",
				Message: fmt.Sprintf("required dataset %q was not supplied", ds),
			})
		}
	}

	return &Result{
		Pass:       len(violations) == 0,
		Violations: violations,
	}
}

func hasDataset(analysis *models.Analysis, name string) bool {
	switch name {
	case "interfaces":
		return analysis.InterfaceSummary != nil
	case "atc":
		return analysis.ATCSummary != nil
	case "usage":
		return analysis.UsageSummary != nil
	}
	return false
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
