package models

import "math"

// Severity is the impact level of a rule or finding
type Severity string

// Severity levels for rules and findings
const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"

	// SeverityNone marks an object without findings
	SeverityNone Severity = "none"
)

// Severities lists the finding severities from most to least urgent
var Severities = []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}

// IsValid reports whether s is one of the four finding severities
func (s Severity) IsValid() bool {
	switch s {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow:
		return true
	}
	return false
}

// Rank orders severities for sorting: critical=0 ... low=3, anything else after.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 3
	default:
		return 4
	}
}

// SeverityWeight returns the score penalty of one finding at the given severity
func SeverityWeight(s Severity) int {
	switch s {
	case SeverityCritical:
		return 10
	case SeverityHigh:
		return 5
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// SeverityEffortDays returns the estimated remediation days of one finding
func SeverityEffortDays(s Severity) float64 {
	switch s {
	case SeverityCritical:
		return 5
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 1
	case SeverityLow:
		return 0.5
	default:
		return 0
	}
}

// MaxSeverity returns the more urgent of a and b. SeverityNone loses to everything.
func MaxSeverity(a, b Severity) Severity {
	if a == "" || a == SeverityNone {
		return b
	}
	if b == "" || b == SeverityNone {
		return a
	}
	if b.Rank() < a.Rank() {
		return b
	}
	return a
}

// Readiness grades
const (
	GradeA = "A"
	GradeB = "B"
	GradeC = "C"
	GradeD = "D"
	GradeF = "F"
)

// Effort levels
const (
	EffortLow      = "Low"
	EffortMedium   = "Medium"
	EffortHigh     = "High"
	EffortVeryHigh = "Very High"
)

// PenaltyBudgetPerObject is the penalty one object may carry (five low findings)
// before it counts as fully non-ready.
const PenaltyBudgetPerObject = 5

// CalculateReadinessScore converts a total severity penalty into a 0-100 score.
// maxPenalty = max(1, totalObjects) * 5, normalized = min(penalty/maxPenalty, 1) * 100,
// score = max(0, round(100 - normalized)). With zero objects the score is 100.
func CalculateReadinessScore(totalPenalty, totalObjects int) int {
	if totalObjects <= 0 {
		return 100
	}

	maxPenalty := float64(totalObjects * PenaltyBudgetPerObject)
	ratio := float64(totalPenalty) / maxPenalty
	if ratio > 1 {
		ratio = 1
	}

	score := int(math.Round(100 - ratio*100))
	if score < 0 {
		score = 0
	}
	return score
}

// GradeForScore maps a readiness score to its letter grade
func GradeForScore(score int) string {
	switch {
	case score >= 90:
		return GradeA
	case score >= 75:
		return GradeB
	case score >= 60:
		return GradeC
	case score >= 40:
		return GradeD
	default:
		return GradeF
	}
}

// GradeRank orders grades from best (0) to worst (4); unknown grades rank last.
func GradeRank(grade string) int {
	switch grade {
	case GradeA:
		return 0
	case GradeB:
		return 1
	case GradeC:
		return 2
	case GradeD:
		return 3
	case GradeF:
		return 4
	default:
		return 5
	}
}

// EstimateEffort sums per-finding effort days and derives the effort band
func EstimateEffort(severityCounts map[Severity]int) EffortEstimate {
	days := 0.0
	for sev, count := range severityCounts {
		days += SeverityEffortDays(sev) * float64(count)
	}

	var level, rng string
	switch {
	case days <= 5:
		level, rng = EffortLow, "1-5 days"
	case days <= 20:
		level, rng = EffortMedium, "1-4 weeks"
	case days <= 60:
		level, rng = EffortHigh, "1-3 months"
	default:
		level, rng = EffortVeryHigh, "3+ months"
	}

	return EffortEstimate{Level: level, Range: rng, Days: days}
}
