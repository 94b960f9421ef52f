package analyzer

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ppiankov/s4spectre/internal/models"
)

// TrendAnalyzer analyzes trends across stored assessment runs
type TrendAnalyzer struct{}

// NewTrendAnalyzer creates a new trend analyzer
func NewTrendAnalyzer() *TrendAnalyzer {
	return &TrendAnalyzer{}
}

// CalculateTrend compares the current assessment with a previous one.
// Direction follows the readiness score; with an equal score it follows the finding count.
func (t *TrendAnalyzer) CalculateTrend(current, previous *models.AssessmentReport) *models.Trend {
	if previous == nil || current == nil || previous.Analysis == nil || current.Analysis == nil {
		return nil
	}

	prev, cur := previous.Analysis.Summary, current.Analysis.Summary
	trend := &models.Trend{
		ScoreDelta:       cur.ReadinessScore - prev.ReadinessScore,
		PreviousScore:    prev.ReadinessScore,
		CurrentScore:     cur.ReadinessScore,
		PreviousFindings: prev.TotalFindings,
		CurrentFindings:  cur.TotalFindings,
		ComparedWith:     previous.Timestamp,
	}

	newKeys, resolvedKeys := diffFindings(previous.Analysis.Findings, current.Analysis.Findings)
	trend.NewFindings = newKeys
	trend.ResolvedFindings = resolvedKeys

	change := cur.TotalFindings - prev.TotalFindings
	switch {
	case trend.ScoreDelta > 0, trend.ScoreDelta == 0 && change < 0:
		trend.Direction = models.TrendImproving
	case trend.ScoreDelta < 0, trend.ScoreDelta == 0 && change > 0:
		trend.Direction = models.TrendDegrading
	default:
		trend.Direction = models.TrendStable
	}
	return trend
}

// AddTrend attaches the trend against previous to current
func (t *TrendAnalyzer) AddTrend(current, previous *models.AssessmentReport) {
	if current == nil {
		return
	}
	current.Trend = t.CalculateTrend(current, previous)
}

// diffFindings counts findings (object + rule) present only in current and only in previous
func diffFindings(previous, current []models.Finding) (added, resolved int) {
	key := func(f models.Finding) string { return f.Object.Name + "|" + f.RuleID }
	before := make(map[string]bool, len(previous))
	for _, f := range previous {
		before[key(f)] = true
	}
	after := make(map[string]bool, len(current))
	for _, f := range current {
		after[key(f)] = true
	}
	for k := range after {
		if !before[k] {
			added++
		}
	}
	for k := range before {
		if !after[k] {
			resolved++
		}
	}
	return added, resolved
}

// AnalyzeLastNRuns analyzes trends across runs ordered oldest first
func (t *TrendAnalyzer) AnalyzeLastNRuns(runs []*models.AssessmentReport) *models.TrendSummary {
	if len(runs) == 0 {
		return nil
	}

	summary := &models.TrendSummary{
		RunsAnalyzed: len(runs),
		ByCategory:   make(map[string]*models.CategoryTrend),
	}

	if len(runs) > 1 {
		earliest := runs[0].Timestamp
		latest := runs[len(runs)-1].Timestamp
		days := int(latest.Sub(earliest).Hours() / 24)
		summary.TimeRange = fmt.Sprintf("Last %d days", days)
	} else {
		summary.TimeRange = "Single run"
	}

	summary.ScoreSparkline = make([]int, len(runs))
	summary.FindingSparkline = make([]int, len(runs))
	for i, run := range runs {
		if run.Analysis == nil {
			continue
		}
		summary.ScoreSparkline[i] = run.Analysis.Summary.ReadinessScore
		summary.FindingSparkline[i] = run.Analysis.Summary.TotalFindings
	}

	if len(runs) >= 2 {
		t.calculateCategoryTrends(runs[0], runs[len(runs)-1], summary)
	}
	return summary
}

func (t *TrendAnalyzer) calculateCategoryTrends(earliest, latest *models.AssessmentReport, summary *models.TrendSummary) {
	counts := func(r *models.AssessmentReport) map[string]int {
		if r.Analysis == nil {
			return nil
		}
		return r.Analysis.CategoryCounts
	}
	before, after := counts(earliest), counts(latest)

	all := make(map[string]bool)
	for c := range before {
		all[c] = true
	}
	for c := range after {
		all[c] = true
	}
	for c := range all {
		summary.ByCategory[c] = &models.CategoryTrend{
			Name:             c,
			CurrentFindings:  after[c],
			PreviousFindings: before[c],
			Change:           after[c] - before[c],
		}
	}
}

// GenerateComparisonReport creates a plain-text comparison between two runs
func (t *TrendAnalyzer) GenerateComparisonReport(current, previous *models.AssessmentReport) string {
	trend := t.CalculateTrend(current, previous)
	if trend == nil {
		return "No previous run to compare with\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Comparison: %s vs %s\n\n", formatDate(current.Timestamp), formatDate(previous.Timestamp))
	fmt.Fprintf(&b, "Readiness: %d → %d (%+d, %s)\n", trend.PreviousScore, trend.CurrentScore, trend.ScoreDelta, trend.Direction)
	fmt.Fprintf(&b, "Findings: %d → %d\n\n", trend.PreviousFindings, trend.CurrentFindings)

	before, after := previous.Analysis.CategoryCounts, current.Analysis.CategoryCounts
	var categories []string
	seen := make(map[string]bool)
	for _, m := range []map[string]int{before, after} {
		for c := range m {
			if !seen[c] {
				seen[c] = true
				categories = append(categories, c)
			}
		}
	}
	sort.Strings(categories)
	for _, c := range categories {
		if before[c] == after[c] {
			continue
		}
		fmt.Fprintf(&b, "%s: %d → %d (%+d)\n", c, before[c], after[c], after[c]-before[c])
	}

	if trend.NewFindings > 0 {
		fmt.Fprintf(&b, "\nNew Findings: %d\n", trend.NewFindings)
	}
	if trend.ResolvedFindings > 0 {
		fmt.Fprintf(&b, "\nResolved Findings: %d\n", trend.ResolvedFindings)
	}
	return b.String()
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// GetTrendIndicator returns a visual indicator for trend direction
func GetTrendIndicator(direction string) string {
	switch direction {
	case models.TrendImproving:
		return "↑"
	case models.TrendDegrading:
		return "↓"
	case models.TrendStable:
		return "→"
	default:
		return "?"
	}
}
