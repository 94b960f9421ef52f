package reporter

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/ppiankov/s4spectre/internal/analyzer"
	"github.com/ppiankov/s4spectre/internal/models"
)

const (
	defaultFindingLimit = 20
	maxContentWidth     = 80
	divider             = "--------------------------------------------------"
)

// TextReporter generates human-readable text reports
type TextReporter struct {
	writer       io.Writer
	findingLimit int
	showDiffs    bool
}

// NewTextReporter creates a new text reporter
func NewTextReporter(writer io.Writer) *TextReporter {
	return &TextReporter{
		writer:       writer,
		findingLimit: defaultFindingLimit,
	}
}

// SetFindingLimit caps the findings listed in an assessment; 0 lists all
func (r *TextReporter) SetFindingLimit(n int) {
	r.findingLimit = n
}

// SetShowDiffs includes per-object unified diffs in remediation reports
func (r *TextReporter) SetShowDiffs(show bool) {
	r.showDiffs = show
}

// GenerateAssessment writes a readiness assessment
func (r *TextReporter) GenerateAssessment(report *models.AssessmentReport) error {
	a := report.Analysis
	if a == nil {
		return fmt.Errorf("assessment has no analysis")
	}

	r.printHeader("s4spectre Readiness Assessment")
	r.printf("Timestamp: %s\n", formatTimestamp(report.Timestamp))
	if report.Mode != "" {
		r.printf("Mode: %s\n", report.Mode)
	}
	r.printf("\n")

	r.printOverallSummary(a, report.Trend)
	r.printSeverityCounts(a.SeverityCounts)
	r.printCategoryCounts(a.CategoryCounts)

	if len(a.Adjustments) > 0 {
		r.printf("Score Adjustments:\n")
		for _, adj := range a.Adjustments {
			r.printf("  -%d %s: %s\n", adj.Penalty, adj.Source, adj.Reason)
		}
		r.printf("\n")
	}

	r.printRiskMatrix(a.RiskMatrix)
	r.printFindings(a.Findings)

	if len(report.Roadmap) > 0 {
		r.printRoadmap(report.Roadmap)
	}

	r.printDatasets(a)

	if report.Trend != nil {
		r.printTrendInfo(report.Trend)
	}

	return nil
}

func (r *TextReporter) printHeader(title string) {
	const width = 44
	pad := width - len(title)
	if pad < 0 {
		pad = 0
	}
	left := pad / 2
	r.printf("╔%s╗\n", strings.Repeat("═", width))
	r.printf("║%s%s%s║\n", strings.Repeat(" ", left), title, strings.Repeat(" ", pad-left))
	r.printf("╚%s╝\n\n", strings.Repeat("═", width))
}

func (r *TextReporter) printOverallSummary(a *models.Analysis, trend *models.Trend) {
	s := a.Summary
	r.printf("Overall Summary:\n")
	r.printf("%s\n", divider)
	r.printf("  Objects: %d (%d with source)\n", s.TotalObjects, s.ObjectsScanned)
	r.printf("  Findings: %d\n", s.TotalFindings)
	r.printf("  Readiness Score: %d/100 (Grade %s)", s.ReadinessScore, s.ReadinessGrade)
	if trend != nil {
		r.printf(" %s %+d from previous run", analyzer.GetTrendIndicator(trend.Direction), trend.ScoreDelta)
	}
	r.printf("\n")
	r.printf("  Effort: %s (%s, ~%.1f days)\n", s.EffortEstimate.Level, s.EffortEstimate.Range, s.EffortEstimate.Days)
	if a.RulesChecked > 0 {
		r.printf("  Rules Checked: %d\n", a.RulesChecked)
	}
	r.printf("\n")
}

func (r *TextReporter) printSeverityCounts(c models.SeverityCounts) {
	if c.Total() == 0 {
		return
	}
	r.printf("Findings by Severity:\n")
	for _, sev := range models.Severities {
		if n := c.Get(sev); n > 0 {
			r.printf("  %s: %d\n", titleCase(string(sev)), n)
		}
	}
	r.printf("\n")
}

func (r *TextReporter) printCategoryCounts(counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	categories := make([]string, 0, len(counts))
	for c := range counts {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool {
		if counts[categories[i]] != counts[categories[j]] {
			return counts[categories[i]] > counts[categories[j]]
		}
		return categories[i] < categories[j]
	})

	r.printf("Findings by Category:\n")
	for _, c := range categories {
		r.printf("  %s: %d\n", c, counts[c])
	}
	r.printf("\n")
}

func (r *TextReporter) printRiskMatrix(m models.RiskMatrix) {
	r.printf("Risk Matrix:\n")
	r.printf("%s\n", divider)
	for _, name := range models.BucketNames {
		entries := m.Bucket(name)
		if len(entries) == 0 {
			continue
		}
		if name == "clean" {
			r.printf("  %-8s %d object(s)\n", "Clean:", len(entries))
			continue
		}
		parts := make([]string, 0, len(entries))
		for _, e := range entries {
			parts = append(parts, fmt.Sprintf("%s (%d)", e.Object.Name, e.FindingCount))
		}
		r.printf("  %-8s %s\n", titleCase(name)+":", strings.Join(parts, ", "))
	}
	r.printf("\n")
}

func (r *TextReporter) printFindings(findings []models.Finding) {
	if len(findings) == 0 {
		r.printf("No findings.\n\n")
		return
	}

	shown := findings
	if r.findingLimit > 0 && len(shown) > r.findingLimit {
		shown = shown[:r.findingLimit]
	}

	r.printf("Findings:\n")
	r.printf("%s\n", divider)
	for i, f := range shown {
		r.printf("  %d. [%s] %s %s: %s\n", i+1, strings.ToUpper(string(f.Severity)), f.RuleID, f.Object.Name, f.Title)
		for _, m := range f.Matches {
			if m.IsNameMatch() {
				r.printf("     name: %s\n", m.Content)
				continue
			}
			r.printf("     line %d: %s\n", m.Line, truncate(strings.TrimSpace(m.Content), maxContentWidth))
		}
		if f.Remediation != "" {
			r.printf("     Fix: %s\n", f.Remediation)
		}
	}
	if rest := len(findings) - len(shown); rest > 0 {
		r.printf("  ... and %d more\n", rest)
	}
	r.printf("\n")
}

func (r *TextReporter) printRoadmap(phases []models.RoadmapPhase) {
	r.printf("Remediation Roadmap:\n")
	r.printf("%s\n", divider)
	for _, p := range phases {
		r.printf("  Phase %d: %s (~%.1f days)\n", p.Phase, p.Name, p.Days)
		for _, item := range p.Items {
			r.printf("    - %s (%d findings in %d objects)\n", item.Action, item.Findings, item.Objects)
		}
	}
	r.printf("\n")
}

func (r *TextReporter) printDatasets(a *models.Analysis) {
	if a.InterfaceSummary == nil && a.ATCSummary == nil && a.UsageSummary == nil {
		return
	}

	r.printf("Supplementary Data:\n")
	r.printf("%s\n", divider)
	if s := a.InterfaceSummary; s != nil {
		r.printf("  Interfaces: %d (%s complexity, %d deprecated)\n", s.Total, s.Complexity, s.Deprecated)
	}
	if s := a.ATCSummary; s != nil {
		r.printf("  ATC Findings: %d (priority 1: %d, priority 2: %d)\n", s.Total, s.ByPriority[1], s.ByPriority[2])
	}
	if s := a.UsageSummary; s != nil {
		r.printf("  Usage: %d objects, %d used, %d unused\n", s.Total, s.Used, s.Unused)
		if len(s.UnusedObject) > 0 {
			r.printf("  Retirement candidates: %s\n", strings.Join(s.UnusedObject, ", "))
		}
	}
	r.printf("\n")
}

func (r *TextReporter) printTrendInfo(trend *models.Trend) {
	r.printf("Trend Analysis:\n")
	r.printf("%s\n", divider)
	r.printf("  Direction: %s %s\n", trend.Direction, analyzer.GetTrendIndicator(trend.Direction))
	r.printf("  Score: %d → %d (%+d)\n", trend.PreviousScore, trend.CurrentScore, trend.ScoreDelta)
	r.printf("  Findings: %d → %d\n", trend.PreviousFindings, trend.CurrentFindings)
	if trend.NewFindings > 0 {
		r.printf("  New Findings: %d\n", trend.NewFindings)
	}
	if trend.ResolvedFindings > 0 {
		r.printf("  Resolved: %d\n", trend.ResolvedFindings)
	}
	r.printf("  Compared With: %s\n", formatTimestamp(trend.ComparedWith))
}

// GenerateRemediation writes the outcome of a remediation pass
func (r *TextReporter) GenerateRemediation(result *models.RemediationResult) error {
	r.printHeader("s4spectre Remediation Report")
	if result.DryRun {
		r.printf("Mode: dry run (no sources written)\n\n")
	}

	s := result.Stats
	r.printf("Summary:\n")
	r.printf("%s\n", divider)
	r.printf("  Findings: %d\n", s.TotalFindings)
	r.printf("  Auto-fixed: %d\n", s.AutoFixed)
	r.printf("  Manual review: %d\n", s.ManualReview)
	r.printf("  No transform: %d\n", s.NoTransform)
	r.printf("  Errors: %d\n", s.Errors)
	if result.Analysis != nil {
		r.printf("  Readiness Score: %d/100 (Grade %s)\n", result.Analysis.Summary.ReadinessScore, result.Analysis.Summary.ReadinessGrade)
	}
	r.printf("\n")

	if len(result.Written) > 0 {
		r.printf("Objects Written: %s\n\n", strings.Join(result.Written, ", "))
	}
	if len(result.WriteErrors) > 0 {
		r.printf("Write Errors:\n")
		for _, we := range result.WriteErrors {
			r.printf("  %s: %s\n", we.Object, we.Message)
		}
		r.printf("\n")
	}

	if len(result.Remediations) == 0 {
		r.printf("Nothing to remediate.\n")
		return nil
	}

	r.printf("Remediations:\n")
	r.printf("%s\n", divider)
	var order []string
	byObject := make(map[string][]models.Remediation)
	for _, rem := range result.Remediations {
		if _, ok := byObject[rem.Object]; !ok {
			order = append(order, rem.Object)
		}
		byObject[rem.Object] = append(byObject[rem.Object], rem)
	}

	for _, name := range order {
		rems := byObject[name]
		r.printf("  %s\n", name)
		diff := ""
		for _, rem := range rems {
			r.printf("    [%s] %s %s", rem.Status, rem.RuleID, rem.Title)
			if rem.ChangeCount > 0 {
				r.printf(" (%d changes)", rem.ChangeCount)
			}
			if rem.Reason != "" {
				r.printf(": %s", rem.Reason)
			}
			r.printf("\n")
			if diff == "" {
				diff = rem.Diff
			}
		}
		if r.showDiffs && diff != "" {
			r.printf("\n")
			for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
				r.printf("      %s\n", line)
			}
			r.printf("\n")
		}
	}

	return nil
}

// GenerateTrendSummary writes the history view over the last runs
func (r *TextReporter) GenerateTrendSummary(summary *models.TrendSummary) error {
	r.printHeader("s4spectre Readiness History")
	r.printf("Time Range: %s\n", summary.TimeRange)
	r.printf("Runs Analyzed: %d\n\n", summary.RunsAnalyzed)

	if len(summary.ScoreSparkline) > 0 {
		r.printf("Score:    %s  %s\n", sparkline(summary.ScoreSparkline), joinInts(summary.ScoreSparkline))
	}
	if len(summary.FindingSparkline) > 0 {
		r.printf("Findings: %s  %s\n", sparkline(summary.FindingSparkline), joinInts(summary.FindingSparkline))
	}
	r.printf("\n")

	if len(summary.ByCategory) == 0 {
		return nil
	}

	names := make([]string, 0, len(summary.ByCategory))
	for name := range summary.ByCategory {
		names = append(names, name)
	}
	sort.Strings(names)

	r.printf("By Category:\n")
	r.printf("%s\n", divider)
	for _, name := range names {
		ct := summary.ByCategory[name]
		r.printf("  %s: %d → %d (%+d)\n", name, ct.PreviousFindings, ct.CurrentFindings, ct.Change)
	}
	return nil
}

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// sparkline renders values scaled between their min and max
func sparkline(values []int) string {
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	var b strings.Builder
	for _, v := range values {
		idx := 0
		if hi > lo {
			idx = (v - lo) * (len(sparkBlocks) - 1) / (hi - lo)
		}
		b.WriteRune(sparkBlocks[idx])
	}
	return b.String()
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, " ")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

// printf is a helper to write formatted output
func (r *TextReporter) printf(format string, args ...interface{}) {
	fmt.Fprintf(r.writer, format, args...)
}

// formatTimestamp formats a timestamp for display
func formatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}
