package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/ppiankov/s4spectre/internal/models"
	"github.com/ppiankov/s4spectre/internal/storage"
	"github.com/spf13/cobra"
)

var (
	diffFormat   string
	diffOutput   string
	diffBaseline string
	diffFailNew  bool
)

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Show which findings changed between two assessments",
	Long: `Compare the latest stored assessment against a baseline to show drift.

Shows new findings, resolved findings and the readiness score delta.
A finding is identified by object name and rule, so edits that move a
match to another line do not count as drift.

By default compares the two most recent stored runs. Use --baseline to
compare against a report file written by 'assess --format json'.

Exit codes:
  0  No new findings (or --fail-new not set)
  1  New findings detected (with --fail-new)

Example:
  s4spectre diff
  s4spectre diff --fail-new
  s4spectre diff --baseline ./baseline.json --format json`,
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().StringVarP(&diffFormat, "format", "f", "text",
		"output format: text or json")
	diffCmd.Flags().StringVarP(&diffOutput, "output", "o", "",
		"write output to file instead of stdout")
	diffCmd.Flags().StringVar(&diffBaseline, "baseline", "",
		"path to baseline report JSON (default: previous stored run)")
	diffCmd.Flags().BoolVar(&diffFailNew, "fail-new", false,
		"exit 1 if new findings are found (for CI gating)")
}

// DiffResult is the structured output of a diff operation.
type DiffResult struct {
	Baseline         string           `json:"baseline"`
	Current          string           `json:"current"`
	NewFindings      []models.Finding `json:"new_findings"`
	ResolvedFindings []models.Finding `json:"resolved_findings"`
	Summary          DiffSummary      `json:"summary"`
}

// DiffSummary holds aggregate counts for a diff.
type DiffSummary struct {
	BaselineTotal int            `json:"baseline_total"`
	CurrentTotal  int            `json:"current_total"`
	NewCount      int            `json:"new_count"`
	ResolvedCount int            `json:"resolved_count"`
	Delta         int            `json:"delta"` // positive = more findings
	BaselineScore int            `json:"baseline_score"`
	CurrentScore  int            `json:"current_score"`
	ScoreDelta    int            `json:"score_delta"` // positive = better
	NewBySeverity map[string]int `json:"new_by_severity"`
	NewByCategory map[string]int `json:"new_by_category"`
}

func runDiff(cmd *cobra.Command, args []string) error {
	storagePath, err := getStoragePath()
	if err != nil {
		logError("Failed to get storage path: %v", err)
		return err
	}

	store := storage.NewLocal(storagePath)

	current, err := store.GetLatestRun()
	if err != nil {
		logError("No current run found: %v", err)
		fmt.Println("No stored runs found. Run 's4spectre assess --store' first.")
		return err
	}

	var baseline *models.AssessmentReport
	if diffBaseline != "" {
		baseline, err = loadReportFromFile(diffBaseline)
		if err != nil {
			logError("Failed to load baseline: %v", err)
			return err
		}
	} else {
		reports, err := store.GetLastNRuns(2)
		if err != nil || len(reports) < 2 {
			fmt.Println("Need at least 2 stored runs for diff.")
			fmt.Println("Run 's4spectre assess --store' to record more assessments.")
			return nil
		}
		baseline = reports[0]
	}

	logVerbose("Comparing %s (current) vs %s (baseline)",
		current.Timestamp.Format("2006-01-02 15:04"),
		baseline.Timestamp.Format("2006-01-02 15:04"))

	result := computeDiff(baseline, current)

	if err := outputDiff(result, diffFormat, diffOutput); err != nil {
		return err
	}

	if diffFailNew && result.Summary.NewCount > 0 {
		return &PolicyViolationError{
			Violations: result.Summary.NewCount,
			Reason:     "new findings since baseline",
		}
	}

	return nil
}

// findingKey identifies a finding across runs
func findingKey(f models.Finding) string {
	return f.Object.Name + "|" + f.RuleID
}

// computeDiff calculates new and resolved findings between baseline and current.
func computeDiff(baseline, current *models.AssessmentReport) *DiffResult {
	baseFindings := reportFindings(baseline)
	currFindings := reportFindings(current)

	baseSet := make(map[string]bool, len(baseFindings))
	for _, f := range baseFindings {
		baseSet[findingKey(f)] = true
	}
	currSet := make(map[string]bool, len(currFindings))
	for _, f := range currFindings {
		currSet[findingKey(f)] = true
	}

	newFindings := []models.Finding{}
	for _, f := range currFindings {
		if !baseSet[findingKey(f)] {
			newFindings = append(newFindings, f)
		}
	}
	resolvedFindings := []models.Finding{}
	for _, f := range baseFindings {
		if !currSet[findingKey(f)] {
			resolvedFindings = append(resolvedFindings, f)
		}
	}
	models.SortFindings(newFindings)
	models.SortFindings(resolvedFindings)

	newBySeverity := map[string]int{}
	newByCategory := map[string]int{}
	for _, f := range newFindings {
		newBySeverity[string(f.Severity)]++
		newByCategory[f.Category]++
	}

	baseScore, currScore := reportScore(baseline), reportScore(current)

	return &DiffResult{
		Baseline:         baseline.Timestamp.Format("2006-01-02 15:04:05"),
		Current:          current.Timestamp.Format("2006-01-02 15:04:05"),
		NewFindings:      newFindings,
		ResolvedFindings: resolvedFindings,
		Summary: DiffSummary{
			BaselineTotal: len(baseFindings),
			CurrentTotal:  len(currFindings),
			NewCount:      len(newFindings),
			ResolvedCount: len(resolvedFindings),
			Delta:         len(currFindings) - len(baseFindings),
			BaselineScore: baseScore,
			CurrentScore:  currScore,
			ScoreDelta:    currScore - baseScore,
			NewBySeverity: newBySeverity,
			NewByCategory: newByCategory,
		},
	}
}

func reportFindings(r *models.AssessmentReport) []models.Finding {
	if r == nil || r.Analysis == nil {
		return nil
	}
	return r.Analysis.Findings
}

func reportScore(r *models.AssessmentReport) int {
	if r == nil || r.Analysis == nil {
		return 0
	}
	return r.Analysis.Summary.ReadinessScore
}

// outputDiff renders the diff result to the chosen format.
func outputDiff(result *DiffResult, format, outputPath string) error {
	if format != "json" && format != "text" {
		return &ValidationError{Message: fmt.Sprintf("unsupported format: %s (use text or json)", format)}
	}

	var writer io.Writer = os.Stdout
	if outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = file.Close() }()
		writer = file
	}

	if format == "json" {
		enc := json.NewEncoder(writer)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	printDiffText(writer, result)
	return nil
}

func printDiffText(w io.Writer, r *DiffResult) {
	p := func(format string, args ...interface{}) {
		_, _ = fmt.Fprintf(w, format, args...)
	}

	p("╔════════════════════════════════════════════╗\n")
	p("║         s4spectre Finding Drift            ║\n")
	p("╚════════════════════════════════════════════╝\n\n")

	p("Baseline: %s\n", r.Baseline)
	p("Current:  %s\n\n", r.Current)

	p("Readiness: %d → %d (%+d)\n", r.Summary.BaselineScore, r.Summary.CurrentScore, r.Summary.ScoreDelta)
	p("Findings: %d → %d (%+d)\n", r.Summary.BaselineTotal, r.Summary.CurrentTotal, r.Summary.Delta)
	p("New: %d   Resolved: %d\n\n", r.Summary.NewCount, r.Summary.ResolvedCount)

	if len(r.NewFindings) > 0 {
		p("New Findings:\n")
		p("--------------------------------------------------\n")
		for _, f := range r.NewFindings {
			p("  [%s] %s %s: %s\n", strings.ToUpper(string(f.Severity)), f.RuleID, f.Object.Name, f.Title)
		}
		p("\n")
	}

	if len(r.ResolvedFindings) > 0 {
		p("Resolved Findings:\n")
		p("--------------------------------------------------\n")
		for _, f := range r.ResolvedFindings {
			p("  ✓ %s %s: %s\n", f.RuleID, f.Object.Name, f.Title)
		}
		p("\n")
	}

	if len(r.Summary.NewBySeverity) > 0 {
		p("New by Severity:\n")
		for _, sev := range []models.Severity{
			models.SeverityCritical, models.SeverityHigh, models.SeverityMedium, models.SeverityLow,
		} {
			if count := r.Summary.NewBySeverity[string(sev)]; count > 0 {
				p("  %s: %d\n", strings.ToUpper(string(sev)), count)
			}
		}
		p("\n")
	}

	if len(r.Summary.NewByCategory) > 0 {
		categories := make([]string, 0, len(r.Summary.NewByCategory))
		for c := range r.Summary.NewByCategory {
			categories = append(categories, c)
		}
		sort.Strings(categories)

		p("New by Category:\n")
		for _, c := range categories {
			p("  %s: %d\n", c, r.Summary.NewByCategory[c])
		}
		p("\n")
	}

	switch {
	case r.Summary.NewCount == 0 && r.Summary.ResolvedCount == 0:
		p("No drift detected.\n")
	case r.Summary.NewCount == 0:
		p("No new findings, only improvements.\n")
	}
}

// loadReportFromFile loads an assessment report from a JSON file path.
func loadReportFromFile(path string) (*models.AssessmentReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("failed to read baseline: %v", err)}
	}

	var report models.AssessmentReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("failed to parse report: %v", err)}
	}
	if report.Analysis == nil {
		return nil, &ValidationError{Message: fmt.Sprintf("%s is not an assessment report", path)}
	}

	return &report, nil
}
