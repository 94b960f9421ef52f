package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/ppiankov/s4spectre/internal/models"
	"github.com/ppiankov/s4spectre/internal/storage"
	"github.com/spf13/cobra"
)

var (
	explainFormat string
	explainReport string
)

var explainScoreCmd = &cobra.Command{
	Use:   "explain-score",
	Short: "Show the readiness score formula step by step",
	Long: `Explain-score loads the latest stored assessment and shows exactly how
the readiness score was calculated:

  1. Findings per severity and their penalty weights
  2. The penalty budget: objects * 5
  3. The formula: score = 100 - min(penalty / budget, 1) * 100
  4. Dataset adjustments (interfaces, ATC)
  5. The grade thresholds

This command requires a previous run stored with --store, or a report
file passed with --report.`,
	RunE: runExplainScore,
}

func init() {
	explainScoreCmd.Flags().StringVar(&explainFormat, "format", "text",
		"output format: text or json")
	explainScoreCmd.Flags().StringVar(&explainReport, "report", "",
		"explain a report file written by 'assess --format json' instead of the latest run")
}

// explainResult holds the structured explanation.
type explainResult struct {
	PerSeverity  []severityContribution   `json:"per_severity"`
	TotalPenalty int                      `json:"total_penalty"`
	TotalObjects int                      `json:"total_objects"`
	MaxPenalty   int                      `json:"max_penalty"`
	BaseScore    int                      `json:"base_score"`
	Adjustments  []models.ScoreAdjustment `json:"adjustments"`
	Score        int                      `json:"score"`
	Grade        string                   `json:"grade"`
	Formula      string                   `json:"formula"`
	Thresholds   []gradeThreshold         `json:"thresholds"`
	TopObjects   []objectPenalty          `json:"top_objects"`
}

type severityContribution struct {
	Severity models.Severity `json:"severity"`
	Findings int             `json:"findings"`
	Weight   int             `json:"weight"`
	Penalty  int             `json:"penalty"`
}

type objectPenalty struct {
	Object   string `json:"object"`
	Findings int    `json:"findings"`
	Penalty  int    `json:"penalty"`
}

type gradeThreshold struct {
	Min   int    `json:"min"`
	Grade string `json:"grade"`
}

// maxTopObjects bounds the object list of the explanation
const maxTopObjects = 10

func runExplainScore(cmd *cobra.Command, args []string) error {
	var report *models.AssessmentReport
	if explainReport != "" {
		var err error
		if report, err = loadReportFromFile(explainReport); err != nil {
			return err
		}
	} else {
		storagePath, err := getStoragePath()
		if err != nil {
			return fmt.Errorf("failed to resolve storage path: %w", err)
		}

		report, err = storage.NewLocal(storagePath).GetLatestRun()
		if err != nil {
			return fmt.Errorf("no stored runs found. Run 's4spectre assess --store' first: %w", err)
		}
	}

	result := buildExplanation(report.Analysis)

	switch explainFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case "text":
		writeExplainText(os.Stdout, result)
		return nil
	default:
		return &ValidationError{Message: fmt.Sprintf("unsupported format: %s (use text or json)", explainFormat)}
	}
}

func buildExplanation(analysis *models.Analysis) explainResult {
	result := explainResult{
		Thresholds: []gradeThreshold{
			{Min: 90, Grade: models.GradeA},
			{Min: 75, Grade: models.GradeB},
			{Min: 60, Grade: models.GradeC},
			{Min: 40, Grade: models.GradeD},
			{Min: 0, Grade: models.GradeF},
		},
		Adjustments: analysis.Adjustments,
	}

	perObject := make(map[string]*objectPenalty)
	for _, f := range analysis.Findings {
		weight := models.SeverityWeight(f.Severity)
		result.TotalPenalty += weight

		op, ok := perObject[f.Object.Name]
		if !ok {
			op = &objectPenalty{Object: f.Object.Name}
			perObject[f.Object.Name] = op
		}
		op.Findings++
		op.Penalty += weight
	}

	for _, sev := range []models.Severity{
		models.SeverityCritical, models.SeverityHigh, models.SeverityMedium, models.SeverityLow,
	} {
		n := analysis.SeverityCounts.Get(sev)
		result.PerSeverity = append(result.PerSeverity, severityContribution{
			Severity: sev,
			Findings: n,
			Weight:   models.SeverityWeight(sev),
			Penalty:  n * models.SeverityWeight(sev),
		})
	}

	for _, op := range perObject {
		result.TopObjects = append(result.TopObjects, *op)
	}
	sort.Slice(result.TopObjects, func(i, j int) bool {
		a, b := result.TopObjects[i], result.TopObjects[j]
		if a.Penalty != b.Penalty {
			return a.Penalty > b.Penalty
		}
		return a.Object < b.Object
	})
	if len(result.TopObjects) > maxTopObjects {
		result.TopObjects = result.TopObjects[:maxTopObjects]
	}

	result.TotalObjects = analysis.Summary.TotalObjects
	result.MaxPenalty = result.TotalObjects * models.PenaltyBudgetPerObject
	result.BaseScore = models.CalculateReadinessScore(result.TotalPenalty, result.TotalObjects)
	result.Score = analysis.Summary.ReadinessScore
	result.Grade = analysis.Summary.ReadinessGrade

	if result.MaxPenalty > 0 {
		result.Formula = fmt.Sprintf("100 - min(%d / %d, 1) * 100 = %d",
			result.TotalPenalty, result.MaxPenalty, result.BaseScore)
	} else {
		result.Formula = "no objects scanned = 100"
	}

	return result
}

func writeExplainText(w io.Writer, result explainResult) {
	p := func(format string, args ...interface{}) {
		_, _ = fmt.Fprintf(w, format, args...)
	}

	p("Readiness Score Breakdown\n")
	p("=========================\n\n")

	p("1. Findings per severity:\n")
	for _, sc := range result.PerSeverity {
		p("   %-10s  %3d findings x %2d = %d\n", sc.Severity, sc.Findings, sc.Weight, sc.Penalty)
	}
	p("   %-10s  penalty %d\n\n", "", result.TotalPenalty)

	p("2. Penalty budget: %d objects x 5 = %d\n\n", result.TotalObjects, result.MaxPenalty)

	p("3. Formula:\n")
	p("   score = 100 - min(penalty / budget, 1) * 100\n")
	p("   score = %s\n\n", result.Formula)

	p("4. Adjustments:\n")
	if len(result.Adjustments) == 0 {
		p("   none\n")
	}
	for _, adj := range result.Adjustments {
		p("   -%d %s: %s\n", adj.Penalty, adj.Source, adj.Reason)
	}
	p("\n")

	p("5. Grades:\n")
	for _, t := range result.Thresholds {
		marker := "  "
		if result.Grade == t.Grade {
			marker = "→ "
		}
		p("   %s≥ %3d  %s\n", marker, t.Min, t.Grade)
	}
	p("\n")

	if len(result.TopObjects) > 0 {
		p("Largest contributors:\n")
		for _, op := range result.TopObjects {
			p("   %-30s  %d findings, penalty %d\n", op.Object, op.Findings, op.Penalty)
		}
		p("\n")
	}

	p("Result: %d/100 (%s)\n", result.Score, result.Grade)
}
