package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/s4spectre/internal/models"
	"github.com/ppiankov/s4spectre/internal/storage"
)

// storeRuns saves a degrading then improving history and returns the store.
func storeRuns(t *testing.T, dir string) *storage.LocalStorage {
	t.Helper()
	store := storage.NewLocal(dir)
	runs := []*models.AssessmentReport{
		reportWithFindings(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), 70,
			finding("ZCL_FI_POST", "SIMPL-FI-001", models.SeverityCritical, "Finance")),
		reportWithFindings(time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC), 60,
			finding("ZCL_FI_POST", "SIMPL-FI-001", models.SeverityCritical, "Finance"),
			finding("ZCL_SD_PRICE", "SIMPL-SD-002", models.SeverityMedium, "Sales")),
		reportWithFindings(time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC), 85,
			finding("ZCL_SD_PRICE", "SIMPL-SD-002", models.SeverityMedium, "Sales")),
	}
	runs[2].Roadmap = []models.RoadmapPhase{{
		Phase:    1,
		Name:     "Medium",
		Severity: models.SeverityMedium,
		Items: []models.RoadmapItem{{
			Category: "Sales",
			Severity: models.SeverityMedium,
			Action:   "Adopt the new pricing",
			Findings: 1,
		}},
	}}
	for _, r := range runs {
		if err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun: %v", err)
		}
	}
	return store
}

func TestRunTrendReportText(t *testing.T) {
	store := storeRuns(t, t.TempDir())

	var buf bytes.Buffer
	if err := runTrendReport(&buf, store, 7, "text"); err != nil {
		t.Fatalf("runTrendReport: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Latest Run: 2026-03-05 09:00:00 (mock mode)",
		"Readiness: 85/100 (B) ↑ +25 since previous run",
		"Runs Analyzed: 3",
		"Finance: 1 → 0 (-1)",
		"1. [medium] Sales: Adopt the new pricing (1 findings)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestRunTrendReportJSON(t *testing.T) {
	store := storeRuns(t, t.TempDir())

	var buf bytes.Buffer
	if err := runTrendReport(&buf, store, 2, "json"); err != nil {
		t.Fatalf("runTrendReport: %v", err)
	}

	var summary models.TrendSummary
	if err := json.Unmarshal(buf.Bytes(), &summary); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if summary.RunsAnalyzed != 2 {
		t.Errorf("RunsAnalyzed = %d, want 2", summary.RunsAnalyzed)
	}
	if len(summary.ScoreSparkline) != 2 || summary.ScoreSparkline[1] != 85 {
		t.Errorf("ScoreSparkline = %v", summary.ScoreSparkline)
	}
}

func TestRunTrendReportUnsupportedFormat(t *testing.T) {
	store := storeRuns(t, t.TempDir())

	var buf bytes.Buffer
	if err := runTrendReport(&buf, store, 7, "xml"); HandleError(err) != ExitInvalidInput {
		t.Errorf("err = %v, want exit %d", err, ExitInvalidInput)
	}
}

func TestRunComparisonReport(t *testing.T) {
	store := storeRuns(t, t.TempDir())

	var buf bytes.Buffer
	if err := runComparisonReport(&buf, store); err != nil {
		t.Fatalf("runComparisonReport: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "Readiness: 60 → 85 (+25, improving)") {
		t.Errorf("comparison output = %q", out)
	}
	if !strings.Contains(out, "Resolved Findings: 1") {
		t.Errorf("comparison output missing resolved findings: %q", out)
	}
}

func TestRunComparisonReportSingleRun(t *testing.T) {
	store := storage.NewLocal(t.TempDir())
	_ = store.SaveRun(reportWithFindings(diffT0, 70))

	var buf bytes.Buffer
	if err := runComparisonReport(&buf, store); err != nil {
		t.Fatalf("runComparisonReport: %v", err)
	}
	if !strings.Contains(buf.String(), "Need at least 2 runs") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestRunSummarizeNoRuns(t *testing.T) {
	withTestConfig(t, testConfig(t))

	var err error
	out := captureStdout(t, func() { err = runSummarize(nil, nil) })
	if err != nil {
		t.Fatalf("runSummarize: %v", err)
	}
	if !strings.Contains(out, "No stored runs found.") {
		t.Errorf("output = %q", out)
	}
}

func TestTopRoadmapItems(t *testing.T) {
	phases := []models.RoadmapPhase{
		{Items: []models.RoadmapItem{{Category: "A"}, {Category: "B"}}},
		{Items: []models.RoadmapItem{{Category: "C"}}},
	}

	tests := []struct {
		n    int
		want int
	}{
		{0, 0},
		{2, 2},
		{5, 3},
	}
	for _, tt := range tests {
		if got := topRoadmapItems(phases, tt.n); len(got) != tt.want {
			t.Errorf("topRoadmapItems(n=%d) = %d items, want %d", tt.n, len(got), tt.want)
		}
	}
}
