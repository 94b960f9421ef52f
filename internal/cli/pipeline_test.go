package cli

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/s4spectre/internal/analyzer"
	"github.com/ppiankov/s4spectre/internal/models"
	"github.com/ppiankov/s4spectre/internal/storage"
)

// fixtureJSON has one object with a critical and a low finding and one clean object.
const fixtureJSON = `{
  "packages": [{"name": "ZFI", "description": "Finance extensions"}],
  "objects": [
    {"name": "ZCL_FI_POST", "type": "CLAS", "package": "ZFI"},
    {"name": "ZCL_FI_CLEAN", "type": "CLAS", "package": "ZFI"}
  ],
  "sources": {
    "ZCL_FI_POST": {"type": "CLAS", "source": "SELECT * FROM BSEG.\nDATA lt_mara TYPE mara OCCURS 0.\n", "lines": 2},
    "ZCL_FI_CLEAN": {"type": "CLAS", "source": "DATA lv_x TYPE i.\n", "lines": 1}
  },
  "stats": {"objects": 2, "packages": 1, "sourcesRead": 2}
}`

// writeFixture writes the sample scan fixture to a temp dir and returns its path.
func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scan.json")
	if err := os.WriteFile(path, []byte(fixtureJSON), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// sampleReport analyzes an in-memory scan and wraps it in a report.
func sampleReport(ts time.Time, sources map[string]string) *models.AssessmentReport {
	scan := models.NewScanResult()
	for name, src := range sources {
		scan.Objects = append(scan.Objects, models.ObjectRef{Name: name, Type: models.TypeClass, Package: "ZFI"})
		scan.Sources[name] = models.NewSourceBundle(models.TypeClass, src)
	}
	analysis := analyzer.New(nil).Analyze(scan)
	return &models.AssessmentReport{
		Timestamp: ts,
		Mode:      "mock",
		Analysis:  analysis,
		Roadmap:   analyzer.BuildRoadmap(analysis),
	}
}

func pipelineConfig(fixture, output string) PipelineConfig {
	return PipelineConfig{Fixture: fixture, Format: "json", Output: output}
}

func findingRules(a *models.Analysis) map[string]bool {
	ids := make(map[string]bool)
	for _, f := range a.Findings {
		ids[f.RuleID] = true
	}
	return ids
}

// --- RunAssessment tests ---

func TestRunAssessmentFixture(t *testing.T) {
	withTestConfig(t, testConfig(t))

	report, err := RunAssessment(context.Background(), pipelineConfig(writeFixture(t), ""))
	if err != nil {
		t.Fatalf("RunAssessment: %v", err)
	}

	if report.Mode != "mock" {
		t.Errorf("Mode = %q, want mock", report.Mode)
	}
	if report.Timestamp.Location() != time.UTC {
		t.Errorf("timestamp %v is not UTC", report.Timestamp)
	}
	a := report.Analysis
	if a.Summary.TotalObjects != 2 {
		t.Errorf("TotalObjects = %d, want 2", a.Summary.TotalObjects)
	}
	ids := findingRules(a)
	if !ids["SIMPL-FI-001"] || !ids["SIMPL-ABAP-001"] {
		t.Errorf("findings = %v, want SIMPL-FI-001 and SIMPL-ABAP-001", ids)
	}
	if a.Summary.ReadinessScore >= 100 {
		t.Errorf("score = %d, want < 100", a.Summary.ReadinessScore)
	}
	if len(report.Roadmap) == 0 {
		t.Error("expected a roadmap")
	}
}

func TestRunAssessmentMissingFixture(t *testing.T) {
	withTestConfig(t, testConfig(t))

	_, err := RunAssessment(context.Background(), pipelineConfig(filepath.Join(t.TempDir(), "none.json"), ""))
	if err == nil {
		t.Fatal("expected error for missing fixture")
	}
	if HandleError(err) != ExitRuntimeError {
		t.Errorf("exit code = %d, want %d", HandleError(err), ExitRuntimeError)
	}
}

func TestRunAssessmentInvalidRulePack(t *testing.T) {
	c := testConfig(t)
	c.RulesFile = writeFile(t, t.TempDir(), "rules.toml", "[[rule]]\nid = \"CUST-ZFI-001\"\nseverity = \"urgent\"\npattern = \"FOO\"\n")
	withTestConfig(t, c)

	_, err := RunAssessment(context.Background(), pipelineConfig(writeFixture(t), ""))
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestRunAssessmentWithDatasets(t *testing.T) {
	withTestConfig(t, testConfig(t))

	dir := t.TempDir()
	pcfg := pipelineConfig(writeFixture(t), "")
	pcfg.ATC = writeFile(t, dir, "atc.json",
		`{"findings": [{"object": "ZCL_FI_POST", "check": "CL_CI_TEST_SELECT", "priority": 1}]}`)
	pcfg.Usage = writeFile(t, dir, "usage.yaml",
		"entries:\n  - object: ZCL_FI_POST\n    executions: 12\n")

	report, err := RunAssessment(context.Background(), pcfg)
	if err != nil {
		t.Fatalf("RunAssessment: %v", err)
	}

	a := report.Analysis
	if a.ATCSummary == nil || a.ATCSummary.Total != 1 {
		t.Errorf("ATCSummary = %+v, want 1 finding", a.ATCSummary)
	}
	if a.UsageSummary == nil {
		t.Error("expected a usage summary")
	}
	if len(a.Adjustments) != 1 || a.Adjustments[0].Source != "atc" {
		t.Errorf("adjustments = %+v, want one atc adjustment", a.Adjustments)
	}
}

func TestRunAssessmentDatasetOfWrongKind(t *testing.T) {
	withTestConfig(t, testConfig(t))

	pcfg := pipelineConfig(writeFixture(t), "")
	pcfg.Interfaces = writeFile(t, t.TempDir(), "atc.json",
		`{"findings": [{"object": "ZCL_FI_POST", "priority": 1}]}`)

	_, err := RunAssessment(context.Background(), pcfg)
	if HandleError(err) != ExitInvalidInput {
		t.Errorf("err = %v, want exit %d", err, ExitInvalidInput)
	}
}

// --- RunPipeline tests ---

func TestRunPipelineWritesJSON(t *testing.T) {
	withTestConfig(t, testConfig(t))

	out := filepath.Join(t.TempDir(), "report.json")
	if _, err := RunPipeline(context.Background(), pipelineConfig(writeFixture(t), out)); err != nil {
		t.Fatalf("RunPipeline: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var decoded models.AssessmentReport
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not a report: %v", err)
	}
	if decoded.Analysis == nil || decoded.Analysis.Summary.TotalObjects != 2 {
		t.Errorf("decoded analysis = %+v", decoded.Analysis)
	}
}

func TestRunPipelineThreshold(t *testing.T) {
	withTestConfig(t, testConfig(t))

	pcfg := pipelineConfig(writeFixture(t), filepath.Join(t.TempDir(), "report.json"))
	pcfg.Threshold = 95

	report, err := RunPipeline(context.Background(), pcfg)
	var tErr *ThresholdExceededError
	if !errors.As(err, &tErr) {
		t.Fatalf("err = %v, want ThresholdExceededError", err)
	}
	if tErr.Threshold != 95 || tErr.Score != report.Analysis.Summary.ReadinessScore {
		t.Errorf("threshold error = %+v", tErr)
	}
	if HandleError(err) != ExitPolicyFail {
		t.Errorf("exit code = %d, want %d", HandleError(err), ExitPolicyFail)
	}
}

func TestRunPipelineThresholdZeroDisabled(t *testing.T) {
	withTestConfig(t, testConfig(t))

	pcfg := pipelineConfig(writeFixture(t), filepath.Join(t.TempDir(), "report.json"))
	pcfg.Threshold = 0

	if _, err := RunPipeline(context.Background(), pcfg); err != nil {
		t.Fatalf("threshold 0 should not gate: %v", err)
	}
}

func TestRunPipelinePolicyViolation(t *testing.T) {
	withTestConfig(t, testConfig(t))

	pcfg := pipelineConfig(writeFixture(t), filepath.Join(t.TempDir(), "report.json"))
	pcfg.PolicyFile = writeFile(t, t.TempDir(), "policy.yaml", "version: \"1\"\nrules:\n  max_critical: 0\n")

	var err error
	captureStderr(t, func() {
		_, err = RunPipeline(context.Background(), pcfg)
	})

	var pErr *PolicyViolationError
	if !errors.As(err, &pErr) {
		t.Fatalf("err = %v, want PolicyViolationError", err)
	}
	if pErr.Violations != 1 {
		t.Errorf("violations = %d, want 1", pErr.Violations)
	}
}

func TestRunPipelinePolicyPass(t *testing.T) {
	withTestConfig(t, testConfig(t))

	pcfg := pipelineConfig(writeFixture(t), filepath.Join(t.TempDir(), "report.json"))
	pcfg.PolicyFile = writeFile(t, t.TempDir(), "policy.yaml", "version: \"1\"\nrules:\n  max_critical: 5\n")

	if _, err := RunPipeline(context.Background(), pcfg); err != nil {
		t.Fatalf("RunPipeline: %v", err)
	}
}

func TestRunPipelineMissingExplicitPolicy(t *testing.T) {
	withTestConfig(t, testConfig(t))

	pcfg := pipelineConfig(writeFixture(t), filepath.Join(t.TempDir(), "report.json"))
	pcfg.PolicyFile = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := RunPipeline(context.Background(), pcfg)
	if HandleError(err) != ExitInvalidInput {
		t.Errorf("err = %v, want exit %d", err, ExitInvalidInput)
	}
}

func TestRunPipelineStoreAddsTrend(t *testing.T) {
	c := testConfig(t)
	withTestConfig(t, c)

	store := storage.NewLocal(c.StorageDir)
	previous := sampleReport(time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC),
		map[string]string{"ZCL_FI_POST": "DATA lv_x TYPE i."})
	if err := store.SaveRun(previous); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	pcfg := pipelineConfig(writeFixture(t), filepath.Join(t.TempDir(), "report.json"))
	pcfg.Store = true

	report, err := RunPipeline(context.Background(), pcfg)
	if err != nil {
		t.Fatalf("RunPipeline: %v", err)
	}

	if report.Trend == nil {
		t.Fatal("expected trend against the stored run")
	}
	if report.Trend.Direction != models.TrendDegrading {
		t.Errorf("direction = %s, want %s", report.Trend.Direction, models.TrendDegrading)
	}
	if report.Trend.NewFindings == 0 {
		t.Error("expected new findings in trend")
	}

	runs, err := store.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("stored runs = %d, want 2", len(runs))
	}
}

// --- generateOutput tests ---

func TestGenerateOutputFormats(t *testing.T) {
	report := sampleReport(time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
		map[string]string{"ZCL_FI_POST": "SELECT * FROM BSEG."})

	tests := []struct {
		format string
		want   string
	}{
		{"text", "ZCL_FI_POST"},
		{"json", `"readinessScore"`},
		{"both", "=== JSON Output ==="},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "output")
			if err := generateOutput(report, tt.format, out); err != nil {
				t.Fatalf("generateOutput(%s): %v", tt.format, err)
			}
			data, err := os.ReadFile(out)
			if err != nil {
				t.Fatalf("ReadFile: %v", err)
			}
			if !strings.Contains(string(data), tt.want) {
				t.Errorf("%s output missing %q", tt.format, tt.want)
			}
		})
	}
}

func TestGenerateOutputUnsupported(t *testing.T) {
	report := sampleReport(time.Now().UTC(), map[string]string{"ZCL_A": "DATA x TYPE i."})

	err := generateOutput(report, "xml", filepath.Join(t.TempDir(), "out"))
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if HandleError(err) != ExitInvalidInput {
		t.Errorf("exit code = %d, want %d", HandleError(err), ExitInvalidInput)
	}
}
