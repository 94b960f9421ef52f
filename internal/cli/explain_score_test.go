package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ppiankov/s4spectre/internal/models"
	"github.com/ppiankov/s4spectre/internal/storage"
)

func TestBuildExplanation(t *testing.T) {
	report := reportWithFindings(diffT0, 0,
		finding("ZCL_FI_POST", "SIMPL-FI-001", models.SeverityCritical, "Finance"),
		finding("ZCL_FI_POST", "SIMPL-ABAP-001", models.SeverityLow, "ABAP Language"),
		finding("ZCL_SD_PRICE", "SIMPL-SD-002", models.SeverityMedium, "Sales"),
	)
	// 3 objects, penalty 10+1+2 = 13 of 15 -> 13
	report.Analysis.Summary.ReadinessScore = 13
	report.Analysis.Summary.ReadinessGrade = models.GradeF

	result := buildExplanation(report.Analysis)

	if result.TotalPenalty != 13 {
		t.Errorf("TotalPenalty = %d, want 13", result.TotalPenalty)
	}
	if result.MaxPenalty != 15 {
		t.Errorf("MaxPenalty = %d, want 15", result.MaxPenalty)
	}
	if result.BaseScore != 13 {
		t.Errorf("BaseScore = %d, want 13", result.BaseScore)
	}
	if result.Formula != "100 - min(13 / 15, 1) * 100 = 13" {
		t.Errorf("Formula = %q", result.Formula)
	}
	if len(result.PerSeverity) != 4 || result.PerSeverity[0].Penalty != 10 || result.PerSeverity[3].Penalty != 1 {
		t.Errorf("PerSeverity = %+v", result.PerSeverity)
	}
	if len(result.TopObjects) != 2 || result.TopObjects[0].Object != "ZCL_FI_POST" || result.TopObjects[0].Penalty != 11 {
		t.Errorf("TopObjects = %+v", result.TopObjects)
	}
	if len(result.Thresholds) != 5 || result.Thresholds[0].Grade != models.GradeA {
		t.Errorf("Thresholds = %+v", result.Thresholds)
	}
}

func TestBuildExplanationNoObjects(t *testing.T) {
	analysis := &models.Analysis{Summary: models.ReadinessSummary{ReadinessScore: 100, ReadinessGrade: models.GradeA}}

	result := buildExplanation(analysis)
	if result.BaseScore != 100 || result.Formula != "no objects scanned = 100" {
		t.Errorf("result = %+v", result)
	}
}

func TestBuildExplanationTopObjectsBounded(t *testing.T) {
	var findings []models.Finding
	for _, name := range []string{"ZA", "ZB", "ZC", "ZD", "ZE", "ZF", "ZG", "ZH", "ZI", "ZJ", "ZK", "ZL"} {
		findings = append(findings, finding(name, "SIMPL-ABAP-001", models.SeverityLow, "ABAP Language"))
	}
	result := buildExplanation(reportWithFindings(diffT0, 50, findings...).Analysis)

	if len(result.TopObjects) != maxTopObjects {
		t.Fatalf("TopObjects = %d, want %d", len(result.TopObjects), maxTopObjects)
	}
	// Equal penalties sort by name
	if result.TopObjects[0].Object != "ZA" {
		t.Errorf("first object = %s, want ZA", result.TopObjects[0].Object)
	}
}

func TestWriteExplainText(t *testing.T) {
	report := reportWithFindings(diffT0, 45,
		finding("ZCL_FI_POST", "SIMPL-FI-001", models.SeverityCritical, "Finance"))
	report.Analysis.Adjustments = []models.ScoreAdjustment{
		{Source: "interfaces", Penalty: 5, Reason: "High interface complexity"},
	}

	var buf bytes.Buffer
	writeExplainText(&buf, buildExplanation(report.Analysis))
	out := buf.String()

	for _, want := range []string{
		"Readiness Score Breakdown",
		"2. Penalty budget: 3 objects x 5 = 15",
		"-5 interfaces: High interface complexity",
		"→ ≥  40  D",
		"Result: 45/100 (D)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestRunExplainScoreJSON(t *testing.T) {
	c := testConfig(t)
	withTestConfig(t, c)

	_ = storage.NewLocal(c.StorageDir).SaveRun(reportWithFindings(diffT0, 67,
		finding("ZCL_FI_POST", "SIMPL-FI-001", models.SeverityCritical, "Finance")))

	oldFormat, oldReport := explainFormat, explainReport
	t.Cleanup(func() { explainFormat, explainReport = oldFormat, oldReport })
	explainFormat = "json"
	explainReport = ""

	var err error
	out := captureStdout(t, func() { err = runExplainScore(nil, nil) })
	if err != nil {
		t.Fatalf("runExplainScore: %v", err)
	}

	var result explainResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if result.Score != 67 || result.TotalPenalty != 10 {
		t.Errorf("result = %+v", result)
	}
}

func TestRunExplainScoreNoRuns(t *testing.T) {
	withTestConfig(t, testConfig(t))

	oldReport := explainReport
	t.Cleanup(func() { explainReport = oldReport })
	explainReport = ""

	if err := runExplainScore(nil, nil); err == nil {
		t.Fatal("expected error without stored runs")
	}
}
