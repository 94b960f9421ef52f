package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ppiankov/s4spectre/internal/models"
)

func TestRunRemediationMock(t *testing.T) {
	withTestConfig(t, testConfig(t))

	result, err := RunRemediation(context.Background(), writeFixture(t), "", false, false)
	if err != nil {
		t.Fatalf("RunRemediation: %v", err)
	}

	s := result.Stats
	if s.AutoFixed+s.ManualReview+s.NoTransform+s.Errors != s.TotalFindings {
		t.Errorf("stats do not add up: %+v", s)
	}
	if s.AutoFixed == 0 {
		t.Errorf("expected the OCCURS declaration to be fixed: %+v", s)
	}
	if len(result.Written) != 0 {
		t.Errorf("mock mode wrote %v", result.Written)
	}

	var fixed *models.Remediation
	for i := range result.Remediations {
		if result.Remediations[i].RuleID == "SIMPL-ABAP-001" {
			fixed = &result.Remediations[i]
		}
	}
	if fixed == nil || fixed.Status != models.StatusFixed {
		t.Fatalf("SIMPL-ABAP-001 remediation = %+v", fixed)
	}
	if !strings.Contains(fixed.Diff, "+DATA lt_mara TYPE STANDARD TABLE OF mara.") {
		t.Errorf("diff = %q", fixed.Diff)
	}
}

func TestRunRemediationBadFixtureMode(t *testing.T) {
	c := testConfig(t)
	c.Gateway.Mode = "files"
	withTestConfig(t, c)

	_, err := RunRemediation(context.Background(), "", "", true, false)
	if HandleError(err) != ExitInvalidInput {
		t.Errorf("err = %v, want exit %d", err, ExitInvalidInput)
	}
}

func TestWriteRemediation(t *testing.T) {
	withTestConfig(t, testConfig(t))

	result, err := RunRemediation(context.Background(), writeFixture(t), "", true, false)
	if err != nil {
		t.Fatalf("RunRemediation: %v", err)
	}

	var text bytes.Buffer
	if err := writeRemediation(&text, result, "text", true, false); err != nil {
		t.Fatalf("text: %v", err)
	}
	out := text.String()
	for _, want := range []string{"Mode: dry run", "[fixed] SIMPL-ABAP-001", "STANDARD TABLE OF mara"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q\n%s", want, out)
		}
	}

	var js bytes.Buffer
	if err := writeRemediation(&js, result, "json", false, false); err != nil {
		t.Fatalf("json: %v", err)
	}
	var decoded models.RemediationResult
	if err := json.Unmarshal(js.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.ScanResult != nil {
		t.Error("scan result should be omitted without --include-scan")
	}
	if !decoded.DryRun {
		t.Error("DryRun lost in JSON output")
	}

	if err := writeRemediation(&js, result, "xml", false, false); HandleError(err) != ExitInvalidInput {
		t.Errorf("err = %v, want exit %d", err, ExitInvalidInput)
	}
}
