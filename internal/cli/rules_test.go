package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ppiankov/s4spectre/internal/models"
	"github.com/ppiankov/s4spectre/internal/rules"
)

func TestFilterRules(t *testing.T) {
	catalog := rules.Default()

	tests := []struct {
		name     string
		severity string
		category string
		module   string
		check    func(rules.Rule) bool
	}{
		{"severity", "CRITICAL", "", "", func(r rules.Rule) bool { return r.Severity == models.SeverityCritical }},
		{"category", "", "enhance", "", func(r rules.Rule) bool { return r.Category == "Enhancements" }},
		{"module", "", "", "abap", func(r rules.Rule) bool { return r.Module() == "ABAP" }},
		{"combined", "high", "", "ENH", func(r rules.Rule) bool {
			return r.Severity == models.SeverityHigh && r.Module() == "ENH"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := filterRules(catalog, tt.severity, tt.category, tt.module)
			if err != nil {
				t.Fatalf("filterRules: %v", err)
			}
			if len(got) == 0 {
				t.Fatal("expected at least one rule")
			}
			for _, r := range got {
				if !tt.check(r) {
					t.Errorf("rule %s does not match the filter", r.ID)
				}
			}
		})
	}
}

func TestFilterRulesNoFilter(t *testing.T) {
	catalog := rules.Default()
	got, err := filterRules(catalog, "", "", "")
	if err != nil {
		t.Fatalf("filterRules: %v", err)
	}
	if len(got) != catalog.Len() {
		t.Errorf("got %d rules, want %d", len(got), catalog.Len())
	}
}

func TestFilterRulesInvalidSeverity(t *testing.T) {
	_, err := filterRules(rules.Default(), "urgent", "", "")
	if HandleError(err) != ExitInvalidInput {
		t.Errorf("err = %v, want exit %d", err, ExitInvalidInput)
	}
}

func TestPrintRules(t *testing.T) {
	selected, _ := filterRules(rules.Default(), "", "", "ENH")

	var buf bytes.Buffer
	printRules(&buf, selected)
	out := buf.String()

	if !strings.Contains(out, "SIMPL-ENH-008") || !strings.Contains(out, "Customer exit include") {
		t.Errorf("output missing ENH-008 row:\n%s", out)
	}
	if !strings.Contains(out, "rules (critical 0, high 1,") {
		t.Errorf("output missing counts line:\n%s", out)
	}
}

func TestPrintRulesEmpty(t *testing.T) {
	var buf bytes.Buffer
	printRules(&buf, nil)
	if !strings.Contains(buf.String(), "No rules match") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestTruncateText(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"Finance", 24, "Finance"},
		{"Master Data Business Partner", 10, "Master Da…"},
		{"abc", 1, "a"},
	}
	for _, tt := range tests {
		if got := truncateText(tt.in, tt.n); got != tt.want {
			t.Errorf("truncateText(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestRunRulesJSONWithPack(t *testing.T) {
	c := testConfig(t)
	c.RulesFile = writeFile(t, t.TempDir(), "rules.toml", `[[rule]]
id = "CUST-ZFI-001"
category = "Custom Finance"
severity = "high"
title = "Legacy posting function"
pattern = '\bZFI_LEGACY\b'
`)
	withTestConfig(t, c)

	oldSev, oldCat, oldMod, oldFormat := rulesSeverity, rulesCategory, rulesModule, rulesFormat
	t.Cleanup(func() { rulesSeverity, rulesCategory, rulesModule, rulesFormat = oldSev, oldCat, oldMod, oldFormat })
	rulesSeverity, rulesCategory, rulesModule, rulesFormat = "", "custom", "", "json"

	var err error
	out := captureStdout(t, func() { err = runRules(nil, nil) })
	if err != nil {
		t.Fatalf("runRules: %v", err)
	}

	var got []rules.Rule
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(got) != 1 || got[0].ID != "CUST-ZFI-001" {
		t.Errorf("rules = %+v", got)
	}
}

func TestRunRulesUnsupportedFormat(t *testing.T) {
	withTestConfig(t, testConfig(t))

	oldFormat := rulesFormat
	t.Cleanup(func() { rulesFormat = oldFormat })
	rulesFormat = "yaml"

	if err := runRules(nil, nil); HandleError(err) != ExitInvalidInput {
		t.Errorf("err = %v, want exit %d", err, ExitInvalidInput)
	}
}
