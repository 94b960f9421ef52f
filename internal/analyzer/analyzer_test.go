package analyzer

import (
	"reflect"
	"testing"

	"github.com/ppiankov/s4spectre/internal/models"
	"github.com/ppiankov/s4spectre/internal/rules"
)

func scanOf(objects map[string]string) *models.ScanResult {
	scan := models.NewScanResult()
	for name, src := range objects {
		scan.Objects = append(scan.Objects, models.ObjectRef{Name: name, Type: models.TypeClass, Package: "ZPKG"})
		scan.Sources[name] = models.NewSourceBundle(models.TypeClass, src)
	}
	return scan
}

func bucketNames(entries []models.RiskEntry) []string {
	var out []string
	for _, e := range entries {
		out = append(out, e.Object.Name)
	}
	return out
}

func checkInvariants(t *testing.T, a *models.Analysis) {
	t.Helper()
	if got := a.SeverityCounts.Total(); got != len(a.Findings) {
		t.Errorf("severity counts sum to %d, want %d findings", got, len(a.Findings))
	}
	seen := make(map[string]int)
	for _, name := range models.BucketNames {
		for _, e := range a.RiskMatrix.Bucket(name) {
			seen[e.Object.Name]++
		}
	}
	for _, s := range a.ObjectSummary {
		if seen[s.Name] != 1 {
			t.Errorf("object %s appears in %d risk buckets, want 1", s.Name, seen[s.Name])
		}
	}
	if len(seen) != a.Summary.TotalObjects {
		t.Errorf("risk matrix holds %d objects, want %d", len(seen), a.Summary.TotalObjects)
	}
}

func TestAnalyze_CleanObject(t *testing.T) {
	a := New(nil).Analyze(scanOf(map[string]string{"Z_CLEAN": "DATA lv_x TYPE i."}))

	if a.Summary.ReadinessScore != 100 || a.Summary.ReadinessGrade != models.GradeA {
		t.Errorf("score %d grade %s, want 100 A", a.Summary.ReadinessScore, a.Summary.ReadinessGrade)
	}
	if a.SeverityCounts != (models.SeverityCounts{}) {
		t.Errorf("severity counts = %+v, want all zero", a.SeverityCounts)
	}
	if got := bucketNames(a.RiskMatrix.Clean); !reflect.DeepEqual(got, []string{"Z_CLEAN"}) {
		t.Errorf("clean bucket = %v", got)
	}
	for _, name := range []string{"critical", "high", "medium", "low"} {
		if len(a.RiskMatrix.Bucket(name)) != 0 {
			t.Errorf("bucket %s not empty", name)
		}
	}
	if a.ObjectSummary[0].MaxSeverity != models.SeverityNone || a.ObjectSummary[0].Lines != 1 {
		t.Errorf("object summary = %+v", a.ObjectSummary[0])
	}
	if a.RulesChecked != rules.Default().Len() {
		t.Errorf("rulesChecked = %d", a.RulesChecked)
	}
	checkInvariants(t, a)
}

func TestAnalyze_CriticalFinding(t *testing.T) {
	a := New(nil).Analyze(scanOf(map[string]string{"Z_BAD": "SELECT * FROM BSEG."}))

	found := false
	for _, f := range a.Findings {
		if f.RuleID == "SIMPL-FI-001" && f.Severity == models.SeverityCritical {
			found = true
			if f.Object.Package != "ZPKG" || f.ObjectType != models.TypeClass {
				t.Errorf("finding lost object metadata: %+v", f)
			}
		}
	}
	if !found {
		t.Fatal("expected critical SIMPL-FI-001 finding")
	}
	if a.Summary.ReadinessScore >= 100 {
		t.Errorf("score = %d, want < 100", a.Summary.ReadinessScore)
	}
	if len(a.RiskMatrix.Critical) == 0 {
		t.Error("critical bucket empty")
	}
	checkInvariants(t, a)
}

func TestAnalyze_MixedSeverities(t *testing.T) {
	src := "SELECT * FROM BSEG.\nSELECT * FROM KNA1.\nDATA lt OCCURS 0."
	a := New(nil).Analyze(scanOf(map[string]string{"Z_TEST": src}))

	c := a.SeverityCounts
	if c.Critical < 1 || c.High < 1 || c.Low < 1 {
		t.Fatalf("severity counts = %+v", c)
	}

	first := map[models.Severity]int{}
	for i, f := range a.Findings {
		if _, ok := first[f.Severity]; !ok {
			first[f.Severity] = i
		}
	}
	if !(first[models.SeverityCritical] < first[models.SeverityHigh] && first[models.SeverityHigh] < first[models.SeverityLow]) {
		t.Errorf("findings not ordered by severity: %v", first)
	}
	for i := 1; i < len(a.Findings); i++ {
		if a.Findings[i-1].Severity.Rank() > a.Findings[i].Severity.Rank() {
			t.Fatalf("finding %d out of order", i)
		}
	}
	checkInvariants(t, a)
}

func TestAnalyze_NameRuleWithoutSource(t *testing.T) {
	scan := models.NewScanResult()
	scan.Objects = append(scan.Objects, models.ObjectRef{Name: "Y001_EXIT_HANDLER", Type: models.TypeProgram})

	a := New(nil).Analyze(scan)
	found := false
	for _, f := range a.Findings {
		for _, m := range f.Matches {
			if m.Line == 0 && m.Content == "Y001_EXIT_HANDLER" {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("expected a line-0 name match, got %+v", a.Findings)
	}
	if a.Summary.ObjectsScanned != 0 || a.Summary.TotalObjects != 1 {
		t.Errorf("summary = %+v", a.Summary)
	}
	checkInvariants(t, a)
}

func TestAnalyze_EmptyScan(t *testing.T) {
	for _, scan := range []*models.ScanResult{nil, models.NewScanResult()} {
		a := New(nil).Analyze(scan)
		if a.Summary.ReadinessScore != 100 || a.Summary.ReadinessGrade != models.GradeA {
			t.Errorf("empty scan: score %d grade %s", a.Summary.ReadinessScore, a.Summary.ReadinessGrade)
		}
		if a.Findings == nil || len(a.Findings) != 0 {
			t.Errorf("findings = %v, want empty non-nil", a.Findings)
		}
		if a.Summary.EffortEstimate.Level != models.EffortLow {
			t.Errorf("effort = %+v", a.Summary.EffortEstimate)
		}
		checkInvariants(t, a)
	}
}

func TestAnalyze_SourceOnlyObject(t *testing.T) {
	scan := models.NewScanResult()
	scan.Sources["ZORPHAN"] = models.NewSourceBundle(models.TypeProgram, "SELECT * FROM bseg.")

	a := New(nil).Analyze(scan)
	if a.Summary.TotalObjects != 1 || len(a.RiskMatrix.Critical) != 1 {
		t.Errorf("source-only object not analyzed: %+v", a.Summary)
	}
	checkInvariants(t, a)
}

func TestAnalyze_StableOrder(t *testing.T) {
	scan := scanOf(map[string]string{
		"ZA": "SELECT * FROM bseg.\nMOVE a TO b.",
		"ZB": "SELECT * FROM mseg.\nSELECT * FROM kna1.",
		"ZC": "DATA lt OCCURS 0.\nCALL FUNCTION 'WS_DOWNLOAD'.",
		"ZD": "DATA x TYPE i.",
	})
	an := New(nil)
	first := an.Analyze(scan)
	for i := 0; i < 5; i++ {
		again := an.Analyze(scan)
		if !reflect.DeepEqual(first.Findings, again.Findings) {
			t.Fatal("finding order changed between runs")
		}
		if !reflect.DeepEqual(first.ObjectSummary, again.ObjectSummary) {
			t.Fatal("object summary order changed between runs")
		}
	}
	checkInvariants(t, first)
}

func TestAnalyze_ObjectSummaryOrder(t *testing.T) {
	scan := models.NewScanResult()
	for _, o := range []struct{ name, src string }{
		{"ZCLEAN1", "DATA x TYPE i."},
		{"ZLOW", "DATA lt OCCURS 0."},
		{"ZCRIT", "SELECT * FROM bseg."},
		{"ZCLEAN2", "DATA y TYPE i."},
	} {
		scan.Objects = append(scan.Objects, models.ObjectRef{Name: o.name, Type: models.TypeProgram})
		scan.Sources[o.name] = models.NewSourceBundle(models.TypeProgram, o.src)
	}

	a := New(nil).Analyze(scan)
	var got []string
	for _, s := range a.ObjectSummary {
		got = append(got, s.Name)
	}
	want := []string{"ZCRIT", "ZLOW", "ZCLEAN1", "ZCLEAN2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("object summary order = %v, want %v", got, want)
	}
}

func TestAnalyze_CustomCatalog(t *testing.T) {
	cat := rules.NewCatalog()
	if err := cat.Register(rules.Rule{
		ID: "SIMPL-TST-001", Category: "Test", Severity: models.SeverityLow,
		Title: "Test", Pattern: `\bFOO\b`,
	}); err != nil {
		t.Fatal(err)
	}
	a := New(cat).Analyze(scanOf(map[string]string{"ZX": "foo.\nSELECT * FROM bseg."}))
	if len(a.Findings) != 1 || a.Findings[0].RuleID != "SIMPL-TST-001" {
		t.Errorf("findings = %+v", a.Findings)
	}
	if a.RulesChecked != 1 {
		t.Errorf("rulesChecked = %d", a.RulesChecked)
	}
	// one low finding on one object: penalty 1 of a budget of 5
	if a.Summary.ReadinessScore != 80 || a.Summary.ReadinessGrade != models.GradeB {
		t.Errorf("score %d grade %s, want 80 B", a.Summary.ReadinessScore, a.Summary.ReadinessGrade)
	}
}
