package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ppiankov/s4spectre/internal/models"
)

func sampleReport(ts time.Time, score int) *models.AssessmentReport {
	return &models.AssessmentReport{
		Timestamp: ts,
		Mode:      "mock",
		Analysis: &models.Analysis{
			Summary: models.ReadinessSummary{
				TotalObjects:   3,
				TotalFindings:  2,
				ReadinessScore: score,
				ReadinessGrade: models.GradeForScore(score),
			},
			SeverityCounts: models.SeverityCounts{Critical: 1, High: 1},
			CategoryCounts: map[string]int{"Finance": 2},
			Findings:       []models.Finding{},
		},
		Roadmap: []models.RoadmapPhase{},
	}
}

func TestNewLocal(t *testing.T) {
	s := NewLocal("/tmp/test")
	if s.GetStoragePath() != "/tmp/test" {
		t.Errorf("expected /tmp/test, got %s", s.GetStoragePath())
	}
}

func TestEnsureDirectoryExists(t *testing.T) {
	baseDir := filepath.Join(t.TempDir(), "nested", "s4spectre")
	s := NewLocal(baseDir)

	if err := s.EnsureDirectoryExists(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(baseDir, "assessments")); err != nil {
		t.Fatalf("expected assessments directory to exist: %v", err)
	}
}

func TestSaveAndLoadRun(t *testing.T) {
	dir := t.TempDir()
	s := NewLocal(dir)

	ts := time.Date(2026, 2, 15, 10, 30, 0, 0, time.UTC)
	if err := s.SaveRun(sampleReport(ts, 72)); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	loaded, err := s.LoadRun(ts)
	if err != nil {
		t.Fatalf("LoadRun: %v", err)
	}
	if loaded.Analysis.Summary.ReadinessScore != 72 {
		t.Errorf("expected score 72, got %d", loaded.Analysis.Summary.ReadinessScore)
	}
	if loaded.Analysis.SeverityCounts.Critical != 1 {
		t.Errorf("expected 1 critical, got %d", loaded.Analysis.SeverityCounts.Critical)
	}
	if loaded.Mode != "mock" {
		t.Errorf("expected mode mock, got %s", loaded.Mode)
	}

	if _, err := os.Stat(filepath.Join(dir, "assessments", "2026-02-15T10-30-00-assessment.json.tmp")); !os.IsNotExist(err) {
		t.Error("temporary file left behind")
	}
}

func TestSaveRunDefaultsTimestamp(t *testing.T) {
	s := NewLocal(t.TempDir())
	report := sampleReport(time.Time{}, 90)

	if err := s.SaveRun(report); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if report.Timestamp.IsZero() {
		t.Fatal("expected timestamp to be set")
	}
	runs, err := s.ListRuns()
	if err != nil || len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d (%v)", len(runs), err)
	}
}

func TestSaveRunNil(t *testing.T) {
	s := NewLocal(t.TempDir())
	if err := s.SaveRun(nil); err == nil {
		t.Fatal("expected error for nil report")
	}
}

func TestLoadRunNotFound(t *testing.T) {
	s := NewLocal(t.TempDir())

	_, err := s.LoadRun(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	if err == nil {
		t.Fatal("expected error for missing run")
	}
}

func TestLoadRunWithoutAnalysis(t *testing.T) {
	dir := t.TempDir()
	s := NewLocal(dir)
	if err := s.EnsureDirectoryExists(); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(dir, "assessments", "2026-01-01T00-00-00-assessment.json")
	if err := os.WriteFile(path, []byte(`{"mode":"mock"}`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := s.LoadRun(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)); err == nil {
		t.Fatal("expected error for run without analysis")
	}
}

func TestListRunsEmpty(t *testing.T) {
	s := NewLocal(t.TempDir())

	runs, err := s.ListRuns()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}
}

func TestListRunsMultiple(t *testing.T) {
	s := NewLocal(t.TempDir())

	ts1 := time.Date(2026, 2, 10, 10, 0, 0, 0, time.UTC)
	ts2 := time.Date(2026, 2, 12, 10, 0, 0, 0, time.UTC)
	ts3 := time.Date(2026, 2, 14, 10, 0, 0, 0, time.UTC)

	for _, ts := range []time.Time{ts2, ts1, ts3} {
		if err := s.SaveRun(sampleReport(ts, 80)); err != nil {
			t.Fatalf("SaveRun: %v", err)
		}
	}

	runs, err := s.ListRuns()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	if !runs[0].Equal(ts1) || !runs[1].Equal(ts2) || !runs[2].Equal(ts3) {
		t.Errorf("runs should be sorted chronologically, got %v", runs)
	}
}

func TestGetLatestRun(t *testing.T) {
	s := NewLocal(t.TempDir())

	ts1 := time.Date(2026, 2, 10, 10, 0, 0, 0, time.UTC)
	ts2 := time.Date(2026, 2, 12, 10, 0, 0, 0, time.UTC)

	if err := s.SaveRun(sampleReport(ts1, 50)); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveRun(sampleReport(ts2, 60)); err != nil {
		t.Fatal(err)
	}

	latest, err := s.GetLatestRun()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !latest.Timestamp.Equal(ts2) {
		t.Errorf("expected latest run at %v, got %v", ts2, latest.Timestamp)
	}
	if latest.Analysis.Summary.ReadinessScore != 60 {
		t.Errorf("expected score 60, got %d", latest.Analysis.Summary.ReadinessScore)
	}
}

func TestGetLatestRunEmpty(t *testing.T) {
	s := NewLocal(t.TempDir())

	_, err := s.GetLatestRun()
	if !errors.Is(err, ErrNoRuns) {
		t.Fatalf("expected ErrNoRuns, got %v", err)
	}
}

func TestGetLastNRuns(t *testing.T) {
	s := NewLocal(t.TempDir())

	for day := 10; day <= 14; day++ {
		ts := time.Date(2026, 2, day, 10, 0, 0, 0, time.UTC)
		if err := s.SaveRun(sampleReport(ts, day)); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := s.GetLastNRuns(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	if runs[0].Analysis.Summary.ReadinessScore != 12 || runs[2].Analysis.Summary.ReadinessScore != 14 {
		t.Errorf("expected runs 12..14 oldest first, got %d..%d",
			runs[0].Analysis.Summary.ReadinessScore, runs[2].Analysis.Summary.ReadinessScore)
	}

	runs, err = s.GetLastNRuns(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runs) != 5 {
		t.Fatalf("expected 5 runs, got %d", len(runs))
	}
}

func TestGetLastNRunsSkipsBrokenFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewLocal(dir)

	good := time.Date(2026, 2, 10, 10, 0, 0, 0, time.UTC)
	if err := s.SaveRun(sampleReport(good, 70)); err != nil {
		t.Fatal(err)
	}
	broken := filepath.Join(dir, "assessments", "2026-02-11T10-00-00-assessment.json")
	if err := os.WriteFile(broken, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	runs, err := s.GetLastNRuns(5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected broken run to be skipped, got %d runs", len(runs))
	}
}

func TestGetLastNRunsEmpty(t *testing.T) {
	s := NewLocal(t.TempDir())

	if _, err := s.GetLastNRuns(3); !errors.Is(err, ErrNoRuns) {
		t.Fatalf("expected ErrNoRuns, got %v", err)
	}
}

func TestListRunsIgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewLocal(dir)

	runsDir := filepath.Join(dir, "assessments")
	if err := os.MkdirAll(filepath.Join(runsDir, "subdir"), 0755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"notes.json", "bad-time-assessment.json"} {
		if err := os.WriteFile(filepath.Join(runsDir, name), []byte("{}"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := s.ListRuns()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}
}

func TestFormatAndParseTimestamp(t *testing.T) {
	s := NewLocal("/tmp")
	local := time.FixedZone("CET", 3600)
	ts := time.Date(2026, 2, 15, 11, 30, 45, 0, local)

	formatted := s.formatTimestamp(ts)
	if formatted != "2026-02-15T10-30-45" {
		t.Errorf("expected UTC form 2026-02-15T10-30-45, got %s", formatted)
	}

	parsed, err := s.parseTimestamp(formatted)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !parsed.Equal(ts) {
		t.Errorf("expected %v, got %v", ts, parsed)
	}
}

func TestParseTimestampInvalid(t *testing.T) {
	s := NewLocal("/tmp")
	if _, err := s.parseTimestamp("not-a-timestamp"); err == nil {
		t.Fatal("expected error for invalid timestamp")
	}
}
