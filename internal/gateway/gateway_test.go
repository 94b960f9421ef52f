package gateway

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ppiankov/s4spectre/internal/models"
)

const fixtureJSON = `{
  "packages": [{"name": "ZFI", "description": "Finance"}],
  "objects": [
    {"name": "ZCL_POSTING", "type": "CLAS", "description": "Posting", "package": "ZFI"},
    {"name": "ZFI_REPORT", "type": "PROG", "package": "ZFI"},
    {"name": "YTABLE", "type": "TABL", "package": "ZFI"}
  ],
  "sources": {
    "ZCL_POSTING": {"type": "CLAS", "source": "SELECT * FROM bseg.\n", "lines": 1},
    "ZFI_REPORT": {"type": "PROG", "source": "REPORT zfi_report.\n", "lines": 1}
  },
  "stats": {"objects": 3, "packages": 1, "sourcesRead": 2, "errors": 0}
}`

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.json")
	if err := os.WriteFile(path, []byte(fixtureJSON), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestModeSupportsWrites(t *testing.T) {
	tests := []struct {
		mode Mode
		want bool
	}{
		{ModeMock, false},
		{ModeLive, true},
		{ModeVSP, true},
		{ModeFiles, true},
	}
	for _, tt := range tests {
		if got := tt.mode.SupportsWrites(); got != tt.want {
			t.Errorf("%s.SupportsWrites() = %v, want %v", tt.mode, got, tt.want)
		}
	}
	if Mode("ftp").IsValid() {
		t.Error("unknown mode should not be valid")
	}
}

func TestWildcard(t *testing.T) {
	tests := []struct {
		query string
		name  string
		want  bool
	}{
		{"Z*", "ZCL_POSTING", true},
		{"Z*", "zcl_posting", true},
		{"Z*", "YCL_X", false},
		{"*POST*", "ZCL_POSTING", true},
		{"ZCL_POSTING", "ZCL_POSTING_2", false},
		{"/ACME/*", "/ACME/CL_X", true},
		{"Z.*", "ZAB", false},
	}
	for _, tt := range tests {
		if got := wildcard(tt.query).MatchString(tt.name); got != tt.want {
			t.Errorf("wildcard(%q) on %q = %v, want %v", tt.query, tt.name, got, tt.want)
		}
	}
}

func TestNew(t *testing.T) {
	if _, err := New(Config{Mode: "bogus"}); err == nil {
		t.Error("expected error for unknown mode")
	}
	if _, err := New(Config{Mode: ModeMock}); err == nil {
		t.Error("expected error for mock mode without fixture")
	}
	if _, err := New(Config{Mode: ModeLive}); err == nil {
		t.Error("expected error for live mode without URL")
	}
	gw, err := New(Config{Mode: ModeVSP})
	if err != nil {
		t.Fatalf("New(vsp): %v", err)
	}
	if gw.Mode() != ModeVSP {
		t.Errorf("mode = %s, want vsp", gw.Mode())
	}
}

func TestMock_FixtureCached(t *testing.T) {
	path := writeFixture(t)
	m := NewMock(path)

	first, err := m.Fixture()
	if err != nil {
		t.Fatalf("Fixture: %v", err)
	}
	if len(first.Objects) != 3 || len(first.Sources) != 2 {
		t.Fatalf("unexpected fixture: %d objects, %d sources", len(first.Objects), len(first.Sources))
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	second, err := m.Fixture()
	if err != nil {
		t.Fatalf("second Fixture: %v", err)
	}
	if first != second {
		t.Error("fixture should be read once and cached")
	}
}

func TestMock_MissingFixture(t *testing.T) {
	m := NewMock(filepath.Join(t.TempDir(), "missing.json"))
	if _, err := m.Search(context.Background(), "Z*", ""); err == nil {
		t.Error("expected error for missing fixture")
	}
}

func TestMock_SearchAndRead(t *testing.T) {
	ctx := context.Background()
	m := NewMock(writeFixture(t))

	res, err := m.Search(ctx, "Z*", "")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.ResultCount != 2 {
		t.Errorf("Z* matched %d objects, want 2", res.ResultCount)
	}

	res, err = m.Search(ctx, "*", "class")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.ResultCount != 1 || res.Results[0].Name != "ZCL_POSTING" {
		t.Errorf("class filter returned %+v", res.Results)
	}
	if res.Results[0].Package != "ZFI" || res.Results[0].Description != "Posting" {
		t.Errorf("hit lost metadata: %+v", res.Results[0])
	}

	src, err := m.ReadSource(ctx, "ZFI_REPORT", "PROG")
	if err != nil {
		t.Fatalf("ReadSource: %v", err)
	}
	if src.Source != "REPORT zfi_report.\n" {
		t.Errorf("source = %q", src.Source)
	}

	_, err = m.ReadSource(ctx, "ZNOPE", "PROG")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMock_WriteOverlay(t *testing.T) {
	ctx := context.Background()
	m := NewMock(writeFixture(t))

	res, err := m.WriteSource(ctx, WriteRequest{ObjectName: "ZCL_POSTING", ObjectType: "CLAS", Source: "a\nb\n"})
	if err != nil {
		t.Fatalf("WriteSource: %v", err)
	}
	if res.Status != StatusSaved || res.Lines != 2 {
		t.Errorf("write result = %+v", res)
	}

	src, err := m.ReadSource(ctx, "ZCL_POSTING", "CLAS")
	if err != nil {
		t.Fatalf("ReadSource: %v", err)
	}
	if src.Source != "a\nb\n" {
		t.Errorf("overlay not visible, got %q", src.Source)
	}

	fixture, _ := m.Fixture()
	if fixture.Sources["ZCL_POSTING"].Source != "SELECT * FROM bseg.\n" {
		t.Error("write must not modify the cached fixture")
	}
}

func TestNewMockFromScan(t *testing.T) {
	scan := &models.ScanResult{Objects: []models.ObjectRef{{Name: "ZX", Type: "PROG"}}}
	m := NewMockFromScan(scan)
	fixture, err := m.Fixture()
	if err != nil {
		t.Fatalf("Fixture: %v", err)
	}
	if fixture.Sources == nil || fixture.Packages == nil {
		t.Error("nil collections should be normalized")
	}
}
