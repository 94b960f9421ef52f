package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ppiankov/s4spectre/internal/models"
)

const (
	runsDirName   = "assessments"
	runFileSuffix = "-assessment.json"
	timestampFmt  = "2006-01-02T15-04-05"
)

// LocalStorage implements Storage on the local filesystem.
// Each run is one JSON file named after its UTC timestamp.
type LocalStorage struct {
	baseDir string
}

// NewLocal creates a new local storage instance
func NewLocal(baseDir string) *LocalStorage {
	return &LocalStorage{
		baseDir: baseDir,
	}
}

func (s *LocalStorage) runsDir() string {
	return filepath.Join(s.baseDir, runsDirName)
}

func (s *LocalStorage) runPath(timestamp time.Time) string {
	return filepath.Join(s.runsDir(), s.formatTimestamp(timestamp)+runFileSuffix)
}

// SaveRun stores an assessment report to disk. A run with the same
// second-resolution timestamp is overwritten.
func (s *LocalStorage) SaveRun(report *models.AssessmentReport) error {
	if report == nil {
		return fmt.Errorf("nil report")
	}
	if report.Timestamp.IsZero() {
		report.Timestamp = time.Now().UTC()
	}

	if err := s.EnsureDirectoryExists(); err != nil {
		return fmt.Errorf("failed to create runs directory: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	// Write then rename so readers never see a partial file
	path := s.runPath(report.Timestamp)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to store run: %w", err)
	}

	return nil
}

// LoadRun loads the run stored for a specific timestamp
func (s *LocalStorage) LoadRun(timestamp time.Time) (*models.AssessmentReport, error) {
	return s.loadReportFromFile(s.runPath(timestamp))
}

// GetLatestRun retrieves the most recent run
func (s *LocalStorage) GetLatestRun() (*models.AssessmentReport, error) {
	timestamps, err := s.ListRuns()
	if err != nil {
		return nil, err
	}
	if len(timestamps) == 0 {
		return nil, ErrNoRuns
	}
	return s.LoadRun(timestamps[len(timestamps)-1])
}

// GetLastNRuns retrieves the last N runs in chronological order.
// Runs that fail to load are skipped.
func (s *LocalStorage) GetLastNRuns(n int) ([]*models.AssessmentReport, error) {
	timestamps, err := s.ListRuns()
	if err != nil {
		return nil, err
	}
	if len(timestamps) == 0 {
		return nil, ErrNoRuns
	}

	start := len(timestamps) - n
	if start < 0 {
		start = 0
	}

	selected := timestamps[start:]
	reports := make([]*models.AssessmentReport, 0, len(selected))
	for _, timestamp := range selected {
		report, err := s.LoadRun(timestamp)
		if err != nil {
			continue
		}
		reports = append(reports, report)
	}

	return reports, nil
}

// ListRuns returns all available run timestamps sorted chronologically
func (s *LocalStorage) ListRuns() ([]time.Time, error) {
	entries, err := os.ReadDir(s.runsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return []time.Time{}, nil
		}
		return nil, fmt.Errorf("failed to read runs directory: %w", err)
	}

	timestamps := []time.Time{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), runFileSuffix) {
			continue
		}

		// 2006-01-02T15-04-05-assessment.json
		timestamp, err := s.parseTimestamp(strings.TrimSuffix(entry.Name(), runFileSuffix))
		if err != nil {
			continue
		}
		timestamps = append(timestamps, timestamp)
	}

	sort.Slice(timestamps, func(i, j int) bool {
		return timestamps[i].Before(timestamps[j])
	})

	return timestamps, nil
}

func (s *LocalStorage) loadReportFromFile(path string) (*models.AssessmentReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("run not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var report models.AssessmentReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run %s: %w", filepath.Base(path), err)
	}
	if report.Analysis == nil {
		return nil, fmt.Errorf("run %s has no analysis", filepath.Base(path))
	}

	return &report, nil
}

// formatTimestamp converts a time.Time to a filename-safe UTC form
func (s *LocalStorage) formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampFmt)
}

// parseTimestamp converts the filename form back to time.Time
func (s *LocalStorage) parseTimestamp(str string) (time.Time, error) {
	return time.Parse(timestampFmt, str)
}

// GetStoragePath returns the full path to the storage directory
func (s *LocalStorage) GetStoragePath() string {
	return s.baseDir
}

// EnsureDirectoryExists creates the runs directory if it doesn't exist
func (s *LocalStorage) EnsureDirectoryExists() error {
	return os.MkdirAll(s.runsDir(), 0755)
}
