package storage

import (
	"errors"
	"time"

	"github.com/ppiankov/s4spectre/internal/models"
)

// ErrNoRuns is returned when the history holds no assessment runs
var ErrNoRuns = errors.New("no runs found")

// Storage defines the interface for persisting assessment runs
type Storage interface {
	// SaveRun stores a complete assessment report
	SaveRun(report *models.AssessmentReport) error

	// LoadRun loads the run stored for a specific timestamp
	LoadRun(timestamp time.Time) (*models.AssessmentReport, error)

	// GetLatestRun retrieves the most recent run
	GetLatestRun() (*models.AssessmentReport, error)

	// GetLastNRuns retrieves the last N runs, oldest first
	GetLastNRuns(n int) ([]*models.AssessmentReport, error)

	// ListRuns returns all available run timestamps
	ListRuns() ([]time.Time, error)
}
