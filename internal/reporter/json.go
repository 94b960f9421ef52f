package reporter

import (
	"encoding/json"
	"io"
	"time"

	"github.com/ppiankov/s4spectre/internal/models"
)

// JSONReporter generates machine-readable JSON reports
type JSONReporter struct {
	writer io.Writer
	pretty bool
}

// NewJSONReporter creates a new JSON reporter
func NewJSONReporter(writer io.Writer, pretty bool) *JSONReporter {
	return &JSONReporter{
		writer: writer,
		pretty: pretty,
	}
}

// GenerateAssessment writes the full assessment
func (r *JSONReporter) GenerateAssessment(report *models.AssessmentReport) error {
	return r.write(report)
}

// GenerateSummaryOnly writes a compact summary without findings or risk matrix
func (r *JSONReporter) GenerateSummaryOnly(report *models.AssessmentReport) error {
	summary := struct {
		Timestamp      string                   `json:"timestamp"`
		Mode           string                   `json:"mode"`
		Summary        models.ReadinessSummary  `json:"summary"`
		SeverityCounts models.SeverityCounts    `json:"severityCounts"`
		CategoryCounts map[string]int           `json:"categoryCounts"`
		Adjustments    []models.ScoreAdjustment `json:"adjustments,omitempty"`
		Roadmap        []models.RoadmapPhase    `json:"roadmap"`
		Trend          *models.Trend            `json:"trend,omitempty"`
	}{
		Timestamp:      report.Timestamp.Format(time.RFC3339),
		Mode:           report.Mode,
		Summary:        report.Analysis.Summary,
		SeverityCounts: report.Analysis.SeverityCounts,
		CategoryCounts: report.Analysis.CategoryCounts,
		Adjustments:    report.Analysis.Adjustments,
		Roadmap:        report.Roadmap,
		Trend:          report.Trend,
	}
	return r.write(summary)
}

// GenerateRemediation writes a remediation result. The embedded scan
// sources are dropped unless includeScan is set.
func (r *JSONReporter) GenerateRemediation(result *models.RemediationResult, includeScan bool) error {
	if includeScan {
		return r.write(result)
	}
	trimmed := *result
	trimmed.ScanResult = nil
	return r.write(trimmed)
}

// GenerateTrendSummary writes the history view
func (r *JSONReporter) GenerateTrendSummary(summary *models.TrendSummary) error {
	return r.write(summary)
}

// Generate writes any value as JSON
func (r *JSONReporter) Generate(v interface{}) error {
	return r.write(v)
}

func (r *JSONReporter) write(v interface{}) error {
	var data []byte
	var err error

	if r.pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	if _, err = r.writer.Write(data); err != nil {
		return err
	}

	// Add trailing newline for terminal output
	_, err = r.writer.Write([]byte("\n"))
	return err
}
