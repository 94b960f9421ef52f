package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ppiankov/s4spectre/internal/models"
	"github.com/ppiankov/s4spectre/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOutput string
	exportLastN  int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export assessment findings for tracking and code scanning",
	Long: `Export findings from stored assessment runs. Findings of older runs that
are gone from the latest run are marked resolved.

Supported formats:
  csv    Tabular format for spreadsheets and project tracking
  json   Structured JSON for programmatic consumption
  sarif  SARIF 2.1.0 of the latest run for code scanning tools

Example:
  s4spectre export --format csv -o findings.csv
  s4spectre export --format sarif -o results.sarif
  s4spectre export --format json --last 30 -o history.json`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv",
		"output format: csv, json, or sarif")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "",
		"write output to file (default: stdout)")
	exportCmd.Flags().IntVarP(&exportLastN, "last", "n", 1,
		"number of recent runs to include")
}

// Finding status values of an export record
const (
	statusOpen     = "open"
	statusResolved = "resolved"
)

// ComplianceRecord is a single row in the export.
type ComplianceRecord struct {
	RunTimestamp   string `json:"run_timestamp"`
	Object         string `json:"object"`
	ObjectType     string `json:"object_type"`
	Package        string `json:"package"`
	RuleID         string `json:"rule_id"`
	Category       string `json:"category"`
	Severity       string `json:"severity"`
	Title          string `json:"title"`
	Matches        int    `json:"matches"`
	Reference      string `json:"reference,omitempty"`
	Status         string `json:"status"` // "open" or "resolved"
	ReadinessScore int    `json:"readiness_score"`
	Grade          string `json:"grade"`
}

// ComplianceExport is the full export payload.
type ComplianceExport struct {
	ExportedAt   string             `json:"exported_at"`
	RunCount     int                `json:"run_count"`
	FindingCount int                `json:"finding_count"`
	OpenCount    int                `json:"open_count"`
	Records      []ComplianceRecord `json:"records"`
}

func runExport(cmd *cobra.Command, args []string) error {
	switch exportFormat {
	case "csv", "json", "sarif":
	default:
		return &ValidationError{Message: fmt.Sprintf("unsupported format: %s (use csv, json, or sarif)", exportFormat)}
	}

	storagePath, err := getStoragePath()
	if err != nil {
		logError("Failed to get storage path: %v", err)
		return err
	}

	store := storage.NewLocal(storagePath)

	reports, err := store.GetLastNRuns(exportLastN)
	if err != nil || len(reports) == 0 {
		fmt.Println("No stored runs found. Run 's4spectre assess --store' first.")
		return nil
	}

	logVerbose("Exporting %d runs", len(reports))

	var writer io.Writer = os.Stdout
	if exportOutput != "" {
		file, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = file.Close() }()
		writer = file
	}

	switch exportFormat {
	case "csv":
		return writeCSV(writer, buildComplianceExport(reports))
	case "json":
		return writeExportJSON(writer, buildComplianceExport(reports))
	default:
		return writeSARIF(writer, reports[len(reports)-1])
	}
}

// buildComplianceExport flattens runs ordered oldest first into records.
// Findings of the latest run are open; older findings missing from it are resolved.
func buildComplianceExport(reports []*models.AssessmentReport) *ComplianceExport {
	latest := reports[len(reports)-1]
	open := make(map[string]bool)
	for _, f := range reportFindings(latest) {
		open[findingKey(f)] = true
	}

	records := []ComplianceRecord{}
	openCount := 0
	for _, report := range reports {
		if report.Analysis == nil {
			continue
		}
		ts := report.Timestamp.Format(time.RFC3339)
		summary := report.Analysis.Summary

		for _, f := range report.Analysis.Findings {
			status := statusResolved
			if open[findingKey(f)] {
				status = statusOpen
			}
			if report == latest {
				openCount++
			}
			records = append(records, ComplianceRecord{
				RunTimestamp:   ts,
				Object:         f.Object.Name,
				ObjectType:     f.Object.Type,
				Package:        f.Object.Package,
				RuleID:         f.RuleID,
				Category:       f.Category,
				Severity:       string(f.Severity),
				Title:          f.Title,
				Matches:        f.MatchCount,
				Reference:      f.Reference,
				Status:         status,
				ReadinessScore: summary.ReadinessScore,
				Grade:          summary.ReadinessGrade,
			})
		}
	}

	// Sort by severity (critical first), then object, then rule, newest run first.
	sort.SliceStable(records, func(i, j int) bool {
		si := models.Severity(records[i].Severity).Rank()
		sj := models.Severity(records[j].Severity).Rank()
		if si != sj {
			return si < sj
		}
		if records[i].Object != records[j].Object {
			return records[i].Object < records[j].Object
		}
		if records[i].RuleID != records[j].RuleID {
			return records[i].RuleID < records[j].RuleID
		}
		return records[i].RunTimestamp > records[j].RunTimestamp
	})

	return &ComplianceExport{
		ExportedAt:   time.Now().UTC().Format(time.RFC3339),
		RunCount:     len(reports),
		FindingCount: len(records),
		OpenCount:    openCount,
		Records:      records,
	}
}

var csvHeader = []string{
	"run_timestamp", "object", "object_type", "package", "rule_id", "category",
	"severity", "title", "matches", "reference", "status", "readiness_score", "grade",
}

func writeCSV(w io.Writer, export *ComplianceExport) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return err
	}

	for _, r := range export.Records {
		row := []string{
			r.RunTimestamp, r.Object, r.ObjectType, r.Package, r.RuleID, r.Category,
			r.Severity, r.Title, strconv.Itoa(r.Matches), r.Reference, r.Status,
			strconv.Itoa(r.ReadinessScore), r.Grade,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func writeExportJSON(w io.Writer, export *ComplianceExport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(export)
}

// SARIF 2.1.0 output for code scanning integration.
// Minimal structures, only what's needed for valid SARIF.

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string             `json:"id"`
	ShortDescription sarifMessage       `json:"shortDescription"`
	FullDescription  sarifMessage       `json:"fullDescription"`
	Help             sarifMessage       `json:"help"`
	HelpURI          string             `json:"helpUri,omitempty"`
	DefaultConfig    sarifDefaultConfig `json:"defaultConfiguration"`
}

type sarifDefaultConfig struct {
	Level string `json:"level"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysical `json:"physicalLocation"`
}

type sarifPhysical struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
	Region           *sarifRegion  `json:"region,omitempty"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine int `json:"startLine"`
}

func writeSARIF(w io.Writer, report *models.AssessmentReport) error {
	rulesMap := map[string]sarifRule{}
	results := []sarifResult{}

	for _, f := range reportFindings(report) {
		if _, exists := rulesMap[f.RuleID]; !exists {
			rule := sarifRule{
				ID:               f.RuleID,
				ShortDescription: sarifMessage{Text: f.Title},
				FullDescription:  sarifMessage{Text: f.Description},
				Help:             sarifMessage{Text: f.Remediation},
				DefaultConfig:    sarifDefaultConfig{Level: sarifLevel(f.Severity)},
			}
			if f.Reference != "" {
				rule.HelpURI = "https://me.sap.com/notes/" + f.Reference
			}
			rulesMap[f.RuleID] = rule
		}

		location := sarifLocation{
			PhysicalLocation: sarifPhysical{
				ArtifactLocation: sarifArtifact{URI: f.Object.Name},
			},
		}
		if len(f.Matches) > 0 && !f.Matches[0].IsNameMatch() {
			location.PhysicalLocation.Region = &sarifRegion{StartLine: f.Matches[0].Line}
		}

		results = append(results, sarifResult{
			RuleID:    f.RuleID,
			Level:     sarifLevel(f.Severity),
			Message:   sarifMessage{Text: formatFindingMessage(f)},
			Locations: []sarifLocation{location},
		})
	}

	rules := make([]sarifRule, 0, len(rulesMap))
	for _, r := range rulesMap {
		rules = append(rules, r)
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].ID < rules[j].ID })

	log := sarifLog{
		Schema:  "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json",
		Version: "2.1.0",
		Runs: []sarifRun{{
			Tool: sarifTool{
				Driver: sarifDriver{
					Name:    "s4spectre",
					Version: buildVersion,
					Rules:   rules,
				},
			},
			Results: results,
		}},
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(log)
}

func sarifLevel(severity models.Severity) string {
	switch severity {
	case models.SeverityCritical, models.SeverityHigh:
		return "error"
	case models.SeverityMedium:
		return "warning"
	default:
		return "note"
	}
}

func formatFindingMessage(f models.Finding) string {
	parts := []string{f.Object.Name + ": " + f.Title}
	if f.MatchCount > 1 {
		parts = append(parts, fmt.Sprintf("%d matches", f.MatchCount))
	}
	if f.Remediation != "" {
		parts = append(parts, f.Remediation)
	}
	return strings.Join(parts, ". ")
}
