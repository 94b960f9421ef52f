package tui

import (
	"sort"
	"strings"

	"github.com/ppiankov/s4spectre/internal/models"
)

// filterState holds current active filters.
type filterState struct {
	Category   string
	Severity   models.Severity
	SearchText string
}

// sortField enumerates columns that can be sorted.
type sortField int

const (
	sortBySeverity sortField = iota
	sortByObject
	sortByRule
	sortByCategory
	sortByMatches
)

// sortFieldCount is the total number of sortable columns.
const sortFieldCount = 5

// applyFilters returns findings matching all active filters.
func applyFilters(findings []models.Finding, f filterState) []models.Finding {
	result := make([]models.Finding, 0, len(findings))
	searchLower := strings.ToLower(f.SearchText)

	for _, finding := range findings {
		if f.Category != "" && finding.Category != f.Category {
			continue
		}
		if f.Severity != "" && finding.Severity != f.Severity {
			continue
		}
		if searchLower != "" && !matchesSearch(finding, searchLower) {
			continue
		}
		result = append(result, finding)
	}
	return result
}

func matchesSearch(f models.Finding, searchLower string) bool {
	fields := []string{
		f.Object.Name,
		f.Object.Package,
		f.RuleID,
		f.Category,
		f.Title,
		string(f.Severity),
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), searchLower) {
			return true
		}
	}
	return false
}

// sortFindings sorts findings in place by the given field.
// Ties keep their previous order.
func sortFindings(findings []models.Finding, field sortField) {
	sort.SliceStable(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		switch field {
		case sortBySeverity:
			return a.Severity.Rank() < b.Severity.Rank()
		case sortByObject:
			return a.Object.Name < b.Object.Name
		case sortByRule:
			return a.RuleID < b.RuleID
		case sortByCategory:
			return a.Category < b.Category
		case sortByMatches:
			return a.MatchCount > b.MatchCount
		default:
			return false
		}
	})
}

// uniqueCategories returns deduplicated, sorted categories of findings.
func uniqueCategories(findings []models.Finding) []string {
	seen := make(map[string]bool)
	var categories []string
	for _, f := range findings {
		if !seen[f.Category] {
			seen[f.Category] = true
			categories = append(categories, f.Category)
		}
	}
	sort.Strings(categories)
	return categories
}

// nextSeverity cycles "" -> critical -> high -> medium -> low -> "".
func nextSeverity(current models.Severity) models.Severity {
	if current == "" {
		return models.Severities[0]
	}
	for i, s := range models.Severities {
		if s == current && i+1 < len(models.Severities) {
			return models.Severities[i+1]
		}
	}
	return ""
}

func sortFieldName(f sortField) string {
	switch f {
	case sortBySeverity:
		return "severity"
	case sortByObject:
		return "object"
	case sortByRule:
		return "rule"
	case sortByCategory:
		return "category"
	case sortByMatches:
		return "matches"
	default:
		return "unknown"
	}
}
