package rules

import (
	"strings"

	"github.com/ppiankov/s4spectre/internal/models"
)

// CheckSource evaluates every rule, in catalog order, against source and objectName.
// Source rules run per physical line and yield at most one finding per rule;
// object-name rules run against the whole name and yield a line-0 match.
// The returned findings carry only rule data and matches; the caller fills in the object.
func (c *Catalog) CheckSource(source, objectName string) []models.Finding {
	var lines []string
	if source != "" {
		lines = splitLines(source)
	}

	var findings []models.Finding
	for _, rule := range c.rules {
		var matches []models.Match

		switch rule.Kind {
		case KindObjectName:
			if objectName != "" && rule.re.MatchString(objectName) {
				matches = []models.Match{{Line: 0, Content: objectName}}
			}
		default:
			for i, line := range lines {
				if rule.re.MatchString(line) {
					matches = append(matches, models.Match{
						Line:    i + 1,
						Content: strings.TrimSpace(line),
					})
				}
			}
		}

		if len(matches) == 0 {
			continue
		}

		findings = append(findings, models.Finding{
			Object:      models.ObjectRef{Name: objectName},
			RuleID:      rule.ID,
			Severity:    rule.Severity,
			Category:    rule.Category,
			Title:       rule.Title,
			Description: rule.Description,
			Remediation: rule.Remediation,
			Reference:   rule.Reference,
			Matches:     matches,
			MatchCount:  len(matches),
		})
	}

	return findings
}

// splitLines splits on \n and drops a trailing \r from each line
func splitLines(source string) []string {
	lines := strings.Split(source, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
