package tui

import (
	"fmt"
	"strings"

	"github.com/ppiankov/s4spectre/internal/models"
)

// detailHeight is the fixed number of lines for the detail panel.
const detailHeight = 5

// renderDetail produces the detail view for a selected finding.
func renderDetail(f *models.Finding, width int) string {
	if f == nil {
		return styleDetailPanel.Width(width).Render("No finding selected")
	}

	var b strings.Builder

	sev := severityStyle(f.Severity).Render(strings.ToUpper(string(f.Severity)))
	b.WriteString(fmt.Sprintf("%s  %s  %s\n", sev, f.RuleID, f.Title))

	object := fmt.Sprintf("Object: %s", f.Object.Name)
	if f.Object.Type != "" {
		object += fmt.Sprintf(" (%s)", f.Object.Type)
	}
	if f.Object.Package != "" {
		object += fmt.Sprintf("  Package: %s", f.Object.Package)
	}
	b.WriteString(object + "\n")

	if len(f.Matches) > 0 {
		b.WriteString(matchLine(f.Matches[0], f.MatchCount, width) + "\n")
	}

	if f.Remediation != "" {
		fix := "Fix: " + f.Remediation
		if f.Reference != "" {
			fix += styleMuted.Render(fmt.Sprintf("  (SAP Note %s)", f.Reference))
		}
		b.WriteString(fix)
	}

	return styleDetailPanel.Width(width).Render(b.String())
}

func matchLine(m models.Match, total, width int) string {
	var line string
	if m.IsNameMatch() {
		line = "Match: object name"
	} else {
		line = fmt.Sprintf("Match: line %d: %s", m.Line, strings.TrimSpace(m.Content))
	}
	if total > 1 {
		line += fmt.Sprintf(" (+%d more)", total-1)
	}
	if width > 4 {
		line = truncate(line, width-4)
	}
	return line
}
