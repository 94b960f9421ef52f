package tui

import (
	"fmt"
	"strings"

	"github.com/ppiankov/s4spectre/internal/models"
)

// headerHeight is the number of terminal lines the header occupies.
const headerHeight = 5

// renderHeader produces the header string from the analysis summary.
func renderHeader(analysis *models.Analysis, trend *models.Trend, sparkline []int, width int) string {
	var b strings.Builder
	summary := analysis.Summary

	// Line 1: title and readiness
	scoreText := gradeStyle(summary.ReadinessGrade).Render(
		fmt.Sprintf("%d/100 (%s)", summary.ReadinessScore, summary.ReadinessGrade),
	)
	b.WriteString(fmt.Sprintf("s4spectre  Readiness: %s", scoreText))

	if trend != nil {
		b.WriteString(fmt.Sprintf("  %s %+d", trendIndicator(trend.Direction), trend.ScoreDelta))
	}
	b.WriteString("\n")

	// Line 2: objects, findings and effort
	b.WriteString(fmt.Sprintf("Objects: %d  Findings: %d  Effort: %s",
		summary.TotalObjects, summary.TotalFindings, summary.EffortEstimate.Level))
	if summary.EffortEstimate.Range != "" {
		b.WriteString(fmt.Sprintf(" (%s)", summary.EffortEstimate.Range))
	}
	b.WriteString("\n")

	// Line 3: severity breakdown
	sevParts := make([]string, 0, len(models.Severities))
	for _, sev := range models.Severities {
		if count := analysis.SeverityCounts.Get(sev); count > 0 {
			label := fmt.Sprintf("%s:%d", strings.ToUpper(string(sev)[:1]), count)
			sevParts = append(sevParts, severityStyle(sev).Render(label))
		}
	}
	if len(sevParts) > 0 {
		b.WriteString(strings.Join(sevParts, "  "))
	}
	b.WriteString("\n")

	// Line 4: score sparkline
	if len(sparkline) > 0 {
		b.WriteString("Score: ")
		b.WriteString(renderSparkline(sparkline))
	}

	return styleHeader.Width(width).Render(b.String())
}

// trendIndicator points up when readiness improved.
func trendIndicator(direction string) string {
	switch direction {
	case models.TrendImproving:
		return "↑"
	case models.TrendDegrading:
		return "↓"
	default:
		return "→"
	}
}

// renderSparkline converts an int slice to a unicode sparkline string.
func renderSparkline(values []int) string {
	if len(values) == 0 {
		return ""
	}

	bars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	var b strings.Builder
	for _, v := range values {
		if hi == lo {
			b.WriteRune(bars[len(bars)/2])
		} else {
			normalized := float64(v-lo) / float64(hi-lo)
			b.WriteRune(bars[int(normalized*float64(len(bars)-1))])
		}
	}

	b.WriteString(fmt.Sprintf(" [%d→%d]", values[0], values[len(values)-1]))
	return b.String()
}
