package analyzer

import (
	"fmt"
	"sort"

	"github.com/ppiankov/s4spectre/internal/models"
)

// findingGroup collects the findings of one (category, severity) pair
type findingGroup struct {
	category string
	severity models.Severity
	count    int
	objects  map[string]bool
	rules    map[string]bool
}

// phaseNames names the roadmap phase of each severity
var phaseNames = map[models.Severity]string{
	models.SeverityCritical: "Resolve blockers",
	models.SeverityHigh:     "Adapt to the simplified data model",
	models.SeverityMedium:   "Adjust functional behavior",
	models.SeverityLow:      "Modernize code",
}

// BuildRoadmap groups the findings of an analysis into phases, one per severity
// from critical to low. Empty phases are omitted.
func BuildRoadmap(analysis *models.Analysis) []models.RoadmapPhase {
	if analysis == nil {
		return []models.RoadmapPhase{}
	}

	groups := make(map[string]*findingGroup)
	for _, f := range analysis.Findings {
		key := fmt.Sprintf("%s:%s", f.Category, f.Severity)
		g, ok := groups[key]
		if !ok {
			g = &findingGroup{
				category: f.Category,
				severity: f.Severity,
				objects:  make(map[string]bool),
				rules:    make(map[string]bool),
			}
			groups[key] = g
		}
		g.count++
		g.objects[f.Object.Name] = true
		g.rules[f.RuleID] = true
	}

	bySeverity := make(map[models.Severity][]models.RoadmapItem)
	for _, g := range groups {
		bySeverity[g.severity] = append(bySeverity[g.severity], roadmapItem(g))
	}

	phases := []models.RoadmapPhase{}
	for _, sev := range models.Severities {
		items := bySeverity[sev]
		if len(items) == 0 {
			continue
		}
		sort.Slice(items, func(i, j int) bool {
			if items[i].Findings != items[j].Findings {
				return items[i].Findings > items[j].Findings
			}
			return items[i].Category < items[j].Category
		})

		phase := models.RoadmapPhase{
			Phase:    len(phases) + 1,
			Name:     phaseNames[sev],
			Severity: sev,
			Items:    items,
		}
		for _, item := range items {
			phase.Days += item.Days
		}
		phases = append(phases, phase)
	}
	return phases
}

func roadmapItem(g *findingGroup) models.RoadmapItem {
	ruleIDs := make([]string, 0, len(g.rules))
	for id := range g.rules {
		ruleIDs = append(ruleIDs, id)
	}
	sort.Strings(ruleIDs)

	return models.RoadmapItem{
		Category: g.category,
		Severity: g.severity,
		Action:   generateAction(g),
		Impact:   generateImpact(g.severity),
		Findings: g.count,
		Objects:  len(g.objects),
		Rules:    ruleIDs,
		Days:     models.SeverityEffortDays(g.severity) * float64(g.count),
	}
}

// generateAction creates actionable text for a group
func generateAction(g *findingGroup) string {
	switch g.severity {
	case models.SeverityCritical:
		return fmt.Sprintf("Rewrite %d %s usage(s) in %d object(s) before conversion", g.count, g.category, len(g.objects))
	case models.SeverityHigh:
		return fmt.Sprintf("Adapt %d %s usage(s) in %d object(s) to the S/4HANA data model", g.count, g.category, len(g.objects))
	case models.SeverityMedium:
		return fmt.Sprintf("Review %d %s finding(s) in %d object(s)", g.count, g.category, len(g.objects))
	default:
		return fmt.Sprintf("Modernize %d %s construct(s) in %d object(s)", g.count, g.category, len(g.objects))
	}
}

// generateImpact describes what happens if the group is left alone
func generateImpact(severity models.Severity) string {
	switch severity {
	case models.SeverityCritical:
		return "Code will not compile or will dump after conversion"
	case models.SeverityHigh:
		return "Code runs on compatibility views or deprecated APIs with wrong or partial results"
	case models.SeverityMedium:
		return "Behavior or performance may change after conversion"
	default:
		return "Obsolete syntax that raises maintenance cost"
	}
}
