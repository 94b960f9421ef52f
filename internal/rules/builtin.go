package rules

import "github.com/ppiankov/s4spectre/internal/models"

const (
	critical = models.SeverityCritical
	high     = models.SeverityHigh
	medium   = models.SeverityMedium
	low      = models.SeverityLow
)

// entry is one row of a builtin rule table
type entry struct {
	id       string
	severity models.Severity
	pattern  string
	title    string
	fix      string
	ref      string
}

// table is the builtin rule set of one category module
type table struct {
	category string
	impact   string
	source   []entry
	names    []entry
}

func (t table) rules() []Rule {
	out := make([]Rule, 0, len(t.source)+len(t.names))
	build := func(e entry, kind PatternKind) Rule {
		ref := e.ref
		if ref != "" {
			ref = "SAP Note " + ref
		}
		return Rule{
			ID:          e.id,
			Category:    t.category,
			Severity:    e.severity,
			Title:       e.title,
			Description: e.title + ". " + t.impact,
			Remediation: e.fix,
			Pattern:     e.pattern,
			Kind:        kind,
			Reference:   ref,
		}
	}
	for _, e := range t.source {
		out = append(out, build(e, KindSource))
	}
	for _, e := range t.names {
		out = append(out, build(e, KindObjectName))
	}
	return out
}

// builtinTables is loaded into Default() in this order
var builtinTables = []table{
	financeRules,
	universalJournalRules,
	controllingRules,
	materialsRules,
	salesRules,
	businessPartnerRules,
	hrRules,
	productionRules,
	maintenanceRules,
	abapRules,
	enhancementRules,
	dataModelRules,
	removedRules,
	warehouseRules,
	plmRules,
	configurationRules,
	industryRules,
}
