package models

import "sort"

// Match is one hit of a rule pattern. Line is 1-based; Line 0 marks a hit on the object name.
type Match struct {
	Line    int    `json:"line"`
	Content string `json:"content"`
}

// IsNameMatch reports whether the match came from an object-name rule
func (m Match) IsNameMatch() bool {
	return m.Line == 0
}

// Finding is a single rule violation tied to an object
type Finding struct {
	Object      ObjectRef `json:"object"`
	ObjectType  string    `json:"objectType,omitempty"`
	RuleID      string    `json:"ruleId"`
	Severity    Severity  `json:"severity"`
	Category    string    `json:"category"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Remediation string    `json:"remediation"`
	Reference   string    `json:"reference,omitempty"`
	Matches     []Match   `json:"matches"`
	MatchCount  int       `json:"matchCount"`
}

// SortFindings orders findings by severity (critical first), then by object name.
// The sort is stable so rule order survives within equal keys.
func SortFindings(findings []Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		ri, rj := findings[i].Severity.Rank(), findings[j].Severity.Rank()
		if ri != rj {
			return ri < rj
		}
		return findings[i].Object.Name < findings[j].Object.Name
	})
}

// GroupFindingsByObject groups findings by object name. The returned name slice
// lists objects in order of their first finding; each group keeps finding order.
func GroupFindingsByObject(findings []Finding) ([]string, map[string][]Finding) {
	var order []string
	groups := make(map[string][]Finding)
	for _, f := range findings {
		name := f.Object.Name
		if _, seen := groups[name]; !seen {
			order = append(order, name)
		}
		groups[name] = append(groups[name], f)
	}
	return order, groups
}
