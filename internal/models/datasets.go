package models

// InterfaceInventory lists the integration interfaces of the source system
type InterfaceInventory struct {
	Complexity string          `json:"complexity,omitempty" yaml:"complexity,omitempty"`
	Interfaces []InterfaceInfo `json:"interfaces" yaml:"interfaces"`
}

// InterfaceInfo is one interface (IDoc, RFC, file, web service ...)
type InterfaceInfo struct {
	Name       string `json:"name" yaml:"name"`
	Kind       string `json:"type,omitempty" yaml:"type,omitempty"`
	Direction  string `json:"direction,omitempty" yaml:"direction,omitempty"`
	Partner    string `json:"partner,omitempty" yaml:"partner,omitempty"`
	Deprecated bool   `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
}

// EffectiveComplexity returns the declared complexity or derives one from the interface count
func (inv *InterfaceInventory) EffectiveComplexity() string {
	if inv.Complexity != "" {
		return inv.Complexity
	}
	n := len(inv.Interfaces)
	switch {
	case n > 50:
		return EffortVeryHigh
	case n > 20:
		return EffortHigh
	case n > 5:
		return EffortMedium
	default:
		return EffortLow
	}
}

// InterfaceSummary is attached to an analysis enriched with interface data
type InterfaceSummary struct {
	Total      int            `json:"total"`
	Complexity string         `json:"complexity"`
	ByKind     map[string]int `json:"byType,omitempty"`
	Deprecated int            `json:"deprecated"`
	Penalty    int            `json:"penalty"`
}

// ATCResult holds the findings of an ABAP Test Cockpit run
type ATCResult struct {
	Findings []ATCFinding `json:"findings" yaml:"findings"`
}

// ATCFinding is one ATC check message. Priority 1 is the most severe.
type ATCFinding struct {
	Object   string `json:"object" yaml:"object"`
	Check    string `json:"check,omitempty" yaml:"check,omitempty"`
	Message  string `json:"message,omitempty" yaml:"message,omitempty"`
	Priority int    `json:"priority" yaml:"priority"`
}

// ATCSummary is attached to an analysis enriched with ATC results
type ATCSummary struct {
	Total      int         `json:"total"`
	ByPriority map[int]int `json:"byPriority"`
	Penalty    int         `json:"penalty"`
}

// UsageData holds execution statistics of custom objects
type UsageData struct {
	Entries []UsageEntry `json:"entries" yaml:"entries"`
}

// UsageEntry is the usage of one object
type UsageEntry struct {
	Object     string `json:"object" yaml:"object"`
	Executions int    `json:"executions" yaml:"executions"`
	LastUsed   string `json:"lastUsed,omitempty" yaml:"lastUsed,omitempty"`
}

// UsageSummary is attached to an analysis enriched with usage data
type UsageSummary struct {
	Total        int      `json:"total"`
	Used         int      `json:"used"`
	Unused       int      `json:"unused"`
	UnusedObject []string `json:"unusedObjects,omitempty"`
}
