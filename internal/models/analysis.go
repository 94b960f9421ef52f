package models

// EffortEstimate is the rough remediation effort for a set of findings
type EffortEstimate struct {
	Level string  `json:"level"` // Low, Medium, High, Very High
	Range string  `json:"range"` // e.g. "1-4 weeks"
	Days  float64 `json:"days"`
}

// ReadinessSummary is the headline of an analysis
type ReadinessSummary struct {
	TotalObjects   int            `json:"totalObjects"`
	ObjectsScanned int            `json:"objectsScanned"`
	TotalFindings  int            `json:"totalFindings"`
	ReadinessScore int            `json:"readinessScore"`
	ReadinessGrade string         `json:"readinessGrade"`
	EffortEstimate EffortEstimate `json:"effortEstimate"`
}

// SeverityCounts holds per-severity finding counts
type SeverityCounts struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
}

// Add increments the counter for s. Unknown severities are ignored.
func (c *SeverityCounts) Add(s Severity) {
	switch s {
	case SeverityCritical:
		c.Critical++
	case SeverityHigh:
		c.High++
	case SeverityMedium:
		c.Medium++
	case SeverityLow:
		c.Low++
	}
}

// Get returns the counter for s
func (c SeverityCounts) Get(s Severity) int {
	switch s {
	case SeverityCritical:
		return c.Critical
	case SeverityHigh:
		return c.High
	case SeverityMedium:
		return c.Medium
	case SeverityLow:
		return c.Low
	}
	return 0
}

// Total sums all four counters
func (c SeverityCounts) Total() int {
	return c.Critical + c.High + c.Medium + c.Low
}

// AsMap returns the counters keyed by severity
func (c SeverityCounts) AsMap() map[Severity]int {
	return map[Severity]int{
		SeverityCritical: c.Critical,
		SeverityHigh:     c.High,
		SeverityMedium:   c.Medium,
		SeverityLow:      c.Low,
	}
}

// ObjectSummary is the per-object line of an analysis
type ObjectSummary struct {
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Package      string   `json:"package,omitempty"`
	Lines        int      `json:"lines"`
	FindingCount int      `json:"findingCount"`
	MaxSeverity  Severity `json:"maxSeverity"`
}

// RiskEntry is one object in a risk matrix bucket
type RiskEntry struct {
	Object       ObjectRef `json:"object"`
	FindingCount int       `json:"findingCount"`
}

// RiskMatrix buckets objects by their worst-severity finding
type RiskMatrix struct {
	Critical []RiskEntry `json:"critical"`
	High     []RiskEntry `json:"high"`
	Medium   []RiskEntry `json:"medium"`
	Low      []RiskEntry `json:"low"`
	Clean    []RiskEntry `json:"clean"`
}

// NewRiskMatrix returns a matrix with all buckets empty (not nil)
func NewRiskMatrix() RiskMatrix {
	return RiskMatrix{
		Critical: []RiskEntry{},
		High:     []RiskEntry{},
		Medium:   []RiskEntry{},
		Low:      []RiskEntry{},
		Clean:    []RiskEntry{},
	}
}

// Place appends entry to the bucket matching maxSeverity
func (m *RiskMatrix) Place(maxSeverity Severity, entry RiskEntry) {
	switch maxSeverity {
	case SeverityCritical:
		m.Critical = append(m.Critical, entry)
	case SeverityHigh:
		m.High = append(m.High, entry)
	case SeverityMedium:
		m.Medium = append(m.Medium, entry)
	case SeverityLow:
		m.Low = append(m.Low, entry)
	default:
		m.Clean = append(m.Clean, entry)
	}
}

// Bucket returns the entries of the named bucket ("critical" ... "clean")
func (m RiskMatrix) Bucket(name string) []RiskEntry {
	switch name {
	case string(SeverityCritical):
		return m.Critical
	case string(SeverityHigh):
		return m.High
	case string(SeverityMedium):
		return m.Medium
	case string(SeverityLow):
		return m.Low
	case "clean":
		return m.Clean
	}
	return nil
}

// BucketNames lists risk matrix buckets from worst to clean
var BucketNames = []string{"critical", "high", "medium", "low", "clean"}

// Analysis is the result of checking a scan against the rule catalog
type Analysis struct {
	Summary        ReadinessSummary `json:"summary"`
	SeverityCounts SeverityCounts   `json:"severityCounts"`
	CategoryCounts map[string]int   `json:"categoryCounts"`
	Findings       []Finding        `json:"findings"`
	ObjectSummary  []ObjectSummary  `json:"objectSummary"`
	RiskMatrix     RiskMatrix       `json:"riskMatrix"`
	RulesChecked   int              `json:"rulesChecked"`

	// Attached by enrichment; nil when the dataset was not supplied
	InterfaceSummary *InterfaceSummary `json:"interfaceSummary,omitempty"`
	ATCSummary       *ATCSummary       `json:"atcSummary,omitempty"`
	UsageSummary     *UsageSummary     `json:"usageSummary,omitempty"`
	Adjustments      []ScoreAdjustment `json:"adjustments,omitempty"`
}

// ScoreAdjustment records a score change applied by enrichment
type ScoreAdjustment struct {
	Source  string `json:"source"` // interfaces, atc
	Penalty int    `json:"penalty"`
	Reason  string `json:"reason"`
}
