package models

import "time"

// Trend directions
const (
	TrendImproving = "improving"
	TrendDegrading = "degrading"
	TrendStable    = "stable"
)

// AssessmentReport is one stored assessment run
type AssessmentReport struct {
	Timestamp time.Time      `json:"timestamp"`
	Mode      string         `json:"mode"`
	Analysis  *Analysis      `json:"analysis"`
	Roadmap   []RoadmapPhase `json:"roadmap"`
	Trend     *Trend         `json:"trend,omitempty"`
}

// RoadmapPhase groups remediation work of one severity level
type RoadmapPhase struct {
	Phase    int           `json:"phase"`
	Name     string        `json:"name"`
	Severity Severity      `json:"severity"`
	Items    []RoadmapItem `json:"items"`
	Days     float64       `json:"days"`
}

// RoadmapItem is the work for one (category, severity) group of findings
type RoadmapItem struct {
	Category string   `json:"category"`
	Severity Severity `json:"severity"`
	Action   string   `json:"action"`
	Impact   string   `json:"impact"`
	Findings int      `json:"findings"`
	Objects  int      `json:"objects"`
	Rules    []string `json:"rules"`
	Days     float64  `json:"days"`
}

// Trend represents change between the current and a previous assessment
type Trend struct {
	Direction        string    `json:"direction"`
	ScoreDelta       int       `json:"scoreDelta"` // positive = better
	PreviousScore    int       `json:"previousScore"`
	CurrentScore     int       `json:"currentScore"`
	PreviousFindings int       `json:"previousFindings"`
	CurrentFindings  int       `json:"currentFindings"`
	NewFindings      int       `json:"newFindings"`
	ResolvedFindings int       `json:"resolvedFindings"`
	ComparedWith     time.Time `json:"comparedWith"`
}

// TrendSummary is the history view over the last N runs
type TrendSummary struct {
	TimeRange        string                    `json:"timeRange"`
	RunsAnalyzed     int                       `json:"runsAnalyzed"`
	ScoreSparkline   []int                     `json:"scoreSparkline"`
	FindingSparkline []int                     `json:"findingSparkline"`
	ByCategory       map[string]*CategoryTrend `json:"byCategory"`
}

// CategoryTrend is the finding trend of one rule category
type CategoryTrend struct {
	Name             string `json:"name"`
	CurrentFindings  int    `json:"currentFindings"`
	PreviousFindings int    `json:"previousFindings"`
	Change           int    `json:"change"` // positive = more findings
}
