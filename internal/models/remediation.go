package models

// ChangeKind discriminates change records
type ChangeKind string

// Change record kinds
const (
	ChangeReplace ChangeKind = "replace"
	ChangeComment ChangeKind = "comment"
	ChangeFlag    ChangeKind = "flag"
)

// ChangeRecord narrates one edit (or one flagged construct) produced by a transform.
// replace uses From/To, comment and flag use Note/Target.
type ChangeRecord struct {
	Kind   ChangeKind `json:"type"`
	From   string     `json:"from,omitempty"`
	To     string     `json:"to,omitempty"`
	Note   string     `json:"note,omitempty"`
	Target string     `json:"target,omitempty"`
}

// Replace builds a replace record
func Replace(from, to string) ChangeRecord {
	return ChangeRecord{Kind: ChangeReplace, From: from, To: to}
}

// Comment builds a comment record
func Comment(note, target string) ChangeRecord {
	return ChangeRecord{Kind: ChangeComment, Note: note, Target: target}
}

// Flag builds a flag record
func Flag(target, note string) ChangeRecord {
	return ChangeRecord{Kind: ChangeFlag, Target: target, Note: note}
}

// AltersSource reports whether the record describes an edit of the text
func (c ChangeRecord) AltersSource() bool {
	return c.Kind == ChangeReplace || c.Kind == ChangeComment
}

// RemediationStatus is the outcome of one finding in the remediation pass
type RemediationStatus string

// Remediation statuses
const (
	StatusFixed        RemediationStatus = "fixed"
	StatusManualReview RemediationStatus = "manual-review"
	StatusSkipped      RemediationStatus = "skipped"
	StatusError        RemediationStatus = "error"
)

// Reasons attached to non-fixed remediations
const (
	ReasonNoSource     = "no source"
	ReasonNoTransform  = "no automated transform"
	ReasonNoChanges    = "transform matched but no changes"
	ReasonWriteFailure = "write failed"
)

// Remediation is the outcome of applying (or not) a transform to one finding
type Remediation struct {
	Object      string            `json:"object"`
	ObjectType  string            `json:"objectType,omitempty"`
	RuleID      string            `json:"ruleId"`
	Title       string            `json:"title"`
	Severity    Severity          `json:"severity"`
	Category    string            `json:"category,omitempty"`
	Status      RemediationStatus `json:"status"`
	Reason      string            `json:"reason,omitempty"`
	Changes     []ChangeRecord    `json:"changes,omitempty"`
	ChangeCount int               `json:"changeCount"`
	Diff        string            `json:"diff,omitempty"`
	Matches     []Match           `json:"matches,omitempty"`
	Remediation string            `json:"remediation,omitempty"`
}

// RemediationStats aggregates remediation outcomes.
// AutoFixed + ManualReview + NoTransform + Errors == TotalFindings.
type RemediationStats struct {
	TotalFindings int `json:"totalFindings"`
	AutoFixed     int `json:"autoFixed"`
	ManualReview  int `json:"manualReview"`
	NoTransform   int `json:"noTransform"`
	Errors        int `json:"errors"`
}

// WriteError reports a failed gateway write for one object
type WriteError struct {
	Object  string `json:"object"`
	Message string `json:"message"`
}

// RemediationResult is the output of one remediation pass
type RemediationResult struct {
	Remediations []Remediation    `json:"remediations"`
	Stats        RemediationStats `json:"stats"`
	ScanResult   *ScanResult      `json:"scanResult"`
	Analysis     *Analysis        `json:"analysis"`
	WriteErrors  []WriteError     `json:"writeErrors,omitempty"`
	Written      []string         `json:"written,omitempty"`
	DryRun       bool             `json:"dryRun"`
}
