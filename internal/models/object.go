package models

import "strings"

// Object type tags used by the scanner and the gateways
const (
	TypeClass         = "CLAS"
	TypeInterface     = "INTF"
	TypeProgram       = "PROG"
	TypeFunctionGroup = "FUGR"
	TypeInclude       = "INCL"
	TypeTable         = "TABL"
	TypePackage       = "DEVC"
)

// NormalizeObjectType maps long-form and ADT-style type tags (e.g. "class",
// "CLAS/OC", "PROG/I") onto the short tags above. Unknown tags are upper-cased.
func NormalizeObjectType(t string) string {
	u := strings.ToUpper(strings.TrimSpace(t))
	switch u {
	case "CLASS", "CLAS", "CLAS/OC":
		return TypeClass
	case "INTERFACE", "INTF", "INTF/OI":
		return TypeInterface
	case "PROGRAM", "PROG", "PROG/P", "REPORT":
		return TypeProgram
	case "FUNCTION GROUP", "FUNCTION_GROUP", "FUGR", "FUGR/F":
		return TypeFunctionGroup
	case "INCLUDE", "INCL", "PROG/I":
		return TypeInclude
	case "TABLE", "TABL", "TABL/DT":
		return TypeTable
	case "PACKAGE", "DEVC", "DEVC/K":
		return TypePackage
	}
	if i := strings.Index(u, "/"); i > 0 {
		return u[:i]
	}
	return u
}

// IsCodeBearing reports whether objects of this type carry readable source
func IsCodeBearing(t string) bool {
	switch NormalizeObjectType(t) {
	case TypeClass, TypeInterface, TypeProgram, TypeFunctionGroup, TypeInclude:
		return true
	}
	return false
}

// PackageInfo is a development package of the source system
type PackageInfo struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ObjectRef identifies one custom development object
type ObjectRef struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Package     string `json:"package,omitempty"`
}

// SourceBundle is the source text of one object as read by the scanner
type SourceBundle struct {
	Type   string `json:"type"`
	Source string `json:"source"`
	Lines  int    `json:"lines"`
}

// NewSourceBundle builds a bundle and precomputes its line count
func NewSourceBundle(objectType, source string) SourceBundle {
	return SourceBundle{
		Type:   objectType,
		Source: source,
		Lines:  CountLines(source),
	}
}

// CountLines returns the number of physical lines in source.
// An empty source has zero lines; a trailing newline does not add a line.
func CountLines(source string) int {
	if source == "" {
		return 0
	}
	n := strings.Count(source, "\n")
	if !strings.HasSuffix(source, "\n") {
		n++
	}
	return n
}

// ScanStats counts what a scan touched
type ScanStats struct {
	Objects     int `json:"objects"`
	Packages    int `json:"packages"`
	SourcesRead int `json:"sourcesRead"`
	Errors      int `json:"errors"`
}

// ScanResult is the output of one repository scan. Objects keep first-seen order.
type ScanResult struct {
	Packages []PackageInfo          `json:"packages"`
	Objects  []ObjectRef            `json:"objects"`
	Sources  map[string]SourceBundle `json:"sources"`
	Stats    ScanStats              `json:"stats"`
}

// NewScanResult returns an empty, well-formed scan result
func NewScanResult() *ScanResult {
	return &ScanResult{
		Packages: []PackageInfo{},
		Objects:  []ObjectRef{},
		Sources:  make(map[string]SourceBundle),
	}
}

// Object looks up an object reference by name
func (r *ScanResult) Object(name string) (ObjectRef, bool) {
	for _, obj := range r.Objects {
		if obj.Name == name {
			return obj, true
		}
	}
	return ObjectRef{}, false
}
