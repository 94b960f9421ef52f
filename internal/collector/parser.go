package collector

import (
	"fmt"
	"strings"

	"github.com/ppiankov/s4spectre/internal/models"
)

// ParseDataset parses data as the given dataset kind
func ParseDataset(data []byte, format Format, kind DatasetKind) (interface{}, error) {
	switch kind {
	case KindInterfaces:
		return ParseInterfaces(data, format)
	case KindATC:
		return ParseATC(data, format)
	case KindUsage:
		return ParseUsage(data, format)
	}
	return nil, fmt.Errorf("cannot parse dataset of kind %q", kind)
}

// ParseInterfaces parses an interface inventory
func ParseInterfaces(data []byte, format Format) (*models.InterfaceInventory, error) {
	var inv models.InterfaceInventory
	if err := decode(data, format, &inv); err != nil {
		return nil, fmt.Errorf("failed to parse interface inventory: %w", err)
	}

	for i, iface := range inv.Interfaces {
		if strings.TrimSpace(iface.Name) == "" {
			return nil, fmt.Errorf("interface %d has no name", i)
		}
	}
	if inv.Interfaces == nil {
		inv.Interfaces = []models.InterfaceInfo{}
	}

	return &inv, nil
}

// ParseATC parses ATC results. Priorities run from 1 (error) to 4 (information).
func ParseATC(data []byte, format Format) (*models.ATCResult, error) {
	var result models.ATCResult
	if err := decode(data, format, &result); err != nil {
		return nil, fmt.Errorf("failed to parse ATC results: %w", err)
	}

	for i, f := range result.Findings {
		if f.Priority < 1 || f.Priority > 4 {
			return nil, fmt.Errorf("ATC finding %d (%s): priority %d out of range 1-4", i, f.Object, f.Priority)
		}
		result.Findings[i].Object = strings.ToUpper(strings.TrimSpace(f.Object))
	}
	if result.Findings == nil {
		result.Findings = []models.ATCFinding{}
	}

	return &result, nil
}

// ParseUsage parses object usage statistics
func ParseUsage(data []byte, format Format) (*models.UsageData, error) {
	var usage models.UsageData
	if err := decode(data, format, &usage); err != nil {
		return nil, fmt.Errorf("failed to parse usage data: %w", err)
	}

	for i, e := range usage.Entries {
		if strings.TrimSpace(e.Object) == "" {
			return nil, fmt.Errorf("usage entry %d has no object", i)
		}
		if e.Executions < 0 {
			return nil, fmt.Errorf("usage entry %s: negative executions", e.Object)
		}
		usage.Entries[i].Object = strings.ToUpper(strings.TrimSpace(e.Object))
	}
	if usage.Entries == nil {
		usage.Entries = []models.UsageEntry{}
	}

	return &usage, nil
}
