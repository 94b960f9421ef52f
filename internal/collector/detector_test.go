package collector

import "testing"

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"atc.json", FormatJSON, false},
		{"dir/usage.YAML", FormatYAML, false},
		{"interfaces.yml", FormatYAML, false},
		{"notes.txt", "", true},
		{"noext", "", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatForPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("wantErr=%v, got %v", tt.wantErr, err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestDetectKind(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		format  Format
		want    DatasetKind
		wantErr bool
	}{
		{
			name:   "explicit kind",
			data:   `{"kind": "atc", "findings": []}`,
			format: FormatJSON,
			want:   KindATC,
		},
		{
			name:   "explicit alias",
			data:   "kind: scmon\nentries: []\n",
			format: FormatYAML,
			want:   KindUsage,
		},
		{
			name:    "unknown explicit kind",
			data:    `{"kind": "transports"}`,
			format:  FormatJSON,
			want:    KindUnknown,
			wantErr: true,
		},
		{
			name:   "interfaces by structure",
			data:   `{"complexity": "High", "interfaces": [{"name": "ZIF_ORDERS", "type": "IDoc"}]}`,
			format: FormatJSON,
			want:   KindInterfaces,
		},
		{
			name:   "atc by structure",
			data:   "findings:\n  - object: ZCL_A\n    priority: 1\n",
			format: FormatYAML,
			want:   KindATC,
		},
		{
			name:   "usage by structure",
			data:   `{"entries": [{"object": "ZREPORT", "executions": 0}]}`,
			format: FormatJSON,
			want:   KindUsage,
		},
		{
			name:    "findings without atc fields",
			data:    `{"findings": [{"resource": "x"}]}`,
			format:  FormatJSON,
			want:    KindUnknown,
			wantErr: true,
		},
		{
			name:    "invalid json",
			data:    `{not json`,
			format:  FormatJSON,
			want:    KindUnknown,
			wantErr: true,
		},
		{
			name:    "empty yaml",
			data:    "",
			format:  FormatYAML,
			want:    KindUnknown,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectKind([]byte(tt.data), tt.format)
			if (err != nil) != tt.wantErr {
				t.Fatalf("wantErr=%v, got %v", tt.wantErr, err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestParseATC(t *testing.T) {
	atc, err := ParseATC([]byte(`{"findings": [{"object": " zcl_a ", "check": "CL_CI_TEST_SELECT", "priority": 1}]}`), FormatJSON)
	if err != nil {
		t.Fatalf("ParseATC: %v", err)
	}
	if len(atc.Findings) != 1 || atc.Findings[0].Object != "ZCL_A" {
		t.Fatalf("expected normalized object ZCL_A, got %+v", atc.Findings)
	}

	if _, err := ParseATC([]byte(`{"findings": [{"object": "ZCL_A", "priority": 7}]}`), FormatJSON); err == nil {
		t.Fatal("expected error for priority out of range")
	}
}

func TestParseInterfaces(t *testing.T) {
	inv, err := ParseInterfaces([]byte("interfaces:\n  - name: ZIF_ORDERS\n    type: IDoc\n    deprecated: true\n"), FormatYAML)
	if err != nil {
		t.Fatalf("ParseInterfaces: %v", err)
	}
	if len(inv.Interfaces) != 1 || inv.Interfaces[0].Kind != "IDoc" || !inv.Interfaces[0].Deprecated {
		t.Fatalf("unexpected inventory %+v", inv)
	}

	if _, err := ParseInterfaces([]byte(`{"interfaces": [{"type": "RFC"}]}`), FormatJSON); err == nil {
		t.Fatal("expected error for unnamed interface")
	}
}

func TestParseUsage(t *testing.T) {
	usage, err := ParseUsage([]byte(`{"entries": [{"object": "zreport", "executions": 3}]}`), FormatJSON)
	if err != nil {
		t.Fatalf("ParseUsage: %v", err)
	}
	if usage.Entries[0].Object != "ZREPORT" || usage.Entries[0].Executions != 3 {
		t.Fatalf("unexpected usage %+v", usage.Entries)
	}

	if _, err := ParseUsage([]byte(`{"entries": [{"object": "ZREPORT", "executions": -1}]}`), FormatJSON); err == nil {
		t.Fatal("expected error for negative executions")
	}
}

func TestParseDatasetUnknownKind(t *testing.T) {
	if _, err := ParseDataset([]byte(`{}`), FormatJSON, KindUnknown); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}
