package cli

import (
	"strings"
	"testing"
)

func TestRunValidate(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		path     string
		wantErr  bool
		wantKind string
	}{
		{"fixture", writeFixture(t), false, "VALID: scan fixture"},
		{"interfaces yaml", writeFile(t, dir, "interfaces.yaml",
			"interfaces:\n  - name: ORDERS05\n    type: idoc\n"), false, "VALID: interfaces dataset"},
		{"atc json", writeFile(t, dir, "atc.json",
			`{"findings": [{"object": "ZCL_FI_POST", "priority": 1}]}`), false, "VALID: atc dataset"},
		{"fixture without sources", writeFile(t, dir, "broken.json",
			`{"objects": [{"name": "ZCL_A", "type": "CLAS"}]}`), true, ""},
		{"unknown dataset", writeFile(t, dir, "other.yaml", "hello: world\n"), true, ""},
		{"missing file", dir + "/missing.json", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			var stdout string
			stderr := captureStderr(t, func() {
				stdout = captureStdout(t, func() {
					err = runValidate(nil, []string{tt.path})
				})
			})

			if tt.wantErr {
				if HandleError(err) != ExitInvalidInput {
					t.Fatalf("err = %v, want exit %d", err, ExitInvalidInput)
				}
				if !strings.Contains(stderr, "INVALID:") {
					t.Errorf("stderr = %q, want INVALID details", stderr)
				}
				return
			}
			if err != nil {
				t.Fatalf("runValidate: %v (stderr %q)", err, stderr)
			}
			if !strings.Contains(stdout, tt.wantKind) {
				t.Errorf("stdout = %q, want %q", stdout, tt.wantKind)
			}
		})
	}
}
