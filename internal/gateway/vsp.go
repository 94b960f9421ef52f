package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/ppiankov/s4spectre/internal/models"
)

// DefaultVSPBinary is the vsp executable looked up on PATH
const DefaultVSPBinary = "vsp"

// ExecFunc is the signature for running a command and capturing stdout.
// It receives the context, binary path, and args. Returns stdout bytes and error.
type ExecFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// DefaultExec runs the command with os/exec and keeps stderr in the error
func DefaultExec(ctx context.Context, name string, args ...string) ([]byte, error) {
	c := exec.CommandContext(ctx, name, args...)
	out, err := c.Output()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok && len(ee.Stderr) > 0 {
			return out, fmt.Errorf("%w: %s", err, strings.TrimSpace(string(ee.Stderr)))
		}
		return out, err
	}
	return out, nil
}

// VSP drives the vsp command line client, which speaks ADT on our behalf
type VSP struct {
	binary  string
	execFn  ExecFunc
	timeout time.Duration
}

// NewVSP creates a vsp gateway. An empty binary selects DefaultVSPBinary.
func NewVSP(binary string, execFn ExecFunc, timeout time.Duration) *VSP {
	if binary == "" {
		binary = DefaultVSPBinary
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &VSP{binary: binary, execFn: execFn, timeout: timeout}
}

// Mode implements Gateway
func (v *VSP) Mode() Mode { return ModeVSP }

// vspError is the error envelope vsp prints instead of a result
type vspError struct {
	Error string `json:"error"`
}

func (v *VSP) run(ctx context.Context, out any, args ...string) error {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	args = append(args, "--format", "json")
	data, err := v.execFn(ctx, v.binary, args...)
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("%s %s timed out after %s", v.binary, args[0], v.timeout)
	}
	if err != nil {
		return fmt.Errorf("%s %s: %w", v.binary, args[0], err)
	}

	var e vspError
	if json.Unmarshal(data, &e) == nil && e.Error != "" {
		if strings.Contains(strings.ToLower(e.Error), "not found") {
			return fmt.Errorf("%s: %w", e.Error, ErrNotFound)
		}
		return fmt.Errorf("%s %s: %s", v.binary, args[0], e.Error)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s %s output: %w", v.binary, args[0], err)
	}
	return nil
}

// Search implements Gateway
func (v *VSP) Search(ctx context.Context, query, objectType string) (*SearchResult, error) {
	args := []string{"search", query}
	if objectType != "" {
		args = append(args, "--type", models.NormalizeObjectType(objectType))
	}
	var res SearchResult
	if err := v.run(ctx, &res, args...); err != nil {
		return nil, err
	}
	if res.Results == nil {
		res.Results = []SearchHit{}
	}
	for i := range res.Results {
		res.Results[i].Type = models.NormalizeObjectType(res.Results[i].Type)
	}
	res.ResultCount = len(res.Results)
	return &res, nil
}

// ReadSource implements Gateway
func (v *VSP) ReadSource(ctx context.Context, name, objectType string) (*SourceResult, error) {
	var res SourceResult
	if err := v.run(ctx, &res, "read", name, "--type", models.NormalizeObjectType(objectType)); err != nil {
		return nil, err
	}
	if res.ObjectName == "" {
		res.ObjectName = name
	}
	if res.ObjectType == "" {
		res.ObjectType = models.NormalizeObjectType(objectType)
	}
	return &res, nil
}

// WriteSource implements Gateway. The source is handed over in a temp file.
func (v *VSP) WriteSource(ctx context.Context, req WriteRequest) (*WriteResult, error) {
	f, err := os.CreateTemp("", "s4spectre-write-*.abap")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() { _ = os.Remove(f.Name()) }()
	if _, err := f.WriteString(req.Source); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close temp file: %w", err)
	}

	args := []string{"write", req.ObjectName, "--type", models.NormalizeObjectType(req.ObjectType), "--file", f.Name()}
	if req.Package != "" {
		args = append(args, "--package", req.Package)
	}
	var res WriteResult
	if err := v.run(ctx, &res, args...); err != nil {
		return nil, err
	}
	if res.Status != StatusSaved {
		return nil, fmt.Errorf("%s write %s: status %q", v.binary, req.ObjectName, res.Status)
	}
	return &res, nil
}
