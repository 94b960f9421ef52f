package cli

import (
	"fmt"
	"os"

	"github.com/ppiankov/s4spectre/internal/validator"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a scan fixture or sidecar dataset",
	Long: `Validate checks a scan fixture (JSON) or a sidecar dataset (interfaces,
ATC results or usage data as JSON or YAML) before it is fed to assess.

Returns exit 0 if valid, exit 2 if invalid with details on stderr.

Example:
  s4spectre validate scan.json
  s4spectre validate datasets/interfaces.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	kind, err := validator.New().ValidateFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "INVALID: %v\n", err)
		return &ValidationError{Message: fmt.Sprintf("%s failed validation", args[0])}
	}

	fmt.Printf("VALID: %s\n", kind)
	return nil
}
