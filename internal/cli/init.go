package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ppiankov/s4spectre/internal/config"
	"github.com/spf13/cobra"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a sample configuration file",
	Long: `Write a commented sample configuration to $XDG_CONFIG_HOME/s4spectre/s4spectre.yaml
when XDG_CONFIG_HOME is set, or to ./s4spectre.yaml otherwise.

Example:
  s4spectre init
  s4spectre init --force`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false,
		"overwrite an existing configuration file")
}

func runInit(cmd *cobra.Command, args []string) error {
	path := config.ConfigPath()

	if _, err := os.Stat(path); err == nil && !initForce {
		return &ValidationError{Message: fmt.Sprintf("%s already exists (use --force to overwrite)", path)}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(config.GenerateSampleConfig()), 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Printf("Wrote %s\n", path)
	return nil
}
