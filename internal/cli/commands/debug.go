package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"jtp/internal/config"
	"jtp/internal/domain"
)

// DebugCommand handles the debug command
type DebugCommand struct {
	config        *config.Config
	orchestrators *orchestratorFactory
}

// NewDebugCommand creates a new DebugCommand
func NewDebugCommand(cfg *config.Config, orchestrators *orchestratorFactory) *DebugCommand {
	return &DebugCommand{
		config:        cfg,
		orchestrators: orchestrators,
	}
}

// Execute runs the command and propagates Jest's exit code
func (dc *DebugCommand) Execute(cmd *cobra.Command, args []string) error {
	orchestrator, err := dc.orchestrators.New()
	if err != nil {
		return err
	}

	pattern, extra := splitArgs(cmd, args)
	result := orchestrator.Debug(cmd.Context(), domain.RunOptions{
		ProjectPath:     dc.config.GetProjectPath(),
		TestPattern:     pattern,
		TestNamePattern: dc.config.Flags.TestNamePattern,
		ExtraArgs:       extra,
	})

	fmt.Fprint(cmd.OutOrStdout(), result.Stdout)
	fmt.Fprint(cmd.ErrOrStderr(), result.Stderr)

	if result.ExitCode != 0 {
		return &ExitError{Code: result.ExitCode}
	}
	return nil
}
