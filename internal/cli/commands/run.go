package commands

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"jtp/internal/config"
	"jtp/internal/domain"
	"jtp/internal/storage"
	"jtp/internal/ui"
)

// RunCommand handles the run command
type RunCommand struct {
	config        *config.Config
	orchestrators *orchestratorFactory
	storage       storage.Storage
	formatter     *ui.Formatter
	viewer        ui.Viewer
	logger        *log.Logger
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	orchestrators *orchestratorFactory,
	st storage.Storage,
	formatter *ui.Formatter,
	viewer ui.Viewer,
	logger *log.Logger,
) *RunCommand {
	return &RunCommand{
		config:        cfg,
		orchestrators: orchestrators,
		storage:       st,
		formatter:     formatter,
		viewer:        viewer,
		logger:        logger,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	orchestrator, err := rc.orchestrators.New()
	if err != nil {
		return err
	}

	pattern, extra := splitArgs(cmd, args)
	opts := domain.RunOptions{
		ProjectPath:     rc.config.GetProjectPath(),
		TestPattern:     pattern,
		TestNamePattern: rc.config.Flags.TestNamePattern,
		Verbose:         rc.config.Flags.Verbose,
		ExtraArgs:       extra,
	}

	stop := func() {}
	if !rc.config.Flags.JSON {
		stop = startSpinner("Running jest")
	}
	result := orchestrator.Run(cmd.Context(), opts)
	stop()

	if err := rc.storage.Save(result, orchestrator.CommandLine(opts)); err != nil {
		rc.logger.Warn("could not record the run", "error", err)
	}

	if rc.config.Flags.JSON {
		var printErr error
		if result.Results != nil {
			printErr = rc.formatter.PrintJSON(result.Results)
		} else {
			printErr = rc.formatter.PrintJSON(result)
		}
		if printErr != nil {
			return printErr
		}
	} else if result.Results == nil {
		rc.formatter.PrintRawOutput(result)
	} else {
		rc.formatter.PrintSummary(result.Results)
	}

	if result.Results == nil {
		return &ExitError{Code: nonZero(result.ExitCode)}
	}

	if rc.config.Flags.OpenFaills && len(result.Results.Failures) > 0 {
		output, err := rc.storage.Load()
		if err != nil {
			return err
		}
		if err := rc.viewer.View(output); err != nil {
			return err
		}
	}

	if !result.Results.Success {
		return &ExitError{Code: nonZero(result.ExitCode)}
	}
	return nil
}

func nonZero(code int) int {
	if code == 0 {
		return 1
	}
	return code
}
