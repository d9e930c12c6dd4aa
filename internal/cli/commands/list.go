package commands

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"jtp/internal/config"
	"jtp/internal/discovery"
	"jtp/internal/storage"
	"jtp/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	filter    *discovery.Filter
	formatter *ui.Formatter
	storage   storage.Storage
	logger    *log.Logger
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	filter *discovery.Filter,
	formatter *ui.Formatter,
	st storage.Storage,
	logger *log.Logger,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		filter:    filter,
		formatter: formatter,
		storage:   st,
		logger:    logger,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	projectPath := lc.config.GetProjectPath()
	scanner := discovery.NewScanner(lc.config.PathsToIgnore)
	tests, err := scanner.Scan(projectPath)
	if err != nil {
		return err
	}

	tests = lc.filter.FilterByName(tests, lc.config.Flags.Filter)

	if len(tests) == 0 {
		color.Yellow("No tests found")
		return nil
	}

	var failedPaths map[string]struct{}
	output, err := lc.storage.Load()
	switch {
	case err == nil:
		failedPaths = ui.FailedPaths(projectPath, output)
	case !errors.Is(err, storage.ErrNoRecord):
		lc.logger.Debug("ignoring recorded run", "error", err)
	}

	return lc.formatter.PrintTestList(tests, lc.config.Flags.TestCases, failedPaths)
}
