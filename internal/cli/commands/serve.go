package commands

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"jtp/internal/execution"
	"jtp/internal/mcpserver"
)

// ServeCommand handles the serve command
type ServeCommand struct {
	orchestrators *orchestratorFactory
	detector      execution.ConfigDetector
	logger        *log.Logger
}

// NewServeCommand creates a new ServeCommand
func NewServeCommand(orchestrators *orchestratorFactory, detector execution.ConfigDetector, logger *log.Logger) *ServeCommand {
	return &ServeCommand{
		orchestrators: orchestrators,
		detector:      detector,
		logger:        logger,
	}
}

// Execute serves MCP on stdio until the client disconnects
func (sc *ServeCommand) Execute(cmd *cobra.Command, args []string) error {
	orchestrator, err := sc.orchestrators.New()
	if err != nil {
		return err
	}

	server := mcpserver.New(orchestrator, sc.detector, sc.logger, cmd.Root().Version)
	return server.Run(cmd.Context())
}
