package commands

import (
	"github.com/spf13/cobra"

	"jtp/internal/config"
	"jtp/internal/execution"
	"jtp/internal/ui"
)

// DetectCommand handles the detect command
type DetectCommand struct {
	config    *config.Config
	detector  execution.ConfigDetector
	formatter *ui.Formatter
}

// NewDetectCommand creates a new DetectCommand
func NewDetectCommand(cfg *config.Config, detector execution.ConfigDetector, formatter *ui.Formatter) *DetectCommand {
	return &DetectCommand{
		config:    cfg,
		detector:  detector,
		formatter: formatter,
	}
}

// Execute runs the command
func (dc *DetectCommand) Execute(cmd *cobra.Command, args []string) error {
	return dc.formatter.PrintJSON(dc.detector.Detect(dc.config.GetProjectPath()))
}
