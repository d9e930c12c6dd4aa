package execution

import (
	"context"

	"jtp/internal/domain"
)

// Executor runs a command to completion and collects its output
type Executor interface {
	Execute(ctx context.Context, name string, args []string, dir string, env []string) domain.RawRunOutput
}

// ConfigDetector describes how Jest is invoked in a project
type ConfigDetector interface {
	Detect(projectPath string) domain.ProjectConfig
}
