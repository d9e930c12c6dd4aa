package execution

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"

	"jtp/internal/domain"
)

// waitDelay bounds how long output pipes are drained after the process is killed
const waitDelay = 2 * time.Second

// ProcessExecutor runs commands as child processes without a shell
type ProcessExecutor struct {
	timeout time.Duration
}

// NewProcessExecutor creates a new ProcessExecutor. A zero timeout means no limit.
func NewProcessExecutor(timeout time.Duration) *ProcessExecutor {
	return &ProcessExecutor{timeout: timeout}
}

// Execute runs name with args in dir and waits for it to exit.
// A nil env inherits the parent environment. Execute never fails: a process
// that cannot be started, or that ends without an exit code, reports exit code 1.
func (e *ProcessExecutor) Execute(ctx context.Context, name string, args []string, dir string, env []string) domain.RawRunOutput {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = env
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	output := domain.RawRunOutput{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		output.ExitCode = 0
	case errors.As(err, &exitErr):
		output.ExitCode = exitErr.ExitCode()
		if output.ExitCode < 0 {
			output.ExitCode = 1
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			output.Stderr = appendLine(output.Stderr, ctxErr.Error())
		}
	default:
		output.ExitCode = 1
		output.Stderr = appendLine(output.Stderr, err.Error())
	}

	return output
}

func appendLine(s, line string) string {
	return s + "\n" + line
}
