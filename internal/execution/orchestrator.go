package execution

import (
	"context"
	"os"

	"github.com/charmbracelet/log"

	"jtp/internal/domain"
	"jtp/internal/parser"
)

// colorEnv disables color in the child so the report and messages stay plain
var colorEnv = []string{"FORCE_COLOR=0", "NO_COLOR=1"}

// Orchestrator runs Jest in a project and turns its report into TestResults
type Orchestrator struct {
	detector ConfigDetector
	executor Executor
	parser   parser.Parser
	logger   *log.Logger
	runner   string
	extraEnv []string
}

// Option configures an Orchestrator
type Option func(*Orchestrator)

// WithRunner sets the package binary to invoke instead of jest
func WithRunner(runner string) Option {
	return func(o *Orchestrator) {
		if runner != "" {
			o.runner = runner
		}
	}
}

// WithEnv adds KEY=VALUE entries to the child environment of every run
func WithEnv(env []string) Option {
	return func(o *Orchestrator) {
		o.extraEnv = append(o.extraEnv, env...)
	}
}

// NewOrchestrator creates a new Orchestrator
func NewOrchestrator(detector ConfigDetector, executor Executor, p parser.Parser, logger *log.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		detector: detector,
		executor: executor,
		parser:   p,
		logger:   logger,
		runner:   DefaultRunner,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run executes Jest with --json and parses its report.
// Parsing is attempted whatever the exit code; when no report can be recovered
// Results is nil and the raw output is returned unchanged.
func (o *Orchestrator) Run(ctx context.Context, opts domain.RunOptions) domain.RunResult {
	cfg := o.detector.Detect(opts.ProjectPath)
	args := BuildArgs(opts, cfg)
	name, argv := Invocation(cfg.PackageManager, o.runner, args)
	command := CommandLabel(cfg.PackageManager, o.runner, args)

	env := append(os.Environ(), o.extraEnv...)
	env = append(env, colorEnv...)

	o.logger.Debug("running jest", "dir", opts.ProjectPath, "command", command)
	raw := o.executor.Execute(ctx, name, argv, opts.ProjectPath, env)
	o.logger.Debug("jest finished", "exitCode", raw.ExitCode,
		"stdoutBytes", len(raw.Stdout), "stderrBytes", len(raw.Stderr))

	result := domain.RunResult{
		Stdout:   raw.Stdout,
		Stderr:   raw.Stderr,
		ExitCode: raw.ExitCode,
	}

	jsonText, ok := parser.ExtractFromStreams(raw.Stdout, raw.Stderr)
	if !ok {
		o.logger.Debug("no report in output", "error", parser.ErrNoJSON)
		return result
	}

	results, err := o.parser.Parse(jsonText, command)
	if err != nil {
		o.logger.Debug("report could not be parsed", "error", err)
		return result
	}

	result.Results = results
	return result
}

// CommandLine returns the command line Run would execute for opts
func (o *Orchestrator) CommandLine(opts domain.RunOptions) string {
	cfg := o.detector.Detect(opts.ProjectPath)
	return CommandLabel(cfg.PackageManager, o.runner, BuildArgs(opts, cfg))
}

// Debug executes Jest with verbose output for a human to read. It never parses.
func (o *Orchestrator) Debug(ctx context.Context, opts domain.RunOptions) domain.RunResult {
	cfg := o.detector.Detect(opts.ProjectPath)
	args := BuildDebugArgs(opts, cfg)
	name, argv := Invocation(cfg.PackageManager, o.runner, args)

	var env []string
	if len(o.extraEnv) > 0 {
		env = append(os.Environ(), o.extraEnv...)
	}

	o.logger.Debug("debugging jest", "dir", opts.ProjectPath,
		"command", CommandLabel(cfg.PackageManager, o.runner, args))
	raw := o.executor.Execute(ctx, name, argv, opts.ProjectPath, env)

	return domain.RunResult{
		Stdout:   raw.Stdout,
		Stderr:   raw.Stderr,
		ExitCode: raw.ExitCode,
	}
}
