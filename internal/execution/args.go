package execution

import (
	"strings"

	"jtp/internal/domain"
)

// DefaultRunner is the package binary invoked through the package manager
const DefaultRunner = "jest"

// BuildArgs returns the Jest arguments for a run that emits a JSON report
func BuildArgs(opts domain.RunOptions, cfg domain.ProjectConfig) []string {
	args := []string{"--json"}
	args = appendSelection(args, opts, cfg)
	if opts.Verbose {
		args = append(args, "--verbose")
	}
	return append(args, opts.ExtraArgs...)
}

// BuildDebugArgs returns the Jest arguments for a human-readable debug run
func BuildDebugArgs(opts domain.RunOptions, cfg domain.ProjectConfig) []string {
	args := []string{"--verbose", "--no-coverage"}
	args = appendSelection(args, opts, cfg)
	return append(args, opts.ExtraArgs...)
}

func appendSelection(args []string, opts domain.RunOptions, cfg domain.ProjectConfig) []string {
	if cfg.ConfigFile != nil {
		args = append(args, "--config", *cfg.ConfigFile)
	}
	if opts.TestPattern != "" {
		args = append(args, opts.TestPattern)
	}
	if opts.TestNamePattern != "" {
		args = append(args, "-t", opts.TestNamePattern)
	}
	return args
}

// Invocation returns the program and full argument list that run runner with args
// through the project's package manager, e.g. "pnpm" ["exec", "jest", "--json"]
func Invocation(pm domain.PackageManager, runner string, args []string) (string, []string) {
	if runner == "" {
		runner = DefaultRunner
	}
	fields := strings.Fields(pm.ExecCommand())
	argv := make([]string, 0, len(fields)+len(args))
	argv = append(argv, fields[1:]...)
	argv = append(argv, runner)
	argv = append(argv, args...)
	return fields[0], argv
}

// CommandLabel returns the human-readable command line recorded in TestResults
func CommandLabel(pm domain.PackageManager, runner string, args []string) string {
	name, argv := Invocation(pm, runner, args)
	return strings.Join(append([]string{name}, argv...), " ")
}
