package commands

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"jtp/internal/cli"
	"jtp/internal/config"
	"jtp/internal/discovery"
	"jtp/internal/execution"
	"jtp/internal/logger"
	"jtp/internal/parser"
	"jtp/internal/storage"
	"jtp/internal/ui"
)

// ExitError asks main to exit with Code without printing anything further
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// Commands holds all CLI commands
type Commands struct {
	Run    *RunCommand
	Debug  *DebugCommand
	Detect *DetectCommand
	List   *ListCommand
	Faills *FaillsCommand
	Serve  *ServeCommand
}

// NewCommands creates all commands with dependencies. Values of cfg are read
// when a command executes, after flags and config files have been applied.
func NewCommands(cfg *config.Config, logger *log.Logger) *Commands {
	detector := discovery.NewDetector(logger)
	filter := discovery.NewFilter()
	testCaseParser := discovery.NewParser()
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(cfg, testCaseParser, color.Output)
	errorViewer := ui.NewErrorViewer(jsonStorage, color.Output)
	orchestrators := &orchestratorFactory{config: cfg, detector: detector, logger: logger}

	return &Commands{
		Run:    NewRunCommand(cfg, orchestrators, jsonStorage, formatter, errorViewer, logger),
		Debug:  NewDebugCommand(cfg, orchestrators),
		Detect: NewDetectCommand(cfg, detector, formatter),
		List:   NewListCommand(cfg, filter, formatter, jsonStorage, logger),
		Faills: NewFaillsCommand(jsonStorage, errorViewer),
		Serve:  NewServeCommand(orchestrators, detector, logger),
	}
}

// orchestratorFactory builds an Orchestrator from the resolved configuration
type orchestratorFactory struct {
	config   *config.Config
	detector *discovery.Detector
	logger   *log.Logger
}

func (f *orchestratorFactory) New() (*execution.Orchestrator, error) {
	env, err := f.config.LoadEnv()
	if err != nil {
		return nil, err
	}
	if len(env) > 0 {
		f.logger.Debug("loaded env file", "path", f.config.GetEnvFilePath(), "vars", len(env))
	}

	return execution.NewOrchestrator(
		f.detector,
		execution.NewProcessExecutor(f.config.Timeout),
		parser.NewJestParser(),
		f.logger,
		execution.WithRunner(f.config.Runner),
		execution.WithEnv(env),
	), nil
}

// Register registers all commands with cobra and wires configuration loading
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config, v *viper.Viper, appLogger *log.Logger) {
	config.SetDefaults(v)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.ConfigFile, "config", "", "Config file (default is ./.jtp.yaml)")
	pf.StringP("project", "p", config.DefaultProjectPath, "Path to the project directory")
	pf.String("runner", config.DefaultRunner, "Package binary to run through the package manager")
	pf.Duration("timeout", 0, "Kill the test run after this duration (e.g. 5m); 0 disables the limit")
	pf.String("env-file", "", "Env file whose variables are passed to the test run, relative to the project")
	pf.String("log-level", config.DefaultLogLevel, "Log level (debug, info, warn, error)")

	for key, flag := range map[string]string{
		config.KeyProject:  "project",
		config.KeyRunner:   "runner",
		config.KeyTimeout:  "timeout",
		config.KeyEnvFile:  "env-file",
		config.KeyLogLevel: "log-level",
	} {
		_ = v.BindPFlag(key, pf.Lookup(flag))
	}

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := config.ReadConfigFile(v, flags.ConfigFile); err != nil {
			return err
		}
		loaded, err := config.Load(v)
		if err != nil {
			return err
		}
		*cfg = *loaded
		cfg.Flags = flags.ToConfigFlags()

		if err := logger.SetLevel(appLogger, cfg.LogLevel); err != nil {
			return err
		}
		if used := v.ConfigFileUsed(); used != "" {
			appLogger.Debug("using config file", "path", used)
		}
		return nil
	}

	// Run command
	runCmd := &cobra.Command{
		Use:   "run [test-pattern] [-- jest-args...]",
		Short: "Run Jest tests and summarize the results",
		Long:  "Run Jest with a JSON report, record the run and print a summary with failure details",
		Args:  patternArgs,
		RunE:  c.Run.Execute,
	}
	runCmd.Flags().StringVarP(&flags.TestNamePattern, "test-name", "t", "", "Run only tests whose name matches this pattern (Jest -t)")
	runCmd.Flags().BoolVar(&flags.Verbose, "verbose", false, "Pass --verbose to Jest")
	runCmd.Flags().BoolVar(&flags.JSON, "json", false, "Print the normalized results as JSON")
	runCmd.Flags().BoolVar(&flags.OpenFaills, "open-faills", false, "Open the faills viewer when the run finishes with failures")
	rootCmd.AddCommand(runCmd)

	// Debug command
	debugCmd := &cobra.Command{
		Use:   "debug [test-pattern] [-- jest-args...]",
		Short: "Run Jest verbosely and print its raw output",
		Long:  "Run Jest with --verbose --no-coverage without parsing, for reading failures as Jest prints them",
		Args:  patternArgs,
		RunE:  c.Debug.Execute,
	}
	debugCmd.Flags().StringVarP(&flags.TestNamePattern, "test-name", "t", "", "Run only tests whose name matches this pattern (Jest -t)")
	rootCmd.AddCommand(debugCmd)

	// Detect command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "detect",
		Short: "Show the detected package manager, Jest config and workspaces",
		Args:  cobra.NoArgs,
		RunE:  c.Detect.Execute,
	})

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered tests",
		Long:  "Scan and list Jest test files without executing them",
		Args:  cobra.NoArgs,
		RunE:  c.List.Execute,
	}
	listCmd.Flags().StringVarP(&flags.Filter, "filter", "f", "", "Filter test files by name pattern (supports wildcards, e.g. '*user*' or '*.spec.ts')")
	listCmd.Flags().BoolVarP(&flags.TestCases, "test-cases", "c", false, "List test cases of each file")
	rootCmd.AddCommand(listCmd)

	// Faills command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "faills",
		Short: "View test failures interactively",
		Long:  "Display test failures from the last recorded run in an interactive viewer",
		Args:  cobra.NoArgs,
		RunE:  c.Faills.Execute,
	})

	// Serve command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Serve the Jest tools over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE:  c.Serve.Execute,
	})
}

// splitArgs separates the optional test pattern from the arguments given after "--"
func splitArgs(cmd *cobra.Command, args []string) (pattern string, extra []string) {
	positional := args
	if dash := cmd.ArgsLenAtDash(); dash >= 0 {
		positional, extra = args[:dash], args[dash:]
	}
	if len(positional) > 0 {
		pattern = positional[0]
	}
	return pattern, extra
}

// startSpinner shows a spinner on stderr while a run is in progress, when stderr is a terminal
func startSpinner(description string) func() {
	if !ui.IsTerminal(os.Stderr) {
		return func() {}
	}
	spinner := ui.NewSpinner(os.Stderr, description)
	spinner.Start()
	return spinner.Stop
}

// patternArgs accepts at most one test pattern before "--" and anything after it
func patternArgs(cmd *cobra.Command, args []string) error {
	pattern := args
	if dash := cmd.ArgsLenAtDash(); dash >= 0 {
		pattern = args[:dash]
	}
	if len(pattern) > 1 {
		return fmt.Errorf("accepts at most one test pattern, received %d; pass Jest arguments after --", len(pattern))
	}
	return nil
}
