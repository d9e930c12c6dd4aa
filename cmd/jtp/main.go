package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"jtp/internal/cli"
	"jtp/internal/cli/commands"
	"jtp/internal/config"
	"jtp/internal/logger"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := &cobra.Command{
		Use:           "jtp",
		Short:         "Jest test processor",
		Long:          `Run Jest in any npm, pnpm, yarn or bun project and turn its report into a structured summary of passes and failures, on the terminal or as MCP tools.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	log, _ := logger.New(config.DefaultLogLevel)

	// Create initial config with defaults; the root pre-run fills it from flags, env and config file
	cfg := config.New()
	v := viper.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	cmds := commands.NewCommands(cfg, log)
	cmds.Register(rootCmd, &flags, cfg, v, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		var exitErr *commands.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
