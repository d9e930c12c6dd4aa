package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New creates the application logger. It always writes to stderr so stdout
// stays free for results and the MCP protocol.
func New(level string) (*log.Logger, error) {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter creates a logger writing to w at the given level
func NewWithWriter(w io.Writer, level string) (*log.Logger, error) {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		Prefix:          "jtp",
	})
	if err := SetLevel(logger, level); err != nil {
		return logger, err
	}
	return logger, nil
}

// SetLevel parses level ("debug", "info", "warn", "error", "fatal") and applies it to logger.
// An invalid level leaves the logger unchanged.
func SetLevel(logger *log.Logger, level string) error {
	parsed, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logger.SetLevel(parsed)
	return nil
}
