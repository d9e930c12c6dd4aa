package storage

import (
	"errors"

	"jtp/internal/config"
	"jtp/internal/domain"
)

// ErrNoRecord is returned by Load when no run has been recorded for the project yet
var ErrNoRecord = errors.New("no recorded run found, run `jtp run` first")

// Storage persists and loads the record of the last run (e.g. for the faills viewer)
type Storage interface {
	Save(result domain.RunResult, command string) error
	Load() (*domain.TestResultsOutput, error)
	// SaveOutput writes the full record (e.g. after marking failures resolved)
	SaveOutput(output *domain.TestResultsOutput) error
}

// JSONStorage stores the record in a JSON file under the configured output path
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
