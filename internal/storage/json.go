package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"jtp/internal/domain"
)

// Save records a run. Raw output is only kept when the report could not be parsed.
func (s *JSONStorage) Save(result domain.RunResult, command string) error {
	output := domain.TestResultsOutput{
		Meta: domain.TestResultsMeta{
			ProjectPath: s.cfg.GetProjectPath(),
			Command:     command,
			ExitCode:    result.ExitCode,
			Parsed:      result.Results != nil,
			Timestamp:   time.Now().Format(time.RFC3339),
		},
		Results: result.Results,
	}
	if result.Results != nil {
		output.Meta.Command = result.Results.Command
	} else {
		output.Stdout = result.Stdout
		output.Stderr = result.Stderr
	}

	return s.SaveOutput(&output)
}

// Load reads the last run from the configured JSON output file
func (s *JSONStorage) Load() (*domain.TestResultsOutput, error) {
	path := s.cfg.GetOutputPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoRecord
		}
		return nil, fmt.Errorf("read results file: %w", err)
	}
	var output domain.TestResultsOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	return &output, nil
}

// SaveOutput writes the full record to the configured JSON file
func (s *JSONStorage) SaveOutput(output *domain.TestResultsOutput) error {
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	path := s.cfg.GetOutputPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}
