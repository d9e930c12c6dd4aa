package ui

import "jtp/internal/domain"

// Viewer displays the failures of a recorded run in an interactive TUI
type Viewer interface {
	View(output *domain.TestResultsOutput) error
}
