package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"jtp/internal/domain"
)

type nopStorage struct {
	saved *domain.TestResultsOutput
}

func (s *nopStorage) Save(domain.RunResult, string) error { return nil }

func (s *nopStorage) Load() (*domain.TestResultsOutput, error) { return s.saved, nil }

func (s *nopStorage) SaveOutput(output *domain.TestResultsOutput) error {
	s.saved = output
	return nil
}

func strPtr(s string) *string { return &s }

func TestResolvedSetAndIndexes(t *testing.T) {
	set := resolvedSet([]int{3, 0, 7, -1}, 5)
	assert.Equal(t, map[int]bool{0: true, 3: true}, set)

	set[1] = true
	set[3] = false
	assert.Equal(t, []int{0, 1}, resolvedIndexes(set))
	assert.Equal(t, []int{}, resolvedIndexes(map[int]bool{}))
}

func TestFormatFailureDetails(t *testing.T) {
	failure := domain.TestFailure{
		TestName:    "adds",
		FullName:    "math > adds",
		File:        "/app/math.test.js",
		Line:        intPtr(4),
		MatcherName: strPtr("toBe"),
		Expected:    strPtr("3"),
		Received:    strPtr("4"),
		Message:     "expect(received).toBe(expected)",
	}

	assert.Equal(t, "[red]✗ math > adds[white]\n\n"+
		"[cyan]File:[white] /app/math.test.js:4\n"+
		"[cyan]Matcher:[white] toBe\n"+
		"[green]Expected:[white] 3\n"+
		"[red]Received:[white] 4\n"+
		"\n[yellow]Message:[white]\nexpect(received).toBe(expected)\n", formatFailureDetails(failure))

	bare := formatFailureDetails(domain.TestFailure{FullName: "x", File: "/app/x.test.js", Message: "boom"})
	assert.NotContains(t, bare, "Matcher")
	assert.Contains(t, bare, "[cyan]File:[white] /app/x.test.js\n")
}

func TestFormatFailureStats(t *testing.T) {
	assert.Equal(t, "[cyan]path:[white] [yellow]Unknown path[white] › [yellow]Test 2[white]\n",
		formatFailureStats(domain.TestFailure{}, 2))
}

func TestListItemText(t *testing.T) {
	failure := domain.TestFailure{TestName: "adds"}
	assert.Equal(t, "[yellow]1.[white] adds", listItemText(failure, 0, false))
	assert.Equal(t, "[gray]✓ [yellow]1.[gray] adds[white]", listItemText(failure, 0, true))
	assert.Equal(t, "[yellow]3.[white] Test 3", listItemText(domain.TestFailure{}, 2, false))
}

func TestErrorViewer_View_NothingToShow(t *testing.T) {
	var buf bytes.Buffer
	viewer := NewErrorViewer(&nopStorage{}, &buf)

	assert.NoError(t, viewer.View(&domain.TestResultsOutput{}))
	assert.Contains(t, buf.String(), "could not be parsed")

	buf.Reset()
	assert.NoError(t, viewer.View(&domain.TestResultsOutput{Results: &domain.TestResults{Failures: []domain.TestFailure{}}}))
	assert.Contains(t, buf.String(), "No test failures found")
}
