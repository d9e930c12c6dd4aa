package parser

import (
	"encoding/json"
	"math"
	"strings"

	"jtp/internal/domain"
)

const (
	statusPassed = "passed"
	statusFailed = "failed"

	fullNameSeparator = " > "
)

// jestOutput is the subset of Jest's --json report the parser reads
type jestOutput struct {
	Success         bool             `json:"success"`
	NumTotalTests   int              `json:"numTotalTests"`
	NumPassedTests  int              `json:"numPassedTests"`
	NumFailedTests  int              `json:"numFailedTests"`
	NumPendingTests int              `json:"numPendingTests"`
	TestResults     []jestTestResult `json:"testResults"`
}

// jestTestResult is the report of one test file
type jestTestResult struct {
	Name             string                `json:"name"`
	Status           string                `json:"status"`
	StartTime        *float64              `json:"startTime"`
	EndTime          *float64              `json:"endTime"`
	AssertionResults []jestAssertionResult `json:"assertionResults"`
}

// jestAssertionResult is the report of one test case
type jestAssertionResult struct {
	AncestorTitles  []string      `json:"ancestorTitles"`
	Title           string        `json:"title"`
	Status          string        `json:"status"`
	FailureMessages []string      `json:"failureMessages"`
	Location        *jestLocation `json:"location"`
}

type jestLocation struct {
	Line   *int `json:"line"`
	Column *int `json:"column"`
}

// JestParser parses Jest JSON reports
type JestParser struct{}

// NewJestParser creates a new JestParser
func NewJestParser() *JestParser {
	return &JestParser{}
}

// Parse validates jsonText against the Jest report schema and maps it into TestResults.
// The summary counters are copied from the report root as-is: filtered-out tests are
// counted there but never listed per assertion.
func (p *JestParser) Parse(jsonText string, command string) (*domain.TestResults, error) {
	if err := validateReport(jsonText); err != nil {
		return nil, err
	}

	var report jestOutput
	if err := json.Unmarshal([]byte(jsonText), &report); err != nil {
		return nil, &ParseError{Kind: ErrSchemaMismatch, Message: err.Error()}
	}

	results := &domain.TestResults{
		Command: command,
		Success: report.Success,
		Summary: domain.Summary{
			Total:   report.NumTotalTests,
			Passed:  report.NumPassedTests,
			Failed:  report.NumFailedTests,
			Skipped: report.NumPendingTests,
		},
		Passes:   make([]domain.TestPass, 0),
		Failures: make([]domain.TestFailure, 0),
	}

	for _, testResult := range report.TestResults {
		for _, assertion := range testResult.AssertionResults {
			fullName := buildFullName(assertion.AncestorTitles, assertion.Title)

			switch assertion.Status {
			case statusPassed:
				results.Passes = append(results.Passes, domain.TestPass{
					TestName: assertion.Title,
					FullName: fullName,
					File:     testResult.Name,
				})
			case statusFailed:
				results.Failures = append(results.Failures, buildFailure(testResult.Name, assertion, fullName))
			}
		}
	}

	results.Summary.Duration = reportDuration(report.TestResults)

	return results, nil
}

func buildFailure(file string, assertion jestAssertionResult, fullName string) domain.TestFailure {
	message := strings.Join(assertion.FailureMessages, "\n")
	details := ExtractFailureDetails(message, file)

	line := details.Line
	if assertion.Location != nil && assertion.Location.Line != nil {
		reported := *assertion.Location.Line
		line = &reported
	}

	return domain.TestFailure{
		TestName:    assertion.Title,
		FullName:    fullName,
		File:        file,
		Line:        line,
		MatcherName: details.MatcherName,
		Expected:    details.Expected,
		Received:    details.Received,
		Message:     CleanMessage(message),
	}
}

// buildFullName joins the describe-block titles and the test title with " > "
func buildFullName(ancestors []string, title string) string {
	parts := make([]string, 0, len(ancestors)+1)
	parts = append(parts, ancestors...)
	parts = append(parts, title)
	return strings.Join(parts, fullNameSeparator)
}

// reportDuration sums endTime-startTime over files that carry both timestamps
func reportDuration(testResults []jestTestResult) int64 {
	var total float64
	for _, testResult := range testResults {
		if testResult.StartTime == nil || testResult.EndTime == nil {
			continue
		}
		if *testResult.StartTime == 0 || *testResult.EndTime == 0 {
			continue
		}
		total += *testResult.EndTime - *testResult.StartTime
	}
	return int64(math.Round(total))
}
