package parser

import (
	"errors"
	"fmt"
	"strings"

	"jtp/internal/domain"
)

// Parser parses a runner's JSON report into normalized test results
type Parser interface {
	Parse(jsonText string, command string) (*domain.TestResults, error)
}

var (
	// ErrNoJSON is returned when neither output stream contains a JSON object span
	ErrNoJSON = errors.New("no JSON report found in runner output")
	// ErrMalformedJSON is returned when the extracted span is not valid JSON
	ErrMalformedJSON = errors.New("malformed JSON report")
	// ErrSchemaMismatch is returned when the JSON does not have the shape of a Jest report
	ErrSchemaMismatch = errors.New("JSON does not match the Jest report schema")
)

// ParseError provides actionable error information for parsing failures
type ParseError struct {
	Kind    error    // One of ErrMalformedJSON or ErrSchemaMismatch
	Message string   // What went wrong
	Fields  []string // Schema violations, if any
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("%v: %s", e.Kind, e.Message)
	if len(e.Fields) > 0 {
		msg += " (" + strings.Join(e.Fields, "; ") + ")"
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}
