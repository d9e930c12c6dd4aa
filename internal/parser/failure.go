package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/acarl005/stripansi"
)

var (
	// expect(received).toBe(expected)
	matcherPattern  = regexp.MustCompile(`expect\(.*?\)\.(to\w+)`)
	expectedPattern = regexp.MustCompile(`Expected:?\s*(.+)`)
	receivedPattern = regexp.MustCompile(`Received:?\s*(.+)`)
)

// FailureDetails holds the diagnostics pulled out of a failure message.
// A nil field means the corresponding pattern did not match.
type FailureDetails struct {
	Line        *int
	MatcherName *string
	Expected    *string
	Received    *string
}

// ExtractFailureDetails extracts the stack-trace line number and the matcher,
// expected and received values from a raw failure message. It never fails.
func ExtractFailureDetails(message, file string) FailureDetails {
	return FailureDetails{
		Line:        extractLineNumber(message, file),
		MatcherName: firstGroup(matcherPattern, message, false),
		Expected:    firstGroup(expectedPattern, message, true),
		Received:    firstGroup(receivedPattern, message, true),
	}
}

// extractLineNumber looks for "<file>:<line>:<column>" in a stack trace
func extractLineNumber(message, file string) *int {
	pattern, err := regexp.Compile(regexp.QuoteMeta(file) + `:(\d+):\d+`)
	if err != nil {
		return nil
	}
	match := pattern.FindStringSubmatch(message)
	if len(match) < 2 {
		return nil
	}
	line, err := strconv.Atoi(match[1])
	if err != nil {
		return nil
	}
	return &line
}

func firstGroup(pattern *regexp.Regexp, message string, trim bool) *string {
	match := pattern.FindStringSubmatch(message)
	if len(match) < 2 {
		return nil
	}
	value := match[1]
	if trim {
		value = strings.TrimSpace(value)
	}
	return &value
}

// CleanMessage removes ANSI escape sequences, normalizes CRLF line endings and trims outer whitespace
func CleanMessage(message string) string {
	message = stripansi.Strip(message)
	message = strings.ReplaceAll(message, "\r\n", "\n")
	return strings.TrimSpace(message)
}
