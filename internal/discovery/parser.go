package discovery

import (
	"fmt"
	"os"
	"regexp"
)

// testCallPattern matches it(...) / test(...) calls, including modifiers such as
// it.only, test.skip and test.concurrent, and captures a literal title in
// single quotes, double quotes or backticks
var testCallPattern = regexp.MustCompile(
	"(?m)(?:^|[^\\w.$])(?:it|test)(?:\\.(?:only|skip|todo|concurrent|failing))*\\s*\\(\\s*" +
		"(?:'((?:[^'\\\\\\n]|\\\\.)*)'|\"((?:[^\"\\\\\\n]|\\\\.)*)\"|`([^`]*)`)")

// Parser parses test files to extract test cases
type Parser struct{}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{}
}

// FindTestCases returns the titles of the test cases declared in a test file,
// in declaration order, without duplicates. Dynamically built titles are not listed.
func (p *Parser) FindTestCases(filePath string) ([]string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", filePath, err)
	}

	seen := make(map[string]bool)
	testCases := []string{}
	for _, match := range testCallPattern.FindAllStringSubmatch(string(content), -1) {
		title := firstNonEmpty(match[1:])
		if title == "" || seen[title] {
			continue
		}
		seen[title] = true
		testCases = append(testCases, title)
	}

	return testCases, nil
}

func firstNonEmpty(values []string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
