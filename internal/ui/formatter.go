package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"

	"jtp/internal/config"
	"jtp/internal/discovery"
	"jtp/internal/domain"
)

var (
	cyan   = color.New(color.FgCyan)
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
	white  = color.New(color.FgWhite)
	gray   = color.New(color.FgHiBlack)
)

// Formatter formats and displays output
type Formatter struct {
	config *config.Config
	parser *discovery.Parser
	out    io.Writer
}

// NewFormatter creates a new Formatter writing to out
func NewFormatter(cfg *config.Config, parser *discovery.Parser, out io.Writer) *Formatter {
	return &Formatter{
		config: cfg,
		parser: parser,
		out:    out,
	}
}

const (
	tableTop    = "┌─────────────────────────────────┬─────────────────────────────┐"
	tableMiddle = "├─────────────────────────────────┼─────────────────────────────┤"
	tableBottom = "└─────────────────────────────────┴─────────────────────────────┘"
)

// PrintSummary displays the counters of a parsed run and a tree of its failures
func (f *Formatter) PrintSummary(results *domain.TestResults) {
	summary := results.Summary

	fmt.Fprintln(f.out)
	cyan.Fprintln(f.out, "╔═══════════════════════════════════════════════════════════════╗")
	cyan.Fprintln(f.out, "║                      Jest Test Results                        ║")
	cyan.Fprintln(f.out, "╚═══════════════════════════════════════════════════════════════╝")

	rows := []struct {
		label string
		value string
		color *color.Color
	}{
		{"Total Tests", fmt.Sprint(summary.Total), white},
		{"Passed", fmt.Sprint(summary.Passed), green},
		{"Failed", fmt.Sprint(summary.Failed), red},
		{"Skipped", fmt.Sprint(summary.Skipped), yellow},
		{"Duration", fmt.Sprintf("%.2fs", float64(summary.Duration)/1000), white},
	}

	fmt.Fprintln(f.out, tableTop)
	for i, row := range rows {
		fmt.Fprintf(f.out, "│ %-31s │ ", row.label)
		row.color.Fprintf(f.out, "%-27s", row.value)
		fmt.Fprintln(f.out, " │")
		if i < len(rows)-1 {
			fmt.Fprintln(f.out, tableMiddle)
		}
	}
	fmt.Fprintln(f.out, tableBottom)
	gray.Fprintf(f.out, "%s\n", results.Command)

	fmt.Fprintln(f.out)
	if results.Success && len(results.Failures) == 0 {
		green.Fprintln(f.out, "✓ All tests passed!")
		return
	}

	red.Fprintf(f.out, "✗ %d test(s) failed\n", len(results.Failures))
	if len(results.Failures) > 0 {
		fmt.Fprintln(f.out)
		f.printFailedTestsTree(results.Failures)
	}
}

// PrintRawOutput displays the raw output of a run whose report could not be recovered
func (f *Formatter) PrintRawOutput(result domain.RunResult) {
	red.Fprintf(f.out, "✗ Could not parse Jest output (exit code %d)\n", result.ExitCode)
	if result.Stdout != "" {
		fmt.Fprintln(f.out)
		yellow.Fprintln(f.out, "STDOUT:")
		fmt.Fprintln(f.out, strings.TrimRight(result.Stdout, "\n"))
	}
	if result.Stderr != "" {
		fmt.Fprintln(f.out)
		yellow.Fprintln(f.out, "STDERR:")
		fmt.Fprintln(f.out, strings.TrimRight(result.Stderr, "\n"))
	}
}

// PrintJSON writes v as indented JSON
func (f *Formatter) PrintJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(f.out, string(data))
	return err
}

// TreeNode represents a node in the file tree structure
type TreeNode struct {
	Name     string
	Children map[string]*TreeNode
	Failures []domain.TestFailure
	IsFile   bool
}

// printFailedTestsTree prints failures grouped by directory and file, relative to the project
func (f *Formatter) printFailedTestsTree(failures []domain.TestFailure) {
	root := &TreeNode{Children: make(map[string]*TreeNode)}

	for _, failure := range failures {
		rel := relativePath(f.config.GetProjectPath(), failure.File)
		parts := strings.Split(filepath.ToSlash(rel), "/")
		current := root

		for i, part := range parts {
			if part == "" {
				continue
			}
			if current.Children[part] == nil {
				current.Children[part] = &TreeNode{
					Name:     part,
					Children: make(map[string]*TreeNode),
					IsFile:   i == len(parts)-1,
				}
			}
			current = current.Children[part]
		}
		current.Failures = append(current.Failures, failure)
	}

	f.printTreeNode(root, "")
}

func (f *Formatter) printTreeNode(node *TreeNode, prefix string) {
	keys := make([]string, 0, len(node.Children))
	for key := range node.Children {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for i, key := range keys {
		child := node.Children[key]
		isLast := i == len(keys)-1 && len(node.Failures) == 0

		connector, childPrefix := "├── ", prefix+"│   "
		if isLast {
			connector, childPrefix = "└── ", prefix+"    "
		}

		fmt.Fprint(f.out, prefix+connector)
		if child.IsFile {
			yellow.Fprintln(f.out, child.Name)
		} else {
			cyan.Fprintln(f.out, child.Name)
		}
		f.printTreeNode(child, childPrefix)
	}

	for i, failure := range node.Failures {
		connector := "├── "
		if i == len(node.Failures)-1 {
			connector = "└── "
		}
		fmt.Fprint(f.out, prefix+connector)
		red.Fprint(f.out, failure.FullName)
		if failure.Line != nil {
			gray.Fprintf(f.out, " :%d", *failure.Line)
		}
		fmt.Fprintln(f.out)
	}
}

// relativePath returns path relative to projectPath when it lies inside it
func relativePath(projectPath, path string) string {
	if projectPath != "" {
		if rel, err := filepath.Rel(projectPath, path); err == nil && !strings.HasPrefix(rel, "..") {
			return rel
		}
	}
	return path
}

// normalizedPathForKey returns a path key for matching scanned files against recorded failures
func normalizedPathForKey(projectPath, path string) string {
	return strings.ToLower(filepath.ToSlash(relativePath(projectPath, path)))
}

// FailedPaths returns the keys of the files that had failures in a recorded run
func FailedPaths(projectPath string, output *domain.TestResultsOutput) map[string]struct{} {
	paths := make(map[string]struct{})
	for _, failure := range output.Failures() {
		paths[normalizedPathForKey(projectPath, failure.File)] = struct{}{}
	}
	return paths
}

// CountTestCases returns the total number of test cases across the given test files
func (f *Formatter) CountTestCases(tests []string) (int, error) {
	var total int
	for _, test := range tests {
		cases, err := f.parser.FindTestCases(test)
		if err != nil {
			return 0, err
		}
		total += len(cases)
	}
	return total, nil
}

// PrintTestList prints a list of test files, optionally with test cases.
// failedPaths is optional; if set, files in this set are marked with [F] in red (from last run).
func (f *Formatter) PrintTestList(tests []string, showTestCases bool, failedPaths map[string]struct{}) error {
	projectPath := f.config.GetProjectPath()
	if showTestCases {
		green.Fprintf(f.out, "Found %d test file(s) with test cases:\n\n", len(tests))
	} else {
		green.Fprintf(f.out, "Found %d test file(s):\n\n", len(tests))
	}

	for i, test := range tests {
		isLastFile := i == len(tests)-1
		relPath := relativePath(projectPath, test)

		failMarker := ""
		if _, ok := failedPaths[normalizedPathForKey(projectPath, test)]; ok {
			failMarker = " " + red.Sprint("[F]")
		}

		connector, childPrefix := "├── ", "│   "
		if isLastFile {
			connector, childPrefix = "└── ", "    "
		}
		fmt.Fprintf(f.out, "%s%s%s\n", connector, cyan.Sprint(relPath), failMarker)

		if !showTestCases {
			continue
		}

		testCases, err := f.parser.FindTestCases(test)
		if err != nil {
			red.Fprintf(f.out, "%s└── error reading test file: %v\n", childPrefix, err)
			continue
		}
		if len(testCases) == 0 {
			fmt.Fprintf(f.out, "%s└── %s\n", childPrefix, red.Sprint("(no test cases found)"))
		}
		for j, testCase := range testCases {
			caseConnector := "├── "
			if j == len(testCases)-1 {
				caseConnector = "└── "
			}
			fmt.Fprintf(f.out, "%s%s%s\n", childPrefix, caseConnector, yellow.Sprint(testCase))
		}
	}

	return nil
}
