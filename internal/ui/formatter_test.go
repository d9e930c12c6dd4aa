package ui

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jtp/internal/config"
	"jtp/internal/discovery"
	"jtp/internal/domain"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func newTestFormatter(projectPath string) (*Formatter, *bytes.Buffer) {
	cfg := config.New()
	cfg.ProjectPath = projectPath
	var buf bytes.Buffer
	return NewFormatter(cfg, discovery.NewParser(), &buf), &buf
}

func intPtr(i int) *int { return &i }

func TestFormatter_PrintSummary_AllPassed(t *testing.T) {
	f, buf := newTestFormatter("/app")

	f.PrintSummary(&domain.TestResults{
		Command:  "npx jest --json",
		Success:  true,
		Summary:  domain.Summary{Total: 3, Passed: 2, Skipped: 1, Duration: 1250},
		Passes:   []domain.TestPass{},
		Failures: []domain.TestFailure{},
	})

	out := buf.String()
	assert.Contains(t, out, "Total Tests")
	assert.Contains(t, out, "1.25s")
	assert.Contains(t, out, "npx jest --json")
	assert.Contains(t, out, "✓ All tests passed!")
}

func TestFormatter_PrintSummary_FailureTree(t *testing.T) {
	f, buf := newTestFormatter("/app")

	f.PrintSummary(&domain.TestResults{
		Command: "npx jest --json",
		Summary: domain.Summary{Total: 3, Failed: 3},
		Failures: []domain.TestFailure{
			{FullName: "math > adds", File: "/app/src/math.test.ts", Line: intPtr(7)},
			{FullName: "math > divides", File: "/app/src/math.test.ts"},
			{FullName: "user > logs in", File: "/app/src/user/login.test.ts", Line: intPtr(3)},
		},
	})

	assert.Equal(t, `└── src
    ├── math.test.ts
    │   ├── math > adds :7
    │   └── math > divides
    └── user
        └── login.test.ts
            └── user > logs in :3
`, buf.String()[bytes.Index(buf.Bytes(), []byte("└── src")):])
	assert.Contains(t, buf.String(), "✗ 3 test(s) failed")
}

func TestFormatter_PrintRawOutput(t *testing.T) {
	f, buf := newTestFormatter("/app")

	f.PrintRawOutput(domain.RunResult{Stdout: "hello\n", Stderr: "jest: not found\n", ExitCode: 127})

	assert.Equal(t, "✗ Could not parse Jest output (exit code 127)\n\nSTDOUT:\nhello\n\nSTDERR:\njest: not found\n", buf.String())
}

func TestFormatter_PrintJSON(t *testing.T) {
	f, buf := newTestFormatter("/app")

	require.NoError(t, f.PrintJSON(map[string]int{"total": 1}))
	assert.Equal(t, "{\n  \"total\": 1\n}\n", buf.String())
}

func TestFormatter_PrintTestList(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "a.test.js")
	b := filepath.Join(root, "b.test.js")
	require.NoError(t, os.WriteFile(a, []byte("it('one', () => {});\nit('two', () => {});\n"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("// empty\n"), 0o644))

	output := &domain.TestResultsOutput{Results: &domain.TestResults{
		Failures: []domain.TestFailure{{File: b}},
	}}
	failed := FailedPaths(root, output)

	t.Run("files only", func(t *testing.T) {
		f, buf := newTestFormatter(root)
		require.NoError(t, f.PrintTestList([]string{a, b}, false, failed))
		assert.Equal(t, "Found 2 test file(s):\n\n├── a.test.js\n└── b.test.js [F]\n", buf.String())
	})

	t.Run("with test cases", func(t *testing.T) {
		f, buf := newTestFormatter(root)
		require.NoError(t, f.PrintTestList([]string{a, b}, true, nil))
		assert.Equal(t, "Found 2 test file(s) with test cases:\n\n"+
			"├── a.test.js\n│   ├── one\n│   └── two\n"+
			"└── b.test.js\n    └── (no test cases found)\n", buf.String())
	})

	t.Run("count", func(t *testing.T) {
		f, _ := newTestFormatter(root)
		count, err := f.CountTestCases([]string{a, b})
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})
}

func TestFailedPaths_Unparsed(t *testing.T) {
	assert.Empty(t, FailedPaths("/app", &domain.TestResultsOutput{}))
}
