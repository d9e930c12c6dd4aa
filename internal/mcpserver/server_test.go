package mcpserver

import (
	"context"
	"encoding/json"
	"io"
	"sort"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jtp/internal/domain"
)

type fakeRunner struct {
	mu     sync.Mutex
	result domain.RunResult
	runs   []domain.RunOptions
	debugs []domain.RunOptions
}

func (f *fakeRunner) Run(_ context.Context, opts domain.RunOptions) domain.RunResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs = append(f.runs, opts)
	return f.result
}

func (f *fakeRunner) Debug(_ context.Context, opts domain.RunOptions) domain.RunResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.debugs = append(f.debugs, opts)
	return f.result
}

type fakeDetector struct{}

func (fakeDetector) Detect(projectPath string) domain.ProjectConfig {
	configFile := projectPath + "/jest.config.js"
	return domain.ProjectConfig{
		ProjectPath:    projectPath,
		PackageManager: domain.PackageManagerPnpm,
		ConfigFile:     &configFile,
		Workspaces:     []string{},
		Packages:       []string{},
	}
}

func connect(t *testing.T, runner TestRunner) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	server := New(runner, fakeDetector{}, log.New(io.Discard), "test")
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	serverSession, err := server.SDK().Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })

	return session
}

func callTool(t *testing.T, session *mcp.ClientSession, name string, args map[string]any) (*mcp.CallToolResult, string) {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected text content")
	return result, text.Text
}

func sampleResults() *domain.TestResults {
	return &domain.TestResults{
		Command:  "pnpm exec jest --json",
		Success:  true,
		Summary:  domain.Summary{Total: 1, Passed: 1},
		Passes:   []domain.TestPass{{TestName: "adds", FullName: "math > adds", File: "/app/math.test.js"}},
		Failures: []domain.TestFailure{},
	}
}

func TestServer_ListTools(t *testing.T) {
	session := connect(t, &fakeRunner{})

	res, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	names := make([]string, 0, len(res.Tools))
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Description)
		assert.NotNil(t, tool.InputSchema)
	}
	sort.Strings(names)
	assert.Equal(t, []string{ToolDebugTest, ToolDetectConfig, ToolRunTestByName, ToolRunTests}, names)
}

func TestServer_RunTests(t *testing.T) {
	runner := &fakeRunner{result: domain.RunResult{Results: sampleResults(), Stdout: "{}", ExitCode: 0}}
	session := connect(t, runner)

	result, text := callTool(t, session, ToolRunTests, map[string]any{"projectPath": "/app", "testPattern": "math"})

	assert.False(t, result.IsError)
	var decoded domain.TestResults
	require.NoError(t, json.Unmarshal([]byte(text), &decoded))
	assert.Equal(t, *sampleResults(), decoded)

	structured, ok := result.StructuredContent.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, structured, "results")

	require.Len(t, runner.runs, 1)
	assert.Equal(t, domain.RunOptions{ProjectPath: "/app", TestPattern: "math"}, runner.runs[0])
}

func TestServer_RunTestByName(t *testing.T) {
	runner := &fakeRunner{result: domain.RunResult{Results: sampleResults()}}
	session := connect(t, runner)

	result, _ := callTool(t, session, ToolRunTestByName, map[string]any{
		"projectPath":     "/app",
		"testNamePattern": "math adds",
	})

	assert.False(t, result.IsError)
	require.Len(t, runner.runs, 1)
	assert.Equal(t, domain.RunOptions{ProjectPath: "/app", TestNamePattern: "math adds"}, runner.runs[0])
}

func TestServer_RunTests_Unparsed(t *testing.T) {
	runner := &fakeRunner{result: domain.RunResult{Stdout: "garbage", Stderr: "jest: not found", ExitCode: 127}}
	session := connect(t, runner)

	result, text := callTool(t, session, ToolRunTests, map[string]any{"projectPath": "/app"})

	assert.True(t, result.IsError)
	assert.Equal(t, "Jest execution failed to produce parseable output.\n\nSTDOUT:\ngarbage\n\nSTDERR:\njest: not found", text)

	structured, ok := result.StructuredContent.(map[string]any)
	require.True(t, ok)
	assert.Nil(t, structured["results"])
	assert.Equal(t, "Jest execution failed. STDOUT: garbage\nSTDERR: jest: not found", structured["error"])
}

func TestServer_DebugTest(t *testing.T) {
	runner := &fakeRunner{result: domain.RunResult{Stdout: "PASS math.test.js", Stderr: "warn", ExitCode: 1}}
	session := connect(t, runner)

	result, text := callTool(t, session, ToolDebugTest, map[string]any{
		"projectPath":     "/app",
		"testPattern":     "math",
		"testNamePattern": "adds",
	})

	assert.False(t, result.IsError)
	assert.Equal(t, "Exit code: 1\n\nOutput:\nPASS math.test.js\nwarn", text)

	structured, ok := result.StructuredContent.(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 1, structured["exitCode"])
	assert.Equal(t, "PASS math.test.js\nwarn", structured["output"])

	require.Len(t, runner.debugs, 1)
	assert.Empty(t, runner.runs)
	assert.Equal(t, domain.RunOptions{ProjectPath: "/app", TestPattern: "math", TestNamePattern: "adds"}, runner.debugs[0])
}

func TestServer_DetectConfig(t *testing.T) {
	session := connect(t, &fakeRunner{})

	result, text := callTool(t, session, ToolDetectConfig, map[string]any{"projectPath": "/app"})

	assert.False(t, result.IsError)
	var cfg domain.ProjectConfig
	require.NoError(t, json.Unmarshal([]byte(text), &cfg))
	assert.Equal(t, domain.PackageManagerPnpm, cfg.PackageManager)
	require.NotNil(t, cfg.ConfigFile)
	assert.Equal(t, "/app/jest.config.js", *cfg.ConfigFile)
}
