package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"jtp/internal/domain"
)

// ServerName is the implementation name announced to clients
const ServerName = "jtp"

// Tool names
const (
	ToolRunTests      = "run_jest_tests"
	ToolRunTestByName = "run_jest_test_by_name"
	ToolDebugTest     = "debug_jest_test"
	ToolDetectConfig  = "detect_jest_config"
)

const (
	unparsedOutputText = "Jest execution failed to produce parseable output.\n\nSTDOUT:\n%s\n\nSTDERR:\n%s"
	unparsedOutputErr  = "Jest execution failed. STDOUT: %s\nSTDERR: %s"
)

// TestRunner runs Jest for a tool call
type TestRunner interface {
	Run(ctx context.Context, opts domain.RunOptions) domain.RunResult
	Debug(ctx context.Context, opts domain.RunOptions) domain.RunResult
}

// ConfigDetector describes a project for the detect tool
type ConfigDetector interface {
	Detect(projectPath string) domain.ProjectConfig
}

// RunTestsInput is the input of run_jest_tests
type RunTestsInput struct {
	ProjectPath string `json:"projectPath" jsonschema:"Path to the project directory containing Jest tests"`
	TestPattern string `json:"testPattern,omitempty" jsonschema:"Optional file path or pattern to filter test files"`
}

// RunTestByNameInput is the input of run_jest_test_by_name
type RunTestByNameInput struct {
	ProjectPath     string `json:"projectPath" jsonschema:"Path to the project directory containing Jest tests"`
	TestNamePattern string `json:"testNamePattern" jsonschema:"Test name pattern to match (regex supported)"`
	TestPattern     string `json:"testPattern,omitempty" jsonschema:"Optional file path or pattern to filter test files"`
}

// DebugTestInput is the input of debug_jest_test
type DebugTestInput struct {
	ProjectPath     string `json:"projectPath" jsonschema:"Path to the project directory containing Jest tests"`
	TestPattern     string `json:"testPattern,omitempty" jsonschema:"Optional file path or pattern to filter test files"`
	TestNamePattern string `json:"testNamePattern,omitempty" jsonschema:"Optional test name pattern to match"`
}

// DetectConfigInput is the input of detect_jest_config
type DetectConfigInput struct {
	ProjectPath string `json:"projectPath" jsonschema:"Path to the project directory to analyze"`
}

// Server exposes the test runner as MCP tools
type Server struct {
	sdk      *mcp.Server
	runner   TestRunner
	detector ConfigDetector
	logger   *log.Logger
}

// New creates a Server with all tools registered
func New(runner TestRunner, detector ConfigDetector, logger *log.Logger, version string) *Server {
	s := &Server{
		sdk:      mcp.NewServer(&mcp.Implementation{Name: ServerName, Version: version}, nil),
		runner:   runner,
		detector: detector,
		logger:   logger,
	}
	s.registerTools()
	return s
}

// SDK returns the underlying MCP server
func (s *Server) SDK() *mcp.Server {
	return s.sdk
}

// Run serves MCP over stdin/stdout until ctx is done or the client disconnects
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("serving MCP on stdio", "name", ServerName)
	if err := s.sdk.Run(ctx, &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}

func (s *Server) registerTools() {
	mcp.AddTool(s.sdk, &mcp.Tool{
		Name:        ToolRunTests,
		Description: "Run Jest tests in a project and return structured results with pass/fail counts and failure details",
	}, s.runTests)

	mcp.AddTool(s.sdk, &mcp.Tool{
		Name:        ToolRunTestByName,
		Description: "Run Jest tests matching a specific test name pattern (uses Jest's -t flag)",
	}, s.runTestByName)

	mcp.AddTool(s.sdk, &mcp.Tool{
		Name:        ToolDebugTest,
		Description: "Run Jest tests in verbose mode and return raw output for debugging",
	}, s.debugTest)

	mcp.AddTool(s.sdk, &mcp.Tool{
		Name:        ToolDetectConfig,
		Description: "Detect Jest configuration, package manager, and monorepo structure in a project",
	}, s.detectConfig)
}

func (s *Server) runTests(ctx context.Context, _ *mcp.CallToolRequest, in RunTestsInput) (*mcp.CallToolResult, any, error) {
	s.logger.Info("tool call", "tool", ToolRunTests, "project", in.ProjectPath, "pattern", in.TestPattern)
	result := s.runner.Run(ctx, domain.RunOptions{
		ProjectPath: in.ProjectPath,
		TestPattern: in.TestPattern,
	})
	return runResponse(result)
}

func (s *Server) runTestByName(ctx context.Context, _ *mcp.CallToolRequest, in RunTestByNameInput) (*mcp.CallToolResult, any, error) {
	s.logger.Info("tool call", "tool", ToolRunTestByName, "project", in.ProjectPath, "name", in.TestNamePattern)
	result := s.runner.Run(ctx, domain.RunOptions{
		ProjectPath:     in.ProjectPath,
		TestPattern:     in.TestPattern,
		TestNamePattern: in.TestNamePattern,
	})
	return runResponse(result)
}

func (s *Server) debugTest(ctx context.Context, _ *mcp.CallToolRequest, in DebugTestInput) (*mcp.CallToolResult, any, error) {
	s.logger.Info("tool call", "tool", ToolDebugTest, "project", in.ProjectPath)
	result := s.runner.Debug(ctx, domain.RunOptions{
		ProjectPath:     in.ProjectPath,
		TestPattern:     in.TestPattern,
		TestNamePattern: in.TestNamePattern,
	})

	combined := result.Stdout + "\n" + result.Stderr
	return textResult(fmt.Sprintf("Exit code: %d\n\nOutput:\n%s", result.ExitCode, combined)),
		map[string]any{"exitCode": result.ExitCode, "output": combined}, nil
}

func (s *Server) detectConfig(_ context.Context, _ *mcp.CallToolRequest, in DetectConfigInput) (*mcp.CallToolResult, any, error) {
	s.logger.Info("tool call", "tool", ToolDetectConfig, "project", in.ProjectPath)
	cfg := s.detector.Detect(in.ProjectPath)

	text, err := indentJSON(cfg)
	if err != nil {
		return nil, nil, err
	}
	return textResult(text), map[string]any{"config": cfg}, nil
}

// runResponse renders a run: the results as JSON, or an error result carrying the raw output
func runResponse(result domain.RunResult) (*mcp.CallToolResult, any, error) {
	if result.Results == nil {
		res := textResult(fmt.Sprintf(unparsedOutputText, result.Stdout, result.Stderr))
		res.IsError = true
		return res, map[string]any{
			"results": nil,
			"error":   fmt.Sprintf(unparsedOutputErr, result.Stdout, result.Stderr),
		}, nil
	}

	text, err := indentJSON(result.Results)
	if err != nil {
		return nil, nil, err
	}
	return textResult(text), map[string]any{"results": result.Results}, nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func indentJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal tool output: %w", err)
	}
	return string(data), nil
}
