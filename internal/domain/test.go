package domain

// RunOptions describes a single Jest invocation requested by a caller
type RunOptions struct {
	ProjectPath     string   // Directory containing the project
	TestPattern     string   // Test file or path pattern (optional)
	TestNamePattern string   // Test name pattern passed with -t (optional)
	Verbose         bool     // Ask Jest for verbose output
	ExtraArgs       []string // Additional Jest arguments, appended last
}

// TestPass represents a passing test case
type TestPass struct {
	TestName string `json:"testName"`
	FullName string `json:"fullName"`
	File     string `json:"file"`
}
