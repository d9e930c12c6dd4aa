package domain

// TestFailure represents a failed test case with the diagnostics extracted from its failure messages.
// Line, MatcherName, Expected and Received are nil when they could not be determined.
type TestFailure struct {
	TestName    string  `json:"testName"`
	FullName    string  `json:"fullName"`
	File        string  `json:"file"`
	Line        *int    `json:"line"`
	MatcherName *string `json:"matcherName"`
	Expected    *string `json:"expected"`
	Received    *string `json:"received"`
	Message     string  `json:"message"`
}
