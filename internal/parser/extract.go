package parser

import "strings"

// ExtractJSON returns the span from the first '{' to the last '}' of raw.
// Log lines, progress output and color codes around the report are dropped.
// Stray braces outside the report make the span wrong; the runner's --json
// mode prints a single top-level object, so the outermost span is used.
func ExtractJSON(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end <= start {
		return "", false
	}
	return raw[start : end+1], true
}

// ExtractFromStreams looks for the report in stdout first and falls back to stderr,
// since Jest writes it to either stream depending on version and configuration
func ExtractFromStreams(stdout, stderr string) (string, bool) {
	if jsonText, ok := ExtractJSON(stdout); ok {
		return jsonText, true
	}
	return ExtractJSON(stderr)
}
