package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// testExtensions are the source extensions Jest picks up by default
var testExtensions = map[string]bool{
	".js":  true,
	".jsx": true,
	".ts":  true,
	".tsx": true,
	".mjs": true,
	".cjs": true,
}

// Scanner scans for Jest test files in a directory
type Scanner struct {
	skipDirs map[string]bool
}

// NewScanner creates a new Scanner with the given directories to skip
func NewScanner(skipDirs []string) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{skipDirs: skipMap}
}

// Scan finds all test files in the given root directory
func (s *Scanner) Scan(root string) ([]string, error) {
	var testFiles []string

	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("project path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project path is not a directory: %s", root)
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			name := d.Name()
			if strings.HasPrefix(name, ".") || s.skipDirs[name] {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		if IsTestFile(rel) {
			testFiles = append(testFiles, path)
		}
		return nil
	})

	return testFiles, err
}

// IsTestFile reports whether path names a Jest test file:
// *.test.* or *.spec.* or any script under a __tests__ directory
func IsTestFile(path string) bool {
	name := filepath.Base(path)
	ext := filepath.Ext(name)
	if !testExtensions[ext] {
		return false
	}

	stem := strings.TrimSuffix(name, ext)
	if strings.HasSuffix(stem, ".test") || strings.HasSuffix(stem, ".spec") {
		return true
	}

	for _, part := range strings.Split(filepath.ToSlash(filepath.Dir(path)), "/") {
		if part == "__tests__" {
			return true
		}
	}
	return false
}
