package discovery

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ConfigFiles are the Jest configuration file names, in lookup order
var ConfigFiles = []string{
	"jest.config.js",
	"jest.config.ts",
	"jest.config.mjs",
	"jest.config.cjs",
	"jest.config.json",
}

// packageJSON is the subset of package.json the detector reads
type packageJSON struct {
	Jest       json.RawMessage `json:"jest"`
	Workspaces json.RawMessage `json:"workspaces"`
}

// FindJestConfig returns the path of the project's Jest configuration.
// A dedicated config file wins over a "jest" key in package.json.
// An unreadable package.json is reported as an error alongside "not found".
func FindJestConfig(projectPath string) (string, bool, error) {
	for _, name := range ConfigFiles {
		configPath := filepath.Join(projectPath, name)
		if fileExists(configPath) {
			return configPath, true, nil
		}
	}

	pkgPath := filepath.Join(projectPath, "package.json")
	pkg, err := readPackageJSON(pkgPath)
	if err != nil || pkg == nil {
		return "", false, err
	}
	if len(pkg.Jest) > 0 && string(pkg.Jest) != "null" {
		return pkgPath, true, nil
	}
	return "", false, nil
}

// readPackageJSON returns nil without error when the file does not exist
func readPackageJSON(path string) (*packageJSON, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &pkg, nil
}
