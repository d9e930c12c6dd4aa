package discovery

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// pnpmWorkspace is the pnpm-workspace.yaml document
type pnpmWorkspace struct {
	Packages []string `yaml:"packages"`
}

// DetectWorkspaces returns the workspace globs declared in package.json
// ("workspaces" as an array or as {"packages": [...]}) or, failing that, in pnpm-workspace.yaml
func DetectWorkspaces(projectPath string) ([]string, error) {
	pkg, pkgErr := readPackageJSON(filepath.Join(projectPath, "package.json"))
	if pkg != nil && len(pkg.Workspaces) > 0 {
		if workspaces := decodeWorkspaces(pkg.Workspaces); workspaces != nil {
			return workspaces, nil
		}
	}

	workspaces, err := readPnpmWorkspace(filepath.Join(projectPath, "pnpm-workspace.yaml"))
	if err != nil {
		return nil, err
	}
	if workspaces != nil {
		return workspaces, nil
	}
	return []string{}, pkgErr
}

func decodeWorkspaces(raw json.RawMessage) []string {
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}

	var object struct {
		Packages []string `json:"packages"`
	}
	if err := json.Unmarshal(raw, &object); err == nil && object.Packages != nil {
		return object.Packages
	}
	return nil
}

func readPnpmWorkspace(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var ws pnpmWorkspace
	if err := yaml.Unmarshal(data, &ws); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(ws.Packages) == 0 {
		return nil, nil
	}

	packages := make([]string, 0, len(ws.Packages))
	for _, p := range ws.Packages {
		if p = strings.TrimSpace(p); p != "" {
			packages = append(packages, p)
		}
	}
	return packages, nil
}

// ExpandWorkspaces resolves workspace globs to the package directories they match,
// relative to projectPath. Only directories holding a package.json are kept;
// negated globs and node_modules are skipped.
func ExpandWorkspaces(projectPath string, workspaces []string) ([]string, error) {
	fsys := os.DirFS(projectPath)
	seen := make(map[string]bool)
	var packages []string
	var errs []string

	for _, ws := range workspaces {
		if strings.HasPrefix(ws, "!") {
			continue
		}
		pattern := strings.TrimSuffix(strings.TrimPrefix(ws, "./"), "/")
		if pattern == "" {
			continue
		}

		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", ws, err))
			continue
		}

		for _, match := range matches {
			if seen[match] || isInNodeModules(match) {
				continue
			}
			info, err := fs.Stat(fsys, match)
			if err != nil || !info.IsDir() {
				continue
			}
			if _, err := fs.Stat(fsys, match+"/package.json"); err != nil {
				continue
			}
			seen[match] = true
			packages = append(packages, match)
		}
	}

	sort.Strings(packages)
	if len(errs) > 0 {
		return packages, fmt.Errorf("invalid workspace pattern(s): %s", strings.Join(errs, ", "))
	}
	return packages, nil
}

func isInNodeModules(path string) bool {
	for _, part := range strings.Split(path, "/") {
		if part == "node_modules" {
			return true
		}
	}
	return false
}
