package discovery

import (
	"os"
	"path/filepath"

	"jtp/internal/domain"
)

// lockfile maps a lockfile name to the package manager that writes it
type lockfile struct {
	filename string
	manager  domain.PackageManager
}

// lockfiles are checked in order; the first one found wins
var lockfiles = []lockfile{
	{filename: "pnpm-lock.yaml", manager: domain.PackageManagerPnpm},
	{filename: "yarn.lock", manager: domain.PackageManagerYarn},
	{filename: "bun.lockb", manager: domain.PackageManagerBun},
	{filename: "bun.lock", manager: domain.PackageManagerBun},
	{filename: "package-lock.json", manager: domain.PackageManagerNpm},
}

// DetectPackageManager detects the package manager of a project from its lockfile.
// Returns npm when no lockfile is found.
func DetectPackageManager(projectPath string) domain.PackageManager {
	for _, lf := range lockfiles {
		if fileExists(filepath.Join(projectPath, lf.filename)) {
			return lf.manager
		}
	}
	return domain.PackageManagerNpm
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
