package domain

// PackageManager identifies the JavaScript package manager of a project
type PackageManager string

const (
	PackageManagerNpm  PackageManager = "npm"
	PackageManagerPnpm PackageManager = "pnpm"
	PackageManagerYarn PackageManager = "yarn"
	PackageManagerBun  PackageManager = "bun"
)

// ExecCommand returns the command used to execute a package binary such as jest
func (pm PackageManager) ExecCommand() string {
	switch pm {
	case PackageManagerPnpm:
		return "pnpm exec"
	case PackageManagerYarn:
		return "yarn"
	case PackageManagerBun:
		return "bunx"
	default:
		return "npx"
	}
}

// RunCommand returns the command used to run a package.json script
func (pm PackageManager) RunCommand() string {
	switch pm {
	case PackageManagerPnpm:
		return "pnpm run"
	case PackageManagerYarn:
		return "yarn"
	case PackageManagerBun:
		return "bun run"
	default:
		return "npm run"
	}
}

// ProjectConfig describes the detected layout of a project
type ProjectConfig struct {
	ProjectPath    string         `json:"projectPath"`
	PackageManager PackageManager `json:"packageManager"`
	ConfigFile     *string        `json:"configFile"`
	IsMonorepo     bool           `json:"isMonorepo"`
	Workspaces     []string       `json:"workspaces"`
	Packages       []string       `json:"packages"` // Workspace globs resolved to package directories
}
