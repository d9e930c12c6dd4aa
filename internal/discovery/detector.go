package discovery

import (
	"github.com/charmbracelet/log"

	"jtp/internal/domain"
)

// Detector inspects a project directory and describes how Jest should be invoked in it
type Detector struct {
	logger *log.Logger
}

// NewDetector creates a new Detector
func NewDetector(logger *log.Logger) *Detector {
	return &Detector{logger: logger}
}

// Detect returns the package manager, Jest config file and workspace layout of projectPath.
// It never fails: unreadable or invalid files are logged and treated as absent.
func (d *Detector) Detect(projectPath string) domain.ProjectConfig {
	cfg := domain.ProjectConfig{
		ProjectPath:    projectPath,
		PackageManager: DetectPackageManager(projectPath),
		Workspaces:     []string{},
		Packages:       []string{},
	}

	configFile, found, err := FindJestConfig(projectPath)
	if err != nil {
		d.logger.Debug("ignoring package.json", "project", projectPath, "error", err)
	}
	if found {
		cfg.ConfigFile = &configFile
	}

	workspaces, err := DetectWorkspaces(projectPath)
	if err != nil {
		d.logger.Debug("ignoring workspace declaration", "project", projectPath, "error", err)
	}
	if len(workspaces) > 0 {
		cfg.Workspaces = workspaces
		cfg.IsMonorepo = true

		packages, err := ExpandWorkspaces(projectPath, workspaces)
		if err != nil {
			d.logger.Debug("expanding workspaces", "project", projectPath, "error", err)
		}
		if packages != nil {
			cfg.Packages = packages
		}
	}

	d.logger.Debug("detected project",
		"project", projectPath,
		"packageManager", cfg.PackageManager,
		"configFile", configFile,
		"monorepo", cfg.IsMonorepo,
		"packages", len(cfg.Packages))

	return cfg
}
