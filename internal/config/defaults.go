package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultRunner is the package binary run through the package manager
	DefaultRunner = "jest"
	// DefaultOutputJSONFile is the default file name of the last-run record
	DefaultOutputJSONFile = "last-run.json"
	// DefaultOutputJSONDir is the default directory of the last-run record, relative to the project
	DefaultOutputJSONDir = ".jtp"
	// DefaultLogLevel is the default log level
	DefaultLogLevel = "info"
	// DefaultConfigName is the config file name looked up in the working directory (without extension)
	DefaultConfigName = ".jtp"
	// EnvPrefix is the prefix of environment variables overriding config keys
	EnvPrefix = "JTP"
)

// Config keys, shared by flags, environment variables and the config file
const (
	KeyProject    = "project"
	KeyRunner     = "runner"
	KeyOutputDir  = "output_dir"
	KeyOutputFile = "output_file"
	KeyTimeout    = "timeout"
	KeyEnvFile    = "env_file"
	KeyLogLevel   = "log_level"
	KeyIgnore     = "ignore"
)

// DefaultPathsToIgnore are the default directories to ignore when scanning for tests
var DefaultPathsToIgnore = []string{
	"node_modules",
	"coverage",
	"dist",
	"build",
	"out",
	"vendor",
}
