package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string
	Runner      string

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string

	// Execution settings
	Timeout time.Duration
	EnvFile string

	LogLevel string

	// Paths to ignore when scanning
	PathsToIgnore []string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags that are not config keys
type Flags struct {
	TestNamePattern string
	Verbose         bool
	JSON            bool
	OpenFaills      bool
	Filter          string
	TestCases       bool
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath:    DefaultProjectPath,
		Runner:         DefaultRunner,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		LogLevel:       DefaultLogLevel,
	}
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// SetDefaults registers the defaults and environment binding on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyProject, DefaultProjectPath)
	v.SetDefault(KeyRunner, DefaultRunner)
	v.SetDefault(KeyOutputDir, DefaultOutputJSONDir)
	v.SetDefault(KeyOutputFile, DefaultOutputJSONFile)
	v.SetDefault(KeyTimeout, time.Duration(0))
	v.SetDefault(KeyEnvFile, "")
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyIgnore, DefaultPathsToIgnore)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
}

// ReadConfigFile reads configFile, or .jtp.yaml from the working directory when configFile is empty.
// A missing default config file is not an error.
func ReadConfigFile(v *viper.Viper, configFile string) error {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// Load creates a config from the values resolved by v (flags, environment, config file, defaults)
func Load(v *viper.Viper) (*Config, error) {
	cfg := New()

	if project := v.GetString(KeyProject); project != "" {
		cfg.ProjectPath = project
	}
	if runner := v.GetString(KeyRunner); runner != "" {
		cfg.Runner = runner
	}
	if dir := v.GetString(KeyOutputDir); dir != "" {
		cfg.OutputJSONDir = dir
	}
	if file := v.GetString(KeyOutputFile); file != "" {
		cfg.OutputJSONFile = file
	}
	if level := v.GetString(KeyLogLevel); level != "" {
		cfg.LogLevel = level
	}
	if ignore := v.GetStringSlice(KeyIgnore); len(ignore) > 0 {
		cfg.PathsToIgnore = ignore
	}
	cfg.EnvFile = v.GetString(KeyEnvFile)

	cfg.Timeout = v.GetDuration(KeyTimeout)
	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("invalid %s %q: must not be negative", KeyTimeout, v.GetString(KeyTimeout))
	}

	return cfg, nil
}

// GetProjectPath returns the absolute project path
func (c *Config) GetProjectPath() string {
	if abs, err := filepath.Abs(c.ProjectPath); err == nil {
		return abs
	}
	return c.ProjectPath
}

// GetOutputPath returns the full path to the last-run record (under the project so run and faills use the same file).
// Resolves to an absolute path so run and faills always read/write the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetEnvFilePath returns the env file path, relative to the project unless absolute.
// Returns an empty string when no env file is configured.
func (c *Config) GetEnvFilePath() string {
	if c.EnvFile == "" {
		return ""
	}
	if filepath.IsAbs(c.EnvFile) {
		return c.EnvFile
	}
	return filepath.Join(c.GetProjectPath(), c.EnvFile)
}

// LoadEnv reads the env file as KEY=VALUE entries for the child process, sorted by key.
// The current process environment is left untouched.
func (c *Config) LoadEnv() ([]string, error) {
	path := c.GetEnvFilePath()
	if path == "" {
		return nil, nil
	}

	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("loading env file %s: %w", path, err)
	}

	env := make([]string, 0, len(values))
	for key, value := range values {
		env = append(env, key+"="+value)
	}
	sort.Strings(env)
	return env, nil
}
