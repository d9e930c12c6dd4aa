package cli

import "jtp/internal/config"

// Flags holds command-line flags
type Flags struct {
	// Persistent flags, also settable through JTP_* variables and the config file
	ConfigFile string

	// Command flags
	TestNamePattern string
	Verbose         bool
	JSON            bool
	OpenFaills      bool
	Filter          string
	TestCases       bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		TestNamePattern: f.TestNamePattern,
		Verbose:         f.Verbose,
		JSON:            f.JSON,
		OpenFaills:      f.OpenFaills,
		Filter:          f.Filter,
		TestCases:       f.TestCases,
	}
}
