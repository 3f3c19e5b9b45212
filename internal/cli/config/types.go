// Package config provides configuration management for the displaylint CLI.
package config

import (
	"sort"

	"github.com/tak-dcxi/displaylint/pkg/lint"
)

// Default configuration values.
const (
	DefaultOutput      = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultConcurrency = 0      // GOMAXPROCS
)

// ConfigFileNames are searched, in order, in each directory.
var ConfigFileNames = []string{"displaylint.yaml", "displaylint.yml"}

// Config holds all CLI configuration options.
type Config struct {
	// Rules maps rule IDs (or aliases) to `true | false | [bool, {severity, fix}]`.
	// When empty, every registered rule runs with its defaults.
	Rules map[string]any `koanf:"rules"`

	// Fix is the run-wide fix flag; nil when not set anywhere.
	Fix *bool `koanf:"fix"`

	Ignore      []string `koanf:"ignore"`
	Output      string   `koanf:"output"`
	Verbose     bool     `koanf:"verbose"`
	DocsBaseURL string   `koanf:"docs_base_url"`
	Concurrency int      `koanf:"concurrency"`

	// ProjectRoot is the directory holding the config file, or the CWD.
	ProjectRoot string `koanf:"-"`
}

// LintConfig builds the engine configuration.
// Rule keys are applied in sorted order so an alias never silently overrides
// the canonical ID it sorts before.
func (c *Config) LintConfig() *lint.Config {
	var lc *lint.Config
	if len(c.Rules) == 0 {
		lc = lint.DefaultConfig()
	} else {
		lc = lint.NewConfig()
		ids := make([]string, 0, len(c.Rules))
		for id := range c.Rules {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			lc.SetRule(id, c.Rules[id])
		}
	}
	if c.Fix != nil {
		lc.SetFix(*c.Fix)
	}
	return lc
}
