package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/tak-dcxi/displaylint/internal/cli/output"
	"github.com/tak-dcxi/displaylint/pkg/lint"
)

// Validate checks the configuration for values no command can use.
// Rule options themselves are validated per rule when linting, so one bad
// rule setting never hides the others.
func (c *Config) Validate() error {
	var errs []error

	if c.Output != "" && !slices.Contains(output.Modes, c.Output) {
		errs = append(errs, fmt.Errorf("invalid output %q (want one of %v)", c.Output, output.Modes))
	}
	if c.Concurrency < 0 {
		errs = append(errs, fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency))
	}
	for _, ig := range c.Ignore {
		if !doublestar.ValidatePattern(filepath.ToSlash(ig)) {
			errs = append(errs, fmt.Errorf("invalid ignore pattern %q", ig))
		}
	}

	ids := make([]string, 0, len(c.Rules))
	for id := range c.Rules {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if _, ok := lint.GetRuleByID(id); !ok {
			errs = append(errs, fmt.Errorf("unknown rule %q", id))
		}
	}

	return errors.Join(errs...)
}
