package lint

import (
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/tak-dcxi/displaylint/pkg/core"
)

// secondaryOptions are the keys every rule accepts in its secondary options.
type secondaryOptions struct {
	Severity *string `mapstructure:"severity"`
	Fix      *bool   `mapstructure:"fix"`
}

var secondaryKeys = []string{"severity", "fix"}

// OptionError is a single problem with a rule's configuration.
type OptionError struct {
	RuleID string
	Option string // secondary key; empty for the primary option
	Value  any
	Name   bool  // true when Option itself is unknown
	Err    error // decoding failure, if any
}

func (e *OptionError) Error() string {
	if e.Name {
		return fmt.Sprintf("Invalid option name %q for rule %q", e.Option, e.RuleID)
	}
	return fmt.Sprintf("Invalid option value %s for rule %q", formatOptionValue(e.Value), e.RuleID)
}

func (e *OptionError) Unwrap() error { return e.Err }

// ConfigurationError collects every problem found in one rule's configuration.
type ConfigurationError struct {
	RuleID   string
	Problems []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration for rule %q: %s", e.RuleID, strings.Join(e.Problems, "; "))
}

// ValidateOptions checks a rule setting and builds its options.
//
// The primary option must be exactly true or false. The secondary options, when
// present, must be an object whose keys are "severity" ("warning" or "error"),
// "fix" (bool). All problems are returned, not just the first.
func ValidateOptions(ruleID string, setting RuleSetting, defaultSeverity core.Severity) (RuleOptions, []error) {
	opts := RuleOptions{Severity: defaultSeverity}
	var errs []error

	enabled, ok := setting.Primary.(bool)
	if !ok {
		errs = append(errs, &OptionError{RuleID: ruleID, Value: setting.Primary})
	}
	opts.Enabled = enabled

	if setting.Secondary == nil {
		return opts, errs
	}

	raw, ok := stringKeyed(setting.Secondary)
	if !ok {
		return opts, append(errs, &OptionError{RuleID: ruleID, Value: setting.Secondary})
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := raw[key]
		switch {
		case slices.Contains(secondaryKeys, key):
			if err := decodeSecondary(key, value, &opts); err != nil {
				errs = append(errs, &OptionError{RuleID: ruleID, Option: key, Value: value, Err: err})
			}
		default:
			errs = append(errs, &OptionError{RuleID: ruleID, Option: key, Value: value, Name: true})
		}
	}
	return opts, errs
}

// decodeSecondary decodes one secondary key into opts.
func decodeSecondary(key string, value any, opts *RuleOptions) error {
	var out secondaryOptions
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(map[string]any{key: value}); err != nil {
		return err
	}

	if out.Severity != nil {
		sev, ok := core.ParseSeverity(*out.Severity)
		if !ok {
			return fmt.Errorf("unknown severity %q", *out.Severity)
		}
		opts.Severity = sev
	}
	if out.Fix != nil {
		opts.Fix = *out.Fix
	}
	return nil
}

// stringKeyed normalizes the map shapes config decoders produce.
func stringKeyed(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			s, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[s] = val
		}
		return out, true
	default:
		return nil, false
	}
}

func formatOptionValue(v any) string {
	if b, err := json.Marshal(v); err == nil {
		return string(b)
	}
	return fmt.Sprintf("%v", v)
}
