package lint

// Config controls which rules run and how.
//
// Only configured rules run. Rule IDs may be given by alias; they are stored
// under the canonical ID.
type Config struct {
	// Rules holds each configured rule's raw setting, keyed by rule ID
	Rules map[string]RuleSetting

	// Fix is the run-wide fix flag; nil when the host did not set it
	Fix *bool
}

// NewConfig creates an empty configuration with no rules enabled.
func NewConfig() *Config {
	return &Config{Rules: make(map[string]RuleSetting)}
}

// DefaultConfig enables every registered rule with its default options.
func DefaultConfig() *Config {
	c := NewConfig()
	for _, rule := range GetAllStylesheetRules() {
		c.Rules[rule.ID()] = RuleSetting{Primary: true}
	}
	return c
}

// SetRule sets a rule from its raw configuration value, e.g. true or
// []any{true, map[string]any{"severity": "warning"}}.
func (c *Config) SetRule(ruleID string, raw any) *Config {
	c.Rules[CanonicalRuleID(ruleID)] = ParseRuleSetting(raw)
	return c
}

// SetFix sets the run-wide fix flag.
func (c *Config) SetFix(fix bool) *Config {
	c.Fix = &fix
	return c
}

// Setting returns the raw setting for a rule.
func (c *Config) Setting(ruleID string) (RuleSetting, bool) {
	if c == nil {
		return RuleSetting{}, false
	}
	s, ok := c.Rules[CanonicalRuleID(ruleID)]
	return s, ok
}

// EffectiveFix combines a rule's fix option with the run-wide flag.
// An explicit run-wide false always wins; an explicit true turns fixing on.
func (c *Config) EffectiveFix(ruleFix bool) bool {
	if c == nil || c.Fix == nil {
		return ruleFix
	}
	return *c.Fix
}
