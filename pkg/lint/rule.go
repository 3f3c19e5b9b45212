package lint

import (
	"github.com/tak-dcxi/displaylint/pkg/core"
	"github.com/tak-dcxi/displaylint/pkg/stylesheet"
)

// Rule is the base interface all lint rules implement.
type Rule interface {
	// ID returns the unique identifier, e.g., "plugin/display-multi-keyword-syntax"
	ID() string

	// Name returns the human-readable name, e.g., "display.multi-keyword"
	Name() string

	// Group returns the category, e.g., "compatibility"
	Group() string

	// Description returns a human-readable description
	Description() string

	// DefaultSeverity returns the severity used when the config names none
	DefaultSeverity() core.Severity

	// DocsURL returns the documentation link for the rule
	DocsURL() string

	// Documentation methods for richer rule documentation
	Rationale() string   // Why this rule exists, what problems it prevents
	BadExample() string  // Code showing the anti-pattern
	GoodExample() string // Code showing the correct pattern
	Fix() string         // How to fix violations (when not obvious)
}

// StylesheetRule checks a parsed stylesheet.
type StylesheetRule interface {
	Rule

	// Aliases returns alternative IDs accepted in configuration.
	Aliases() []string

	// Fixable reports whether the rule rewrites sources in fix mode.
	Fixable() bool

	// Validate turns a raw setting into options, collecting every problem.
	Validate(setting RuleSetting) (RuleOptions, []error)

	// CheckStylesheet analyzes root and returns diagnostics.
	CheckStylesheet(root *stylesheet.Root, ctx RunContext) []Diagnostic
}

// GetRuleInfo extracts metadata from a Rule for documentation/tooling.
func GetRuleInfo(r Rule) core.RuleInfo {
	info := core.RuleInfo{
		ID:              r.ID(),
		Name:            r.Name(),
		Group:           r.Group(),
		Description:     r.Description(),
		DefaultSeverity: r.DefaultSeverity(),
		DocsURL:         r.DocsURL(),
		Rationale:       r.Rationale(),
		BadExample:      r.BadExample(),
		GoodExample:     r.GoodExample(),
		Fix:             r.Fix(),
	}
	if sr, ok := r.(StylesheetRule); ok {
		info.Aliases = sr.Aliases()
		info.Fixable = sr.Fixable()
	}
	return info
}

// =============================================================================
// Wrapped RuleDef
// =============================================================================

type wrappedRuleDef struct {
	def RuleDef
}

// WrapRuleDef wraps a RuleDef to implement StylesheetRule.
func WrapRuleDef(def RuleDef) StylesheetRule {
	return &wrappedRuleDef{def: def}
}

func (w *wrappedRuleDef) ID() string                     { return w.def.ID }
func (w *wrappedRuleDef) Name() string                   { return w.def.Name }
func (w *wrappedRuleDef) Group() string                  { return w.def.Group }
func (w *wrappedRuleDef) Description() string            { return w.def.Description }
func (w *wrappedRuleDef) DefaultSeverity() core.Severity { return w.def.Severity }
func (w *wrappedRuleDef) Aliases() []string              { return w.def.Aliases }
func (w *wrappedRuleDef) Fixable() bool                  { return w.def.Fixable }

func (w *wrappedRuleDef) Rationale() string   { return w.def.Rationale }
func (w *wrappedRuleDef) BadExample() string  { return w.def.BadExample }
func (w *wrappedRuleDef) GoodExample() string { return w.def.GoodExample }
func (w *wrappedRuleDef) Fix() string         { return w.def.Fix }

func (w *wrappedRuleDef) DocsURL() string {
	if w.def.URL != "" {
		return w.def.URL
	}
	return BuildDocURL(w.def.ID)
}

func (w *wrappedRuleDef) Validate(setting RuleSetting) (RuleOptions, []error) {
	return ValidateOptions(w.def.ID, setting, w.def.Severity)
}

func (w *wrappedRuleDef) CheckStylesheet(root *stylesheet.Root, ctx RunContext) []Diagnostic {
	if w.def.Check == nil {
		return nil
	}
	return w.def.Check(root, ctx)
}
