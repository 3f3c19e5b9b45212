package lint

import (
	"log/slog"

	"github.com/tak-dcxi/displaylint/pkg/core"
	"github.com/tak-dcxi/displaylint/pkg/stylesheet"
)

// =============================================================================
// Rule Definitions
// =============================================================================

// RuleDef is a data-driven rule definition.
// Rules are stateless - all context comes via the Check function parameters.
type RuleDef struct {
	ID          string        // Unique identifier, e.g., "plugin/display-multi-keyword-syntax"
	Name        string        // Human-readable name, e.g., "display.multi-keyword"
	Group       string        // Category, e.g., "compatibility"
	Description string        // Human-readable description
	Severity    core.Severity // Default severity
	Check       CheckFunc     // The check function
	Aliases     []string      // Alternative IDs accepted in configuration
	Fixable     bool          // Whether the rule rewrites sources in fix mode
	URL         string        // Documentation link; empty means BuildDocURL(ID)

	// Documentation fields for richer rule documentation
	Rationale   string // Why this rule exists, what problems it prevents
	BadExample  string // Code showing the anti-pattern
	GoodExample string // Code showing the correct pattern
	Fix         string // How to fix violations (when not obvious)
}

// CheckFunc inspects a stylesheet and returns diagnostics.
// In fix mode it may rewrite declarations through DeclRef.Set instead.
type CheckFunc func(root *stylesheet.Root, ctx RunContext) []Diagnostic

// RunContext carries everything a rule needs for one run.
type RunContext struct {
	Options RuleOptions
	Fix     bool // effective fix mode for this rule
	Logger  *slog.Logger
}

// Log returns the run logger, or a discarding one when unset.
func (c RunContext) Log() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

// =============================================================================
// Options
// =============================================================================

// RuleSetting is a rule's raw configuration: the primary option and an
// optional secondary options object, as read from a config file.
type RuleSetting struct {
	Primary   any
	Secondary any // nil when absent
}

// ParseRuleSetting splits a raw configuration value into primary and
// secondary options. A two-element list is [primary, secondary]; any other
// value is the primary option on its own and is left for validation to judge.
func ParseRuleSetting(raw any) RuleSetting {
	if list, ok := raw.([]any); ok {
		switch len(list) {
		case 1:
			return RuleSetting{Primary: list[0]}
		case 2:
			return RuleSetting{Primary: list[0], Secondary: list[1]}
		}
	}
	return RuleSetting{Primary: raw}
}

// RuleOptions is the validated form of a RuleSetting.
type RuleOptions struct {
	Enabled  bool
	Severity core.Severity
	Fix      bool
}

// =============================================================================
// Diagnostics
// =============================================================================

// DiagnosticKind separates style findings from configuration problems.
type DiagnosticKind string

// Diagnostic kinds.
const (
	KindViolation     DiagnosticKind = "violation"
	KindInvalidOption DiagnosticKind = "invalid-option"
)

// Diagnostic represents a lint finding.
type Diagnostic struct {
	RuleID   string
	RuleName string
	Kind     DiagnosticKind
	Severity core.Severity
	Message  string
	Pos      stylesheet.Position
	EndPos   stylesheet.Position // Optional: end of the problematic range
	Fixes    []Fix               // Optional: suggested fixes

	DocumentationURL string
	AutoFixable      bool // true if Fixes can be auto-applied
}

// Fix represents a suggested code fix.
type Fix struct {
	Description string
	TextEdits   []TextEdit
}

// TextEdit represents a text replacement.
type TextEdit struct {
	Pos     stylesheet.Position
	EndPos  stylesheet.Position
	NewText string
}
