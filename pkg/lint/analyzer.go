package lint

import (
	"log/slog"
	"sort"

	"github.com/tak-dcxi/displaylint/pkg/core"
	"github.com/tak-dcxi/displaylint/pkg/stylesheet"
)

// Analyzer runs configured lint rules against parsed stylesheets.
type Analyzer struct {
	config *Config
	log    *slog.Logger
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithLogger sets the logger handed to rules.
func WithLogger(log *slog.Logger) AnalyzerOption {
	return func(a *Analyzer) {
		if log != nil {
			a.log = log
		}
	}
}

// NewAnalyzer creates a new analyzer. A nil config enables every registered rule.
func NewAnalyzer(config *Config, opts ...AnalyzerOption) *Analyzer {
	if config == nil {
		config = DefaultConfig()
	}
	a := &Analyzer{config: config, log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Result is the outcome of analyzing one stylesheet.
type Result struct {
	Source      string
	Diagnostics []Diagnostic
	Fixed       bool // the tree was rewritten in fix mode

	// ConfigErrors holds one entry per rule whose options failed validation.
	ConfigErrors []*ConfigurationError
}

// Errored reports whether any diagnostic has error severity.
func (r Result) Errored() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == core.SeverityError {
			return true
		}
	}
	return false
}


// Analyze runs every configured rule against root.
//
// Each rule is validated first; a rule with invalid options reports one
// invalid-option diagnostic per problem and does not run. Disabled rules are
// skipped. Violations are ordered by position.
func (a *Analyzer) Analyze(root *stylesheet.Root) Result {
	if root == nil {
		return Result{}
	}
	res := Result{Source: root.Source}

	var invalid, violations []Diagnostic
	for _, rule := range GetAllStylesheetRules() {
		setting, ok := a.config.Setting(rule.ID())
		if !ok {
			continue
		}

		opts, errs := rule.Validate(setting)
		if len(errs) > 0 {
			cfgErr := &ConfigurationError{RuleID: rule.ID()}
			for _, err := range errs {
				cfgErr.Problems = append(cfgErr.Problems, err.Error())
				invalid = append(invalid, Diagnostic{
					RuleID:           rule.ID(),
					RuleName:         rule.Name(),
					Kind:             KindInvalidOption,
					Severity:         core.SeverityError,
					Message:          err.Error(),
					DocumentationURL: rule.DocsURL(),
				})
			}
			res.ConfigErrors = append(res.ConfigErrors, cfgErr)
			a.log.Warn("invalid rule options",
				slog.String("rule", rule.ID()),
				slog.Int("problems", len(errs)))
			continue
		}
		if !opts.Enabled {
			continue
		}

		ctx := RunContext{
			Options: opts,
			Fix:     rule.Fixable() && a.config.EffectiveFix(opts.Fix),
			Logger:  a.log.With("rule", rule.ID()),
		}
		diags := rule.CheckStylesheet(root, ctx)
		for i := range diags {
			d := &diags[i]
			d.RuleID = rule.ID()
			d.RuleName = rule.Name()
			if d.Kind == "" {
				d.Kind = KindViolation
			}
			if d.DocumentationURL == "" {
				d.DocumentationURL = rule.DocsURL()
			}
		}
		violations = append(violations, diags...)
	}

	sort.SliceStable(violations, func(i, j int) bool {
		return violations[i].Pos.Offset < violations[j].Pos.Offset
	})
	res.Diagnostics = append(invalid, violations...)
	res.Fixed = root.Modified()
	return res
}
