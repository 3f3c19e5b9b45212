package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tak-dcxi/displaylint/internal/testutil"
	"github.com/tak-dcxi/displaylint/pkg/core"
	"github.com/tak-dcxi/displaylint/pkg/lint"
	"github.com/tak-dcxi/displaylint/pkg/stylesheet"
)

const redSheet = "a { color: red; }\nb { color: blue; }\nc { color: red !important; }\n"

func analyze(t *testing.T, cfg *lint.Config, src string) (*stylesheet.Root, lint.Result) {
	t.Helper()
	log := testutil.NewTestLogger(t)
	root, err := stylesheet.NewParser(log).Parse([]byte(src), "test.css")
	require.NoError(t, err)
	return root, lint.NewAnalyzer(cfg, lint.WithLogger(log)).Analyze(root)
}

func TestAnalyzer_Report(t *testing.T) {
	def := registerColorRule(t)

	root, res := analyze(t, lint.NewConfig().SetRule(def.ID, true), redSheet)

	require.Len(t, res.Diagnostics, 2)
	assert.False(t, res.Fixed)
	assert.True(t, res.Errored())
	assert.Equal(t, redSheet, root.String(), "report mode never rewrites")

	d := res.Diagnostics[0]
	assert.Equal(t, def.ID, d.RuleID)
	assert.Equal(t, def.Name, d.RuleName)
	assert.Equal(t, lint.KindViolation, d.Kind)
	assert.Equal(t, lint.BuildDocURL(def.ID), d.DocumentationURL)
	assert.Equal(t, 1, d.Pos.Line)
	assert.Equal(t, 3, res.Diagnostics[1].Pos.Line)
}

func TestAnalyzer_UnconfiguredRuleDoesNotRun(t *testing.T) {
	registerColorRule(t)

	_, res := analyze(t, lint.NewConfig(), redSheet)
	assert.Empty(t, res.Diagnostics)
}

func TestAnalyzer_Disabled(t *testing.T) {
	def := registerColorRule(t)

	root, res := analyze(t, lint.NewConfig().SetRule(def.ID, []any{false, map[string]any{"fix": true}}), redSheet)
	assert.Empty(t, res.Diagnostics)
	assert.False(t, res.Fixed)
	assert.Equal(t, redSheet, root.String())
}

func TestAnalyzer_Severity(t *testing.T) {
	def := registerColorRule(t)

	_, res := analyze(t, lint.NewConfig().SetRule(def.ID, []any{true, map[string]any{"severity": "warning"}}), redSheet)

	require.Len(t, res.Diagnostics, 2)
	for _, d := range res.Diagnostics {
		assert.Equal(t, core.SeverityWarning, d.Severity)
	}
	assert.False(t, res.Errored(), "warnings do not fail the run")
}

func TestAnalyzer_Fix(t *testing.T) {
	def := registerColorRule(t)

	tests := []struct {
		name    string
		setting any
		host    *bool
		fixed   bool
	}{
		{name: "rule fix", setting: []any{true, map[string]any{"fix": true}}, fixed: true},
		{name: "host fix", setting: true, host: ptr(true), fixed: true},
		{name: "host veto", setting: []any{true, map[string]any{"fix": true}}, host: ptr(false), fixed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := lint.NewConfig().SetRule(def.ID, tt.setting)
			cfg.Fix = tt.host

			root, res := analyze(t, cfg, redSheet)

			assert.Equal(t, tt.fixed, res.Fixed)
			if tt.fixed {
				assert.Empty(t, res.Diagnostics)
				assert.Equal(t, "a { color: crimson; }\nb { color: blue; }\nc { color: crimson !important; }\n", root.String())
			} else {
				assert.Len(t, res.Diagnostics, 2)
				assert.Equal(t, redSheet, root.String())
			}
		})
	}
}

func TestAnalyzer_InvalidOptions(t *testing.T) {
	def := registerColorRule(t)

	cfg := lint.NewConfig().SetRule(def.ID, []any{true, map[string]any{"severity": "critical", "fix": true}})
	root, res := analyze(t, cfg, redSheet)

	require.Len(t, res.Diagnostics, 1, "only the configuration problem is reported")
	d := res.Diagnostics[0]
	assert.Equal(t, lint.KindInvalidOption, d.Kind)
	assert.Equal(t, core.SeverityError, d.Severity)
	assert.Equal(t, `Invalid option value "critical" for rule "plugin/test-no-red"`, d.Message)
	assert.False(t, res.Fixed)
	assert.Equal(t, redSheet, root.String(), "invalid options never rewrite")

	require.Len(t, res.ConfigErrors, 1)
	cfgErr := res.ConfigErrors[0]
	assert.Equal(t, def.ID, cfgErr.RuleID)
	assert.Equal(t, []string{d.Message}, cfgErr.Problems)
}

func TestAnalyzer_InvalidOptionsDoNotAffectOtherRules(t *testing.T) {
	def := registerColorRule(t)
	other := lint.RuleDef{
		ID:       "plugin/test-all",
		Name:     "test.all",
		Severity: core.SeverityWarning,
		Check: func(root *stylesheet.Root, ctx lint.RunContext) []lint.Diagnostic {
			var diags []lint.Diagnostic
			root.WalkDecls("", func(d *stylesheet.Declaration) bool {
				diags = append(diags, lint.Diagnostic{Severity: ctx.Options.Severity, Message: d.Property, Pos: d.Start()})
				return true
			})
			return diags
		},
	}
	lint.Register(other)
	t.Cleanup(func() { lint.Unregister(other.ID) })

	cfg := lint.NewConfig().SetRule(def.ID, "yes").SetRule(other.ID, true)
	_, res := analyze(t, cfg, redSheet)

	require.Len(t, res.Diagnostics, 4)
	assert.Equal(t, lint.KindInvalidOption, res.Diagnostics[0].Kind)
	for _, d := range res.Diagnostics[1:] {
		assert.Equal(t, lint.KindViolation, d.Kind)
	}
}

func TestAnalyzer_NilRoot(t *testing.T) {
	res := lint.NewAnalyzer(nil).Analyze(nil)
	assert.Empty(t, res.Diagnostics)
	assert.Empty(t, res.ConfigErrors)
}
