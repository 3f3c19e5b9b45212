// Package lint provides the stylesheet linting framework.
//
// # Rule Registration
//
// Rules are registered via init() functions when their packages are imported:
//
//	import _ "github.com/tak-dcxi/displaylint/pkg/lint/rules"
//
// # Using the Registry
//
// Query all registered rules:
//
//	rules := lint.AllRules()
//	rule, ok := lint.GetRuleByID("plugin/display-multi-keyword-syntax")
//	group := lint.GetRulesByGroup("display")
//
// GetRuleByID also accepts aliases, e.g. "plugin/display-multi-keyword".
//
// # Configuration
//
// A rule runs only when configured. Settings take the stylelint shape
// `true | false | [bool, {severity, fix}]`:
//
//	config := lint.NewConfig()
//	config.SetRule("plugin/display-multi-keyword-syntax", []any{
//		true, map[string]any{"severity": "warning", "fix": true},
//	})
//	config.SetFix(false) // run-wide; an explicit false disables fixing
//
// Options are validated before a rule runs. Every problem becomes an
// invalid-option diagnostic and the rule is skipped for that run; other rules
// are unaffected.
//
// # Running
//
//	root, err := stylesheet.Parse(src, "a.css")
//	res := lint.NewAnalyzer(config).Analyze(root)
//	if res.Fixed {
//		os.WriteFile("a.css", root.Bytes(), 0o644)
//	}
//
// # Creating Custom Rules
//
//	var MyRule = lint.RuleDef{
//		ID:          "plugin/my-rule",
//		Name:        "my.rule",
//		Group:       "custom",
//		Description: "My custom rule description",
//		Severity:    core.SeverityWarning,
//		Check:       checkMyRule,
//	}
//
//	func init() {
//		lint.Register(MyRule)
//	}
package lint
