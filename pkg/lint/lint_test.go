package lint_test

import (
	"testing"

	"github.com/tak-dcxi/displaylint/pkg/core"
	"github.com/tak-dcxi/displaylint/pkg/lint"
	"github.com/tak-dcxi/displaylint/pkg/stylesheet"
)

// registerColorRule registers a fixable rule that flags `color: red`.
func registerColorRule(t *testing.T) lint.RuleDef {
	t.Helper()
	def := lint.RuleDef{
		ID:          "plugin/test-no-red",
		Name:        "test.no-red",
		Group:       "test",
		Description: "Disallow red",
		Severity:    core.SeverityError,
		Aliases:     []string{"plugin/test-red"},
		Fixable:     true,
		Check:       checkNoRed,
	}
	lint.Register(def)
	t.Cleanup(func() { lint.Unregister(def.ID) })
	return def
}

func checkNoRed(root *stylesheet.Root, ctx lint.RunContext) []lint.Diagnostic {
	var diags []lint.Diagnostic
	root.WalkDeclRefs("color", func(ref stylesheet.DeclRef) bool {
		d := ref.Decl()
		if d.Value != "red" {
			return true
		}
		if ctx.Fix {
			ref.Set(d.WithValue("crimson"))
			return true
		}
		diags = append(diags, lint.Diagnostic{
			Severity: ctx.Options.Severity,
			Message:  "no red",
			Pos:      d.Start(),
			EndPos:   d.End(),
		})
		return true
	})
	return diags
}
