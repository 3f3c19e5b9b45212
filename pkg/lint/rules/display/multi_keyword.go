package display

import (
	"fmt"
	"log/slog"

	"github.com/tak-dcxi/displaylint/pkg/core"
	"github.com/tak-dcxi/displaylint/pkg/lint"
	"github.com/tak-dcxi/displaylint/pkg/stylesheet"
)

func init() {
	lint.Register(MultiKeywordSyntax)
}

// RuleID identifies the rule in configuration.
const RuleID = "plugin/display-multi-keyword-syntax"

// MultiKeywordSyntax flags legacy single-keyword display values.
var MultiKeywordSyntax = lint.RuleDef{
	ID:          RuleID,
	Name:        "display.multi-keyword-syntax",
	Group:       "display",
	Description: "Use the multi-keyword syntax for the display property.",
	Severity:    core.SeverityError,
	Check:       checkMultiKeywordSyntax,
	Aliases:     []string{"plugin/display-multi-keyword"},
	Fixable:     true,
	URL:         "https://github.com/tak-dcxi/stylelint-plugin-display-multi-keyword-syntax",

	Rationale: `CSS Display Level 3 splits display into an outer type (how the box
takes part in its parent's layout) and an inner type (how it lays out its
children). Writing both makes the intent explicit: "flex" is really "block flex".`,
	BadExample: `.card {
  display: flex;
}

.badge {
  display: inline-block;
}`,
	GoodExample: `.card {
  display: block flex;
}

.badge {
  display: inline flow-root;
}`,
	Fix: "Run with --fix, or set `fix: true` in the rule's options. Values such as none and contents are left alone.",
}

// Rejected formats the violation message.
func Rejected(canonical, legacy string) string {
	return fmt.Sprintf("Use multi-keyword syntax `%s` instead of `%s`.", canonical, legacy)
}

// Rewrite returns d with its legacy value replaced by the multi-keyword form.
// It returns nil when d has no legacy value.
func Rewrite(d *stylesheet.Declaration) *stylesheet.Declaration {
	canonical, ok := MultiKeyword(d.Value)
	if !ok {
		return nil
	}
	return d.WithValue(canonical)
}

func checkMultiKeywordSyntax(root *stylesheet.Root, ctx lint.RunContext) []lint.Diagnostic {
	var diags []lint.Diagnostic

	root.WalkDeclRefs("display", func(ref stylesheet.DeclRef) bool {
		d := ref.Decl()
		if d.Value == "" {
			return true
		}
		updated := Rewrite(d)
		if updated == nil {
			return true
		}

		if ctx.Fix {
			ref.Set(updated)
			ctx.Log().Debug("rewrote display value",
				slog.String("pos", d.Start().String()),
				slog.String("from", d.Value),
				slog.String("to", updated.Value))
			return true
		}

		valueStart, valueEnd := d.ValueRange()
		diags = append(diags, lint.Diagnostic{
			Severity: ctx.Options.Severity,
			Message:  Rejected(updated.Value, d.Value),
			Pos:      d.Start(),
			EndPos:   d.End(),
			Fixes: []lint.Fix{{
				Description: fmt.Sprintf("Replace with `%s`", updated.Value),
				TextEdits: []lint.TextEdit{{
					Pos:     valueStart,
					EndPos:  valueEnd,
					NewText: updated.Value,
				}},
			}},
			AutoFixable: true,
		})
		return true
	})

	return diags
}
