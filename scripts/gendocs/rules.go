package main

import (
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tak-dcxi/displaylint/pkg/lint"
	_ "github.com/tak-dcxi/displaylint/pkg/lint/rules"
)

// groupDescriptions provides human-readable descriptions for rule groups.
var groupDescriptions = map[string]string{
	"display": "Rules about the CSS display property.",
}

// ruleDocFile returns the page name BuildDocURL links to.
func ruleDocFile(ruleID string) string {
	return strings.ToLower(path.Base(ruleID)) + ".md"
}

// generateRuleDocs writes an index page and one page per rule.
func generateRuleDocs(outDir string) error {
	log.Printf("Generating rule docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	rules := lint.GetAllStylesheetRules()
	if err := generateRulesIndex(outDir, rules); err != nil {
		return err
	}
	log.Printf("  Generated index.md")

	for _, rule := range rules {
		w := NewMarkdownWriter()
		w.Frontmatter(rule.ID(), cleanDescription(rule.Description()))
		w.GeneratedMarker()
		writeRuleDoc(w, rule)

		name := ruleDocFile(rule.ID())
		if err := os.WriteFile(filepath.Join(outDir, name), w.Bytes(), 0600); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		log.Printf("  Generated %s", name)
	}
	return nil
}

// generateRulesIndex generates the rules overview page.
func generateRulesIndex(outDir string, rules []lint.StylesheetRule) error {
	w := NewMarkdownWriter()
	title := cases.Title(language.English)

	w.Frontmatter("Rules", "Lint rules for displaylint")
	w.GeneratedMarker()

	w.Header(1, "Rules")
	w.Paragraph(fmt.Sprintf("displaylint includes **%d rules**.", len(rules)))

	w.Header(2, "Severity Levels")
	w.Table(
		[]string{"Severity", "Description"},
		[][]string{
			{InlineCode("error"), "Fails the run"},
			{InlineCode("warning"), "Reported without failing the run"},
		},
	)

	w.Header(2, "Configuration")
	w.Paragraph("Rules are configured in `displaylint.yaml`:")
	w.CodeBlock("yaml", `rules:
  plugin/display-multi-keyword-syntax: true          # enable
  plugin/display-multi-keyword-syntax: false         # disable
  plugin/display-multi-keyword-syntax:               # with options
    - true
    - severity: warning
      fix: true`)

	var rows [][]string
	for _, rule := range rules {
		fixable := ""
		if rule.Fixable() {
			fixable = "yes"
		}
		rows = append(rows, []string{
			fmt.Sprintf("[%s](%s)", InlineCode(rule.ID()), ruleDocFile(rule.ID())),
			title.String(rule.Group()),
			InlineCode(rule.DefaultSeverity().String()),
			fixable,
			cleanDescription(rule.Description()),
		})
	}
	w.Header(2, "All Rules")
	w.Table([]string{"Rule", "Group", "Severity", "Fixable", "Description"}, rows)

	return os.WriteFile(filepath.Join(outDir, "index.md"), w.Bytes(), 0600)
}

// writeRuleDoc writes detailed documentation for a single rule.
func writeRuleDoc(w *MarkdownWriter, rule lint.StylesheetRule) {
	w.Header(1, rule.ID())

	w.Line(fmt.Sprintf("**Severity:** %s | **Fixable:** %t", InlineCode(rule.DefaultSeverity().String()), rule.Fixable()))
	w.Newline()

	if desc, ok := groupDescriptions[rule.Group()]; ok {
		w.Paragraph(cleanDescription(rule.Description()) + " " + desc)
	} else {
		w.Paragraph(cleanDescription(rule.Description()))
	}

	if aliases := rule.Aliases(); len(aliases) > 0 {
		codes := make([]string, len(aliases))
		for i, a := range aliases {
			codes[i] = InlineCode(a)
		}
		w.Paragraph("Also accepted as " + strings.Join(codes, ", ") + ".")
	}

	if rationale := rule.Rationale(); rationale != "" {
		w.Header(2, "Why This Matters")
		w.Paragraph(strings.TrimSpace(rationale))
	}

	if badExample := rule.BadExample(); badExample != "" {
		w.Header(2, "Bad")
		w.CodeBlock("css", badExample)
	}

	if goodExample := rule.GoodExample(); goodExample != "" {
		w.Header(2, "Good")
		w.CodeBlock("css", goodExample)
	}

	if fix := rule.Fix(); fix != "" {
		w.Header(2, "How to Fix")
		w.Paragraph(strings.TrimSpace(fix))
	}

	w.Header(2, "Options")
	rows := [][]string{
		{InlineCode("severity"), InlineCode(`"error" | "warning"`), "Severity of reported problems"},
		{InlineCode("fix"), InlineCode("bool"), "Rewrite instead of report when the run does not set fix"},
	}
	w.Table([]string{"Option", "Type", "Description"}, rows)
}
