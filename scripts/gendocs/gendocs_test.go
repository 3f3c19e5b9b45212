package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tak-dcxi/displaylint/pkg/lint"
)

func TestGenerateRuleDocs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, generateRuleDocs(dir))

	index, err := os.ReadFile(filepath.Join(dir, "index.md"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "[`plugin/display-multi-keyword-syntax`](display-multi-keyword-syntax.md)")

	page, err := os.ReadFile(filepath.Join(dir, "display-multi-keyword-syntax.md"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "# plugin/display-multi-keyword-syntax")
	assert.Contains(t, string(page), "`plugin/display-multi-keyword`")
	assert.Contains(t, string(page), "```css")
	assert.Equal(t, 0, strings.Count(string(page), "```")%2)
}

func TestRuleDocFileMatchesDocURL(t *testing.T) {
	for _, rule := range lint.GetAllStylesheetRules() {
		assert.True(t, strings.HasSuffix(lint.BuildDocURL(rule.ID()), "/"+ruleDocFile(rule.ID())), rule.ID())
	}
}

func TestGenerateCLIDocs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, generateCLIDocs(dir))

	for _, name := range []string{"index.md", "lint.md", "rules.md", "init.md", "version.md"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}

	page, err := os.ReadFile(filepath.Join(dir, "lint.md"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "displaylint lint [paths...]")
	assert.Contains(t, string(page), "| `--fix` | bool |")
	assert.Contains(t, string(page), "`-f, --format`")

	index, err := os.ReadFile(filepath.Join(dir, "index.md"))
	require.NoError(t, err)
	for _, want := range []string{
		"`-o, --output`",
		"| `docs_base_url` | `DISPLAYLINT_DOCS_BASE_URL` |",
		"`plugin/display-multi-keyword` for `plugin/display-multi-keyword-syntax`",
		"| `--fix=false` | `true` | report |",
		"| (absent) | `true` | rewrite |",
		"displaylint lint --fix -",
	} {
		assert.Contains(t, string(index), want)
	}
	assert.NotContains(t, string(index), "ProjectRoot")
}

func TestConfigKeys(t *testing.T) {
	assert.Equal(t,
		[]string{"rules", "fix", "ignore", "output", "verbose", "docs_base_url", "concurrency"},
		configKeys())
	for _, key := range configKeys() {
		assert.Contains(t, configKeyDocs, key)
	}
}

func TestTable_EscapesPipes(t *testing.T) {
	w := NewMarkdownWriter()
	w.Table([]string{"A"}, [][]string{{"a | b"}})
	assert.Equal(t, "| A |\n| --- |\n| a \\| b |\n\n", string(w.Bytes()))
}

func TestCleanExample(t *testing.T) {
	assert.Equal(t, "# one\nrun\n  nested", cleanExample("  # one\n  run\n    nested\n"))
}
