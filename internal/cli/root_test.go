package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tak-dcxi/displaylint/internal/cli/commands"
	"github.com/tak-dcxi/displaylint/internal/cli/config"
	"github.com/tak-dcxi/displaylint/internal/cli/output"
	"github.com/tak-dcxi/displaylint/internal/cli/testutil"
	"github.com/tak-dcxi/displaylint/pkg/lint"
	"github.com/tak-dcxi/displaylint/pkg/lint/rules/display"
)

func setupRoot(t *testing.T, files map[string]string) string {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)
	t.Cleanup(lint.ResetDocsBaseURL)

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	}

	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(oldWd) })
	return dir
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := NewRootCmd()

	for _, name := range []string{"lint", "rules", "init", "version", "completion"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
	for _, flag := range []string{"config", "verbose", "output", "docs-base-url"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestRootCmd_LintWithConfigFile(t *testing.T) {
	setupRoot(t, map[string]string{
		"displaylint.yaml": `
output: json
docs_base_url: https://example.com/rules
rules:
  plugin/display-multi-keyword-syntax: [true, {severity: warning}]
`,
		"css/site.css": "a { display: inline-grid; }\n",
	})

	res := testutil.Execute(t, NewRootCmd(), "", "lint", "css")
	require.NoError(t, res.Err, "warnings do not fail the run")

	var out output.LintOutput
	require.NoError(t, json.Unmarshal([]byte(res.Stdout), &out))
	require.Len(t, out.Files, 1)
	d := out.Files[0].Diagnostics[0]
	assert.Equal(t, "warning", d.Severity)
	assert.Equal(t, "Use multi-keyword syntax `inline grid` instead of `inline-grid`.", d.Message)
	assert.Equal(t, display.MultiKeywordSyntax.URL, d.DocsURL, "a rule's own URL wins over the base URL")
	assert.Equal(t, "https://example.com/rules", lint.DocsBaseURL)
}

func TestRootCmd_FlagsOverrideConfig(t *testing.T) {
	dir := setupRoot(t, map[string]string{
		"displaylint.yaml": "output: markdown\nfix: false\n",
		"site.css":         "a { display: list-item; }\n",
	})

	res := testutil.Execute(t, NewRootCmd(), "", "lint", "--fix", "-o", "json", ".")
	require.NoError(t, res.Err)

	var out output.LintOutput
	require.NoError(t, json.Unmarshal([]byte(res.Stdout), &out))
	assert.Equal(t, 1, out.Summary.FilesFixed)

	data, err := os.ReadFile(filepath.Join(dir, "site.css"))
	require.NoError(t, err)
	assert.Equal(t, "a { display: block flow list-item; }\n", string(data))
}

func TestRootCmd_EnvOverridesConfig(t *testing.T) {
	setupRoot(t, map[string]string{
		"displaylint.yaml": "output: markdown\n",
		"site.css":         "a { display: table; }\n",
	})
	t.Setenv("DISPLAYLINT_OUTPUT", "json")

	res := testutil.Execute(t, NewRootCmd(), "", "lint", "site.css")
	require.ErrorIs(t, res.Err, commands.ErrLintIssues)

	var out output.LintOutput
	require.NoError(t, json.Unmarshal([]byte(res.Stdout), &out))
	assert.Equal(t, 1, out.Summary.Errors)
}

func TestRootCmd_InvalidConfig(t *testing.T) {
	setupRoot(t, map[string]string{
		"displaylint.yaml": "output: xml\n",
	})

	res := testutil.Execute(t, NewRootCmd(), "", "rules")
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), `invalid output "xml"`)
}

func TestRootCmd_Completion(t *testing.T) {
	setupRoot(t, map[string]string{"displaylint.yaml": "output: xml\n"})

	res := testutil.Execute(t, NewRootCmd(), "", "completion", "bash")
	require.NoError(t, res.Err, "completion skips config loading")
	assert.Contains(t, res.Stdout, "displaylint")
}
