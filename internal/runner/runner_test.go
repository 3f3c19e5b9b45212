package runner_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tak-dcxi/displaylint/internal/runner"
	"github.com/tak-dcxi/displaylint/internal/testutil"
	"github.com/tak-dcxi/displaylint/pkg/lint"
	"github.com/tak-dcxi/displaylint/pkg/lint/rules/display"
)

func fixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	testutil.WriteFiles(t, dir, map[string]string{
		"a.css":                   ".a { display: flex; }\n",
		"nested/b.css":            ".b { display: grid; }\n.c { display: inline; }\n",
		"nested/ok.css":           ".ok { display: block flex; }\n",
		"vendor/lib.css":          ".v { display: table; }\n",
		"node_modules/x/x.css":    ".x { display: flex; }\n",
		"notes.txt":               "display: flex;",
		"nested/deeper/c.min.css": ".m{display:ruby}",
	})
	return dir
}

func newRunner(t *testing.T, cfg *lint.Config, opts runner.Options) *runner.Runner {
	t.Helper()
	return runner.New(cfg, opts, testutil.NewTestLogger(t))
}

func reportConfig() *lint.Config {
	return lint.NewConfig().SetRule(display.RuleID, true)
}

func rel(t *testing.T, dir string, paths []string) []string {
	t.Helper()
	out := make([]string, len(paths))
	for i, p := range paths {
		r, err := filepath.Rel(dir, p)
		require.NoError(t, err)
		out[i] = filepath.ToSlash(r)
	}
	return out
}

func TestExpandPatterns(t *testing.T) {
	dir := fixture(t)

	tests := []struct {
		name     string
		patterns []string
		ignore   []string
		want     []string
	}{
		{
			name:     "directory",
			patterns: []string{dir},
			want:     []string{"a.css", "nested/b.css", "nested/deeper/c.min.css", "nested/ok.css", "vendor/lib.css"},
		},
		{
			name:     "glob",
			patterns: []string{filepath.Join(dir, "nested", "*.css")},
			want:     []string{"nested/b.css", "nested/ok.css"},
		},
		{
			name:     "recursive glob",
			patterns: []string{filepath.Join(dir, "**", "*.min.css")},
			want:     []string{"nested/deeper/c.min.css"},
		},
		{
			name:     "ignore",
			patterns: []string{dir},
			ignore:   []string{"**/vendor/**", "**/*.min.css"},
			want:     []string{"a.css", "nested/b.css", "nested/ok.css"},
		},
		{
			name:     "duplicates removed",
			patterns: []string{filepath.Join(dir, "a.css"), dir + "/./a.css"},
			want:     []string{"a.css"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, err := runner.ExpandPatterns(tt.patterns, tt.ignore)
			require.NoError(t, err)
			assert.Equal(t, tt.want, rel(t, dir, files))
		})
	}
}

func TestExpandPatterns_Errors(t *testing.T) {
	dir := fixture(t)

	_, err := runner.ExpandPatterns([]string{filepath.Join(dir, "*.scss")}, nil)
	assert.ErrorContains(t, err, "no stylesheets match")

	_, err = runner.ExpandPatterns([]string{dir}, []string{"[unclosed"})
	assert.ErrorContains(t, err, "invalid ignore pattern")
}

func TestRun_Report(t *testing.T) {
	dir := fixture(t)

	report, err := newRunner(t, reportConfig(), runner.Options{Patterns: []string{dir}, Concurrency: 2}).Run(context.Background())
	require.NoError(t, err)

	var paths []string
	for _, f := range report.Files {
		paths = append(paths, f.Path)
	}
	assert.Equal(t, []string{"a.css", "nested/b.css", "nested/deeper/c.min.css", "nested/ok.css", "vendor/lib.css"}, rel(t, dir, paths))

	errs, warns := report.Counts()
	assert.Equal(t, 5, errs)
	assert.Zero(t, warns)
	assert.True(t, report.Errored())
	assert.Zero(t, report.FixedCount())

	b := report.Files[1]
	require.Len(t, b.Diagnostics, 2)
	assert.Equal(t, 1, b.Diagnostics[0].Pos.Line)
	assert.Equal(t, 2, b.Diagnostics[1].Pos.Line)

	assert.Equal(t, ".a { display: flex; }\n", testutil.ReadFile(t, filepath.Join(dir, "a.css")), "report mode never writes")
}

func TestRun_Fix(t *testing.T) {
	dir := fixture(t)
	okPath := filepath.Join(dir, "nested", "ok.css")
	before, err := os.Stat(okPath)
	require.NoError(t, err)

	cfg := reportConfig().SetFix(true)
	report, err := newRunner(t, cfg, runner.Options{Patterns: []string{dir}}).Run(context.Background())
	require.NoError(t, err)

	assert.False(t, report.Errored())
	assert.Equal(t, 4, report.FixedCount())
	assert.Equal(t, ".b { display: block grid; }\n.c { display: inline flow; }\n", testutil.ReadFile(t, filepath.Join(dir, "nested", "b.css")))
	assert.Equal(t, ".m{display:inline ruby}", testutil.ReadFile(t, filepath.Join(dir, "nested", "deeper", "c.min.css")))

	after, err := os.Stat(okPath)
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime(), "unchanged files are not rewritten")

	for _, f := range report.Files {
		assert.Equal(t, f.Fixed, f.Written, f.Path)
	}
}

func TestRun_Stdin(t *testing.T) {
	tests := []struct {
		name  string
		cfg   *lint.Config
		echo  bool
		out   string
		diags int
	}{
		{name: "report", cfg: reportConfig(), out: "", diags: 1},
		{name: "report with echo", cfg: reportConfig(), echo: true, out: "a { display: flex }", diags: 1},
		{name: "fix", cfg: reportConfig().SetFix(true), out: "a { display: block flex }", diags: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout bytes.Buffer
			r := newRunner(t, tt.cfg, runner.Options{
				Patterns:  []string{runner.StdinPath},
				Stdin:     strings.NewReader("a { display: flex }"),
				Stdout:    &stdout,
				EchoStdin: tt.echo,
			})

			report, err := r.Run(context.Background())
			require.NoError(t, err)
			require.Len(t, report.Files, 1)
			assert.Equal(t, runner.StdinPath, report.Files[0].Path)
			assert.Len(t, report.Files[0].Diagnostics, tt.diags)
			assert.Equal(t, tt.out, stdout.String())
		})
	}
}

func TestLintFile_Missing(t *testing.T) {
	r := newRunner(t, reportConfig(), runner.Options{})

	_, err := r.LintFile(filepath.Join(t.TempDir(), "missing.css"))
	assert.ErrorContains(t, err, "missing.css")
}

func TestRun_Cancelled(t *testing.T) {
	dir := fixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := newRunner(t, reportConfig(), runner.Options{Patterns: []string{dir}}).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, report.Files)
}

func TestWatch(t *testing.T) {
	dir := fixture(t)
	target := filepath.Join(dir, "nested", "b.css")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	results := make(chan runner.FileResult, 16)
	done := make(chan error, 1)
	r := newRunner(t, reportConfig(), runner.Options{Patterns: []string{dir}})
	go func() {
		done <- r.Watch(ctx, func(res runner.FileResult) { results <- res })
	}()

	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(300 * time.Millisecond)
	defer tick.Stop()

	for {
		select {
		case res := <-results:
			assert.Equal(t, target, res.Path)
			assert.Len(t, res.Diagnostics, 1)
			cancel()
			require.NoError(t, <-done)
			return
		case <-tick.C:
			testutil.WriteFiles(t, dir, map[string]string{"nested/b.css": ".b { display: inline-grid; }\n"})
		case <-deadline:
			t.Fatal("no watch result")
		}
	}
}
