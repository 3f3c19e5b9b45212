package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tak-dcxi/displaylint/internal/cli/config"
	"github.com/tak-dcxi/displaylint/internal/cli/output"
	"github.com/tak-dcxi/displaylint/internal/runner"
	"github.com/tak-dcxi/displaylint/pkg/core"
	"github.com/tak-dcxi/displaylint/pkg/lint"
	_ "github.com/tak-dcxi/displaylint/pkg/lint/rules" // register rules
)

// ErrLintIssues is returned when any error-severity diagnostic was reported.
var ErrLintIssues = errors.New("lint issues found")

// LintOptions holds options for the lint command.
type LintOptions struct {
	Fix         bool
	Format      string   // Output format: text, markdown, json
	Quiet       bool     // Only report errors
	Watch       bool     // Re-lint on change
	Ignore      []string // Extra ignore globs
	Concurrency int
}

// NewLintCommand creates the lint command.
func NewLintCommand() *cobra.Command {
	opts := &LintOptions{}
	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Check stylesheets for legacy display values",
		Long: `Check CSS for single-keyword display values such as "inline-block"
and report the multi-keyword form ("inline flow-root") to use instead.

Paths may be files, directories or globs ("src/**/*.css"). Directories are
searched for *.css files. Use "-" to read a stylesheet from stdin.

With --fix, legacy values are rewritten in place. When reading stdin the
result is written to stdout and diagnostics go to stderr.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Lint the current directory
  displaylint lint

  # Lint and fix a tree of stylesheets
  displaylint lint --fix src/styles

  # Fix a stylesheet from stdin
  cat main.css | displaylint lint --fix - > main.fixed.css

  # Output as JSON
  displaylint lint --format json

  # Re-lint whenever a stylesheet changes
  displaylint lint --watch src`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Fix, "fix", false, "Rewrite legacy values in place")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Only report errors")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Watch for changes and re-lint")
	cmd.Flags().StringSliceVar(&opts.Ignore, "ignore", nil, "Glob patterns to skip")
	cmd.Flags().IntVarP(&opts.Concurrency, "concurrency", "j", 0, "Files linted at once (0 = GOMAXPROCS)")

	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "markdown", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runLint(cmd *cobra.Command, args []string, opts *LintOptions) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := *cmdCtx.Cfg
	applyLintFlags(cmd, &cfg, opts)

	patterns := args
	if len(patterns) == 0 {
		patterns = []string{"."}
	}
	useStdin := false
	for _, p := range patterns {
		if p == runner.StdinPath {
			useStdin = true
		}
	}

	// stdout carries the stylesheet when reading stdin
	out := cmd.OutOrStdout()
	if useStdin {
		out = cmd.ErrOrStderr()
	}
	r := output.NewRenderer(out, cmd.ErrOrStderr(), output.Mode(cfg.Output))

	lintCfg := cfg.LintConfig()
	run := runner.New(lintCfg, runner.Options{
		Patterns:    patterns,
		Ignore:      cfg.Ignore,
		Concurrency: cfg.Concurrency,
		Stdin:       cmd.InOrStdin(),
		Stdout:      cmd.OutOrStdout(),
		EchoStdin:   cfg.Fix != nil && *cfg.Fix,
	}, cmdCtx.Logger)

	report, err := run.Run(cmd.Context())
	if report != nil {
		renderLintResults(r, report, opts.Quiet)
	}
	if err != nil {
		return err
	}

	if opts.Watch && !useStdin {
		r.Warning("Watching for changes (Ctrl+C to stop)")
		return run.Watch(cmd.Context(), func(res runner.FileResult) {
			renderLintResults(r, &runner.Report{Files: []runner.FileResult{res}}, opts.Quiet)
		})
	}

	if report.Errored() {
		return ErrLintIssues
	}
	return nil
}

// applyLintFlags layers explicitly set lint flags over the loaded config.
func applyLintFlags(cmd *cobra.Command, cfg *config.Config, opts *LintOptions) {
	flags := cmd.Flags()
	if flags.Changed("fix") {
		fix := opts.Fix
		cfg.Fix = &fix
	}
	if flags.Changed("format") {
		cfg.Output = opts.Format
	}
	if flags.Changed("ignore") {
		cfg.Ignore = opts.Ignore
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency = opts.Concurrency
	}
}

// filterQuiet drops warnings, keeping invalid-option diagnostics.
func filterQuiet(diags []lint.Diagnostic) []lint.Diagnostic {
	var kept []lint.Diagnostic
	for _, d := range diags {
		if d.Severity == core.SeverityError {
			kept = append(kept, d)
		}
	}
	return kept
}

// buildLintOutput converts a report into its JSON shape.
func buildLintOutput(report *runner.Report, quiet bool) output.LintOutput {
	out := output.LintOutput{
		Summary: output.LintSummary{
			FilesLinted: len(report.Files),
			FilesFixed:  report.FixedCount(),
		},
		Files: []output.LintFileResult{},
	}

	for _, f := range report.Files {
		diags := f.Diagnostics
		if quiet {
			diags = filterQuiet(diags)
		}
		if len(diags) == 0 && !f.Fixed {
			continue
		}

		fr := output.LintFileResult{Path: f.Path, Fixed: f.Fixed}
		for _, d := range diags {
			ld := output.LintDiagnostic{
				RuleID:    d.RuleID,
				Kind:      string(d.Kind),
				Severity:  d.Severity.String(),
				Message:   d.Message,
				Line:      d.Pos.Line,
				Column:    d.Pos.Column,
				EndLine:   d.EndPos.Line,
				EndColumn: d.EndPos.Column,
				DocsURL:   d.DocumentationURL,
			}
			if len(d.Fixes) > 0 && len(d.Fixes[0].TextEdits) > 0 {
				edit := d.Fixes[0].TextEdits[0]
				ld.Fix = &output.LintEdit{
					Line:      edit.Pos.Line,
					Column:    edit.Pos.Column,
					EndLine:   edit.EndPos.Line,
					EndColumn: edit.EndPos.Column,
					Text:      edit.NewText,
				}
			}
			fr.Diagnostics = append(fr.Diagnostics, ld)

			out.Summary.TotalIssues++
			if d.Severity == core.SeverityError {
				out.Summary.Errors++
			} else {
				out.Summary.Warnings++
			}
		}
		out.Files = append(out.Files, fr)
	}
	return out
}

func renderLintResults(r *output.Renderer, report *runner.Report, quiet bool) {
	result := buildLintOutput(report, quiet)

	if r.EffectiveMode() == output.ModeJSON {
		_ = r.JSON(result)
		return
	}
	markdown := r.EffectiveMode() == output.ModeMarkdown
	styles := r.Styles()

	for _, f := range result.Files {
		path := f.Path
		if path == runner.StdinPath {
			path = "<stdin>"
		}
		if markdown {
			r.Printf("### %s\n\n", path)
		} else {
			r.Println(styles.FilePath.Render(path))
		}
		if f.Fixed && len(f.Diagnostics) == 0 {
			r.Printf("  %s\n", styles.Success.Render("fixed"))
		}
		for _, d := range f.Diagnostics {
			loc := fmt.Sprintf("%d:%d", d.Line, d.Column)
			if d.Line == 0 {
				loc = "-"
			}
			if markdown {
				r.Printf("- `%s` **%s** %s (`%s`)\n", loc, d.Severity, d.Message, d.RuleID)
				continue
			}
			r.Printf("  %s  %s  %s  %s\n",
				styles.Muted.Render(fmt.Sprintf("%-7s", loc)),
				severityStyle(r, d.Severity),
				d.Message,
				styles.Muted.Render(d.RuleID),
			)
		}
		r.Println("")
	}

	s := result.Summary
	if s.TotalIssues == 0 {
		switch {
		case s.FilesFixed > 0:
			r.Success(fmt.Sprintf("Fixed %d of %d files", s.FilesFixed, s.FilesLinted))
		default:
			r.Success(fmt.Sprintf("No lint issues found in %d files", s.FilesLinted))
		}
		return
	}

	parts := []string{plural(s.TotalIssues, "issue")}
	if s.Errors > 0 {
		parts = append(parts, plural(s.Errors, "error"))
	}
	if s.Warnings > 0 {
		parts = append(parts, plural(s.Warnings, "warning"))
	}
	summary := fmt.Sprintf("Summary: %s in %d files", strings.Join(parts, ", "), s.FilesLinted)
	if s.FilesFixed > 0 {
		summary += fmt.Sprintf(" (%d fixed)", s.FilesFixed)
	}
	r.Println(summary)
}

func severityStyle(r *output.Renderer, sev string) string {
	switch sev {
	case core.SeverityError.String():
		return r.Styles().Error.Render("error  ")
	case core.SeverityWarning.String():
		return r.Styles().Warning.Render("warning")
	default:
		return r.Styles().Muted.Render(fmt.Sprintf("%-7s", sev))
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
