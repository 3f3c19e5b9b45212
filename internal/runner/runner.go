package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"sync"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/tak-dcxi/displaylint/pkg/core"
	"github.com/tak-dcxi/displaylint/pkg/lint"
	"github.com/tak-dcxi/displaylint/pkg/stylesheet"
)

// Options configures a Runner.
type Options struct {
	// Patterns are files, directories, doublestar globs or StdinPath.
	Patterns []string

	// Ignore globs are matched against slash-separated paths.
	Ignore []string

	// Concurrency bounds the files processed at once; <= 0 means GOMAXPROCS.
	Concurrency int

	// Stdin and Stdout back StdinPath. Nil means os.Stdin / os.Stdout.
	Stdin  io.Reader
	Stdout io.Writer

	// EchoStdin writes the stdin stylesheet to Stdout even when unchanged.
	EchoStdin bool
}

// FileResult is the outcome for one stylesheet.
type FileResult struct {
	Path string
	lint.Result

	// Written is true when fixed content was written back.
	Written bool
}

// Report aggregates the results of a run, sorted by path.
type Report struct {
	Files []FileResult
}

// Errored reports whether any file has an error-severity diagnostic.
func (r *Report) Errored() bool {
	for _, f := range r.Files {
		if f.Errored() {
			return true
		}
	}
	return false
}

// Counts returns the number of error and warning diagnostics.
func (r *Report) Counts() (errors, warnings int) {
	for _, f := range r.Files {
		for _, d := range f.Diagnostics {
			if d.Severity == core.SeverityError {
				errors++
			} else {
				warnings++
			}
		}
	}
	return errors, warnings
}

// FixedCount returns the number of files rewritten.
func (r *Report) FixedCount() int {
	n := 0
	for _, f := range r.Files {
		if f.Fixed {
			n++
		}
	}
	return n
}

// Runner lints stylesheets from disk or stdin.
type Runner struct {
	config *lint.Config
	opts   Options
	log    *slog.Logger
	parser *stylesheet.Parser
}

// New creates a runner. A nil logger discards output.
func New(config *lint.Config, opts Options, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = runtime.GOMAXPROCS(0)
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	return &Runner{
		config: config,
		opts:   opts,
		log:    log,
		parser: stylesheet.NewParser(log),
	}
}

// Run lints every stylesheet named by the patterns.
//
// Files are independent: a file that cannot be read or written is reported in
// the returned error and the others are still processed. The report is
// returned even when the error is non-nil.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	report := &Report{}

	var patterns []string
	useStdin := false
	for _, p := range r.opts.Patterns {
		if p == StdinPath {
			useStdin = true
			continue
		}
		patterns = append(patterns, p)
	}

	if useStdin {
		res, err := r.lintStdin()
		if err != nil {
			return report, err
		}
		report.Files = append(report.Files, res)
	}
	if len(patterns) == 0 {
		return report, nil
	}

	files, err := ExpandPatterns(patterns, r.opts.Ignore)
	if err != nil {
		return report, err
	}
	r.log.Debug("linting files", slog.Int("count", len(files)), slog.Int("concurrency", r.opts.Concurrency))

	results := make([]*FileResult, len(files))
	var (
		mu   sync.Mutex
		errs error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Concurrency)
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := r.LintFile(path)
			if err != nil {
				mu.Lock()
				errs = multierr.Append(errs, err)
				mu.Unlock()
				return nil
			}
			results[i] = &res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		errs = multierr.Append(errs, err)
	}

	for _, res := range results {
		if res != nil {
			report.Files = append(report.Files, *res)
		}
	}
	return report, errs
}

// LintFile lints one file, writing it back when fixes changed its content.
func (r *Runner) LintFile(path string) (FileResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileResult{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return FileResult{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	out, res, err := r.lintBytes(src, path)
	if err != nil {
		return FileResult{}, err
	}

	fr := FileResult{Path: path, Result: res}
	if res.Fixed && !bytes.Equal(out, src) {
		if err := os.WriteFile(path, out, info.Mode().Perm()); err != nil {
			return fr, fmt.Errorf("failed to write %s: %w", path, err)
		}
		fr.Written = true
		r.log.Info("fixed file", slog.String("path", path))
	}
	return fr, nil
}

func (r *Runner) lintStdin() (FileResult, error) {
	src, err := io.ReadAll(r.opts.Stdin)
	if err != nil {
		return FileResult{}, fmt.Errorf("failed to read stdin: %w", err)
	}
	out, res, err := r.lintBytes(src, "<stdin>")
	if err != nil {
		return FileResult{}, err
	}

	fr := FileResult{Path: StdinPath, Result: res}
	if res.Fixed || r.opts.EchoStdin {
		if _, err := r.opts.Stdout.Write(out); err != nil {
			return fr, fmt.Errorf("failed to write stdout: %w", err)
		}
		fr.Written = true
	}
	return fr, nil
}

// lintBytes parses and analyzes src, returning the rendered output.
func (r *Runner) lintBytes(src []byte, source string) ([]byte, lint.Result, error) {
	root, err := r.parser.Parse(src, source)
	if err != nil {
		return nil, lint.Result{}, err
	}
	res := lint.NewAnalyzer(r.config, lint.WithLogger(r.log)).Analyze(root)
	return root.Bytes(), res, nil
}
