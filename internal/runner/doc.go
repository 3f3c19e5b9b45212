// Package runner lints stylesheets on disk: it expands input patterns, runs
// the analyzer on each file concurrently, writes fixes back and aggregates
// the results. It can also watch for changes and re-lint edited files.
package runner
