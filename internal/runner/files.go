package runner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// StdinPath is the pattern that reads a stylesheet from standard input.
const StdinPath = "-"

// DefaultIgnore is always applied on top of the configured ignore globs.
var DefaultIgnore = []string{"**/node_modules/**", "**/.git/**"}

// isStylesheet reports whether path names a CSS file.
func isStylesheet(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".css")
}

// ExpandPatterns resolves files, directories and doublestar globs to a sorted,
// de-duplicated list of stylesheet paths. Directories expand to **/*.css.
// Paths matching any ignore glob are dropped. A pattern that matches nothing
// is an error, so typos do not pass silently.
func ExpandPatterns(patterns, ignore []string) ([]string, error) {
	ignore = append(append([]string(nil), DefaultIgnore...), ignore...)
	for _, ig := range ignore {
		if !doublestar.ValidatePattern(filepath.ToSlash(ig)) {
			return nil, fmt.Errorf("invalid ignore pattern %q", ig)
		}
	}

	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		path = filepath.Clean(path)
		if seen[path] || ignored(path, ignore) {
			return
		}
		seen[path] = true
		files = append(files, path)
	}

	for _, pattern := range patterns {
		matches, err := expandOne(pattern)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no stylesheets match %q", pattern)
		}
		for _, m := range matches {
			add(m)
		}
	}

	sort.Strings(files)
	return files, nil
}

func expandOne(pattern string) ([]string, error) {
	info, err := os.Stat(pattern)
	switch {
	case err == nil && info.IsDir():
		return globDir(pattern)
	case err == nil:
		return []string{pattern}, nil
	}

	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	var out []string
	for _, m := range matches {
		if isStylesheet(m) {
			out = append(out, m)
		}
	}
	return out, nil
}

func globDir(dir string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), "**/*.css", doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, filepath.Join(dir, filepath.FromSlash(m)))
	}
	return out, nil
}

// ignored reports whether path matches any ignore glob.
func ignored(path string, ignore []string) bool {
	slashed := filepath.ToSlash(path)
	for _, ig := range ignore {
		if ok, _ := doublestar.Match(filepath.ToSlash(ig), slashed); ok {
			return true
		}
	}
	return false
}

// watchDirs returns every directory under roots, skipping ignored and hidden ones.
func watchDirs(roots []string, ignore []string) ([]string, error) {
	seen := make(map[string]bool)
	var dirs []string
	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || ignored(path, ignore)) {
				return filepath.SkipDir
			}
			if !seen[path] {
				seen[path] = true
				dirs = append(dirs, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}
