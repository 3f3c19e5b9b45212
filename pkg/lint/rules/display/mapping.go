package display

import (
	"sort"
	"strings"
)

// legacyToMultiKeyword maps legacy display keywords to their multi-keyword
// equivalents. No value is also a key, so rewriting is idempotent.
var legacyToMultiKeyword = map[string]string{
	"block":            "block flow",
	"flow-root":        "block flow-root",
	"inline":           "inline flow",
	"inline-block":     "inline flow-root",
	"run-in":           "run-in flow",
	"list-item":        "block flow list-item",
	"inline list-item": "inline flow list-item",
	"flex":             "block flex",
	"inline-flex":      "inline flex",
	"grid":             "block grid",
	"inline-grid":      "inline grid",
	"ruby":             "inline ruby",
	"table":            "block table",
	"inline-table":     "inline table",
}

// MultiKeyword returns the multi-keyword form of a legacy display value.
// The value is trimmed; matching is otherwise exact.
func MultiKeyword(value string) (string, bool) {
	canonical, ok := legacyToMultiKeyword[strings.TrimSpace(value)]
	return canonical, ok
}

// LegacyValues returns the legacy keywords that have a multi-keyword form, sorted.
func LegacyValues() []string {
	keys := make([]string, 0, len(legacyToMultiKeyword))
	for k := range legacyToMultiKeyword {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
