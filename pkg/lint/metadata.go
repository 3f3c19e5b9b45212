package lint

import (
	"fmt"
	"path"
	"strings"
)

// DefaultDocsBaseURL is where rule documentation lives.
const DefaultDocsBaseURL = "https://github.com/tak-dcxi/displaylint/blob/main/docs/rules"

// DocsBaseURL can be overridden via config for local/offline mode.
var DocsBaseURL = DefaultDocsBaseURL

// BuildDocURL constructs a documentation URL for a rule.
// The plugin namespace is dropped: "plugin/foo" maps to "<base>/foo.md".
func BuildDocURL(ruleID string) string {
	return fmt.Sprintf("%s/%s.md", DocsBaseURL, strings.ToLower(path.Base(ruleID)))
}

// SetDocsBaseURL overrides the default documentation base URL.
// Useful for offline mode or custom documentation sites.
func SetDocsBaseURL(url string) {
	DocsBaseURL = strings.TrimSuffix(url, "/")
}

// ResetDocsBaseURL resets to the default documentation URL.
func ResetDocsBaseURL() {
	DocsBaseURL = DefaultDocsBaseURL
}
