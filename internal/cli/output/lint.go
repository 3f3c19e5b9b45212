package output

// LintSummary counts the findings of a lint run.
type LintSummary struct {
	FilesLinted int `json:"files_linted"`
	FilesFixed  int `json:"files_fixed"`
	TotalIssues int `json:"total_issues"`
	Errors      int `json:"errors"`
	Warnings    int `json:"warnings"`
}

// LintOutput is the JSON document for `displaylint lint`.
type LintOutput struct {
	Summary LintSummary      `json:"summary"`
	Files   []LintFileResult `json:"files"`
}

// LintFileResult holds the findings for one file.
type LintFileResult struct {
	Path        string           `json:"path"`
	Fixed       bool             `json:"fixed,omitempty"`
	Diagnostics []LintDiagnostic `json:"diagnostics"`
}

// LintDiagnostic is one finding.
type LintDiagnostic struct {
	RuleID    string    `json:"rule_id"`
	Kind      string    `json:"kind"`
	Severity  string    `json:"severity"`
	Message   string    `json:"message"`
	Line      int       `json:"line,omitempty"`
	Column    int       `json:"column,omitempty"`
	EndLine   int       `json:"end_line,omitempty"`
	EndColumn int       `json:"end_column,omitempty"`
	DocsURL   string    `json:"docs_url,omitempty"`
	Fix       *LintEdit `json:"fix,omitempty"`
}

// LintEdit is a suggested replacement.
type LintEdit struct {
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	EndLine   int    `json:"end_line"`
	EndColumn int    `json:"end_column"`
	Text      string `json:"text"`
}
