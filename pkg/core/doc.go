// Package core defines the shared language of the displaylint system.
//
// This package contains:
//   - Severity levels used by diagnostics and rule options
//   - RuleInfo, the metadata DTO rendered by tooling
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
