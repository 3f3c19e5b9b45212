// Package rules registers every displaylint rule.
//
// Rules are organized by the CSS feature they cover:
//   - display: multi-keyword syntax for the display property
//
// To register all rules with the global lint registry, import this package
// with a blank identifier:
//
//	import _ "github.com/tak-dcxi/displaylint/pkg/lint/rules"
package rules
