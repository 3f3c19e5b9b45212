// Package display provides the lint rule that rewrites legacy single-keyword
// `display` values into the two-value syntax of CSS Display Level 3.
//
// Rules in this package:
//   - plugin/display-multi-keyword-syntax: `display: flex` becomes `display: block flex`
package display
