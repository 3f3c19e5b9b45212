// Package stylesheet provides the minimal CSS tree the lint rules walk.
//
// Source text is tokenized with github.com/tdewolff/parse/v2/css and folded
// into a tree of rules, at-rules, declarations and comments that remember
// where they came from. The tree is not a CSS validator: anything that is not
// a recognizable statement is skipped.
//
// Rendering is source-preserving. Only declaration values that were replaced
// are rewritten; comments, whitespace, !important annotations, duplicate
// declarations and ordering come back byte for byte:
//
//	root, err := stylesheet.Parse(src, "app.css")
//	root.WalkDeclRefs("display", func(ref stylesheet.DeclRef) bool {
//		ref.Set(ref.Decl().WithValue("block flow"))
//		return true
//	})
//	out := root.Bytes()
package stylesheet
