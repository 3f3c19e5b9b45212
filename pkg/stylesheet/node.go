package stylesheet

import (
	"fmt"
	"strings"
)

// Position is a location in the source stylesheet.
// Line and Column are 1-based; Column counts runes. Offset is a 0-based byte offset.
type Position struct {
	Offset int
	Line   int
	Column int
}

// String returns "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid reports whether the position points into a source.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// NodeType identifies the kind of a stylesheet node.
type NodeType string

// Node kinds.
const (
	NodeRule        NodeType = "rule"
	NodeAtRule      NodeType = "atrule"
	NodeDeclaration NodeType = "decl"
	NodeComment     NodeType = "comment"
)

// Node is an element of the stylesheet tree.
type Node interface {
	Type() NodeType
	Start() Position
	End() Position
}

// Container is a node holding child nodes (Root, Rule, AtRule with a block).
type Container interface {
	Children() []Node
}

// span is a half-open range in the source.
type span struct {
	start, end Position
}

func (s span) detached() bool { return s.start.Offset < 0 }

// Root is a parsed stylesheet. It owns the source bytes it was parsed from.
type Root struct {
	Nodes  []Node
	Source string // identifies the stylesheet, e.g. a file path

	src []byte
}

// Children returns the top-level nodes.
func (r *Root) Children() []Node { return r.Nodes }

// Rule is a qualified rule: a selector followed by a block.
type Rule struct {
	Selector string
	Nodes    []Node

	start, end Position
}

func (r *Rule) Type() NodeType   { return NodeRule }
func (r *Rule) Start() Position  { return r.start }
func (r *Rule) End() Position    { return r.end }
func (r *Rule) Children() []Node { return r.Nodes }
func (r *Rule) String() string   { return r.Selector + " {…}" }

// AtRule is an at-rule such as @media or @import.
// Nodes is nil and HasBlock false for statement at-rules.
type AtRule struct {
	Name     string // without the leading '@'
	Params   string
	HasBlock bool
	Nodes    []Node

	start, end Position
}

func (a *AtRule) Type() NodeType   { return NodeAtRule }
func (a *AtRule) Start() Position  { return a.start }
func (a *AtRule) End() Position    { return a.end }
func (a *AtRule) Children() []Node { return a.Nodes }

// Comment is a /* ... */ comment between statements.
type Comment struct {
	Text string // including the delimiters

	start, end Position
}

func (c *Comment) Type() NodeType  { return NodeComment }
func (c *Comment) Start() Position { return c.start }
func (c *Comment) End() Position   { return c.end }

// Declaration is a property/value pair.
//
// Value excludes surrounding whitespace and comments and a trailing
// !important annotation. Comments between value tokens are kept as written.
// Declarations are values: use WithValue to derive a modified copy and
// DeclRef.Set to put it in the tree.
type Declaration struct {
	Property  string
	Value     string
	Important bool

	start, end Position
	value      span   // bytes of the original value in the source
	original   string // Value as parsed
}

func (d *Declaration) Type() NodeType  { return NodeDeclaration }
func (d *Declaration) Start() Position { return d.start }
func (d *Declaration) End() Position   { return d.end }

// ValueRange returns the source range of the parsed value, excluding
// surrounding whitespace, comments and !important.
func (d *Declaration) ValueRange() (start, end Position) {
	return d.value.start, d.value.end
}

// String renders the declaration without surrounding formatting.
func (d *Declaration) String() string {
	var sb strings.Builder
	sb.WriteString(d.Property)
	sb.WriteString(": ")
	sb.WriteString(d.Value)
	if d.Important {
		sb.WriteString(" !important")
	}
	return sb.String()
}

// WithValue returns a copy of d whose value is replaced by v.
// Property, positions and the source span of the value are kept, so rendering
// the copy changes only the value tokens.
func (d *Declaration) WithValue(v string) *Declaration {
	c := *d
	c.Value = v
	return &c
}

// Modified reports whether the value differs from the parsed source.
func (d *Declaration) Modified() bool {
	return d.Value != d.original
}

// NewDeclaration builds a detached declaration, mostly useful in tests.
// It has no source span and renders nowhere.
func NewDeclaration(property, value string, pos Position) *Declaration {
	return &Declaration{
		Property: property,
		Value:    value,
		start:    pos,
		end:      pos,
		value:    span{start: Position{Offset: -1}, end: Position{Offset: -1}},
		original: value,
	}
}
