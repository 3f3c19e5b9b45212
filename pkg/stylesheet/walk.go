package stylesheet

// Walk visits every node depth-first in document order: a container is
// visited before its children. Returning false from fn stops the walk.
// Walk reports whether the walk ran to completion.
func (r *Root) Walk(fn func(Node) bool) bool {
	return walkNodes(r.Nodes, fn)
}

func walkNodes(nodes []Node, fn func(Node) bool) bool {
	for _, n := range nodes {
		if !fn(n) {
			return false
		}
		if c, ok := n.(Container); ok {
			if !walkNodes(c.Children(), fn) {
				return false
			}
		}
	}
	return true
}

// DeclRef is a declaration's slot in its parent's child list.
type DeclRef struct {
	nodes []Node
	i     int
}

// Decl returns the declaration currently in the slot.
func (ref DeclRef) Decl() *Declaration {
	return ref.nodes[ref.i].(*Declaration)
}

// Set puts repl in the slot, replacing the declaration in the tree.
func (ref DeclRef) Set(repl *Declaration) {
	ref.nodes[ref.i] = repl
}

// WalkDeclRefs visits declarations whose property equals prop exactly, in
// document order, passing the slot each one occupies. An empty prop visits
// every declaration. Returning false from fn stops the walk.
func (r *Root) WalkDeclRefs(prop string, fn func(DeclRef) bool) bool {
	return walkDeclRefs(r.Nodes, prop, fn)
}

func walkDeclRefs(nodes []Node, prop string, fn func(DeclRef) bool) bool {
	for i, n := range nodes {
		switch n := n.(type) {
		case *Declaration:
			if prop != "" && n.Property != prop {
				continue
			}
			if !fn(DeclRef{nodes: nodes, i: i}) {
				return false
			}
		case Container:
			if !walkDeclRefs(n.Children(), prop, fn) {
				return false
			}
		}
	}
	return true
}

// WalkDecls visits declarations whose property equals prop exactly, in
// document order. An empty prop visits every declaration.
func (r *Root) WalkDecls(prop string, fn func(*Declaration) bool) bool {
	return r.WalkDeclRefs(prop, func(ref DeclRef) bool {
		return fn(ref.Decl())
	})
}
