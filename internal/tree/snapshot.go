package tree

// Snapshot is an exported, pointer-free copy of a subtree, suitable for
// structural comparison with go-cmp in tests. Properties are keyed by name
// because their insertion order carries no meaning.
type Snapshot struct {
	Type     string
	Props    map[string]Value
	Children []Snapshot
}

// Snapshot captures the subtree rooted at n.
func (n *Node) Snapshot() Snapshot {
	s := Snapshot{Type: n.typ, Props: make(map[string]Value, len(n.props))}
	for _, p := range n.props {
		s.Props[p.Name] = p.Value
	}
	for _, c := range n.children {
		s.Children = append(s.Children, c.Snapshot())
	}
	return s
}

// Clone deep-copies the subtree rooted at n. The copy is detached (no
// parent, no bus) and shares nothing with the original, so it can be handed
// to a background writer while the live tree keeps mutating.
func (n *Node) Clone() *Node {
	c := New(n.typ)
	c.props = append([]Property(nil), n.props...)
	for _, child := range n.children {
		cc := child.Clone()
		cc.parent = c
		c.children = append(c.children, cc)
	}
	return c
}

// Equal reports whether two subtrees have the same type tags, the same
// property sets and the same child order throughout.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.typ != b.typ || len(a.props) != len(b.props) || len(a.children) != len(b.children) {
		return false
	}
	for _, p := range a.props {
		v, ok := b.Property(p.Name)
		if !ok || !v.Equal(p.Value) {
			return false
		}
	}
	for i := range a.children {
		if !Equal(a.children[i], b.children[i]) {
			return false
		}
	}
	return true
}
