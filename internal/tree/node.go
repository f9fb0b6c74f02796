// Package tree implements the typed node tree that backs a component
// document: nodes with a fixed type tag, an ordered property bag and an
// ordered child list, plus the change bus and the XML form used by the
// embedded metadata block.
package tree

import "compedit/internal/undo"

// Property is one named value on a node. Properties keep insertion order,
// which fixes the attribute order in the serialized form.
type Property struct {
	Name  string
	Value Value
}

// Node is a single element of the document tree. Its type tag is fixed at
// creation; properties and children are mutable. A node has at most one
// parent.
//
// Mutating methods take an optional *undo.Log. When the log is non-nil the
// mutation is recorded as an undoable action and a change event fires on the
// tree's bus before the call returns. When it is nil the mutation is silent;
// that path is reserved for construction and deserialization, never for
// interactive edits.
type Node struct {
	typ      string
	props    []Property
	children []*Node
	parent   *Node

	// bus is set on the root node only; descendants reach it through the
	// parent chain.
	busRef *Bus
}

// New creates a node with the given type tag and no properties or children.
func New(typ string) *Node {
	return &Node{typ: typ}
}

// Type returns the node's immutable type tag.
func (n *Node) Type() string { return n.typ }

// Parent returns the node's parent, or nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// Root returns the topmost ancestor (the node itself if detached).
func (n *Node) Root() *Node {
	r := n
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// SetBus attaches a change bus to this node's tree. It must be called on the
// root; events from anywhere in the subtree are published on this bus.
func (n *Node) SetBus(b *Bus) { n.busRef = b }

// Bus returns the change bus serving this node's tree, or nil if none is
// attached.
func (n *Node) Bus() *Bus { return n.Root().busRef }

func (n *Node) publish(e Event) {
	if b := n.Bus(); b != nil {
		b.Publish(e)
	}
}

// Property returns the named property value and whether it exists.
func (n *Node) Property(name string) (Value, bool) {
	for _, p := range n.props {
		if p.Name == name {
			return p.Value, true
		}
	}
	return Value{}, false
}

// PropertyText returns the canonical text of the named property, or "" if
// absent.
func (n *Node) PropertyText(name string) string {
	v, ok := n.Property(name)
	if !ok {
		return ""
	}
	return v.Text()
}

// Properties returns the property list in insertion order. The returned
// slice is shared; callers must not modify it.
func (n *Node) Properties() []Property { return n.props }

// SetProperty sets name to v. Setting a property to its current value is a
// no-op: nothing is recorded and no event fires.
func (n *Node) SetProperty(name string, v Value, log *undo.Log) {
	old, had := n.Property(name)
	if had && old.Equal(v) {
		return
	}
	if log == nil {
		n.applySetProperty(name, v, false)
		return
	}
	a := &setPropertyAction{node: n, name: name, newVal: v, oldVal: old, hadOld: had}
	a.Perform()
	log.Record(a)
}

// RemoveProperty deletes the named property if present.
func (n *Node) RemoveProperty(name string, log *undo.Log) {
	old, had := n.Property(name)
	if !had {
		return
	}
	if log == nil {
		n.applyRemoveProperty(name, false)
		return
	}
	a := &removePropertyAction{node: n, name: name, oldVal: old}
	a.Perform()
	log.Record(a)
}

func (n *Node) applySetProperty(name string, v Value, notify bool) {
	set := false
	for i := range n.props {
		if n.props[i].Name == name {
			n.props[i].Value = v
			set = true
			break
		}
	}
	if !set {
		n.props = append(n.props, Property{Name: name, Value: v})
	}
	if notify {
		n.publish(Event{Kind: EventPropertyChanged, Node: n, Property: name})
	}
}

func (n *Node) applyRemoveProperty(name string, notify bool) {
	for i := range n.props {
		if n.props[i].Name == name {
			n.props = append(n.props[:i], n.props[i+1:]...)
			break
		}
	}
	if notify {
		n.publish(Event{Kind: EventPropertyChanged, Node: n, Property: name})
	}
}

// NumChildren returns the number of direct children.
func (n *Node) NumChildren() int { return len(n.children) }

// ChildAt returns the child at index, or nil when out of range.
func (n *Node) ChildAt(index int) *Node {
	if index < 0 || index >= len(n.children) {
		return nil
	}
	return n.children[index]
}

// IndexOf returns the index of child among n's children, or -1.
func (n *Node) IndexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// ChildWithType returns the first child whose type tag is typ, or nil.
func (n *Node) ChildWithType(typ string) *Node {
	for _, c := range n.children {
		if c.typ == typ {
			return c
		}
	}
	return nil
}

// AddChild inserts child at index (or appends when index is out of range).
// If the child currently has another parent it is removed from it first, so
// a node never appears in two places.
func (n *Node) AddChild(child *Node, index int, log *undo.Log) {
	if child == nil || child == n {
		return
	}
	if child.parent != nil {
		child.parent.RemoveChild(child, log)
	}
	if index < 0 || index > len(n.children) {
		index = len(n.children)
	}
	if log == nil {
		n.applyAddChild(child, index, false)
		return
	}
	a := &addChildAction{parent: n, child: child, index: index}
	a.Perform()
	log.Record(a)
}

// RemoveChild detaches child from n. Unknown children are ignored.
func (n *Node) RemoveChild(child *Node, log *undo.Log) {
	index := n.IndexOf(child)
	if index < 0 {
		return
	}
	if log == nil {
		n.applyRemoveChild(child, false)
		return
	}
	a := &removeChildAction{parent: n, child: child, index: index}
	a.Perform()
	log.Record(a)
}

// MoveChild moves the child at from to position to, shifting siblings.
// Out-of-range indices make the call a no-op.
func (n *Node) MoveChild(from, to int, log *undo.Log) {
	if from == to || from < 0 || from >= len(n.children) || to < 0 || to >= len(n.children) {
		return
	}
	if log == nil {
		n.applyMoveChild(from, to, false)
		return
	}
	a := &moveChildAction{parent: n, from: from, to: to}
	a.Perform()
	log.Record(a)
}

func (n *Node) applyAddChild(child *Node, index int, notify bool) {
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	child.parent = n
	if notify {
		n.publish(Event{Kind: EventChildAdded, Parent: n, Child: child, Index: index})
	}
}

func (n *Node) applyRemoveChild(child *Node, notify bool) {
	index := n.IndexOf(child)
	if index < 0 {
		return
	}
	n.children = append(n.children[:index], n.children[index+1:]...)
	child.parent = nil
	if notify {
		n.publish(Event{Kind: EventChildRemoved, Parent: n, Child: child})
	}
}

func (n *Node) applyMoveChild(from, to int, notify bool) {
	c := n.children[from]
	if from < to {
		copy(n.children[from:], n.children[from+1:to+1])
	} else {
		copy(n.children[to+1:], n.children[to:from])
	}
	n.children[to] = c
	if notify {
		n.publish(Event{Kind: EventChildOrderChanged, Parent: n})
	}
}

// undoable actions: Perform applies the change and fires the event, Undo
// reverses it and fires the corresponding event. Neither records anything,
// so replaying them during undo/redo cannot grow the history.

type setPropertyAction struct {
	node   *Node
	name   string
	newVal Value
	oldVal Value
	hadOld bool
}

func (a *setPropertyAction) Perform() { a.node.applySetProperty(a.name, a.newVal, true) }

func (a *setPropertyAction) Undo() {
	if a.hadOld {
		a.node.applySetProperty(a.name, a.oldVal, true)
	} else {
		a.node.applyRemoveProperty(a.name, true)
	}
}

type removePropertyAction struct {
	node   *Node
	name   string
	oldVal Value
}

func (a *removePropertyAction) Perform() { a.node.applyRemoveProperty(a.name, true) }
func (a *removePropertyAction) Undo()    { a.node.applySetProperty(a.name, a.oldVal, true) }

type addChildAction struct {
	parent *Node
	child  *Node
	index  int
}

func (a *addChildAction) Perform() { a.parent.applyAddChild(a.child, a.index, true) }
func (a *addChildAction) Undo()    { a.parent.applyRemoveChild(a.child, true) }

type removeChildAction struct {
	parent *Node
	child  *Node
	index  int
}

func (a *removeChildAction) Perform() { a.parent.applyRemoveChild(a.child, true) }
func (a *removeChildAction) Undo()    { a.parent.applyAddChild(a.child, a.index, true) }

type moveChildAction struct {
	parent *Node
	from   int
	to     int
}

func (a *moveChildAction) Perform() { a.parent.applyMoveChild(a.from, a.to, true) }
func (a *moveChildAction) Undo()    { a.parent.applyMoveChild(a.to, a.from, true) }
