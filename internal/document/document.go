// Package document owns one open component file: the root node tree, its
// change bus and undo history, dirty tracking, the identity binding between
// live objects and their nodes, and load/save through the embedded-metadata
// codec.
package document

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"compedit/internal/codec"
	"compedit/internal/config"
	"compedit/internal/registry"
	"compedit/internal/tree"
	"compedit/internal/undo"
)

// Document is the in-memory model for one backing .cpp file. All methods
// must be called from the single editing goroutine; the document does no
// locking.
type Document struct {
	logger *zap.Logger
	cfg    *config.Config
	reg    *registry.Registry
	path   string

	root *tree.Node
	bus  *tree.Bus
	log  *undo.Log

	dirty bool

	// bindings is the identity side table: live-object handle -> node id.
	bindings map[string]string

	dragger *dragState
}

// New constructs a document bound to path, attempts an initial load from
// the file (a missing or unparsable file just yields an empty document),
// and repairs the root so its invariants hold. reg is required; cfg and
// logger may be nil.
func New(path string, reg *registry.Registry, cfg *config.Config, logger *zap.Logger) *Document {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &Document{
		logger:   logger,
		cfg:      cfg,
		reg:      reg,
		path:     path,
		root:     tree.New(tree.TagDocument),
		bus:      tree.NewBus(),
		log:      undo.NewLog(logger),
		bindings: make(map[string]string),
	}
	d.root.SetBus(d.bus)
	d.Reload()
	d.checkRootObject()

	// Anything that fires on the bus from here on marks the document dirty.
	d.bus.Subscribe(func(tree.Event) { d.dirty = true })
	d.dirty = false
	return d
}

// Path returns the backing file path.
func (d *Document) Path() string { return d.path }

// Root returns the document's root node.
func (d *Document) Root() *tree.Node { return d.root }

// Bus returns the document's change bus.
func (d *Document) Bus() *tree.Bus { return d.bus }

// UndoLog returns the document's transaction log. Mutations that should be
// undoable pass it to the node mutators.
func (d *Document) UndoLog() *undo.Log { return d.log }

// HasUnsavedChanges reports whether any change event fired since the last
// successful save or load.
func (d *Document) HasUnsavedChanges() bool { return d.dirty }

// BeginTransaction closes the open transaction, if any, and opens a fresh
// named one.
func (d *Document) BeginTransaction(name string) { d.log.Begin(name) }

// Undo reverts the most recent transaction. Returns false at the history
// boundary.
func (d *Document) Undo() bool { return d.log.Undo() }

// Redo re-applies the most recently undone transaction. Returns false when
// there is nothing to redo.
func (d *Document) Redo() bool { return d.log.Redo() }

// checkRootObject lazily repairs the root invariants: a COMPONENTS child
// must exist and the class name must be non-empty. Repairs are silent; they
// are part of construction, not user edits.
func (d *Document) checkRootObject() {
	if d.ComponentGroup() == nil {
		d.root.AddChild(tree.New(tree.TagComponentGroup), -1, nil)
	}
	if d.ClassName() == "" {
		d.root.SetProperty(tree.PropClassName, tree.StringValue(d.cfg.Editor.DefaultClassName), nil)
	}
}

// ClassName returns the generated class name stored on the root.
func (d *Document) ClassName() string {
	return d.root.PropertyText(tree.PropClassName)
}

// SetClassName renames the generated class under its own transaction. The
// name is normalized into a valid type identifier first.
func (d *Document) SetClassName(name string) {
	name = MakeValidClassName(name)
	d.log.Begin("Change class name")
	d.root.SetProperty(tree.PropClassName, tree.StringValue(name), d.log)
}

// ComponentGroup returns the COMPONENTS child of the root, or nil before
// the root has been repaired.
func (d *Document) ComponentGroup() *tree.Node {
	return d.root.ChildWithType(tree.TagComponentGroup)
}

// NumComponents returns the number of component nodes.
func (d *Document) NumComponents() int {
	return d.ComponentGroup().NumChildren()
}

// Component returns the component node at index, or nil.
func (d *Document) Component(index int) *tree.Node {
	return d.ComponentGroup().ChildAt(index)
}

// ComponentWithMemberName returns the component node whose memberName
// property equals name, scanning front to back, or nil.
func (d *Document) ComponentWithMemberName(name string) *tree.Node {
	group := d.ComponentGroup()
	for i := 0; i < group.NumChildren(); i++ {
		c := group.ChildAt(i)
		if c.PropertyText(tree.PropMemberName) == name {
			return c
		}
	}
	return nil
}

// componentWithID returns the component node whose id property equals id,
// scanning front to back, or nil.
func (d *Document) componentWithID(id string) *tree.Node {
	if id == "" {
		return nil
	}
	group := d.ComponentGroup()
	for i := 0; i < group.NumChildren(); i++ {
		c := group.ChildAt(i)
		if c.PropertyText(tree.PropID) == id {
			return c
		}
	}
	return nil
}

// AddComponent creates a default node for the given type tag and inserts it
// into the component group under a new transaction. Returns false for an
// unknown tag.
func (d *Document) AddComponent(typeTag string) bool {
	n, ok := d.reg.DefaultNodeFor(typeTag, d)
	if !ok {
		d.logger.Warn("add component: unknown type", zap.String("tag", typeTag))
		return false
	}
	h, _ := d.reg.HandlerFor(typeTag)
	d.log.Begin("Add new " + h.DisplayName())
	d.ComponentGroup().AddChild(n, -1, d.log)
	return true
}

// RemoveComponent deletes a component node under a new transaction. Stale
// identity bindings to it simply stop resolving.
func (d *Document) RemoveComponent(n *tree.Node) {
	if n == nil || n.Parent() != d.ComponentGroup() {
		return
	}
	d.log.Begin("Delete component")
	d.ComponentGroup().RemoveChild(n, d.log)
}

// Reload re-reads the backing file, locates the embedded metadata block and
// swaps the whole tree for the parsed one. On any failure the in-memory
// state is left untouched and false is returned. On success the undo
// history is cleared, a subtree-replaced event fires and the dirty flag
// resets.
func (d *Document) Reload() bool {
	f, err := os.Open(d.path)
	if err != nil {
		d.logger.Debug("reload: cannot open backing file",
			zap.String("path", d.path), zap.Error(err))
		return false
	}
	defer f.Close()

	xmlText, ok := codec.ExtractMetadata(f)
	if !ok {
		d.logger.Warn("reload: no metadata block", zap.String("path", d.path))
		return false
	}
	newRoot, err := tree.UnmarshalXML(xmlText)
	if err != nil {
		d.logger.Warn("reload: bad metadata", zap.String("path", d.path), zap.Error(err))
		return false
	}
	if newRoot.Type() != tree.TagDocument {
		d.logger.Warn("reload: unexpected root type",
			zap.String("path", d.path), zap.String("type", newRoot.Type()))
		return false
	}

	d.root = newRoot
	d.root.SetBus(d.bus)
	d.checkRootObject()
	d.log.Clear()
	d.bus.Publish(tree.Event{Kind: tree.EventSubtreeReplaced, Node: d.root})
	d.dirty = false
	d.logger.Info("document reloaded",
		zap.String("path", d.path), zap.Int("components", d.NumComponents()))
	return true
}

// Save regenerates the source and header text, embeds the serialized tree,
// and writes each file only if its content changed. The dirty flag clears
// only when both writes succeed; on failure it stays set so the caller can
// retry.
func (d *Document) Save() bool {
	xmlText, err := tree.MarshalXML(d.root)
	if err != nil {
		d.logger.Error("save: serialize failed", zap.Error(err))
		return false
	}
	gc := d.BuildGeneratedCode()
	headerPath := codec.HeaderPathFor(d.path)

	cpp := gc.EmitCPP(filepath.Base(headerPath))
	cpp = append(cpp, []byte(codec.MetadataBlock(xmlText))...)

	if _, err := codec.WriteFileIfDifferent(d.path, cpp); err != nil {
		d.logger.Error("save failed", zap.String("path", d.path), zap.Error(err))
		return false
	}
	if _, err := codec.WriteFileIfDifferent(headerPath, gc.EmitHeader()); err != nil {
		d.logger.Error("save failed", zap.String("path", headerPath), zap.Error(err))
		return false
	}
	d.dirty = false
	d.logger.Info("document saved", zap.String("path", d.path))
	return true
}

// BuildGeneratedCode assembles the code snippets for every component whose
// type is known. Unknown types round-trip through the metadata block but
// contribute nothing to the generated code.
func (d *Document) BuildGeneratedCode() *codec.GeneratedCode {
	gc := &codec.GeneratedCode{ClassName: d.ClassName()}
	group := d.ComponentGroup()
	for i := 0; i < group.NumChildren(); i++ {
		n := group.ChildAt(i)
		h, ok := d.reg.HandlerFor(n.Type())
		if !ok {
			continue
		}
		member := n.PropertyText(tree.PropMemberName)
		if member == "" {
			continue
		}
		gc.MemberDeclarations = append(gc.MemberDeclarations,
			fmt.Sprintf("%s* %s;", h.ClassName(), member))
		gc.Initialisers = append(gc.Initialisers,
			fmt.Sprintf("addAndMakeVisible (%s = new %s (\"%s\"));",
				member, h.ClassName(), n.PropertyText(tree.PropName)))
		if b, ok := tree.ParseRect(n.PropertyText(tree.PropBounds)); ok {
			gc.ConstructorCode = append(gc.ConstructorCode,
				fmt.Sprintf("%s->setBounds (%d, %d, %d, %d);", member, b.X, b.Y, b.W, b.H))
		}
		gc.DestructorCode = append(gc.DestructorCode,
			fmt.Sprintf("deleteAndZero (%s);", member))
	}
	return gc
}

// CreateLiveObject instantiates a live object for the component at index
// and records its identity binding. Returns nil when the index is out of
// range or the component's type has no handler.
func (d *Document) CreateLiveObject(index int) *registry.LiveObject {
	n := d.Component(index)
	if n == nil {
		return nil
	}
	obj, ok := d.reg.CreateLiveObject(n)
	if !ok {
		return nil
	}
	d.bindings[obj.Handle] = n.PropertyText(tree.PropID)
	return obj
}

// NodeForLiveObject resolves a live object back to its node through the
// identity side table. A missing binding is an invariant violation on the
// caller's side; it is logged and reported as nil rather than crashing.
func (d *Document) NodeForLiveObject(obj *registry.LiveObject) *tree.Node {
	if obj == nil {
		return nil
	}
	id, ok := d.bindings[obj.Handle]
	if !ok {
		d.logger.Error("live object has no identity binding",
			zap.String("handle", obj.Handle), zap.String("type", obj.TypeTag))
		return nil
	}
	return d.componentWithID(id)
}

// ContainsLiveObject reports whether obj still resolves to a node in the
// component group.
func (d *Document) ContainsLiveObject(obj *registry.LiveObject) bool {
	return d.NodeForLiveObject(obj) != nil
}

// UpdateLiveObject re-applies the bound node's state onto obj, e.g. after
// undo. A no-op when the binding no longer resolves.
func (d *Document) UpdateLiveObject(obj *registry.LiveObject) {
	n := d.NodeForLiveObject(obj)
	if n == nil {
		return
	}
	d.reg.UpdateLiveObject(obj, n)
}

// ReleaseLiveObject drops obj's identity binding when the editor discards
// the live object.
func (d *Document) ReleaseLiveObject(obj *registry.LiveObject) {
	if obj != nil {
		delete(d.bindings, obj.Handle)
	}
}
