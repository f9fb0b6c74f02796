// Package registry maps component type tags to handlers that know how to
// produce a default node for a new component and how to project a node onto
// a live editable object. The registry is an explicitly constructed object,
// built once at startup and passed to whoever needs it; there is no global
// table.
package registry

import (
	"math/rand/v2"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"compedit/internal/tree"
)

// Handler describes one editable component type. Handlers are stateless;
// one instance serves every component of its type.
type Handler interface {
	// DisplayName is the human-readable type name, e.g. "Text Button".
	DisplayName() string

	// TypeTag is the node type tag and XML element name, e.g. "TEXTBUTTON".
	TypeTag() string

	// MemberNameRoot seeds generated member names, e.g. "textButton".
	MemberNameRoot() string

	// ClassName is the type name emitted into generated code.
	ClassName() string

	// DefaultSize is the initial width and height of a new component.
	DefaultSize() (w, h int)
}

// MemberNamer allocates unique member names. Implemented by the document.
type MemberNamer interface {
	UniqueMemberName(suggested string) string
}

// Params configures a Registry. Zero values are replaced with defaults:
// jitter 100–199 px per axis (so new components never stack exactly) and a
// self-seeded random source.
type Params struct {
	JitterMin int
	JitterMax int
	Rand      *rand.Rand
	Logger    *zap.Logger
}

// Registry is the process-wide handler table, keyed by type tag.
type Registry struct {
	logger    *zap.Logger
	handlers  []Handler
	jitterMin int
	jitterMax int
	rnd       *rand.Rand
}

// New builds a registry from p. Call Register for each handler, or use
// Builtin for the stock set.
func New(p Params) *Registry {
	if p.Logger == nil {
		p.Logger = zap.NewNop()
	}
	if p.JitterMax <= p.JitterMin {
		p.JitterMin, p.JitterMax = 100, 200
	}
	if p.Rand == nil {
		p.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Registry{
		logger:    p.Logger,
		jitterMin: p.JitterMin,
		jitterMax: p.JitterMax,
		rnd:       p.Rand,
	}
}

// Register adds h to the table. Registering a second handler for the same
// tag shadows the first, matching lookup order.
func (r *Registry) Register(h Handler) {
	r.handlers = append(r.handlers, h)
	r.logger.Debug("registered component type",
		zap.String("tag", h.TypeTag()),
		zap.String("name", h.DisplayName()))
}

// HandlerFor returns the handler for tag. Unknown tags are a valid outcome,
// reported through ok, never an error: documents may carry types this build
// does not recognise.
func (r *Registry) HandlerFor(tag string) (Handler, bool) {
	for i := len(r.handlers) - 1; i >= 0; i-- {
		if r.handlers[i].TypeTag() == tag {
			return r.handlers[i], true
		}
	}
	return nil, false
}

// NumHandlers returns the number of registered handlers.
func (r *Registry) NumHandlers() int { return len(r.handlers) }

// HandlerAt returns the handler at index, in registration order, or nil.
func (r *Registry) HandlerAt(index int) Handler {
	if index < 0 || index >= len(r.handlers) {
		return nil
	}
	return r.handlers[index]
}

// TypeNames returns the display names of all handlers in registration order,
// for menus and CLI listings.
func (r *Registry) TypeNames() []string {
	names := make([]string, len(r.handlers))
	for i, h := range r.handlers {
		names[i] = h.DisplayName()
	}
	return names
}

// DefaultNodeFor builds the node for a brand-new component of the given
// type: fresh alphanumeric id, empty display name, a unique member name
// derived from the handler's root, and the default size placed at a random
// jittered offset. Returns false for unknown tags.
//
// The node is built silently; the caller inserts it into the document under
// a transaction.
func (r *Registry) DefaultNodeFor(tag string, names MemberNamer) (*tree.Node, bool) {
	h, ok := r.HandlerFor(tag)
	if !ok {
		r.logger.Debug("no handler for type tag", zap.String("tag", tag))
		return nil, false
	}
	w, hgt := h.DefaultSize()
	bounds := tree.Rect{
		X: r.jitterMin + r.rnd.IntN(r.jitterMax-r.jitterMin),
		Y: r.jitterMin + r.rnd.IntN(r.jitterMax-r.jitterMin),
		W: w,
		H: hgt,
	}

	n := tree.New(h.TypeTag())
	n.SetProperty(tree.PropID, tree.StringValue(r.NewID()), nil)
	n.SetProperty(tree.PropName, tree.StringValue(""), nil)
	n.SetProperty(tree.PropMemberName, tree.StringValue(names.UniqueMemberName(h.MemberNameRoot())), nil)
	n.SetProperty(tree.PropBounds, tree.StringValue(bounds.String()), nil)
	return n, true
}

const idAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewID returns a fresh short random alphanumeric identifier for a node's
// id property.
func (r *Registry) NewID() string {
	buf := make([]byte, 10)
	for i := range buf {
		buf[i] = idAlphabet[r.rnd.IntN(len(idAlphabet))]
	}
	return string(buf)
}

// LiveObject is the editable stand-in for one component node: the state the
// GUI toolkit would render and mutate. The Handle is an opaque per-instance
// identity; the document maps handles to node ids in its own side table, so
// nothing structural hides in the Props bag.
type LiveObject struct {
	Handle  string
	TypeTag string
	Bounds  tree.Rect
	Name    string

	// Props is the opaque per-instance property store the toolkit exposes.
	Props map[string]string
}

// CreateLiveObject instantiates a live object for n and applies the node's
// bounds and name onto it. Returns nil, false when n's type has no handler;
// the node itself stays in the tree either way.
func (r *Registry) CreateLiveObject(n *tree.Node) (*LiveObject, bool) {
	h, ok := r.HandlerFor(n.Type())
	if !ok {
		r.logger.Debug("unknown component type, no live object",
			zap.String("tag", n.Type()))
		return nil, false
	}
	obj := &LiveObject{
		Handle:  uuid.NewString(),
		TypeTag: h.TypeTag(),
		Props:   make(map[string]string),
	}
	r.UpdateLiveObject(obj, n)
	return obj, true
}

// UpdateLiveObject re-applies the node's bounds and name onto obj, e.g.
// after an undo changed the node behind it.
func (r *Registry) UpdateLiveObject(obj *LiveObject, n *tree.Node) {
	if b, ok := tree.ParseRect(n.PropertyText(tree.PropBounds)); ok {
		obj.Bounds = b
	}
	obj.Name = n.PropertyText(tree.PropName)
}
