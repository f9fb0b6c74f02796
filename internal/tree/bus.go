package tree

// EventKind identifies what changed in the tree.
type EventKind int

const (
	// EventPropertyChanged fires after a property is set or removed.
	EventPropertyChanged EventKind = iota

	// EventChildAdded fires after a child is inserted.
	EventChildAdded

	// EventChildRemoved fires after a child is removed.
	EventChildRemoved

	// EventChildOrderChanged fires after children are reordered in place.
	EventChildOrderChanged

	// EventSubtreeReplaced fires when an entire subtree is swapped out
	// wholesale, e.g. on document reload.
	EventSubtreeReplaced
)

func (k EventKind) String() string {
	switch k {
	case EventPropertyChanged:
		return "property-changed"
	case EventChildAdded:
		return "child-added"
	case EventChildRemoved:
		return "child-removed"
	case EventChildOrderChanged:
		return "child-order-changed"
	case EventSubtreeReplaced:
		return "subtree-replaced"
	default:
		return "unknown"
	}
}

// Event describes one tree change. Which fields are set depends on Kind:
// property events carry Node and Property; structural events carry Parent,
// Child and (for additions) Index; subtree replacement carries Node only.
type Event struct {
	Kind     EventKind
	Node     *Node
	Parent   *Node
	Child    *Node
	Index    int
	Property string
}

// Listener receives change events. Delivery is synchronous: the mutating
// call does not return until every listener has run.
type Listener func(Event)

// Subscription identifies a registered listener so it can be removed again.
type Subscription int

type subscriber struct {
	id Subscription
	fn Listener
}

// Bus fans tree change events out to subscribers in subscription order.
// Dispatch iterates over a snapshot of the subscriber list, so a listener
// may subscribe, unsubscribe or mutate the tree from inside its callback
// without corrupting the iteration.
//
// The bus is single-threaded by design, like everything else in the
// document model; it performs no locking.
type Bus struct {
	subs   []subscriber
	nextID Subscription
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn and returns a handle for Unsubscribe.
func (b *Bus) Subscribe(fn Listener) Subscription {
	b.nextID++
	b.subs = append(b.subs, subscriber{id: b.nextID, fn: fn})
	return b.nextID
}

// Unsubscribe removes the listener registered under id. Unknown ids are
// ignored.
func (b *Bus) Unsubscribe(id Subscription) {
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

// Publish delivers e to every current subscriber, in subscription order.
func (b *Bus) Publish(e Event) {
	snapshot := make([]subscriber, len(b.subs))
	copy(snapshot, b.subs)
	for _, s := range snapshot {
		s.fn(e)
	}
}
