package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusOrderAndUnsubscribe(t *testing.T) {
	bus := NewBus()
	var order []int

	bus.Subscribe(func(Event) { order = append(order, 1) })
	id2 := bus.Subscribe(func(Event) { order = append(order, 2) })
	bus.Subscribe(func(Event) { order = append(order, 3) })

	bus.Publish(Event{Kind: EventSubtreeReplaced})
	assert.Equal(t, []int{1, 2, 3}, order)

	bus.Unsubscribe(id2)
	order = nil
	bus.Publish(Event{Kind: EventSubtreeReplaced})
	assert.Equal(t, []int{1, 3}, order)

	// Unknown id is ignored.
	bus.Unsubscribe(Subscription(999))
}

func TestBusReentrantDispatch(t *testing.T) {
	t.Run("listener may unsubscribe itself mid-dispatch", func(t *testing.T) {
		bus := NewBus()
		var calls []string
		var self Subscription
		self = bus.Subscribe(func(Event) {
			calls = append(calls, "self")
			bus.Unsubscribe(self)
		})
		bus.Subscribe(func(Event) { calls = append(calls, "other") })

		bus.Publish(Event{})
		// The snapshot keeps the second listener in this dispatch.
		require.Equal(t, []string{"self", "other"}, calls)

		calls = nil
		bus.Publish(Event{})
		assert.Equal(t, []string{"other"}, calls)
	})

	t.Run("listener may mutate the tree in response", func(t *testing.T) {
		root := New("COMPONENT")
		bus := NewBus()
		root.SetBus(bus)

		// First event triggers a silent follow-up mutation from inside the
		// listener; dispatch must survive it.
		fired := 0
		bus.Subscribe(func(e Event) {
			fired++
			if fired == 1 {
				root.SetProperty("reaction", BoolValue(true), nil)
			}
		})

		bus.Publish(Event{Kind: EventPropertyChanged, Node: root, Property: "x"})
		assert.Equal(t, 1, fired)
		_, ok := root.Property("reaction")
		assert.True(t, ok)
	})
}
