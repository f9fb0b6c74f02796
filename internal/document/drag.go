package document

import (
	"compedit/internal/registry"
	"compedit/internal/tree"
)

// Zone describes which part of a component's border a drag grips. ZoneMove
// (no edge bits) moves the whole rectangle; edge bits resize it.
type Zone int

const (
	ZoneMove   Zone = 0
	ZoneLeft   Zone = 1 << 0
	ZoneTop    Zone = 1 << 1
	ZoneRight  Zone = 1 << 2
	ZoneBottom Zone = 1 << 3
)

// Resize applies the cumulative pointer offset (dx, dy) to the original
// rectangle according to the zone. The result is a pure function of its
// inputs, so replaying the same offset always yields the same bounds.
func (z Zone) Resize(orig tree.Rect, dx, dy int) tree.Rect {
	if z == ZoneMove {
		return orig.Translated(dx, dy)
	}
	r := orig
	if z&ZoneLeft != 0 {
		r.X += dx
		r.W -= dx
	}
	if z&ZoneRight != 0 {
		r.W += dx
	}
	if z&ZoneTop != 0 {
		r.Y += dy
		r.H -= dy
	}
	if z&ZoneBottom != 0 {
		r.H += dy
	}
	if r.W < 1 {
		r.W = 1
	}
	if r.H < 1 {
		r.H = 1
	}
	return r
}

type dragItem struct {
	nodeID   string
	original tree.Rect
}

// dragState is the Dragging half of the Idle -> Dragging -> Idle machine.
// It exists only between BeginDrag and EndDrag/CancelDrag.
type dragState struct {
	zone   Zone
	startX int
	startY int
	items  []dragItem
}

// IsDragging reports whether a drag gesture is in progress.
func (d *Document) IsDragging() bool { return d.dragger != nil }

// BeginDrag captures the bound node and current bounds of every selected
// live object and opens the gesture's transaction. Objects that no longer
// resolve to a node are skipped. Starting a new drag while one is active
// ends the old one first.
func (d *Document) BeginDrag(selection []*registry.LiveObject, x, y int, zone Zone) {
	if d.dragger != nil {
		d.EndDrag(x, y)
	}
	st := &dragState{zone: zone, startX: x, startY: y}
	for _, obj := range selection {
		n := d.NodeForLiveObject(obj)
		if n == nil {
			continue
		}
		b, ok := tree.ParseRect(n.PropertyText(tree.PropBounds))
		if !ok {
			continue
		}
		st.items = append(st.items, dragItem{
			nodeID:   n.PropertyText(tree.PropID),
			original: b,
		})
	}
	d.log.Begin("Drag components")
	d.dragger = st
}

// ContinueDrag rolls back the previous preview write and recomputes each
// captured component's bounds from its original geometry and the cumulative
// pointer offset. However many times it runs, the gesture stays a single
// transaction. Nodes deleted mid-drag are skipped.
func (d *Document) ContinueDrag(x, y int) {
	st := d.dragger
	if st == nil {
		return
	}
	d.log.UndoCurrentTransactionOnly()
	dx, dy := x-st.startX, y-st.startY
	for _, it := range st.items {
		n := d.componentWithID(it.nodeID)
		if n == nil {
			continue
		}
		bounds := st.zone.Resize(it.original, dx, dy)
		n.SetProperty(tree.PropBounds, tree.StringValue(bounds.String()), d.log)
	}
}

// EndDrag applies one final update and finishes the gesture. A gesture with
// no net effect is discarded outright so it never lingers as an empty open
// transaction. A non-empty gesture's transaction stays open until the next
// BeginTransaction closes it into history.
func (d *Document) EndDrag(x, y int) {
	if d.dragger == nil {
		return
	}
	d.ContinueDrag(x, y)
	d.dragger = nil
	d.log.DiscardIfEmpty()
}

// CancelDrag reverts the preview and abandons the gesture without leaving
// anything in history. Hosts call this when pointer capture is lost.
func (d *Document) CancelDrag() {
	if d.dragger == nil {
		return
	}
	d.log.UndoCurrentTransactionOnly()
	d.log.DiscardIfEmpty()
	d.dragger = nil
}
