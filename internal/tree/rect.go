package tree

import (
	"fmt"
	"strconv"
	"strings"
)

// Rect is an integer rectangle. Its textual form, "x y w h", is the value of
// the position property on component nodes.
type Rect struct {
	X, Y, W, H int
}

// String renders the rectangle in its persisted "x y w h" form.
func (r Rect) String() string {
	return fmt.Sprintf("%d %d %d %d", r.X, r.Y, r.W, r.H)
}

// ParseRect reads a rectangle back from its "x y w h" form. It returns false
// for anything that does not have exactly four integer fields.
func ParseRect(s string) (Rect, bool) {
	fields := strings.Fields(s)
	if len(fields) != 4 {
		return Rect{}, false
	}
	var vals [4]int
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return Rect{}, false
		}
		vals[i] = n
	}
	return Rect{X: vals[0], Y: vals[1], W: vals[2], H: vals[3]}, true
}

// Translated returns the rectangle moved by (dx, dy).
func (r Rect) Translated(dx, dy int) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// WithPosition returns the rectangle relocated to (x, y), keeping its size.
func (r Rect) WithPosition(x, y int) Rect {
	return Rect{X: x, Y: y, W: r.W, H: r.H}
}
