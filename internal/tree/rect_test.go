package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRectStringForm(t *testing.T) {
	r := Rect{X: 10, Y: -20, W: 150, H: 24}
	assert.Equal(t, "10 -20 150 24", r.String())

	back, ok := ParseRect(r.String())
	require.True(t, ok)
	assert.Equal(t, r, back)
}

func TestParseRectFailures(t *testing.T) {
	for _, s := range []string{"", "1 2 3", "1 2 3 4 5", "a b c d", "1 2 3 x"} {
		_, ok := ParseRect(s)
		assert.False(t, ok, "input %q", s)
	}
}

func TestRectHelpers(t *testing.T) {
	r := Rect{X: 5, Y: 6, W: 7, H: 8}
	assert.Equal(t, Rect{X: 8, Y: 4, W: 7, H: 8}, r.Translated(3, -2))
	assert.Equal(t, Rect{X: 100, Y: 200, W: 7, H: 8}, r.WithPosition(100, 200))
}
