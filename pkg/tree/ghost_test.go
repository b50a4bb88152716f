package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepGhostsRemovesEveryPlaceholder(t *testing.T) {
	stray := NewItem("stray")
	stray.SetAttr(PlaceholderAttr, true)
	tr := New(NewGhost(), NewItem(1, NewGhost(), NewItem(11, stray)), NewItem(2))

	assert.Equal(t, 3, tr.CountGhosts())
	assert.Equal(t, 3, tr.SweepGhosts())
	assert.Equal(t, 0, tr.CountGhosts())
	assert.Equal(t, "1[11],2", tr.String())
}

func TestSweepGhostsIsIdempotent(t *testing.T) {
	build := func() *Tree {
		return New(NewItem(1, NewGhost(), NewItem(11)), NewGhost(), NewItem(2, NewItem(21, NewGhost())))
	}
	once := build()
	once.SweepGhosts()
	twice := build()
	twice.SweepGhosts()
	assert.Equal(t, 0, twice.SweepGhosts())

	assert.Equal(t, once.String(), twice.String())
	assert.Equal(t, once.IDs(), twice.IDs())
}

func TestPlaceGhostReplacesExisting(t *testing.T) {
	tr := New(NewItem(1), NewGhost(), NewItem(2), NewItem(3))

	require.True(t, tr.PlaceGhost(Placement{Target: "3", Position: Below}))
	assert.Equal(t, "1,2,3,*", tr.String())
	assert.Equal(t, 1, tr.CountGhosts())

	require.True(t, tr.PlaceGhost(Placement{Target: "1", Position: Into}))
	assert.Equal(t, "1[*],2,3", tr.String())
	assert.Equal(t, 1, tr.CountGhosts())
}

func TestPlaceGhostMissingTargetKeepsGhost(t *testing.T) {
	tr := New(NewItem(1), NewGhost(), NewItem(2))
	assert.False(t, tr.PlaceGhost(Placement{Target: "9", Position: Above}))
	assert.False(t, tr.PlaceGhost(Placement{Target: GhostID, Position: Above}))
	assert.Equal(t, "1,*,2", tr.String())
}

func TestPlaceGhostIntoParentBecomesFirstChild(t *testing.T) {
	tr := New(NewItem(1, NewItem(11), NewItem(12)), NewGhost())
	require.True(t, tr.PlaceGhost(Placement{Target: "1", Position: Into}))
	assert.Equal(t, "1[*,11,12]", tr.String())
}

func TestPlaceGhostGestureIntoAppends(t *testing.T) {
	tr := New(NewItem(1, NewItem(11)), NewGhost())
	require.True(t, tr.PlaceGhost(Placement{Target: "1", Position: Into, Gesture: true}))
	assert.Equal(t, "1[11,*]", tr.String())
}

func TestReplaceGhost(t *testing.T) {
	tr := New(NewItem(1, NewGhost()), NewItem(2))
	require.True(t, tr.ReplaceGhost(NewItem(5)))
	assert.Equal(t, "1[5],2", tr.String())
	assert.False(t, tr.ReplaceGhost(NewItem(6)))
	assert.False(t, tr.ReplaceGhost(nil))
}

func TestPlacementString(t *testing.T) {
	assert.Equal(t, "below 3", Placement{Target: "3", Position: Below}.String())
	assert.Equal(t, "into 1 (gesture)", Placement{Target: "1", Position: Into, Gesture: true}.String())
}
