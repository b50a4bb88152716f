package drag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-outline/pkg/geometry"
	"github.com/mattsolo1/grove-outline/pkg/tree"
)

func TestNestingConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultNesting().Validate())
	assert.ErrorIs(t, NestingConfig{Enter: 2, Exit: 2}.Validate(), ErrInvalidNesting)
	assert.ErrorIs(t, NestingConfig{Enter: 1, Exit: 3}.Validate(), ErrInvalidNesting)
}

func TestDetect(t *testing.T) {
	tr := tree.New(tree.NewItem(1), tree.NewGhost())
	o := geometry.NewStatic().
		Set("1", geometry.Rect{Top: 0, Bottom: 10, Left: 0, Right: 100}).
		SetHidden(string(tree.GhostID), geometry.Rect{Top: 10, Bottom: 20, Left: 0, Right: 100})
	d, err := NewNestingDetector(o, NestingConfig{Enter: 20, Exit: 10})
	require.NoError(t, err)

	nest := tree.Placement{Target: "1", Position: tree.Into, Gesture: true}
	unnest := tree.Placement{Target: "1", Position: tree.Below}

	tests := []struct {
		name       string
		dragged    geometry.Rect
		pending    tree.Placement
		hasPending bool
		want       tree.Placement
		ok         bool
	}{
		{name: "outside band", dragged: geometry.Rect{Top: 25, Left: 50}},
		{name: "band top is inclusive", dragged: geometry.Rect{Top: 10, Left: 21}, want: nest, ok: true},
		{name: "not far enough", dragged: geometry.Rect{Top: 12, Left: 20}},
		{name: "enter", dragged: geometry.Rect{Top: 12, Left: 21}, want: nest, ok: true},
		{name: "nested holds", dragged: geometry.Rect{Top: 12, Left: 10}, pending: nest, hasPending: true},
		{name: "exit", dragged: geometry.Rect{Top: 12, Left: 9}, pending: nest, hasPending: true, want: unnest, ok: true},
		{name: "resolver nesting is not a gesture",
			dragged: geometry.Rect{Top: 12, Left: 25},
			pending: tree.Placement{Target: "1", Position: tree.Into}, hasPending: true,
			want: nest, ok: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := d.Detect(tt.dragged, tr, tt.pending, tt.hasPending)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectWithoutPlaceholderRect(t *testing.T) {
	tr := tree.New(tree.NewItem(1), tree.NewGhost())
	d, err := NewNestingDetector(geometry.NewStatic(), DefaultNesting())
	require.NoError(t, err)
	_, ok := d.Detect(geometry.Rect{Top: 0, Left: 100}, tr, tree.Placement{}, false)
	assert.False(t, ok)
}
