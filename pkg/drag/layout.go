package drag

import (
	"github.com/mattsolo1/grove-outline/pkg/geometry"
	"github.com/mattsolo1/grove-outline/pkg/tree"
)

// Rows flattens t into layout rows.
func Rows(t *tree.Tree) []geometry.Row {
	flat := t.Flatten()
	rows := make([]geometry.Row, len(flat))
	for i, r := range flat {
		rows[i] = geometry.Row{
			ID:    string(r.Item.ID),
			Depth: r.Depth,
			Ghost: tree.IsGhost(r.Item),
		}
	}
	return rows
}

// LayoutOracle is a geometry.Oracle for a tree drawn as stacked rows. It
// re-arranges its RowLayout whenever the tree's revision changes, so every
// query sees the tree as it is now, placeholder included.
type LayoutOracle struct {
	tree   *tree.Tree
	layout *geometry.RowLayout
	rev    uint64
	fresh  bool
}

// NewLayoutOracle creates an oracle over t.
func NewLayoutOracle(t *tree.Tree, cfg geometry.LayoutConfig) *LayoutOracle {
	return &LayoutOracle{tree: t, layout: geometry.NewRowLayout(cfg)}
}

// Layout returns the underlying layout, arranged for the current tree.
func (o *LayoutOracle) Layout() *geometry.RowLayout {
	o.sync()
	return o.layout
}

// Invalidate forces a re-arrange on the next query. Hosts call it after
// editing the tree's slices directly.
func (o *LayoutOracle) Invalidate() { o.fresh = false }

func (o *LayoutOracle) sync() {
	if o.fresh && o.rev == o.tree.Revision() {
		return
	}
	o.layout.Arrange(Rows(o.tree))
	o.rev = o.tree.Revision()
	o.fresh = true
}

// RectOf implements geometry.Oracle.
func (o *LayoutOracle) RectOf(id string) (geometry.Rect, bool) {
	o.sync()
	return o.layout.RectOf(id)
}

// RenderedIDs implements geometry.Oracle.
func (o *LayoutOracle) RenderedIDs() []string {
	o.sync()
	return o.layout.RenderedIDs()
}

// Pointer implements geometry.Oracle.
func (o *LayoutOracle) Pointer() geometry.Point { return o.layout.Pointer() }

// SetPointer records the latest pointer position.
func (o *LayoutOracle) SetPointer(p geometry.Point) { o.layout.SetPointer(p) }

// RowAt returns the row under p.
func (o *LayoutOracle) RowAt(p geometry.Point) (geometry.Row, bool) {
	o.sync()
	return o.layout.RowAt(p)
}
