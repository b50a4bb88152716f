package drag

import (
	"github.com/mattsolo1/grove-outline/pkg/geometry"
	"github.com/mattsolo1/grove-outline/pkg/tree"
)

// Resolver decides, from geometry, which real item the dragged rectangle is
// over and where relative to it the placeholder belongs.
type Resolver struct {
	oracle geometry.Oracle
}

// NewResolver creates a resolver over an oracle.
func NewResolver(o geometry.Oracle) *Resolver {
	return &Resolver{oracle: o}
}

// Resolve scans rendered rows in document order. The first row whose
// vertical span strictly contains the dragged rectangle's top edge wins:
// above its midpoint the placement is Above, otherwise Below, and Below a row
// that has children becomes Into. Rows are not re-checked for a better match
// when rectangles overlap.
//
// The placeholder, the dragged item and anything inside the dragged subtree
// are skipped, so dragging a node into its own descendant is never offered.
// When no row matches and the dragged top is at or past the bottom of the
// last row, the placement is Below the last root-level item.
func (r *Resolver) Resolve(dragged geometry.Rect, t *tree.Tree, index map[tree.ID]*tree.Item, snapshot *tree.Item) (tree.Placement, bool) {
	top := dragged.Top
	var (
		bottom float64
		seen   bool
	)

	for _, raw := range r.oracle.RenderedIDs() {
		id := tree.NewID(raw)
		if id == tree.GhostID {
			continue
		}
		rect, ok := r.oracle.RectOf(raw)
		if !ok {
			continue
		}
		if !seen || rect.Bottom > bottom {
			bottom, seen = rect.Bottom, true
		}
		if snapshot != nil && tree.Contains(snapshot, id) {
			continue
		}
		if !rect.ContainsY(top) {
			continue
		}
		item := lookup(t, index, id)
		if item == nil || tree.IsGhost(item) {
			continue
		}
		if top < rect.MidY() {
			return tree.Placement{Target: item.ID, Position: tree.Above}, true
		}
		if item.HasRealChildren() {
			return tree.Placement{Target: item.ID, Position: tree.Into}, true
		}
		return tree.Placement{Target: item.ID, Position: tree.Below}, true
	}

	if g, ok := r.oracle.RectOf(string(tree.GhostID)); ok && (!seen || g.Bottom > bottom) {
		bottom, seen = g.Bottom, true
	}
	if !seen || top < bottom {
		return tree.Placement{}, false
	}
	last := t.LastRoot()
	if last == nil || (snapshot != nil && tree.Contains(snapshot, last.ID)) {
		return tree.Placement{}, false
	}
	return tree.Placement{Target: last.ID, Position: tree.Below}, true
}

func lookup(t *tree.Tree, index map[tree.ID]*tree.Item, id tree.ID) *tree.Item {
	if it, ok := index[id]; ok {
		return it
	}
	return t.Find(id)
}
