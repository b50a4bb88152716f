package tree

import "fmt"

// GhostID is the reserved id of the placeholder node.
const GhostID ID = "__ghost__"

// PlaceholderAttr marks a node as a placeholder.
const PlaceholderAttr = "isPlaceholder"

// NewGhost creates a placeholder node. It only reserves a visual slot for
// the item being dragged.
func NewGhost() *Item {
	return &Item{
		ID:         GhostID,
		Attributes: map[string]any{PlaceholderAttr: true},
	}
}

// IsGhost reports whether the node carries the placeholder marker.
func IsGhost(it *Item) bool {
	if it == nil {
		return false
	}
	if it.ID == GhostID {
		return true
	}
	v, _ := it.Attributes[PlaceholderAttr].(bool)
	return v
}

// Placement is a resolved drop position. Gesture marks an Into placement made
// by the horizontal nesting gesture rather than by hovering a parent row.
type Placement struct {
	Target   ID
	Position Position
	Gesture  bool
}

func (p Placement) String() string {
	s := fmt.Sprintf("%s %s", p.Position, p.Target)
	if p.Gesture {
		s += " (gesture)"
	}
	return s
}

// CountGhosts counts placeholder nodes anywhere in the tree.
func (t *Tree) CountGhosts() int {
	n := 0
	t.Walk(func(it, _ *Item, _ int) bool {
		if IsGhost(it) {
			n++
		}
		return true
	})
	return n
}

// SweepGhosts removes every placeholder node and returns how many were
// removed. Children of a placeholder go with it. Sweeping twice is the same
// as sweeping once.
func (t *Tree) SweepGhosts() int {
	var sweep func(items []*Item) ([]*Item, int)
	sweep = func(items []*Item) ([]*Item, int) {
		removed := 0
		out := items[:0]
		for _, it := range items {
			if IsGhost(it) {
				removed++
				continue
			}
			var n int
			it.Children, n = sweep(it.Children)
			removed += n
			out = append(out, it)
		}
		// Clear the tail so dropped nodes are not kept alive by the backing array.
		for i := len(out); i < len(items); i++ {
			items[i] = nil
		}
		return out, removed
	}
	items, n := sweep(t.Items)
	t.Items = items
	if n > 0 {
		t.rev++
	}
	return n
}

// GhostSlot locates the first placeholder.
func (t *Tree) GhostSlot() (Slot, bool) {
	var (
		slot  Slot
		found bool
	)
	t.Walk(func(it, parent *Item, _ int) bool {
		if !IsGhost(it) {
			return true
		}
		for i, s := range t.siblings(parent) {
			if s == it {
				slot = Slot{Parent: parent, Index: i}
				found = true
				break
			}
		}
		return false
	})
	return slot, found
}

// PlaceGhost moves the placeholder to p. Existing placeholders are always
// removed and a fresh one inserted, since the parent can change between a
// sibling and a child placement. When the target is missing or is itself a
// placeholder nothing changes and false is returned.
//
// An Into placement on a target that already has real children makes the
// placeholder its first child. A gesture Into appends instead, so the
// placeholder keeps its rendered slot while it indents.
func (t *Tree) PlaceGhost(p Placement) bool {
	target := t.Find(p.Target)
	if target == nil || IsGhost(target) {
		return false
	}
	t.SweepGhosts()
	ghost := NewGhost()
	if p.Position == Into && !p.Gesture && target.HasRealChildren() {
		return t.InsertAt(Slot{Parent: target, Index: 0}, ghost)
	}
	return t.InsertRelative(p.Target, ghost, p.Position)
}

// ReplaceGhost swaps the first placeholder for item, in place. It reports
// false when there is no placeholder.
func (t *Tree) ReplaceGhost(item *Item) bool {
	if item == nil {
		return false
	}
	slot, ok := t.GhostSlot()
	if !ok {
		return false
	}
	t.siblings(slot.Parent)[slot.Index] = item
	t.rev++
	return true
}
