package tree

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Position is where an item lands relative to a target item.
type Position int

const (
	// Above splices the item in as the sibling just before the target.
	Above Position = iota
	// Below splices the item in as the sibling just after the target.
	Below
	// Into makes the item a child of the target.
	Into
)

func (p Position) String() string {
	switch p {
	case Above:
		return "above"
	case Below:
		return "below"
	case Into:
		return "into"
	default:
		return fmt.Sprintf("Position(%d)", int(p))
	}
}

// ParsePosition is the inverse of Position.String.
func ParsePosition(s string) (Position, error) {
	switch s {
	case "above":
		return Above, nil
	case "below":
		return Below, nil
	case "into":
		return Into, nil
	}
	return 0, fmt.Errorf("unknown position %q", s)
}

// Slot addresses a position in a sibling sequence. A nil Parent means the
// root sequence.
type Slot struct {
	Parent *Item
	Index  int
}

// Tree owns an ordered root sequence of items. All operations recurse into
// Children. A Tree is not safe for concurrent use.
type Tree struct {
	Items []*Item

	rev uint64
}

// New creates a tree over the given root items.
func New(items ...*Item) *Tree {
	return &Tree{Items: items}
}

// Revision increases on every mutation made through Tree methods. Layouts
// compare it to know when cached geometry is stale.
func (t *Tree) Revision() uint64 { return t.rev }

// SetItems replaces the root sequence.
func (t *Tree) SetItems(items []*Item) {
	t.Items = items
	t.rev++
}

func (t *Tree) siblings(parent *Item) []*Item {
	if parent == nil {
		return t.Items
	}
	return parent.Children
}

func (t *Tree) setSiblings(parent *Item, s []*Item) {
	if parent == nil {
		t.Items = s
	} else {
		parent.Children = s
	}
	t.rev++
}

// Walk visits every node in pre-order. Returning false from fn stops the
// walk.
func (t *Tree) Walk(fn func(item, parent *Item, depth int) bool) {
	var visit func(items []*Item, parent *Item, depth int) bool
	visit = func(items []*Item, parent *Item, depth int) bool {
		for _, it := range items {
			if !fn(it, parent, depth) {
				return false
			}
			if !visit(it.Children, it, depth+1) {
				return false
			}
		}
		return true
	}
	visit(t.Items, nil, 0)
}

// Find returns the first item with the given id in pre-order, or nil.
func (t *Tree) Find(id ID) *Item {
	var found *Item
	t.Walk(func(it, _ *Item, _ int) bool {
		if it.ID == id {
			found = it
			return false
		}
		return true
	})
	return found
}

// Locate returns the slot holding the first item with the given id.
func (t *Tree) Locate(id ID) (Slot, bool) {
	var (
		slot  Slot
		found bool
	)
	t.Walk(func(it, parent *Item, _ int) bool {
		if it.ID != id {
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

// Remove deletes the first item with the given id. It reports false when no
// such item exists.
func (t *Tree) Remove(id ID) bool {
	slot, ok := t.Locate(id)
	if !ok {
		return false
	}
	s := t.siblings(slot.Parent)
	t.setSiblings(slot.Parent, slices.Delete(s, slot.Index, slot.Index+1))
	return true
}

// InsertAt splices item into a slot. The index may equal the sibling count
// to append.
func (t *Tree) InsertAt(slot Slot, item *Item) bool {
	if item == nil {
		return false
	}
	s := t.siblings(slot.Parent)
	if slot.Index < 0 || slot.Index > len(s) {
		return false
	}
	t.setSiblings(slot.Parent, slices.Insert(s, slot.Index, item))
	return true
}

// InsertRelative places item above, below or into the item with the target
// id. Into appends to the target's children. It reports false and leaves
// the tree untouched when the target does not exist.
func (t *Tree) InsertRelative(target ID, item *Item, pos Position) bool {
	if item == nil {
		return false
	}
	slot, ok := t.Locate(target)
	if !ok {
		return false
	}
	switch pos {
	case Above:
		return t.InsertAt(slot, item)
	case Below:
		slot.Index++
		return t.InsertAt(slot, item)
	case Into:
		parent := t.siblings(slot.Parent)[slot.Index]
		return t.InsertAt(Slot{Parent: parent, Index: len(parent.Children)}, item)
	}
	return false
}

// Index flattens the tree into an id lookup. Ghost nodes are left out and the
// first occurrence of a duplicated id wins.
func (t *Tree) Index() map[ID]*Item {
	idx := make(map[ID]*Item)
	t.Walk(func(it, _ *Item, _ int) bool {
		if IsGhost(it) {
			return true
		}
		if _, dup := idx[it.ID]; !dup {
			idx[it.ID] = it
		}
		return true
	})
	return idx
}

// IDs lists the non-ghost ids in pre-order.
func (t *Tree) IDs() []ID {
	var ids []ID
	t.Walk(func(it, _ *Item, _ int) bool {
		if !IsGhost(it) {
			ids = append(ids, it.ID)
		}
		return true
	})
	return ids
}

// Len counts the non-ghost items.
func (t *Tree) Len() int { return len(t.IDs()) }

// Parent returns the parent of the first item with the given id. The second
// result is false when the item does not exist; a root item has a nil parent.
func (t *Tree) Parent(id ID) (*Item, bool) {
	slot, ok := t.Locate(id)
	return slot.Parent, ok
}

// PrecedingSibling returns the nearest earlier sibling of id that is not a
// ghost, or nil.
func (t *Tree) PrecedingSibling(id ID) *Item {
	slot, ok := t.Locate(id)
	if !ok {
		return nil
	}
	s := t.siblings(slot.Parent)
	for i := slot.Index - 1; i >= 0; i-- {
		if !IsGhost(s[i]) {
			return s[i]
		}
	}
	return nil
}

// LastRoot returns the last root-level item that is not a ghost, or nil.
func (t *Tree) LastRoot() *Item {
	for i := len(t.Items) - 1; i >= 0; i-- {
		if !IsGhost(t.Items[i]) {
			return t.Items[i]
		}
	}
	return nil
}

// Clone deep-copies the tree.
func (t *Tree) Clone() *Tree {
	out := &Tree{Items: make([]*Item, len(t.Items))}
	for i, it := range t.Items {
		out.Items[i] = it.Clone()
	}
	return out
}

// Validate checks tree invariants: unique non-ghost ids, no empty ids and at
// most one ghost.
func (t *Tree) Validate() error {
	var errs []error
	seen := make(map[ID]bool)
	t.Walk(func(it, _ *Item, _ int) bool {
		switch {
		case it == nil:
			errs = append(errs, errors.New("nil item in tree"))
		case IsGhost(it):
		case it.ID == "":
			errs = append(errs, errors.New("item with empty id"))
		case it.ID == GhostID:
			errs = append(errs, fmt.Errorf("id %q is reserved for the placeholder", GhostID))
		case seen[it.ID]:
			errs = append(errs, fmt.Errorf("duplicate id %q", it.ID))
		default:
			seen[it.ID] = true
		}
		return it != nil
	})
	if n := t.CountGhosts(); n > 1 {
		errs = append(errs, fmt.Errorf("%d placeholders present, want at most 1", n))
	}
	return errors.Join(errs...)
}

// Row is one line of a flattened tree.
type Row struct {
	Item   *Item
	Parent *Item
	Depth  int
}

// Flatten lists every node in document order with its depth, the order a
// renderer stacks rows in.
func (t *Tree) Flatten() []Row {
	var rows []Row
	t.Walk(func(it, parent *Item, depth int) bool {
		rows = append(rows, Row{Item: it, Parent: parent, Depth: depth})
		return true
	})
	return rows
}

// String renders the structure compactly, e.g. "1[11,12],2", with "*" for the
// placeholder.
func (t *Tree) String() string {
	var b strings.Builder
	writeCompact(&b, t.Items)
	return b.String()
}

func writeCompact(b *strings.Builder, items []*Item) {
	for i, it := range items {
		if i > 0 {
			b.WriteByte(',')
		}
		if IsGhost(it) {
			b.WriteByte('*')
		} else {
			b.WriteString(string(it.ID))
		}
		if len(it.Children) > 0 {
			b.WriteByte('[')
			writeCompact(b, it.Children)
			b.WriteByte(']')
		}
	}
}
