// Package drag is the drag-reorder engine: it resolves pointer samples into
// placeholder moves on a tree.Tree and commits the final move on release.
package drag

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-outline/pkg/geometry"
	"github.com/mattsolo1/grove-outline/pkg/tree"
)

// Phase is the lifecycle state of a Session.
type Phase int

const (
	// Idle: no drag; the tree is the committed structure and the host may
	// change it freely.
	Idle Phase = iota
	// Dragging: the tree holds exactly one placeholder and not the dragged
	// item's original node.
	Dragging
)

func (p Phase) String() string {
	if p == Dragging {
		return "dragging"
	}
	return "idle"
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger for engine diagnostics.
func WithLogger(l *logrus.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithNesting sets the nesting-gesture thresholds.
func WithNesting(cfg NestingConfig) Option {
	return func(s *Session) { s.nestingCfg = cfg }
}

// pointerSink is implemented by oracles that want the raw pointer pushed to
// them.
type pointerSink interface {
	SetPointer(geometry.Point)
}

// Session coordinates one tree's drag gestures. It owns every piece of drag
// state, so independent trees get independent sessions. A Session is not safe
// for concurrent use: hosts must make all calls from one goroutine.
type Session struct {
	tree       *tree.Tree
	oracle     geometry.Oracle
	resolver   *Resolver
	nesting    *NestingDetector
	nestingCfg NestingConfig
	log        *logrus.Logger

	phase      Phase
	dragged    *tree.Item
	hovered    *tree.Item
	pending    tree.Placement
	hasPending bool
	origin     tree.Slot
	index      map[tree.ID]*tree.Item

	offset      geometry.Point
	draggedRect geometry.Rect

	queued       geometry.Point
	framePending bool
}

// New creates an idle session over t. It fails when the nesting thresholds
// are invalid.
func New(t *tree.Tree, o geometry.Oracle, opts ...Option) (*Session, error) {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	s := &Session{
		tree:       t,
		oracle:     o,
		resolver:   NewResolver(o),
		nestingCfg: DefaultNesting(),
		log:        quiet,
	}
	for _, opt := range opts {
		opt(s)
	}
	nd, err := NewNestingDetector(o, s.nestingCfg)
	if err != nil {
		return nil, err
	}
	s.nesting = nd
	return s, nil
}

// Tree returns the live tree. While dragging it includes the placeholder.
func (s *Session) Tree() *tree.Tree { return s.tree }

// Phase returns the lifecycle state.
func (s *Session) Phase() Phase { return s.phase }

// Dragged returns the detached snapshot following the pointer, or nil.
func (s *Session) Dragged() *tree.Item { return s.dragged }

// Hovered returns the item the last placement was relative to, or nil.
func (s *Session) Hovered() *tree.Item { return s.hovered }

// Pending returns the last applied placement.
func (s *Session) Pending() (tree.Placement, bool) { return s.pending, s.hasPending }

// DraggedRect is where the snapshot is drawn, following the pointer.
func (s *Session) DraggedRect() geometry.Rect { return s.draggedRect }

// Nesting returns the gesture thresholds in effect.
func (s *Session) Nesting() NestingConfig { return s.nestingCfg }

// ReplaceTree swaps the tree's contents. The host may only do this while
// idle; during a drag it reports false and changes nothing.
func (s *Session) ReplaceTree(items []*tree.Item) bool {
	if s.phase == Dragging {
		return false
	}
	s.tree.SetItems(items)
	return true
}

// Arm starts a drag of the item with the given id, pressed at p. The item is
// deep-copied, the original leaves the tree and a placeholder takes its
// slot, so the live tree never holds two nodes with the same id.
func (s *Session) Arm(p geometry.Point, id tree.ID) error {
	if s.phase == Dragging {
		return ErrAlreadyDragging
	}
	if id == tree.GhostID {
		return ErrPlaceholder
	}
	item := s.tree.Find(id)
	if item == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if tree.IsGhost(item) {
		return ErrPlaceholder
	}
	rect, ok := s.oracle.RectOf(string(item.ID))
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotRendered, id)
	}

	if n := s.tree.SweepGhosts(); n > 0 {
		s.log.WithField("count", n).Debug("swept stale placeholders before arming")
	}
	slot, ok := s.tree.Locate(item.ID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	s.dragged = item.Clone()
	s.tree.Remove(item.ID)
	s.tree.InsertAt(slot, tree.NewGhost())

	s.origin = slot
	s.offset = p.Sub(rect.TopLeft())
	s.draggedRect = rect
	s.index = s.tree.Index()
	s.hovered = nil
	s.pending = tree.Placement{}
	s.hasPending = false
	s.framePending = false
	s.phase = Dragging
	s.pushPointer(p)

	s.log.WithFields(logrus.Fields{
		"id":     item.ID,
		"index":  slot.Index,
		"nested": slot.Parent != nil,
	}).Debug("drag armed")
	return nil
}

// Track records a pointer sample. Samples are coalesced: a sample arriving
// while a frame is already pending overwrites the queued one. It returns true
// when the host must schedule a frame, i.e. when none was pending.
func (s *Session) Track(p geometry.Point) bool {
	if s.phase != Dragging {
		return false
	}
	s.pushPointer(p)
	s.queued = p
	if s.framePending {
		return false
	}
	s.framePending = true
	return true
}

// Frame runs one resolution for the latest queued sample. It reports whether
// the placeholder moved.
func (s *Session) Frame() bool {
	if s.phase != Dragging || !s.framePending {
		return false
	}
	s.framePending = false
	return s.resolve(s.queued)
}

// TrackNow records a sample and resolves it immediately.
func (s *Session) TrackNow(p geometry.Point) bool {
	s.Track(p)
	return s.Frame()
}

// Refresh re-resolves at the oracle's current pointer. Hosts call it when
// geometry changed without the pointer moving, e.g. after a scroll.
func (s *Session) Refresh() bool {
	if s.phase != Dragging {
		return false
	}
	return s.resolve(s.oracle.Pointer())
}

func (s *Session) resolve(p geometry.Point) bool {
	s.draggedRect = s.draggedRect.MoveTo(p.Sub(s.offset))

	pl, ok := s.resolver.Resolve(s.draggedRect, s.tree, s.index, s.dragged)
	if !ok {
		pl, ok = s.nesting.Detect(s.draggedRect, s.tree, s.pending, s.hasPending)
	}
	if !ok {
		return false
	}
	if s.hasPending && pl == s.pending {
		return false
	}
	if !s.tree.PlaceGhost(pl) {
		// Target vanished; skip this cycle, the next sample corrects it.
		s.log.WithField("placement", pl.String()).Debug("placement skipped")
		return false
	}
	s.pending, s.hasPending = pl, true
	s.hovered = lookup(s.tree, s.index, pl.Target)
	s.log.WithField("placement", pl.String()).Debug("placeholder moved")
	return true
}

// Settle commits the drag: the snapshot takes the placeholder's slot, which
// already reflects the last nesting decision, and every remaining
// placeholder is swept. It works no matter where the pointer was released.
// A queued but unresolved sample is dropped, so what was previewed is what
// gets committed. It reports false when no drag was in progress.
func (s *Session) Settle() bool {
	if s.phase != Dragging {
		return false
	}
	item := s.dragged
	for s.tree.Remove(item.ID) {
	}

	switch {
	case s.tree.ReplaceGhost(item):
	case s.hasPending && s.tree.InsertRelative(s.pending.Target, item, s.pending.Position):
		s.log.WithField("id", item.ID).Debug("placeholder missing at settle; used last placement")
	case s.tree.InsertAt(s.origin, item):
		s.log.WithField("id", item.ID).Debug("placeholder missing at settle; restored origin")
	default:
		s.tree.InsertAt(tree.Slot{Index: len(s.tree.Items)}, item)
		s.log.WithField("id", item.ID).Debug("placeholder missing at settle; appended")
	}
	if n := s.tree.SweepGhosts(); n > 0 {
		s.log.WithField("count", n).Debug("swept stray placeholders")
	}

	s.log.WithFields(logrus.Fields{
		"id":        item.ID,
		"placement": s.pending.String(),
	}).Debug("drag settled")

	s.phase = Idle
	s.dragged = nil
	s.hovered = nil
	s.pending = tree.Placement{}
	s.hasPending = false
	s.index = nil
	s.framePending = false
	s.origin = tree.Slot{}
	return true
}

func (s *Session) pushPointer(p geometry.Point) {
	if sink, ok := s.oracle.(pointerSink); ok {
		sink.SetPointer(p)
	}
}
