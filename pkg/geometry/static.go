package geometry

// Static is an Oracle over a fixed set of rectangles, listed in document
// order. Tests and recorded sessions use it to run the engine without a
// rendering surface.
type Static struct {
	order   []string
	rects   map[string]Rect
	hidden  map[string]bool
	pointer Point
}

// NewStatic creates an empty static oracle.
func NewStatic() *Static {
	return &Static{rects: make(map[string]Rect), hidden: make(map[string]bool)}
}

// Set adds or moves a rectangle. New ids are appended to document order.
func (s *Static) Set(id string, r Rect) *Static {
	if _, ok := s.rects[id]; !ok {
		s.order = append(s.order, id)
	}
	s.rects[id] = r
	return s
}

// SetHidden keeps the rectangle queryable but leaves id out of
// RenderedIDs, the way a placeholder row is treated.
func (s *Static) SetHidden(id string, r Rect) *Static {
	s.Set(id, r)
	s.hidden[id] = true
	return s
}

// Delete forgets a rectangle.
func (s *Static) Delete(id string) {
	if _, ok := s.rects[id]; !ok {
		return
	}
	delete(s.rects, id)
	delete(s.hidden, id)
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// SetPointer records the pointer position.
func (s *Static) SetPointer(p Point) { s.pointer = p }

// RectOf implements Oracle.
func (s *Static) RectOf(id string) (Rect, bool) {
	r, ok := s.rects[id]
	return r, ok
}

// Pointer implements Oracle.
func (s *Static) Pointer() Point { return s.pointer }

// RenderedIDs implements Oracle.
func (s *Static) RenderedIDs() []string {
	out := make([]string, 0, len(s.order))
	for _, id := range s.order {
		if !s.hidden[id] {
			out = append(out, id)
		}
	}
	return out
}
