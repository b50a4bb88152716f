package geometry

// LayoutConfig sizes the rows of a RowLayout.
type LayoutConfig struct {
	Origin    Point   `json:"origin" yaml:"origin" mapstructure:"origin"`
	RowHeight float64 `json:"row_height" yaml:"row_height" mapstructure:"row_height"`
	Indent    float64 `json:"indent" yaml:"indent" mapstructure:"indent"`
	Width     float64 `json:"width" yaml:"width" mapstructure:"width"`
}

// DefaultLayout matches the terminal outliner: three lines per row (title,
// detail, spacer) and four columns of indent per level.
func DefaultLayout() LayoutConfig {
	return LayoutConfig{RowHeight: 3, Indent: 4, Width: 80}
}

// Row is one rendered line of a flattened tree.
type Row struct {
	ID    string
	Depth int
	Ghost bool
}

// RowLayout stacks rows top to bottom at a fixed height, indenting each by
// depth. It is the geometry of any host that renders a flattened tree as a
// grid, and implements Oracle for it.
type RowLayout struct {
	cfg     LayoutConfig
	rows    []Row
	byID    map[string]int
	pointer Point

	// first and count bound the rows on screen; count 0 means all.
	first, count int
}

// NewRowLayout creates an empty layout. Zero config fields take the
// DefaultLayout values.
func NewRowLayout(cfg LayoutConfig) *RowLayout {
	def := DefaultLayout()
	if cfg.RowHeight <= 0 {
		cfg.RowHeight = def.RowHeight
	}
	if cfg.Indent < 0 {
		cfg.Indent = def.Indent
	}
	if cfg.Width <= 0 {
		cfg.Width = def.Width
	}
	return &RowLayout{cfg: cfg, byID: make(map[string]int)}
}

// Config returns the layout's sizing.
func (l *RowLayout) Config() LayoutConfig { return l.cfg }

// SetOrigin moves the top-left corner of the first row. Scrolling hosts
// shift it upwards.
func (l *RowLayout) SetOrigin(p Point) { l.cfg.Origin = p }

// SetWidth changes the row width.
func (l *RowLayout) SetWidth(w float64) {
	if w > 0 {
		l.cfg.Width = w
	}
}

// SetWindow limits hit testing and RenderedIDs to count rows starting at
// first. Scrolled-out rows keep their rectangles. A count of zero or less
// shows every row.
func (l *RowLayout) SetWindow(first, count int) {
	l.first, l.count = max(0, first), max(0, count)
}

func (l *RowLayout) visible(i int) bool {
	if l.count == 0 {
		return true
	}
	return i >= l.first && i < l.first+l.count
}

// Arrange replaces the rows. Later duplicates of an id are ignored.
func (l *RowLayout) Arrange(rows []Row) {
	l.rows = append(l.rows[:0], rows...)
	clear(l.byID)
	for i, r := range l.rows {
		if _, dup := l.byID[r.ID]; !dup {
			l.byID[r.ID] = i
		}
	}
}

// Rows returns the arranged rows.
func (l *RowLayout) Rows() []Row { return l.rows }

func (l *RowLayout) rectAt(i int) Rect {
	r := l.rows[i]
	top := l.cfg.Origin.Y + float64(i)*l.cfg.RowHeight
	left := l.cfg.Origin.X + float64(r.Depth)*l.cfg.Indent
	return Rect{
		Top:    top,
		Bottom: top + l.cfg.RowHeight,
		Left:   left,
		Right:  l.cfg.Origin.X + l.cfg.Width,
	}
}

// RectOf implements Oracle. Placeholder rows have rectangles too.
func (l *RowLayout) RectOf(id string) (Rect, bool) {
	i, ok := l.byID[id]
	if !ok {
		return Rect{}, false
	}
	return l.rectAt(i), true
}

// RenderedIDs implements Oracle. Only rows inside the window count.
func (l *RowLayout) RenderedIDs() []string {
	ids := make([]string, 0, len(l.rows))
	for i, r := range l.rows {
		if !r.Ghost && l.visible(i) {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

// Pointer implements Oracle.
func (l *RowLayout) Pointer() Point { return l.pointer }

// SetPointer records the latest pointer position.
func (l *RowLayout) SetPointer(p Point) { l.pointer = p }

// RowAt returns the row under p, placeholders included. Rows outside the
// window are never hit.
func (l *RowLayout) RowAt(p Point) (Row, bool) {
	if p.Y < l.cfg.Origin.Y || len(l.rows) == 0 {
		return Row{}, false
	}
	i := int((p.Y - l.cfg.Origin.Y) / l.cfg.RowHeight)
	if i < 0 || i >= len(l.rows) || !l.visible(i) {
		return Row{}, false
	}
	// The whole line is clickable, indentation included.
	if p.X < l.cfg.Origin.X || p.X >= l.cfg.Origin.X+l.cfg.Width {
		return Row{}, false
	}
	return l.rows[i], true
}

// Bottom is the lower edge of the last row, or the origin when empty.
func (l *RowLayout) Bottom() float64 {
	return l.cfg.Origin.Y + float64(len(l.rows))*l.cfg.RowHeight
}
