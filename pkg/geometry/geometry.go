// Package geometry describes on-screen rectangles and the oracle the drag
// engine queries for them. Units are whatever the host renders in: pixels in
// a browser, cells in a terminal.
package geometry

import "fmt"

// Point is a pointer position.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

func (p Point) String() string { return fmt.Sprintf("(%g,%g)", p.X, p.Y) }

// Rect is an axis-aligned rectangle. Y grows downwards.
type Rect struct {
	Top    float64 `json:"top" yaml:"top"`
	Bottom float64 `json:"bottom" yaml:"bottom"`
	Left   float64 `json:"left" yaml:"left"`
	Right  float64 `json:"right" yaml:"right"`
}

// RectAt builds a rectangle from its top-left corner and size.
func RectAt(topLeft Point, width, height float64) Rect {
	return Rect{
		Top:    topLeft.Y,
		Bottom: topLeft.Y + height,
		Left:   topLeft.X,
		Right:  topLeft.X + width,
	}
}

func (r Rect) Width() float64  { return r.Right - r.Left }
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// MidY is the vertical midpoint.
func (r Rect) MidY() float64 { return r.Top + r.Height()/2 }

// TopLeft returns the top-left corner.
func (r Rect) TopLeft() Point { return Point{X: r.Left, Y: r.Top} }

// ContainsY reports Top < y < Bottom. Both edges are excluded, so a row
// boundary belongs to neither neighbour.
func (r Rect) ContainsY(y float64) bool { return r.Top < y && y < r.Bottom }

// BandContainsY reports Top <= y < Bottom.
func (r Rect) BandContainsY(y float64) bool { return r.Top <= y && y < r.Bottom }

// Contains reports whether p lies inside r, top-left edges inclusive.
func (r Rect) Contains(p Point) bool {
	return r.Left <= p.X && p.X < r.Right && r.Top <= p.Y && p.Y < r.Bottom
}

// MoveTo keeps the size and moves the top-left corner to p.
func (r Rect) MoveTo(p Point) Rect { return RectAt(p, r.Width(), r.Height()) }

func (r Rect) String() string {
	return fmt.Sprintf("[%g,%g %gx%g]", r.Left, r.Top, r.Width(), r.Height())
}

//go:generate mockgen -destination=mocks/mock_oracle.go -package=mocks github.com/mattsolo1/grove-outline/pkg/geometry Oracle

// Oracle answers geometry questions about what is on screen right now. The
// engine re-queries it every resolution cycle, because inserting or moving the
// placeholder shifts neighbouring rows between samples.
type Oracle interface {
	// RectOf returns the current rectangle of a rendered node.
	RectOf(id string) (Rect, bool)
	// Pointer returns the latest pointer position.
	Pointer() Point
	// RenderedIDs lists visible non-placeholder nodes in document order.
	RenderedIDs() []string
}
