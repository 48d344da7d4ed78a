package annotate

import (
	"math"
	"time"
)

// Point is a position in the photo's native pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Kind identifies one of the five annotation shapes.
type Kind string

const (
	KindArrow    Kind = "arrow"
	KindCircle   Kind = "circle"
	KindRect     Kind = "rect"
	KindFreehand Kind = "freehand"
	KindText     Kind = "text"
)

// Attrs holds the fields every annotation carries. Coordinates are native
// image pixels, never display pixels.
type Attrs struct {
	ID        string    `json:"id"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	Color     string    `json:"color"` // hex, e.g. "#e53935"
	Width     float64   `json:"width"`
	CreatedAt time.Time `json:"created_at"`
}

// Annotation is a single committed mark on a photo. Once committed its
// geometry never changes; edits are delete and re-add.
type Annotation interface {
	Kind() Kind
	Base() Attrs
	Clone() Annotation
}

// Arrow points from the anchor to anchor+delta.
type Arrow struct {
	Attrs
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

func (a *Arrow) Kind() Kind  { return KindArrow }
func (a *Arrow) Base() Attrs { return a.Attrs }
func (a *Arrow) Clone() Annotation {
	c := *a
	return &c
}

// Circle is defined by the drag delta: the drag distance is the diameter.
type Circle struct {
	Attrs
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

func (c *Circle) Kind() Kind  { return KindCircle }
func (c *Circle) Base() Attrs { return c.Attrs }
func (c *Circle) Clone() Annotation {
	cp := *c
	return &cp
}

// Center is the midpoint of the drag.
func (c *Circle) Center() Point {
	return Point{X: c.X + c.DX/2, Y: c.Y + c.DY/2}
}

// Radius is half the Euclidean drag distance.
func (c *Circle) Radius() float64 {
	return math.Hypot(c.DX, c.DY) / 2
}

// Rect is an axis-aligned box from the anchor. Deltas may be negative,
// recording the drag direction.
type Rect struct {
	Attrs
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

func (r *Rect) Kind() Kind  { return KindRect }
func (r *Rect) Base() Attrs { return r.Attrs }
func (r *Rect) Clone() Annotation {
	c := *r
	return &c
}

// Freehand is the point trail of a single drag gesture. The anchor is the
// first point.
type Freehand struct {
	Attrs
	Points []Point `json:"points"`
}

func (f *Freehand) Kind() Kind  { return KindFreehand }
func (f *Freehand) Base() Attrs { return f.Attrs }
func (f *Freehand) Clone() Annotation {
	c := *f
	c.Points = make([]Point, len(f.Points))
	copy(c.Points, f.Points)
	return &c
}

// Text is a label anchored at the click position.
type Text struct {
	Attrs
	Body string `json:"body"`
}

func (t *Text) Kind() Kind  { return KindText }
func (t *Text) Base() Attrs { return t.Attrs }
func (t *Text) Clone() Annotation {
	c := *t
	return &c
}

// CloneSequence deep-copies a whole annotation sequence.
func CloneSequence(anns []Annotation) []Annotation {
	out := make([]Annotation, len(anns))
	for i, a := range anns {
		out[i] = a.Clone()
	}
	return out
}
