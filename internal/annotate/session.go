package annotate

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Tool selects how pointer gestures are interpreted. Selecting a new tool
// never touches committed annotations, only future input.
type Tool int

const (
	ToolArrow Tool = iota
	ToolCircle
	ToolRect
	ToolFreehand
	ToolText
)

func (t Tool) String() string {
	switch t {
	case ToolArrow:
		return "arrow"
	case ToolCircle:
		return "circle"
	case ToolRect:
		return "rect"
	case ToolFreehand:
		return "freehand"
	case ToolText:
		return "text"
	}
	return fmt.Sprintf("Tool(%d)", int(t))
}

// Session is the ephemeral drawing state of one editor: active tool, color
// and width, plus the in-progress gesture. It is never persisted and resets
// on commit, cancel, or tool change.
type Session struct {
	Tool  Tool
	Color string
	Width float64

	dragging   bool
	origin     Point
	trail      []Point
	textAnchor *Point
}

func NewSession() *Session {
	return &Session{
		Tool:  ToolFreehand,
		Color: "#000000",
		Width: 3,
	}
}

// SetTool switches tools, abandoning any in-progress gesture so state never
// leaks across gestures.
func (s *Session) SetTool(t Tool) {
	s.Tool = t
	s.reset()
}

func (s *Session) reset() {
	s.dragging = false
	s.trail = nil
	s.textAnchor = nil
}

// Dragging reports whether a drag gesture is in progress.
func (s *Session) Dragging() bool { return s.dragging }

// Origin returns the drag origin; only meaningful while Dragging.
func (s *Session) Origin() Point { return s.origin }

// Trail returns the in-progress freehand point list.
func (s *Session) Trail() []Point { return s.trail }

// BeginDrag starts a gesture at p (native coordinates). For the text tool
// it records the anchor for a later CommitText instead of entering a drag.
func (s *Session) BeginDrag(p Point) {
	switch s.Tool {
	case ToolText:
		anchor := p
		s.textAnchor = &anchor
	case ToolArrow, ToolCircle, ToolRect, ToolFreehand:
		s.dragging = true
		s.origin = p
		s.trail = []Point{p}
	default:
		panic(fmt.Sprintf("annotate: unknown tool %v", s.Tool))
	}
}

// ExtendDrag records a pointer move. For freehand it grows the trail and
// returns the newest segment endpoints so the caller can draw incrementally;
// for shape tools it only updates the preview endpoint.
func (s *Session) ExtendDrag(p Point) (from, to Point, segment bool) {
	if !s.dragging {
		return Point{}, Point{}, false
	}
	if s.Tool == ToolFreehand {
		prev := s.trail[len(s.trail)-1]
		s.trail = append(s.trail, p)
		return prev, p, true
	}
	// Shape tools keep only origin and current point; the caller rebuilds
	// the preview from the origin-to-p delta.
	s.trail = []Point{s.origin, p}
	return Point{}, Point{}, false
}

// Preview builds the uncommitted annotation for the current drag state, for
// the live overlay. Returns nil when there is nothing to draw yet.
func (s *Session) Preview(current Point) Annotation {
	if !s.dragging {
		return nil
	}
	return s.build(current)
}

// EndDrag commits the gesture ending at p. Returns nil when the gesture does
// not produce an annotation: a freehand tap with fewer than two points is
// discarded rather than committing an invisible record.
func (s *Session) EndDrag(p Point) Annotation {
	if !s.dragging {
		return nil
	}
	var a Annotation
	if s.Tool == ToolFreehand {
		if len(s.trail) >= 2 {
			a = s.build(p)
		}
	} else {
		a = s.build(p)
	}
	s.reset()
	return a
}

// CancelDrag abandons an in-progress gesture without committing.
func (s *Session) CancelDrag() { s.reset() }

// PendingText reports whether a text anchor is awaiting input.
func (s *Session) PendingText() bool { return s.textAnchor != nil }

// CommitText finalizes the text tool. Empty or whitespace-only input is
// discarded without committing; this is product behavior, not an error.
func (s *Session) CommitText(body string) Annotation {
	anchor := s.textAnchor
	s.reset()
	if anchor == nil || strings.TrimSpace(body) == "" {
		return nil
	}
	return &Text{
		Attrs: s.attrs(*anchor),
		Body:  body,
	}
}

// CancelText discards a pending text anchor.
func (s *Session) CancelText() { s.textAnchor = nil }

func (s *Session) attrs(anchor Point) Attrs {
	return Attrs{
		ID:        uuid.NewString(),
		X:         anchor.X,
		Y:         anchor.Y,
		Color:     s.Color,
		Width:     s.Width,
		CreatedAt: time.Now(),
	}
}

func (s *Session) build(current Point) Annotation {
	dx := current.X - s.origin.X
	dy := current.Y - s.origin.Y
	switch s.Tool {
	case ToolArrow:
		return &Arrow{Attrs: s.attrs(s.origin), DX: dx, DY: dy}
	case ToolCircle:
		return &Circle{Attrs: s.attrs(s.origin), DX: dx, DY: dy}
	case ToolRect:
		return &Rect{Attrs: s.attrs(s.origin), DX: dx, DY: dy}
	case ToolFreehand:
		points := make([]Point, len(s.trail))
		copy(points, s.trail)
		return &Freehand{Attrs: s.attrs(s.trail[0]), Points: points}
	}
	panic(fmt.Sprintf("annotate: unknown tool %v", s.Tool))
}
