package annotate

import "testing"

func TestFreehandTapIsDiscarded(t *testing.T) {
	t.Parallel()

	s := NewSession()
	s.SetTool(ToolFreehand)
	s.BeginDrag(Point{10, 10})
	if a := s.EndDrag(Point{10, 10}); a != nil {
		t.Fatalf("a tap without drag must not commit, got %v", a.Kind())
	}
	if s.Dragging() {
		t.Fatal("session must reset after the gesture ends")
	}
}

func TestFreehandDragCommitsTrail(t *testing.T) {
	t.Parallel()

	s := NewSession()
	s.SetTool(ToolFreehand)
	s.Color = "#1e88e5"
	s.Width = 5

	s.BeginDrag(Point{0, 0})
	from, to, segment := s.ExtendDrag(Point{10, 5})
	if !segment {
		t.Fatal("freehand moves must report an incremental segment")
	}
	if from != (Point{0, 0}) || to != (Point{10, 5}) {
		t.Fatalf("segment endpoints = %v -> %v", from, to)
	}
	s.ExtendDrag(Point{20, 10})

	a := s.EndDrag(Point{20, 10})
	f, ok := a.(*Freehand)
	if !ok {
		t.Fatalf("expected freehand commit, got %T", a)
	}
	if len(f.Points) != 3 {
		t.Fatalf("trail has %d points, want 3", len(f.Points))
	}
	if f.Color != "#1e88e5" || f.Width != 5 {
		t.Fatalf("commit lost session style: %q width %v", f.Color, f.Width)
	}
	if f.ID == "" {
		t.Fatal("committed annotation needs an identifier")
	}
	if f.X != 0 || f.Y != 0 {
		t.Fatalf("anchor = (%v, %v), want trail start", f.X, f.Y)
	}
}

func TestShapeCommitRecordsDelta(t *testing.T) {
	t.Parallel()

	cases := []struct {
		tool Tool
		kind Kind
	}{
		{ToolArrow, KindArrow},
		{ToolCircle, KindCircle},
		{ToolRect, KindRect},
	}
	for _, tc := range cases {
		s := NewSession()
		s.SetTool(tc.tool)
		s.BeginDrag(Point{10, 20})
		s.ExtendDrag(Point{15, 30})
		a := s.EndDrag(Point{30, 50})
		if a == nil {
			t.Fatalf("%v: no commit", tc.tool)
		}
		if a.Kind() != tc.kind {
			t.Fatalf("%v committed %v", tc.tool, a.Kind())
		}
		attrs := a.Base()
		if attrs.X != 10 || attrs.Y != 20 {
			t.Fatalf("%v anchor = (%v, %v)", tc.tool, attrs.X, attrs.Y)
		}
		var dx, dy float64
		switch v := a.(type) {
		case *Arrow:
			dx, dy = v.DX, v.DY
		case *Circle:
			dx, dy = v.DX, v.DY
		case *Rect:
			dx, dy = v.DX, v.DY
		}
		if dx != 20 || dy != 30 {
			t.Fatalf("%v delta = (%v, %v), want (20, 30)", tc.tool, dx, dy)
		}
	}
}

func TestZeroAreaShapeStillCommits(t *testing.T) {
	t.Parallel()

	// Degenerate shapes are stored as-is; only freehand taps are filtered.
	s := NewSession()
	s.SetTool(ToolRect)
	s.BeginDrag(Point{5, 5})
	a := s.EndDrag(Point{5, 5})
	if a == nil {
		t.Fatal("zero-area rectangle must still commit")
	}
}

func TestShapePreviewIsNotACommit(t *testing.T) {
	t.Parallel()

	s := NewSession()
	s.SetTool(ToolCircle)
	s.BeginDrag(Point{0, 0})
	p := s.Preview(Point{40, 0})
	c, ok := p.(*Circle)
	if !ok {
		t.Fatalf("preview = %T", p)
	}
	if c.DX != 40 || c.DY != 0 {
		t.Fatalf("preview delta = (%v, %v)", c.DX, c.DY)
	}
	if !s.Dragging() {
		t.Fatal("preview must not end the gesture")
	}
}

func TestTextFlow(t *testing.T) {
	t.Parallel()

	s := NewSession()
	s.SetTool(ToolText)
	s.BeginDrag(Point{12, 34})
	if s.Dragging() {
		t.Fatal("text tool must not enter a drag")
	}
	if !s.PendingText() {
		t.Fatal("text tool must record an anchor")
	}

	a := s.CommitText("upper molar")
	txt, ok := a.(*Text)
	if !ok {
		t.Fatalf("expected text commit, got %T", a)
	}
	if txt.X != 12 || txt.Y != 34 || txt.Body != "upper molar" {
		t.Fatalf("text commit = %+v", txt)
	}
	if s.PendingText() {
		t.Fatal("anchor must clear after commit")
	}
}

func TestEmptyTextIsDiscarded(t *testing.T) {
	t.Parallel()

	s := NewSession()
	s.SetTool(ToolText)
	s.BeginDrag(Point{1, 2})
	if a := s.CommitText("   "); a != nil {
		t.Fatal("whitespace-only text must be discarded")
	}

	s.BeginDrag(Point{1, 2})
	s.CancelText()
	if a := s.CommitText("orphan"); a != nil {
		t.Fatal("commit after cancel must produce nothing")
	}
}

func TestToolChangeAbandonsGesture(t *testing.T) {
	t.Parallel()

	s := NewSession()
	s.SetTool(ToolFreehand)
	s.BeginDrag(Point{0, 0})
	s.ExtendDrag(Point{5, 5})

	s.SetTool(ToolArrow)
	if s.Dragging() {
		t.Fatal("tool change must abandon the in-progress gesture")
	}
	if a := s.EndDrag(Point{5, 5}); a != nil {
		t.Fatal("no commit may leak across a tool change")
	}
}
