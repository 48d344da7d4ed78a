package render

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	"OrthoMark/internal/annotate"
)

// Draw renders one annotation onto dst in native coordinates. The dispatch
// is exhaustive over the five kinds; anything else is a programming error.
func Draw(dst *image.RGBA, a annotate.Annotation) {
	attrs := a.Base()
	col := ParseHexColor(attrs.Color)
	thick := int(attrs.Width)
	if thick < 1 {
		thick = 1
	}
	switch v := a.(type) {
	case *annotate.Arrow:
		ArrowLine(dst, v.X, v.Y, v.X+v.DX, v.Y+v.DY, col, thick)
	case *annotate.Circle:
		center := v.Center()
		CircleOutline(dst, round(center.X), round(center.Y), round(v.Radius()), col, thick)
	case *annotate.Rect:
		RectOutline(dst, round(v.X), round(v.Y), round(v.DX), round(v.DY), col, thick)
	case *annotate.Freehand:
		for i := 1; i < len(v.Points); i++ {
			p0 := v.Points[i-1]
			p1 := v.Points[i]
			Line(dst, round(p0.X), round(p0.Y), round(p1.X), round(p1.Y), col, thick)
		}
	case *annotate.Text:
		Label(dst, round(v.X), round(v.Y), v.Body, col, v.Width)
	default:
		panic(fmt.Sprintf("render: unknown annotation kind %q", a.Kind()))
	}
}

// Segment draws one freehand segment. The editor uses this for incremental
// preview so a move event never forces a full redraw.
func Segment(dst *image.RGBA, p0, p1 annotate.Point, hexColor string, width float64) {
	thick := int(width)
	if thick < 1 {
		thick = 1
	}
	Line(dst, round(p0.X), round(p0.Y), round(p1.X), round(p1.Y), ParseHexColor(hexColor), thick)
}

// Flatten composites the base photo and every annotation, in commit order,
// onto a fresh RGBA at the photo's native resolution. Later annotations draw
// over earlier ones.
func Flatten(base image.Image, anns []annotate.Annotation) *image.RGBA {
	b := base.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), base, b.Min, draw.Src)
	for _, a := range anns {
		Draw(out, a)
	}
	return out
}

// EncodePNG produces the exportable blob for a flattened image.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding flattened image: %w", err)
	}
	return buf.Bytes(), nil
}
