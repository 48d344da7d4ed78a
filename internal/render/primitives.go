// Package render draws annotations onto RGBA rasters. The same routines back
// the live editor preview and the flattened export, so what the user saw
// while editing is exactly what gets saved.
package render

import (
	"image"
	"image/color"
	"math"
)

// ParseHexColor decodes "#rrggbb" (or "#rgb") into an opaque color.
// Malformed input falls back to black, matching how the editor treats an
// unknown palette value.
func ParseHexColor(s string) color.NRGBA {
	c := color.NRGBA{A: 255}
	hexVal := func(b byte) (uint8, bool) {
		switch {
		case b >= '0' && b <= '9':
			return b - '0', true
		case b >= 'a' && b <= 'f':
			return b - 'a' + 10, true
		case b >= 'A' && b <= 'F':
			return b - 'A' + 10, true
		}
		return 0, false
	}
	if len(s) == 7 && s[0] == '#' {
		ok := true
		var v [6]uint8
		for i := 0; i < 6; i++ {
			h, good := hexVal(s[i+1])
			if !good {
				ok = false
				break
			}
			v[i] = h
		}
		if ok {
			c.R = v[0]<<4 | v[1]
			c.G = v[2]<<4 | v[3]
			c.B = v[4]<<4 | v[5]
			return c
		}
	}
	if len(s) == 4 && s[0] == '#' {
		r, okR := hexVal(s[1])
		g, okG := hexVal(s[2])
		b, okB := hexVal(s[3])
		if okR && okG && okB {
			c.R = r<<4 | r
			c.G = g<<4 | g
			c.B = b<<4 | b
			return c
		}
	}
	return color.NRGBA{A: 255}
}

func setThickPixel(img *image.RGBA, x, y, thick int, col color.Color) {
	r := thick / 2
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			px := x + dx
			py := y + dy
			if image.Pt(px, py).In(img.Bounds()) {
				img.Set(px, py, col)
			}
		}
	}
}

// Line draws a thick line with Bresenham stepping.
func Line(img *image.RGBA, x0, y0, x1, y1 int, col color.Color, thick int) {
	if thick < 1 {
		thick = 1
	}
	dx := math.Abs(float64(x1 - x0))
	dy := math.Abs(float64(y1 - y0))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		setThickPixel(img, x0, y0, thick, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func circleThin(img *image.RGBA, cx, cy, r int, col color.Color) {
	x := r
	y := 0
	err := 1 - r
	for x >= y {
		pts := [][2]int{{x, y}, {y, x}, {-y, x}, {-x, y}, {-x, -y}, {-y, -x}, {y, -x}, {x, -y}}
		for _, p := range pts {
			px := cx + p[0]
			py := cy + p[1]
			if image.Pt(px, py).In(img.Bounds()) {
				img.Set(px, py, col)
			}
		}
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2 * (y - x + 1)
		}
	}
}

// CircleOutline draws a circle stroked to the given thickness by stacking
// midpoint circles around the nominal radius.
func CircleOutline(img *image.RGBA, cx, cy, r int, col color.Color, thick int) {
	if thick <= 1 {
		circleThin(img, cx, cy, r, col)
		return
	}
	start := -thick / 2
	for i := 0; i < thick; i++ {
		rr := r + start + i
		if rr >= 0 {
			circleThin(img, cx, cy, rr, col)
		}
	}
}

// RectOutline draws an axis-aligned box. Negative width/height (drag
// direction) is normalized here.
func RectOutline(img *image.RGBA, x, y, w, h int, col color.Color, thick int) {
	if w < 0 {
		x += w
		w = -w
	}
	if h < 0 {
		y += h
		h = -h
	}
	Line(img, x, y, x+w, y, col, thick)
	Line(img, x+w, y, x+w, y+h, col, thick)
	Line(img, x+w, y+h, x, y+h, col, thick)
	Line(img, x, y+h, x, y, col, thick)
}

// ArrowHeadLength is the head segment length for a given stroke width.
func ArrowHeadLength(width float64) float64 {
	return math.Max(10, width*3)
}

// ArrowHead computes the free endpoints of the two head segments for an
// arrow from (x0,y0) to (x1,y1). Each segment leaves the tip at ±30° from
// the body direction, so the head is symmetric about the arrow's axis.
func ArrowHead(x0, y0, x1, y1, width float64) (hx1, hy1, hx2, hy2 float64) {
	angle := math.Atan2(y1-y0, x1-x0)
	size := ArrowHeadLength(width)
	a1 := angle + math.Pi/6
	a2 := angle - math.Pi/6
	hx1 = x1 - math.Cos(a1)*size
	hy1 = y1 - math.Sin(a1)*size
	hx2 = x1 - math.Cos(a2)*size
	hy2 = y1 - math.Sin(a2)*size
	return hx1, hy1, hx2, hy2
}

// ArrowLine draws an arrow body plus its two head segments.
func ArrowLine(img *image.RGBA, x0, y0, x1, y1 float64, col color.Color, thick int) {
	Line(img, round(x0), round(y0), round(x1), round(y1), col, thick)
	hx1, hy1, hx2, hy2 := ArrowHead(x0, y0, x1, y1, float64(thick))
	Line(img, round(x1), round(y1), round(hx1), round(hy1), col, thick)
	Line(img, round(x1), round(y1), round(hx2), round(hy2), col, thick)
}

func round(f float64) int {
	return int(math.Round(f))
}
