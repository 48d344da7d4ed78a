package render

import (
	"image"
	"image/color"
	"image/draw"
	"log"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const platePadding = 4

var plateColor = color.NRGBA{R: 255, G: 255, B: 255, A: 200}

var (
	faceMu    sync.Mutex
	faceCache = map[int]font.Face{}
	parseOnce sync.Once
	goFont    *opentype.Font
)

// faceForSize returns a cached face at the given pixel size. Label size
// tracks stroke width, so a fixed bitmap face would not do; basicfont is
// only the fallback if the embedded TTF fails to parse.
func faceForSize(size int) font.Face {
	faceMu.Lock()
	defer faceMu.Unlock()
	if f, ok := faceCache[size]; ok {
		return f
	}
	parseOnce.Do(func() {
		f, err := opentype.Parse(goregular.TTF)
		if err != nil {
			log.Printf("render: parsing embedded font: %v", err)
			return
		}
		goFont = f
	})
	var face font.Face
	if goFont != nil {
		f, err := opentype.NewFace(goFont, &opentype.FaceOptions{
			Size:    float64(size),
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			log.Printf("render: building %dpx face: %v", size, err)
			face = basicfont.Face7x13
		} else {
			face = f
		}
	} else {
		face = basicfont.Face7x13
	}
	faceCache[size] = face
	return face
}

// TextSize is the label pixel size for a given stroke width.
func TextSize(width float64) int {
	return int(math.Max(16, width*6))
}

// Label draws body at (x, y) over a semi-opaque white plate sized to the
// measured text bounds plus padding, so labels stay legible on any photo
// content. (x, y) is the text baseline origin.
func Label(img *image.RGBA, x, y int, body string, col color.Color, strokeWidth float64) {
	if body == "" {
		return
	}
	face := faceForSize(TextSize(strokeWidth))
	metrics := face.Metrics()
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	w := d.MeasureString(body).Ceil()
	ascent := metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()

	plate := image.Rect(
		x-platePadding,
		y-ascent-platePadding,
		x+w+platePadding,
		y+descent+platePadding,
	)
	draw.Draw(img, plate.Intersect(img.Bounds()), image.NewUniform(plateColor), image.Point{}, draw.Over)
	d.DrawString(body)
}
