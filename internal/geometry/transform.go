// Package geometry maps between display coordinates and a photo's native
// pixel space.
package geometry

// Transform describes how a native-resolution photo is presented inside a
// display box: a uniform aspect-preserving scale plus letterbox offsets that
// center the photo on the non-binding axis.
//
// A Transform is only valid for the container size it was computed for;
// recompute with Fit on every resize or image reload before accepting
// pointer input, or clicks land on the wrong pixels.
type Transform struct {
	// Scale is native pixels per display pixel.
	Scale float64
	// OffsetX and OffsetY are the letterbox padding in display pixels.
	OffsetX float64
	OffsetY float64
	// DisplayW and DisplayH are the photo's on-screen size in display pixels.
	DisplayW float64
	DisplayH float64
}

// Fit computes the transform for a nativeW x nativeH photo shown inside a
// boxW x boxH container. The binding dimension is whichever axis runs out of
// room first.
func Fit(nativeW, nativeH, boxW, boxH float64) Transform {
	if nativeW <= 0 || nativeH <= 0 || boxW <= 0 || boxH <= 0 {
		return Transform{Scale: 1}
	}
	// Display pixels per native pixel on each axis; the smaller one binds.
	fit := boxW / nativeW
	if h := boxH / nativeH; h < fit {
		fit = h
	}
	dispW := nativeW * fit
	dispH := nativeH * fit
	return Transform{
		Scale:    1 / fit,
		OffsetX:  (boxW - dispW) / 2,
		OffsetY:  (boxH - dispH) / 2,
		DisplayW: dispW,
		DisplayH: dispH,
	}
}

// ToNative converts a display-space point to native image coordinates.
func (t Transform) ToNative(x, y float64) (float64, float64) {
	return (x - t.OffsetX) * t.Scale, (y - t.OffsetY) * t.Scale
}

// ToDisplay converts a native-image point to display coordinates. It is the
// algebraic inverse of ToNative.
func (t Transform) ToDisplay(x, y float64) (float64, float64) {
	return x/t.Scale + t.OffsetX, y/t.Scale + t.OffsetY
}
