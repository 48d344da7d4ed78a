// Package export writes the printable PDF report for an annotated photo.
package export

import (
	"bytes"
	"fmt"
	"io"

	"OrthoMark/internal/annotate"

	"github.com/jung-kurt/gofpdf"
)

const (
	pageMargin  = 15.0 // mm
	contentW    = 180.0
	maxPhotoH   = 190.0
	summaryStep = 6.0
)

// Report writes an A4 page with the flattened photo followed by a summary of
// the annotations on it. pxW and pxH are the photo's native pixel size, used
// to keep its aspect ratio on the page.
func Report(w io.Writer, title string, png []byte, pxW, pxH int, anns []annotate.Annotation) error {
	if pxW <= 0 || pxH <= 0 {
		return fmt.Errorf("invalid photo size %dx%d", pxW, pxH)
	}

	p := gofpdf.New("P", "mm", "A4", "")
	p.AddPage()
	p.SetFont("Helvetica", "B", 16)
	p.CellFormat(contentW, 10, title, "", 1, "L", false, 0, "")
	p.Ln(2)

	photoW := contentW
	photoH := photoW * float64(pxH) / float64(pxW)
	if photoH > maxPhotoH {
		photoH = maxPhotoH
		photoW = photoH * float64(pxW) / float64(pxH)
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	p.RegisterImageOptionsReader("photo", opts, bytes.NewReader(png))
	p.ImageOptions("photo", pageMargin, p.GetY(), photoW, photoH, false, opts, 0, "")
	p.SetY(p.GetY() + photoH + 6)

	p.SetFont("Helvetica", "B", 11)
	p.CellFormat(contentW, summaryStep, fmt.Sprintf("Annotations: %d", len(anns)), "", 1, "L", false, 0, "")
	p.SetFont("Helvetica", "", 9)

	counts := map[annotate.Kind]int{}
	for _, a := range anns {
		counts[a.Kind()]++
	}
	for _, kind := range []annotate.Kind{
		annotate.KindArrow, annotate.KindCircle, annotate.KindRect,
		annotate.KindFreehand, annotate.KindText,
	} {
		if counts[kind] == 0 {
			continue
		}
		p.CellFormat(contentW, summaryStep,
			fmt.Sprintf("  %s: %d", kind, counts[kind]), "", 1, "L", false, 0, "")
	}
	for _, a := range anns {
		if t, ok := a.(*annotate.Text); ok {
			p.CellFormat(contentW, summaryStep,
				fmt.Sprintf("  note: %q (%s)", t.Body, t.CreatedAt.Format("2006-01-02 15:04")),
				"", 1, "L", false, 0, "")
		}
	}

	return p.Output(w)
}
