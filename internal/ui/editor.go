package ui

import (
	"image"
	"image/color"
	"log"
	"sync"

	"OrthoMark/internal/annotate"
	"OrthoMark/internal/geometry"
	"OrthoMark/internal/render"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// Editor is the annotation surface: it shows the photo letterboxed into the
// widget, interprets pointer gestures through the drawing session, and keeps
// the committed sequence plus its undo history. All drawing goes through the
// render package, so the on-screen preview and the exported flattened image
// are produced by the same routines.
type Editor struct {
	widget.BaseWidget

	mu        sync.Mutex
	base      image.Image
	committed *image.RGBA // base photo + committed annotations
	working   *image.RGBA // committed + in-progress preview, what the raster shows
	transform geometry.Transform

	store    *annotate.Store
	history  *annotate.History
	session  *annotate.Session
	readOnly bool

	img *canvas.Image
	win fyne.Window

	// OnCommit fires for every newly committed annotation.
	OnCommit func(a annotate.Annotation)
	// OnRestore fires whenever the whole sequence is replaced (undo, redo,
	// clear, load), with the sequence now in effect.
	OnRestore func(anns []annotate.Annotation)
	// OnHistoryChange fires after any operation that moves the undo/redo
	// position, so controls can track what is currently possible.
	OnHistoryChange func(canUndo, canRedo bool)
}

var _ fyne.Widget = (*Editor)(nil)
var _ fyne.Draggable = (*Editor)(nil)
var _ desktop.Mouseable = (*Editor)(nil)

// NewEditor creates an editor over a decoded photo. initial may carry a
// previously saved annotation sequence; readOnly disables every mutation
// path (viewer mode).
func NewEditor(base image.Image, initial []annotate.Annotation, readOnly bool) *Editor {
	e := &Editor{
		base:     base,
		store:    annotate.NewStore(initial),
		history:  annotate.NewHistory(initial),
		session:  annotate.NewSession(),
		readOnly: readOnly,
	}
	e.committed = render.Flatten(base, e.store.All())
	e.working = cloneRGBA(e.committed)
	e.img = canvas.NewImageFromImage(e.working)
	e.img.FillMode = canvas.ImageFillContain
	e.img.ScaleMode = canvas.ImageScaleSmooth
	e.ExtendBaseWidget(e)
	return e
}

// SetWindow hands the editor the window it lives in; needed for the text
// entry dialog.
func (e *Editor) SetWindow(win fyne.Window) { e.win = win }

func (e *Editor) Session() *annotate.Session { return e.session }

// Annotations returns a copy of the committed sequence in commit order.
func (e *Editor) Annotations() []annotate.Annotation { return e.store.All() }

// FlattenPNG exports the base photo plus all committed annotations at
// native resolution. The surface lives only for this call.
func (e *Editor) FlattenPNG() ([]byte, error) {
	return render.EncodePNG(render.Flatten(e.base, e.store.All()))
}

// BasePNG encodes the clean photo without annotations, for mirror viewers
// that overlay the sequence themselves.
func (e *Editor) BasePNG() ([]byte, error) {
	return render.EncodePNG(render.Flatten(e.base, nil))
}

// PhotoSize returns the photo's native pixel dimensions.
func (e *Editor) PhotoSize() (int, int) {
	b := e.base.Bounds()
	return b.Dx(), b.Dy()
}

func (e *Editor) SetTool(t annotate.Tool) {
	e.mu.Lock()
	e.session.SetTool(t)
	e.resetWorkingLocked()
	e.mu.Unlock()
	e.Refresh()
}

func (e *Editor) SetColor(hex string) { e.session.Color = hex }
func (e *Editor) SetStroke(w float64) { e.session.Width = w }
func (e *Editor) CanUndo() bool       { return e.history.CanUndo() }
func (e *Editor) CanRedo() bool       { return e.history.CanRedo() }

// Undo restores the previous snapshot, if any.
func (e *Editor) Undo() {
	if e.readOnly {
		return
	}
	e.mu.Lock()
	snap, ok := e.history.Undo()
	if !ok {
		e.mu.Unlock()
		return
	}
	e.store.ReplaceAll(snap)
	e.rebuildLocked()
	e.mu.Unlock()
	e.Refresh()
	e.notifyRestore()
}

// Redo re-applies the next snapshot, if any.
func (e *Editor) Redo() {
	if e.readOnly {
		return
	}
	e.mu.Lock()
	snap, ok := e.history.Redo()
	if !ok {
		e.mu.Unlock()
		return
	}
	e.store.ReplaceAll(snap)
	e.rebuildLocked()
	e.mu.Unlock()
	e.Refresh()
	e.notifyRestore()
}

// Clear removes every annotation. It pushes a snapshot first, so clearing
// stays undoable.
func (e *Editor) Clear() {
	if e.readOnly {
		return
	}
	e.mu.Lock()
	e.store.Clear()
	e.history.Push(nil)
	e.rebuildLocked()
	e.mu.Unlock()
	e.Refresh()
	e.notifyRestore()
}

// Load replaces the sequence with a saved one, e.g. from a file.
func (e *Editor) Load(anns []annotate.Annotation) {
	e.mu.Lock()
	e.store.ReplaceAll(anns)
	e.history.Push(anns)
	e.rebuildLocked()
	e.mu.Unlock()
	e.Refresh()
	e.notifyRestore()
}

// ApplyRemote appends an annotation received from a mirror host. Viewer
// path: no history, no callbacks.
func (e *Editor) ApplyRemote(a annotate.Annotation) {
	e.mu.Lock()
	e.store.Append(a)
	render.Draw(e.committed, a)
	e.working = cloneRGBA(e.committed)
	e.img.Image = e.working
	e.mu.Unlock()
	e.Refresh()
}

// ApplySnapshot replaces the sequence from a mirror host broadcast.
func (e *Editor) ApplySnapshot(anns []annotate.Annotation) {
	e.mu.Lock()
	e.store.ReplaceAll(anns)
	e.rebuildLocked()
	e.mu.Unlock()
	e.Refresh()
}

func (e *Editor) MouseDown(ev *desktop.MouseEvent) {
	if e.readOnly || ev.Button != desktop.MouseButtonPrimary {
		return
	}
	p := e.toNative(ev.Position)
	if e.session.Tool == annotate.ToolText {
		e.session.BeginDrag(p)
		e.promptText()
		return
	}
	e.session.BeginDrag(p)
}

func (e *Editor) Dragged(ev *fyne.DragEvent) {
	if e.readOnly || !e.session.Dragging() {
		return
	}
	p := e.toNative(ev.Position)
	e.mu.Lock()
	from, to, segment := e.session.ExtendDrag(p)
	if segment {
		// Freehand: draw only the newest segment, no full redraw.
		render.Segment(e.working, from, to, e.session.Color, e.session.Width)
	} else {
		// Shape preview: committed state plus the in-progress shape. The
		// preview annotation is never stored.
		e.resetWorkingLocked()
		if preview := e.session.Preview(p); preview != nil {
			render.Draw(e.working, preview)
		}
	}
	e.mu.Unlock()
	e.Refresh()
}

func (e *Editor) DragEnd() {}

func (e *Editor) MouseUp(ev *desktop.MouseEvent) {
	if e.readOnly || ev.Button != desktop.MouseButtonPrimary || !e.session.Dragging() {
		return
	}
	p := e.toNative(ev.Position)
	a := e.session.EndDrag(p)
	if a == nil {
		// Degenerate gesture; drop the preview.
		e.mu.Lock()
		e.resetWorkingLocked()
		e.mu.Unlock()
		e.Refresh()
		return
	}
	e.commit(a)
}

func (e *Editor) MouseIn(*desktop.MouseEvent)    {}
func (e *Editor) MouseOut()                      {}
func (e *Editor) MouseMoved(*desktop.MouseEvent) {}

func (e *Editor) commit(a annotate.Annotation) {
	e.mu.Lock()
	e.store.Append(a)
	e.history.Push(e.store.All())
	render.Draw(e.committed, a)
	e.working = cloneRGBA(e.committed)
	e.img.Image = e.working
	e.mu.Unlock()
	e.Refresh()
	if e.OnCommit != nil {
		e.OnCommit(a)
	}
	e.notifyHistory()
}

func (e *Editor) notifyRestore() {
	if e.OnRestore != nil {
		e.OnRestore(e.store.All())
	}
	e.notifyHistory()
}

func (e *Editor) notifyHistory() {
	if e.OnHistoryChange != nil {
		e.OnHistoryChange(e.history.CanUndo(), e.history.CanRedo())
	}
}

func (e *Editor) promptText() {
	if e.win == nil {
		log.Println("editor: no window attached, cannot prompt for text")
		e.session.CancelText()
		return
	}
	entry := widget.NewEntry()
	entry.SetPlaceHolder("Label")
	items := []*widget.FormItem{widget.NewFormItem("Text", entry)}
	dialog.ShowForm("Add label", "Place", "Cancel", items, func(ok bool) {
		if !ok {
			e.session.CancelText()
			return
		}
		if a := e.session.CommitText(entry.Text); a != nil {
			e.commit(a)
		}
	}, e.win)
}

// rebuildLocked re-flattens the committed state; call with e.mu held.
func (e *Editor) rebuildLocked() {
	e.committed = render.Flatten(e.base, e.store.All())
	e.working = cloneRGBA(e.committed)
	e.img.Image = e.working
}

// resetWorkingLocked drops any preview; call with e.mu held.
func (e *Editor) resetWorkingLocked() {
	e.working = cloneRGBA(e.committed)
	e.img.Image = e.working
}

// toNative maps a widget-local pointer position to photo pixels. The
// transform is recomputed on every layout pass, so it is never stale here.
func (e *Editor) toNative(pos fyne.Position) annotate.Point {
	x, y := e.transform.ToNative(float64(pos.X), float64(pos.Y))
	return annotate.Point{X: x, Y: y}
}

func (e *Editor) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(color.NRGBA{R: 28, G: 28, B: 30, A: 255})
	return &editorRenderer{editor: e, background: bg}
}

type editorRenderer struct {
	editor     *Editor
	background *canvas.Rectangle
}

func (r *editorRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	r.editor.img.Resize(size)
	b := r.editor.base.Bounds()
	r.editor.transform = geometry.Fit(
		float64(b.Dx()), float64(b.Dy()),
		float64(size.Width), float64(size.Height),
	)
}

func (r *editorRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 300)
}

func (r *editorRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.background, r.editor.img}
}

func (r *editorRenderer) Refresh() {
	r.editor.img.Refresh()
	canvas.Refresh(r.editor)
}

func (r *editorRenderer) Destroy() {}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}
