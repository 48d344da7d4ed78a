package ui

import (
	"fmt"
	"io"
	"log"

	"OrthoMark/internal/annotate"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// App assembles the editor window. Persistence stays outside the editor:
// saving hands the annotation sequence and the flattened PNG to OnSave, and
// the PDF report body comes from OnExportPDF.
type App struct {
	Win    fyne.Window
	Editor *Editor

	fyneApp fyne.App
	status  *widget.Label

	OnSave      func(anns []annotate.Annotation, png []byte) error
	OnExportPDF func(w io.Writer) error
}

// NewApp builds the full editing window: toolbar, editor surface, status bar.
func NewApp(title string, editor *Editor) *App {
	fyneApp := app.New()
	win := fyneApp.NewWindow(title)
	win.Resize(fyne.NewSize(1100, 800))
	editor.SetWindow(win)

	a := &App{
		Win:     win,
		Editor:  editor,
		fyneApp: fyneApp,
		status:  widget.NewLabel("Ready"),
	}
	toolbar := NewToolbar(editor, win, ToolbarActions{
		Save:      a.save,
		Load:      a.load,
		ExportPDF: a.exportPDF,
	})
	win.SetContent(container.NewBorder(toolbar, a.status, nil, nil, editor))
	return a
}

// NewViewer builds a read-only mirror window: no toolbar, just the photo and
// a status line.
func NewViewer(title string, editor *Editor) *App {
	fyneApp := app.New()
	win := fyneApp.NewWindow(title)
	win.Resize(fyne.NewSize(900, 700))

	a := &App{
		Win:     win,
		Editor:  editor,
		fyneApp: fyneApp,
		status:  widget.NewLabel("Connecting..."),
	}
	win.SetContent(container.NewBorder(nil, a.status, nil, nil, editor))
	return a
}

func (a *App) Run() {
	a.Win.ShowAndRun()
}

// SetStatus updates the status bar; safe to call from any goroutine.
func (a *App) SetStatus(text string) {
	fyne.Do(func() {
		a.status.SetText(text)
	})
}

func (a *App) save() {
	if a.OnSave == nil {
		a.SetStatus("Save not available")
		return
	}
	anns := a.Editor.Annotations()
	blob, err := a.Editor.FlattenPNG()
	if err != nil {
		log.Printf("save: flattening photo: %v", err)
		a.SetStatus("Export failed, nothing was saved")
		return
	}
	if err := a.OnSave(anns, blob); err != nil {
		log.Printf("save: %v", err)
		a.SetStatus(fmt.Sprintf("Save failed: %v", err))
		return
	}
	a.SetStatus(fmt.Sprintf("Saved %d annotations", len(anns)))
}

func (a *App) load() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.Win)
			return
		}
		if reader == nil {
			return
		}
		defer func() {
			if err := reader.Close(); err != nil {
				log.Printf("load: closing reader: %v", err)
			}
		}()
		data, err := io.ReadAll(reader)
		if err != nil {
			a.SetStatus("Error reading file")
			return
		}
		anns, err := annotate.UnmarshalSequence(data)
		if err != nil {
			log.Printf("load: %v", err)
			a.SetStatus("Error parsing file - invalid format")
			return
		}
		a.Editor.Load(anns)
		a.SetStatus(fmt.Sprintf("Loaded %d annotations", len(anns)))
	}, a.Win)
}

func (a *App) exportPDF() {
	if a.OnExportPDF == nil {
		a.SetStatus("PDF export not available")
		return
	}
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.Win)
			return
		}
		if writer == nil {
			return
		}
		defer func() {
			if err := writer.Close(); err != nil {
				log.Printf("export: closing writer: %v", err)
			}
		}()
		if err := a.OnExportPDF(writer); err != nil {
			log.Printf("export: %v", err)
			a.SetStatus(fmt.Sprintf("PDF export failed: %v", err))
			return
		}
		a.SetStatus("PDF report written")
	}, a.Win)
}
