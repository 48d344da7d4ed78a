package ui

import (
	"image/color"

	"OrthoMark/internal/annotate"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// paletteEntry pairs the displayed swatch color with the hex value stored on
// annotations.
type paletteEntry struct {
	display color.Color
	hex     string
}

var palette = []paletteEntry{
	{color.NRGBA{A: 255}, "#000000"},
	{color.NRGBA{R: 229, G: 57, B: 53, A: 255}, "#e53935"},
	{color.NRGBA{R: 30, G: 136, B: 229, A: 255}, "#1e88e5"},
	{color.NRGBA{R: 67, G: 160, B: 71, A: 255}, "#43a047"},
	{color.NRGBA{R: 253, G: 216, B: 53, A: 255}, "#fdd835"},
	{color.NRGBA{R: 255, G: 255, B: 255, A: 255}, "#ffffff"},
}

// --- Custom widget for color swatches ---

type colorSwatch struct {
	widget.BaseWidget
	entry    paletteEntry
	OnTapped func(entry paletteEntry)
}

func newColorSwatch(entry paletteEntry, tapped func(paletteEntry)) *colorSwatch {
	s := &colorSwatch{entry: entry, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.entry.display)
	rect.SetMinSize(fyne.NewSize(28, 28))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.entry)
	}
}

// ToolbarActions are the host-app hooks behind the save/export buttons.
type ToolbarActions struct {
	Save      func()
	Load      func()
	ExportPDF func()
}

// NewToolbar builds the tool strip: shape tools, undo/redo/clear, the color
// palette and the stroke width slider.
func NewToolbar(editor *Editor, win fyne.Window, actions ToolbarActions) fyne.CanvasObject {
	undo := widget.NewToolbarAction(theme.ContentUndoIcon(), editor.Undo)
	redo := widget.NewToolbarAction(theme.ContentRedoIcon(), editor.Redo)
	editor.OnHistoryChange = func(canUndo, canRedo bool) {
		if canUndo {
			undo.Enable()
		} else {
			undo.Disable()
		}
		if canRedo {
			redo.Enable()
		} else {
			redo.Disable()
		}
	}
	editor.OnHistoryChange(editor.CanUndo(), editor.CanRedo())

	tools := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentCreateIcon(), func() {
			editor.SetTool(annotate.ToolFreehand)
		}), // Pen
		widget.NewToolbarAction(theme.NavigateNextIcon(), func() {
			editor.SetTool(annotate.ToolArrow)
		}), // Arrow
		widget.NewToolbarAction(theme.RadioButtonIcon(), func() {
			editor.SetTool(annotate.ToolCircle)
		}), // Circle
		widget.NewToolbarAction(theme.CheckButtonIcon(), func() {
			editor.SetTool(annotate.ToolRect)
		}), // Rectangle
		widget.NewToolbarAction(theme.DocumentIcon(), func() {
			editor.SetTool(annotate.ToolText)
		}), // Text label
		widget.NewToolbarSeparator(),
		undo,
		redo,
		widget.NewToolbarAction(theme.DeleteIcon(), func() {
			dialog.ShowConfirm("Clear annotations",
				"Remove every annotation from this photo? (Undo can bring them back.)",
				func(ok bool) {
					if ok {
						editor.Clear()
					}
				}, win)
		}),
	)

	fileTools := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() {
			if actions.Save != nil {
				actions.Save()
			}
		}),
		widget.NewToolbarAction(theme.FolderOpenIcon(), func() {
			if actions.Load != nil {
				actions.Load()
			}
		}),
		widget.NewToolbarAction(theme.MailForwardIcon(), func() {
			if actions.ExportPDF != nil {
				actions.ExportPDF()
			}
		}),
	)

	onColorTapped := func(entry paletteEntry) {
		editor.SetColor(entry.hex)
	}
	colorBox := container.NewHBox()
	for _, entry := range palette {
		colorBox.Add(newColorSwatch(entry, onColorTapped))
	}

	strokeSlider := widget.NewSlider(1.0, 12.0)
	strokeSlider.SetValue(3.0)
	strokeSlider.OnChanged = func(val float64) {
		editor.SetStroke(val)
	}
	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), strokeSlider)

	return container.NewHBox(
		widget.NewLabel("Tool:"),
		tools,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		colorBox,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sliderContainer,
		layout.NewSpacer(),
		fileTools,
	)
}
