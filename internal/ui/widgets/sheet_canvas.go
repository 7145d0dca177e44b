package widgets

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/cargoplan/loadplanner/internal/model"
)

// Item colors — cycle through these for visual distinction.
var itemColors = []color.NRGBA{
	{R: 76, G: 175, B: 80, A: 200},  // green
	{R: 33, G: 150, B: 243, A: 200}, // blue
	{R: 255, G: 152, B: 0, A: 200},  // orange
	{R: 156, G: 39, B: 176, A: 200}, // purple
	{R: 0, G: 188, B: 212, A: 200},  // cyan
	{R: 244, G: 67, B: 54, A: 200},  // red
	{R: 255, G: 235, B: 59, A: 200}, // yellow
	{R: 121, G: 85, B: 72, A: 200},  // brown
}

const (
	minZoom     = 0.25
	maxZoom     = 10.0
	zoomStep    = 1.15 // multiplicative zoom factor per scroll notch
	defaultZoom = 1.0
)

// levelSlice groups the placements resting on one z-level for rendering
// as a single top-down diagram.
type levelSlice struct {
	Z          float64
	Placements []model.Placement
}

// zLevels returns the distinct z origins present in a placement set,
// ascending, each paired with the placements resting on it.
func zLevels(placements []model.Placement) []levelSlice {
	byZ := make(map[float64][]model.Placement)
	var zs []float64
	for _, p := range placements {
		if _, ok := byZ[p.Z]; !ok {
			zs = append(zs, p.Z)
		}
		byZ[p.Z] = append(byZ[p.Z], p)
	}
	sort.Float64s(zs)
	slices := make([]levelSlice, len(zs))
	for i, z := range zs {
		slices[i] = levelSlice{Z: z, Placements: byZ[z]}
	}
	return slices
}

// TruckBayCanvas renders a top-down view of one z-level of a truck's
// load, with mouse wheel zoom and click-and-drag panning.
type TruckBayCanvas struct {
	widget.BaseWidget
	truck     model.TruckSpecs
	slice     levelSlice
	maxWidth  float32
	maxHeight float32

	// Zoom and pan state (protected by mutex for thread safety)
	mu       sync.Mutex
	zoom     float64
	panX     float64 // pan offset in screen pixels
	panY     float64
	dragging bool
	dragX    float32 // last drag position
	dragY    float32
}

// NewTruckBayCanvas creates a new zoomable, pannable truck-bay canvas
// widget for one z-level slice.
func NewTruckBayCanvas(truck model.TruckSpecs, slice levelSlice, maxW, maxH float32) *TruckBayCanvas {
	tc := &TruckBayCanvas{
		truck:     truck,
		slice:     slice,
		maxWidth:  maxW,
		maxHeight: maxH,
		zoom:      defaultZoom,
	}
	tc.ExtendBaseWidget(tc)
	return tc
}

// Scrolled handles mouse wheel zoom, centered on the cursor position.
func (tc *TruckBayCanvas) Scrolled(ev *fyne.ScrollEvent) {
	tc.mu.Lock()

	oldZoom := tc.zoom

	if ev.Scrolled.DY > 0 {
		tc.zoom *= zoomStep
	} else if ev.Scrolled.DY < 0 {
		tc.zoom /= zoomStep
	}
	tc.zoom = math.Max(minZoom, math.Min(maxZoom, tc.zoom))

	cursorX := float64(ev.Position.X)
	cursorY := float64(ev.Position.Y)
	factor := tc.zoom / oldZoom
	tc.panX = cursorX - (cursorX-tc.panX)*factor
	tc.panY = cursorY - (cursorY-tc.panY)*factor
	tc.mu.Unlock()

	tc.Refresh()
}

// MouseDown starts a pan drag operation.
func (tc *TruckBayCanvas) MouseDown(ev *desktop.MouseEvent) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.dragging = true
	tc.dragX = ev.Position.X
	tc.dragY = ev.Position.Y
}

// MouseUp ends a pan drag operation.
func (tc *TruckBayCanvas) MouseUp(_ *desktop.MouseEvent) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.dragging = false
}

// MouseMoved pans the view while dragging.
func (tc *TruckBayCanvas) MouseMoved(ev *desktop.MouseEvent) {
	tc.mu.Lock()

	if !tc.dragging {
		tc.mu.Unlock()
		return
	}

	dx := float64(ev.Position.X - tc.dragX)
	dy := float64(ev.Position.Y - tc.dragY)
	tc.panX += dx
	tc.panY += dy
	tc.dragX = ev.Position.X
	tc.dragY = ev.Position.Y
	tc.mu.Unlock()

	tc.Refresh()
}

// ResetZoom resets zoom to 1.0 and pan to origin.
func (tc *TruckBayCanvas) ResetZoom() {
	tc.mu.Lock()
	tc.zoom = defaultZoom
	tc.panX = 0
	tc.panY = 0
	tc.mu.Unlock()
	tc.Refresh()
}

// ZoomLevel returns the current zoom level.
func (tc *TruckBayCanvas) ZoomLevel() float64 {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return tc.zoom
}

// SetZoomCentered zooms in or out centered on the widget's center point.
func (tc *TruckBayCanvas) SetZoomCentered(newZoom float64) {
	tc.mu.Lock()

	oldZoom := tc.zoom
	tc.zoom = math.Max(minZoom, math.Min(maxZoom, newZoom))
	centerX := float64(tc.maxWidth) / 2
	centerY := float64(tc.maxHeight) / 2
	factor := tc.zoom / oldZoom
	tc.panX = centerX - (centerX-tc.panX)*factor
	tc.panY = centerY - (centerY-tc.panY)*factor
	tc.mu.Unlock()

	tc.Refresh()
}

// CreateRenderer returns the Fyne widget renderer for this canvas.
func (tc *TruckBayCanvas) CreateRenderer() fyne.WidgetRenderer {
	return newTruckBayCanvasRenderer(tc)
}

type truckBayCanvasRenderer struct {
	tc      *TruckBayCanvas
	objects []fyne.CanvasObject
}

func newTruckBayCanvasRenderer(tc *TruckBayCanvas) *truckBayCanvasRenderer {
	r := &truckBayCanvasRenderer{tc: tc}
	r.rebuild()
	return r
}

func (r *truckBayCanvasRenderer) rebuild() {
	r.objects = nil

	truck := r.tc.truck
	bedL := float32(truck.Length)
	bedW := float32(truck.Width)

	scaleX := r.tc.maxWidth / bedL
	scaleY := r.tc.maxHeight / bedW
	baseScale := scaleX
	if scaleY < baseScale {
		baseScale = scaleY
	}

	r.tc.mu.Lock()
	zoom := float32(r.tc.zoom)
	panX := float32(r.tc.panX)
	panY := float32(r.tc.panY)
	r.tc.mu.Unlock()

	scale := baseScale * zoom
	canvasW := bedL * scale
	canvasH := bedW * scale

	// Truck bed background.
	bg := canvas.NewRectangle(color.NRGBA{R: 210, G: 180, B: 140, A: 255})
	bg.Resize(fyne.NewSize(canvasW, canvasH))
	bg.Move(fyne.NewPos(panX, panY))
	r.objects = append(r.objects, bg)

	// Bed border.
	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	border.StrokeWidth = 2
	border.Resize(fyne.NewSize(canvasW, canvasH))
	border.Move(fyne.NewPos(panX, panY))
	r.objects = append(r.objects, border)

	for i, p := range r.tc.slice.Placements {
		col := itemColors[i%len(itemColors)]
		pw := float32(p.Length) * scale
		ph := float32(p.Width) * scale
		px := float32(p.X)*scale + panX
		py := float32(p.Y)*scale + panY

		itemRect := canvas.NewRectangle(col)
		itemRect.Resize(fyne.NewSize(pw, ph))
		itemRect.Move(fyne.NewPos(px, py))
		r.objects = append(r.objects, itemRect)

		itemBorder := canvas.NewRectangle(color.Transparent)
		itemBorder.StrokeColor = color.NRGBA{R: 30, G: 30, B: 30, A: 255}
		itemBorder.StrokeWidth = 1
		itemBorder.Resize(fyne.NewSize(pw, ph))
		itemBorder.Move(fyne.NewPos(px, py))
		r.objects = append(r.objects, itemBorder)

		if pw > 30 && ph > 16 {
			label := canvas.NewText(
				fmt.Sprintf("%s\n%.0fx%.0f", p.Reference, p.Length, p.Width),
				color.Black,
			)
			label.TextSize = 10
			label.Move(fyne.NewPos(px+3, py+2))
			r.objects = append(r.objects, label)
		}
	}
}

func (r *truckBayCanvasRenderer) Layout(size fyne.Size)        {}
func (r *truckBayCanvasRenderer) Refresh()                     { r.rebuild() }
func (r *truckBayCanvasRenderer) Destroy()                     {}
func (r *truckBayCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *truckBayCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(r.tc.maxWidth, r.tc.maxHeight)
}

// RenderResult creates a scrollable container with one interactive
// top-down canvas per occupied z-level of a planner Result, zoom
// controls, an unplaced-items warning, and overall efficiency stats.
func RenderResult(result *model.Result) fyne.CanvasObject {
	if result == nil || len(result.Placements) == 0 {
		return widget.NewLabel("No results yet. Add items and a truck, then click Optimize.")
	}

	var items []fyne.CanvasObject

	for i, slice := range zLevels(result.Placements) {
		used := 0.0
		for _, p := range slice.Placements {
			used += p.Length * p.Width
		}
		floorArea := result.TruckSpecs.Length * result.TruckSpecs.Width
		fill := 0.0
		if floorArea > 0 {
			fill = (used / floorArea) * 100
		}

		header := widget.NewLabel(fmt.Sprintf(
			"Level %d (z=%.0f cm): %d item(s), %.1f%% floor fill",
			i+1, slice.Z, len(slice.Placements), fill,
		))
		header.TextStyle = fyne.TextStyle{Bold: true}

		bayCanvas := NewTruckBayCanvas(result.TruckSpecs, slice, 600, 400)

		zoomLabel := widget.NewLabel("100%")

		resetBtn := widget.NewButtonWithIcon("Reset Zoom", theme.ViewRestoreIcon(), func() {
			bayCanvas.ResetZoom()
			zoomLabel.SetText("100%")
		})

		zoomInBtn := widget.NewButtonWithIcon("", theme.ZoomInIcon(), func() {
			currentZoom := bayCanvas.ZoomLevel()
			newZoom := math.Min(maxZoom, currentZoom*zoomStep)
			bayCanvas.SetZoomCentered(newZoom)
			zoomLabel.SetText(fmt.Sprintf("%.0f%%", bayCanvas.ZoomLevel()*100))
		})

		zoomOutBtn := widget.NewButtonWithIcon("", theme.ZoomOutIcon(), func() {
			currentZoom := bayCanvas.ZoomLevel()
			newZoom := math.Max(minZoom, currentZoom/zoomStep)
			bayCanvas.SetZoomCentered(newZoom)
			zoomLabel.SetText(fmt.Sprintf("%.0f%%", bayCanvas.ZoomLevel()*100))
		})

		zoomControls := container.NewHBox(
			zoomOutBtn,
			zoomLabel,
			zoomInBtn,
			layout.NewSpacer(),
			resetBtn,
		)

		items = append(items, header, bayCanvas, zoomControls, widget.NewSeparator())
	}

	if len(result.UnplacedItemIDs) > 0 {
		warning := widget.NewLabel(fmt.Sprintf(
			"WARNING: %d item(s) could not be placed! Try a larger truck or a different item order.",
			len(result.UnplacedItemIDs),
		))
		warning.Importance = widget.DangerImportance
		items = append(items, warning)
	}

	summary := widget.NewLabel(fmt.Sprintf(
		"%s — %d/%d items placed, %.1f%% weight fill, %.1f%% volume fill",
		result.TruckSpecs.Name, result.ItemsPlaced, result.ItemsTotal,
		result.WeightEfficiency, result.VolumeEfficiency,
	))
	summary.TextStyle = fyne.TextStyle{Bold: true}
	items = append(items, summary)

	return container.NewVScroll(container.NewVBox(items...))
}
