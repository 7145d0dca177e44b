// Package export provides functionality for exporting load-plan results
// to various file formats.
package export

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-pdf/fpdf"

	"github.com/cargoplan/loadplanner/internal/model"
)

// itemColor represents an RGB color for a placed item.
type itemColor struct {
	R, G, B int
}

// itemColors mirrors the color scheme used in the UI truck-bay canvas widget.
var itemColors = []itemColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// levelSlice groups placements that share a z origin into one top-down
// diagram page.
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

// ExportPDF generates a PDF load-plan report for a single-truck Result.
// Each occupied z-level is rendered as its own top-down page, followed
// by a summary page with overall efficiency statistics.
func ExportPDF(path string, result model.Result) error {
	if len(result.Placements) == 0 {
		return fmt.Errorf("no placements to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for i, slice := range zLevels(result.Placements) {
		pdf.AddPage()
		renderLevelPage(pdf, result.TruckSpecs, slice, i+1)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, result)

	return pdf.OutputFileAndClose(path)
}

// renderLevelPage draws a single z-level's top-down footprint on the
// current PDF page.
func renderLevelPage(pdf *fpdf.Fpdf, truck model.TruckSpecs, slice levelSlice, levelNum int) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Level %d (z=%.0f cm): %s (%.0f x %.0f cm)", levelNum, slice.Z, truck.Name, truck.Length, truck.Width)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	used := usedFootprint(slice.Placements)
	truckFootprint := truck.Length * truck.Width
	stats := fmt.Sprintf("Items: %d | Used footprint: %.0f cm² | Truck floor: %.0f cm² | Fill: %.1f%%",
		len(slice.Placements), used, truckFootprint, pct(used, truckFootprint))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight

	scaleX := drawWidth / truck.Length
	scaleY := drawHeight / truck.Width
	scale := math.Min(scaleX, scaleY)

	canvasW := truck.Length * scale
	canvasH := truck.Width * scale

	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Truck bed outline.
	pdf.SetFillColor(210, 180, 140)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for i, p := range slice.Placements {
		col := itemColors[i%len(itemColors)]
		pw := p.Length * scale
		ph := p.Width * scale
		px := offsetX + p.X*scale
		py := offsetY + p.Y*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		if pw > 15 && ph > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)

			label := p.Reference
			dims := fmt.Sprintf("%.0fx%.0f", p.Length, p.Width)

			labelW := pdf.GetStringWidth(label)
			dimsW := pdf.GetStringWidth(dims)

			if labelW < pw-2 {
				pdf.SetXY(px+(pw-labelW)/2, py+ph/2-4)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
			if ph > 14 && dimsW < pw-2 {
				pdf.SetXY(px+(pw-dimsW)/2, py+ph/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, truck, scale, offsetX, offsetY, canvasW, canvasH)
	drawItemLegend(pdf, slice.Placements, offsetY+canvasH+5)
}

// drawDimensionAnnotations adds length and width dimension labels
// outside the truck bed rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, truck model.TruckSpecs, scale, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	lengthLabel := fmt.Sprintf("%.0f cm", truck.Length)
	lLabelW := pdf.GetStringWidth(lengthLabel)
	pdf.SetXY(offsetX+(canvasW-lLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(lLabelW, 4, lengthLabel, "", 0, "C", false, 0, "")

	widthLabel := fmt.Sprintf("%.0f cm", truck.Width)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX-3-wLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawItemLegend renders a compact legend of placed items at the bottom
// of a level page.
func drawItemLegend(pdf *fpdf.Fpdf, placements []model.Placement, startY float64) {
	if len(placements) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Items on level:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i, p := range placements {
		col := itemColors[i%len(itemColors)]
		label := fmt.Sprintf("%s (%.0fx%.0fx%.0f)", p.Reference, p.Length, p.Width, p.Height)
		if p.Rotated {
			label += " R"
		}
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the final summary page with overall statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, result model.Result) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Load Plan Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct{ label, value string }{
		{"Truck", result.TruckSpecs.Name},
		{"Items Placed", fmt.Sprintf("%d / %d", result.ItemsPlaced, result.ItemsTotal)},
		{"Weight Efficiency", fmt.Sprintf("%.1f%%", result.WeightEfficiency)},
		{"Volume Efficiency", fmt.Sprintf("%.1f%%", result.VolumeEfficiency)},
		{"Unplaced Items", fmt.Sprintf("%d", len(result.UnplacedItemIDs))},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(80, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Level Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{20, 25, 60, 50, 35}
	headers := []string{"Level", "z (cm)", "Items", "Used / Floor (cm²)", "Fill"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	truckFootprint := result.TruckSpecs.Length * result.TruckSpecs.Width
	pdf.SetFont("Helvetica", "", 9)
	for i, slice := range zLevels(result.Placements) {
		used := usedFootprint(slice.Placements)
		rowData := []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%.0f", slice.Z),
			fmt.Sprintf("%d", len(slice.Placements)),
			fmt.Sprintf("%.0f / %.0f", used, truckFootprint),
			fmt.Sprintf("%.1f%%", pct(used, truckFootprint)),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		xPos = marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	if len(result.UnplacedItemIDs) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Unplaced Items", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, id := range result.UnplacedItemIDs {
			pdf.SetXY(marginLeft+5, y)
			pdf.CellFormat(200, 5, "- "+id, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by loadplanner - cargo load planner", "", 0, "C", false, 0, "")
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}

// usedFootprint sums the planar footprint of a set of placements.
func usedFootprint(placements []model.Placement) float64 {
	var total float64
	for _, p := range placements {
		total += p.Length * p.Width
	}
	return total
}

func pct(used, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return (used / total) * 100
}
