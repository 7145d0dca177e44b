// Package export provides functionality for exporting load-plan results
// to various file formats, including a PDF load-plan report and
// QR-coded crate labels.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/cargoplan/loadplanner/internal/model"
)

// LabelInfo holds the data encoded into each crate label's QR code.
type LabelInfo struct {
	Reference string  `json:"reference"`
	Length    float64 `json:"length_cm"`
	Width     float64 `json:"width_cm"`
	Height    float64 `json:"height_cm"`
	Weight    float64 `json:"weight_kg"`
	TruckName string  `json:"truck_name"`
	Rotated   bool    `json:"rotated"`
	X         float64 `json:"x_cm"`
	Y         float64 `json:"y_cm"`
	Z         float64 `json:"z_cm"`
	Fragile   bool    `json:"fragile"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF of QR-coded crate labels for every placed
// item in a Result. Each label carries the item's reference, dimensions,
// and placement coordinates encoded as JSON in the QR code, plus a
// human-readable summary. Labels are laid out on a standard label sheet
// format (Avery 5160 / 3 columns x 10 rows on US Letter).
func ExportLabels(path string, result model.Result) error {
	labels := CollectLabelInfos(result)
	if len(labels) == 0 {
		return fmt.Errorf("no items placed to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.Reference, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%s_%d", info.Reference, int(info.X*1000+info.Y))
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	reference := info.Reference
	if pdf.GetStringWidth(reference) > textW {
		for len(reference) > 0 && pdf.GetStringWidth(reference+"...") > textW {
			reference = reference[:len(reference)-1]
		}
		reference += "..."
	}
	pdf.CellFormat(textW, 4.5, reference, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	dims := fmt.Sprintf("%.0fx%.0fx%.0f cm, %.0f kg", info.Length, info.Width, info.Height, info.Weight)
	pdf.CellFormat(textW, 3.5, dims, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	posInfo := fmt.Sprintf("%s @ (%.0f, %.0f, %.0f)", info.TruckName, info.X, info.Y, info.Z)
	pdf.CellFormat(textW, 3, posInfo, "", 1, "L", false, 0, "")

	if info.Rotated || info.Fragile {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(150, 100, 0)
		note := ""
		switch {
		case info.Rotated && info.Fragile:
			note = "Rotated 90\xb0 \xb7 Fragile"
		case info.Rotated:
			note = "Rotated 90\xb0"
		case info.Fragile:
			note = "Fragile"
		}
		pdf.CellFormat(textW, 3, note, "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// CollectLabelInfos extracts label information from an optimization result
// for use in testing or alternative export formats.
func CollectLabelInfos(result model.Result) []LabelInfo {
	var labels []LabelInfo
	for _, p := range result.Placements {
		labels = append(labels, LabelInfo{
			Reference: p.Reference,
			Length:    p.Length,
			Width:     p.Width,
			Height:    p.Height,
			Weight:    p.Weight,
			TruckName: result.TruckSpecs.Name,
			Rotated:   p.Rotated,
			X:         p.X,
			Y:         p.Y,
			Z:         p.Z,
		})
	}
	return labels
}
