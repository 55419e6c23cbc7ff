package export

import (
	"fmt"

	"github.com/go-pdf/fpdf"
)

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	qrSize       = 45.0
	lineHeight   = 6.0
)

// ExportPDF generates a one-page fit report: boundary statistics, the fitted
// rectangle, search settings, the corner table and a QR code carrying the
// result as JSON.
func ExportPDF(path string, report Report) error {
	if err := report.validate(); err != nil {
		return err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	contentWidth := pageWidth - marginLeft - marginRight

	// Title
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(contentWidth, 10, "Inscribed Rectangle Report", "", 0, "L", false, 0, "")

	// Separator line
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18
	if err := renderResultQR(pdf, pageWidth-marginRight-qrSize, y, qrSize, report.Result); err != nil {
		return fmt.Errorf("failed to render QR code: %w", err)
	}

	y = renderSection(pdf, tr, y, "Boundary", report.boundaryItems())
	y = renderSection(pdf, tr, y+4, "Fit Result", report.resultItems())
	y = renderSection(pdf, tr, y+4, "Search Settings", report.settingsItems())

	if len(report.Result.Corners) > 0 {
		y = renderCornerTable(pdf, y+4, report)
	}

	// Footer
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(contentWidth, 4, "Generated by RoomFit - Largest Inscribed Rectangle Finder", "", 0, "C", false, 0, "")

	return pdf.OutputFileAndClose(path)
}

// renderSection draws a heading followed by label/value lines and returns
// the next free y position.
func renderSection(pdf *fpdf.Fpdf, tr func(string) string, y float64, title string, items []reportItem) float64 {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, title, "", 0, "L", false, 0, "")
	y += 9

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range items {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(40, lineHeight, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(80, lineHeight, tr(item.value), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += lineHeight + 1
	}
	return y
}

// renderCornerTable draws the rectangle corners as a bordered table and
// returns the next free y position.
func renderCornerTable(pdf *fpdf.Fpdf, y float64, report Report) float64 {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Corners", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{40, 45, 45}
	headers := []string{"Corner", "X (m)", "Y (m)"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, c := range report.Result.Corners {
		rowData := []string{
			cornerName(i),
			fmt.Sprintf("%.3f", c.X),
			fmt.Sprintf("%.3f", c.Y),
		}

		// Alternate row background
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
	return y
}

// cornerName labels corners in the order the fitter reports them.
func cornerName(i int) string {
	names := []string{"Top Left", "Top Right", "Bottom Right", "Bottom Left"}
	if i >= 0 && i < len(names) {
		return names[i]
	}
	return fmt.Sprintf("%d", i+1)
}
