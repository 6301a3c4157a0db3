package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-pdf/fpdf"
)

const footerText = "Developed & Powered by Umanav Apti LTD."

// column widths in mm, sized for an A4 portrait content area of 190mm.
var pdfColWidths = [5]float64{24, 30, 24, 26, 86}

// WritePDF renders the branded service-history report. Rows are printed
// in the order given (the store returns them newest first).
func WritePDF(w io.Writer, data Data) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(true, 18)

	pdf.SetFooterFunc(func() {
		pdf.SetY(-14)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 5, footerText, "", 1, "C", false, 0, "")
		pdf.CellFormat(0, 5, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 10, "LA RENTALS", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 13)
	pdf.CellFormat(0, 7, "Service History Report", "", 1, "C", false, 0, "")

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Category: "+data.CategoryName, "", 1, "L", false, 0, "")
	period := fmt.Sprintf("Period: %s - %s",
		data.From.Format(dateLayout), data.To.Format(dateLayout))
	pdf.CellFormat(0, 6, period, "", 1, "L", false, 0, "")
	pdf.Ln(3)

	writePDFHeaderRow(pdf)

	pdf.SetFont("Helvetica", "", 9)
	for i, row := range data.Rows {
		// repeat the header after a page break
		if pdf.GetY() > 265 {
			pdf.AddPage()
			writePDFHeaderRow(pdf)
			pdf.SetFont("Helvetica", "", 9)
		}

		fill := i%2 == 1
		pdf.SetFillColor(240, 240, 240)
		details := row.ServiceDetails
		if len(details) > 90 {
			details = details[:87] + "..."
		}
		cells := [5]string{
			row.Date.Format(dateLayout),
			row.ScooterID,
			strconv.Itoa(row.CurrentKm),
			strconv.Itoa(row.NextKm),
			details,
		}
		aligns := [5]string{"L", "L", "R", "R", "L"}
		for c, text := range cells {
			pdf.CellFormat(pdfColWidths[c], 6, text, "1", 0, aligns[c], fill, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Total services: %d", len(data.Rows)), "", 1, "L", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf report: %w", err)
	}
	return nil
}

func writePDFHeaderRow(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(30, 30, 30)
	pdf.SetTextColor(255, 255, 255)
	for c, h := range columnHeaders() {
		pdf.CellFormat(pdfColWidths[c], 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetTextColor(0, 0, 0)
}
