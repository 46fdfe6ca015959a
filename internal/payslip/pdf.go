package payslip

import (
	"bytes"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/iliyamo/eldercare-records/internal/model"
)

// column widths in mm
var pdfWidths = [4]float64{60, 40, 40, 40}

func renderPDF(c model.Caregiver, issuedAt time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	// pinned metadata keeps equal inputs byte-identical
	pdf.SetCreationDate(issuedAt)
	pdf.SetModificationDate(issuedAt)
	pdf.SetCatalogSort(true)
	pdf.SetTitle("Payslip", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, title(c, issuedAt), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(230, 230, 230)
	tableRow(pdf, header, true)

	pdf.SetFont("Helvetica", "", 11)
	for _, r := range rows(c.Pay) {
		if r.desc == "Total Bank" {
			pdf.SetFont("Helvetica", "B", 11)
		}
		tableRow(pdf, r, false)
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Report Date: "+reportDate(issuedAt), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, transferLine(c), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func tableRow(pdf *fpdf.Fpdf, r row, fill bool) {
	cells := [4]string{r.desc, r.price, r.amount, r.total}
	for i, txt := range cells {
		align := "R"
		if i == 0 {
			align = "L"
		}
		pdf.CellFormat(pdfWidths[i], 8, txt, "1", 0, align, fill, 0, "")
	}
	pdf.Ln(-1)
}
