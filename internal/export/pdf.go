package export

import (
	"io"
	"time"

	"github.com/go-pdf/fpdf"
)

const (
	pdfMargin    = 15.0
	pdfRowHeight = 7.0
)

// WritePDF renders r as an A4 document: a title block followed by the table.
// The header row is repeated on every page.
func WritePDF(w io.Writer, r *Report, centerName string, generatedAt time.Time) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 10, tr(centerName), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 9, tr(r.Title), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	if r.Period != "" {
		pdf.CellFormat(0, 7, "Period: "+r.Period, "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 7, "Generated: "+generatedAt.Format(timestampLayout), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	cols := r.PDFColumns
	if cols == nil {
		cols = make([]PDFColumn, len(r.Columns))
		for i, c := range r.Columns {
			cols[i] = PDFColumn{Index: i, Label: c}
		}
	}
	if len(cols) == 0 {
		return pdf.Output(w)
	}

	pageW, pageH := pdf.GetPageSize()
	colW := (pageW - 2*pdfMargin) / float64(len(cols))

	drawHeader := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(41, 128, 185)
		pdf.SetTextColor(255, 255, 255)
		for _, c := range cols {
			pdf.CellFormat(colW, pdfRowHeight, fit(pdf, tr(c.Label), colW), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
	}

	drawHeader()
	for i, row := range r.Rows {
		if pdf.GetY()+pdfRowHeight > pageH-pdfMargin {
			pdf.AddPage()
			drawHeader()
		}
		fill := i%2 == 1
		if fill {
			pdf.SetFillColor(245, 245, 245)
		}
		for _, c := range cols {
			text := ""
			if c.Index < len(row) {
				text = row[c.Index]
			}
			pdf.CellFormat(colW, pdfRowHeight, fit(pdf, tr(text), colW), "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf.Output(w)
}

// fit trims s until it fits a cell of width w.
func fit(pdf *fpdf.Fpdf, s string, w float64) string {
	const pad = 2.0
	if pdf.GetStringWidth(s) <= w-pad {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && pdf.GetStringWidth(string(r)+"...") > w-pad {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}
