package export

import (
	"errors"
	"io"
	"time"
)

type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

var ErrUnknownFormat = errors.New("format must be xlsx or pdf")

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatXLSX, "":
		return FormatXLSX, nil
	case FormatPDF:
		return FormatPDF, nil
	}
	return "", ErrUnknownFormat
}

func (f Format) ContentType() string {
	if f == FormatPDF {
		return "application/pdf"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Report is a flattened table ready for either writer. Every row has one
// cell per column.
type Report struct {
	Title    string
	Sheet    string
	Period   string
	Basename string
	Columns  []string
	Rows     [][]string

	// PDFColumns selects and relabels the columns printed in the document.
	// Nil prints every column.
	PDFColumns []PDFColumn
}

type PDFColumn struct {
	Index int
	Label string
}

func (r *Report) Filename(f Format) string {
	return r.Basename + "." + string(f)
}

// Render writes r in format f. centerName and generatedAt only appear in
// documents.
func Render(w io.Writer, r *Report, f Format, centerName string, generatedAt time.Time) error {
	switch f {
	case FormatXLSX:
		return WriteXLSX(w, r)
	case FormatPDF:
		return WritePDF(w, r, centerName, generatedAt)
	}
	return ErrUnknownFormat
}
