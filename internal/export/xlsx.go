package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	minColumnWidth = 15
	maxSheetName   = 31
)

var sheetNameReplacer = strings.NewReplacer(":", " ", "\\", " ", "/", " ", "?", " ", "*", " ", "[", "(", "]", ")")

func sheetName(name string) string {
	name = strings.TrimSpace(sheetNameReplacer.Replace(name))
	if name == "" {
		name = "Report"
	}
	if r := []rune(name); len(r) > maxSheetName {
		name = string(r[:maxSheetName])
	}
	return name
}

// WriteXLSX writes one sheet per report: a bold header row followed by the
// report rows. Column widths are max(len(header), 15).
func WriteXLSX(w io.Writer, reports ...*Report) error {
	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	used := map[string]int{}
	for i, r := range reports {
		name := sheetName(r.Sheet)
		if n := used[name]; n > 0 {
			name = sheetName(fmt.Sprintf("%s %d", name, n+1))
		}
		used[name]++

		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return err
		}

		if err := writeSheet(f, name, r, header); err != nil {
			return fmt.Errorf("sheet %q: %w", name, err)
		}
	}

	_, err = f.WriteTo(w)
	return err
}

func writeSheet(f *excelize.File, sheet string, r *Report, headerStyle int) error {
	if len(r.Columns) == 0 {
		return nil
	}

	first, err := excelize.CoordinatesToCellName(1, 1)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, first, &r.Columns); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(r.Columns), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, first, last, headerStyle); err != nil {
		return err
	}

	for c, title := range r.Columns {
		col, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return err
		}
		width := len(title)
		if width < minColumnWidth {
			width = minColumnWidth
		}
		if err := f.SetColWidth(sheet, col, col, float64(width)); err != nil {
			return err
		}
	}

	for i := range r.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &r.Rows[i]); err != nil {
			return err
		}
	}
	return nil
}
