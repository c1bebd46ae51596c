package summarizer

import (
	"strconv"

	"github.com/xuri/excelize/v2"
)

// outputColWidth keeps the generated sheet readable for the downstream
// consumers of the file.
const outputColWidth = 14.0

// EncodeTable serializes a Table as a single-sheet xlsx byte stream:
// header row first, then data rows in table order. Cells in the designated
// amount columns are written as numbers when they parse; the empty-string
// sentinel and non-numeric leftovers are written as-is.
func EncodeTable(t *Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	numeric := make(map[int]bool)
	for _, c := range NumericColumns {
		if i := t.ColumnIndex(c); i >= 0 {
			numeric[i] = true
		}
	}

	header := make([]interface{}, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	for r, row := range t.Rows {
		vals := make([]interface{}, len(row))
		for c, v := range row {
			if numeric[c] && v != "" {
				if num, err := strconv.ParseFloat(v, 64); err == nil {
					vals[c] = num
					continue
				}
			}
			vals[c] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &vals); err != nil {
			return nil, err
		}
	}

	if len(t.Columns) > 0 {
		last, err := excelize.ColumnNumberToName(len(t.Columns))
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheet, "A", last, outputColWidth); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
