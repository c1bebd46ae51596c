package summarizer

import (
	"bytes"
	"fmt"

	"ExcelSummarizer/internal/config"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// ConvertLegacyWorkbook rewrites a legacy binary .xls workbook as xlsx
// bytes. Sheet names and cell values are copied as-is, sheet by sheet and
// row by row; formatting is not carried over.
func ConvertLegacyWorkbook(data []byte) ([]byte, error) {
	book, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, err
	}

	out := excelize.NewFile()
	defer out.Close()

	for i := 0; i < book.NumSheets(); i++ {
		sheet := book.GetSheet(i)
		if sheet == nil {
			continue
		}
		name := sheet.Name
		if name == "" {
			name = fmt.Sprintf("Sheet%d", i+1)
		}
		if len(name) > config.SheetNameLimit {
			name = name[:config.SheetNameLimit]
		}
		if i == 0 {
			if err := out.SetSheetName(out.GetSheetName(0), name); err != nil {
				return nil, err
			}
		} else {
			if _, err := out.NewSheet(name); err != nil {
				return nil, err
			}
		}
		for r := 0; r <= int(sheet.MaxRow); r++ {
			row := sheet.Row(r)
			if row == nil {
				continue
			}
			vals := make([]interface{}, row.LastCol())
			for c := range vals {
				vals[c] = ""
			}
			for c := row.FirstCol(); c < row.LastCol(); c++ {
				vals[c] = row.Col(c)
			}
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				return nil, err
			}
			if err := out.SetSheetRow(name, cell, &vals); err != nil {
				return nil, err
			}
		}
	}

	buf, err := out.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
