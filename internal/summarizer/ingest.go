package summarizer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// allowedExtensions is the full set of upload formats the ingestor
// recognizes. Anything else is rejected before parsing is attempted.
var allowedExtensions = map[string]bool{
	".xls":  true,
	".xlsx": true,
	".xlsm": true,
	".xltx": true,
	".xltm": true,
	".xlsb": true,
	".csv":  true,
	".txt":  true,
}

// FileExt returns the lower-cased extension of a filename.
func FileExt(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

// IsSupportedExtension reports whether the file can be handed to DecodeTable.
func IsSupportedExtension(filename string) bool {
	return allowedExtensions[FileExt(filename)]
}

// DecodeTable parses raw upload bytes into a Table, choosing the decoder
// by file extension. Legacy .xls workbooks are converted to xlsx first so
// the spreadsheet path stays uniform. The first row is the header; header
// names are whitespace-trimmed and short data rows are padded with "".
func DecodeTable(filename string, data []byte) (*Table, error) {
	ext := FileExt(filename)
	if !allowedExtensions[ext] {
		return nil, &UnsupportedFormatError{Ext: ext}
	}

	var (
		rows [][]string
		err  error
	)
	switch ext {
	case ".csv", ".txt":
		rows, err = decodeDelimited(data)
	case ".xls":
		var converted []byte
		converted, err = ConvertLegacyWorkbook(data)
		if err == nil {
			rows, err = decodeWorkbook(converted)
		}
	default:
		rows, err = decodeWorkbook(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFileParsing, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: file has no header row", ErrFileParsing)
	}

	columns := make([]string, len(rows[0]))
	for i, c := range rows[0] {
		columns[i] = strings.TrimSpace(c)
	}
	t := &Table{Columns: columns, Rows: make([][]string, 0, len(rows)-1)}
	for _, raw := range rows[1:] {
		row := make([]string, len(columns))
		for i := range columns {
			if i < len(raw) {
				row[i] = raw[i]
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// decodeDelimited reads comma-separated text leniently: uneven field
// counts, lazy quoting and leading whitespace all pass.
func decodeDelimited(data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	return r.ReadAll()
}

// decodeWorkbook reads the first sheet of an xlsx-family workbook.
func decodeWorkbook(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sheet := f.GetSheetName(0)
	return f.GetRows(sheet)
}
