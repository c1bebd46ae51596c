package summarizer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sheetRows(t *testing.T, data []byte) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	return rows
}

func TestTransformCSVToWorkbook(t *testing.T) {
	input := []byte("Party,GSTIN,TAXABLE,IGST,CGST,SGST,NETAMOUNT\n" +
		"ASIAN PAINTS LTD,29AAA,100,0,9,9,118\n" +
		"ASIAN PAINTS LTD,29AAA,50,0,4.5,4.5,59\n")

	out, err := Transform("sales.csv", input)
	require.NoError(t, err)

	rows := sheetRows(t, out)
	require.Len(t, rows, 4, "header, two members, one subtotal")
	assert.Equal(t, []string{"Party", "GSTIN", "TAXABLE", "IGST", "CGST", "SGST", "NETAMOUNT"}, rows[0])

	// Member rows carry the short name; amounts come back as numbers.
	assert.Equal(t, "ASIAN", rows[1][0])
	assert.Equal(t, "100", rows[1][2])
	assert.Equal(t, "ASIAN", rows[2][0])
	assert.Equal(t, "50", rows[2][2])

	// Subtotal: zero IGST suppressed, the rest summed.
	sub := rows[3]
	assert.Equal(t, "ASIAN", sub[0])
	assert.Equal(t, "29AAA", sub[1])
	assert.Equal(t, "150", sub[2])
	assert.Equal(t, "13.5", sub[4])
	assert.Equal(t, "13.5", sub[5])
	assert.Equal(t, "177", sub[6])
	if len(sub) > 3 {
		assert.Equal(t, "", sub[3], "suppressed IGST stays empty")
	}
}

func TestTransformUnsupportedStopsBeforeParsing(t *testing.T) {
	_, err := Transform("notes.docx", []byte("irrelevant"))
	var unsupported *UnsupportedFormatError
	require.ErrorAs(t, err, &unsupported)
}

func TestTransformMissingColumnsNoOutput(t *testing.T) {
	out, err := Transform("sales.csv", []byte("Name,Amount\nfoo,1\n"))
	require.Error(t, err)
	assert.Nil(t, out, "no partial output on failure")
	var missing *MissingColumnError
	require.ErrorAs(t, err, &missing)
}

func TestEncodeTableNumericCells(t *testing.T) {
	table := &Table{
		Columns: []string{"Party", "GSTIN", "TAXABLE", "NETAMOUNT"},
		Rows: [][]string{
			{"ASIAN", "29A", "150.00", "177.00"},
			{"ASIAN", "29A", "", "0.00"},
		},
	}
	data, err := EncodeTable(table)
	require.NoError(t, err)

	rows := sheetRows(t, data)
	require.Len(t, rows, 3)
	assert.Equal(t, "150", rows[1][2], "amount cells are written as numbers")
	assert.Equal(t, "", rows[2][2], "empty sentinel survives the round trip")
	assert.Equal(t, "0", rows[2][3])
}

func TestEncodeDecodeRoundTripRowCount(t *testing.T) {
	table := &Table{
		Columns: []string{"Party", "GSTIN", "TAXABLE"},
		Rows: [][]string{
			{"A", "1", "10.00"},
			{"B", "2", "20.00"},
		},
	}
	data, err := EncodeTable(table)
	require.NoError(t, err)

	decoded, err := DecodeTable("roundtrip.xlsx", data)
	require.NoError(t, err)
	assert.Equal(t, table.Columns, decoded.Columns)
	assert.Len(t, decoded.Rows, len(table.Rows))
}
