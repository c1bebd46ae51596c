package summarizer

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// ColParty and ColGSTIN are the required input columns.
	ColParty = "Party"
	ColGSTIN = "GSTIN"
	// ColTaxPer is optional; its subtotal cell is always blanked.
	ColTaxPer = "TAXPER"
)

// NumericColumns are the designated amount columns that are summed into
// each subtotal row. Columns absent from the input are appended zero-filled
// in this order.
var NumericColumns = []string{"TAXABLE", "IGST", "CGST", "SGST", "NETAMOUNT"}

// zero-suppressed subtotal columns; a subtotal sum of exactly zero renders
// as "" for these. TAXABLE and NETAMOUNT always render.
var suppressWhenZero = map[string]bool{"IGST": true, "CGST": true, "SGST": true}

type groupKey struct {
	short string
	gstin string
}

// Summarize partitions the table by (resolved short name, GSTIN) in
// first-seen order and rebuilds it with every group's rows (Party replaced
// by the short name) followed by one subtotal row. The input table is not
// modified. The only hard failure is a missing Party or GSTIN column;
// unparseable amounts silently coerce to zero.
func Summarize(t *Table) (*Table, error) {
	work := &Table{Columns: make([]string, len(t.Columns))}
	for i, c := range t.Columns {
		work.Columns[i] = strings.TrimSpace(c)
	}
	work.Rows = make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		row := make([]string, len(work.Columns))
		copy(row, r)
		work.Rows[i] = row
	}

	if !work.HasColumn(ColParty) || !work.HasColumn(ColGSTIN) {
		return nil, &MissingColumnError{Columns: []string{ColParty, ColGSTIN}}
	}
	for _, c := range NumericColumns {
		work.AddColumn(c, "")
	}

	partyIdx := work.ColumnIndex(ColParty)
	gstinIdx := work.ColumnIndex(ColGSTIN)
	numIdx := make([]int, len(NumericColumns))
	for i, c := range NumericColumns {
		numIdx[i] = work.ColumnIndex(c)
	}

	// Coerce the designated amount columns and rewrite their cells with the
	// coerced 2-decimal value; everything downstream sees clean numbers.
	amounts := make([][]decimal.Decimal, len(work.Rows))
	for i, row := range work.Rows {
		amounts[i] = make([]decimal.Decimal, len(numIdx))
		for j, ci := range numIdx {
			d := coerceAmount(row[ci])
			amounts[i][j] = d
			row[ci] = d.Round(2).StringFixed(2)
		}
	}

	// Resolve party short names and string-coerce GSTIN for the group key.
	shorts := make([]string, len(work.Rows))
	gstins := make([]string, len(work.Rows))
	for i, row := range work.Rows {
		shorts[i] = ResolveShortName(row[partyIdx])
		gstins[i] = coerceGSTIN(row[gstinIdx])
		row[gstinIdx] = gstins[i]
	}

	// First-seen order of distinct group keys governs output order.
	var order []groupKey
	members := make(map[groupKey][]int)
	for i := range work.Rows {
		key := groupKey{short: shorts[i], gstin: gstins[i]}
		if _, seen := members[key]; !seen {
			order = append(order, key)
		}
		members[key] = append(members[key], i)
	}

	out := &Table{Columns: work.Columns, Rows: make([][]string, 0, len(work.Rows)+len(order))}
	for _, key := range order {
		sums := make([]decimal.Decimal, len(numIdx))
		for _, ri := range members[key] {
			row := make([]string, len(work.Columns))
			copy(row, work.Rows[ri])
			row[partyIdx] = key.short
			out.Rows = append(out.Rows, row)
			for j := range numIdx {
				sums[j] = sums[j].Add(amounts[ri][j])
			}
		}
		out.Rows = append(out.Rows, subtotalRow(work, key, numIdx, sums))
	}
	return out, nil
}

// subtotalRow synthesizes one aggregate row: every column blank except the
// group key fields and the rounded amount sums.
func subtotalRow(work *Table, key groupKey, numIdx []int, sums []decimal.Decimal) []string {
	row := make([]string, len(work.Columns))
	row[work.ColumnIndex(ColParty)] = key.short
	row[work.ColumnIndex(ColGSTIN)] = key.gstin
	for j, ci := range numIdx {
		sum := sums[j].Round(2)
		if suppressWhenZero[NumericColumns[j]] && sum.IsZero() {
			continue
		}
		row[ci] = sum.StringFixed(2)
	}
	return row
}

// coerceAmount parses one amount cell: thousands commas stripped, blank or
// unparseable values default to zero rather than failing the transform.
func coerceAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// coerceGSTIN maps the literal text form of a missing value onto the empty
// string so all missing-id rows share one group bucket.
func coerceGSTIN(s string) string {
	if s == "nan" {
		return ""
	}
	return s
}
