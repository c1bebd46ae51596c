package summarizer

// Transform runs the full pipeline on raw upload bytes: decode by file
// extension, group and subtotal, re-encode as xlsx. Either the complete
// transformed workbook is returned or a single error; there is no partial
// output.
func Transform(filename string, data []byte) ([]byte, error) {
	table, err := DecodeTable(filename, data)
	if err != nil {
		return nil, err
	}
	result, err := Summarize(table)
	if err != nil {
		return nil, err
	}
	return EncodeTable(result)
}
