package summarizer

import (
	"fmt"
	"strings"
)

const (
	// ErrFileParsing prefixes decode failures surfaced to the caller.
	ErrFileParsing = "failed to parse file contents"
)

// UnsupportedFormatError reports an upload whose extension is outside the
// recognized set. It is raised at the boundary, before any parsing.
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file extension: %s", e.Ext)
}

// MissingColumnError reports an input table lacking a required column.
// Both required column names are always listed so the caller can fix the
// sheet in one pass.
type MissingColumnError struct {
	Columns []string
}

func (e *MissingColumnError) Error() string {
	quoted := make([]string, len(e.Columns))
	for i, c := range e.Columns {
		quoted[i] = "'" + c + "'"
	}
	return fmt.Sprintf("input must contain %s columns", strings.Join(quoted, " and "))
}
