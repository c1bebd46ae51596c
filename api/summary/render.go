package summary

import (
	"embed"
	"io"
	"strings"

	"ExcelSummarizer/internal/config"
	"ExcelSummarizer/internal/summarizer"

	"github.com/google/safehtml/template"
)

//go:embed templates/*
var templateFS embed.FS

// PreviewRow is one rendered table row; subtotal rows get highlighted.
type PreviewRow struct {
	Subtotal bool
	Cells    []string
}

// PageData drives the single upload/preview page.
type PageData struct {
	Error        string
	HasPreview   bool
	Columns      []string
	Rows         []PreviewRow
	DownloadURL  string
	PreviewCount int
	RowCount     int
	GroupCount   int
}

// Renderer renders the page through a safehtml template.
type Renderer struct {
	page *template.Template
}

func NewRenderer() (*Renderer, error) {
	trustedFS := template.TrustedFSFromEmbed(templateFS)
	page, err := template.New("index.html").ParseFS(trustedFS, "templates/index.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{page: page}, nil
}

func (r *Renderer) RenderPage(w io.Writer, data PageData) error {
	return r.page.Execute(w, data)
}

// buildPageData shapes a summarized table for the preview page. Subtotal
// rows are spotted by a blank bl_invno cell when that column exists; this
// is a display heuristic only, the stored workbook is untouched by it.
func buildPageData(t *summarizer.Table, downloadURL string) PageData {
	invIdx := -1
	for i, c := range t.Columns {
		if strings.EqualFold(c, "bl_invno") {
			invIdx = i
			break
		}
	}

	n := len(t.Rows)
	if n > config.PreviewRows {
		n = config.PreviewRows
	}
	rows := make([]PreviewRow, n)
	for i := 0; i < n; i++ {
		rows[i] = PreviewRow{
			Subtotal: invIdx >= 0 && strings.TrimSpace(t.Rows[i][invIdx]) == "",
			Cells:    t.Rows[i],
		}
	}

	groups := 0
	if invIdx >= 0 {
		for _, row := range t.Rows {
			if strings.TrimSpace(row[invIdx]) == "" {
				groups++
			}
		}
	}

	return PageData{
		HasPreview:   true,
		Columns:      t.Columns,
		Rows:         rows,
		DownloadURL:  downloadURL,
		PreviewCount: n,
		RowCount:     len(t.Rows),
		GroupCount:   groups,
	}
}
