package summary

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"ExcelSummarizer/api"
	"ExcelSummarizer/internal/config"
	"ExcelSummarizer/internal/filestore"
	"ExcelSummarizer/internal/logger"
	"ExcelSummarizer/internal/summarizer"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Handler serves the upload form, runs uploads through the core transform
// and hands saved outputs back by token.
type Handler struct {
	store    *filestore.Store
	renderer *Renderer
}

func NewHandler(store *filestore.Store) (*Handler, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	return &Handler{store: store, renderer: renderer}, nil
}

// Index renders the bare upload form.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.renderer.RenderPage(w, PageData{})
}

// Upload accepts a multipart file, transforms it and renders the preview
// with a token-based download link. Validation failures re-render the form
// with the error message.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	result, token, _, err := h.process(r)
	if err != nil {
		logger.Audit("[Summarizer][ERROR] " + err.Error())
		h.renderer.RenderPage(w, PageData{Error: err.Error()})
		return
	}
	h.renderer.RenderPage(w, buildPageData(result, "/summarizer/download/"+token))
}

// TransformAPI is the JSON variant of Upload for programmatic callers:
// multipart file in, download token and row counts out.
func (h *Handler) TransformAPI(w http.ResponseWriter, r *http.Request) {
	result, token, status, err := h.process(r)
	if err != nil {
		api.RespondWithError(w, status, err.Error())
		return
	}
	api.RespondWithPayload(w, true, "", map[string]interface{}{
		"token":        token,
		"download_url": "/summarizer/download/" + token,
		"rows":         len(result.Rows),
	})
}

// process runs one upload end to end: multipart parsing, boundary
// extension check, core transform, saving and registering the output.
// The returned status is the HTTP code matching err when err is non-nil.
func (h *Handler) process(r *http.Request) (*summarizer.Table, string, int, error) {
	if err := r.ParseMultipartForm(config.MaxUploadBytes); err != nil {
		return nil, "", http.StatusBadRequest, errors.New("failed to parse upload form")
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", http.StatusBadRequest, errors.New("no file uploaded")
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if filename == "" {
		return nil, "", http.StatusBadRequest, errors.New("invalid filename")
	}
	if !summarizer.IsSupportedExtension(filename) {
		return nil, "", http.StatusBadRequest, fmt.Errorf("unsupported file type: %s", summarizer.FileExt(filename))
	}

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, "", http.StatusInternalServerError, errors.New("failed to read uploaded file")
	}

	table, err := summarizer.DecodeTable(filename, content)
	if err != nil {
		return nil, "", transformStatus(err), fmt.Errorf("error processing file: %w", err)
	}
	result, err := summarizer.Summarize(table)
	if err != nil {
		return nil, "", transformStatus(err), fmt.Errorf("error processing file: %w", err)
	}
	output, err := summarizer.EncodeTable(result)
	if err != nil {
		return nil, "", http.StatusInternalServerError, fmt.Errorf("error processing file: %w", err)
	}

	token := uuid.New().String()
	outPath := filepath.Join(h.store.Dir(), token+".xlsx")
	if err := os.WriteFile(outPath, output, 0644); err != nil {
		return nil, "", http.StatusInternalServerError, errors.New("failed to save output file")
	}
	if err := h.store.Put(token, outPath, filename); err != nil {
		return nil, "", http.StatusInternalServerError, errors.New("failed to register output file")
	}
	logger.Audit(fmt.Sprintf("[Summarizer] processed %s: %d rows out, token %s", filename, len(result.Rows), token))
	return result, token, http.StatusOK, nil
}

// Download streams a previously generated workbook as an attachment.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	entry, ok := h.store.Get(token)
	if !ok {
		http.Error(w, "File not found or expired", http.StatusNotFound)
		return
	}
	stem := strings.TrimSuffix(entry.OriginalName, filepath.Ext(entry.OriginalName))
	if stem == "" {
		stem = "result"
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", stem+"_modified.xlsx"))
	http.ServeFile(w, r, entry.Path)
}

// transformStatus maps core validation errors onto 400s; anything else is
// a processing failure.
func transformStatus(err error) int {
	var unsupported *summarizer.UnsupportedFormatError
	var missing *summarizer.MissingColumnError
	if errors.As(err, &unsupported) || errors.As(err, &missing) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// sanitizeFilename strips any path components and characters that have no
// business in a stored filename.
func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		case r == ' ':
			return '_'
		}
		return -1
	}, name)
	if name == "." || name == ".." {
		return ""
	}
	return name
}
