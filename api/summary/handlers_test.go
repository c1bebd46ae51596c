package summary

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"ExcelSummarizer/internal/filestore"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*mux.Router, *filestore.Store) {
	t.Helper()
	store, err := filestore.New(t.TempDir())
	require.NoError(t, err)
	h, err := NewHandler(store)
	require.NoError(t, err)

	router := mux.NewRouter()
	sub := router.PathPrefix("/summarizer").Subrouter()
	sub.HandleFunc("", h.Index).Methods("GET")
	sub.HandleFunc("/upload", h.Upload).Methods("POST")
	sub.HandleFunc("/api/transform", h.TransformAPI).Methods("POST")
	sub.HandleFunc("/download/{token}", h.Download).Methods("GET")
	return router, store
}

func multipartUpload(t *testing.T, url, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, url, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

const sampleCSV = "Party,GSTIN,TAXABLE,IGST,CGST,SGST,NETAMOUNT,bl_invno\n" +
	"ASIAN PAINTS LTD,29AAA,100,0,9,9,118,INV-1\n" +
	"ASIAN PAINTS LTD,29AAA,50,0,4.5,4.5,59,INV-2\n"

func TestIndexRendersForm(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/summarizer", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Upload")
	assert.NotContains(t, rec.Body.String(), "Download modified Excel")
}

func TestUploadAndDownloadFlow(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, multipartUpload(t, "/summarizer/upload", "sales.csv", []byte(sampleCSV)))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Download modified Excel")
	assert.Contains(t, body, "ASIAN")
	assert.Contains(t, body, "summary-row", "subtotal rows are highlighted via blank bl_invno")

	m := regexp.MustCompile(`/summarizer/download/([0-9a-f-]+)`).FindStringSubmatch(body)
	require.NotNil(t, m, "preview page must link the download token")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, m[0], nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "sales_modified.xlsx")
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Body.Bytes())
}

func TestUploadUnsupportedExtension(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, multipartUpload(t, "/summarizer/upload", "report.pdf", []byte("%PDF")))

	assert.Equal(t, http.StatusOK, rec.Code, "form page is re-rendered")
	assert.Contains(t, rec.Body.String(), "unsupported file type")
	assert.NotContains(t, rec.Body.String(), "Download modified Excel")
}

func TestUploadMissingColumns(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, multipartUpload(t, "/summarizer/upload", "other.csv", []byte("Name,Amount\nfoo,1\n")))

	assert.Contains(t, rec.Body.String(), "&#39;Party&#39; and &#39;GSTIN&#39;")
}

func TestTransformAPI(t *testing.T) {
	router, store := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, multipartUpload(t, "/summarizer/api/transform", "sales.csv", []byte(sampleCSV)))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Success bool `json:"success"`
		Result  struct {
			Token       string `json:"token"`
			DownloadURL string `json:"download_url"`
			Rows        int    `json:"rows"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 3, resp.Result.Rows, "two members plus one subtotal")

	_, ok := store.Get(resp.Result.Token)
	assert.True(t, ok, "output registered under the returned token")
}

func TestTransformAPIBadInput(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, multipartUpload(t, "/summarizer/api/transform", "x.csv", []byte("Name\nfoo\n")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
}

func TestDownloadUnknownToken(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/summarizer/download/deadbeef", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
