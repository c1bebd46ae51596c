package summary

import (
	"fmt"
	"log"
	"net/http"

	"ExcelSummarizer/internal/config"
	"ExcelSummarizer/internal/filestore"
	"ExcelSummarizer/internal/serviceiface"

	"github.com/gorilla/mux"
)

type SummaryService struct {
	config map[string]interface{}
	store  *filestore.Store
}

func NewSummaryService(cfg map[string]interface{}, store *filestore.Store) serviceiface.Service {
	return &SummaryService{config: cfg, store: store}
}

func (s *SummaryService) Name() string {
	return "summarizer"
}

func (s *SummaryService) Start() error {
	go StartSummaryService(s.config, s.store)
	return nil
}

func (s *SummaryService) Stop() error {
	// Implement stop logic if needed
	return nil
}

// StartSummaryService runs the upload/preview/download HTTP server. The
// gateway proxies /summarizer/ here with the path prefix intact.
func StartSummaryService(cfg map[string]interface{}, store *filestore.Store) {
	port := config.DefaultSummarizerPort
	if v, ok := cfg["port"].(int); ok && v > 0 {
		port = v
	}

	h, err := NewHandler(store)
	if err != nil {
		log.Fatalf("Summarizer Service failed to initialize: %v", err)
	}

	router := mux.NewRouter()
	sub := router.PathPrefix("/summarizer").Subrouter()
	sub.HandleFunc("", h.Index).Methods("GET")
	sub.HandleFunc("/", h.Index).Methods("GET")
	sub.HandleFunc("/upload", h.Upload).Methods("POST")
	sub.HandleFunc("/api/transform", h.TransformAPI).Methods("POST")
	sub.HandleFunc("/download/{token}", h.Download).Methods("GET")
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Summarizer Service is healthy"))
	})

	log.Printf("Summarizer Service started on :%d", port)
	if err := http.ListenAndServe(fmt.Sprintf(":%d", port), router); err != nil {
		log.Fatalf("Summarizer Service failed: %v", err)
	}
}
