package main

import (
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"ExcelSummarizer/internal/appmanager"
	"ExcelSummarizer/internal/filestore"
)

// outputDir resolves where generated workbooks are kept between upload
// and download.
func outputDir() string {
	if dir := os.Getenv("OUTPUT_DIR"); dir != "" {
		return dir
	}
	return filepath.Join(os.TempDir(), "excel_summarizer_uploads")
}

func main() {
	// Load .env for local dev (ignored when absent)
	_ = godotenv.Load(".env")

	store, err := filestore.New(outputDir())
	if err != nil {
		log.Fatal("failed to open output store:", err)
	}
	appmanager.SetStore(store)

	manager := appmanager.NewAppManager()

	servicesPath := os.Getenv("SERVICES_CONFIG")
	if servicesPath == "" {
		servicesPath = "services.yaml"
	}
	servicesCfg, err := appmanager.LoadServiceSequence(servicesPath)
	if err != nil {
		log.Fatal("failed to load service sequence:", err)
	}

	manager.AutoRegisterServices(servicesCfg)

	if err := manager.StartAll(); err != nil {
		log.Fatal("failed to start:", err)
	}

	// Graceful shutdown handling
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs

	if err := manager.StopAll(); err != nil {
		log.Fatal("failed to stop:", err)
	}
}
