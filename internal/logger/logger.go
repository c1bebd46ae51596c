package logger

import (
	"archive/zip"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LoggerService owns the process log file: it rotates on size, zips and
// removes logs past retention, and exposes the audit helper the gateway
// and upload handlers write through.
type LoggerService struct {
	mu       sync.Mutex
	file     *os.File
	stopCh   chan struct{}
	wg       sync.WaitGroup
	dir      string
	maxBytes int64
	keepDays int
}

func NewLoggerService(cfg map[string]interface{}) *LoggerService {
	dir, _ := cfg["folder_path"].(string)
	if dir == "" {
		dir = "./logs"
	}
	return &LoggerService{
		stopCh:   make(chan struct{}),
		dir:      dir,
		maxBytes: int64(intOption(cfg, "max_file_mb")) * 1024 * 1024,
		keepDays: intOption(cfg, "retention_days"),
	}
}

// intOption reads an int from a YAML-decoded config map, tolerating the
// float64 values yaml produces for bare numbers.
func intOption(cfg map[string]interface{}, key string) int {
	switch v := cfg[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

func (l *LoggerService) Name() string { return "logger" }

func (l *LoggerService) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := os.MkdirAll(l.dir, 0755); err != nil {
		return err
	}
	if err := l.openNewFile(); err != nil {
		return err
	}
	log.Println("[LoggerService] started, writing to", l.file.Name())

	l.wg.Add(1)
	go l.watch()
	return nil
}

func (l *LoggerService) Stop() error {
	close(l.stopCh)
	l.wg.Wait()
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		log.Println("[LoggerService] stopping")
		return l.file.Close()
	}
	return nil
}

// LogAudit records an audit line through the shared log output.
func (l *LoggerService) LogAudit(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	log.Printf("[AUDIT] %s", msg)
}

// openNewFile points the global log output at a fresh timestamped file.
// Caller holds l.mu.
func (l *LoggerService) openNewFile() error {
	name := filepath.Join(l.dir, fmt.Sprintf("summarizer_%s.log", time.Now().Format("20060102_150405")))
	file, err := os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if l.file != nil {
		l.file.Close()
	}
	l.file = file
	log.SetOutput(file)
	return nil
}

func (l *LoggerService) watch() {
	defer l.wg.Done()
	rotate := time.NewTicker(10 * time.Second)
	retain := time.NewTicker(24 * time.Hour)
	defer rotate.Stop()
	defer retain.Stop()
	for {
		select {
		case <-l.stopCh:
			return
		case <-rotate.C:
			l.rotateIfNeeded()
		case <-retain.C:
			l.archiveOldLogs()
		}
	}
}

func (l *LoggerService) rotateIfNeeded() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil || l.maxBytes <= 0 {
		return
	}
	info, err := l.file.Stat()
	if err != nil || info.Size() < l.maxBytes {
		return
	}
	if err := l.openNewFile(); err == nil {
		log.Println("[LoggerService] rotated log file to", l.file.Name())
	}
}

// archiveOldLogs zips log files older than the retention window and
// deletes the originals.
func (l *LoggerService) archiveOldLogs() {
	if l.keepDays <= 0 {
		return
	}
	cutoff := time.Now().AddDate(0, 0, -l.keepDays)
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return
	}
	archive, err := os.Create(filepath.Join(l.dir, fmt.Sprintf("logs_%s.zip", time.Now().Format("20060102"))))
	if err != nil {
		return
	}
	defer archive.Close()
	zw := zip.NewWriter(archive)
	defer zw.Close()

	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".log" {
			continue
		}
		path := filepath.Join(l.dir, e.Name())
		info, err := os.Stat(path)
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		w, err := zw.Create(e.Name())
		if err != nil {
			continue
		}
		src, err := os.Open(path)
		if err != nil {
			continue
		}
		io.Copy(w, src)
		src.Close()
		os.Remove(path)
	}
}

var GlobalLogger *LoggerService

func SetGlobalLogger(l *LoggerService) {
	GlobalLogger = l
}

// Audit writes through the global logger when one is registered and falls
// back to the standard logger otherwise.
func Audit(msg string) {
	if GlobalLogger != nil {
		GlobalLogger.LogAudit(msg)
		return
	}
	log.Println(msg)
}
