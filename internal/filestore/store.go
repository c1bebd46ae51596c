package filestore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Entry describes one saved output file.
type Entry struct {
	Path         string    `json:"path"`
	OriginalName string    `json:"original_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// Store maps opaque download tokens onto saved output files. The index is
// persisted as JSON next to the files so tokens stay valid across worker
// restarts; all access goes through the mutex.
type Store struct {
	mu        sync.Mutex
	dir       string
	indexPath string
	entries   map[string]Entry
}

// New opens (or creates) a store rooted at dir, loading any existing index.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	s := &Store{
		dir:       dir,
		indexPath: filepath.Join(dir, "index.json"),
		entries:   make(map[string]Entry),
	}
	data, err := os.ReadFile(s.indexPath)
	if err == nil {
		// A corrupt index is discarded rather than blocking startup.
		_ = json.Unmarshal(data, &s.entries)
	}
	return s, nil
}

// Dir returns the directory output files are saved under.
func (s *Store) Dir() string { return s.dir }

// Put registers a saved file under the given token.
func (s *Store) Put(token, path, originalName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[token] = Entry{
		Path:         path,
		OriginalName: originalName,
		CreatedAt:    time.Now(),
	}
	return s.writeIndex()
}

// Get looks up a token. The second return is false for unknown tokens and
// for entries whose file has disappeared.
func (s *Store) Get(token string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[token]
	if !ok {
		return Entry{}, false
	}
	if _, err := os.Stat(e.Path); err != nil {
		return Entry{}, false
	}
	return e, true
}

// Delete removes a token and its file.
func (s *Store) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[token]; ok {
		os.Remove(e.Path)
		delete(s.entries, token)
		s.writeIndex()
	}
}

// Purge deletes entries older than the given age, along with entries whose
// file is already gone, and reports how many were dropped.
func (s *Store) Purge(olderThan time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-olderThan)
	dropped := 0
	for token, e := range s.entries {
		_, statErr := os.Stat(e.Path)
		if statErr == nil && !e.CreatedAt.Before(cutoff) {
			continue
		}
		if statErr == nil {
			os.Remove(e.Path)
		}
		delete(s.entries, token)
		dropped++
	}
	if dropped > 0 {
		s.writeIndex()
	}
	return dropped
}

// writeIndex persists the index. Caller holds s.mu.
func (s *Store) writeIndex() error {
	data, err := json.Marshal(s.entries)
	if err != nil {
		return err
	}
	return os.WriteFile(s.indexPath, data, 0644)
}
