package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

const jsonStoreVersion = 1

type document struct {
	Version int                        `json:"version"`
	Data    map[string]json.RawMessage `json:"data"`
}

// JSONStore keeps every document in a single JSON file.
//
// Concurrency note:
//   - JSONStore is safe for concurrent use by multiple goroutines.
//   - Every operation re-reads the file when another process replaced it
//     since the last read or write, so readers never serve a stale copy and
//     a write only replaces the key it names. Two processes writing in the
//     same instant can still race; the last rename wins.
type JSONStore struct {
	path string
	mu   sync.Mutex
	doc  *document
	// seen is the file as last read or written by this store
	seen os.FileInfo
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.doc = &document{
		Version: jsonStoreVersion,
		Data:    make(map[string]json.RawMessage),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *JSONStore) read() error {
	info, err := os.Stat(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'diacare init' first")
		}
		return fmt.Errorf("%w: failed to read storage: %w", ErrUnavailable, err)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("%w: failed to read storage: %w", ErrUnavailable, err)
	}

	doc := &document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("%w: failed to parse storage: %w", ErrUnavailable, err)
	}
	if doc.Data == nil {
		doc.Data = make(map[string]json.RawMessage)
	}
	if doc.Version > jsonStoreVersion {
		return fmt.Errorf("storage version (%d) is newer than supported version (%d) - please upgrade the application", doc.Version, jsonStoreVersion)
	}

	s.doc = doc
	s.seen = info
	return nil
}

// refresh reloads the document when the file on disk is not the one this store
// last saw. It must be called with s.mu held.
func (s *JSONStore) refresh() error {
	if s.doc == nil {
		return fmt.Errorf("%w: storage not loaded", ErrUnavailable)
	}
	info, err := os.Stat(s.path)
	if err != nil {
		return fmt.Errorf("%w: failed to read storage: %w", ErrUnavailable, err)
	}
	if s.seen != nil && os.SameFile(s.seen, info) &&
		info.ModTime().Equal(s.seen.ModTime()) && info.Size() == s.seen.Size() {
		return nil
	}
	return s.read()
}

func (s *JSONStore) Close() error {
	return nil
}

// save writes the document to a temporary file and renames it over the
// original so a crash never leaves a half-written store behind.
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("%w: failed to write storage: %w", ErrUnavailable, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: failed to write storage: %w", ErrUnavailable, err)
	}

	if info, err := os.Stat(s.path); err == nil {
		s.seen = info
	}
	return nil
}

func (s *JSONStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.refresh(); err != nil {
		return nil, err
	}

	value, ok := s.doc.Data[key]
	if !ok {
		return nil, ErrNotFound
	}

	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (s *JSONStore) Set(_ context.Context, key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("value for %s is not valid JSON", key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.refresh(); err != nil {
		return err
	}

	prev, had := s.doc.Data[key]
	stored := make(json.RawMessage, len(value))
	copy(stored, value)
	s.doc.Data[key] = stored

	if err := s.save(); err != nil {
		// Keep memory consistent with what is on disk
		if had {
			s.doc.Data[key] = prev
		} else {
			delete(s.doc.Data, key)
		}
		return err
	}
	return nil
}

func (s *JSONStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.refresh(); err != nil {
		return err
	}

	removed := make(map[string]json.RawMessage)
	for _, key := range keys {
		if value, ok := s.doc.Data[key]; ok {
			removed[key] = value
			delete(s.doc.Data, key)
		}
	}
	if len(removed) == 0 {
		return nil
	}

	if err := s.save(); err != nil {
		for key, value := range removed {
			s.doc.Data[key] = value
		}
		return err
	}
	return nil
}

func (s *JSONStore) Keys(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.refresh(); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(s.doc.Data))
	for key := range s.doc.Data {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
