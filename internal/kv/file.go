package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps all keys in one JSON object on disk and rewrites the
// whole file on every Set. The file is shared, unlocked state: a concurrent
// external writer is last-write-wins, same as the browser storage bag this
// stands in for. An unparseable file reads as empty and is replaced by the
// next write.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bag, err := s.read()
	if err != nil {
		return "", false, err
	}
	v, ok := bag[key]
	return v, ok, nil
}

func (s *FileStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bag, err := s.read()
	if err != nil {
		return err
	}
	bag[key] = value

	raw, err := json.Marshal(bag)
	if err != nil {
		return fmt.Errorf("encode store file: %w", err)
	}
	return os.WriteFile(s.path, raw, 0o644)
}

func (s *FileStore) Ping(ctx context.Context) error {
	_, err := os.Stat(filepath.Dir(s.path))
	return err
}

func (s *FileStore) read() (map[string]string, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}

	bag := map[string]string{}
	if err := json.Unmarshal(raw, &bag); err != nil {
		// Lossy recovery: a corrupted bag is treated as absent.
		return map[string]string{}, nil
	}
	return bag, nil
}
