package storage

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	fileExtension = ".json"
	tempPrefix    = ".tmp-"
)

// FileStore keeps one file per key in a directory.
type FileStore struct {
	rootDir string

	mu      sync.Mutex
	written map[string][sha256.Size]byte
}

func NewFileStore(directory string) (*FileStore, error) {
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll(%s) > %w", directory, err)
	}
	return &FileStore{
		rootDir: directory,
		written: make(map[string][sha256.Size]byte),
	}, nil
}

func (s *FileStore) Dir() string {
	return s.rootDir
}

func (s *FileStore) filePath(key string) string {
	return filepath.Join(s.rootDir, url.PathEscape(key)+fileExtension)
}

// keyFromPath reverses filePath; ok is false for files the store does not own.
func (s *FileStore) keyFromPath(path string) (string, bool) {
	name := filepath.Base(path)
	if strings.HasPrefix(name, tempPrefix) || !strings.HasSuffix(name, fileExtension) {
		return "", false
	}
	key, err := url.PathUnescape(strings.TrimSuffix(name, fileExtension))
	if err != nil {
		return "", false
	}
	return key, true
}

func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	contents, err := os.ReadFile(s.filePath(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", key, err)
	}
	return contents, nil
}

// Set writes to a temporary file and renames it over the old value.
func (s *FileStore) Set(_ context.Context, key string, value []byte) error {
	file, err := os.CreateTemp(s.rootDir, tempPrefix+"*")
	if err != nil {
		return fmt.Errorf("os.CreateTemp > %w", err)
	}
	defer func() {
		_ = os.Remove(file.Name())
	}()

	if _, err := file.Write(value); err != nil {
		_ = file.Close()
		return fmt.Errorf("file.Write > %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("file.Close > %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Rename(file.Name(), s.filePath(key)); err != nil {
		return fmt.Errorf("os.Rename(%s) > %w", key, err)
	}
	s.written[key] = sha256.Sum256(value)
	return nil
}

func (s *FileStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.filePath(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("os.Remove(%s) > %w", key, err)
	}
	delete(s.written, key)
	return nil
}

func (s *FileStore) Close() error {
	return nil
}

// isOwnWrite reports whether contents is what this store last wrote under key.
func (s *FileStore) isOwnWrite(key string, contents []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum, ok := s.written[key]
	return ok && sum == sha256.Sum256(contents)
}
