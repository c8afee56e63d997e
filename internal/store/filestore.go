package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileStore persists one JSON file per record under
// <baseDir>/<collection>/<key>.json.
type FileStore struct {
	baseDir string
}

// NewFileStore creates the base directory (and the known collection
// directories) and returns a file-backed store.
func NewFileStore(baseDir string) (*FileStore, error) {
	for _, collection := range []string{CollectionUsers, CollectionTokens, CollectionChecks} {
		if err := os.MkdirAll(filepath.Join(baseDir, collection), 0o755); err != nil {
			return nil, fmt.Errorf("create collection dir %s: %w", collection, err)
		}
	}
	return &FileStore{baseDir: baseDir}, nil
}

// Exists reports whether a record occupies the key. Any error, including
// invalid keys, reads as false.
func (s *FileStore) Exists(_ context.Context, collection, key string) bool {
	path, err := s.path(collection, key)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Create writes the record with exclusive-creation semantics: the open uses
// O_EXCL, so of two racing creates exactly one wins and the other observes
// ErrConflict.
func (s *FileStore) Create(_ context.Context, collection, key string, record any) error {
	path, err := s.path(collection, key)
	if err != nil {
		return err
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return ErrConflict
		}
		return fmt.Errorf("create record: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("write record: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("sync record: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close record: %w", err)
	}
	return nil
}

// Read decodes the stored document into out.
func (s *FileStore) Read(_ context.Context, collection, key string, out any) error {
	path, err := s.path(collection, key)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("read record: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	return nil
}

// Update replaces the stored document atomically: the new bytes go to a
// temporary file in the same directory which is then renamed over the old
// one, so readers never see a torn record.
func (s *FileStore) Update(_ context.Context, collection, key string, record any) error {
	path, err := s.path(collection, key)
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("stat record: %w", err)
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp record: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp record: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync temp record: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp record: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace record: %w", err)
	}
	return nil
}

// Delete removes the document.
func (s *FileStore) Delete(_ context.Context, collection, key string) error {
	path, err := s.path(collection, key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

// path validates the collection and key and maps them to a filename. Keys
// become filenames, so anything that could escape the collection directory
// is rejected.
func (s *FileStore) path(collection, key string) (string, error) {
	if collection == "" || key == "" {
		return "", ErrInvalidKey
	}
	for _, part := range []string{collection, key} {
		if strings.ContainsAny(part, "/\\") || part == "." || part == ".." {
			return "", ErrInvalidKey
		}
	}
	return filepath.Join(s.baseDir, collection, key+".json"), nil
}
