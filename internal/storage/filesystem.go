package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore persists each key as a file beneath a data directory. This is the
// default backend and the closest analogue to the browser's local storage: a
// small set of flat text documents on the local machine.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("data directory cannot be empty")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	// Keys come from the fixed schema in storage.go, but a stray separator
	// must never escape the data directory.
	return filepath.Join(s.dir, filepath.Base(key))
}

func (s *FileStore) Load(key string) (string, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}

	return string(data), true, nil
}

// Save writes through a temporary file and renames it into place so a crash
// mid-write never leaves a truncated document behind.
func (s *FileStore) Save(key, value string) error {
	tmp, err := os.CreateTemp(s.dir, filepath.Base(key)+".tmp-*")
	if err != nil {
		return err
	}

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), s.path(key))
}

func (s *FileStore) Delete(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *FileStore) Keys() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	var keys []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, KeyPrefix) && !strings.Contains(name, ".tmp-") {
			keys = append(keys, name)
		}
	}

	return keys, nil
}
