package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FileStorage resolves input files (dataset, default image) against a base directory.
type FileStorage interface {
	Open(path string) (io.ReadCloser, error)
	ReadAll(path string) ([]byte, error)
	Exists(path string) bool
	Resolve(path string) string
}

type fileStorage struct {
	basePath string
}

func NewFileStorage(basePath string) FileStorage {
	return &fileStorage{basePath: basePath}
}

// Resolve keeps absolute paths and joins relative ones onto the base directory.
func (s *fileStorage) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.basePath, path)
}

func (s *fileStorage) Open(path string) (io.ReadCloser, error) {
	file, err := os.Open(s.Resolve(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return file, nil
}

func (s *fileStorage) ReadAll(path string) ([]byte, error) {
	reader, err := s.Open(path)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	return io.ReadAll(reader)
}

func (s *fileStorage) Exists(path string) bool {
	_, err := os.Stat(s.Resolve(path))
	return !os.IsNotExist(err)
}
