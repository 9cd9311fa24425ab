package storage

import (
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

type FileStorage interface {
	Get(path string) (io.ReadCloser, error)
	Save(path string, data io.Reader) error
	Exists(path string) bool
	Delete(path string) error
}

type fileStorage struct{}

func NewFileStorage() FileStorage {
	return &fileStorage{}
}

func (s *fileStorage) Get(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// Save writes data to a uuid-named temp file in the target directory and
// renames it over path, so a failed write never leaves a partial output.
// The directory must already exist.
func (s *fileStorage) Save(path string, data io.Reader) error {
	tmp := filepath.Join(filepath.Dir(path), "."+uuid.NewString()+".tmp")

	file, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if _, err := io.Copy(file, data); err != nil {
		file.Close()
		os.Remove(tmp)
		return err
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

func (s *fileStorage) Exists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

func (s *fileStorage) Delete(path string) error {
	return os.Remove(path)
}
