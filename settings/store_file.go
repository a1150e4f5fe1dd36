package settings

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// FileName is the name of the settings file inside the data directory.
const FileName = "settings.json"

// FileStore keeps the settings document in a single JSON file.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore for <dir>/settings.json.
func NewFileStore(dir string) *FileStore {
	return &FileStore{filepath.Join(dir, FileName)}
}

// NewFileStoreAt returns a FileStore for an explicit file path.
func NewFileStoreAt(path string) *FileStore {
	return &FileStore{path}
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Location() string {
	return s.path
}

func (s *FileStore) Read() ([]byte, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}

// Write replaces the whole file. The previous content is not kept.
func (s *FileStore) Write(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}
