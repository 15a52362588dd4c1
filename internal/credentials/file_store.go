package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/afero"
)

// FileStore is a Store backed by a JSON object on disk, e.g.
//
//	{"token": "abc123"}
//
// The file is re-read on every Get so external writers are picked up.
type FileStore struct {
	fs   afero.Fs
	path string
}

// NewFileStore creates a FileStore reading path from fsys.
func NewFileStore(fsys afero.Fs, path string) *FileStore {
	return &FileStore{fs: fsys, path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Get implements Store. A missing file behaves like an empty store.
func (s *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read %s: %w", s.path, err)
	}
	if len(data) == 0 {
		return "", false, nil
	}

	var values map[string]string
	if err := json.Unmarshal(data, &values); err != nil {
		return "", false, fmt.Errorf("%w: %s: %v", ErrUnreadableStore, s.path, err)
	}
	v, ok := values[key]
	return v, ok, nil
}
