package store

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"
)

// File stores credentials as a JSON document on disk, the desktop/CLI
// analogue of browser local storage. Malformed or partially written
// content is treated as absent rather than surfaced as an error, so a
// corrupt file only ever costs the user a login.
type File struct {
	mu   sync.Mutex
	path string
}

func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Load(_ context.Context) (Credentials, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		return Credentials{}, ErrNotFound
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return Credentials{}, ErrNotFound
	}
	if creds.AccessToken == "" {
		return Credentials{}, ErrNotFound
	}
	return creds, nil
}

// Save writes the whole document through a rename so a crash mid-write
// leaves either the old credentials or the new ones, never a mix.
func (f *File) Save(_ context.Context, creds Credentials) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.Marshal(creds)
	if err != nil {
		return err
	}

	tmp := f.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

func (f *File) Clear(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	err := os.Remove(f.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
