package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileBackend keeps each document in its own JSON file.
type FileBackend struct {
	paths map[string]string
}

// NewFileBackend maps the rooms and users documents to the given paths.
func NewFileBackend(roomsPath, usersPath string) *FileBackend {
	return &FileBackend{paths: map[string]string{
		DocRooms: roomsPath,
		DocUsers: usersPath,
	}}
}

func (b *FileBackend) path(doc string) (string, error) {
	p, ok := b.paths[doc]
	if !ok || p == "" {
		return "", fmt.Errorf("no file configured for document %q", doc)
	}
	return p, nil
}

// Load reads the file backing doc.
func (b *FileBackend) Load(_ context.Context, doc string) ([]byte, error) {
	p, err := b.path(doc)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p, err)
	}
	return data, nil
}

// Save writes data to a temp file next to the target and renames it into
// place, so a crash mid-write leaves the previous file intact.
func (b *FileBackend) Save(_ context.Context, doc string, data []byte) (err error) {
	p, err := b.path(doc)
	if err != nil {
		return err
	}
	dir := filepath.Dir(p)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(p)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", p, err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()
	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err = os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("rename to %s: %w", p, err)
	}
	return nil
}
