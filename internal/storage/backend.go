// Package storage persists the two PCM documents (rooms and users).  A
// document is an opaque JSON blob; the repository layer decides what it
// contains.  Backends overwrite a document wholesale on every save.
package storage

import (
	"context"
	"errors"
)

// Document names.
const (
	DocRooms = "quartos"
	DocUsers = "users"
)

// ErrNotFound is returned by Load when the document has never been saved.
var ErrNotFound = errors.New("document not found")

// Backend loads and saves whole documents.
type Backend interface {
	Load(ctx context.Context, doc string) ([]byte, error)
	Save(ctx context.Context, doc string, data []byte) error
}
