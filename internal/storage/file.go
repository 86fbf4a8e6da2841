package storage

import (
	"io"
	"os"
	"path/filepath"
)

// File is the minimal handle the conversion engine accepts: a logical name
// and a way to read the bytes.
type File interface {
	Name() string
	Open() (io.ReadCloser, error)
}

// Pather is implemented by files that can expose a direct filesystem path.
type Pather interface {
	Path() (string, error)
}

// Storage persists named blobs.
type Storage interface {
	Open(name string) (io.ReadCloser, error)
	Save(name string, r io.Reader) (string, error)
	Remove(name string) error
}

// LocalResolver is implemented by storage backends that can translate a
// logical name into an absolute filesystem path without copying.
type LocalResolver interface {
	LocalPath(name string) (string, error)
}

// LocalFile is a plain filesystem file with no storage abstraction.
type LocalFile string

func (f LocalFile) Name() string {
	return filepath.Base(string(f))
}

func (f LocalFile) Open() (io.ReadCloser, error) {
	return os.Open(string(f))
}

func (f LocalFile) Path() (string, error) {
	return filepath.Abs(string(f))
}

// Stored is a file handle owned by a storage backend.
type Stored struct {
	name  string
	store Storage
}

// NewStored wraps a logical name held in store.
func NewStored(store Storage, name string) *Stored {
	return &Stored{name: name, store: store}
}

func (s *Stored) Name() string {
	return s.name
}

func (s *Stored) Open() (io.ReadCloser, error) {
	return s.store.Open(s.name)
}

// Storage exposes the owning backend for local-path resolution.
func (s *Stored) Storage() Storage {
	return s.store
}
