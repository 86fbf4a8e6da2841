package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WithLocalPath invokes fn with a filesystem path for file. Resolution
// order: a direct path on the handle, the owning storage backend's local
// path, and finally a streaming copy into a temporary file. The path is
// valid only for the duration of fn; any temporary file is removed on every
// exit path, including panics.
func WithLocalPath(file File, fn func(path string) error) error {
	if pather, ok := file.(Pather); ok {
		if path, err := pather.Path(); err == nil {
			return fn(path)
		}
	}

	if owned, ok := file.(interface{ Storage() Storage }); ok {
		if resolver, ok := owned.Storage().(LocalResolver); ok {
			if path, err := resolver.LocalPath(file.Name()); err == nil {
				return fn(path)
			}
		}
	}

	return withTemporaryCopy(file, fn)
}

func withTemporaryCopy(file File, fn func(path string) error) error {
	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("open %s: %w", file.Name(), err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "lathe-*"+filepath.Ext(file.Name()))
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		return fmt.Errorf("copy %s: %w", file.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("flush temp file: %w", err)
	}

	return fn(tmp.Name())
}
