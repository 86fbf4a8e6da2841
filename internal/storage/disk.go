package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Disk is a Storage rooted at a local directory. Save replaces any existing
// blob of the same name.
type Disk struct {
	root string
}

// NewDisk creates the root directory if needed and returns the store.
func NewDisk(root string) (*Disk, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root %q: %w", root, err)
	}
	return &Disk{root: root}, nil
}

// Root returns the absolute storage root.
func (d *Disk) Root() string {
	return d.root
}

func (d *Disk) resolve(name string) (string, error) {
	cleaned := filepath.Clean(name)
	if cleaned == "." || strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("invalid blob name %q", name)
	}
	return filepath.Join(d.root, cleaned), nil
}

func (d *Disk) Open(name string) (io.ReadCloser, error) {
	path, err := d.resolve(name)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

// Save streams r into the named blob, creating or replacing it, and returns
// the stored name.
func (d *Disk) Save(name string, r io.Reader) (string, error) {
	path, err := d.resolve(name)
	if err != nil {
		return "", err
	}
	if dir := filepath.Dir(path); dir != d.root {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create blob directory: %w", err)
		}
	}

	out, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("create blob %q: %w", name, err)
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write blob %q: %w", name, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("close blob %q: %w", name, err)
	}
	return name, nil
}

func (d *Disk) Remove(name string) error {
	path, err := d.resolve(name)
	if err != nil {
		return err
	}
	return os.Remove(path)
}

// LocalPath returns the absolute path of an existing blob.
func (d *Disk) LocalPath(name string) (string, error) {
	path, err := d.resolve(name)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err != nil {
		return "", err
	}
	return path, nil
}
