package storage_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lathe/internal/storage"
)

// remoteStore wraps a Disk but hides its LocalPath so resolution must fall
// back to a temporary copy.
type remoteStore struct {
	disk *storage.Disk
}

func (r remoteStore) Open(name string) (io.ReadCloser, error)       { return r.disk.Open(name) }
func (r remoteStore) Save(name string, b io.Reader) (string, error) { return r.disk.Save(name, b) }
func (r remoteStore) Remove(name string) error                      { return r.disk.Remove(name) }

func TestLocalFileResolvesDirectly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clip.mp4")
	if err := os.WriteFile(path, []byte("video"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	var got string
	err := storage.WithLocalPath(storage.LocalFile(path), func(p string) error {
		got = p
		return nil
	})
	if err != nil {
		t.Fatalf("WithLocalPath: %v", err)
	}
	if got != path {
		t.Fatalf("expected direct path %q, got %q", path, got)
	}
}

func TestStoredResolvesThroughLocalResolver(t *testing.T) {
	disk, err := storage.NewDisk(t.TempDir())
	if err != nil {
		t.Fatalf("NewDisk: %v", err)
	}
	if _, err := disk.Save("clip.mp4", strings.NewReader("video")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	file := storage.NewStored(disk, "clip.mp4")
	var got string
	err = storage.WithLocalPath(file, func(p string) error {
		got = p
		return nil
	})
	if err != nil {
		t.Fatalf("WithLocalPath: %v", err)
	}
	if got != filepath.Join(disk.Root(), "clip.mp4") {
		t.Fatalf("expected resolver path, got %q", got)
	}
}

func TestStoredWithoutResolverCopiesAndCleansUp(t *testing.T) {
	disk, err := storage.NewDisk(t.TempDir())
	if err != nil {
		t.Fatalf("NewDisk: %v", err)
	}
	if _, err := disk.Save("clip.mp4", strings.NewReader("remote bytes")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	file := storage.NewStored(remoteStore{disk: disk}, "clip.mp4")
	var tempPath string
	err = storage.WithLocalPath(file, func(p string) error {
		tempPath = p
		data, readErr := os.ReadFile(p)
		if readErr != nil {
			return readErr
		}
		if string(data) != "remote bytes" {
			t.Fatalf("unexpected temp content %q", data)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithLocalPath: %v", err)
	}
	if tempPath == "" {
		t.Fatal("expected a temporary path")
	}
	if _, err := os.Stat(tempPath); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected temp file removed, stat err: %v", err)
	}
}

func TestWithLocalPathCleansUpOnCallbackError(t *testing.T) {
	disk, err := storage.NewDisk(t.TempDir())
	if err != nil {
		t.Fatalf("NewDisk: %v", err)
	}
	if _, err := disk.Save("clip.mp4", strings.NewReader("x")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	boom := errors.New("boom")
	var tempPath string
	err = storage.WithLocalPath(storage.NewStored(remoteStore{disk: disk}, "clip.mp4"), func(p string) error {
		tempPath = p
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected callback error, got %v", err)
	}
	if _, err := os.Stat(tempPath); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected temp file removed after error, stat err: %v", err)
	}
}

func TestDiskSaveReplacesExisting(t *testing.T) {
	disk, err := storage.NewDisk(t.TempDir())
	if err != nil {
		t.Fatalf("NewDisk: %v", err)
	}
	if _, err := disk.Save("out.mp4", strings.NewReader("first encode")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := disk.Save("out.mp4", strings.NewReader("second")); err != nil {
		t.Fatalf("Save replace: %v", err)
	}

	rc, err := disk.Open("out.mp4")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "second" {
		t.Fatalf("expected replacement, got %q", data)
	}
}

func TestDiskRejectsTraversal(t *testing.T) {
	disk, err := storage.NewDisk(t.TempDir())
	if err != nil {
		t.Fatalf("NewDisk: %v", err)
	}
	if _, err := disk.Save("../escape", strings.NewReader("x")); err == nil {
		t.Fatal("expected traversal rejection")
	}
	if _, err := disk.LocalPath("/abs/path"); err == nil {
		t.Fatal("expected absolute name rejection")
	}
}
