package deps

import (
	"os"
	"path/filepath"
	"testing"

	"lathe/internal/config"
)

func TestCheckBinariesReportsMissing(t *testing.T) {
	statuses := CheckBinaries([]Requirement{
		{Name: "Ghost", Command: "definitely-not-a-real-binary-zz"},
		{Name: "Blank", Command: "  "},
	})

	if len(statuses) != 2 {
		t.Fatalf("expected 2 statuses, got %d", len(statuses))
	}
	if statuses[0].Available {
		t.Fatal("missing binary should not be available")
	}
	if statuses[0].Detail == "" {
		t.Fatal("missing binary should carry a detail message")
	}
	if statuses[1].Detail != "command not configured" {
		t.Fatalf("unexpected detail for blank command: %q", statuses[1].Detail)
	}
}

func TestCheckBinariesFindsExecutable(t *testing.T) {
	dir := t.TempDir()
	stub := filepath.Join(dir, "fakebin")
	if err := os.WriteFile(stub, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	statuses := CheckBinaries([]Requirement{{Name: "Fake", Command: stub}})
	if !statuses[0].Available {
		t.Fatalf("expected stub to be available: %+v", statuses[0])
	}
}

func TestRequirementsHonorOverrides(t *testing.T) {
	cfg := config.Default()
	cfg.Encoding.FFmpegPath = "/opt/ffmpeg/bin/ffmpeg"

	reqs := Requirements(&cfg)
	if len(reqs) != 2 {
		t.Fatalf("expected 2 requirements, got %d", len(reqs))
	}
	if reqs[0].Command != "/opt/ffmpeg/bin/ffmpeg" {
		t.Fatalf("expected override to win, got %q", reqs[0].Command)
	}
	if reqs[1].Command != "ffprobe" {
		t.Fatalf("expected default ffprobe, got %q", reqs[1].Command)
	}
}
