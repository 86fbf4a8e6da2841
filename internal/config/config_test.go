package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lathe/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantStaging := filepath.Join(tempHome, ".local", "share", "lathe", "staging")
	if cfg.Paths.StagingDir != wantStaging {
		t.Fatalf("unexpected staging dir: got %q want %q", cfg.Paths.StagingDir, wantStaging)
	}
	if cfg.Encoding.Backend != "ffmpeg" {
		t.Fatalf("unexpected backend: %q", cfg.Encoding.Backend)
	}
	if cfg.Encoding.Threads != 1 {
		t.Fatalf("unexpected thread count: %d", cfg.Encoding.Threads)
	}
	if len(cfg.ActiveRenditions()) == 0 {
		t.Fatal("expected default renditions for ffmpeg backend")
	}
	if cfg.Logging.Format != "auto" {
		t.Fatalf("unexpected log format: %q", cfg.Logging.Format)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.StagingDir, cfg.Paths.OutputDir, cfg.Paths.LogDir} {
		if _, err := os.Stat(dir); err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
	}
}

func TestLoadExplicitFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lathe.toml")
	content := `
[paths]
staging_dir = "` + filepath.Join(dir, "staging") + `"
output_dir = "` + filepath.Join(dir, "out") + `"
log_dir = "` + filepath.Join(dir, "logs") + `"

[encoding]
backend = "FFmpeg"
threads = 4
ffmpeg_path = "/opt/ffmpeg/bin/ffmpeg"

[[renditions.ffmpeg]]
name = "tiny"
extension = ".mp4"
params = ["-vf", "scale=-2:240"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("unexpected resolution: %q exists=%v", resolved, exists)
	}
	if cfg.Encoding.Backend != "ffmpeg" {
		t.Fatalf("expected backend lowercased, got %q", cfg.Encoding.Backend)
	}
	if cfg.Encoding.Threads != 4 {
		t.Fatalf("unexpected threads: %d", cfg.Encoding.Threads)
	}
	renditions := cfg.ActiveRenditions()
	if len(renditions) != 1 {
		t.Fatalf("expected configured renditions to replace defaults, got %d", len(renditions))
	}
	if renditions[0].Extension != "mp4" {
		t.Fatalf("expected extension normalized without dot, got %q", renditions[0].Extension)
	}
}

func TestValidateRejectsBadRenditions(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{
			name: "no renditions for backend",
			mutate: func(cfg *config.Config) {
				cfg.Encoding.Backend = "av1"
			},
			wantErr: "no renditions configured",
		},
		{
			name: "duplicate names",
			mutate: func(cfg *config.Config) {
				list := cfg.Renditions["ffmpeg"]
				list = append(list, list[0])
				cfg.Renditions["ffmpeg"] = list
			},
			wantErr: "duplicate rendition name",
		},
		{
			name: "missing extension",
			mutate: func(cfg *config.Config) {
				cfg.Renditions["ffmpeg"][0].Extension = ""
			},
			wantErr: "extension required",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateRejectsUnknownLogFormat(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Format = "yaml"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for unknown log format")
	}
}

func TestCreateSampleWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[encoding]") {
		t.Fatal("sample missing encoding section")
	}
}
