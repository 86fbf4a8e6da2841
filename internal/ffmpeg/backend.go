package ffmpeg

import (
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"

	"lathe/internal/config"
	"lathe/internal/logging"
)

var commandContext = exec.CommandContext

// Backend drives the ffmpeg/ffprobe binaries. Binary resolution happens at
// construction so misconfiguration surfaces at startup, not per encode.
type Backend struct {
	ffmpegPath  string
	ffprobePath string
	threads     int
	logger      *slog.Logger
}

// Option configures the backend.
type Option func(*Backend)

// WithLogger overrides the default no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Backend) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// New resolves the configured binaries and returns a ready backend.
// Explicit paths from the config win; otherwise the binaries are looked up
// on PATH.
func New(cfg *config.Config, opts ...Option) (*Backend, error) {
	backend := &Backend{
		threads: cfg.Encoding.Threads,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(backend)
	}

	var err error
	backend.ffmpegPath, err = resolveBinary(cfg.Encoding.FFmpegPath, "ffmpeg")
	if err != nil {
		return nil, err
	}
	backend.ffprobePath, err = resolveBinary(cfg.Encoding.FFprobePath, "ffprobe")
	if err != nil {
		return nil, err
	}
	return backend, nil
}

// Name identifies the backend for rendition lookup.
func (b *Backend) Name() string {
	return "ffmpeg"
}

// baseParams returns the fixed flags placed before caller-supplied rendition
// params: thread count, overwrite existing output, and experimental codec
// compatibility (aac).
func (b *Backend) baseParams() []string {
	return []string{"-threads", strconv.Itoa(b.threads), "-y", "-strict", "-2"}
}

func resolveBinary(configured, name string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%s binary not found: %w", name, err)
	}
	return path, nil
}
