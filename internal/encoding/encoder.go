package encoding

import (
	"context"

	"lathe/internal/ffmpeg"
)

// Progress is a pull-based view of a running encode. Scan blocks until the
// next progress value is available and reports false once the encode has
// finished or failed; Err reports how it ended.
type Progress interface {
	Scan() bool
	Percent() float64
	Err() error
}

// Encoder produces one rendition from a local source file.
type Encoder interface {
	Name() string
	Encode(ctx context.Context, sourcePath, targetPath string, params []string) (Progress, error)
}

type ffmpegEncoder struct {
	backend *ffmpeg.Backend
}

// NewFFmpegEncoder adapts an ffmpeg backend to the Encoder interface.
func NewFFmpegEncoder(backend *ffmpeg.Backend) Encoder {
	return ffmpegEncoder{backend: backend}
}

func (e ffmpegEncoder) Name() string {
	return e.backend.Name()
}

func (e ffmpegEncoder) Encode(ctx context.Context, sourcePath, targetPath string, params []string) (Progress, error) {
	session, err := e.backend.Encode(ctx, sourcePath, targetPath, params)
	if err != nil {
		return nil, err
	}
	return session, nil
}
