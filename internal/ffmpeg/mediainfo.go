package ffmpeg

import (
	"context"
	"errors"

	"lathe/internal/media/ffprobe"
)

// MediaInfo carries the basic properties of a video file. Width and Height
// are 0 when unknown; Duration is in seconds and may be fractional.
type MediaInfo struct {
	Width    uint
	Height   uint
	Duration float64
}

// MediaInfo probes the file at path. It spawns one ffprobe process per call
// and performs no caching; callers may cache the result.
func (b *Backend) MediaInfo(ctx context.Context, path string) (MediaInfo, error) {
	result, err := ffprobe.Inspect(ctx, b.ffprobePath, path)
	if err != nil {
		return MediaInfo{}, &ProbeError{Path: path, Err: err}
	}

	stream, ok := result.FirstVideoStream()
	if !ok {
		return MediaInfo{}, &ProbeError{Path: path, Err: errors.New("no video stream")}
	}

	info := MediaInfo{Duration: result.DurationSeconds()}
	if stream.Width > 0 {
		info.Width = uint(stream.Width)
	}
	if stream.Height > 0 {
		info.Height = uint(stream.Height)
	}
	return info, nil
}
