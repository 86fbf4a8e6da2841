package ffmpeg

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultThumbnailTime is the seek position used when the caller does not
// specify one.
const DefaultThumbnailTime = 0.5

// Thumbnail extracts a single frame at atTime seconds into a fresh temporary
// JPEG file and returns its path. The requested time must lie within the
// video duration; positions at or within a frame of the end of the stream
// yield no decodable frame and fail with ErrInvalidTime.
func (b *Backend) Thumbnail(ctx context.Context, videoPath string, atTime float64) (string, error) {
	info, err := b.MediaInfo(ctx, videoPath)
	if err != nil {
		return "", err
	}
	if atTime > info.Duration {
		return "", ErrInvalidTime
	}

	base := filepath.Base(videoPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	image, err := os.CreateTemp("", "*_"+base+".jpg")
	if err != nil {
		return "", err
	}
	imagePath := image.Name()
	if err := image.Close(); err != nil {
		return "", err
	}

	args := []string{
		"-i", videoPath,
		"-vframes", "1",
		"-ss", strconv.FormatFloat(atTime, 'f', -1, 64),
		"-y", imagePath,
	}
	command := b.ffmpegPath + " " + strings.Join(args, " ")

	cmd := commandContext(ctx, b.ffmpegPath, args...)
	if runErr := cmd.Run(); runErr != nil {
		_ = os.Remove(imagePath)
		encErr := &EncodingError{Command: command, ExitCode: -1, Err: runErr, Reason: "extract frame"}
		if exitErr, ok := runErr.(*exec.ExitError); ok {
			encErr = &EncodingError{Command: command, ExitCode: exitErr.ExitCode()}
		}
		return "", encErr
	}

	stat, err := os.Stat(imagePath)
	if err != nil || stat.Size() == 0 {
		// Seeks too close to the last decodable frame produce an empty
		// file with a clean exit.
		_ = os.Remove(imagePath)
		return "", ErrInvalidTime
	}

	return imagePath, nil
}
