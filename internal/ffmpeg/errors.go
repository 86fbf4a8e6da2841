package ffmpeg

import (
	"errors"
	"fmt"
)

// ErrInvalidTime reports a thumbnail timestamp beyond the video duration or
// too close to the end of the stream to decode a frame. Positions within a
// few hundredths of a second of the true end are indistinguishable from
// out-of-range and raise the same error.
var ErrInvalidTime = errors.New("requested time is outside the video duration")

// ProbeError reports a failed media inspection: missing probe binary,
// unreadable input, unparseable output, or a container without a video
// stream.
type ProbeError struct {
	Path string
	Err  error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("probe %s: %v", e.Path, e.Err)
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}

// EncodingError reports a failed transcode: spawn failure, nonzero exit, or
// empty output. Command holds the full invocation for diagnostics.
type EncodingError struct {
	Command  string
	ExitCode int
	Reason   string
	Err      error
}

func (e *EncodingError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	case e.Reason != "":
		return e.Reason
	default:
		return fmt.Sprintf("`%s` exited with code %d", e.Command, e.ExitCode)
	}
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}
