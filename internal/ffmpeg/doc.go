// Package ffmpeg wraps the external ffmpeg/ffprobe pair as an encoding
// backend: media inspection, supervised transcodes with live progress, and
// single-frame thumbnail extraction.
//
// Encode launches one ffmpeg process per rendition and exposes its progress
// as a Session, a blocking pull over the process's diagnostic stream: each
// Scan call reads stderr until the next parseable time= marker or process
// exit. The caller owns the pace; the process keeps running between pulls.
//
// Errors follow the conversion taxonomy: *ProbeError for inspection
// failures, *EncodingError for spawn/exit/output failures, ErrInvalidTime
// for thumbnail timestamps outside the encodable range.
package ffmpeg
