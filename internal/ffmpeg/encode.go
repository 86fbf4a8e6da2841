package ffmpeg

import (
	"bufio"
	"bytes"
	"context"
	"math"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

// timecodePattern extracts the elapsed-time marker from ffmpeg's periodic
// stats lines, format HH:MM:SS.ff.
var timecodePattern = regexp.MustCompile(`time=(\d+:\d+:\d+\.\d+)\s`)

// Session supervises one running transcode. Progress is a blocking pull:
// each Scan call consumes the process's diagnostic stream until the next
// parseable progress line or process exit. The sequence is finite and ends
// with exactly one value of 100 on success.
type Session struct {
	cmd     *exec.Cmd
	scanner *bufio.Scanner
	command string
	target  string
	total   float64
	percent float64
	exited  bool
	err     error
}

// Encode probes the source for its total duration and spawns the transcoder
// writing to target. All encoder-specific options are passed in using
// params, in order, after the fixed baseline flags.
//
// A probe failure or spawn failure is returned immediately; everything after
// a successful spawn is reported through the Session.
func (b *Backend) Encode(ctx context.Context, sourcePath, targetPath string, params []string) (*Session, error) {
	info, err := b.MediaInfo(ctx, sourcePath)
	if err != nil {
		return nil, err
	}

	args := append([]string{"-i", sourcePath}, b.baseParams()...)
	args = append(args, params...)
	args = append(args, targetPath)
	command := b.ffmpegPath + " " + strings.Join(args, " ")

	cmd := commandContext(ctx, b.ffmpegPath, args...)
	// ffmpeg reports live stats to stderr.
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, &EncodingError{Command: command, Reason: "open diagnostic stream", Err: err}
	}
	if err := cmd.Start(); err != nil {
		return nil, &EncodingError{Command: command, Reason: "start transcoder", Err: err}
	}

	scanner := bufio.NewScanner(stderr)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	scanner.Split(scanProgressLines)

	b.logger.Debug("encode started", "source", sourcePath, "target", targetPath, "duration", info.Duration)

	return &Session{
		cmd:     cmd,
		scanner: scanner,
		command: command,
		target:  targetPath,
		total:   info.Duration,
	}, nil
}

// Scan blocks until the next progress value is available and reports whether
// one was produced. After Scan returns false, Err distinguishes failure from
// normal completion.
func (s *Session) Scan() bool {
	if s.err != nil {
		return false
	}
	if s.exited {
		return false
	}

	for s.scanner.Scan() {
		match := timecodePattern.FindStringSubmatch(s.scanner.Text())
		if match == nil {
			// Stats lines interleave with codec chatter; skip anything
			// that does not carry a timecode.
			continue
		}
		s.percent = normalizePercent(parseTimecode(match[1]), s.total)
		return true
	}

	// Diagnostic stream closed: the process is exiting.
	s.exited = true
	waitErr := s.cmd.Wait()

	if info, statErr := os.Stat(s.target); statErr != nil || info.Size() == 0 {
		s.err = &EncodingError{Command: s.command, Reason: "file size of generated file is 0"}
		return false
	}
	if waitErr != nil {
		encErr := &EncodingError{Command: s.command, ExitCode: -1, Err: waitErr, Reason: "transcoder failed"}
		if exitErr, ok := waitErr.(*exec.ExitError); ok {
			encErr = &EncodingError{Command: s.command, ExitCode: exitErr.ExitCode()}
		}
		s.err = encErr
		return false
	}

	s.percent = 100
	return true
}

// Percent returns the most recent progress value in [0,100].
func (s *Session) Percent() float64 {
	return s.percent
}

// Err returns the terminal error, if any, once Scan has reported false.
func (s *Session) Err() error {
	return s.err
}

// parseTimecode converts HH:MM:SS.ff into elapsed seconds, preserving the
// fractional part.
func parseTimecode(value string) float64 {
	var seconds float64
	for _, part := range strings.Split(value, ":") {
		parsed, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return 0
		}
		seconds = 60*seconds + parsed
	}
	return seconds
}

// normalizePercent maps elapsed seconds onto [0,100]. An unknown total
// degenerates to 0; the final 100 is emitted on process exit instead.
func normalizePercent(elapsed, total float64) float64 {
	if total <= 0 {
		return 0
	}
	percent := math.Round(elapsed / total * 100)
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

// scanProgressLines terminates tokens on \r as well as \n; ffmpeg rewrites
// its stats line in place using carriage returns.
func scanProgressLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
