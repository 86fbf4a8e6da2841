package ffmpeg

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

const encodeSuccessBody = `for last; do :; done
printf 'Stream mapping:\n' >&2
printf 'frame=  10 fps=0.0 q=28.0 size=12kB time=00:00:01.01 bitrate= 97.2kbits/s\r' >&2
printf 'frame=  20 fps=0.0 q=28.0 size=24kB time=00:00:02.02 bitrate= 97.2kbits/s\r' >&2
printf 'encoded' > "$last"
exit 0
`

func collectProgress(t *testing.T, session *Session) []float64 {
	t.Helper()
	var values []float64
	for session.Scan() {
		values = append(values, session.Percent())
	}
	return values
}

func TestEncodeYieldsBoundedSequenceEndingAt100(t *testing.T) {
	backend := testBackend(t, encodeSuccessBody, fixtureProbeJSON)
	target := filepath.Join(t.TempDir(), "out.mp4")

	session, err := backend.Encode(context.Background(), "/media/source.mp4", target, []string{"-vf", "scale=-2:320"})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	values := collectProgress(t, session)
	if session.Err() != nil {
		t.Fatalf("session error: %v", session.Err())
	}
	if len(values) != 3 {
		t.Fatalf("expected 3 progress values, got %v", values)
	}
	for _, v := range values {
		if v < 0 || v > 100 {
			t.Fatalf("progress %v outside [0,100]", v)
		}
	}
	if values[0] != 50 {
		t.Fatalf("expected first yield 50, got %v", values[0])
	}
	if values[len(values)-1] != 100 {
		t.Fatalf("expected final yield 100, got %v", values[len(values)-1])
	}

	// The sequence is finite and not restartable.
	if session.Scan() {
		t.Fatal("expected Scan to report false after completion")
	}
}

func TestEncodeZeroDurationDegeneratesToZeroUntilExit(t *testing.T) {
	zeroDuration := `{"streams":[{"codec_type":"video","width":640,"height":480}],"format":{}}`
	backend := testBackend(t, encodeSuccessBody, zeroDuration)
	target := filepath.Join(t.TempDir(), "out.mp4")

	session, err := backend.Encode(context.Background(), "/media/source.mp4", target, nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	values := collectProgress(t, session)
	if session.Err() != nil {
		t.Fatalf("session error: %v", session.Err())
	}
	for _, v := range values[:len(values)-1] {
		if v != 0 {
			t.Fatalf("expected 0 before exit, got %v", values)
		}
	}
	if values[len(values)-1] != 100 {
		t.Fatalf("expected final yield 100, got %v", values)
	}
}

func TestEncodeFailsOnZeroSizeOutput(t *testing.T) {
	backend := testBackend(t, "exit 0\n", fixtureProbeJSON)
	target := filepath.Join(t.TempDir(), "out.mp4")

	session, err := backend.Encode(context.Background(), "/media/source.mp4", target, nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	for session.Scan() {
	}

	var encErr *EncodingError
	if !errors.As(session.Err(), &encErr) {
		t.Fatalf("expected *EncodingError, got %v", session.Err())
	}
	if !strings.Contains(encErr.Error(), "file size of generated file is 0") {
		t.Fatalf("unexpected message: %v", encErr)
	}
}

func TestEncodeFailsOnNonzeroExit(t *testing.T) {
	body := `for last; do :; done
printf 'partial' > "$last"
exit 3
`
	backend := testBackend(t, body, fixtureProbeJSON)
	target := filepath.Join(t.TempDir(), "out.mp4")

	session, err := backend.Encode(context.Background(), "/media/source.mp4", target, nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	for session.Scan() {
	}

	var encErr *EncodingError
	if !errors.As(session.Err(), &encErr) {
		t.Fatalf("expected *EncodingError, got %v", session.Err())
	}
	if encErr.ExitCode != 3 {
		t.Fatalf("expected exit code 3, got %d", encErr.ExitCode)
	}
	if !strings.Contains(encErr.Error(), "exited with code 3") {
		t.Fatalf("expected command and code in message, got %q", encErr.Error())
	}
	if !strings.Contains(encErr.Command, target) {
		t.Fatalf("expected invoked command in error, got %q", encErr.Command)
	}
}

func TestEncodeFailsImmediatelyWhenSpawnFails(t *testing.T) {
	backend := testBackend(t, encodeSuccessBody, fixtureProbeJSON)
	backend.ffmpegPath = filepath.Join(t.TempDir(), "missing-binary")

	_, err := backend.Encode(context.Background(), "/media/source.mp4", "/tmp/out.mp4", nil)
	var encErr *EncodingError
	if !errors.As(err, &encErr) {
		t.Fatalf("expected *EncodingError before any yield, got %v", err)
	}
}

func TestParseTimecode(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"00:00:02.02", 2.02},
		{"00:01:00.50", 60.5},
		{"01:02:03.25", 3723.25},
	}
	for _, tc := range cases {
		if got := parseTimecode(tc.in); got != tc.want {
			t.Fatalf("parseTimecode(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNormalizePercentClamps(t *testing.T) {
	if got := normalizePercent(3.0, 2.0); got != 100 {
		t.Fatalf("expected clamp to 100, got %v", got)
	}
	if got := normalizePercent(1.01, 2.022); got != 50 {
		t.Fatalf("expected 50, got %v", got)
	}
	if got := normalizePercent(5, 0); got != 0 {
		t.Fatalf("expected 0 for unknown total, got %v", got)
	}
}
