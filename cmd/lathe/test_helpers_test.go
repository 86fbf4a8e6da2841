package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	stagingDir string
	outputDir  string
	logDir     string
	sourceFile string
}

// setupCLITestEnv builds an isolated config file backed by stub ffmpeg and
// ffprobe scripts so conversion commands run without real binaries.
func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	t.Setenv("HOME", base)

	env := &cliTestEnv{
		baseDir:    base,
		configPath: filepath.Join(base, "config.toml"),
		stagingDir: filepath.Join(base, "staging"),
		outputDir:  filepath.Join(base, "output"),
		logDir:     filepath.Join(base, "logs"),
		sourceFile: filepath.Join(base, "clip.mov"),
	}

	if err := os.WriteFile(env.sourceFile, []byte("raw video"), 0o644); err != nil {
		t.Fatalf("write source file: %v", err)
	}

	ffprobe := writeStubScript(t, base, "ffprobe", `#!/bin/sh
cat <<'EOF'
{"format":{"duration":"2.0"},"streams":[{"codec_type":"video","width":640,"height":360}]}
EOF
exit 0
`)
	ffmpeg := writeStubScript(t, base, "ffmpeg", `#!/bin/sh
for arg in "$@"; do last="$arg"; done
printf 'frame=1 time=00:00:01.00 bitrate=1\n' >&2
printf 'frame=2 time=00:00:02.00 bitrate=1\n' >&2
printf 'encoded' > "$last"
exit 0
`)

	content := fmt.Sprintf(`[paths]
staging_dir = %q
output_dir = %q
log_dir = %q

[encoding]
backend = "ffmpeg"
threads = 1
ffmpeg_path = %q
ffprobe_path = %q

[logging]
format = "console"
level = "warn"

[[renditions.ffmpeg]]
name = "mp4_sd"
extension = "mp4"
params = ["-codec:v", "libx264"]

[[renditions.ffmpeg]]
name = "webm"
extension = "webm"
params = ["-codec:v", "libvpx"]
`, env.stagingDir, env.outputDir, env.logDir, ffmpeg, ffprobe)

	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return env
}

func writeStubScript(t *testing.T, dir, name, body string) string {
	t.Helper()

	path := filepath.Join(dir, "bin", name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir stub dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
	return path
}

// runCLI executes the root command in-process and captures its output.
func runCLI(t *testing.T, args []string, configPath string) (string, error) {
	t.Helper()

	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}
