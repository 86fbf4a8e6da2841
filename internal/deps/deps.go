// Package deps reports the availability of external binaries lathe shells
// out to.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"lathe/internal/config"
)

// Requirement defines an external dependency lathe relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements derives the binary requirements for the configured backend,
// honoring explicit path overrides.
func Requirements(cfg *config.Config) []Requirement {
	ffmpeg := cfg.Encoding.FFmpegPath
	if ffmpeg == "" {
		ffmpeg = "ffmpeg"
	}
	ffprobe := cfg.Encoding.FFprobePath
	if ffprobe == "" {
		ffprobe = "ffprobe"
	}
	return []Requirement{
		{Name: "FFmpeg", Command: ffmpeg, Description: "Transcodes sources into renditions"},
		{Name: "FFprobe", Command: ffprobe, Description: "Probes media dimensions and duration"},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}
