package config

const (
	defaultStagingDir = "~/.local/share/lathe/staging"
	defaultOutputDir  = "~/.local/share/lathe/renditions"
	defaultLogDir     = "~/.local/share/lathe/logs"
	defaultBackend    = "ffmpeg"
	defaultThreads    = 1
	defaultLogFormat  = "auto"
	defaultLogLevel   = "info"
)

// Default returns a Config populated with repository defaults.
//
// The stock rendition list mirrors the common web delivery set: two H.264
// MP4 ladders plus a VP8 WebM fallback.
func Default() Config {
	return Config{
		Paths: Paths{
			StagingDir: defaultStagingDir,
			OutputDir:  defaultOutputDir,
			LogDir:     defaultLogDir,
		},
		Encoding: Encoding{
			Backend: defaultBackend,
			Threads: defaultThreads,
		},
		Renditions: map[string][]Rendition{
			"ffmpeg": {
				{
					Name:      "mp4_sd",
					Extension: "mp4",
					Params: []string{
						"-codec:v", "libx264", "-crf", "23", "-preset", "medium",
						"-b:v", "1000k", "-maxrate", "1000k", "-bufsize", "2000k",
						"-vf", "scale=-2:480",
						"-codec:a", "aac", "-b:a", "128k",
					},
				},
				{
					Name:      "mp4_hd",
					Extension: "mp4",
					Params: []string{
						"-codec:v", "libx264", "-crf", "23", "-preset", "medium",
						"-b:v", "3000k", "-maxrate", "3000k", "-bufsize", "6000k",
						"-vf", "scale=-2:720",
						"-codec:a", "aac", "-b:a", "128k",
					},
				},
				{
					Name:      "webm",
					Extension: "webm",
					Params: []string{
						"-codec:v", "libvpx", "-crf", "25", "-b:v", "3000k",
						"-vf", "scale=-2:720",
						"-codec:a", "libvorbis",
					},
				},
			},
		},
		Notifications: Notifications{
			RequestTimeout: 10,
			Renditions:     true,
			Errors:         true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
