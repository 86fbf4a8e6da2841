package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeEncoding()
	c.normalizeRenditions()
	c.normalizeNotifications()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StagingDir) == "" {
		c.Paths.StagingDir = defaultStagingDir
	}
	if c.Paths.StagingDir, err = expandPath(c.Paths.StagingDir); err != nil {
		return fmt.Errorf("paths.staging_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeEncoding() {
	c.Encoding.Backend = strings.ToLower(strings.TrimSpace(c.Encoding.Backend))
	if c.Encoding.Backend == "" {
		c.Encoding.Backend = defaultBackend
	}
	if c.Encoding.Threads <= 0 {
		c.Encoding.Threads = defaultThreads
	}
	c.Encoding.FFmpegPath = strings.TrimSpace(c.Encoding.FFmpegPath)
	c.Encoding.FFprobePath = strings.TrimSpace(c.Encoding.FFprobePath)
}

func (c *Config) normalizeRenditions() {
	if len(c.Renditions) == 0 {
		c.Renditions = Default().Renditions
	}
	for backend, renditions := range c.Renditions {
		for i := range renditions {
			renditions[i].Name = strings.TrimSpace(renditions[i].Name)
			renditions[i].Extension = strings.TrimPrefix(strings.TrimSpace(renditions[i].Extension), ".")
		}
		c.Renditions[backend] = renditions
	}
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = 10
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
