package config

import (
	"fmt"
	"strings"
)

// Validate checks configuration invariants that must hold before any
// conversion can run. Violations are fatal at load time, not per-encode.
func (c *Config) Validate() error {
	if err := c.validateEncoding(); err != nil {
		return err
	}
	if err := c.validateRenditions(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateEncoding() error {
	if c.Encoding.Backend == "" {
		return fmt.Errorf("encoding.backend: value required")
	}
	return nil
}

func (c *Config) validateRenditions() error {
	renditions, ok := c.Renditions[c.Encoding.Backend]
	if !ok || len(renditions) == 0 {
		return fmt.Errorf("renditions.%s: no renditions configured for active backend", c.Encoding.Backend)
	}

	seen := make(map[string]struct{}, len(renditions))
	for i, rendition := range renditions {
		if rendition.Name == "" {
			return fmt.Errorf("renditions.%s[%d]: name required", c.Encoding.Backend, i)
		}
		if _, dup := seen[rendition.Name]; dup {
			return fmt.Errorf("renditions.%s: duplicate rendition name %q", c.Encoding.Backend, rendition.Name)
		}
		seen[rendition.Name] = struct{}{}
		if rendition.Extension == "" {
			return fmt.Errorf("renditions.%s.%s: extension required", c.Encoding.Backend, rendition.Name)
		}
		if strings.ContainsAny(rendition.Name, "/\\") {
			return fmt.Errorf("renditions.%s.%s: name must not contain path separators", c.Encoding.Backend, rendition.Name)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "auto", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
