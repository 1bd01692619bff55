package config

import (
	"errors"
	"fmt"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api.base_url is required")
	}
	if c.API.Timeout <= 0 {
		return errors.New("api.timeout must be positive")
	}
	if c.API.MaxRetries < 0 {
		return errors.New("api.max_retries must be >= 0")
	}

	if c.Download.Dir == "" {
		return errors.New("download.dir is required")
	}
	if c.Download.Concurrency < 1 {
		return errors.New("download.concurrency must be >= 1")
	}

	switch c.Parser.Feed {
	case "TOPS":
		if c.Parser.Version != "1.5" && c.Parser.Version != "1.6" {
			return fmt.Errorf("parser.version %q is not valid for TOPS (want 1.5 or 1.6)", c.Parser.Version)
		}
	case "DEEP":
		if c.Parser.Version != "1.0" {
			return fmt.Errorf("parser.version %q is not valid for DEEP (want 1.0)", c.Parser.Version)
		}
	default:
		return fmt.Errorf("parser.feed %q must be TOPS or DEEP", c.Parser.Feed)
	}

	return nil
}
