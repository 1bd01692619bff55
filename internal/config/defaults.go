package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultBaseURL     = "https://api.iextrading.com/1.0"
	DefaultAPITimeout  = 30 * time.Second
	DefaultMaxRetries  = 3
	DefaultDataDir     = "iex-data"
	DefaultConcurrency = 2
	DefaultFeed        = "TOPS"
	DefaultVersion     = "1.6"
)

func (c *Config) applyDefaults() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}
	if c.API.MaxRetries == 0 {
		c.API.MaxRetries = DefaultMaxRetries
	}

	if c.Download.Dir == "" {
		c.Download.Dir = DefaultDataDir
	}
	if c.Download.Concurrency == 0 {
		c.Download.Concurrency = DefaultConcurrency
	}

	if c.Parser.Feed == "" {
		c.Parser.Feed = DefaultFeed
	}
	if c.Parser.Version == "" {
		c.Parser.Version = DefaultVersion
	}
}
