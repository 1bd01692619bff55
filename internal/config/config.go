package config

import "time"

// Config is the root configuration for the HIST tools.
type Config struct {
	API      APIConfig      `yaml:"api"`
	Download DownloadConfig `yaml:"download"`
	Parser   ParserConfig   `yaml:"parser"`
}

// APIConfig holds IEX REST API settings.
type APIConfig struct {
	BaseURL    string        `yaml:"base_url"`
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries int           `yaml:"max_retries"`
}

// DownloadConfig holds capture download settings.
type DownloadConfig struct {
	Dir         string `yaml:"dir"`         // Destination directory
	Concurrency int    `yaml:"concurrency"` // Parallel fetches for date ranges
	Decompress  bool   `yaml:"decompress"`  // Expand .gz after download
}

// ParserConfig holds default decode settings.
type ParserConfig struct {
	Feed    string `yaml:"feed"`    // "TOPS" or "DEEP"
	Version string `yaml:"version"` // "1.0", "1.5" or "1.6"
}
