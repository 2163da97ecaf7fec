// Package models defines configuration and API request/response structures.
package models

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds process-level configuration for the service and the crawler.
type Config struct {
	ListenAddr string     `yaml:"listen_addr"`
	Wiki       WikiConfig `yaml:"wiki"`
}

// WikiConfig configures the shared MediaWiki client: transport settings and
// the crawl fan-out bound. Nothing here changes per request.
type WikiConfig struct {
	BaseURL         string  `yaml:"base_url"`
	UserAgent       string  `yaml:"user_agent"`
	TimeoutSeconds  float64 `yaml:"timeout_seconds"`
	Concurrency     int     `yaml:"concurrency"`
	MaxLinksPerPage int     `yaml:"max_links_per_page"`

	// HTMLExtracts switches the API to HTML extracts, which the client
	// strips back to plain text. Off by default.
	HTMLExtracts bool `yaml:"html_extracts"`
}

// Timeout returns the per-request timeout as a duration.
func (w WikiConfig) Timeout() time.Duration {
	return time.Duration(w.TimeoutSeconds * float64(time.Second))
}

// DefaultConfig returns the built-in defaults used when no config file is
// supplied.
func DefaultConfig() Config {
	return Config{
		ListenAddr: ":8080",
		Wiki: WikiConfig{
			BaseURL:         "https://en.wikipedia.org/w/api.php",
			UserAgent:       "wikifreq/1.0 (+https://github.com/mmegyeri/wikifreq)",
			TimeoutSeconds:  15,
			Concurrency:     8,
			MaxLinksPerPage: 100,
		},
	}
}

// LoadConfig reads a YAML config file over the defaults, so omitted fields
// keep their default values.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}

	if config.Wiki.TimeoutSeconds < 0 {
		return Config{}, fmt.Errorf("timeout_seconds must not be negative")
	}
	if config.Wiki.Concurrency < 0 {
		return Config{}, fmt.Errorf("concurrency must not be negative")
	}
	return config, nil
}
