package latex

import (
	"errors"
	"io"
	"strings"
	"time"

	// Packages
	yaml "gopkg.in/yaml.v3"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Config is the configuration of a renderer client
type Config struct {
	APIKey  string        `json:"api_key" yaml:"api_key"`
	BaseURL string        `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	Timeout time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	DefaultBaseURL = "http://localhost:8080"
	DefaultTimeout = 30 * time.Second
)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// LoadConfig decodes a YAML configuration. An empty document returns
// the zero configuration.
func LoadConfig(r io.Reader) (Config, error) {
	var config Config
	if err := yaml.NewDecoder(r).Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, ErrClient.Withf("config: %v", err)
	}
	return config, nil
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Normalise checks the API key and returns the configuration with
// defaults applied and a single trailing slash removed from the base URL
func (c Config) Normalise() (Config, error) {
	if c.APIKey == "" {
		return Config{}, ErrClient.With("apiKey is required")
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/")
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c, nil
}

// Merge returns the configuration with unset fields taken from other
func (c Config) Merge(other Config) Config {
	if c.APIKey == "" {
		c.APIKey = other.APIKey
	}
	if c.BaseURL == "" {
		c.BaseURL = other.BaseURL
	}
	if c.Timeout == 0 {
		c.Timeout = other.Timeout
	}
	return c
}
