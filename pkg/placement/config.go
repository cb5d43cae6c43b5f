package placement

import "time"

// Config holds settings for the placement API client.
type Config struct {
	// BaseURL is the HTTP endpoint of the placement backend, e.g. http://localhost:5000
	BaseURL string `yaml:"base_url" json:"base_url"`
	// Timeout is the per-request timeout; a call past it is abandoned, never retried
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
	// UserAgent is sent with every request
	UserAgent string `yaml:"user_agent" json:"user_agent"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL:   "http://localhost:5000",
		Timeout:   15 * time.Second,
		UserAgent: "placement-dashboard/1.0",
	}
}
