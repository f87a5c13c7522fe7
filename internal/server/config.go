package server

import "time"

// Config holds server configuration.
type Config struct {
	// Server settings
	Address string

	// API settings
	PathPrefix string

	// CORS settings
	CORSEnabled bool
	CORSOrigins []string

	// RateLimit is requests per minute per IP (0 to disable). Uploads are
	// expensive upstream, keep this low.
	RateLimit int

	// HTTP timeouts. Write must cover a full pipeline run including
	// vision-model latency.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:      ":8080",
		PathPrefix:   "/api/v1",
		CORSEnabled:  true,
		CORSOrigins:  []string{},
		RateLimit:    30,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}
