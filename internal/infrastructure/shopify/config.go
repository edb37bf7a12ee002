package shopify

import (
	"errors"
	"time"
)

// Config holds Shopify Admin REST API client settings. Credentials are
// per tenant and travel with each request; this config only carries the
// connection-independent knobs.
type Config struct {
	// APIVersion is the dated Admin API version, e.g. "2024-10"
	APIVersion string
	// RequestTimeout is the HTTP request timeout
	RequestTimeout time.Duration
	// PageSize is the number of records requested per fetch, capped at
	// 250 by the platform
	PageSize int
	// BaseURLOverride replaces the per-store https://<domain> base URL,
	// used by tests to point the adapter at a local server
	BaseURLOverride string
}

// maxPageSize is the largest page the Admin REST API serves
const maxPageSize = 250

// Errors for Shopify configuration
var (
	ErrConfigMissingAPIVersion = errors.New("shopify: api version is required")
	ErrConfigInvalidPageSize   = errors.New("shopify: page size must be between 1 and 250")
)

// NewConfig creates a Shopify configuration with defaults
func NewConfig() *Config {
	return &Config{
		APIVersion:     "2024-10",
		RequestTimeout: 30 * time.Second,
		PageSize:       maxPageSize,
	}
}

// Validate checks the configuration
func (c *Config) Validate() error {
	if c.APIVersion == "" {
		return ErrConfigMissingAPIVersion
	}
	if c.PageSize < 1 || c.PageSize > maxPageSize {
		return ErrConfigInvalidPageSize
	}
	return nil
}
