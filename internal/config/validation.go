package config

import (
	"fmt"
	"strings"
)

const maxConcurrency = 64

func validate(c *Config) error {
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be > 0")
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch timeout must be > 0")
	}
	if c.Concurrency < 0 || c.Concurrency > maxConcurrency {
		return fmt.Errorf("concurrency must be between 0 and %d", maxConcurrency)
	}
	if !isHTTPURL(c.CatalogURL) {
		return fmt.Errorf("catalog url %q must start with http:// or https://", c.CatalogURL)
	}
	if !isHTTPURL(c.BaseURL) {
		return fmt.Errorf("base url %q must start with http:// or https://", c.BaseURL)
	}
	if strings.TrimSpace(c.DatabasePath) == "" {
		return fmt.Errorf("database path must not be empty")
	}
	if c.CurrencyToken == "" {
		return fmt.Errorf("currency token must not be empty")
	}
	return nil
}

func isHTTPURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
