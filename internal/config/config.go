package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string
	JSONLog  bool

	// HTTP
	HTTPTimeout  time.Duration // whole-request bound on any single GET
	FetchTimeout time.Duration // per-detail-page bound inside the pool
	UserAgent    string

	// Scrape target
	CatalogURL    string
	BaseURL       string
	CurrencyToken string

	// Fan-out
	Concurrency int // 0 = auto

	// Persistence
	DatabasePath string

	// Rendered fetch
	Render     bool
	ChromePath string

	// Description handling
	RichText bool

	// Selectors
	ContainerSelector   string
	ItemSelector        string
	TitleSelector       string
	LinkSelector        string
	PriceSelector       string
	DescriptionSelector string
}

// Load builds a Config by combining defaults, environment variables, and
// CLI flags, in that precedence order. Caller should pass the root
// *cobra.Command so flags can be read.
func Load(cmd *cobra.Command) (*Config, error) {
	cfg := &Config{
		LogLevel:     DefaultLogLevel,
		JSONLog:      DefaultJSONLog,
		HTTPTimeout:  DefaultHTTPTimeout,
		FetchTimeout: DefaultFetchTimeout,
		UserAgent:    DefaultUserAgent,

		CatalogURL:    DefaultCatalogURL,
		BaseURL:       DefaultBaseURL,
		CurrencyToken: DefaultCurrencyToken,

		Concurrency:  DefaultConcurrency,
		DatabasePath: DefaultDatabasePath,

		ContainerSelector:   DefaultContainerSelector,
		ItemSelector:        DefaultItemSelector,
		TitleSelector:       DefaultTitleSelector,
		LinkSelector:        DefaultLinkSelector,
		PriceSelector:       DefaultPriceSelector,
		DescriptionSelector: DefaultDescriptionSelector,
	}

	// Override from environment variables
	if v := os.Getenv("SKRAPA_CATALOG_URL"); v != "" {
		cfg.CatalogURL = v
	}
	if v := os.Getenv("SKRAPA_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("SKRAPA_DB"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("SKRAPA_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("SKRAPA_CHROME_PATH"); v != "" {
		cfg.ChromePath = v
	}
	if v := os.Getenv("SKRAPA_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Concurrency = n
		}
	}

	// Read CLI flags if provided
	if cmd != nil {
		readFlags(cmd, cfg)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func readFlags(cmd *cobra.Command, cfg *Config) {
	flagString(cmd, "catalog-url", &cfg.CatalogURL)
	flagString(cmd, "base-url", &cfg.BaseURL)
	flagString(cmd, "db", &cfg.DatabasePath)
	flagString(cmd, "user-agent", &cfg.UserAgent)
	flagString(cmd, "currency", &cfg.CurrencyToken)
	flagString(cmd, "chrome-path", &cfg.ChromePath)

	if f := cmd.Flags().Lookup("timeout"); f != nil && f.Value.String() != "" {
		if d, err := time.ParseDuration(f.Value.String()); err == nil {
			cfg.HTTPTimeout = d
		}
	}
	if f := cmd.Flags().Lookup("concurrency"); f != nil && f.Changed {
		if n, err := strconv.Atoi(f.Value.String()); err == nil {
			cfg.Concurrency = n
		}
	}
	if f := cmd.Flags().Lookup("render"); f != nil && f.Value.String() == "true" {
		cfg.Render = true
	}
	if f := cmd.Flags().Lookup("rich-text"); f != nil && f.Value.String() == "true" {
		cfg.RichText = true
	}
	if f := cmd.Flags().Lookup("json"); f != nil && f.Value.String() == "true" {
		cfg.JSONLog = true
	}
	if f := cmd.Flags().Lookup("verbose"); f != nil && f.Value.String() == "true" {
		cfg.LogLevel = "debug"
	}
	if f := cmd.Flags().Lookup("quiet"); f != nil && f.Value.String() == "true" {
		cfg.LogLevel = "error"
	}
}

func flagString(cmd *cobra.Command, name string, dst *string) {
	if f := cmd.Flags().Lookup(name); f != nil {
		if s := f.Value.String(); s != "" {
			*dst = s
		}
	}
}
