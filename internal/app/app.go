// Package app provides the core application initialization and lifecycle
// management.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/prisindex/skrapa/internal/collect"
	"github.com/prisindex/skrapa/internal/config"
	"github.com/prisindex/skrapa/internal/fetch"
	"github.com/prisindex/skrapa/internal/normalize"
	"github.com/prisindex/skrapa/internal/parser"
	"github.com/prisindex/skrapa/internal/pipeline"
	"github.com/prisindex/skrapa/internal/retry"
	"github.com/prisindex/skrapa/internal/store"
)

// Application holds all application dependencies and manages their
// lifecycle. It is created once per invocation, shared across CLI commands,
// and released with Close().
type Application struct {
	Config     *config.Config
	Logger     *zerolog.Logger
	HTTPClient *fetch.Client
	Parser     parser.Parser
	Fetcher    *fetch.DetailFetcher
	Collector  *collect.Collector
	Normalizer *normalize.Normalizer
	Store      *store.Store
	startTime  time.Time
}

// New creates and initializes a new Application with all dependencies:
// logger, shared HTTP client, page parser, detail fetcher, bounded
// collector, normalizer, and the opened (and set-up) store.
func New(ctx context.Context, cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logger := newLogger(cfg)

	client := fetch.NewClient(cfg.HTTPTimeout, cfg.UserAgent)
	logger.Debug().
		Dur("timeout", cfg.HTTPTimeout).
		Str("user_agent", cfg.UserAgent).
		Msg("HTTP client initialized")

	htmlParser := parser.New(parser.Selectors{
		Container:   cfg.ContainerSelector,
		Item:        cfg.ItemSelector,
		Title:       cfg.TitleSelector,
		Link:        cfg.LinkSelector,
		Price:       cfg.PriceSelector,
		Description: cfg.DescriptionSelector,
	}, cfg.BaseURL, cfg.RichText)

	fetcher := fetch.NewDetailFetcher(client, htmlParser, cfg.FetchTimeout)
	collector := collect.New(fetcher, cfg.Concurrency)
	logger.Debug().Int("workers", collector.Workers()).Msg("Collector initialized")

	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}
	if err := st.Setup(ctx); err != nil {
		_ = st.Close()
		return nil, err
	}
	logger.Debug().Str("path", cfg.DatabasePath).Msg("Store opened")

	app := &Application{
		Config:     cfg,
		Logger:     &logger,
		HTTPClient: client,
		Parser:     htmlParser,
		Fetcher:    fetcher,
		Collector:  collector,
		Normalizer: normalize.New(cfg.CurrencyToken),
		Store:      st,
		startTime:  time.Now(),
	}

	logger.Debug().Msg("Application initialized")
	return app, nil
}

// NewRunner builds the scrape pipeline from the application's components.
// With Render set, the catalog page goes through headless Chrome; detail
// pages always use the shared HTTP client.
func (a *Application) NewRunner() *pipeline.Runner {
	catalogFetch := pipeline.StaticCatalogFetch(a.HTTPClient)
	if a.Config.Render {
		opts := fetch.RenderOptions{
			UserAgent:  a.Config.UserAgent,
			Timeout:    a.Config.HTTPTimeout * 2,
			ChromePath: a.Config.ChromePath,
		}
		catalogFetch = func(ctx context.Context, url string) (string, error) {
			return fetch.RenderedPage(ctx, url, opts)
		}
	}

	return &pipeline.Runner{
		CatalogURL: a.Config.CatalogURL,
		Fetch:      catalogFetch,
		Parser:     a.Parser,
		Collector:  a.Collector,
		Normalizer: a.Normalizer,
		Store:      a.Store,
		Retry:      retry.DefaultConfig(),
	}
}

// Close gracefully releases the application's resources: the store handle
// and the HTTP client's pooled connections.
func (a *Application) Close(ctx context.Context) error {
	_ = ctx

	if a.HTTPClient != nil {
		a.HTTPClient.CloseIdleConnections()
	}

	var err error
	if a.Store != nil {
		err = a.Store.Close()
	}

	a.Logger.Debug().Dur("uptime", time.Since(a.startTime)).Msg("Application shutdown complete")
	return err
}

// Uptime returns how long the application has been running.
func (a *Application) Uptime() time.Duration {
	return time.Since(a.startTime)
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level := zerolog.InfoLevel
	switch cfg.LogLevel {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(level)

	var logWriter io.Writer
	if cfg.JSONLog {
		logWriter = os.Stderr
	} else {
		logWriter = zerolog.NewConsoleWriter()
	}

	logger := log.Output(logWriter).With().Timestamp().Logger()
	log.Logger = logger
	return logger
}
