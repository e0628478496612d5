// Package pipeline wires one scrape run: catalog fetch, listing extraction,
// concurrent detail collection, normalization, and idempotent persistence.
package pipeline

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/prisindex/skrapa/internal/collect"
	"github.com/prisindex/skrapa/internal/fetch"
	"github.com/prisindex/skrapa/internal/normalize"
	"github.com/prisindex/skrapa/internal/parser"
	"github.com/prisindex/skrapa/internal/retry"
	"github.com/prisindex/skrapa/internal/store"
	"github.com/prisindex/skrapa/pkg/models"
)

// CatalogFetch fetches the catalog page body; the pipeline does not care
// whether that happens over plain HTTP or a rendered browser.
type CatalogFetch func(ctx context.Context, url string) (string, error)

// Runner executes scrape runs against one configured catalog.
type Runner struct {
	CatalogURL string
	Fetch      CatalogFetch
	Parser     parser.Parser
	Collector  *collect.Collector
	Normalizer *normalize.Normalizer
	Store      *store.Store
	Retry      retry.Config

	// Progress, if set, is called with the listing count and returns a
	// per-listing tick callback (or nil). Lets the CLI size its bar.
	Progress func(total int) func()
}

// StaticCatalogFetch adapts the shared HTTP client to CatalogFetch.
func StaticCatalogFetch(client *fetch.Client) CatalogFetch {
	return client.Page
}

// Run performs one full scrape.
//
// A catalog fetch failure (after retries) aborts the run before any fan-out
// and returns a zero report alongside the error; that is a different
// condition from a catalog that parsed but held no listings, which is a
// successful run with zero listings. A persistence error aborts the batch
// and the reported Added count covers only rows that actually committed.
func (r *Runner) Run(ctx context.Context) (models.ScrapeReport, error) {
	var html string
	err := retry.WithRetry(ctx, r.Retry, func() error {
		var fetchErr error
		html, fetchErr = r.Fetch(ctx, r.CatalogURL)
		return fetchErr
	})
	if err != nil {
		log.Error().Err(err).Str("url", r.CatalogURL).Msg("Catalog page fetch failed, aborting run")
		return models.ScrapeReport{}, fmt.Errorf("fetch catalog page: %w", err)
	}

	listings, err := r.Parser.Listings(html)
	if err != nil {
		return models.ScrapeReport{}, fmt.Errorf("parse catalog page: %w", err)
	}
	if len(listings) == 0 {
		log.Info().Str("url", r.CatalogURL).Msg("Catalog page fetched but contained no listings")
		return models.ScrapeReport{}, nil
	}

	log.Info().
		Int("listings", len(listings)).
		Int("workers", r.Collector.Workers()).
		Msg("Collecting product details")

	var tick func()
	if r.Progress != nil {
		tick = r.Progress(len(listings))
	}

	collected := r.Collector.Collect(ctx, listings, tick)

	records := make([]models.Product, len(collected))
	for i, p := range collected {
		records[i] = r.Normalizer.Record(p)
	}

	added, err := r.Store.InsertBatch(ctx, records)
	if err != nil {
		// Report what actually committed before the failure.
		return models.ScrapeReport{Listings: len(listings), Collected: len(collected), Added: added},
			fmt.Errorf("persist scraped products: %w", err)
	}

	report := models.ScrapeReport{Listings: len(listings), Collected: len(collected), Added: added}
	log.Info().
		Int("listings", report.Listings).
		Int("collected", report.Collected).
		Int("added", report.Added).
		Msg("Scrape run complete")

	return report, nil
}
