// Package collect fans the per-listing detail fetches out over a bounded
// worker pool and assembles raw product records.
package collect

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/prisindex/skrapa/pkg/models"
)

// Fetcher retrieves a detail page's description, or false when it failed
// or the page has none.
type Fetcher interface {
	Description(ctx context.Context, url string) (string, bool)
}

// Collector combines catalog listings with their fetched descriptions.
type Collector struct {
	fetcher Fetcher
	workers int
}

// New creates a Collector. If workers <= 0, the pool is sized from the
// available execution units.
func New(fetcher Fetcher, workers int) *Collector {
	if workers <= 0 {
		workers = DefaultWorkers()
	}
	if workers > maxWorkers {
		workers = maxWorkers
	}
	return &Collector{fetcher: fetcher, workers: workers}
}

// Workers reports the pool size, mainly for logging.
func (c *Collector) Workers() int { return c.workers }

// Collect fetches every listing's detail page concurrently and returns one
// raw (un-normalized) record per listing.
//
// Jobs are listing indexes and each worker writes into its job's pre-sized
// result slot, so every output corresponds to exactly one input listing and
// no append ordering races exist. A failed fetch only costs that listing
// its description; the rest of the batch is unaffected.
//
// progress, if non-nil, is called once per completed listing.
func (c *Collector) Collect(ctx context.Context, listings []models.Listing, progress func()) []models.Product {
	if len(listings) == 0 {
		return []models.Product{}
	}

	results := make([]models.Product, len(listings))
	jobs := make(chan int, len(listings))

	var wg sync.WaitGroup
	for w := 0; w < c.workers; w++ {
		wg.Add(1)
		go c.worker(ctx, jobs, listings, results, progress, &wg)
	}

	for i := range listings {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

func (c *Collector) worker(ctx context.Context, jobs <-chan int, listings []models.Listing, results []models.Product, progress func(), wg *sync.WaitGroup) {
	defer wg.Done()

	for i := range jobs {
		listing := listings[i]

		record := models.Product{
			Title: listing.Title,
			Price: listing.RawPrice,
			Link:  listing.Link,
		}

		select {
		case <-ctx.Done():
			// Cancelled mid-run: still fill the slot so output stays 1:1
			// with input, just without a description.
			log.Debug().Str("url", listing.Link).Msg("Fetch skipped, run cancelled")
		default:
			if desc, ok := c.fetcher.Description(ctx, listing.Link); ok {
				record.Description = &desc
			}
		}

		results[i] = record
		if progress != nil {
			progress()
		}
	}
}
