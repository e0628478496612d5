package collect

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/prisindex/skrapa/pkg/models"
)

// mapFetcher serves canned descriptions; links missing from the map fail.
type mapFetcher struct {
	mu       sync.Mutex
	descs    map[string]string
	inFlight int32
	maxSeen  int32
}

func (f *mapFetcher) Description(_ context.Context, url string) (string, bool) {
	cur := atomic.AddInt32(&f.inFlight, 1)
	defer atomic.AddInt32(&f.inFlight, -1)
	for {
		seen := atomic.LoadInt32(&f.maxSeen)
		if cur <= seen || atomic.CompareAndSwapInt32(&f.maxSeen, seen, cur) {
			break
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.descs[url]
	return d, ok
}

func TestCollect_OneRecordPerListing(t *testing.T) {
	listings := make([]models.Listing, 20)
	descs := make(map[string]string)
	for i := range listings {
		link := fmt.Sprintf("https://jus.se/p/%d", i)
		listings[i] = models.Listing{Title: fmt.Sprintf("Item %d", i), RawPrice: "100 kr", Link: link}
		if i%3 != 0 { // every third fetch fails
			descs[link] = fmt.Sprintf("desc %d", i)
		}
	}

	c := New(&mapFetcher{descs: descs}, 4)
	got := c.Collect(context.Background(), listings, nil)

	if len(got) != len(listings) {
		t.Fatalf("Expected %d records, got %d", len(listings), len(got))
	}

	// Slot addressing: record i belongs to listing i, with no cross-talk.
	for i, rec := range got {
		if rec.Link != listings[i].Link {
			t.Errorf("Record %d has link %q, want %q", i, rec.Link, listings[i].Link)
		}
		if rec.Title != listings[i].Title {
			t.Errorf("Record %d has title %q, want %q", i, rec.Title, listings[i].Title)
		}
		if i%3 == 0 {
			if rec.Description != nil {
				t.Errorf("Record %d should have absent description, got %q", i, *rec.Description)
			}
		} else {
			if rec.Description == nil || *rec.Description != fmt.Sprintf("desc %d", i) {
				t.Errorf("Record %d has wrong description: %v", i, rec.Description)
			}
		}
	}
}

func TestCollect_BoundedConcurrency(t *testing.T) {
	listings := make([]models.Listing, 50)
	descs := make(map[string]string)
	for i := range listings {
		link := fmt.Sprintf("https://jus.se/p/%d", i)
		listings[i] = models.Listing{Link: link}
		descs[link] = "d"
	}

	f := &mapFetcher{descs: descs}
	c := New(f, 3)
	c.Collect(context.Background(), listings, nil)

	if f.maxSeen > 3 {
		t.Errorf("Observed %d concurrent fetches, pool bound is 3", f.maxSeen)
	}
}

func TestCollect_ProgressTicksOncePerListing(t *testing.T) {
	listings := make([]models.Listing, 7)
	for i := range listings {
		listings[i] = models.Listing{Link: fmt.Sprintf("https://jus.se/p/%d", i)}
	}

	var ticks int32
	c := New(&mapFetcher{descs: map[string]string{}}, 2)
	c.Collect(context.Background(), listings, func() { atomic.AddInt32(&ticks, 1) })

	if ticks != 7 {
		t.Errorf("Expected 7 progress ticks, got %d", ticks)
	}
}

func TestCollect_EmptyInput(t *testing.T) {
	c := New(&mapFetcher{descs: map[string]string{}}, 2)
	got := c.Collect(context.Background(), nil, nil)
	if len(got) != 0 {
		t.Fatalf("Expected empty result, got %d records", len(got))
	}
}

func TestNew_DefaultsPoolSize(t *testing.T) {
	c := New(&mapFetcher{}, 0)
	if c.Workers() < 1 || c.Workers() > maxWorkers {
		t.Errorf("Default pool size %d out of bounds", c.Workers())
	}
}
