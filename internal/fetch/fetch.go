// Package fetch performs the HTTP side of a scrape run: the catalog page
// GET and the per-listing detail page GETs, all over one shared transport.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
)

// HTTPError reports a non-success response status.
type HTTPError struct {
	URL        string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected status %d fetching %s", e.StatusCode, e.URL)
}

// GetStatusCode lets the retry layer decide whether the status is transient.
func (e *HTTPError) GetStatusCode() int { return e.StatusCode }

// Client fetches pages over a shared, keep-alive HTTP transport. One Client
// is created per run and passed into every concurrent fetch worker; the
// underlying transport handles its own locking.
type Client struct {
	http      *http.Client
	userAgent string
}

// NewClient creates a Client with a transport tuned for connection reuse
// against a single origin.
func NewClient(timeout time.Duration, userAgent string) *Client {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		DisableCompression:  false,
	}

	return &Client{
		http: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		userAgent: userAgent,
	}
}

// Page performs one GET and returns the response body. Non-2xx statuses
// are returned as *HTTPError.
func (c *Client) Page(ctx context.Context, pageURL string) (string, error) {
	if _, err := url.ParseRequestURI(pageURL); err != nil {
		return "", fmt.Errorf("invalid URL %q: %w", pageURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "sv-SE,sv;q=0.9,en;q=0.8")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &HTTPError{URL: pageURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body of %s: %w", pageURL, err)
	}
	return string(body), nil
}

// CloseIdleConnections releases the transport's pooled connections.
func (c *Client) CloseIdleConnections() {
	c.http.CloseIdleConnections()
}

// DescriptionParser is the slice of the page parser the fetcher needs.
type DescriptionParser interface {
	Description(htmlText string) (string, bool)
}

// DetailFetcher fetches one product detail page and extracts its
// description. Failures never propagate: a fetch error, a timeout, a bad
// status, and a structurally missing description all come back as absent.
type DetailFetcher struct {
	client  *Client
	parser  DescriptionParser
	timeout time.Duration
}

// NewDetailFetcher creates a DetailFetcher bounding each fetch by timeout
// so one slow page cannot stall pool throughput.
func NewDetailFetcher(client *Client, parser DescriptionParser, timeout time.Duration) *DetailFetcher {
	return &DetailFetcher{client: client, parser: parser, timeout: timeout}
}

// Description fetches url and returns its description text, or false when
// the fetch failed or the page has no description element.
func (f *DetailFetcher) Description(ctx context.Context, pageURL string) (string, bool) {
	log.Debug().Str("url", pageURL).Msg("Fetching product detail page")

	fetchCtx := ctx
	if f.timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	htmlText, err := f.client.Page(fetchCtx, pageURL)
	if err != nil {
		log.Warn().Err(err).Str("url", pageURL).Msg("Detail fetch failed")
		return "", false
	}

	desc, ok := f.parser.Description(htmlText)
	if !ok {
		// Not an error: plenty of products simply have no description.
		log.Debug().Str("url", pageURL).Msg("Page has no description element")
		return "", false
	}

	return desc, true
}
