package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
)

// RenderOptions configures the headless-browser catalog fetch.
type RenderOptions struct {
	UserAgent  string
	Timeout    time.Duration
	ChromePath string // optional explicit binary; chromedp's lookup otherwise
}

// RenderedPage fetches pageURL in headless Chrome and returns the DOM after
// scripts have run. Storefronts that assemble their listing grid
// client-side need this instead of Client.Page.
func RenderedPage(ctx context.Context, pageURL string, opts RenderOptions) (string, error) {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	allocOpts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", "new"),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("window-size", "1920,1080"),
	)
	if opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(opts.UserAgent))
	}
	if opts.ChromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ChromePath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	start := time.Now()
	var htmlText string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body"),
		chromedp.OuterHTML("html", &htmlText),
	)
	if err != nil {
		return "", fmt.Errorf("rendered fetch of %s: %w", pageURL, err)
	}

	log.Debug().
		Str("url", pageURL).
		Dur("elapsed", time.Since(start)).
		Int("bytes", len(htmlText)).
		Msg("Rendered fetch completed")

	return htmlText, nil
}
