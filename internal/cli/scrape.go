package cli

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/prisindex/skrapa/internal/ui"
)

var noMaintenance bool

// scrapeCmd runs one full scrape of the configured catalog.
var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape the catalog page and persist new products",
	Long: `Fetches the configured catalog page, collects each product's detail
page over a bounded worker pool, normalizes prices, and inserts records the
database has not seen before.

Before scraping, stored prices are re-normalized and duplicate rows (links
equal after lowercasing and trimming) are collapsed, so repeated runs keep
the database clean.`,
	Example: `  # Scrape with defaults
  skrapa scrape

  # A different storefront, fetched through headless Chrome
  skrapa scrape --catalog-url=https://shop.example.com/all --base-url=https://shop.example.com --render

  # Cap the fetch fan-out
  skrapa scrape --concurrency=4`,
	Args: cobra.NoArgs,
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	scrapeCmd.Flags().BoolVar(&noMaintenance, "no-maintenance", false, "Skip the price-clean and dedupe pass before scraping")
}

func runScrape(cmd *cobra.Command, args []string) error {
	a := GetApp()
	ctx := cmd.Context()

	if !noMaintenance {
		cleaned, err := a.Store.CleanPrices(ctx, a.Normalizer.Price)
		if err != nil {
			return fmt.Errorf("clean stored prices: %w", err)
		}
		removed, err := a.Store.RemoveDuplicates(ctx)
		if err != nil {
			return fmt.Errorf("remove duplicates: %w", err)
		}
		if cleaned > 0 || removed > 0 {
			fmt.Printf("Maintenance: %d prices cleaned, %d duplicates removed\n", cleaned, removed)
		}
	}

	runner := a.NewRunner()
	runner.Progress = func(total int) func() {
		bar := progressbar.NewOptions(total,
			progressbar.OptionSetDescription("fetching details"),
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionShowCount(),
		)
		return func() { _ = bar.Add(1) }
	}

	report, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	if report.Listings == 0 {
		fmt.Println(ui.Info("Catalog page contained no listings"))
		return nil
	}

	fmt.Println(ui.Success(fmt.Sprintf(
		"Scraped %d listings, %d new products added", report.Listings, report.Added)))

	total, err := a.Store.Count(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Database now holds %d products\n", total)
	return nil
}
