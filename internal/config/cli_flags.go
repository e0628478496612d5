package config

import "github.com/spf13/cobra"

// RegisterFlags registers common CLI flags on the provided root command
func RegisterFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress all output except errors")
	cmd.PersistentFlags().Bool("json", false, "Emit logs as JSON")
	cmd.PersistentFlags().String("timeout", "", "Hard timeout for any single request (e.g. 30s)")
	cmd.PersistentFlags().String("user-agent", "", "Custom user agent string")
	cmd.PersistentFlags().String("db", "", "Path to the sqlite database file")
	cmd.PersistentFlags().String("catalog-url", "", "Catalog page URL to scrape")
	cmd.PersistentFlags().String("base-url", "", "Base URL that relative product links resolve against")
	cmd.PersistentFlags().String("currency", "", "Currency token stripped from price text")
	cmd.PersistentFlags().Int("concurrency", 0, "Detail fetch worker count (0 = auto)")
	cmd.PersistentFlags().Bool("render", false, "Fetch the catalog page in headless Chrome")
	cmd.PersistentFlags().Bool("rich-text", false, "Keep description formatting as markdown")
	cmd.PersistentFlags().String("chrome-path", "", "Explicit Chrome binary for --render")
}
