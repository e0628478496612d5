package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/prisindex/skrapa/internal/app"
	"github.com/prisindex/skrapa/internal/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "skrapa",
	Short:   "Scrape a storefront catalog into a searchable local database",
	Long:  `Skrapa fetches a storefront catalog page, collects every listed
product's detail page concurrently, and persists normalized product records
into a local sqlite database that the search, dedupe, and export commands
work against.`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	config.RegisterFlags(rootCmd)

	// Initialize the application lazily so -h/--help doesn't open the
	// database.
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if GetApp() != nil {
			return nil
		}

		cfg, err := config.Load(cmd)
		if err != nil {
			return err
		}

		a, err := app.New(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		SetApp(a)
		return nil
	}

	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		a := GetApp()
		if a == nil {
			return
		}
		_ = a.Close(context.Background())
		SetApp(nil)
	}
}
