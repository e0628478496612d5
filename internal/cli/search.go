package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prisindex/skrapa/internal/store"
	"github.com/prisindex/skrapa/internal/ui"
	"github.com/prisindex/skrapa/pkg/models"
)

var sortOrder string

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search stored products",
}

var searchTitleCmd = &cobra.Command{
	Use:   "title <text>",
	Short: "Find products whose title contains the given text",
	Example: `  skrapa search title shirt
  skrapa search title "wool coat"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := GetApp().Store.SearchByTitle(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printProducts(results)
		return nil
	},
}

var searchPriceCmd = &cobra.Command{
	Use:   "price <expression>",
	Short: "Find products by price comparison",
	Long: `Compares against the numeric price. The expression is a number with
an optional <, >, <= or >= prefix; a bare number means equality.`,
	Example: `  skrapa search price 150
  skrapa search price "<400"
  skrapa search price ">=1000" --sort=descending`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := GetApp().Store.SearchByPrice(cmd.Context(), args[0], sortOrder)
		if err != nil {
			if errors.Is(err, store.ErrInvalidInput) {
				return fmt.Errorf("%s", ui.Error(err.Error()))
			}
			return err
		}
		printProducts(results)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.AddCommand(searchTitleCmd)
	searchCmd.AddCommand(searchPriceCmd)

	searchPriceCmd.Flags().StringVar(&sortOrder, "sort", "ascending", "Sort order: ascending or descending")
}

func printProducts(products []models.Product) {
	if len(products) == 0 {
		fmt.Println(ui.Info("No matching products"))
		return
	}

	currency := GetApp().Config.CurrencyToken
	for _, p := range products {
		fmt.Printf("%s  %s\n", ui.Bold(p.Title), fmt.Sprintf("%s %s", p.Price, currency))
		fmt.Printf("  %s\n", ui.Link(p.Link))
		if p.Description != nil && *p.Description != "" {
			fmt.Printf("  %s\n", ui.Dim(*p.Description))
		}
		fmt.Println()
	}
	fmt.Printf("%d product(s)\n", len(products))
}
