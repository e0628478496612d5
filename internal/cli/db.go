package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prisindex/skrapa/internal/ui"
)

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Print how many products are stored",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := GetApp().Store.Count(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(n)
		return nil
	},
}

var clearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every stored product",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !clearYes {
			return fmt.Errorf("refusing to clear without --yes")
		}
		if err := GetApp().Store.Clear(cmd.Context()); err != nil {
			return err
		}
		fmt.Println(ui.Success("Database cleared"))
		return nil
	},
}

var dedupeCmd = &cobra.Command{
	Use:   "dedupe",
	Short: "Collapse rows whose links differ only by case or whitespace",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		removed, err := GetApp().Store.RemoveDuplicates(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("%d duplicate(s) removed\n", removed)
		return nil
	},
}

var cleanPricesCmd = &cobra.Command{
	Use:   "clean-prices",
	Short: "Re-normalize every stored price",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := GetApp()
		changed, err := a.Store.CleanPrices(cmd.Context(), a.Normalizer.Price)
		if err != nil {
			return err
		}
		fmt.Printf("%d price(s) cleaned\n", changed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(dedupeCmd)
	rootCmd.AddCommand(cleanPricesCmd)

	clearCmd.Flags().BoolVar(&clearYes, "yes", false, "Confirm deleting all rows")
}
