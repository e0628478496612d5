package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/prisindex/skrapa/internal/export"
	"github.com/prisindex/skrapa/internal/ui"
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export stored products to a file",
	Long: `Writes every stored product as (title, price, link, description)
rows. The format follows the file extension: .md for a markdown table,
anything else for CSV.`,
	Example: `  skrapa export products.csv
  skrapa export reports/catalog.md`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	path := args[0]

	rows, err := GetApp().Store.ExportRows(cmd.Context())
	if err != nil {
		return err
	}

	if strings.HasSuffix(path, ".md") {
		err = export.WriteMarkdown(rows, path)
	} else {
		err = export.WriteCSV(rows, path)
	}
	if err != nil {
		return err
	}

	fmt.Println(ui.Success(fmt.Sprintf("Exported %d product(s) to %s", len(rows), path)))
	return nil
}
