// Package export serializes stored products to files. It only consumes
// (title, price, link, description) tuples; it knows nothing about the
// store's internals.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// csvHeader matches the sheet layout the tool has always exported.
var csvHeader = []string{"Title", "Price (kr)", "Link", "Description"}

// descriptionWrapWidth keeps exported descriptions readable in spreadsheet
// cells.
const descriptionWrapWidth = 80

// WriteCSV writes rows to path. The .csv suffix is enforced and missing
// parent directories are created. Descriptions are word-wrapped.
func WriteCSV(rows [][]string, path string) error {
	if !strings.HasSuffix(path, ".csv") {
		path += ".csv"
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create export directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, row := range rows {
		out := make([]string, len(row))
		copy(out, row)
		for i := range out {
			out[i] = strings.TrimSpace(out[i])
		}
		if len(out) == 4 {
			out[3] = Wrap(out[3], descriptionWrapWidth)
		}
		if err := writer.Write(out); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	log.Info().Str("path", path).Int("rows", len(rows)).Msg("Exported products to CSV")
	return nil
}

// Wrap greedily word-wraps s to the given width. Existing line structure is
// not preserved; wrapping is purely presentational.
func Wrap(s string, width int) string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	lineLen := 0
	for i, word := range words {
		switch {
		case i == 0:
			b.WriteString(word)
			lineLen = len(word)
		case lineLen+1+len(word) > width:
			b.WriteByte('\n')
			b.WriteString(word)
			lineLen = len(word)
		default:
			b.WriteByte(' ')
			b.WriteString(word)
			lineLen += 1 + len(word)
		}
	}
	return b.String()
}
