package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// WriteMarkdown writes rows to path as a markdown table. Descriptions are
// flattened to one line; pipes are escaped so cells cannot break the table.
func WriteMarkdown(rows [][]string, path string) error {
	if !strings.HasSuffix(path, ".md") {
		path += ".md"
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create export directory: %w", err)
		}
	}

	var b strings.Builder
	b.WriteString("| Title | Price (kr) | Link | Description |\n")
	b.WriteString("| --- | --- | --- | --- |\n")

	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = mdCell(cell)
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write markdown export: %w", err)
	}

	log.Info().Str("path", path).Int("rows", len(rows)).Msg("Exported products to markdown")
	return nil
}

func mdCell(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.ReplaceAll(s, "|", "\\|")
}
