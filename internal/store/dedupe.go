package store

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// RemoveDuplicates collapses rows whose links are equal after lowercasing
// and trimming. Within each group the lowest id (earliest inserted) row
// survives; the rest are deleted. Returns how many rows were removed.
//
// This is the normalized tier of duplicate handling; Insert's own guard is
// exact-match only, so case/whitespace variants accumulate until this runs.
// Idempotent: a second pass removes nothing new.
func (s *Store) RemoveDuplicates(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx, `
		WITH ranked AS (
			SELECT
				id,
				ROW_NUMBER() OVER (
					PARTITION BY LOWER(TRIM(link))
					ORDER BY id
				) AS rn
			FROM products
		)
		DELETE FROM products WHERE id IN (SELECT id FROM ranked WHERE rn > 1)
	`)
	if err != nil {
		return 0, fmt.Errorf("remove duplicate products: %w", err)
	}

	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count removed duplicates: %w", err)
	}

	if removed > 0 {
		log.Info().Int64("rows", removed).Msg("Removed duplicate products")
	}
	return int(removed), nil
}
