// Package store persists product records in a local sqlite database and
// serves the search, dedup, and export surfaces over them.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	// Pure-Go sqlite driver, registered as "sqlite".
	_ "modernc.org/sqlite"

	"github.com/prisindex/skrapa/pkg/models"
)

// Store is a handle on the products database with an explicit open/close
// lifecycle. It is opened once per invocation and passed to every component
// that needs persistence.
type Store struct {
	db *sqlx.DB
}

// Open opens (creating if necessary) the sqlite database at path.
//
// The pool is pinned to a single connection: everything runs single-writer
// after the concurrent fetch phase, and one connection keeps ":memory:"
// databases coherent in tests.
func Open(path string) (*Store, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database %s: %w", path, err)
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Setup creates the products table if it does not exist. Safe to call on
// every start.
func (s *Store) Setup(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS products (
			id          INTEGER PRIMARY KEY,
			title       TEXT,
			price       TEXT,
			link        TEXT,
			description TEXT
		)
	`)
	if err != nil {
		return fmt.Errorf("create products table: %w", err)
	}
	return nil
}

// Exists reports whether a row with exactly this link is already persisted.
// The match is deliberately not normalized: case or whitespace variants of
// the same link pass this guard and are only collapsed later by
// RemoveDuplicates.
func (s *Store) Exists(ctx context.Context, link string) (bool, error) {
	var one int
	err := s.db.GetContext(ctx, &one, `SELECT 1 FROM products WHERE link = ? LIMIT 1`, link)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check link %s: %w", link, err)
	}
	return true, nil
}

// Insert persists p unless a row with the same exact link exists, and
// reports whether a row was added. Persistence errors propagate: silently
// dropping scraped data defeats the point of the run.
func (s *Store) Insert(ctx context.Context, p models.Product) (bool, error) {
	exists, err := s.Exists(ctx, p.Link)
	if err != nil {
		return false, err
	}
	if exists {
		log.Debug().Str("title", p.Title).Str("link", p.Link).Msg("Product already stored")
		return false, nil
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO products (title, price, link, description)
		VALUES (?, ?, ?, ?)
	`, p.Title, p.Price, p.Link, p.Description)
	if err != nil {
		return false, fmt.Errorf("insert product %s: %w", p.Link, err)
	}

	log.Debug().Str("title", p.Title).Msg("Product inserted")
	return true, nil
}

// InsertBatch inserts every record in order and returns how many rows were
// actually added. The first persistence error aborts the batch; the
// returned count only covers committed rows.
func (s *Store) InsertBatch(ctx context.Context, records []models.Product) (int, error) {
	added := 0
	for _, p := range records {
		ok, err := s.Insert(ctx, p)
		if err != nil {
			return added, err
		}
		if ok {
			added++
		}
	}
	return added, nil
}

// Count returns the number of stored products.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM products`); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// Clear deletes every stored product.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return fmt.Errorf("clear products: %w", err)
	}
	log.Info().Msg("Cleared all stored products")
	return nil
}

// UpdatePrice rewrites one row's price in place. Identity is untouched.
func (s *Store) UpdatePrice(ctx context.Context, id int64, price string) error {
	if _, err := s.db.ExecContext(ctx, `UPDATE products SET price = ? WHERE id = ?`, price, id); err != nil {
		return fmt.Errorf("update price of product %d: %w", id, err)
	}
	return nil
}

// CleanPrices re-applies price normalization to every stored row and
// returns how many rows actually changed. Because normalization is
// idempotent this is safe to run on every start.
func (s *Store) CleanPrices(ctx context.Context, clean func(string) string) (int, error) {
	type row struct {
		ID    int64  `db:"id"`
		Price string `db:"price"`
	}

	var rows []row
	if err := s.db.SelectContext(ctx, &rows, `SELECT id, price FROM products`); err != nil {
		return 0, fmt.Errorf("load prices: %w", err)
	}

	changed := 0
	for _, r := range rows {
		cleaned := clean(r.Price)
		if cleaned == r.Price {
			continue
		}
		if err := s.UpdatePrice(ctx, r.ID, cleaned); err != nil {
			return changed, err
		}
		changed++
	}

	if changed > 0 {
		log.Info().Int("rows", changed).Msg("Cleaned stored prices")
	}
	return changed, nil
}

// All returns every stored product in natural (insertion) order.
func (s *Store) All(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	err := s.db.SelectContext(ctx, &products, `
		SELECT id, title, price, link, description FROM products ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	return products, nil
}

// ExportRows returns the stored products as ordered
// (title, price, link, description) tuples for the export writers.
// An absent description exports as an empty string.
func (s *Store) ExportRows(ctx context.Context) ([][]string, error) {
	products, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(products))
	for _, p := range products {
		desc := ""
		if p.Description != nil {
			desc = *p.Description
		}
		rows = append(rows, []string{p.Title, p.Price, p.Link, desc})
	}
	return rows, nil
}
