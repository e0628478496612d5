package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/prisindex/skrapa/pkg/models"
)

// ErrInvalidInput marks a malformed search expression or sort order. It is
// surfaced to the caller before any SQL runs; it is never coerced into an
// empty result set.
var ErrInvalidInput = errors.New("invalid input")

// priceOperators is the closed set of comparison prefixes, longest first so
// ">=" can never be swallowed by ">".
var priceOperators = []string{"<=", ">=", "<", ">"}

// numericGuard keeps rows whose price cannot cast to a real number out of
// comparisons; after normalization a valid price is digits with at most a
// decimal point.
const numericGuard = `price <> '' AND price NOT GLOB '*[^0-9.]*'`

// SearchByTitle returns the products whose title contains substr,
// case-insensitively, in the store's natural order.
func (s *Store) SearchByTitle(ctx context.Context, substr string) ([]models.Product, error) {
	products := []models.Product{}
	err := s.db.SelectContext(ctx, &products, `
		SELECT id, title, price, link, description FROM products
		WHERE title LIKE ?
	`, "%"+substr+"%")
	if err != nil {
		return nil, fmt.Errorf("search by title: %w", err)
	}
	return products, nil
}

// SearchByPrice returns the products whose numeric price satisfies expr,
// sorted by price in the given order.
//
// expr is a number optionally prefixed by one of < > <= >= (plain numbers
// mean equality). A value that does not parse as a real number, or an order
// that is not ascending/descending, is rejected with ErrInvalidInput. Rows
// whose stored price does not cast to a number are excluded rather than
// compared against garbage.
func (s *Store) SearchByPrice(ctx context.Context, expr, order string) ([]models.Product, error) {
	op, value, err := parsePriceExpr(expr)
	if err != nil {
		return nil, err
	}

	direction, err := sortDirection(order)
	if err != nil {
		return nil, err
	}

	// op and direction both come from closed sets validated above.
	query := fmt.Sprintf(`
		SELECT id, title, price, link, description FROM products
		WHERE %s AND CAST(price AS REAL) %s ?
		ORDER BY CAST(price AS REAL) %s
	`, numericGuard, op, direction)

	products := []models.Product{}
	if err := s.db.SelectContext(ctx, &products, query, value); err != nil {
		return nil, fmt.Errorf("search by price: %w", err)
	}
	return products, nil
}

// parsePriceExpr splits expr into a comparison operator and its numeric
// value, defaulting the operator to equality.
func parsePriceExpr(expr string) (op string, value float64, err error) {
	expr = strings.TrimSpace(expr)

	op = "="
	for _, candidate := range priceOperators {
		if strings.HasPrefix(expr, candidate) {
			op = candidate
			expr = strings.TrimSpace(expr[len(candidate):])
			break
		}
	}

	value, parseErr := strconv.ParseFloat(expr, 64)
	if parseErr != nil {
		return "", 0, fmt.Errorf("%w: price value %q is not a number", ErrInvalidInput, expr)
	}
	return op, value, nil
}

// sortDirection validates order and maps it onto SQL.
func sortDirection(order string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(order)) {
	case "asc", "ascending":
		return "ASC", nil
	case "desc", "descending":
		return "DESC", nil
	default:
		return "", fmt.Errorf("%w: sort order %q (want ascending or descending)", ErrInvalidInput, order)
	}
}
