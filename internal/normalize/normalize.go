// Package normalize canonicalizes scraped text so that records compare and
// persist consistently across runs.
package normalize

import (
	"strings"

	"github.com/prisindex/skrapa/pkg/models"
)

// Normalizer rewrites raw scraped fields into their canonical form.
// Currency is the unit token stripped from price text (e.g. "kr").
type Normalizer struct {
	Currency string
}

// New returns a Normalizer for the given currency token.
func New(currency string) *Normalizer {
	return &Normalizer{Currency: currency}
}

// Price strips the currency token, thousands-separator commas, and all
// whitespace from raw price text. For input that contained only digits,
// separators, whitespace, and the currency token, the result parses as a
// non-negative real number.
//
// Price is idempotent: the maintenance pass re-applies it to rows that were
// already cleaned.
func (n *Normalizer) Price(raw string) string {
	s := strings.ReplaceAll(raw, n.Currency, "")
	s = strings.ReplaceAll(s, ",", "")
	// Fields splits on every Unicode space, which also catches the
	// non-breaking spaces Shopify themes put between digit groups.
	s = strings.Join(strings.Fields(s), "")
	return strings.TrimSpace(s)
}

// Record returns p with its title and link trimmed, its price canonicalized,
// and its description trimmed of surrounding whitespace only. Internal
// description whitespace and newlines are preserved.
func (n *Normalizer) Record(p models.Product) models.Product {
	p.Title = strings.TrimSpace(p.Title)
	p.Link = strings.TrimSpace(p.Link)
	p.Price = n.Price(p.Price)
	if p.Description != nil {
		d := strings.TrimSpace(*p.Description)
		p.Description = &d
	}
	return p
}
