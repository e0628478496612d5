package normalize

import (
	"strconv"
	"testing"

	"github.com/prisindex/skrapa/pkg/models"
)

func TestPrice_Canonicalizes(t *testing.T) {
	n := New("kr")

	tests := []struct {
		in   string
		want string
	}{
		{"150 kr", "150"},
		{"  399 kr  ", "399"},
		{"1,299 kr", "1299"},
		{"1,299,000 kr", "1299000"},
		{"1 299 kr", "1299"},
		{"150", "150"},
		{"149.50 kr", "149.50"},
	}

	for _, tt := range tests {
		got := n.Price(tt.in)
		if got != tt.want {
			t.Errorf("Price(%q) = %q, want %q", tt.in, got, tt.want)
		}

		// Idempotence: cleaning an already-clean value is a no-op.
		if again := n.Price(got); again != got {
			t.Errorf("Price(%q) not idempotent: second pass gave %q", tt.in, again)
		}

		// The canonical form must parse as a non-negative real number.
		v, err := strconv.ParseFloat(got, 64)
		if err != nil {
			t.Errorf("Price(%q) = %q does not parse as a number: %v", tt.in, got, err)
		}
		if v < 0 {
			t.Errorf("Price(%q) = %q is negative", tt.in, got)
		}
	}
}

func TestRecord_TrimsFields(t *testing.T) {
	n := New("kr")

	desc := "  100% cotton.\nMachine wash cold.  "
	got := n.Record(models.Product{
		Title:       "  Shirt  ",
		Price:       " 150 kr ",
		Link:        " https://jus.se/p/shirt ",
		Description: &desc,
	})

	if got.Title != "Shirt" {
		t.Errorf("Title = %q", got.Title)
	}
	if got.Price != "150" {
		t.Errorf("Price = %q", got.Price)
	}
	if got.Link != "https://jus.se/p/shirt" {
		t.Errorf("Link = %q", got.Link)
	}
	// Outer whitespace goes, interior newlines stay.
	if *got.Description != "100% cotton.\nMachine wash cold." {
		t.Errorf("Description = %q", *got.Description)
	}
}

func TestRecord_NilDescription(t *testing.T) {
	n := New("kr")
	got := n.Record(models.Product{Title: "Pants", Price: "399 kr", Link: "https://jus.se/p/pants"})
	if got.Description != nil {
		t.Errorf("expected nil description, got %q", *got.Description)
	}
}

func TestRecord_Idempotent(t *testing.T) {
	n := New("kr")
	desc := " Lined wool coat. "
	first := n.Record(models.Product{Title: " Coat ", Price: "2,499 kr", Link: "https://jus.se/p/coat", Description: &desc})
	second := n.Record(first)

	if second.Title != first.Title || second.Price != first.Price || second.Link != first.Link {
		t.Errorf("second pass changed record: %+v vs %+v", second, first)
	}
	if *second.Description != *first.Description {
		t.Errorf("second pass changed description: %q vs %q", *second.Description, *first.Description)
	}
}
