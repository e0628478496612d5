package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prisindex/skrapa/pkg/models"
)

func seedQueryStore(t *testing.T) *Store {
	t.Helper()
	s := newTestStore(t)
	ctx := context.Background()

	seed := []models.Product{
		{Title: "Linen Shirt", Price: "150", Link: "https://jus.se/p/shirt"},
		{Title: "Wool Pants", Price: "399", Link: "https://jus.se/p/pants"},
		{Title: "Winter Coat", Price: "2499", Link: "https://jus.se/p/coat"},
		{Title: "Gift Card", Price: "ask in store", Link: "https://jus.se/p/gift"},
		{Title: "Basic Tee", Price: "100", Link: "https://jus.se/p/tee"},
	}
	for _, p := range seed {
		_, err := s.Insert(ctx, p)
		require.NoError(t, err)
	}
	return s
}

func titles(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Title)
	}
	return out
}

func TestSearchByTitle_CaseInsensitiveSubstring(t *testing.T) {
	s := seedQueryStore(t)

	got, err := s.SearchByTitle(context.Background(), "shirt")
	require.NoError(t, err)
	require.Equal(t, []string{"Linen Shirt"}, titles(got))

	got, err = s.SearchByTitle(context.Background(), "WOOL")
	require.NoError(t, err)
	require.Equal(t, []string{"Wool Pants"}, titles(got))
}

func TestSearchByTitle_NoMatches(t *testing.T) {
	s := seedQueryStore(t)

	got, err := s.SearchByTitle(context.Background(), "socks")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestSearchByPrice_Equality(t *testing.T) {
	s := seedQueryStore(t)

	got, err := s.SearchByPrice(context.Background(), "100", "ascending")
	require.NoError(t, err)
	require.Equal(t, []string{"Basic Tee"}, titles(got))
}

func TestSearchByPrice_Operators(t *testing.T) {
	s := seedQueryStore(t)
	ctx := context.Background()

	got, err := s.SearchByPrice(ctx, "<399", "ascending")
	require.NoError(t, err)
	require.Equal(t, []string{"Basic Tee", "Linen Shirt"}, titles(got))

	got, err = s.SearchByPrice(ctx, ">150", "ascending")
	require.NoError(t, err)
	require.Equal(t, []string{"Wool Pants", "Winter Coat"}, titles(got))

	// Two-character operators must be reachable.
	got, err = s.SearchByPrice(ctx, ">=150", "ascending")
	require.NoError(t, err)
	require.Equal(t, []string{"Linen Shirt", "Wool Pants", "Winter Coat"}, titles(got))

	got, err = s.SearchByPrice(ctx, "<=150", "descending")
	require.NoError(t, err)
	require.Equal(t, []string{"Linen Shirt", "Basic Tee"}, titles(got))
}

func TestSearchByPrice_SortOrder(t *testing.T) {
	s := seedQueryStore(t)

	got, err := s.SearchByPrice(context.Background(), ">0", "descending")
	require.NoError(t, err)
	require.Equal(t, []string{"Winter Coat", "Wool Pants", "Linen Shirt", "Basic Tee"}, titles(got))
}

func TestSearchByPrice_ExcludesUncastablePrices(t *testing.T) {
	s := seedQueryStore(t)

	// "ask in store" casts to 0 in sqlite; it must not surface as a free
	// product, it must simply be excluded.
	got, err := s.SearchByPrice(context.Background(), ">=0", "ascending")
	require.NoError(t, err)
	require.NotContains(t, titles(got), "Gift Card")
	require.Len(t, got, 4)
}

func TestSearchByPrice_InvalidValue(t *testing.T) {
	s := seedQueryStore(t)

	_, err := s.SearchByPrice(context.Background(), ">cheap", "ascending")
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.SearchByPrice(context.Background(), "", "ascending")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestSearchByPrice_InvalidSortOrder(t *testing.T) {
	s := seedQueryStore(t)

	_, err := s.SearchByPrice(context.Background(), "100", "sideways")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestParsePriceExpr(t *testing.T) {
	tests := []struct {
		expr    string
		wantOp  string
		wantVal float64
	}{
		{"100", "=", 100},
		{"<100", "<", 100},
		{">100", ">", 100},
		{"<=100", "<=", 100},
		{">=100", ">=", 100},
		{"  >= 99.5 ", ">=", 99.5},
	}
	for _, tt := range tests {
		op, val, err := parsePriceExpr(tt.expr)
		require.NoError(t, err, tt.expr)
		require.Equal(t, tt.wantOp, op, tt.expr)
		require.Equal(t, tt.wantVal, val, tt.expr)
	}
}
