package models

// Listing is a single catalog-page entry before its detail page has been
// fetched. Title and RawPrice are verbatim page text; Link is already
// resolved to an absolute URL.
type Listing struct {
	Title    string `json:"title"`
	RawPrice string `json:"raw_price"`
	Link     string `json:"link"`
}

// Product is the assembled record that crosses into the store.
//
// Price is a canonical numeric string (no currency token, no thousands
// separators, no whitespace) kept as text for lossless round-trips; numeric
// comparison happens in SQL via CAST. Description is nil when the detail
// page lacked the element or its fetch failed.
type Product struct {
	ID          int64   `db:"id" json:"id"`
	Title       string  `db:"title" json:"title"`
	Price       string  `db:"price" json:"price"`
	Link        string  `db:"link" json:"link"`
	Description *string `db:"description" json:"description,omitempty"`
}

// ScrapeReport summarizes one pipeline run.
type ScrapeReport struct {
	Listings  int `json:"listings"`
	Collected int `json:"collected"`
	Added     int `json:"added"`
}
