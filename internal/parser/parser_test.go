package parser

import (
	"strings"
	"testing"
)

func testSelectors() Selectors {
	return Selectors{
		Container:   "#PageContainer",
		Item:        "div.product-card",
		Title:       "a.product-link",
		Link:        "a.product-link",
		Price:       "span.price-item",
		Description: "div.product-description",
	}
}

const catalogHTML = `<!DOCTYPE html>
<html>
<body>
	<div id="PageContainer">
		<div class="product-card">
			<a class="product-link" href="/p/shirt">Shirt</a>
			<span class="price-item">150 kr</span>
		</div>
		<div class="product-card">
			<a class="product-link" href="/p/pants">Pants</a>
			<span class="price-item">399 kr</span>
		</div>
		<div class="product-card">
			<span class="price-item">999 kr</span>
		</div>
	</div>
</body>
</html>`

func TestListings_ExtractsAndResolvesLinks(t *testing.T) {
	p := New(testSelectors(), "https://jus.se", false)

	listings, err := p.Listings(catalogHTML)
	if err != nil {
		t.Fatalf("Listings failed: %v", err)
	}

	// The card without an anchor is skipped.
	if len(listings) != 2 {
		t.Fatalf("Expected 2 listings, got %d", len(listings))
	}

	if listings[0].Title != "Shirt" {
		t.Errorf("Expected title 'Shirt', got %q", listings[0].Title)
	}
	if listings[0].RawPrice != "150 kr" {
		t.Errorf("Expected raw price '150 kr', got %q", listings[0].RawPrice)
	}
	if listings[0].Link != "https://jus.se/p/shirt" {
		t.Errorf("Expected resolved link, got %q", listings[0].Link)
	}
	if listings[1].Link != "https://jus.se/p/pants" {
		t.Errorf("Expected resolved link, got %q", listings[1].Link)
	}
}

func TestListings_AbsoluteLinkPassesThrough(t *testing.T) {
	html := `<div id="PageContainer"><div class="product-card">
		<a class="product-link" href="https://cdn.example.com/p/coat">Coat</a>
		<span class="price-item">2,499 kr</span>
	</div></div>`

	p := New(testSelectors(), "https://jus.se", false)
	listings, err := p.Listings(html)
	if err != nil {
		t.Fatalf("Listings failed: %v", err)
	}
	if len(listings) != 1 || listings[0].Link != "https://cdn.example.com/p/coat" {
		t.Fatalf("Unexpected listings: %+v", listings)
	}
}

func TestListings_MissingContainer(t *testing.T) {
	p := New(testSelectors(), "https://jus.se", false)

	listings, err := p.Listings(`<html><body><p>maintenance page</p></body></html>`)
	if err != nil {
		t.Fatalf("Listings failed: %v", err)
	}
	if len(listings) != 0 {
		t.Fatalf("Expected no listings, got %d", len(listings))
	}
}

func TestDescription_Present(t *testing.T) {
	p := New(testSelectors(), "https://jus.se", false)

	desc, ok := p.Description(`<html><body>
		<div class="product-description"><p>100% cotton.</p></div>
	</body></html>`)
	if !ok {
		t.Fatal("Expected description to be found")
	}
	if strings.TrimSpace(desc) != "100% cotton." {
		t.Errorf("Unexpected description %q", desc)
	}
}

func TestDescription_Absent(t *testing.T) {
	p := New(testSelectors(), "https://jus.se", false)

	if _, ok := p.Description(`<html><body><h1>Shirt</h1></body></html>`); ok {
		t.Fatal("Expected absent description")
	}
}

func TestDescription_RichTextKeepsFormatting(t *testing.T) {
	p := New(testSelectors(), "https://jus.se", true)

	desc, ok := p.Description(`<html><body>
		<div class="product-description"><p>Made of <strong>organic</strong> cotton.</p></div>
	</body></html>`)
	if !ok {
		t.Fatal("Expected description to be found")
	}
	if !strings.Contains(desc, "**organic**") {
		t.Errorf("Expected markdown emphasis in %q", desc)
	}
}
