package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel     = "info"
	DefaultJSONLog      = false
	DefaultUserAgent    = "skrapa/0.1 (+https://github.com/prisindex/skrapa)"
	DefaultHTTPTimeout  = 30 * time.Second
	DefaultFetchTimeout = 15 * time.Second
	DefaultConcurrency  = 0 // 0 = size from available execution units

	DefaultCatalogURL    = "https://jus.se/collections/all-menswear/men"
	DefaultBaseURL       = "https://jus.se"
	DefaultCurrencyToken = "kr"
	DefaultDatabasePath  = "scraped_data.db"

	// Selector defaults match the storefront theme the tool grew up on.
	DefaultContainerSelector   = "#PageContainer"
	DefaultItemSelector        = "div.grid-view-item.product-card"
	DefaultTitleSelector       = "a.grid-view-item__link.grid-view-item__image-container.full-width-link"
	DefaultLinkSelector        = "a.grid-view-item__link.grid-view-item__image-container.full-width-link"
	DefaultPriceSelector       = "span.price-item.price-item--regular"
	DefaultDescriptionSelector = "div.product-single__description.rte"
)
