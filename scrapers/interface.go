package scrapers

import (
	"context"

	"github.com/listcraft/listing-studio/models"
)

// Scraper extracts a structured product record from a store page.
type Scraper interface {
	// CanScrape reports whether this scraper handles the given URL.
	CanScrape(url string) bool

	// ScrapeProduct fetches and parses the product page.
	ScrapeProduct(ctx context.Context, url string) (*models.Product, error)
}
