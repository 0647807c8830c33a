package scrapers

import (
	"fmt"

	"github.com/listcraft/listing-studio/scrapers/amazon"
	"github.com/listcraft/listing-studio/utils"
)

// GetScraper resolves shortened links (amzn.in and friends) and returns
// the scraper that handles the URL, along with the resolved URL.
func GetScraper(url string) (Scraper, string, error) {
	resolvedURL, err := utils.ResolveShortenedURL(url)
	if err != nil {
		// Resolution is best effort; a direct product URL still works.
		resolvedURL = url
	}

	registry := []Scraper{
		amazon.New(),
	}

	for _, s := range registry {
		if s.CanScrape(resolvedURL) {
			return s, resolvedURL, nil
		}
	}

	return nil, resolvedURL, fmt.Errorf("no scraper found for url: %s", resolvedURL)
}
