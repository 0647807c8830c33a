package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/listcraft/listing-studio/scrapers"
)

// Command line scraper for quick checks without running the server.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: scrape <product_url>")
		os.Exit(1)
	}
	url := os.Args[1]

	scraper, resolvedURL, err := scrapers.GetScraper(url)
	if err != nil {
		log.Fatalf("Error finding scraper: %v", err)
	}

	product, err := scraper.ScrapeProduct(context.Background(), resolvedURL)
	if err != nil {
		log.Fatalf("Scraping failed: %v", err)
	}

	out, err := json.MarshalIndent(product, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode result: %v", err)
	}
	fmt.Println(string(out))
}
