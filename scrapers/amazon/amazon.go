package amazon

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/listcraft/listing-studio/models"
	"github.com/listcraft/listing-studio/scrapers/base"
)

// Scraper extracts product records from amazon.* product pages.
type Scraper struct {
	fetcher *base.Fetcher
}

// New returns an Amazon scraper with the default fetcher.
func New() *Scraper {
	return &Scraper{fetcher: base.NewFetcher()}
}

// CanScrape matches amazon storefront and amzn short-link hosts.
func (s *Scraper) CanScrape(url string) bool {
	lower := strings.ToLower(url)
	return strings.Contains(lower, "amazon.") || strings.Contains(lower, "amzn.")
}

var (
	asinFromURL  = regexp.MustCompile(`/dp/([A-Z0-9]{10})`)
	asinFromPage = regexp.MustCompile(`"asin"\s*:\s*"([A-Z0-9]{10})"`)
)

// Markers of the robot-check interstitial. When present the page carries
// no product data; the result is flagged so callers can surface it.
var captchaMarkers = []string{
	"api-services-support@amazon.com",
	"Type the characters you see in this image",
}

// ScrapeProduct fetches the product page and extracts all fields. Fetch
// failures are returned as errors; parse-stage panics are recovered and
// reported the same way so a malformed page never crashes the caller.
func (s *Scraper) ScrapeProduct(ctx context.Context, url string) (*models.Product, error) {
	doc, res, err := s.fetcher.FetchDocument(ctx, url)
	if err != nil {
		return nil, err
	}
	return s.parse(doc, string(res.Body), res.FinalURL)
}

func (s *Scraper) parse(doc *goquery.Document, body, finalURL string) (product *models.Product, err error) {
	defer func() {
		if r := recover(); r != nil {
			product = nil
			err = fmt.Errorf("failed to parse product page: %v", r)
		}
	}()

	product = &models.Product{
		Success:   true,
		URL:       finalURL,
		Pricing:   models.NewPricing(),
		Images:    []string{},
		CreatedAt: time.Now(),
	}

	for _, marker := range captchaMarkers {
		if strings.Contains(body, marker) {
			product.CaptchaWarning = true
			break
		}
	}

	product.ASIN = extractASIN(finalURL, body)
	product.Title = extractTitle(doc)
	product.Brand = extractBrand(doc)
	product.Description = extractDescription(doc)
	product.Pricing = extractPricing(doc)
	product.Bullets = extractBullets(doc)
	product.Images = extractImages(doc)

	assembleDetails(doc, product)

	return product, nil
}

// extractASIN prefers the canonical /dp/ path segment, then falls back
// to the embedded JSON blob in the page source.
func extractASIN(pageURL, body string) string {
	if m := asinFromURL.FindStringSubmatch(pageURL); m != nil {
		return m[1]
	}
	if m := asinFromPage.FindStringSubmatch(body); m != nil {
		return m[1]
	}
	return "unknown"
}

var titleSelectors = []string{
	"span#productTitle",
	"h1#title",
	".product-title-word",
	"#titleSection h1",
	"#title_feature_div h1",
}

func extractTitle(doc *goquery.Document) string {
	for _, sel := range titleSelectors {
		if text := safeExtract(doc.Find(sel).First()); text != "N/A" {
			return text
		}
	}
	return "N/A"
}

var brandSelectors = []string{
	"a#bylineInfo",
	"a[href*='/brand/']",
	".a-link-normal[href*='/brand/']",
	"#bylineInfo",
	"#brand",
}

// brandPrefixes are byline boilerplate stripped from the brand text.
var brandPrefixes = []string{"Visit the ", "Brand: "}

func extractBrand(doc *goquery.Document) string {
	for _, sel := range brandSelectors {
		text := safeExtract(doc.Find(sel).First())
		if text == "N/A" {
			continue
		}
		for _, prefix := range brandPrefixes {
			text = strings.TrimPrefix(text, prefix)
		}
		text = strings.TrimSuffix(text, " Store")
		if text = strings.TrimSpace(text); text != "" {
			return text
		}
	}
	return "N/A"
}

var descriptionSelectors = []string{
	"div#productDescription",
	"div#descriptionAndDetails",
	"div#productDescription_feature_div",
	"div.a-section.description",
}

// extractDescription walks the description containers, then falls back
// to the feature bullets when they are long enough to stand alone.
func extractDescription(doc *goquery.Document) string {
	for _, sel := range descriptionSelectors {
		if text := safeExtract(doc.Find(sel).First()); text != "N/A" {
			return text
		}
	}
	bullets := safeExtract(doc.Find("#feature-bullets").First())
	if bullets != "N/A" && len(bullets) > 200 {
		return bullets
	}
	return "N/A"
}

var currentPriceSelectors = []string{
	".a-price-whole",
	".a-price .a-offscreen",
	"#priceblock_dealprice",
	"#priceblock_ourprice",
	".a-price-range .a-price .a-offscreen",
}

var listPriceSelectors = []string{
	".a-price.a-text-price .a-offscreen",
	".a-text-strike",
	"#priceblock_saleprice",
}

func extractPricing(doc *goquery.Document) models.Pricing {
	pricing := models.NewPricing()
	for _, sel := range currentPriceSelectors {
		if text := safeExtract(doc.Find(sel).First()); text != "N/A" {
			pricing.CurrentPrice = text
			break
		}
	}
	for _, sel := range listPriceSelectors {
		if text := safeExtract(doc.Find(sel).First()); text != "N/A" {
			pricing.ListPrice = text
			break
		}
	}
	if text := safeExtract(doc.Find(".savingsPercentage").First()); text != "N/A" {
		pricing.Savings = text
	}
	return pricing
}
