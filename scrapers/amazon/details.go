package amazon

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/listcraft/listing-studio/models"
)

// generalDenylist filters noise and manufacturing-only labels out of the
// general detail sections. Matched as lowercase substrings.
var generalDenylist = []string{
	"best sellers rank",
	"best seller rank",
	"customer reviews",
	"customer review",
	"manufacturer",
	"packer",
	"importer",
	"asin",
}

// manufacturingLabels are the labels routed to the manufacturing
// section. Matched as lowercase substrings.
var manufacturingLabels = []string{
	"manufacturer",
	"packer",
	"importer",
}

func isExcludedLabel(label string) bool {
	lower := strings.ToLower(label)
	for _, deny := range generalDenylist {
		if strings.Contains(lower, deny) {
			return true
		}
	}
	return false
}

func isManufacturingLabel(label string) bool {
	lower := strings.ToLower(label)
	for _, allow := range manufacturingLabels {
		if strings.Contains(lower, allow) {
			return true
		}
	}
	return false
}

// assembleDetails fills the three detail sections and enforces their
// mutual exclusivity: a label lands in exactly one section, with the
// manufacturing section taking precedence. Empty productDetails and
// manufacturingDetails get a placeholder row; additionalInfo stays an
// empty object.
func assembleDetails(doc *goquery.Document, product *models.Product) {
	manufacturing := extractManufacturing(doc, product.ASIN)

	facts, additional := extractProductFacts(doc)
	details := models.Details{}
	for _, f := range facts {
		if isExcludedLabel(f.Label) || manufacturing.Has(f.Label) {
			continue
		}
		details.Set(f.Label, f.Value)
	}
	for _, f := range extractDetailBullets(doc) {
		if isExcludedLabel(f.Label) || manufacturing.Has(f.Label) || additional.Has(f.Label) || details.Has(f.Label) {
			continue
		}
		details.Set(f.Label, f.Value)
	}

	additionalInfo := models.Details{}
	for _, f := range additional {
		if isExcludedLabel(f.Label) || manufacturing.Has(f.Label) || details.Has(f.Label) {
			continue
		}
		additionalInfo.Set(f.Label, f.Value)
	}

	if details.Len() == 0 {
		details.Set("status", models.NoDataStatus)
	}
	if manufacturing.Len() == 0 {
		manufacturing.Set("status", models.NoDataStatus)
		manufacturing.Set("ASIN", product.ASIN)
	}

	product.ProductDetails = details
	product.ManufacturingDetails = manufacturing
	product.AdditionalInfo = additionalInfo
}

// extractProductFacts walks the desktop facts expander. Each h3 heading
// opens a section; rows under "Product details" go to the first return
// value and rows under "Additional Information" to the second. Rows are
// read until the next heading or divider.
func extractProductFacts(doc *goquery.Document) (details, additional models.Details) {
	doc.Find("#productFactsDesktopExpander h3.product-facts-title").Each(func(_ int, heading *goquery.Selection) {
		section := strings.TrimSpace(heading.Text())
		var target *models.Details
		switch {
		case strings.EqualFold(section, "Product details"):
			target = &details
		case strings.EqualFold(section, "Additional Information"):
			target = &additional
		default:
			return
		}

		heading.NextUntil("h3, hr").Each(func(_ int, sibling *goquery.Selection) {
			rows := sibling.Find("div.product-facts-detail")
			if sibling.Is("div.product-facts-detail") {
				rows = sibling
			}
			rows.Each(func(_ int, row *goquery.Selection) {
				spans := row.Find("span.a-color-base")
				if spans.Length() < 2 {
					return
				}
				label := cleanKey(spans.Eq(0).Text())
				value := cleanValue(spans.Eq(1).Text())
				if label != "" && value != "" {
					target.Set(label, value)
				}
			})
		})
	})
	return details, additional
}

// extractDetailBullets reads the classic detail bullets list. The label
// sits in a bold span and the value is the remaining text of the item.
func extractDetailBullets(doc *goquery.Document) models.Details {
	fields := models.Details{}

	collect := func(item *goquery.Selection) {
		bold := item.Find("span.a-text-bold").First()
		if bold.Length() == 0 {
			return
		}
		label := cleanKey(bold.Text())
		full := item.Text()
		value := cleanValue(strings.Replace(full, bold.Text(), "", 1))
		if label != "" && value != "" {
			fields.Set(label, value)
		}
	}

	doc.Find("#detailBullets_feature_div li").Each(func(_ int, item *goquery.Selection) {
		collect(item)
	})
	if fields.Len() == 0 {
		doc.Find("#detailBulletsWrapper_feature_div li .a-list-item").Each(func(_ int, item *goquery.Selection) {
			collect(item)
		})
	}
	return fields
}

// extractManufacturing merges the manufacturing labels from all three
// detail surfaces: the facts expander, the detail bullets and the tech
// spec table. The first surface to produce a label wins. A known ASIN
// is seeded first so it always leads the section.
func extractManufacturing(doc *goquery.Document, asin string) models.Details {
	fields := models.Details{}
	if asin != "" && asin != "unknown" {
		fields.Set("ASIN", asin)
	}

	merge := func(src models.Details) {
		for _, f := range src {
			if !isManufacturingLabel(f.Label) || fields.Has(f.Label) {
				continue
			}
			fields.Set(f.Label, f.Value)
		}
	}

	facts, additional := extractProductFacts(doc)
	merge(facts)
	merge(additional)
	merge(extractDetailBullets(doc))
	merge(extractTechSpecs(doc))

	return fields
}

// extractTechSpecs reads the technical specification tables.
func extractTechSpecs(doc *goquery.Document) models.Details {
	fields := models.Details{}
	doc.Find("[id^='productDetails_techSpec_section_'] tr").Each(func(_ int, row *goquery.Selection) {
		label := cleanKey(row.Find("th").First().Text())
		value := cleanValue(row.Find("td").First().Text())
		if label != "" && value != "" {
			fields.Set(label, value)
		}
	})
	return fields
}

// extractBullets collects the feature bullet list, deduplicated by
// exact text. The section heading renders inside an li on some layouts
// and is filtered out. An empty result is reported as a single
// placeholder entry so downstream consumers always see a non-empty
// array.
func extractBullets(doc *goquery.Document) []string {
	var bullets []string
	seen := make(map[string]bool)

	collect := func(_ int, item *goquery.Selection) {
		text := fixTextCorruption(strings.TrimSpace(item.Text()))
		if text == "" || seen[text] {
			return
		}
		if strings.Contains(strings.ToLower(text), "about this item") {
			return
		}
		seen[text] = true
		bullets = append(bullets, text)
	}

	doc.Find("#feature-bullets li span.a-list-item").Each(collect)
	if len(bullets) == 0 {
		doc.Find("#productFactsDesktopExpander ul.a-unordered-list li span.a-list-item").Each(collect)
	}
	if len(bullets) == 0 {
		return []string{"N/A"}
	}
	return bullets
}
