package amazon

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const maxImages = 7

var (
	// imageScriptMarker identifies inline scripts carrying gallery data.
	imageScriptMarker = regexp.MustCompile(`colorImages|imageBlockNR|ImageBlockATF|imageGalleryData|altImages`)

	hiResPattern = regexp.MustCompile(`"hiRes":"(https://[^"]+?)"`)
	largePattern = regexp.MustCompile(`"large":"(https://[^"]+?)"`)
	mainPattern  = regexp.MustCompile(`"main":\s*{[^}]*"(https://m\.media-amazon\.com/images/I/[^"]+?)"`)

	// sizeToken is the size suffix in CDN image filenames; rewriting it
	// requests the full-resolution variant.
	sizeToken = regexp.MustCompile(`\._[A-Z0-9_]+\.`)
)

// junkFragments mark sprites, UI chrome and tracking pixels.
var junkFragments = []string{
	"sprite", "icon", "logo", "arrow", "pixel", "transparent",
	"badge", "star", "prime", "nav-", "btn-", "button", "1x1", "spacer",
}

var imageDomains = []string{
	"images-na.ssl-images-amazon.com",
	"m.media-amazon.com",
	"images-amazon.com",
}

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}

// isProductImage filters gallery candidates down to real product shots
// hosted on the image CDNs.
func isProductImage(url string) bool {
	if url == "" || !strings.HasPrefix(url, "http") {
		return false
	}
	lower := strings.ToLower(url)
	for _, junk := range junkFragments {
		if strings.Contains(lower, junk) {
			return false
		}
	}
	onDomain := false
	for _, domain := range imageDomains {
		if strings.Contains(lower, domain) {
			onDomain = true
			break
		}
	}
	if !onDomain {
		return false
	}
	for _, ext := range imageExtensions {
		if strings.Contains(lower, ext) {
			return true
		}
	}
	return strings.Contains(url, "/images/I/")
}

// upgradeResolution rewrites the CDN size token to the large variant.
func upgradeResolution(url string) string {
	return sizeToken.ReplaceAllString(url, "._SL1500_.")
}

// imageSet accumulates candidate URLs in discovery order. Candidates
// are deduplicated on the original URL and again on the upgraded form,
// since two size variants of one image collapse to the same URL after
// the resolution rewrite.
type imageSet struct {
	urls []string
	seen map[string]bool
}

func newImageSet() *imageSet {
	return &imageSet{seen: make(map[string]bool)}
}

func (s *imageSet) upgrade(url string) (string, bool) {
	url = strings.TrimSpace(url)
	if url == "" || s.seen[url] || !isProductImage(url) {
		return "", false
	}
	upgraded := upgradeResolution(url)
	if s.seen[upgraded] {
		return "", false
	}
	s.seen[url] = true
	s.seen[upgraded] = true
	return upgraded, true
}

func (s *imageSet) add(url string) {
	if upgraded, ok := s.upgrade(url); ok {
		s.urls = append(s.urls, upgraded)
	}
}

func (s *imageSet) addFront(url string) {
	if upgraded, ok := s.upgrade(url); ok {
		s.urls = append([]string{upgraded}, s.urls...)
	}
}

// extractImages gathers gallery URLs from inline script data, dynamic
// image attributes and CDN img tags, with the hero image forced to the
// front. The result is capped at maxImages.
func extractImages(doc *goquery.Document) []string {
	set := newImageSet()

	doc.Find("script").Each(func(_ int, script *goquery.Selection) {
		content := script.Text()
		if !imageScriptMarker.MatchString(content) {
			return
		}
		for _, pattern := range []*regexp.Regexp{hiResPattern, largePattern, mainPattern} {
			for _, m := range pattern.FindAllStringSubmatch(content, -1) {
				set.add(m[1])
			}
		}
	})

	doc.Find("img[data-a-dynamic-image]").Each(func(_ int, img *goquery.Selection) {
		raw, ok := img.Attr("data-a-dynamic-image")
		if !ok {
			return
		}
		var variants map[string][]float64
		if err := json.Unmarshal([]byte(raw), &variants); err != nil {
			return
		}
		for url := range variants {
			set.add(url)
		}
	})

	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		if src, ok := img.Attr("src"); ok {
			set.add(src)
		}
	})

	if hiRes, ok := doc.Find("#landingImage").Attr("data-old-hires"); ok {
		set.addFront(hiRes)
	}

	if len(set.urls) > maxImages {
		return set.urls[:maxImages]
	}
	if set.urls == nil {
		return []string{}
	}
	return set.urls
}
