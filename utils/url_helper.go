package utils

import (
	"net/http"
	"time"
)

const resolveUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// ResolveShortenedURL follows redirects to find the final URL. Short
// links (amzn.in, bit.ly) expand to the canonical product page. HEAD is
// tried first; some servers block it, so GET is the fallback.
func ResolveShortenedURL(url string) (string, error) {
	client := &http.Client{
		Timeout: 15 * time.Second,
	}

	req, err := http.NewRequest(http.MethodHead, url, nil)
	if err != nil {
		return url, err
	}
	req.Header.Set("User-Agent", resolveUserAgent)

	resp, err := client.Do(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		req, err = http.NewRequest(http.MethodGet, url, nil)
		if err != nil {
			return url, err
		}
		req.Header.Set("User-Agent", resolveUserAgent)

		resp, err = client.Do(req)
		if err != nil {
			return url, err
		}
	}
	defer resp.Body.Close()

	return resp.Request.URL.String(), nil
}
