package base

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Retry policy for product page fetches. Amazon throttles aggressively,
// so we keep attempts low and wait between them.
const (
	maxAttempts      = 2
	baseTimeout      = 15 * time.Second
	timeoutIncrement = 10 * time.Second
)

// User-facing error messages for fetch failures. The server forwards
// these verbatim inside a failed result record.
const (
	ErrMsgTimeout     = "Please try again. The product page is taking too long to load."
	ErrMsgConnection  = "Please try again. Unable to connect to Amazon."
	ErrMsgAllAttempts = "Please try again. All attempts failed after 2 retries."
)

// Result is a successfully fetched page.
type Result struct {
	Body     []byte
	FinalURL string
	Status   int
}

// Fetcher downloads product pages with browser-like headers, seeded
// session cookies and bounded retries.
type Fetcher struct {
	Client *http.Client

	// delay sleeps between attempts; overridable in tests.
	delay func(ctx context.Context, attempt int) error

	// timeoutFor returns the per-attempt deadline; overridable in tests.
	timeoutFor func(attempt int) time.Duration
}

// NewFetcher returns a Fetcher with the default client and backoff.
func NewFetcher() *Fetcher {
	return &Fetcher{
		Client:     &http.Client{},
		delay:      jitteredDelay,
		timeoutFor: attemptTimeout,
	}
}

// attemptTimeout grows the deadline on each retry so a slow page gets a
// longer second chance.
func attemptTimeout(attempt int) time.Duration {
	return baseTimeout + time.Duration(attempt)*timeoutIncrement
}

// jitteredDelay sleeps a random interval before the attempt: 1-3s ahead
// of the first request, 2-5s before a retry.
func jitteredDelay(ctx context.Context, attempt int) error {
	var d time.Duration
	if attempt == 0 {
		d = time.Duration(1000+rand.Intn(2000)) * time.Millisecond
	} else {
		d = time.Duration(2000+rand.Intn(3000)) * time.Millisecond
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NormalizeURL fixes missing or mangled schemes ("https:/www..." shows
// up when URLs are copied out of chat apps).
func NormalizeURL(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if strings.HasPrefix(rawURL, "//") {
		return "https:" + rawURL
	}
	if strings.HasPrefix(rawURL, "https:/") && !strings.HasPrefix(rawURL, "https://") {
		rawURL = "https://" + strings.TrimPrefix(rawURL, "https:/")
	}
	if strings.HasPrefix(rawURL, "http:/") && !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		rawURL = "http://" + strings.TrimPrefix(rawURL, "http:/")
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		rawURL = "https://" + rawURL
	}
	return rawURL
}

// Fetch downloads the page at rawURL, retrying once on timeouts,
// connection failures and non-200 responses. A failure on the final
// attempt is reported with the status code embedded in the error
// message.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Result, error) {
	rawURL = NormalizeURL(rawURL)
	if _, err := url.Parse(rawURL); err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := f.delay(ctx, attempt); err != nil {
			return nil, err
		}

		res, retryable, err := f.fetchOnce(ctx, rawURL, attempt)
		if err == nil {
			return res, nil
		}
		lastErr = err

		if !retryable || ctx.Err() != nil {
			return nil, lastErr
		}
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, errors.New(ErrMsgAllAttempts)
}

// fetchOnce performs a single attempt. The bool reports whether the
// failure is worth retrying: timeouts, connection errors and bad HTTP
// statuses all are; only a malformed request is terminal.
func (f *Fetcher) fetchOnce(ctx context.Context, rawURL string, attempt int) (*Result, bool, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, f.timeoutFor(attempt))
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, false, err
	}
	setBrowserHeaders(req)
	seedCookies(req)

	resp, err := f.Client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || attemptCtx.Err() == context.DeadlineExceeded {
			return nil, true, errors.New(ErrMsgTimeout)
		}
		return nil, true, errors.New(ErrMsgConnection)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, true, errors.New(ErrMsgConnection)
		}
		finalURL := rawURL
		if resp.Request != nil && resp.Request.URL != nil {
			finalURL = resp.Request.URL.String()
		}
		return &Result{Body: body, FinalURL: finalURL, Status: resp.StatusCode}, true, nil
	}

	// This message text ships verbatim in failed result records, so it
	// stays capitalized and unwrapped.
	return nil, true, fmt.Errorf("Failed to fetch page. Status code: %d", resp.StatusCode)
}

// setBrowserHeaders sends a desktop Chrome fingerprint. Bare client
// requests get served a robot check page.
func setBrowserHeaders(req *http.Request) {
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	// Accept-Encoding is left to the transport so gzip bodies are
	// decompressed transparently.
	req.Header.Set("DNT", "1")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Sec-Fetch-Site", "none")
	req.Header.Set("Sec-Fetch-User", "?1")
	req.Header.Set("Cache-Control", "max-age=0")
}

// seedCookies primes a fake session so the first response is a product
// page rather than a locale interstitial.
func seedCookies(req *http.Request) {
	req.AddCookie(&http.Cookie{Name: "session-id", Value: "000-0000000-0000000"})
	req.AddCookie(&http.Cookie{Name: "i18n-prefs", Value: "INR"})
	req.AddCookie(&http.Cookie{Name: "lc-acbin", Value: "en_IN"})
}

// FetchDocument fetches the page and parses it into a goquery document.
func (f *Fetcher) FetchDocument(ctx context.Context, rawURL string) (*goquery.Document, *Result, error) {
	res, err := f.Fetch(ctx, rawURL)
	if err != nil {
		return nil, nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(res.Body)))
	if err != nil {
		return nil, nil, fmt.Errorf("parsing page: %w", err)
	}
	return doc, res, nil
}

// SetDelayFunc replaces the inter-attempt delay. Tests use this to avoid
// real sleeps.
func (f *Fetcher) SetDelayFunc(fn func(ctx context.Context, attempt int) error) {
	f.delay = fn
}

// SetTimeoutFunc replaces the per-attempt deadline schedule.
func (f *Fetcher) SetTimeoutFunc(fn func(attempt int) time.Duration) {
	f.timeoutFor = fn
}
