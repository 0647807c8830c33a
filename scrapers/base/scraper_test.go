package base

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noDelay(ctx context.Context, attempt int) error { return nil }

func newTestFetcher() *Fetcher {
	f := NewFetcher()
	f.SetDelayFunc(noDelay)
	return f
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"mangled https", "https:/www.amazon.in/dp/B0ABC", "https://www.amazon.in/dp/B0ABC"},
		{"mangled http", "http:/www.amazon.in/dp/B0ABC", "http://www.amazon.in/dp/B0ABC"},
		{"missing scheme", "www.amazon.in/dp/B0ABC", "https://www.amazon.in/dp/B0ABC"},
		{"scheme relative", "//www.amazon.in/dp/B0ABC", "https://www.amazon.in/dp/B0ABC"},
		{"already valid", "https://www.amazon.in/dp/B0ABC", "https://www.amazon.in/dp/B0ABC"},
		{"surrounding whitespace", "  https://www.amazon.in/dp/B0ABC  ", "https://www.amazon.in/dp/B0ABC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeURL(tt.input))
		})
	}
}

func TestFetchSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		assert.Equal(t, "en-US,en;q=0.9", r.Header.Get("Accept-Language"))

		cookies := map[string]string{}
		for _, c := range r.Cookies() {
			cookies[c.Name] = c.Value
		}
		assert.Equal(t, "000-0000000-0000000", cookies["session-id"])
		assert.Equal(t, "INR", cookies["i18n-prefs"])
		assert.Equal(t, "en_IN", cookies["lc-acbin"])

		w.Write([]byte("<html>ok</html>"))
	}))
	defer server.Close()

	res, err := newTestFetcher().Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "<html>ok</html>", string(res.Body))
	assert.Contains(t, res.FinalURL, server.URL)
}

func TestFetchRetriesOn503(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("second attempt"))
	}))
	defer server.Close()

	res, err := newTestFetcher().Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "second attempt", string(res.Body))
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestFetchRetriesOnBadStatus(t *testing.T) {
	// Any non-200 gets a second attempt, not just 503.
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte("second attempt"))
	}))
	defer server.Close()

	res, err := newTestFetcher().Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "second attempt", string(res.Body))
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestFetchBadStatusExhaustsAttempts(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestFetcher().Fetch(context.Background(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Status code: 404")
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestFetchTimesOutOnBothAttempts(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		select {
		case <-time.After(5 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer server.Close()

	f := newTestFetcher()
	f.SetTimeoutFunc(func(attempt int) time.Duration { return 50 * time.Millisecond })

	_, err := f.Fetch(context.Background(), server.URL)
	require.Error(t, err)
	assert.Equal(t, ErrMsgTimeout, err.Error())
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestFetchConnectionError(t *testing.T) {
	// Closed server: connection refused on every attempt.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newTestFetcher().Fetch(context.Background(), url)
	require.Error(t, err)
	assert.Equal(t, ErrMsgConnection, err.Error())
}

func TestFetchDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><span id="productTitle">Hello</span></body></html>`))
	}))
	defer server.Close()

	doc, res, err := newTestFetcher().FetchDocument(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "Hello", doc.Find("#productTitle").Text())
}

func TestFetchCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("unreachable"))
	}))
	defer server.Close()

	_, err := newTestFetcher().Fetch(ctx, server.URL)
	require.Error(t, err)
}
