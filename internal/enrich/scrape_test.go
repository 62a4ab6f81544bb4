package enrich

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optica-labs/frame-intake/constants"
	"github.com/optica-labs/frame-intake/internal/common"
	"github.com/optica-labs/frame-intake/internal/entity"
	"github.com/optica-labs/frame-intake/internal/vendorcfg"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testClient(maxRetries int) *Client {
	return NewClient(testLogger(), common.HTTPConfig{
		RequestTimeout: 5 * time.Second,
		MaxRetries:     maxRetries,
		RetryBackoff:   time.Millisecond,
		UserAgent:      "frame-intake-test",
	})
}

func TestStockKeyRoundTrip(t *testing.T) {
	key, err := ParseStockKey("MRX104153-18")
	require.NoError(t, err)
	assert.Equal(t, StockKey{ShortCode: "MRX104", ColorNo: "1", EyeSize: "53", Bridge: "18"}, key)
	assert.Equal(t, "MRX104153-18", key.String())
}

func TestParseStockKeyToleratesCase(t *testing.T) {
	key, err := ParseStockKey("  mrx104153-18 ")
	require.NoError(t, err)
	assert.Equal(t, "MRX104", key.ShortCode)
}

func TestParseStockKeyRejectsMalformed(t *testing.T) {
	for _, s := range []string{"", "104-18", "MRX104153", "MRX10415318"} {
		_, err := ParseStockKey(s)
		assert.Error(t, err, "input %q", s)
	}
}

func TestColorNumber(t *testing.T) {
	assert.Equal(t, "1", colorNumber("001"))
	assert.Equal(t, "0", colorNumber("000"))
	assert.Equal(t, "X19", colorNumber("X19"), "non-numeric codes pass through")
}

const scrapeProductPage = `<html><body>
<div data-product='{"styleName":"MRX104","colorCode":"1","colorName":"BLACK","material":"stainless","frameType":"full-rim","variants":[{"sku":"MRX104-1-53","upc":"883121045316","eye":53,"bridge":17,"temple":140,"wholesale":39.95,"msrp":"99.95","availability":"in stock"}]}'></div>
</body></html>`

func scrapeAdapterFor(t *testing.T, baseURL string, retries int) Adapter {
	t.Helper()
	a, err := ForVendor(vendorcfg.Config{
		VendorKey:     constants.VendorEuropa,
		AdapterKind:   constants.AdapterScrape,
		ScrapeBaseURL: baseURL,
	}, testClient(retries), testLogger())
	require.NoError(t, err)
	return a
}

// The bridge is unknown, so the adapter walks the guess list in its fixed
// order until a page answers; 18 misses, 17 hits.
func TestScrapeLookupGuessesBridge(t *testing.T) {
	var mu sync.Mutex
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		if r.URL.Path == "/MRX104153-17" {
			_, _ = w.Write([]byte(scrapeProductPage))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	a := scrapeAdapterFor(t, srv.URL, 3)
	item := entity.LineItem{Model: "MRX104", ColorCode: "1", EyeSize: 53}

	res, err := a.Lookup(context.Background(), item)
	require.NoError(t, err)
	require.True(t, res.Found)
	require.Len(t, res.Candidates, 1)

	v := res.Candidates[0]
	assert.Equal(t, "MRX104-1-53", v.SKU)
	assert.Equal(t, "883121045316", v.UPC)
	assert.Equal(t, 17, v.Bridge)
	require.NotNil(t, v.Wholesale)
	assert.Equal(t, "39.95", v.Wholesale.StringFixed(2))
	require.NotNil(t, v.MSRP)
	assert.Equal(t, "99.95", v.MSRP.StringFixed(2))

	assert.Equal(t, []string{"/MRX104153-18", "/MRX104153-17"}, paths)
}

func TestScrapeLookupKnownBridgeFetchesOnce(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		mu.Unlock()
		assert.Equal(t, "/MRX104153-17", r.URL.Path)
		_, _ = w.Write([]byte(scrapeProductPage))
	}))
	defer srv.Close()

	a := scrapeAdapterFor(t, srv.URL, 3)
	item := entity.LineItem{Model: "MRX104", ColorCode: "1", EyeSize: 53, Bridge: 17}

	res, err := a.Lookup(context.Background(), item)
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, 1, calls)
}

func TestScrapeLookupAllGuessesMissIsNotFound(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		mu.Unlock()
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	a := scrapeAdapterFor(t, srv.URL, 3)
	res, err := a.Lookup(context.Background(), entity.LineItem{Model: "MRX104", ColorCode: "1", EyeSize: 53})
	require.NoError(t, err, "a confirmed miss is an outcome, not an error")
	assert.False(t, res.Found)
	assert.Equal(t, len(bridgeGuesses), calls)
}

func TestScrapeLookupWithoutSizeSkipsNetwork(t *testing.T) {
	a := scrapeAdapterFor(t, "http://127.0.0.1:0", 1)
	res, err := a.Lookup(context.Background(), entity.LineItem{Model: "MRX104"})
	require.NoError(t, err)
	assert.False(t, res.Found)
}
