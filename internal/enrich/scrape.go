package enrich

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/optica-labs/frame-intake/constants"
	"github.com/optica-labs/frame-intake/internal/entity"
	"github.com/optica-labs/frame-intake/internal/parse"
)

// StockKey is the deterministic lookup key a scrape-backed vendor uses to
// address one frame variant page: "{shortCode}{colorNo}{eyeSize}-{bridge}",
// e.g. MRX104 / 1 / 53 / 18 -> "MRX104153-18".
type StockKey struct {
	ShortCode string
	ColorNo   string
	EyeSize   string
	Bridge    string
}

func (k StockKey) String() string {
	return k.ShortCode + k.ColorNo + k.EyeSize + "-" + k.Bridge
}

// A short code is letters followed by three digits; that fixes the split
// between short code, color number and the two-digit eye size.
var reStockKey = regexp.MustCompile(`^([A-Z]+\d{3})(\d{1,3})(\d{2})-(\d{2})$`)

// ParseStockKey decomposes a stock key back into its four components.
func ParseStockKey(s string) (StockKey, error) {
	m := reStockKey.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(s)))
	if m == nil {
		return StockKey{}, fmt.Errorf("malformed stock key %q", s)
	}
	return StockKey{ShortCode: m[1], ColorNo: m[2], EyeSize: m[3], Bridge: m[4]}, nil
}

// bridgeGuesses is the fallback order when the document omitted the bridge:
// most common adult sizes first, so the expected case resolves in one
// request.
var bridgeGuesses = []int{18, 17, 19, 16, 20}

// ScrapeAdapter resolves a frame against a vendor storefront that has no
// search API: it constructs the stock key, fetches the product page, and
// reads the JSON the page embeds in its data-product attribute.
type ScrapeAdapter struct {
	vendor  constants.VendorKey
	baseURL string
	client  *Client
	logger  *slog.Logger
}

func (a *ScrapeAdapter) Vendor() constants.VendorKey { return a.vendor }
func (a *ScrapeAdapter) Kind() constants.AdapterKind { return constants.AdapterScrape }

type scrapeProduct struct {
	StyleName string          `json:"styleName"`
	ColorCode string          `json:"colorCode"`
	ColorName string          `json:"colorName"`
	Material  string          `json:"material"`
	FrameType string          `json:"frameType"`
	Variants  []scrapeVariant `json:"variants"`
}

type scrapeVariant struct {
	SKU          string           `json:"sku"`
	UPC          string           `json:"upc"`
	Eye          int              `json:"eye"`
	Bridge       int              `json:"bridge"`
	Temple       int              `json:"temple"`
	Wholesale    *decimal.Decimal `json:"wholesale"`
	MSRP         *decimal.Decimal `json:"msrp"`
	Availability string           `json:"availability"`
}

// Lookup fetches the page for the item's stock key. When the bridge is
// unknown it walks the guess list until a page both exists and parses.
func (a *ScrapeAdapter) Lookup(ctx context.Context, item entity.LineItem) (LookupResult, error) {
	if item.Model == "" || item.EyeSize == 0 {
		return LookupResult{Found: false}, nil
	}
	key := StockKey{
		ShortCode: strings.ToUpper(strings.ReplaceAll(item.Model, " ", "")),
		ColorNo:   colorNumber(item.ColorCode),
		EyeSize:   strconv.Itoa(item.EyeSize),
	}

	bridges := bridgeGuesses
	if item.Bridge > 0 {
		bridges = []int{item.Bridge}
	}

	var lastErr error
	for _, bridge := range bridges {
		key.Bridge = strconv.Itoa(bridge)
		res, err := a.fetchKey(ctx, key)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				return LookupResult{}, err
			}
			// A failed guess is not the end of the lookup; remember it and
			// move on.
			lastErr = err
			continue
		}
		if res.Found {
			return res, nil
		}
	}
	if lastErr != nil {
		return LookupResult{}, fmt.Errorf("%s scrape lookup %s: %w", a.vendor, key.ShortCode, lastErr)
	}
	return LookupResult{Found: false, Source: a.baseURL + "/" + key.String()}, nil
}

func (a *ScrapeAdapter) fetchKey(ctx context.Context, key StockKey) (LookupResult, error) {
	u := a.baseURL + "/" + key.String()

	body, status, err := a.client.Get(ctx, u)
	if err != nil {
		return LookupResult{}, err
	}
	if status == http.StatusNotFound {
		return LookupResult{Found: false, Source: u}, nil
	}

	raw, err := parse.FindAttr(body, "data-product")
	if err != nil {
		return LookupResult{}, fmt.Errorf("product JSON attribute missing: %w", err)
	}
	var product scrapeProduct
	if err := json.Unmarshal([]byte(raw), &product); err != nil {
		return LookupResult{}, fmt.Errorf("decode product JSON: %w", err)
	}
	if len(product.Variants) == 0 {
		return LookupResult{Found: false, Source: u}, nil
	}

	variants := make([]entity.Variant, 0, len(product.Variants))
	for _, v := range product.Variants {
		variants = append(variants, entity.Variant{
			SKU:          v.SKU,
			UPC:          v.UPC,
			StyleName:    product.StyleName,
			ColorCode:    product.ColorCode,
			ColorName:    product.ColorName,
			EyeSize:      v.Eye,
			Bridge:       v.Bridge,
			Temple:       v.Temple,
			Wholesale:    v.Wholesale,
			MSRP:         v.MSRP,
			Availability: v.Availability,
			Material:     product.Material,
			FrameType:    product.FrameType,
			Raw:          map[string]any{"stock_key": key.String()},
		})
	}

	a.logger.Debug("enrich.scrape.candidates", "vendor", a.vendor, "key", key.String(), "count", len(variants))
	return LookupResult{Found: true, Candidates: variants, Source: u}, nil
}

// colorNumber reduces a color code to the bare number the stock key wants:
// "001" -> "1", "X19" -> "19" stays untouched when non-numeric.
func colorNumber(code string) string {
	trimmed := strings.TrimLeft(strings.TrimSpace(code), "0")
	if trimmed == "" && code != "" {
		return "0"
	}
	if _, err := strconv.Atoi(trimmed); err != nil {
		return strings.TrimSpace(code)
	}
	return trimmed
}
