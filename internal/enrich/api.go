package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/optica-labs/frame-intake/constants"
	"github.com/optica-labs/frame-intake/internal/entity"
)

// APIAdapter queries a vendor's JSON search API. The response nests
// product → color group → size; the adapter flattens it into one candidate
// variant per color/size combination.
type APIAdapter struct {
	vendor  constants.VendorKey
	baseURL string
	client  *Client
	logger  *slog.Logger
}

func (a *APIAdapter) Vendor() constants.VendorKey { return a.vendor }
func (a *APIAdapter) Kind() constants.AdapterKind { return constants.AdapterAPI }

type apiProduct struct {
	Brand      string          `json:"brand"`
	StyleName  string          `json:"styleName"`
	Material   string          `json:"material"`
	FrameType  string          `json:"frameType"`
	ColorGroup []apiColorGroup `json:"colorGroups"`
}

type apiColorGroup struct {
	ColorCode string    `json:"colorCode"`
	ColorName string    `json:"colorName"`
	Sizes     []apiSize `json:"sizes"`
}

type apiSize struct {
	SKU          string           `json:"sku"`
	UPC          string           `json:"upc"`
	Eye          int              `json:"eye"`
	Bridge       int              `json:"bridge"`
	Temple       int              `json:"temple"`
	Wholesale    *decimal.Decimal `json:"wholesale"`
	MSRP         *decimal.Decimal `json:"msrp"`
	Availability string           `json:"availability"`
}

// Lookup searches by UPC when the item carries one, otherwise by model.
func (a *APIAdapter) Lookup(ctx context.Context, item entity.LineItem) (LookupResult, error) {
	q := url.Values{}
	if item.UPC != nil && *item.UPC != "" {
		q.Set("upc", *item.UPC)
	} else {
		q.Set("style", item.Model)
	}
	u := a.baseURL + "/search?" + q.Encode()

	body, status, err := a.client.Get(ctx, u)
	if err != nil {
		return LookupResult{}, fmt.Errorf("%s api lookup: %w", a.vendor, err)
	}
	if status == http.StatusNotFound {
		return LookupResult{Found: false, Source: u}, nil
	}

	var products []apiProduct
	if err := json.Unmarshal(body, &products); err != nil {
		return LookupResult{}, fmt.Errorf("%s api lookup: decode response: %w", a.vendor, err)
	}

	variants := flattenProducts(products)
	if len(variants) == 0 {
		// An empty result set is the API's way of saying not found.
		return LookupResult{Found: false, Source: u}, nil
	}

	a.logger.Debug("enrich.api.candidates", "vendor", a.vendor, "model", item.Model, "count", len(variants))
	return LookupResult{Found: true, Candidates: variants, Source: u}, nil
}

func flattenProducts(products []apiProduct) []entity.Variant {
	var out []entity.Variant
	for _, p := range products {
		for _, cg := range p.ColorGroup {
			for _, s := range cg.Sizes {
				out = append(out, entity.Variant{
					SKU:          s.SKU,
					UPC:          s.UPC,
					StyleName:    p.StyleName,
					ColorCode:    cg.ColorCode,
					ColorName:    cg.ColorName,
					EyeSize:      s.Eye,
					Bridge:       s.Bridge,
					Temple:       s.Temple,
					Wholesale:    s.Wholesale,
					MSRP:         s.MSRP,
					Availability: s.Availability,
					Material:     p.Material,
					FrameType:    p.FrameType,
					Raw: map[string]any{
						"brand": p.Brand,
						"style": p.StyleName,
					},
				})
			}
		}
	}
	return out
}
