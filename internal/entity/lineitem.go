package entity

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/optica-labs/frame-intake/constants"
)

// LineItem is one frame line on an order. Every LineItem belongs to exactly
// one Order. Enrichment fills the nullable catalog fields and moves Status
// to a terminal state; it never clears parsed data.
type LineItem struct {
	Brand     string `json:"brand"`
	Model     string `json:"model"`
	ColorName string `json:"color_name"`
	ColorCode string `json:"color_code"`

	// Sizes in millimeters; 0 means the document did not state the value.
	EyeSize  int    `json:"eye_size"`
	Bridge   int    `json:"bridge"`
	Temple   int    `json:"temple"`
	FullSize string `json:"full_size"`

	Quantity int    `json:"quantity"`
	SKU      string `json:"sku"`
	Material string `json:"material"`
	FrameT   string `json:"frame_type"`

	UPC       *string          `json:"upc"`
	Wholesale *decimal.Decimal `json:"wholesale_price"`
	MSRP      *decimal.Decimal `json:"msrp"`

	APIVerified      bool                 `json:"api_verified"`
	ConfidenceScore  int                  `json:"confidence_score"`
	ValidationReason string               `json:"validation_reason"`
	Status           constants.ItemStatus `json:"status"`
	EnrichedData     map[string]any       `json:"enriched_data,omitempty"`
}

// ProductKey derives the normalized dedup/cache key for this item.
// Two items with the same key must receive identical enrichment results
// within one pipeline run.
func (li *LineItem) ProductKey() string {
	return ProductKey(li.Brand, li.Model, li.ColorCode, li.EyeSize)
}

// ProductKey normalizes (brand, model, color code, eye size) into the
// canonical cache key.
func ProductKey(brand, model, colorCode string, eyeSize int) string {
	norm := func(s string) string {
		return strings.Join(strings.Fields(strings.ToUpper(strings.TrimSpace(s))), " ")
	}
	return fmt.Sprintf("%s|%s|%s|%d", norm(brand), norm(model), norm(colorCode), eyeSize)
}

// HasCatalogData reports whether the document itself already supplied the
// authoritative catalog fields, making an external lookup redundant.
func (li *LineItem) HasCatalogData() bool {
	return li.UPC != nil && *li.UPC != "" && li.Wholesale != nil
}

// SizeString renders the canonical "eye/bridge temple" size, preferring the
// literal size text when the document carried one.
func (li *LineItem) SizeString() string {
	if li.FullSize != "" {
		return li.FullSize
	}
	if li.EyeSize == 0 {
		return ""
	}
	s := fmt.Sprintf("%d", li.EyeSize)
	if li.Bridge > 0 {
		s = fmt.Sprintf("%s/%d", s, li.Bridge)
	}
	if li.Temple > 0 {
		s = fmt.Sprintf("%s %d", s, li.Temple)
	}
	return s
}
