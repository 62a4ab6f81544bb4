package entity

import (
	"github.com/shopspring/decimal"
)

// Variant is one candidate record from an external catalog source
// (one color/size combination of a style).
type Variant struct {
	SKU          string           `json:"sku"`
	UPC          string           `json:"upc"`
	StyleName    string           `json:"style_name"`
	ColorCode    string           `json:"color_code"`
	ColorName    string           `json:"color_name"`
	EyeSize      int              `json:"eye_size"`
	Bridge       int              `json:"bridge"`
	Temple       int              `json:"temple"`
	Wholesale    *decimal.Decimal `json:"wholesale_price"`
	MSRP         *decimal.Decimal `json:"msrp"`
	Availability string           `json:"availability"`
	Material     string           `json:"material"`
	FrameType    string           `json:"frame_type"`

	// Raw carries vendor-specific fields that have no canonical slot.
	Raw map[string]any `json:"raw,omitempty"`
}
