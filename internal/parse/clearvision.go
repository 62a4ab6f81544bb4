package parse

import (
	"context"
	"encoding/json"
	"html"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/optica-labs/frame-intake/constants"
	"github.com/optica-labs/frame-intake/internal/common"
	"github.com/optica-labs/frame-intake/internal/entity"
	"github.com/optica-labs/frame-intake/internal/vendorcfg"
)

// ClearVisionParser reads ClearVision confirmations. Their storefront
// serializes the whole order — catalog fields included — as JSON inside the
// front-end component's data-page attribute. The HTML parser decodes the
// entity-encoded attribute once; some exports arrive double-encoded, so a
// second unescape pass runs when the first decode fails.
type ClearVisionParser struct {
	cfg    vendorcfg.Config
	logger *slog.Logger
}

func (p *ClearVisionParser) Vendor() constants.VendorKey { return constants.VendorClearVision }

type cvPage struct {
	Component string  `json:"component"`
	Props     cvProps `json:"props"`
}

type cvProps struct {
	Order cvOrder  `json:"order"`
	Items []cvItem `json:"items"`
}

type cvOrder struct {
	OrderNumber     string `json:"order_number"`
	CustomerName    string `json:"customer_name"`
	OrderDate       string `json:"order_date"`
	AccountNumber   string `json:"account_number"`
	ReferenceNumber string `json:"reference_number"`
}

type cvItem struct {
	Brand     string           `json:"brand"`
	Style     string           `json:"style"`
	ColorCode string           `json:"color_code"`
	ColorName string           `json:"color_name"`
	Eye       int              `json:"eye"`
	Bridge    int              `json:"bridge"`
	Temple    int              `json:"temple"`
	Qty       int              `json:"qty"`
	SKU       string           `json:"sku"`
	UPC       string           `json:"upc"`
	Wholesale *decimal.Decimal `json:"wholesale"`
	MSRP      *decimal.Decimal `json:"msrp"`
	Material  string           `json:"material"`
	FrameType string           `json:"frame_type"`
}

func (p *ClearVisionParser) Parse(ctx context.Context, payload []byte) (*ParsedOrder, error) {
	raw, err := FindAttr(payload, "data-page")
	if err != nil {
		return nil, common.NewParseError(string(p.Vendor()), "data-page attribute not found", common.Excerpt(string(payload), 400))
	}

	var page cvPage
	if jerr := json.Unmarshal([]byte(raw), &page); jerr != nil {
		// Secondary pass: the attribute itself held entity-encoded JSON.
		decoded := html.UnescapeString(raw)
		if jerr2 := json.Unmarshal([]byte(decoded), &page); jerr2 != nil {
			return nil, common.NewParseError(string(p.Vendor()), "embedded order JSON did not decode", common.Excerpt(raw, 400))
		}
		p.logger.Debug("parse.clearvision.second_pass", "bytes", len(decoded))
	}
	if len(page.Props.Items) == 0 {
		return nil, common.NewParseError(string(p.Vendor()), "embedded order JSON held no items", common.Excerpt(raw, 400))
	}

	order := newOrder(p.Vendor())
	order.OrderNumber = page.Props.Order.OrderNumber
	order.CustomerName = page.Props.Order.CustomerName
	order.OrderDate = page.Props.Order.OrderDate
	order.AccountNumber = page.Props.Order.AccountNumber
	order.ReferenceNumber = page.Props.Order.ReferenceNumber

	items := make([]entity.LineItem, 0, len(page.Props.Items))
	for _, it := range page.Props.Items {
		brand := it.Brand
		if brand == "" {
			brand = firstToken(it.Style)
		}
		item := entity.LineItem{
			Brand:     brand,
			Model:     NormalizeModel(it.Style, p.cfg.KeepModelSuffix),
			ColorCode: it.ColorCode,
			ColorName: it.ColorName,
			EyeSize:   it.Eye,
			Bridge:    it.Bridge,
			Temple:    it.Temple,
			FullSize:  sizeText(it.Eye, it.Bridge, it.Temple),
			Quantity:  maxInt(it.Qty, 1),
			SKU:       it.SKU,
			Material:  it.Material,
			FrameT:    it.FrameType,
			Wholesale: it.Wholesale,
			MSRP:      it.MSRP,
			Status:    constants.ItemStatusParsed,
		}
		if upc := strings.TrimSpace(it.UPC); upc != "" {
			item.UPC = &upc
		}
		items = append(items, item)
	}

	p.logger.Debug("parse.clearvision.ok", "order", order.OrderNumber, "items", len(items))
	return &ParsedOrder{Order: order, Items: items}, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
