package parse

import (
	"context"
	"log/slog"
	"strings"

	"github.com/optica-labs/frame-intake/constants"
	"github.com/optica-labs/frame-intake/internal/common"
	"github.com/optica-labs/frame-intake/internal/entity"
	"github.com/optica-labs/frame-intake/internal/vendorcfg"
)

// LuxotticaParser reads Luxottica confirmation emails: templated HTML with
// a key/value metadata table and an item table that already carries UPC,
// wholesale and MSRP. These orders need no external enrichment.
type LuxotticaParser struct {
	cfg    vendorcfg.Config
	logger *slog.Logger
}

func (p *LuxotticaParser) Vendor() constants.VendorKey { return constants.VendorLuxottica }

func (p *LuxotticaParser) Parse(ctx context.Context, payload []byte) (*ParsedOrder, error) {
	tables, err := ExtractTables(payload)
	if err != nil {
		return nil, common.NewParseError(string(p.Vendor()), "document is not parseable HTML", common.Excerpt(string(payload), 200))
	}

	order := newOrder(p.Vendor())
	var items []entity.LineItem

	for _, t := range tables {
		if t.HeaderIndex("model") >= 0 {
			items = append(items, p.itemsFromTable(t)...)
			continue
		}
		// Two-column tables without headers hold the order metadata.
		for _, row := range t.Rows {
			if len(row) == 2 {
				applyOrderMeta(&order, strings.TrimSuffix(row[0], ":"), row[1])
			}
		}
	}

	if len(items) == 0 {
		return nil, common.NewParseError(string(p.Vendor()), "no item table found", common.Excerpt(string(payload), 400))
	}

	p.logger.Debug("parse.luxottica.ok", "order", order.OrderNumber, "items", len(items))
	return &ParsedOrder{Order: order, Items: items}, nil
}

func (p *LuxotticaParser) itemsFromTable(t Table) []entity.LineItem {
	var (
		ciModel     = t.HeaderIndex("model")
		ciColorCode = t.HeaderIndex("color code")
		ciColorName = t.HeaderIndex("color name")
		ciSize      = t.HeaderIndex("size")
		ciQty       = t.HeaderIndex("qty")
		ciUPC       = t.HeaderIndex("upc")
		ciWholesale = t.HeaderIndex("wholesale")
		ciMSRP      = t.HeaderIndex("msrp")
	)

	items := make([]entity.LineItem, 0, len(t.Rows))
	for _, row := range t.Rows {
		model := Cell(row, ciModel)
		if model == "" {
			continue
		}
		eye, bridge, temple, _ := ParseSizeTriplet(Cell(row, ciSize))

		item := entity.LineItem{
			Brand:     luxotticaBrand(model),
			Model:     NormalizeModel(model, p.cfg.KeepModelSuffix),
			ColorCode: Cell(row, ciColorCode),
			ColorName: Cell(row, ciColorName),
			EyeSize:   eye,
			Bridge:    bridge,
			Temple:    temple,
			FullSize:  sizeText(eye, bridge, temple),
			Quantity:  ParseQuantity(Cell(row, ciQty)),
			Wholesale: ParseMoney(Cell(row, ciWholesale)),
			MSRP:      ParseMoney(Cell(row, ciMSRP)),
			Status:    constants.ItemStatusParsed,
		}
		if upc := strings.TrimSpace(Cell(row, ciUPC)); upc != "" {
			item.UPC = &upc
		}
		items = append(items, item)
	}
	return items
}

// luxotticaBrand expands the house-brand model prefix.
func luxotticaBrand(model string) string {
	switch {
	case strings.HasPrefix(model, "RB"), strings.HasPrefix(model, "RX"):
		return "RAY-BAN"
	case strings.HasPrefix(model, "OX"), strings.HasPrefix(model, "OO"):
		return "OAKLEY"
	case strings.HasPrefix(model, "VO"):
		return "VOGUE"
	default:
		return "LUXOTTICA"
	}
}
