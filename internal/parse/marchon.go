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

// MarchonParser reads Marchon confirmation emails: templated HTML with a
// metadata table and an item table splitting the size across Eye/Bridge/
// Temple columns. Catalog data is not embedded; these items get enriched.
type MarchonParser struct {
	cfg    vendorcfg.Config
	logger *slog.Logger
}

func (p *MarchonParser) Vendor() constants.VendorKey { return constants.VendorMarchon }

func (p *MarchonParser) Parse(ctx context.Context, payload []byte) (*ParsedOrder, error) {
	tables, err := ExtractTables(payload)
	if err != nil {
		return nil, common.NewParseError(string(p.Vendor()), "document is not parseable HTML", common.Excerpt(string(payload), 200))
	}

	order := newOrder(p.Vendor())
	var items []entity.LineItem

	for _, t := range tables {
		if t.HeaderIndex("style") >= 0 {
			items = append(items, p.itemsFromTable(t)...)
			continue
		}
		for _, row := range t.Rows {
			if len(row) == 2 {
				applyOrderMeta(&order, strings.TrimSuffix(row[0], ":"), row[1])
			}
		}
	}

	if len(items) == 0 {
		return nil, common.NewParseError(string(p.Vendor()), "no item table found", common.Excerpt(string(payload), 400))
	}

	p.logger.Debug("parse.marchon.ok", "order", order.OrderNumber, "items", len(items))
	return &ParsedOrder{Order: order, Items: items}, nil
}

func (p *MarchonParser) itemsFromTable(t Table) []entity.LineItem {
	var (
		ciStyle     = t.HeaderIndex("style")
		ciColorCode = t.HeaderIndex("color code")
		ciColorName = t.HeaderIndex("color name")
		ciEye       = t.HeaderIndex("eye")
		ciBridge    = t.HeaderIndex("bridge")
		ciTemple    = t.HeaderIndex("temple")
		ciQty       = t.HeaderIndex("qty")
		ciSKU       = t.HeaderIndex("sku")
	)

	items := make([]entity.LineItem, 0, len(t.Rows))
	for _, row := range t.Rows {
		style := Cell(row, ciStyle)
		if style == "" {
			continue
		}
		eye := atoiSafe(Cell(row, ciEye))
		bridge := atoiSafe(Cell(row, ciBridge))
		temple := atoiSafe(Cell(row, ciTemple))

		items = append(items, entity.LineItem{
			Brand:     marchonBrand(style),
			Model:     NormalizeModel(style, p.cfg.KeepModelSuffix),
			ColorCode: Cell(row, ciColorCode),
			ColorName: Cell(row, ciColorName),
			EyeSize:   eye,
			Bridge:    bridge,
			Temple:    temple,
			FullSize:  sizeText(eye, bridge, temple),
			Quantity:  ParseQuantity(Cell(row, ciQty)),
			SKU:       Cell(row, ciSKU),
			Status:    constants.ItemStatusParsed,
		})
	}
	return items
}

func marchonBrand(style string) string {
	upper := strings.ToUpper(style)
	switch {
	case strings.HasPrefix(upper, "FLEXON"):
		return "FLEXON"
	case strings.HasPrefix(upper, "CK"):
		return "CALVIN KLEIN"
	case strings.HasPrefix(upper, "NIKE"):
		return "NIKE"
	default:
		return "MARCHON"
	}
}
