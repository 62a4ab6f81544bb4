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

// LamyParser reads L'Amy America confirmation emails. Their item table uses
// optician column names: A (eye), DBL (bridge), Temple, Pieces.
type LamyParser struct {
	cfg    vendorcfg.Config
	logger *slog.Logger
}

func (p *LamyParser) Vendor() constants.VendorKey { return constants.VendorLamy }

func (p *LamyParser) Parse(ctx context.Context, payload []byte) (*ParsedOrder, error) {
	tables, err := ExtractTables(payload)
	if err != nil {
		return nil, common.NewParseError(string(p.Vendor()), "document is not parseable HTML", common.Excerpt(string(payload), 200))
	}

	order := newOrder(p.Vendor())
	var items []entity.LineItem

	for _, t := range tables {
		if t.HeaderIndex("style") >= 0 && t.HeaderIndex("dbl") >= 0 {
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

	p.logger.Debug("parse.lamy.ok", "order", order.OrderNumber, "items", len(items))
	return &ParsedOrder{Order: order, Items: items}, nil
}

func (p *LamyParser) itemsFromTable(t Table) []entity.LineItem {
	var (
		ciStyle   = t.HeaderIndex("style")
		ciColorNo = t.HeaderIndex("color #")
		ciColor   = t.HeaderIndex("color")
		ciEye     = t.HeaderIndex("a")
		ciBridge  = t.HeaderIndex("dbl")
		ciTemple  = t.HeaderIndex("temple")
		ciPieces  = t.HeaderIndex("pieces")
	)
	// "Color #" also matches the bare "color" search; keep them distinct.
	if ciColor == ciColorNo {
		ciColor = -1
		for i, h := range t.Headers {
			if i != ciColorNo && strings.Contains(strings.ToLower(h), "color") {
				ciColor = i
				break
			}
		}
	}

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
			Brand:     lamyBrand(style),
			Model:     NormalizeModel(style, p.cfg.KeepModelSuffix),
			ColorCode: Cell(row, ciColorNo),
			ColorName: Cell(row, ciColor),
			EyeSize:   eye,
			Bridge:    bridge,
			Temple:    temple,
			FullSize:  sizeText(eye, bridge, temple),
			Quantity:  ParseQuantity(Cell(row, ciPieces)),
			Status:    constants.ItemStatusParsed,
		})
	}
	return items
}

func lamyBrand(style string) string {
	upper := strings.ToUpper(style)
	switch {
	case strings.HasPrefix(upper, "CU CHAMPION"), strings.HasPrefix(upper, "CHAMPION"):
		return "CHAMPION"
	case strings.HasPrefix(upper, "SL"):
		return "SONIA RYKIEL"
	default:
		return "L'AMY"
	}
}
