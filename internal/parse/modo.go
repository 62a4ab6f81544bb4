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

// ModoParser reads MODO confirmation emails: a single item table with a
// combined "Frame" cell ("MODO 4509 / BLACK") and a dash-joined size.
type ModoParser struct {
	cfg    vendorcfg.Config
	logger *slog.Logger
}

func (p *ModoParser) Vendor() constants.VendorKey { return constants.VendorModo }

func (p *ModoParser) Parse(ctx context.Context, payload []byte) (*ParsedOrder, error) {
	tables, err := ExtractTables(payload)
	if err != nil {
		return nil, common.NewParseError(string(p.Vendor()), "document is not parseable HTML", common.Excerpt(string(payload), 200))
	}

	order := newOrder(p.Vendor())
	var items []entity.LineItem

	for _, t := range tables {
		if t.HeaderIndex("frame") >= 0 {
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

	p.logger.Debug("parse.modo.ok", "order", order.OrderNumber, "items", len(items))
	return &ParsedOrder{Order: order, Items: items}, nil
}

func (p *ModoParser) itemsFromTable(t Table) []entity.LineItem {
	var (
		ciFrame = t.HeaderIndex("frame")
		ciColor = t.HeaderIndex("color")
		ciSize  = t.HeaderIndex("size")
		ciQty   = t.HeaderIndex("qty")
	)

	items := make([]entity.LineItem, 0, len(t.Rows))
	for _, row := range t.Rows {
		frame := Cell(row, ciFrame)
		if frame == "" {
			continue
		}
		// "MODO 4509 / BLACK" — the slash here separates the color, not a
		// model variant, so split it off before normalizing the model.
		model := frame
		colorName := Cell(row, ciColor)
		if before, after, ok := strings.Cut(frame, "/"); ok {
			model = strings.TrimSpace(before)
			if colorName == "" {
				colorName = strings.TrimSpace(after)
			}
		}
		eye, bridge, temple, _ := ParseSizeTriplet(Cell(row, ciSize))

		items = append(items, entity.LineItem{
			Brand:     "MODO",
			Model:     NormalizeModel(model, p.cfg.KeepModelSuffix),
			ColorCode: modoColorCode(colorName),
			ColorName: colorName,
			EyeSize:   eye,
			Bridge:    bridge,
			Temple:    temple,
			FullSize:  sizeText(eye, bridge, temple),
			Quantity:  ParseQuantity(Cell(row, ciQty)),
			Status:    constants.ItemStatusParsed,
		})
	}
	return items
}

// modoColorCode extracts a numeric color code when the color cell leads
// with one ("210 MATTE BLACK"); otherwise the name doubles as the code.
func modoColorCode(colorName string) string {
	fields := strings.Fields(colorName)
	if len(fields) > 1 && atoiSafe(fields[0]) > 0 {
		return fields[0]
	}
	return colorName
}
