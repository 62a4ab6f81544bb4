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

// ZylowareParser reads Zyloware order confirmations: plain text with a
// key/value header followed by one key/value block per item, blocks
// separated by "Style:" lines.
type ZylowareParser struct {
	cfg    vendorcfg.Config
	logger *slog.Logger
}

func (p *ZylowareParser) Vendor() constants.VendorKey { return constants.VendorZyloware }

var zylowareBrands = []string{"SOPHIA LOREN", "STETSON", "VIA SPIGA", "RANDY JACKSON"}

func (p *ZylowareParser) Parse(ctx context.Context, payload []byte) (*ParsedOrder, error) {
	order := newOrder(p.Vendor())
	var items []entity.LineItem
	var current *entity.LineItem

	flush := func() {
		if current != nil && current.Model != "" {
			items = append(items, *current)
		}
		current = nil
	}

	for _, line := range strings.Split(string(payload), "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		switch key {
		case "style":
			flush()
			current = &entity.LineItem{
				Brand:    zylowareBrand(value),
				Model:    NormalizeModel(value, p.cfg.KeepModelSuffix),
				Quantity: 1,
				Status:   constants.ItemStatusParsed,
			}
		case "color":
			if current != nil {
				// "021 BROWN" — leading number is the color code.
				code, name, found := strings.Cut(value, " ")
				if found && atoiSafe(code) > 0 {
					current.ColorCode = code
					current.ColorName = strings.TrimSpace(name)
				} else {
					current.ColorName = value
				}
			}
		case "size":
			if current != nil {
				eye, bridge, temple, ok := ParseSizeTriplet(value)
				if ok {
					current.EyeSize = eye
					current.Bridge = bridge
					current.Temple = temple
					current.FullSize = sizeText(eye, bridge, temple)
				}
			}
		case "quantity", "qty":
			if current != nil {
				current.Quantity = ParseQuantity(value)
			}
		case "price", "unit price":
			if current != nil {
				current.Wholesale = ParseMoney(value)
			}
		default:
			if current == nil {
				applyOrderMeta(&order, key, value)
			}
		}
	}
	flush()

	if len(items) == 0 {
		return nil, common.NewParseError(string(p.Vendor()), "no Style blocks recognized", common.Excerpt(string(payload), 400))
	}

	p.logger.Debug("parse.zyloware.ok", "order", order.OrderNumber, "items", len(items))
	return &ParsedOrder{Order: order, Items: items}, nil
}

// zylowareBrand matches the licensed-brand prefix on a style name.
func zylowareBrand(style string) string {
	upper := strings.ToUpper(style)
	for _, b := range zylowareBrands {
		if strings.HasPrefix(upper, b) {
			return b
		}
	}
	return "ZYLOWARE"
}
