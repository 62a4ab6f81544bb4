package parse

import (
	"context"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/optica-labs/frame-intake/constants"
	"github.com/optica-labs/frame-intake/internal/common"
	"github.com/optica-labs/frame-intake/internal/entity"
	"github.com/optica-labs/frame-intake/internal/vendorcfg"
)

// EuropaParser reads Europa order confirmations: plain-text email, usually
// forwarded, with numbered item lines. Europa lines state the eye size but
// not the bridge; the scrape adapter guesses the bridge at lookup time.
type EuropaParser struct {
	cfg    vendorcfg.Config
	logger *slog.Logger
}

func (p *EuropaParser) Vendor() constants.VendorKey { return constants.VendorEuropa }

// Item lines look like:
//
//	1  MRX104      1  BLACK           53    2  39.95
//
// LN, style short code, color number, color name, eye, qty, price.
var reEuropaItem = regexp.MustCompile(
	`^\s*\d+\s+(?P<style>[A-Z]{2,4}\d{2,4}[A-Z]?)\s+(?P<col>\d{1,3})\s+(?P<color>[A-Z][A-Z /-]*?)\s+(?P<eye>\d{2})\s+(?P<qty>\d+)(?:\s+(?P<price>[\d,]+\.\d{2}))?\s*$`)

var reEuropaMeta = regexp.MustCompile(`(?i)(Order|Date|Account|Customer|Ref(?:erence)?)\s*#?\s*:\s*([^:]+?)(?:\s{2,}|$)`)

func (p *EuropaParser) Parse(ctx context.Context, payload []byte) (*ParsedOrder, error) {
	order := newOrder(p.Vendor())
	var items []entity.LineItem

	for _, line := range strings.Split(string(payload), "\n") {
		for _, m := range reEuropaMeta.FindAllStringSubmatch(line, -1) {
			key := m[1]
			if strings.EqualFold(key, "order") {
				key = "order number"
			}
			applyOrderMeta(&order, key, m[2])
		}
		if m := reEuropaItem.FindStringSubmatch(line); m != nil {
			items = append(items, p.itemFromMatch(m))
		}
	}

	if len(items) == 0 {
		return nil, common.NewParseError(string(p.Vendor()), "no item lines recognized", common.Excerpt(string(payload), 400))
	}

	p.logger.Debug("parse.europa.ok", "order", order.OrderNumber, "items", len(items))
	return &ParsedOrder{Order: order, Items: items}, nil
}

func (p *EuropaParser) itemFromMatch(m []string) entity.LineItem {
	f := map[string]string{}
	for i, n := range reEuropaItem.SubexpNames() {
		if n != "" {
			f[n] = m[i]
		}
	}
	eye, _ := strconv.Atoi(f["eye"])

	return entity.LineItem{
		Brand:     europaBrand(f["style"]),
		Model:     NormalizeModel(f["style"], p.cfg.KeepModelSuffix),
		ColorCode: f["col"],
		ColorName: CollapseWhitespace(f["color"]),
		EyeSize:   eye,
		// Bridge intentionally unknown: Europa emails omit it.
		Quantity:  ParseQuantity(f["qty"]),
		Wholesale: ParseMoney(f["price"]),
		Status:    constants.ItemStatusParsed,
	}
}

// europaBrand expands the house-brand short-code prefix.
func europaBrand(style string) string {
	switch {
	case strings.HasPrefix(style, "MRX"), strings.HasPrefix(style, "MR"):
		return "MICHAEL RYEN"
	case strings.HasPrefix(style, "SH"):
		return "SCOTT HARRIS"
	case strings.HasPrefix(style, "CIN"):
		return "CINZIA"
	default:
		return "EUROPA"
	}
}
