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

// SafiloParser reads Safilo order confirmations: PDF text with one item per
// line. Style codes carry brand prefixes (KS, BOSS, CARRERA) and often a
// "/"-variant suffix that gets stripped.
type SafiloParser struct {
	cfg    vendorcfg.Config
	logger *slog.Logger
}

func (p *SafiloParser) Vendor() constants.VendorKey { return constants.VendorSafilo }

// Item lines look like:
//
//	KS CHERETTE2/US     X19   PATTERN MULTICOLOR   52/17 140   2   94.00
//
// Quantity and price are absent on some forwarded copies, so both are
// optional; quantity defaults to 1.
var reSafiloItem = regexp.MustCompile(
	`^\s*(?P<style>[A-Z][A-Z0-9./' -]*?)\s+(?P<color>[A-Z0-9]{2,5})\s+(?P<desc>[A-Z][A-Z0-9 ./-]*?)\s+(?P<eye>\d{2})/(?P<bridge>\d{2})\s+(?P<temple>\d{3})(?:\s+(?P<qty>\d+)\s+(?P<price>[\d,]+\.\d{2}))?\s*$`)

var reSafiloHeader = regexp.MustCompile(`(?i)^\s*(Order Number|Order Date|Account|Reference|Customer)\s*[:#]\s*(.+?)\s*$`)

func (p *SafiloParser) Parse(ctx context.Context, payload []byte) (*ParsedOrder, error) {
	order := newOrder(p.Vendor())
	var items []entity.LineItem

	// Header fields share lines ("Order Number: 4502998   Order Date: ...");
	// split on wide gaps before matching.
	for _, line := range strings.Split(string(payload), "\n") {
		for _, seg := range splitColumns(line) {
			if m := reSafiloHeader.FindStringSubmatch(seg); m != nil {
				applyOrderMeta(&order, m[1], m[2])
			}
		}
		if m := reSafiloItem.FindStringSubmatch(line); m != nil {
			items = append(items, p.itemFromMatch(m))
		}
	}

	if len(items) == 0 && order.OrderNumber == "" {
		return nil, common.NewParseError(string(p.Vendor()), "no item lines or order header recognized", string(payload))
	}

	p.logger.Debug("parse.safilo.ok", "order", order.OrderNumber, "items", len(items))
	return &ParsedOrder{Order: order, Items: items}, nil
}

func (p *SafiloParser) itemFromMatch(m []string) entity.LineItem {
	name := reSafiloItem.SubexpNames()
	f := map[string]string{}
	for i, n := range name {
		if n != "" {
			f[n] = m[i]
		}
	}

	eye, _ := strconv.Atoi(f["eye"])
	bridge, _ := strconv.Atoi(f["bridge"])
	temple, _ := strconv.Atoi(f["temple"])

	style := CollapseWhitespace(f["style"])
	item := entity.LineItem{
		Brand:     firstToken(style),
		Model:     NormalizeModel(style, p.cfg.KeepModelSuffix),
		ColorCode: f["color"],
		ColorName: CollapseWhitespace(f["desc"]),
		EyeSize:   eye,
		Bridge:    bridge,
		Temple:    temple,
		FullSize:  sizeText(eye, bridge, temple),
		Quantity:  ParseQuantity(f["qty"]),
		Wholesale: ParseMoney(f["price"]),
		Status:    constants.ItemStatusParsed,
	}
	return item
}

var reColumnGap = regexp.MustCompile(`\s{2,}`)

// splitColumns breaks a layout-preserved PDF line at runs of two or more
// spaces, the column gaps pdftotext keeps.
func splitColumns(line string) []string {
	parts := reColumnGap.Split(line, -1)
	out := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

func firstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func sizeText(eye, bridge, temple int) string {
	if eye == 0 || bridge == 0 {
		return ""
	}
	s := strconv.Itoa(eye) + "/" + strconv.Itoa(bridge)
	if temple > 0 {
		s += " " + strconv.Itoa(temple)
	}
	return s
}
