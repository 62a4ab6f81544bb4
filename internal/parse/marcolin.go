package parse

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/optica-labs/frame-intake/constants"
	"github.com/optica-labs/frame-intake/internal/common"
	"github.com/optica-labs/frame-intake/internal/entity"
	"github.com/optica-labs/frame-intake/internal/vendorcfg"
)

// MarcolinParser reads Marcolin order confirmations: PDF text with a
// key/value header block and a fixed-width item table. Column boundaries
// are taken from the table's own header row, so layout drift between
// template revisions does not require code changes.
//
// The expected header row:
//
//	STYLE       COLOR DESCRIPTION          EYE BRG TMP  QTY  UNIT
type MarcolinParser struct {
	cfg    vendorcfg.Config
	logger *slog.Logger
}

func (p *MarcolinParser) Vendor() constants.VendorKey { return constants.VendorMarcolin }

var marcolinColumns = []string{"STYLE", "COLOR", "DESCRIPTION", "EYE", "BRG", "TMP", "QTY", "UNIT"}

func (p *MarcolinParser) Parse(ctx context.Context, payload []byte) (*ParsedOrder, error) {
	lines := strings.Split(string(payload), "\n")
	order := newOrder(p.Vendor())

	headerIdx := -1
	var bounds map[string]int
	for i, line := range lines {
		upper := strings.ToUpper(line)
		if strings.Contains(upper, "STYLE") && strings.Contains(upper, "QTY") {
			bounds = columnStarts(upper, marcolinColumns)
			if bounds != nil {
				headerIdx = i
				break
			}
		}
		for _, seg := range splitColumns(line) {
			if k, v, ok := strings.Cut(seg, ":"); ok {
				applyOrderMeta(&order, k, v)
			}
		}
	}
	if headerIdx < 0 {
		return nil, common.NewParseError(string(p.Vendor()), "item table header not found", common.Excerpt(string(payload), 400))
	}

	var items []entity.LineItem
	for _, line := range lines[headerIdx+1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		item, ok := p.itemFromLine(line, bounds)
		if !ok {
			// Totals and footer text live below the table; stop at the
			// first line that does not shape like an item.
			break
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil, common.NewParseError(string(p.Vendor()), "item table contained no parseable rows", common.Excerpt(strings.Join(lines[headerIdx:], "\n"), 400))
	}

	p.logger.Debug("parse.marcolin.ok", "order", order.OrderNumber, "items", len(items))
	return &ParsedOrder{Order: order, Items: items}, nil
}

func (p *MarcolinParser) itemFromLine(line string, bounds map[string]int) (entity.LineItem, bool) {
	style := columnValue(line, bounds, "STYLE", "COLOR")
	if style == "" || !isStyleCode(style) {
		return entity.LineItem{}, false
	}
	eyeStr := columnValue(line, bounds, "EYE", "BRG")
	bridgeStr := columnValue(line, bounds, "BRG", "TMP")
	templeStr := columnValue(line, bounds, "TMP", "QTY")

	eye := atoiSafe(eyeStr)
	bridge := atoiSafe(bridgeStr)
	temple := atoiSafe(templeStr)

	item := entity.LineItem{
		Brand:     marcolinBrand(style),
		Model:     NormalizeModel(style, p.cfg.KeepModelSuffix),
		ColorCode: columnValue(line, bounds, "COLOR", "DESCRIPTION"),
		ColorName: columnValue(line, bounds, "DESCRIPTION", "EYE"),
		EyeSize:   eye,
		Bridge:    bridge,
		Temple:    temple,
		FullSize:  sizeText(eye, bridge, temple),
		Quantity:  ParseQuantity(columnValue(line, bounds, "QTY", "UNIT")),
		Wholesale: ParseMoney(columnValue(line, bounds, "UNIT", "")),
		Status:    constants.ItemStatusParsed,
	}
	return item, true
}

// columnStarts maps each expected column name to its byte offset in the
// header row. Returns nil when any column is missing.
func columnStarts(header string, columns []string) map[string]int {
	out := make(map[string]int, len(columns))
	for _, col := range columns {
		idx := strings.Index(header, col)
		if idx < 0 {
			return nil
		}
		out[col] = idx
	}
	return out
}

// columnValue slices line between the start of column from and the start of
// column to ("" means end of line), trimming the padding.
func columnValue(line string, bounds map[string]int, from, to string) string {
	start := bounds[from]
	if start >= len(line) {
		return ""
	}
	end := len(line)
	if to != "" {
		if e, ok := bounds[to]; ok && e < end {
			end = e
		}
	}
	if end <= start {
		return ""
	}
	return strings.TrimSpace(line[start:end])
}

var reMarcolinStyle = regexp.MustCompile(`^[A-Z]{1,4}\d+[A-Z0-9-]*$`)

// isStyleCode filters footer lines: a Marcolin style starts with letters
// followed by digits (ME2045, TF5634-B).
func isStyleCode(s string) bool {
	return reMarcolinStyle.MatchString(s)
}

// marcolinBrand expands the licensed-brand prefix on a style code.
func marcolinBrand(style string) string {
	switch {
	case strings.HasPrefix(style, "TF"):
		return "TOM FORD"
	case strings.HasPrefix(style, "GU"):
		return "GUESS"
	case strings.HasPrefix(style, "ME"):
		return "MONCLER"
	default:
		return "MARCOLIN"
	}
}

func atoiSafe(s string) int {
	n := 0
	for _, r := range strings.TrimSpace(s) {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}
