package parse

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/optica-labs/frame-intake/constants"
	"github.com/optica-labs/frame-intake/internal/entity"
	"github.com/optica-labs/frame-intake/internal/vendorcfg"
)

// ParsedOrder is the output of one document parse: the order header plus its
// line items, all items still in the PARSED state.
type ParsedOrder struct {
	Order entity.Order
	Items []entity.LineItem
}

// DocumentParser turns one vendor's raw document payload into the canonical
// order record. Missing fields stay zero rather than failing the parse;
// only totally unrecognized structure returns a *common.ParseError.
type DocumentParser interface {
	Vendor() constants.VendorKey
	Parse(ctx context.Context, payload []byte) (*ParsedOrder, error)
}

// ForVendor selects the parser implementation for a vendor config.
// The set is closed: one implementation per registered vendor.
func ForVendor(cfg vendorcfg.Config, logger *slog.Logger) (DocumentParser, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch cfg.VendorKey {
	case constants.VendorSafilo:
		return &SafiloParser{cfg: cfg, logger: logger}, nil
	case constants.VendorMarcolin:
		return &MarcolinParser{cfg: cfg, logger: logger}, nil
	case constants.VendorLuxottica:
		return &LuxotticaParser{cfg: cfg, logger: logger}, nil
	case constants.VendorMarchon:
		return &MarchonParser{cfg: cfg, logger: logger}, nil
	case constants.VendorModo:
		return &ModoParser{cfg: cfg, logger: logger}, nil
	case constants.VendorLamy:
		return &LamyParser{cfg: cfg, logger: logger}, nil
	case constants.VendorClearVision:
		return &ClearVisionParser{cfg: cfg, logger: logger}, nil
	case constants.VendorEuropa:
		return &EuropaParser{cfg: cfg, logger: logger}, nil
	case constants.VendorZyloware:
		return &ZylowareParser{cfg: cfg, logger: logger}, nil
	default:
		return nil, fmt.Errorf("no parser registered for vendor %q", cfg.VendorKey)
	}
}

// newOrder seeds the order record every parser starts from.
func newOrder(vendor constants.VendorKey) entity.Order {
	return entity.Order{
		ID:        uuid.New(),
		VendorKey: vendor,
		ParsedAt:  time.Now().UTC(),
	}
}

// applyOrderMeta routes a parsed header key/value pair into the order
// record. Unknown keys are ignored; vendors label the same fields many ways.
func applyOrderMeta(o *entity.Order, key, value string) {
	k := strings.ToLower(strings.TrimSpace(key))
	v := strings.TrimSpace(value)
	if v == "" {
		return
	}
	switch {
	case strings.Contains(k, "order") && (strings.Contains(k, "number") || strings.Contains(k, "no") || strings.Contains(k, "#")):
		o.OrderNumber = v
	case strings.Contains(k, "date"):
		o.OrderDate = v
	case strings.Contains(k, "account"):
		o.AccountNumber = v
	case strings.Contains(k, "ref"):
		o.ReferenceNumber = v
	case strings.Contains(k, "customer") || strings.Contains(k, "sold to") || strings.Contains(k, "ship to"):
		if o.CustomerName == "" {
			o.CustomerName = v
		}
	}
}
