package enrich

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/optica-labs/frame-intake/constants"
	"github.com/optica-labs/frame-intake/internal/entity"
	"github.com/optica-labs/frame-intake/internal/vendorcfg"
)

// LookupResult is the typed outcome of one external lookup.
// Found=false means the source answered and has no record for the key —
// expected, not exceptional. Errors are reserved for transport failures
// that survived the retry budget.
type LookupResult struct {
	Found      bool
	Candidates []entity.Variant
	Source     string // URL or query that answered, for diagnostics
}

// Adapter performs the external catalog lookup for one vendor.
type Adapter interface {
	Vendor() constants.VendorKey
	Kind() constants.AdapterKind
	Lookup(ctx context.Context, item entity.LineItem) (LookupResult, error)
}

// ForVendor builds the adapter for a vendor config. The set is closed:
// each vendor maps to exactly one of the two adapter shapes.
func ForVendor(cfg vendorcfg.Config, client *Client, logger *slog.Logger) (Adapter, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch cfg.AdapterKind {
	case constants.AdapterAPI:
		if cfg.APIBaseURL == "" {
			return nil, fmt.Errorf("vendor %s: api adapter needs api_base_url", cfg.VendorKey)
		}
		return &APIAdapter{vendor: cfg.VendorKey, baseURL: cfg.APIBaseURL, client: client, logger: logger}, nil
	case constants.AdapterScrape:
		if cfg.ScrapeBaseURL == "" {
			return nil, fmt.Errorf("vendor %s: scrape adapter needs scrape_base_url", cfg.VendorKey)
		}
		return &ScrapeAdapter{vendor: cfg.VendorKey, baseURL: cfg.ScrapeBaseURL, client: client, logger: logger}, nil
	default:
		return nil, fmt.Errorf("vendor %s: unknown adapter kind %q", cfg.VendorKey, cfg.AdapterKind)
	}
}
