package enrich

import (
	"context"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/optica-labs/frame-intake/constants"
	"github.com/optica-labs/frame-intake/internal/common"
	"github.com/optica-labs/frame-intake/internal/entity"
	"github.com/optica-labs/frame-intake/internal/vendorcfg"
)

// Stats aggregates what the enrichment stage did to one order.
type Stats struct {
	TotalItems    int
	EnrichedCount int
	FailedCount   int
	CacheHits     int
}

// Orchestrator drives enrichment for the line items of one order: dedup by
// product key, skip items that are already complete, answer from cache, and
// dispatch the rest to the vendor adapter in rate-limited batches.
type Orchestrator struct {
	logger  *slog.Logger
	cfg     common.EnrichConfig
	cache   *Cache
	matcher Matcher
}

func NewOrchestrator(logger *slog.Logger, cfg common.EnrichConfig, cache *Cache) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	if cache == nil {
		cache = NewCache()
	}
	if cfg.APIBatchSize < 1 {
		cfg.APIBatchSize = 8
	}
	if cfg.ScrapeBatchSize < 1 {
		cfg.ScrapeBatchSize = 3
	}
	if cfg.MatchThreshold == 0 {
		cfg.MatchThreshold = 50
	}
	return &Orchestrator{
		logger:  logger,
		cfg:     cfg,
		cache:   cache,
		matcher: Matcher{Threshold: cfg.MatchThreshold},
	}
}

// Enrich runs every item to a terminal state and returns the updated items
// plus stats. Lookup failures are isolated per product key; Enrich itself
// never fails and never loses parsed data.
func (o *Orchestrator) Enrich(ctx context.Context, vcfg vendorcfg.Config, adapter Adapter, items []entity.LineItem) ([]entity.LineItem, Stats) {
	out := slices.Clone(items)
	stats := Stats{TotalItems: len(out)}
	if len(out) == 0 {
		return out, stats
	}

	// Group line items by product key: one lookup per unique frame, results
	// broadcast to every sibling. Orders routinely repeat the same frame.
	keys := make([]string, 0, len(out))
	groups := make(map[string][]int, len(out))
	for i := range out {
		key := out[i].ProductKey()
		if _, seen := groups[key]; !seen {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], i)
	}

	var pending []string
	for _, key := range keys {
		first := out[groups[key][0]]
		switch {
		case !vcfg.RequiresEnrichment, first.APIVerified, first.HasCatalogData():
			o.applyEmbedded(out, groups[key], &stats)
		default:
			if entry, ok := o.cache.Get(key); ok {
				o.applyOutcome(out, groups[key], entry.Outcome, &stats)
				stats.CacheHits++
			} else {
				pending = append(pending, key)
			}
		}
	}

	if len(pending) > 0 && adapter != nil {
		o.dispatch(ctx, adapter, out, groups, pending, &stats)
	}

	o.logger.Info("enrich.done",
		"vendor", vcfg.VendorKey,
		"items", stats.TotalItems,
		"unique_keys", len(keys),
		"enriched", stats.EnrichedCount,
		"failed", stats.FailedCount,
		"cache_hits", stats.CacheHits,
	)
	return out, stats
}

// dispatch runs the pending lookups in batches sized for the adapter kind.
// Lookups inside a batch run concurrently; batches are spaced by the
// configured delay to keep load on the vendor source polite.
func (o *Orchestrator) dispatch(ctx context.Context, adapter Adapter, out []entity.LineItem, groups map[string][]int, pending []string, stats *Stats) {
	batchSize := o.cfg.APIBatchSize
	if adapter.Kind() == constants.AdapterScrape {
		batchSize = o.cfg.ScrapeBatchSize
	}
	limiter := rate.NewLimiter(rate.Every(o.cfg.BatchDelay), 1)

	for start := 0; start < len(pending); start += batchSize {
		batch := pending[start:min(start+batchSize, len(pending))]

		if err := limiter.Wait(ctx); err != nil {
			// Pipeline deadline hit between batches: everything still
			// pending fails, parsed data survives.
			for _, key := range pending[start:] {
				o.applyOutcome(out, groups[key], Outcome{Failed: true, Reason: "enrichment aborted: " + err.Error()}, stats)
			}
			return
		}

		outcomes := make([]Outcome, len(batch))
		g, gctx := errgroup.WithContext(ctx)
		for i, key := range batch {
			i, key := i, key
			g.Go(func() error {
				item := out[groups[key][0]]
				lctx, cancel := context.WithTimeout(gctx, o.cfg.LookupTimeout)
				defer cancel()

				res, err := adapter.Lookup(lctx, item)
				switch {
				case err != nil:
					// Retry budget exhausted. This key fails; siblings in
					// the batch are unaffected.
					o.logger.Warn("enrich.lookup.failed", "vendor", adapter.Vendor(), "key", key, "err", err)
					outcomes[i] = Outcome{Failed: true, Reason: "enrichment failed: " + err.Error()}
				case !res.Found:
					outcomes[i] = Outcome{Reason: "no candidates in vendor catalog"}
				default:
					m := o.matcher.Match(item, res.Candidates)
					outcomes[i] = Outcome{Variant: m.Variant, Score: m.Score, Validated: m.Validated, Reason: m.Reason}
				}
				return nil
			})
		}
		_ = g.Wait()

		for i, key := range batch {
			o.applyOutcome(out, groups[key], outcomes[i], stats)
			if !outcomes[i].Failed {
				// Failures are not cached; the next run should retry them.
				o.cache.Put(key, outcomes[i])
			}
		}
	}
}

// applyEmbedded settles a group whose catalog data arrived inside the
// document (or whose vendor needs no enrichment at all).
func (o *Orchestrator) applyEmbedded(out []entity.LineItem, idxs []int, stats *Stats) {
	for _, idx := range idxs {
		item := &out[idx]
		if item.HasCatalogData() || item.APIVerified {
			item.Status = constants.ItemStatusValidated
			item.ConfidenceScore = 100
			item.ValidationReason = "catalog data embedded in order document"
			stats.EnrichedCount++
		} else {
			item.Status = constants.ItemStatusLowConfidence
			item.ValidationReason = "vendor requires no enrichment; document lacked catalog fields"
		}
	}
}

// applyOutcome broadcasts one resolved outcome to every item in the group.
func (o *Orchestrator) applyOutcome(out []entity.LineItem, idxs []int, oc Outcome, stats *Stats) {
	for _, idx := range idxs {
		item := &out[idx]
		switch {
		case oc.Failed:
			item.Status = constants.ItemStatusFailed
			item.ValidationReason = oc.Reason
			stats.FailedCount++
		case oc.Variant == nil:
			item.Status = constants.ItemStatusLowConfidence
			item.ConfidenceScore = 0
			item.ValidationReason = oc.Reason
		default:
			applyVariant(item, oc)
			stats.EnrichedCount++
		}
	}
}

// applyVariant copies authoritative catalog fields onto an item. Parsed
// values are only filled, never cleared, when the variant lacks a field.
func applyVariant(item *entity.LineItem, oc Outcome) {
	v := oc.Variant
	if v.UPC != "" {
		upc := v.UPC
		item.UPC = &upc
	}
	if v.Wholesale != nil {
		w := *v.Wholesale
		item.Wholesale = &w
	}
	if v.MSRP != nil {
		m := *v.MSRP
		item.MSRP = &m
	}
	if item.SKU == "" && v.SKU != "" {
		item.SKU = v.SKU
	}
	if item.ColorName == "" && v.ColorName != "" {
		item.ColorName = v.ColorName
	}
	if item.Bridge == 0 && v.Bridge > 0 {
		item.Bridge = v.Bridge
	}
	if item.Temple == 0 && v.Temple > 0 {
		item.Temple = v.Temple
	}
	if item.Material == "" {
		item.Material = v.Material
	}
	if item.FrameT == "" {
		item.FrameT = v.FrameType
	}

	item.EnrichedData = map[string]any{
		"upc":          v.UPC,
		"sku":          v.SKU,
		"style_name":   v.StyleName,
		"color_code":   v.ColorCode,
		"color_name":   v.ColorName,
		"availability": v.Availability,
	}
	for k, val := range v.Raw {
		item.EnrichedData[k] = val
	}

	item.APIVerified = oc.Validated
	item.ConfidenceScore = oc.Score
	item.ValidationReason = oc.Reason
	if oc.Validated {
		item.Status = constants.ItemStatusValidated
	} else {
		item.Status = constants.ItemStatusLowConfidence
	}
}
