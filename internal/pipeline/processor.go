package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/optica-labs/frame-intake/constants"
	"github.com/optica-labs/frame-intake/internal/assemble"
	"github.com/optica-labs/frame-intake/internal/common"
	"github.com/optica-labs/frame-intake/internal/detect"
	"github.com/optica-labs/frame-intake/internal/enrich"
	"github.com/optica-labs/frame-intake/internal/parse"
	"github.com/optica-labs/frame-intake/internal/pdftext"
	"github.com/optica-labs/frame-intake/internal/vendorcfg"
)

// Input is the caller's contract for one document run. VendorHint skips
// detection when the caller already knows the sender; Envelope feeds the
// detector otherwise.
type Input struct {
	VendorHint   string                 `validate:"omitempty,oneof=safilo marcolin luxottica marchon modo lamy clearvision europa zyloware"`
	RawDocument  []byte                 `validate:"required"`
	DocumentKind constants.DocumentKind `validate:"required,oneof=html pdf text"`
	Envelope     detect.Envelope
}

// Processor coordinates detect → parse → enrich → assemble for one
// document. One Processor may serve concurrent runs; the cache it owns is
// shared across them.
type Processor struct {
	logger    *slog.Logger
	cfg       *common.Config
	registry  *vendorcfg.Registry
	detector  *detect.Detector
	pdf       *pdftext.Extractor
	client    *enrich.Client
	cache     *enrich.Cache
	orch      *enrich.Orchestrator
	assembler *assemble.Assembler
	validate  *validator.Validate

	mu       sync.Mutex
	adapters map[constants.VendorKey]enrich.Adapter
}

func NewProcessor(logger *slog.Logger, cfg *common.Config, registry *vendorcfg.Registry) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = common.LoadConfig()
	}
	if registry == nil {
		registry = vendorcfg.NewRegistry()
	}
	cache := enrich.NewCache()
	return &Processor{
		logger:    logger,
		cfg:       cfg,
		registry:  registry,
		detector:  detect.NewDetector(logger, registry),
		pdf:       pdftext.NewExtractor(logger, cfg.PDF.Pdftotext),
		client:    enrich.NewClient(logger, cfg.HTTP),
		cache:     cache,
		orch:      enrich.NewOrchestrator(logger, cfg.Enrich, cache),
		assembler: assemble.NewAssembler(logger),
		validate:  validator.New(),
	}
}

// WithPDFRunner substitutes the pdftotext runner; tests use this.
func (p *Processor) WithPDFRunner(r pdftext.Runner) *Processor {
	p.pdf.WithRunner(r)
	return p
}

// Process runs the full pipeline for one document. A document matching no
// detection rule yields the "unknown" result, not an error; only total
// parse failure is a hard error. Enrichment failures stay per-item.
func (p *Processor) Process(ctx context.Context, in Input) (*assemble.Result, error) {
	start := time.Now()
	ctx = common.WithRunID(ctx, uuid.New().String())

	if err := p.validate.Struct(in); err != nil {
		return nil, common.NewAppError("INVALID_INPUT", "input contract violation", err)
	}

	vendor, tier := p.resolveVendor(in)
	if vendor == constants.VendorUnknown {
		p.logger.Info("pipeline.vendor_unknown",
			"run_id", common.RunIDFromContext(ctx),
			"from", in.Envelope.From,
			"subject", in.Envelope.Subject,
		)
		return assemble.Empty(time.Since(start)), nil
	}
	ctx = common.WithVendor(ctx, string(vendor))
	vcfg, ok := p.registry.Get(vendor)
	if !ok {
		return nil, common.NewAppError("NO_VENDOR_CONFIG", fmt.Sprintf("vendor %q has no config", vendor), common.ErrInternal)
	}

	payload := in.RawDocument
	if in.DocumentKind == constants.DocumentPDF {
		text, pages, err := p.pdf.ExtractText(ctx, in.RawDocument)
		if err != nil {
			return nil, fmt.Errorf("pdf text extraction: %w", err)
		}
		p.logger.Debug("pipeline.pdf.ok", "pages", pages, "bytes", len(text))
		payload = []byte(text)
	}

	parser, err := parse.ForVendor(vcfg, p.logger)
	if err != nil {
		return nil, err
	}
	parsed, err := parser.Parse(ctx, payload)
	if err != nil {
		p.logger.Error("pipeline.parse.failed", "vendor", vendor, "err", err)
		return nil, err
	}
	p.logger.Info("pipeline.parse.ok",
		"run_id", common.RunIDFromContext(ctx),
		"vendor", vendor,
		"tier", tier,
		"order", parsed.Order.OrderNumber,
		"items", len(parsed.Items),
	)

	adapter, err := p.adapterFor(vcfg)
	if err != nil && vcfg.RequiresEnrichment {
		return nil, err
	}
	items, stats := p.orch.Enrich(ctx, vcfg, adapter, parsed.Items)

	res := p.assembler.Assemble(parsed.Order, items, stats, time.Since(start))
	p.logger.Info("pipeline.done",
		"run_id", common.RunIDFromContext(ctx),
		"vendor", res.Vendor,
		"order", res.Order.OrderNumber,
		"items", len(res.Items),
		"enriched", res.Enrichment.EnrichedCount,
		"failed", res.Enrichment.FailedCount,
		"cache_hits", res.Enrichment.CacheHits,
		"elapsed_s", res.Enrichment.ProcessingTimeSeconds,
	)
	return res, nil
}

func (p *Processor) resolveVendor(in Input) (constants.VendorKey, constants.DetectionTier) {
	if in.VendorHint != "" {
		return constants.VendorKey(in.VendorHint), constants.TierDomainMatch
	}
	r := p.detector.Detect(in.Envelope)
	return r.Vendor, r.Tier
}

// adapterFor builds (and memoizes) the enrichment adapter for a vendor.
func (p *Processor) adapterFor(vcfg vendorcfg.Config) (enrich.Adapter, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.adapters == nil {
		p.adapters = make(map[constants.VendorKey]enrich.Adapter)
	}
	if a, ok := p.adapters[vcfg.VendorKey]; ok {
		return a, nil
	}
	a, err := enrich.ForVendor(vcfg, p.client, p.logger)
	if err != nil {
		return nil, err
	}
	p.adapters[vcfg.VendorKey] = a
	return a, nil
}
