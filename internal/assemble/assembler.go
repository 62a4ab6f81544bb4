package assemble

import (
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/optica-labs/frame-intake/constants"
	"github.com/optica-labs/frame-intake/internal/entity"
	"github.com/optica-labs/frame-intake/internal/enrich"
)

// Result is the pipeline's output contract. It is shaped to feed the
// downstream catalog-cache service and bulk-insert endpoint without
// transformation.
type Result struct {
	Vendor     string        `json:"vendor"`
	Order      OrderOut      `json:"order"`
	Items      []ItemOut     `json:"items"`
	Enrichment EnrichmentOut `json:"enrichment"`
}

type OrderOut struct {
	OrderNumber     string          `json:"order_number"`
	CustomerName    string          `json:"customer_name"`
	OrderDate       string          `json:"order_date"`
	AccountNumber   string          `json:"account_number"`
	ReferenceNumber string          `json:"reference_number"`
	TotalPieces     int             `json:"total_pieces"`
	UniqueModels    int             `json:"unique_models"`
	TotalValue      decimal.Decimal `json:"total_value"`
}

type ItemOut struct {
	Brand            string               `json:"brand"`
	Model            string               `json:"model"`
	ColorName        string               `json:"color_name"`
	ColorCode        string               `json:"color_code"`
	Size             string               `json:"size"`
	Quantity         int                  `json:"quantity"`
	UPC              *string              `json:"upc"`
	WholesalePrice   *decimal.Decimal     `json:"wholesale_price"`
	MSRP             *decimal.Decimal     `json:"msrp"`
	SKU              string               `json:"sku"`
	Material         string               `json:"material"`
	FrameType        string               `json:"frame_type"`
	APIVerified      bool                 `json:"api_verified"`
	ConfidenceScore  int                  `json:"confidence_score"`
	ValidationReason string               `json:"validation_reason"`
	Status           constants.ItemStatus `json:"status"`
}

type EnrichmentOut struct {
	TotalItems            int     `json:"totalItems"`
	EnrichedCount         int     `json:"enrichedCount"`
	FailedCount           int     `json:"failedCount"`
	CacheHits             int     `json:"cacheHits"`
	EnrichmentRate        float64 `json:"enrichmentRate"`
	ProcessingTimeSeconds float64 `json:"processingTimeSeconds"`
}

// Assembler merges parsed items with their enrichment outcomes and
// recomputes the order aggregates. Aggregates derive strictly from the
// assembled items — never computed independently — so they cannot drift.
type Assembler struct {
	logger *slog.Logger
}

func NewAssembler(logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{logger: logger}
}

// Assemble produces the final output contract for one order.
func (a *Assembler) Assemble(order entity.Order, items []entity.LineItem, stats enrich.Stats, elapsed time.Duration) *Result {
	itemsOut := make([]ItemOut, 0, len(items))
	pieces := 0
	models := map[string]bool{}
	total := decimal.Zero

	for i := range items {
		it := &items[i]
		pieces += it.Quantity
		models[it.Brand+"|"+it.Model] = true
		if it.Wholesale != nil {
			total = total.Add(it.Wholesale.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
		itemsOut = append(itemsOut, ItemOut{
			Brand:            it.Brand,
			Model:            it.Model,
			ColorName:        it.ColorName,
			ColorCode:        it.ColorCode,
			Size:             it.SizeString(),
			Quantity:         it.Quantity,
			UPC:              it.UPC,
			WholesalePrice:   it.Wholesale,
			MSRP:             it.MSRP,
			SKU:              it.SKU,
			Material:         it.Material,
			FrameType:        it.FrameT,
			APIVerified:      it.APIVerified,
			ConfidenceScore:  it.ConfidenceScore,
			ValidationReason: it.ValidationReason,
			Status:           it.Status,
		})
	}

	rate := 0.0
	if stats.TotalItems > 0 {
		rate = float64(stats.EnrichedCount) / float64(stats.TotalItems)
	}

	res := &Result{
		Vendor: string(order.VendorKey),
		Order: OrderOut{
			OrderNumber:     order.OrderNumber,
			CustomerName:    order.CustomerName,
			OrderDate:       order.OrderDate,
			AccountNumber:   order.AccountNumber,
			ReferenceNumber: order.ReferenceNumber,
			TotalPieces:     pieces,
			UniqueModels:    len(models),
			TotalValue:      total,
		},
		Items: itemsOut,
		Enrichment: EnrichmentOut{
			TotalItems:            stats.TotalItems,
			EnrichedCount:         stats.EnrichedCount,
			FailedCount:           stats.FailedCount,
			CacheHits:             stats.CacheHits,
			EnrichmentRate:        rate,
			ProcessingTimeSeconds: elapsed.Seconds(),
		},
	}

	a.logger.Debug("assemble.ok",
		"vendor", res.Vendor,
		"order", res.Order.OrderNumber,
		"pieces", pieces,
		"unique_models", len(models),
		"total_value", total.StringFixed(2),
	)
	return res
}

// Empty returns the contract for a document no vendor rule matched:
// a valid, reported outcome rather than an error.
func Empty(elapsed time.Duration) *Result {
	return &Result{
		Vendor: string(constants.VendorUnknown),
		Items:  []ItemOut{},
		Enrichment: EnrichmentOut{
			ProcessingTimeSeconds: elapsed.Seconds(),
		},
	}
}
