package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/optica-labs/frame-intake/internal/assemble"
)

// Service produces XLSX bytes from an assembled order so buyers can review
// an intake before the items go downstream.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

const sheet = "Order"

var headers = []string{
	"Brand",
	"Model",
	"Color Code",
	"Color Name",
	"Size",
	"Qty",
	"UPC",
	"Wholesale",
	"MSRP",
	"Verified",
	"Confidence",
	"Status",
}

// OrderXLSX returns an XLSX workbook (as bytes) for one assembled order:
// an order-header block, one row per line item, and a totals row.
func (s *Service) OrderXLSX(res *assemble.Result) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	write := func(col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	// Order header block
	meta := [][2]any{
		{"Vendor", res.Vendor},
		{"Order Number", res.Order.OrderNumber},
		{"Customer", res.Order.CustomerName},
		{"Order Date", res.Order.OrderDate},
		{"Account", res.Order.AccountNumber},
		{"Reference", res.Order.ReferenceNumber},
	}
	for i, kv := range meta {
		write(1, i+1, kv[0])
		write(2, i+1, kv[1])
	}

	headerRow := len(meta) + 2
	for i, h := range headers {
		write(i+1, headerRow, h)
	}

	row := headerRow + 1
	for _, it := range res.Items {
		write(1, row, it.Brand)
		write(2, row, it.Model)
		write(3, row, it.ColorCode)
		write(4, row, it.ColorName)
		write(5, row, it.Size)
		write(6, row, it.Quantity)
		if it.UPC != nil {
			write(7, row, *it.UPC)
		}
		if it.WholesalePrice != nil {
			write(8, row, it.WholesalePrice.StringFixed(2))
		}
		if it.MSRP != nil {
			write(9, row, it.MSRP.StringFixed(2))
		}
		write(10, row, it.APIVerified)
		write(11, row, it.ConfidenceScore)
		write(12, row, string(it.Status))
		row++
	}

	// Totals row, from the recomputed aggregates
	row++
	write(1, row, "Totals")
	write(6, row, res.Order.TotalPieces)
	write(8, row, res.Order.TotalValue.StringFixed(2))

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Debug("export.xlsx.ok",
		"order", res.Order.OrderNumber,
		"items", len(res.Items),
		"bytes", buf.Len(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
