package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/optica-labs/frame-intake/constants"
)

// Order represents one parsed vendor order confirmation.
// Aggregate totals are recomputed by the assembler strictly from the line
// items; parsers only fill what the document states.
type Order struct {
	ID              uuid.UUID           `json:"id"`
	VendorKey       constants.VendorKey `json:"vendor_key"`
	OrderNumber     string              `json:"order_number"`
	CustomerName    string              `json:"customer_name"`
	OrderDate       string              `json:"order_date"`
	AccountNumber   string              `json:"account_number"`
	ReferenceNumber string              `json:"reference_number"`
	TotalPieces     int                 `json:"total_pieces"`
	UniqueModels    int                 `json:"unique_models"`
	TotalValue      decimal.Decimal     `json:"total_value"`
	ParsedAt        time.Time           `json:"parsed_at"`
}
