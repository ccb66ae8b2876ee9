package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockResponse stock actual de un pool.
type StockResponse struct {
	LocationType string          `json:"location_type"`
	LocationID   string          `json:"location_id"`
	VariationID  string          `json:"variation_id"`
	Stock        decimal.Decimal `json:"stock"`
	MRP          decimal.Decimal `json:"mrp"`
	Discount     decimal.Decimal `json:"discount"`
}

// MovementResponse asiento del libro de inventario.
type MovementResponse struct {
	ID              string          `json:"id"`
	ReferenceID     string          `json:"reference_id"`
	ItemID          string          `json:"item_id"`
	VariationID     string          `json:"variation_id"`
	TransactionType string          `json:"transaction_type"`
	FlowType        string          `json:"flow_type"`
	Quantity        decimal.Decimal `json:"quantity"`
	LossQuantity    decimal.Decimal `json:"loss_quantity"`
	GrandTotal      decimal.Decimal `json:"grand_total"`
	BatchID         string          `json:"batch_id,omitempty"`
	Remarks         string          `json:"remarks,omitempty"`
	TransactionDate time.Time       `json:"transaction_date"`
}
