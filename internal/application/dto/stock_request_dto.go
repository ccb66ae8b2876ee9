package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockRequestLine renglón de una solicitud de reabastecimiento.
type StockRequestLine struct {
	ItemID      string          `json:"item_id"`
	VariationID string          `json:"variation_id"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// CreateStockRequestRequest solicitud sucursal → empresa (consultiva).
type CreateStockRequestRequest struct {
	Items []StockRequestLine `json:"items"`
}

// ResolveStockRequestRequest decisión por renglón.
type ResolveStockRequestRequest struct {
	RequestID string `json:"request_id"`
	Status    string `json:"status"` // PARTIALLY APPROVED | APPROVED | REJECTED
}

// StockRequestResponse solicitud registrada.
type StockRequestResponse struct {
	BatchID     string    `json:"batch_id"`
	ItemCount   int       `json:"item_count"`
	Status      string    `json:"status"`
	RequestDate time.Time `json:"request_date"`
}
