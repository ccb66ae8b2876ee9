package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReturnLineRequest renglón de devolución.
type ReturnLineRequest struct {
	VariationID string          `json:"variation_id"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// CreateSaleReturnRequest entrada de CreateSaleReturn.
type CreateSaleReturnRequest struct {
	SaleID       string              `json:"sale_id"`
	ReturnAmount decimal.Decimal     `json:"return_amount"`
	ReturnDate   time.Time           `json:"return_date"`
	Items        []ReturnLineRequest `json:"items"`
}

// SaleReturnResponse devolución confirmada.
type SaleReturnResponse struct {
	ID           string          `json:"id"`
	SaleID       string          `json:"sale_id"`
	CustomerID   string          `json:"customer_id"`
	ReturnAmount decimal.Decimal `json:"return_amount"`
	ReturnDate   time.Time       `json:"return_date"`
}
