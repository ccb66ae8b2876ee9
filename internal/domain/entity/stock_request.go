package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una solicitud de reabastecimiento.
const (
	RequestPending           = "PENDING"
	RequestPartiallyApproved = "PARTIALLY APPROVED"
	RequestApproved          = "APPROVED"
	RequestRejected          = "REJECTED"
)

// StockRequest solicitud de reabastecimiento sucursal → empresa, agrupada
// por BatchID. Puramente consultiva: no mueve stock por sí misma.
type StockRequest struct {
	ID          string
	BatchID     string
	BranchID    string
	CompanyID   string
	ItemID      string
	VariationID string
	Quantity    decimal.Decimal
	Status      string
	RequestDate time.Time
	CreatedBy   string
	UpdatedAt   time.Time
}
