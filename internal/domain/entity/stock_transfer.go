package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockTransfer renglón de un traslado en dos fases. Se crea despachado
// (Acknowledge=false) al descontar el origen; al confirmar, el destino suma
// ReceivedQuantity y LostQuantity queda como merma (no se re-ingresa).
// Invariante al confirmar: ReceivedQuantity + LostQuantity == Quantity.
type StockTransfer struct {
	ID               string
	BatchID          string // agrupa los renglones de un traslado multi-artículo
	FromLocationType string // LocationBranch | LocationCompany
	FromLocationID   string
	ToBranchID       string
	ItemID           string
	VariationID      string
	Quantity         decimal.Decimal
	Rate             decimal.Decimal
	SubTotal         decimal.Decimal
	GSTRate          decimal.Decimal
	GSTAmount        decimal.Decimal
	GrandTotal       decimal.Decimal
	Acknowledge      bool
	ReceivedQuantity decimal.Decimal
	LostQuantity     decimal.Decimal
	TransferDate     time.Time
	AcknowledgedAt   *time.Time
	CreatedBy        string
}
