package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción del registro de stock.
const (
	TxnSale       = "SALE"
	TxnSaleReturn = "SALE_RETURN"
	TxnTransfer   = "TRANSFER"
	TxnPurchase   = "PURCHASE"
	TxnAdjustment = "ADJUSTMENT"
)

// Sentido del movimiento.
const (
	FlowIn  = "IN"
	FlowOut = "OUT"
)

// StockRegisterEntry asiento inmutable del libro de inventario. Se crea
// exactamente una vez por renglón afectado, en la misma transacción que la
// mutación del pool. Nunca se modifica ni se borra.
// ReferenceID apunta a la venta, devolución o traslado que lo originó.
type StockRegisterEntry struct {
	ID              string
	ReferenceID     string
	ItemID          string
	VariationID     string
	LocationType    string
	LocationID      string
	TransactionType string
	FlowType        string
	Quantity        decimal.Decimal
	LossQuantity    decimal.Decimal // solo en IN de traslado: merma del lote
	Rate            decimal.Decimal
	SubTotal        decimal.Decimal
	GSTRate         decimal.Decimal
	GSTAmount       decimal.Decimal
	GrandTotal      decimal.Decimal
	TransactionDate time.Time
	BatchID         string // correlación de operaciones multi-renglón
	Remarks         string
	CreatedAt       time.Time
	CreatedBy       string
}
