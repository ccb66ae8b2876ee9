package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleReturn devolución sobre una venta. Sus renglones viven como asientos
// IN del registro de stock (TxnSaleReturn, reference_id = ID).
type SaleReturn struct {
	ID           string
	SaleID       string
	CustomerID   string
	CompanyID    string
	BranchID     string
	ManagerID    string
	ReturnAmount decimal.Decimal
	ReturnDate   time.Time
	CreatedAt    time.Time
}
