package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción financiera (auditoría).
const (
	FinTxnSalePayment        = "SALE_PAYMENT"
	FinTxnSaleCredit         = "SALE_CREDIT"
	FinTxnSaleReturnRefund   = "SALE_RETURN_REFUND"
	FinTxnBranchCashTransfer = "BRANCH_CASH_TRANSFER"
)

// FinancialTransaction fila de auditoría por cada evento que mueve dinero.
// Append-only: es la fuente de verdad para conciliación.
type FinancialTransaction struct {
	ID              string
	TransactionType string
	Amount          decimal.Decimal
	PaymentMethod   string
	ReferenceNumber string // factura, devolución o arqueo que originó el movimiento
	EmployeeID      string
	BranchID        string
	CompanyID       string
	AccountID       string // cuenta afectada (vacío si el movimiento es de saldo de cliente)
	Description     string
	CreatedAt       time.Time
}
