package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancialTransactionResponse fila de auditoría de dinero.
type FinancialTransactionResponse struct {
	ID              string          `json:"id"`
	TransactionType string          `json:"transaction_type"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentMethod   string          `json:"payment_method,omitempty"`
	ReferenceNumber string          `json:"reference_number,omitempty"`
	EmployeeID      string          `json:"employee_id"`
	AccountID       string          `json:"account_id,omitempty"`
	Description     string          `json:"description,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}
