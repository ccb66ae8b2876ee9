package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckInRequest apertura de turno con saldo inicial de caja.
type CheckInRequest struct {
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

// CheckOutRequest cierre de turno con saldo final declarado.
type CheckOutRequest struct {
	ClosingBalance decimal.Decimal `json:"closing_balance"`
}

// RegisterResponse turno de caja.
type RegisterResponse struct {
	ID             string          `json:"id"`
	BillerID       string          `json:"biller_id"`
	BranchID       string          `json:"branch_id"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
	Status         string          `json:"status"`
	ShiftStart     time.Time       `json:"shift_start"`
	ShiftEnd       *time.Time      `json:"shift_end,omitempty"`
}

// CreateHandoverRequest arqueo iniciado por el biller. RegisterID opcional:
// por defecto, el turno abierto de hoy.
type CreateHandoverRequest struct {
	RegisterID string          `json:"register_id,omitempty"`
	ManagerID  string          `json:"manager_id"`
	CashAmount decimal.Decimal `json:"cash_amount"`
	Remarks    string          `json:"remarks,omitempty"`
}

// ResolveHandoverRequest decisión del manager. Remarks obligatorio al rechazar.
type ResolveHandoverRequest struct {
	Approve bool   `json:"approve"`
	Remarks string `json:"remarks,omitempty"`
}

// HandoverResponse arqueo.
type HandoverResponse struct {
	ID           string          `json:"id"`
	RegisterID   string          `json:"register_id"`
	BillerID     string          `json:"biller_id"`
	ManagerID    string          `json:"manager_id"`
	CashAmount   decimal.Decimal `json:"cash_amount"`
	Status       string          `json:"status"`
	Remarks      string          `json:"remarks,omitempty"`
	ApprovalDate *time.Time      `json:"approval_date,omitempty"`
}
