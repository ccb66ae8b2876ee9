package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del arqueo de caja.
const (
	HandoverPending  = "PENDING"
	HandoverApproved = "APPROVED"
	HandoverRejected = "REJECTED"
)

// CashHandover entrega de efectivo del biller al manager al final del turno.
// Lo crea el biller (PENDING) y lo resuelve el manager. Un rechazo exige
// remarks y bloquea el siguiente check-in del biller hasta resolverse.
type CashHandover struct {
	ID           string
	RegisterID   string
	BillerID     string
	ManagerID    string
	BranchID     string
	CompanyID    string
	CashAmount   decimal.Decimal
	Status       string // PENDING | APPROVED | REJECTED
	ApprovalDate *time.Time
	Remarks      string
	CreatedAt    time.Time
}
