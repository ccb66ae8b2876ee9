package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del turno de caja.
const (
	RegisterOpen   = "OPEN"
	RegisterClosed = "CLOSED"
)

// CounterRegister turno diario de caja de un biller (uno abierto por día).
// El cierre exige un arqueo (CashHandover) no rechazado que lo referencie.
type CounterRegister struct {
	ID             string
	BillerID       string
	BranchID       string
	CompanyID      string
	OpeningBalance decimal.Decimal
	ClosingBalance decimal.Decimal
	Status         string // OPEN | CLOSED
	ShiftStart     time.Time
	ShiftEnd       *time.Time
}
