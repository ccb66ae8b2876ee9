package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de cuenta de dinero. Cash y PettyCash pertenecen a una sucursal;
// Bank pertenece a la empresa. Ninguna puede quedar en negativo.
// El saldo de cliente vive en Customer (puede ser negativo, acotado por CreditLimit).
const (
	AccountCash      = "CASH"
	AccountBank      = "BANK"
	AccountPettyCash = "PETTY_CASH"
)

// MoneyAccount cuenta de dinero identificada por (tipo, dueño).
type MoneyAccount struct {
	ID        string
	Type      string // AccountCash | AccountBank | AccountPettyCash
	OwnerID   string // branch_id o company_id según el tipo
	Balance   decimal.Decimal
	UpdatedAt time.Time
}
