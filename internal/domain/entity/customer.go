package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de cliente. Las devoluciones B2C solo se aceptan dentro del mes de la venta.
const (
	CustomerTypeB2C = "B2C"
	CustomerTypeB2B = "B2B"
)

// Customer cliente de la empresa.
// Balance > 0: el cliente debe (venta a crédito). Balance < 0: saldo a favor
// del cliente (anticipo o devolución). CreditLimit acota el balance positivo.
type Customer struct {
	ID           string
	CompanyID    string
	Name         string
	Phone        string
	Email        string
	CustomerType string
	Balance      decimal.Decimal
	CreditLimit  decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
