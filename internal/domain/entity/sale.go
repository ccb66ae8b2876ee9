package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados en punto de venta.
const (
	PaymentCash    = "Cash"
	PaymentUPI     = "UPI"
	PaymentCard    = "Card"
	PaymentBalance = "Balance"
	PaymentSplit   = "Split"
	PaymentDue     = "Due"
)

// Estado de pago de la venta.
const (
	PaymentStatusPaid = "Paid"
	PaymentStatusDue  = "Due"
)

// Sale cabecera de una venta confirmada. Inmutable una vez confirmada:
// la única vía de reversa es una devolución (SaleReturn).
// TotalAmount es la suma de renglones redondeada al entero; RoundOff guarda
// el delta contra la suma exacta.
type Sale struct {
	ID             string
	InvoiceNumber  string // {prefix}/{año}/{secuencia 5 dígitos}, único por sucursal
	CustomerID     string
	CompanyID      string
	BranchID       string
	EmployeeID     string // biller
	SaleBy         string // LocationBranch | LocationCompany: pool que se descuenta
	SubTotal       decimal.Decimal
	GSTAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	TotalAmount    decimal.Decimal
	RoundOff       decimal.Decimal
	PaymentMethod  string
	PaymentStatus  string // Paid | Due
	SaleDate       time.Time
	CreatedAt      time.Time
}

// SaleItem renglón de venta. Los totales llegan del cliente y se recalculan
// en el servidor antes de confirmar.
type SaleItem struct {
	ID          string
	SaleID      string
	ItemID      string
	VariationID string
	Quantity    decimal.Decimal
	Rate        decimal.Decimal
	SubTotal    decimal.Decimal
	GSTRate     decimal.Decimal
	GSTAmount   decimal.Decimal
	TotalAmount decimal.Decimal
}
