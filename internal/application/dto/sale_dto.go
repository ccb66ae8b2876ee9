package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineRequest renglón de venta enviado por el cliente. Todos los montos
// se recalculan en el servidor; una discrepancia rechaza la venta completa.
type SaleLineRequest struct {
	ItemID      string          `json:"item_id"`
	VariationID string          `json:"variation_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	SubTotal    decimal.Decimal `json:"sub_total"`
	GSTRate     decimal.Decimal `json:"gst_rate"`
	GSTAmount   decimal.Decimal `json:"gst_amount"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// SplitPayment componentes de un pago dividido. Al menos dos componentes
// no negativos que sumen exactamente el total.
type SplitPayment struct {
	Cash    decimal.Decimal `json:"cash"`
	Bank    decimal.Decimal `json:"bank"`
	Balance decimal.Decimal `json:"balance"`
}

// CreateSaleRequest entrada de CreateSale.
// SaleBy selecciona el pool a descontar: "branch" o "company".
type CreateSaleRequest struct {
	SaleBy         string            `json:"sale_by"`
	CustomerID     string            `json:"customer_id"`
	PaymentMethod  string            `json:"payment_method"` // Cash|UPI|Card|Balance|Split|Due
	Split          *SplitPayment     `json:"split,omitempty"`
	TotalAmount    decimal.Decimal   `json:"total_amount"`
	DiscountAmount decimal.Decimal   `json:"discount_amount"`
	Items          []SaleLineRequest `json:"items"`
}

// SaleLineResponse renglón confirmado.
type SaleLineResponse struct {
	ItemID      string          `json:"item_id"`
	VariationID string          `json:"variation_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	SubTotal    decimal.Decimal `json:"sub_total"`
	GSTRate     decimal.Decimal `json:"gst_rate"`
	GSTAmount   decimal.Decimal `json:"gst_amount"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// SaleResponse venta confirmada, con el round_off calculado por el servidor.
type SaleResponse struct {
	ID            string             `json:"id"`
	InvoiceNumber string             `json:"invoice_number"`
	CustomerID    string             `json:"customer_id"`
	BranchID      string             `json:"branch_id"`
	SaleBy        string             `json:"sale_by"`
	SubTotal      decimal.Decimal    `json:"sub_total"`
	GSTAmount     decimal.Decimal    `json:"gst_amount"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	RoundOff      decimal.Decimal    `json:"round_off"`
	PaymentMethod string             `json:"payment_method"`
	PaymentStatus string             `json:"payment_status"`
	SaleDate      time.Time          `json:"sale_date"`
	Items         []SaleLineResponse `json:"items"`
}
