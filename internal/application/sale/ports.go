package sale

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceLine renglón de la factura a renderizar.
type InvoiceLine struct {
	ItemName    string
	Variation   string
	SKU         string
	Quantity    decimal.Decimal
	Rate        decimal.Decimal
	SubTotal    decimal.Decimal
	GSTRate     decimal.Decimal
	GSTAmount   decimal.Decimal
	TotalAmount decimal.Decimal
}

// InvoiceData datos estructurados de la venta para el PDF.
type InvoiceData struct {
	InvoiceNumber  string
	SaleDate       time.Time
	CompanyName    string
	CompanyGSTN    string
	CompanyAddress string
	BranchName     string
	BranchAddress  string
	CustomerName   string
	CustomerPhone  string
	Lines          []InvoiceLine
	SubTotal       decimal.Decimal
	GSTAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	RoundOff       decimal.Decimal
	TotalAmount    decimal.Decimal
	PaymentMethod  string
}

// InvoiceRenderer genera el PDF de la factura.
type InvoiceRenderer interface {
	Render(data InvoiceData) ([]byte, error)
}

// ObjectStorage sube el PDF y devuelve su URL pública.
type ObjectStorage interface {
	Store(ctx context.Context, path string, content []byte, contentType string) (string, error)
}

// Notifier envía un mensaje de plantilla (WhatsApp) con adjunto opcional.
// Se invoca solo después del commit; su fallo nunca revierte la venta.
type Notifier interface {
	Notify(ctx context.Context, templateID, recipient string, placeholders []string, attachmentURL string) error
}
