package entity

import "time"

// Branch sucursal de una empresa. InvoicePrefix encabeza el número de
// factura ({prefix}/{año}/{secuencia}).
type Branch struct {
	ID            string
	CompanyID     string
	Name          string
	InvoicePrefix string
	Address       string
	Phone         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
