package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item artículo del catálogo de la empresa.
type Item struct {
	ID         string
	CompanyID  string
	CategoryID string
	Name       string
	GSTRate    decimal.Decimal // porcentaje, ej. 12
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Variation variación vendible de un artículo (talla, color, presentación).
// MRP y Discount son los valores por defecto al crear filas de pool.
type Variation struct {
	ID        string
	ItemID    string
	Name      string
	SKU       string
	MRP       decimal.Decimal
	Discount  decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
