package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de ubicación de inventario: pool de sucursal o almacén central de la empresa.
const (
	LocationBranch  = "branch"
	LocationCompany = "company"
)

// Location identifica un pool de inventario (branch_id xor company_id).
type Location struct {
	Type string // LocationBranch | LocationCompany
	ID   string
}

// InventoryItem fila de pool de inventario: stock actual por (ubicación, variación).
// Invariante: Stock >= 0 tras cualquier mutación confirmada. Se crea perezosamente
// en la primera entrada, con el MRP/descuento por defecto de la variación.
type InventoryItem struct {
	LocationType string
	LocationID   string
	VariationID  string
	Stock        decimal.Decimal
	MRP          decimal.Decimal
	Discount     decimal.Decimal
	UpdatedAt    time.Time
}
