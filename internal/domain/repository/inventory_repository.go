package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercio-api/internal/domain/entity"
)

// InventoryRepository acceso a los pools de inventario (branch_items /
// company_items, una tabla por tipo de ubicación).
type InventoryRepository interface {
	// Get devuelve la fila del pool; si no existe retorna una fila con
	// stock cero (no la crea).
	Get(loc entity.Location, variationID string) (*entity.InventoryItem, error)
	// GetForUpdate igual que Get pero bloqueando la fila (SELECT FOR UPDATE).
	// Toda verificación stock>=cantidad seguida de descuento pasa por aquí.
	GetForUpdate(loc entity.Location, variationID string) (*entity.InventoryItem, error)
	// Upsert inserta o actualiza la fila del pool.
	Upsert(item *entity.InventoryItem) error
}

// StockRegisterRepository acceso al libro de inventario (append-only).
type StockRegisterRepository interface {
	Create(e *entity.StockRegisterEntry) error
	ListByReference(referenceID string) ([]*entity.StockRegisterEntry, error)
	ListByLocation(loc entity.Location, variationID string, limit, offset int) ([]*entity.StockRegisterEntry, error)
	// GetSaleEntry devuelve el asiento OUT de venta para (venta, variación).
	GetSaleEntry(saleID, variationID string) (*entity.StockRegisterEntry, error)
	// SumReturnedQuantity suma lo ya devuelto de una variación sobre todas
	// las devoluciones que referencian la venta.
	SumReturnedQuantity(saleID, variationID string) (decimal.Decimal, error)
}
