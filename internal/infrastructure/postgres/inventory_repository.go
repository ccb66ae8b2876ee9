package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercio-api/internal/domain"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

var (
	_ repository.InventoryRepository     = (*InventoryRepo)(nil)
	_ repository.StockRegisterRepository = (*StockRegisterRepo)(nil)
)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL.
// Una sola tabla inventory_items cubre los pools de sucursal y de empresa,
// discriminados por location_type.
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de pools de inventario.
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Get obtiene la fila del pool; si no existe devuelve una en cero sin crearla.
// UpdatedAt cero delata que la fila aún no existe.
func (r *InventoryRepo) Get(loc entity.Location, variationID string) (*entity.InventoryItem, error) {
	return r.get(loc, variationID, false)
}

// GetForUpdate bloquea la fila del pool, creándola en cero si no existe.
// Sin fila previa un SELECT FOR UPDATE no bloquea nada y dos movimientos
// concurrentes se pisarían el stock; el ON CONFLICT DO NOTHING cubre la
// carrera entre dos transacciones que crean el mismo pool a la vez.
func (r *InventoryRepo) GetForUpdate(loc entity.Location, variationID string) (*entity.InventoryItem, error) {
	insert := `
		INSERT INTO inventory_items (location_type, location_id, variation_id, stock, mrp, discount, updated_at)
		VALUES ($1, $2, $3, 0, 0, 0, now())
		ON CONFLICT (location_type, location_id, variation_id) DO NOTHING`
	tag, err := r.q.Exec(context.Background(), insert, loc.Type, loc.ID, variationID)
	if err != nil {
		return nil, fmt.Errorf("ensure inventory item: %w", err)
	}

	it, err := r.get(loc, variationID, true)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 1 {
		// La fila la creó esta transacción: se reporta como nueva para que
		// el caller aplique los valores por defecto de la variación.
		it.UpdatedAt = time.Time{}
	}
	return it, nil
}

func (r *InventoryRepo) get(loc entity.Location, variationID string, forUpdate bool) (*entity.InventoryItem, error) {
	query := `
		SELECT location_type, location_id, variation_id, stock, mrp, discount, updated_at
		FROM inventory_items
		WHERE location_type = $1 AND location_id = $2 AND variation_id = $3`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var it entity.InventoryItem
	err := r.q.QueryRow(context.Background(), query, loc.Type, loc.ID, variationID).Scan(
		&it.LocationType, &it.LocationID, &it.VariationID, &it.Stock, &it.MRP, &it.Discount, &it.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return &entity.InventoryItem{
				LocationType: loc.Type,
				LocationID:   loc.ID,
				VariationID:  variationID,
				Stock:        decimal.Zero,
			}, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return &it, nil
}

// Upsert inserta o actualiza la fila del pool.
func (r *InventoryRepo) Upsert(item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (location_type, location_id, variation_id, stock, mrp, discount, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (location_type, location_id, variation_id)
		DO UPDATE SET stock = EXCLUDED.stock, mrp = EXCLUDED.mrp, discount = EXCLUDED.discount, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		item.LocationType, item.LocationID, item.VariationID, item.Stock, item.MRP, item.Discount,
	)
	if err != nil {
		return fmt.Errorf("upsert inventory item: %w", err)
	}
	return nil
}

// StockRegisterRepo implementación de StockRegisterRepository sobre PostgreSQL.
// La tabla es append-only: nunca UPDATE ni DELETE.
type StockRegisterRepo struct {
	q Querier
}

// NewStockRegisterRepository construye el adaptador del libro de inventario.
func NewStockRegisterRepository(q Querier) *StockRegisterRepo {
	return &StockRegisterRepo{q: q}
}

const stockRegisterColumns = `id, reference_id, item_id, variation_id, location_type, location_id,
		transaction_type, flow_type, quantity, loss_quantity, rate, sub_total, gst_rate, gst_amount,
		grand_total, transaction_date, batch_id, remarks, created_at, created_by`

// Create inserta un asiento del libro.
func (r *StockRegisterRepo) Create(e *entity.StockRegisterEntry) error {
	query := `
		INSERT INTO stock_register (` + stockRegisterColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.ReferenceID, e.ItemID, e.VariationID, e.LocationType, e.LocationID,
		e.TransactionType, e.FlowType, e.Quantity, e.LossQuantity, e.Rate, e.SubTotal, e.GSTRate, e.GSTAmount,
		e.GrandTotal, e.TransactionDate, e.BatchID, e.Remarks, e.CreatedAt, e.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("create stock register entry: %w", err)
	}
	return nil
}

// ListByReference lista los asientos de una referencia (venta, devolución o lote).
func (r *StockRegisterRepo) ListByReference(referenceID string) ([]*entity.StockRegisterEntry, error) {
	query := `
		SELECT ` + stockRegisterColumns + `
		FROM stock_register WHERE reference_id = $1
		ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, referenceID)
	if err != nil {
		return nil, fmt.Errorf("list stock register by reference: %w", err)
	}
	return scanRegisterRows(rows)
}

// ListByLocation lista los movimientos de un pool, más reciente primero.
// variationID vacío trae todas las variaciones de la ubicación.
func (r *StockRegisterRepo) ListByLocation(loc entity.Location, variationID string, limit, offset int) ([]*entity.StockRegisterEntry, error) {
	query := `
		SELECT ` + stockRegisterColumns + `
		FROM stock_register
		WHERE location_type = $1 AND location_id = $2
		  AND ($3 = '' OR variation_id = $3)
		ORDER BY transaction_date DESC, created_at DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query, loc.Type, loc.ID, variationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock register by location: %w", err)
	}
	return scanRegisterRows(rows)
}

// GetSaleEntry devuelve el asiento OUT de venta para (venta, variación).
func (r *StockRegisterRepo) GetSaleEntry(saleID, variationID string) (*entity.StockRegisterEntry, error) {
	query := `
		SELECT ` + stockRegisterColumns + `
		FROM stock_register
		WHERE reference_id = $1 AND variation_id = $2
		  AND transaction_type = $3 AND flow_type = $4`
	var e entity.StockRegisterEntry
	err := scanRegisterRow(
		r.q.QueryRow(context.Background(), query, saleID, variationID, entity.TxnSale, entity.FlowOut), &e)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get sale entry: %w", err)
	}
	return &e, nil
}

// SumReturnedQuantity suma los IN de devolución de la variación sobre todas
// las devoluciones que referencian la venta.
func (r *StockRegisterRepo) SumReturnedQuantity(saleID, variationID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(sr.quantity), 0)
		FROM stock_register sr
		JOIN sale_returns ret ON ret.id = sr.reference_id
		WHERE ret.sale_id = $1 AND sr.variation_id = $2
		  AND sr.transaction_type = $3 AND sr.flow_type = $4`
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(), query,
		saleID, variationID, entity.TxnSaleReturn, entity.FlowIn).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum returned quantity: %w", err)
	}
	return sum, nil
}

func scanRegisterRow(row pgx.Row, e *entity.StockRegisterEntry) error {
	return row.Scan(
		&e.ID, &e.ReferenceID, &e.ItemID, &e.VariationID, &e.LocationType, &e.LocationID,
		&e.TransactionType, &e.FlowType, &e.Quantity, &e.LossQuantity, &e.Rate, &e.SubTotal, &e.GSTRate, &e.GSTAmount,
		&e.GrandTotal, &e.TransactionDate, &e.BatchID, &e.Remarks, &e.CreatedAt, &e.CreatedBy,
	)
}

func scanRegisterRows(rows pgx.Rows) ([]*entity.StockRegisterEntry, error) {
	defer rows.Close()
	var out []*entity.StockRegisterEntry
	for rows.Next() {
		var e entity.StockRegisterEntry
		if err := scanRegisterRow(rows, &e); err != nil {
			return nil, fmt.Errorf("scan stock register entry: %w", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}
