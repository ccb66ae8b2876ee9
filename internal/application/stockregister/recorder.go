// Package stockregister empareja el asiento inmutable del libro de
// inventario con la mutación del pool. Las dos escrituras van siempre en la
// misma transacción: un asiento sin su mutación (o al revés) es un estado
// de corrupción que este diseño impide por construcción.
package stockregister

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercio-api/internal/domain"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

// Recorder registra movimientos de stock. Sin estado: recibe los
// repositorios atados a la transacción del caller.
type Recorder struct{}

// New construye el recorder.
func New() *Recorder { return &Recorder{} }

// Movement entrada de RecordInTx. DefaultMRP/DefaultDiscount se usan al
// crear perezosamente la fila de pool en un IN.
type Movement struct {
	Location        entity.Location
	ItemID          string
	VariationID     string
	FlowType        string // IN | OUT
	TransactionType string // SALE | SALE_RETURN | TRANSFER | PURCHASE | ADJUSTMENT
	Quantity        decimal.Decimal
	LossQuantity    decimal.Decimal
	Rate            decimal.Decimal
	SubTotal        decimal.Decimal
	GSTRate         decimal.Decimal
	GSTAmount       decimal.Decimal
	GrandTotal      decimal.Decimal
	ReferenceID     string
	BatchID         string
	Remarks         string
	Date            time.Time
	CreatedBy       string
	DefaultMRP      decimal.Decimal
	DefaultDiscount decimal.Decimal
}

// RecordInTx bloquea la fila del pool (SELECT FOR UPDATE), aplica el
// movimiento y añade el asiento, todo con los repos de la misma tx.
// OUT falla con ErrInsufficientStock si stock < cantidad; IN crea la fila
// con los valores por defecto de la variación si no existe.
func (r *Recorder) RecordInTx(tx repository.Tx, m Movement) error {
	if m.Quantity.IsNegative() {
		return domain.ErrInvalidInput
	}

	pool, err := tx.Inventory.GetForUpdate(m.Location, m.VariationID)
	if err != nil {
		return err
	}

	switch m.FlowType {
	case entity.FlowOut:
		if pool.Stock.LessThan(m.Quantity) {
			return domain.ErrInsufficientStock
		}
		pool.Stock = pool.Stock.Sub(m.Quantity)
	case entity.FlowIn:
		if pool.UpdatedAt.IsZero() {
			// Fila nueva: toma MRP/descuento por defecto de la variación
			pool.MRP = m.DefaultMRP
			pool.Discount = m.DefaultDiscount
		}
		pool.Stock = pool.Stock.Add(m.Quantity)
	default:
		return domain.ErrInvalidInput
	}

	pool.UpdatedAt = m.Date
	if err := tx.Inventory.Upsert(pool); err != nil {
		return err
	}

	return tx.StockRegister.Create(&entity.StockRegisterEntry{
		ID:              uuid.New().String(),
		ReferenceID:     m.ReferenceID,
		ItemID:          m.ItemID,
		VariationID:     m.VariationID,
		LocationType:    m.Location.Type,
		LocationID:      m.Location.ID,
		TransactionType: m.TransactionType,
		FlowType:        m.FlowType,
		Quantity:        m.Quantity,
		LossQuantity:    m.LossQuantity,
		Rate:            m.Rate,
		SubTotal:        m.SubTotal,
		GSTRate:         m.GSTRate,
		GSTAmount:       m.GSTAmount,
		GrandTotal:      m.GrandTotal,
		TransactionDate: m.Date,
		BatchID:         m.BatchID,
		Remarks:         m.Remarks,
		CreatedAt:       m.Date,
		CreatedBy:       m.CreatedBy,
	})
}
