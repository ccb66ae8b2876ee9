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
	_ repository.TransferRepository     = (*TransferRepo)(nil)
	_ repository.StockRequestRepository = (*StockRequestRepo)(nil)
)

// TransferRepo implementación de TransferRepository sobre PostgreSQL.
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador de traslados.
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

const transferColumns = `id, batch_id, from_location_type, from_location_id, to_branch_id,
		item_id, variation_id, quantity, rate, sub_total, gst_rate, gst_amount, grand_total,
		acknowledge, received_quantity, lost_quantity, transfer_date, acknowledged_at, created_by`

// Create inserta un renglón de traslado despachado (acknowledge = false).
func (r *TransferRepo) Create(t *entity.StockTransfer) error {
	query := `
		INSERT INTO stock_transfers (` + transferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.BatchID, t.FromLocationType, t.FromLocationID, t.ToBranchID,
		t.ItemID, t.VariationID, t.Quantity, t.Rate, t.SubTotal, t.GSTRate, t.GSTAmount, t.GrandTotal,
		t.Acknowledge, t.ReceivedQuantity, t.LostQuantity, t.TransferDate, t.AcknowledgedAt, t.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create stock transfer: %w", err)
	}
	return nil
}

// ListByBatch lista los renglones de un lote.
func (r *TransferRepo) ListByBatch(batchID string) ([]*entity.StockTransfer, error) {
	query := `
		SELECT ` + transferColumns + `
		FROM stock_transfers WHERE batch_id = $1
		ORDER BY variation_id`
	rows, err := r.q.Query(context.Background(), query, batchID)
	if err != nil {
		return nil, fmt.Errorf("list transfers by batch: %w", err)
	}
	return scanTransferRows(rows)
}

// ListUnacknowledgedByBatch lista los renglones despachados y aún no
// confirmados del lote, bloqueándolos (SELECT FOR UPDATE) para serializar
// confirmaciones concurrentes.
func (r *TransferRepo) ListUnacknowledgedByBatch(batchID string) ([]*entity.StockTransfer, error) {
	query := `
		SELECT ` + transferColumns + `
		FROM stock_transfers WHERE batch_id = $1 AND acknowledge = false
		ORDER BY variation_id
		FOR UPDATE`
	rows, err := r.q.Query(context.Background(), query, batchID)
	if err != nil {
		return nil, fmt.Errorf("list unacknowledged transfers: %w", err)
	}
	return scanTransferRows(rows)
}

// MarkAcknowledged confirma el renglón con lo recibido y la merma.
func (r *TransferRepo) MarkAcknowledged(id string, received, lost decimal.Decimal, at time.Time) error {
	query := `
		UPDATE stock_transfers
		SET acknowledge = true, received_quantity = $2, lost_quantity = $3, acknowledged_at = $4
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, received, lost, at)
	if err != nil {
		return fmt.Errorf("mark transfer acknowledged: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanTransferRows(rows pgx.Rows) ([]*entity.StockTransfer, error) {
	defer rows.Close()
	var out []*entity.StockTransfer
	for rows.Next() {
		var t entity.StockTransfer
		if err := rows.Scan(
			&t.ID, &t.BatchID, &t.FromLocationType, &t.FromLocationID, &t.ToBranchID,
			&t.ItemID, &t.VariationID, &t.Quantity, &t.Rate, &t.SubTotal, &t.GSTRate, &t.GSTAmount, &t.GrandTotal,
			&t.Acknowledge, &t.ReceivedQuantity, &t.LostQuantity, &t.TransferDate, &t.AcknowledgedAt, &t.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan stock transfer: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

// StockRequestRepo implementación de StockRequestRepository sobre PostgreSQL.
type StockRequestRepo struct {
	q Querier
}

// NewStockRequestRepository construye el adaptador de solicitudes de reabastecimiento.
func NewStockRequestRepository(q Querier) *StockRequestRepo {
	return &StockRequestRepo{q: q}
}

const stockRequestColumns = `id, batch_id, branch_id, company_id, item_id, variation_id,
		quantity, status, request_date, created_by, updated_at`

// Create inserta una solicitud.
func (r *StockRequestRepo) Create(req *entity.StockRequest) error {
	query := `
		INSERT INTO stock_requests (` + stockRequestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		req.ID, req.BatchID, req.BranchID, req.CompanyID, req.ItemID, req.VariationID,
		req.Quantity, req.Status, req.RequestDate, req.CreatedBy, req.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create stock request: %w", err)
	}
	return nil
}

// GetByID obtiene una solicitud por su ID.
func (r *StockRequestRepo) GetByID(id string) (*entity.StockRequest, error) {
	query := `SELECT ` + stockRequestColumns + ` FROM stock_requests WHERE id = $1`
	var req entity.StockRequest
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&req.ID, &req.BatchID, &req.BranchID, &req.CompanyID, &req.ItemID, &req.VariationID,
		&req.Quantity, &req.Status, &req.RequestDate, &req.CreatedBy, &req.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get stock request: %w", err)
	}
	return &req, nil
}

// ListByBatch lista las solicitudes de un lote.
func (r *StockRequestRepo) ListByBatch(batchID string) ([]*entity.StockRequest, error) {
	query := `
		SELECT ` + stockRequestColumns + `
		FROM stock_requests WHERE batch_id = $1
		ORDER BY variation_id`
	rows, err := r.q.Query(context.Background(), query, batchID)
	if err != nil {
		return nil, fmt.Errorf("list stock requests by batch: %w", err)
	}
	return scanRequestRows(rows)
}

// ListByBranch lista las solicitudes de una sucursal, más reciente primero.
func (r *StockRequestRepo) ListByBranch(branchID string, limit, offset int) ([]*entity.StockRequest, error) {
	query := `
		SELECT ` + stockRequestColumns + `
		FROM stock_requests WHERE branch_id = $1
		ORDER BY request_date DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, branchID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock requests by branch: %w", err)
	}
	return scanRequestRows(rows)
}

// UpdateStatus cambia el estado de la solicitud.
func (r *StockRequestRepo) UpdateStatus(id, status string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE stock_requests SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update stock request status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanRequestRows(rows pgx.Rows) ([]*entity.StockRequest, error) {
	defer rows.Close()
	var out []*entity.StockRequest
	for rows.Next() {
		var req entity.StockRequest
		if err := rows.Scan(
			&req.ID, &req.BatchID, &req.BranchID, &req.CompanyID, &req.ItemID, &req.VariationID,
			&req.Quantity, &req.Status, &req.RequestDate, &req.CreatedBy, &req.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock request: %w", err)
		}
		out = append(out, &req)
	}
	return out, rows.Err()
}
