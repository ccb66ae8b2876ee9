package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercio-api/internal/domain"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

var _ repository.ShiftRepository = (*ShiftRepo)(nil)

// ShiftRepo implementación de ShiftRepository sobre PostgreSQL.
type ShiftRepo struct {
	q Querier
}

// NewShiftRepository construye el adaptador de turnos y arqueos.
func NewShiftRepository(q Querier) *ShiftRepo {
	return &ShiftRepo{q: q}
}

const registerColumns = `id, biller_id, branch_id, company_id, opening_balance, closing_balance,
		status, shift_start, shift_end`

// CreateRegister inserta un turno de caja.
func (r *ShiftRepo) CreateRegister(reg *entity.CounterRegister) error {
	query := `
		INSERT INTO counter_registers (` + registerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		reg.ID, reg.BillerID, reg.BranchID, reg.CompanyID, reg.OpeningBalance, reg.ClosingBalance,
		reg.Status, reg.ShiftStart, reg.ShiftEnd,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create counter register: %w", err)
	}
	return nil
}

// GetOpenRegister devuelve el turno OPEN del biller para el día dado (nil si no hay).
func (r *ShiftRepo) GetOpenRegister(billerID string, day time.Time) (*entity.CounterRegister, error) {
	return r.getOpen(billerID, day, false)
}

// GetOpenRegisterForUpdate igual pero bloqueando la fila.
func (r *ShiftRepo) GetOpenRegisterForUpdate(billerID string, day time.Time) (*entity.CounterRegister, error) {
	return r.getOpen(billerID, day, true)
}

func (r *ShiftRepo) getOpen(billerID string, day time.Time, forUpdate bool) (*entity.CounterRegister, error) {
	if forUpdate {
		// Sin turno abierto no hay fila que bloquear: el advisory lock por
		// biller serializa dos check-in simultáneos del mismo cajero hasta
		// el commit de la transacción.
		if _, err := r.q.Exec(context.Background(),
			`SELECT pg_advisory_xact_lock(hashtext($1))`, billerID); err != nil {
			return nil, fmt.Errorf("lock biller: %w", err)
		}
	}
	query := `
		SELECT ` + registerColumns + `
		FROM counter_registers
		WHERE biller_id = $1 AND status = $2 AND shift_start::date = $3::date`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var reg entity.CounterRegister
	err := r.q.QueryRow(context.Background(), query, billerID, entity.RegisterOpen, day).Scan(
		&reg.ID, &reg.BillerID, &reg.BranchID, &reg.CompanyID, &reg.OpeningBalance, &reg.ClosingBalance,
		&reg.Status, &reg.ShiftStart, &reg.ShiftEnd,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get open register: %w", err)
	}
	return &reg, nil
}

// GetRegisterByID obtiene un turno por su ID.
func (r *ShiftRepo) GetRegisterByID(id string) (*entity.CounterRegister, error) {
	query := `SELECT ` + registerColumns + ` FROM counter_registers WHERE id = $1`
	var reg entity.CounterRegister
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&reg.ID, &reg.BillerID, &reg.BranchID, &reg.CompanyID, &reg.OpeningBalance, &reg.ClosingBalance,
		&reg.Status, &reg.ShiftStart, &reg.ShiftEnd,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get register: %w", err)
	}
	return &reg, nil
}

// CloseRegister cierra el turno con el saldo de cierre.
func (r *ShiftRepo) CloseRegister(id string, closing decimal.Decimal, end time.Time) error {
	query := `
		UPDATE counter_registers
		SET status = $2, closing_balance = $3, shift_end = $4
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, entity.RegisterClosed, closing, end)
	if err != nil {
		return fmt.Errorf("close register: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

const handoverColumns = `id, register_id, biller_id, manager_id, branch_id, company_id,
		cash_amount, status, approval_date, remarks, created_at`

// CreateHandover inserta un arqueo de caja.
func (r *ShiftRepo) CreateHandover(h *entity.CashHandover) error {
	query := `
		INSERT INTO cash_handovers (` + handoverColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		h.ID, h.RegisterID, h.BillerID, h.ManagerID, h.BranchID, h.CompanyID,
		h.CashAmount, h.Status, h.ApprovalDate, h.Remarks, h.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create cash handover: %w", err)
	}
	return nil
}

// GetHandoverByID obtiene un arqueo por su ID.
func (r *ShiftRepo) GetHandoverByID(id string) (*entity.CashHandover, error) {
	return r.getHandover(id, false)
}

// GetHandoverForUpdate bloquea la fila del arqueo para la transición de estado.
func (r *ShiftRepo) GetHandoverForUpdate(id string) (*entity.CashHandover, error) {
	return r.getHandover(id, true)
}

func (r *ShiftRepo) getHandover(id string, forUpdate bool) (*entity.CashHandover, error) {
	query := `SELECT ` + handoverColumns + ` FROM cash_handovers WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var h entity.CashHandover
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&h.ID, &h.RegisterID, &h.BillerID, &h.ManagerID, &h.BranchID, &h.CompanyID,
		&h.CashAmount, &h.Status, &h.ApprovalDate, &h.Remarks, &h.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get cash handover: %w", err)
	}
	return &h, nil
}

// ListBlockingByBiller devuelve los arqueos que impiden un nuevo check-in:
// PENDING siempre; REJECTED mientras el mismo turno no tenga otro APPROVED.
func (r *ShiftRepo) ListBlockingByBiller(billerID string) ([]*entity.CashHandover, error) {
	query := `
		SELECT ` + handoverColumns + `
		FROM cash_handovers h
		WHERE h.biller_id = $1
		  AND (h.status = $2
		       OR (h.status = $3 AND NOT EXISTS (
		             SELECT 1 FROM cash_handovers a
		             WHERE a.register_id = h.register_id AND a.status = $4)))
		ORDER BY h.created_at`
	rows, err := r.q.Query(context.Background(), query,
		billerID, entity.HandoverPending, entity.HandoverRejected, entity.HandoverApproved)
	if err != nil {
		return nil, fmt.Errorf("list blocking handovers: %w", err)
	}
	defer rows.Close()

	var out []*entity.CashHandover
	for rows.Next() {
		var h entity.CashHandover
		if err := rows.Scan(
			&h.ID, &h.RegisterID, &h.BillerID, &h.ManagerID, &h.BranchID, &h.CompanyID,
			&h.CashAmount, &h.Status, &h.ApprovalDate, &h.Remarks, &h.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan cash handover: %w", err)
		}
		out = append(out, &h)
	}
	return out, rows.Err()
}

// GetNonRejectedByRegister devuelve un arqueo PENDING o APPROVED que
// referencia el turno (nil si no hay).
func (r *ShiftRepo) GetNonRejectedByRegister(registerID string) (*entity.CashHandover, error) {
	query := `
		SELECT ` + handoverColumns + `
		FROM cash_handovers
		WHERE register_id = $1 AND status <> $2
		ORDER BY created_at DESC
		LIMIT 1`
	var h entity.CashHandover
	err := r.q.QueryRow(context.Background(), query, registerID, entity.HandoverRejected).Scan(
		&h.ID, &h.RegisterID, &h.BillerID, &h.ManagerID, &h.BranchID, &h.CompanyID,
		&h.CashAmount, &h.Status, &h.ApprovalDate, &h.Remarks, &h.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get non-rejected handover: %w", err)
	}
	return &h, nil
}

// UpdateHandoverStatus aplica la transición de estado del arqueo.
func (r *ShiftRepo) UpdateHandoverStatus(id, status, managerID, remarks string, at time.Time) error {
	query := `
		UPDATE cash_handovers
		SET status = $2,
		    manager_id = CASE WHEN $3 <> '' THEN $3 ELSE manager_id END,
		    remarks = CASE WHEN $4 <> '' THEN $4 ELSE remarks END,
		    approval_date = $5
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, status, managerID, remarks, at)
	if err != nil {
		return fmt.Errorf("update handover status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
