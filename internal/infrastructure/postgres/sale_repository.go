package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Comercio-api/internal/domain"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

var (
	_ repository.SaleRepository       = (*SaleRepo)(nil)
	_ repository.SaleReturnRepository = (*SaleReturnRepo)(nil)
)

// SaleRepo implementación de SaleRepository sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, invoice_number, customer_id, company_id, branch_id, employee_id, sale_by,
		sub_total, gst_amount, discount_amount, total_amount, round_off,
		payment_method, payment_status, sale_date, created_at`

// Create inserta la cabecera de la venta. (branch_id, invoice_number) es único:
// una colisión de número de factura se reporta como conflicto.
func (r *SaleRepo) Create(s *entity.Sale) error {
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.InvoiceNumber, s.CustomerID, s.CompanyID, s.BranchID, s.EmployeeID, s.SaleBy,
		s.SubTotal, s.GSTAmount, s.DiscountAmount, s.TotalAmount, s.RoundOff,
		s.PaymentMethod, s.PaymentStatus, s.SaleDate, s.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("create sale: %w", err)
	}
	return nil
}

// CreateItem inserta un renglón de la venta.
func (r *SaleRepo) CreateItem(it *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, item_id, variation_id, quantity, rate, sub_total, gst_rate, gst_amount, total_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		it.ID, it.SaleID, it.ItemID, it.VariationID, it.Quantity, it.Rate, it.SubTotal, it.GSTRate, it.GSTAmount, it.TotalAmount,
	)
	if err != nil {
		return fmt.Errorf("create sale item: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por su ID.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.InvoiceNumber, &s.CustomerID, &s.CompanyID, &s.BranchID, &s.EmployeeID, &s.SaleBy,
		&s.SubTotal, &s.GSTAmount, &s.DiscountAmount, &s.TotalAmount, &s.RoundOff,
		&s.PaymentMethod, &s.PaymentStatus, &s.SaleDate, &s.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// GetItems lista los renglones de una venta.
func (r *SaleRepo) GetItems(saleID string) ([]*entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, item_id, variation_id, quantity, rate, sub_total, gst_rate, gst_amount, total_amount
		FROM sale_items WHERE sale_id = $1
		ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("get sale items: %w", err)
	}
	defer rows.Close()

	var out []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ItemID, &it.VariationID, &it.Quantity, &it.Rate, &it.SubTotal, &it.GSTRate, &it.GSTAmount, &it.TotalAmount); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		out = append(out, &it)
	}
	return out, rows.Err()
}

// ListByBranch lista las ventas de una sucursal, más reciente primero.
func (r *SaleRepo) ListByBranch(branchID string, limit, offset int) ([]*entity.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales WHERE branch_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, branchID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var out []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(
			&s.ID, &s.InvoiceNumber, &s.CustomerID, &s.CompanyID, &s.BranchID, &s.EmployeeID, &s.SaleBy,
			&s.SubTotal, &s.GSTAmount, &s.DiscountAmount, &s.TotalAmount, &s.RoundOff,
			&s.PaymentMethod, &s.PaymentStatus, &s.SaleDate, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// SaleReturnRepo implementación de SaleReturnRepository sobre PostgreSQL.
type SaleReturnRepo struct {
	q Querier
}

// NewSaleReturnRepository construye el adaptador de devoluciones.
func NewSaleReturnRepository(q Querier) *SaleReturnRepo {
	return &SaleReturnRepo{q: q}
}

// Create inserta la cabecera de la devolución.
func (r *SaleReturnRepo) Create(ret *entity.SaleReturn) error {
	query := `
		INSERT INTO sale_returns (id, sale_id, customer_id, company_id, branch_id, manager_id, return_amount, return_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		ret.ID, ret.SaleID, ret.CustomerID, ret.CompanyID, ret.BranchID, ret.ManagerID, ret.ReturnAmount, ret.ReturnDate, ret.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create sale return: %w", err)
	}
	return nil
}

// GetByID obtiene una devolución por su ID.
func (r *SaleReturnRepo) GetByID(id string) (*entity.SaleReturn, error) {
	query := `
		SELECT id, sale_id, customer_id, company_id, branch_id, manager_id, return_amount, return_date, created_at
		FROM sale_returns WHERE id = $1`
	var ret entity.SaleReturn
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&ret.ID, &ret.SaleID, &ret.CustomerID, &ret.CompanyID, &ret.BranchID, &ret.ManagerID, &ret.ReturnAmount, &ret.ReturnDate, &ret.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get sale return: %w", err)
	}
	return &ret, nil
}

// ListBySale lista las devoluciones de una venta en orden de creación.
func (r *SaleReturnRepo) ListBySale(saleID string) ([]*entity.SaleReturn, error) {
	query := `
		SELECT id, sale_id, customer_id, company_id, branch_id, manager_id, return_amount, return_date, created_at
		FROM sale_returns WHERE sale_id = $1
		ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale returns: %w", err)
	}
	defer rows.Close()

	var out []*entity.SaleReturn
	for rows.Next() {
		var ret entity.SaleReturn
		if err := rows.Scan(&ret.ID, &ret.SaleID, &ret.CustomerID, &ret.CompanyID, &ret.BranchID, &ret.ManagerID, &ret.ReturnAmount, &ret.ReturnDate, &ret.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale return: %w", err)
		}
		out = append(out, &ret)
	}
	return out, rows.Err()
}
