package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercio-api/internal/domain"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

var (
	_ repository.CompanyRepository  = (*CompanyRepo)(nil)
	_ repository.BranchRepository   = (*BranchRepo)(nil)
	_ repository.EmployeeRepository = (*EmployeeRepo)(nil)
	_ repository.ItemRepository     = (*ItemRepo)(nil)
	_ repository.CustomerRepository = (*CustomerRepo)(nil)
)

// CompanyRepo implementación de CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de empresas. Pasar pool o tx (Querier).
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// GetByID obtiene una empresa por su ID.
func (r *CompanyRepo) GetByID(id string) (*entity.Company, error) {
	query := `
		SELECT id, name, gst_number, phone, email, address, created_at, updated_at
		FROM companies WHERE id = $1`
	var c entity.Company
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.Name, &c.GSTNumber, &c.Phone, &c.Email, &c.Address, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}

// BranchRepo implementación de BranchRepository sobre PostgreSQL.
type BranchRepo struct {
	q Querier
}

// NewBranchRepository construye el adaptador de sucursales.
func NewBranchRepository(q Querier) *BranchRepo {
	return &BranchRepo{q: q}
}

// GetByID obtiene una sucursal por su ID.
func (r *BranchRepo) GetByID(id string) (*entity.Branch, error) {
	query := `
		SELECT id, company_id, name, invoice_prefix, address, phone, created_at, updated_at
		FROM branches WHERE id = $1`
	var b entity.Branch
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&b.ID, &b.CompanyID, &b.Name, &b.InvoicePrefix, &b.Address, &b.Phone, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get branch: %w", err)
	}
	return &b, nil
}

// List lista las sucursales de una empresa.
func (r *BranchRepo) List(companyID string) ([]*entity.Branch, error) {
	query := `
		SELECT id, company_id, name, invoice_prefix, address, phone, created_at, updated_at
		FROM branches WHERE company_id = $1
		ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	defer rows.Close()

	var out []*entity.Branch
	for rows.Next() {
		var b entity.Branch
		if err := rows.Scan(&b.ID, &b.CompanyID, &b.Name, &b.InvoicePrefix, &b.Address, &b.Phone, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan branch: %w", err)
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}

// NextInvoiceSeq incrementa y devuelve la secuencia de factura de la sucursal
// para el año. La fila contadora se crea en la primera venta del año; el
// UPDATE del upsert la bloquea, serializando las ventas concurrentes de la
// misma sucursal.
func (r *BranchRepo) NextInvoiceSeq(branchID string, year int) (int64, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM branches WHERE id = $1)`, branchID).Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("check branch: %w", err)
	}
	if !exists {
		return 0, domain.ErrNotFound
	}

	query := `
		INSERT INTO invoice_sequences (branch_id, year, seq)
		VALUES ($1, $2, 1)
		ON CONFLICT (branch_id, year)
		DO UPDATE SET seq = invoice_sequences.seq + 1
		RETURNING seq`
	var seq int64
	if err := r.q.QueryRow(context.Background(), query, branchID, year).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next invoice seq: %w", err)
	}
	return seq, nil
}

// EmployeeRepo implementación de EmployeeRepository sobre PostgreSQL.
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador de empleados.
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

// Create inserta un empleado. El email es único por empresa.
func (r *EmployeeRepo) Create(e *entity.Employee) error {
	query := `
		INSERT INTO employees (id, company_id, branch_id, name, email, phone, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.CompanyID, e.BranchID, e.Name, e.Email, e.Phone, e.PasswordHash, e.Role, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create employee: %w", err)
	}
	return nil
}

// GetByID obtiene un empleado por su ID.
func (r *EmployeeRepo) GetByID(id string) (*entity.Employee, error) {
	query := `
		SELECT id, company_id, branch_id, name, email, phone, password_hash, role, created_at, updated_at
		FROM employees WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByEmail obtiene un empleado por empresa y email (login).
func (r *EmployeeRepo) GetByEmail(companyID, email string) (*entity.Employee, error) {
	query := `
		SELECT id, company_id, branch_id, name, email, phone, password_hash, role, created_at, updated_at
		FROM employees WHERE company_id = $1 AND email = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, companyID, email))
}

func (r *EmployeeRepo) scanOne(row interface{ Scan(...any) error }) (*entity.Employee, error) {
	var e entity.Employee
	err := row.Scan(&e.ID, &e.CompanyID, &e.BranchID, &e.Name, &e.Email, &e.Phone, &e.PasswordHash, &e.Role, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return &e, nil
}

// ItemRepo implementación de ItemRepository sobre PostgreSQL.
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador del catálogo.
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// GetByID obtiene un artículo por su ID.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	query := `
		SELECT id, company_id, category_id, name, gst_rate, created_at, updated_at
		FROM items WHERE id = $1`
	var it entity.Item
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&it.ID, &it.CompanyID, &it.CategoryID, &it.Name, &it.GSTRate, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

// GetVariation obtiene una variación por su ID.
func (r *ItemRepo) GetVariation(id string) (*entity.Variation, error) {
	query := `
		SELECT id, item_id, name, sku, mrp, discount, created_at, updated_at
		FROM variations WHERE id = $1`
	var v entity.Variation
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&v.ID, &v.ItemID, &v.Name, &v.SKU, &v.MRP, &v.Discount, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get variation: %w", err)
	}
	return &v, nil
}

// CustomerRepo implementación de CustomerRepository sobre PostgreSQL.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador de clientes.
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create inserta un cliente.
func (r *CustomerRepo) Create(c *entity.Customer) error {
	query := `
		INSERT INTO customers (id, company_id, name, phone, email, customer_type, balance, credit_limit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.CompanyID, c.Name, c.Phone, c.Email, c.CustomerType, c.Balance, c.CreditLimit, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por su ID.
func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.get(id, false)
}

// GetForUpdate obtiene el cliente bloqueando la fila (SELECT FOR UPDATE).
func (r *CustomerRepo) GetForUpdate(id string) (*entity.Customer, error) {
	return r.get(id, true)
}

func (r *CustomerRepo) get(id string, forUpdate bool) (*entity.Customer, error) {
	query := `
		SELECT id, company_id, name, phone, email, customer_type, balance, credit_limit, created_at, updated_at
		FROM customers WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var c entity.Customer
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.CompanyID, &c.Name, &c.Phone, &c.Email, &c.CustomerType, &c.Balance, &c.CreditLimit, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// UpdateBalance escribe el saldo del cliente.
func (r *CustomerRepo) UpdateBalance(id string, balance decimal.Decimal) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE customers SET balance = $2, updated_at = now() WHERE id = $1`, id, balance)
	if err != nil {
		return fmt.Errorf("update customer balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista los clientes de una empresa.
func (r *CustomerRepo) List(companyID string, limit, offset int) ([]*entity.Customer, error) {
	query := `
		SELECT id, company_id, name, phone, email, customer_type, balance, credit_limit, created_at, updated_at
		FROM customers WHERE company_id = $1
		ORDER BY name
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var out []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.Name, &c.Phone, &c.Email, &c.CustomerType, &c.Balance, &c.CreditLimit, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}
