package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercio-api/internal/domain"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

var _ repository.AccountRepository = (*AccountRepo)(nil)

// AccountRepo implementación de AccountRepository sobre PostgreSQL.
// Las cuentas se identifican por (type, owner_id) con unique constraint.
type AccountRepo struct {
	q Querier
}

// NewAccountRepository construye el adaptador de cuentas de dinero.
func NewAccountRepository(q Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

// Get obtiene la cuenta; si no existe devuelve una en cero sin crearla.
func (r *AccountRepo) Get(accType, ownerID string) (*entity.MoneyAccount, error) {
	query := `
		SELECT id, type, owner_id, balance, updated_at
		FROM money_accounts WHERE type = $1 AND owner_id = $2`
	var acc entity.MoneyAccount
	err := r.q.QueryRow(context.Background(), query, accType, ownerID).Scan(
		&acc.ID, &acc.Type, &acc.OwnerID, &acc.Balance, &acc.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return &entity.MoneyAccount{Type: accType, OwnerID: ownerID, Balance: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return &acc, nil
}

// GetForUpdate bloquea la fila de la cuenta, creándola con saldo cero si no
// existe. El ON CONFLICT DO NOTHING cubre la carrera entre dos transacciones
// que crean la misma cuenta a la vez.
func (r *AccountRepo) GetForUpdate(accType, ownerID string) (*entity.MoneyAccount, error) {
	insert := `
		INSERT INTO money_accounts (id, type, owner_id, balance, updated_at)
		VALUES ($1, $2, $3, 0, now())
		ON CONFLICT (type, owner_id) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), insert, uuid.New().String(), accType, ownerID); err != nil {
		return nil, fmt.Errorf("ensure account: %w", err)
	}

	query := `
		SELECT id, type, owner_id, balance, updated_at
		FROM money_accounts WHERE type = $1 AND owner_id = $2
		FOR UPDATE`
	var acc entity.MoneyAccount
	err := r.q.QueryRow(context.Background(), query, accType, ownerID).Scan(
		&acc.ID, &acc.Type, &acc.OwnerID, &acc.Balance, &acc.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get account for update: %w", err)
	}
	return &acc, nil
}

// UpdateBalance escribe el saldo de la cuenta.
func (r *AccountRepo) UpdateBalance(id string, balance decimal.Decimal) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE money_accounts SET balance = $2, updated_at = now() WHERE id = $1`, id, balance)
	if err != nil {
		return fmt.Errorf("update account balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CreateFinancialTransaction añade la fila de auditoría (append-only).
func (r *AccountRepo) CreateFinancialTransaction(ft *entity.FinancialTransaction) error {
	query := `
		INSERT INTO financial_transactions
			(id, transaction_type, amount, payment_method, reference_number,
			 employee_id, branch_id, company_id, account_id, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		ft.ID, ft.TransactionType, ft.Amount, ft.PaymentMethod, ft.ReferenceNumber,
		ft.EmployeeID, ft.BranchID, ft.CompanyID, ft.AccountID, ft.Description, ft.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create financial transaction: %w", err)
	}
	return nil
}

// ListFinancialTransactions lista la auditoría de una sucursal, más reciente primero.
func (r *AccountRepo) ListFinancialTransactions(branchID string, limit, offset int) ([]*entity.FinancialTransaction, error) {
	query := `
		SELECT id, transaction_type, amount, payment_method, reference_number,
		       employee_id, branch_id, company_id, account_id, description, created_at
		FROM financial_transactions WHERE branch_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, branchID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list financial transactions: %w", err)
	}
	defer rows.Close()

	var out []*entity.FinancialTransaction
	for rows.Next() {
		var ft entity.FinancialTransaction
		if err := rows.Scan(
			&ft.ID, &ft.TransactionType, &ft.Amount, &ft.PaymentMethod, &ft.ReferenceNumber,
			&ft.EmployeeID, &ft.BranchID, &ft.CompanyID, &ft.AccountID, &ft.Description, &ft.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan financial transaction: %w", err)
		}
		out = append(out, &ft)
	}
	return out, rows.Err()
}
