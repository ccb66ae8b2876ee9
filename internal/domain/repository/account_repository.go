package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercio-api/internal/domain/entity"
)

// AccountRepository acceso a cuentas de dinero y al registro de auditoría
// financiera. Las cuentas se crean perezosamente con saldo cero.
type AccountRepository interface {
	Get(accType, ownerID string) (*entity.MoneyAccount, error)
	// GetForUpdate bloquea la fila de la cuenta (SELECT FOR UPDATE),
	// creándola con saldo cero si no existe.
	GetForUpdate(accType, ownerID string) (*entity.MoneyAccount, error)
	UpdateBalance(id string, balance decimal.Decimal) error
	// CreateFinancialTransaction añade la fila de auditoría (append-only).
	CreateFinancialTransaction(ft *entity.FinancialTransaction) error
	ListFinancialTransactions(branchID string, limit, offset int) ([]*entity.FinancialTransaction, error)
}
