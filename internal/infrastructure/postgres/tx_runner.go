package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit si fn retorna nil, Rollback en caso contrario.
func (r *TxRunner) Run(ctx context.Context, fn func(tx repository.Tx) error) error {
	pgxTx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = pgxTx.Rollback(ctx) }()

	if err := fn(NewRepositories(pgxTx)); err != nil {
		return err
	}
	if err := pgxTx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// NewRepositories arma el juego de repositorios sobre un Querier (pool o tx).
func NewRepositories(q Querier) repository.Tx {
	return repository.Tx{
		Branches:      NewBranchRepository(q),
		Customers:     NewCustomerRepository(q),
		Items:         NewItemRepository(q),
		Inventory:     NewInventoryRepository(q),
		StockRegister: NewStockRegisterRepository(q),
		Sales:         NewSaleRepository(q),
		Returns:       NewSaleReturnRepository(q),
		Accounts:      NewAccountRepository(q),
		Transfers:     NewTransferRepository(q),
		Shifts:        NewShiftRepository(q),
	}
}
