package ledger

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comercio-api/internal/application/dto"
	"github.com/jhoicas/Comercio-api/internal/domain"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
	"github.com/jhoicas/Comercio-api/internal/infrastructure/memory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func audit(txnType string) Audit {
	return Audit{
		TransactionType: txnType,
		PaymentMethod:   entity.PaymentCash,
		ReferenceNumber: "REF-1",
		EmployeeID:      "emp-1",
		BranchID:        "br-1",
		CompanyID:       "co-1",
	}
}

func TestAdjustAccountCreatesLazilyAndAccumulates(t *testing.T) {
	store := memory.New()
	lg := New()

	err := store.Run(context.Background(), func(tx repository.Tx) error {
		acc, err := lg.AdjustAccount(tx, entity.AccountCash, "br-1", dec("100.555"), audit(entity.FinTxnSalePayment))
		require.NoError(t, err)
		assert.True(t, acc.Balance.Equal(dec("100.56")), "redondeo a 2 decimales, saldo %s", acc.Balance)
		return nil
	})
	require.NoError(t, err)

	err = store.Run(context.Background(), func(tx repository.Tx) error {
		_, err := lg.AdjustAccount(tx, entity.AccountCash, "br-1", dec("50"), audit(entity.FinTxnSalePayment))
		return err
	})
	require.NoError(t, err)

	assert.True(t, store.AccountBalance(entity.AccountCash, "br-1").Equal(dec("150.56")))
	assert.Len(t, store.FinancialTransactions(), 2)
}

func TestAdjustAccountRefusesNegativeBalance(t *testing.T) {
	store := memory.New()
	lg := New()

	err := store.Run(context.Background(), func(tx repository.Tx) error {
		_, err := lg.AdjustAccount(tx, entity.AccountCash, "br-1", dec("-10"), audit(entity.FinTxnBranchCashTransfer))
		return err
	})
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	// Rollback: ni saldo ni auditoría
	assert.True(t, store.AccountBalance(entity.AccountCash, "br-1").IsZero())
	assert.Empty(t, store.FinancialTransactions())
}

func TestAdjustPettyCashAccount(t *testing.T) {
	store := memory.New()
	lg := New()

	// La caja menor es una cuenta más: mismo piso en cero que caja y banco
	err := store.Run(context.Background(), func(tx repository.Tx) error {
		acc, err := lg.AdjustAccount(tx, entity.AccountPettyCash, "br-1", dec("80"), audit(entity.FinTxnBranchCashTransfer))
		require.NoError(t, err)
		assert.Equal(t, entity.AccountPettyCash, acc.Type)
		return nil
	})
	require.NoError(t, err)

	err = store.Run(context.Background(), func(tx repository.Tx) error {
		_, err := lg.AdjustAccount(tx, entity.AccountPettyCash, "br-1", dec("-80.01"), audit(entity.FinTxnBranchCashTransfer))
		return err
	})
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.True(t, store.AccountBalance(entity.AccountPettyCash, "br-1").Equal(dec("80")))
}

func TestExtendCreditBoundedByLimit(t *testing.T) {
	store := memory.New()
	store.PutCustomer(entity.Customer{ID: "cus-1", CompanyID: "co-1", Name: "Cliente", CreditLimit: dec("500")})
	lg := New()

	err := store.Run(context.Background(), func(tx repository.Tx) error {
		return lg.ExtendCredit(tx, "cus-1", dec("400"), audit(entity.FinTxnSaleCredit))
	})
	require.NoError(t, err)

	err = store.Run(context.Background(), func(tx repository.Tx) error {
		return lg.ExtendCredit(tx, "cus-1", dec("200"), audit(entity.FinTxnSaleCredit))
	})
	require.ErrorIs(t, err, domain.ErrInsufficientCredit)

	cus, err := store.Repos().Customers.GetByID("cus-1")
	require.NoError(t, err)
	assert.True(t, cus.Balance.Equal(dec("400")))
}

func TestPayWithBalanceRequiresFullCoverage(t *testing.T) {
	store := memory.New()
	store.PutCustomer(entity.Customer{ID: "cus-1", CompanyID: "co-1", Name: "Cliente", Balance: dec("-100"), CreditLimit: dec("500")})
	lg := New()

	err := store.Run(context.Background(), func(tx repository.Tx) error {
		return lg.PayWithBalance(tx, "cus-1", dec("150"), audit(entity.FinTxnSalePayment))
	})
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	err = store.Run(context.Background(), func(tx repository.Tx) error {
		return lg.PayWithBalance(tx, "cus-1", dec("100"), audit(entity.FinTxnSalePayment))
	})
	require.NoError(t, err)

	cus, _ := store.Repos().Customers.GetByID("cus-1")
	assert.True(t, cus.Balance.IsZero())
}

func TestCreditCustomerHasNoLowerBound(t *testing.T) {
	store := memory.New()
	store.PutCustomer(entity.Customer{ID: "cus-1", CompanyID: "co-1", Name: "Cliente", CreditLimit: dec("0")})
	lg := New()

	err := store.Run(context.Background(), func(tx repository.Tx) error {
		return lg.CreditCustomer(tx, "cus-1", dec("336"), audit(entity.FinTxnSaleReturnRefund))
	})
	require.NoError(t, err)

	cus, _ := store.Repos().Customers.GetByID("cus-1")
	assert.True(t, cus.Balance.Equal(dec("-336")))

	fts := store.FinancialTransactions()
	require.Len(t, fts, 1)
	assert.True(t, fts[0].Amount.Equal(dec("-336")))
}

func TestReaderListsOnlyTheBranch(t *testing.T) {
	store := memory.New()
	lg := New()

	err := store.Run(context.Background(), func(tx repository.Tx) error {
		if _, err := lg.AdjustAccount(tx, entity.AccountCash, "br-1", dec("100"), audit(entity.FinTxnSalePayment)); err != nil {
			return err
		}
		if _, err := lg.AdjustAccount(tx, entity.AccountCash, "br-1", dec("25"), audit(entity.FinTxnSalePayment)); err != nil {
			return err
		}
		otro := audit(entity.FinTxnSalePayment)
		otro.BranchID = "br-2"
		_, err := lg.AdjustAccount(tx, entity.AccountCash, "br-2", dec("40"), otro)
		return err
	})
	require.NoError(t, err)

	reader := NewReader(store.Repos().Accounts)
	out, err := reader.ListBranchTransactions(context.Background(), "br-1", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out, 2)
	for _, ft := range out {
		assert.Equal(t, entity.FinTxnSalePayment, ft.TransactionType)
	}

	out, err = reader.ListBranchTransactions(context.Background(), "br-2", dto.PageRequest{Limit: 10})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.True(t, out[0].Amount.Equal(dec("40")))
}
