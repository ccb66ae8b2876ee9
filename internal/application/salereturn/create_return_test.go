package salereturn

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comercio-api/internal/application/dto"
	"github.com/jhoicas/Comercio-api/internal/application/ledger"
	"github.com/jhoicas/Comercio-api/internal/application/sale"
	"github.com/jhoicas/Comercio-api/internal/application/stockregister"
	"github.com/jhoicas/Comercio-api/internal/domain"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/infrastructure/memory"
	"github.com/jhoicas/Comercio-api/pkg/logger"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	store  *memory.Store
	svc    *Service
	id     dto.Identity
	branch entity.Location
	saleID string
}

// newFixture siembra el catálogo y deja confirmada una venta de 3 unidades
// de var-1 (336 en total) contra un stock inicial de 10.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()

	store.PutCompany(entity.Company{ID: "co-1", Name: "Comercio Norte"})
	store.PutBranch(entity.Branch{ID: "br-1", CompanyID: "co-1", Name: "Sucursal Centro", InvoicePrefix: "CEN"})
	store.PutEmployee(entity.Employee{ID: "emp-1", CompanyID: "co-1", BranchID: "br-1", Name: "Ana", Role: entity.RoleBiller})
	store.PutCustomer(entity.Customer{
		ID: "cus-1", CompanyID: "co-1", Name: "Cliente Uno",
		CustomerType: entity.CustomerTypeB2C, CreditLimit: dec("1000"),
	})
	store.PutItem(entity.Item{ID: "it-1", CompanyID: "co-1", Name: "Camiseta", GSTRate: dec("12")})
	store.PutVariation(entity.Variation{ID: "var-1", ItemID: "it-1", Name: "Talla M", SKU: "CAM-M", MRP: dec("100"), Discount: dec("0")})

	branchLoc := entity.Location{Type: entity.LocationBranch, ID: "br-1"}
	store.SetStock(branchLoc, "var-1", dec("10"), dec("100"), dec("0"))

	log := logger.New(logger.Config{Env: "development", Level: "error"})
	id := dto.Identity{UserID: "emp-1", CompanyID: "co-1", BranchID: "br-1", EmployeeID: "emp-1", Role: entity.RoleBiller}

	saleSvc := sale.NewService(store, store.Repos(), store.Companies(), store.Employees(),
		ledger.New(), stockregister.New(), sale.SideEffects{}, log)
	created, err := saleSvc.CreateSale(context.Background(), id, dto.CreateSaleRequest{
		SaleBy:        entity.LocationBranch,
		CustomerID:    "cus-1",
		PaymentMethod: entity.PaymentCash,
		TotalAmount:   dec("336"),
		Items: []dto.SaleLineRequest{{
			ItemID: "it-1", VariationID: "var-1", Quantity: dec("3"), Rate: dec("100"),
			SubTotal: dec("300"), GSTRate: dec("12"), GSTAmount: dec("36"), TotalAmount: dec("336"),
		}},
	})
	require.NoError(t, err)

	return &fixture{
		store:  store,
		svc:    NewService(store, store.Repos(), ledger.New(), stockregister.New(), log),
		id:     id,
		branch: branchLoc,
		saleID: created.ID,
	}
}

func returnOf(saleID string, qty, amount string) dto.CreateSaleReturnRequest {
	return dto.CreateSaleReturnRequest{
		SaleID:       saleID,
		ReturnAmount: dec(amount),
		Items:        []dto.ReturnLineRequest{{VariationID: "var-1", Quantity: dec(qty)}},
	}
}

func TestReturnExceedingSoldQuantityRejected(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateSaleReturn(context.Background(), f.id, returnOf(f.saleID, "4", "448"))
	require.ErrorIs(t, err, domain.ErrExceedsReturnable)

	// Sin efectos: stock y saldo intactos
	assert.True(t, f.store.Stock(f.branch, "var-1").Equal(dec("7")))
	cus, _ := f.store.Repos().Customers.GetByID("cus-1")
	assert.True(t, cus.Balance.IsZero())
}

func TestFullReturnRestoresStockAndCreditsCustomer(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.CreateSaleReturn(context.Background(), f.id, returnOf(f.saleID, "3", "336"))
	require.NoError(t, err)
	assert.True(t, resp.ReturnAmount.Equal(dec("336")))

	assert.True(t, f.store.Stock(f.branch, "var-1").Equal(dec("10")))

	cus, err := f.store.Repos().Customers.GetByID("cus-1")
	require.NoError(t, err)
	assert.True(t, cus.Balance.Equal(dec("-336")), "saldo %s", cus.Balance)

	// Asiento IN de devolución referenciando la devolución, no la venta
	var inEntries int
	for _, e := range f.store.RegisterEntries() {
		if e.TransactionType == entity.TxnSaleReturn {
			inEntries++
			assert.Equal(t, entity.FlowIn, e.FlowType)
			assert.Equal(t, resp.ID, e.ReferenceID)
		}
	}
	assert.Equal(t, 1, inEntries)

	// Fila de auditoría del reembolso
	var refunds int
	for _, ft := range f.store.FinancialTransactions() {
		if ft.TransactionType == entity.FinTxnSaleReturnRefund {
			refunds++
		}
	}
	assert.Equal(t, 1, refunds)
}

func TestReturnBoundIsCumulativeAcrossReturns(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateSaleReturn(context.Background(), f.id, returnOf(f.saleID, "2", "224"))
	require.NoError(t, err)

	// Quedan 1 por devolver: 2 más exceden la cota
	_, err = f.svc.CreateSaleReturn(context.Background(), f.id, returnOf(f.saleID, "2", "224"))
	require.ErrorIs(t, err, domain.ErrExceedsReturnable)

	_, err = f.svc.CreateSaleReturn(context.Background(), f.id, returnOf(f.saleID, "1", "112"))
	require.NoError(t, err)

	assert.True(t, f.store.Stock(f.branch, "var-1").Equal(dec("10")))
}

func TestB2CReturnOutsideSaleMonthRejected(t *testing.T) {
	f := newFixture(t)

	in := returnOf(f.saleID, "1", "112")
	in.ReturnDate = time.Now().AddDate(0, 1, 0)
	_, err := f.svc.CreateSaleReturn(context.Background(), f.id, in)
	require.ErrorIs(t, err, domain.ErrReturnWindowClosed)
}

func TestReturnOfUnsoldVariationRejected(t *testing.T) {
	f := newFixture(t)

	in := dto.CreateSaleReturnRequest{
		SaleID:       f.saleID,
		ReturnAmount: dec("112"),
		Items:        []dto.ReturnLineRequest{{VariationID: "var-otra", Quantity: dec("1")}},
	}
	_, err := f.svc.CreateSaleReturn(context.Background(), f.id, in)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListReturnsBySale(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateSaleReturn(context.Background(), f.id, returnOf(f.saleID, "1", "112"))
	require.NoError(t, err)
	_, err = f.svc.CreateSaleReturn(context.Background(), f.id, returnOf(f.saleID, "1", "112"))
	require.NoError(t, err)

	got, err := f.svc.ListBySale(context.Background(), f.id, f.saleID)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
