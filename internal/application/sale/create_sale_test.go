package sale

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comercio-api/internal/application/dto"
	"github.com/jhoicas/Comercio-api/internal/application/ledger"
	"github.com/jhoicas/Comercio-api/internal/application/stockregister"
	"github.com/jhoicas/Comercio-api/internal/domain"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/infrastructure/memory"
	"github.com/jhoicas/Comercio-api/pkg/logger"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	store   *memory.Store
	svc     *Service
	id      dto.Identity
	branch  entity.Location
	company entity.Location
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()

	store.PutCompany(entity.Company{ID: "co-1", Name: "Comercio Norte", GSTNumber: "22AAAAA0000A1Z5"})
	store.PutBranch(entity.Branch{ID: "br-1", CompanyID: "co-1", Name: "Sucursal Centro", InvoicePrefix: "CEN"})
	store.PutEmployee(entity.Employee{ID: "emp-1", CompanyID: "co-1", BranchID: "br-1", Name: "Ana", Role: entity.RoleBiller})
	store.PutCustomer(entity.Customer{
		ID: "cus-1", CompanyID: "co-1", Name: "Cliente Uno", Phone: "3001112233",
		CustomerType: entity.CustomerTypeB2C, CreditLimit: dec("1000"),
	})
	store.PutItem(entity.Item{ID: "it-1", CompanyID: "co-1", Name: "Camiseta", GSTRate: dec("12")})
	store.PutVariation(entity.Variation{ID: "var-1", ItemID: "it-1", Name: "Talla M", SKU: "CAM-M", MRP: dec("100"), Discount: dec("0")})

	branchLoc := entity.Location{Type: entity.LocationBranch, ID: "br-1"}
	store.SetStock(branchLoc, "var-1", dec("10"), dec("100"), dec("0"))

	svc := NewService(
		store,
		store.Repos(),
		store.Companies(),
		store.Employees(),
		ledger.New(),
		stockregister.New(),
		SideEffects{},
		logger.New(logger.Config{Env: "development", Level: "error"}),
	)

	return &fixture{
		store:   store,
		svc:     svc,
		id:      dto.Identity{UserID: "emp-1", CompanyID: "co-1", BranchID: "br-1", EmployeeID: "emp-1", Role: entity.RoleBiller},
		branch:  branchLoc,
		company: entity.Location{Type: entity.LocationCompany, ID: "co-1"},
	}
}

// saleOf arma una venta de qty unidades de var-1 a 100 con GST 12%.
func saleOf(qty int64, method string) dto.CreateSaleRequest {
	q := decimal.NewFromInt(qty)
	sub := dec("100").Mul(q)
	gst := sub.Mul(dec("0.12"))
	total := sub.Add(gst)
	return dto.CreateSaleRequest{
		SaleBy:        entity.LocationBranch,
		CustomerID:    "cus-1",
		PaymentMethod: method,
		TotalAmount:   total.Round(0),
		Items: []dto.SaleLineRequest{{
			ItemID:      "it-1",
			VariationID: "var-1",
			Quantity:    q,
			Rate:        dec("100"),
			SubTotal:    sub,
			GSTRate:     dec("12"),
			GSTAmount:   gst,
			TotalAmount: total,
		}},
	}
}

func TestCreateSaleCashHappyPath(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.CreateSale(context.Background(), f.id, saleOf(3, entity.PaymentCash))
	require.NoError(t, err)

	assert.True(t, resp.SubTotal.Equal(dec("300")), "sub_total %s", resp.SubTotal)
	assert.True(t, resp.GSTAmount.Equal(dec("36")), "gst %s", resp.GSTAmount)
	assert.True(t, resp.TotalAmount.Equal(dec("336")), "total %s", resp.TotalAmount)
	assert.True(t, resp.RoundOff.IsZero(), "round_off %s", resp.RoundOff)
	assert.Equal(t, entity.PaymentStatusPaid, resp.PaymentStatus)

	wantInvoice := fmt.Sprintf("CEN/%d/00001", time.Now().Year())
	assert.Equal(t, wantInvoice, resp.InvoiceNumber)

	// Stock descontado y asiento OUT en el libro
	assert.True(t, f.store.Stock(f.branch, "var-1").Equal(dec("7")))
	entries := f.store.RegisterEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, entity.TxnSale, entries[0].TransactionType)
	assert.Equal(t, entity.FlowOut, entries[0].FlowType)
	assert.Equal(t, resp.ID, entries[0].ReferenceID)

	// Caja de la sucursal acreditada, con su fila de auditoría
	assert.True(t, f.store.AccountBalance(entity.AccountCash, "br-1").Equal(dec("336")))
	fts := f.store.FinancialTransactions()
	require.Len(t, fts, 1)
	assert.Equal(t, entity.FinTxnSalePayment, fts[0].TransactionType)
	assert.Equal(t, wantInvoice, fts[0].ReferenceNumber)
}

func TestCreateSaleOversellRejectedEntirely(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateSale(context.Background(), f.id, saleOf(12, entity.PaymentCash))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Rollback completo: ni stock, ni libro, ni caja, ni venta
	assert.True(t, f.store.Stock(f.branch, "var-1").Equal(dec("10")))
	assert.Empty(t, f.store.RegisterEntries())
	assert.True(t, f.store.AccountBalance(entity.AccountCash, "br-1").IsZero())
	sales, err := f.store.Repos().Sales.ListByBranch("br-1", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestCreateSaleTamperedLineRejected(t *testing.T) {
	f := newFixture(t)

	in := saleOf(3, entity.PaymentCash)
	in.Items[0].SubTotal = dec("250") // no coincide con rate*qty
	_, err := f.svc.CreateSale(context.Background(), f.id, in)
	require.ErrorIs(t, err, domain.ErrIntegrityMismatch)
	assert.True(t, f.store.Stock(f.branch, "var-1").Equal(dec("10")))
}

func TestCreateSaleTamperedGrandTotalRejected(t *testing.T) {
	f := newFixture(t)

	in := saleOf(3, entity.PaymentCash)
	in.TotalAmount = dec("300") // el redondeo de los renglones da 336
	_, err := f.svc.CreateSale(context.Background(), f.id, in)
	require.ErrorIs(t, err, domain.ErrIntegrityMismatch)
}

func TestCreateSaleSplitValidation(t *testing.T) {
	f := newFixture(t)

	// Un solo componente distinto de cero no es un split
	in := saleOf(3, entity.PaymentSplit)
	in.Split = &dto.SplitPayment{Cash: dec("336")}
	_, err := f.svc.CreateSale(context.Background(), f.id, in)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	// Componentes que no suman el total
	in.Split = &dto.SplitPayment{Cash: dec("200"), Bank: dec("100")}
	_, err = f.svc.CreateSale(context.Background(), f.id, in)
	require.ErrorIs(t, err, domain.ErrIntegrityMismatch)
}

func TestCreateSaleSplitBooksEachComponent(t *testing.T) {
	f := newFixture(t)

	in := saleOf(3, entity.PaymentSplit)
	in.Split = &dto.SplitPayment{Cash: dec("200"), Bank: dec("136")}
	resp, err := f.svc.CreateSale(context.Background(), f.id, in)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPaid, resp.PaymentStatus)

	assert.True(t, f.store.AccountBalance(entity.AccountCash, "br-1").Equal(dec("200")))
	assert.True(t, f.store.AccountBalance(entity.AccountBank, "co-1").Equal(dec("136")))
	assert.Len(t, f.store.FinancialTransactions(), 2)
}

func TestCreateSaleDueBoundedByCreditLimit(t *testing.T) {
	f := newFixture(t)

	// 1000 de límite: una venta de 1120 a crédito debe rechazarse completa
	_, err := f.svc.CreateSale(context.Background(), f.id, saleOf(10, entity.PaymentDue))
	require.ErrorIs(t, err, domain.ErrInsufficientCredit)
	assert.True(t, f.store.Stock(f.branch, "var-1").Equal(dec("10")))

	// 672 sí cabe en el límite
	resp, err := f.svc.CreateSale(context.Background(), f.id, saleOf(6, entity.PaymentDue))
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusDue, resp.PaymentStatus)

	cus, err := f.store.Repos().Customers.GetByID("cus-1")
	require.NoError(t, err)
	assert.True(t, cus.Balance.Equal(dec("672")), "deuda %s", cus.Balance)
}

func TestCreateSaleBalanceRequiresFunds(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateSale(context.Background(), f.id, saleOf(3, entity.PaymentBalance))
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	// Con saldo a favor suficiente, la venta consume el saldo
	f.store.PutCustomer(entity.Customer{
		ID: "cus-1", CompanyID: "co-1", Name: "Cliente Uno", Phone: "3001112233",
		CustomerType: entity.CustomerTypeB2C, Balance: dec("-400"), CreditLimit: dec("1000"),
	})
	_, err = f.svc.CreateSale(context.Background(), f.id, saleOf(3, entity.PaymentBalance))
	require.NoError(t, err)

	cus, err := f.store.Repos().Customers.GetByID("cus-1")
	require.NoError(t, err)
	assert.True(t, cus.Balance.Equal(dec("-64")), "saldo %s", cus.Balance)
}

func TestCreateSaleInvoiceNumbersNeverRepeat(t *testing.T) {
	f := newFixture(t)

	first, err := f.svc.CreateSale(context.Background(), f.id, saleOf(2, entity.PaymentCash))
	require.NoError(t, err)
	second, err := f.svc.CreateSale(context.Background(), f.id, saleOf(2, entity.PaymentCash))
	require.NoError(t, err)

	assert.NotEqual(t, first.InvoiceNumber, second.InvoiceNumber)
	year := time.Now().Year()
	assert.Equal(t, fmt.Sprintf("CEN/%d/00001", year), first.InvoiceNumber)
	assert.Equal(t, fmt.Sprintf("CEN/%d/00002", year), second.InvoiceNumber)
}

func TestCreateSaleFromCompanyPool(t *testing.T) {
	f := newFixture(t)
	f.store.SetStock(f.company, "var-1", dec("5"), dec("100"), dec("0"))

	in := saleOf(4, entity.PaymentCash)
	in.SaleBy = entity.LocationCompany
	_, err := f.svc.CreateSale(context.Background(), f.id, in)
	require.NoError(t, err)

	// Se descuenta el almacén central, no la sucursal
	assert.True(t, f.store.Stock(f.company, "var-1").Equal(dec("1")))
	assert.True(t, f.store.Stock(f.branch, "var-1").Equal(dec("10")))
}

func TestGetSaleReturnsLines(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.CreateSale(context.Background(), f.id, saleOf(3, entity.PaymentCash))
	require.NoError(t, err)

	got, err := f.svc.GetSale(context.Background(), f.id, created.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.True(t, got.Items[0].Quantity.Equal(dec("3")))

	other := f.id
	other.CompanyID = "co-otra"
	_, err = f.svc.GetSale(context.Background(), other, created.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestFormatInvoiceNumber(t *testing.T) {
	assert.Equal(t, "CEN/2026/00007", FormatInvoiceNumber("CEN", 2026, 7))
	assert.Equal(t, "MAD/2026/12345", FormatInvoiceNumber("MAD", 2026, 12345))
}
