package transfer

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comercio-api/internal/application/dto"
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
	company entity.Location
	dest    entity.Location
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()

	store.PutCompany(entity.Company{ID: "co-1", Name: "Comercio Norte"})
	store.PutBranch(entity.Branch{ID: "br-1", CompanyID: "co-1", Name: "Sucursal Centro", InvoicePrefix: "CEN"})
	store.PutBranch(entity.Branch{ID: "br-2", CompanyID: "co-1", Name: "Sucursal Sur", InvoicePrefix: "SUR"})
	store.PutItem(entity.Item{ID: "it-1", CompanyID: "co-1", Name: "Camiseta", GSTRate: dec("12")})
	store.PutVariation(entity.Variation{ID: "var-1", ItemID: "it-1", Name: "Talla M", SKU: "CAM-M", MRP: dec("100"), Discount: dec("0")})

	companyLoc := entity.Location{Type: entity.LocationCompany, ID: "co-1"}
	store.SetStock(companyLoc, "var-1", dec("50"), dec("100"), dec("0"))

	return &fixture{
		store:   store,
		svc:     NewService(store, store.Repos(), stockregister.New(), logger.New(logger.Config{Env: "development", Level: "error"})),
		id:      dto.Identity{UserID: "emp-1", CompanyID: "co-1", BranchID: "br-1", EmployeeID: "emp-1", Role: entity.RoleStorekeeper},
		company: companyLoc,
		dest:    entity.Location{Type: entity.LocationBranch, ID: "br-2"},
	}
}

// dispatchOf despacha qty unidades de var-1 del almacén central a br-2.
func dispatchOf(f *fixture, t *testing.T, qty string) string {
	t.Helper()
	q := dec(qty)
	sub := dec("100").Mul(q)
	gst := sub.Mul(dec("0.12"))
	resp, err := f.svc.TransferStock(context.Background(), f.id, dto.TransferStockRequest{
		FromType:   entity.LocationCompany,
		ToBranchID: "br-2",
		Items: []dto.TransferLineRequest{{
			ItemID: "it-1", VariationID: "var-1", Quantity: q, Rate: dec("100"),
			SubTotal: sub, GSTRate: dec("12"), GSTAmount: gst, GrandTotal: sub.Add(gst),
		}},
	})
	require.NoError(t, err)
	return resp.BatchID
}

func TestTransferDispatchDecrementsSourceOnly(t *testing.T) {
	f := newFixture(t)

	batchID := dispatchOf(f, t, "20")

	assert.True(t, f.store.Stock(f.company, "var-1").Equal(dec("30")))
	assert.True(t, f.store.Stock(f.dest, "var-1").IsZero())

	rows, err := f.svc.ListBatch(context.Background(), batchID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.False(t, rows[0].Acknowledge)

	entries := f.store.RegisterEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, entity.TxnTransfer, entries[0].TransactionType)
	assert.Equal(t, entity.FlowOut, entries[0].FlowType)
	assert.Equal(t, batchID, entries[0].BatchID)
}

func TestTransferDispatchWithoutStockRejected(t *testing.T) {
	f := newFixture(t)

	q := dec("60")
	sub := dec("100").Mul(q)
	gst := sub.Mul(dec("0.12"))
	_, err := f.svc.TransferStock(context.Background(), f.id, dto.TransferStockRequest{
		FromType:   entity.LocationCompany,
		ToBranchID: "br-2",
		Items: []dto.TransferLineRequest{{
			ItemID: "it-1", VariationID: "var-1", Quantity: q, Rate: dec("100"),
			SubTotal: sub, GSTRate: dec("12"), GSTAmount: gst, GrandTotal: sub.Add(gst),
		}},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, f.store.Stock(f.company, "var-1").Equal(dec("50")))
}

func TestAcknowledgeWithLossConservesQuantities(t *testing.T) {
	f := newFixture(t)
	batchID := dispatchOf(f, t, "20")

	err := f.svc.AcknowledgeStockTransfer(context.Background(), f.id, dto.AcknowledgeTransferRequest{
		BatchID: batchID,
		Items: []dto.AcknowledgeLineRequest{{
			VariationID: "var-1", ReceivedQuantity: dec("18"), LostQuantity: dec("2"),
		}},
	})
	require.NoError(t, err)

	// El destino sube exactamente lo recibido, nunca lo despachado completo
	assert.True(t, f.store.Stock(f.dest, "var-1").Equal(dec("18")))
	assert.True(t, f.store.Stock(f.company, "var-1").Equal(dec("30")))

	rows, err := f.svc.ListBatch(context.Background(), batchID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Acknowledge)
	assert.True(t, rows[0].ReceivedQuantity.Equal(dec("18")))
	assert.True(t, rows[0].LostQuantity.Equal(dec("2")))

	// El asiento IN registra la merma
	entries := f.store.RegisterEntries()
	var in *entity.StockRegisterEntry
	for i := range entries {
		if entries[i].FlowType == entity.FlowIn {
			in = &entries[i]
		}
	}
	require.NotNil(t, in)
	assert.True(t, in.Quantity.Equal(dec("18")))
	assert.True(t, in.LossQuantity.Equal(dec("2")))
}

func TestReacknowledgeRejected(t *testing.T) {
	f := newFixture(t)
	batchID := dispatchOf(f, t, "20")

	ack := dto.AcknowledgeTransferRequest{
		BatchID: batchID,
		Items:   []dto.AcknowledgeLineRequest{{VariationID: "var-1", ReceivedQuantity: dec("20")}},
	}
	require.NoError(t, f.svc.AcknowledgeStockTransfer(context.Background(), f.id, ack))

	err := f.svc.AcknowledgeStockTransfer(context.Background(), f.id, ack)
	require.ErrorIs(t, err, domain.ErrInvalidStateTransition)
	assert.True(t, f.store.Stock(f.dest, "var-1").Equal(dec("20")))
}

func TestAcknowledgeMismatchedQuantityRejected(t *testing.T) {
	f := newFixture(t)
	batchID := dispatchOf(f, t, "20")

	err := f.svc.AcknowledgeStockTransfer(context.Background(), f.id, dto.AcknowledgeTransferRequest{
		BatchID: batchID,
		Items: []dto.AcknowledgeLineRequest{{
			VariationID: "var-1", ReceivedQuantity: dec("17"), LostQuantity: dec("2"),
		}},
	})
	require.ErrorIs(t, err, domain.ErrMismatchedQuantity)

	// Nada confirmado ni recibido
	assert.True(t, f.store.Stock(f.dest, "var-1").IsZero())
	rows, _ := f.svc.ListBatch(context.Background(), batchID)
	assert.False(t, rows[0].Acknowledge)
}

func TestAcknowledgeMissingVariationRejected(t *testing.T) {
	f := newFixture(t)
	batchID := dispatchOf(f, t, "20")

	err := f.svc.AcknowledgeStockTransfer(context.Background(), f.id, dto.AcknowledgeTransferRequest{
		BatchID: batchID,
		Items:   []dto.AcknowledgeLineRequest{{VariationID: "var-otra", ReceivedQuantity: dec("20")}},
	})
	require.ErrorIs(t, err, domain.ErrMissingItems)
}

func TestAcknowledgeUnknownBatchRejected(t *testing.T) {
	f := newFixture(t)

	err := f.svc.AcknowledgeStockTransfer(context.Background(), f.id, dto.AcknowledgeTransferRequest{
		BatchID: "lote-inexistente",
		Items:   []dto.AcknowledgeLineRequest{{VariationID: "var-1", ReceivedQuantity: dec("1")}},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}
