package stockrequest

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comercio-api/internal/application/dto"
	"github.com/jhoicas/Comercio-api/internal/domain"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/infrastructure/memory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newFixture(t *testing.T) (*Service, dto.Identity) {
	t.Helper()
	store := memory.New()
	id := dto.Identity{UserID: "emp-1", CompanyID: "co-1", BranchID: "br-1", EmployeeID: "emp-1", Role: entity.RoleStorekeeper}
	return NewService(store.StockRequests()), id
}

func TestCreateBatchesLinesUnderOneBatchID(t *testing.T) {
	svc, id := newFixture(t)

	resp, err := svc.Create(context.Background(), id, dto.CreateStockRequestRequest{
		Items: []dto.StockRequestLine{
			{ItemID: "it-1", VariationID: "var-1", Quantity: dec("10")},
			{ItemID: "it-1", VariationID: "var-2", Quantity: dec("5")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.ItemCount)
	assert.Equal(t, entity.RequestPending, resp.Status)

	rows, err := svc.ListBatch(context.Background(), resp.BatchID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, resp.BatchID, r.BatchID)
		assert.Equal(t, entity.RequestPending, r.Status)
		assert.Equal(t, "br-1", r.BranchID)
	}
}

func TestCreateRejectsEmptyOrInvalidLines(t *testing.T) {
	svc, id := newFixture(t)

	_, err := svc.Create(context.Background(), id, dto.CreateStockRequestRequest{})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Create(context.Background(), id, dto.CreateStockRequestRequest{
		Items: []dto.StockRequestLine{{ItemID: "it-1", VariationID: "var-1", Quantity: dec("0")}},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestResolveOnlyFromPending(t *testing.T) {
	svc, id := newFixture(t)

	resp, err := svc.Create(context.Background(), id, dto.CreateStockRequestRequest{
		Items: []dto.StockRequestLine{{ItemID: "it-1", VariationID: "var-1", Quantity: dec("10")}},
	})
	require.NoError(t, err)
	rows, err := svc.ListBatch(context.Background(), resp.BatchID)
	require.NoError(t, err)

	err = svc.Resolve(context.Background(), id, dto.ResolveStockRequestRequest{
		RequestID: rows[0].ID, Status: entity.RequestApproved,
	})
	require.NoError(t, err)

	// Segunda decisión sobre el mismo renglón
	err = svc.Resolve(context.Background(), id, dto.ResolveStockRequestRequest{
		RequestID: rows[0].ID, Status: entity.RequestRejected,
	})
	require.ErrorIs(t, err, domain.ErrInvalidStateTransition)
}

func TestResolveValidatesStatusAndTenant(t *testing.T) {
	svc, id := newFixture(t)

	resp, err := svc.Create(context.Background(), id, dto.CreateStockRequestRequest{
		Items: []dto.StockRequestLine{{ItemID: "it-1", VariationID: "var-1", Quantity: dec("10")}},
	})
	require.NoError(t, err)
	rows, _ := svc.ListBatch(context.Background(), resp.BatchID)

	err = svc.Resolve(context.Background(), id, dto.ResolveStockRequestRequest{
		RequestID: rows[0].ID, Status: "CUALQUIERA",
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	other := id
	other.CompanyID = "co-otra"
	err = svc.Resolve(context.Background(), other, dto.ResolveStockRequestRequest{
		RequestID: rows[0].ID, Status: entity.RequestApproved,
	})
	require.ErrorIs(t, err, domain.ErrForbidden)
}
