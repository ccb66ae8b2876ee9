package stockregister

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comercio-api/internal/domain"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
	"github.com/jhoicas/Comercio-api/internal/infrastructure/memory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var branchLoc = entity.Location{Type: entity.LocationBranch, ID: "br-1"}

func movement(flow string, qty string) Movement {
	return Movement{
		Location:        branchLoc,
		ItemID:          "it-1",
		VariationID:     "var-1",
		FlowType:        flow,
		TransactionType: entity.TxnAdjustment,
		Quantity:        dec(qty),
		Rate:            dec("100"),
		ReferenceID:     "ref-1",
		Date:            time.Now(),
		CreatedBy:       "emp-1",
		DefaultMRP:      dec("120"),
		DefaultDiscount: dec("5"),
	}
}

func TestOutFailsWithoutStock(t *testing.T) {
	store := memory.New()
	rec := New()

	err := store.Run(context.Background(), func(tx repository.Tx) error {
		return rec.RecordInTx(tx, movement(entity.FlowOut, "1"))
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, store.RegisterEntries())
}

func TestInCreatesPoolWithVariationDefaults(t *testing.T) {
	store := memory.New()
	rec := New()

	err := store.Run(context.Background(), func(tx repository.Tx) error {
		return rec.RecordInTx(tx, movement(entity.FlowIn, "10"))
	})
	require.NoError(t, err)

	pool, err := store.Repos().Inventory.Get(branchLoc, "var-1")
	require.NoError(t, err)
	assert.True(t, pool.Stock.Equal(dec("10")))
	assert.True(t, pool.MRP.Equal(dec("120")), "mrp por defecto de la variación")
	assert.True(t, pool.Discount.Equal(dec("5")))

	entries := store.RegisterEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, entity.FlowIn, entries[0].FlowType)
}

func TestInOnExistingPoolKeepsPricing(t *testing.T) {
	store := memory.New()
	store.SetStock(branchLoc, "var-1", dec("3"), dec("90"), dec("0"))
	rec := New()

	err := store.Run(context.Background(), func(tx repository.Tx) error {
		return rec.RecordInTx(tx, movement(entity.FlowIn, "7"))
	})
	require.NoError(t, err)

	pool, _ := store.Repos().Inventory.Get(branchLoc, "var-1")
	assert.True(t, pool.Stock.Equal(dec("10")))
	// La fila ya existía: conserva su MRP, no el de la variación
	assert.True(t, pool.MRP.Equal(dec("90")))
}

func TestConcurrentInsOnNewPoolBothLand(t *testing.T) {
	store := memory.New()
	rec := New()

	var wg sync.WaitGroup
	for _, qty := range []string{"3", "5"} {
		wg.Add(1)
		go func(q string) {
			defer wg.Done()
			err := store.Run(context.Background(), func(tx repository.Tx) error {
				return rec.RecordInTx(tx, movement(entity.FlowIn, q))
			})
			assert.NoError(t, err)
		}(qty)
	}
	wg.Wait()

	// Cada asiento IN del libro tiene su mutación de pool: 3 + 5 = 8
	assert.True(t, store.Stock(branchLoc, "var-1").Equal(dec("8")))
	assert.Len(t, store.RegisterEntries(), 2)

	pool, err := store.Repos().Inventory.Get(branchLoc, "var-1")
	require.NoError(t, err)
	assert.True(t, pool.MRP.Equal(dec("120")), "el default de la variación se aplica una sola vez")
}

func TestOutDecrementsAndNeverGoesNegative(t *testing.T) {
	store := memory.New()
	store.SetStock(branchLoc, "var-1", dec("5"), dec("100"), dec("0"))
	rec := New()

	err := store.Run(context.Background(), func(tx repository.Tx) error {
		return rec.RecordInTx(tx, movement(entity.FlowOut, "5"))
	})
	require.NoError(t, err)
	assert.True(t, store.Stock(branchLoc, "var-1").IsZero())

	err = store.Run(context.Background(), func(tx repository.Tx) error {
		return rec.RecordInTx(tx, movement(entity.FlowOut, "1"))
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, store.Stock(branchLoc, "var-1").IsZero())
}

func TestPurchaseInFeedsCompanyPool(t *testing.T) {
	store := memory.New()
	rec := New()
	companyLoc := entity.Location{Type: entity.LocationCompany, ID: "co-1"}

	m := movement(entity.FlowIn, "50")
	m.Location = companyLoc
	m.TransactionType = entity.TxnPurchase

	err := store.Run(context.Background(), func(tx repository.Tx) error {
		return rec.RecordInTx(tx, m)
	})
	require.NoError(t, err)

	assert.True(t, store.Stock(companyLoc, "var-1").Equal(dec("50")))
	entries := store.RegisterEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, entity.TxnPurchase, entries[0].TransactionType)
	assert.Equal(t, entity.LocationCompany, entries[0].LocationType)
}

func TestNegativeQuantityRejected(t *testing.T) {
	store := memory.New()
	rec := New()

	err := store.Run(context.Background(), func(tx repository.Tx) error {
		return rec.RecordInTx(tx, movement(entity.FlowIn, "-1"))
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUnknownFlowRejected(t *testing.T) {
	store := memory.New()
	rec := New()

	err := store.Run(context.Background(), func(tx repository.Tx) error {
		return rec.RecordInTx(tx, movement("SIDEWAYS", "1"))
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}
