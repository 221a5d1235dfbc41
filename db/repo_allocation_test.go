package db

import (
	"context"
	"errors"
	"testing"

	"fieldops-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestAllocationLifecycle(t *testing.T) {
	r := setupTestRepo(t)
	m := seedMaterial(t, r, "M1", 100)
	p := seedProject(t, r, "P1")
	ctx := context.Background()

	// Allocate 30 of 100.
	alloc, err := r.CreateAllocation(ctx, CreateAllocationInput{
		MaterialID: m.ID, ProjectID: p.ID, Quantity: 30,
	})
	assert.NoError(t, err)
	assert.Equal(t, models.AllocationStatusAllocated, alloc.Status)
	assert.Equal(t, 30.0, alloc.QuantityRemaining)

	mat, err := r.FindMaterialByID(ctx, m.ID)
	assert.NoError(t, err)
	assert.Equal(t, 30.0, mat.ReservedStock)
	assert.Equal(t, 70.0, mat.FreeStock())

	// Consume everything.
	used := 30.0
	alloc, err = r.ReportUsage(ctx, alloc.ID, UpdateAllocationInput{QuantityUsed: &used})
	assert.NoError(t, err)
	assert.Equal(t, models.AllocationStatusFullyUsed, alloc.Status)
	assert.Equal(t, 0.0, alloc.QuantityRemaining)

	// Deleting a fully used allocation returns nothing to stock.
	returned, err := r.DeleteAllocation(ctx, alloc.ID)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, returned)

	mat, err = r.FindMaterialByID(ctx, m.ID)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, mat.ReservedStock)
}

func TestConsumptionReleasesReservedStock(t *testing.T) {
	r := setupTestRepo(t)
	m := seedMaterial(t, r, "Concrete", 100)
	p := seedProject(t, r, "P1")
	ctx := context.Background()

	alloc, err := r.CreateAllocation(ctx, CreateAllocationInput{MaterialID: m.ID, ProjectID: p.ID, Quantity: 30})
	assert.NoError(t, err)

	// Partial consumption: 10 leave stock entirely, 20 stay reserved.
	partial := 10.0
	_, err = r.ReportUsage(ctx, alloc.ID, UpdateAllocationInput{QuantityUsed: &partial})
	assert.NoError(t, err)

	mat, err := r.FindMaterialByID(ctx, m.ID)
	assert.NoError(t, err)
	assert.Equal(t, 90.0, mat.CurrentStock)
	assert.Equal(t, 20.0, mat.ReservedStock)
	assert.Equal(t, 70.0, mat.FreeStock())

	// Consuming the rest empties the reservation.
	full := 30.0
	_, err = r.ReportUsage(ctx, alloc.ID, UpdateAllocationInput{QuantityUsed: &full})
	assert.NoError(t, err)

	mat, err = r.FindMaterialByID(ctx, m.ID)
	assert.NoError(t, err)
	assert.Equal(t, 70.0, mat.CurrentStock)
	assert.Equal(t, 0.0, mat.ReservedStock)

	// Deleting the fully used allocation has nothing left to hand back.
	returned, err := r.DeleteAllocation(ctx, alloc.ID)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, returned)

	mat, err = r.FindMaterialByID(ctx, m.ID)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, mat.ReservedStock)
	assert.Equal(t, 70.0, mat.FreeStock())
}

func TestAllocationCreateThenDeleteRoundTrip(t *testing.T) {
	r := setupTestRepo(t)
	m := seedMaterial(t, r, "Cement", 50)
	p := seedProject(t, r, "P1")
	ctx := context.Background()

	alloc, err := r.CreateAllocation(ctx, CreateAllocationInput{MaterialID: m.ID, ProjectID: p.ID, Quantity: 20})
	assert.NoError(t, err)

	returned, err := r.DeleteAllocation(ctx, alloc.ID)
	assert.NoError(t, err)
	assert.Equal(t, 20.0, returned)

	// reserved_stock is back to its pre-creation value.
	mat, err := r.FindMaterialByID(ctx, m.ID)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, mat.ReservedStock)
	assert.Equal(t, 50.0, mat.FreeStock())

	_, err = r.FindAllocationByID(ctx, alloc.ID)
	assert.ErrorIs(t, err, ErrAllocationNotFound)
}

func TestCreateAllocationValidation(t *testing.T) {
	r := setupTestRepo(t)
	m := seedMaterial(t, r, "Sand", 10)
	p := seedProject(t, r, "P1")
	ctx := context.Background()

	var validation *ValidationError

	_, err := r.CreateAllocation(ctx, CreateAllocationInput{MaterialID: m.ID, ProjectID: p.ID, Quantity: 0})
	assert.True(t, errors.As(err, &validation))

	_, err = r.CreateAllocation(ctx, CreateAllocationInput{MaterialID: m.ID, ProjectID: p.ID, Quantity: 11})
	assert.True(t, errors.As(err, &validation))
	assert.Equal(t, "quantity", validation.Field)

	// A failed allocation leaves stock untouched.
	mat, _ := r.FindMaterialByID(ctx, m.ID)
	assert.Equal(t, 0.0, mat.ReservedStock)

	_, err = r.CreateAllocation(ctx, CreateAllocationInput{
		MaterialID: "00000000-0000-0000-0000-000000000000", ProjectID: p.ID, Quantity: 1,
	})
	assert.ErrorIs(t, err, ErrMaterialNotFound)
}

func TestFreeStockAccountsForOpenAllocations(t *testing.T) {
	r := setupTestRepo(t)
	m := seedMaterial(t, r, "Gravel", 100)
	p := seedProject(t, r, "P1")
	ctx := context.Background()

	_, err := r.CreateAllocation(ctx, CreateAllocationInput{MaterialID: m.ID, ProjectID: p.ID, Quantity: 60})
	assert.NoError(t, err)

	// Only 40 remain free.
	_, err = r.CreateAllocation(ctx, CreateAllocationInput{MaterialID: m.ID, ProjectID: p.ID, Quantity: 41})
	var validation *ValidationError
	assert.True(t, errors.As(err, &validation))

	_, err = r.CreateAllocation(ctx, CreateAllocationInput{MaterialID: m.ID, ProjectID: p.ID, Quantity: 40})
	assert.NoError(t, err)
}

func TestReportUsageBoundsAndStatus(t *testing.T) {
	r := setupTestRepo(t)
	m := seedMaterial(t, r, "Rebar", 100)
	p := seedProject(t, r, "P1")
	ctx := context.Background()

	alloc, err := r.CreateAllocation(ctx, CreateAllocationInput{MaterialID: m.ID, ProjectID: p.ID, Quantity: 30})
	assert.NoError(t, err)

	var validation *ValidationError

	over := 31.0
	_, err = r.ReportUsage(ctx, alloc.ID, UpdateAllocationInput{QuantityUsed: &over})
	assert.True(t, errors.As(err, &validation))
	assert.Equal(t, "quantity_used", validation.Field)

	negative := -1.0
	_, err = r.ReportUsage(ctx, alloc.ID, UpdateAllocationInput{QuantityUsed: &negative})
	assert.True(t, errors.As(err, &validation))

	// The failed updates changed nothing.
	got, err := r.FindAllocationByID(ctx, alloc.ID)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, got.QuantityUsed)
	assert.Equal(t, models.AllocationStatusAllocated, got.Status)

	partial := 10.0
	got, err = r.ReportUsage(ctx, alloc.ID, UpdateAllocationInput{QuantityUsed: &partial})
	assert.NoError(t, err)
	assert.Equal(t, models.AllocationStatusPartiallyUsed, got.Status)
	assert.Equal(t, 20.0, got.QuantityRemaining)

	// Explicit override sticks regardless of quantities.
	got, err = r.ReportUsage(ctx, alloc.ID, UpdateAllocationInput{Status: models.AllocationStatusLost})
	assert.NoError(t, err)
	assert.Equal(t, models.AllocationStatusLost, got.Status)
	assert.Equal(t, 10.0, got.QuantityUsed)
}

func TestAllocationAuditTrail(t *testing.T) {
	r := setupTestRepo(t)
	m := seedMaterial(t, r, "Pipe", 100)
	p := seedProject(t, r, "P1")
	ctx := context.Background()

	alloc, err := r.CreateAllocation(ctx, CreateAllocationInput{MaterialID: m.ID, ProjectID: p.ID, Quantity: 25})
	assert.NoError(t, err)

	used := 10.0
	_, err = r.ReportUsage(ctx, alloc.ID, UpdateAllocationInput{QuantityUsed: &used})
	assert.NoError(t, err)

	returned, err := r.DeleteAllocation(ctx, alloc.ID)
	assert.NoError(t, err)
	assert.Equal(t, 15.0, returned)

	txs, err := r.ListMaterialTransactions(ctx, m.ID)
	assert.NoError(t, err)
	assert.Len(t, txs, 3)

	byType := map[string]float64{}
	for _, tx := range txs {
		byType[tx.Type] = tx.Quantity
	}
	assert.Equal(t, 25.0, byType[models.TxTypeAllocate])
	assert.Equal(t, 10.0, byType[models.TxTypeConsume])
	assert.Equal(t, 15.0, byType[models.TxTypeReturn])
}
