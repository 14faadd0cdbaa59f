package masterdata

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meridian-ims/meridian-ims/internal/platform/httpx"
)

func newTestService() *Service {
	return NewService(NewMemoryRepository())
}

func TestCreateProductRejectsDuplicateSKU(t *testing.T) {
	svc := newTestService()

	_, err := svc.CreateProduct(CreateProductRequest{SKU: "LAP-001", Name: "Laptop", UOM: "PCS"})
	require.NoError(t, err)

	_, err = svc.CreateProduct(CreateProductRequest{SKU: "lap-001", Name: "Another Laptop", UOM: "PCS"})
	require.ErrorIs(t, err, httpx.ErrDuplicate)
}

func TestUpdateProductAppliesPartialChanges(t *testing.T) {
	svc := newTestService()
	p, err := svc.CreateProduct(CreateProductRequest{SKU: "LAP-001", Name: "Laptop", UOM: "PCS", CostPrice: 1200})
	require.NoError(t, err)

	name := "Laptop Pro"
	cost := 1250.0
	updated, err := svc.UpdateProduct(p.ID, UpdateProductRequest{Name: &name, CostPrice: &cost})
	require.NoError(t, err)
	require.Equal(t, "Laptop Pro", updated.Name)
	require.InDelta(t, 1250.0, updated.CostPrice, 0.001)
	require.Equal(t, "PCS", updated.UOM) // untouched field survives
}

func TestDeleteWarehouseRefusesWithBins(t *testing.T) {
	svc := newTestService()
	wh, err := svc.CreateWarehouse(CreateWarehouseRequest{Code: "WH-A", Name: "Main"})
	require.NoError(t, err)
	_, err = svc.CreateBin(CreateBinRequest{WarehouseID: wh.ID, Code: "A-01", Zone: "A"})
	require.NoError(t, err)

	err = svc.DeleteWarehouse(wh.ID)
	require.ErrorIs(t, err, httpx.ErrConflict)
}

func TestCreateBinRequiresWarehouse(t *testing.T) {
	svc := newTestService()
	_, err := svc.CreateBin(CreateBinRequest{WarehouseID: 42, Code: "A-01"})
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestCreateBinRejectsDuplicateCodePerWarehouse(t *testing.T) {
	svc := newTestService()
	wh, err := svc.CreateWarehouse(CreateWarehouseRequest{Code: "WH-A", Name: "Main"})
	require.NoError(t, err)
	other, err := svc.CreateWarehouse(CreateWarehouseRequest{Code: "WH-B", Name: "Overflow"})
	require.NoError(t, err)

	_, err = svc.CreateBin(CreateBinRequest{WarehouseID: wh.ID, Code: "A-01"})
	require.NoError(t, err)
	_, err = svc.CreateBin(CreateBinRequest{WarehouseID: wh.ID, Code: "A-01"})
	require.ErrorIs(t, err, httpx.ErrDuplicate)

	// Same code in another warehouse is fine.
	_, err = svc.CreateBin(CreateBinRequest{WarehouseID: other.ID, Code: "A-01"})
	require.NoError(t, err)
}

func TestReferenceChecksAgainstFixtures(t *testing.T) {
	repo := NewMemoryRepository()
	SeedFixtures(repo)
	svc := NewService(repo)

	require.True(t, svc.ProductExists(1))
	require.False(t, svc.ProductExists(99))
	require.True(t, svc.WarehouseExists(1))
	require.True(t, svc.BinInWarehouse(1, 1))
	require.False(t, svc.BinInWarehouse(1, 2))
	require.False(t, svc.BinInWarehouse(99, 1))
}

func TestSeedFixturesShape(t *testing.T) {
	repo := NewMemoryRepository()
	SeedFixtures(repo)
	svc := NewService(repo)

	require.Len(t, svc.ListProducts(), 6)
	require.Len(t, svc.ListWarehouses(), 2)
	require.Len(t, svc.ListBins(0), 5)
	require.Len(t, svc.ListBins(1), 3)
	require.Len(t, svc.ListBins(2), 2)
}
