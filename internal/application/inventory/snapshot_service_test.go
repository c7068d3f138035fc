package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/procurement-core/internal/application/inventory"
	"github.com/tu-usuario/procurement-core/internal/domain"
	"github.com/tu-usuario/procurement-core/internal/domain/entity"
	"github.com/tu-usuario/procurement-core/internal/domain/repository"
)

// ── Mocks ────────────────────────────────────────────────────────────────────

type MockSKURepository struct{ mock.Mock }

func (m *MockSKURepository) GetByID(ctx context.Context, id string) (*entity.SKU, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SKU), args.Error(1)
}

func (m *MockSKURepository) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.SKU, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*entity.SKU), args.Error(1)
}

func (m *MockSKURepository) List(ctx context.Context) ([]entity.SKU, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.SKU), args.Error(1)
}

type MockWarehouseRepository struct{ mock.Mock }

func (m *MockWarehouseRepository) GetByID(ctx context.Context, id string) (*entity.Warehouse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) List(ctx context.Context) ([]entity.Warehouse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Warehouse), args.Error(1)
}

type MockBatchRepository struct{ mock.Mock }

func (m *MockBatchRepository) ListBySKUAndWarehouse(ctx context.Context, skuID, warehouseID string) ([]entity.Batch, error) {
	args := m.Called(ctx, skuID, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Batch), args.Error(1)
}

func (m *MockBatchRepository) Levels(ctx context.Context, warehouseID string) ([]repository.StockLevelResult, error) {
	args := m.Called(ctx, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.StockLevelResult), args.Error(1)
}

func (m *MockBatchRepository) ListExpiring(ctx context.Context, warehouseID string) ([]repository.AgeingRowResult, error) {
	args := m.Called(ctx, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.AgeingRowResult), args.Error(1)
}

func buildSnapshot() (*inventory.SnapshotService, *MockSKURepository, *MockWarehouseRepository, *MockBatchRepository) {
	skus := new(MockSKURepository)
	warehouses := new(MockWarehouseRepository)
	batches := new(MockBatchRepository)
	return inventory.NewSnapshotService(skus, warehouses, batches), skus, warehouses, batches
}

// ── Tests ────────────────────────────────────────────────────────────────────

// TestCurrentStock_ExcluyeVencidos el stock actual suma solo lotes vigentes:
// los vencidos quedan fuera y un lote sin fecha de vencimiento nunca vence.
func TestCurrentStock_ExcluyeVencidos(t *testing.T) {
	svc, skus, warehouses, batches := buildSnapshot()
	skus.On("GetByID", mock.Anything, "sku-1").Return(&entity.SKU{ID: "sku-1"}, nil)
	warehouses.On("GetByID", mock.Anything, "wh-1").Return(&entity.Warehouse{ID: "wh-1"}, nil)

	ayer := time.Now().AddDate(0, 0, -1)
	enUnMes := time.Now().AddDate(0, 1, 0)
	batches.On("ListBySKUAndWarehouse", mock.Anything, "sku-1", "wh-1").Return([]entity.Batch{
		{ID: "b-1", Quantity: d("30"), ExpiryDate: &enUnMes},
		{ID: "b-2", Quantity: d("25"), ExpiryDate: &ayer},
		{ID: "b-3", Quantity: d("12"), ExpiryDate: nil},
	}, nil)

	stock, vigentes, err := svc.CurrentStockWithBatches(context.Background(), "sku-1", "wh-1")

	require.NoError(t, err)
	assert.True(t, stock.Equal(d("42")), "30 + 12, el lote vencido no cuenta (fue %s)", stock)
	require.Len(t, vigentes, 2)
	assert.Equal(t, "b-1", vigentes[0].ID)
	assert.Equal(t, "b-3", vigentes[1].ID)
}

func TestCurrentStock_SKUInexistente(t *testing.T) {
	svc, skus, _, _ := buildSnapshot()
	skus.On("GetByID", mock.Anything, "sku-x").Return(nil, domain.ErrNotFound)

	_, err := svc.CurrentStock(context.Background(), "sku-x", "wh-1")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAllLevels_BodegaInexistente(t *testing.T) {
	svc, _, warehouses, _ := buildSnapshot()
	warehouses.On("GetByID", mock.Anything, "wh-x").Return(nil, domain.ErrNotFound)

	_, err := svc.AllLevels(context.Background(), "wh-x")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAllLevels_SinFilas(t *testing.T) {
	svc, _, _, batches := buildSnapshot()
	batches.On("Levels", mock.Anything, "").Return([]repository.StockLevelResult(nil), nil)

	levels, err := svc.AllLevels(context.Background(), "")

	require.NoError(t, err)
	assert.NotNil(t, levels, "sin stock devuelve slice vacío, no nil")
	assert.Empty(t, levels)
}
