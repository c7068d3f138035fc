package requisition_test

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/tu-usuario/procurement-core/internal/domain/entity"
	"github.com/tu-usuario/procurement-core/internal/domain/repository"
)

// MockRequisitionRepository mock de repository.RequisitionRepository.
type MockRequisitionRepository struct {
	mock.Mock
}

func (m *MockRequisitionRepository) Create(ctx context.Context, pr *entity.PurchaseRequisition) error {
	args := m.Called(ctx, pr)
	return args.Error(0)
}

func (m *MockRequisitionRepository) GetByID(ctx context.Context, id string) (*entity.PurchaseRequisition, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PurchaseRequisition), args.Error(1)
}

func (m *MockRequisitionRepository) List(ctx context.Context, filter repository.RequisitionFilter) ([]entity.PurchaseRequisition, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]entity.PurchaseRequisition), args.Int(1), args.Error(2)
}

func (m *MockRequisitionRepository) UpdateVersioned(ctx context.Context, pr *entity.PurchaseRequisition, expectedVersion int64) error {
	args := m.Called(ctx, pr, expectedVersion)
	return args.Error(0)
}

func (m *MockRequisitionRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRequisitionRepository) PendingSKUs(ctx context.Context, warehouseID string) (map[string]bool, error) {
	args := m.Called(ctx, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}

// MockSKURepository mock de repository.SKURepository.
type MockSKURepository struct {
	mock.Mock
}

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

// MockWarehouseRepository mock de repository.WarehouseRepository.
type MockWarehouseRepository struct {
	mock.Mock
}

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

// MockSupplierRepository mock de repository.SupplierRepository.
type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) List(ctx context.Context) ([]entity.Supplier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) TiersBySKU(ctx context.Context, skuID string) ([]entity.PriceTier, error) {
	args := m.Called(ctx, skuID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.PriceTier), args.Error(1)
}

func (m *MockSupplierRepository) TiersBySupplierAndSKU(ctx context.Context, supplierID, skuID string) ([]entity.PriceTier, error) {
	args := m.Called(ctx, supplierID, skuID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.PriceTier), args.Error(1)
}

// MockPurchaseOrderRepository mock de repository.PurchaseOrderRepository.
type MockPurchaseOrderRepository struct {
	mock.Mock
}

func (m *MockPurchaseOrderRepository) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	args := m.Called(ctx, po)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) ListByRequisition(ctx context.Context, requisitionID string) ([]entity.PurchaseOrder, error) {
	args := m.Called(ctx, requisitionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.PurchaseOrder), args.Error(1)
}

// fakeInvalidator registra las bodegas cuyos reportes se invalidaron.
type fakeInvalidator struct {
	warehouses []string
}

func (f *fakeInvalidator) Invalidate(ctx context.Context, warehouseID string) error {
	f.warehouses = append(f.warehouses, warehouseID)
	return nil
}

// fakeTxRunner ejecuta el callback de conversión directamente contra los
// repos dados; sin transacción real.
type fakeTxRunner struct {
	reqRepo repository.RequisitionRepository
	poRepo  repository.PurchaseOrderRepository
}

func (f *fakeTxRunner) RunConversion(ctx context.Context, fn func(
	reqRepo repository.RequisitionRepository,
	poRepo repository.PurchaseOrderRepository,
) error) error {
	return fn(f.reqRepo, f.poRepo)
}
