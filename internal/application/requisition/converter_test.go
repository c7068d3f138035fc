package requisition_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/procurement-core/internal/application/inventory"
	"github.com/tu-usuario/procurement-core/internal/application/requisition"
	"github.com/tu-usuario/procurement-core/internal/domain"
	"github.com/tu-usuario/procurement-core/internal/domain/entity"
	"github.com/tu-usuario/procurement-core/pkg/logger"
)

func buildConverter(deps *ucDeps) *requisition.Converter {
	pricing := inventory.NewPricingService(deps.supplierRepo)
	tx := &fakeTxRunner{reqRepo: deps.reqRepo, poRepo: deps.poRepo}
	return requisition.NewConverter(pricing, deps.supplierRepo, tx, logger.Nop(), 4)
}

func approvedPR() *entity.PurchaseRequisition {
	return &entity.PurchaseRequisition{
		ID:          "pr-1",
		Number:      "PR-20260830-0001",
		WarehouseID: "wh-1",
		RequesterID: manager.UserID,
		Status:      entity.StatusApproved,
		Items: []entity.RequisitionItem{
			{SKUID: "sku-1", Quantity: d("10")},
			{SKUID: "sku-2", Quantity: d("20")},
			{SKUID: "sku-huerfano", Quantity: d("5")},
		},
		Version: 3,
	}
}

func tier(supplierID, skuID, minQty, cost string) entity.PriceTier {
	return entity.PriceTier{SupplierID: supplierID, SKUID: skuID, MinQuantity: d(minQty), UnitCost: d(cost)}
}

// TestConvert_FalloParcial dos de tres líneas tienen precio de proveedor: se
// crean las órdenes, la requisición pasa a CONVERTED_TO_PO y la línea sin
// precio queda marcada como fallida en el manifiesto.
func TestConvert_FalloParcial(t *testing.T) {
	deps := &ucDeps{
		reqRepo:      new(MockRequisitionRepository),
		supplierRepo: new(MockSupplierRepository),
		poRepo:       new(MockPurchaseOrderRepository),
	}
	deps.supplierRepo.On("TiersBySKU", mock.Anything, "sku-1").
		Return([]entity.PriceTier{tier("prov-a", "sku-1", "0", "10")}, nil)
	deps.supplierRepo.On("TiersBySKU", mock.Anything, "sku-2").
		Return([]entity.PriceTier{tier("prov-b", "sku-2", "0", "4")}, nil)
	deps.supplierRepo.On("TiersBySKU", mock.Anything, "sku-huerfano").
		Return([]entity.PriceTier{}, nil)
	deps.supplierRepo.On("GetByID", mock.Anything, "prov-a").
		Return(&entity.Supplier{ID: "prov-a", Name: "Proveedor A", LeadTimeDays: 7}, nil)
	deps.supplierRepo.On("GetByID", mock.Anything, "prov-b").
		Return(&entity.Supplier{ID: "prov-b", Name: "Proveedor B", LeadTimeDays: 3}, nil)
	deps.poRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	deps.reqRepo.On("UpdateVersioned", mock.Anything, mock.Anything, int64(3)).Return(nil)

	pr := approvedPR()
	manifest, err := buildConverter(deps).Convert(context.Background(), pr, 3)

	require.NoError(t, err)
	assert.Equal(t, entity.StatusConvertedToPO, pr.Status)
	assert.Len(t, manifest.CreatedPOs, 2, "una orden por proveedor")
	assert.Equal(t, 2, manifest.Succeeded)
	assert.Equal(t, 1, manifest.Failed)

	byStatus := map[string]bool{}
	for _, it := range manifest.Items {
		byStatus[it.SKUID] = it.OK
	}
	assert.True(t, byStatus["sku-1"])
	assert.True(t, byStatus["sku-2"])
	assert.False(t, byStatus["sku-huerfano"])
	deps.poRepo.AssertNumberOfCalls(t, "Create", 2)
}

// TestConvert_TodasFallan sin ninguna línea convertible no se crea nada:
// ErrConversionFailed y la requisición sigue APPROVED.
func TestConvert_TodasFallan(t *testing.T) {
	deps := &ucDeps{
		reqRepo:      new(MockRequisitionRepository),
		supplierRepo: new(MockSupplierRepository),
		poRepo:       new(MockPurchaseOrderRepository),
	}
	deps.supplierRepo.On("TiersBySKU", mock.Anything, mock.Anything).
		Return([]entity.PriceTier{}, nil)

	pr := approvedPR()
	_, err := buildConverter(deps).Convert(context.Background(), pr, 3)

	assert.ErrorIs(t, err, domain.ErrConversionFailed)
	assert.Equal(t, entity.StatusApproved, pr.Status)
	deps.poRepo.AssertNotCalled(t, "Create")
	deps.reqRepo.AssertNotCalled(t, "UpdateVersioned")
}

// TestConvert_ErrorDeInfraAborta un timeout del almacén al cotizar una línea no
// es un fallo por línea: la conversión entera aborta con ErrUnavailable, no se
// crea ninguna orden y la requisición sigue APPROVED para reintentar.
func TestConvert_ErrorDeInfraAborta(t *testing.T) {
	deps := &ucDeps{
		reqRepo:      new(MockRequisitionRepository),
		supplierRepo: new(MockSupplierRepository),
		poRepo:       new(MockPurchaseOrderRepository),
	}
	deps.supplierRepo.On("TiersBySKU", mock.Anything, "sku-1").
		Return([]entity.PriceTier{tier("prov-a", "sku-1", "0", "10")}, nil)
	deps.supplierRepo.On("TiersBySKU", mock.Anything, "sku-2").
		Return(nil, context.DeadlineExceeded)
	deps.supplierRepo.On("TiersBySKU", mock.Anything, "sku-huerfano").
		Return([]entity.PriceTier{}, nil)
	deps.supplierRepo.On("GetByID", mock.Anything, "prov-a").
		Return(&entity.Supplier{ID: "prov-a", Name: "Proveedor A", LeadTimeDays: 7}, nil)

	pr := approvedPR()
	_, err := buildConverter(deps).Convert(context.Background(), pr, 3)

	assert.ErrorIs(t, err, domain.ErrUnavailable)
	assert.Equal(t, entity.StatusApproved, pr.Status)
	deps.poRepo.AssertNotCalled(t, "Create")
	deps.reqRepo.AssertNotCalled(t, "UpdateVersioned")
}

// TestConvert_CASPierdeLaCarrera si el compare-and-swap falla dentro de la
// transacción, la conversión aborta y el estado en memoria vuelve a APPROVED.
func TestConvert_CASPierdeLaCarrera(t *testing.T) {
	deps := &ucDeps{
		reqRepo:      new(MockRequisitionRepository),
		supplierRepo: new(MockSupplierRepository),
		poRepo:       new(MockPurchaseOrderRepository),
	}
	deps.supplierRepo.On("TiersBySKU", mock.Anything, mock.Anything).
		Return([]entity.PriceTier{tier("prov-a", "", "0", "10")}, nil)
	deps.supplierRepo.On("GetByID", mock.Anything, "prov-a").
		Return(&entity.Supplier{ID: "prov-a", Name: "Proveedor A"}, nil)
	deps.poRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	deps.reqRepo.On("UpdateVersioned", mock.Anything, mock.Anything, int64(3)).
		Return(domain.ErrConcurrentModification)

	pr := approvedPR()
	_, err := buildConverter(deps).Convert(context.Background(), pr, 3)

	assert.ErrorIs(t, err, domain.ErrConcurrentModification)
	assert.Equal(t, entity.StatusApproved, pr.Status)
}

// TestConvert_AgrupaPorProveedor dos líneas del mismo proveedor terminan en
// una sola orden con ambas líneas.
func TestConvert_AgrupaPorProveedor(t *testing.T) {
	deps := &ucDeps{
		reqRepo:      new(MockRequisitionRepository),
		supplierRepo: new(MockSupplierRepository),
		poRepo:       new(MockPurchaseOrderRepository),
	}
	deps.supplierRepo.On("TiersBySKU", mock.Anything, "sku-1").
		Return([]entity.PriceTier{tier("prov-a", "sku-1", "0", "10")}, nil)
	deps.supplierRepo.On("TiersBySKU", mock.Anything, "sku-2").
		Return([]entity.PriceTier{tier("prov-a", "sku-2", "0", "4")}, nil)
	deps.supplierRepo.On("GetByID", mock.Anything, "prov-a").
		Return(&entity.Supplier{ID: "prov-a", Name: "Proveedor A", LeadTimeDays: 5}, nil)
	deps.poRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	deps.reqRepo.On("UpdateVersioned", mock.Anything, mock.Anything, int64(3)).Return(nil)

	pr := approvedPR()
	pr.Items = pr.Items[:2] // solo sku-1 y sku-2

	manifest, err := buildConverter(deps).Convert(context.Background(), pr, 3)

	require.NoError(t, err)
	require.Len(t, manifest.CreatedPOs, 1)
	po := manifest.CreatedPOs[0]
	assert.Equal(t, "prov-a", po.SupplierID)
	assert.Len(t, po.Items, 2)
	// total = 10×10 + 20×4 = 180
	assert.True(t, po.Total.Equal(d("180")), "fue %s", po.Total)
	assert.NotNil(t, po.ExpectedDelivery, "lead time 5 días fija entrega esperada")
	deps.poRepo.AssertNumberOfCalls(t, "Create", 1)
}
