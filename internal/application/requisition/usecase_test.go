package requisition_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/procurement-core/internal/application/dto"
	"github.com/tu-usuario/procurement-core/internal/application/inventory"
	"github.com/tu-usuario/procurement-core/internal/application/requisition"
	"github.com/tu-usuario/procurement-core/internal/domain"
	"github.com/tu-usuario/procurement-core/internal/domain/entity"
	"github.com/tu-usuario/procurement-core/internal/domain/repository"
	"github.com/tu-usuario/procurement-core/pkg/logger"
)

var (
	admin    = entity.Actor{UserID: "u-admin", Role: entity.RoleAdmin}
	manager  = entity.Actor{UserID: "u-manager", Role: entity.RoleManager, WarehouseID: "wh-1"}
	operator = entity.Actor{UserID: "u-operator", Role: entity.RoleOperator, WarehouseID: "wh-1"}
)

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

type ucDeps struct {
	reqRepo       *MockRequisitionRepository
	skuRepo       *MockSKURepository
	warehouseRepo *MockWarehouseRepository
	supplierRepo  *MockSupplierRepository
	poRepo        *MockPurchaseOrderRepository
	invalidator   *fakeInvalidator
}

func buildUseCase() (*requisition.UseCase, *ucDeps) {
	deps := &ucDeps{
		reqRepo:       new(MockRequisitionRepository),
		skuRepo:       new(MockSKURepository),
		warehouseRepo: new(MockWarehouseRepository),
		supplierRepo:  new(MockSupplierRepository),
		poRepo:        new(MockPurchaseOrderRepository),
		invalidator:   new(fakeInvalidator),
	}
	pricing := inventory.NewPricingService(deps.supplierRepo)
	tx := &fakeTxRunner{reqRepo: deps.reqRepo, poRepo: deps.poRepo}
	converter := requisition.NewConverter(pricing, deps.supplierRepo, tx, logger.Nop(), 4)
	uc := requisition.NewUseCase(deps.reqRepo, deps.skuRepo, deps.warehouseRepo, converter, deps.invalidator, time.Second)
	return uc, deps
}

func validCreateRequest() dto.CreateRequisitionRequest {
	return dto.CreateRequisitionRequest{
		WarehouseID: "wh-9",
		Items: []dto.RequisitionItemRequest{
			{SKUID: "sku-1", Quantity: d("10")},
		},
	}
}

// ── CreatePR ─────────────────────────────────────────────────────────────────

func TestCreatePR_OperadorProhibido(t *testing.T) {
	uc, _ := buildUseCase()
	_, err := uc.CreatePR(context.Background(), operator, validCreateRequest())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// TestCreatePR_ManagerUsaSuBodega un manager no elige bodega: la requisición
// queda en su bodega asignada aunque el cuerpo diga otra.
func TestCreatePR_ManagerUsaSuBodega(t *testing.T) {
	uc, deps := buildUseCase()
	deps.warehouseRepo.On("GetByID", mock.Anything, "wh-1").Return(&entity.Warehouse{ID: "wh-1"}, nil)
	deps.skuRepo.On("GetByIDs", mock.Anything, []string{"sku-1"}).
		Return(map[string]*entity.SKU{"sku-1": {ID: "sku-1"}}, nil)
	deps.reqRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	pr, err := uc.CreatePR(context.Background(), manager, validCreateRequest())

	require.NoError(t, err)
	assert.Equal(t, "wh-1", pr.WarehouseID)
	assert.Equal(t, entity.StatusDraft, pr.Status)
	assert.Equal(t, int64(0), pr.Version)
	assert.Equal(t, manager.UserID, pr.RequesterID)
	assert.NotEmpty(t, pr.Number)
}

func TestCreatePR_SinLineas(t *testing.T) {
	uc, _ := buildUseCase()
	req := validCreateRequest()
	req.Items = nil
	_, err := uc.CreatePR(context.Background(), manager, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreatePR_CantidadNoPositiva(t *testing.T) {
	uc, _ := buildUseCase()
	req := validCreateRequest()
	req.Items[0].Quantity = decimal.Zero
	_, err := uc.CreatePR(context.Background(), manager, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreatePR_SKURepetido(t *testing.T) {
	uc, _ := buildUseCase()
	req := validCreateRequest()
	req.Items = append(req.Items, dto.RequisitionItemRequest{SKUID: "sku-1", Quantity: d("5")})
	_, err := uc.CreatePR(context.Background(), manager, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreatePR_SKUDesconocido(t *testing.T) {
	uc, deps := buildUseCase()
	deps.warehouseRepo.On("GetByID", mock.Anything, "wh-1").Return(&entity.Warehouse{ID: "wh-1"}, nil)
	deps.skuRepo.On("GetByIDs", mock.Anything, []string{"sku-1"}).
		Return(map[string]*entity.SKU{}, nil)

	_, err := uc.CreatePR(context.Background(), manager, validCreateRequest())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestCreatePR_ConservaOrdenDeLineas las líneas quedan en el orden en que las
// mandó el solicitante, no por SKU.
func TestCreatePR_ConservaOrdenDeLineas(t *testing.T) {
	uc, deps := buildUseCase()
	deps.warehouseRepo.On("GetByID", mock.Anything, "wh-1").Return(&entity.Warehouse{ID: "wh-1"}, nil)
	deps.skuRepo.On("GetByIDs", mock.Anything, []string{"sku-z", "sku-a"}).
		Return(map[string]*entity.SKU{"sku-z": {ID: "sku-z"}, "sku-a": {ID: "sku-a"}}, nil)
	deps.reqRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	req := dto.CreateRequisitionRequest{
		WarehouseID: "wh-1",
		Items: []dto.RequisitionItemRequest{
			{SKUID: "sku-z", Quantity: d("3")},
			{SKUID: "sku-a", Quantity: d("7")},
		},
	}
	pr, err := uc.CreatePR(context.Background(), manager, req)

	require.NoError(t, err)
	require.Len(t, pr.Items, 2)
	assert.Equal(t, "sku-z", pr.Items[0].SKUID)
	assert.Equal(t, "sku-a", pr.Items[1].SKUID)
}

// TestCreatePR_InvalidaReporteDeBodega crear una requisición cambia el conjunto
// pendiente de la bodega, así que los reportes derivados se invalidan.
func TestCreatePR_InvalidaReporteDeBodega(t *testing.T) {
	uc, deps := buildUseCase()
	deps.warehouseRepo.On("GetByID", mock.Anything, "wh-1").Return(&entity.Warehouse{ID: "wh-1"}, nil)
	deps.skuRepo.On("GetByIDs", mock.Anything, []string{"sku-1"}).
		Return(map[string]*entity.SKU{"sku-1": {ID: "sku-1"}}, nil)
	deps.reqRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := uc.CreatePR(context.Background(), manager, validCreateRequest())

	require.NoError(t, err)
	assert.Equal(t, []string{"wh-1"}, deps.invalidator.warehouses)
}

// ── Transiciones ─────────────────────────────────────────────────────────────

func draftPR() *entity.PurchaseRequisition {
	return &entity.PurchaseRequisition{
		ID:          "pr-1",
		Number:      "PR-20260830-0001",
		WarehouseID: "wh-1",
		RequesterID: manager.UserID,
		Status:      entity.StatusDraft,
		Items: []entity.RequisitionItem{
			{SKUID: "sku-1", Quantity: d("10")},
		},
		Version: 2,
	}
}

func TestSubmitPR_CreadorManager(t *testing.T) {
	uc, deps := buildUseCase()
	deps.reqRepo.On("GetByID", mock.Anything, "pr-1").Return(draftPR(), nil)
	deps.reqRepo.On("UpdateVersioned", mock.Anything, mock.Anything, int64(2)).Return(nil)

	pr, err := uc.SubmitPR(context.Background(), manager, "pr-1", 2)

	require.NoError(t, err)
	assert.Equal(t, entity.StatusSubmitted, pr.Status)
}

// TestSubmitPR_OtroManagerProhibido un manager que no creó la requisición no
// puede enviarla a aprobación.
func TestSubmitPR_OtroManagerProhibido(t *testing.T) {
	uc, deps := buildUseCase()
	deps.reqRepo.On("GetByID", mock.Anything, "pr-1").Return(draftPR(), nil)

	otro := entity.Actor{UserID: "u-otro", Role: entity.RoleManager, WarehouseID: "wh-2"}
	_, err := uc.SubmitPR(context.Background(), otro, "pr-1", 2)

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// TestSubmitPR_DesdeEstadoInvalido la arista se valida antes que el rol: una
// requisición ya SUBMITTED no se puede volver a enviar.
func TestSubmitPR_DesdeEstadoInvalido(t *testing.T) {
	uc, deps := buildUseCase()
	pr := draftPR()
	pr.Status = entity.StatusSubmitted
	deps.reqRepo.On("GetByID", mock.Anything, "pr-1").Return(pr, nil)

	_, err := uc.SubmitPR(context.Background(), admin, "pr-1", 2)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestApprovePR_SoloAdmin(t *testing.T) {
	uc, deps := buildUseCase()
	pr := draftPR()
	pr.Status = entity.StatusSubmitted
	deps.reqRepo.On("GetByID", mock.Anything, "pr-1").Return(pr, nil)

	_, err := uc.ApprovePR(context.Background(), manager, "pr-1", 2)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestApprovePR_RegistraAprobador(t *testing.T) {
	uc, deps := buildUseCase()
	pr := draftPR()
	pr.Status = entity.StatusSubmitted
	deps.reqRepo.On("GetByID", mock.Anything, "pr-1").Return(pr, nil)
	deps.reqRepo.On("UpdateVersioned", mock.Anything, mock.Anything, int64(2)).Return(nil)

	out, err := uc.ApprovePR(context.Background(), admin, "pr-1", 2)

	require.NoError(t, err)
	assert.Equal(t, entity.StatusApproved, out.Status)
	assert.Equal(t, admin.UserID, out.ApproverID)
}

// TestApprovePR_ModificacionConcurrente si otro admin ganó la carrera, el CAS
// del repositorio falla y el error sube tal cual.
func TestApprovePR_ModificacionConcurrente(t *testing.T) {
	uc, deps := buildUseCase()
	pr := draftPR()
	pr.Status = entity.StatusSubmitted
	deps.reqRepo.On("GetByID", mock.Anything, "pr-1").Return(pr, nil)
	deps.reqRepo.On("UpdateVersioned", mock.Anything, mock.Anything, int64(2)).
		Return(domain.ErrConcurrentModification)

	_, err := uc.ApprovePR(context.Background(), admin, "pr-1", 2)
	assert.ErrorIs(t, err, domain.ErrConcurrentModification)
}

func TestRejectPR_SinMotivo(t *testing.T) {
	uc, _ := buildUseCase()
	_, err := uc.RejectPR(context.Background(), admin, "pr-1", 2, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRejectPR_GuardaMotivo(t *testing.T) {
	uc, deps := buildUseCase()
	pr := draftPR()
	pr.Status = entity.StatusSubmitted
	deps.reqRepo.On("GetByID", mock.Anything, "pr-1").Return(pr, nil)
	deps.reqRepo.On("UpdateVersioned", mock.Anything, mock.Anything, int64(2)).Return(nil)

	out, err := uc.RejectPR(context.Background(), admin, "pr-1", 2, "presupuesto agotado")

	require.NoError(t, err)
	assert.Equal(t, entity.StatusRejected, out.Status)
	assert.Equal(t, "presupuesto agotado", out.RejectionReason)
}

// TestInvalidacion_SoloCambiosDePendientes enviar a aprobación no altera el
// conjunto pendiente (sigue sin convertir), rechazar sí lo saca.
func TestInvalidacion_SoloCambiosDePendientes(t *testing.T) {
	uc, deps := buildUseCase()
	deps.reqRepo.On("GetByID", mock.Anything, "pr-1").Return(draftPR(), nil)
	deps.reqRepo.On("UpdateVersioned", mock.Anything, mock.Anything, int64(2)).Return(nil)

	_, err := uc.SubmitPR(context.Background(), manager, "pr-1", 2)
	require.NoError(t, err)
	assert.Empty(t, deps.invalidator.warehouses)
}

func TestRejectPR_InvalidaReporteDeBodega(t *testing.T) {
	uc, deps := buildUseCase()
	pr := draftPR()
	pr.Status = entity.StatusSubmitted
	deps.reqRepo.On("GetByID", mock.Anything, "pr-1").Return(pr, nil)
	deps.reqRepo.On("UpdateVersioned", mock.Anything, mock.Anything, int64(2)).Return(nil)

	_, err := uc.RejectPR(context.Background(), admin, "pr-1", 2, "presupuesto agotado")

	require.NoError(t, err)
	assert.Equal(t, []string{"wh-1"}, deps.invalidator.warehouses)
}

// ── DeletePR ─────────────────────────────────────────────────────────────────

func TestDeletePR_SoloAdmin(t *testing.T) {
	uc, _ := buildUseCase()
	err := uc.DeletePR(context.Background(), manager, "pr-1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDeletePR_AprobadaNoSeElimina(t *testing.T) {
	uc, deps := buildUseCase()
	pr := draftPR()
	pr.Status = entity.StatusApproved
	deps.reqRepo.On("GetByID", mock.Anything, "pr-1").Return(pr, nil)

	err := uc.DeletePR(context.Background(), admin, "pr-1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestDeletePR_RechazadaSeElimina(t *testing.T) {
	uc, deps := buildUseCase()
	pr := draftPR()
	pr.Status = entity.StatusRejected
	deps.reqRepo.On("GetByID", mock.Anything, "pr-1").Return(pr, nil)
	deps.reqRepo.On("Delete", mock.Anything, "pr-1").Return(nil)

	err := uc.DeletePR(context.Background(), admin, "pr-1")
	assert.NoError(t, err)
}

// ── ListPRs ──────────────────────────────────────────────────────────────────

// TestListPRs_ManagerAcotadoASuBodega el filtro de bodega de un no admin se
// sobreescribe con su bodega asignada.
func TestListPRs_ManagerAcotadoASuBodega(t *testing.T) {
	uc, deps := buildUseCase()
	deps.reqRepo.On("List", mock.Anything, mock.MatchedBy(func(f repository.RequisitionFilter) bool {
		return f.WarehouseID == "wh-1"
	})).Return([]entity.PurchaseRequisition{}, 0, nil)

	_, _, err := uc.ListPRs(context.Background(), manager, repository.RequisitionFilter{WarehouseID: "wh-otra"})
	require.NoError(t, err)
	deps.reqRepo.AssertExpectations(t)
}

func TestListPRs_EstadoDesconocido(t *testing.T) {
	uc, _ := buildUseCase()
	_, _, err := uc.ListPRs(context.Background(), admin, repository.RequisitionFilter{Status: "PENDING"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
