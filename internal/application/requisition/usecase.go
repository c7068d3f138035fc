package requisition

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/procurement-core/internal/application/dto"
	"github.com/tu-usuario/procurement-core/internal/domain"
	"github.com/tu-usuario/procurement-core/internal/domain/entity"
	"github.com/tu-usuario/procurement-core/internal/domain/repository"
)

// UseCase implementa el ciclo de vida de la requisición de compra:
// DRAFT → SUBMITTED → APPROVED → CONVERTED_TO_PO, con SUBMITTED → REJECTED.
// Cada transición valida rol y estado en el servidor; la concurrencia se
// resuelve con el contador Version (compare-and-swap en el repositorio).
type UseCase struct {
	reqRepo       repository.RequisitionRepository
	skuRepo       repository.SKURepository
	warehouseRepo repository.WarehouseRepository
	converter     *Converter
	reports       ReportInvalidator
	storeTimeout  time.Duration
}

// NewUseCase construye el caso de uso del ciclo de vida de requisiciones.
func NewUseCase(
	reqRepo repository.RequisitionRepository,
	skuRepo repository.SKURepository,
	warehouseRepo repository.WarehouseRepository,
	converter *Converter,
	reports ReportInvalidator,
	storeTimeout time.Duration,
) *UseCase {
	if storeTimeout <= 0 {
		storeTimeout = 5 * time.Second
	}
	return &UseCase{
		reqRepo:       reqRepo,
		skuRepo:       skuRepo,
		warehouseRepo: warehouseRepo,
		converter:     converter,
		reports:       reports,
		storeTimeout:  storeTimeout,
	}
}

// CreatePR crea una requisición en DRAFT. Solo manager o admin; para un
// solicitante no admin la bodega se fuerza a su bodega asignada.
func (uc *UseCase) CreatePR(ctx context.Context, actor entity.Actor, req dto.CreateRequisitionRequest) (*entity.PurchaseRequisition, error) {
	if !actor.IsAdmin() && !actor.IsManager() {
		return nil, domain.ErrForbidden
	}

	warehouseID := req.WarehouseID
	if !actor.IsAdmin() {
		warehouseID = actor.WarehouseID
	}
	if warehouseID == "" {
		return nil, fmt.Errorf("bodega no resoluble: %w", domain.ErrInvalidInput)
	}

	items, err := buildItems(req.Items)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, uc.storeTimeout)
	defer cancel()

	if _, err := uc.warehouseRepo.GetByID(ctx, warehouseID); err != nil {
		return nil, storeErr(err)
	}
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.SKUID
	}
	known, err := uc.skuRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, storeErr(err)
	}
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			return nil, fmt.Errorf("sku %s: %w", id, domain.ErrNotFound)
		}
	}

	priority := req.Priority
	if priority == "" {
		priority = entity.PriorityNormal
	}

	now := time.Now()
	pr := &entity.PurchaseRequisition{
		ID:            uuid.NewString(),
		Number:        nextNumber("PR"),
		WarehouseID:   warehouseID,
		RequesterID:   actor.UserID,
		RequesterRole: actor.Role,
		Status:        entity.StatusDraft,
		Priority:      priority,
		Items:         items,
		RequiredBy:    req.RequiredBy,
		CreatedAt:     now,
		UpdatedAt:     now,
		Version:       0,
	}
	if err := uc.reqRepo.Create(ctx, pr); err != nil {
		return nil, storeErr(err)
	}
	uc.invalidateReports(ctx, pr.WarehouseID)
	return pr, nil
}

// SubmitPR envía a aprobación: DRAFT → SUBMITTED. Solo el creador (manager) o un admin.
func (uc *UseCase) SubmitPR(ctx context.Context, actor entity.Actor, id string, version int64) (*entity.PurchaseRequisition, error) {
	return uc.transition(ctx, actor, id, version, entity.StatusSubmitted, func(pr *entity.PurchaseRequisition) error {
		if !canSubmit(actor, pr) {
			return domain.ErrForbidden
		}
		return nil
	})
}

// ApprovePR aprueba: SUBMITTED → APPROVED. Solo admin; queda registrado como aprobador.
func (uc *UseCase) ApprovePR(ctx context.Context, actor entity.Actor, id string, version int64) (*entity.PurchaseRequisition, error) {
	return uc.transition(ctx, actor, id, version, entity.StatusApproved, func(pr *entity.PurchaseRequisition) error {
		if !actor.IsAdmin() {
			return domain.ErrForbidden
		}
		pr.ApproverID = actor.UserID
		return nil
	})
}

// RejectPR rechaza: SUBMITTED → REJECTED. Solo admin y con motivo obligatorio.
func (uc *UseCase) RejectPR(ctx context.Context, actor entity.Actor, id string, version int64, reason string) (*entity.PurchaseRequisition, error) {
	if reason == "" {
		return nil, fmt.Errorf("motivo de rechazo obligatorio: %w", domain.ErrInvalidInput)
	}
	pr, err := uc.transition(ctx, actor, id, version, entity.StatusRejected, func(pr *entity.PurchaseRequisition) error {
		if !actor.IsAdmin() {
			return domain.ErrForbidden
		}
		pr.RejectionReason = reason
		return nil
	})
	if err != nil {
		return nil, err
	}
	// el rechazo saca la requisición del conjunto pendiente de su bodega
	uc.invalidateReports(ctx, pr.WarehouseID)
	return pr, nil
}

// ConvertPR convierte una requisición APPROVED en órdenes de compra agrupadas
// por proveedor. Permitido a admin, o al creador si es manager.
func (uc *UseCase) ConvertPR(ctx context.Context, actor entity.Actor, id string, version int64) (*dto.ConversionManifestDTO, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.storeTimeout)
	defer cancel()

	pr, err := uc.reqRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	if !canConvert(actor, pr) {
		return nil, domain.ErrForbidden
	}
	if pr.Status != entity.StatusApproved {
		return nil, fmt.Errorf("estado %s: %w", pr.Status, domain.ErrInvalidTransition)
	}
	manifest, err := uc.converter.Convert(ctx, pr, version)
	if err != nil {
		return nil, err
	}
	uc.invalidateReports(ctx, pr.WarehouseID)
	return manifest, nil
}

// DeletePR elimina físicamente una requisición. Solo admin y solo desde DRAFT o REJECTED.
func (uc *UseCase) DeletePR(ctx context.Context, actor entity.Actor, id string) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}

	ctx, cancel := context.WithTimeout(ctx, uc.storeTimeout)
	defer cancel()

	pr, err := uc.reqRepo.GetByID(ctx, id)
	if err != nil {
		return storeErr(err)
	}
	if !pr.Status.Deletable() {
		return fmt.Errorf("estado %s no permite eliminar: %w", pr.Status, domain.ErrInvalidTransition)
	}
	if err := uc.reqRepo.Delete(ctx, id); err != nil {
		return storeErr(err)
	}
	uc.invalidateReports(ctx, pr.WarehouseID)
	return nil
}

// GetPR devuelve una requisición por ID.
func (uc *UseCase) GetPR(ctx context.Context, actor entity.Actor, id string) (*entity.PurchaseRequisition, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.storeTimeout)
	defer cancel()

	pr, err := uc.reqRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	return pr, nil
}

// ListPRs lista requisiciones. Un actor no admin solo ve su bodega asignada.
func (uc *UseCase) ListPRs(ctx context.Context, actor entity.Actor, filter repository.RequisitionFilter) ([]entity.PurchaseRequisition, int, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, 0, fmt.Errorf("estado %q desconocido: %w", filter.Status, domain.ErrInvalidInput)
	}
	if !actor.IsAdmin() {
		filter.WarehouseID = actor.WarehouseID
	}

	ctx, cancel := context.WithTimeout(ctx, uc.storeTimeout)
	defer cancel()

	prs, total, err := uc.reqRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, storeErr(err)
	}
	return prs, total, nil
}

// transition ejecuta una transición genérica: lee, valida arista y rol, muta y
// persiste condicionado a la versión leída por el llamador.
func (uc *UseCase) transition(
	ctx context.Context,
	actor entity.Actor,
	id string,
	version int64,
	target entity.RequisitionStatus,
	check func(pr *entity.PurchaseRequisition) error,
) (*entity.PurchaseRequisition, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.storeTimeout)
	defer cancel()

	pr, err := uc.reqRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	if !pr.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%s → %s: %w", pr.Status, target, domain.ErrInvalidTransition)
	}
	if err := check(pr); err != nil {
		return nil, err
	}

	pr.Status = target
	pr.UpdatedAt = time.Now()
	if err := uc.reqRepo.UpdateVersioned(ctx, pr, version); err != nil {
		return nil, storeErr(err)
	}
	return pr, nil
}

// invalidateReports descarta los reportes cacheados de la bodega; mejor
// esfuerzo: si falla, el TTL del cache acota la frescura.
func (uc *UseCase) invalidateReports(ctx context.Context, warehouseID string) {
	_ = uc.reports.Invalidate(ctx, warehouseID)
}

// canSubmit: el creador (si es manager) o un admin.
func canSubmit(actor entity.Actor, pr *entity.PurchaseRequisition) bool {
	if actor.IsAdmin() {
		return true
	}
	return actor.IsManager() && actor.UserID == pr.RequesterID
}

// canConvert: admin, o el creador si es manager.
func canConvert(actor entity.Actor, pr *entity.PurchaseRequisition) bool {
	if actor.IsAdmin() {
		return true
	}
	return actor.IsManager() && actor.UserID == pr.RequesterID
}

// buildItems valida y normaliza las líneas: al menos una, cantidades positivas
// y SKUs sin repetir dentro de la requisición.
func buildItems(in []dto.RequisitionItemRequest) ([]entity.RequisitionItem, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("la requisición necesita al menos una línea: %w", domain.ErrInvalidInput)
	}
	seen := make(map[string]bool, len(in))
	items := make([]entity.RequisitionItem, 0, len(in))
	for _, it := range in {
		if it.SKUID == "" {
			return nil, fmt.Errorf("línea sin SKU: %w", domain.ErrInvalidInput)
		}
		if it.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("cantidad de %s debe ser positiva: %w", it.SKUID, domain.ErrInvalidInput)
		}
		if seen[it.SKUID] {
			return nil, fmt.Errorf("SKU %s repetido: %w", it.SKUID, domain.ErrInvalidInput)
		}
		seen[it.SKUID] = true
		items = append(items, entity.RequisitionItem{
			SKUID:    it.SKUID,
			Quantity: it.Quantity,
			Urgency:  it.Urgency,
			Remarks:  it.Remarks,
		})
	}
	return items, nil
}

// nextNumber genera un consecutivo legible, ej. "PR-20260830-0117".
func nextNumber(prefix string) string {
	return fmt.Sprintf("%s-%s-%04d", prefix, time.Now().Format("20060102"), time.Now().UnixNano()%10000)
}

// storeErr traduce un deadline vencido del almacén a ErrUnavailable; el resto
// de errores pasa intacto.
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	return err
}
