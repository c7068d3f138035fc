package repository

import (
	"context"

	"github.com/tu-usuario/procurement-core/internal/domain/entity"
)

// RequisitionFilter filtros para el listado de requisiciones.
type RequisitionFilter struct {
	Status      entity.RequisitionStatus // vacío = todas
	WarehouseID string                   // vacío = todas
	Limit       int
	Offset      int
}

// RequisitionRepository persistencia del agregado PurchaseRequisition.
// Todas las mutaciones posteriores a la creación pasan por UpdateVersioned,
// que implementa el compare-and-swap sobre Version.
type RequisitionRepository interface {
	// Create persiste una requisición nueva (estado DRAFT, version 0) con sus líneas.
	Create(ctx context.Context, pr *entity.PurchaseRequisition) error

	// GetByID devuelve la requisición con sus líneas o domain.ErrNotFound.
	GetByID(ctx context.Context, id string) (*entity.PurchaseRequisition, error)

	// List devuelve requisiciones según filtro más el total sin paginar.
	List(ctx context.Context, filter RequisitionFilter) ([]entity.PurchaseRequisition, int, error)

	// UpdateVersioned aplica la mutación condicionada a expectedVersion
	// (UPDATE ... WHERE id = $1 AND version = $2, incrementando version).
	// Devuelve domain.ErrConcurrentModification si la versión almacenada ya
	// no coincide, y domain.ErrNotFound si la requisición no existe.
	UpdateVersioned(ctx context.Context, pr *entity.PurchaseRequisition, expectedVersion int64) error

	// Delete elimina físicamente la requisición y sus líneas.
	Delete(ctx context.Context, id string) error

	// PendingSKUs devuelve el conjunto de SKUs que ya tienen una requisición
	// en DRAFT, SUBMITTED o APPROVED para la bodega (para marcar hasPendingPR).
	PendingSKUs(ctx context.Context, warehouseID string) (map[string]bool, error)
}
