package repository

import (
	"context"

	"github.com/tu-usuario/procurement-core/internal/domain/entity"
)

// PurchaseOrderRepository persistencia de órdenes de compra. El núcleo solo
// crea y consulta; el seguimiento de entregas lo hace el colaborador externo.
type PurchaseOrderRepository interface {
	// Create persiste la orden con sus líneas.
	Create(ctx context.Context, po *entity.PurchaseOrder) error

	// GetByID devuelve la orden con sus líneas o domain.ErrNotFound.
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)

	// ListByRequisition devuelve las órdenes generadas desde una requisición.
	ListByRequisition(ctx context.Context, requisitionID string) ([]entity.PurchaseOrder, error)
}
