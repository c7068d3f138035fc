package requisition

import (
	"context"

	"github.com/tu-usuario/procurement-core/internal/domain/repository"
)

// TxRunner ejecuta la conversión PR→PO dentro de una transacción: las órdenes
// creadas y el cambio de estado de la requisición se confirman juntos, de modo
// que nunca es visible una conversión a medias.
type TxRunner interface {
	RunConversion(ctx context.Context, fn func(
		reqRepo repository.RequisitionRepository,
		poRepo repository.PurchaseOrderRepository,
	) error) error
}

// ReportInvalidator invalida los reportes derivados de una bodega cuando
// cambia su conjunto de requisiciones pendientes (crear, rechazar, convertir
// o eliminar; submit y approve no alteran la pertenencia al conjunto).
// Lo satisface el cache de sugerencias de infrastructure/cache.
type ReportInvalidator interface {
	Invalidate(ctx context.Context, warehouseID string) error
}
