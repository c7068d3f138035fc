package repository

import (
	"context"

	"github.com/tu-usuario/procurement-core/internal/domain/entity"
)

// SupplierRepository acceso de lectura al directorio de proveedores y sus
// listas de precios por volumen.
type SupplierRepository interface {
	// GetByID devuelve el proveedor o domain.ErrNotFound.
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)

	// List devuelve todos los proveedores.
	List(ctx context.Context) ([]entity.Supplier, error)

	// TiersBySKU devuelve los escalones de precio de todos los proveedores
	// para un SKU, ordenados por MinQuantity descendente (el primero que
	// aplica gana). Lista vacía = el SKU no tiene precios de proveedor.
	TiersBySKU(ctx context.Context, skuID string) ([]entity.PriceTier, error)

	// TiersBySupplierAndSKU devuelve los escalones de un proveedor puntual
	// para un SKU, ordenados por MinQuantity descendente.
	TiersBySupplierAndSKU(ctx context.Context, supplierID, skuID string) ([]entity.PriceTier, error)
}
