package repository

import (
	"context"

	"github.com/tu-usuario/procurement-core/internal/domain/entity"
)

// SKURepository acceso de lectura al catálogo de SKUs (administrado externamente).
type SKURepository interface {
	// GetByID devuelve el SKU o domain.ErrNotFound.
	GetByID(ctx context.Context, id string) (*entity.SKU, error)

	// GetByIDs devuelve los SKUs existentes indexados por ID. Los IDs no
	// encontrados simplemente no aparecen en el mapa.
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.SKU, error)

	// List devuelve todos los SKUs del catálogo.
	List(ctx context.Context) ([]entity.SKU, error)
}

// WarehouseRepository acceso de lectura al directorio de bodegas.
type WarehouseRepository interface {
	// GetByID devuelve la bodega o domain.ErrNotFound.
	GetByID(ctx context.Context, id string) (*entity.Warehouse, error)

	// List devuelve todas las bodegas.
	List(ctx context.Context) ([]entity.Warehouse, error)
}
