package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/procurement-core/internal/domain/entity"
)

// StockLevelResult resultado crudo de la consulta de niveles: stock actual de
// un par SKU×bodega (suma de lotes no vencidos). Lo produce la DB; el use case
// lo enriquece con umbrales del catálogo.
type StockLevelResult struct {
	SKUID        string
	WarehouseID  string
	CurrentStock decimal.Decimal
}

// AgeingRowResult resultado crudo para el reporte de antigüedad: lote con
// vencimiento más el costo unitario del SKU para valorizar el bucket.
type AgeingRowResult struct {
	SKUID       string
	SKUCode     string
	SKUName     string
	WarehouseID string
	BatchNumber string
	Quantity    decimal.Decimal
	UnitCost    decimal.Decimal
	ExpiryDate  time.Time
}

// BatchRepository acceso de lectura a los lotes de inventario.
// Este núcleo nunca muta lotes: recepciones y despachos son externos.
type BatchRepository interface {
	// ListBySKUAndWarehouse devuelve los lotes (vencidos incluidos) de un par
	// SKU×bodega, ordenados por fecha de recepción.
	ListBySKUAndWarehouse(ctx context.Context, skuID, warehouseID string) ([]entity.Batch, error)

	// Levels devuelve el stock actual por par SKU×bodega sumando solo lotes
	// no vencidos. warehouseID vacío = todas las bodegas.
	Levels(ctx context.Context, warehouseID string) ([]StockLevelResult, error)

	// ListExpiring devuelve los lotes con fecha de vencimiento (para
	// antigüedad), con el costo del SKU. warehouseID vacío = todas.
	ListExpiring(ctx context.Context, warehouseID string) ([]AgeingRowResult, error)
}
