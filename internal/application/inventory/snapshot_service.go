package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/procurement-core/internal/domain/entity"
	"github.com/tu-usuario/procurement-core/internal/domain/repository"
)

// SnapshotService lee el stock actual desde los lotes. Sin efectos de lado:
// este núcleo nunca muta lotes.
type SnapshotService struct {
	skuRepo       repository.SKURepository
	warehouseRepo repository.WarehouseRepository
	batchRepo     repository.BatchRepository
}

// NewSnapshotService construye el lector de inventario.
func NewSnapshotService(
	skuRepo repository.SKURepository,
	warehouseRepo repository.WarehouseRepository,
	batchRepo repository.BatchRepository,
) *SnapshotService {
	return &SnapshotService{
		skuRepo:       skuRepo,
		warehouseRepo: warehouseRepo,
		batchRepo:     batchRepo,
	}
}

// CurrentStock devuelve el stock actual de un SKU en una bodega: suma de
// cantidades de lotes no vencidos. ErrNotFound si SKU o bodega no existen.
func (s *SnapshotService) CurrentStock(ctx context.Context, skuID, warehouseID string) (decimal.Decimal, error) {
	stock, _, err := s.CurrentStockWithBatches(ctx, skuID, warehouseID)
	return stock, err
}

// CurrentStockWithBatches devuelve además el detalle de lotes vigentes.
func (s *SnapshotService) CurrentStockWithBatches(ctx context.Context, skuID, warehouseID string) (decimal.Decimal, []entity.Batch, error) {
	if _, err := s.skuRepo.GetByID(ctx, skuID); err != nil {
		return decimal.Zero, nil, err
	}
	if _, err := s.warehouseRepo.GetByID(ctx, warehouseID); err != nil {
		return decimal.Zero, nil, err
	}

	batches, err := s.batchRepo.ListBySKUAndWarehouse(ctx, skuID, warehouseID)
	if err != nil {
		return decimal.Zero, nil, err
	}

	now := time.Now()
	total := decimal.Zero
	valid := make([]entity.Batch, 0, len(batches))
	for _, b := range batches {
		if b.IsExpired(now) {
			continue
		}
		total = total.Add(b.Quantity)
		valid = append(valid, b)
	}
	return total, valid, nil
}

// AllLevels devuelve el stock actual de todos los pares SKU×bodega.
// warehouseID vacío = todas las bodegas; si se indica una, debe existir.
func (s *SnapshotService) AllLevels(ctx context.Context, warehouseID string) ([]repository.StockLevelResult, error) {
	if warehouseID != "" {
		if _, err := s.warehouseRepo.GetByID(ctx, warehouseID); err != nil {
			return nil, err
		}
	}
	levels, err := s.batchRepo.Levels(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	if levels == nil {
		levels = []repository.StockLevelResult{}
	}
	return levels, nil
}
