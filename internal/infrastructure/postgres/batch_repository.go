package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/procurement-core/internal/domain/entity"
	"github.com/tu-usuario/procurement-core/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación de BatchRepository sobre PostgreSQL. Solo lectura:
// recepciones y despachos los registra el sistema externo.
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

// ListBySKUAndWarehouse devuelve los lotes de un par SKU×bodega.
func (r *BatchRepo) ListBySKUAndWarehouse(ctx context.Context, skuID, warehouseID string) ([]entity.Batch, error) {
	query := `
		SELECT id, sku_id, warehouse_id, batch_number, quantity, expiry_date, received_date
		FROM batches
		WHERE sku_id = $1 AND warehouse_id = $2
		ORDER BY received_date`
	rows, err := r.q.Query(ctx, query, skuID, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()

	var out []entity.Batch
	for rows.Next() {
		var b entity.Batch
		if err := rows.Scan(&b.ID, &b.SKUID, &b.WarehouseID, &b.BatchNumber, &b.Quantity, &b.ExpiryDate, &b.ReceivedDate); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Levels devuelve el stock actual por par SKU×bodega: la suma se hace en la DB
// y excluye los lotes vencidos. Los pares se enumeran desde el catálogo, no
// desde los lotes vivos: un SKU cuyos lotes se consumieron o vencieron por
// completo debe aparecer con stock 0, no desaparecer del resultado.
// warehouseID vacío = todas las bodegas.
func (r *BatchRepo) Levels(ctx context.Context, warehouseID string) ([]repository.StockLevelResult, error) {
	query := `
		SELECT s.id, w.id, COALESCE(SUM(b.quantity), 0) AS current_stock
		FROM skus s
		CROSS JOIN warehouses w
		LEFT JOIN batches b
		  ON b.sku_id = s.id
		 AND b.warehouse_id = w.id
		 AND (b.expiry_date IS NULL OR b.expiry_date > now())
		WHERE ($1 = '' OR w.id = $1)
		GROUP BY s.id, w.id
		ORDER BY w.id, s.id`
	rows, err := r.q.Query(ctx, query, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("stock levels: %w", err)
	}
	defer rows.Close()

	var out []repository.StockLevelResult
	for rows.Next() {
		var l repository.StockLevelResult
		if err := rows.Scan(&l.SKUID, &l.WarehouseID, &l.CurrentStock); err != nil {
			return nil, fmt.Errorf("scan level: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// ListExpiring devuelve los lotes con fecha de vencimiento junto con el costo
// del SKU para valorizar el reporte de antigüedad.
func (r *BatchRepo) ListExpiring(ctx context.Context, warehouseID string) ([]repository.AgeingRowResult, error) {
	query := `
		SELECT b.sku_id, s.code, s.name, b.warehouse_id, b.batch_number,
		       b.quantity, s.unit_cost, b.expiry_date
		FROM batches b
		JOIN skus s ON s.id = b.sku_id
		WHERE b.expiry_date IS NOT NULL
		  AND b.quantity > 0
		  AND ($1 = '' OR b.warehouse_id = $1)
		ORDER BY b.expiry_date`
	rows, err := r.q.Query(ctx, query, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("expiring batches: %w", err)
	}
	defer rows.Close()

	var out []repository.AgeingRowResult
	for rows.Next() {
		var a repository.AgeingRowResult
		if err := rows.Scan(&a.SKUID, &a.SKUCode, &a.SKUName, &a.WarehouseID, &a.BatchNumber, &a.Quantity, &a.UnitCost, &a.ExpiryDate); err != nil {
			return nil, fmt.Errorf("scan ageing row: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
