package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/procurement-core/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo implementación de AnalyticsRepository sobre PostgreSQL.
// Todas las consultas son de solo lectura y agregan en la DB; el use case
// aplica las fórmulas (ABC, rotación, calificación) en memoria.
type AnalyticsRepo struct {
	q Querier
}

func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetConsumption suma los despachos por SKU en el período, con el costo
// unitario vigente del catálogo. Insumo de la clasificación ABC.
func (r *AnalyticsRepo) GetConsumption(ctx context.Context, start, end time.Time) ([]repository.ConsumptionResult, error) {
	query := `
		SELECT m.sku_id, s.code, s.name,
		       COALESCE(SUM(m.quantity), 0) AS consumption,
		       s.unit_cost
		FROM stock_movements m
		JOIN skus s ON s.id = m.sku_id
		WHERE m.movement_type = 'DISPATCH'
		  AND m.occurred_at >= $1 AND m.occurred_at < $2
		GROUP BY m.sku_id, s.code, s.name, s.unit_cost`
	rows, err := r.q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("consumption query: %w", err)
	}
	defer rows.Close()

	var out []repository.ConsumptionResult
	for rows.Next() {
		var c repository.ConsumptionResult
		if err := rows.Scan(&c.SKUID, &c.SKUCode, &c.SKUName, &c.Consumption, &c.UnitCost); err != nil {
			return nil, fmt.Errorf("scan consumption: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetCOGS devuelve el costo de lo despachado en el período,
// valorizado al costo del movimiento.
func (r *AnalyticsRepo) GetCOGS(ctx context.Context, start, end time.Time, skuID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(m.quantity * m.unit_cost), 0)
		FROM stock_movements m
		WHERE m.movement_type = 'DISPATCH'
		  AND m.occurred_at >= $1 AND m.occurred_at < $2
		  AND ($3 = '' OR m.sku_id = $3)`
	var cogs decimal.Decimal
	if err := r.q.QueryRow(ctx, query, start, end, skuID).Scan(&cogs); err != nil {
		return decimal.Zero, fmt.Errorf("cogs query: %w", err)
	}
	return cogs, nil
}

// GetAvgInventoryValue promedia las valorizaciones diarias de inventario que
// registra el snapshot nocturno.
func (r *AnalyticsRepo) GetAvgInventoryValue(ctx context.Context, start, end time.Time, skuID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(AVG(daily.value), 0)
		FROM (
			SELECT snapshot_date, SUM(quantity * unit_cost) AS value
			FROM inventory_snapshots
			WHERE snapshot_date >= $1 AND snapshot_date < $2
			  AND ($3 = '' OR sku_id = $3)
			GROUP BY snapshot_date
		) daily`
	var avg decimal.Decimal
	if err := r.q.QueryRow(ctx, query, start, end, skuID).Scan(&avg); err != nil {
		return decimal.Zero, fmt.Errorf("avg inventory value query: %w", err)
	}
	return avg, nil
}

// GetSupplierPOStats agrega por proveedor sus órdenes completadas: total,
// entregadas a tiempo y suma de lead times reales en días.
func (r *AnalyticsRepo) GetSupplierPOStats(ctx context.Context) ([]repository.SupplierPOResult, error) {
	query := `
		SELECT sp.id, sp.name,
		       COUNT(po.id) FILTER (WHERE po.status = 'COMPLETED') AS completed,
		       COUNT(po.id) FILTER (
		           WHERE po.status = 'COMPLETED'
		             AND po.expected_delivery IS NOT NULL
		             AND po.delivered_at <= po.expected_delivery
		       ) AS on_time,
		       COALESCE(SUM(
		           EXTRACT(EPOCH FROM (po.delivered_at - po.ordered_at)) / 86400
		       ) FILTER (WHERE po.status = 'COMPLETED'), 0) AS total_lead_days
		FROM suppliers sp
		LEFT JOIN purchase_orders po ON po.supplier_id = sp.id
		GROUP BY sp.id, sp.name
		ORDER BY sp.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("supplier po stats query: %w", err)
	}
	defer rows.Close()

	var out []repository.SupplierPOResult
	for rows.Next() {
		var s repository.SupplierPOResult
		if err := rows.Scan(&s.SupplierID, &s.SupplierName, &s.CompletedPOs, &s.OnTimePOs, &s.TotalLeadTimeDays); err != nil {
			return nil, fmt.Errorf("scan supplier stats: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetFulfillment agrega el cumplimiento de órdenes de salida creadas desde
// la fecha dada: una orden se considera cumplida cuando fue despachada.
func (r *AnalyticsRepo) GetFulfillment(ctx context.Context, since time.Time) (repository.FulfillmentAggregate, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE dispatched_at IS NOT NULL),
		       COALESCE(SUM(
		           EXTRACT(EPOCH FROM (dispatched_at - created_at)) / 86400
		       ) FILTER (WHERE dispatched_at IS NOT NULL), 0)
		FROM outbound_orders
		WHERE created_at >= $1`
	var agg repository.FulfillmentAggregate
	err := r.q.QueryRow(ctx, query, since).Scan(&agg.TotalOrders, &agg.FulfilledOrders, &agg.TotalFulfillmentDays)
	if err != nil {
		return repository.FulfillmentAggregate{}, fmt.Errorf("fulfillment query: %w", err)
	}
	return agg, nil
}

// GetStockValue valoriza el inventario actual por bodega: lotes no vencidos
// por el costo del SKU. Una bodega sin stock devuelve fila con ceros.
func (r *AnalyticsRepo) GetStockValue(ctx context.Context, warehouseID string) ([]repository.StockValueResult, error) {
	query := `
		SELECT w.id, w.name,
		       COUNT(DISTINCT b.sku_id),
		       COALESCE(SUM(b.quantity * s.unit_cost), 0)
		FROM warehouses w
		LEFT JOIN batches b ON b.warehouse_id = w.id
		     AND (b.expiry_date IS NULL OR b.expiry_date > now())
		LEFT JOIN skus s ON s.id = b.sku_id
		WHERE ($1 = '' OR w.id = $1)
		GROUP BY w.id, w.name
		ORDER BY w.name`
	rows, err := r.q.Query(ctx, query, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("stock value query: %w", err)
	}
	defer rows.Close()

	var out []repository.StockValueResult
	for rows.Next() {
		var v repository.StockValueResult
		if err := rows.Scan(&v.WarehouseID, &v.WarehouseName, &v.SKUCount, &v.TotalValue); err != nil {
			return nil, fmt.Errorf("scan stock value: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
