package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/procurement-core/internal/domain"
	"github.com/tu-usuario/procurement-core/internal/domain/entity"
	"github.com/tu-usuario/procurement-core/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación de PurchaseOrderRepository sobre PostgreSQL.
type PurchaseOrderRepo struct {
	q Querier
}

func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const poColumns = `id, number, supplier_id, requisition_id, warehouse_id, status,
	ordered_at, expected_delivery, delivered_at, created_at, updated_at`

func (r *PurchaseOrderRepo) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (
			id, number, supplier_id, requisition_id, warehouse_id, status,
			ordered_at, expected_delivery, delivered_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		po.ID, po.Number, po.SupplierID, po.RequisitionID, po.WarehouseID, po.Status,
		po.OrderedAt, po.ExpectedDelivery, po.DeliveredAt, po.CreatedAt, po.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}

	itemQuery := `
		INSERT INTO purchase_order_items (order_id, sku_id, quantity, unit_cost)
		VALUES ($1, $2, $3, $4)`
	for _, it := range po.Items {
		if _, err := r.q.Exec(ctx, itemQuery, po.ID, it.SKUID, it.Quantity, it.UnitCost); err != nil {
			return fmt.Errorf("insert purchase order item: %w", err)
		}
	}
	return nil
}

func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + poColumns + ` FROM purchase_orders WHERE id = $1`
	po, err := scanPurchaseOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	items, err := r.loadItems(ctx, []string{po.ID})
	if err != nil {
		return nil, err
	}
	po.Items = items[po.ID]
	return po, nil
}

func (r *PurchaseOrderRepo) ListByRequisition(ctx context.Context, requisitionID string) ([]entity.PurchaseOrder, error) {
	query := `
		SELECT ` + poColumns + `
		FROM purchase_orders
		WHERE requisition_id = $1
		ORDER BY number`
	rows, err := r.q.Query(ctx, query, requisitionID)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()

	var out []entity.PurchaseOrder
	var ids []string
	for rows.Next() {
		po, err := scanPurchaseOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		out = append(out, *po)
		ids = append(ids, po.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	itemsByID, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Items = itemsByID[out[i].ID]
	}
	return out, nil
}

func (r *PurchaseOrderRepo) loadItems(ctx context.Context, ids []string) (map[string][]entity.PurchaseOrderItem, error) {
	out := make(map[string][]entity.PurchaseOrderItem, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	query := `
		SELECT order_id, sku_id, quantity, unit_cost
		FROM purchase_order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, sku_id`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("load purchase order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var orderID string
		var it entity.PurchaseOrderItem
		if err := rows.Scan(&orderID, &it.SKUID, &it.Quantity, &it.UnitCost); err != nil {
			return nil, fmt.Errorf("scan purchase order item: %w", err)
		}
		out[orderID] = append(out[orderID], it)
	}
	return out, rows.Err()
}

func scanPurchaseOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	err := row.Scan(
		&po.ID, &po.Number, &po.SupplierID, &po.RequisitionID, &po.WarehouseID, &po.Status,
		&po.OrderedAt, &po.ExpectedDelivery, &po.DeliveredAt, &po.CreatedAt, &po.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &po, nil
}
