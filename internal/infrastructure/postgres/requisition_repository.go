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

var _ repository.RequisitionRepository = (*RequisitionRepo)(nil)

// RequisitionRepo implementación de RequisitionRepository sobre PostgreSQL.
// Las mutaciones posteriores a la creación usan compare-and-swap sobre version.
type RequisitionRepo struct {
	q Querier
}

func NewRequisitionRepository(q Querier) *RequisitionRepo {
	return &RequisitionRepo{q: q}
}

const requisitionColumns = `id, number, warehouse_id, requester_id, requester_role,
	status, priority, required_by, approver_id, rejection_reason,
	created_at, updated_at, version`

// Create inserta la cabecera y sus líneas en una sola transacción: si una
// línea falla no queda una requisición huérfana con lista parcial.
func (r *RequisitionRepo) Create(ctx context.Context, pr *entity.PurchaseRequisition) error {
	tx, err := r.q.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create requisition: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		INSERT INTO purchase_requisitions (
			id, number, warehouse_id, requester_id, requester_role,
			status, priority, required_by, approver_id, rejection_reason,
			created_at, updated_at, version
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err = tx.Exec(ctx, query,
		pr.ID, pr.Number, pr.WarehouseID, pr.RequesterID, pr.RequesterRole,
		pr.Status, pr.Priority, pr.RequiredBy, pr.ApproverID, pr.RejectionReason,
		pr.CreatedAt, pr.UpdatedAt, pr.Version,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert requisition: %w", err)
	}
	if err := insertRequisitionItems(ctx, tx, pr.ID, pr.Items); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create requisition: %w", err)
	}
	return nil
}

func insertRequisitionItems(ctx context.Context, q Querier, prID string, items []entity.RequisitionItem) error {
	query := `
		INSERT INTO requisition_items (requisition_id, position, sku_id, quantity, urgency, remarks)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for i, it := range items {
		if _, err := q.Exec(ctx, query, prID, i, it.SKUID, it.Quantity, it.Urgency, it.Remarks); err != nil {
			return fmt.Errorf("insert requisition item: %w", err)
		}
	}
	return nil
}

func (r *RequisitionRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseRequisition, error) {
	query := `SELECT ` + requisitionColumns + ` FROM purchase_requisitions WHERE id = $1`
	pr, err := scanRequisition(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get requisition: %w", err)
	}
	items, err := r.loadItems(ctx, []string{pr.ID})
	if err != nil {
		return nil, err
	}
	pr.Items = items[pr.ID]
	return pr, nil
}

func (r *RequisitionRepo) List(ctx context.Context, filter repository.RequisitionFilter) ([]entity.PurchaseRequisition, int, error) {
	var total int
	countQuery := `
		SELECT COUNT(*)
		FROM purchase_requisitions
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR warehouse_id = $2)`
	if err := r.q.QueryRow(ctx, countQuery, string(filter.Status), filter.WarehouseID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count requisitions: %w", err)
	}

	query := `
		SELECT ` + requisitionColumns + `
		FROM purchase_requisitions
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR warehouse_id = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, string(filter.Status), filter.WarehouseID, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list requisitions: %w", err)
	}
	defer rows.Close()

	var out []entity.PurchaseRequisition
	var ids []string
	for rows.Next() {
		pr, err := scanRequisition(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan requisition: %w", err)
		}
		out = append(out, *pr)
		ids = append(ids, pr.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	itemsByID, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range out {
		out[i].Items = itemsByID[out[i].ID]
	}
	return out, total, nil
}

// UpdateVersioned hace el compare-and-swap: la fila solo se actualiza si la
// versión almacenada sigue siendo expectedVersion. Si no afecta filas hay que
// distinguir "no existe" de "la versión cambió".
func (r *RequisitionRepo) UpdateVersioned(ctx context.Context, pr *entity.PurchaseRequisition, expectedVersion int64) error {
	query := `
		UPDATE purchase_requisitions
		SET status = $3, priority = $4, required_by = $5, approver_id = $6,
		    rejection_reason = $7, updated_at = $8, version = version + 1
		WHERE id = $1 AND version = $2`
	tag, err := r.q.Exec(ctx, query,
		pr.ID, expectedVersion,
		pr.Status, pr.Priority, pr.RequiredBy, pr.ApproverID,
		pr.RejectionReason, pr.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update requisition: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		check := `SELECT EXISTS (SELECT 1 FROM purchase_requisitions WHERE id = $1)`
		if err := r.q.QueryRow(ctx, check, pr.ID).Scan(&exists); err != nil {
			return fmt.Errorf("check requisition: %w", err)
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrConcurrentModification
	}
	pr.Version = expectedVersion + 1
	return nil
}

func (r *RequisitionRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM requisition_items WHERE requisition_id = $1`, id); err != nil {
		return fmt.Errorf("delete requisition items: %w", err)
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM purchase_requisitions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete requisition: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *RequisitionRepo) PendingSKUs(ctx context.Context, warehouseID string) (map[string]bool, error) {
	query := `
		SELECT DISTINCT i.sku_id
		FROM requisition_items i
		JOIN purchase_requisitions pr ON pr.id = i.requisition_id
		WHERE pr.warehouse_id = $1
		  AND pr.status IN ('DRAFT', 'SUBMITTED', 'APPROVED')`
	rows, err := r.q.Query(ctx, query, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("pending skus: %w", err)
	}
	defer rows.Close()

	out := make(map[string]bool)
	for rows.Next() {
		var skuID string
		if err := rows.Scan(&skuID); err != nil {
			return nil, fmt.Errorf("scan pending sku: %w", err)
		}
		out[skuID] = true
	}
	return out, rows.Err()
}

// loadItems carga las líneas de un conjunto de requisiciones en una sola
// consulta, en el orden en que fueron capturadas (columna position).
func (r *RequisitionRepo) loadItems(ctx context.Context, ids []string) (map[string][]entity.RequisitionItem, error) {
	out := make(map[string][]entity.RequisitionItem, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	query := `
		SELECT requisition_id, sku_id, quantity, urgency, remarks
		FROM requisition_items
		WHERE requisition_id = ANY($1)
		ORDER BY requisition_id, position`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("load requisition items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var prID string
		var it entity.RequisitionItem
		if err := rows.Scan(&prID, &it.SKUID, &it.Quantity, &it.Urgency, &it.Remarks); err != nil {
			return nil, fmt.Errorf("scan requisition item: %w", err)
		}
		out[prID] = append(out[prID], it)
	}
	return out, rows.Err()
}

func scanRequisition(row pgx.Row) (*entity.PurchaseRequisition, error) {
	var pr entity.PurchaseRequisition
	err := row.Scan(
		&pr.ID, &pr.Number, &pr.WarehouseID, &pr.RequesterID, &pr.RequesterRole,
		&pr.Status, &pr.Priority, &pr.RequiredBy, &pr.ApproverID, &pr.RejectionReason,
		&pr.CreatedAt, &pr.UpdatedAt, &pr.Version,
	)
	if err != nil {
		return nil, err
	}
	return &pr, nil
}
