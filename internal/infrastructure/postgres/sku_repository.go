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

var _ repository.SKURepository = (*SKURepo)(nil)

// SKURepo implementación de SKURepository sobre PostgreSQL (usable con pool o tx).
type SKURepo struct {
	q Querier
}

// NewSKURepository construye el adaptador de catálogo. Pasar pool o tx (Querier).
func NewSKURepository(q Querier) *SKURepo {
	return &SKURepo{q: q}
}

const skuColumns = `id, code, name, unit, unit_cost, min_stock, reorder_point,
	COALESCE(max_capacity, 0), categories, created_at, updated_at`

// GetByID obtiene un SKU por ID.
func (r *SKURepo) GetByID(ctx context.Context, id string) (*entity.SKU, error) {
	query := `SELECT ` + skuColumns + ` FROM skus WHERE id = $1`
	sku, err := scanSKU(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("sku %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get sku: %w", err)
	}
	return sku, nil
}

// GetByIDs obtiene los SKUs existentes indexados por ID.
func (r *SKURepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.SKU, error) {
	query := `SELECT ` + skuColumns + ` FROM skus WHERE id = ANY($1)`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get skus: %w", err)
	}
	defer rows.Close()

	out := make(map[string]*entity.SKU, len(ids))
	for rows.Next() {
		sku, err := scanSKU(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sku: %w", err)
		}
		out[sku.ID] = sku
	}
	return out, rows.Err()
}

// List devuelve todos los SKUs del catálogo ordenados por código.
func (r *SKURepo) List(ctx context.Context) ([]entity.SKU, error) {
	query := `SELECT ` + skuColumns + ` FROM skus ORDER BY code`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list skus: %w", err)
	}
	defer rows.Close()

	var out []entity.SKU
	for rows.Next() {
		sku, err := scanSKU(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sku: %w", err)
		}
		out = append(out, *sku)
	}
	return out, rows.Err()
}

func scanSKU(row pgx.Row) (*entity.SKU, error) {
	var s entity.SKU
	err := row.Scan(
		&s.ID, &s.Code, &s.Name, &s.Unit, &s.UnitCost, &s.MinStock,
		&s.ReorderPoint, &s.MaxCapacity, &s.Categories, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
