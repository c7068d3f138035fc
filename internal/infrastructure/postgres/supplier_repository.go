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

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación de SupplierRepository sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	query := `
		SELECT id, name, lead_time_days, created_at, updated_at
		FROM suppliers
		WHERE id = $1`
	var s entity.Supplier
	err := r.q.QueryRow(ctx, query, id).Scan(&s.ID, &s.Name, &s.LeadTimeDays, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

func (r *SupplierRepo) List(ctx context.Context) ([]entity.Supplier, error) {
	query := `
		SELECT id, name, lead_time_days, created_at, updated_at
		FROM suppliers
		ORDER BY name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()

	var out []entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.LeadTimeDays, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// TiersBySKU ordena por min_quantity DESC: el primer tier que aplica gana.
func (r *SupplierRepo) TiersBySKU(ctx context.Context, skuID string) ([]entity.PriceTier, error) {
	query := `
		SELECT supplier_id, sku_id, min_quantity, unit_cost
		FROM supplier_price_tiers
		WHERE sku_id = $1
		ORDER BY supplier_id, min_quantity DESC`
	return r.scanTiers(ctx, query, skuID)
}

func (r *SupplierRepo) TiersBySupplierAndSKU(ctx context.Context, supplierID, skuID string) ([]entity.PriceTier, error) {
	query := `
		SELECT supplier_id, sku_id, min_quantity, unit_cost
		FROM supplier_price_tiers
		WHERE supplier_id = $1 AND sku_id = $2
		ORDER BY min_quantity DESC`
	return r.scanTiers(ctx, query, supplierID, skuID)
}

func (r *SupplierRepo) scanTiers(ctx context.Context, query string, args ...any) ([]entity.PriceTier, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list price tiers: %w", err)
	}
	defer rows.Close()

	var out []entity.PriceTier
	for rows.Next() {
		var t entity.PriceTier
		if err := rows.Scan(&t.SupplierID, &t.SKUID, &t.MinQuantity, &t.UnitCost); err != nil {
			return nil, fmt.Errorf("scan price tier: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
