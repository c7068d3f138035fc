package inventory

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/procurement-core/internal/domain"
	"github.com/tu-usuario/procurement-core/internal/domain/entity"
	"github.com/tu-usuario/procurement-core/internal/domain/repository"
)

// PriceQuote es el resultado de resolver un precio: proveedor elegido y costos.
type PriceQuote struct {
	SupplierID   string
	SupplierName string
	UnitCost     decimal.Decimal
	TotalCost    decimal.Decimal
}

// PricingService resuelve el costo unitario de un SKU contra las listas de
// precios por volumen de los proveedores.
type PricingService struct {
	supplierRepo repository.SupplierRepository
}

// NewPricingService construye el resolutor de precios.
func NewPricingService(supplierRepo repository.SupplierRepository) *PricingService {
	return &PricingService{supplierRepo: supplierRepo}
}

// Resolve devuelve el costo unitario y total para el SKU y la cantidad.
// Con supplierID vacío elige el proveedor cuyo tier aplicable dé el menor
// costo unitario. Aplica el primer tier con qty >= MinQuantity (tiers
// evaluados de mayor a menor MinQuantity). ErrNoSupplierPricing si el SKU no
// tiene lista de precios o ningún tier aplica.
func (s *PricingService) Resolve(ctx context.Context, skuID, supplierID string, qty decimal.Decimal) (*PriceQuote, error) {
	if qty.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("cantidad debe ser positiva: %w", domain.ErrInvalidInput)
	}

	var tiers []entity.PriceTier
	var err error
	if supplierID != "" {
		tiers, err = s.supplierRepo.TiersBySupplierAndSKU(ctx, supplierID, skuID)
	} else {
		tiers, err = s.supplierRepo.TiersBySKU(ctx, skuID)
	}
	if err != nil {
		return nil, err
	}
	if len(tiers) == 0 {
		return nil, domain.ErrNoSupplierPricing
	}

	// Primer tier aplicable por proveedor (vienen ordenados por MinQuantity
	// descendente); entre proveedores gana el menor costo unitario.
	seen := map[string]bool{}
	var winner *entity.PriceTier
	for i := range tiers {
		t := tiers[i]
		if seen[t.SupplierID] || !t.Matches(qty) {
			continue
		}
		seen[t.SupplierID] = true
		if winner == nil || t.UnitCost.LessThan(winner.UnitCost) {
			winner = &tiers[i]
		}
	}
	if winner == nil {
		return nil, domain.ErrNoSupplierPricing
	}

	supplier, err := s.supplierRepo.GetByID(ctx, winner.SupplierID)
	if err != nil {
		return nil, err
	}

	return &PriceQuote{
		SupplierID:   supplier.ID,
		SupplierName: supplier.Name,
		UnitCost:     winner.UnitCost,
		TotalCost:    winner.UnitCost.Mul(qty),
	}, nil
}
