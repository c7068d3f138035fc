package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supplier representa un proveedor con su lista de precios por volumen.
type Supplier struct {
	ID           string
	Name         string
	LeadTimeDays int // tiempo de entrega prometido
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PriceTier es un escalón de precio por volumen de un proveedor para un SKU.
// Aplica el primer tier con cantidad >= MinQuantity, evaluados de mayor a menor.
type PriceTier struct {
	SupplierID  string
	SKUID       string
	MinQuantity decimal.Decimal
	UnitCost    decimal.Decimal
}

// Matches indica si el tier aplica para la cantidad pedida.
func (t PriceTier) Matches(qty decimal.Decimal) bool {
	return qty.GreaterThanOrEqual(t.MinQuantity)
}
