package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SKU representa un artículo del catálogo (multi-bodega).
// La identidad (ID, Code) es inmutable; los umbrales (MinStock, ReorderPoint,
// MaxCapacity) los administra el catálogo externo y aquí solo se leen.
type SKU struct {
	ID           string
	Code         string // código único legible (ej. "SKU-00042")
	Name         string
	Unit         string          // unidad de medida: "und", "kg", "caja"
	UnitCost     decimal.Decimal // costo de referencia; fallback cuando no hay precios de proveedor
	MinStock     decimal.Decimal // umbral mínimo operativo
	ReorderPoint decimal.Decimal // stock de seguridad
	MaxCapacity  decimal.Decimal // capacidad máxima; cero = sin definir
	Categories   []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasMaxCapacity indica si el SKU define capacidad máxima de almacenamiento.
func (s *SKU) HasMaxCapacity() bool {
	return s.MaxCapacity.GreaterThan(decimal.Zero)
}
