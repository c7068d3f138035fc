package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Batch representa un lote recibido de un SKU en una bodega.
// El stock actual de un SKU en una bodega es la suma de cantidades de sus
// lotes no vencidos; un lote sin ExpiryDate nunca vence.
type Batch struct {
	ID           string
	SKUID        string
	WarehouseID  string
	BatchNumber  string
	Quantity     decimal.Decimal // siempre >= 0
	ExpiryDate   *time.Time      // nil = no perecedero
	ReceivedDate time.Time
}

// IsExpired indica si el lote está vencido respecto al instante dado.
func (b *Batch) IsExpired(now time.Time) bool {
	if b.ExpiryDate == nil {
		return false
	}
	return !b.ExpiryDate.After(now)
}

// DaysUntilExpiry devuelve los días hasta el vencimiento (negativo si ya venció).
// Retorna false si el lote no tiene fecha de vencimiento.
func (b *Batch) DaysUntilExpiry(now time.Time) (int, bool) {
	if b.ExpiryDate == nil {
		return 0, false
	}
	return int(b.ExpiryDate.Sub(now).Hours() / 24), true
}
