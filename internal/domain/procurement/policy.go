package procurement

import "github.com/shopspring/decimal"

// Urgencias de reposición, de mayor a menor criticidad.
const (
	UrgencyUrgent = "URGENT"
	UrgencyHigh   = "HIGH"
	UrgencyMedium = "MEDIUM"
	UrgencyNone   = "" // el par SKU×bodega no requiere sugerencia
)

// Policy agrupa los parámetros numéricos del motor de reposición.
// Los valores vienen de configuración (no están cerrados por producto):
// SafetyStockFraction y MediumThresholdFactor se infirieron de la operación
// actual y están pendientes de confirmación.
type Policy struct {
	SafetyStockFraction   decimal.Decimal // fracción de MinStock considerada stock de seguridad (ej. 0.20)
	MediumThresholdFactor decimal.Decimal // multiplicador de MinStock para urgencia MEDIUM (ej. 1.2)
	ReorderTargetFactor   decimal.Decimal // multiplicador de MinStock cuando el SKU no define capacidad (ej. 2.0)
}

// DefaultPolicy devuelve la política con los valores operativos actuales.
func DefaultPolicy() Policy {
	return Policy{
		SafetyStockFraction:   decimal.NewFromFloat(0.20),
		MediumThresholdFactor: decimal.NewFromFloat(1.2),
		ReorderTargetFactor:   decimal.NewFromInt(2),
	}
}

// ClassifyUrgency evalúa la urgencia de reposición de un par SKU×bodega.
// Reglas en orden:
//  1. URGENT: stock en cero, o por debajo del stock de seguridad (fracción de MinStock)
//  2. HIGH:   stock por debajo de MinStock
//  3. MEDIUM: stock por debajo de MinStock × MediumThresholdFactor
//  4. en o por encima de ese umbral no se sugiere nada (UrgencyNone)
func (p Policy) ClassifyUrgency(currentStock, minStock decimal.Decimal) string {
	if currentStock.LessThanOrEqual(decimal.Zero) {
		return UrgencyUrgent
	}
	safety := minStock.Mul(p.SafetyStockFraction)
	if currentStock.LessThan(safety) {
		return UrgencyUrgent
	}
	if currentStock.LessThan(minStock) {
		return UrgencyHigh
	}
	if currentStock.LessThan(minStock.Mul(p.MediumThresholdFactor)) {
		return UrgencyMedium
	}
	return UrgencyNone
}

// RecommendedOrderQty calcula la cantidad sugerida de pedido: la diferencia
// hasta el nivel objetivo (capacidad máxima del SKU, o MinStock × factor si
// no hay capacidad definida). Nunca negativa.
func (p Policy) RecommendedOrderQty(currentStock, minStock, maxCapacity decimal.Decimal) decimal.Decimal {
	target := maxCapacity
	if target.LessThanOrEqual(decimal.Zero) {
		target = minStock.Mul(p.ReorderTargetFactor)
	}
	qty := target.Sub(currentStock)
	if qty.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return qty
}

// UrgencyRank devuelve el orden de presentación (URGENT primero).
// Urgencias desconocidas van al final.
func UrgencyRank(urgency string) int {
	switch urgency {
	case UrgencyUrgent:
		return 0
	case UrgencyHigh:
		return 1
	case UrgencyMedium:
		return 2
	}
	return 3
}
