package procurement

import "github.com/shopspring/decimal"

// RatingWeights parametriza la calificación de desempeño de proveedores.
// La calificación (0-100) combina tasa de entregas a tiempo y lead time:
//
//	rating = OnTimeWeight*onTimeRate + LeadTimeWeight*leadTimeScore
//
// donde leadTimeScore es 100 para lead time <= LeadTimeTargetDays y decae
// linealmente hasta 0 al triple del objetivo.
type RatingWeights struct {
	OnTimeWeight       decimal.Decimal // peso de la tasa de entregas a tiempo (ej. 0.7)
	LeadTimeWeight     decimal.Decimal // peso del lead time (ej. 0.3)
	LeadTimeTargetDays decimal.Decimal // lead time objetivo en días (ej. 7)
}

// DefaultRatingWeights devuelve los pesos operativos actuales (70/30, objetivo 7 días).
func DefaultRatingWeights() RatingWeights {
	return RatingWeights{
		OnTimeWeight:       decimal.NewFromFloat(0.7),
		LeadTimeWeight:     decimal.NewFromFloat(0.3),
		LeadTimeTargetDays: decimal.NewFromInt(7),
	}
}

// SupplierRating calcula la calificación ponderada de un proveedor.
// onTimeRate viene en porcentaje (0-100); avgLeadTimeDays en días.
// Un proveedor sin órdenes completadas califica 0.
func SupplierRating(w RatingWeights, onTimeRate, avgLeadTimeDays decimal.Decimal, completedPOs int) decimal.Decimal {
	if completedPOs == 0 {
		return decimal.Zero
	}
	return w.OnTimeWeight.Mul(onTimeRate).
		Add(w.LeadTimeWeight.Mul(leadTimeScore(w, avgLeadTimeDays))).
		Round(2)
}

// leadTimeScore puntúa el lead time: 100 dentro del objetivo, decaimiento
// lineal hasta 0 al triple del objetivo.
func leadTimeScore(w RatingWeights, avgLeadTimeDays decimal.Decimal) decimal.Decimal {
	hundred := decimal.NewFromInt(100)
	if avgLeadTimeDays.LessThanOrEqual(w.LeadTimeTargetDays) {
		return hundred
	}
	limit := w.LeadTimeTargetDays.Mul(decimal.NewFromInt(3))
	if avgLeadTimeDays.GreaterThanOrEqual(limit) {
		return decimal.Zero
	}
	// interpolación lineal entre objetivo (100) y límite (0)
	span := limit.Sub(w.LeadTimeTargetDays)
	excess := avgLeadTimeDays.Sub(w.LeadTimeTargetDays)
	return hundred.Mul(decimal.NewFromInt(1).Sub(excess.Div(span)))
}
