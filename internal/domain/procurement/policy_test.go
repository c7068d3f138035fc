package procurement_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/procurement-core/internal/domain/procurement"
)

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

// TestClassifyUrgency_Reglas recorre las reglas de urgencia con MinStock = 50
// y la política por defecto (seguridad 20%, umbral MEDIUM ×1.2).
func TestClassifyUrgency_Reglas(t *testing.T) {
	p := procurement.DefaultPolicy()

	cases := []struct {
		name     string
		current  string
		expected string
	}{
		{"stock en cero es URGENT", "0", procurement.UrgencyUrgent},
		{"stock negativo es URGENT", "-3", procurement.UrgencyUrgent},
		{"bajo el stock de seguridad (10) es URGENT", "9", procurement.UrgencyUrgent},
		{"en el stock de seguridad ya no es URGENT", "10", procurement.UrgencyHigh},
		{"bajo MinStock es HIGH", "40", procurement.UrgencyHigh},
		{"en MinStock ya no es HIGH", "50", procurement.UrgencyMedium},
		{"bajo MinStock×1.2 es MEDIUM", "58", procurement.UrgencyMedium},
		{"en MinStock×1.2 no se sugiere", "60", procurement.UrgencyNone},
		{"sobre el umbral no se sugiere", "120", procurement.UrgencyNone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := p.ClassifyUrgency(d(tc.current), d("50"))
			assert.Equal(t, tc.expected, got)
		})
	}
}

// TestRecommendedOrderQty_ConCapacidad el objetivo es la capacidad máxima del SKU.
func TestRecommendedOrderQty_ConCapacidad(t *testing.T) {
	p := procurement.DefaultPolicy()
	qty := p.RecommendedOrderQty(d("30"), d("50"), d("200"))
	assert.True(t, qty.Equal(d("170")), "objetivo 200 - stock 30 = 170, fue %s", qty)
}

// TestRecommendedOrderQty_SinCapacidad sin capacidad definida el objetivo es
// MinStock × ReorderTargetFactor.
func TestRecommendedOrderQty_SinCapacidad(t *testing.T) {
	p := procurement.DefaultPolicy()
	qty := p.RecommendedOrderQty(d("30"), d("50"), decimal.Zero)
	assert.True(t, qty.Equal(d("70")), "objetivo 100 - stock 30 = 70, fue %s", qty)
}

// TestRecommendedOrderQty_NuncaNegativa con stock por encima del objetivo la
// cantidad sugerida es cero, nunca negativa.
func TestRecommendedOrderQty_NuncaNegativa(t *testing.T) {
	p := procurement.DefaultPolicy()
	qty := p.RecommendedOrderQty(d("500"), d("50"), d("200"))
	assert.True(t, qty.IsZero(), "fue %s", qty)
}

func TestUrgencyRank_OrdenDePresentacion(t *testing.T) {
	assert.Less(t, procurement.UrgencyRank(procurement.UrgencyUrgent), procurement.UrgencyRank(procurement.UrgencyHigh))
	assert.Less(t, procurement.UrgencyRank(procurement.UrgencyHigh), procurement.UrgencyRank(procurement.UrgencyMedium))
	assert.Less(t, procurement.UrgencyRank(procurement.UrgencyMedium), procurement.UrgencyRank("desconocida"))
}
