package procurement

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Categorías ABC de valor de inventario.
const (
	CategoryA = "A"
	CategoryB = "B"
	CategoryC = "C"
)

// ABCInput es el insumo por SKU para la clasificación ABC.
type ABCInput struct {
	SKUID             string
	SKUCode           string
	Name              string
	AnnualConsumption decimal.Decimal
	UnitCost          decimal.Decimal
}

// ABCEntry es el resultado por SKU: valor anual, porcentaje acumulado y categoría.
type ABCEntry struct {
	SKUID         string
	SKUCode       string
	Name          string
	AnnualValue   decimal.Decimal
	ValuePct      decimal.Decimal // porcentaje del valor total
	CumulativePct decimal.Decimal
	Category      string
}

// ABCCuts define los cortes acumulados (en porcentaje) para A y B.
// Los valores operativos (70/90) vienen de configuración.
type ABCCuts struct {
	CutA decimal.Decimal
	CutB decimal.Decimal
}

// DefaultABCCuts devuelve los cortes clásicos 70/90.
func DefaultABCCuts() ABCCuts {
	return ABCCuts{CutA: decimal.NewFromInt(70), CutB: decimal.NewFromInt(90)}
}

// ClassifyABC ordena los SKUs por valor anual descendente y recorre el
// porcentaje acumulado del valor total: categoría A mientras el acumulado sea
// <= CutA, B mientras sea <= CutB, C el resto. Con valor total cero todos los
// SKUs quedan en C (no hay consumo que clasificar).
func ClassifyABC(inputs []ABCInput, cuts ABCCuts) []ABCEntry {
	entries := make([]ABCEntry, 0, len(inputs))
	total := decimal.Zero
	for _, in := range inputs {
		value := in.AnnualConsumption.Mul(in.UnitCost)
		entries = append(entries, ABCEntry{
			SKUID:       in.SKUID,
			SKUCode:     in.SKUCode,
			Name:        in.Name,
			AnnualValue: value,
		})
		total = total.Add(value)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].AnnualValue.GreaterThan(entries[j].AnnualValue)
	})

	if total.LessThanOrEqual(decimal.Zero) {
		for i := range entries {
			entries[i].Category = CategoryC
		}
		return entries
	}

	hundred := decimal.NewFromInt(100)
	cumulative := decimal.Zero
	for i := range entries {
		pct := entries[i].AnnualValue.Div(total).Mul(hundred)
		cumulative = cumulative.Add(pct)
		entries[i].ValuePct = pct.Round(2)
		entries[i].CumulativePct = cumulative.Round(2)

		switch {
		case entries[i].CumulativePct.LessThanOrEqual(cuts.CutA):
			entries[i].Category = CategoryA
		case entries[i].CumulativePct.LessThanOrEqual(cuts.CutB):
			entries[i].Category = CategoryB
		default:
			entries[i].Category = CategoryC
		}
	}
	return entries
}
