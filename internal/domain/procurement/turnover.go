package procurement

import "github.com/shopspring/decimal"

// TurnoverResult es el resultado del cálculo de rotación de inventario.
// Undefined es true cuando el inventario promedio del período es cero:
// la razón no existe matemáticamente y se reporta como tal, no como error.
type TurnoverResult struct {
	COGS              decimal.Decimal
	AvgInventoryValue decimal.Decimal
	TurnoverRatio     decimal.Decimal
	DaysInventory     decimal.Decimal
	PeriodDays        int
	Undefined         bool
}

// Turnover calcula la rotación: COGS(período) / valorInventarioPromedio y los
// días de inventario: díasPeríodo / rotación.
func Turnover(cogs, avgInventoryValue decimal.Decimal, periodDays int) TurnoverResult {
	r := TurnoverResult{
		COGS:              cogs,
		AvgInventoryValue: avgInventoryValue,
		PeriodDays:        periodDays,
	}
	if avgInventoryValue.LessThanOrEqual(decimal.Zero) {
		r.Undefined = true
		return r
	}
	r.TurnoverRatio = cogs.Div(avgInventoryValue).Round(4)
	if r.TurnoverRatio.GreaterThan(decimal.Zero) {
		r.DaysInventory = decimal.NewFromInt(int64(periodDays)).Div(r.TurnoverRatio).Round(2)
	}
	return r
}
