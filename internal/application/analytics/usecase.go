package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/procurement-core/internal/application/dto"
	"github.com/tu-usuario/procurement-core/internal/domain/procurement"
	"github.com/tu-usuario/procurement-core/internal/domain/repository"
)

// UseCase agrupa los reportes de analítica de inventario y compras.
// Todos son de solo lectura, idempotentes y seguros de calcular en paralelo:
// consultas agregadas en el repositorio más cómputo puro en domain/procurement.
type UseCase struct {
	repo    repository.AnalyticsRepository
	batches repository.BatchRepository
	cuts    procurement.ABCCuts
	weights procurement.RatingWeights
}

// NewUseCase construye el caso de uso de analítica con la política configurada.
func NewUseCase(
	repo repository.AnalyticsRepository,
	batches repository.BatchRepository,
	cuts procurement.ABCCuts,
	weights procurement.RatingWeights,
) *UseCase {
	return &UseCase{repo: repo, batches: batches, cuts: cuts, weights: weights}
}

// GetABCAnalysis clasifica los SKUs por valor anual de consumo (últimos 12
// meses) en categorías A/B/C según los cortes acumulados configurados.
func (uc *UseCase) GetABCAnalysis(ctx context.Context) (*dto.ABCReportDTO, error) {
	end := time.Now()
	start := end.AddDate(-1, 0, 0)

	rows, err := uc.repo.GetConsumption(ctx, start, end)
	if err != nil {
		return nil, err
	}

	inputs := make([]procurement.ABCInput, len(rows))
	for i, r := range rows {
		inputs[i] = procurement.ABCInput{
			SKUID:             r.SKUID,
			SKUCode:           r.SKUCode,
			Name:              r.SKUName,
			AnnualConsumption: r.Consumption,
			UnitCost:          r.UnitCost,
		}
	}
	entries := procurement.ClassifyABC(inputs, uc.cuts)

	report := &dto.ABCReportDTO{
		Entries:    make([]dto.ABCEntryDTO, len(entries)),
		TotalValue: decimal.Zero,
	}
	for i, e := range entries {
		report.Entries[i] = dto.ABCEntryDTO{
			SKUID:         e.SKUID,
			SKUCode:       e.SKUCode,
			SKUName:       e.Name,
			AnnualValue:   e.AnnualValue,
			ValuePct:      e.ValuePct,
			CumulativePct: e.CumulativePct,
			Category:      e.Category,
		}
		report.TotalValue = report.TotalValue.Add(e.AnnualValue)
		switch e.Category {
		case procurement.CategoryA:
			report.CountA++
		case procurement.CategoryB:
			report.CountB++
		case procurement.CategoryC:
			report.CountC++
		}
	}
	return report, nil
}

// GetStockAgeing clasifica los lotes con vencimiento en buckets por días
// restantes, con resumen valorizado por bucket. warehouseID vacío = todas.
func (uc *UseCase) GetStockAgeing(ctx context.Context, warehouseID string) (*dto.AgeingReportDTO, error) {
	rows, err := uc.batches.ListExpiring(ctx, warehouseID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	entries := make([]dto.AgeingEntryDTO, len(rows))
	byBucket := map[string]*dto.AgeingBucketSummaryDTO{}
	for _, b := range procurement.AgeingBuckets() {
		byBucket[b] = &dto.AgeingBucketSummaryDTO{Bucket: b, TotalValue: decimal.Zero}
	}

	for i, r := range rows {
		days := int(r.ExpiryDate.Sub(now).Hours() / 24)
		bucket := procurement.AgeingBucket(days)
		value := r.Quantity.Mul(r.UnitCost)
		entries[i] = dto.AgeingEntryDTO{
			SKUID:           r.SKUID,
			SKUCode:         r.SKUCode,
			SKUName:         r.SKUName,
			WarehouseID:     r.WarehouseID,
			BatchNumber:     r.BatchNumber,
			Quantity:        r.Quantity,
			Value:           value,
			DaysUntilExpiry: days,
			Bucket:          bucket,
		}
		byBucket[bucket].BatchCount++
		byBucket[bucket].TotalValue = byBucket[bucket].TotalValue.Add(value)
	}

	summary := make([]dto.AgeingBucketSummaryDTO, 0, len(byBucket))
	for _, b := range procurement.AgeingBuckets() {
		summary = append(summary, *byBucket[b])
	}
	return &dto.AgeingReportDTO{Entries: entries, Summary: summary}, nil
}

// GetTurnoverRatio calcula la rotación de inventario del período: COGS sobre
// valor promedio de inventario, y días de inventario. Con inventario promedio
// cero el resultado se reporta Undefined en lugar de fallar. skuID vacío =
// todos los SKUs; months <= 0 usa 12.
func (uc *UseCase) GetTurnoverRatio(ctx context.Context, skuID string, months int) (*dto.TurnoverDTO, error) {
	if months <= 0 {
		months = 12
	}
	end := time.Now()
	start := end.AddDate(0, -months, 0)

	// COGS y valor promedio son consultas independientes: van en paralelo.
	var cogs, avgValue decimal.Decimal
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := uc.repo.GetCOGS(gctx, start, end, skuID)
		if err != nil {
			return fmt.Errorf("cogs: %w", err)
		}
		cogs = v
		return nil
	})
	g.Go(func() error {
		v, err := uc.repo.GetAvgInventoryValue(gctx, start, end, skuID)
		if err != nil {
			return fmt.Errorf("inventario promedio: %w", err)
		}
		avgValue = v
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	periodDays := int(end.Sub(start).Hours() / 24)
	result := procurement.Turnover(cogs, avgValue, periodDays)

	return &dto.TurnoverDTO{
		SKUID:             skuID,
		PeriodMonths:      months,
		COGS:              result.COGS,
		AvgInventoryValue: result.AvgInventoryValue,
		TurnoverRatio:     result.TurnoverRatio,
		DaysInventory:     result.DaysInventory,
		Undefined:         result.Undefined,
	}, nil
}

// GetSupplierPerformance calcula, por proveedor, la tasa de entregas a tiempo,
// el lead time promedio y la calificación ponderada configurada.
func (uc *UseCase) GetSupplierPerformance(ctx context.Context) ([]dto.SupplierPerformanceDTO, error) {
	rows, err := uc.repo.GetSupplierPOStats(ctx)
	if err != nil {
		return nil, err
	}

	hundred := decimal.NewFromInt(100)
	out := make([]dto.SupplierPerformanceDTO, len(rows))
	for i, r := range rows {
		d := dto.SupplierPerformanceDTO{
			SupplierID:      r.SupplierID,
			SupplierName:    r.SupplierName,
			CompletedPOs:    r.CompletedPOs,
			OnTimeRate:      decimal.Zero,
			AvgLeadTimeDays: decimal.Zero,
			Rating:          decimal.Zero,
		}
		if r.CompletedPOs > 0 {
			completed := decimal.NewFromInt(int64(r.CompletedPOs))
			d.OnTimeRate = decimal.NewFromInt(int64(r.OnTimePOs)).Div(completed).Mul(hundred).Round(2)
			d.AvgLeadTimeDays = r.TotalLeadTimeDays.Div(completed).Round(2)
			d.Rating = procurement.SupplierRating(uc.weights, d.OnTimeRate, d.AvgLeadTimeDays, r.CompletedPOs)
		}
		out[i] = d
	}
	return out, nil
}

// GetOrderFulfillment calcula tasa y tiempo promedio de cumplimiento de las
// órdenes creadas en la ventana de días dada (por defecto 30).
func (uc *UseCase) GetOrderFulfillment(ctx context.Context, days int) (*dto.FulfillmentDTO, error) {
	if days <= 0 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)

	agg, err := uc.repo.GetFulfillment(ctx, since)
	if err != nil {
		return nil, err
	}

	out := &dto.FulfillmentDTO{
		WindowDays:         days,
		TotalOrders:        agg.TotalOrders,
		FulfilledOrders:    agg.FulfilledOrders,
		FulfillmentRate:    decimal.Zero,
		AvgFulfillmentDays: decimal.Zero,
	}
	if agg.TotalOrders > 0 {
		out.FulfillmentRate = decimal.NewFromInt(int64(agg.FulfilledOrders)).
			Div(decimal.NewFromInt(int64(agg.TotalOrders))).
			Mul(decimal.NewFromInt(100)).Round(2)
	}
	if agg.FulfilledOrders > 0 {
		out.AvgFulfillmentDays = agg.TotalFulfillmentDays.
			Div(decimal.NewFromInt(int64(agg.FulfilledOrders))).Round(2)
	}
	return out, nil
}

// GetStockValue devuelve el valor de inventario actual por bodega con el gran
// total. warehouseID vacío = todas las bodegas.
func (uc *UseCase) GetStockValue(ctx context.Context, warehouseID string) (*dto.StockValueReportDTO, error) {
	rows, err := uc.repo.GetStockValue(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	report := &dto.StockValueReportDTO{
		Warehouses: make([]dto.StockValueEntryDTO, len(rows)),
		GrandTotal: decimal.Zero,
	}
	for i, r := range rows {
		report.Warehouses[i] = dto.StockValueEntryDTO{
			WarehouseID:   r.WarehouseID,
			WarehouseName: r.WarehouseName,
			SKUCount:      r.SKUCount,
			TotalValue:    r.TotalValue,
		}
		report.GrandTotal = report.GrandTotal.Add(r.TotalValue)
	}
	return report, nil
}
