package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ConsumptionResult resultado crudo del consumo histórico por SKU en un período
// (despachos). Insumo de la clasificación ABC.
type ConsumptionResult struct {
	SKUID       string
	SKUCode     string
	SKUName     string
	Consumption decimal.Decimal
	UnitCost    decimal.Decimal
}

// SupplierPOResult resultado crudo del desempeño de un proveedor sobre sus
// órdenes completadas.
type SupplierPOResult struct {
	SupplierID        string
	SupplierName      string
	CompletedPOs      int
	OnTimePOs         int
	TotalLeadTimeDays decimal.Decimal // suma de (deliveredAt - orderedAt) en días
}

// FulfillmentAggregate resultado crudo de cumplimiento de órdenes en una ventana.
type FulfillmentAggregate struct {
	TotalOrders          int
	FulfilledOrders      int
	TotalFulfillmentDays decimal.Decimal // suma de (dispatch - order) en días de las cumplidas
}

// StockValueResult valor de inventario actual por bodega.
type StockValueResult struct {
	WarehouseID   string
	WarehouseName string
	SKUCount      int
	TotalValue    decimal.Decimal
}

// AnalyticsRepository define las consultas de solo lectura del motor de
// analítica. Las implementaciones no modifican datos y son seguras de
// ejecutar en paralelo.
type AnalyticsRepository interface {
	// GetConsumption devuelve el consumo por SKU entre las fechas dadas
	// con el costo unitario vigente del catálogo.
	GetConsumption(ctx context.Context, start, end time.Time) ([]ConsumptionResult, error)

	// GetCOGS devuelve el costo de lo despachado en el período.
	// skuID vacío = todos los SKUs.
	GetCOGS(ctx context.Context, start, end time.Time, skuID string) (decimal.Decimal, error)

	// GetAvgInventoryValue devuelve el valor promedio del inventario en el
	// período (promedio de las valorizaciones diarias). skuID vacío = todos.
	GetAvgInventoryValue(ctx context.Context, start, end time.Time, skuID string) (decimal.Decimal, error)

	// GetSupplierPOStats devuelve, por proveedor, el agregado de órdenes
	// completadas: total, a tiempo y suma de lead times.
	GetSupplierPOStats(ctx context.Context) ([]SupplierPOResult, error)

	// GetFulfillment devuelve el agregado de cumplimiento de órdenes
	// creadas desde la fecha dada.
	GetFulfillment(ctx context.Context, since time.Time) (FulfillmentAggregate, error)

	// GetStockValue devuelve el valor de inventario actual por bodega
	// (suma de cantidad de lotes no vencidos × costo del SKU).
	// warehouseID vacío = todas las bodegas.
	GetStockValue(ctx context.Context, warehouseID string) ([]StockValueResult, error)
}
