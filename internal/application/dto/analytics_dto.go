package dto

import "github.com/shopspring/decimal"

// ABCEntryDTO fila del análisis ABC.
type ABCEntryDTO struct {
	SKUID         string          `json:"sku_id"`
	SKUCode       string          `json:"sku_code"`
	SKUName       string          `json:"sku_name"`
	AnnualValue   decimal.Decimal `json:"annual_value"`
	ValuePct      decimal.Decimal `json:"value_pct"`
	CumulativePct decimal.Decimal `json:"cumulative_pct"`
	Category      string          `json:"category"`
}

// ABCReportDTO reporte ABC completo con resumen por categoría.
type ABCReportDTO struct {
	Entries    []ABCEntryDTO   `json:"entries"`
	TotalValue decimal.Decimal `json:"total_value"`
	CountA     int             `json:"count_a"`
	CountB     int             `json:"count_b"`
	CountC     int             `json:"count_c"`
}

// AgeingEntryDTO lote clasificado por días hasta vencimiento.
type AgeingEntryDTO struct {
	SKUID           string          `json:"sku_id"`
	SKUCode         string          `json:"sku_code"`
	SKUName         string          `json:"sku_name"`
	WarehouseID     string          `json:"warehouse_id"`
	BatchNumber     string          `json:"batch_number"`
	Quantity        decimal.Decimal `json:"quantity"`
	Value           decimal.Decimal `json:"value"`
	DaysUntilExpiry int             `json:"days_until_expiry"`
	Bucket          string          `json:"bucket"`
}

// AgeingBucketSummaryDTO agregado por bucket de antigüedad.
type AgeingBucketSummaryDTO struct {
	Bucket     string          `json:"bucket"`
	BatchCount int             `json:"batch_count"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// AgeingReportDTO reporte de antigüedad de stock.
type AgeingReportDTO struct {
	Entries []AgeingEntryDTO         `json:"entries"`
	Summary []AgeingBucketSummaryDTO `json:"summary"`
}

// TurnoverDTO resultado de rotación de inventario.
type TurnoverDTO struct {
	SKUID             string          `json:"sku_id,omitempty"`
	PeriodMonths      int             `json:"period_months"`
	COGS              decimal.Decimal `json:"cogs"`
	AvgInventoryValue decimal.Decimal `json:"avg_inventory_value"`
	TurnoverRatio     decimal.Decimal `json:"turnover_ratio"`
	DaysInventory     decimal.Decimal `json:"days_inventory"`
	Undefined         bool            `json:"undefined"`
}

// SupplierPerformanceDTO métricas de desempeño de un proveedor.
type SupplierPerformanceDTO struct {
	SupplierID      string          `json:"supplier_id"`
	SupplierName    string          `json:"supplier_name"`
	CompletedPOs    int             `json:"completed_pos"`
	OnTimeRate      decimal.Decimal `json:"on_time_rate"`
	AvgLeadTimeDays decimal.Decimal `json:"avg_lead_time_days"`
	Rating          decimal.Decimal `json:"rating"`
}

// FulfillmentDTO métricas de cumplimiento de órdenes en una ventana de días.
type FulfillmentDTO struct {
	WindowDays         int             `json:"window_days"`
	TotalOrders        int             `json:"total_orders"`
	FulfilledOrders    int             `json:"fulfilled_orders"`
	FulfillmentRate    decimal.Decimal `json:"fulfillment_rate"`
	AvgFulfillmentDays decimal.Decimal `json:"avg_fulfillment_days"`
}

// StockValueEntryDTO valor de inventario de una bodega.
type StockValueEntryDTO struct {
	WarehouseID   string          `json:"warehouse_id"`
	WarehouseName string          `json:"warehouse_name"`
	SKUCount      int             `json:"sku_count"`
	TotalValue    decimal.Decimal `json:"total_value"`
}

// StockValueReportDTO valor de inventario por bodega con gran total.
type StockValueReportDTO struct {
	Warehouses []StockValueEntryDTO `json:"warehouses"`
	GrandTotal decimal.Decimal      `json:"grand_total"`
}
