package dto

import "github.com/shopspring/decimal"

// ReorderSuggestionDTO sugerencia de reposición de un par SKU×bodega.
// Derivada, nunca persistida: se recalcula en cada consulta.
type ReorderSuggestionDTO struct {
	SKUID          string          `json:"sku_id"`
	SKUCode        string          `json:"sku_code"`
	SKUName        string          `json:"sku_name"`
	WarehouseID    string          `json:"warehouse_id"`
	CurrentStock   decimal.Decimal `json:"current_stock"`
	MinStock       decimal.Decimal `json:"min_stock"`
	RecommendedQty decimal.Decimal `json:"recommended_qty"`
	Urgency        string          `json:"urgency"`
	SupplierID     string          `json:"supplier_id,omitempty"`
	SupplierName   string          `json:"supplier_name,omitempty"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	EstimatedCost  decimal.Decimal `json:"estimated_cost"`
	HasPendingPR   bool            `json:"has_pending_pr"`
}

// SuggestionSummaryDTO agregado del reporte de sugerencias.
type SuggestionSummaryDTO struct {
	Urgent             int             `json:"urgent"`
	High               int             `json:"high"`
	Medium             int             `json:"medium"`
	TotalEstimatedCost decimal.Decimal `json:"total_estimated_cost"`
}

// SuggestionReportDTO respuesta completa del motor de sugerencias.
type SuggestionReportDTO struct {
	Suggestions []ReorderSuggestionDTO `json:"suggestions"`
	Summary     SuggestionSummaryDTO   `json:"summary"`
}

// SuggestionSelectionRequest cuerpo para crear una requisición DRAFT a partir
// de sugerencias seleccionadas.
type SuggestionSelectionRequest struct {
	WarehouseID string                   `json:"warehouse_id"`
	Priority    string                   `json:"priority,omitempty"`
	Items       []RequisitionItemRequest `json:"items"`
}
