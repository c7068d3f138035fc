package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/procurement-core/internal/application/analytics"
)

// AnalyticsHandler maneja las peticiones HTTP de reportes de analítica
// (protegido). Todos los reportes son de solo lectura.
type AnalyticsHandler struct {
	uc *analytics.UseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *analytics.UseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// ABC godoc
// @Summary      Clasificación ABC por valor anual de consumo
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ABCReportDTO
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/analytics/abc [get]
func (h *AnalyticsHandler) ABC(c *fiber.Ctx) error {
	report, err := h.uc.GetABCAnalysis(c.Context())
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(report)
}

// Ageing godoc
// @Summary      Antigüedad de inventario por vencimiento
// @Description  Buckets Expired / 0-30 / 31-90 / 91+ con resumen valorizado.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Filtrar por bodega (solo admin). Vacío = todas."
// @Success      200  {object}  dto.AgeingReportDTO
// @Router       /api/analytics/ageing [get]
func (h *AnalyticsHandler) Ageing(c *fiber.Ctx) error {
	report, err := h.uc.GetStockAgeing(c.Context(), ScopedWarehouse(c))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(report)
}

// Turnover godoc
// @Summary      Rotación de inventario
// @Description  COGS del período sobre inventario promedio; con inventario
// @Description  promedio cero el resultado se marca undefined, no es error.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        sku_id  query  string  false  "Limitar a un SKU. Vacío = todos."
// @Param        months  query  int     false  "Ventana en meses (por defecto 12)"
// @Success      200  {object}  dto.TurnoverDTO
// @Router       /api/analytics/turnover [get]
func (h *AnalyticsHandler) Turnover(c *fiber.Ctx) error {
	report, err := h.uc.GetTurnoverRatio(c.Context(), c.Query("sku_id"), c.QueryInt("months"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(report)
}

// Suppliers godoc
// @Summary      Desempeño de proveedores
// @Description  Tasa de entregas a tiempo, lead time promedio y calificación
// @Description  ponderada sobre órdenes completadas.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SupplierPerformanceDTO
// @Router       /api/analytics/suppliers [get]
func (h *AnalyticsHandler) Suppliers(c *fiber.Ctx) error {
	report, err := h.uc.GetSupplierPerformance(c.Context())
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(report)
}

// Fulfillment godoc
// @Summary      Cumplimiento de órdenes
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "Ventana en días (por defecto 30)"
// @Success      200  {object}  dto.FulfillmentDTO
// @Router       /api/analytics/fulfillment [get]
func (h *AnalyticsHandler) Fulfillment(c *fiber.Ctx) error {
	report, err := h.uc.GetOrderFulfillment(c.Context(), c.QueryInt("days"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(report)
}

// StockValue godoc
// @Summary      Valor de inventario por bodega
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Filtrar por bodega (solo admin). Vacío = todas."
// @Success      200  {object}  dto.StockValueReportDTO
// @Router       /api/analytics/stock-value [get]
func (h *AnalyticsHandler) StockValue(c *fiber.Ctx) error {
	report, err := h.uc.GetStockValue(c.Context(), ScopedWarehouse(c))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(report)
}
