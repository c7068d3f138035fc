package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/procurement-core/internal/application/dto"
	"github.com/tu-usuario/procurement-core/internal/application/suggestion"
)

// SuggestionHandler maneja las peticiones HTTP del motor de sugerencias de
// reposición (protegido).
type SuggestionHandler struct {
	uc *suggestion.UseCase
}

// NewSuggestionHandler construye el handler.
func NewSuggestionHandler(uc *suggestion.UseCase) *SuggestionHandler {
	return &SuggestionHandler{uc: uc}
}

// List godoc
// @Summary      Sugerencias de reposición
// @Description  Pares SKU×bodega bajo sus umbrales, ordenados por urgencia
// @Description  (URGENT, HIGH, MEDIUM; empates por stock ascendente) con
// @Description  cantidad recomendada, costo estimado y marca de PR pendiente.
// @Tags         suggestions
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Filtrar por bodega (solo admin). Vacío = todas."
// @Success      200  {object}  dto.SuggestionReportDTO
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/suggestions [get]
func (h *SuggestionHandler) List(c *fiber.Ctx) error {
	report, err := h.uc.GetReorderSuggestions(c.Context(), ScopedWarehouse(c))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(report)
}

// CreateRequisition godoc
// @Summary      Crear requisición DRAFT desde sugerencias seleccionadas
// @Tags         suggestions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SuggestionSelectionRequest  true  "warehouse_id (solo admin), priority, items seleccionados"
// @Success      201   {object}  dto.RequisitionDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/suggestions/requisition [post]
func (h *SuggestionHandler) CreateRequisition(c *fiber.Ctx) error {
	var in dto.SuggestionSelectionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	pr, err := h.uc.CreateDraftPRFromSuggestions(c.Context(), GetActor(c), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromRequisition(pr))
}
