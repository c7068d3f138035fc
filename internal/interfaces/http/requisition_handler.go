package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/procurement-core/internal/application/dto"
	"github.com/tu-usuario/procurement-core/internal/application/requisition"
	"github.com/tu-usuario/procurement-core/internal/domain"
	"github.com/tu-usuario/procurement-core/internal/domain/entity"
	"github.com/tu-usuario/procurement-core/internal/domain/repository"
)

// RequisitionHandler maneja las peticiones HTTP del ciclo de vida de
// requisiciones de compra (protegido).
type RequisitionHandler struct {
	uc *requisition.UseCase
}

// NewRequisitionHandler construye el handler.
func NewRequisitionHandler(uc *requisition.UseCase) *RequisitionHandler {
	return &RequisitionHandler{uc: uc}
}

// Create godoc
// @Summary      Crear requisición de compra (DRAFT)
// @Tags         requisitions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRequisitionRequest  true  "warehouse_id (solo admin), priority, items"
// @Success      201   {object}  dto.RequisitionDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/requisitions [post]
func (h *RequisitionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRequisitionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	pr, err := h.uc.CreatePR(c.Context(), GetActor(c), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromRequisition(pr))
}

// Get godoc
// @Summary      Consultar requisición por ID
// @Tags         requisitions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la requisición"
// @Success      200  {object}  dto.RequisitionDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/requisitions/{id} [get]
func (h *RequisitionHandler) Get(c *fiber.Ctx) error {
	pr, err := h.uc.GetPR(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.FromRequisition(pr))
}

// List godoc
// @Summary      Listar requisiciones
// @Description  Un actor no admin solo ve su bodega asignada.
// @Tags         requisitions
// @Security     Bearer
// @Produce      json
// @Param        status        query  string  false  "DRAFT, SUBMITTED, APPROVED, CONVERTED_TO_PO, REJECTED"
// @Param        warehouse_id  query  string  false  "Filtrar por bodega (solo admin)"
// @Param        limit         query  int     false  "Tamaño de página (máx 100)"
// @Param        offset        query  int     false  "Desplazamiento"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/requisitions [get]
func (h *RequisitionHandler) List(c *fiber.Ctx) error {
	page := dto.DefaultPage(c.QueryInt("limit"), c.QueryInt("offset"))
	filter := repository.RequisitionFilter{
		Status:      entity.RequisitionStatus(c.Query("status")),
		WarehouseID: c.Query("warehouse_id"),
		Limit:       page.Limit,
		Offset:      page.Offset,
	}
	prs, total, err := h.uc.ListPRs(c.Context(), GetActor(c), filter)
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]dto.RequisitionDTO, len(prs))
	for i := range prs {
		out[i] = dto.FromRequisition(&prs[i])
	}
	return c.JSON(fiber.Map{"total": total, "requisitions": out})
}

// Submit godoc
// @Summary      Enviar a aprobación (DRAFT → SUBMITTED)
// @Tags         requisitions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID de la requisición"
// @Param        body  body  dto.VersionedRequest  true  "version leída por el cliente"
// @Success      200   {object}  dto.RequisitionDTO
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/requisitions/{id}/submit [post]
func (h *RequisitionHandler) Submit(c *fiber.Ctx) error {
	var in dto.VersionedRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	pr, err := h.uc.SubmitPR(c.Context(), GetActor(c), c.Params("id"), in.Version)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.FromRequisition(pr))
}

// Approve godoc
// @Summary      Aprobar (SUBMITTED → APPROVED)
// @Tags         requisitions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID de la requisición"
// @Param        body  body  dto.VersionedRequest  true  "version leída por el cliente"
// @Success      200   {object}  dto.RequisitionDTO
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/requisitions/{id}/approve [post]
func (h *RequisitionHandler) Approve(c *fiber.Ctx) error {
	var in dto.VersionedRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	pr, err := h.uc.ApprovePR(c.Context(), GetActor(c), c.Params("id"), in.Version)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.FromRequisition(pr))
}

// Reject godoc
// @Summary      Rechazar (SUBMITTED → REJECTED, motivo obligatorio)
// @Tags         requisitions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID de la requisición"
// @Param        body  body  dto.RejectRequisitionRequest  true  "version y reason"
// @Success      200   {object}  dto.RequisitionDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/requisitions/{id}/reject [post]
func (h *RequisitionHandler) Reject(c *fiber.Ctx) error {
	var in dto.RejectRequisitionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	pr, err := h.uc.RejectPR(c.Context(), GetActor(c), c.Params("id"), in.Version, in.Reason)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.FromRequisition(pr))
}

// Convert godoc
// @Summary      Convertir a órdenes de compra (APPROVED → CONVERTED_TO_PO)
// @Description  Agrupa por proveedor y devuelve el manifiesto por ítem. Líneas
// @Description  sin precio de proveedor quedan marcadas como fallidas; si todas
// @Description  fallan la requisición permanece en APPROVED y responde 422.
// @Tags         requisitions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID de la requisición"
// @Param        body  body  dto.VersionedRequest  true  "version leída por el cliente"
// @Success      200   {object}  dto.ConversionManifestDTO
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/requisitions/{id}/convert [post]
func (h *RequisitionHandler) Convert(c *fiber.Ctx) error {
	var in dto.VersionedRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	manifest, err := h.uc.ConvertPR(c.Context(), GetActor(c), c.Params("id"), in.Version)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(manifest)
}

// Delete godoc
// @Summary      Eliminar requisición (solo admin, solo DRAFT o REJECTED)
// @Tags         requisitions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la requisición"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/requisitions/{id} [delete]
func (h *RequisitionHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeletePR(c.Context(), GetActor(c), c.Params("id")); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "requisición eliminada"})
}

// mapDomainError traduce los errores centinela del dominio al status HTTP.
func mapDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el rol no permite la operación"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: err.Error()})
	case errors.Is(err, domain.ErrConcurrentModification):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONCURRENT_MODIFICATION", Message: "la requisición fue modificada por otro usuario; recargue e intente de nuevo"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el recurso ya existe"})
	case errors.Is(err, domain.ErrConversionFailed):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "CONVERSION_FAILED", Message: err.Error()})
	case errors.Is(err, domain.ErrUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "STORE_UNAVAILABLE", Message: "almacén de datos no disponible"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
