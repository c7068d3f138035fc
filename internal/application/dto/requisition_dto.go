package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/procurement-core/internal/domain/entity"
)

// RequisitionItemRequest línea de una requisición nueva.
type RequisitionItemRequest struct {
	SKUID    string          `json:"sku_id"`
	Quantity decimal.Decimal `json:"quantity"`
	Urgency  string          `json:"urgency,omitempty"`
	Remarks  string          `json:"remarks,omitempty"`
}

// CreateRequisitionRequest cuerpo para crear una requisición en DRAFT.
// WarehouseID se ignora para solicitantes no admin: se fuerza su bodega asignada.
type CreateRequisitionRequest struct {
	WarehouseID string                   `json:"warehouse_id"`
	Priority    string                   `json:"priority,omitempty"`
	Items       []RequisitionItemRequest `json:"items"`
	RequiredBy  *time.Time               `json:"required_by,omitempty"`
}

// RejectRequisitionRequest cuerpo para rechazar (motivo obligatorio).
type RejectRequisitionRequest struct {
	Version int64  `json:"version"`
	Reason  string `json:"reason"`
}

// VersionedRequest cuerpo mínimo de las transiciones: la versión leída por el
// llamador, usada como token de concurrencia optimista.
type VersionedRequest struct {
	Version int64 `json:"version"`
}

// RequisitionItemDTO línea en respuestas.
type RequisitionItemDTO struct {
	SKUID    string          `json:"sku_id"`
	Quantity decimal.Decimal `json:"quantity"`
	Urgency  string          `json:"urgency,omitempty"`
	Remarks  string          `json:"remarks,omitempty"`
}

// RequisitionDTO representación de una requisición en respuestas.
type RequisitionDTO struct {
	ID              string               `json:"id"`
	Number          string               `json:"number"`
	WarehouseID     string               `json:"warehouse_id"`
	RequesterID     string               `json:"requester_id"`
	RequesterRole   string               `json:"requester_role"`
	Status          string               `json:"status"`
	Priority        string               `json:"priority"`
	Items           []RequisitionItemDTO `json:"items"`
	RequiredBy      *time.Time           `json:"required_by,omitempty"`
	ApproverID      string               `json:"approver_id,omitempty"`
	RejectionReason string               `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
	Version         int64                `json:"version"`
}

// FromRequisition convierte la entidad a DTO.
func FromRequisition(pr *entity.PurchaseRequisition) RequisitionDTO {
	items := make([]RequisitionItemDTO, len(pr.Items))
	for i, it := range pr.Items {
		items[i] = RequisitionItemDTO{
			SKUID:    it.SKUID,
			Quantity: it.Quantity,
			Urgency:  it.Urgency,
			Remarks:  it.Remarks,
		}
	}
	return RequisitionDTO{
		ID:              pr.ID,
		Number:          pr.Number,
		WarehouseID:     pr.WarehouseID,
		RequesterID:     pr.RequesterID,
		RequesterRole:   pr.RequesterRole,
		Status:          string(pr.Status),
		Priority:        pr.Priority,
		Items:           items,
		RequiredBy:      pr.RequiredBy,
		ApproverID:      pr.ApproverID,
		RejectionReason: pr.RejectionReason,
		CreatedAt:       pr.CreatedAt,
		UpdatedAt:       pr.UpdatedAt,
		Version:         pr.Version,
	}
}

// ConversionItemResult resultado por línea de la conversión PR→PO.
type ConversionItemResult struct {
	SKUID    string `json:"sku_id"`
	OK       bool   `json:"ok"`
	PONumber string `json:"po_number,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// ConversionManifestDTO manifiesto de éxito/fracaso por ítem de la conversión.
type ConversionManifestDTO struct {
	RequisitionID string                 `json:"requisition_id"`
	Status        string                 `json:"status"`
	CreatedPOs    []PurchaseOrderDTO     `json:"created_pos"`
	Items         []ConversionItemResult `json:"items"`
	Succeeded     int                    `json:"succeeded"`
	Failed        int                    `json:"failed"`
}

// PurchaseOrderItemDTO línea de una orden de compra.
type PurchaseOrderItemDTO struct {
	SKUID    string          `json:"sku_id"`
	Quantity decimal.Decimal `json:"quantity"`
	UnitCost decimal.Decimal `json:"unit_cost"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// PurchaseOrderDTO representación de una orden de compra en respuestas.
type PurchaseOrderDTO struct {
	ID               string                 `json:"id"`
	Number           string                 `json:"number"`
	SupplierID       string                 `json:"supplier_id"`
	RequisitionID    string                 `json:"requisition_id"`
	WarehouseID      string                 `json:"warehouse_id"`
	Status           string                 `json:"status"`
	Items            []PurchaseOrderItemDTO `json:"items"`
	Total            decimal.Decimal        `json:"total"`
	OrderedAt        time.Time              `json:"ordered_at"`
	ExpectedDelivery *time.Time             `json:"expected_delivery,omitempty"`
}

// FromPurchaseOrder convierte la entidad a DTO.
func FromPurchaseOrder(po *entity.PurchaseOrder) PurchaseOrderDTO {
	items := make([]PurchaseOrderItemDTO, len(po.Items))
	for i, it := range po.Items {
		items[i] = PurchaseOrderItemDTO{
			SKUID:    it.SKUID,
			Quantity: it.Quantity,
			UnitCost: it.UnitCost,
			Subtotal: it.Subtotal(),
		}
	}
	return PurchaseOrderDTO{
		ID:               po.ID,
		Number:           po.Number,
		SupplierID:       po.SupplierID,
		RequisitionID:    po.RequisitionID,
		WarehouseID:      po.WarehouseID,
		Status:           po.Status,
		Items:            items,
		Total:            po.Total(),
		OrderedAt:        po.OrderedAt,
		ExpectedDelivery: po.ExpectedDelivery,
	}
}
