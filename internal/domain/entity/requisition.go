package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequisitionStatus es el estado del ciclo de vida de una requisición de compra.
type RequisitionStatus string

// Estados de una requisición. CONVERTED_TO_PO y REJECTED son terminales:
// una requisición rechazada queda como historial de solo lectura.
const (
	StatusDraft         RequisitionStatus = "DRAFT"
	StatusSubmitted     RequisitionStatus = "SUBMITTED"
	StatusApproved      RequisitionStatus = "APPROVED"
	StatusConvertedToPO RequisitionStatus = "CONVERTED_TO_PO"
	StatusRejected      RequisitionStatus = "REJECTED"
)

// transiciones válidas del ciclo de vida (conjunto cerrado).
var transitions = map[RequisitionStatus][]RequisitionStatus{
	StatusDraft:     {StatusSubmitted},
	StatusSubmitted: {StatusApproved, StatusRejected},
	StatusApproved:  {StatusConvertedToPO},
}

// CanTransitionTo indica si la transición de estado es una arista válida.
func (s RequisitionStatus) CanTransitionTo(target RequisitionStatus) bool {
	for _, t := range transitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// IsValid indica si el string corresponde a un estado conocido.
func (s RequisitionStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusApproved, StatusConvertedToPO, StatusRejected:
		return true
	}
	return false
}

// Deletable indica si un admin puede eliminar físicamente la requisición.
func (s RequisitionStatus) Deletable() bool {
	return s == StatusDraft || s == StatusRejected
}

// Prioridades de una requisición.
const (
	PriorityLow    = "LOW"
	PriorityNormal = "NORMAL"
	PriorityHigh   = "HIGH"
)

// RequisitionItem es una línea de la requisición. Invariante: dentro de una
// misma requisición no se repite el SKU.
type RequisitionItem struct {
	SKUID    string
	Quantity decimal.Decimal // siempre > 0
	Urgency  string          // URGENT, HIGH, MEDIUM o vacío si fue manual
	Remarks  string
}

// PurchaseRequisition (PR) es la solicitud interna de compra sujeta a aprobación.
// Version es el contador de concurrencia optimista: toda mutación se condiciona
// a la versión leída por el llamador.
type PurchaseRequisition struct {
	ID              string
	Number          string // consecutivo legible, ej. "PR-20260830-0117"
	WarehouseID     string
	RequesterID     string
	RequesterRole   string // rol del solicitante al momento de crear
	Status          RequisitionStatus
	Priority        string
	Items           []RequisitionItem
	RequiredBy      *time.Time
	ApproverID      string // se fija al aprobar
	RejectionReason string // se fija al rechazar
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Version         int64
}

// HasSKU indica si la requisición ya contiene una línea para el SKU.
func (pr *PurchaseRequisition) HasSKU(skuID string) bool {
	for _, it := range pr.Items {
		if it.SKUID == skuID {
			return true
		}
	}
	return false
}

// EstimatedTotal devuelve la suma de cantidades por el costo unitario dado por SKU.
func (pr *PurchaseRequisition) EstimatedTotal(unitCost func(skuID string) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, it := range pr.Items {
		total = total.Add(it.Quantity.Mul(unitCost(it.SKUID)))
	}
	return total
}
