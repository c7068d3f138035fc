package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra. El núcleo solo crea órdenes en PENDING;
// recepciones y actualizaciones de entrega son responsabilidad externa.
const (
	POStatusPending   = "PENDING"
	POStatusSent      = "SENT"
	POStatusCompleted = "COMPLETED"
	POStatusCancelled = "CANCELLED"
)

// PurchaseOrderItem es una línea de la orden con el costo unitario ya resuelto
// contra la lista de precios del proveedor.
type PurchaseOrderItem struct {
	SKUID    string
	Quantity decimal.Decimal
	UnitCost decimal.Decimal
}

// Subtotal de la línea (cantidad × costo unitario).
func (i PurchaseOrderItem) Subtotal() decimal.Decimal {
	return i.Quantity.Mul(i.UnitCost)
}

// PurchaseOrder (PO) es la orden vinculante enviada a un proveedor, creada
// únicamente por la conversión de una requisición APPROVED. Inmutable después
// de creada salvo el estado de entrega (actualizado por el colaborador externo).
type PurchaseOrder struct {
	ID               string
	Number           string // consecutivo legible, ej. "PO-20260830-0042"
	SupplierID       string
	RequisitionID    string
	WarehouseID      string
	Status           string
	Items            []PurchaseOrderItem
	OrderedAt        time.Time
	ExpectedDelivery *time.Time
	DeliveredAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Total devuelve la suma de subtotales de las líneas.
func (po *PurchaseOrder) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range po.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}
