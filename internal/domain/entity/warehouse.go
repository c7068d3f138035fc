package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Warehouse representa una bodega donde se almacena inventario.
// Para este núcleo es de solo lectura: la administra el directorio externo.
type Warehouse struct {
	ID        string
	Code      string
	Name      string
	Capacity  decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
