package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrInvalidInput           = errors.New("entrada inválida")
	ErrDuplicate              = errors.New("recurso duplicado")
	ErrForbidden              = errors.New("acceso denegado")
	ErrInvalidTransition      = errors.New("transición de estado no permitida")
	ErrConcurrentModification = errors.New("la requisición fue modificada por otro usuario")
	ErrNoSupplierPricing      = errors.New("el SKU no tiene lista de precios de proveedor")
	ErrConversionFailed       = errors.New("ningún ítem pudo convertirse a orden de compra")
	ErrUnavailable            = errors.New("almacén de datos no disponible")
)
