package entity

// Roles válidos de actor. El proveedor de identidad externo entrega el rol
// en cada llamada; este núcleo solo autoriza contra ese rol, nunca autentica.
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleOperator = "operator"
)

// Actor es la identidad que ejecuta una operación (id + rol + bodega asignada).
// Viaja explícito en cada llamada del motor; no hay usuario global implícito.
type Actor struct {
	UserID      string
	Role        string
	WarehouseID string
}

// IsAdmin indica si el actor tiene rol administrador.
func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// IsManager indica si el actor tiene rol de jefe de bodega.
func (a Actor) IsManager() bool { return a.Role == RoleManager }
