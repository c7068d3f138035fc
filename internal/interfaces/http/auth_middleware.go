package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/procurement-core/internal/application/dto"
	"github.com/tu-usuario/procurement-core/internal/domain/entity"
	"github.com/tu-usuario/procurement-core/pkg/jwt"
)

// Locals keys para la identidad del actor en Fiber.
const (
	LocalUserID      = "user_id"
	LocalRole        = "role"
	LocalWarehouseID = "warehouse_id"
)

// AuthMiddleware valida el Bearer Token JWT del proveedor de identidad y deja
// la identidad (usuario, rol, bodega) en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		identity, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, identity.UserID)
		c.Locals(LocalRole, identity.Role)
		c.Locals(LocalWarehouseID, identity.WarehouseID)
		return c.Next()
	}
}

// GetActor devuelve el actor del contexto (después del middleware de auth).
func GetActor(c *fiber.Ctx) entity.Actor {
	return entity.Actor{
		UserID:      localString(c, LocalUserID),
		Role:        localString(c, LocalRole),
		WarehouseID: localString(c, LocalWarehouseID),
	}
}

// ScopedWarehouse devuelve el filtro de bodega efectivo para un reporte: un
// admin puede pedir cualquier bodega vía query; el resto queda acotado a su
// bodega asignada, ignorando lo que pida.
func ScopedWarehouse(c *fiber.Ctx) string {
	actor := GetActor(c)
	if actor.IsAdmin() {
		return c.Query("warehouse_id")
	}
	return actor.WarehouseID
}

func localString(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
