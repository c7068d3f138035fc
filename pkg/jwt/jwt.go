package jwt

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Identity es la identidad que el proveedor externo entrega en el token:
// usuario, rol y bodega asignada. Este núcleo nunca emite tokens de sesión,
// solo los valida para autorizar contra el rol.
type Identity struct {
	UserID      string
	Role        string // "admin" | "manager" | "operator"
	WarehouseID string // bodega asignada; vacío para admin
}

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
type Claims struct {
	jwt.RegisteredClaims
	UserID      string `json:"user_id"`
	Role        string `json:"role"`
	WarehouseID string `json:"warehouse_id,omitempty"`
}

// Parse valida el token y devuelve la identidad del actor.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (Identity, error) {
	if secret == "" {
		return Identity{}, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Identity{}, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Identity{}, fmt.Errorf("claims inválidos")
	}
	return Identity{
		UserID:      claims.UserID,
		Role:        claims.Role,
		WarehouseID: claims.WarehouseID,
	}, nil
}
