package auth

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Identity текущий пользователь клиента, извлечённый из access-токена.
// Токен не верифицируется локально: подпись проверяет бэкенд на каждом
// запросе, здесь нужны только claims для ролевых проверок в UI
type Identity struct {
	UserID   int64
	FullName string
	Roles    []string
}

// FromToken разбирает claims access-токена
func FromToken(raw string) (*Identity, error) {
	parser := jwt.NewParser()

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return nil, fmt.Errorf("parse access token: %w", err)
	}

	id := &Identity{}

	switch sub := claims["sub"].(type) {
	case string:
		parsed, err := strconv.ParseInt(sub, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse subject %q: %w", sub, err)
		}
		id.UserID = parsed
	case float64:
		id.UserID = int64(sub)
	default:
		return nil, fmt.Errorf("token has no subject claim")
	}

	if name, ok := claims["full_name"].(string); ok {
		id.FullName = name
	}

	if roles, ok := claims["roles"].([]any); ok {
		for _, role := range roles {
			if s, ok := role.(string); ok {
				id.Roles = append(id.Roles, s)
			}
		}
	}
	if role, ok := claims["role"].(string); ok {
		id.Roles = append(id.Roles, role)
	}

	return id, nil
}

// HasRole проверяет роль; admin проходит любую проверку
func (id *Identity) HasRole(role string) bool {
	for _, r := range id.Roles {
		if r == role || r == "admin" {
			return true
		}
	}
	return false
}

// IsAdmin сокращение для проверки административной роли
func (id *Identity) IsAdmin() bool {
	return id.HasRole("admin")
}
