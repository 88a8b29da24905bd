package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/rental_bot/internal/model"
	"github.com/golang-jwt/jwt/v4"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims данные пользователя из JWT бэкенда
type Claims struct {
	Email     string
	Roles     []string
	Role      model.Role
	ExpiresAt *time.Time
}

// ParseClaims читает claims без проверки подписи.
// Подпись проверяет бэкенд, боту нужны только email, роль и срок действия.
func ParseClaims(token string) (*Claims, error) {
	parser := jwt.NewParser()
	mapClaims := jwt.MapClaims{}

	if _, _, err := parser.ParseUnverified(token, mapClaims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims := &Claims{}

	if sub, ok := mapClaims["sub"].(string); ok {
		claims.Email = sub
	}

	claims.Roles = rolesFrom(mapClaims["roles"])
	if len(claims.Roles) == 0 {
		claims.Roles = rolesFrom(mapClaims["rol"])
	}

	role, err := model.ParseRole(claims.Roles)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims.Role = role

	if exp, ok := mapClaims["exp"].(float64); ok {
		expiresAt := time.Unix(int64(exp), 0)
		claims.ExpiresAt = &expiresAt
	}

	return claims, nil
}

// rolesFrom принимает роли строкой, списком строк или списком объектов {authority}
func rolesFrom(raw interface{}) []string {
	switch v := raw.(type) {
	case string:
		return []string{strings.ToUpper(v)}
	case []interface{}:
		roles := make([]string, 0, len(v))
		for _, item := range v {
			switch r := item.(type) {
			case string:
				roles = append(roles, strings.ToUpper(r))
			case map[string]interface{}:
				if authority, ok := r["authority"].(string); ok {
					roles = append(roles, strings.ToUpper(authority))
				}
			}
		}
		return roles
	default:
		return nil
	}
}
