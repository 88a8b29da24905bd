package model

import (
	"errors"
	"strings"
)

// Role роль пользователя маркетплейса
type Role string

const (
	RoleStudent Role = "student"
	RoleOwner   Role = "owner"
)

var ErrUnknownRole = errors.New("unknown role")

// ParseRole определяет роль по ролям из JWT (ROLE_ESTUDIANTE, ROLE_PROPIETARIO)
func ParseRole(claims []string) (Role, error) {
	for _, claim := range claims {
		switch strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(claim)), "ROLE_") {
		case "PROPIETARIO", "OWNER":
			return RoleOwner, nil
		case "ESTUDIANTE", "STUDENT":
			return RoleStudent, nil
		}
	}
	return "", ErrUnknownRole
}

// RoleFromString восстанавливает роль из хранилища
func RoleFromString(s string) (Role, error) {
	role := Role(s)
	if !role.Valid() {
		return "", ErrUnknownRole
	}
	return role, nil
}

// Valid проверяет, что роль из закрытого списка
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleOwner:
		return true
	default:
		return false
	}
}

// UserType значение userType для регистрации на бэкенде
func (r Role) UserType() string {
	switch r {
	case RoleOwner:
		return "PROPIETARIO"
	case RoleStudent:
		return "ESTUDIANTE"
	default:
		return ""
	}
}

func (r Role) String() string {
	return string(r)
}
