package models

import (
	"slices"
	"time"
)

const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super-admin"
)

var ValidRoles = []string{RoleAdmin, RoleSuperAdmin}

type Admin struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Name         string     `json:"name"`
	Role         string     `json:"role"`
	IsActive     bool       `json:"isActive"`
	LastLogin    *time.Time `json:"lastLogin"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func IsValidRole(role string) bool {
	return slices.Contains(ValidRoles, role)
}
