package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role distinguishes ordinary bettors from operators.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// AuthUser is an account row. The core treats the user id as an opaque
// string; this type only backs the auth collaborator.
type AuthUser struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
