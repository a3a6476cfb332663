package domain

import (
	"context"
	"time"
)

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User mirrors the Supabase auth identity in the local database; the
// role column here is authoritative, not the JWT claim.
type User struct {
	ID        string    `json:"id"` // Supabase auth subject
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, user *User) error
	UpdateRole(ctx context.Context, id, role string) error
}

type AuthUsecase interface {
	// GetCurrentUser loads the local user row, creating it with the
	// customer role on first sight of a valid Supabase subject.
	GetCurrentUser(ctx context.Context, id, email string) (*User, error)
	AssignRole(ctx context.Context, targetUserID, role string) error
	// SignOut closes the user's active shopping session so the next
	// visit starts with a fresh cart.
	SignOut(ctx context.Context, userID string) error
}
