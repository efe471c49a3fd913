package user

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines persistence operations for accounts.
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	// FindByEmail looks up a normalized email.
	FindByEmail(ctx context.Context, email string) (*User, error)
	// Save inserts a user; a duplicate email yields a conflict error.
	Save(ctx context.Context, user *User) error
}
