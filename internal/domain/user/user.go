package user

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Stashly-Luggage/service-storage/pkg/auth"
	"github.com/Stashly-Luggage/service-storage/pkg/domain"
)

// User is an account that can sign in.
type User struct {
	id           uuid.UUID
	name         string
	email        string
	passwordHash string
	role         string
	createdAt    time.Time
	updatedAt    time.Time
}

// NormalizeEmail lower-cases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NewUser creates a user with an already-hashed password.
func NewUser(name, email, passwordHash, role string) (*User, error) {
	email = NormalizeEmail(email)
	if strings.TrimSpace(name) == "" {
		return nil, domain.NewValidationError("name is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, domain.NewValidationError("a valid email is required")
	}
	if passwordHash == "" {
		return nil, domain.NewValidationError("password is required")
	}
	switch role {
	case auth.RoleUser, auth.RoleOwner, auth.RoleAdmin:
	default:
		return nil, domain.NewValidationError("invalid role: " + role)
	}

	now := time.Now().UTC()
	return &User{
		id:           uuid.New(),
		name:         strings.TrimSpace(name),
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// Reconstruct rebuilds a User from persistence data (no validation).
func Reconstruct(id uuid.UUID, name, email, passwordHash, role string, createdAt, updatedAt time.Time) *User {
	return &User{
		id:           id,
		name:         name,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Name() string         { return u.name }
func (u *User) Email() string        { return u.email }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Role() string         { return u.role }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }
