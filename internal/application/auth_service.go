package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	userDomain "github.com/Stashly-Luggage/service-storage/internal/domain/user"
	"github.com/Stashly-Luggage/service-storage/pkg/auth"
	"github.com/Stashly-Luggage/service-storage/pkg/domain"
)

const (
	minPasswordLength = 6
	// bcrypt only hashes the first 72 bytes and rejects longer input.
	maxPasswordBytes = 72
)

// SignupRequest holds the data needed to register an account.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// SigninRequest holds login credentials.
type SigninRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserDTO is the public representation of an account.
type UserDTO struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

// AuthResponse is returned by signup and signin.
type AuthResponse struct {
	Message string  `json:"message,omitempty"`
	Token   string  `json:"token"`
	User    UserDTO `json:"user"`
}

// AuthService handles account registration and login.
type AuthService struct {
	users  userDomain.UserRepository
	jwt    *auth.JWTManager
	logger *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(users userDomain.UserRepository, jwt *auth.JWTManager, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, jwt: jwt, logger: logger}
}

// Signup registers a user or store owner and signs them in.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, domain.NewValidationError("Name, email, and password are required")
	}
	role := defaultString(req.Role, auth.RoleUser)
	if role != auth.RoleUser && role != auth.RoleOwner {
		return nil, domain.NewValidationError("role must be user or owner")
	}
	if len(req.Password) < minPasswordLength {
		return nil, domain.NewValidationError(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if len(req.Password) > maxPasswordBytes {
		return nil, domain.NewValidationError(fmt.Sprintf("password must be at most %d bytes", maxPasswordBytes))
	}

	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, domain.NewConflictError("User already exists")
	} else if !domain.IsCode(err, domain.ErrCodeNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	u, err := s.newUser(req.Name, req.Email, req.Password, role)
	if err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", u.ID().String()),
		zap.String("role", role),
	)

	resp, err := s.issue(u)
	if err != nil {
		return nil, err
	}
	resp.Message = "User created successfully"
	return resp, nil
}

// Signin verifies credentials and issues a token.
func (s *AuthService) Signin(ctx context.Context, req SigninRequest) (*AuthResponse, error) {
	u, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if domain.IsCode(err, domain.ErrCodeNotFound) {
			return nil, domain.NewUnauthorizedError("Invalid email or password")
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !auth.CheckPassword(u.PasswordHash(), req.Password) {
		return nil, domain.NewUnauthorizedError("Invalid email or password")
	}
	return s.issue(u)
}

// EnsureAdmin creates the bootstrap admin account when it does not exist.
// An empty email disables bootstrapping.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" {
		return nil
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		if existing.Role() != auth.RoleAdmin {
			s.logger.Warn("bootstrap admin email belongs to a non-admin account", zap.String("email", existing.Email()))
		}
		return nil
	}
	if !domain.IsCode(err, domain.ErrCodeNotFound) {
		return fmt.Errorf("failed to look up admin: %w", err)
	}

	u, err := s.newUser("Administrator", email, password, auth.RoleAdmin)
	if err != nil {
		return err
	}
	if err := s.users.Save(ctx, u); err != nil && !domain.IsCode(err, domain.ErrCodeConflict) {
		return fmt.Errorf("failed to create admin: %w", err)
	}
	s.logger.Info("bootstrap admin created", zap.String("email", u.Email()))
	return nil
}

func (s *AuthService) newUser(name, email, password, role string) (*userDomain.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return userDomain.NewUser(name, email, hash, role)
}

func (s *AuthService) issue(u *userDomain.User) (*AuthResponse, error) {
	token, err := s.jwt.Generate(u.ID(), u.Email(), u.Role())
	if err != nil {
		return nil, domain.NewInternalError("failed to issue token", err)
	}
	return &AuthResponse{
		Token: token,
		User: UserDTO{
			ID:    u.ID(),
			Name:  u.Name(),
			Email: u.Email(),
			Role:  u.Role(),
		},
	}, nil
}
