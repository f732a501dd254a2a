package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yukikurage/apm-api/internal/auth"
	"github.com/yukikurage/apm-api/internal/constants"
	"github.com/yukikurage/apm-api/internal/models"
	"github.com/yukikurage/apm-api/internal/repository"
)

var (
	ErrUsernameTooShort = &ValidationError{Field: "username", Message: fmt.Sprintf("username must be at least %d characters", constants.MinUsernameLength)}
	ErrPasswordTooShort = &ValidationError{Field: "password", Message: fmt.Sprintf("password must be at least %d characters", constants.MinPasswordLength)}
	ErrEmailRequired    = &ValidationError{Field: "email", Message: "email is required"}
)

// AuthService handles registration and credential checks.
type AuthService struct {
	users            repository.UserRepository
	tokens           *auth.TokenManager
	allowAdminSignup bool
}

// NewAuthService creates a new AuthService. When allowAdminSignup is false
// self-registration is limited to the operator role.
func NewAuthService(users repository.UserRepository, tokens *auth.TokenManager, allowAdminSignup bool) *AuthService {
	return &AuthService{
		users:            users,
		tokens:           tokens,
		allowAdminSignup: allowAdminSignup,
	}
}

// SignupInput represents the required information to create a new user.
type SignupInput struct {
	Username string
	Email    string
	Password string
	Role     models.Role
}

// Session is an authenticated user together with its signed access token.
type Session struct {
	User  *models.User
	Token string
}

// Signup creates a user and returns a session for it.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*Session, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)

	if len(username) < constants.MinUsernameLength {
		return nil, ErrUsernameTooShort
	}
	if email == "" {
		return nil, ErrEmailRequired
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	role := input.Role
	if role == "" {
		role = models.RoleOperator
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	if role == models.RoleAdmin && !s.allowAdminSignup {
		return nil, ErrAdminSignupDisabled
	}

	if err := ensureUnique(ctx, s.users, username, email, 0); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		Role:         role,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.session(user)
}

// Login verifies credentials and returns a session for the user.
func (s *AuthService) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}

	return s.session(user)
}

func (s *AuthService) session(user *models.User) (*Session, error) {
	token, err := s.tokens.Issue(auth.IdentityOf(user))
	if err != nil {
		return nil, err
	}
	return &Session{User: user, Token: token}, nil
}

// ensureUnique checks username and email against users other than exceptID.
func ensureUnique(ctx context.Context, users repository.UserRepository, username, email string, exceptID uint64) error {
	if username != "" {
		existing, err := users.FindByUsername(ctx, username)
		switch {
		case err == nil && existing.ID != exceptID:
			return ErrUsernameTaken
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			return fmt.Errorf("failed to check username: %w", err)
		}
	}
	if email != "" {
		existing, err := users.FindByEmail(ctx, email)
		switch {
		case err == nil && existing.ID != exceptID:
			return ErrEmailTaken
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			return fmt.Errorf("failed to check email: %w", err)
		}
	}
	return nil
}
