package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/apm-api/internal/auth"
	"github.com/yukikurage/apm-api/internal/constants"
	"github.com/yukikurage/apm-api/internal/models"
	"github.com/yukikurage/apm-api/internal/repository"
	"github.com/yukikurage/apm-api/internal/utils"
)

var ErrNewPasswordRequired = &ValidationError{Field: "new_password", Message: "password and new_password must be given together"}

// UserService is the admin view of user accounts
type UserService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// UpdateUserInput represents a partial user update. Changing the password
// requires the current Password alongside NewPassword.
type UpdateUserInput struct {
	Username    *string
	Email       *string
	Role        *models.Role
	Password    *string
	NewPassword *string
}

func (s *UserService) List(ctx context.Context, page utils.PaginationParams) ([]models.User, error) {
	users, err := s.users.List(ctx, page)
	if err != nil {
		return nil, storeError(err, ErrUserNotFound, "list users")
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id uint64) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, ErrUserNotFound, "get user")
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id uint64, input UpdateUserInput) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		if len(username) < constants.MinUsernameLength {
			return nil, ErrUsernameTooShort
		}
		if err := ensureUnique(ctx, s.users, username, "", user.ID); err != nil {
			return nil, err
		}
		user.Username = username
	}
	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if email == "" {
			return nil, ErrEmailRequired
		}
		if err := ensureUnique(ctx, s.users, "", email, user.ID); err != nil {
			return nil, err
		}
		user.Email = email
	}
	if input.Role != nil {
		if !input.Role.Valid() {
			return nil, ErrInvalidRole
		}
		user.Role = *input.Role
	}

	if (input.Password == nil) != (input.NewPassword == nil) {
		return nil, ErrNewPasswordRequired
	}
	if input.Password != nil {
		if err := auth.CheckPassword(user.PasswordHash, *input.Password); err != nil {
			if errors.Is(err, auth.ErrPasswordMismatch) {
				return nil, ErrCurrentPasswordIncorrect
			}
			return nil, fmt.Errorf("failed to verify password: %w", err)
		}
		if len(*input.NewPassword) < constants.MinPasswordLength {
			return nil, ErrPasswordTooShort
		}
		hash, err := auth.HashPassword(*input.NewPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, storeError(err, ErrUserNotFound, "update user")
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id uint64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return storeError(err, ErrUserNotFound, "delete user")
	}
	return nil
}
