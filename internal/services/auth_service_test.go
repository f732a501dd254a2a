package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yukikurage/apm-api/internal/auth"
	"github.com/yukikurage/apm-api/internal/models"
	"github.com/yukikurage/apm-api/internal/repository"
	"github.com/yukikurage/apm-api/internal/testutil"
)

func setupAuth(t *testing.T, allowAdmin bool) (*AuthService, *auth.TokenManager, repository.UserRepository) {
	t.Helper()
	users := repository.NewUserRepository(testutil.NewDB(t))
	tokens := auth.NewTokenManager("test-secret", 20*time.Minute)
	return NewAuthService(users, tokens, allowAdmin), tokens, users
}

func validSignup() SignupInput {
	return SignupInput{Username: "alice", Email: "alice@example.com", Password: "password123", Role: models.RoleOperator}
}

func TestSignupIssuesToken(t *testing.T) {
	service, tokens, _ := setupAuth(t, false)

	session, err := service.Signup(context.Background(), validSignup())

	require.NoError(t, err)
	assert.NotEqual(t, "password123", session.User.PasswordHash)

	id, err := tokens.Parse(session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, id.ID)
	assert.Equal(t, "alice", id.Username)
	assert.Equal(t, models.RoleOperator, id.Role)
}

func TestSignupValidation(t *testing.T) {
	service, _, _ := setupAuth(t, false)
	ctx := context.Background()

	tests := []struct {
		name   string
		modify func(*SignupInput)
		want   error
	}{
		{"short username", func(in *SignupInput) { in.Username = "al" }, ErrUsernameTooShort},
		{"short password", func(in *SignupInput) { in.Password = "12345" }, ErrPasswordTooShort},
		{"missing email", func(in *SignupInput) { in.Email = "" }, ErrEmailRequired},
		{"unknown role", func(in *SignupInput) { in.Role = "supervisor" }, ErrInvalidRole},
		{"admin disabled", func(in *SignupInput) { in.Role = models.RoleAdmin }, ErrAdminSignupDisabled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validSignup()
			tt.modify(&input)
			_, err := service.Signup(ctx, input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSignupAdminWhenAllowed(t *testing.T) {
	service, _, _ := setupAuth(t, true)
	input := validSignup()
	input.Role = models.RoleAdmin

	session, err := service.Signup(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, session.User.Role)
}

func TestSignupDuplicate(t *testing.T) {
	service, _, _ := setupAuth(t, false)
	ctx := context.Background()

	_, err := service.Signup(ctx, validSignup())
	require.NoError(t, err)

	_, err = service.Signup(ctx, validSignup())
	assert.ErrorIs(t, err, ErrUsernameTaken)

	input := validSignup()
	input.Username = "bob"
	_, err = service.Signup(ctx, input)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	service, _, _ := setupAuth(t, false)
	ctx := context.Background()

	_, err := service.Signup(ctx, validSignup())
	require.NoError(t, err)

	session, err := service.Login(ctx, "alice", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)

	_, err = service.Login(ctx, "alice", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = service.Login(ctx, "nobody", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserUpdatePasswordChange(t *testing.T) {
	authService, _, users := setupAuth(t, false)
	ctx := context.Background()
	service := NewUserService(users)

	session, err := authService.Signup(ctx, validSignup())
	require.NoError(t, err)
	id := session.User.ID

	_, err = service.Update(ctx, id, UpdateUserInput{Password: strPtr("nope-nope"), NewPassword: strPtr("newpassword")})
	assert.ErrorIs(t, err, ErrCurrentPasswordIncorrect)

	_, err = service.Update(ctx, id, UpdateUserInput{NewPassword: strPtr("newpassword")})
	assert.ErrorIs(t, err, ErrNewPasswordRequired)

	_, err = service.Update(ctx, id, UpdateUserInput{Password: strPtr("password123"), NewPassword: strPtr("newpassword")})
	require.NoError(t, err)

	_, err = authService.Login(ctx, "alice", "newpassword")
	assert.NoError(t, err)
}

func TestUserUpdateIsPartial(t *testing.T) {
	authService, _, users := setupAuth(t, false)
	ctx := context.Background()
	service := NewUserService(users)

	session, err := authService.Signup(ctx, validSignup())
	require.NoError(t, err)

	admin := models.RoleAdmin
	updated, err := service.Update(ctx, session.User.ID, UpdateUserInput{Role: &admin})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, updated.Role)
	assert.Equal(t, "alice", updated.Username)
	assert.Equal(t, "alice@example.com", updated.Email)

	input := validSignup()
	input.Username, input.Email = "bob", "bob@example.com"
	_, err = authService.Signup(ctx, input)
	require.NoError(t, err)

	_, err = service.Update(ctx, session.User.ID, UpdateUserInput{Username: strPtr("bob")})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	// Keeping the own username is not a conflict.
	_, err = service.Update(ctx, session.User.ID, UpdateUserInput{Username: strPtr("alice")})
	assert.NoError(t, err)
}
