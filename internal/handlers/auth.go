package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/yukikurage/apm-api/internal/constants"
	"github.com/yukikurage/apm-api/internal/dto"
	apierrors "github.com/yukikurage/apm-api/internal/errors"
	"github.com/yukikurage/apm-api/internal/logger"
	"github.com/yukikurage/apm-api/internal/models"
	"github.com/yukikurage/apm-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService  *services.AuthService
	tokenTTL     time.Duration
	secureCookie bool
}

// NewAuthHandler creates a new AuthHandler. The access_token cookie lives
// as long as the token it carries.
func NewAuthHandler(authService *services.AuthService, tokenTTL time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		tokenTTL:     tokenTTL,
		secureCookie: secureCookie,
	}
}

// LoginPage renders the login form together with any pending flash error.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	session := sessions.Default(c)
	var message string
	if flashes := session.Flashes(constants.FlashErrorKey); len(flashes) > 0 {
		message, _ = flashes[0].(string)
		if err := session.Save(); err != nil {
			logger.Log.WithError(err).Warn("Failed to clear login flash")
		}
	}

	c.HTML(http.StatusOK, "login.html", gin.H{"Error": message})
}

func (h *AuthHandler) RegisterPage(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", nil)
}

// CreateUser registers a user from the registration form and signs them in.
func (h *AuthHandler) CreateUser(c *gin.Context) {
	var form dto.SignupForm
	if err := c.ShouldBind(&form); err != nil {
		apierrors.UnprocessableEntity(c, "Invalid registration form", err.Error())
		return
	}

	session, err := h.authService.Signup(c.Request.Context(), services.SignupInput{
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
		Role:     models.Role(form.Role),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.setTokenCookie(c, session.Token)
	c.Redirect(http.StatusFound, constants.OrdersPagePath)
}

// Login authenticates the login form. Bad credentials are reported back to
// the login page through a session flash.
func (h *AuthHandler) Login(c *gin.Context) {
	var form dto.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		h.redirectWithFlash(c, "Username and password are required")
		return
	}

	session, err := h.authService.Login(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			h.redirectWithFlash(c, "Invalid username or password")
			return
		}
		respondServiceError(c, err)
		return
	}

	h.setTokenCookie(c, session.Token)
	c.Redirect(http.StatusFound, constants.OrdersPagePath)
}

// APILogin is the programmatic password-flow login.
func (h *AuthHandler) APILogin(c *gin.Context) {
	var form dto.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		apierrors.UnprocessableEntity(c, "username and password are required", err.Error())
		return
	}

	session, err := h.authService.Login(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken: session.Token,
		TokenType:   constants.TokenType,
	})
}

// Logout clears the access token cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(constants.AccessTokenCookie, "", -1, "/", "", h.secureCookie, true)
	c.Redirect(http.StatusFound, constants.LoginPagePath)
}

func (h *AuthHandler) setTokenCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(constants.AccessTokenCookie, token, int(h.tokenTTL.Seconds()), "/", "", h.secureCookie, true)
}

func (h *AuthHandler) redirectWithFlash(c *gin.Context, message string) {
	session := sessions.Default(c)
	session.AddFlash(message, constants.FlashErrorKey)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}
	c.Redirect(http.StatusFound, constants.LoginPagePath)
}
