package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/apm-api/internal/auth"
	"github.com/yukikurage/apm-api/internal/constants"
	apierrors "github.com/yukikurage/apm-api/internal/errors"
	"github.com/yukikurage/apm-api/internal/models"
)

// Authenticate attaches the caller's identity when the request carries a
// valid token. The Authorization header is tried first; when it is missing
// or does not parse, the access_token cookie is tried. It never rejects;
// RequireRoles decides what a missing identity means.
func Authenticate(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := auth.ExtractBearer(c.GetHeader("Authorization")); token != "" {
			if id, err := tokens.Parse(token); err == nil {
				SetIdentity(c, id)
				c.Next()
				return
			}
		}

		if cookie, err := c.Cookie(constants.AccessTokenCookie); err == nil && cookie != "" {
			if id, err := tokens.Parse(cookie); err == nil {
				SetIdentity(c, id)
			}
		}

		c.Next()
	}
}

// RequireRoles rejects API requests without an identity (401) or whose
// identity holds none of roles (403).
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := GetIdentity(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}
		if !id.HasRole(roles...) {
			apierrors.Forbidden(c, "Not enough permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequirePageRoles is RequireRoles for browser pages: any failure redirects
// to the login page.
func RequirePageRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := GetIdentity(c)
		if !ok || !id.HasRole(roles...) {
			c.Redirect(http.StatusFound, constants.LoginPagePath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// SetIdentity stores id in the request context
func SetIdentity(c *gin.Context, id auth.Identity) {
	c.Set(constants.ContextKeyIdentity, id)
	c.Set(constants.ContextKeyUserID, id.ID)
}

// GetIdentity retrieves the authenticated identity from context
func GetIdentity(c *gin.Context) (auth.Identity, bool) {
	v, exists := c.Get(constants.ContextKeyIdentity)
	if !exists {
		return auth.Identity{}, false
	}
	id, ok := v.(auth.Identity)
	return id, ok
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
