package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/apm-api/internal/constants"
	apierrors "github.com/yukikurage/apm-api/internal/errors"
)

// RequireIDParam parses the named path parameter as a positive integer ID
// and stores it for GetIDParam. Invalid values are rejected with 400.
func RequireIDParam(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param(name), 10, 64)
		if err != nil || id == 0 {
			apierrors.BadRequest(c, "Invalid "+name)
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyIDParam+":"+name, id)
		c.Next()
	}
}

// GetIDParam retrieves an ID parsed by RequireIDParam
func GetIDParam(c *gin.Context, name string) uint64 {
	return c.GetUint64(constants.ContextKeyIDParam + ":" + name)
}
