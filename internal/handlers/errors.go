package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	apierrors "github.com/yukikurage/apm-api/internal/errors"
	"github.com/yukikurage/apm-api/internal/logger"
	"github.com/yukikurage/apm-api/internal/services"
)

// respondServiceError maps service errors onto API error responses.
// Unclassified errors are logged and reported as 500.
func respondServiceError(c *gin.Context, err error) {
	var (
		notFound   *services.NotFoundError
		validation *services.ValidationError
		conflict   *services.ConflictError
		transition *services.TransitionError
	)

	switch {
	case errors.As(err, &notFound):
		apierrors.NotFound(c, capitalize(notFound.Error()))
	case errors.As(err, &transition):
		apierrors.InvalidTransition(c, capitalize(transition.Error()), string(transition.Current))
	case errors.As(err, &validation):
		apierrors.BadRequestWithDetails(c, capitalize(validation.Message), gin.H{"field": validation.Field})
	case errors.As(err, &conflict):
		apierrors.Conflict(c, capitalize(conflict.Message))
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrCurrentPasswordIncorrect):
		apierrors.Unauthorized(c, capitalize(err.Error()))
	case errors.Is(err, services.ErrAdminSignupDisabled):
		apierrors.Forbidden(c, capitalize(err.Error()))
	default:
		_ = c.Error(err)
		logger.Log.WithError(err).WithField("path", c.FullPath()).Error("Unhandled service error")
		apierrors.InternalError(c, "")
	}
}

// bindJSON binds the request body and answers 422 on failure
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		apierrors.UnprocessableEntity(c, "Invalid request body", err.Error())
		return false
	}
	return true
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
