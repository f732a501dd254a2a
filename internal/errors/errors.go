package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes
const (
	ErrCodeUnauthorized      = "UNAUTHORIZED"
	ErrCodeForbidden         = "FORBIDDEN"
	ErrCodeInvalidInput      = "INVALID_INPUT"
	ErrCodeUnprocessable     = "UNPROCESSABLE_ENTITY"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeConflict          = "CONFLICT"
	ErrCodeInvalidTransition = "INVALID_TRANSITION"
	ErrCodeFileTooLarge      = "FILE_TOO_LARGE"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// APIError is the JSON body of every error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

func NewAPIError(code, message string, details any) *APIError {
	return &APIError{Code: code, Message: message, Details: details}
}

// RespondWithError writes err and stops the handler chain
func RespondWithError(c *gin.Context, statusCode int, err *APIError) {
	c.AbortWithStatusJSON(statusCode, err)
}

func respond(c *gin.Context, statusCode int, code, message, fallback string, details any) {
	if message == "" {
		message = fallback
	}
	RespondWithError(c, statusCode, NewAPIError(code, message, details))
}

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	respond(c, http.StatusUnauthorized, ErrCodeUnauthorized, message, "Authentication required", nil)
}

// Forbidden sends a 403 response
func Forbidden(c *gin.Context, message string) {
	respond(c, http.StatusForbidden, ErrCodeForbidden, message, "Access denied", nil)
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	respond(c, http.StatusNotFound, ErrCodeNotFound, message, "Resource not found", nil)
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	respond(c, http.StatusBadRequest, ErrCodeInvalidInput, message, "Invalid request", nil)
}

func BadRequestWithDetails(c *gin.Context, message string, details any) {
	respond(c, http.StatusBadRequest, ErrCodeInvalidInput, message, "Invalid request", details)
}

// UnprocessableEntity sends a 422 response for payloads that fail binding
func UnprocessableEntity(c *gin.Context, message string, details any) {
	respond(c, http.StatusUnprocessableEntity, ErrCodeUnprocessable, message, "Invalid request body", details)
}

// InvalidTransition sends a 400 response carrying the entity's current
// status
func InvalidTransition(c *gin.Context, message string, currentStatus string) {
	respond(c, http.StatusBadRequest, ErrCodeInvalidTransition, message, "Invalid status transition", gin.H{
		"current_status": currentStatus,
	})
}

// PayloadTooLarge sends a 413 response
func PayloadTooLarge(c *gin.Context, message string) {
	respond(c, http.StatusRequestEntityTooLarge, ErrCodeFileTooLarge, message, "Uploaded file is too large", nil)
}

// Conflict sends a 409 response
func Conflict(c *gin.Context, message string) {
	respond(c, http.StatusConflict, ErrCodeConflict, message, "Resource conflict", nil)
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, message string) {
	respond(c, http.StatusInternalServerError, ErrCodeInternalError, message, "Internal server error", nil)
}
