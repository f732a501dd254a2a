package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yukikurage/apm-api/internal/models"
)

// NotFoundError reports a missing entity.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// ValidationError reports input the service refuses before touching storage.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConflictError reports a write that collides with existing rows.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// TransitionError reports a lifecycle move the current status forbids.
type TransitionError struct {
	Entity   string
	Action   string
	Current  models.Status
	Required models.Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s cannot %s: status is %s, expected %s", e.Entity, e.Action, e.Current, e.Required)
}

var (
	ErrUserNotFound           = &NotFoundError{Resource: "user"}
	ErrOrderNotFound          = &NotFoundError{Resource: "order"}
	ErrTaskNotFound           = &NotFoundError{Resource: "task"}
	ErrWorkstationNotFound    = &NotFoundError{Resource: "workstation"}
	ErrRejectReasonNotFound   = &NotFoundError{Resource: "reject reason"}
	ErrMaintenanceLogNotFound = &NotFoundError{Resource: "maintenance log"}
	ErrPerformanceNotFound    = &NotFoundError{Resource: "performance entry"}
	ErrOrderFileNotFound      = &NotFoundError{Resource: "order file"}
	ErrFileMissing            = &NotFoundError{Resource: "file on server"}
	ErrNoTasksForOperator     = &NotFoundError{Resource: "tasks for this operator"}

	ErrRejectReasonRequired = &ValidationError{Field: "description", Message: "reject reason is required"}
	ErrNameRequired         = &ValidationError{Field: "name", Message: "name is required"}
	ErrInvalidStatus        = &ValidationError{Field: "status", Message: "unknown status"}
	ErrInvalidRole          = &ValidationError{Field: "role", Message: "role must be operator or admin"}
	ErrNegativePoints       = &ValidationError{Field: "points", Message: "points cannot be negative"}

	ErrUsernameTaken = &ConflictError{Message: "username already exists"}
	ErrEmailTaken    = &ConflictError{Message: "email already exists"}
	ErrInUse         = &ConflictError{Message: "resource is still referenced"}
	ErrDuplicate     = &ConflictError{Message: "resource already exists"}

	ErrInvalidCredentials       = errors.New("invalid username or password")
	ErrCurrentPasswordIncorrect = errors.New("current password is incorrect")
	ErrAdminSignupDisabled      = errors.New("admin accounts cannot be created through signup")
)

// storeError maps gorm errors onto the service taxonomy. notFound is
// returned for gorm.ErrRecordNotFound.
func storeError(err error, notFound *NotFoundError, action string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrInUse
	default:
		return fmt.Errorf("failed to %s: %w", action, err)
	}
}

// invalidReference reports a create or update pointing at a missing row.
func invalidReference(field string, nf *NotFoundError) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf("%s references a missing %s", field, nf.Resource)}
}
