package dto

import (
	"github.com/yukikurage/apm-api/internal/services"
)

// Workstations

type CreateWorkstationRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateWorkstationRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// Reject reasons

type RejectReasonRequest struct {
	Description string `json:"description" binding:"required"`
}

// Maintenance logs

type CreateMaintenanceLogRequest struct {
	WorkstationID uint64 `json:"workstation_id" binding:"required"`
	Type          string `json:"type" binding:"required"`
	Description   string `json:"description"`
}

type UpdateMaintenanceLogRequest struct {
	WorkstationID *uint64 `json:"workstation_id"`
	Type          *string `json:"type"`
	Description   *string `json:"description"`
}

// Performance

type CreatePerformanceRequest struct {
	UserID uint64 `json:"user_id" binding:"required"`
	TaskID uint64 `json:"task_id" binding:"required"`
	Points *int   `json:"points" binding:"omitempty,min=0"`
}

func (r CreatePerformanceRequest) Input() services.CreatePerformanceInput {
	return services.CreatePerformanceInput{UserID: r.UserID, TaskID: r.TaskID, Points: r.Points}
}

type UpdatePerformanceRequest struct {
	UserID *uint64 `json:"user_id"`
	TaskID *uint64 `json:"task_id"`
	Points *int    `json:"points" binding:"omitempty,min=0"`
}

func (r UpdatePerformanceRequest) Input() services.UpdatePerformanceInput {
	return services.UpdatePerformanceInput{UserID: r.UserID, TaskID: r.TaskID, Points: r.Points}
}
