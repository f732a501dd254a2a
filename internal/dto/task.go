package dto

import (
	"time"

	"github.com/yukikurage/apm-api/internal/models"
	"github.com/yukikurage/apm-api/internal/services"
)

type CreateTaskRequest struct {
	Name          string `json:"name" binding:"required"`
	OrderID       uint64 `json:"order_id" binding:"required"`
	WorkstationID uint64 `json:"workstation_id" binding:"required"`
	OperatorID    uint64 `json:"operator_id" binding:"required"`
}

func (r CreateTaskRequest) Input() services.CreateTaskInput {
	return services.CreateTaskInput{
		Name:          r.Name,
		OrderID:       r.OrderID,
		WorkstationID: r.WorkstationID,
		OperatorID:    r.OperatorID,
	}
}

type UpdateTaskRequest struct {
	Name           *string        `json:"name"`
	OrderID        *uint64        `json:"order_id"`
	WorkstationID  *uint64        `json:"workstation_id"`
	OperatorID     *uint64        `json:"operator_id"`
	Status         *models.Status `json:"status"`
	StartTime      *time.Time     `json:"start_time"`
	EndTime        *time.Time     `json:"end_time"`
	RejectReasonID *uint64        `json:"reject_reason_id"`
}

func (r UpdateTaskRequest) Input() services.UpdateTaskInput {
	return services.UpdateTaskInput{
		Name:           r.Name,
		OrderID:        r.OrderID,
		WorkstationID:  r.WorkstationID,
		OperatorID:     r.OperatorID,
		Status:         r.Status,
		StartTime:      r.StartTime,
		EndTime:        r.EndTime,
		RejectReasonID: r.RejectReasonID,
	}
}
