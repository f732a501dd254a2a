package dto

import (
	"time"

	"github.com/yukikurage/apm-api/internal/models"
	"github.com/yukikurage/apm-api/internal/services"
)

type CreateOrderRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdateOrderRequest struct {
	Name      *string        `json:"name"`
	Status    *models.Status `json:"status"`
	StartTime *time.Time     `json:"start_time"`
	EndTime   *time.Time     `json:"end_time"`
}

func (r UpdateOrderRequest) Input() services.UpdateOrderInput {
	return services.UpdateOrderInput{
		Name:      r.Name,
		Status:    r.Status,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
	}
}

// RejectRequest carries the free-text reason for a rejection
type RejectRequest struct {
	Description string `json:"description"`
}

// LifecycleResponse is returned by start, complete and reject.
type LifecycleResponse struct {
	Message      string        `json:"message"`
	OrderID      *uint64       `json:"order_id,omitempty"`
	TaskID       *uint64       `json:"task_id,omitempty"`
	Status       models.Status `json:"status"`
	EndTime      *time.Time    `json:"end_time,omitempty"`
	OperatorID   *uint64       `json:"operator_id,omitempty"`
	RejectReason string        `json:"reject_reason,omitempty"`
}

func OrderStarted(order *models.Order) LifecycleResponse {
	return LifecycleResponse{Message: "Order started", OrderID: &order.ID, Status: order.Status}
}

func OrderCompleted(order *models.Order) LifecycleResponse {
	return LifecycleResponse{Message: "Order completed", OrderID: &order.ID, Status: order.Status, EndTime: order.EndTime}
}

func OrderRejected(r *services.OrderRejection) LifecycleResponse {
	return LifecycleResponse{
		Message:      "Order rejected",
		OrderID:      &r.Order.ID,
		Status:       r.Order.Status,
		EndTime:      r.Order.EndTime,
		RejectReason: r.Reason.Description,
	}
}

func TaskStarted(task *models.Task) LifecycleResponse {
	return LifecycleResponse{Message: "Task started", TaskID: &task.ID, Status: task.Status}
}

func TaskCompleted(c *services.TaskCompletion) LifecycleResponse {
	return LifecycleResponse{
		Message:    "Task completed",
		TaskID:     &c.Task.ID,
		Status:     c.Task.Status,
		EndTime:    c.Task.EndTime,
		OperatorID: c.Task.OperatorID,
	}
}

func TaskRejected(r *services.TaskRejection) LifecycleResponse {
	return LifecycleResponse{
		Message:      "Task rejected",
		TaskID:       &r.Task.ID,
		Status:       r.Task.Status,
		EndTime:      r.Task.EndTime,
		RejectReason: r.Reason.Description,
	}
}
