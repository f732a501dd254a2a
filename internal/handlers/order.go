package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/apm-api/internal/dto"
	"github.com/yukikurage/apm-api/internal/middleware"
	"github.com/yukikurage/apm-api/internal/services"
	"github.com/yukikurage/apm-api/internal/utils"
)

type OrderHandler struct {
	orders    *services.OrderService
	lifecycle *services.LifecycleService
}

func NewOrderHandler(orders *services.OrderService, lifecycle *services.LifecycleService) *OrderHandler {
	return &OrderHandler{orders: orders, lifecycle: lifecycle}
}

// ListOrders returns every order, or one page when page/limit are given
func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.orders.List(c.Request.Context(), utils.GetOptionalPaginationParams(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orders.Get(c.Request.Context(), middleware.GetIDParam(c, "id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// ListOrderTasks returns the tasks of one order
func (h *OrderHandler) ListOrderTasks(c *gin.Context) {
	tasks, err := h.orders.Tasks(c.Request.Context(), middleware.GetIDParam(c, "id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.orders.Create(c.Request.Context(), services.CreateOrderInput{Name: req.Name})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	var req dto.UpdateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	if _, err := h.orders.Update(c.Request.Context(), middleware.GetIDParam(c, "id"), req.Input()); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	if err := h.orders.Delete(c.Request.Context(), middleware.GetIDParam(c, "id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *OrderHandler) StartOrder(c *gin.Context) {
	order, err := h.lifecycle.StartOrder(c.Request.Context(), middleware.GetIDParam(c, "id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OrderStarted(order))
}

func (h *OrderHandler) CompleteOrder(c *gin.Context) {
	order, err := h.lifecycle.CompleteOrder(c.Request.Context(), middleware.GetIDParam(c, "id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OrderCompleted(order))
}

// RejectOrder takes {"description": "..."}; an empty reason is a 400
func (h *OrderHandler) RejectOrder(c *gin.Context) {
	var req dto.RejectRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.lifecycle.RejectOrder(c.Request.Context(), middleware.GetIDParam(c, "id"), req.Description)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OrderRejected(result))
}
