package handlers

import (
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/apm-api/internal/logger"
	"github.com/yukikurage/apm-api/internal/middleware"
	"github.com/yukikurage/apm-api/internal/services"
	"github.com/yukikurage/apm-api/internal/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded HTML pages for gin's HTML renderer.
func Templates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}

// PageHandler serves the cookie-authenticated browser pages.
type PageHandler struct {
	orders *services.OrderService
}

func NewPageHandler(orders *services.OrderService) *PageHandler {
	return &PageHandler{orders: orders}
}

func (h *PageHandler) OrdersPage(c *gin.Context) {
	id, _ := middleware.GetIdentity(c)

	orders, err := h.orders.List(c.Request.Context(), utils.PaginationParams{})
	if err != nil {
		logger.Log.WithError(err).Error("Failed to load orders page")
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	c.HTML(http.StatusOK, "orders.html", gin.H{
		"User":   id,
		"Orders": orders,
	})
}

func (h *PageHandler) OrderPage(c *gin.Context) {
	id, _ := middleware.GetIdentity(c)

	order, err := h.orders.GetWithTasks(c.Request.Context(), middleware.GetIDParam(c, "id"))
	if err != nil {
		var notFound *services.NotFoundError
		if errors.As(err, &notFound) {
			c.String(http.StatusNotFound, "Order not found")
			return
		}
		logger.Log.WithError(err).Error("Failed to load order page")
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	c.HTML(http.StatusOK, "order_detail.html", gin.H{
		"User":  id,
		"Order": order,
	})
}
