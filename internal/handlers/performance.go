package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/apm-api/internal/dto"
	"github.com/yukikurage/apm-api/internal/middleware"
	"github.com/yukikurage/apm-api/internal/services"
	"github.com/yukikurage/apm-api/internal/utils"
)

type PerformanceHandler struct {
	performance *services.PerformanceService
}

func NewPerformanceHandler(performance *services.PerformanceService) *PerformanceHandler {
	return &PerformanceHandler{performance: performance}
}

func (h *PerformanceHandler) ListPerformance(c *gin.Context) {
	items, err := h.performance.List(c.Request.Context(), utils.GetOptionalPaginationParams(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *PerformanceHandler) GetPerformance(c *gin.Context) {
	entry, err := h.performance.Get(c.Request.Context(), middleware.GetIDParam(c, "id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *PerformanceHandler) CreatePerformance(c *gin.Context) {
	var req dto.CreatePerformanceRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, err := h.performance.Create(c.Request.Context(), req.Input())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *PerformanceHandler) UpdatePerformance(c *gin.Context) {
	var req dto.UpdatePerformanceRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, err := h.performance.Update(c.Request.Context(), middleware.GetIDParam(c, "id"), req.Input())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *PerformanceHandler) DeletePerformance(c *gin.Context) {
	if err := h.performance.Delete(c.Request.Context(), middleware.GetIDParam(c, "id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UserReport totals the points earned by :user_id
func (h *PerformanceHandler) UserReport(c *gin.Context) {
	report, err := h.performance.Report(c.Request.Context(), middleware.GetIDParam(c, "user_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
