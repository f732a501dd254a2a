package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/apm-api/internal/dto"
	"github.com/yukikurage/apm-api/internal/middleware"
	"github.com/yukikurage/apm-api/internal/services"
	"github.com/yukikurage/apm-api/internal/utils"
)

type MaintenanceLogHandler struct {
	logs *services.MaintenanceLogService
}

func NewMaintenanceLogHandler(logs *services.MaintenanceLogService) *MaintenanceLogHandler {
	return &MaintenanceLogHandler{logs: logs}
}

func (h *MaintenanceLogHandler) ListMaintenanceLogs(c *gin.Context) {
	items, err := h.logs.List(c.Request.Context(), utils.GetOptionalPaginationParams(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *MaintenanceLogHandler) GetMaintenanceLog(c *gin.Context) {
	entry, err := h.logs.Get(c.Request.Context(), middleware.GetIDParam(c, "id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *MaintenanceLogHandler) CreateMaintenanceLog(c *gin.Context) {
	var req dto.CreateMaintenanceLogRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, err := h.logs.Create(c.Request.Context(), services.CreateMaintenanceLogInput{
		WorkstationID: req.WorkstationID,
		Type:          req.Type,
		Description:   req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *MaintenanceLogHandler) UpdateMaintenanceLog(c *gin.Context) {
	var req dto.UpdateMaintenanceLogRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, err := h.logs.Update(c.Request.Context(), middleware.GetIDParam(c, "id"), services.UpdateMaintenanceLogInput{
		WorkstationID: req.WorkstationID,
		Type:          req.Type,
		Description:   req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *MaintenanceLogHandler) DeleteMaintenanceLog(c *gin.Context) {
	if err := h.logs.Delete(c.Request.Context(), middleware.GetIDParam(c, "id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
