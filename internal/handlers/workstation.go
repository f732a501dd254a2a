package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/apm-api/internal/dto"
	"github.com/yukikurage/apm-api/internal/middleware"
	"github.com/yukikurage/apm-api/internal/services"
	"github.com/yukikurage/apm-api/internal/utils"
)

type WorkstationHandler struct {
	workstations *services.WorkstationService
}

func NewWorkstationHandler(workstations *services.WorkstationService) *WorkstationHandler {
	return &WorkstationHandler{workstations: workstations}
}

func (h *WorkstationHandler) ListWorkstations(c *gin.Context) {
	items, err := h.workstations.List(c.Request.Context(), utils.GetOptionalPaginationParams(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *WorkstationHandler) GetWorkstation(c *gin.Context) {
	ws, err := h.workstations.Get(c.Request.Context(), middleware.GetIDParam(c, "id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ws)
}

func (h *WorkstationHandler) CreateWorkstation(c *gin.Context) {
	var req dto.CreateWorkstationRequest
	if !bindJSON(c, &req) {
		return
	}

	ws, err := h.workstations.Create(c.Request.Context(), services.CreateWorkstationInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ws)
}

func (h *WorkstationHandler) UpdateWorkstation(c *gin.Context) {
	var req dto.UpdateWorkstationRequest
	if !bindJSON(c, &req) {
		return
	}

	ws, err := h.workstations.Update(c.Request.Context(), middleware.GetIDParam(c, "id"), services.UpdateWorkstationInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ws)
}

func (h *WorkstationHandler) DeleteWorkstation(c *gin.Context) {
	if err := h.workstations.Delete(c.Request.Context(), middleware.GetIDParam(c, "id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
