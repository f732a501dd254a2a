package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/apm-api/internal/dto"
	"github.com/yukikurage/apm-api/internal/middleware"
	"github.com/yukikurage/apm-api/internal/services"
	"github.com/yukikurage/apm-api/internal/utils"
)

type RejectReasonHandler struct {
	reasons *services.RejectReasonService
}

func NewRejectReasonHandler(reasons *services.RejectReasonService) *RejectReasonHandler {
	return &RejectReasonHandler{reasons: reasons}
}

func (h *RejectReasonHandler) ListRejectReasons(c *gin.Context) {
	items, err := h.reasons.List(c.Request.Context(), utils.GetOptionalPaginationParams(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *RejectReasonHandler) GetRejectReason(c *gin.Context) {
	reason, err := h.reasons.Get(c.Request.Context(), middleware.GetIDParam(c, "id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reason)
}

func (h *RejectReasonHandler) CreateRejectReason(c *gin.Context) {
	var req dto.RejectReasonRequest
	if !bindJSON(c, &req) {
		return
	}

	reason, err := h.reasons.Create(c.Request.Context(), req.Description)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reason)
}

func (h *RejectReasonHandler) UpdateRejectReason(c *gin.Context) {
	var req dto.RejectReasonRequest
	if !bindJSON(c, &req) {
		return
	}

	reason, err := h.reasons.Update(c.Request.Context(), middleware.GetIDParam(c, "id"), req.Description)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reason)
}

func (h *RejectReasonHandler) DeleteRejectReason(c *gin.Context) {
	if err := h.reasons.Delete(c.Request.Context(), middleware.GetIDParam(c, "id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
